package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/twinxhq/twinx-pos/internal/apperrors"
	"github.com/twinxhq/twinx-pos/internal/core/domain"
	portsrepo "github.com/twinxhq/twinx-pos/internal/core/ports/repositories"
	portssvc "github.com/twinxhq/twinx-pos/internal/core/ports/services"
	"github.com/twinxhq/twinx-pos/internal/dto"
	"github.com/twinxhq/twinx-pos/internal/middleware"
	"github.com/twinxhq/twinx-pos/internal/platform/config"
	"github.com/twinxhq/twinx-pos/internal/utils"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountLocked      = errors.New("account is locked after repeated failed logins")
	ErrAccountInactive    = errors.New("account is inactive")
)

// employeeService covers authentication, permission checks and employee
// management. Login failures drive the lockout counter; every attempt lands
// on the audit trail.
type employeeService struct {
	employeeRepo portsrepo.EmployeeRepositoryFacade
	auditSvc     portssvc.AuditSvcFacade
	cfg          *config.Config
}

// NewEmployeeService creates a new EmployeeService.
func NewEmployeeService(employeeRepo portsrepo.EmployeeRepositoryFacade, auditSvc portssvc.AuditSvcFacade, cfg *config.Config) portssvc.EmployeeSvcFacade {
	return &employeeService{
		employeeRepo: employeeRepo,
		auditSvc:     auditSvc,
		cfg:          cfg,
	}
}

// Ensure employeeService implements the portssvc.EmployeeSvcFacade interface
var _ portssvc.EmployeeSvcFacade = (*employeeService)(nil)

func (s *employeeService) auditLogin(ctx context.Context, employeeID *string, status domain.AuditStatus, details string) {
	s.auditSvc.Record(ctx, domain.AuditEvent{
		ActorID:    employeeID,
		Action:     "login",
		Module:     "auth",
		EntityType: "employee",
		Status:     status,
		Details:    details,
	})
}

// Login verifies credentials against an active, unlocked employee, maintains
// the failed-attempt counter and returns a signed token with the profile.
func (s *employeeService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	employee, err := s.employeeRepo.FindEmployeeByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same error as a bad password so usernames cannot be probed.
			s.auditLogin(ctx, nil, domain.AuditFailure, "Unknown username "+req.Username)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !employee.IsActive {
		s.auditLogin(ctx, &employee.EmployeeID, domain.AuditFailure, "Inactive account")
		return nil, ErrAccountInactive
	}
	if employee.IsLocked {
		s.auditLogin(ctx, &employee.EmployeeID, domain.AuditFailure, "Locked account")
		return nil, ErrAccountLocked
	}

	if !utils.CheckPasswordHash(req.Password, employee.PasswordHash) {
		attempts, recErr := s.employeeRepo.RecordLoginFailure(ctx, employee.EmployeeID, s.cfg.MaxFailedLogins)
		if recErr != nil {
			logger.Error("Failed to record login failure", slog.String("employee_id", employee.EmployeeID), slog.String("error", recErr.Error()))
		}
		s.auditLogin(ctx, &employee.EmployeeID, domain.AuditFailure, fmt.Sprintf("Bad password (attempt %d)", attempts))
		if attempts >= s.cfg.MaxFailedLogins {
			logger.Warn("Account locked after repeated failed logins", slog.String("employee_id", employee.EmployeeID))
			return nil, ErrAccountLocked
		}
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.employeeRepo.RecordLoginSuccess(ctx, employee.EmployeeID, now); err != nil {
		logger.Error("Failed to record login success", slog.String("employee_id", employee.EmployeeID), slog.String("error", err.Error()))
	}
	employee.FailedLoginAttempts = 0
	employee.LastLoginAt = &now

	token, err := utils.GenerateJWT(employee.EmployeeID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to sign token", err)
	}

	s.auditLogin(ctx, &employee.EmployeeID, domain.AuditSuccess, "Login")
	logger.Info("Employee logged in", slog.String("employee_id", employee.EmployeeID), slog.String("role", string(employee.Role)))

	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: now.Add(s.cfg.JWTExpiryDuration),
		Employee:  dto.ToEmployeeResponse(employee),
	}, nil
}

// CheckPermission reports whether the employee may perform the action named
// by a dotted key. Admins short-circuit to true.
func (s *employeeService) CheckPermission(ctx context.Context, employeeID string, key string) (bool, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return false, err
	}
	if !employee.IsActive || employee.IsLocked {
		return false, nil
	}
	if employee.Role == domain.RoleAdmin {
		return true, nil
	}
	return employee.Permissions.Allows(key), nil
}

// ChangePassword verifies the old password before storing the new hash.
func (s *employeeService) ChangePassword(ctx context.Context, employeeID string, req dto.ChangePasswordRequest) error {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if !utils.CheckPasswordHash(req.OldPassword, employee.PasswordHash) {
		return fmt.Errorf("old password does not match: %w", apperrors.ErrUnauthorized)
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return apperrors.NewAppError(500, "failed to hash password", err)
	}
	if err := s.employeeRepo.UpdatePassword(ctx, employeeID, hash, employeeID); err != nil {
		return err
	}

	s.auditSvc.Record(ctx, domain.AuditEvent{
		ActorID:    &employeeID,
		Action:     "change_password",
		Module:     "auth",
		EntityType: "employee",
		EntityID:   employeeID,
		Status:     domain.AuditSuccess,
	})
	return nil
}

// GetEmployeeByID retrieves a single employee profile.
func (s *employeeService) GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	return s.employeeRepo.FindEmployeeByID(ctx, employeeID)
}

// ListEmployees retrieves active employees.
func (s *employeeService) ListEmployees(ctx context.Context, limit, offset int) ([]domain.Employee, error) {
	return s.employeeRepo.ListEmployees(ctx, limit, offset)
}

// CreateEmployee registers a new employee with a hashed password and the
// role's default permission tree.
func (s *employeeService) CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, creatorID string) (*domain.Employee, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	now := time.Now()
	employee := &domain.Employee{
		EmployeeID:   uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		EmployeeCode: req.EmployeeCode,
		JobTitle:     req.JobTitle,
		Role:         req.Role,
		Permissions:  domain.DefaultPermissions(req.Role),
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.employeeRepo.SaveEmployee(ctx, employee); err != nil {
		logger.Error("Failed to create employee", slog.String("username", req.Username), slog.String("error", err.Error()))
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.AuditEvent{
		ActorID:    &creatorID,
		Action:     "create_employee",
		Module:     "auth",
		EntityType: "employee",
		EntityID:   employee.EmployeeID,
		Status:     domain.AuditSuccess,
		Details:    "Username " + employee.Username,
	})
	logger.Info("Employee created", slog.String("employee_id", employee.EmployeeID), slog.String("role", string(employee.Role)))
	return employee, nil
}

// UpdateEmployee updates profile fields of an employee. A role change resets
// the permission tree to the new role's defaults.
func (s *employeeService) UpdateEmployee(ctx context.Context, employeeID string, req dto.UpdateEmployeeRequest, updaterID string) (*domain.Employee, error) {
	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		employee.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		employee.LastName = *req.LastName
	}
	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}
	if req.JobTitle != nil {
		employee.JobTitle = *req.JobTitle
	}
	if req.Role != nil && *req.Role != employee.Role {
		employee.Role = *req.Role
		employee.Permissions = domain.DefaultPermissions(*req.Role)
	}
	if req.IsActive != nil {
		employee.IsActive = *req.IsActive
	}
	employee.LastUpdatedAt = time.Now()
	employee.LastUpdatedBy = updaterID

	if err := s.employeeRepo.UpdateEmployee(ctx, employee); err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.AuditEvent{
		ActorID:    &updaterID,
		Action:     "update_employee",
		Module:     "auth",
		EntityType: "employee",
		EntityID:   employeeID,
		Status:     domain.AuditSuccess,
	})
	return employee, nil
}
