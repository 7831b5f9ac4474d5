package services

import (
	"context"

	"github.com/twinxhq/twinx-pos/internal/core/domain"
	"github.com/twinxhq/twinx-pos/internal/dto"
)

// AuthSvcFacade defines authentication and permission checks.
type AuthSvcFacade interface {
	// Login verifies credentials against an active, unlocked employee,
	// maintains the failed-attempt counter and lockout, stamps last login and
	// returns a signed token plus the employee profile. Every attempt is
	// audited.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

	// CheckPermission reports whether the employee may perform the action
	// named by a dotted key like "sales.refund". Admins short-circuit to true.
	CheckPermission(ctx context.Context, employeeID string, key string) (bool, error)

	// ChangePassword verifies the old password before storing the new hash.
	ChangePassword(ctx context.Context, employeeID string, req dto.ChangePasswordRequest) error
}

// EmployeeReaderSvc defines read operations for employee management.
type EmployeeReaderSvc interface {
	// GetEmployeeByID retrieves a single employee profile.
	GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// ListEmployees retrieves active employees.
	ListEmployees(ctx context.Context, limit, offset int) ([]domain.Employee, error)
}

// EmployeeWriterSvc defines write operations for employee management.
type EmployeeWriterSvc interface {
	// CreateEmployee registers a new employee with a hashed password and the
	// role's default permission tree.
	CreateEmployee(ctx context.Context, req dto.CreateEmployeeRequest, creatorID string) (*domain.Employee, error)

	// UpdateEmployee updates profile fields of an employee.
	UpdateEmployee(ctx context.Context, employeeID string, req dto.UpdateEmployeeRequest, updaterID string) (*domain.Employee, error)
}

// EmployeeSvcFacade combines all employee-related service interfaces.
type EmployeeSvcFacade interface {
	AuthSvcFacade
	EmployeeReaderSvc
	EmployeeWriterSvc
}
