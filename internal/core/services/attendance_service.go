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
)

var (
	ErrAlreadyClockedIn = errors.New("employee already has an open attendance record")
	ErrNotClockedIn     = errors.New("employee has no open attendance record")
)

// attendanceService tracks clock-in/clock-out records.
type attendanceService struct {
	attendanceRepo portsrepo.AttendanceRepositoryFacade
	employeeRepo   portsrepo.EmployeeRepositoryFacade
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(attendanceRepo portsrepo.AttendanceRepositoryFacade, employeeRepo portsrepo.EmployeeRepositoryFacade) portssvc.AttendanceSvcFacade {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
	}
}

// Ensure attendanceService implements the portssvc.AttendanceSvcFacade interface
var _ portssvc.AttendanceSvcFacade = (*attendanceService)(nil)

// ClockIn opens a record for the employee. A second clock-in without a
// clock-out in between is rejected.
func (s *attendanceService) ClockIn(ctx context.Context, employeeID string, req dto.ClockInRequest) (*domain.AttendanceRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if !employee.IsActive {
		return nil, fmt.Errorf("employee %s is inactive: %w", employeeID, apperrors.ErrValidation)
	}

	open, err := s.attendanceRepo.FindOpenRecordByEmployee(ctx, employeeID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if open != nil {
		return nil, ErrAlreadyClockedIn
	}

	method := req.Method
	if method == "" {
		method = domain.AttendanceManual
	}
	record := &domain.AttendanceRecord{
		AttendanceID: uuid.NewString(),
		EmployeeID:   employeeID,
		ClockInAt:    time.Now(),
		Method:       method,
		Notes:        req.Notes,
	}
	if err := s.attendanceRepo.SaveClockIn(ctx, record); err != nil {
		logger.Error("Failed to clock in", slog.String("employee_id", employeeID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Employee clocked in", slog.String("employee_id", employeeID), slog.String("method", string(method)))
	return record, nil
}

// ClockOut closes the employee's open record and computes worked minutes.
func (s *attendanceService) ClockOut(ctx context.Context, employeeID string) (*domain.AttendanceRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	record, err := s.attendanceRepo.FindOpenRecordByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrNotClockedIn
		}
		return nil, err
	}

	now := time.Now()
	workedMinutes := int(now.Sub(record.ClockInAt).Minutes())
	if err := s.attendanceRepo.SaveClockOut(ctx, record.AttendanceID, now, workedMinutes); err != nil {
		logger.Error("Failed to clock out", slog.String("employee_id", employeeID), slog.String("error", err.Error()))
		return nil, err
	}

	record.ClockOutAt = &now
	record.WorkedMinutes = workedMinutes
	logger.Info("Employee clocked out", slog.String("employee_id", employeeID), slog.Int("worked_minutes", workedMinutes))
	return record, nil
}

// ListToday retrieves all records for the current calendar day.
func (s *attendanceService) ListToday(ctx context.Context) ([]domain.AttendanceRecord, error) {
	return s.attendanceRepo.ListRecordsByDate(ctx, time.Now())
}

// ListByEmployee retrieves an employee's records within a date range.
func (s *attendanceService) ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]domain.AttendanceRecord, error) {
	return s.attendanceRepo.ListRecordsByEmployee(ctx, employeeID, from, to)
}
