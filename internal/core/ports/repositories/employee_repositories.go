package repositories

import (
	"context"
	"time"

	"github.com/twinxhq/twinx-pos/internal/core/domain"
)

// EmployeeReader defines read operations for employee data
type EmployeeReader interface {
	// FindEmployeeByID retrieves an employee by their unique identifier.
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// FindEmployeeByUsername retrieves an employee by username (login path).
	FindEmployeeByUsername(ctx context.Context, username string) (*domain.Employee, error)

	// ListEmployees retrieves active employees.
	ListEmployees(ctx context.Context, limit int, offset int) ([]domain.Employee, error)
}

// EmployeeWriter defines write operations for employee data
type EmployeeWriter interface {
	// SaveEmployee persists a new employee.
	SaveEmployee(ctx context.Context, employee *domain.Employee) error

	// UpdateEmployee updates the mutable profile fields of an employee.
	UpdateEmployee(ctx context.Context, employee *domain.Employee) error

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, employeeID string, passwordHash string, updatedBy string) error

	// RecordLoginSuccess clears the failed-attempt counter and stamps last login.
	RecordLoginSuccess(ctx context.Context, employeeID string, at time.Time) error

	// RecordLoginFailure increments the failed-attempt counter and locks the
	// account when the counter reaches lockAfter. Returns the new counter value.
	RecordLoginFailure(ctx context.Context, employeeID string, lockAfter int) (int, error)
}

// EmployeeRepositoryFacade combines all employee repository interfaces
type EmployeeRepositoryFacade interface {
	EmployeeReader
	EmployeeWriter
}
