package services

import (
	"context"
	"time"

	"github.com/twinxhq/twinx-pos/internal/core/domain"
	"github.com/twinxhq/twinx-pos/internal/dto"
)

// AttendanceSvcFacade defines clock-in/clock-out tracking.
type AttendanceSvcFacade interface {
	// ClockIn opens a record for the employee; rejects a double clock-in.
	ClockIn(ctx context.Context, employeeID string, req dto.ClockInRequest) (*domain.AttendanceRecord, error)

	// ClockOut closes the employee's open record and computes worked minutes.
	ClockOut(ctx context.Context, employeeID string) (*domain.AttendanceRecord, error)

	// ListToday retrieves all records for the current calendar day.
	ListToday(ctx context.Context) ([]domain.AttendanceRecord, error)

	// ListByEmployee retrieves an employee's records within a date range.
	ListByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]domain.AttendanceRecord, error)
}
