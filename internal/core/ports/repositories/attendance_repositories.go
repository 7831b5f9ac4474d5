package repositories

import (
	"context"
	"time"

	"github.com/twinxhq/twinx-pos/internal/core/domain"
)

// AttendanceReader defines read operations for attendance records
type AttendanceReader interface {
	// FindOpenRecordByEmployee retrieves the employee's record without a
	// clock-out, if one exists.
	FindOpenRecordByEmployee(ctx context.Context, employeeID string) (*domain.AttendanceRecord, error)

	// ListRecordsByDate retrieves all records whose clock-in falls on the given
	// calendar day.
	ListRecordsByDate(ctx context.Context, day time.Time) ([]domain.AttendanceRecord, error)

	// ListRecordsByEmployee retrieves an employee's records within a date range.
	ListRecordsByEmployee(ctx context.Context, employeeID string, from, to time.Time) ([]domain.AttendanceRecord, error)
}

// AttendanceWriter defines write operations for attendance records
type AttendanceWriter interface {
	// SaveClockIn persists a new record with an open clock-in.
	SaveClockIn(ctx context.Context, record *domain.AttendanceRecord) error

	// SaveClockOut stamps the clock-out time and worked minutes on a record.
	SaveClockOut(ctx context.Context, recordID string, clockOutAt time.Time, workedMinutes int) error
}

// AttendanceRepositoryFacade combines all attendance repository interfaces
type AttendanceRepositoryFacade interface {
	AttendanceReader
	AttendanceWriter
}
