package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/twinxhq/twinx-pos/internal/core/domain"
)

// ShiftReader defines read operations for cash register sessions
type ShiftReader interface {
	// FindShiftByID retrieves a session by its unique identifier.
	FindShiftByID(ctx context.Context, shiftID string) (*domain.Shift, error)

	// FindOpenShiftByTerminal retrieves the open session for a terminal, if any.
	FindOpenShiftByTerminal(ctx context.Context, terminalID string) (*domain.Shift, error)

	// ListShifts retrieves sessions opened within a date range, newest first.
	ListShifts(ctx context.Context, from, to time.Time, limit int) ([]domain.Shift, error)
}

// ShiftWriter defines write operations for cash register sessions
type ShiftWriter interface {
	// SaveShift persists a newly opened session.
	SaveShift(ctx context.Context, shift *domain.Shift) error

	// UpdateShiftStatus moves a session to suspended or closed, stamping the
	// closing details when applicable.
	UpdateShiftStatus(ctx context.Context, shiftID string, status domain.ShiftStatus, closingAmount *decimal.Decimal, closedBy string, closedAt *time.Time) error

	// IncrementShiftTotals bumps the running sales count and amount of an open
	// session after a completed sale.
	IncrementShiftTotals(ctx context.Context, shiftID string, amount decimal.Decimal) error
}

// ShiftRepositoryFacade combines all session repository interfaces
type ShiftRepositoryFacade interface {
	ShiftReader
	ShiftWriter
}
