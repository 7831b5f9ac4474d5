package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/twinxhq/twinx-pos/internal/core/domain"
	"github.com/twinxhq/twinx-pos/internal/dto"
)

// ShiftSvcFacade defines the cash register session lifecycle.
type ShiftSvcFacade interface {
	// OpenShift opens a session for a terminal; rejects when the terminal
	// already has one open.
	OpenShift(ctx context.Context, req dto.OpenShiftRequest, openerID string) (*domain.Shift, error)

	// CloseShift closes an open or suspended session.
	CloseShift(ctx context.Context, shiftID string, req dto.CloseShiftRequest, closerID string) (*domain.Shift, error)

	// SuspendShift moves an open session to suspended.
	SuspendShift(ctx context.Context, shiftID string, actorID string) (*domain.Shift, error)

	// GetCurrentShift retrieves the open session for a terminal, if any.
	GetCurrentShift(ctx context.Context, terminalID string) (*domain.Shift, error)

	// RecordSale bumps the running totals of an open session after a completed
	// sale. Best-effort: callers log failures and move on.
	RecordSale(ctx context.Context, shiftID string, amount decimal.Decimal) error
}
