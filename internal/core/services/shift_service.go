package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/twinxhq/twinx-pos/internal/apperrors"
	"github.com/twinxhq/twinx-pos/internal/core/domain"
	portsrepo "github.com/twinxhq/twinx-pos/internal/core/ports/repositories"
	portssvc "github.com/twinxhq/twinx-pos/internal/core/ports/services"
	"github.com/twinxhq/twinx-pos/internal/dto"
	"github.com/twinxhq/twinx-pos/internal/middleware"
)

var ErrShiftAlreadyOpen = errors.New("terminal already has an open session")

// shiftService manages the cash register session lifecycle.
type shiftService struct {
	shiftRepo portsrepo.ShiftRepositoryFacade
	auditSvc  portssvc.AuditSvcFacade
}

// NewShiftService creates a new ShiftService.
func NewShiftService(shiftRepo portsrepo.ShiftRepositoryFacade, auditSvc portssvc.AuditSvcFacade) portssvc.ShiftSvcFacade {
	return &shiftService{
		shiftRepo: shiftRepo,
		auditSvc:  auditSvc,
	}
}

// Ensure shiftService implements the portssvc.ShiftSvcFacade interface
var _ portssvc.ShiftSvcFacade = (*shiftService)(nil)

// OpenShift opens a session for a terminal. The unique index on open sessions
// per terminal backs up this pre-check under concurrency.
func (s *shiftService) OpenShift(ctx context.Context, req dto.OpenShiftRequest, openerID string) (*domain.Shift, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := s.shiftRepo.FindOpenShiftByTerminal(ctx, req.TerminalID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("terminal %s: %w", req.TerminalID, ErrShiftAlreadyOpen)
	}

	shift := &domain.Shift{
		ShiftID:       uuid.NewString(),
		TerminalID:    req.TerminalID,
		OpenedBy:      openerID,
		Status:        domain.ShiftOpen,
		OpeningFloat:  req.OpeningFloat,
		ClosingAmount: decimal.Zero,
		SalesAmount:   decimal.Zero,
		OpenedAt:      time.Now(),
	}
	if err := s.shiftRepo.SaveShift(ctx, shift); err != nil {
		logger.Error("Failed to open session", slog.String("terminal_id", req.TerminalID), slog.String("error", err.Error()))
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.AuditEvent{
		ActorID:    &openerID,
		Action:     "open_shift",
		Module:     "shifts",
		EntityType: "shift",
		EntityID:   shift.ShiftID,
		Status:     domain.AuditSuccess,
		Details:    "Terminal " + req.TerminalID,
	})
	logger.Info("Session opened", slog.String("shift_id", shift.ShiftID), slog.String("terminal_id", req.TerminalID))
	return shift, nil
}

// CloseShift closes an open or suspended session, stamping the counted
// closing amount.
func (s *shiftService) CloseShift(ctx context.Context, shiftID string, req dto.CloseShiftRequest, closerID string) (*domain.Shift, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	if err := s.shiftRepo.UpdateShiftStatus(ctx, shiftID, domain.ShiftClosed, &req.ClosingAmount, closerID, &now); err != nil {
		return nil, err
	}

	shift, err := s.shiftRepo.FindShiftByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}

	// The over/short against opening float plus recorded sales is the first
	// thing a manager wants in the trail.
	expected := shift.OpeningFloat.Add(shift.SalesAmount)
	variance := req.ClosingAmount.Sub(expected)
	s.auditSvc.Record(ctx, domain.AuditEvent{
		ActorID:    &closerID,
		Action:     "close_shift",
		Module:     "shifts",
		EntityType: "shift",
		EntityID:   shiftID,
		Status:     domain.AuditSuccess,
		Details:    fmt.Sprintf("Counted %s, expected %s, variance %s", req.ClosingAmount.String(), expected.String(), variance.String()),
	})
	logger.Info("Session closed", slog.String("shift_id", shiftID), slog.String("variance", variance.String()))
	return shift, nil
}

// SuspendShift moves an open session to suspended.
func (s *shiftService) SuspendShift(ctx context.Context, shiftID string, actorID string) (*domain.Shift, error) {
	if err := s.shiftRepo.UpdateShiftStatus(ctx, shiftID, domain.ShiftSuspended, nil, "", nil); err != nil {
		return nil, err
	}

	shift, err := s.shiftRepo.FindShiftByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.AuditEvent{
		ActorID:    &actorID,
		Action:     "suspend_shift",
		Module:     "shifts",
		EntityType: "shift",
		EntityID:   shiftID,
		Status:     domain.AuditSuccess,
	})
	return shift, nil
}

// GetCurrentShift retrieves the open session for a terminal, if any.
func (s *shiftService) GetCurrentShift(ctx context.Context, terminalID string) (*domain.Shift, error) {
	return s.shiftRepo.FindOpenShiftByTerminal(ctx, terminalID)
}

// RecordSale bumps the running totals of an open session after a completed
// sale. Best-effort for callers: they log a failure and move on.
func (s *shiftService) RecordSale(ctx context.Context, shiftID string, amount decimal.Decimal) error {
	return s.shiftRepo.IncrementShiftTotals(ctx, shiftID, amount)
}
