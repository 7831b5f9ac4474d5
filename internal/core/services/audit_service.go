package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/twinxhq/twinx-pos/internal/core/domain"
	portsrepo "github.com/twinxhq/twinx-pos/internal/core/ports/repositories"
	portssvc "github.com/twinxhq/twinx-pos/internal/core/ports/services"
	"github.com/twinxhq/twinx-pos/internal/middleware"
)

// auditService appends to the audit trail. Writes are best-effort: a failed
// insert is logged here and never surfaces to the caller.
type auditService struct {
	auditRepo portsrepo.AuditRepositoryFacade
}

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo portsrepo.AuditRepositoryFacade) portssvc.AuditSvcFacade {
	return &auditService{auditRepo: auditRepo}
}

// Ensure auditService implements the portssvc.AuditSvcFacade interface
var _ portssvc.AuditSvcFacade = (*auditService)(nil)

// Record appends one event, filling in the ID and timestamp when unset.
func (s *auditService) Record(ctx context.Context, event domain.AuditEvent) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if event.AuditID == "" {
		event.AuditID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	if event.Status == "" {
		event.Status = domain.AuditSuccess
	}

	if err := s.auditRepo.SaveAuditEvent(ctx, event); err != nil {
		logger.Error("Failed to write audit event",
			slog.String("action", event.Action),
			slog.String("module", event.Module),
			slog.String("error", err.Error()))
	}
}

// ListEvents retrieves events within a range, newest first.
func (s *auditService) ListEvents(ctx context.Context, from, to time.Time, module string, actorID string, limit int) ([]domain.AuditEvent, error) {
	return s.auditRepo.ListAuditEvents(ctx, from, to, module, actorID, limit)
}
