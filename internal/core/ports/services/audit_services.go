package services

import (
	"context"
	"time"

	"github.com/twinxhq/twinx-pos/internal/core/domain"
)

// AuditSvcFacade defines the append-only audit trail. Record never returns an
// error; a failed write is logged inside the service so callers stay on their
// happy path.
type AuditSvcFacade interface {
	// Record appends one event, best-effort.
	Record(ctx context.Context, event domain.AuditEvent)

	// ListEvents retrieves events within a range, newest first.
	ListEvents(ctx context.Context, from, to time.Time, module string, actorID string, limit int) ([]domain.AuditEvent, error)
}
