package repositories

import (
	"context"
	"time"

	"github.com/twinxhq/twinx-pos/internal/core/domain"
)

// AuditWriter defines the append-only audit log write path
type AuditWriter interface {
	// SaveAuditEvent appends one event. Callers treat failures as log-and-move-on.
	SaveAuditEvent(ctx context.Context, event domain.AuditEvent) error
}

// AuditReader defines read operations for the audit log
type AuditReader interface {
	// ListAuditEvents retrieves events within a date range, newest first,
	// optionally filtered by module and actor.
	ListAuditEvents(ctx context.Context, from, to time.Time, module string, actorID string, limit int) ([]domain.AuditEvent, error)
}

// AuditRepositoryFacade combines the audit repository interfaces
type AuditRepositoryFacade interface {
	AuditWriter
	AuditReader
}
