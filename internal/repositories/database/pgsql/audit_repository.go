package pgsql

import (
	"context"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/twinxhq/twinx-pos/internal/apperrors"
	"github.com/twinxhq/twinx-pos/internal/core/domain"
	portsrepo "github.com/twinxhq/twinx-pos/internal/core/ports/repositories"
	"github.com/twinxhq/twinx-pos/internal/models"
	"github.com/twinxhq/twinx-pos/internal/utils/mapping"
)

type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for the audit trail
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAuditRepository implements portsrepo.AuditRepositoryFacade
var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

const auditColumns = `audit_id, actor_id, action, module, entity_type, entity_id, status, details, occurred_at`

// SaveAuditEvent appends one event. The table has no update or delete path.
func (r *PgxAuditRepository) SaveAuditEvent(ctx context.Context, event domain.AuditEvent) error {
	m := mapping.ToModelAuditLog(event)
	query := `
		INSERT INTO audit_logs (` + auditColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AuditID,
		m.ActorID,
		m.Action,
		m.Module,
		m.EntityType,
		m.EntityID,
		m.Status,
		m.Details,
		m.OccurredAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit event "+m.AuditID, err)
	}

	return nil
}

// ListAuditEvents retrieves events within a date range, newest first,
// optionally filtered by module and actor.
func (r *PgxAuditRepository) ListAuditEvents(ctx context.Context, from, to time.Time, module string, actorID string, limit int) ([]domain.AuditEvent, error) {
	if limit <= 0 {
		limit = 100
	}

	baseQuery := `SELECT ` + auditColumns + ` FROM audit_logs WHERE occurred_at >= $1 AND occurred_at < $2`
	args := []interface{}{from, to}
	if module != "" {
		args = append(args, module)
		baseQuery += ` AND module = $` + strconv.Itoa(len(args))
	}
	if actorID != "" {
		args = append(args, actorID)
		baseQuery += ` AND actor_id = $` + strconv.Itoa(len(args))
	}
	args = append(args, limit)
	query := baseQuery + ` ORDER BY occurred_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query audit events", err)
	}
	defer rows.Close()

	events := []domain.AuditEvent{}
	for rows.Next() {
		var m models.AuditLog
		err := rows.Scan(
			&m.AuditID,
			&m.ActorID,
			&m.Action,
			&m.Module,
			&m.EntityType,
			&m.EntityID,
			&m.Status,
			&m.Details,
			&m.OccurredAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit row", err)
		}
		events = append(events, mapping.ToDomainAuditLog(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating audit rows", err)
	}

	return events, nil
}
