package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/twinxhq/twinx-pos/internal/apperrors"
	"github.com/twinxhq/twinx-pos/internal/core/domain"
	portsrepo "github.com/twinxhq/twinx-pos/internal/core/ports/repositories"
	"github.com/twinxhq/twinx-pos/internal/models"
	"github.com/twinxhq/twinx-pos/internal/utils/mapping"
)

type PgxShiftRepository struct {
	BaseRepository
}

// newPgxShiftRepository creates a new repository for cash register sessions
func newPgxShiftRepository(pool *pgxpool.Pool) portsrepo.ShiftRepositoryFacade {
	return &PgxShiftRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxShiftRepository implements portsrepo.ShiftRepositoryFacade
var _ portsrepo.ShiftRepositoryFacade = (*PgxShiftRepository)(nil)

const shiftColumns = `shift_id, terminal_id, opened_by, closed_by, status, opening_float,
	closing_amount, sales_count, sales_amount, opened_at, closed_at`

func scanShift(row pgx.Row) (models.Shift, error) {
	var m models.Shift
	err := row.Scan(
		&m.ShiftID,
		&m.TerminalID,
		&m.OpenedBy,
		&m.ClosedBy,
		&m.Status,
		&m.OpeningFloat,
		&m.ClosingAmount,
		&m.SalesCount,
		&m.SalesAmount,
		&m.OpenedAt,
		&m.ClosedAt,
	)
	return m, err
}

// SaveShift persists a newly opened session. A partial unique index on
// (terminal_id) WHERE status = 'open' rejects a second open session per
// terminal at the database level.
func (r *PgxShiftRepository) SaveShift(ctx context.Context, shift *domain.Shift) error {
	m := mapping.ToModelShift(*shift)
	query := `
		INSERT INTO cash_register_sessions (` + shiftColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ShiftID,
		m.TerminalID,
		m.OpenedBy,
		m.ClosedBy,
		m.Status,
		m.OpeningFloat,
		m.ClosingAmount,
		m.SalesCount,
		m.SalesAmount,
		m.OpenedAt,
		m.ClosedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("terminal %s already has an open session: %w", shift.TerminalID, apperrors.ErrConflict)
		}
		return apperrors.NewAppError(500, "failed to insert session "+m.ShiftID, err)
	}

	return nil
}

// FindShiftByID retrieves a session by its unique identifier.
func (r *PgxShiftRepository) FindShiftByID(ctx context.Context, shiftID string) (*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM cash_register_sessions WHERE shift_id = $1;`
	m, err := scanShift(r.Pool.QueryRow(ctx, query, shiftID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find session by ID "+shiftID, err)
	}

	shift := mapping.ToDomainShift(m)
	return &shift, nil
}

// FindOpenShiftByTerminal retrieves the open session for a terminal, if any.
func (r *PgxShiftRepository) FindOpenShiftByTerminal(ctx context.Context, terminalID string) (*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + ` FROM cash_register_sessions WHERE terminal_id = $1 AND status = 'open';`
	m, err := scanShift(r.Pool.QueryRow(ctx, query, terminalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find open session for terminal "+terminalID, err)
	}

	shift := mapping.ToDomainShift(m)
	return &shift, nil
}

// ListShifts retrieves sessions opened within a date range, newest first.
func (r *PgxShiftRepository) ListShifts(ctx context.Context, from, to time.Time, limit int) ([]domain.Shift, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT ` + shiftColumns + `
		FROM cash_register_sessions
		WHERE opened_at >= $1 AND opened_at < $2
		ORDER BY opened_at DESC
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query sessions", err)
	}
	defer rows.Close()

	shifts := []domain.Shift{}
	for rows.Next() {
		m, err := scanShift(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan session row", err)
		}
		shifts = append(shifts, mapping.ToDomainShift(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating session rows", err)
	}

	return shifts, nil
}

// UpdateShiftStatus moves a session to suspended or closed. Only an open or
// suspended session can transition, so a closed session stays closed.
func (r *PgxShiftRepository) UpdateShiftStatus(ctx context.Context, shiftID string, status domain.ShiftStatus, closingAmount *decimal.Decimal, closedBy string, closedAt *time.Time) error {
	query := `
		UPDATE cash_register_sessions
		SET status = $2,
		    closing_amount = COALESCE($3, closing_amount),
		    closed_by = COALESCE($4, closed_by),
		    closed_at = COALESCE($5, closed_at)
		WHERE shift_id = $1 AND status IN ('open', 'suspended');
	`
	var closedByArg *string
	if closedBy != "" {
		closedByArg = &closedBy
	}
	commandTag, err := r.Pool.Exec(ctx, query, shiftID, string(status), closingAmount, closedByArg, closedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update session "+shiftID, err)
	}
	if commandTag.RowsAffected() == 0 {
		return fmt.Errorf("session %s is not open: %w", shiftID, apperrors.ErrConflict)
	}

	return nil
}

// IncrementShiftTotals bumps the running sales count and amount of an open
// session in one statement.
func (r *PgxShiftRepository) IncrementShiftTotals(ctx context.Context, shiftID string, amount decimal.Decimal) error {
	query := `
		UPDATE cash_register_sessions
		SET sales_count = sales_count + 1, sales_amount = sales_amount + $2
		WHERE shift_id = $1 AND status = 'open';
	`
	commandTag, err := r.Pool.Exec(ctx, query, shiftID, amount)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update totals for session "+shiftID, err)
	}
	if commandTag.RowsAffected() == 0 {
		return fmt.Errorf("session %s is not open: %w", shiftID, apperrors.ErrConflict)
	}

	return nil
}
