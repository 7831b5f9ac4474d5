package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/twinxhq/twinx-pos/internal/apperrors"
	"github.com/twinxhq/twinx-pos/internal/core/domain"
	portsrepo "github.com/twinxhq/twinx-pos/internal/core/ports/repositories"
	"github.com/twinxhq/twinx-pos/internal/models"
	"github.com/twinxhq/twinx-pos/internal/utils/mapping"
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates a new repository for general ledger data
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

const ledgerColumns = `entry_id, entry_number, entry_date, description, account_code,
	debit_amount, credit_amount, transaction_id, transaction_type, posted_by, created_at`

func scanLedgerEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.EntryNumber,
		&m.EntryDate,
		&m.Description,
		&m.AccountCode,
		&m.DebitAmount,
		&m.CreditAmount,
		&m.TransactionID,
		&m.TransactionType,
		&m.PostedBy,
		&m.CreatedAt,
	)
	return m, err
}

// SaveEntriesInTx validates that the set balances and inserts the rows inside
// the caller's transaction. An unbalanced set rejects here rather than
// corrupting the books.
func (r *PgxLedgerRepository) SaveEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := domain.ValidateLedgerBalance(entries); err != nil {
		return apperrors.NewAppError(400, "refusing to post unbalanced ledger entries", err)
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO general_ledger (` + ledgerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	for _, entry := range entries {
		m := mapping.ToModelLedgerEntry(entry)
		batch.Queue(query,
			m.EntryID,
			m.EntryNumber,
			m.EntryDate,
			m.Description,
			m.AccountCode,
			m.DebitAmount,
			m.CreditAmount,
			m.TransactionID,
			m.TransactionType,
			m.PostedBy,
			m.CreatedAt,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert ledger entries", err)
	}

	return nil
}

// FindEntriesByTransactionID retrieves all ledger rows for one sale or refund.
func (r *PgxLedgerRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM general_ledger WHERE transaction_id = $1 ORDER BY entry_number, debit_amount DESC;`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entries for transaction "+transactionID, err)
	}
	defer rows.Close()

	return collectLedgerEntries(rows)
}

// ListEntriesByAccount retrieves one account's entries within a date range.
func (r *PgxLedgerRepository) ListEntriesByAccount(ctx context.Context, accountCode string, from, to time.Time) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM general_ledger
		WHERE account_code = $1 AND entry_date >= $2 AND entry_date < $3
		ORDER BY entry_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, accountCode, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query ledger entries for account "+accountCode, err)
	}
	defer rows.Close()

	return collectLedgerEntries(rows)
}

// GetTrialBalance aggregates debits and credits per account over a date range.
func (r *PgxLedgerRepository) GetTrialBalance(ctx context.Context, from, to time.Time) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT account_code, COALESCE(SUM(debit_amount), 0), COALESCE(SUM(credit_amount), 0)
		FROM general_ledger
		WHERE entry_date >= $1 AND entry_date < $2
		GROUP BY account_code
		ORDER BY account_code;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query trial balance", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceRow{}
	for rows.Next() {
		var row domain.TrialBalanceRow
		if err := rows.Scan(&row.AccountCode, &row.Debit, &row.Credit); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan trial balance row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance rows", err)
	}

	return result, nil
}

func collectLedgerEntries(rows pgx.Rows) ([]domain.LedgerEntry, error) {
	entries := []domain.LedgerEntry{}
	for rows.Next() {
		m, err := scanLedgerEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan ledger entry row", err)
		}
		entries = append(entries, mapping.ToDomainLedgerEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger entry rows", err)
	}
	return entries, nil
}
