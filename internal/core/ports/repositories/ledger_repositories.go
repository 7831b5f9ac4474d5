package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/twinxhq/twinx-pos/internal/core/domain"
)

// LedgerReader defines read operations for general ledger data
type LedgerReader interface {
	// FindEntriesByTransactionID retrieves all ledger rows posted for a single
	// business transaction (a sale or refund), ordered by entry number.
	FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error)

	// ListEntriesByAccount retrieves entries for one account code within a date
	// range, oldest first.
	ListEntriesByAccount(ctx context.Context, accountCode string, from, to time.Time) ([]domain.LedgerEntry, error)

	// GetTrialBalance aggregates debits and credits per account code over a
	// date range.
	GetTrialBalance(ctx context.Context, from, to time.Time) ([]domain.TrialBalanceRow, error)
}

// LedgerWriter defines write operations for general ledger data
type LedgerWriter interface {
	// SaveEntriesInTx validates that the entries balance (sum of debits equals
	// sum of credits, each row on exactly one side) and inserts them inside
	// the caller's transaction. An unbalanced set fails the transaction.
	SaveEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.LedgerEntry) error
}

// LedgerRepositoryFacade combines all ledger repository interfaces
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
