package services

import (
	"context"
	"time"

	"github.com/twinxhq/twinx-pos/internal/core/domain"
)

// LedgerSvcFacade defines posting construction and ledger reads. The sale
// service builds its postings through this interface so the account mapping
// lives in one place.
type LedgerSvcFacade interface {
	// EntriesForSale builds the balanced revenue and COGS entry pairs for a
	// completed sale. Fails when a required account code is not configured.
	EntriesForSale(ctx context.Context, sale *domain.Sale) ([]domain.LedgerEntry, error)

	// EntriesForRefund builds the reversing entry pairs for a refund sale.
	EntriesForRefund(ctx context.Context, refund *domain.Sale) ([]domain.LedgerEntry, error)

	// GetEntriesByTransaction retrieves the postings of one sale or refund.
	GetEntriesByTransaction(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error)

	// GetTrialBalance aggregates debits and credits per account over a range.
	GetTrialBalance(ctx context.Context, from, to time.Time) ([]domain.TrialBalanceRow, error)
}
