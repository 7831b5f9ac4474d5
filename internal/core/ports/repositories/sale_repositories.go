package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/twinxhq/twinx-pos/internal/core/domain"
)

// RefundApplication carries the updates a refund applies to its original
// sale. The repository re-verifies returnable quantities under row locks
// before applying it and derives the original's new status from the locked
// totals.
type RefundApplication struct {
	OriginalSaleID string
	RefundTotal    decimal.Decimal            // Positive amount being refunded
	ItemReturns    map[string]decimal.Decimal // sale_item_id -> quantity coming back
}

// SaleReader defines read operations for sale data
type SaleReader interface {
	// FindSaleByID retrieves a specific sale by its unique identifier.
	FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error)

	// FindSaleByInvoiceNo retrieves a sale by its human-readable invoice number.
	FindSaleByInvoiceNo(ctx context.Context, invoiceNo string) (*domain.Sale, error)

	// FindItemsBySaleID retrieves all line items belonging to a single sale.
	FindItemsBySaleID(ctx context.Context, saleID string) ([]domain.SaleItem, error)

	// ListSales retrieves a paginated list of sales using token-based pagination,
	// newest first. It returns the sales, a token for the next page, and an error.
	ListSales(ctx context.Context, from, to *time.Time, limit int, nextToken *string) ([]domain.Sale, *string, error)
}

// SaleWriter defines write operations for sale data
type SaleWriter interface {
	// NextInvoiceNo atomically increments the per-day counter and returns the
	// formatted YYYYMMDD-NNNN invoice number. Concurrent callers serialize on
	// the counter row, so numbers never duplicate.
	NextInvoiceNo(ctx context.Context, date time.Time) (string, error)

	// SaveSale persists a sale header and its items, applies the stock
	// decrements and posts the ledger entries, all within a single database
	// transaction. All-or-nothing: any step failing rolls everything back.
	SaveSale(ctx context.Context, sale *domain.Sale, deltas []domain.StockDelta, entries []domain.LedgerEntry) error

	// SaveRefund persists a refund sale linked to the original, restores
	// stock, posts reversing ledger entries and applies the returned-quantity
	// and refunded-amount updates to the original sale, all within one
	// database transaction. Returnable quantities are re-verified under row
	// locks inside that transaction.
	SaveRefund(ctx context.Context, refund *domain.Sale, deltas []domain.StockDelta, entries []domain.LedgerEntry, app RefundApplication) error
}

// SaleRepositoryFacade combines all sale-related repository interfaces
// This is a facade for clients that need access to all operations
type SaleRepositoryFacade interface {
	SaleReader
	SaleWriter
}

// SaleRepositoryWithTx extends SaleRepositoryFacade with transaction capabilities
type SaleRepositoryWithTx interface {
	SaleRepositoryFacade
	TransactionManager
}
