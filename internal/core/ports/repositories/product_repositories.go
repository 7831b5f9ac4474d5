package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/twinxhq/twinx-pos/internal/core/domain"
)

// ProductReader defines read operations for product and variation data
type ProductReader interface {
	// FindProductByID retrieves a product with its variations by its unique identifier.
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// FindVariationByID retrieves a single product variation.
	FindVariationByID(ctx context.Context, variationID string) (*domain.ProductVariation, error)

	// FindVariationsByIDs retrieves variations for multiple IDs, keyed by variation ID.
	// Used by cart validation; missing IDs are simply absent from the map.
	FindVariationsByIDs(ctx context.Context, variationIDs []string) (map[string]domain.ProductVariation, error)

	// ListProducts retrieves a paginated list of active products, optionally
	// filtered by a search term matched against name, SKU and barcode.
	ListProducts(ctx context.Context, search string, limit int, offset int) ([]domain.Product, error)

	// ListLowStock retrieves products whose aggregate quantity is at or below
	// their low-stock threshold.
	ListLowStock(ctx context.Context, limit int) ([]domain.Product, error)
}

// ProductWriter defines write operations for product and variation data
type ProductWriter interface {
	// SaveProduct persists a new product together with its variations.
	SaveProduct(ctx context.Context, product *domain.Product) error

	// UpdateProduct updates the mutable fields of a product (not its stock).
	UpdateProduct(ctx context.Context, product *domain.Product) error

	// DeactivateProduct soft-deletes a product and its variations.
	DeactivateProduct(ctx context.Context, productID string, updatedBy string) error
}

// StockMutator defines the stock ledger write path. Every quantity change goes
// through ApplyStockDeltas so each one leaves a movement row behind.
type StockMutator interface {
	// ApplyStockDeltas opens its own transaction and applies the deltas.
	// Used for standalone adjustments (damage, recount, purchase receipt).
	ApplyStockDeltas(ctx context.Context, deltas []domain.StockDelta) ([]domain.StockMovement, error)

	// ApplyStockDeltasInTx applies the deltas inside the caller's transaction.
	// For each delta it re-reads the variation quantity FOR UPDATE, rejects a
	// negative result unless back-orders are allowed, inserts a movement with
	// balance_before/balance_after, updates the variation quantity and
	// recomputes the parent product's aggregate quantity and stock status.
	ApplyStockDeltasInTx(ctx context.Context, tx pgx.Tx, deltas []domain.StockDelta) ([]domain.StockMovement, error)
}

// StockMovementReader defines read operations for the movement ledger
type StockMovementReader interface {
	// FindMovementsByReference retrieves the movements recorded for a given
	// reference (e.g. all movements of one sale), oldest first.
	FindMovementsByReference(ctx context.Context, refType domain.ReferenceType, refID string) ([]domain.StockMovement, error)

	// ListMovementsByVariation retrieves a paginated movement history for one
	// variation using token-based pagination, newest first.
	ListMovementsByVariation(ctx context.Context, variationID string, limit int, nextToken *string) ([]domain.StockMovement, *string, error)
}

// ProductRepositoryFacade combines all product-related repository interfaces
type ProductRepositoryFacade interface {
	ProductReader
	ProductWriter
	StockMutator
	StockMovementReader
}

// ProductRepositoryWithTx extends ProductRepositoryFacade with transaction capabilities
type ProductRepositoryWithTx interface {
	ProductRepositoryFacade
	TransactionManager
}
