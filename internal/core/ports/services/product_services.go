package services

import (
	"context"

	"github.com/twinxhq/twinx-pos/internal/core/domain"
	"github.com/twinxhq/twinx-pos/internal/dto"
)

// ProductReaderSvc defines read operations for the catalog.
type ProductReaderSvc interface {
	// GetProductByID retrieves a product with its variations.
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)

	// ListProducts retrieves active products, optionally filtered by search.
	ListProducts(ctx context.Context, params dto.ListProductsParams) (*dto.ListProductsResponse, error)

	// ListLowStock retrieves products at or below their low-stock threshold.
	ListLowStock(ctx context.Context, limit int) ([]domain.Product, error)

	// ListMovements retrieves the paginated movement history of a variation.
	ListMovements(ctx context.Context, variationID string, limit int, nextToken *string) ([]domain.StockMovement, *string, error)
}

// ProductWriterSvc defines write operations for the catalog.
type ProductWriterSvc interface {
	// CreateProduct persists a new product; a default variation is synthesized
	// when the request carries none.
	CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorID string) (*domain.Product, error)

	// UpdateProduct updates mutable product fields (never stock).
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, updaterID string) (*domain.Product, error)

	// DeactivateProduct soft-deletes a product.
	DeactivateProduct(ctx context.Context, productID string, updaterID string) error

	// AdjustStock applies a standalone signed stock delta through the movement
	// ledger and returns the recorded movement.
	AdjustStock(ctx context.Context, req dto.AdjustStockRequest, actorID string) (*domain.StockMovement, error)
}

// ProductSvcFacade combines all catalog service interfaces.
type ProductSvcFacade interface {
	ProductReaderSvc
	ProductWriterSvc
}
