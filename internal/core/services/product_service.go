package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/twinxhq/twinx-pos/internal/apperrors"
	"github.com/twinxhq/twinx-pos/internal/core/domain"
	portsrepo "github.com/twinxhq/twinx-pos/internal/core/ports/repositories"
	portssvc "github.com/twinxhq/twinx-pos/internal/core/ports/services"
	"github.com/twinxhq/twinx-pos/internal/dto"
	"github.com/twinxhq/twinx-pos/internal/middleware"
)

var ErrZeroAdjustment = errors.New("stock adjustment quantity must not be zero")

// productService manages the catalog and standalone stock adjustments.
type productService struct {
	productRepo portsrepo.ProductRepositoryFacade
	auditSvc    portssvc.AuditSvcFacade
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo portsrepo.ProductRepositoryFacade, auditSvc portssvc.AuditSvcFacade) portssvc.ProductSvcFacade {
	return &productService{
		productRepo: productRepo,
		auditSvc:    auditSvc,
	}
}

// Ensure productService implements the portssvc.ProductSvcFacade interface
var _ portssvc.ProductSvcFacade = (*productService)(nil)

// CreateProduct persists a new product. When the request carries no
// variations a default one is synthesized from the product's own price and
// stock, so every stock movement has a variation to reference.
func (s *productService) CreateProduct(ctx context.Context, req dto.CreateProductRequest, creatorID string) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorID,
	}

	manageStock := true
	if req.ManageStock != nil {
		manageStock = *req.ManageStock
	}

	product := &domain.Product{
		ProductID:         uuid.NewString(),
		Name:              req.Name,
		SKU:               req.SKU,
		Barcode:           req.Barcode,
		Description:       req.Description,
		Price:             req.Price,
		CostPrice:         req.CostPrice,
		LowStockThreshold: req.LowStockThreshold,
		ManageStock:       manageStock,
		AllowBackorders:   req.AllowBackorders,
		IsActive:          true,
		AuditFields:       audit,
	}

	if len(req.Variations) == 0 {
		product.Variations = []domain.ProductVariation{{
			VariationID:     uuid.NewString(),
			ProductID:       product.ProductID,
			Name:            "Default",
			SKU:             req.SKU,
			Barcode:         req.Barcode,
			Price:           req.Price,
			CostPrice:       req.CostPrice,
			StockQuantity:   req.StockQuantity,
			AllowBackorders: req.AllowBackorders,
			IsActive:        true,
			AuditFields:     audit,
		}}
	} else {
		for _, v := range req.Variations {
			product.Variations = append(product.Variations, domain.ProductVariation{
				VariationID:     uuid.NewString(),
				ProductID:       product.ProductID,
				Name:            v.Name,
				SKU:             v.SKU,
				Barcode:         v.Barcode,
				Price:           v.Price,
				CostPrice:       v.CostPrice,
				StockQuantity:   v.StockQuantity,
				AllowBackorders: v.AllowBackorders,
				IsActive:        true,
				AuditFields:     audit,
			})
		}
	}

	total := decimal.Zero
	for _, v := range product.Variations {
		total = total.Add(v.StockQuantity)
	}
	product.StockQuantity = total
	product.StockStatus = domain.ClassifyStock(total, product.LowStockThreshold)

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		logger.Error("Failed to create product", slog.String("name", req.Name), slog.String("error", err.Error()))
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.AuditEvent{
		ActorID:    &creatorID,
		Action:     "create_product",
		Module:     "inventory",
		EntityType: "product",
		EntityID:   product.ProductID,
		Status:     domain.AuditSuccess,
		Details:    product.Name,
	})
	logger.Info("Product created", slog.String("product_id", product.ProductID), slog.Int("variations", len(product.Variations)))
	return product, nil
}

// GetProductByID retrieves a product with its variations.
func (s *productService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	return s.productRepo.FindProductByID(ctx, productID)
}

// ListProducts retrieves active products, optionally filtered by search.
func (s *productService) ListProducts(ctx context.Context, params dto.ListProductsParams) (*dto.ListProductsResponse, error) {
	products, err := s.productRepo.ListProducts(ctx, params.Search, params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}
	resp := dto.ToListProductsResponse(products)
	return &resp, nil
}

// ListLowStock retrieves products at or below their low-stock threshold.
func (s *productService) ListLowStock(ctx context.Context, limit int) ([]domain.Product, error) {
	return s.productRepo.ListLowStock(ctx, limit)
}

// ListMovements retrieves the paginated movement history of a variation.
func (s *productService) ListMovements(ctx context.Context, variationID string, limit int, nextToken *string) ([]domain.StockMovement, *string, error) {
	return s.productRepo.ListMovementsByVariation(ctx, variationID, limit, nextToken)
}

// UpdateProduct updates mutable product fields. Stock quantity is never
// touched here; that path goes through AdjustStock.
func (s *productService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest, updaterID string) (*domain.Product, error) {
	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.CostPrice != nil {
		product.CostPrice = *req.CostPrice
	}
	if req.LowStockThreshold != nil {
		product.LowStockThreshold = *req.LowStockThreshold
		product.StockStatus = domain.ClassifyStock(product.StockQuantity, product.LowStockThreshold)
	}
	if req.AllowBackorders != nil {
		product.AllowBackorders = *req.AllowBackorders
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}
	product.LastUpdatedAt = time.Now()
	product.LastUpdatedBy = updaterID

	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.AuditEvent{
		ActorID:    &updaterID,
		Action:     "update_product",
		Module:     "inventory",
		EntityType: "product",
		EntityID:   productID,
		Status:     domain.AuditSuccess,
	})
	return product, nil
}

// DeactivateProduct soft-deletes a product.
func (s *productService) DeactivateProduct(ctx context.Context, productID string, updaterID string) error {
	if err := s.productRepo.DeactivateProduct(ctx, productID, updaterID); err != nil {
		return err
	}

	s.auditSvc.Record(ctx, domain.AuditEvent{
		ActorID:    &updaterID,
		Action:     "deactivate_product",
		Module:     "inventory",
		EntityType: "product",
		EntityID:   productID,
		Status:     domain.AuditSuccess,
	})
	return nil
}

// AdjustStock applies a standalone signed stock delta through the movement
// ledger and returns the recorded movement.
func (s *productService) AdjustStock(ctx context.Context, req dto.AdjustStockRequest, actorID string) (*domain.StockMovement, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Quantity.IsZero() {
		return nil, ErrZeroAdjustment
	}
	if req.MovementType == domain.MovementSale {
		return nil, fmt.Errorf("sale movements are recorded by checkout, not adjustments: %w", apperrors.ErrValidation)
	}

	movements, err := s.productRepo.ApplyStockDeltas(ctx, []domain.StockDelta{{
		VariationID:  req.VariationID,
		Quantity:     req.Quantity,
		MovementType: req.MovementType,
		Reference:    domain.ReferenceAdjustment,
		Reason:       req.Reason,
		Notes:        req.Notes,
		RecordedBy:   actorID,
	}})
	if err != nil {
		logger.Warn("Stock adjustment rejected", slog.String("variation_id", req.VariationID), slog.String("error", err.Error()))
		return nil, err
	}
	if len(movements) == 0 {
		return nil, fmt.Errorf("variation %s does not track stock: %w", req.VariationID, apperrors.ErrValidation)
	}

	movement := movements[0]
	s.auditSvc.Record(ctx, domain.AuditEvent{
		ActorID:    &actorID,
		Action:     "adjust_stock",
		Module:     "inventory",
		EntityType: "variation",
		EntityID:   req.VariationID,
		Status:     domain.AuditSuccess,
		Details:    fmt.Sprintf("%s %s: %s", req.MovementType, movement.Quantity.String(), req.Reason),
	})
	logger.Info("Stock adjusted",
		slog.String("variation_id", req.VariationID),
		slog.String("quantity", movement.Quantity.String()),
		slog.String("balance_after", movement.BalanceAfter.String()))
	return &movement, nil
}
