package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/twinxhq/twinx-pos/internal/core/domain"
)

// CreateVariationRequest is one sellable unit inside a product create call.
type CreateVariationRequest struct {
	Name            string          `json:"name" binding:"required"`
	SKU             string          `json:"sku"`
	Barcode         string          `json:"barcode"`
	Price           decimal.Decimal `json:"price" binding:"required"`
	CostPrice       decimal.Decimal `json:"costPrice"`
	StockQuantity   decimal.Decimal `json:"stockQuantity"`
	AllowBackorders bool            `json:"allowBackorders"`
}

// CreateProductRequest defines the data needed to create a new product. When
// no variations are given a default variation is created from the product's
// own price and stock so movements always have one to reference.
type CreateProductRequest struct {
	Name              string                   `json:"name" binding:"required"`
	SKU               string                   `json:"sku"`
	Barcode           string                   `json:"barcode"`
	Description       string                   `json:"description"`
	Price             decimal.Decimal          `json:"price" binding:"required"`
	CostPrice         decimal.Decimal          `json:"costPrice"`
	StockQuantity     decimal.Decimal          `json:"stockQuantity"`
	LowStockThreshold decimal.Decimal          `json:"lowStockThreshold"`
	ManageStock       *bool                    `json:"manageStock"` // Defaults to true
	AllowBackorders   bool                     `json:"allowBackorders"`
	Variations        []CreateVariationRequest `json:"variations" binding:"dive"`
}

// UpdateProductRequest defines the data allowed for updating a product.
// Stock is never updated here; every quantity change goes through the stock
// adjustment endpoint so it leaves a movement behind.
type UpdateProductRequest struct {
	Name              *string          `json:"name"`
	Description       *string          `json:"description"`
	Price             *decimal.Decimal `json:"price"`
	CostPrice         *decimal.Decimal `json:"costPrice"`
	LowStockThreshold *decimal.Decimal `json:"lowStockThreshold"`
	AllowBackorders   *bool            `json:"allowBackorders"`
	IsActive          *bool            `json:"isActive"`
}

// AdjustStockRequest defines a standalone stock adjustment. The movement type
// is explicit; it is never inferred from the reason text.
type AdjustStockRequest struct {
	VariationID  string              `json:"variationID" binding:"required"`
	Quantity     decimal.Decimal     `json:"quantity" binding:"required"` // Signed delta
	MovementType domain.MovementType `json:"movementType" binding:"required,oneof=purchase adjustment return_customer return_supplier damage transfer_in transfer_out write_off"`
	Reason       string              `json:"reason" binding:"required"`
	Notes        string              `json:"notes"`
}

// ListProductsParams defines query parameters for listing products.
type ListProductsParams struct {
	Search string `form:"search"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}

// VariationResponse defines the data returned for a product variation.
type VariationResponse struct {
	VariationID     string          `json:"variationID"`
	ProductID       string          `json:"productID"`
	Name            string          `json:"name"`
	SKU             string          `json:"sku,omitempty"`
	Barcode         string          `json:"barcode,omitempty"`
	Price           decimal.Decimal `json:"price"`
	CostPrice       decimal.Decimal `json:"costPrice"`
	StockQuantity   decimal.Decimal `json:"stockQuantity"`
	AllowBackorders bool            `json:"allowBackorders"`
	IsActive        bool            `json:"isActive"`
}

// ProductResponse defines the data returned for a product.
type ProductResponse struct {
	ProductID         string              `json:"productID"`
	Name              string              `json:"name"`
	SKU               string              `json:"sku,omitempty"`
	Barcode           string              `json:"barcode,omitempty"`
	Description       string              `json:"description,omitempty"`
	Price             decimal.Decimal     `json:"price"`
	CostPrice         decimal.Decimal     `json:"costPrice"`
	StockQuantity     decimal.Decimal     `json:"stockQuantity"`
	StockStatus       domain.StockStatus  `json:"stockStatus"`
	LowStockThreshold decimal.Decimal     `json:"lowStockThreshold"`
	ManageStock       bool                `json:"manageStock"`
	AllowBackorders   bool                `json:"allowBackorders"`
	IsActive          bool                `json:"isActive"`
	CreatedAt         time.Time           `json:"createdAt"`
	LastUpdatedAt     time.Time           `json:"lastUpdatedAt"`
	Variations        []VariationResponse `json:"variations,omitempty"`
}

// ListProductsResponse wraps the list of products.
type ListProductsResponse struct {
	Products []ProductResponse `json:"products"`
}

// ToVariationResponse converts a domain.ProductVariation to its DTO.
func ToVariationResponse(v *domain.ProductVariation) VariationResponse {
	return VariationResponse{
		VariationID:     v.VariationID,
		ProductID:       v.ProductID,
		Name:            v.Name,
		SKU:             v.SKU,
		Barcode:         v.Barcode,
		Price:           v.Price,
		CostPrice:       v.CostPrice,
		StockQuantity:   v.StockQuantity,
		AllowBackorders: v.AllowBackorders,
		IsActive:        v.IsActive,
	}
}

// ToProductResponse converts a domain.Product (with variations, if loaded) to
// ProductResponse.
func ToProductResponse(p *domain.Product) ProductResponse {
	variations := make([]VariationResponse, len(p.Variations))
	for i, v := range p.Variations {
		variations[i] = ToVariationResponse(&v)
	}
	return ProductResponse{
		ProductID:         p.ProductID,
		Name:              p.Name,
		SKU:               p.SKU,
		Barcode:           p.Barcode,
		Description:       p.Description,
		Price:             p.Price,
		CostPrice:         p.CostPrice,
		StockQuantity:     p.StockQuantity,
		StockStatus:       p.StockStatus,
		LowStockThreshold: p.LowStockThreshold,
		ManageStock:       p.ManageStock,
		AllowBackorders:   p.AllowBackorders,
		IsActive:          p.IsActive,
		CreatedAt:         p.CreatedAt,
		LastUpdatedAt:     p.LastUpdatedAt,
		Variations:        variations,
	}
}

// ToListProductsResponse converts a slice of domain.Product to the list DTO.
func ToListProductsResponse(products []domain.Product) ListProductsResponse {
	responses := make([]ProductResponse, len(products))
	for i, p := range products {
		responses[i] = ToProductResponse(&p)
	}
	return ListProductsResponse{Products: responses}
}
