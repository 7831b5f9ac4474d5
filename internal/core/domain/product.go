package domain

import "github.com/shopspring/decimal"

// StockStatus classifies a product's aggregate stock level.
type StockStatus string

const (
	StockStatusInStock    StockStatus = "instock"
	StockStatusLowStock   StockStatus = "lowstock"
	StockStatusOutOfStock StockStatus = "outofstock"
)

// ClassifyStock derives the stock status from an aggregate quantity and the
// product's low-stock threshold.
func ClassifyStock(total decimal.Decimal, lowStockThreshold decimal.Decimal) StockStatus {
	if total.LessThanOrEqual(decimal.Zero) {
		return StockStatusOutOfStock
	}
	if total.LessThanOrEqual(lowStockThreshold) {
		return StockStatusLowStock
	}
	return StockStatusInStock
}

// Product is a catalog entity. Its StockQuantity is the aggregate of its
// active variations' quantities and is recomputed on every stock mutation.
type Product struct {
	ProductID         string          `json:"productID"` // Primary Key (UUID)
	Name              string          `json:"name"`
	SKU               string          `json:"sku"`
	Barcode           string          `json:"barcode"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	CostPrice         decimal.Decimal `json:"costPrice"`
	StockQuantity     decimal.Decimal `json:"stockQuantity"`
	StockStatus       StockStatus     `json:"stockStatus"`
	LowStockThreshold decimal.Decimal `json:"lowStockThreshold"`
	ManageStock       bool            `json:"manageStock"`
	AllowBackorders   bool            `json:"allowBackorders"`
	IsActive          bool            `json:"isActive"`
	AuditFields
	Variations []ProductVariation `json:"variations,omitempty"`
}

// ProductVariation is a sellable unit of a product (size, colour, pack).
// Every product has at least one variation; single-variant products carry an
// implicit default variation so stock movements always reference one.
type ProductVariation struct {
	VariationID     string          `json:"variationID"` // Primary Key (UUID)
	ProductID       string          `json:"productID"`   // FK -> Product
	Name            string          `json:"name"`
	SKU             string          `json:"sku"`
	Barcode         string          `json:"barcode"`
	Price           decimal.Decimal `json:"price"`
	CostPrice       decimal.Decimal `json:"costPrice"`
	StockQuantity   decimal.Decimal `json:"stockQuantity"`
	AllowBackorders bool            `json:"allowBackorders"`
	IsActive        bool            `json:"isActive"`
	AuditFields
}
