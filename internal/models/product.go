package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Product is the row shape of the products table. StockQuantity is the
// aggregate of the active variations, maintained by the stock mutator.
type Product struct {
	ProductID         string          `db:"product_id"`
	Name              string          `db:"name"`
	SKU               string          `db:"sku"`
	Barcode           string          `db:"barcode"`
	Description       string          `db:"description"`
	Price             decimal.Decimal `db:"price"`
	CostPrice         decimal.Decimal `db:"cost_price"`
	StockQuantity     decimal.Decimal `db:"stock_quantity"`
	StockStatus       string          `db:"stock_status"`
	LowStockThreshold decimal.Decimal `db:"low_stock_threshold"`
	ManageStock       bool            `db:"manage_stock"`
	AllowBackorders   bool            `db:"allow_backorders"`
	IsActive          bool            `db:"is_active"`
	DeletedAt         sql.NullTime    `db:"deleted_at"`
	AuditFields
}

// ProductVariation is the row shape of the product_variations table.
type ProductVariation struct {
	VariationID     string          `db:"variation_id"`
	ProductID       string          `db:"product_id"`
	Name            string          `db:"name"`
	SKU             string          `db:"sku"`
	Barcode         string          `db:"barcode"`
	Price           decimal.Decimal `db:"price"`
	CostPrice       decimal.Decimal `db:"cost_price"`
	StockQuantity   decimal.Decimal `db:"stock_quantity"`
	AllowBackorders bool            `db:"allow_backorders"`
	IsActive        bool            `db:"is_active"`
	AuditFields
}

// StockMovement is the row shape of the stock_movements table. Append-only.
type StockMovement struct {
	MovementID    string          `db:"movement_id"`
	ProductID     string          `db:"product_id"`
	VariationID   string          `db:"variation_id"`
	ProductName   string          `db:"product_name"`
	ProductSKU    string          `db:"product_sku"`
	MovementType  string          `db:"movement_type"`
	Quantity      decimal.Decimal `db:"quantity"`
	BalanceBefore decimal.Decimal `db:"balance_before"`
	BalanceAfter  decimal.Decimal `db:"balance_after"`
	ReferenceType sql.NullString  `db:"reference_type"`
	ReferenceID   sql.NullString  `db:"reference_id"`
	Reason        string          `db:"reason"`
	Notes         string          `db:"notes"`
	RecordedBy    string          `db:"recorded_by"`
	MovementAt    time.Time       `db:"movement_at"`
}
