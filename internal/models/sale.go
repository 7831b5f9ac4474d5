package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Sale is the row shape of the sales table. Refund sales carry a non-null
// original_sale_id and negative totals.
type Sale struct {
	SaleID          string          `db:"sale_id"`
	InvoiceNo       string          `db:"invoice_no"`
	InvoiceDate     time.Time       `db:"invoice_date"`
	Status          string          `db:"status"`
	CustomerID      sql.NullString  `db:"customer_id"`
	CustomerName    string          `db:"customer_name"`
	CashierID       string          `db:"cashier_id"`
	CashierName     string          `db:"cashier_name"`
	Subtotal        decimal.Decimal `db:"subtotal"`
	DiscountAmount  decimal.Decimal `db:"discount_amount"`
	DiscountPercent decimal.Decimal `db:"discount_percent"`
	TaxAmount       decimal.Decimal `db:"tax_amount"`
	GrandTotal      decimal.Decimal `db:"grand_total"`
	AmountPaid      decimal.Decimal `db:"amount_paid"`
	ChangeAmount    decimal.Decimal `db:"change_amount"`
	RefundedAmount  decimal.Decimal `db:"refunded_amount"`
	PaymentMethod   string          `db:"payment_method"`
	PaymentStatus   string          `db:"payment_status"`
	Currency        string          `db:"currency"`
	TerminalID      string          `db:"terminal_id"`
	ShiftID         sql.NullString  `db:"shift_id"`
	OriginalSaleID  sql.NullString  `db:"original_sale_id"`
	AuditFields
}

// SaleItem is the row shape of the sale_items table. Name, SKU and barcode
// are snapshots taken at sale time.
type SaleItem struct {
	SaleItemID       string          `db:"sale_item_id"`
	SaleID           string          `db:"sale_id"`
	ProductID        string          `db:"product_id"`
	VariationID      sql.NullString  `db:"variation_id"`
	ProductName      string          `db:"product_name"`
	ProductSKU       string          `db:"product_sku"`
	ProductBarcode   string          `db:"product_barcode"`
	VariationName    string          `db:"variation_name"`
	Quantity         decimal.Decimal `db:"quantity"`
	UnitPrice        decimal.Decimal `db:"unit_price"`
	UnitCost         decimal.Decimal `db:"unit_cost"`
	Subtotal         decimal.Decimal `db:"subtotal"`
	DiscountAmount   decimal.Decimal `db:"discount_amount"`
	DiscountPercent  decimal.Decimal `db:"discount_percent"`
	TaxAmount        decimal.Decimal `db:"tax_amount"`
	TaxPercent       decimal.Decimal `db:"tax_percent"`
	Total            decimal.Decimal `db:"total"`
	ReturnedQuantity decimal.Decimal `db:"returned_quantity"`
	CreatedAt        time.Time       `db:"created_at"`
}

// LedgerEntry is the row shape of the general_ledger table.
type LedgerEntry struct {
	EntryID         string          `db:"entry_id"`
	EntryNumber     string          `db:"entry_number"`
	EntryDate       time.Time       `db:"entry_date"`
	Description     string          `db:"description"`
	AccountCode     string          `db:"account_code"`
	DebitAmount     decimal.Decimal `db:"debit_amount"`
	CreditAmount    decimal.Decimal `db:"credit_amount"`
	TransactionID   string          `db:"transaction_id"`
	TransactionType string          `db:"transaction_type"`
	PostedBy        string          `db:"posted_by"`
	CreatedAt       time.Time       `db:"created_at"`
}
