package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus is the lifecycle state of a sale header.
type SaleStatus string

const (
	SaleCompleted         SaleStatus = "completed"
	SaleRefunded          SaleStatus = "refunded"
	SalePartiallyRefunded SaleStatus = "partially_refunded"
)

// PaymentMethod is how the customer settled the sale.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "cash"
	PaymentCard   PaymentMethod = "card"
	PaymentCredit PaymentMethod = "credit"
)

// PaymentStatus of a sale header.
type PaymentStatus string

const (
	PaymentPaid     PaymentStatus = "paid"
	PaymentPending  PaymentStatus = "pending"
	PaymentRefunded PaymentStatus = "refunded"
)

// Sale is the header record for one checkout. A refund is a linked Sale with
// negative totals referencing the original through OriginalSaleID.
type Sale struct {
	SaleID          string          `json:"saleID"`    // Primary Key (UUID)
	InvoiceNo       string          `json:"invoiceNo"` // Unique, YYYYMMDD-NNNN
	InvoiceDate     time.Time       `json:"invoiceDate"`
	Status          SaleStatus      `json:"status"`
	CustomerID      *string         `json:"customerID,omitempty"`
	CustomerName    string          `json:"customerName"` // Snapshot; "Walk-in Customer" when unset
	CashierID       string          `json:"cashierID"`
	CashierName     string          `json:"cashierName"` // Snapshot
	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	TaxAmount       decimal.Decimal `json:"taxAmount"`
	GrandTotal      decimal.Decimal `json:"grandTotal"`
	AmountPaid      decimal.Decimal `json:"amountPaid"`
	ChangeAmount    decimal.Decimal `json:"changeAmount"`
	RefundedAmount  decimal.Decimal `json:"refundedAmount"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	Currency        string          `json:"currency"`
	TerminalID      string          `json:"terminalID,omitempty"`
	ShiftID         *string         `json:"shiftID,omitempty"`
	OriginalSaleID  *string         `json:"originalSaleID,omitempty"` // Set on refund sales
	AuditFields
	Items []SaleItem `json:"items,omitempty"`
}

// SaleItem is one product/quantity line within a sale. Product name, SKU and
// barcode are denormalized snapshots so history survives catalog edits.
type SaleItem struct {
	SaleItemID       string          `json:"saleItemID"` // Primary Key (UUID)
	SaleID           string          `json:"saleID"`     // FK -> Sale
	ProductID        string          `json:"productID"`
	VariationID      *string         `json:"variationID,omitempty"`
	ProductName      string          `json:"productName"`
	ProductSKU       string          `json:"productSKU"`
	ProductBarcode   string          `json:"productBarcode"`
	VariationName    string          `json:"variationName,omitempty"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	UnitCost         decimal.Decimal `json:"unitCost"` // Cost price at sale time, for COGS
	Subtotal         decimal.Decimal `json:"subtotal"`
	DiscountAmount   decimal.Decimal `json:"discountAmount"`
	DiscountPercent  decimal.Decimal `json:"discountPercent"`
	TaxAmount        decimal.Decimal `json:"taxAmount"`
	TaxPercent       decimal.Decimal `json:"taxPercent"`
	Total            decimal.Decimal `json:"total"`
	ReturnedQuantity decimal.Decimal `json:"returnedQuantity"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// CartLine is one requested line of a checkout before any pricing math.
type CartLine struct {
	ProductID       string
	VariationID     *string
	Quantity        decimal.Decimal
	UnitPrice       decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	TaxPercent      decimal.Decimal
}

// LineTotals is the per-line breakdown produced by the totals calculator.
type LineTotals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	Total          decimal.Decimal `json:"total"`
}

// SaleTotals is the monetary summary of a cart, rounded to 2dp.
type SaleTotals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	TaxAmount      decimal.Decimal `json:"taxAmount"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
	ItemCount      int             `json:"itemCount"`
	Lines          []LineTotals    `json:"lines"`
}
