package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/twinxhq/twinx-pos/internal/core/domain"
)

// CartLineRequest is one requested line of a checkout.
type CartLineRequest struct {
	ProductID       string          `json:"productID" binding:"required"`
	VariationID     *string         `json:"variationID"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice       decimal.Decimal `json:"unitPrice"` // Optional override; catalog price when zero
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	DiscountAmount  decimal.Decimal `json:"discountAmount"`
	TaxPercent      decimal.Decimal `json:"taxPercent"`
}

// ProcessSaleRequest defines the data needed to process a checkout. The
// cart-level discount is an explicit field, never inferred from a line.
type ProcessSaleRequest struct {
	Items           []CartLineRequest    `json:"items" binding:"required,min=1,dive"`
	CustomerID      *string              `json:"customerID"`
	DiscountPercent decimal.Decimal      `json:"discountPercent"` // Cart-level, 0..100
	PaymentMethod   domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=cash card credit"`
	AmountPaid      decimal.Decimal      `json:"amountPaid"`
	TerminalID      string               `json:"terminalID"`
	ShiftID         *string              `json:"shiftID"`
	Notes           string               `json:"notes"`
}

// RefundLineRequest is one line of a refund: which sale item and how much of
// its quantity comes back.
type RefundLineRequest struct {
	SaleItemID string          `json:"saleItemID" binding:"required"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
}

// ProcessRefundRequest defines the data needed to refund (part of) a sale.
type ProcessRefundRequest struct {
	SaleID     string              `json:"saleID" binding:"required"`
	Items      []RefundLineRequest `json:"items" binding:"required,min=1,dive"`
	Reason     string              `json:"reason" binding:"required"`
	TerminalID string              `json:"terminalID"`
	ShiftID    *string             `json:"shiftID"`
}

// SaleItemResponse defines the data returned for one sale line.
type SaleItemResponse struct {
	SaleItemID       string          `json:"saleItemID"`
	ProductID        string          `json:"productID"`
	VariationID      *string         `json:"variationID,omitempty"`
	ProductName      string          `json:"productName"`
	ProductSKU       string          `json:"productSKU"`
	VariationName    string          `json:"variationName,omitempty"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	DiscountAmount   decimal.Decimal `json:"discountAmount"`
	TaxAmount        decimal.Decimal `json:"taxAmount"`
	Total            decimal.Decimal `json:"total"`
	ReturnedQuantity decimal.Decimal `json:"returnedQuantity"`
}

// SaleResponse defines the data returned for a sale header.
type SaleResponse struct {
	SaleID          string               `json:"saleID"`
	InvoiceNo       string               `json:"invoiceNo"`
	InvoiceDate     time.Time            `json:"invoiceDate"`
	Status          domain.SaleStatus    `json:"status"`
	CustomerID      *string              `json:"customerID,omitempty"`
	CustomerName    string               `json:"customerName"`
	CashierID       string               `json:"cashierID"`
	CashierName     string               `json:"cashierName"`
	Subtotal        decimal.Decimal      `json:"subtotal"`
	DiscountAmount  decimal.Decimal      `json:"discountAmount"`
	DiscountPercent decimal.Decimal      `json:"discountPercent"`
	TaxAmount       decimal.Decimal      `json:"taxAmount"`
	GrandTotal      decimal.Decimal      `json:"grandTotal"`
	AmountPaid      decimal.Decimal      `json:"amountPaid"`
	ChangeAmount    decimal.Decimal      `json:"changeAmount"`
	RefundedAmount  decimal.Decimal      `json:"refundedAmount"`
	PaymentMethod   domain.PaymentMethod `json:"paymentMethod"`
	PaymentStatus   domain.PaymentStatus `json:"paymentStatus"`
	TerminalID      string               `json:"terminalID,omitempty"`
	ShiftID         *string              `json:"shiftID,omitempty"`
	OriginalSaleID  *string              `json:"originalSaleID,omitempty"`
	Items           []SaleItemResponse   `json:"items,omitempty"`
}

// ReceiptParty is the company or customer block printed at the top of a
// receipt.
type ReceiptParty struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	TaxID   string `json:"taxID,omitempty"`
}

// ReceiptLine is one printed item row.
type ReceiptLine struct {
	Name      string          `json:"name"`
	SKU       string          `json:"sku,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
}

// ReceiptData is the full render-ready receipt payload, rebuilt from the
// committed sale rows. Assembling it can fail without invalidating the sale.
type ReceiptData struct {
	InvoiceNo      string               `json:"invoiceNo"`
	InvoiceDate    time.Time            `json:"invoiceDate"`
	Company        ReceiptParty         `json:"company"`
	Customer       ReceiptParty         `json:"customer"`
	CashierName    string               `json:"cashierName"`
	TerminalID     string               `json:"terminalID,omitempty"`
	Lines          []ReceiptLine        `json:"lines"`
	Subtotal       decimal.Decimal      `json:"subtotal"`
	DiscountAmount decimal.Decimal      `json:"discountAmount"`
	TaxAmount      decimal.Decimal      `json:"taxAmount"`
	GrandTotal     decimal.Decimal      `json:"grandTotal"`
	AmountPaid     decimal.Decimal      `json:"amountPaid"`
	ChangeAmount   decimal.Decimal      `json:"changeAmount"`
	PaymentMethod  domain.PaymentMethod `json:"paymentMethod"`
	PointsEarned   int64                `json:"pointsEarned,omitempty"`
	FooterText     string               `json:"footerText,omitempty"`
}

// ProcessSaleResponse is the combined result of a completed checkout.
type ProcessSaleResponse struct {
	Sale    SaleResponse `json:"sale"`
	Receipt *ReceiptData `json:"receipt,omitempty"`
}

// ListSalesParams defines query parameters for listing sales.
type ListSalesParams struct {
	From      *time.Time `form:"from" time_format:"2006-01-02"`
	To        *time.Time `form:"to" time_format:"2006-01-02"`
	Limit     int        `form:"limit,default=20"`
	NextToken *string    `form:"nextToken"`
}

// ListSalesResponse wraps a page of sales plus the token for the next page.
type ListSalesResponse struct {
	Sales     []SaleResponse `json:"sales"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// StockMovementResponse defines the data returned for one movement row.
type StockMovementResponse struct {
	MovementID    string               `json:"movementID"`
	ProductID     string               `json:"productID"`
	VariationID   string               `json:"variationID"`
	ProductName   string               `json:"productName"`
	MovementType  domain.MovementType  `json:"movementType"`
	Quantity      decimal.Decimal      `json:"quantity"`
	BalanceBefore decimal.Decimal      `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal      `json:"balanceAfter"`
	ReferenceType domain.ReferenceType `json:"referenceType,omitempty"`
	ReferenceID   string               `json:"referenceID,omitempty"`
	Reason        string               `json:"reason,omitempty"`
	RecordedBy    string               `json:"recordedBy"`
	MovementAt    time.Time            `json:"movementAt"`
}

// GetSaleDetailsResponse combines a sale with its stock movements.
type GetSaleDetailsResponse struct {
	Sale      SaleResponse            `json:"sale"`
	Movements []StockMovementResponse `json:"movements"`
}

// ToSaleItemResponse converts a domain.SaleItem to SaleItemResponse DTO.
func ToSaleItemResponse(item *domain.SaleItem) SaleItemResponse {
	return SaleItemResponse{
		SaleItemID:       item.SaleItemID,
		ProductID:        item.ProductID,
		VariationID:      item.VariationID,
		ProductName:      item.ProductName,
		ProductSKU:       item.ProductSKU,
		VariationName:    item.VariationName,
		Quantity:         item.Quantity,
		UnitPrice:        item.UnitPrice,
		Subtotal:         item.Subtotal,
		DiscountAmount:   item.DiscountAmount,
		TaxAmount:        item.TaxAmount,
		Total:            item.Total,
		ReturnedQuantity: item.ReturnedQuantity,
	}
}

// ToSaleResponse converts a domain.Sale (with items, if loaded) to SaleResponse.
func ToSaleResponse(s *domain.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i, item := range s.Items {
		items[i] = ToSaleItemResponse(&item)
	}
	return SaleResponse{
		SaleID:          s.SaleID,
		InvoiceNo:       s.InvoiceNo,
		InvoiceDate:     s.InvoiceDate,
		Status:          s.Status,
		CustomerID:      s.CustomerID,
		CustomerName:    s.CustomerName,
		CashierID:       s.CashierID,
		CashierName:     s.CashierName,
		Subtotal:        s.Subtotal,
		DiscountAmount:  s.DiscountAmount,
		DiscountPercent: s.DiscountPercent,
		TaxAmount:       s.TaxAmount,
		GrandTotal:      s.GrandTotal,
		AmountPaid:      s.AmountPaid,
		ChangeAmount:    s.ChangeAmount,
		RefundedAmount:  s.RefundedAmount,
		PaymentMethod:   s.PaymentMethod,
		PaymentStatus:   s.PaymentStatus,
		TerminalID:      s.TerminalID,
		ShiftID:         s.ShiftID,
		OriginalSaleID:  s.OriginalSaleID,
		Items:           items,
	}
}

// ToStockMovementResponse converts a domain.StockMovement to its DTO.
func ToStockMovementResponse(m *domain.StockMovement) StockMovementResponse {
	return StockMovementResponse{
		MovementID:    m.MovementID,
		ProductID:     m.ProductID,
		VariationID:   m.VariationID,
		ProductName:   m.ProductName,
		MovementType:  m.MovementType,
		Quantity:      m.Quantity,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		Reason:        m.Reason,
		RecordedBy:    m.RecordedBy,
		MovementAt:    m.MovementAt,
	}
}

// ToStockMovementResponses converts a slice of movements to DTOs.
func ToStockMovementResponses(movements []domain.StockMovement) []StockMovementResponse {
	responses := make([]StockMovementResponse, len(movements))
	for i, m := range movements {
		responses[i] = ToStockMovementResponse(&m)
	}
	return responses
}
