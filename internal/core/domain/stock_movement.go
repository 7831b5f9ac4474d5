package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType classifies a stock movement. It is chosen explicitly by the
// caller rather than inferred from free-text reasons.
type MovementType string

const (
	MovementSale           MovementType = "sale"
	MovementPurchase       MovementType = "purchase"
	MovementAdjustment     MovementType = "adjustment"
	MovementReturnCustomer MovementType = "return_customer"
	MovementReturnSupplier MovementType = "return_supplier"
	MovementDamage         MovementType = "damage"
	MovementTransferIn     MovementType = "transfer_in"
	MovementTransferOut    MovementType = "transfer_out"
	MovementWriteOff       MovementType = "write_off"
)

// ReferenceType names the document a movement was triggered by.
type ReferenceType string

const (
	ReferenceSale       ReferenceType = "sale"
	ReferenceRefund     ReferenceType = "refund"
	ReferencePurchase   ReferenceType = "purchase"
	ReferenceAdjustment ReferenceType = "adjustment"
)

// StockMovement is an append-only audit record of one quantity change.
// Quantity is signed; BalanceAfter must equal BalanceBefore plus Quantity, and
// consecutive movements for the same variation chain on those balances.
type StockMovement struct {
	MovementID    string          `json:"movementID"` // Primary Key (UUID)
	ProductID     string          `json:"productID"`
	VariationID   string          `json:"variationID"`
	ProductName   string          `json:"productName"` // Snapshot at movement time
	ProductSKU    string          `json:"productSKU"`
	MovementType  MovementType    `json:"movementType"`
	Quantity      decimal.Decimal `json:"quantity"` // Signed delta
	BalanceBefore decimal.Decimal `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	ReferenceType ReferenceType   `json:"referenceType,omitempty"`
	ReferenceID   string          `json:"referenceID,omitempty"`
	Reason        string          `json:"reason,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	RecordedBy    string          `json:"recordedBy"` // Employee ID
	MovementAt    time.Time       `json:"movementAt"`
}

// StockDelta is a requested quantity change, applied by the stock mutator
// inside the caller's transaction.
type StockDelta struct {
	VariationID  string
	Quantity     decimal.Decimal // Signed; negative for sales
	MovementType MovementType
	Reference    ReferenceType
	ReferenceID  string
	Reason       string
	Notes        string
	RecordedBy   string // Employee ID
}
