package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShiftStatus is the state of a cash register session.
// Transitions: open -> closed, open -> suspended -> closed.
type ShiftStatus string

const (
	ShiftOpen      ShiftStatus = "open"
	ShiftSuspended ShiftStatus = "suspended"
	ShiftClosed    ShiftStatus = "closed"
)

// Shift is a bounded period of terminal activity with running sales totals.
type Shift struct {
	ShiftID       string          `json:"shiftID"` // Primary Key (UUID)
	TerminalID    string          `json:"terminalID"`
	OpenedBy      string          `json:"openedBy"` // Employee ID
	ClosedBy      *string         `json:"closedBy,omitempty"`
	Status        ShiftStatus     `json:"status"`
	OpeningFloat  decimal.Decimal `json:"openingFloat"`
	ClosingAmount decimal.Decimal `json:"closingAmount"`
	SalesCount    int64           `json:"salesCount"`
	SalesAmount   decimal.Decimal `json:"salesAmount"`
	OpenedAt      time.Time       `json:"openedAt"`
	ClosedAt      *time.Time      `json:"closedAt,omitempty"`
}
