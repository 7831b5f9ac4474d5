package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/twinxhq/twinx-pos/internal/core/domain"
)

// OpenShiftRequest defines the data needed to open a cash register session.
type OpenShiftRequest struct {
	TerminalID   string          `json:"terminalID" binding:"required"`
	OpeningFloat decimal.Decimal `json:"openingFloat"`
}

// CloseShiftRequest defines the data needed to close a session.
type CloseShiftRequest struct {
	ClosingAmount decimal.Decimal `json:"closingAmount" binding:"required"`
}

// ShiftResponse defines the data returned for a cash register session.
type ShiftResponse struct {
	ShiftID       string             `json:"shiftID"`
	TerminalID    string             `json:"terminalID"`
	OpenedBy      string             `json:"openedBy"`
	ClosedBy      *string            `json:"closedBy,omitempty"`
	Status        domain.ShiftStatus `json:"status"`
	OpeningFloat  decimal.Decimal    `json:"openingFloat"`
	ClosingAmount decimal.Decimal    `json:"closingAmount"`
	SalesCount    int64              `json:"salesCount"`
	SalesAmount   decimal.Decimal    `json:"salesAmount"`
	OpenedAt      time.Time          `json:"openedAt"`
	ClosedAt      *time.Time         `json:"closedAt,omitempty"`
}

// ToShiftResponse converts a domain.Shift to ShiftResponse DTO.
func ToShiftResponse(s *domain.Shift) ShiftResponse {
	return ShiftResponse{
		ShiftID:       s.ShiftID,
		TerminalID:    s.TerminalID,
		OpenedBy:      s.OpenedBy,
		ClosedBy:      s.ClosedBy,
		Status:        s.Status,
		OpeningFloat:  s.OpeningFloat,
		ClosingAmount: s.ClosingAmount,
		SalesCount:    s.SalesCount,
		SalesAmount:   s.SalesAmount,
		OpenedAt:      s.OpenedAt,
		ClosedAt:      s.ClosedAt,
	}
}
