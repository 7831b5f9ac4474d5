package dto

import (
	"time"

	"github.com/twinxhq/twinx-pos/internal/core/domain"
)

// DateRangeParams defines the from/to query parameters shared by the report
// endpoints.
type DateRangeParams struct {
	From time.Time `form:"from" time_format:"2006-01-02" binding:"required"`
	To   time.Time `form:"to" time_format:"2006-01-02" binding:"required"`
}

// DailySummaryResponse wraps the daily sales summary for one day.
type DailySummaryResponse struct {
	Date    string                   `json:"date"` // YYYY-MM-DD
	Summary domain.DailySalesSummary `json:"summary"`
}

// TopProductsResponse wraps the top-sellers report.
type TopProductsResponse struct {
	Products []domain.TopProductRow `json:"products"`
}

// HourlySalesResponse wraps the hourly distribution report.
type HourlySalesResponse struct {
	Hours []domain.HourlySalesRow `json:"hours"`
}

// TrialBalanceResponse wraps the ledger trial balance.
type TrialBalanceResponse struct {
	Rows []domain.TrialBalanceRow `json:"rows"`
}
