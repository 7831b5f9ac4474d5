package services

import (
	"context"
	"time"

	"github.com/twinxhq/twinx-pos/internal/core/domain"
)

// ReportingSvcFacade defines the read-only reporting queries.
type ReportingSvcFacade interface {
	// GetDailySummary aggregates completed sales for one calendar day.
	GetDailySummary(ctx context.Context, day time.Time) (*domain.DailySalesSummary, error)

	// GetTopProducts ranks products by quantity sold within a range.
	GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.TopProductRow, error)

	// GetHourlySales buckets sales by hour of day within a range.
	GetHourlySales(ctx context.Context, from, to time.Time) ([]domain.HourlySalesRow, error)
}
