package repositories

import (
	"context"
	"time"

	"github.com/twinxhq/twinx-pos/internal/core/domain"
)

// ReportingRepositoryFacade defines the aggregate queries behind the reporting
// screens. Read-only; everything is computed from committed sale rows.
type ReportingRepositoryFacade interface {
	// GetDailySalesSummary aggregates completed sales for one calendar day:
	// transaction count, totals and the per-payment-method breakdown.
	GetDailySalesSummary(ctx context.Context, day time.Time) (*domain.DailySalesSummary, error)

	// GetTopProducts ranks products by quantity sold within a date range.
	GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.TopProductRow, error)

	// GetHourlySales buckets sales by hour of day within a date range.
	GetHourlySales(ctx context.Context, from, to time.Time) ([]domain.HourlySalesRow, error)
}
