package services

import (
	"context"
	"time"

	"github.com/twinxhq/twinx-pos/internal/core/domain"
	portsrepo "github.com/twinxhq/twinx-pos/internal/core/ports/repositories"
	portssvc "github.com/twinxhq/twinx-pos/internal/core/ports/services"
)

// reportingService answers the read-only reporting screens straight from the
// reporting repository's aggregate queries.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepositoryFacade
}

// NewReportingService creates a new ReportingService.
func NewReportingService(reportingRepo portsrepo.ReportingRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

// Ensure reportingService implements the portssvc.ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetDailySummary aggregates completed sales for one calendar day.
func (s *reportingService) GetDailySummary(ctx context.Context, day time.Time) (*domain.DailySalesSummary, error) {
	return s.reportingRepo.GetDailySalesSummary(ctx, day)
}

// GetTopProducts ranks products by quantity sold within a range.
func (s *reportingService) GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.TopProductRow, error) {
	return s.reportingRepo.GetTopProducts(ctx, from, to, limit)
}

// GetHourlySales buckets sales by hour of day within a range.
func (s *reportingService) GetHourlySales(ctx context.Context, from, to time.Time) ([]domain.HourlySalesRow, error) {
	return s.reportingRepo.GetHourlySales(ctx, from, to)
}
