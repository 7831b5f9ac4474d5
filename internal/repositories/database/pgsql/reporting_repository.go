package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/twinxhq/twinx-pos/internal/apperrors"
	"github.com/twinxhq/twinx-pos/internal/core/domain"
	portsrepo "github.com/twinxhq/twinx-pos/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for reporting queries
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepositoryFacade
var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

// GetDailySalesSummary aggregates completed sales for one calendar day.
// Refund rows carry negative totals, so a refunded sale nets out of the
// aggregate the same way it nets out of the drawer.
func (r *PgxReportingRepository) GetDailySalesSummary(ctx context.Context, day time.Time) (*domain.DailySalesSummary, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	query := `
		SELECT
			COUNT(*) FILTER (WHERE original_sale_id IS NULL),
			COALESCE(SUM(grand_total), 0),
			COALESCE(SUM(tax_amount), 0),
			COALESCE(SUM(discount_amount), 0),
			COALESCE(AVG(grand_total) FILTER (WHERE original_sale_id IS NULL), 0),
			COALESCE(MIN(grand_total) FILTER (WHERE original_sale_id IS NULL), 0),
			COALESCE(MAX(grand_total) FILTER (WHERE original_sale_id IS NULL), 0),
			COALESCE(SUM(grand_total) FILTER (WHERE payment_method = 'cash'), 0),
			COALESCE(SUM(grand_total) FILTER (WHERE payment_method = 'card'), 0),
			COALESCE(SUM(grand_total) FILTER (WHERE payment_method = 'credit'), 0),
			COUNT(DISTINCT customer_id) FILTER (WHERE customer_id IS NOT NULL),
			COUNT(*) FILTER (WHERE customer_id IS NULL AND original_sale_id IS NULL)
		FROM sales
		WHERE invoice_date >= $1 AND invoice_date < $2
		  AND status != 'voided';
	`
	var summary domain.DailySalesSummary
	err := r.Pool.QueryRow(ctx, query, dayStart, dayStart.AddDate(0, 0, 1)).Scan(
		&summary.TotalTransactions,
		&summary.TotalSales,
		&summary.TotalTax,
		&summary.TotalDiscount,
		&summary.AverageSale,
		&summary.MinSale,
		&summary.MaxSale,
		&summary.CashSales,
		&summary.CardSales,
		&summary.CreditSales,
		&summary.UniqueCustomers,
		&summary.WalkInCustomers,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query daily sales summary", err)
	}

	return &summary, nil
}

// GetTopProducts ranks products by quantity sold within a date range.
// Returned quantities are netted out per line.
func (r *PgxReportingRepository) GetTopProducts(ctx context.Context, from, to time.Time, limit int) ([]domain.TopProductRow, error) {
	if limit <= 0 {
		limit = 10
	}
	query := `
		SELECT i.product_id, i.product_name,
		       COALESCE(SUM(i.quantity - i.returned_quantity), 0) AS qty_sold,
		       COALESCE(SUM(i.total), 0) AS revenue
		FROM sale_items i
		JOIN sales s ON s.sale_id = i.sale_id
		WHERE s.invoice_date >= $1 AND s.invoice_date < $2
		  AND s.original_sale_id IS NULL AND s.status != 'voided'
		GROUP BY i.product_id, i.product_name
		ORDER BY qty_sold DESC
		LIMIT $3;
	`
	rows, err := r.Pool.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query top products", err)
	}
	defer rows.Close()

	result := []domain.TopProductRow{}
	for rows.Next() {
		var row domain.TopProductRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.QuantitySold, &row.Revenue); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan top product row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating top product rows", err)
	}

	return result, nil
}

// GetHourlySales buckets sales by hour of day within a date range.
func (r *PgxReportingRepository) GetHourlySales(ctx context.Context, from, to time.Time) ([]domain.HourlySalesRow, error) {
	query := `
		SELECT EXTRACT(HOUR FROM created_at)::int AS hour,
		       COUNT(*), COALESCE(SUM(grand_total), 0)
		FROM sales
		WHERE invoice_date >= $1 AND invoice_date < $2
		  AND original_sale_id IS NULL AND status != 'voided'
		GROUP BY hour
		ORDER BY hour;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query hourly sales", err)
	}
	defer rows.Close()

	result := []domain.HourlySalesRow{}
	for rows.Next() {
		var row domain.HourlySalesRow
		if err := rows.Scan(&row.Hour, &row.Transactions, &row.SalesAmount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan hourly sales row", err)
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating hourly sales rows", err)
	}

	return result, nil
}
