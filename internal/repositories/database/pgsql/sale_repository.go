package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/twinxhq/twinx-pos/internal/apperrors"
	"github.com/twinxhq/twinx-pos/internal/core/domain"
	portsrepo "github.com/twinxhq/twinx-pos/internal/core/ports/repositories"
	"github.com/twinxhq/twinx-pos/internal/models"
	"github.com/twinxhq/twinx-pos/internal/utils/mapping"
	"github.com/twinxhq/twinx-pos/internal/utils/pagination"
)

type PgxSaleRepository struct {
	BaseRepository
	productRepo portsrepo.ProductRepositoryFacade
	ledgerRepo  portsrepo.LedgerRepositoryFacade
}

// newPgxSaleRepository creates a new repository for sale data. The product
// and ledger repositories are injected so the checkout transaction can reuse
// their in-transaction write paths.
func newPgxSaleRepository(pool *pgxpool.Pool, productRepo portsrepo.ProductRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade) portsrepo.SaleRepositoryWithTx {
	return &PgxSaleRepository{
		BaseRepository: BaseRepository{Pool: pool},
		productRepo:    productRepo,
		ledgerRepo:     ledgerRepo,
	}
}

// Ensure PgxSaleRepository implements portsrepo.SaleRepositoryWithTx
var _ portsrepo.SaleRepositoryWithTx = (*PgxSaleRepository)(nil)

// NextInvoiceNo atomically increments the per-day counter row and formats the
// YYYYMMDD-NNNN invoice number. The upsert serializes concurrent terminals on
// the counter row, so two sales can never draw the same number.
func (r *PgxSaleRepository) NextInvoiceNo(ctx context.Context, date time.Time) (string, error) {
	day := date.Format("20060102")
	var counter int64
	err := r.Pool.QueryRow(ctx, `
		INSERT INTO invoice_counters (day, counter)
		VALUES ($1, 1)
		ON CONFLICT (day) DO UPDATE SET counter = invoice_counters.counter + 1
		RETURNING counter;
	`, day).Scan(&counter)
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to advance invoice counter for "+day, err)
	}
	return fmt.Sprintf("%s-%04d", day, counter), nil
}

const saleColumns = `sale_id, invoice_no, invoice_date, status, customer_id, customer_name,
	cashier_id, cashier_name, subtotal, discount_amount, discount_percent, tax_amount,
	grand_total, amount_paid, change_amount, refunded_amount, payment_method, payment_status,
	currency, terminal_id, shift_id, original_sale_id,
	created_at, created_by, last_updated_at, last_updated_by`

const saleItemColumns = `sale_item_id, sale_id, product_id, variation_id, product_name,
	product_sku, product_barcode, variation_name, quantity, unit_price, unit_cost, subtotal,
	discount_amount, discount_percent, tax_amount, tax_percent, total, returned_quantity, created_at`

func scanSale(row pgx.Row) (models.Sale, error) {
	var m models.Sale
	err := row.Scan(
		&m.SaleID,
		&m.InvoiceNo,
		&m.InvoiceDate,
		&m.Status,
		&m.CustomerID,
		&m.CustomerName,
		&m.CashierID,
		&m.CashierName,
		&m.Subtotal,
		&m.DiscountAmount,
		&m.DiscountPercent,
		&m.TaxAmount,
		&m.GrandTotal,
		&m.AmountPaid,
		&m.ChangeAmount,
		&m.RefundedAmount,
		&m.PaymentMethod,
		&m.PaymentStatus,
		&m.Currency,
		&m.TerminalID,
		&m.ShiftID,
		&m.OriginalSaleID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanSaleItem(row pgx.Row) (models.SaleItem, error) {
	var m models.SaleItem
	err := row.Scan(
		&m.SaleItemID,
		&m.SaleID,
		&m.ProductID,
		&m.VariationID,
		&m.ProductName,
		&m.ProductSKU,
		&m.ProductBarcode,
		&m.VariationName,
		&m.Quantity,
		&m.UnitPrice,
		&m.UnitCost,
		&m.Subtotal,
		&m.DiscountAmount,
		&m.DiscountPercent,
		&m.TaxAmount,
		&m.TaxPercent,
		&m.Total,
		&m.ReturnedQuantity,
		&m.CreatedAt,
	)
	return m, err
}

// insertSaleInTx writes the sale header and its items inside tx.
func (r *PgxSaleRepository) insertSaleInTx(ctx context.Context, tx pgx.Tx, sale *domain.Sale) error {
	m := mapping.ToModelSale(*sale)
	headerQuery := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		        $17, $18, $19, $20, $21, $22, $23, $24, $25, $26);
	`
	_, err := tx.Exec(ctx, headerQuery,
		m.SaleID,
		m.InvoiceNo,
		m.InvoiceDate,
		m.Status,
		m.CustomerID,
		m.CustomerName,
		m.CashierID,
		m.CashierName,
		m.Subtotal,
		m.DiscountAmount,
		m.DiscountPercent,
		m.TaxAmount,
		m.GrandTotal,
		m.AmountPaid,
		m.ChangeAmount,
		m.RefundedAmount,
		m.PaymentMethod,
		m.PaymentStatus,
		m.Currency,
		m.TerminalID,
		m.ShiftID,
		m.OriginalSaleID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("invoice number %s already exists: %w", sale.InvoiceNo, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert sale "+m.SaleID, err)
	}

	batch := &pgx.Batch{}
	itemQuery := `
		INSERT INTO sale_items (` + saleItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	for _, item := range sale.Items {
		mi := mapping.ToModelSaleItem(item)
		batch.Queue(itemQuery,
			mi.SaleItemID,
			mi.SaleID,
			mi.ProductID,
			mi.VariationID,
			mi.ProductName,
			mi.ProductSKU,
			mi.ProductBarcode,
			mi.VariationName,
			mi.Quantity,
			mi.UnitPrice,
			mi.UnitCost,
			mi.Subtotal,
			mi.DiscountAmount,
			mi.DiscountPercent,
			mi.TaxAmount,
			mi.TaxPercent,
			mi.Total,
			mi.ReturnedQuantity,
			mi.CreatedAt,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert items for sale "+m.SaleID, err)
	}

	return nil
}

// SaveSale persists the sale header and items, applies the stock decrements
// and posts the ledger entries within one database transaction.
func (r *PgxSaleRepository) SaveSale(ctx context.Context, sale *domain.Sale, deltas []domain.StockDelta, entries []domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Stock first: the FOR UPDATE locks re-verify sufficiency so a cart
	// validated moments ago cannot oversell under concurrency.
	if _, err := r.productRepo.ApplyStockDeltasInTx(ctx, tx, deltas); err != nil {
		return err
	}

	if err := r.insertSaleInTx(ctx, tx, sale); err != nil {
		return err
	}

	if err := r.ledgerRepo.SaveEntriesInTx(ctx, tx, entries); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveRefund persists a refund sale, restores stock, posts reversing ledger
// entries and updates the original sale, all within one transaction. The
// returnable quantity of every line is re-verified under FOR UPDATE.
func (r *PgxSaleRepository) SaveRefund(ctx context.Context, refund *domain.Sale, deltas []domain.StockDelta, entries []domain.LedgerEntry, app portsrepo.RefundApplication) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Lock the original header; also guards the refunded_amount update.
	var grandTotal, refundedAmount decimal.Decimal
	err = tx.QueryRow(ctx, `
		SELECT grand_total, refunded_amount
		FROM sales
		WHERE sale_id = $1
		FOR UPDATE;
	`, app.OriginalSaleID).Scan(&grandTotal, &refundedAmount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("original sale %s: %w", app.OriginalSaleID, apperrors.ErrNotFound)
		}
		return apperrors.NewAppError(500, "failed to lock original sale "+app.OriginalSaleID, err)
	}

	now := time.Now()
	for itemID, qty := range app.ItemReturns {
		var sold, returned decimal.Decimal
		err := tx.QueryRow(ctx, `
			SELECT quantity, returned_quantity
			FROM sale_items
			WHERE sale_item_id = $1 AND sale_id = $2
			FOR UPDATE;
		`, itemID, app.OriginalSaleID).Scan(&sold, &returned)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("sale item %s: %w", itemID, apperrors.ErrNotFound)
			}
			return apperrors.NewAppError(500, "failed to lock sale item "+itemID, err)
		}

		returnable := sold.Sub(returned)
		if qty.GreaterThan(returnable) {
			return fmt.Errorf("sale item %s: %s returnable, %s requested: %w",
				itemID, returnable.String(), qty.String(), apperrors.ErrConflict)
		}

		_, err = tx.Exec(ctx, `
			UPDATE sale_items
			SET returned_quantity = returned_quantity + $2
			WHERE sale_item_id = $1;
		`, itemID, qty)
		if err != nil {
			return apperrors.NewAppError(500, "failed to update returned quantity for item "+itemID, err)
		}
	}

	// Positive deltas put the goods back on the shelf.
	if _, err := r.productRepo.ApplyStockDeltasInTx(ctx, tx, deltas); err != nil {
		return err
	}

	if err := r.insertSaleInTx(ctx, tx, refund); err != nil {
		return err
	}

	if err := r.ledgerRepo.SaveEntriesInTx(ctx, tx, entries); err != nil {
		return err
	}

	newRefunded := refundedAmount.Add(app.RefundTotal)
	newStatus := domain.SalePartiallyRefunded
	newPayStatus := domain.PaymentPaid
	if newRefunded.GreaterThanOrEqual(grandTotal) {
		newStatus = domain.SaleRefunded
		newPayStatus = domain.PaymentRefunded
	}
	_, err = tx.Exec(ctx, `
		UPDATE sales
		SET refunded_amount = $2, status = $3, payment_status = $4,
		    last_updated_at = $5, last_updated_by = $6
		WHERE sale_id = $1;
	`, app.OriginalSaleID, newRefunded, string(newStatus), string(newPayStatus), now, refund.CreatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update original sale "+app.OriginalSaleID, err)
	}

	return r.Commit(ctx, tx)
}

// FindSaleByID retrieves a sale header with its items.
func (r *PgxSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE sale_id = $1;`
	m, err := scanSale(r.Pool.QueryRow(ctx, query, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find sale by ID "+saleID, err)
	}

	sale := mapping.ToDomainSale(m)
	items, err := r.FindItemsBySaleID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return &sale, nil
}

// FindSaleByInvoiceNo retrieves a sale header with its items by invoice number.
func (r *PgxSaleRepository) FindSaleByInvoiceNo(ctx context.Context, invoiceNo string) (*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE invoice_no = $1;`
	m, err := scanSale(r.Pool.QueryRow(ctx, query, invoiceNo))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find sale by invoice "+invoiceNo, err)
	}

	sale := mapping.ToDomainSale(m)
	items, err := r.FindItemsBySaleID(ctx, sale.SaleID)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return &sale, nil
}

// FindItemsBySaleID retrieves the line items of one sale.
func (r *PgxSaleRepository) FindItemsBySaleID(ctx context.Context, saleID string) ([]domain.SaleItem, error) {
	query := `SELECT ` + saleItemColumns + ` FROM sale_items WHERE sale_id = $1 ORDER BY created_at, sale_item_id;`
	rows, err := r.Pool.Query(ctx, query, saleID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query items for sale "+saleID, err)
	}
	defer rows.Close()

	items := []domain.SaleItem{}
	for rows.Next() {
		m, err := scanSaleItem(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan item row for sale "+saleID, err)
		}
		items = append(items, mapping.ToDomainSaleItem(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating item rows for sale "+saleID, err)
	}

	return items, nil
}

// ListSales retrieves a paginated list of sales, newest first, using
// token-based pagination on (invoice_date, created_at).
func (r *PgxSaleRepository) ListSales(ctx context.Context, from, to *time.Time, limit int, nextToken *string) ([]domain.Sale, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + saleColumns + ` FROM sales`
	filterClause := `WHERE 1=1`
	args := []interface{}{}

	if from != nil {
		args = append(args, *from)
		filterClause += ` AND invoice_date >= $` + strconv.Itoa(len(args))
	}
	if to != nil {
		args = append(args, *to)
		filterClause += ` AND invoice_date < $` + strconv.Itoa(len(args))
	}

	orderByClause := `ORDER BY invoice_date DESC, created_at DESC`

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDate, lastCreatedAt)
		filterClause += ` AND (invoice_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query sales", err)
	}
	defer rows.Close()

	modelSales := make([]models.Sale, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanSale(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan sale row", scanErr)
		}
		modelSales = append(modelSales, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating sale rows", err)
	}

	var nextTokenVal *string
	results := modelSales
	if len(modelSales) > limit {
		last := modelSales[limit-1]
		token := pagination.EncodeToken(last.InvoiceDate, last.CreatedAt)
		nextTokenVal = &token
		results = modelSales[:limit]
	}

	sales := make([]domain.Sale, len(results))
	for i, m := range results {
		sales[i] = mapping.ToDomainSale(m)
	}
	return sales, nextTokenVal, nil
}
