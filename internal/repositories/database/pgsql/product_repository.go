package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
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

type PgxProductRepository struct {
	BaseRepository
}

// newPgxProductRepository creates a new repository for catalog and stock data.
func newPgxProductRepository(pool *pgxpool.Pool) portsrepo.ProductRepositoryWithTx {
	return &PgxProductRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxProductRepository implements portsrepo.ProductRepositoryWithTx
var _ portsrepo.ProductRepositoryWithTx = (*PgxProductRepository)(nil)

const productColumns = `product_id, name, sku, barcode, description, price, cost_price,
	stock_quantity, stock_status, low_stock_threshold, manage_stock, allow_backorders,
	is_active, created_at, created_by, last_updated_at, last_updated_by`

const variationColumns = `variation_id, product_id, name, sku, barcode, price, cost_price,
	stock_quantity, allow_backorders, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanProduct(row pgx.Row) (models.Product, error) {
	var m models.Product
	err := row.Scan(
		&m.ProductID,
		&m.Name,
		&m.SKU,
		&m.Barcode,
		&m.Description,
		&m.Price,
		&m.CostPrice,
		&m.StockQuantity,
		&m.StockStatus,
		&m.LowStockThreshold,
		&m.ManageStock,
		&m.AllowBackorders,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func scanVariation(row pgx.Row) (models.ProductVariation, error) {
	var m models.ProductVariation
	err := row.Scan(
		&m.VariationID,
		&m.ProductID,
		&m.Name,
		&m.SKU,
		&m.Barcode,
		&m.Price,
		&m.CostPrice,
		&m.StockQuantity,
		&m.AllowBackorders,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveProduct persists a product together with its variations in one transaction.
func (r *PgxProductRepository) SaveProduct(ctx context.Context, product *domain.Product) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelProduct := mapping.ToModelProduct(*product)
	productQuery := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err = tx.Exec(ctx, productQuery,
		modelProduct.ProductID,
		modelProduct.Name,
		modelProduct.SKU,
		modelProduct.Barcode,
		modelProduct.Description,
		modelProduct.Price,
		modelProduct.CostPrice,
		modelProduct.StockQuantity,
		modelProduct.StockStatus,
		modelProduct.LowStockThreshold,
		modelProduct.ManageStock,
		modelProduct.AllowBackorders,
		modelProduct.IsActive,
		modelProduct.CreatedAt,
		modelProduct.CreatedBy,
		modelProduct.LastUpdatedAt,
		modelProduct.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewAppError(409, "product with this SKU or barcode already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert product "+modelProduct.ProductID, err)
	}

	batch := &pgx.Batch{}
	variationQuery := `
		INSERT INTO product_variations (` + variationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	for _, v := range product.Variations {
		mv := mapping.ToModelVariation(v)
		batch.Queue(variationQuery,
			mv.VariationID,
			mv.ProductID,
			mv.Name,
			mv.SKU,
			mv.Barcode,
			mv.Price,
			mv.CostPrice,
			mv.StockQuantity,
			mv.AllowBackorders,
			mv.IsActive,
			mv.CreatedAt,
			mv.CreatedBy,
			mv.LastUpdatedAt,
			mv.LastUpdatedBy,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return apperrors.NewAppError(500, "failed to insert variations for product "+modelProduct.ProductID, err)
	}

	return r.Commit(ctx, tx)
}

// FindProductByID retrieves a product and its variations.
func (r *PgxProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1 AND deleted_at IS NULL;`
	m, err := scanProduct(r.Pool.QueryRow(ctx, query, productID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find product by ID "+productID, err)
	}

	variationsQuery := `SELECT ` + variationColumns + ` FROM product_variations WHERE product_id = $1 ORDER BY created_at;`
	rows, err := r.Pool.Query(ctx, variationsQuery, productID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query variations for product "+productID, err)
	}
	defer rows.Close()

	product := mapping.ToDomainProduct(m)
	for rows.Next() {
		mv, err := scanVariation(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan variation row for product "+productID, err)
		}
		product.Variations = append(product.Variations, mapping.ToDomainVariation(mv))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating variation rows for product "+productID, err)
	}

	return &product, nil
}

// FindVariationByID retrieves a single variation.
func (r *PgxProductRepository) FindVariationByID(ctx context.Context, variationID string) (*domain.ProductVariation, error) {
	query := `SELECT ` + variationColumns + ` FROM product_variations WHERE variation_id = $1;`
	m, err := scanVariation(r.Pool.QueryRow(ctx, query, variationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find variation by ID "+variationID, err)
	}
	v := mapping.ToDomainVariation(m)
	return &v, nil
}

// FindVariationsByIDs retrieves variations keyed by ID. IDs without a row are
// simply absent; cart validation handles the miss.
func (r *PgxProductRepository) FindVariationsByIDs(ctx context.Context, variationIDs []string) (map[string]domain.ProductVariation, error) {
	result := make(map[string]domain.ProductVariation, len(variationIDs))
	if len(variationIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + variationColumns + ` FROM product_variations WHERE variation_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, variationIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query variations by IDs", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanVariation(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan variation row during batch fetch", err)
		}
		result[m.VariationID] = mapping.ToDomainVariation(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating variation rows during batch fetch", err)
	}

	return result, nil
}

// ListProducts retrieves active products, optionally filtered by a search term
// matched against name, SKU and barcode.
func (r *PgxProductRepository) ListProducts(ctx context.Context, search string, limit int, offset int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 20
	}

	baseQuery := `SELECT ` + productColumns + ` FROM products WHERE is_active = TRUE AND deleted_at IS NULL`
	orderByClause := `ORDER BY name ASC`

	var rows pgx.Rows
	var err error
	if search != "" {
		pattern := "%" + search + "%"
		query := baseQuery + ` AND (name ILIKE $1 OR sku ILIKE $1 OR barcode ILIKE $1) ` + orderByClause + ` LIMIT $2 OFFSET $3;`
		rows, err = r.Pool.Query(ctx, query, pattern, limit, offset)
	} else {
		query := baseQuery + ` ` + orderByClause + ` LIMIT $1 OFFSET $2;`
		rows, err = r.Pool.Query(ctx, query, limit, offset)
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query products", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan product row", err)
		}
		products = append(products, mapping.ToDomainProduct(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating product rows", err)
	}

	return products, nil
}

// ListLowStock retrieves stock-managed products at or below their threshold.
func (r *PgxProductRepository) ListLowStock(ctx context.Context, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE is_active = TRUE AND deleted_at IS NULL AND manage_stock = TRUE
		  AND stock_quantity <= low_stock_threshold
		ORDER BY stock_quantity ASC
		LIMIT $1;
	`
	rows, err := r.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query low stock products", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		m, err := scanProduct(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan low stock product row", err)
		}
		products = append(products, mapping.ToDomainProduct(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating low stock product rows", err)
	}

	return products, nil
}

// UpdateProduct updates the mutable fields of a product (never its stock).
func (r *PgxProductRepository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	m := mapping.ToModelProduct(*product)
	query := `
		UPDATE products
		SET name = $2,
		    description = $3,
		    price = $4,
		    cost_price = $5,
		    low_stock_threshold = $6,
		    allow_backorders = $7,
		    is_active = $8,
		    last_updated_at = $9,
		    last_updated_by = $10
		WHERE product_id = $1 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.ProductID,
		m.Name,
		m.Description,
		m.Price,
		m.CostPrice,
		m.LowStockThreshold,
		m.AllowBackorders,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update product "+m.ProductID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("product " + m.ProductID + " not found for update")
	}
	return nil
}

// DeactivateProduct soft-deletes a product and its variations.
func (r *PgxProductRepository) DeactivateProduct(ctx context.Context, productID string, updatedBy string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := time.Now()
	cmdTag, err := tx.Exec(ctx, `
		UPDATE products
		SET is_active = FALSE, deleted_at = $2, last_updated_at = $2, last_updated_by = $3
		WHERE product_id = $1 AND deleted_at IS NULL;
	`, productID, now, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate product "+productID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("product " + productID + " not found for deactivation")
	}

	_, err = tx.Exec(ctx, `
		UPDATE product_variations
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE product_id = $1;
	`, productID, now, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate variations for product "+productID, err)
	}

	return r.Commit(ctx, tx)
}

// ApplyStockDeltas opens its own transaction around ApplyStockDeltasInTx.
func (r *PgxProductRepository) ApplyStockDeltas(ctx context.Context, deltas []domain.StockDelta) ([]domain.StockMovement, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	movements, err := r.ApplyStockDeltasInTx(ctx, tx, deltas)
	if err != nil {
		return nil, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return movements, nil
}

// ApplyStockDeltasInTx applies signed quantity changes inside the caller's
// transaction. For each delta the variation row is re-read under FOR UPDATE,
// the new balance is validated, a movement row with balance_before and
// balance_after is appended, and the parent product's aggregate quantity and
// stock status are recomputed.
func (r *PgxProductRepository) ApplyStockDeltasInTx(ctx context.Context, tx pgx.Tx, deltas []domain.StockDelta) ([]domain.StockMovement, error) {
	movements := make([]domain.StockMovement, 0, len(deltas))
	now := time.Now()

	for _, delta := range deltas {
		if delta.Quantity.IsZero() {
			continue
		}

		lockQuery := `
			SELECT v.product_id, v.stock_quantity, v.allow_backorders, v.is_active,
			       p.name, p.sku, p.manage_stock, p.allow_backorders, p.low_stock_threshold
			FROM product_variations v
			JOIN products p ON p.product_id = v.product_id
			WHERE v.variation_id = $1
			FOR UPDATE OF v;
		`
		var (
			productID      string
			balanceBefore  decimal.Decimal
			varBackorders  bool
			varActive      bool
			productName    string
			productSKU     string
			manageStock    bool
			prodBackorders bool
			lowStockThresh decimal.Decimal
		)
		err := tx.QueryRow(ctx, lockQuery, delta.VariationID).Scan(
			&productID,
			&balanceBefore,
			&varBackorders,
			&varActive,
			&productName,
			&productSKU,
			&manageStock,
			&prodBackorders,
			&lowStockThresh,
		)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, fmt.Errorf("variation %s: %w", delta.VariationID, apperrors.ErrNotFound)
			}
			return nil, apperrors.NewAppError(500, "failed to lock variation "+delta.VariationID, err)
		}
		if !varActive {
			return nil, fmt.Errorf("variation %s is inactive: %w", delta.VariationID, apperrors.ErrValidation)
		}
		if !manageStock {
			// Unmanaged products take no quantity tracking and no movement.
			continue
		}

		balanceAfter := balanceBefore.Add(delta.Quantity)
		if balanceAfter.IsNegative() && !varBackorders && !prodBackorders {
			return nil, fmt.Errorf("variation %s (%s): have %s, need %s: %w",
				delta.VariationID, productName, balanceBefore.String(), delta.Quantity.Neg().String(), apperrors.ErrInsufficientStock)
		}

		movement := domain.StockMovement{
			MovementID:    uuid.NewString(),
			ProductID:     productID,
			VariationID:   delta.VariationID,
			ProductName:   productName,
			ProductSKU:    productSKU,
			MovementType:  delta.MovementType,
			Quantity:      delta.Quantity,
			BalanceBefore: balanceBefore,
			BalanceAfter:  balanceAfter,
			ReferenceType: delta.Reference,
			ReferenceID:   delta.ReferenceID,
			Reason:        delta.Reason,
			Notes:         delta.Notes,
			RecordedBy:    delta.RecordedBy,
			MovementAt:    now,
		}
		mm := mapping.ToModelMovement(movement)
		_, err = tx.Exec(ctx, `
			INSERT INTO stock_movements (
				movement_id, product_id, variation_id, product_name, product_sku,
				movement_type, quantity, balance_before, balance_after,
				reference_type, reference_id, reason, notes, recorded_by, movement_at
			)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
		`,
			mm.MovementID,
			mm.ProductID,
			mm.VariationID,
			mm.ProductName,
			mm.ProductSKU,
			mm.MovementType,
			mm.Quantity,
			mm.BalanceBefore,
			mm.BalanceAfter,
			mm.ReferenceType,
			mm.ReferenceID,
			mm.Reason,
			mm.Notes,
			mm.RecordedBy,
			mm.MovementAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to insert stock movement for variation "+delta.VariationID, err)
		}

		_, err = tx.Exec(ctx, `
			UPDATE product_variations
			SET stock_quantity = $2, last_updated_at = $3, last_updated_by = $4
			WHERE variation_id = $1;
		`, delta.VariationID, balanceAfter, now, delta.RecordedBy)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to update stock for variation "+delta.VariationID, err)
		}

		// Recompute the parent aggregate from the active variations and
		// reclassify its stock status.
		var aggregate decimal.Decimal
		err = tx.QueryRow(ctx, `
			SELECT COALESCE(SUM(stock_quantity), 0)
			FROM product_variations
			WHERE product_id = $1 AND is_active = TRUE;
		`, productID).Scan(&aggregate)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to aggregate stock for product "+productID, err)
		}

		status := domain.ClassifyStock(aggregate, lowStockThresh)
		_, err = tx.Exec(ctx, `
			UPDATE products
			SET stock_quantity = $2, stock_status = $3, last_updated_at = $4, last_updated_by = $5
			WHERE product_id = $1;
		`, productID, aggregate, string(status), now, delta.RecordedBy)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to update aggregate stock for product "+productID, err)
		}

		movements = append(movements, movement)
	}

	return movements, nil
}

const movementColumns = `movement_id, product_id, variation_id, product_name, product_sku,
	movement_type, quantity, balance_before, balance_after, reference_type, reference_id,
	reason, notes, recorded_by, movement_at`

func scanMovement(row pgx.Row) (models.StockMovement, error) {
	var m models.StockMovement
	err := row.Scan(
		&m.MovementID,
		&m.ProductID,
		&m.VariationID,
		&m.ProductName,
		&m.ProductSKU,
		&m.MovementType,
		&m.Quantity,
		&m.BalanceBefore,
		&m.BalanceAfter,
		&m.ReferenceType,
		&m.ReferenceID,
		&m.Reason,
		&m.Notes,
		&m.RecordedBy,
		&m.MovementAt,
	)
	return m, err
}

// FindMovementsByReference retrieves the movements of one document, oldest first.
func (r *PgxProductRepository) FindMovementsByReference(ctx context.Context, refType domain.ReferenceType, refID string) ([]domain.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements
		WHERE reference_type = $1 AND reference_id = $2
		ORDER BY movement_at, movement_id;
	`
	rows, err := r.Pool.Query(ctx, query, string(refType), refID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query movements for "+string(refType)+" "+refID, err)
	}
	defer rows.Close()

	movements := []domain.StockMovement{}
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan movement row", err)
		}
		movements = append(movements, mapping.ToDomainMovement(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating movement rows", err)
	}

	return movements, nil
}

// ListMovementsByVariation retrieves a variation's movement history newest
// first, using token-based pagination on (movement_at, movement_id).
func (r *PgxProductRepository) ListMovementsByVariation(ctx context.Context, variationID string, limit int, nextToken *string) ([]domain.StockMovement, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + movementColumns + ` FROM stock_movements WHERE variation_id = $1`
	orderByClause := `ORDER BY movement_at DESC, movement_id DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{variationID}

	if nextToken != nil && *nextToken != "" {
		fields, decodeErr := pagination.DecodeMultiFieldToken(*nextToken)
		if decodeErr != nil || len(fields) != 2 {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		lastMovementAt, parseErr := time.Parse(time.RFC3339Nano, fields[0])
		if parseErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", parseErr)
		}
		cursorClause := `AND (movement_at, movement_id) < ($2, $3)`
		args = append(args, lastMovementAt, fields[1])

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query movements for variation "+variationID, err)
	}
	defer rows.Close()

	modelMovements := make([]models.StockMovement, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanMovement(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan movement row for variation "+variationID, scanErr)
		}
		modelMovements = append(modelMovements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating movement rows for variation "+variationID, err)
	}

	var nextTokenVal *string
	results := modelMovements
	if len(modelMovements) > limit {
		last := modelMovements[limit-1]
		token := pagination.EncodeMultiFieldToken(last.MovementAt.Format(time.RFC3339Nano), last.MovementID)
		nextTokenVal = &token
		results = modelMovements[:limit]
	}

	movements := make([]domain.StockMovement, len(results))
	for i, m := range results {
		movements[i] = mapping.ToDomainMovement(m)
	}
	return movements, nextTokenVal, nil
}
