package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/twinxhq/twinx-pos/internal/apperrors"
	"github.com/twinxhq/twinx-pos/internal/core/domain"
	portsrepo "github.com/twinxhq/twinx-pos/internal/core/ports/repositories"
	"github.com/twinxhq/twinx-pos/internal/models"
	"github.com/twinxhq/twinx-pos/internal/utils/mapping"
)

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customer data
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCustomerRepository implements portsrepo.CustomerRepositoryFacade
var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

const customerColumns = `customer_id, customer_code, first_name, last_name, company_name, phone, email,
	loyalty_card_number, loyalty_points, loyalty_points_earned, total_spent, total_purchases,
	last_purchase_at, is_active, deleted_at, created_at, created_by, last_updated_at, last_updated_by`

func scanCustomer(row pgx.Row) (models.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID,
		&m.CustomerCode,
		&m.FirstName,
		&m.LastName,
		&m.CompanyName,
		&m.Phone,
		&m.Email,
		&m.LoyaltyCardNumber,
		&m.LoyaltyPoints,
		&m.LoyaltyPointsEarned,
		&m.TotalSpent,
		&m.TotalPurchases,
		&m.LastPurchaseAt,
		&m.IsActive,
		&m.DeletedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCustomer persists a new customer.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer *domain.Customer) error {
	m := mapping.ToModelCustomer(*customer)
	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CustomerID,
		m.CustomerCode,
		m.FirstName,
		m.LastName,
		m.CompanyName,
		m.Phone,
		m.Email,
		m.LoyaltyCardNumber,
		m.LoyaltyPoints,
		m.LoyaltyPointsEarned,
		m.TotalSpent,
		m.TotalPurchases,
		m.LastPurchaseAt,
		m.IsActive,
		m.DeletedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("customer with this phone or code already exists: %w", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert customer "+m.CustomerID, err)
	}

	return nil
}

// FindCustomerByID retrieves a customer by their unique identifier.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1 AND deleted_at IS NULL;`
	m, err := scanCustomer(r.Pool.QueryRow(ctx, query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find customer by ID "+customerID, err)
	}

	customer := mapping.ToDomainCustomer(m)
	return &customer, nil
}

// FindCustomerByPhone retrieves a customer by phone number.
func (r *PgxCustomerRepository) FindCustomerByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE phone = $1 AND deleted_at IS NULL;`
	m, err := scanCustomer(r.Pool.QueryRow(ctx, query, phone))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find customer by phone", err)
	}

	customer := mapping.ToDomainCustomer(m)
	return &customer, nil
}

// ListCustomers retrieves active customers, optionally filtered by a search
// term matched against name, phone and email.
func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, search string, limit int, offset int) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = 50
	}

	baseQuery := `SELECT ` + customerColumns + ` FROM customers WHERE deleted_at IS NULL`
	args := []interface{}{}
	if search != "" {
		args = append(args, "%"+search+"%")
		n := strconv.Itoa(len(args))
		baseQuery += ` AND (first_name ILIKE $` + n + ` OR last_name ILIKE $` + n +
			` OR company_name ILIKE $` + n + ` OR phone ILIKE $` + n + ` OR email ILIKE $` + n + `)`
	}
	args = append(args, limit, offset)
	query := baseQuery + ` ORDER BY first_name, last_name LIMIT $` + strconv.Itoa(len(args)-1) +
		` OFFSET $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query customers", err)
	}
	defer rows.Close()

	customers := []domain.Customer{}
	for rows.Next() {
		m, err := scanCustomer(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan customer row", err)
		}
		customers = append(customers, mapping.ToDomainCustomer(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating customer rows", err)
	}

	return customers, nil
}

// UpdateCustomer updates the mutable profile fields of a customer. Loyalty
// counters are deliberately excluded; ApplyLoyalty owns them.
func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer *domain.Customer) error {
	m := mapping.ToModelCustomer(*customer)
	query := `
		UPDATE customers
		SET first_name = $2, last_name = $3, company_name = $4, phone = $5, email = $6,
		    loyalty_card_number = $7, is_active = $8, last_updated_at = $9, last_updated_by = $10
		WHERE customer_id = $1 AND deleted_at IS NULL;
	`
	commandTag, err := r.Pool.Exec(ctx, query,
		m.CustomerID,
		m.FirstName,
		m.LastName,
		m.CompanyName,
		m.Phone,
		m.Email,
		m.LoyaltyCardNumber,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update customer "+m.CustomerID, err)
	}
	if commandTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("customer " + m.CustomerID)
	}

	return nil
}

// ApplyLoyalty increments the loyalty and spend counters for a purchase in a
// single statement, so two terminals crediting the same customer never lose
// an update.
func (r *PgxCustomerRepository) ApplyLoyalty(ctx context.Context, accrual domain.LoyaltyAccrual) error {
	query := `
		UPDATE customers
		SET loyalty_points = loyalty_points + $2,
		    loyalty_points_earned = loyalty_points_earned + $2,
		    total_spent = total_spent + $3,
		    total_purchases = total_purchases + 1,
		    last_purchase_at = $4
		WHERE customer_id = $1 AND deleted_at IS NULL;
	`
	commandTag, err := r.Pool.Exec(ctx, query,
		accrual.CustomerID,
		accrual.PointsEarned,
		accrual.AmountSpent,
		accrual.PurchasedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to apply loyalty for customer "+accrual.CustomerID, err)
	}
	if commandTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("customer " + accrual.CustomerID)
	}

	return nil
}
