package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Customer is the row shape of the customers table.
type Customer struct {
	CustomerID          string          `db:"customer_id"`
	CustomerCode        string          `db:"customer_code"`
	FirstName           string          `db:"first_name"`
	LastName            string          `db:"last_name"`
	CompanyName         string          `db:"company_name"`
	Phone               string          `db:"phone"`
	Email               string          `db:"email"`
	LoyaltyCardNumber   string          `db:"loyalty_card_number"`
	LoyaltyPoints       int64           `db:"loyalty_points"`
	LoyaltyPointsEarned int64           `db:"loyalty_points_earned"`
	TotalSpent          decimal.Decimal `db:"total_spent"`
	TotalPurchases      int64           `db:"total_purchases"`
	LastPurchaseAt      sql.NullTime    `db:"last_purchase_at"`
	IsActive            bool            `db:"is_active"`
	DeletedAt           sql.NullTime    `db:"deleted_at"`
	AuditFields
}
