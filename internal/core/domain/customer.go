package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer holds a loyalty balance and aggregate spend statistics. The
// counters are mutated incrementally on each completed sale, never replaced.
type Customer struct {
	CustomerID          string          `json:"customerID"` // Primary Key (UUID)
	CustomerCode        string          `json:"customerCode"`
	FirstName           string          `json:"firstName"`
	LastName            string          `json:"lastName"`
	CompanyName         string          `json:"companyName,omitempty"`
	Phone               string          `json:"phone,omitempty"`
	Email               string          `json:"email,omitempty"`
	LoyaltyCardNumber   string          `json:"loyaltyCardNumber,omitempty"`
	LoyaltyPoints       int64           `json:"loyaltyPoints"`
	LoyaltyPointsEarned int64           `json:"loyaltyPointsEarned"` // Lifetime total
	TotalSpent          decimal.Decimal `json:"totalSpent"`
	TotalPurchases      int64           `json:"totalPurchases"`
	LastPurchaseAt      *time.Time      `json:"lastPurchaseAt,omitempty"`
	IsActive            bool            `json:"isActive"`
	AuditFields
}

// FullName returns the display name, falling back to the company name.
func (c Customer) FullName() string {
	name := c.FirstName
	if c.LastName != "" {
		if name != "" {
			name += " "
		}
		name += c.LastName
	}
	if name == "" {
		name = c.CompanyName
	}
	return name
}

// LoyaltyAccrual is the best-effort counter update applied after a sale
// commits.
type LoyaltyAccrual struct {
	CustomerID   string
	PointsEarned int64
	AmountSpent  decimal.Decimal
	PurchasedAt  time.Time
}
