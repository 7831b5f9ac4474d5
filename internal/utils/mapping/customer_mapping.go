package mapping

import (
	"github.com/twinxhq/twinx-pos/internal/core/domain"
	"github.com/twinxhq/twinx-pos/internal/models"
)

// ToModelCustomer converts a domain Customer to a model Customer
func ToModelCustomer(d domain.Customer) models.Customer {
	m := models.Customer{
		CustomerID:          d.CustomerID,
		CustomerCode:        d.CustomerCode,
		FirstName:           d.FirstName,
		LastName:            d.LastName,
		CompanyName:         d.CompanyName,
		Phone:               d.Phone,
		Email:               d.Email,
		LoyaltyCardNumber:   d.LoyaltyCardNumber,
		LoyaltyPoints:       d.LoyaltyPoints,
		LoyaltyPointsEarned: d.LoyaltyPointsEarned,
		TotalSpent:          d.TotalSpent,
		TotalPurchases:      d.TotalPurchases,
		IsActive:            d.IsActive,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
	if d.LastPurchaseAt != nil {
		m.LastPurchaseAt.Time = *d.LastPurchaseAt
		m.LastPurchaseAt.Valid = true
	}
	return m
}

// ToDomainCustomer converts a model Customer to a domain Customer
func ToDomainCustomer(m models.Customer) domain.Customer {
	d := domain.Customer{
		CustomerID:          m.CustomerID,
		CustomerCode:        m.CustomerCode,
		FirstName:           m.FirstName,
		LastName:            m.LastName,
		CompanyName:         m.CompanyName,
		Phone:               m.Phone,
		Email:               m.Email,
		LoyaltyCardNumber:   m.LoyaltyCardNumber,
		LoyaltyPoints:       m.LoyaltyPoints,
		LoyaltyPointsEarned: m.LoyaltyPointsEarned,
		TotalSpent:          m.TotalSpent,
		TotalPurchases:      m.TotalPurchases,
		IsActive:            m.IsActive,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
	if m.LastPurchaseAt.Valid {
		t := m.LastPurchaseAt.Time
		d.LastPurchaseAt = &t
	}
	return d
}
