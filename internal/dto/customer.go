package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/twinxhq/twinx-pos/internal/core/domain"
)

// CreateCustomerRequest defines the data needed to register a customer.
type CreateCustomerRequest struct {
	FirstName         string `json:"firstName" binding:"required"`
	LastName          string `json:"lastName"`
	CompanyName       string `json:"companyName"`
	Phone             string `json:"phone"`
	Email             string `json:"email" binding:"omitempty,email"`
	LoyaltyCardNumber string `json:"loyaltyCardNumber"`
}

// UpdateCustomerRequest defines the data allowed for updating a customer.
// Loyalty counters are not updatable here; they only move through sales.
type UpdateCustomerRequest struct {
	FirstName         *string `json:"firstName"`
	LastName          *string `json:"lastName"`
	CompanyName       *string `json:"companyName"`
	Phone             *string `json:"phone"`
	Email             *string `json:"email" binding:"omitempty,email"`
	LoyaltyCardNumber *string `json:"loyaltyCardNumber"`
	IsActive          *bool   `json:"isActive"`
}

// ListCustomersParams defines query parameters for listing customers.
type ListCustomersParams struct {
	Search string `form:"search"`
	Limit  int    `form:"limit,default=20"`
	Offset int    `form:"offset,default=0"`
}

// CustomerResponse defines the data returned for a customer.
type CustomerResponse struct {
	CustomerID          string          `json:"customerID"`
	CustomerCode        string          `json:"customerCode,omitempty"`
	FirstName           string          `json:"firstName"`
	LastName            string          `json:"lastName"`
	CompanyName         string          `json:"companyName,omitempty"`
	Phone               string          `json:"phone,omitempty"`
	Email               string          `json:"email,omitempty"`
	LoyaltyCardNumber   string          `json:"loyaltyCardNumber,omitempty"`
	LoyaltyPoints       int64           `json:"loyaltyPoints"`
	LoyaltyPointsEarned int64           `json:"loyaltyPointsEarned"`
	TotalSpent          decimal.Decimal `json:"totalSpent"`
	TotalPurchases      int64           `json:"totalPurchases"`
	LastPurchaseAt      *time.Time      `json:"lastPurchaseAt,omitempty"`
	IsActive            bool            `json:"isActive"`
	CreatedAt           time.Time       `json:"createdAt"`
}

// ToCustomerResponse converts a domain.Customer to CustomerResponse DTO.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID:          c.CustomerID,
		CustomerCode:        c.CustomerCode,
		FirstName:           c.FirstName,
		LastName:            c.LastName,
		CompanyName:         c.CompanyName,
		Phone:               c.Phone,
		Email:               c.Email,
		LoyaltyCardNumber:   c.LoyaltyCardNumber,
		LoyaltyPoints:       c.LoyaltyPoints,
		LoyaltyPointsEarned: c.LoyaltyPointsEarned,
		TotalSpent:          c.TotalSpent,
		TotalPurchases:      c.TotalPurchases,
		LastPurchaseAt:      c.LastPurchaseAt,
		IsActive:            c.IsActive,
		CreatedAt:           c.CreatedAt,
	}
}

// ToCustomerResponses converts a slice of domain.Customer to DTOs.
func ToCustomerResponses(customers []domain.Customer) []CustomerResponse {
	responses := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		responses[i] = ToCustomerResponse(&c)
	}
	return responses
}
