package services

import (
	"context"

	"github.com/twinxhq/twinx-pos/internal/core/domain"
	"github.com/twinxhq/twinx-pos/internal/dto"
)

// CustomerSvcFacade defines customer management and loyalty accrual.
type CustomerSvcFacade interface {
	// CreateCustomer registers a new customer.
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorID string) (*domain.Customer, error)

	// GetCustomerByID retrieves one customer.
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves active customers, optionally filtered by search.
	ListCustomers(ctx context.Context, params dto.ListCustomersParams) ([]domain.Customer, error)

	// UpdateCustomer updates profile fields of a customer.
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, updaterID string) (*domain.Customer, error)

	// AccrueLoyalty applies the post-sale loyalty and spend counter update.
	// Best-effort: callers log failures and move on.
	AccrueLoyalty(ctx context.Context, accrual domain.LoyaltyAccrual) error
}
