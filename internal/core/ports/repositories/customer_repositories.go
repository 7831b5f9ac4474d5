package repositories

import (
	"context"

	"github.com/twinxhq/twinx-pos/internal/core/domain"
)

// CustomerReader defines read operations for customer data
type CustomerReader interface {
	// FindCustomerByID retrieves a customer by their unique identifier.
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)

	// FindCustomerByPhone retrieves a customer by phone number (till lookup).
	FindCustomerByPhone(ctx context.Context, phone string) (*domain.Customer, error)

	// ListCustomers retrieves active customers, optionally filtered by a search
	// term matched against name, phone and email.
	ListCustomers(ctx context.Context, search string, limit int, offset int) ([]domain.Customer, error)
}

// CustomerWriter defines write operations for customer data
type CustomerWriter interface {
	// SaveCustomer persists a new customer.
	SaveCustomer(ctx context.Context, customer *domain.Customer) error

	// UpdateCustomer updates the mutable profile fields of a customer.
	UpdateCustomer(ctx context.Context, customer *domain.Customer) error

	// ApplyLoyalty increments the loyalty balance and spend counters for a
	// purchase. Incremental update, never a blind overwrite.
	ApplyLoyalty(ctx context.Context, accrual domain.LoyaltyAccrual) error
}

// CustomerRepositoryFacade combines all customer repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}
