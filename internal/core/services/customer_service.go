package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/twinxhq/twinx-pos/internal/core/domain"
	portsrepo "github.com/twinxhq/twinx-pos/internal/core/ports/repositories"
	portssvc "github.com/twinxhq/twinx-pos/internal/core/ports/services"
	"github.com/twinxhq/twinx-pos/internal/dto"
	"github.com/twinxhq/twinx-pos/internal/middleware"
)

// customerService manages customer profiles and the loyalty accrual path.
type customerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
	auditSvc     portssvc.AuditSvcFacade
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade, auditSvc portssvc.AuditSvcFacade) portssvc.CustomerSvcFacade {
	return &customerService{
		customerRepo: customerRepo,
		auditSvc:     auditSvc,
	}
}

// Ensure customerService implements the portssvc.CustomerSvcFacade interface
var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// CreateCustomer registers a new customer. The customer code defaults to a
// short unique tag when not supplied.
func (s *customerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	customer := &domain.Customer{
		CustomerID:        uuid.NewString(),
		CustomerCode:      fmt.Sprintf("C-%s", now.Format("20060102-150405")),
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		CompanyName:       req.CompanyName,
		Phone:             req.Phone,
		Email:             req.Email,
		LoyaltyCardNumber: req.LoyaltyCardNumber,
		TotalSpent:        decimal.Zero,
		IsActive:          true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		logger.Error("Failed to create customer", slog.String("error", err.Error()))
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.AuditEvent{
		ActorID:    &creatorID,
		Action:     "create_customer",
		Module:     "customers",
		EntityType: "customer",
		EntityID:   customer.CustomerID,
		Status:     domain.AuditSuccess,
		Details:    customer.FullName(),
	})
	return customer, nil
}

// GetCustomerByID retrieves one customer.
func (s *customerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	return s.customerRepo.FindCustomerByID(ctx, customerID)
}

// ListCustomers retrieves active customers, optionally filtered by search.
func (s *customerService) ListCustomers(ctx context.Context, params dto.ListCustomersParams) ([]domain.Customer, error) {
	return s.customerRepo.ListCustomers(ctx, params.Search, params.Limit, params.Offset)
}

// UpdateCustomer updates profile fields of a customer.
func (s *customerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, updaterID string) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		customer.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		customer.LastName = *req.LastName
	}
	if req.CompanyName != nil {
		customer.CompanyName = *req.CompanyName
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.LoyaltyCardNumber != nil {
		customer.LoyaltyCardNumber = *req.LoyaltyCardNumber
	}
	if req.IsActive != nil {
		customer.IsActive = *req.IsActive
	}
	customer.LastUpdatedAt = time.Now()
	customer.LastUpdatedBy = updaterID

	if err := s.customerRepo.UpdateCustomer(ctx, customer); err != nil {
		return nil, err
	}

	s.auditSvc.Record(ctx, domain.AuditEvent{
		ActorID:    &updaterID,
		Action:     "update_customer",
		Module:     "customers",
		EntityType: "customer",
		EntityID:   customerID,
		Status:     domain.AuditSuccess,
	})
	return customer, nil
}

// AccrueLoyalty applies the post-sale loyalty and spend counter update.
// Callers treat a failure as best-effort; the sale is already committed.
func (s *customerService) AccrueLoyalty(ctx context.Context, accrual domain.LoyaltyAccrual) error {
	if accrual.PointsEarned <= 0 {
		return nil
	}
	return s.customerRepo.ApplyLoyalty(ctx, accrual)
}
