package services

import (
	"context"

	"github.com/twinxhq/twinx-pos/internal/dto"
)

// SaleSvcFacade defines the checkout and refund orchestration.
type SaleSvcFacade interface {
	// ProcessSale runs the full checkout: cart validation, totals, atomic
	// persistence (invoice number, header, items, stock decrements, ledger
	// postings), then best-effort loyalty and shift updates and receipt
	// assembly.
	ProcessSale(ctx context.Context, req dto.ProcessSaleRequest, cashierID string) (*dto.ProcessSaleResponse, error)

	// GetSaleDetails retrieves a sale with its items and stock movements.
	GetSaleDetails(ctx context.Context, saleID string) (*dto.GetSaleDetailsResponse, error)

	// ListSales retrieves a paginated sale history.
	ListSales(ctx context.Context, params dto.ListSalesParams) (*dto.ListSalesResponse, error)

	// ProcessRefund refunds (part of) a sale: returnable-quantity checks,
	// proportional amounts, linked refund sale, stock restoration and
	// reversing ledger entries, atomically.
	ProcessRefund(ctx context.Context, req dto.ProcessRefundRequest, actorID string) (*dto.ProcessSaleResponse, error)
}
