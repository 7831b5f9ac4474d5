package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/twinxhq/twinx-pos/internal/core/domain"
	portsrepo "github.com/twinxhq/twinx-pos/internal/core/ports/repositories"
	portssvc "github.com/twinxhq/twinx-pos/internal/core/ports/services"
	"github.com/twinxhq/twinx-pos/internal/platform/config"
)

var ErrAccountsNotConfigured = errors.New("chart-of-accounts codes are not configured")

// ledgerService builds and reads double-entry postings. The account mapping
// from payment method to chart-of-accounts code lives here and nowhere else.
type ledgerService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
	accounts   config.AccountingConfig
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, accounts config.AccountingConfig) portssvc.LedgerSvcFacade {
	return &ledgerService{
		ledgerRepo: ledgerRepo,
		accounts:   accounts,
	}
}

// Ensure ledgerService implements the portssvc.LedgerSvcFacade interface
var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// debitAccountFor maps a payment method onto the account debited with the
// sale total. Cash and card both hit the cash account; card settlement is
// out of scope for the drawer, credit sales sit on the same code until a
// receivables account is configured.
func (s *ledgerService) debitAccountFor(method domain.PaymentMethod) string {
	switch method {
	case domain.PaymentCash, domain.PaymentCard, domain.PaymentCredit:
		return s.accounts.CashAccount
	default:
		return s.accounts.CashAccount
	}
}

func (s *ledgerService) checkConfigured() error {
	if s.accounts.CashAccount == "" || s.accounts.RevenueAccount == "" ||
		s.accounts.COGSAccount == "" || s.accounts.InventoryAccount == "" {
		return ErrAccountsNotConfigured
	}
	return nil
}

// totalCost sums quantity times unit cost over the sale's items.
func totalCost(items []domain.SaleItem) decimal.Decimal {
	cost := decimal.Zero
	for _, item := range items {
		cost = cost.Add(item.UnitCost.Mul(item.Quantity))
	}
	return cost.Round(2)
}

// EntriesForSale builds the balanced revenue pair and, when the items carry
// cost, the COGS pair for a completed sale. Entry numbers derive from the
// invoice number: SL-<invoice> for revenue, SL-<invoice>-COGS for cost.
func (s *ledgerService) EntriesForSale(ctx context.Context, sale *domain.Sale) ([]domain.LedgerEntry, error) {
	if err := s.checkConfigured(); err != nil {
		return nil, err
	}

	now := time.Now()
	revenueNumber := "SL-" + sale.InvoiceNo
	entries := []domain.LedgerEntry{
		{
			EntryID:         uuid.NewString(),
			EntryNumber:     revenueNumber,
			EntryDate:       sale.InvoiceDate,
			Description:     "Sale " + sale.InvoiceNo,
			AccountCode:     s.debitAccountFor(sale.PaymentMethod),
			DebitAmount:     sale.GrandTotal,
			CreditAmount:    decimal.Zero,
			TransactionID:   sale.SaleID,
			TransactionType: domain.LedgerSale,
			PostedBy:        sale.CashierID,
			CreatedAt:       now,
		},
		{
			EntryID:         uuid.NewString(),
			EntryNumber:     revenueNumber,
			EntryDate:       sale.InvoiceDate,
			Description:     "Sale " + sale.InvoiceNo,
			AccountCode:     s.accounts.RevenueAccount,
			DebitAmount:     decimal.Zero,
			CreditAmount:    sale.GrandTotal,
			TransactionID:   sale.SaleID,
			TransactionType: domain.LedgerSale,
			PostedBy:        sale.CashierID,
			CreatedAt:       now,
		},
	}

	cost := totalCost(sale.Items)
	if cost.IsPositive() {
		cogsNumber := revenueNumber + "-COGS"
		entries = append(entries,
			domain.LedgerEntry{
				EntryID:         uuid.NewString(),
				EntryNumber:     cogsNumber,
				EntryDate:       sale.InvoiceDate,
				Description:     "COGS for sale " + sale.InvoiceNo,
				AccountCode:     s.accounts.COGSAccount,
				DebitAmount:     cost,
				CreditAmount:    decimal.Zero,
				TransactionID:   sale.SaleID,
				TransactionType: domain.LedgerSale,
				PostedBy:        sale.CashierID,
				CreatedAt:       now,
			},
			domain.LedgerEntry{
				EntryID:         uuid.NewString(),
				EntryNumber:     cogsNumber,
				EntryDate:       sale.InvoiceDate,
				Description:     "COGS for sale " + sale.InvoiceNo,
				AccountCode:     s.accounts.InventoryAccount,
				DebitAmount:     decimal.Zero,
				CreditAmount:    cost,
				TransactionID:   sale.SaleID,
				TransactionType: domain.LedgerSale,
				PostedBy:        sale.CashierID,
				CreatedAt:       now,
			},
		)
	}

	return entries, nil
}

// EntriesForRefund builds the reversing pairs for a refund sale: revenue is
// debited back and cash credited out, inventory debited back and COGS
// credited. The refund sale carries negative totals, so the absolute values
// are posted.
func (s *ledgerService) EntriesForRefund(ctx context.Context, refund *domain.Sale) ([]domain.LedgerEntry, error) {
	if err := s.checkConfigured(); err != nil {
		return nil, err
	}

	now := time.Now()
	refundAmount := refund.GrandTotal.Abs()
	revenueNumber := "SL-" + refund.InvoiceNo
	entries := []domain.LedgerEntry{
		{
			EntryID:         uuid.NewString(),
			EntryNumber:     revenueNumber,
			EntryDate:       refund.InvoiceDate,
			Description:     "Refund " + refund.InvoiceNo,
			AccountCode:     s.accounts.RevenueAccount,
			DebitAmount:     refundAmount,
			CreditAmount:    decimal.Zero,
			TransactionID:   refund.SaleID,
			TransactionType: domain.LedgerRefund,
			PostedBy:        refund.CashierID,
			CreatedAt:       now,
		},
		{
			EntryID:         uuid.NewString(),
			EntryNumber:     revenueNumber,
			EntryDate:       refund.InvoiceDate,
			Description:     "Refund " + refund.InvoiceNo,
			AccountCode:     s.debitAccountFor(refund.PaymentMethod),
			DebitAmount:     decimal.Zero,
			CreditAmount:    refundAmount,
			TransactionID:   refund.SaleID,
			TransactionType: domain.LedgerRefund,
			PostedBy:        refund.CashierID,
			CreatedAt:       now,
		},
	}

	cost := decimal.Zero
	for _, item := range refund.Items {
		cost = cost.Add(item.UnitCost.Mul(item.Quantity.Abs()))
	}
	cost = cost.Round(2)
	if cost.IsPositive() {
		cogsNumber := revenueNumber + "-COGS"
		entries = append(entries,
			domain.LedgerEntry{
				EntryID:         uuid.NewString(),
				EntryNumber:     cogsNumber,
				EntryDate:       refund.InvoiceDate,
				Description:     "Inventory return for refund " + refund.InvoiceNo,
				AccountCode:     s.accounts.InventoryAccount,
				DebitAmount:     cost,
				CreditAmount:    decimal.Zero,
				TransactionID:   refund.SaleID,
				TransactionType: domain.LedgerRefund,
				PostedBy:        refund.CashierID,
				CreatedAt:       now,
			},
			domain.LedgerEntry{
				EntryID:         uuid.NewString(),
				EntryNumber:     cogsNumber,
				EntryDate:       refund.InvoiceDate,
				Description:     "Inventory return for refund " + refund.InvoiceNo,
				AccountCode:     s.accounts.COGSAccount,
				DebitAmount:     decimal.Zero,
				CreditAmount:    cost,
				TransactionID:   refund.SaleID,
				TransactionType: domain.LedgerRefund,
				PostedBy:        refund.CashierID,
				CreatedAt:       now,
			},
		)
	}

	return entries, nil
}

// GetEntriesByTransaction retrieves the postings of one sale or refund.
func (s *ledgerService) GetEntriesByTransaction(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error) {
	return s.ledgerRepo.FindEntriesByTransactionID(ctx, transactionID)
}

// GetTrialBalance aggregates debits and credits per account over a range.
func (s *ledgerService) GetTrialBalance(ctx context.Context, from, to time.Time) ([]domain.TrialBalanceRow, error) {
	return s.ledgerRepo.GetTrialBalance(ctx, from, to)
}
