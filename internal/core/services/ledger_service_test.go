package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/twinxhq/twinx-pos/internal/core/domain"
	portssvc "github.com/twinxhq/twinx-pos/internal/core/ports/services"
	"github.com/twinxhq/twinx-pos/internal/core/services"
	"github.com/twinxhq/twinx-pos/internal/platform/config"
)

// --- Mock LedgerRepository ---
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindEntriesByTransactionID(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListEntriesByAccount(ctx context.Context, accountCode string, from, to time.Time) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, accountCode, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerRepository) GetTrialBalance(ctx context.Context, from, to time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

func (m *MockLedgerRepository) SaveEntriesInTx(ctx context.Context, tx pgx.Tx, entries []domain.LedgerEntry) error {
	args := m.Called(ctx, tx, entries)
	return args.Error(0)
}

var testAccounts = config.AccountingConfig{
	CashAccount:      "1010",
	RevenueAccount:   "4010",
	COGSAccount:      "5010",
	InventoryAccount: "1210",
}

// --- Test Suite ---
type LedgerServiceTestSuite struct {
	suite.Suite
	mockRepo *MockLedgerRepository
	service  portssvc.LedgerSvcFacade
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockLedgerRepository)
	suite.service = services.NewLedgerService(suite.mockRepo, testAccounts)
}

func (suite *LedgerServiceTestSuite) saleFixture() *domain.Sale {
	return &domain.Sale{
		SaleID:        uuid.NewString(),
		InvoiceNo:     "20260901-0001",
		InvoiceDate:   time.Now(),
		CashierID:     uuid.NewString(),
		GrandTotal:    decimal.RequireFromString("45.98"),
		PaymentMethod: domain.PaymentCash,
		Items: []domain.SaleItem{
			{Quantity: decimal.NewFromInt(2), UnitCost: decimal.RequireFromString("10.25")},
		},
	}
}

func (suite *LedgerServiceTestSuite) TestEntriesForSale_RevenueAndCOGSPairs() {
	sale := suite.saleFixture()

	entries, err := suite.service.EntriesForSale(context.Background(), sale)

	suite.Require().NoError(err)
	suite.Require().Len(entries, 4)
	suite.NoError(domain.ValidateLedgerBalance(entries))

	suite.Equal("SL-20260901-0001", entries[0].EntryNumber)
	suite.Equal("1010", entries[0].AccountCode)
	suite.True(entries[0].DebitAmount.Equal(sale.GrandTotal))

	suite.Equal("4010", entries[1].AccountCode)
	suite.True(entries[1].CreditAmount.Equal(sale.GrandTotal))

	suite.Equal("SL-20260901-0001-COGS", entries[2].EntryNumber)
	suite.Equal("5010", entries[2].AccountCode)
	suite.True(entries[2].DebitAmount.Equal(decimal.RequireFromString("20.50")))

	suite.Equal("1210", entries[3].AccountCode)
	suite.True(entries[3].CreditAmount.Equal(decimal.RequireFromString("20.50")))

	for _, e := range entries {
		suite.Equal(sale.SaleID, e.TransactionID)
		suite.Equal(domain.LedgerSale, e.TransactionType)
		suite.Equal(sale.CashierID, e.PostedBy)
	}
}

func (suite *LedgerServiceTestSuite) TestEntriesForSale_NoCOGSWhenCostIsZero() {
	sale := suite.saleFixture()
	sale.Items = []domain.SaleItem{
		{Quantity: decimal.NewFromInt(2), UnitCost: decimal.Zero},
	}

	entries, err := suite.service.EntriesForSale(context.Background(), sale)

	suite.Require().NoError(err)
	suite.Len(entries, 2)
	suite.NoError(domain.ValidateLedgerBalance(entries))
}

func (suite *LedgerServiceTestSuite) TestEntriesForSale_RejectsMissingAccounts() {
	svc := services.NewLedgerService(suite.mockRepo, config.AccountingConfig{})

	_, err := svc.EntriesForSale(context.Background(), suite.saleFixture())

	suite.ErrorIs(err, services.ErrAccountsNotConfigured)
}

func (suite *LedgerServiceTestSuite) TestEntriesForRefund_ReversesSaleEntries() {
	refund := suite.saleFixture()
	refund.InvoiceNo = "REF-20260901-0001-103000"
	refund.GrandTotal = decimal.RequireFromString("-22.99")
	refund.PaymentMethod = domain.PaymentCash
	refund.Items = []domain.SaleItem{
		{Quantity: decimal.NewFromInt(-1), UnitCost: decimal.RequireFromString("10.25")},
	}

	entries, err := suite.service.EntriesForRefund(context.Background(), refund)

	suite.Require().NoError(err)
	suite.Require().Len(entries, 4)
	suite.NoError(domain.ValidateLedgerBalance(entries))

	// Revenue debited back, cash credited out, positive amounts.
	suite.Equal("4010", entries[0].AccountCode)
	suite.True(entries[0].DebitAmount.Equal(decimal.RequireFromString("22.99")))
	suite.Equal("1010", entries[1].AccountCode)
	suite.True(entries[1].CreditAmount.Equal(decimal.RequireFromString("22.99")))

	// Inventory comes back, COGS reverses.
	suite.Equal("1210", entries[2].AccountCode)
	suite.True(entries[2].DebitAmount.Equal(decimal.RequireFromString("10.25")))
	suite.Equal("5010", entries[3].AccountCode)
	suite.True(entries[3].CreditAmount.Equal(decimal.RequireFromString("10.25")))

	for _, e := range entries {
		suite.Equal(domain.LedgerRefund, e.TransactionType)
	}
}

func (suite *LedgerServiceTestSuite) TestGetEntriesByTransaction_Passthrough() {
	ctx := context.Background()
	saleID := uuid.NewString()
	expected := []domain.LedgerEntry{{EntryID: uuid.NewString(), TransactionID: saleID}}

	suite.mockRepo.On("FindEntriesByTransactionID", ctx, saleID).Return(expected, nil).Once()

	entries, err := suite.service.GetEntriesByTransaction(ctx, saleID)

	suite.Require().NoError(err)
	suite.Equal(expected, entries)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
