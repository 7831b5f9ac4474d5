package services_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/twinxhq/twinx-pos/internal/apperrors"
	"github.com/twinxhq/twinx-pos/internal/core/domain"
	portsrepo "github.com/twinxhq/twinx-pos/internal/core/ports/repositories"
	portssvc "github.com/twinxhq/twinx-pos/internal/core/ports/services"
	"github.com/twinxhq/twinx-pos/internal/core/services"
	"github.com/twinxhq/twinx-pos/internal/dto"
	"github.com/twinxhq/twinx-pos/internal/platform/config"
)

// --- Mock SaleRepository ---
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) FindSaleByID(ctx context.Context, saleID string) (*domain.Sale, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindSaleByInvoiceNo(ctx context.Context, invoiceNo string) (*domain.Sale, error) {
	args := m.Called(ctx, invoiceNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindItemsBySaleID(ctx context.Context, saleID string) ([]domain.SaleItem, error) {
	args := m.Called(ctx, saleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SaleItem), args.Error(1)
}

func (m *MockSaleRepository) ListSales(ctx context.Context, from, to *time.Time, limit int, nextToken *string) ([]domain.Sale, *string, error) {
	args := m.Called(ctx, from, to, limit, nextToken)
	var sales []domain.Sale
	if args.Get(0) != nil {
		sales = args.Get(0).([]domain.Sale)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return sales, token, args.Error(2)
}

func (m *MockSaleRepository) NextInvoiceNo(ctx context.Context, date time.Time) (string, error) {
	args := m.Called(ctx, date)
	return args.String(0), args.Error(1)
}

func (m *MockSaleRepository) SaveSale(ctx context.Context, sale *domain.Sale, deltas []domain.StockDelta, entries []domain.LedgerEntry) error {
	args := m.Called(ctx, sale, deltas, entries)
	return args.Error(0)
}

func (m *MockSaleRepository) SaveRefund(ctx context.Context, refund *domain.Sale, deltas []domain.StockDelta, entries []domain.LedgerEntry, app portsrepo.RefundApplication) error {
	args := m.Called(ctx, refund, deltas, entries, app)
	return args.Error(0)
}

func (m *MockSaleRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockSaleRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockSaleRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock ProductRepository ---
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindVariationByID(ctx context.Context, variationID string) (*domain.ProductVariation, error) {
	args := m.Called(ctx, variationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProductVariation), args.Error(1)
}

func (m *MockProductRepository) FindVariationsByIDs(ctx context.Context, variationIDs []string) (map[string]domain.ProductVariation, error) {
	args := m.Called(ctx, variationIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.ProductVariation), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, search string, limit int, offset int) ([]domain.Product, error) {
	args := m.Called(ctx, search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListLowStock(ctx context.Context, limit int) ([]domain.Product, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeactivateProduct(ctx context.Context, productID string, updatedBy string) error {
	args := m.Called(ctx, productID, updatedBy)
	return args.Error(0)
}

func (m *MockProductRepository) ApplyStockDeltas(ctx context.Context, deltas []domain.StockDelta) ([]domain.StockMovement, error) {
	args := m.Called(ctx, deltas)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockMovement), args.Error(1)
}

func (m *MockProductRepository) ApplyStockDeltasInTx(ctx context.Context, tx pgx.Tx, deltas []domain.StockDelta) ([]domain.StockMovement, error) {
	args := m.Called(ctx, tx, deltas)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockMovement), args.Error(1)
}

func (m *MockProductRepository) FindMovementsByReference(ctx context.Context, refType domain.ReferenceType, refID string) ([]domain.StockMovement, error) {
	args := m.Called(ctx, refType, refID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StockMovement), args.Error(1)
}

func (m *MockProductRepository) ListMovementsByVariation(ctx context.Context, variationID string, limit int, nextToken *string) ([]domain.StockMovement, *string, error) {
	args := m.Called(ctx, variationID, limit, nextToken)
	var movements []domain.StockMovement
	if args.Get(0) != nil {
		movements = args.Get(0).([]domain.StockMovement)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return movements, token, args.Error(2)
}

// --- Mock EmployeeRepository ---
type MockEmployeeRepository struct {
	mock.Mock
}

func (m *MockEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) FindEmployeeByUsername(ctx context.Context, username string) (*domain.Employee, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) ListEmployees(ctx context.Context, limit int, offset int) ([]domain.Employee, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

func (m *MockEmployeeRepository) SaveEmployee(ctx context.Context, employee *domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) UpdateEmployee(ctx context.Context, employee *domain.Employee) error {
	args := m.Called(ctx, employee)
	return args.Error(0)
}

func (m *MockEmployeeRepository) UpdatePassword(ctx context.Context, employeeID string, passwordHash string, updatedBy string) error {
	args := m.Called(ctx, employeeID, passwordHash, updatedBy)
	return args.Error(0)
}

func (m *MockEmployeeRepository) RecordLoginSuccess(ctx context.Context, employeeID string, at time.Time) error {
	args := m.Called(ctx, employeeID, at)
	return args.Error(0)
}

func (m *MockEmployeeRepository) RecordLoginFailure(ctx context.Context, employeeID string, lockAfter int) (int, error) {
	args := m.Called(ctx, employeeID, lockAfter)
	return args.Int(0), args.Error(1)
}

// --- Mock CustomerRepository ---
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindCustomerByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context, search string, limit int, offset int) ([]domain.Customer, error) {
	args := m.Called(ctx, search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer *domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) ApplyLoyalty(ctx context.Context, accrual domain.LoyaltyAccrual) error {
	args := m.Called(ctx, accrual)
	return args.Error(0)
}

// --- Mock SettingsRepository ---
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetSetting(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockSettingsRepository) GetSettings(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockSettingsRepository) UpsertSetting(ctx context.Context, key, value string, updatedBy string) error {
	args := m.Called(ctx, key, value, updatedBy)
	return args.Error(0)
}

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) EntriesForSale(ctx context.Context, sale *domain.Sale) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, sale)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) EntriesForRefund(ctx context.Context, refund *domain.Sale) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, refund)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) GetEntriesByTransaction(ctx context.Context, transactionID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockLedgerService) GetTrialBalance(ctx context.Context, from, to time.Time) ([]domain.TrialBalanceRow, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrialBalanceRow), args.Error(1)
}

// --- Mock CustomerService ---
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest, creatorID string) (*domain.Customer, error) {
	args := m.Called(ctx, req, creatorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerService) ListCustomers(ctx context.Context, params dto.ListCustomersParams) ([]domain.Customer, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest, updaterID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID, req, updaterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerService) AccrueLoyalty(ctx context.Context, accrual domain.LoyaltyAccrual) error {
	args := m.Called(ctx, accrual)
	return args.Error(0)
}

// --- Mock ShiftService ---
type MockShiftService struct {
	mock.Mock
}

func (m *MockShiftService) OpenShift(ctx context.Context, req dto.OpenShiftRequest, openerID string) (*domain.Shift, error) {
	args := m.Called(ctx, req, openerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shift), args.Error(1)
}

func (m *MockShiftService) CloseShift(ctx context.Context, shiftID string, req dto.CloseShiftRequest, closerID string) (*domain.Shift, error) {
	args := m.Called(ctx, shiftID, req, closerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shift), args.Error(1)
}

func (m *MockShiftService) SuspendShift(ctx context.Context, shiftID string, actorID string) (*domain.Shift, error) {
	args := m.Called(ctx, shiftID, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shift), args.Error(1)
}

func (m *MockShiftService) GetCurrentShift(ctx context.Context, terminalID string) (*domain.Shift, error) {
	args := m.Called(ctx, terminalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shift), args.Error(1)
}

func (m *MockShiftService) RecordSale(ctx context.Context, shiftID string, amount decimal.Decimal) error {
	args := m.Called(ctx, shiftID, amount)
	return args.Error(0)
}

// --- Mock AuditService ---
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, event domain.AuditEvent) {
	m.Called(ctx, event)
}

func (m *MockAuditService) ListEvents(ctx context.Context, from, to time.Time, module string, actorID string, limit int) ([]domain.AuditEvent, error) {
	args := m.Called(ctx, from, to, module, actorID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEvent), args.Error(1)
}

// --- Test Suite ---
type SaleServiceTestSuite struct {
	suite.Suite
	saleRepo     *MockSaleRepository
	productRepo  *MockProductRepository
	employeeRepo *MockEmployeeRepository
	customerRepo *MockCustomerRepository
	settingsRepo *MockSettingsRepository
	ledgerSvc    *MockLedgerService
	customerSvc  *MockCustomerService
	shiftSvc     *MockShiftService
	auditSvc     *MockAuditService
	svc          portssvc.SaleSvcFacade
}

func (suite *SaleServiceTestSuite) SetupTest() {
	suite.saleRepo = new(MockSaleRepository)
	suite.productRepo = new(MockProductRepository)
	suite.employeeRepo = new(MockEmployeeRepository)
	suite.customerRepo = new(MockCustomerRepository)
	suite.settingsRepo = new(MockSettingsRepository)
	suite.ledgerSvc = new(MockLedgerService)
	suite.customerSvc = new(MockCustomerService)
	suite.shiftSvc = new(MockShiftService)
	suite.auditSvc = new(MockAuditService)

	cfg := &config.Config{
		Currency: "USD",
		Loyalty:  config.LoyaltyConfig{PointsPerCurrencyUnit: decimal.NewFromInt(1)},
	}
	suite.svc = services.NewSaleService(
		suite.saleRepo,
		suite.productRepo,
		suite.employeeRepo,
		suite.customerRepo,
		suite.settingsRepo,
		suite.ledgerSvc,
		suite.customerSvc,
		suite.shiftSvc,
		suite.auditSvc,
		cfg,
	)
}

func (suite *SaleServiceTestSuite) cashierFixture() *domain.Employee {
	return &domain.Employee{
		EmployeeID: "emp-1",
		Username:   "ada",
		FirstName:  "Ada",
		LastName:   "Lovelace",
		Role:       domain.RoleCashier,
		IsActive:   true,
	}
}

func (suite *SaleServiceTestSuite) productFixture() *domain.Product {
	return &domain.Product{
		ProductID:   "prod-1",
		Name:        "Espresso Beans",
		IsActive:    true,
		ManageStock: true,
		Variations: []domain.ProductVariation{
			{
				VariationID: "var-1",
				ProductID:   "prod-1",
				Name:        "250g",
				SKU:         "ESP-250",
				Price:         decimal.RequireFromString("19.99"),
				CostPrice:     decimal.RequireFromString("10.25"),
				StockQuantity: decimal.NewFromInt(20),
				IsActive:      true,
			},
		},
	}
}

func (suite *SaleServiceTestSuite) storeSettings() map[string]string {
	return map[string]string{
		"company.name":        "Twinx Trading Co.",
		"company.address":     "12 Harbour Road",
		"receipt.footer_text": "Thank you for shopping with us",
	}
}

func (suite *SaleServiceTestSuite) cashSaleRequest() dto.ProcessSaleRequest {
	return dto.ProcessSaleRequest{
		Items: []dto.CartLineRequest{
			{
				ProductID:  "prod-1",
				Quantity:   decimal.NewFromInt(2),
				TaxPercent: decimal.NewFromInt(15),
			},
		},
		PaymentMethod: domain.PaymentCash,
		AmountPaid:    decimal.RequireFromString("50.00"),
		TerminalID:    "till-1",
	}
}

func (suite *SaleServiceTestSuite) TestProcessSale_CashHappyPath() {
	suite.employeeRepo.On("FindEmployeeByID", mock.Anything, "emp-1").Return(suite.cashierFixture(), nil)
	suite.productRepo.On("FindProductByID", mock.Anything, "prod-1").Return(suite.productFixture(), nil)
	suite.saleRepo.On("NextInvoiceNo", mock.Anything, mock.AnythingOfType("time.Time")).Return("20260901-0001", nil)
	suite.ledgerSvc.On("EntriesForSale", mock.Anything, mock.AnythingOfType("*domain.Sale")).Return([]domain.LedgerEntry{}, nil)
	suite.settingsRepo.On("GetSettings", mock.Anything).Return(suite.storeSettings(), nil)
	suite.auditSvc.On("Record", mock.Anything, mock.AnythingOfType("domain.AuditEvent")).Return()

	var savedSale *domain.Sale
	var savedDeltas []domain.StockDelta
	suite.saleRepo.On("SaveSale", mock.Anything, mock.AnythingOfType("*domain.Sale"), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedSale = args.Get(1).(*domain.Sale)
			savedDeltas = args.Get(2).([]domain.StockDelta)
		}).Return(nil)

	resp, err := suite.svc.ProcessSale(context.Background(), suite.cashSaleRequest(), "emp-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(savedSale)

	// 2 x 19.99 = 39.98, 15% tax = 6.00, grand total 45.98, change from 50.00.
	suite.True(savedSale.Subtotal.Equal(decimal.RequireFromString("39.98")))
	suite.True(savedSale.TaxAmount.Equal(decimal.RequireFromString("6.00")))
	suite.True(savedSale.GrandTotal.Equal(decimal.RequireFromString("45.98")))
	suite.True(savedSale.ChangeAmount.Equal(decimal.RequireFromString("4.02")))
	suite.Equal("20260901-0001", savedSale.InvoiceNo)
	suite.Equal(domain.PaymentPaid, savedSale.PaymentStatus)
	suite.Equal("USD", savedSale.Currency)
	suite.Equal("Ada Lovelace", savedSale.CashierName)
	suite.Equal("Walk-in Customer", savedSale.CustomerName)

	suite.Require().Len(savedSale.Items, 1)
	suite.Equal("ESP-250", savedSale.Items[0].ProductSKU)
	suite.True(savedSale.Items[0].UnitCost.Equal(decimal.RequireFromString("10.25")))

	suite.Require().Len(savedDeltas, 1)
	suite.Equal("var-1", savedDeltas[0].VariationID)
	suite.True(savedDeltas[0].Quantity.Equal(decimal.NewFromInt(-2)))
	suite.Equal(domain.MovementSale, savedDeltas[0].MovementType)
	suite.Equal(savedSale.SaleID, savedDeltas[0].ReferenceID)

	suite.Require().NotNil(resp.Receipt)
	suite.Equal("Twinx Trading Co.", resp.Receipt.Company.Name)
	suite.Equal("Thank you for shopping with us", resp.Receipt.FooterText)
	suite.Equal(int64(0), resp.Receipt.PointsEarned)

	suite.saleRepo.AssertExpectations(suite.T())
	suite.auditSvc.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestProcessSale_RejectsInsufficientCash() {
	suite.employeeRepo.On("FindEmployeeByID", mock.Anything, "emp-1").Return(suite.cashierFixture(), nil)
	suite.productRepo.On("FindProductByID", mock.Anything, "prod-1").Return(suite.productFixture(), nil)

	req := suite.cashSaleRequest()
	req.AmountPaid = decimal.NewFromInt(10)

	_, err := suite.svc.ProcessSale(context.Background(), req, "emp-1")

	suite.Require().ErrorIs(err, services.ErrInsufficientPaid)
	suite.saleRepo.AssertNotCalled(suite.T(), "SaveSale", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestProcessSale_RejectsLockedCashier() {
	cashier := suite.cashierFixture()
	cashier.IsLocked = true
	suite.employeeRepo.On("FindEmployeeByID", mock.Anything, "emp-1").Return(cashier, nil)

	_, err := suite.svc.ProcessSale(context.Background(), suite.cashSaleRequest(), "emp-1")

	suite.Require().ErrorIs(err, services.ErrCashierInactive)
	suite.productRepo.AssertNotCalled(suite.T(), "FindProductByID", mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestProcessSale_RejectsInsufficientStock() {
	product := suite.productFixture()
	product.Variations[0].StockQuantity = decimal.NewFromInt(1)
	suite.employeeRepo.On("FindEmployeeByID", mock.Anything, "emp-1").Return(suite.cashierFixture(), nil)
	suite.productRepo.On("FindProductByID", mock.Anything, "prod-1").Return(product, nil)

	_, err := suite.svc.ProcessSale(context.Background(), suite.cashSaleRequest(), "emp-1")

	suite.Require().ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.saleRepo.AssertNotCalled(suite.T(), "SaveSale", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestProcessSale_BackordersBypassStockCheck() {
	product := suite.productFixture()
	product.Variations[0].StockQuantity = decimal.NewFromInt(1)
	product.Variations[0].AllowBackorders = true
	suite.employeeRepo.On("FindEmployeeByID", mock.Anything, "emp-1").Return(suite.cashierFixture(), nil)
	suite.productRepo.On("FindProductByID", mock.Anything, "prod-1").Return(product, nil)
	suite.saleRepo.On("NextInvoiceNo", mock.Anything, mock.AnythingOfType("time.Time")).Return("20260901-0004", nil)
	suite.ledgerSvc.On("EntriesForSale", mock.Anything, mock.AnythingOfType("*domain.Sale")).Return([]domain.LedgerEntry{}, nil)
	suite.saleRepo.On("SaveSale", mock.Anything, mock.AnythingOfType("*domain.Sale"), mock.Anything, mock.Anything).Return(nil)
	suite.settingsRepo.On("GetSettings", mock.Anything).Return(suite.storeSettings(), nil)
	suite.auditSvc.On("Record", mock.Anything, mock.AnythingOfType("domain.AuditEvent")).Return()

	_, err := suite.svc.ProcessSale(context.Background(), suite.cashSaleRequest(), "emp-1")

	suite.Require().NoError(err)
	suite.saleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestProcessSale_RejectsEmptyCart() {
	suite.employeeRepo.On("FindEmployeeByID", mock.Anything, "emp-1").Return(suite.cashierFixture(), nil)

	req := suite.cashSaleRequest()
	req.Items = nil

	_, err := suite.svc.ProcessSale(context.Background(), req, "emp-1")

	suite.Require().ErrorIs(err, services.ErrEmptyCart)
}

func (suite *SaleServiceTestSuite) TestProcessSale_InvoiceCounterFallback() {
	suite.employeeRepo.On("FindEmployeeByID", mock.Anything, "emp-1").Return(suite.cashierFixture(), nil)
	suite.productRepo.On("FindProductByID", mock.Anything, "prod-1").Return(suite.productFixture(), nil)
	suite.saleRepo.On("NextInvoiceNo", mock.Anything, mock.AnythingOfType("time.Time")).Return("", errors.New("counter table locked"))
	suite.ledgerSvc.On("EntriesForSale", mock.Anything, mock.AnythingOfType("*domain.Sale")).Return([]domain.LedgerEntry{}, nil)
	suite.settingsRepo.On("GetSettings", mock.Anything).Return(suite.storeSettings(), nil)
	suite.auditSvc.On("Record", mock.Anything, mock.AnythingOfType("domain.AuditEvent")).Return()

	var savedSale *domain.Sale
	suite.saleRepo.On("SaveSale", mock.Anything, mock.AnythingOfType("*domain.Sale"), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedSale = args.Get(1).(*domain.Sale)
		}).Return(nil)

	_, err := suite.svc.ProcessSale(context.Background(), suite.cashSaleRequest(), "emp-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(savedSale)
	suite.True(strings.HasPrefix(savedSale.InvoiceNo, "INV-"), "expected timestamp fallback, got %s", savedSale.InvoiceNo)
}

func (suite *SaleServiceTestSuite) TestProcessSale_CreditLeavesBalanceDue() {
	suite.employeeRepo.On("FindEmployeeByID", mock.Anything, "emp-1").Return(suite.cashierFixture(), nil)
	suite.productRepo.On("FindProductByID", mock.Anything, "prod-1").Return(suite.productFixture(), nil)
	suite.customerRepo.On("FindCustomerByID", mock.Anything, "cust-1").
		Return(&domain.Customer{CustomerID: "cust-1", FirstName: "Grace", LastName: "Hopper", IsActive: true}, nil)
	suite.saleRepo.On("NextInvoiceNo", mock.Anything, mock.AnythingOfType("time.Time")).Return("20260901-0002", nil)
	suite.ledgerSvc.On("EntriesForSale", mock.Anything, mock.AnythingOfType("*domain.Sale")).Return([]domain.LedgerEntry{}, nil)
	suite.settingsRepo.On("GetSettings", mock.Anything).Return(suite.storeSettings(), nil)
	suite.customerSvc.On("AccrueLoyalty", mock.Anything, mock.AnythingOfType("domain.LoyaltyAccrual")).Return(nil)
	suite.auditSvc.On("Record", mock.Anything, mock.AnythingOfType("domain.AuditEvent")).Return()

	var savedSale *domain.Sale
	suite.saleRepo.On("SaveSale", mock.Anything, mock.AnythingOfType("*domain.Sale"), mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			savedSale = args.Get(1).(*domain.Sale)
		}).Return(nil)

	customerID := "cust-1"
	req := suite.cashSaleRequest()
	req.CustomerID = &customerID
	req.PaymentMethod = domain.PaymentCredit
	req.AmountPaid = decimal.Zero

	_, err := suite.svc.ProcessSale(context.Background(), req, "emp-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(savedSale)
	suite.Equal(domain.PaymentPending, savedSale.PaymentStatus)
	suite.True(savedSale.AmountPaid.IsZero())
	suite.Equal("Grace Hopper", savedSale.CustomerName)
}

func (suite *SaleServiceTestSuite) TestProcessSale_LoyaltyFailureDoesNotFailSale() {
	suite.employeeRepo.On("FindEmployeeByID", mock.Anything, "emp-1").Return(suite.cashierFixture(), nil)
	suite.productRepo.On("FindProductByID", mock.Anything, "prod-1").Return(suite.productFixture(), nil)
	suite.customerRepo.On("FindCustomerByID", mock.Anything, "cust-1").
		Return(&domain.Customer{CustomerID: "cust-1", FirstName: "Grace", LastName: "Hopper", IsActive: true}, nil)
	suite.saleRepo.On("NextInvoiceNo", mock.Anything, mock.AnythingOfType("time.Time")).Return("20260901-0003", nil)
	suite.ledgerSvc.On("EntriesForSale", mock.Anything, mock.AnythingOfType("*domain.Sale")).Return([]domain.LedgerEntry{}, nil)
	suite.saleRepo.On("SaveSale", mock.Anything, mock.AnythingOfType("*domain.Sale"), mock.Anything, mock.Anything).Return(nil)
	suite.settingsRepo.On("GetSettings", mock.Anything).Return(suite.storeSettings(), nil)
	suite.auditSvc.On("Record", mock.Anything, mock.AnythingOfType("domain.AuditEvent")).Return()

	var accrual domain.LoyaltyAccrual
	suite.customerSvc.On("AccrueLoyalty", mock.Anything, mock.AnythingOfType("domain.LoyaltyAccrual")).
		Run(func(args mock.Arguments) {
			accrual = args.Get(1).(domain.LoyaltyAccrual)
		}).Return(errors.New("loyalty store unavailable"))

	customerID := "cust-1"
	req := suite.cashSaleRequest()
	req.CustomerID = &customerID

	resp, err := suite.svc.ProcessSale(context.Background(), req, "emp-1")

	suite.Require().NoError(err)
	// 45.98 grand total at one point per currency unit floors to 45 points,
	// but the failed accrual means the receipt advertises none.
	suite.Equal(int64(45), accrual.PointsEarned)
	suite.Require().NotNil(resp.Receipt)
	suite.Equal(int64(0), resp.Receipt.PointsEarned)
}

func (suite *SaleServiceTestSuite) originalSaleFixture() *domain.Sale {
	variationID := "var-1"
	return &domain.Sale{
		SaleID:        "sale-1",
		InvoiceNo:     "20260901-0001",
		InvoiceDate:   time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		Status:        domain.SaleCompleted,
		CustomerName:  "Walk-in Customer",
		CashierID:     "emp-1",
		CashierName:   "Ada Lovelace",
		Subtotal:      decimal.RequireFromString("30.00"),
		TaxAmount:     decimal.RequireFromString("4.50"),
		GrandTotal:    decimal.RequireFromString("34.50"),
		AmountPaid:    decimal.RequireFromString("34.50"),
		PaymentMethod: domain.PaymentCash,
		PaymentStatus: domain.PaymentPaid,
		Currency:      "USD",
		Items: []domain.SaleItem{
			{
				SaleItemID:       "item-1",
				SaleID:           "sale-1",
				ProductID:        "prod-1",
				VariationID:      &variationID,
				ProductName:      "Espresso Beans",
				ProductSKU:       "ESP-250",
				Quantity:         decimal.NewFromInt(3),
				UnitPrice:        decimal.RequireFromString("10.00"),
				UnitCost:         decimal.RequireFromString("10.25"),
				Subtotal:         decimal.RequireFromString("30.00"),
				TaxAmount:        decimal.RequireFromString("4.50"),
				Total:            decimal.RequireFromString("34.50"),
				ReturnedQuantity: decimal.Zero,
			},
		},
	}
}

func (suite *SaleServiceTestSuite) TestProcessRefund_ProportionalAmounts() {
	suite.employeeRepo.On("FindEmployeeByID", mock.Anything, "emp-1").Return(suite.cashierFixture(), nil)
	suite.saleRepo.On("FindSaleByID", mock.Anything, "sale-1").Return(suite.originalSaleFixture(), nil)
	suite.ledgerSvc.On("EntriesForRefund", mock.Anything, mock.AnythingOfType("*domain.Sale")).Return([]domain.LedgerEntry{}, nil)
	suite.settingsRepo.On("GetSettings", mock.Anything).Return(suite.storeSettings(), nil)
	suite.auditSvc.On("Record", mock.Anything, mock.AnythingOfType("domain.AuditEvent")).Return()

	var (
		savedRefund *domain.Sale
		savedDeltas []domain.StockDelta
		savedApp    portsrepo.RefundApplication
	)
	suite.saleRepo.On("SaveRefund", mock.Anything, mock.AnythingOfType("*domain.Sale"), mock.Anything, mock.Anything, mock.AnythingOfType("repositories.RefundApplication")).
		Run(func(args mock.Arguments) {
			savedRefund = args.Get(1).(*domain.Sale)
			savedDeltas = args.Get(2).([]domain.StockDelta)
			savedApp = args.Get(4).(portsrepo.RefundApplication)
		}).Return(nil)

	req := dto.ProcessRefundRequest{
		SaleID: "sale-1",
		Items: []dto.RefundLineRequest{
			{SaleItemID: "item-1", Quantity: decimal.NewFromInt(1)},
		},
		Reason:     "Damaged packaging",
		TerminalID: "till-1",
	}

	resp, err := suite.svc.ProcessRefund(context.Background(), req, "emp-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(savedRefund)

	// One of three units comes back: 10.00 subtotal, 1.50 tax, 11.50 total,
	// all negated on the refund sale.
	suite.True(strings.HasPrefix(savedRefund.InvoiceNo, "REF-20260901-0001-"), "unexpected refund invoice %s", savedRefund.InvoiceNo)
	suite.True(savedRefund.Subtotal.Equal(decimal.RequireFromString("-10.00")))
	suite.True(savedRefund.TaxAmount.Equal(decimal.RequireFromString("-1.50")))
	suite.True(savedRefund.GrandTotal.Equal(decimal.RequireFromString("-11.50")))
	suite.Equal(domain.PaymentRefunded, savedRefund.PaymentStatus)
	suite.Require().NotNil(savedRefund.OriginalSaleID)
	suite.Equal("sale-1", *savedRefund.OriginalSaleID)

	suite.Require().Len(savedRefund.Items, 1)
	suite.True(savedRefund.Items[0].Quantity.Equal(decimal.NewFromInt(-1)))
	suite.True(savedRefund.Items[0].Total.Equal(decimal.RequireFromString("-11.50")))

	suite.Require().Len(savedDeltas, 1)
	suite.True(savedDeltas[0].Quantity.Equal(decimal.NewFromInt(1)))
	suite.Equal(domain.MovementReturnCustomer, savedDeltas[0].MovementType)
	suite.Equal(domain.ReferenceRefund, savedDeltas[0].Reference)

	suite.Equal("sale-1", savedApp.OriginalSaleID)
	suite.True(savedApp.RefundTotal.Equal(decimal.RequireFromString("11.50")))
	suite.True(savedApp.ItemReturns["item-1"].Equal(decimal.NewFromInt(1)))

	suite.Require().NotNil(resp.Receipt)
	suite.Equal(savedRefund.InvoiceNo, resp.Receipt.InvoiceNo)
}

func (suite *SaleServiceTestSuite) TestProcessRefund_DerivesHeaderDiscountPercent() {
	variationID := "var-1"
	original := suite.originalSaleFixture()
	original.Items = []domain.SaleItem{
		{
			SaleItemID:       "item-1",
			SaleID:           "sale-1",
			ProductID:        "prod-1",
			VariationID:      &variationID,
			ProductName:      "Espresso Beans",
			Quantity:         decimal.NewFromInt(2),
			UnitPrice:        decimal.RequireFromString("10.00"),
			Subtotal:         decimal.RequireFromString("20.00"),
			DiscountAmount:   decimal.RequireFromString("2.00"),
			Total:            decimal.RequireFromString("18.00"),
			ReturnedQuantity: decimal.Zero,
		},
	}

	suite.employeeRepo.On("FindEmployeeByID", mock.Anything, "emp-1").Return(suite.cashierFixture(), nil)
	suite.saleRepo.On("FindSaleByID", mock.Anything, "sale-1").Return(original, nil)
	suite.ledgerSvc.On("EntriesForRefund", mock.Anything, mock.AnythingOfType("*domain.Sale")).Return([]domain.LedgerEntry{}, nil)
	suite.settingsRepo.On("GetSettings", mock.Anything).Return(suite.storeSettings(), nil)
	suite.auditSvc.On("Record", mock.Anything, mock.AnythingOfType("domain.AuditEvent")).Return()

	var savedRefund *domain.Sale
	suite.saleRepo.On("SaveRefund", mock.Anything, mock.AnythingOfType("*domain.Sale"), mock.Anything, mock.Anything, mock.AnythingOfType("repositories.RefundApplication")).
		Run(func(args mock.Arguments) {
			savedRefund = args.Get(1).(*domain.Sale)
		}).Return(nil)

	req := dto.ProcessRefundRequest{
		SaleID: "sale-1",
		Items: []dto.RefundLineRequest{
			{SaleItemID: "item-1", Quantity: decimal.NewFromInt(1)},
		},
		Reason: "One unit faulty",
	}

	_, err := suite.svc.ProcessRefund(context.Background(), req, "emp-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(savedRefund)
	// 1.00 discount against a 10.00 refunded subtotal is an effective 10%.
	suite.True(savedRefund.DiscountPercent.Equal(decimal.NewFromInt(10)), "discount percent was %s", savedRefund.DiscountPercent)
	suite.True(savedRefund.DiscountAmount.Equal(decimal.RequireFromString("-1.00")))
	suite.True(savedRefund.GrandTotal.Equal(decimal.RequireFromString("-9.00")))
}

func (suite *SaleServiceTestSuite) TestProcessRefund_RejectsOverQuantity() {
	suite.employeeRepo.On("FindEmployeeByID", mock.Anything, "emp-1").Return(suite.cashierFixture(), nil)
	suite.saleRepo.On("FindSaleByID", mock.Anything, "sale-1").Return(suite.originalSaleFixture(), nil)

	req := dto.ProcessRefundRequest{
		SaleID: "sale-1",
		Items: []dto.RefundLineRequest{
			{SaleItemID: "item-1", Quantity: decimal.NewFromInt(5)},
		},
		Reason: "Changed mind",
	}

	_, err := suite.svc.ProcessRefund(context.Background(), req, "emp-1")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.saleRepo.AssertNotCalled(suite.T(), "SaveRefund", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SaleServiceTestSuite) TestProcessRefund_RejectsRefundOfRefund() {
	original := suite.originalSaleFixture()
	parentID := "sale-0"
	original.OriginalSaleID = &parentID

	suite.employeeRepo.On("FindEmployeeByID", mock.Anything, "emp-1").Return(suite.cashierFixture(), nil)
	suite.saleRepo.On("FindSaleByID", mock.Anything, "sale-1").Return(original, nil)

	req := dto.ProcessRefundRequest{
		SaleID: "sale-1",
		Items: []dto.RefundLineRequest{
			{SaleItemID: "item-1", Quantity: decimal.NewFromInt(1)},
		},
		Reason: "Double refund attempt",
	}

	_, err := suite.svc.ProcessRefund(context.Background(), req, "emp-1")

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
}

func (suite *SaleServiceTestSuite) TestProcessRefund_RejectsNonPositiveQuantity() {
	suite.employeeRepo.On("FindEmployeeByID", mock.Anything, "emp-1").Return(suite.cashierFixture(), nil)
	suite.saleRepo.On("FindSaleByID", mock.Anything, "sale-1").Return(suite.originalSaleFixture(), nil)

	req := dto.ProcessRefundRequest{
		SaleID: "sale-1",
		Items: []dto.RefundLineRequest{
			{SaleItemID: "item-1", Quantity: decimal.Zero},
		},
		Reason: "Typo at the till",
	}

	_, err := suite.svc.ProcessRefund(context.Background(), req, "emp-1")

	suite.Require().ErrorIs(err, services.ErrRefundNotPositive)
}

func (suite *SaleServiceTestSuite) TestGetSaleDetails_IncludesMovements() {
	sale := suite.originalSaleFixture()
	suite.saleRepo.On("FindSaleByID", mock.Anything, "sale-1").Return(sale, nil)
	suite.productRepo.On("FindMovementsByReference", mock.Anything, domain.ReferenceSale, "sale-1").
		Return([]domain.StockMovement{{MovementID: "mov-1", VariationID: "var-1"}}, nil)

	resp, err := suite.svc.GetSaleDetails(context.Background(), "sale-1")

	suite.Require().NoError(err)
	suite.Equal("20260901-0001", resp.Sale.InvoiceNo)
	suite.Require().Len(resp.Movements, 1)
	suite.Equal("mov-1", resp.Movements[0].MovementID)
}

func TestSaleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}
