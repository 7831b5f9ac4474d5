package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/twinxhq/twinx-pos/internal/apperrors"
	"github.com/twinxhq/twinx-pos/internal/core/domain"
	portssvc "github.com/twinxhq/twinx-pos/internal/core/ports/services"
	"github.com/twinxhq/twinx-pos/internal/core/services"
	"github.com/twinxhq/twinx-pos/internal/dto"
)

// --- Mock ShiftRepository ---
type MockShiftRepository struct {
	mock.Mock
}

func (m *MockShiftRepository) FindShiftByID(ctx context.Context, shiftID string) (*domain.Shift, error) {
	args := m.Called(ctx, shiftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shift), args.Error(1)
}

func (m *MockShiftRepository) FindOpenShiftByTerminal(ctx context.Context, terminalID string) (*domain.Shift, error) {
	args := m.Called(ctx, terminalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shift), args.Error(1)
}

func (m *MockShiftRepository) ListShifts(ctx context.Context, from, to time.Time, limit int) ([]domain.Shift, error) {
	args := m.Called(ctx, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Shift), args.Error(1)
}

func (m *MockShiftRepository) SaveShift(ctx context.Context, shift *domain.Shift) error {
	args := m.Called(ctx, shift)
	return args.Error(0)
}

func (m *MockShiftRepository) UpdateShiftStatus(ctx context.Context, shiftID string, status domain.ShiftStatus, closingAmount *decimal.Decimal, closedBy string, closedAt *time.Time) error {
	args := m.Called(ctx, shiftID, status, closingAmount, closedBy, closedAt)
	return args.Error(0)
}

func (m *MockShiftRepository) IncrementShiftTotals(ctx context.Context, shiftID string, amount decimal.Decimal) error {
	args := m.Called(ctx, shiftID, amount)
	return args.Error(0)
}

// --- Test Suite ---
type ShiftServiceTestSuite struct {
	suite.Suite
	shiftRepo *MockShiftRepository
	auditSvc  *MockAuditService
	svc       portssvc.ShiftSvcFacade
}

func (suite *ShiftServiceTestSuite) SetupTest() {
	suite.shiftRepo = new(MockShiftRepository)
	suite.auditSvc = new(MockAuditService)
	suite.svc = services.NewShiftService(suite.shiftRepo, suite.auditSvc)
}

func (suite *ShiftServiceTestSuite) TestOpenShift_Success() {
	suite.shiftRepo.On("FindOpenShiftByTerminal", mock.Anything, "till-1").Return(nil, apperrors.ErrNotFound)
	suite.auditSvc.On("Record", mock.Anything, mock.AnythingOfType("domain.AuditEvent")).Return()

	var saved *domain.Shift
	suite.shiftRepo.On("SaveShift", mock.Anything, mock.AnythingOfType("*domain.Shift")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*domain.Shift)
		}).Return(nil)

	req := dto.OpenShiftRequest{TerminalID: "till-1", OpeningFloat: decimal.RequireFromString("100.00")}
	shift, err := suite.svc.OpenShift(context.Background(), req, "emp-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(saved)
	suite.Equal(domain.ShiftOpen, shift.Status)
	suite.Equal("till-1", shift.TerminalID)
	suite.Equal("emp-1", shift.OpenedBy)
	suite.True(shift.OpeningFloat.Equal(decimal.RequireFromString("100.00")))
	suite.True(shift.SalesAmount.IsZero())
	suite.NotEmpty(shift.ShiftID)
	suite.shiftRepo.AssertExpectations(suite.T())
}

func (suite *ShiftServiceTestSuite) TestOpenShift_RejectsSecondOpenOnTerminal() {
	open := &domain.Shift{ShiftID: "shift-1", TerminalID: "till-1", Status: domain.ShiftOpen}
	suite.shiftRepo.On("FindOpenShiftByTerminal", mock.Anything, "till-1").Return(open, nil)

	req := dto.OpenShiftRequest{TerminalID: "till-1", OpeningFloat: decimal.NewFromInt(50)}
	_, err := suite.svc.OpenShift(context.Background(), req, "emp-1")

	suite.Require().ErrorIs(err, services.ErrShiftAlreadyOpen)
	suite.shiftRepo.AssertNotCalled(suite.T(), "SaveShift", mock.Anything, mock.Anything)
}

func (suite *ShiftServiceTestSuite) TestCloseShift_AuditsVariance() {
	closed := &domain.Shift{
		ShiftID:       "shift-1",
		TerminalID:    "till-1",
		Status:        domain.ShiftClosed,
		OpeningFloat:  decimal.RequireFromString("100.00"),
		SalesAmount:   decimal.RequireFromString("245.50"),
		ClosingAmount: decimal.RequireFromString("340.00"),
	}
	suite.shiftRepo.On("UpdateShiftStatus", mock.Anything, "shift-1", domain.ShiftClosed, mock.Anything, "emp-1", mock.Anything).Return(nil)
	suite.shiftRepo.On("FindShiftByID", mock.Anything, "shift-1").Return(closed, nil)

	var event domain.AuditEvent
	suite.auditSvc.On("Record", mock.Anything, mock.AnythingOfType("domain.AuditEvent")).
		Run(func(args mock.Arguments) {
			event = args.Get(1).(domain.AuditEvent)
		}).Return()

	req := dto.CloseShiftRequest{ClosingAmount: decimal.RequireFromString("340.00")}
	shift, err := suite.svc.CloseShift(context.Background(), "shift-1", req, "emp-1")

	suite.Require().NoError(err)
	suite.Equal(domain.ShiftClosed, shift.Status)
	// Drawer is 5.50 short of the 345.50 expected.
	suite.Equal("close_shift", event.Action)
	suite.Contains(event.Details, "variance -5.5")
}

func (suite *ShiftServiceTestSuite) TestRecordSale_Passthrough() {
	amount := decimal.RequireFromString("45.98")
	suite.shiftRepo.On("IncrementShiftTotals", mock.Anything, "shift-1", amount).Return(nil)

	err := suite.svc.RecordSale(context.Background(), "shift-1", amount)

	suite.Require().NoError(err)
	suite.shiftRepo.AssertExpectations(suite.T())
}

func TestShiftServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ShiftServiceTestSuite))
}
