package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/twinxhq/twinx-pos/internal/apperrors"
	"github.com/twinxhq/twinx-pos/internal/core/domain"
	portssvc "github.com/twinxhq/twinx-pos/internal/core/ports/services"
	"github.com/twinxhq/twinx-pos/internal/core/services"
	"github.com/twinxhq/twinx-pos/internal/dto"
	"github.com/twinxhq/twinx-pos/internal/platform/config"
	"github.com/twinxhq/twinx-pos/internal/utils"
)

type EmployeeServiceTestSuite struct {
	suite.Suite
	employeeRepo *MockEmployeeRepository
	auditSvc     *MockAuditService
	svc          portssvc.EmployeeSvcFacade
	passwordHash string
}

func (suite *EmployeeServiceTestSuite) SetupSuite() {
	hash, err := utils.HashPassword("opensesame")
	suite.Require().NoError(err)
	suite.passwordHash = hash
}

func (suite *EmployeeServiceTestSuite) SetupTest() {
	suite.employeeRepo = new(MockEmployeeRepository)
	suite.auditSvc = new(MockAuditService)
	cfg := &config.Config{
		JWTSecret:         "test-secret-for-signing-tokens",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "twinx-pos-test",
		MaxFailedLogins:   5,
	}
	suite.svc = services.NewEmployeeService(suite.employeeRepo, suite.auditSvc, cfg)
}

func (suite *EmployeeServiceTestSuite) employeeFixture() *domain.Employee {
	return &domain.Employee{
		EmployeeID:   "emp-1",
		Username:     "ada",
		PasswordHash: suite.passwordHash,
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Role:         domain.RoleCashier,
		Permissions:  domain.DefaultPermissions(domain.RoleCashier),
		IsActive:     true,
	}
}

func (suite *EmployeeServiceTestSuite) TestLogin_Success() {
	suite.employeeRepo.On("FindEmployeeByUsername", mock.Anything, "ada").Return(suite.employeeFixture(), nil)
	suite.employeeRepo.On("RecordLoginSuccess", mock.Anything, "emp-1", mock.AnythingOfType("time.Time")).Return(nil)
	suite.auditSvc.On("Record", mock.Anything, mock.AnythingOfType("domain.AuditEvent")).Return()

	resp, err := suite.svc.Login(context.Background(), dto.LoginRequest{Username: "ada", Password: "opensesame"})

	suite.Require().NoError(err)
	suite.NotEmpty(resp.Token)
	suite.Equal("emp-1", resp.Employee.EmployeeID)
	suite.True(resp.ExpiresAt.After(time.Now()))
	suite.employeeRepo.AssertExpectations(suite.T())
}

func (suite *EmployeeServiceTestSuite) TestLogin_WrongPasswordCountsAttempt() {
	suite.employeeRepo.On("FindEmployeeByUsername", mock.Anything, "ada").Return(suite.employeeFixture(), nil)
	suite.employeeRepo.On("RecordLoginFailure", mock.Anything, "emp-1", 5).Return(2, nil)
	suite.auditSvc.On("Record", mock.Anything, mock.AnythingOfType("domain.AuditEvent")).Return()

	_, err := suite.svc.Login(context.Background(), dto.LoginRequest{Username: "ada", Password: "wrong"})

	suite.Require().ErrorIs(err, services.ErrInvalidCredentials)
	suite.employeeRepo.AssertNotCalled(suite.T(), "RecordLoginSuccess", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EmployeeServiceTestSuite) TestLogin_LocksAfterRepeatedFailures() {
	suite.employeeRepo.On("FindEmployeeByUsername", mock.Anything, "ada").Return(suite.employeeFixture(), nil)
	suite.employeeRepo.On("RecordLoginFailure", mock.Anything, "emp-1", 5).Return(5, nil)
	suite.auditSvc.On("Record", mock.Anything, mock.AnythingOfType("domain.AuditEvent")).Return()

	_, err := suite.svc.Login(context.Background(), dto.LoginRequest{Username: "ada", Password: "wrong"})

	suite.Require().ErrorIs(err, services.ErrAccountLocked)
}

func (suite *EmployeeServiceTestSuite) TestLogin_UnknownUsernameLooksLikeBadPassword() {
	suite.employeeRepo.On("FindEmployeeByUsername", mock.Anything, "ghost").Return(nil, apperrors.ErrNotFound)
	suite.auditSvc.On("Record", mock.Anything, mock.AnythingOfType("domain.AuditEvent")).Return()

	_, err := suite.svc.Login(context.Background(), dto.LoginRequest{Username: "ghost", Password: "anything"})

	suite.Require().ErrorIs(err, services.ErrInvalidCredentials)
}

func (suite *EmployeeServiceTestSuite) TestLogin_RejectsLockedAccount() {
	locked := suite.employeeFixture()
	locked.IsLocked = true
	suite.employeeRepo.On("FindEmployeeByUsername", mock.Anything, "ada").Return(locked, nil)
	suite.auditSvc.On("Record", mock.Anything, mock.AnythingOfType("domain.AuditEvent")).Return()

	_, err := suite.svc.Login(context.Background(), dto.LoginRequest{Username: "ada", Password: "opensesame"})

	suite.Require().ErrorIs(err, services.ErrAccountLocked)
	suite.employeeRepo.AssertNotCalled(suite.T(), "RecordLoginFailure", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EmployeeServiceTestSuite) TestCheckPermission_AdminShortCircuits() {
	admin := suite.employeeFixture()
	admin.Role = domain.RoleAdmin
	admin.Permissions = nil
	suite.employeeRepo.On("FindEmployeeByID", mock.Anything, "emp-1").Return(admin, nil)

	allowed, err := suite.svc.CheckPermission(context.Background(), "emp-1", "employees.manage")

	suite.Require().NoError(err)
	suite.True(allowed)
}

func (suite *EmployeeServiceTestSuite) TestCheckPermission_CashierDefaults() {
	suite.employeeRepo.On("FindEmployeeByID", mock.Anything, "emp-1").Return(suite.employeeFixture(), nil)

	allowed, err := suite.svc.CheckPermission(context.Background(), "emp-1", "sales.process")
	suite.Require().NoError(err)
	suite.True(allowed)

	allowed, err = suite.svc.CheckPermission(context.Background(), "emp-1", "products.manage")
	suite.Require().NoError(err)
	suite.False(allowed)
}

func (suite *EmployeeServiceTestSuite) TestCheckPermission_LockedEmployeeDenied() {
	locked := suite.employeeFixture()
	locked.IsLocked = true
	suite.employeeRepo.On("FindEmployeeByID", mock.Anything, "emp-1").Return(locked, nil)

	allowed, err := suite.svc.CheckPermission(context.Background(), "emp-1", "sales.process")

	suite.Require().NoError(err)
	suite.False(allowed)
}

func (suite *EmployeeServiceTestSuite) TestChangePassword_RejectsWrongOldPassword() {
	suite.employeeRepo.On("FindEmployeeByID", mock.Anything, "emp-1").Return(suite.employeeFixture(), nil)

	err := suite.svc.ChangePassword(context.Background(), "emp-1", dto.ChangePasswordRequest{
		OldPassword: "not-it",
		NewPassword: "a-new-password",
	})

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	suite.employeeRepo.AssertNotCalled(suite.T(), "UpdatePassword", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEmployeeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EmployeeServiceTestSuite))
}
