package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spendscope/spendscope-backend/internal/apperrors"
	"github.com/spendscope/spendscope-backend/internal/core/domain"
	portssvc "github.com/spendscope/spendscope-backend/internal/core/ports/services"
	"github.com/spendscope/spendscope-backend/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo    *MockTransactionRepository
	mockAuthorizer *MockOrganizationAuthorizer
	service        portssvc.TransactionSvcFacade

	organizationID string
	userID         string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAuthorizer = new(MockOrganizationAuthorizer)
	suite.service = services.NewTransactionService(
		suite.mockTxnRepo,
		services.WithTransactionOrganizationAuthorizer(suite.mockAuthorizer),
	)
	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// --- ListTransactions Tests ---

func (suite *TransactionServiceTestSuite) TestListTransactions_Success() {
	ctx := context.Background()
	expected := []domain.SpendTransaction{
		{TransactionID: uuid.NewString(), Amount: decimal.RequireFromString("100.50")},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockTxnRepo.On("ListTransactions", ctx, suite.organizationID, mock.MatchedBy(func(f domain.TransactionFilter) bool {
		return f.Limit == 100 && f.Offset == 0
	})).Return(expected, nil).Once()

	txns, err := suite.service.ListTransactions(ctx, suite.organizationID, suite.userID, domain.TransactionFilter{})

	suite.Require().NoError(err)
	suite.Equal(expected, txns)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactions_ClampsLimit() {
	ctx := context.Background()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockTxnRepo.On("ListTransactions", ctx, suite.organizationID, mock.MatchedBy(func(f domain.TransactionFilter) bool {
		return f.Limit == 1000
	})).Return([]domain.SpendTransaction{}, nil).Once()

	_, err := suite.service.ListTransactions(ctx, suite.organizationID, suite.userID, domain.TransactionFilter{Limit: 99999})

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactions_Forbidden() {
	ctx := context.Background()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleReadOnly).Return(apperrors.ErrForbidden).Once()

	txns, err := suite.service.ListTransactions(ctx, suite.organizationID, suite.userID, domain.TransactionFilter{})

	suite.Require().Error(err)
	suite.Nil(txns)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ListTransactions", mock.Anything, mock.Anything, mock.Anything)
}

// --- BulkDeleteTransactions Tests ---

func (suite *TransactionServiceTestSuite) TestBulkDeleteTransactions_Success() {
	ctx := context.Background()
	ids := []string{uuid.NewString(), uuid.NewString(), uuid.NewString()}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleMember).Return(nil).Once()
	// One ID belongs to another tenant; the repository only deletes two.
	suite.mockTxnRepo.On("DeleteTransactions", ctx, suite.organizationID, ids).Return(int64(2), nil).Once()

	deleted, err := suite.service.BulkDeleteTransactions(ctx, suite.organizationID, suite.userID, ids)

	suite.Require().NoError(err)
	suite.Equal(int64(2), deleted)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestBulkDeleteTransactions_EmptyIDs() {
	ctx := context.Background()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleMember).Return(nil).Once()

	deleted, err := suite.service.BulkDeleteTransactions(ctx, suite.organizationID, suite.userID, nil)

	suite.Require().Error(err)
	suite.Zero(deleted)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeleteTransactions", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestBulkDeleteTransactions_Forbidden() {
	ctx := context.Background()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleMember).Return(apperrors.ErrForbidden).Once()

	deleted, err := suite.service.BulkDeleteTransactions(ctx, suite.organizationID, suite.userID, []string{uuid.NewString()})

	suite.Require().Error(err)
	suite.Zero(deleted)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- FindDuplicates Tests ---

func (suite *TransactionServiceTestSuite) TestFindDuplicates_DefaultWindow() {
	ctx := context.Background()
	expected := []domain.DuplicateGroup{
		{SupplierName: "Acme Corp", CategoryName: "Office Supplies", Amount: decimal.RequireFromString("100.00"), Count: 3},
	}

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockTxnRepo.On("FindDuplicateGroups", ctx, suite.organizationID, mock.MatchedBy(func(since time.Time) bool {
		// Zero days falls back to the trailing 30-day window.
		expectedCutoff := time.Now().AddDate(0, 0, -30)
		return since.Sub(expectedCutoff).Abs() < time.Minute
	})).Return(expected, nil).Once()

	groups, err := suite.service.FindDuplicates(ctx, suite.organizationID, suite.userID, 0)

	suite.Require().NoError(err)
	suite.Equal(expected, groups)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestFindDuplicates_EmptyReport() {
	ctx := context.Background()

	suite.mockAuthorizer.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockTxnRepo.On("FindDuplicateGroups", ctx, suite.organizationID, mock.AnythingOfType("time.Time")).Return(nil, nil).Once()

	groups, err := suite.service.FindDuplicates(ctx, suite.organizationID, suite.userID, 7)

	suite.Require().NoError(err)
	suite.NotNil(groups)
	suite.Empty(groups)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
