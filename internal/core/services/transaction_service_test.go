package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/savewise-app/savewise-backend/internal/apperrors"
	"github.com/savewise-app/savewise-backend/internal/core/domain"
	portsrepo "github.com/savewise-app/savewise-backend/internal/core/ports/repositories"
	portssvc "github.com/savewise-app/savewise-backend/internal/core/ports/services"
	"github.com/savewise-app/savewise-backend/internal/core/services"
	"github.com/savewise-app/savewise-backend/internal/dto"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByUser(ctx context.Context, ownerUserID string, limit int, offset int) ([]domain.Transaction, error) {
	args := m.Called(ctx, ownerUserID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SumAmountsByType(ctx context.Context, ownerUserID string) (map[domain.TransactionType]decimal.Decimal, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.TransactionType]decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, changes portsrepo.BalanceChanges) error {
	args := m.Called(ctx, txn, changes)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, changes portsrepo.BalanceChanges) error {
	args := m.Called(ctx, txn, changes)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, changes portsrepo.BalanceChanges, deletedByUserID string) error {
	args := m.Called(ctx, transactionID, changes, deletedByUserID)
	return args.Error(0)
}

// --- Mock GoalReader ---
type MockGoalReader struct {
	mock.Mock
}

var _ portsrepo.GoalReader = (*MockGoalReader)(nil)

func (m *MockGoalReader) FindGoalByID(ctx context.Context, goalID string) (*domain.Goal, error) {
	args := m.Called(ctx, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}

func (m *MockGoalReader) ListGoalsByUser(ctx context.Context, ownerUserID string) ([]domain.Goal, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Goal), args.Error(1)
}

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string, requestingUserID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetSavingAccount(ctx context.Context, ownerUserID string) (*domain.Account, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetCheckingAccount(ctx context.Context, ownerUserID string) (*domain.Account, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, requestingUserID string) ([]domain.Account, error) {
	args := m.Called(ctx, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetOrCreateCheckingAccount(ctx context.Context, ownerUserID string) (*domain.Account, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// --- Test Suite ---

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo    *MockTransactionRepository
	mockGoalReader *MockGoalReader
	mockAccountSvc *MockAccountService
	service        portssvc.TransactionSvcFacade
	userID         string
	goal           domain.Goal
	savingAccount  domain.Account
	checkingAcct   domain.Account
	ctx            context.Context
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockGoalReader = new(MockGoalReader)
	suite.mockAccountSvc = new(MockAccountService)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockGoalReader, suite.mockAccountSvc)

	suite.userID = uuid.NewString()
	suite.ctx = context.Background()

	suite.goal = domain.Goal{
		GoalID:       uuid.NewString(),
		OwnerUserID:  suite.userID,
		Name:         "New Car",
		TargetAmount: decimal.NewFromInt(5000),
		AmountSaved:  decimal.Zero,
		Status:       domain.GoalNotStarted,
	}
	suite.savingAccount = domain.Account{
		AccountID:   uuid.NewString(),
		OwnerUserID: suite.userID,
		Kind:        domain.Saving,
		Balance:     decimal.NewFromInt(1000),
	}
	suite.checkingAcct = domain.Account{
		AccountID:   uuid.NewString(),
		OwnerUserID: suite.userID,
		Kind:        domain.Checking,
		Balance:     decimal.NewFromInt(500),
	}
}

func (suite *TransactionServiceTestSuite) createRequest() dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		Name:            "Salary",
		TransactionType: domain.Income,
		Amount:          decimal.NewFromInt(100),
		SavingAmount:    decimal.NewFromInt(70),
		CheckingAmount:  decimal.NewFromInt(30),
		GoalID:          &suite.goal.GoalID,
		TransactionDate: time.Now().UTC().Add(-24 * time.Hour),
	}
}

// matchChanges builds a matcher asserting exact goal and account deltas.
func matchChanges(goalDeltas, accountDeltas map[string]decimal.Decimal) interface{} {
	return mock.MatchedBy(func(changes portsrepo.BalanceChanges) bool {
		if len(changes.GoalDeltas) != len(goalDeltas) || len(changes.AccountDeltas) != len(accountDeltas) {
			return false
		}
		for id, want := range goalDeltas {
			got, ok := changes.GoalDeltas[id]
			if !ok || !got.Equal(want) {
				return false
			}
		}
		for id, want := range accountDeltas {
			got, ok := changes.AccountDeltas[id]
			if !ok || !got.Equal(want) {
				return false
			}
		}
		return true
	})
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_IncomeWithGoal() {
	req := suite.createRequest()

	suite.mockGoalReader.On("FindGoalByID", suite.ctx, suite.goal.GoalID).Return(&suite.goal, nil).Once()
	suite.mockAccountSvc.On("GetOrCreateCheckingAccount", suite.ctx, suite.userID).Return(&suite.checkingAcct, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", suite.ctx, mock.AnythingOfType("domain.Transaction"),
		matchChanges(
			map[string]decimal.Decimal{suite.goal.GoalID: decimal.NewFromInt(70)},
			map[string]decimal.Decimal{suite.checkingAcct.AccountID: decimal.NewFromInt(30)},
		)).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(suite.ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal(suite.userID, txn.OwnerUserID)
	suite.True(txn.Amount.Equal(decimal.NewFromInt(100)))
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ExpenditureWithoutGoal() {
	req := suite.createRequest()
	req.TransactionType = domain.Expenditure
	req.GoalID = nil

	suite.mockAccountSvc.On("GetSavingAccount", suite.ctx, suite.userID).Return(&suite.savingAccount, nil).Once()
	suite.mockAccountSvc.On("GetOrCreateCheckingAccount", suite.ctx, suite.userID).Return(&suite.checkingAcct, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", suite.ctx, mock.AnythingOfType("domain.Transaction"),
		matchChanges(
			map[string]decimal.Decimal{},
			map[string]decimal.Decimal{
				suite.savingAccount.AccountID: decimal.NewFromInt(-70),
				suite.checkingAcct.AccountID:  decimal.NewFromInt(-30),
			},
		)).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(suite.ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_SplitMismatch() {
	req := suite.createRequest()
	req.SavingAmount = decimal.NewFromInt(50)

	txn, err := suite.service.CreateTransaction(suite.ctx, req, suite.userID)

	suite.Nil(txn)
	var splitErr *apperrors.SplitMismatchError
	suite.Require().ErrorAs(err, &splitErr)
	suite.True(errors.Is(err, apperrors.ErrValidation))
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "GetOrCreateCheckingAccount", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_SplitMismatchBeyondPrecision() {
	// A discrepancy below the stored precision is not a mismatch.
	req := suite.createRequest()
	req.Amount = decimal.RequireFromString("100.0004")
	req.SavingAmount = decimal.NewFromInt(70)
	req.CheckingAmount = decimal.NewFromInt(30)

	suite.mockGoalReader.On("FindGoalByID", suite.ctx, suite.goal.GoalID).Return(&suite.goal, nil).Once()
	suite.mockAccountSvc.On("GetOrCreateCheckingAccount", suite.ctx, suite.userID).Return(&suite.checkingAcct, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", suite.ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(suite.ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(txn.Amount.Equal(decimal.RequireFromString("100.000")))
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_FutureDate() {
	req := suite.createRequest()
	req.TransactionDate = time.Now().UTC().Add(48 * time.Hour)

	txn, err := suite.service.CreateTransaction(suite.ctx, req, suite.userID)

	suite.Nil(txn)
	var dateErr *apperrors.FutureDateError
	suite.Require().ErrorAs(err, &dateErr)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_SameDayIsNotFuture() {
	// Later clock time on the current day must pass the date check.
	req := suite.createRequest()
	req.TransactionDate = time.Now().UTC().Add(30 * time.Minute)

	suite.mockGoalReader.On("FindGoalByID", suite.ctx, suite.goal.GoalID).Return(&suite.goal, nil).Once()
	suite.mockAccountSvc.On("GetOrCreateCheckingAccount", suite.ctx, suite.userID).Return(&suite.checkingAcct, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", suite.ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything).Return(nil).Once()

	_, err := suite.service.CreateTransaction(suite.ctx, req, suite.userID)

	suite.NoError(err)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NonPositiveAmount() {
	req := suite.createRequest()
	req.Amount = decimal.Zero
	req.SavingAmount = decimal.Zero
	req.CheckingAmount = decimal.Zero

	txn, err := suite.service.CreateTransaction(suite.ctx, req, suite.userID)

	suite.Nil(txn)
	suite.ErrorIs(err, services.ErrAmountNotPositive)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_GoalOwnedByAnotherUser() {
	req := suite.createRequest()
	otherGoal := suite.goal
	otherGoal.OwnerUserID = uuid.NewString()

	suite.mockGoalReader.On("FindGoalByID", suite.ctx, suite.goal.GoalID).Return(&otherGoal, nil).Once()

	txn, err := suite.service.CreateTransaction(suite.ctx, req, suite.userID)

	suite.Nil(txn)
	suite.ErrorIs(err, services.ErrGoalNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_MissingSavingAccountSkipsSavingPortion() {
	req := suite.createRequest()
	req.GoalID = nil

	suite.mockAccountSvc.On("GetSavingAccount", suite.ctx, suite.userID).Return(nil, apperrors.ErrMissingAccount).Once()
	suite.mockAccountSvc.On("GetOrCreateCheckingAccount", suite.ctx, suite.userID).Return(&suite.checkingAcct, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", suite.ctx, mock.AnythingOfType("domain.Transaction"),
		matchChanges(
			map[string]decimal.Decimal{},
			map[string]decimal.Decimal{suite.checkingAcct.AccountID: decimal.NewFromInt(30)},
		)).Return(nil).Once()

	_, err := suite.service.CreateTransaction(suite.ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) storedTransaction() *domain.Transaction {
	return &domain.Transaction{
		TransactionID:   uuid.NewString(),
		OwnerUserID:     suite.userID,
		Name:            "Salary",
		TransactionType: domain.Income,
		Amount:          decimal.NewFromInt(100),
		SavingAmount:    decimal.NewFromInt(70),
		CheckingAmount:  decimal.NewFromInt(30),
		GoalID:          &suite.goal.GoalID,
		TransactionDate: time.Now().UTC().Add(-48 * time.Hour),
		AuditFields: domain.AuditFields{
			CreatedAt: time.Now().UTC().Add(-48 * time.Hour),
			CreatedBy: suite.userID,
		},
	}
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_AmountIncreaseAppliesNetDelta() {
	stored := suite.storedTransaction()
	req := dto.UpdateTransactionRequest{
		Name:            stored.Name,
		TransactionType: domain.Income,
		Amount:          decimal.NewFromInt(150),
		SavingAmount:    decimal.NewFromInt(100),
		CheckingAmount:  decimal.NewFromInt(50),
		GoalID:          &suite.goal.GoalID,
		TransactionDate: stored.TransactionDate,
	}

	suite.mockTxnRepo.On("FindTransactionByID", suite.ctx, stored.TransactionID).Return(stored, nil).Once()
	suite.mockGoalReader.On("FindGoalByID", suite.ctx, suite.goal.GoalID).Return(&suite.goal, nil).Once()
	// Undo path reads the checking account, apply path may create it.
	suite.mockAccountSvc.On("GetCheckingAccount", suite.ctx, suite.userID).Return(&suite.checkingAcct, nil).Once()
	suite.mockAccountSvc.On("GetOrCreateCheckingAccount", suite.ctx, suite.userID).Return(&suite.checkingAcct, nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", suite.ctx, mock.AnythingOfType("domain.Transaction"),
		matchChanges(
			map[string]decimal.Decimal{suite.goal.GoalID: decimal.NewFromInt(30)},
			map[string]decimal.Decimal{suite.checkingAcct.AccountID: decimal.NewFromInt(20)},
		)).Return(nil).Once()

	updated, err := suite.service.UpdateTransaction(suite.ctx, stored.TransactionID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(updated.Amount.Equal(decimal.NewFromInt(150)))
	suite.Equal(stored.CreatedBy, updated.CreatedBy)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_TypeFlipDoublesTheSwing() {
	stored := suite.storedTransaction()
	req := dto.UpdateTransactionRequest{
		Name:            stored.Name,
		TransactionType: domain.Expenditure,
		Amount:          decimal.NewFromInt(100),
		SavingAmount:    decimal.NewFromInt(70),
		CheckingAmount:  decimal.NewFromInt(30),
		GoalID:          &suite.goal.GoalID,
		TransactionDate: stored.TransactionDate,
	}

	suite.mockTxnRepo.On("FindTransactionByID", suite.ctx, stored.TransactionID).Return(stored, nil).Once()
	suite.mockGoalReader.On("FindGoalByID", suite.ctx, suite.goal.GoalID).Return(&suite.goal, nil).Once()
	suite.mockAccountSvc.On("GetCheckingAccount", suite.ctx, suite.userID).Return(&suite.checkingAcct, nil).Once()
	suite.mockAccountSvc.On("GetOrCreateCheckingAccount", suite.ctx, suite.userID).Return(&suite.checkingAcct, nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", suite.ctx, mock.AnythingOfType("domain.Transaction"),
		matchChanges(
			map[string]decimal.Decimal{suite.goal.GoalID: decimal.NewFromInt(-140)},
			map[string]decimal.Decimal{suite.checkingAcct.AccountID: decimal.NewFromInt(-60)},
		)).Return(nil).Once()

	_, err := suite.service.UpdateTransaction(suite.ctx, stored.TransactionID, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_NoOpTouchesNoBalances() {
	stored := suite.storedTransaction()
	req := dto.UpdateTransactionRequest{
		Name:            stored.Name,
		TransactionType: stored.TransactionType,
		Amount:          stored.Amount,
		SavingAmount:    stored.SavingAmount,
		CheckingAmount:  stored.CheckingAmount,
		GoalID:          stored.GoalID,
		TransactionDate: stored.TransactionDate,
	}

	suite.mockTxnRepo.On("FindTransactionByID", suite.ctx, stored.TransactionID).Return(stored, nil).Once()
	suite.mockGoalReader.On("FindGoalByID", suite.ctx, suite.goal.GoalID).Return(&suite.goal, nil).Once()
	suite.mockAccountSvc.On("GetCheckingAccount", suite.ctx, suite.userID).Return(&suite.checkingAcct, nil).Once()
	suite.mockAccountSvc.On("GetOrCreateCheckingAccount", suite.ctx, suite.userID).Return(&suite.checkingAcct, nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", suite.ctx, mock.AnythingOfType("domain.Transaction"),
		mock.MatchedBy(func(changes portsrepo.BalanceChanges) bool {
			return changes.IsEmpty()
		})).Return(nil).Once()

	_, err := suite.service.UpdateTransaction(suite.ctx, stored.TransactionID, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_InvalidSplitLeavesBalancesUntouched() {
	stored := suite.storedTransaction()
	req := dto.UpdateTransactionRequest{
		Name:            stored.Name,
		TransactionType: stored.TransactionType,
		Amount:          decimal.NewFromInt(100),
		SavingAmount:    decimal.NewFromInt(90),
		CheckingAmount:  decimal.NewFromInt(30),
		GoalID:          stored.GoalID,
		TransactionDate: stored.TransactionDate,
	}

	suite.mockTxnRepo.On("FindTransactionByID", suite.ctx, stored.TransactionID).Return(stored, nil).Once()

	updated, err := suite.service.UpdateTransaction(suite.ctx, stored.TransactionID, req, suite.userID)

	suite.Nil(updated)
	var splitErr *apperrors.SplitMismatchError
	suite.Require().ErrorAs(err, &splitErr)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything, mock.Anything)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "GetCheckingAccount", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_NotOwner() {
	stored := suite.storedTransaction()
	stored.OwnerUserID = uuid.NewString()

	suite.mockTxnRepo.On("FindTransactionByID", suite.ctx, stored.TransactionID).Return(stored, nil).Once()

	updated, err := suite.service.UpdateTransaction(suite.ctx, stored.TransactionID, dto.UpdateTransactionRequest{}, suite.userID)

	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_ReversesStoredEffect() {
	stored := suite.storedTransaction()

	suite.mockTxnRepo.On("FindTransactionByID", suite.ctx, stored.TransactionID).Return(stored, nil).Once()
	suite.mockAccountSvc.On("GetCheckingAccount", suite.ctx, suite.userID).Return(&suite.checkingAcct, nil).Once()
	suite.mockTxnRepo.On("DeleteTransaction", suite.ctx, stored.TransactionID,
		matchChanges(
			map[string]decimal.Decimal{suite.goal.GoalID: decimal.NewFromInt(-70)},
			map[string]decimal.Decimal{suite.checkingAcct.AccountID: decimal.NewFromInt(-30)},
		), suite.userID).Return(nil).Once()

	err := suite.service.DeleteTransaction(suite.ctx, stored.TransactionID, suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_NoGoalReversesIntoSavingAccount() {
	stored := suite.storedTransaction()
	stored.GoalID = nil
	stored.SavingAmount = decimal.NewFromInt(100)
	stored.CheckingAmount = decimal.NewFromInt(50)
	stored.Amount = decimal.NewFromInt(150)

	suite.mockTxnRepo.On("FindTransactionByID", suite.ctx, stored.TransactionID).Return(stored, nil).Once()
	suite.mockAccountSvc.On("GetSavingAccount", suite.ctx, suite.userID).Return(&suite.savingAccount, nil).Once()
	suite.mockAccountSvc.On("GetCheckingAccount", suite.ctx, suite.userID).Return(&suite.checkingAcct, nil).Once()
	suite.mockTxnRepo.On("DeleteTransaction", suite.ctx, stored.TransactionID,
		matchChanges(
			map[string]decimal.Decimal{},
			map[string]decimal.Decimal{
				suite.savingAccount.AccountID: decimal.NewFromInt(-100),
				suite.checkingAcct.AccountID:  decimal.NewFromInt(-50),
			},
		), suite.userID).Return(nil).Once()

	err := suite.service.DeleteTransaction(suite.ctx, stored.TransactionID, suite.userID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_MissingCheckingAccountSkipsCheckingPortion() {
	stored := suite.storedTransaction()

	suite.mockTxnRepo.On("FindTransactionByID", suite.ctx, stored.TransactionID).Return(stored, nil).Once()
	suite.mockAccountSvc.On("GetCheckingAccount", suite.ctx, suite.userID).Return(nil, apperrors.ErrMissingAccount).Once()
	suite.mockTxnRepo.On("DeleteTransaction", suite.ctx, stored.TransactionID,
		matchChanges(
			map[string]decimal.Decimal{suite.goal.GoalID: decimal.NewFromInt(-70)},
			map[string]decimal.Decimal{},
		), suite.userID).Return(nil).Once()

	err := suite.service.DeleteTransaction(suite.ctx, stored.TransactionID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "GetOrCreateCheckingAccount", mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_NotOwner() {
	stored := suite.storedTransaction()
	stored.OwnerUserID = uuid.NewString()

	suite.mockTxnRepo.On("FindTransactionByID", suite.ctx, stored.TransactionID).Return(stored, nil).Once()

	err := suite.service.DeleteTransaction(suite.ctx, stored.TransactionID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeleteTransaction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestGetTransactionByID_ObscuresOtherUsers() {
	stored := suite.storedTransaction()
	stored.OwnerUserID = uuid.NewString()

	suite.mockTxnRepo.On("FindTransactionByID", suite.ctx, stored.TransactionID).Return(stored, nil).Once()

	txn, err := suite.service.GetTransactionByID(suite.ctx, stored.TransactionID, suite.userID)

	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_DefaultsLimit() {
	suite.mockTxnRepo.On("ListTransactionsByUser", suite.ctx, suite.userID, 20, 0).Return([]domain.Transaction{}, nil).Once()

	txns, err := suite.service.ListTransactions(suite.ctx, suite.userID, dto.ListTransactionsParams{})

	suite.Require().NoError(err)
	suite.Empty(txns)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestTransactionService(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

func TestBalanceChangesIsEmpty(t *testing.T) {
	changes := portsrepo.BalanceChanges{
		GoalDeltas:    map[string]decimal.Decimal{},
		AccountDeltas: map[string]decimal.Decimal{},
	}
	assert.True(t, changes.IsEmpty())
	changes.GoalDeltas["g"] = decimal.NewFromInt(1)
	assert.False(t, changes.IsEmpty())
}
