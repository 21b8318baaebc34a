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

	"github.com/savewise-app/savewise-backend/internal/apperrors"
	"github.com/savewise-app/savewise-backend/internal/core/domain"
	portsrepo "github.com/savewise-app/savewise-backend/internal/core/ports/repositories"
	portssvc "github.com/savewise-app/savewise-backend/internal/core/ports/services"
	"github.com/savewise-app/savewise-backend/internal/core/services"
	"github.com/savewise-app/savewise-backend/internal/dto"
)

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByKind(ctx context.Context, ownerUserID string, kind domain.AccountKind) (*domain.Account, error) {
	args := m.Called(ctx, ownerUserID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccountsByUser(ctx context.Context, ownerUserID string) ([]domain.Account, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyAccountDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, deltas, userID, now)
	return args.Error(0)
}

// --- Test Suite ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
	userID   string
	ctx      context.Context
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockRepo)
	suite.userID = uuid.NewString()
	suite.ctx = context.Background()
}

func (suite *AccountServiceTestSuite) savingAccount() *domain.Account {
	return &domain.Account{
		AccountID:   uuid.NewString(),
		OwnerUserID: suite.userID,
		Kind:        domain.Saving,
		Name:        "Savings",
		Balance:     decimal.NewFromInt(250),
	}
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DefaultsName() {
	req := dto.CreateAccountRequest{Kind: domain.Saving, Balance: decimal.NewFromInt(100)}

	suite.mockRepo.On("FindAccountByKind", suite.ctx, suite.userID, domain.Saving).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", suite.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == "Savings" && a.Kind == domain.Saving && a.Balance.Equal(decimal.NewFromInt(100))
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(suite.ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Savings", account.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateKind() {
	req := dto.CreateAccountRequest{Kind: domain.Saving}

	suite.mockRepo.On("FindAccountByKind", suite.ctx, suite.userID, domain.Saving).Return(suite.savingAccount(), nil).Once()

	account, err := suite.service.CreateAccount(suite.ctx, req, suite.userID)

	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestGetSavingAccount_MissingIsTolerable() {
	suite.mockRepo.On("FindAccountByKind", suite.ctx, suite.userID, domain.Saving).Return(nil, apperrors.ErrNotFound).Once()

	account, err := suite.service.GetSavingAccount(suite.ctx, suite.userID)

	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrMissingAccount)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_ObscuresOtherUsers() {
	other := suite.savingAccount()
	other.OwnerUserID = uuid.NewString()

	suite.mockRepo.On("FindAccountByID", suite.ctx, other.AccountID).Return(other, nil).Once()

	account, err := suite.service.GetAccountByID(suite.ctx, other.AccountID, suite.userID)

	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestGetOrCreateCheckingAccount_CreatesZeroBalance() {
	suite.mockRepo.On("FindAccountByKind", suite.ctx, suite.userID, domain.Checking).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", suite.ctx, mock.MatchedBy(func(a domain.Account) bool {
		return a.Kind == domain.Checking && a.Balance.IsZero() && a.OwnerUserID == suite.userID
	})).Return(nil).Once()

	account, err := suite.service.GetOrCreateCheckingAccount(suite.ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Checking, account.Kind)
	suite.True(account.Balance.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetOrCreateCheckingAccount_RaceRefetches() {
	existing := &domain.Account{
		AccountID:   uuid.NewString(),
		OwnerUserID: suite.userID,
		Kind:        domain.Checking,
		Name:        "Checking",
	}

	suite.mockRepo.On("FindAccountByKind", suite.ctx, suite.userID, domain.Checking).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRepo.On("SaveAccount", suite.ctx, mock.AnythingOfType("domain.Account")).Return(apperrors.ErrDuplicate).Once()
	suite.mockRepo.On("FindAccountByKind", suite.ctx, suite.userID, domain.Checking).Return(existing, nil).Once()

	account, err := suite.service.GetOrCreateCheckingAccount(suite.ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(existing.AccountID, account.AccountID)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_ProtectedAccountRejected() {
	account := suite.savingAccount()
	newName := "Renamed"

	suite.mockRepo.On("FindAccountByID", suite.ctx, account.AccountID).Return(account, nil).Once()

	updated, err := suite.service.UpdateAccount(suite.ctx, account.AccountID, dto.UpdateAccountRequest{Name: &newName}, suite.userID)

	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrImmutableAccount)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestListAccounts() {
	accounts := []domain.Account{*suite.savingAccount()}

	suite.mockRepo.On("ListAccountsByUser", suite.ctx, suite.userID).Return(accounts, nil).Once()

	got, err := suite.service.ListAccounts(suite.ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Len(got, 1)
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
