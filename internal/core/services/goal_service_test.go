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

// --- Mock GoalRepository ---
type MockGoalRepository struct {
	mock.Mock
}

var _ portsrepo.GoalRepositoryFacade = (*MockGoalRepository)(nil)

func (m *MockGoalRepository) FindGoalByID(ctx context.Context, goalID string) (*domain.Goal, error) {
	args := m.Called(ctx, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}

func (m *MockGoalRepository) ListGoalsByUser(ctx context.Context, ownerUserID string) ([]domain.Goal, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Goal), args.Error(1)
}

func (m *MockGoalRepository) SaveGoal(ctx context.Context, goal domain.Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockGoalRepository) UpdateGoal(ctx context.Context, goal domain.Goal) error {
	args := m.Called(ctx, goal)
	return args.Error(0)
}

func (m *MockGoalRepository) DeleteGoal(ctx context.Context, goalID string) error {
	args := m.Called(ctx, goalID)
	return args.Error(0)
}

func (m *MockGoalRepository) FindGoalsByIDsForUpdate(ctx context.Context, tx pgx.Tx, goalIDs []string) (map[string]domain.Goal, error) {
	args := m.Called(ctx, tx, goalIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Goal), args.Error(1)
}

func (m *MockGoalRepository) ApplyGoalDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, deltas, userID, now)
	return args.Error(0)
}

// --- Test Suite ---

type GoalServiceTestSuite struct {
	suite.Suite
	mockRepo *MockGoalRepository
	service  portssvc.GoalSvcFacade
	userID   string
	ctx      context.Context
}

func (suite *GoalServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockGoalRepository)
	suite.service = services.NewGoalService(suite.mockRepo)
	suite.userID = uuid.NewString()
	suite.ctx = context.Background()
}

func (suite *GoalServiceTestSuite) createRequest() dto.CreateGoalRequest {
	return dto.CreateGoalRequest{
		Name:         "Vacation",
		TargetAmount: decimal.NewFromInt(2000),
		InterestRate: decimal.NewFromFloat(2.5),
		TargetDate:   time.Now().UTC().AddDate(1, 0, 0),
	}
}

func (suite *GoalServiceTestSuite) storedGoal() *domain.Goal {
	return &domain.Goal{
		GoalID:       uuid.NewString(),
		OwnerUserID:  suite.userID,
		Name:         "Vacation",
		TargetAmount: decimal.NewFromInt(2000),
		AmountSaved:  decimal.NewFromInt(500),
		Status:       domain.GoalOngoing,
		TargetDate:   time.Now().UTC().AddDate(1, 0, 0),
	}
}

func (suite *GoalServiceTestSuite) TestCreateGoal_StartsNotStarted() {
	req := suite.createRequest()

	suite.mockRepo.On("SaveGoal", suite.ctx, mock.MatchedBy(func(g domain.Goal) bool {
		return g.Status == domain.GoalNotStarted && g.AmountSaved.IsZero() && g.OwnerUserID == suite.userID
	})).Return(nil).Once()

	goal, err := suite.service.CreateGoal(suite.ctx, req, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.GoalNotStarted, goal.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *GoalServiceTestSuite) TestCreateGoal_NonPositiveTarget() {
	req := suite.createRequest()
	req.TargetAmount = decimal.Zero

	goal, err := suite.service.CreateGoal(suite.ctx, req, suite.userID)

	suite.Nil(goal)
	suite.ErrorIs(err, services.ErrTargetNotPositive)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveGoal", mock.Anything, mock.Anything)
}

func (suite *GoalServiceTestSuite) TestCreateGoal_PastTargetDate() {
	req := suite.createRequest()
	req.TargetDate = time.Now().UTC().AddDate(0, 0, -2)

	goal, err := suite.service.CreateGoal(suite.ctx, req, suite.userID)

	suite.Nil(goal)
	suite.ErrorIs(err, services.ErrTargetDatePast)
}

func (suite *GoalServiceTestSuite) TestUpdateGoal_LoweredTargetCompletesGoal() {
	stored := suite.storedGoal()
	newTarget := decimal.NewFromInt(400)

	suite.mockRepo.On("FindGoalByID", suite.ctx, stored.GoalID).Return(stored, nil).Once()
	suite.mockRepo.On("UpdateGoal", suite.ctx, mock.MatchedBy(func(g domain.Goal) bool {
		return g.Status == domain.GoalCompleted && g.TargetAmount.Equal(newTarget)
	})).Return(nil).Once()

	goal, err := suite.service.UpdateGoal(suite.ctx, stored.GoalID, dto.UpdateGoalRequest{TargetAmount: &newTarget}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.GoalCompleted, goal.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *GoalServiceTestSuite) TestUpdateGoal_NoFieldsIsNoOp() {
	stored := suite.storedGoal()

	suite.mockRepo.On("FindGoalByID", suite.ctx, stored.GoalID).Return(stored, nil).Once()

	goal, err := suite.service.UpdateGoal(suite.ctx, stored.GoalID, dto.UpdateGoalRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(stored.GoalID, goal.GoalID)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateGoal", mock.Anything, mock.Anything)
}

func (suite *GoalServiceTestSuite) TestGetGoalByID_ObscuresOtherUsers() {
	stored := suite.storedGoal()
	stored.OwnerUserID = uuid.NewString()

	suite.mockRepo.On("FindGoalByID", suite.ctx, stored.GoalID).Return(stored, nil).Once()

	goal, err := suite.service.GetGoalByID(suite.ctx, stored.GoalID, suite.userID)

	suite.Nil(goal)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *GoalServiceTestSuite) TestDeleteGoal_Success() {
	stored := suite.storedGoal()

	suite.mockRepo.On("FindGoalByID", suite.ctx, stored.GoalID).Return(stored, nil).Once()
	suite.mockRepo.On("DeleteGoal", suite.ctx, stored.GoalID).Return(nil).Once()

	err := suite.service.DeleteGoal(suite.ctx, stored.GoalID, suite.userID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *GoalServiceTestSuite) TestDeleteGoal_NotOwner() {
	stored := suite.storedGoal()
	stored.OwnerUserID = uuid.NewString()

	suite.mockRepo.On("FindGoalByID", suite.ctx, stored.GoalID).Return(stored, nil).Once()

	err := suite.service.DeleteGoal(suite.ctx, stored.GoalID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteGoal", mock.Anything, mock.Anything)
}

func TestGoalService(t *testing.T) {
	suite.Run(t, new(GoalServiceTestSuite))
}
