package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/savewise-app/savewise-backend/internal/apperrors"
	"github.com/savewise-app/savewise-backend/internal/core/domain"
	portsrepo "github.com/savewise-app/savewise-backend/internal/core/ports/repositories"
	portssvc "github.com/savewise-app/savewise-backend/internal/core/ports/services"
	"github.com/savewise-app/savewise-backend/internal/dto"
)

var (
	ErrTargetNotPositive = errors.New("goal target amount must be positive")
	ErrTargetDatePast    = errors.New("goal target date must not be in the past")
)

// goalService provides savings goal operations. AmountSaved is never edited
// here; it moves only through transaction reconciliation.
type goalService struct {
	BaseService
	goalRepo portsrepo.GoalRepositoryFacade
}

// NewGoalService creates a new GoalService.
func NewGoalService(goalRepo portsrepo.GoalRepositoryFacade) portssvc.GoalSvcFacade {
	return &goalService{goalRepo: goalRepo}
}

// Ensure goalService implements the portssvc.GoalSvcFacade interface
var _ portssvc.GoalSvcFacade = (*goalService)(nil)

// CreateGoal validates and persists a new goal with derived status.
// Implements portssvc.GoalSvcFacade
func (s *goalService) CreateGoal(ctx context.Context, req dto.CreateGoalRequest, creatorUserID string) (*domain.Goal, error) {
	now := time.Now().UTC()

	if req.TargetAmount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", ErrTargetNotPositive, req.TargetAmount.String())
	}
	if dateOnly(req.TargetDate).Before(dateOnly(now)) {
		return nil, fmt.Errorf("%w: got %s", ErrTargetDatePast, req.TargetDate.Format("2006-01-02"))
	}

	goal := domain.Goal{
		GoalID:       uuid.NewString(),
		OwnerUserID:  creatorUserID,
		Name:         req.Name,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		TargetAmount: req.TargetAmount.Round(domain.AmountPrecision),
		AmountSaved:  decimal.Zero,
		InterestRate: req.InterestRate,
		TargetDate:   req.TargetDate,
		Status:       domain.DeriveGoalStatus(decimal.Zero, req.TargetAmount),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.goalRepo.SaveGoal(ctx, goal); err != nil {
		s.LogError(ctx, err, "Failed to save goal", slog.String("goal_id", goal.GoalID))
		return nil, fmt.Errorf("failed to save goal: %w", err)
	}

	s.LogInfo(ctx, "Goal created successfully",
		slog.String("goal_id", goal.GoalID),
		slog.String("target_amount", goal.TargetAmount.String()))
	return &goal, nil
}

// GetGoalByID retrieves one of the user's goals.
// Implements portssvc.GoalSvcFacade
func (s *goalService) GetGoalByID(ctx context.Context, goalID string, requestingUserID string) (*domain.Goal, error) {
	goal, err := s.goalRepo.FindGoalByID(ctx, goalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find goal by ID", slog.String("goal_id", goalID))
		}
		return nil, err
	}
	if goal.OwnerUserID != requestingUserID {
		// Obscure existence
		return nil, apperrors.ErrNotFound
	}
	return goal, nil
}

// ListGoals retrieves all goals owned by the user.
// Implements portssvc.GoalSvcFacade
func (s *goalService) ListGoals(ctx context.Context, requestingUserID string) ([]domain.Goal, error) {
	goals, err := s.goalRepo.ListGoalsByUser(ctx, requestingUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list goals")
		return nil, fmt.Errorf("failed to retrieve goals: %w", err)
	}
	return goals, nil
}

// UpdateGoal updates a goal's editable fields and re-derives its status from
// the stored saved amount and the (possibly changed) target amount.
// Implements portssvc.GoalSvcFacade
func (s *goalService) UpdateGoal(ctx context.Context, goalID string, req dto.UpdateGoalRequest, requestingUserID string) (*domain.Goal, error) {
	goal, err := s.GetGoalByID(ctx, goalID, requestingUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updated := false
	if req.Name != nil {
		goal.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		goal.Description = *req.Description
		updated = true
	}
	if req.ImageURL != nil {
		goal.ImageURL = *req.ImageURL
		updated = true
	}
	if req.TargetAmount != nil {
		if req.TargetAmount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: got %s", ErrTargetNotPositive, req.TargetAmount.String())
		}
		goal.TargetAmount = req.TargetAmount.Round(domain.AmountPrecision)
		updated = true
	}
	if req.InterestRate != nil {
		goal.InterestRate = *req.InterestRate
		updated = true
	}
	if req.TargetDate != nil {
		if dateOnly(*req.TargetDate).Before(dateOnly(now)) {
			return nil, fmt.Errorf("%w: got %s", ErrTargetDatePast, req.TargetDate.Format("2006-01-02"))
		}
		goal.TargetDate = *req.TargetDate
		updated = true
	}

	if !updated {
		s.LogDebug(ctx, "No fields provided for goal update", slog.String("goal_id", goalID))
		return goal, nil
	}

	goal.Status = domain.DeriveGoalStatus(goal.AmountSaved, goal.TargetAmount)
	goal.LastUpdatedAt = now
	goal.LastUpdatedBy = requestingUserID

	if err := s.goalRepo.UpdateGoal(ctx, *goal); err != nil {
		s.LogError(ctx, err, "Failed to persist goal update", slog.String("goal_id", goalID))
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}

	s.LogInfo(ctx, "Goal updated successfully", slog.String("goal_id", goalID))
	return goal, nil
}

// DeleteGoal removes a goal. Transactions that referenced it keep their
// recorded amounts and balances; only the goal link is cleared.
// Implements portssvc.GoalSvcFacade
func (s *goalService) DeleteGoal(ctx context.Context, goalID string, requestingUserID string) error {
	if _, err := s.GetGoalByID(ctx, goalID, requestingUserID); err != nil {
		return err
	}

	if err := s.goalRepo.DeleteGoal(ctx, goalID); err != nil {
		s.LogError(ctx, err, "Failed to delete goal", slog.String("goal_id", goalID))
		return fmt.Errorf("failed to delete goal: %w", err)
	}

	s.LogInfo(ctx, "Goal deleted successfully", slog.String("goal_id", goalID))
	return nil
}
