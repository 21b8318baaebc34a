package services

import (
	"context"

	"github.com/savewise-app/savewise-backend/internal/core/domain"
	"github.com/savewise-app/savewise-backend/internal/dto"
)

// GoalReaderSvc defines read operations for goals
type GoalReaderSvc interface {
	// GetGoalByID retrieves one of the user's goals.
	GetGoalByID(ctx context.Context, goalID string, requestingUserID string) (*domain.Goal, error)

	// ListGoals retrieves all goals owned by the user.
	ListGoals(ctx context.Context, requestingUserID string) ([]domain.Goal, error)
}

// GoalWriterSvc defines write operations for goals
type GoalWriterSvc interface {
	// CreateGoal validates and persists a new goal with derived status.
	CreateGoal(ctx context.Context, req dto.CreateGoalRequest, creatorUserID string) (*domain.Goal, error)

	// UpdateGoal updates a goal's editable fields and re-derives its status.
	UpdateGoal(ctx context.Context, goalID string, req dto.UpdateGoalRequest, requestingUserID string) (*domain.Goal, error)

	// DeleteGoal removes a goal; transactions that referenced it keep their
	// balances and lose only the goal link.
	DeleteGoal(ctx context.Context, goalID string, requestingUserID string) error
}

// GoalSvcFacade combines all goal-related service interfaces
type GoalSvcFacade interface {
	GoalReaderSvc
	GoalWriterSvc
}
