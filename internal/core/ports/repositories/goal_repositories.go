package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/savewise-app/savewise-backend/internal/core/domain"
)

// GoalReader defines read operations for goal data
type GoalReader interface {
	// FindGoalByID retrieves a specific goal by its unique identifier.
	FindGoalByID(ctx context.Context, goalID string) (*domain.Goal, error)

	// ListGoalsByUser retrieves all goals owned by a user, newest first.
	ListGoalsByUser(ctx context.Context, ownerUserID string) ([]domain.Goal, error)
}

// GoalWriter defines write operations for goal data
type GoalWriter interface {
	// SaveGoal persists a new goal.
	SaveGoal(ctx context.Context, goal domain.Goal) error

	// UpdateGoal updates an existing goal's details.
	UpdateGoal(ctx context.Context, goal domain.Goal) error

	// DeleteGoal removes a goal and clears the goal reference on any
	// transactions that pointed at it. Balances are left untouched.
	DeleteGoal(ctx context.Context, goalID string) error
}

// GoalTransactionSupport defines goal operations used inside reconciliation
// database transactions.
type GoalTransactionSupport interface {
	// FindGoalsByIDsForUpdate selects goals and locks their rows for update.
	FindGoalsByIDsForUpdate(ctx context.Context, tx pgx.Tx, goalIDs []string) (map[string]domain.Goal, error)

	// ApplyGoalDeltasInTx adds each delta to the goal's saved amount and
	// recomputes the derived status, within the given transaction.
	ApplyGoalDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, userID string, now time.Time) error
}

// GoalRepositoryFacade combines all goal-related repository interfaces
type GoalRepositoryFacade interface {
	GoalReader
	GoalWriter
	GoalTransactionSupport
}
