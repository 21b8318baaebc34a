package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/savewise-app/savewise-backend/internal/apperrors"
	"github.com/savewise-app/savewise-backend/internal/core/domain"
	portsrepo "github.com/savewise-app/savewise-backend/internal/core/ports/repositories"
	"github.com/savewise-app/savewise-backend/internal/models"
)

type PgxGoalRepository struct {
	BaseRepository
}

// newPgxGoalRepository creates a new repository for goal data.
func newPgxGoalRepository(pool *pgxpool.Pool) portsrepo.GoalRepositoryFacade {
	return &PgxGoalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxGoalRepository implements portsrepo.GoalRepositoryFacade
var _ portsrepo.GoalRepositoryFacade = (*PgxGoalRepository)(nil)

// Helper to convert domain.Goal to models.Goal for DB storage
func toModelGoal(d domain.Goal) models.Goal {
	return models.Goal{
		GoalID:       d.GoalID,
		OwnerUserID:  d.OwnerUserID,
		Name:         d.Name,
		Description:  d.Description,
		ImageURL:     d.ImageURL,
		TargetAmount: d.TargetAmount,
		AmountSaved:  d.AmountSaved,
		InterestRate: d.InterestRate,
		TargetDate:   d.TargetDate,
		Status:       models.GoalStatus(d.Status),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// Helper to convert models.Goal from DB to domain.Goal
func toDomainGoal(m models.Goal) domain.Goal {
	return domain.Goal{
		GoalID:       m.GoalID,
		OwnerUserID:  m.OwnerUserID,
		Name:         m.Name,
		Description:  m.Description,
		ImageURL:     m.ImageURL,
		TargetAmount: m.TargetAmount,
		AmountSaved:  m.AmountSaved,
		InterestRate: m.InterestRate,
		TargetDate:   m.TargetDate,
		Status:       domain.GoalStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const goalColumns = `goal_id, owner_user_id, name, description, image_url, target_amount, amount_saved, interest_rate, target_date, status, created_at, created_by, last_updated_at, last_updated_by`

func scanGoalRow(row pgx.Row) (*models.Goal, error) {
	var m models.Goal
	err := row.Scan(
		&m.GoalID,
		&m.OwnerUserID,
		&m.Name,
		&m.Description,
		&m.ImageURL,
		&m.TargetAmount,
		&m.AmountSaved,
		&m.InterestRate,
		&m.TargetDate,
		&m.Status,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveGoal inserts a new goal.
func (r *PgxGoalRepository) SaveGoal(ctx context.Context, goal domain.Goal) error {
	modelGoal := toModelGoal(goal)
	query := `
		INSERT INTO goals (goal_id, owner_user_id, name, description, image_url, target_amount, amount_saved, interest_rate, target_date, status, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelGoal.GoalID,
		modelGoal.OwnerUserID,
		modelGoal.Name,
		modelGoal.Description,
		modelGoal.ImageURL,
		modelGoal.TargetAmount,
		modelGoal.AmountSaved,
		modelGoal.InterestRate,
		modelGoal.TargetDate,
		modelGoal.Status,
		modelGoal.CreatedAt,
		modelGoal.CreatedBy,
		modelGoal.LastUpdatedAt,
		modelGoal.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save goal %s: %w", modelGoal.GoalID, err)
	}
	return nil
}

func (r *PgxGoalRepository) FindGoalByID(ctx context.Context, goalID string) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE goal_id = $1;`
	m, err := scanGoalRow(r.Pool.QueryRow(ctx, query, goalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find goal by ID %s: %w", goalID, err)
	}
	domainGoal := toDomainGoal(*m)
	return &domainGoal, nil
}

func (r *PgxGoalRepository) ListGoalsByUser(ctx context.Context, ownerUserID string) ([]domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE owner_user_id = $1 ORDER BY created_at DESC;`
	rows, err := r.Pool.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals for user %s: %w", ownerUserID, err)
	}
	defer rows.Close()

	goals := make([]domain.Goal, 0)
	for rows.Next() {
		m, err := scanGoalRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal row: %w", err)
		}
		goals = append(goals, toDomainGoal(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goal rows: %w", err)
	}
	return goals, nil
}

func (r *PgxGoalRepository) UpdateGoal(ctx context.Context, goal domain.Goal) error {
	modelGoal := toModelGoal(goal)
	query := `
		UPDATE goals
		SET name = $2, description = $3, image_url = $4, target_amount = $5, interest_rate = $6, target_date = $7, status = $8, last_updated_at = $9, last_updated_by = $10
		WHERE goal_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelGoal.GoalID,
		modelGoal.Name,
		modelGoal.Description,
		modelGoal.ImageURL,
		modelGoal.TargetAmount,
		modelGoal.InterestRate,
		modelGoal.TargetDate,
		modelGoal.Status,
		modelGoal.LastUpdatedAt,
		modelGoal.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update goal %s: %w", modelGoal.GoalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteGoal removes the goal row. Transactions that referenced it keep their
// amounts but lose the link via the ON DELETE SET NULL constraint, so past
// balance effects stay in place.
func (r *PgxGoalRepository) DeleteGoal(ctx context.Context, goalID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM goals WHERE goal_id = $1;`, goalID)
	if err != nil {
		return fmt.Errorf("failed to delete goal %s: %w", goalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindGoalsByIDsForUpdate retrieves multiple goals by IDs and locks the rows for update.
// Must be called within a transaction.
func (r *PgxGoalRepository) FindGoalsByIDsForUpdate(ctx context.Context, tx pgx.Tx, goalIDs []string) (map[string]domain.Goal, error) {
	if len(goalIDs) == 0 {
		return map[string]domain.Goal{}, nil
	}

	query := `SELECT ` + goalColumns + ` FROM goals WHERE goal_id = ANY($1) FOR UPDATE;`
	rows, err := tx.Query(ctx, query, goalIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals by IDs for update: %w", err)
	}
	defer rows.Close()

	goalsMap := make(map[string]domain.Goal, len(goalIDs))
	for rows.Next() {
		m, err := scanGoalRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked goal row: %w", err)
		}
		goalsMap[m.GoalID] = toDomainGoal(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating locked goal rows: %w", err)
	}

	for _, id := range goalIDs {
		if _, ok := goalsMap[id]; !ok {
			return nil, fmt.Errorf("%w: goal %s", apperrors.ErrNotFound, id)
		}
	}
	return goalsMap, nil
}

// ApplyGoalDeltasInTx adds each delta to the goal's saved amount and recomputes
// the derived status from the new amount, within a transaction. Callers must
// have locked the rows first so the status recomputation sees stable amounts.
func (r *PgxGoalRepository) ApplyGoalDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, userID string, now time.Time) error {
	if len(deltas) == 0 {
		return nil
	}

	query := `
		UPDATE goals
		SET amount_saved = COALESCE(amount_saved, 0) + $2,
		    status = CASE
		        WHEN COALESCE(amount_saved, 0) + $2 >= target_amount THEN 'COMPLETED'
		        WHEN COALESCE(amount_saved, 0) + $2 > 0 THEN 'ONGOING'
		        ELSE 'NOT_STARTED'
		    END,
		    last_updated_at = $3, last_updated_by = $4
		WHERE goal_id = $1;
	`

	batch := &pgx.Batch{}
	goalIDs := make([]string, 0, len(deltas))
	for goalID, delta := range deltas {
		if !delta.IsZero() {
			batch.Queue(query, goalID, delta, now, userID)
			goalIDs = append(goalIDs, goalID)
		}
	}
	if batch.Len() == 0 {
		return nil
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for i := 0; i < batch.Len(); i++ {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to update saved amount for goal %s: %w", goalIDs[i], err)
			}
		} else if ct.RowsAffected() == 0 {
			if batchErr == nil {
				batchErr = fmt.Errorf("%w: goal %s during saved amount update", apperrors.ErrNotFound, goalIDs[i])
			}
		}
	}
	if closeErr := br.Close(); closeErr != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close goal delta batch: %w", closeErr)
	}
	return batchErr
}
