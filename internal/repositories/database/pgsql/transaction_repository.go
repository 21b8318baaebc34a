package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/savewise-app/savewise-backend/internal/apperrors"
	"github.com/savewise-app/savewise-backend/internal/core/domain"
	portsrepo "github.com/savewise-app/savewise-backend/internal/core/ports/repositories"
	"github.com/savewise-app/savewise-backend/internal/models"
)

type PgxTransactionRepository struct {
	BaseRepository
	goalRepo    portsrepo.GoalTransactionSupport
	accountRepo portsrepo.AccountTransactionSupport
}

// newPgxTransactionRepository creates a new repository for transaction data.
// Goal and account repositories are injected so balance deltas can be applied
// inside the same database transaction as the row mutation.
func newPgxTransactionRepository(pool *pgxpool.Pool, goalRepo portsrepo.GoalTransactionSupport, accountRepo portsrepo.AccountTransactionSupport) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		goalRepo:       goalRepo,
		accountRepo:    accountRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

// Helper to convert domain.Transaction to models.Transaction for DB storage
func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		OwnerUserID:     d.OwnerUserID,
		Name:            d.Name,
		Description:     d.Description,
		TransactionType: models.TransactionType(d.TransactionType),
		Amount:          d.Amount,
		SavingAmount:    d.SavingAmount,
		CheckingAmount:  d.CheckingAmount,
		GoalID:          d.GoalID,
		TransactionDate: d.TransactionDate,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// Helper to convert models.Transaction from DB to domain.Transaction
func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		OwnerUserID:     m.OwnerUserID,
		Name:            m.Name,
		Description:     m.Description,
		TransactionType: domain.TransactionType(m.TransactionType),
		Amount:          m.Amount,
		SavingAmount:    m.SavingAmount,
		CheckingAmount:  m.CheckingAmount,
		GoalID:          m.GoalID,
		TransactionDate: m.TransactionDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const transactionColumns = `transaction_id, owner_user_id, name, description, transaction_type, amount, saving_amount, checking_amount, goal_id, transaction_date, created_at, created_by, last_updated_at, last_updated_by`

func scanTransactionRow(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.OwnerUserID,
		&m.Name,
		&m.Description,
		&m.TransactionType,
		&m.Amount,
		&m.SavingAmount,
		&m.CheckingAmount,
		&m.GoalID,
		&m.TransactionDate,
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

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// lockAndApplyChanges locks the touched goal and account rows in a stable
// order and applies the balance deltas. Must run inside tx.
func (r *PgxTransactionRepository) lockAndApplyChanges(ctx context.Context, tx pgx.Tx, changes portsrepo.BalanceChanges, userID string, now time.Time) error {
	if changes.IsEmpty() {
		return nil
	}

	// Lock in a deterministic order so concurrent reconciliations against the
	// same rows cannot deadlock.
	if _, err := r.goalRepo.FindGoalsByIDsForUpdate(ctx, tx, sortedKeys(changes.GoalDeltas)); err != nil {
		return fmt.Errorf("failed to lock goals for update: %w", err)
	}
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, sortedKeys(changes.AccountDeltas)); err != nil {
		return fmt.Errorf("failed to lock accounts for update: %w", err)
	}

	if err := r.goalRepo.ApplyGoalDeltasInTx(ctx, tx, changes.GoalDeltas, userID, now); err != nil {
		return fmt.Errorf("failed to apply goal deltas: %w", err)
	}
	if err := r.accountRepo.ApplyAccountDeltasInTx(ctx, tx, changes.AccountDeltas, userID, now); err != nil {
		return fmt.Errorf("failed to apply account deltas: %w", err)
	}
	return nil
}

// SaveTransaction inserts the transaction row and applies its balance changes
// within a single database transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, changes portsrepo.BalanceChanges) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelTxn := toModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err = tx.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.OwnerUserID,
		modelTxn.Name,
		modelTxn.Description,
		modelTxn.TransactionType,
		modelTxn.Amount,
		modelTxn.SavingAmount,
		modelTxn.CheckingAmount,
		modelTxn.GoalID,
		modelTxn.TransactionDate,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %s: %w", modelTxn.TransactionID, err)
	}

	if err := r.lockAndApplyChanges(ctx, tx, changes, txn.CreatedBy, txn.CreatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateTransaction overwrites the transaction row and applies the combined
// undo-then-apply balance changes within a single database transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, changes portsrepo.BalanceChanges) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelTxn := toModelTransaction(txn)
	query := `
		UPDATE transactions
		SET name = $2, description = $3, transaction_type = $4, amount = $5, saving_amount = $6, checking_amount = $7, goal_id = $8, transaction_date = $9, last_updated_at = $10, last_updated_by = $11
		WHERE transaction_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.Name,
		modelTxn.Description,
		modelTxn.TransactionType,
		modelTxn.Amount,
		modelTxn.SavingAmount,
		modelTxn.CheckingAmount,
		modelTxn.GoalID,
		modelTxn.TransactionDate,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", modelTxn.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.lockAndApplyChanges(ctx, tx, changes, txn.LastUpdatedBy, txn.LastUpdatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteTransaction removes the transaction row and applies its reversal
// changes within a single database transaction.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, changes portsrepo.BalanceChanges, deletedByUserID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	cmdTag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := r.lockAndApplyChanges(ctx, tx, changes, deletedByUserID, time.Now()); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransactionRow(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	domainTxn := toDomainTransaction(*m)
	return &domainTxn, nil
}

func (r *PgxTransactionRepository) ListTransactionsByUser(ctx context.Context, ownerUserID string, limit int, offset int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE owner_user_id = $1
		ORDER BY transaction_date DESC, created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, ownerUserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for user %s: %w", ownerUserID, err)
	}
	defer rows.Close()

	txns := make([]domain.Transaction, 0, limit)
	for rows.Next() {
		m, err := scanTransactionRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, toDomainTransaction(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

// SumAmountsByType aggregates a user's transaction totals per transaction type.
// Types with no transactions are absent from the result.
func (r *PgxTransactionRepository) SumAmountsByType(ctx context.Context, ownerUserID string) (map[domain.TransactionType]decimal.Decimal, error) {
	query := `
		SELECT transaction_type, COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE owner_user_id = $1
		GROUP BY transaction_type;
	`
	rows, err := r.Pool.Query(ctx, query, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum transactions for user %s: %w", ownerUserID, err)
	}
	defer rows.Close()

	sums := make(map[domain.TransactionType]decimal.Decimal)
	for rows.Next() {
		var txnType string
		var total decimal.Decimal
		if err := rows.Scan(&txnType, &total); err != nil {
			return nil, fmt.Errorf("failed to scan transaction sum row: %w", err)
		}
		sums[domain.TransactionType(txnType)] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction sum rows: %w", err)
	}
	return sums, nil
}
