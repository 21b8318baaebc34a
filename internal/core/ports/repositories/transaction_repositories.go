package repositories

import (
	"context"

	"github.com/savewise-app/savewise-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceChanges carries the signed balance deltas a reconciliation must apply
// atomically alongside the transaction row itself. Keys are goal IDs and
// account IDs respectively; values are added to the stored balances.
type BalanceChanges struct {
	GoalDeltas    map[string]decimal.Decimal
	AccountDeltas map[string]decimal.Decimal
}

// IsEmpty reports whether the change set touches no rows.
func (b BalanceChanges) IsEmpty() bool {
	return len(b.GoalDeltas) == 0 && len(b.AccountDeltas) == 0
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByUser retrieves a paginated list of a user's transactions,
	// newest transaction date first.
	ListTransactionsByUser(ctx context.Context, ownerUserID string, limit int, offset int) ([]domain.Transaction, error)

	// SumAmountsByType aggregates a user's transaction totals per transaction type.
	SumAmountsByType(ctx context.Context, ownerUserID string) (map[domain.TransactionType]decimal.Decimal, error)
}

// TransactionWriter defines write operations for transaction data. Each write
// applies the supplied balance changes to the touched goal and account rows in
// the same database transaction as the row mutation.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction and applies its balance changes.
	SaveTransaction(ctx context.Context, txn domain.Transaction, changes BalanceChanges) error

	// UpdateTransaction overwrites an existing transaction and applies the
	// undo-then-apply balance changes computed by the service.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, changes BalanceChanges) error

	// DeleteTransaction removes a transaction and applies its reversal changes.
	DeleteTransaction(ctx context.Context, transactionID string, changes BalanceChanges, deletedByUserID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
