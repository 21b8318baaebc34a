package services

import (
	"context"

	"github.com/savewise-app/savewise-backend/internal/core/domain"
	"github.com/savewise-app/savewise-backend/internal/dto"
)

// TransactionReaderSvc defines read operations for transactions
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves one of the user's transactions.
	GetTransactionByID(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error)

	// ListTransactions retrieves a paginated list of the user's transactions.
	ListTransactions(ctx context.Context, requestingUserID string, params dto.ListTransactionsParams) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines the reconciliation-bearing write operations.
// Every write validates first and then adjusts goal/account balances
// atomically with the transaction row.
type TransactionWriterSvc interface {
	// CreateTransaction validates and persists a new transaction, applying
	// its full effect to the linked goal (or saving account) and the
	// checking account.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	// UpdateTransaction validates the new state, undoes the stored state's
	// effect and applies the new state's effect as one atomic adjustment.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, requestingUserID string) (*domain.Transaction, error)

	// DeleteTransaction reverses the transaction's stored effect in full and
	// removes the record.
	DeleteTransaction(ctx context.Context, transactionID string, requestingUserID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
