package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/savewise-app/savewise-backend/internal/core/domain"
)

// CreateTransactionRequest defines the data needed to record a transaction.
// SavingAmount plus CheckingAmount must equal Amount at the stored precision;
// the split invariant is enforced by the service before any balance changes.
type CreateTransactionRequest struct {
	Name            string                 `json:"name" binding:"required"`
	Description     string                 `json:"description"`
	TransactionType domain.TransactionType `json:"transactionType" binding:"required,oneof=INCOME EXPENDITURE"`
	Amount          decimal.Decimal        `json:"amount" binding:"required,decimalgtzero"`
	SavingAmount    decimal.Decimal        `json:"savingAmount"`
	CheckingAmount  decimal.Decimal        `json:"checkingAmount"`
	GoalID          *string                `json:"goalID"` // Route the saving portion to this goal; nil routes it to the saving account
	TransactionDate time.Time              `json:"transactionDate" binding:"required"`
}

// UpdateTransactionRequest carries the full replacement state for an edit.
// Reconciliation needs the complete new split, so partial updates of the
// monetary fields are not supported.
type UpdateTransactionRequest struct {
	Name            string                 `json:"name" binding:"required"`
	Description     string                 `json:"description"`
	TransactionType domain.TransactionType `json:"transactionType" binding:"required,oneof=INCOME EXPENDITURE"`
	Amount          decimal.Decimal        `json:"amount" binding:"required,decimalgtzero"`
	SavingAmount    decimal.Decimal        `json:"savingAmount"`
	CheckingAmount  decimal.Decimal        `json:"checkingAmount"`
	GoalID          *string                `json:"goalID"`
	TransactionDate time.Time              `json:"transactionDate" binding:"required"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID   string          `json:"transactionID"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	TransactionType string          `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"`
	SavingAmount    decimal.Decimal `json:"savingAmount"`
	CheckingAmount  decimal.Decimal `json:"checkingAmount"`
	GoalID          *string         `json:"goalID,omitempty"`
	TransactionDate time.Time       `json:"transactionDate"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		Name:            txn.Name,
		Description:     txn.Description,
		TransactionType: string(txn.TransactionType),
		Amount:          txn.Amount,
		SavingAmount:    txn.SavingAmount,
		CheckingAmount:  txn.CheckingAmount,
		GoalID:          txn.GoalID,
		TransactionDate: txn.TransactionDate,
		CreatedAt:       txn.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToTransactionResponse(&txn)
	}
	return responses
}
