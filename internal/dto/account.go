package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/savewise-app/savewise-backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to bootstrap an account.
// Balance is the opening balance; subsequent changes flow only through
// transaction reconciliation.
type CreateAccountRequest struct {
	Kind    domain.AccountKind `json:"kind" binding:"required,oneof=SAVING CHECKING"`
	Name    string             `json:"name"`
	Balance decimal.Decimal    `json:"balance"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateAccountRequest struct {
	Name    *string          `json:"name"`
	Balance *decimal.Decimal `json:"balance"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID   string          `json:"accountID"`
	Kind        string          `json:"kind"`
	Name        string          `json:"name"`
	Balance     decimal.Decimal `json:"balance"`
	LastUpdated time.Time       `json:"lastUpdated"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:   a.AccountID,
		Kind:        string(a.Kind),
		Name:        a.Name,
		Balance:     a.Balance,
		LastUpdated: a.LastUpdated,
	}
}

// ToAccountResponses converts a slice of domain.Account to []AccountResponse.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		responses[i] = ToAccountResponse(&a)
	}
	return responses
}
