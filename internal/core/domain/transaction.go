package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction adds to or draws from balances.
type TransactionType string

const (
	Income      TransactionType = "INCOME"
	Expenditure TransactionType = "EXPENDITURE"
)

// AmountPrecision is the number of decimal places at which monetary amounts
// are compared and stored.
const AmountPrecision = 3

// Transaction records a single income or expenditure event, split between a
// saving portion (routed to a goal, or to the saving account when no goal is
// linked) and a checking portion (always routed to the checking account).
type Transaction struct {
	TransactionID   string          `json:"transactionID"` // Primary Key (e.g., UUID)
	OwnerUserID     string          `json:"ownerUserID"`
	Name            string          `json:"name"`
	Description     string          `json:"description"` // Nullable
	TransactionType TransactionType `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"`
	SavingAmount    decimal.Decimal `json:"savingAmount"`
	CheckingAmount  decimal.Decimal `json:"checkingAmount"`
	GoalID          *string         `json:"goalID,omitempty"` // Nullable FK -> Goal
	TransactionDate time.Time       `json:"transactionDate"`
	AuditFields
}

// Sign returns the balance direction of the transaction: +1 for income, -1
// for expenditure.
func (t Transaction) Sign() decimal.Decimal {
	if t.TransactionType == Income {
		return decimal.NewFromInt(1)
	}
	return decimal.NewFromInt(-1)
}

// SplitBalances reports whether the saving and checking portions sum to the
// total amount at AmountPrecision.
func (t Transaction) SplitBalances() bool {
	sum := t.SavingAmount.Add(t.CheckingAmount).Round(AmountPrecision)
	return sum.Equal(t.Amount.Round(AmountPrecision))
}
