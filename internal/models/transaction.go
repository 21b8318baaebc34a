package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType mirrors domain.TransactionType for storage.
type TransactionType string

// Transaction represents an income or expenditure row as stored in the database.
// Note: amounts use a precise decimal type like github.com/shopspring/decimal
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	OwnerUserID     string          `db:"owner_user_id"`
	Name            string          `db:"name"`
	Description     string          `db:"description"`
	TransactionType TransactionType `db:"transaction_type"`
	Amount          decimal.Decimal `db:"amount"`
	SavingAmount    decimal.Decimal `db:"saving_amount"`
	CheckingAmount  decimal.Decimal `db:"checking_amount"`
	GoalID          *string         `db:"goal_id"`
	TransactionDate time.Time       `db:"transaction_date"`
	AuditFields
}
