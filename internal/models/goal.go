package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalStatus mirrors domain.GoalStatus for storage.
type GoalStatus string

// Goal represents a savings goal row as stored in the database.
type Goal struct {
	GoalID       string          `db:"goal_id"`
	OwnerUserID  string          `db:"owner_user_id"`
	Name         string          `db:"name"`
	Description  string          `db:"description"`
	ImageURL     string          `db:"image_url"`
	TargetAmount decimal.Decimal `db:"target_amount"`
	AmountSaved  decimal.Decimal `db:"amount_saved"`
	InterestRate decimal.Decimal `db:"interest_rate"`
	TargetDate   time.Time       `db:"target_date"`
	Status       GoalStatus      `db:"status"`
	AuditFields
}
