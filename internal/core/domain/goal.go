package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalStatus indicates how far along a savings goal is, derived from its amounts.
type GoalStatus string

const (
	GoalNotStarted GoalStatus = "NOT_STARTED"
	GoalOngoing    GoalStatus = "ONGOING"
	GoalCompleted  GoalStatus = "COMPLETED"
)

// Goal represents a savings target owned by a single user.
// AmountSaved is mutated exclusively by transaction reconciliation; it may go
// negative or exceed the target transiently.
type Goal struct {
	GoalID       string          `json:"goalID"` // Primary Key (e.g., UUID)
	OwnerUserID  string          `json:"ownerUserID"`
	Name         string          `json:"name"`
	Description  string          `json:"description"` // Nullable
	ImageURL     string          `json:"imageURL"`    // Nullable, set by the media layer
	TargetAmount decimal.Decimal `json:"targetAmount"`
	AmountSaved  decimal.Decimal `json:"amountSaved"`
	InterestRate decimal.Decimal `json:"interestRate"` // Annual percentage, may be zero
	TargetDate   time.Time       `json:"targetDate"`
	Status       GoalStatus      `json:"status"`
	AuditFields
}

// DeriveGoalStatus computes the status implied by the saved and target amounts.
func DeriveGoalStatus(amountSaved, targetAmount decimal.Decimal) GoalStatus {
	switch {
	case amountSaved.GreaterThanOrEqual(targetAmount):
		return GoalCompleted
	case amountSaved.GreaterThan(decimal.Zero):
		return GoalOngoing
	default:
		return GoalNotStarted
	}
}

// ProjectedInterest returns the simple interest the target amount would earn
// at the goal's rate between asOf and the target date. Past-due goals earn zero.
func (g Goal) ProjectedInterest(asOf time.Time) decimal.Decimal {
	days := decimal.NewFromFloat(g.TargetDate.Sub(asOf).Hours() / 24)
	if days.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	years := days.Div(decimal.NewFromInt(365))
	return g.TargetAmount.Mul(g.InterestRate.Div(decimal.NewFromInt(100))).Mul(years)
}
