package dto

import (
	"github.com/shopspring/decimal"
)

// GoalProgressResponse represents one goal's progress within the summary.
type GoalProgressResponse struct {
	GoalID            string          `json:"goalID"`
	Name              string          `json:"name"`
	TargetAmount      decimal.Decimal `json:"targetAmount"`
	AmountSaved       decimal.Decimal `json:"amountSaved"`
	Progress          decimal.Decimal `json:"progress"` // AmountSaved / TargetAmount, rounded
	Status            string          `json:"status"`
	ProjectedInterest decimal.Decimal `json:"projectedInterest"`
}

// SummaryResponse represents the user's financial summary.
type SummaryResponse struct {
	TotalIncome      decimal.Decimal        `json:"totalIncome"`
	TotalExpenditure decimal.Decimal        `json:"totalExpenditure"`
	Net              decimal.Decimal        `json:"net"`
	Accounts         []AccountResponse      `json:"accounts"`
	Goals            []GoalProgressResponse `json:"goals"`
}
