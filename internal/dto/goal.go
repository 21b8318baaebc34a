package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/savewise-app/savewise-backend/internal/core/domain"
)

// CreateGoalRequest defines the data needed to create a savings goal.
type CreateGoalRequest struct {
	Name         string          `json:"name" binding:"required"`
	Description  string          `json:"description"`
	ImageURL     string          `json:"imageURL"`
	TargetAmount decimal.Decimal `json:"targetAmount" binding:"required,decimalgtzero"`
	InterestRate decimal.Decimal `json:"interestRate"` // Annual percentage, defaults to zero
	TargetDate   time.Time       `json:"targetDate" binding:"required"`
}

// UpdateGoalRequest defines the data allowed for updating a goal.
// Using pointers to differentiate between omitted fields and zero-value fields.
// AmountSaved is deliberately absent: it only moves through reconciliation.
type UpdateGoalRequest struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	ImageURL     *string          `json:"imageURL"`
	TargetAmount *decimal.Decimal `json:"targetAmount"`
	InterestRate *decimal.Decimal `json:"interestRate"`
	TargetDate   *time.Time       `json:"targetDate"`
}

// GoalResponse defines the data returned for a goal.
type GoalResponse struct {
	GoalID       string          `json:"goalID"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	ImageURL     string          `json:"imageURL,omitempty"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	AmountSaved  decimal.Decimal `json:"amountSaved"`
	InterestRate decimal.Decimal `json:"interestRate"`
	TargetDate   time.Time       `json:"targetDate"`
	Status       string          `json:"status"`
	Progress     decimal.Decimal `json:"progress"` // AmountSaved / TargetAmount, rounded
	CreatedAt    time.Time       `json:"createdAt"`
}

// ToGoalResponse converts a domain.Goal to GoalResponse DTO.
func ToGoalResponse(g *domain.Goal) GoalResponse {
	progress := decimal.Zero
	if g.TargetAmount.IsPositive() {
		progress = g.AmountSaved.Div(g.TargetAmount).Round(4)
	}
	return GoalResponse{
		GoalID:       g.GoalID,
		Name:         g.Name,
		Description:  g.Description,
		ImageURL:     g.ImageURL,
		TargetAmount: g.TargetAmount,
		AmountSaved:  g.AmountSaved,
		InterestRate: g.InterestRate,
		TargetDate:   g.TargetDate,
		Status:       string(g.Status),
		Progress:     progress,
		CreatedAt:    g.CreatedAt,
	}
}

// ToGoalResponses converts a slice of domain.Goal to []GoalResponse.
func ToGoalResponses(goals []domain.Goal) []GoalResponse {
	responses := make([]GoalResponse, len(goals))
	for i, g := range goals {
		responses[i] = ToGoalResponse(&g)
	}
	return responses
}
