package services

import (
	"context"

	"github.com/savewise-app/savewise-backend/internal/dto"
)

// ReportingSvcFacade defines read-only summary operations over a user's data.
type ReportingSvcFacade interface {
	// GetSummary aggregates income/expenditure totals, account balances and
	// per-goal progress for the user.
	GetSummary(ctx context.Context, requestingUserID string) (*dto.SummaryResponse, error)
}
