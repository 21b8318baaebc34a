package services

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/savewise-app/savewise-backend/internal/core/domain"
	portsrepo "github.com/savewise-app/savewise-backend/internal/core/ports/repositories"
	portssvc "github.com/savewise-app/savewise-backend/internal/core/ports/services"
	"github.com/savewise-app/savewise-backend/internal/dto"
)

// reportingService aggregates a user's balances, totals and goal progress.
type reportingService struct {
	BaseService
	transactionRepo portsrepo.TransactionReader
	goalRepo        portsrepo.GoalReader
	accountRepo     portsrepo.AccountReader
}

// NewReportingService creates a new ReportingService.
func NewReportingService(transactionRepo portsrepo.TransactionReader, goalRepo portsrepo.GoalReader, accountRepo portsrepo.AccountReader) portssvc.ReportingSvcFacade {
	return &reportingService{
		transactionRepo: transactionRepo,
		goalRepo:        goalRepo,
		accountRepo:     accountRepo,
	}
}

// Ensure reportingService implements the portssvc.ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// GetSummary aggregates income/expenditure totals, account balances and
// per-goal progress for the user.
// Implements portssvc.ReportingSvcFacade
func (s *reportingService) GetSummary(ctx context.Context, requestingUserID string) (*dto.SummaryResponse, error) {
	totals, err := s.transactionRepo.SumAmountsByType(ctx, requestingUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to aggregate transaction totals")
		return nil, fmt.Errorf("failed to aggregate totals: %w", err)
	}

	accounts, err := s.accountRepo.ListAccountsByUser(ctx, requestingUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for summary")
		return nil, fmt.Errorf("failed to retrieve accounts: %w", err)
	}

	goals, err := s.goalRepo.ListGoalsByUser(ctx, requestingUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list goals for summary")
		return nil, fmt.Errorf("failed to retrieve goals: %w", err)
	}

	totalIncome := totals[domain.Income]
	totalExpenditure := totals[domain.Expenditure]

	now := time.Now().UTC()
	goalProgress := make([]dto.GoalProgressResponse, len(goals))
	for i, g := range goals {
		progress := decimal.Zero
		if g.TargetAmount.IsPositive() {
			progress = g.AmountSaved.Div(g.TargetAmount).Round(4)
		}
		goalProgress[i] = dto.GoalProgressResponse{
			GoalID:            g.GoalID,
			Name:              g.Name,
			TargetAmount:      g.TargetAmount,
			AmountSaved:       g.AmountSaved,
			Progress:          progress,
			Status:            string(g.Status),
			ProjectedInterest: g.ProjectedInterest(now).Round(domain.AmountPrecision),
		}
	}

	return &dto.SummaryResponse{
		TotalIncome:      totalIncome,
		TotalExpenditure: totalExpenditure,
		Net:              totalIncome.Sub(totalExpenditure),
		Accounts:         dto.ToAccountResponses(accounts),
		Goals:            goalProgress,
	}, nil
}
