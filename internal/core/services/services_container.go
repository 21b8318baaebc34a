package services

import (
	portsrepo "github.com/savewise-app/savewise-backend/internal/core/ports/repositories"
	portssvc "github.com/savewise-app/savewise-backend/internal/core/ports/services"
	"github.com/savewise-app/savewise-backend/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg, container.User)
	container.Goal = NewGoalService(repos.GoalRepo)
	container.Account = NewAccountService(repos.AccountRepo)
	// The transaction service is the reconciliation engine; it routes balance
	// deltas through the goal and account layers set up above.
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.GoalRepo, container.Account)
	container.Reporting = NewReportingService(repos.TransactionRepo, repos.GoalRepo, repos.AccountRepo)

	return container
}
