package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/savewise-app/savewise-backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	goalRepo := newPgxGoalRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, goalRepo, accountRepo)

	return portsrepo.RepositoryProvider{
		UserRepo:        userRepo,
		GoalRepo:        goalRepo,
		AccountRepo:     accountRepo,
		TransactionRepo: transactionRepo,
	}
}
