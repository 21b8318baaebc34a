package services

import (
	"context"

	"github.com/savewise-app/savewise-backend/internal/core/domain"
	"github.com/savewise-app/savewise-backend/internal/dto"
)

// AccountReaderSvc defines read operations for accounts
type AccountReaderSvc interface {
	// GetAccountByID retrieves one of the user's accounts.
	GetAccountByID(ctx context.Context, accountID string, requestingUserID string) (*domain.Account, error)

	// GetSavingAccount retrieves the user's saving account, or
	// apperrors.ErrMissingAccount when none exists.
	GetSavingAccount(ctx context.Context, ownerUserID string) (*domain.Account, error)

	// GetCheckingAccount retrieves the user's checking account, or
	// apperrors.ErrMissingAccount when none exists.
	GetCheckingAccount(ctx context.Context, ownerUserID string) (*domain.Account, error)

	// ListAccounts retrieves the user's saving/checking accounts.
	ListAccounts(ctx context.Context, requestingUserID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for accounts
type AccountWriterSvc interface {
	// CreateAccount bootstraps a saving or checking account for the user.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// GetOrCreateCheckingAccount returns the user's checking account,
	// creating it with a zero balance when absent.
	GetOrCreateCheckingAccount(ctx context.Context, ownerUserID string) (*domain.Account, error)

	// UpdateAccount updates an account's details. Protected saving/checking
	// accounts reject direct modification with apperrors.ErrImmutableAccount.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
