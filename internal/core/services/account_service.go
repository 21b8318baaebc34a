package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/savewise-app/savewise-backend/internal/apperrors"
	"github.com/savewise-app/savewise-backend/internal/core/domain"
	portsrepo "github.com/savewise-app/savewise-backend/internal/core/ports/repositories"
	portssvc "github.com/savewise-app/savewise-backend/internal/core/ports/services"
	"github.com/savewise-app/savewise-backend/internal/dto"
)

// Default display names for the single saving/checking account pair.
const (
	savingAccountName   = "Savings"
	checkingAccountName = "Checking"
)

// accountService manages each user's saving/checking account pair. Balances
// move only through transaction reconciliation; the service rejects direct
// edits to protected accounts.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo}
}

// Ensure accountService implements the portssvc.AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount bootstraps a saving or checking account for the user. Each
// user holds at most one account per kind.
// Implements portssvc.AccountSvcFacade
func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	existing, err := s.accountRepo.FindAccountByKind(ctx, creatorUserID, req.Kind)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check for existing account",
			slog.String("kind", string(req.Kind)))
		return nil, fmt.Errorf("failed to check existing accounts: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s account already exists for user", apperrors.ErrDuplicate, req.Kind)
	}

	name := req.Name
	if name == "" {
		name = defaultAccountName(req.Kind)
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		OwnerUserID: creatorUserID,
		Kind:        req.Kind,
		Name:        name,
		Balance:     req.Balance.Round(domain.AmountPrecision),
		LastUpdated: now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_id", account.AccountID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("kind", string(account.Kind)))
	return &account, nil
}

func defaultAccountName(kind domain.AccountKind) string {
	if kind == domain.Checking {
		return checkingAccountName
	}
	return savingAccountName
}

// GetAccountByID retrieves one of the user's accounts.
// Implements portssvc.AccountSvcFacade
func (s *accountService) GetAccountByID(ctx context.Context, accountID string, requestingUserID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID",
				slog.String("account_id", accountID))
		}
		return nil, err
	}
	if account.OwnerUserID != requestingUserID {
		// Obscure existence
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// GetSavingAccount retrieves the user's saving account. A missing account is
// reported as apperrors.ErrMissingAccount so reconciliation can degrade
// gracefully instead of failing the request.
// Implements portssvc.AccountSvcFacade
func (s *accountService) GetSavingAccount(ctx context.Context, ownerUserID string) (*domain.Account, error) {
	return s.findByKind(ctx, ownerUserID, domain.Saving)
}

// GetCheckingAccount retrieves the user's checking account without creating it.
// Implements portssvc.AccountSvcFacade
func (s *accountService) GetCheckingAccount(ctx context.Context, ownerUserID string) (*domain.Account, error) {
	return s.findByKind(ctx, ownerUserID, domain.Checking)
}

func (s *accountService) findByKind(ctx context.Context, ownerUserID string, kind domain.AccountKind) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByKind(ctx, ownerUserID, kind)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no %s account for user %s", apperrors.ErrMissingAccount, kind, ownerUserID)
		}
		s.LogError(ctx, err, "Failed to find account by kind",
			slog.String("kind", string(kind)))
		return nil, err
	}
	return account, nil
}

// GetOrCreateCheckingAccount returns the user's checking account, creating it
// with a zero balance when absent.
// Implements portssvc.AccountSvcFacade
func (s *accountService) GetOrCreateCheckingAccount(ctx context.Context, ownerUserID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByKind(ctx, ownerUserID, domain.Checking)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up checking account")
		return nil, err
	}

	now := time.Now().UTC()
	created := domain.Account{
		AccountID:   uuid.NewString(),
		OwnerUserID: ownerUserID,
		Kind:        domain.Checking,
		Name:        checkingAccountName,
		Balance:     decimal.Zero,
		LastUpdated: now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerUserID,
		},
	}
	if err := s.accountRepo.SaveAccount(ctx, created); err != nil {
		// A concurrent request may have created it between lookup and insert.
		if errors.Is(err, apperrors.ErrDuplicate) {
			return s.accountRepo.FindAccountByKind(ctx, ownerUserID, domain.Checking)
		}
		s.LogError(ctx, err, "Failed to auto-create checking account")
		return nil, fmt.Errorf("failed to auto-create checking account: %w", err)
	}

	s.LogInfo(ctx, "Checking account auto-created with zero balance",
		slog.String("account_id", created.AccountID),
		slog.String("user_id", ownerUserID))
	return &created, nil
}

// UpdateAccount updates an account's details. The saving and checking
// accounts are protected: once persisted they cannot be renamed or have their
// balance hand-edited, mirroring the original "Checking"/"Savings" guard.
// Implements portssvc.AccountSvcFacade
func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, accountID, requestingUserID)
	if err != nil {
		return nil, err
	}

	if account.IsProtected() {
		s.LogWarn(ctx, "Rejected direct modification of protected account",
			slog.String("account_id", accountID),
			slog.String("kind", string(account.Kind)))
		return nil, fmt.Errorf("%w: the %s account", apperrors.ErrImmutableAccount, account.Name)
	}

	now := time.Now().UTC()
	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Balance != nil {
		account.Balance = req.Balance.Round(domain.AmountPrecision)
		account.LastUpdated = now
	}
	account.LastUpdatedAt = now
	account.LastUpdatedBy = requestingUserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account",
			slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

// ListAccounts retrieves the user's saving/checking accounts.
// Implements portssvc.AccountSvcFacade
func (s *accountService) ListAccounts(ctx context.Context, requestingUserID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByUser(ctx, requestingUserID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, fmt.Errorf("failed to retrieve accounts: %w", err)
	}
	return accounts, nil
}
