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

var (
	ErrAmountNotPositive = errors.New("transaction amount must be positive")
	ErrGoalNotFound      = errors.New("linked goal not found")
)

// transactionService is the reconciliation engine. Every write validates the
// split and date first, then adjusts the linked goal (or the saving account)
// and the checking account by signed deltas; the repository applies the
// deltas and the row mutation in one database transaction.
type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	goalRepo        portsrepo.GoalReader
	accountSvc      portssvc.AccountSvcFacade
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(transactionRepo portsrepo.TransactionRepositoryFacade, goalRepo portsrepo.GoalReader, accountSvc portssvc.AccountSvcFacade) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		goalRepo:        goalRepo,
		accountSvc:      accountSvc,
	}
}

// Ensure transactionService implements the portssvc.TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// validateTransaction enforces the pre-persistence invariants: the split must
// sum to the total at domain.AmountPrecision and the date must not be in the
// future. No balance may change for a transaction that fails here.
func (s *transactionService) validateTransaction(txn domain.Transaction, now time.Time) error {
	if txn.Amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: got %s", ErrAmountNotPositive, txn.Amount.String())
	}
	if !txn.SplitBalances() {
		return &apperrors.SplitMismatchError{
			Amount:         txn.Amount,
			SavingAmount:   txn.SavingAmount,
			CheckingAmount: txn.CheckingAmount,
		}
	}
	if dateOnly(txn.TransactionDate).After(dateOnly(now)) {
		return &apperrors.FutureDateError{TransactionDate: txn.TransactionDate}
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// accumulateEffect adds txn's balance effect to changes; with reverse set it
// adds the exact inverse. The saving portion routes to the linked goal, or to
// the owner's saving account when no goal is linked; the checking portion
// always routes to the checking account, which is created lazily.
func (s *transactionService) accumulateEffect(ctx context.Context, txn domain.Transaction, reverse bool, changes *portsrepo.BalanceChanges) error {
	sign := txn.Sign()
	if reverse {
		sign = sign.Neg()
	}

	if txn.GoalID != nil {
		changes.GoalDeltas[*txn.GoalID] = changes.GoalDeltas[*txn.GoalID].Add(sign.Mul(txn.SavingAmount))
	} else if !txn.SavingAmount.IsZero() {
		saving, err := s.accountSvc.GetSavingAccount(ctx, txn.OwnerUserID)
		if err != nil {
			if errors.Is(err, apperrors.ErrMissingAccount) {
				// Tolerated gap: without a saving account the saving side of
				// the reconciliation is skipped, never fatal.
				s.LogWarn(ctx, "No saving account for user, skipping saving portion",
					slog.String("user_id", txn.OwnerUserID),
					slog.String("transaction_id", txn.TransactionID),
					slog.String("saving_amount", txn.SavingAmount.String()))
			} else {
				return fmt.Errorf("failed to resolve saving account: %w", err)
			}
		} else {
			changes.AccountDeltas[saving.AccountID] = changes.AccountDeltas[saving.AccountID].Add(sign.Mul(txn.SavingAmount))
		}
	}

	// Applying an effect lazily creates the checking account; reversing one
	// tolerates its absence (skip with a warning, never create-to-deduct).
	var checking *domain.Account
	var err error
	if reverse {
		checking, err = s.accountSvc.GetCheckingAccount(ctx, txn.OwnerUserID)
	} else {
		checking, err = s.accountSvc.GetOrCreateCheckingAccount(ctx, txn.OwnerUserID)
	}
	if err != nil {
		if errors.Is(err, apperrors.ErrMissingAccount) {
			s.LogWarn(ctx, "No checking account for user, skipping checking portion",
				slog.String("user_id", txn.OwnerUserID),
				slog.String("transaction_id", txn.TransactionID))
			return nil
		}
		return fmt.Errorf("failed to resolve checking account: %w", err)
	}
	changes.AccountDeltas[checking.AccountID] = changes.AccountDeltas[checking.AccountID].Add(sign.Mul(txn.CheckingAmount))
	return nil
}

// newBalanceChanges returns an empty, initialized change set.
func newBalanceChanges() portsrepo.BalanceChanges {
	return portsrepo.BalanceChanges{
		GoalDeltas:    make(map[string]decimal.Decimal),
		AccountDeltas: make(map[string]decimal.Decimal),
	}
}

// pruneZeroDeltas drops entries that net to zero so no-op edits touch no rows.
func pruneZeroDeltas(changes portsrepo.BalanceChanges) portsrepo.BalanceChanges {
	for id, delta := range changes.GoalDeltas {
		if delta.IsZero() {
			delete(changes.GoalDeltas, id)
		}
	}
	for id, delta := range changes.AccountDeltas {
		if delta.IsZero() {
			delete(changes.AccountDeltas, id)
		}
	}
	return changes
}

// verifyGoalLink checks that the referenced goal exists and belongs to the user.
func (s *transactionService) verifyGoalLink(ctx context.Context, goalID string, userID string) error {
	goal, err := s.goalRepo.FindGoalByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: ID %s", ErrGoalNotFound, goalID)
		}
		return fmt.Errorf("failed to fetch goal %s: %w", goalID, err)
	}
	if goal.OwnerUserID != userID {
		// Obscure existence of other users' goals
		return fmt.Errorf("%w: ID %s", ErrGoalNotFound, goalID)
	}
	return nil
}

// CreateTransaction validates and persists a new transaction, applying its
// full effect to the routed balances.
// Implements portssvc.TransactionSvcFacade
func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	now := time.Now().UTC()

	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		OwnerUserID:     creatorUserID,
		Name:            req.Name,
		Description:     req.Description,
		TransactionType: req.TransactionType,
		Amount:          req.Amount.Round(domain.AmountPrecision),
		SavingAmount:    req.SavingAmount.Round(domain.AmountPrecision),
		CheckingAmount:  req.CheckingAmount.Round(domain.AmountPrecision),
		GoalID:          req.GoalID,
		TransactionDate: req.TransactionDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.validateTransaction(txn, now); err != nil {
		return nil, err
	}
	if txn.GoalID != nil {
		if err := s.verifyGoalLink(ctx, *txn.GoalID, creatorUserID); err != nil {
			return nil, err
		}
	}

	changes := newBalanceChanges()
	if err := s.accumulateEffect(ctx, txn, false, &changes); err != nil {
		s.LogError(ctx, err, "Failed to compute balance changes for new transaction",
			slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn, pruneZeroDeltas(changes)); err != nil {
		s.LogError(ctx, err, "Failed to save transaction",
			slog.String("transaction_id", txn.TransactionID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction created successfully",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.TransactionType)),
		slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

// GetTransactionByID retrieves one of the user's transactions.
// Implements portssvc.TransactionSvcFacade
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string, requestingUserID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction by ID",
				slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	if txn.OwnerUserID != requestingUserID {
		// Obscure existence
		return nil, apperrors.ErrNotFound
	}
	return txn, nil
}

// ListTransactions retrieves a paginated list of the user's transactions.
// Implements portssvc.TransactionSvcFacade
func (s *transactionService) ListTransactions(ctx context.Context, requestingUserID string, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	txns, err := s.transactionRepo.ListTransactionsByUser(ctx, requestingUserID, limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}
	return txns, nil
}

// UpdateTransaction replaces a transaction's state. The reconciliation is
// derived as undo(old) followed by apply(new): the stored state is fetched
// fresh, its full effect reversed, and the new state's full effect applied,
// all combined into one delta set so only the net change hits the rows.
// Implements portssvc.TransactionSvcFacade
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, requestingUserID string) (*domain.Transaction, error) {
	now := time.Now().UTC()

	// Fetch the previously persisted state, never the caller's pre-edit copy.
	stored, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction for update",
				slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	if stored.OwnerUserID != requestingUserID {
		return nil, apperrors.ErrNotFound
	}

	updated := domain.Transaction{
		TransactionID:   stored.TransactionID,
		OwnerUserID:     stored.OwnerUserID,
		Name:            req.Name,
		Description:     req.Description,
		TransactionType: req.TransactionType,
		Amount:          req.Amount.Round(domain.AmountPrecision),
		SavingAmount:    req.SavingAmount.Round(domain.AmountPrecision),
		CheckingAmount:  req.CheckingAmount.Round(domain.AmountPrecision),
		GoalID:          req.GoalID,
		TransactionDate: req.TransactionDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     stored.CreatedAt,
			CreatedBy:     stored.CreatedBy,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}

	// Validation runs strictly before any balance math.
	if err := s.validateTransaction(updated, now); err != nil {
		return nil, err
	}
	if updated.GoalID != nil {
		if err := s.verifyGoalLink(ctx, *updated.GoalID, requestingUserID); err != nil {
			return nil, err
		}
	}

	changes := newBalanceChanges()
	if err := s.accumulateEffect(ctx, *stored, true, &changes); err != nil {
		s.LogError(ctx, err, "Failed to compute undo changes for transaction update",
			slog.String("transaction_id", transactionID))
		return nil, err
	}
	if err := s.accumulateEffect(ctx, updated, false, &changes); err != nil {
		s.LogError(ctx, err, "Failed to compute apply changes for transaction update",
			slog.String("transaction_id", transactionID))
		return nil, err
	}

	if err := s.transactionRepo.UpdateTransaction(ctx, updated, pruneZeroDeltas(changes)); err != nil {
		s.LogError(ctx, err, "Failed to persist transaction update",
			slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction updated successfully",
		slog.String("transaction_id", transactionID))
	return &updated, nil
}

// DeleteTransaction reverses the transaction's stored effect in full and
// removes the record.
// Implements portssvc.TransactionSvcFacade
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string, requestingUserID string) error {
	stored, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction for deletion",
				slog.String("transaction_id", transactionID))
		}
		return err
	}
	if stored.OwnerUserID != requestingUserID {
		return apperrors.ErrNotFound
	}

	changes := newBalanceChanges()
	if err := s.accumulateEffect(ctx, *stored, true, &changes); err != nil {
		s.LogError(ctx, err, "Failed to compute reversal changes for transaction deletion",
			slog.String("transaction_id", transactionID))
		return err
	}

	if err := s.transactionRepo.DeleteTransaction(ctx, transactionID, pruneZeroDeltas(changes), requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction",
			slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction deleted successfully",
		slog.String("transaction_id", transactionID))
	return nil
}
