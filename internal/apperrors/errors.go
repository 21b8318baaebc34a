package apperrors

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the acting user does not own the resource.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates the request conflicts with the current resource state.
var ErrConflict = errors.New("conflict with current state")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrRefreshTokenExpired indicates the presented refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrMissingAccount indicates a saving or checking account was expected but
// absent. Reconciliation treats this as a warning and skips that side.
var ErrMissingAccount = errors.New("account not found for user")

// ErrImmutableAccount indicates an attempt to directly modify a protected
// saving or checking account; their balances change only through
// transaction reconciliation.
var ErrImmutableAccount = errors.New("saving and checking accounts cannot be modified directly")

// SplitMismatchError reports a transaction whose saving and checking portions
// do not sum to its total amount. It carries the three values for the
// user-facing message.
type SplitMismatchError struct {
	Amount         decimal.Decimal
	SavingAmount   decimal.Decimal
	CheckingAmount decimal.Decimal
}

func (e *SplitMismatchError) Error() string {
	return fmt.Sprintf("saving amount %s + checking amount %s does not equal total amount %s",
		e.SavingAmount.String(), e.CheckingAmount.String(), e.Amount.String())
}

// Unwrap makes SplitMismatchError match ErrValidation in errors.Is checks.
func (e *SplitMismatchError) Unwrap() error { return ErrValidation }

// FutureDateError reports a transaction dated beyond today.
type FutureDateError struct {
	TransactionDate time.Time
}

func (e *FutureDateError) Error() string {
	return fmt.Sprintf("transaction date %s is in the future", e.TransactionDate.Format("2006-01-02"))
}

func (e *FutureDateError) Unwrap() error { return ErrValidation }

// AppError wraps a lower-level error with an HTTP-ish status code and message.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
