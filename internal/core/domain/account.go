package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind identifies which of the two balance holders an account is.
type AccountKind string

const (
	Saving   AccountKind = "SAVING"
	Checking AccountKind = "CHECKING"
)

// Account holds a running balance for one user. Each user has at most one
// account of each kind; the pair replaces the old "first row" singleton lookup.
type Account struct {
	AccountID   string          `json:"accountID"` // Primary Key (e.g., UUID)
	OwnerUserID string          `json:"ownerUserID"`
	Kind        AccountKind     `json:"kind"`
	Name        string          `json:"name"`
	Balance     decimal.Decimal `json:"balance"`
	LastUpdated time.Time       `json:"lastUpdated"` // Refreshed on every balance change
	AuditFields
}

// IsProtected reports whether the account rejects direct modification.
// Saving and checking accounts only change through transaction reconciliation.
func (a Account) IsProtected() bool {
	return a.Kind == Saving || a.Kind == Checking
}
