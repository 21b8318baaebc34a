package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountKind mirrors domain.AccountKind for storage.
type AccountKind string

// Account represents a balance-holding account row as stored in the database.
// The (owner_user_id, kind) pair carries a unique constraint.
type Account struct {
	AccountID   string          `db:"account_id"`
	OwnerUserID string          `db:"owner_user_id"`
	Kind        AccountKind     `db:"kind"`
	Name        string          `db:"name"`
	Balance     decimal.Decimal `db:"balance"`
	LastUpdated time.Time       `db:"last_updated"`
	AuditFields
}
