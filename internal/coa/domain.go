package coa

import (
	"fmt"
	"time"

	"github.com/partsbook/partsbook/internal/shared"
)

// Classification enumerates the top-level chart of accounts buckets. Every
// leaf account resolves to exactly one classification through its group.
type Classification string

const (
	ClassAssets      Classification = "ASSETS"
	ClassLiabilities Classification = "LIABILITIES"
	ClassCapital     Classification = "CAPITAL"
	ClassRevenues    Classification = "REVENUES"
	ClassExpenses    Classification = "EXPENSES"
	ClassCost        Classification = "COST"
)

// Valid reports whether the classification is one of the six known buckets.
func (c Classification) Valid() bool {
	switch c {
	case ClassAssets, ClassLiabilities, ClassCapital, ClassRevenues, ClassExpenses, ClassCost:
		return true
	}
	return false
}

// Group is a top-level chart of accounts node carrying the classification.
type Group struct {
	ID             int64
	Name           string
	Classification Classification
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// SubGroup sits between a group and its accounts. CashBank marks sub-groups
// whose accounts participate in the daily closing report by default.
type SubGroup struct {
	ID        int64
	GroupID   int64
	Name      string
	CashBank  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Account is a leaf chart of accounts node. UserID nil means the account is
// globally shared; otherwise it is visible only to its owner.
type Account struct {
	ID         int64
	SubGroupID int64
	Code       string
	Name       string
	IsActive   bool
	UserID     *int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AccountInfo is an account joined with its group hierarchy, the shape every
// read path works with.
type AccountInfo struct {
	Account
	SubGroupName   string
	GroupName      string
	Classification Classification
	CashBank       bool
}

var (
	// ErrAccountNotFound indicates the account does not exist or is not visible to the user.
	ErrAccountNotFound = fmt.Errorf("coa: account %w", shared.ErrNotFound)
	// ErrSubGroupNotFound indicates the sub-group does not exist.
	ErrSubGroupNotFound = fmt.Errorf("coa: sub-group %w", shared.ErrNotFound)
	// ErrDuplicateCode indicates the account code is already taken.
	ErrDuplicateCode = fmt.Errorf("coa: account code taken: %w", shared.ErrConflict)
)
