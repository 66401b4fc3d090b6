package reports

import (
	"context"
	"time"
)

// Repository issues the batched aggregate queries the reports are built
// from. Every method applies the approved, non-post-dated, non-deleted
// transaction filter and the owned-or-global account visibility filter, so
// report figures always agree with the balance calculator.
type Repository interface {
	// ActivityByAccount returns debit/credit sums per active account over the
	// window. Accounts with no matching transactions appear with zero sums.
	ActivityByAccount(ctx context.Context, userID int64, from, to time.Time) ([]AccountActivity, error)
	// BalancesByAccount returns signed balances per active account as of the
	// date. An empty accountIDs slice means all active accounts.
	BalancesByAccount(ctx context.Context, userID int64, asOf time.Time, accountIDs []int64) ([]AccountBalanceRow, error)
	// DayTransactions lists the day's transactions for the given accounts.
	DayTransactions(ctx context.Context, userID int64, accountIDs []int64, from, to time.Time) ([]DayRow, error)
	// JournalRows lists approved transactions, optionally bounded by date.
	JournalRows(ctx context.Context, userID int64, from, to *time.Time) ([]JournalRow, error)
}
