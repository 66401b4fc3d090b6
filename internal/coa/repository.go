package coa

import "context"

// Repository encapsulates DB operations for the chart of accounts. All reads
// apply the owned-by-user-or-global visibility filter.
type Repository interface {
	GetAccount(ctx context.Context, id int64, userID int64) (AccountInfo, error)
	ListAccounts(ctx context.Context, userID int64, activeOnly bool) ([]AccountInfo, error)
	ListCashBankAccounts(ctx context.Context, userID int64) ([]AccountInfo, error)
	ListGroups(ctx context.Context) ([]Group, error)
	ListSubGroups(ctx context.Context) ([]SubGroup, error)
	CreateAccount(ctx context.Context, account Account) (Account, error)
	DeactivateAccount(ctx context.Context, id int64, userID int64) error
}
