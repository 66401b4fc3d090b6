package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Repository encapsulates DB operations for vouchers and their transactions.
type Repository interface {
	GetVoucher(ctx context.Context, id int64, userID int64) (Voucher, error)
	ListVouchers(ctx context.Context, userID int64, filter ListFilter) ([]Voucher, error)
	// AccountBalance sums debit-credit over approved, non-post-dated,
	// non-deleted transactions for the account and user, optionally up to a
	// cutoff date.
	AccountBalance(ctx context.Context, accountID, userID int64, asOf *time.Time) (decimal.Decimal, error)
	AccountExists(ctx context.Context, accountID, userID int64) (bool, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes the operations available inside a write transaction.
// Lifecycle transitions update the voucher and its transaction set in one
// call so a partial cascade cannot be expressed.
type TxRepository interface {
	NextVoucherNo(ctx context.Context, t VoucherType) (int64, error)
	InsertVoucher(ctx context.Context, v Voucher) (Voucher, error)
	InsertTransaction(ctx context.Context, t Transaction) (Transaction, error)
	AccountExists(ctx context.Context, accountID, userID int64) (bool, error)
	AccountBalance(ctx context.Context, accountID, userID int64, asOf *time.Time) (decimal.Decimal, error)
	GetVoucherForUpdate(ctx context.Context, id int64, userID int64) (Voucher, error)
	SetApproval(ctx context.Context, voucherID int64, approved bool) error
	MarkCleared(ctx context.Context, voucherID int64, clearedDate time.Time) error
	SoftDelete(ctx context.Context, voucherID int64, at time.Time) error
}
