package ledger

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/partsbook/partsbook/internal/platform/db"
)

const voucherNoConstraint = "uq_vouchers_type_no"

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns the pgx-backed ledger repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const voucherColumns = `id, voucher_no, type, date, name, total_amount, is_approved, is_post_dated,
cheque_no, cheque_date, cleared_date, is_auto, user_id, generated_at, deleted_at`

func scanVoucher(row pgx.Row) (Voucher, error) {
	var v Voucher
	var postDated int16
	err := row.Scan(&v.ID, &v.No, &v.Type, &v.Date, &v.Name, &v.TotalAmount, &v.IsApproved, &postDated,
		&v.ChequeNo, &v.ChequeDate, &v.ClearedDate, &v.IsAuto, &v.UserID, &v.GeneratedAt, &v.DeletedAt)
	v.IsPostDated = postDated == 1
	return v, err
}

func postDatedFlag(b bool) int16 {
	if b {
		return 1
	}
	return 0
}

func (r *repository) GetVoucher(ctx context.Context, id int64, userID int64) (Voucher, error) {
	row := r.db.QueryRow(ctx, `SELECT `+voucherColumns+` FROM vouchers
WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL`, id, userID)
	v, err := scanVoucher(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Voucher{}, ErrVoucherNotFound
		}
		return Voucher{}, err
	}
	txs, err := r.loadTransactions(ctx, r.db, v.ID)
	if err != nil {
		return Voucher{}, err
	}
	v.Transactions = txs
	return v, nil
}

type queryer interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *repository) loadTransactions(ctx context.Context, q queryer, voucherID int64) ([]Transaction, error) {
	rows, err := q.Query(ctx, `SELECT id, voucher_id, coa_account_id, debit, credit, balance, description, date, user_id, is_approved, deleted_at
FROM voucher_transactions WHERE voucher_id = $1 AND deleted_at IS NULL ORDER BY id`, voucherID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var txs []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.VoucherID, &t.AccountID, &t.Debit, &t.Credit, &t.Balance,
			&t.Description, &t.Date, &t.UserID, &t.IsApproved, &t.DeletedAt); err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func (r *repository) ListVouchers(ctx context.Context, userID int64, filter ListFilter) ([]Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE user_id = $1 AND deleted_at IS NULL`
	args := []any{userID}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		query += ` AND type = $` + strconv.Itoa(len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		query += ` AND date >= $` + strconv.Itoa(len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		query += ` AND date <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY date DESC, voucher_no DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var vouchers []Voucher
	for rows.Next() {
		v, err := scanVoucher(rows)
		if err != nil {
			return nil, err
		}
		vouchers = append(vouchers, v)
	}
	return vouchers, rows.Err()
}

const accountExistsQuery = `SELECT EXISTS (SELECT 1 FROM coa_accounts
WHERE id = $1 AND (user_id = $2 OR user_id IS NULL) AND is_active)`

const balanceQuery = `SELECT COALESCE(SUM(t.debit - t.credit), 0)
FROM voucher_transactions t
JOIN vouchers v ON v.id = t.voucher_id
WHERE t.coa_account_id = $1 AND t.user_id = $2
  AND t.is_approved AND t.deleted_at IS NULL
  AND v.is_post_dated = 0 AND v.deleted_at IS NULL
  AND ($3::date IS NULL OR t.date <= $3)`

func (r *repository) AccountBalance(ctx context.Context, accountID, userID int64, asOf *time.Time) (decimal.Decimal, error) {
	var balance decimal.Decimal
	if err := r.db.QueryRow(ctx, balanceQuery, accountID, userID, asOf).Scan(&balance); err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

func (r *repository) AccountExists(ctx context.Context, accountID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, accountExistsQuery, accountID, userID).Scan(&exists)
	return exists, err
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		return fn(ctx, &txRepository{tx: tx, repo: r})
	})
}

type txRepository struct {
	tx   pgx.Tx
	repo *repository
}

func (r *txRepository) NextVoucherNo(ctx context.Context, t VoucherType) (int64, error) {
	var next int64
	err := r.tx.QueryRow(ctx, `SELECT COALESCE(MAX(voucher_no), 0) + 1 FROM vouchers WHERE type = $1`, t).Scan(&next)
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (r *txRepository) InsertVoucher(ctx context.Context, v Voucher) (Voucher, error) {
	row := r.tx.QueryRow(ctx, `INSERT INTO vouchers
(voucher_no, type, date, name, total_amount, is_approved, is_post_dated, cheque_no, cheque_date, is_auto, user_id)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
RETURNING id, generated_at`,
		v.No, v.Type, v.Date, v.Name, v.TotalAmount, v.IsApproved, postDatedFlag(v.IsPostDated),
		v.ChequeNo, v.ChequeDate, v.IsAuto, v.UserID)
	if err := row.Scan(&v.ID, &v.GeneratedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == voucherNoConstraint {
			return Voucher{}, ErrNumberConflict
		}
		return Voucher{}, err
	}
	return v, nil
}

func (r *txRepository) InsertTransaction(ctx context.Context, t Transaction) (Transaction, error) {
	row := r.tx.QueryRow(ctx, `INSERT INTO voucher_transactions
(voucher_id, coa_account_id, debit, credit, balance, description, date, user_id, is_approved)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
RETURNING id`,
		t.VoucherID, t.AccountID, t.Debit, t.Credit, t.Balance, t.Description, t.Date, t.UserID, t.IsApproved)
	if err := row.Scan(&t.ID); err != nil {
		return Transaction{}, err
	}
	return t, nil
}

func (r *txRepository) AccountExists(ctx context.Context, accountID, userID int64) (bool, error) {
	var exists bool
	err := r.tx.QueryRow(ctx, accountExistsQuery, accountID, userID).Scan(&exists)
	return exists, err
}

func (r *txRepository) AccountBalance(ctx context.Context, accountID, userID int64, asOf *time.Time) (decimal.Decimal, error) {
	var balance decimal.Decimal
	if err := r.tx.QueryRow(ctx, balanceQuery, accountID, userID, asOf).Scan(&balance); err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

func (r *txRepository) GetVoucherForUpdate(ctx context.Context, id int64, userID int64) (Voucher, error) {
	row := r.tx.QueryRow(ctx, `SELECT `+voucherColumns+` FROM vouchers
WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL FOR UPDATE`, id, userID)
	v, err := scanVoucher(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Voucher{}, ErrVoucherNotFound
		}
		return Voucher{}, err
	}
	txs, err := r.repo.loadTransactions(ctx, r.tx, v.ID)
	if err != nil {
		return Voucher{}, err
	}
	v.Transactions = txs
	return v, nil
}

func (r *txRepository) SetApproval(ctx context.Context, voucherID int64, approved bool) error {
	cmd, err := r.tx.Exec(ctx, `UPDATE vouchers SET is_approved = $2 WHERE id = $1 AND deleted_at IS NULL`, voucherID, approved)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrVoucherNotFound
	}
	_, err = r.tx.Exec(ctx, `UPDATE voucher_transactions SET is_approved = $2
WHERE voucher_id = $1 AND deleted_at IS NULL`, voucherID, approved)
	return err
}

func (r *txRepository) MarkCleared(ctx context.Context, voucherID int64, clearedDate time.Time) error {
	cmd, err := r.tx.Exec(ctx, `UPDATE vouchers SET is_post_dated = 0, cleared_date = $2
WHERE id = $1 AND deleted_at IS NULL`, voucherID, clearedDate)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrVoucherNotFound
	}
	_, err = r.tx.Exec(ctx, `UPDATE voucher_transactions SET date = $2
WHERE voucher_id = $1 AND deleted_at IS NULL`, voucherID, clearedDate)
	return err
}

func (r *txRepository) SoftDelete(ctx context.Context, voucherID int64, at time.Time) error {
	cmd, err := r.tx.Exec(ctx, `UPDATE vouchers SET deleted_at = $2 WHERE id = $1 AND deleted_at IS NULL`, voucherID, at)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrVoucherNotFound
	}
	_, err = r.tx.Exec(ctx, `UPDATE voucher_transactions SET deleted_at = $2
WHERE voucher_id = $1 AND deleted_at IS NULL`, voucherID, at)
	return err
}
