package reports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns the pgx-backed reports repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

// reportableTx matches the balance calculator's filter exactly.
const reportableTx = `t.is_approved AND t.deleted_at IS NULL
  AND v.is_post_dated = 0 AND v.deleted_at IS NULL`

// In the aggregate queries below the voucher predicates live inside the
// outer join, not the WHERE clause: an active account whose only activity
// sits on post-dated or deleted vouchers must still come back with zero
// sums rather than drop out of the result.

func (r *repository) ActivityByAccount(ctx context.Context, userID int64, from, to time.Time) ([]AccountActivity, error) {
	rows, err := r.db.Query(ctx, `SELECT a.id, a.code, a.name, g.classification,
  COALESCE(SUM(t.debit), 0), COALESCE(SUM(t.credit), 0)
FROM coa_accounts a
JOIN coa_sub_groups sg ON sg.id = a.sub_group_id
JOIN coa_groups g ON g.id = sg.group_id
LEFT JOIN (voucher_transactions t
    JOIN vouchers v ON v.id = t.voucher_id
      AND v.is_post_dated = 0 AND v.deleted_at IS NULL)
  ON t.coa_account_id = a.id AND t.user_id = $1 AND t.date BETWEEN $2 AND $3
  AND t.is_approved AND t.deleted_at IS NULL
WHERE a.is_active AND (a.user_id = $1 OR a.user_id IS NULL)
GROUP BY a.id, a.code, a.name, g.classification
ORDER BY a.code`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var activities []AccountActivity
	for rows.Next() {
		var activity AccountActivity
		if err := rows.Scan(&activity.AccountID, &activity.Code, &activity.Name, &activity.Classification,
			&activity.Debit, &activity.Credit); err != nil {
			return nil, err
		}
		activities = append(activities, activity)
	}
	return activities, rows.Err()
}

func (r *repository) BalancesByAccount(ctx context.Context, userID int64, asOf time.Time, accountIDs []int64) ([]AccountBalanceRow, error) {
	rows, err := r.db.Query(ctx, `SELECT a.id, a.code, a.name, g.classification, sg.cash_bank,
  COALESCE(SUM(t.debit - t.credit), 0)
FROM coa_accounts a
JOIN coa_sub_groups sg ON sg.id = a.sub_group_id
JOIN coa_groups g ON g.id = sg.group_id
LEFT JOIN (voucher_transactions t
    JOIN vouchers v ON v.id = t.voucher_id
      AND v.is_post_dated = 0 AND v.deleted_at IS NULL)
  ON t.coa_account_id = a.id AND t.user_id = $1 AND t.date <= $2
  AND t.is_approved AND t.deleted_at IS NULL
WHERE a.is_active AND (a.user_id = $1 OR a.user_id IS NULL)
  AND ($3::bigint[] IS NULL OR a.id = ANY($3))
GROUP BY a.id, a.code, a.name, g.classification, sg.cash_bank
ORDER BY a.code`, userID, asOf, nilWhenEmpty(accountIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var balances []AccountBalanceRow
	for rows.Next() {
		var row AccountBalanceRow
		if err := rows.Scan(&row.AccountID, &row.Code, &row.Name, &row.Classification, &row.CashBank, &row.Balance); err != nil {
			return nil, err
		}
		balances = append(balances, row)
	}
	return balances, rows.Err()
}

func (r *repository) DayTransactions(ctx context.Context, userID int64, accountIDs []int64, from, to time.Time) ([]DayRow, error) {
	rows, err := r.db.Query(ctx, `SELECT t.id, v.id, v.voucher_no, v.type, a.id, a.name, t.description, t.debit, t.credit, t.date
FROM voucher_transactions t
JOIN vouchers v ON v.id = t.voucher_id
JOIN coa_accounts a ON a.id = t.coa_account_id
WHERE t.user_id = $1 AND t.coa_account_id = ANY($2)
  AND t.date BETWEEN $3 AND $4
  AND `+reportableTx+`
ORDER BY v.id, t.id`, userID, accountIDs, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []DayRow
	for rows.Next() {
		var row DayRow
		if err := rows.Scan(&row.TransactionID, &row.VoucherID, &row.VoucherNo, &row.VoucherType,
			&row.AccountID, &row.AccountName, &row.Description, &row.Debit, &row.Credit, &row.Date); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repository) JournalRows(ctx context.Context, userID int64, from, to *time.Time) ([]JournalRow, error) {
	rows, err := r.db.Query(ctx, `SELECT t.id, t.date, v.id, v.voucher_no, v.type, v.name,
  a.id, a.code, a.name, t.description, t.debit, t.credit
FROM voucher_transactions t
JOIN vouchers v ON v.id = t.voucher_id
JOIN coa_accounts a ON a.id = t.coa_account_id
WHERE t.user_id = $1
  AND ($2::date IS NULL OR t.date >= $2)
  AND ($3::date IS NULL OR t.date <= $3)
  AND `+reportableTx+`
ORDER BY t.date ASC, t.id ASC`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []JournalRow
	for rows.Next() {
		var row JournalRow
		if err := rows.Scan(&row.TransactionID, &row.Date, &row.VoucherID, &row.VoucherNo, &row.VoucherType,
			&row.VoucherName, &row.AccountID, &row.AccountCode, &row.AccountName,
			&row.Description, &row.Debit, &row.Credit); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func nilWhenEmpty(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	return ids
}
