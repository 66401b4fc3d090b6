package coa

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns the pgx-backed chart of accounts repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const accountInfoColumns = `a.id, a.sub_group_id, a.code, a.name, a.is_active, a.user_id, a.created_at, a.updated_at,
sg.name, g.name, g.classification, sg.cash_bank`

const accountInfoJoin = `FROM coa_accounts a
JOIN coa_sub_groups sg ON sg.id = a.sub_group_id
JOIN coa_groups g ON g.id = sg.group_id`

func scanAccountInfo(row pgx.Row) (AccountInfo, error) {
	var info AccountInfo
	err := row.Scan(&info.ID, &info.SubGroupID, &info.Code, &info.Name, &info.IsActive, &info.UserID,
		&info.CreatedAt, &info.UpdatedAt, &info.SubGroupName, &info.GroupName, &info.Classification, &info.CashBank)
	return info, err
}

func (r *repository) GetAccount(ctx context.Context, id int64, userID int64) (AccountInfo, error) {
	row := r.db.QueryRow(ctx, `SELECT `+accountInfoColumns+` `+accountInfoJoin+`
WHERE a.id = $1 AND (a.user_id = $2 OR a.user_id IS NULL)`, id, userID)
	info, err := scanAccountInfo(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AccountInfo{}, ErrAccountNotFound
		}
		return AccountInfo{}, err
	}
	return info, nil
}

func (r *repository) ListAccounts(ctx context.Context, userID int64, activeOnly bool) ([]AccountInfo, error) {
	query := `SELECT ` + accountInfoColumns + ` ` + accountInfoJoin + `
WHERE (a.user_id = $1 OR a.user_id IS NULL)`
	if activeOnly {
		query += ` AND a.is_active`
	}
	query += ` ORDER BY a.code`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAccountInfos(rows)
}

func (r *repository) ListCashBankAccounts(ctx context.Context, userID int64) ([]AccountInfo, error) {
	rows, err := r.db.Query(ctx, `SELECT `+accountInfoColumns+` `+accountInfoJoin+`
WHERE (a.user_id = $1 OR a.user_id IS NULL) AND a.is_active AND sg.cash_bank
ORDER BY a.code`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAccountInfos(rows)
}

func collectAccountInfos(rows pgx.Rows) ([]AccountInfo, error) {
	var accounts []AccountInfo
	for rows.Next() {
		info, err := scanAccountInfo(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, info)
	}
	return accounts, rows.Err()
}

func (r *repository) ListGroups(ctx context.Context) ([]Group, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, classification, created_at, updated_at FROM coa_groups ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var groups []Group
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Classification, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (r *repository) ListSubGroups(ctx context.Context) ([]SubGroup, error) {
	rows, err := r.db.Query(ctx, `SELECT id, group_id, name, cash_bank, created_at, updated_at FROM coa_sub_groups ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var subGroups []SubGroup
	for rows.Next() {
		var sg SubGroup
		if err := rows.Scan(&sg.ID, &sg.GroupID, &sg.Name, &sg.CashBank, &sg.CreatedAt, &sg.UpdatedAt); err != nil {
			return nil, err
		}
		subGroups = append(subGroups, sg)
	}
	return subGroups, rows.Err()
}

func (r *repository) CreateAccount(ctx context.Context, account Account) (Account, error) {
	row := r.db.QueryRow(ctx, `INSERT INTO coa_accounts (sub_group_id, code, name, is_active, user_id)
VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`,
		account.SubGroupID, account.Code, account.Name, account.IsActive, account.UserID)
	if err := row.Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.ConstraintName {
			case "uq_coa_accounts_code":
				return Account{}, ErrDuplicateCode
			case "fk_coa_accounts_sub_group":
				return Account{}, ErrSubGroupNotFound
			}
		}
		return Account{}, err
	}
	return account, nil
}

func (r *repository) DeactivateAccount(ctx context.Context, id int64, userID int64) error {
	cmd, err := r.db.Exec(ctx, `UPDATE coa_accounts SET is_active = FALSE, updated_at = NOW()
WHERE id = $1 AND (user_id = $2 OR user_id IS NULL)`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrAccountNotFound
	}
	return nil
}
