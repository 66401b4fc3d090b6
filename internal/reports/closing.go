package reports

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/partsbook/partsbook/internal/ledger"
)

// DayRow is one approved, non-post-dated transaction inside the closing day,
// joined with its voucher and account.
type DayRow struct {
	TransactionID int64
	VoucherID     int64
	VoucherNo     int64
	VoucherType   ledger.VoucherType
	AccountID     int64
	AccountName   string
	Description   string
	Debit         decimal.Decimal
	Credit        decimal.Decimal
	Date          time.Time
}

// ClosingRow is one transaction line inside a voucher group.
type ClosingRow struct {
	TransactionID int64           `json:"transactionId"`
	AccountName   string          `json:"accountName"`
	Description   string          `json:"description,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
}

// VoucherGroup collects a day's rows under their originating voucher.
type VoucherGroup struct {
	VoucherID int64        `json:"voucherId"`
	VoucherNo string       `json:"voucherNo"`
	Rows      []ClosingRow `json:"rows"`
	Total     decimal.Decimal `json:"total"`
}

// ClosingAccount is the daily closing view of one cash/bank account.
type ClosingAccount struct {
	AccountID   int64           `json:"accountId"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Opening     decimal.Decimal `json:"opening"`
	Debits      []VoucherGroup  `json:"debits"`
	Credits     []VoucherGroup  `json:"credits"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Closing     decimal.Decimal `json:"closing"`
}

// DailyClosing is the full report for one day.
type DailyClosing struct {
	Date     string           `json:"date"`
	Accounts []ClosingAccount `json:"accounts"`
}

// BuildDailyClosing combines opening balances with the day's movement. The
// openings slice fixes the account set and ordering; rows for accounts
// outside it are ignored.
func BuildDailyClosing(date time.Time, openings []AccountBalanceRow, rows []DayRow) DailyClosing {
	report := DailyClosing{Date: date.Format("2006-01-02")}
	// Capacity up front: byAccount keeps pointers into the slice.
	report.Accounts = make([]ClosingAccount, 0, len(openings))
	byAccount := make(map[int64]*ClosingAccount, len(openings))
	for _, opening := range openings {
		account := ClosingAccount{
			AccountID: opening.AccountID,
			Code:      opening.Code,
			Name:      opening.Name,
			Opening:   opening.Balance,
		}
		report.Accounts = append(report.Accounts, account)
		byAccount[opening.AccountID] = &report.Accounts[len(report.Accounts)-1]
	}

	for _, row := range rows {
		account, ok := byAccount[row.AccountID]
		if !ok {
			continue
		}
		entry := ClosingRow{
			TransactionID: row.TransactionID,
			AccountName:   row.AccountName,
			Description:   row.Description,
		}
		switch {
		case row.Debit.IsPositive():
			entry.Amount = row.Debit
			account.Debits = appendToGroup(account.Debits, row, entry)
			account.TotalDebit = account.TotalDebit.Add(row.Debit)
		case row.Credit.IsPositive():
			entry.Amount = row.Credit
			account.Credits = appendToGroup(account.Credits, row, entry)
			account.TotalCredit = account.TotalCredit.Add(row.Credit)
		}
	}

	for i := range report.Accounts {
		account := &report.Accounts[i]
		account.Closing = account.Opening.Add(account.TotalDebit).Sub(account.TotalCredit)
	}
	return report
}

func appendToGroup(groups []VoucherGroup, row DayRow, entry ClosingRow) []VoucherGroup {
	for i := range groups {
		if groups[i].VoucherID == row.VoucherID {
			groups[i].Rows = append(groups[i].Rows, entry)
			groups[i].Total = groups[i].Total.Add(entry.Amount)
			return groups
		}
	}
	return append(groups, VoucherGroup{
		VoucherID: row.VoucherID,
		VoucherNo: ledger.FormatNumber(row.VoucherType, row.VoucherNo),
		Rows:      []ClosingRow{entry},
		Total:     entry.Amount,
	})
}
