package reports

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/partsbook/partsbook/internal/ledger"
)

// JournalRow is one approved transaction joined with its voucher and account.
type JournalRow struct {
	TransactionID int64
	Date          time.Time
	VoucherID     int64
	VoucherNo     int64
	VoucherType   ledger.VoucherType
	VoucherName   string
	AccountID     int64
	AccountCode   string
	AccountName   string
	Description   string
	Debit         decimal.Decimal
	Credit        decimal.Decimal
}

// JournalEntryView is one general journal line in the response.
type JournalEntryView struct {
	TransactionID int64           `json:"transactionId"`
	Date          string          `json:"date"`
	VoucherID     int64           `json:"voucherId"`
	VoucherNo     string          `json:"voucherNo"`
	VoucherName   string          `json:"voucherName,omitempty"`
	AccountID     int64           `json:"accountId"`
	AccountCode   string          `json:"accountCode"`
	AccountName   string          `json:"accountName"`
	Description   string          `json:"description,omitempty"`
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
}

// GeneralJournal is the chronological transaction listing.
type GeneralJournal struct {
	From    string             `json:"from,omitempty"`
	To      string             `json:"to,omitempty"`
	Entries []JournalEntryView `json:"entries"`
}

// BuildGeneralJournal orders rows by ascending date and shapes them for the
// response.
func BuildGeneralJournal(rows []JournalRow) GeneralJournal {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	journal := GeneralJournal{Entries: make([]JournalEntryView, 0, len(rows))}
	for _, row := range rows {
		journal.Entries = append(journal.Entries, JournalEntryView{
			TransactionID: row.TransactionID,
			Date:          row.Date.Format("2006-01-02"),
			VoucherID:     row.VoucherID,
			VoucherNo:     ledger.FormatNumber(row.VoucherType, row.VoucherNo),
			VoucherName:   row.VoucherName,
			AccountID:     row.AccountID,
			AccountCode:   row.AccountCode,
			AccountName:   row.AccountName,
			Description:   row.Description,
			Debit:         row.Debit,
			Credit:        row.Credit,
		})
	}
	return journal
}
