// Package export serialises report payloads for download.
package export

import (
	"encoding/csv"
	"io"

	"github.com/shopspring/decimal"

	"github.com/partsbook/partsbook/internal/reports"
)

// WriteTrialBalanceCSV emits the trial balance as a flat CSV, one row per
// account with its classification bucket.
func WriteTrialBalanceCSV(w io.Writer, report reports.TrialBalance) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Classification", "Code", "Account", "Debit", "Credit", "Balance"}); err != nil {
		return err
	}
	sections := []struct {
		label string
		rows  []reports.TrialBalanceRow
	}{
		{"Assets", report.Assets},
		{"Liabilities", report.Liabilities},
		{"Capital", report.Capital},
		{"Revenues", report.Revenues},
		{"Expenses", report.Expenses},
		{"Cost", report.Cost},
	}
	for _, section := range sections {
		for _, row := range section.rows {
			if err := writer.Write([]string{
				section.label,
				row.Code,
				row.Name,
				formatAmount(row.Debit),
				formatAmount(row.Credit),
				formatAmount(row.Balance),
			}); err != nil {
				return err
			}
		}
	}
	if err := writer.Write([]string{"", "", "Total", formatAmount(report.TotalDebit), formatAmount(report.TotalCredit), ""}); err != nil {
		return err
	}
	writer.Flush()
	return writer.Error()
}

// WriteDailyClosingCSV emits the daily closing as a flat CSV, one row per
// voucher line plus opening/closing summary rows per account.
func WriteDailyClosingCSV(w io.Writer, report reports.DailyClosing) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Account", "Voucher", "Counterpart", "Description", "Debit", "Credit"}); err != nil {
		return err
	}
	for _, account := range report.Accounts {
		if err := writer.Write([]string{account.Name, "", "Opening balance", "", formatAmount(account.Opening), ""}); err != nil {
			return err
		}
		for _, group := range account.Debits {
			for _, row := range group.Rows {
				if err := writer.Write([]string{account.Name, group.VoucherNo, row.AccountName, row.Description, formatAmount(row.Amount), ""}); err != nil {
					return err
				}
			}
		}
		for _, group := range account.Credits {
			for _, row := range group.Rows {
				if err := writer.Write([]string{account.Name, group.VoucherNo, row.AccountName, row.Description, "", formatAmount(row.Amount)}); err != nil {
					return err
				}
			}
		}
		if err := writer.Write([]string{account.Name, "", "Closing balance", "", formatAmount(account.Closing), ""}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
