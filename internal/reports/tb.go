package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/partsbook/partsbook/internal/coa"
)

// AccountActivity is one account's aggregated debit/credit movement over a
// report window, as produced by the repository in a single grouped query.
type AccountActivity struct {
	AccountID      int64
	Code           string
	Name           string
	Classification coa.Classification
	Debit          decimal.Decimal
	Credit         decimal.Decimal
}

// TrialBalanceRow is one account inside a trial balance section.
type TrialBalanceRow struct {
	AccountID int64           `json:"accountId"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Debit     decimal.Decimal `json:"debit"`
	Credit    decimal.Decimal `json:"credit"`
	Balance   decimal.Decimal `json:"balance"`
}

// TrialBalance buckets every active account into the six classifications.
// Balances are signed debit minus credit throughout.
type TrialBalance struct {
	From        string            `json:"from"`
	To          string            `json:"to"`
	Assets      []TrialBalanceRow `json:"assets"`
	Liabilities []TrialBalanceRow `json:"liabilities"`
	Capital     []TrialBalanceRow `json:"capital"`
	Revenues    []TrialBalanceRow `json:"revenues"`
	Expenses    []TrialBalanceRow `json:"expenses"`
	Cost        []TrialBalanceRow `json:"cost"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// BuildTrialBalance converts grouped account activity into the report shape.
func BuildTrialBalance(rows []AccountActivity) TrialBalance {
	tb := TrialBalance{}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })
	for _, activity := range rows {
		row := TrialBalanceRow{
			AccountID: activity.AccountID,
			Code:      activity.Code,
			Name:      activity.Name,
			Debit:     activity.Debit,
			Credit:    activity.Credit,
			Balance:   activity.Debit.Sub(activity.Credit),
		}
		switch activity.Classification {
		case coa.ClassAssets:
			tb.Assets = append(tb.Assets, row)
		case coa.ClassLiabilities:
			tb.Liabilities = append(tb.Liabilities, row)
		case coa.ClassCapital:
			tb.Capital = append(tb.Capital, row)
		case coa.ClassRevenues:
			tb.Revenues = append(tb.Revenues, row)
		case coa.ClassExpenses:
			tb.Expenses = append(tb.Expenses, row)
		case coa.ClassCost:
			tb.Cost = append(tb.Cost, row)
		}
		tb.TotalDebit = tb.TotalDebit.Add(row.Debit)
		tb.TotalCredit = tb.TotalCredit.Add(row.Credit)
	}
	return tb
}
