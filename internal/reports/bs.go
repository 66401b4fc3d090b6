package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/partsbook/partsbook/internal/coa"
)

// AccountBalanceRow is one account's signed balance (debit minus credit) as
// of the report date.
type AccountBalanceRow struct {
	AccountID      int64
	Code           string
	Name           string
	Classification coa.Classification
	CashBank       bool
	Balance        decimal.Decimal
}

// BalanceSheetAccount is one account listed in a balance sheet section.
type BalanceSheetAccount struct {
	AccountID int64           `json:"accountId"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
}

// BalanceSheetSection carries the accounts and total for one classification.
type BalanceSheetSection struct {
	Label    string                `json:"label"`
	Accounts []BalanceSheetAccount `json:"accounts"`
	Total    decimal.Decimal       `json:"total"`
}

// BalanceSheet lists Assets/Liabilities/Capital per account and accumulates
// Revenue, Expense, and Cost as plain totals. Net profit uses the
// credit-normal sign for revenue so profit comes out positive.
type BalanceSheet struct {
	AsOf        string              `json:"asOf"`
	Assets      BalanceSheetSection `json:"assets"`
	Liabilities BalanceSheetSection `json:"liabilities"`
	Capital     BalanceSheetSection `json:"capital"`
	Revenue     decimal.Decimal     `json:"revenue"`
	Expense     decimal.Decimal     `json:"expense"`
	Cost        decimal.Decimal     `json:"cost"`
	NetProfit   decimal.Decimal     `json:"netProfit"`
}

// BuildBalanceSheet aggregates account balances into the report shape.
func BuildBalanceSheet(rows []AccountBalanceRow) BalanceSheet {
	bs := BalanceSheet{
		Assets:      BalanceSheetSection{Label: "Assets"},
		Liabilities: BalanceSheetSection{Label: "Liabilities"},
		Capital:     BalanceSheetSection{Label: "Capital"},
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Code < rows[j].Code })
	for _, row := range rows {
		account := BalanceSheetAccount{AccountID: row.AccountID, Code: row.Code, Name: row.Name, Balance: row.Balance}
		switch row.Classification {
		case coa.ClassAssets:
			bs.Assets.Accounts = append(bs.Assets.Accounts, account)
			bs.Assets.Total = bs.Assets.Total.Add(row.Balance)
		case coa.ClassLiabilities:
			bs.Liabilities.Accounts = append(bs.Liabilities.Accounts, account)
			bs.Liabilities.Total = bs.Liabilities.Total.Add(row.Balance)
		case coa.ClassCapital:
			bs.Capital.Accounts = append(bs.Capital.Accounts, account)
			bs.Capital.Total = bs.Capital.Total.Add(row.Balance)
		case coa.ClassRevenues:
			bs.Revenue = bs.Revenue.Add(row.Balance.Neg())
		case coa.ClassExpenses:
			bs.Expense = bs.Expense.Add(row.Balance)
		case coa.ClassCost:
			bs.Cost = bs.Cost.Add(row.Balance)
		}
	}
	bs.NetProfit = bs.Revenue.Sub(bs.Expense).Sub(bs.Cost)
	return bs
}
