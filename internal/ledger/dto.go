package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/partsbook/partsbook/internal/shared"
)

// LineInput describes one explicit voucher line.
type LineInput struct {
	AccountID   int64
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Description string
}

// CreateVoucherInput groups the fields required to write a voucher.
type CreateVoucherInput struct {
	Type             VoucherType
	Date             time.Time
	Name             string
	TotalAmount      decimal.Decimal
	CounterAccountID *int64
	Lines            []LineInput
	ChequeNo         *string
	ChequeDate       *time.Time
}

// Validate checks everything that can be decided without touching storage.
// Account existence is verified inside the write transaction.
func (in CreateVoucherInput) Validate() error {
	if !in.Type.Valid() {
		return ErrInvalidType
	}
	if in.Date.IsZero() {
		return fmt.Errorf("ledger: date required: %w", shared.ErrValidation)
	}
	if !in.TotalAmount.IsPositive() {
		return ErrNonPositiveAmount
	}
	if len(in.Lines) == 0 {
		return ErrNoLines
	}
	var debit, credit decimal.Decimal
	for idx, line := range in.Lines {
		if line.AccountID == 0 {
			return fmt.Errorf("ledger: line %d missing account: %w", idx, shared.ErrValidation)
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return fmt.Errorf("ledger: line %d negative amount: %w", idx, shared.ErrValidation)
		}
		if line.Debit.IsPositive() && line.Credit.IsPositive() {
			return fmt.Errorf("ledger: line %d cannot be both debit and credit: %w", idx, shared.ErrValidation)
		}
		debit = debit.Add(line.Debit)
		credit = credit.Add(line.Credit)
	}
	switch in.Type.Synthesis() {
	case SynthesisDebit:
		// The counter debit for the total must balance the explicit lines.
		if !credit.Sub(debit).Equal(in.TotalAmount) {
			return ErrUnbalanced
		}
	case SynthesisCredit:
		if !debit.Sub(credit).Equal(in.TotalAmount) {
			return ErrUnbalanced
		}
	default:
		if !debit.Equal(credit) {
			return ErrUnbalanced
		}
	}
	return nil
}

// ListFilter narrows voucher listings.
type ListFilter struct {
	Type     *VoucherType
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
}
