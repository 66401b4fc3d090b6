// Package ledger implements the double-entry voucher engine: voucher
// numbering, atomic voucher writes, account balances, and the voucher
// lifecycle (approval, post-dated clearing, soft delete).
package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/partsbook/partsbook/internal/shared"
)

// VoucherType is a closed enum of the seven document types.
type VoucherType int

const (
	TypeReceipt  VoucherType = 1
	TypePayment  VoucherType = 2
	TypeJournal  VoucherType = 3
	TypeSales    VoucherType = 4
	TypePurchase VoucherType = 5
	TypeContra   VoucherType = 6
	TypeOpening  VoucherType = 7
)

// Valid reports whether t is one of the known voucher types.
func (t VoucherType) Valid() bool {
	return t >= TypeReceipt && t <= TypeOpening
}

// Synthesis describes how the engine completes a voucher's entry set from its
// explicit line items.
type Synthesis int

const (
	// SynthesisNone means the caller supplies every side explicitly and the
	// lines must balance on their own (Journal, Contra, ...).
	SynthesisNone Synthesis = iota
	// SynthesisDebit derives a single debit to the counter account for the
	// voucher total (Receipt: cash comes in, the cash account grows).
	SynthesisDebit
	// SynthesisCredit derives a single credit to the counter account for the
	// voucher total (Payment: cash goes out).
	SynthesisCredit
)

// Synthesis returns the entry-completion strategy for the type.
func (t VoucherType) Synthesis() Synthesis {
	switch t {
	case TypeReceipt:
		return SynthesisDebit
	case TypePayment:
		return SynthesisCredit
	default:
		return SynthesisNone
	}
}

var typePrefixes = map[VoucherType]string{
	TypeReceipt:  "RV",
	TypePayment:  "PV",
	TypeJournal:  "JV",
	TypeSales:    "SV",
	TypePurchase: "PUV",
	TypeContra:   "CV",
	TypeOpening:  "OV",
}

// Prefix returns the short code used in formatted voucher numbers.
func (t VoucherType) Prefix() string {
	if p, ok := typePrefixes[t]; ok {
		return p
	}
	return "V"
}

// FormatNumber renders the user-facing voucher number, e.g. RV-12.
func FormatNumber(t VoucherType, no int64) string {
	return fmt.Sprintf("%s-%d", t.Prefix(), no)
}

// Voucher is a single accounting document. It exclusively owns its
// transaction set; the two are written, approved, cleared, and soft-deleted
// as one unit.
type Voucher struct {
	ID           int64
	No           int64
	Type         VoucherType
	Date         time.Time
	Name         string
	TotalAmount  decimal.Decimal
	IsApproved   bool
	IsPostDated  bool
	ChequeNo     *string
	ChequeDate   *time.Time
	ClearedDate  *time.Time
	IsAuto       bool
	UserID       int64
	GeneratedAt  time.Time
	DeletedAt    *time.Time
	Transactions []Transaction
}

// FormattedNo renders the voucher's display number.
func (v Voucher) FormattedNo() string {
	return FormatNumber(v.Type, v.No)
}

// Transaction is one debit-or-credit posting against one account. Balance is
// the point-in-time snapshot computed at write time; reportable balances are
// always derived from the transaction log instead.
type Transaction struct {
	ID          int64
	VoucherID   int64
	AccountID   int64
	Debit       decimal.Decimal
	Credit      decimal.Decimal
	Balance     decimal.Decimal
	Description string
	Date        time.Time
	UserID      int64
	IsApproved  bool
	DeletedAt   *time.Time
}

var (
	// ErrVoucherNotFound indicates the voucher does not exist, is deleted, or belongs to another user.
	ErrVoucherNotFound = fmt.Errorf("ledger: voucher %w", shared.ErrNotFound)
	// ErrAccountNotFound indicates a referenced account does not exist or is inactive.
	ErrAccountNotFound = fmt.Errorf("ledger: account missing or inactive: %w", shared.ErrNotFound)
	// ErrCounterAccountMissing indicates a Receipt/Payment voucher without its counter account.
	ErrCounterAccountMissing = fmt.Errorf("ledger: counter account %w", shared.ErrNotFound)
	// ErrInvalidType indicates an unknown voucher type.
	ErrInvalidType = fmt.Errorf("ledger: unknown voucher type: %w", shared.ErrValidation)
	// ErrNoLines indicates a voucher without line items.
	ErrNoLines = fmt.Errorf("ledger: at least one line item required: %w", shared.ErrValidation)
	// ErrNonPositiveAmount indicates totalAmount <= 0.
	ErrNonPositiveAmount = fmt.Errorf("ledger: total amount must be positive: %w", shared.ErrValidation)
	// ErrUnbalanced indicates the entries do not satisfy double-entry balance.
	ErrUnbalanced = fmt.Errorf("ledger: entries must balance: %w", shared.ErrValidation)
	// ErrAutoVoucher indicates an attempt to delete a system-generated voucher.
	ErrAutoVoucher = fmt.Errorf("ledger: auto-generated vouchers are immutable: %w", shared.ErrInvalidOperation)
	// ErrNotPostDated indicates clearing a voucher that has no pending cheque.
	ErrNotPostDated = fmt.Errorf("ledger: voucher is not post-dated: %w", shared.ErrInvalidOperation)
	// ErrNumberConflict indicates a lost voucher-number race; the writer retries.
	ErrNumberConflict = fmt.Errorf("ledger: voucher number taken: %w", shared.ErrConflict)
)
