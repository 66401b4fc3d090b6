package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/partsbook/partsbook/internal/shared"
)

// maxNumberingAttempts bounds the retry loop for the voucher-number race.
// Losing the (type, voucher_no) unique constraint restarts the whole write
// transaction with a freshly computed number.
const maxNumberingAttempts = 3

// ReportCache is notified after every ledger mutation so cached report
// payloads stop being served.
type ReportCache interface {
	Bump(ctx context.Context) error
}

// Service implements voucher writes, account balances, and the voucher
// lifecycle on top of the repository.
type Service struct {
	repo  Repository
	cache ReportCache
	now   func() time.Time
}

func NewService(repo Repository, cache ReportCache) *Service {
	return &Service{repo: repo, cache: cache, now: time.Now}
}

// WithNow overrides the clock, used by tests.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

func (s *Service) Get(ctx context.Context, id int64, userID int64) (Voucher, error) {
	return s.repo.GetVoucher(ctx, id, userID)
}

func (s *Service) List(ctx context.Context, userID int64, filter ListFilter) ([]Voucher, error) {
	return s.repo.ListVouchers(ctx, userID, filter)
}

// AccountBalance computes the signed balance for an account, optionally as of
// a cutoff date. The account must exist and be visible to the user.
func (s *Service) AccountBalance(ctx context.Context, accountID, userID int64, asOf *time.Time) (decimal.Decimal, error) {
	ok, err := s.repo.AccountExists(ctx, accountID, userID)
	if err != nil {
		return decimal.Zero, err
	}
	if !ok {
		return decimal.Zero, ErrAccountNotFound
	}
	return s.repo.AccountBalance(ctx, accountID, userID, asOf)
}

// CreateVoucher writes the voucher and its full transaction set in one atomic
// unit: number reservation, explicit lines, and the synthesized counter entry
// for Receipt/Payment types. Either everything persists or nothing does.
func (s *Service) CreateVoucher(ctx context.Context, input CreateVoucherInput, userID int64) (Voucher, error) {
	if err := input.Validate(); err != nil {
		return Voucher{}, err
	}
	synthesis := input.Type.Synthesis()
	if synthesis != SynthesisNone && input.CounterAccountID == nil {
		return Voucher{}, ErrCounterAccountMissing
	}

	var created Voucher
	var err error
	for attempt := 0; attempt < maxNumberingAttempts; attempt++ {
		err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
			v, txErr := s.writeVoucher(ctx, tx, input, userID)
			if txErr != nil {
				return txErr
			}
			created = v
			return nil
		})
		if err == nil || !errors.Is(err, ErrNumberConflict) {
			break
		}
	}
	if err != nil {
		if errors.Is(err, ErrNumberConflict) {
			return Voucher{}, fmt.Errorf("ledger: numbering retries exhausted: %w", shared.ErrStorage)
		}
		return Voucher{}, err
	}
	s.bump(ctx)
	return created, nil
}

func (s *Service) writeVoucher(ctx context.Context, tx TxRepository, input CreateVoucherInput, userID int64) (Voucher, error) {
	synthesis := input.Type.Synthesis()
	if synthesis != SynthesisNone {
		ok, err := tx.AccountExists(ctx, *input.CounterAccountID, userID)
		if err != nil {
			return Voucher{}, err
		}
		if !ok {
			return Voucher{}, ErrCounterAccountMissing
		}
	}
	for _, line := range input.Lines {
		ok, err := tx.AccountExists(ctx, line.AccountID, userID)
		if err != nil {
			return Voucher{}, err
		}
		if !ok {
			return Voucher{}, ErrAccountNotFound
		}
	}

	no, err := tx.NextVoucherNo(ctx, input.Type)
	if err != nil {
		return Voucher{}, err
	}

	voucher := Voucher{
		No:          no,
		Type:        input.Type,
		Date:        input.Date,
		Name:        input.Name,
		TotalAmount: input.TotalAmount,
		IsApproved:  false,
		IsPostDated: input.ChequeNo != nil,
		ChequeNo:    input.ChequeNo,
		ChequeDate:  input.ChequeDate,
		UserID:      userID,
	}
	voucher, err = tx.InsertVoucher(ctx, voucher)
	if err != nil {
		return Voucher{}, err
	}

	for _, line := range input.Lines {
		entry, err := s.writeEntry(ctx, tx, voucher, line.AccountID, line.Debit, line.Credit, line.Description, userID)
		if err != nil {
			return Voucher{}, err
		}
		voucher.Transactions = append(voucher.Transactions, entry)
	}

	switch synthesis {
	case SynthesisDebit:
		entry, err := s.writeEntry(ctx, tx, voucher, *input.CounterAccountID, input.TotalAmount, decimal.Zero, input.Name, userID)
		if err != nil {
			return Voucher{}, err
		}
		voucher.Transactions = append(voucher.Transactions, entry)
	case SynthesisCredit:
		entry, err := s.writeEntry(ctx, tx, voucher, *input.CounterAccountID, decimal.Zero, input.TotalAmount, input.Name, userID)
		if err != nil {
			return Voucher{}, err
		}
		voucher.Transactions = append(voucher.Transactions, entry)
	}
	return voucher, nil
}

func (s *Service) writeEntry(ctx context.Context, tx TxRepository, voucher Voucher, accountID int64, debit, credit decimal.Decimal, description string, userID int64) (Transaction, error) {
	asOf := voucher.Date
	prior, err := tx.AccountBalance(ctx, accountID, userID, &asOf)
	if err != nil {
		return Transaction{}, err
	}
	return tx.InsertTransaction(ctx, Transaction{
		VoucherID:   voucher.ID,
		AccountID:   accountID,
		Debit:       debit,
		Credit:      credit,
		Balance:     prior.Add(debit).Sub(credit),
		Description: description,
		Date:        voucher.Date,
		UserID:      userID,
		IsApproved:  voucher.IsApproved,
	})
}

// ToggleApproval flips the voucher's approval flag and cascades it to every
// non-deleted child transaction in the same transaction.
func (s *Service) ToggleApproval(ctx context.Context, voucherID, userID int64) (Voucher, error) {
	var toggled Voucher
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		current, err := tx.GetVoucherForUpdate(ctx, voucherID, userID)
		if err != nil {
			return err
		}
		next := !current.IsApproved
		if err := tx.SetApproval(ctx, current.ID, next); err != nil {
			return err
		}
		current.IsApproved = next
		for i := range current.Transactions {
			current.Transactions[i].IsApproved = next
		}
		toggled = current
		return nil
	})
	if err != nil {
		return Voucher{}, err
	}
	s.bump(ctx)
	return toggled, nil
}

// ClearPostDated marks a pending cheque as cleared: the post-dated flag
// drops, the cleared date is stored, and every child transaction is re-dated
// to the cleared date so the funds enter balances from that day forward.
func (s *Service) ClearPostDated(ctx context.Context, voucherID, userID int64, clearedDate time.Time) (Voucher, error) {
	if clearedDate.IsZero() {
		return Voucher{}, fmt.Errorf("ledger: cleared date required: %w", shared.ErrValidation)
	}
	var cleared Voucher
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		current, err := tx.GetVoucherForUpdate(ctx, voucherID, userID)
		if err != nil {
			return err
		}
		if !current.IsPostDated {
			return ErrNotPostDated
		}
		if err := tx.MarkCleared(ctx, current.ID, clearedDate); err != nil {
			return err
		}
		current.IsPostDated = false
		current.ClearedDate = &clearedDate
		for i := range current.Transactions {
			current.Transactions[i].Date = clearedDate
		}
		cleared = current
		return nil
	})
	if err != nil {
		return Voucher{}, err
	}
	s.bump(ctx)
	return cleared, nil
}

// Delete soft-deletes the voucher and all child transactions. Auto-generated
// vouchers are immutable once created.
func (s *Service) Delete(ctx context.Context, voucherID, userID int64) error {
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		current, err := tx.GetVoucherForUpdate(ctx, voucherID, userID)
		if err != nil {
			return err
		}
		if current.IsAuto {
			return ErrAutoVoucher
		}
		return tx.SoftDelete(ctx, current.ID, s.now())
	})
	if err != nil {
		return err
	}
	s.bump(ctx)
	return nil
}

func (s *Service) bump(ctx context.Context) {
	if s.cache == nil {
		return
	}
	// Cache invalidation is best-effort; the ledger write already committed.
	_ = s.cache.Bump(ctx)
}
