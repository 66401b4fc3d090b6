package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/partsbook/partsbook/internal/shared"
)

type memoryLedgerRepo struct {
	accounts     map[int64]bool
	vouchers     map[int64]*Voucher
	transactions map[int64][]Transaction
	nextID       int64
	nextTxID     int64
	// failInserts makes the next N InsertVoucher calls lose the numbering race.
	failInserts int
	// cascadeErr is returned by the lifecycle writes after they applied
	// their mutation, so the rollback in WithTx has work to undo.
	cascadeErr error
}

func newMemoryLedgerRepo(accountIDs ...int64) *memoryLedgerRepo {
	accounts := make(map[int64]bool)
	for _, id := range accountIDs {
		accounts[id] = true
	}
	return &memoryLedgerRepo{
		accounts:     accounts,
		vouchers:     make(map[int64]*Voucher),
		transactions: make(map[int64][]Transaction),
	}
}

// WithTx buffers all writes: on error the pre-transaction state is restored,
// mirroring a rolled-back database transaction.
func (r *memoryLedgerRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	vouchers := make(map[int64]*Voucher, len(r.vouchers))
	for id, v := range r.vouchers {
		copied := *v
		vouchers[id] = &copied
	}
	transactions := make(map[int64][]Transaction, len(r.transactions))
	for id, txs := range r.transactions {
		transactions[id] = append([]Transaction(nil), txs...)
	}
	nextID, nextTxID := r.nextID, r.nextTxID

	if err := fn(ctx, &memoryLedgerTx{repo: r}); err != nil {
		r.vouchers = vouchers
		r.transactions = transactions
		r.nextID = nextID
		r.nextTxID = nextTxID
		return err
	}
	return nil
}

func (r *memoryLedgerRepo) AccountExists(ctx context.Context, accountID, userID int64) (bool, error) {
	return r.accounts[accountID], nil
}

func (r *memoryLedgerRepo) GetVoucher(ctx context.Context, id int64, userID int64) (Voucher, error) {
	v, ok := r.vouchers[id]
	if !ok || v.DeletedAt != nil || v.UserID != userID {
		return Voucher{}, ErrVoucherNotFound
	}
	out := *v
	out.Transactions = r.liveTransactions(id)
	return out, nil
}

func (r *memoryLedgerRepo) ListVouchers(ctx context.Context, userID int64, filter ListFilter) ([]Voucher, error) {
	var out []Voucher
	for _, v := range r.vouchers {
		if v.DeletedAt != nil || v.UserID != userID {
			continue
		}
		if filter.Type != nil && v.Type != *filter.Type {
			continue
		}
		out = append(out, *v)
	}
	return out, nil
}

func (r *memoryLedgerRepo) AccountBalance(ctx context.Context, accountID, userID int64, asOf *time.Time) (decimal.Decimal, error) {
	return r.balance(accountID, userID, asOf), nil
}

func (r *memoryLedgerRepo) liveTransactions(voucherID int64) []Transaction {
	var out []Transaction
	for _, t := range r.transactions[voucherID] {
		if t.DeletedAt == nil {
			out = append(out, t)
		}
	}
	return out
}

func (r *memoryLedgerRepo) balance(accountID, userID int64, asOf *time.Time) decimal.Decimal {
	sum := decimal.Zero
	for voucherID, txs := range r.transactions {
		v := r.vouchers[voucherID]
		if v == nil || v.DeletedAt != nil || v.IsPostDated {
			continue
		}
		for _, t := range txs {
			if t.AccountID != accountID || t.UserID != userID || !t.IsApproved || t.DeletedAt != nil {
				continue
			}
			if asOf != nil && t.Date.After(*asOf) {
				continue
			}
			sum = sum.Add(t.Debit).Sub(t.Credit)
		}
	}
	return sum
}

type memoryLedgerTx struct {
	repo *memoryLedgerRepo
}

func (t *memoryLedgerTx) NextVoucherNo(ctx context.Context, vt VoucherType) (int64, error) {
	var max int64
	for _, v := range t.repo.vouchers {
		if v.Type == vt && v.No > max {
			max = v.No
		}
	}
	return max + 1, nil
}

func (t *memoryLedgerTx) InsertVoucher(ctx context.Context, v Voucher) (Voucher, error) {
	if t.repo.failInserts > 0 {
		t.repo.failInserts--
		return Voucher{}, ErrNumberConflict
	}
	t.repo.nextID++
	v.ID = t.repo.nextID
	v.GeneratedAt = time.Now()
	stored := v
	stored.Transactions = nil
	t.repo.vouchers[v.ID] = &stored
	return v, nil
}

func (t *memoryLedgerTx) InsertTransaction(ctx context.Context, tr Transaction) (Transaction, error) {
	t.repo.nextTxID++
	tr.ID = t.repo.nextTxID
	t.repo.transactions[tr.VoucherID] = append(t.repo.transactions[tr.VoucherID], tr)
	return tr, nil
}

func (t *memoryLedgerTx) AccountExists(ctx context.Context, accountID, userID int64) (bool, error) {
	return t.repo.AccountExists(ctx, accountID, userID)
}

func (t *memoryLedgerTx) AccountBalance(ctx context.Context, accountID, userID int64, asOf *time.Time) (decimal.Decimal, error) {
	return t.repo.balance(accountID, userID, asOf), nil
}

func (t *memoryLedgerTx) GetVoucherForUpdate(ctx context.Context, id int64, userID int64) (Voucher, error) {
	return t.repo.GetVoucher(ctx, id, userID)
}

func (t *memoryLedgerTx) SetApproval(ctx context.Context, voucherID int64, approved bool) error {
	v, ok := t.repo.vouchers[voucherID]
	if !ok {
		return ErrVoucherNotFound
	}
	v.IsApproved = approved
	txs := t.repo.transactions[voucherID]
	for i := range txs {
		if txs[i].DeletedAt == nil {
			txs[i].IsApproved = approved
		}
	}
	return t.repo.cascadeErr
}

func (t *memoryLedgerTx) MarkCleared(ctx context.Context, voucherID int64, clearedDate time.Time) error {
	v, ok := t.repo.vouchers[voucherID]
	if !ok {
		return ErrVoucherNotFound
	}
	v.IsPostDated = false
	v.ClearedDate = &clearedDate
	txs := t.repo.transactions[voucherID]
	for i := range txs {
		if txs[i].DeletedAt == nil {
			txs[i].Date = clearedDate
		}
	}
	return t.repo.cascadeErr
}

func (t *memoryLedgerTx) SoftDelete(ctx context.Context, voucherID int64, at time.Time) error {
	v, ok := t.repo.vouchers[voucherID]
	if !ok {
		return ErrVoucherNotFound
	}
	v.DeletedAt = &at
	txs := t.repo.transactions[voucherID]
	for i := range txs {
		if txs[i].DeletedAt == nil {
			txs[i].DeletedAt = &at
		}
	}
	return t.repo.cascadeErr
}

type countingCache struct {
	bumps int
}

func (c *countingCache) Bump(ctx context.Context) error {
	c.bumps++
	return nil
}

const testUser int64 = 7

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func receiptInput(counter int64, lines ...LineInput) CreateVoucherInput {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Credit).Sub(l.Debit)
	}
	return CreateVoucherInput{
		Type:             TypeReceipt,
		Date:             time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Name:             "Customer settlement",
		TotalAmount:      total,
		CounterAccountID: &counter,
		Lines:            lines,
	}
}

func TestCreateVoucherReceiptSynthesizesCounterDebit(t *testing.T) {
	repo := newMemoryLedgerRepo(1, 2)
	svc := NewService(repo, nil)

	v, err := svc.CreateVoucher(context.Background(), receiptInput(1, LineInput{
		AccountID: 2, Credit: d("500"), Description: "Invoice #42",
	}), testUser)
	require.NoError(t, err)

	require.Equal(t, int64(1), v.No)
	require.False(t, v.IsApproved)
	require.Len(t, v.Transactions, 2)

	synthesized := v.Transactions[1]
	require.Equal(t, int64(1), synthesized.AccountID)
	require.True(t, synthesized.Debit.Equal(d("500")))
	require.True(t, synthesized.Credit.IsZero())
	require.Equal(t, "Customer settlement", synthesized.Description)

	totalDebit, totalCredit := decimal.Zero, decimal.Zero
	for _, tr := range v.Transactions {
		totalDebit = totalDebit.Add(tr.Debit)
		totalCredit = totalCredit.Add(tr.Credit)
	}
	require.True(t, totalDebit.Equal(totalCredit))
}

func TestCreateVoucherPaymentSynthesizesCounterCredit(t *testing.T) {
	repo := newMemoryLedgerRepo(1, 3)
	svc := NewService(repo, nil)
	counter := int64(1)

	v, err := svc.CreateVoucher(context.Background(), CreateVoucherInput{
		Type:             TypePayment,
		Date:             time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC),
		Name:             "Rent March",
		TotalAmount:      d("1200"),
		CounterAccountID: &counter,
		Lines:            []LineInput{{AccountID: 3, Debit: d("1200")}},
	}, testUser)
	require.NoError(t, err)
	require.Len(t, v.Transactions, 2)
	require.True(t, v.Transactions[1].Credit.Equal(d("1200")))
	require.True(t, v.Transactions[1].Debit.IsZero())
}

func TestCreateVoucherJournalNeedsNoCounter(t *testing.T) {
	repo := newMemoryLedgerRepo(1, 2)
	svc := NewService(repo, nil)

	v, err := svc.CreateVoucher(context.Background(), CreateVoucherInput{
		Type:        TypeJournal,
		Date:        time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		Name:        "Reclass",
		TotalAmount: d("300"),
		Lines: []LineInput{
			{AccountID: 1, Debit: d("300")},
			{AccountID: 2, Credit: d("300")},
		},
	}, testUser)
	require.NoError(t, err)
	require.Len(t, v.Transactions, 2)
}

func TestCreateVoucherValidation(t *testing.T) {
	repo := newMemoryLedgerRepo(1, 2)
	svc := NewService(repo, nil)
	ctx := context.Background()
	counter := int64(1)
	date := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		input CreateVoucherInput
		want  error
	}{
		{
			name:  "unknown type",
			input: CreateVoucherInput{Type: 99, Date: date, TotalAmount: d("10"), Lines: []LineInput{{AccountID: 2, Credit: d("10")}}},
			want:  ErrInvalidType,
		},
		{
			name:  "zero total",
			input: CreateVoucherInput{Type: TypeJournal, Date: date, TotalAmount: decimal.Zero, Lines: []LineInput{{AccountID: 2, Credit: d("10")}}},
			want:  ErrNonPositiveAmount,
		},
		{
			name:  "no lines",
			input: CreateVoucherInput{Type: TypeJournal, Date: date, TotalAmount: d("10")},
			want:  ErrNoLines,
		},
		{
			name: "journal out of balance",
			input: CreateVoucherInput{Type: TypeJournal, Date: date, TotalAmount: d("10"), Lines: []LineInput{
				{AccountID: 1, Debit: d("10")},
				{AccountID: 2, Credit: d("9")},
			}},
			want: ErrUnbalanced,
		},
		{
			name: "receipt lines do not cover total",
			input: CreateVoucherInput{Type: TypeReceipt, Date: date, TotalAmount: d("500"), CounterAccountID: &counter,
				Lines: []LineInput{{AccountID: 2, Credit: d("400")}}},
			want: ErrUnbalanced,
		},
		{
			name: "receipt without counter account",
			input: CreateVoucherInput{Type: TypeReceipt, Date: date, TotalAmount: d("500"),
				Lines: []LineInput{{AccountID: 2, Credit: d("500")}}},
			want: ErrCounterAccountMissing,
		},
		{
			name: "line on both sides",
			input: CreateVoucherInput{Type: TypeJournal, Date: date, TotalAmount: d("10"), Lines: []LineInput{
				{AccountID: 1, Debit: d("10"), Credit: d("10")},
				{AccountID: 2, Credit: d("10")},
			}},
			want: shared.ErrValidation,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateVoucher(ctx, tc.input, testUser)
			require.ErrorIs(t, err, tc.want)
		})
	}
	require.Empty(t, repo.vouchers, "no voucher may persist after a failed validation")
}

func TestCreateVoucherUnknownAccounts(t *testing.T) {
	repo := newMemoryLedgerRepo(1)
	svc := NewService(repo, nil)

	_, err := svc.CreateVoucher(context.Background(), receiptInput(1, LineInput{
		AccountID: 999, Credit: d("50"),
	}), testUser)
	require.ErrorIs(t, err, ErrAccountNotFound)

	_, err = svc.CreateVoucher(context.Background(), receiptInput(999, LineInput{
		AccountID: 1, Credit: d("50"),
	}), testUser)
	require.ErrorIs(t, err, ErrCounterAccountMissing)
}

func TestCreateVoucherNumberingRetriesOnConflict(t *testing.T) {
	repo := newMemoryLedgerRepo(1, 2)
	repo.failInserts = 2
	svc := NewService(repo, nil)

	v, err := svc.CreateVoucher(context.Background(), receiptInput(1, LineInput{
		AccountID: 2, Credit: d("100"),
	}), testUser)
	require.NoError(t, err)
	require.Equal(t, int64(1), v.No)
	require.Len(t, repo.vouchers, 1)
}

func TestCreateVoucherNumberingExhausted(t *testing.T) {
	repo := newMemoryLedgerRepo(1, 2)
	repo.failInserts = maxNumberingAttempts
	svc := NewService(repo, nil)

	_, err := svc.CreateVoucher(context.Background(), receiptInput(1, LineInput{
		AccountID: 2, Credit: d("100"),
	}), testUser)
	require.ErrorIs(t, err, shared.ErrStorage)
}

func TestVoucherNumbersAdvancePerType(t *testing.T) {
	repo := newMemoryLedgerRepo(1, 2, 3)
	svc := NewService(repo, nil)
	ctx := context.Background()

	first, err := svc.CreateVoucher(ctx, receiptInput(1, LineInput{AccountID: 2, Credit: d("10")}), testUser)
	require.NoError(t, err)
	second, err := svc.CreateVoucher(ctx, receiptInput(1, LineInput{AccountID: 2, Credit: d("20")}), testUser)
	require.NoError(t, err)
	counter := int64(1)
	payment, err := svc.CreateVoucher(ctx, CreateVoucherInput{
		Type: TypePayment, Date: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		TotalAmount: d("10"), CounterAccountID: &counter,
		Lines: []LineInput{{AccountID: 3, Debit: d("10")}},
	}, testUser)
	require.NoError(t, err)

	require.Equal(t, int64(1), first.No)
	require.Equal(t, int64(2), second.No)
	require.Equal(t, int64(1), payment.No, "numbering is independent per voucher type")
	require.Equal(t, "RV-2", second.FormattedNo())
	require.Equal(t, "PV-1", payment.FormattedNo())
}

func TestToggleApprovalCascades(t *testing.T) {
	repo := newMemoryLedgerRepo(1, 2)
	cache := &countingCache{}
	svc := NewService(repo, cache)
	ctx := context.Background()

	v, err := svc.CreateVoucher(ctx, receiptInput(1, LineInput{AccountID: 2, Credit: d("250")}), testUser)
	require.NoError(t, err)
	require.False(t, v.IsApproved)

	approved, err := svc.ToggleApproval(ctx, v.ID, testUser)
	require.NoError(t, err)
	require.True(t, approved.IsApproved)
	for _, tr := range approved.Transactions {
		require.True(t, tr.IsApproved)
	}

	balance, err := svc.AccountBalance(ctx, 1, testUser, nil)
	require.NoError(t, err)
	require.True(t, balance.Equal(d("250")))

	unapproved, err := svc.ToggleApproval(ctx, v.ID, testUser)
	require.NoError(t, err)
	require.False(t, unapproved.IsApproved)
	for _, tr := range unapproved.Transactions {
		require.False(t, tr.IsApproved)
	}

	balance, err = svc.AccountBalance(ctx, 1, testUser, nil)
	require.NoError(t, err)
	require.True(t, balance.IsZero(), "unapproved entries leave balances")

	require.Equal(t, 3, cache.bumps)
}

func TestAccountBalanceUnknownAccount(t *testing.T) {
	repo := newMemoryLedgerRepo(1, 2)
	svc := NewService(repo, nil)

	_, err := svc.AccountBalance(context.Background(), 424242, testUser, nil)
	require.ErrorIs(t, err, ErrAccountNotFound)
}

func TestLifecycleFailuresRollBackCascades(t *testing.T) {
	repo := newMemoryLedgerRepo(1, 2)
	cache := &countingCache{}
	svc := NewService(repo, cache)
	ctx := context.Background()

	chequeNo := "CHQ-9"
	input := receiptInput(1, LineInput{AccountID: 2, Credit: d("250")})
	input.ChequeNo = &chequeNo
	v, err := svc.CreateVoucher(ctx, input, testUser)
	require.NoError(t, err)
	bumps := cache.bumps

	repo.cascadeErr = errors.New("write failed")

	_, err = svc.ToggleApproval(ctx, v.ID, testUser)
	require.Error(t, err)
	current, getErr := svc.Get(ctx, v.ID, testUser)
	require.NoError(t, getErr)
	require.False(t, current.IsApproved, "approval must not survive an aborted cascade")
	for _, tr := range current.Transactions {
		require.False(t, tr.IsApproved)
	}

	_, err = svc.ClearPostDated(ctx, v.ID, testUser, time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC))
	require.Error(t, err)
	current, getErr = svc.Get(ctx, v.ID, testUser)
	require.NoError(t, getErr)
	require.True(t, current.IsPostDated)
	require.Nil(t, current.ClearedDate)
	for _, tr := range current.Transactions {
		require.True(t, v.Date.Equal(tr.Date), "entry dates must not move on a failed clear")
	}

	require.Error(t, svc.Delete(ctx, v.ID, testUser))
	_, getErr = svc.Get(ctx, v.ID, testUser)
	require.NoError(t, getErr, "a failed delete leaves the voucher visible")

	require.Equal(t, bumps, cache.bumps, "failed mutations must not retire cached reports")
}

func TestBalanceIgnoresPostDatedAndRespectsCutoff(t *testing.T) {
	repo := newMemoryLedgerRepo(1, 2)
	svc := NewService(repo, nil)
	ctx := context.Background()

	normal := receiptInput(1, LineInput{AccountID: 2, Credit: d("100")})
	v1, err := svc.CreateVoucher(ctx, normal, testUser)
	require.NoError(t, err)
	_, err = svc.ToggleApproval(ctx, v1.ID, testUser)
	require.NoError(t, err)

	chequeNo := "CHQ-100"
	chequeDate := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	pd := receiptInput(1, LineInput{AccountID: 2, Credit: d("999")})
	pd.ChequeNo = &chequeNo
	pd.ChequeDate = &chequeDate
	v2, err := svc.CreateVoucher(ctx, pd, testUser)
	require.NoError(t, err)
	require.True(t, v2.IsPostDated)
	_, err = svc.ToggleApproval(ctx, v2.ID, testUser)
	require.NoError(t, err)

	balance, err := svc.AccountBalance(ctx, 1, testUser, nil)
	require.NoError(t, err)
	require.True(t, balance.Equal(d("100")), "pending cheques stay out of balances, got %s", balance)

	before := time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC)
	balance, err = svc.AccountBalance(ctx, 1, testUser, &before)
	require.NoError(t, err)
	require.True(t, balance.IsZero(), "cutoff before the voucher date excludes it")
}

func TestClearPostDated(t *testing.T) {
	repo := newMemoryLedgerRepo(1, 2)
	svc := NewService(repo, nil)
	ctx := context.Background()

	chequeNo := "CHQ-7"
	chequeDate := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	input := receiptInput(1, LineInput{AccountID: 2, Credit: d("300")})
	input.ChequeNo = &chequeNo
	input.ChequeDate = &chequeDate

	v, err := svc.CreateVoucher(ctx, input, testUser)
	require.NoError(t, err)
	_, err = svc.ToggleApproval(ctx, v.ID, testUser)
	require.NoError(t, err)

	clearedDate := time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC)
	cleared, err := svc.ClearPostDated(ctx, v.ID, testUser, clearedDate)
	require.NoError(t, err)
	require.False(t, cleared.IsPostDated)
	require.NotNil(t, cleared.ClearedDate)
	require.True(t, clearedDate.Equal(*cleared.ClearedDate))
	for _, tr := range cleared.Transactions {
		require.True(t, clearedDate.Equal(tr.Date), "entries move to the cleared date")
	}

	balance, err := svc.AccountBalance(ctx, 1, testUser, nil)
	require.NoError(t, err)
	require.True(t, balance.Equal(d("300")), "cleared cheque enters balances")

	_, err = svc.ClearPostDated(ctx, v.ID, testUser, clearedDate.AddDate(0, 0, 1))
	require.ErrorIs(t, err, ErrNotPostDated)
}

func TestDelete(t *testing.T) {
	repo := newMemoryLedgerRepo(1, 2)
	svc := NewService(repo, nil)
	svc.WithNow(func() time.Time { return time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC) })
	ctx := context.Background()

	v, err := svc.CreateVoucher(ctx, receiptInput(1, LineInput{AccountID: 2, Credit: d("80")}), testUser)
	require.NoError(t, err)
	_, err = svc.ToggleApproval(ctx, v.ID, testUser)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, v.ID, testUser))

	_, err = svc.Get(ctx, v.ID, testUser)
	require.ErrorIs(t, err, ErrVoucherNotFound)

	balance, err := svc.AccountBalance(ctx, 1, testUser, nil)
	require.NoError(t, err)
	require.True(t, balance.IsZero(), "deleted vouchers drop out of balances")

	require.ErrorIs(t, svc.Delete(ctx, v.ID, testUser), ErrVoucherNotFound)
}

func TestDeleteRefusesAutoVouchers(t *testing.T) {
	repo := newMemoryLedgerRepo(1, 2)
	svc := NewService(repo, nil)
	ctx := context.Background()

	v, err := svc.CreateVoucher(ctx, receiptInput(1, LineInput{AccountID: 2, Credit: d("80")}), testUser)
	require.NoError(t, err)
	repo.vouchers[v.ID].IsAuto = true

	require.ErrorIs(t, svc.Delete(ctx, v.ID, testUser), ErrAutoVoucher)
}

func TestVoucherScopedToUser(t *testing.T) {
	repo := newMemoryLedgerRepo(1, 2)
	svc := NewService(repo, nil)
	ctx := context.Background()

	v, err := svc.CreateVoucher(ctx, receiptInput(1, LineInput{AccountID: 2, Credit: d("80")}), testUser)
	require.NoError(t, err)

	_, err = svc.Get(ctx, v.ID, testUser+1)
	require.ErrorIs(t, err, ErrVoucherNotFound)
	_, err = svc.ToggleApproval(ctx, v.ID, testUser+1)
	require.ErrorIs(t, err, ErrVoucherNotFound)
}

func TestRunningBalanceSnapshot(t *testing.T) {
	repo := newMemoryLedgerRepo(1, 2)
	svc := NewService(repo, nil)
	ctx := context.Background()

	v1, err := svc.CreateVoucher(ctx, receiptInput(1, LineInput{AccountID: 2, Credit: d("100")}), testUser)
	require.NoError(t, err)
	_, err = svc.ToggleApproval(ctx, v1.ID, testUser)
	require.NoError(t, err)

	v2, err := svc.CreateVoucher(ctx, receiptInput(1, LineInput{AccountID: 2, Credit: d("40")}), testUser)
	require.NoError(t, err)

	// Counter entry snapshot: 100 already in the account, plus this debit.
	require.True(t, v2.Transactions[1].Balance.Equal(d("140")))
}
