package ledger

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVoucherTypeValid(t *testing.T) {
	for vt := TypeReceipt; vt <= TypeOpening; vt++ {
		require.True(t, vt.Valid())
	}
	require.False(t, VoucherType(0).Valid())
	require.False(t, VoucherType(8).Valid())
	require.False(t, VoucherType(-1).Valid())
}

func TestVoucherTypeSynthesis(t *testing.T) {
	require.Equal(t, SynthesisDebit, TypeReceipt.Synthesis())
	require.Equal(t, SynthesisCredit, TypePayment.Synthesis())
	for _, vt := range []VoucherType{TypeJournal, TypeSales, TypePurchase, TypeContra, TypeOpening} {
		require.Equal(t, SynthesisNone, vt.Synthesis())
	}
}

func TestFormatNumber(t *testing.T) {
	require.Equal(t, "RV-12", FormatNumber(TypeReceipt, 12))
	require.Equal(t, "PV-3", FormatNumber(TypePayment, 3))
	require.Equal(t, "JV-1", FormatNumber(TypeJournal, 1))
	require.Equal(t, "OV-9", FormatNumber(TypeOpening, 9))
	require.Equal(t, "V-5", FormatNumber(VoucherType(42), 5))
}
