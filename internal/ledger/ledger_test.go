package ledger

import (
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "landtitle/pkg/domain-errors"
)

func TestNormalizeTxID(t *testing.T) {
	valid := "0x" + strings.Repeat("AB", 32)

	got, err := NormalizeTxID(valid)
	require.NoError(t, err)
	assert.Equal(t, strings.ToLower(valid), got)

	for _, bad := range []string{"", "0x1234", strings.Repeat("ab", 32), "0x" + strings.Repeat("zz", 32), valid + "00"} {
		_, err := NormalizeTxID(bad)
		require.Error(t, err, bad)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	}
}

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		name  string
		addr  string
		valid bool
	}{
		{"checksummed", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", true},
		{"all lower", "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", true},
		{"all upper", "0x5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED", true},
		{"bad checksum", "0x5aaeb6053F3E94C9b9A09f33669435E7Ef1BeAed", false},
		{"missing prefix", "5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", false},
		{"too short", "0x5aaeb6053f3e94c9b9a09f33669435e7ef1bea", false},
		{"not hex", "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beazz", false},
		{"empty", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAddress(tt.addr)
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidAddress))
		})
	}
}

func TestSameAddress(t *testing.T) {
	assert.True(t, SameAddress("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"))
	assert.False(t, SameAddress("", ""))
	assert.False(t, SameAddress("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", "0x37622b2e2714ee440a7672e7d83802196530b2bc"))
}

func TestConverter(t *testing.T) {
	c, err := NewConverter("250000")
	require.NoError(t, err)

	wei := c.ToWei(decimal.NewFromInt(5_000_000))
	expected, _ := new(big.Int).SetString("20000000000000000000", 10)
	assert.Equal(t, 0, wei.Cmp(expected), "got %s", wei)

	wei = c.ToWei(decimal.NewFromInt(1000))
	expected, _ = new(big.Int).SetString("4000000000000000", 10)
	assert.Equal(t, 0, wei.Cmp(expected), "got %s", wei)

	assert.Equal(t, "20", c.ToEther(decimal.NewFromInt(5_000_000)))

	_, err = NewConverter("0")
	assert.Error(t, err)
	_, err = NewConverter("abc")
	assert.Error(t, err)
}

func TestDevLedger(t *testing.T) {
	ctx := context.Background()
	txID := "0x" + strings.Repeat("cd", 32)

	t.Run("unknown transaction not found by default", func(t *testing.T) {
		_, err := NewDevLedger().LookupTransaction(ctx, txID)
		assert.True(t, errors.Is(err, ErrTxNotFound))
	})

	t.Run("trusting ledger confirms unknown transactions as unverified", func(t *testing.T) {
		tx, err := NewDevLedger(WithTrustUnknown()).LookupTransaction(ctx, txID)
		require.NoError(t, err)
		assert.Equal(t, TxConfirmed, tx.Status)
		assert.True(t, tx.Unverified)
	})

	t.Run("seeded transaction lookup is case-insensitive", func(t *testing.T) {
		l := NewDevLedger()
		l.Put(Transaction{Hash: strings.ToUpper(txID[2:]), Status: TxPending, Value: big.NewInt(10)})
		l.Put(Transaction{Hash: txID, Status: TxPending, Value: big.NewInt(10)})

		tx, err := l.LookupTransaction(ctx, "0x"+strings.ToUpper(txID[2:]))
		require.NoError(t, err)
		assert.Equal(t, TxPending, tx.Status)

		l.SetStatus(txID, TxConfirmed)
		tx, err = l.LookupTransaction(ctx, txID)
		require.NoError(t, err)
		assert.Equal(t, TxConfirmed, tx.Status)
		tx.Value.SetInt64(99)

		again, err := l.LookupTransaction(ctx, txID)
		require.NoError(t, err)
		assert.Equal(t, int64(10), again.Value.Int64(), "returned values are copies")
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := NewDevLedger(WithTrustUnknown()).LookupTransaction(cctx, txID)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
