package payments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/libbond-go/bond"
)

func makeAddr(seed byte) bond.Address {
	var addr bond.Address
	for i := range addr {
		addr[i] = seed
	}
	return addr
}

func TestMemBankTransfer(t *testing.T) {
	ctx := context.Background()
	bank := NewMemBank()
	a, b := makeAddr(0x0A), makeAddr(0x0B)
	bank.Deposit(a, 1000)

	require.NoError(t, bank.Transfer(ctx, a, b, 300))

	balA, err := bank.BalanceOf(ctx, a)
	require.NoError(t, err)
	balB, err := bank.BalanceOf(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, uint64(700), balA)
	assert.Equal(t, uint64(300), balB)
}

func TestMemBankTransferErrors(t *testing.T) {
	ctx := context.Background()
	bank := NewMemBank()
	a, b := makeAddr(0x0A), makeAddr(0x0B)
	bank.Deposit(a, 100)

	assert.ErrorIs(t, bank.Transfer(ctx, a, b, 0), ErrZeroTransfer)
	assert.ErrorIs(t, bank.Transfer(ctx, a, b, 101), ErrInsufficientFunds)
	assert.ErrorIs(t, bank.Transfer(ctx, b, a, 1), ErrInsufficientFunds)

	// A failed transfer moves nothing.
	bal, err := bank.BalanceOf(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), bal)
}

func TestMockService(t *testing.T) {
	ctx := context.Background()
	var gotFrom, gotTo bond.Address
	var gotAmount uint64

	mock := &MockService{
		TransferFn: func(ctx context.Context, from, to bond.Address, amount uint64) error {
			gotFrom, gotTo, gotAmount = from, to, amount
			return nil
		},
	}

	a, b := makeAddr(0x01), makeAddr(0x02)
	require.NoError(t, mock.Transfer(ctx, a, b, 42))
	assert.Equal(t, a, gotFrom)
	assert.Equal(t, b, gotTo)
	assert.Equal(t, uint64(42), gotAmount)
}
