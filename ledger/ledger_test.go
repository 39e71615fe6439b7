package ledger

import (
	"errors"
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

// hookRecorder records the holders notified before each balance change.
type hookRecorder struct {
	notified []bond.Address
	fail     error
}

func (h *hookRecorder) BeforeBalanceChange(holder bond.Address) error {
	if h.fail != nil {
		return h.fail
	}
	h.notified = append(h.notified, holder)
	return nil
}

func TestMint(t *testing.T) {
	l := New(nil)
	holder := makeAddr(0x01)

	require.NoError(t, l.Mint(holder, 1000))
	assert.Equal(t, uint64(1000), l.BalanceOf(holder))
	assert.Equal(t, uint64(1000), l.TotalSupply())
	assert.True(t, l.Minted())

	// Exactly once.
	assert.ErrorIs(t, l.Mint(holder, 1000), ErrAlreadyMinted)
}

func TestMintValidation(t *testing.T) {
	assert.ErrorIs(t, New(nil).Mint(bond.ZeroAddress, 1000), ErrInvalidHolder)
	assert.ErrorIs(t, New(nil).Mint(makeAddr(0x01), 0), ErrZeroAmount)
}

func TestBurn(t *testing.T) {
	l := New(nil)
	holder := makeAddr(0x01)
	require.NoError(t, l.Mint(holder, 1000))

	require.NoError(t, l.Burn(holder, 400))
	assert.Equal(t, uint64(600), l.BalanceOf(holder))
	assert.Equal(t, uint64(600), l.TotalSupply())

	// Burning to zero removes the holder entry.
	require.NoError(t, l.Burn(holder, 600))
	assert.Empty(t, l.Holders())
	assert.Zero(t, l.TotalSupply())

	assert.ErrorIs(t, l.Burn(holder, 1), ErrInsufficientBalance)
	assert.ErrorIs(t, l.Burn(holder, 0), ErrZeroAmount)
}

func TestTransfer(t *testing.T) {
	l := New(nil)
	a, b := makeAddr(0x0A), makeAddr(0x0B)
	require.NoError(t, l.Mint(a, 1000))

	require.NoError(t, l.Transfer(a, b, 250))
	assert.Equal(t, uint64(750), l.BalanceOf(a))
	assert.Equal(t, uint64(250), l.BalanceOf(b))
	assert.Equal(t, uint64(1000), l.TotalSupply())

	tests := []struct {
		name     string
		from, to bond.Address
		amount   uint64
		wantErr  error
	}{
		{"zero amount", a, b, 0, ErrZeroAmount},
		{"to zero address", a, bond.ZeroAddress, 10, ErrInvalidHolder},
		{"self transfer", a, a, 10, ErrInvalidHolder},
		{"insufficient", b, a, 251, ErrInsufficientBalance},
		{"unknown holder", makeAddr(0x0C), a, 1, ErrInsufficientBalance},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, l.Transfer(tt.from, tt.to, tt.amount), tt.wantErr)
		})
	}
}

func TestTransferDrainsSender(t *testing.T) {
	l := New(nil)
	a, b := makeAddr(0x0A), makeAddr(0x0B)
	require.NoError(t, l.Mint(a, 100))

	require.NoError(t, l.Transfer(a, b, 100))
	assert.Len(t, l.Holders(), 1)
	assert.Equal(t, uint64(100), l.BalanceOf(b))
}

func TestHookOrdering(t *testing.T) {
	rec := &hookRecorder{}
	l := New(rec)
	a, b := makeAddr(0x0A), makeAddr(0x0B)

	require.NoError(t, l.Mint(a, 100))
	require.NoError(t, l.Transfer(a, b, 40))
	require.NoError(t, l.Burn(b, 10))

	// Mint notifies the receiver; transfer notifies both parties, sender
	// first; burn notifies the holder.
	assert.Equal(t, []bond.Address{a, a, b, b}, rec.notified)
}

func TestHookFailureAbortsMutation(t *testing.T) {
	rec := &hookRecorder{}
	l := New(rec)
	a, b := makeAddr(0x0A), makeAddr(0x0B)
	require.NoError(t, l.Mint(a, 100))

	boom := errors.New("boom")
	rec.fail = boom

	assert.ErrorIs(t, l.Transfer(a, b, 40), boom)
	assert.Equal(t, uint64(100), l.BalanceOf(a))
	assert.Zero(t, l.BalanceOf(b))

	assert.ErrorIs(t, l.Burn(a, 10), boom)
	assert.Equal(t, uint64(100), l.BalanceOf(a))
	assert.Equal(t, uint64(100), l.TotalSupply())
}

func TestBalancesCopy(t *testing.T) {
	l := New(nil)
	a := makeAddr(0x0A)
	require.NoError(t, l.Mint(a, 100))

	snap := l.Balances()
	snap[a] = 1

	assert.Equal(t, uint64(100), l.BalanceOf(a))
}

func TestRestore(t *testing.T) {
	l := New(nil)
	a, b := makeAddr(0x0A), makeAddr(0x0B)

	l.Restore(300, true, map[bond.Address]uint64{a: 100, b: 200})
	assert.Equal(t, uint64(300), l.TotalSupply())
	assert.True(t, l.Minted())
	assert.Equal(t, uint64(100), l.BalanceOf(a))

	// Restored ledgers reject a second mint.
	assert.ErrorIs(t, l.Mint(a, 1), ErrAlreadyMinted)
}
