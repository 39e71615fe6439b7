package series

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bitfsorg/libbond-go/bond"
	"github.com/bitfsorg/libbond-go/events"
	"github.com/bitfsorg/libbond-go/guard"
	"github.com/bitfsorg/libbond-go/payments"
)

func makeAddr(seed byte) bond.Address {
	var addr bond.Address
	for i := range addr {
		addr[i] = seed
	}
	return addr
}

func makeSeriesID(seed byte) bond.SeriesID {
	var id bond.SeriesID
	for i := range id {
		id[i] = seed
	}
	return id
}

var (
	issuer    = makeAddr(0x01)
	routerAcc = makeAddr(0x02)
	account   = makeAddr(0x03)
	alice     = makeAddr(0x0A)
	bob       = makeAddr(0x0B)
	carol     = makeAddr(0x0C)
)

type fixture struct {
	series *Series
	bank   *payments.MemBank
	clock  *clockwork.FakeClock
	log    *events.MemLog
}

// newFixture builds a minted series with a one-year term and a fake clock.
// All supply starts with the issuer.
func newFixture(t *testing.T, supply uint64) *fixture {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Unix(1700000000, 0).UTC())
	bank := payments.NewMemBank()
	log := events.NewMemLog()

	s, err := New(Config{
		ID: makeSeriesID(0x01),
		Terms: Terms{
			Issuer:          issuer,
			Router:          routerAcc,
			Account:         account,
			ShareBps:        2000,
			Maturity:        clock.Now().Add(365 * 24 * time.Hour),
			TotalSupply:     supply,
			MinDistribution: 1,
		},
		Payments: bank,
		Events:   log,
		Clock:    clock,
	})
	require.NoError(t, err)
	require.NoError(t, s.MintSupply(issuer))
	return &fixture{series: s, bank: bank, clock: clock, log: log}
}

// --- Construction tests ---

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			ID: makeSeriesID(0x01),
			Terms: Terms{
				Issuer:      issuer,
				Account:     account,
				ShareBps:    2000,
				Maturity:    time.Unix(1800000000, 0),
				TotalSupply: 1000,
			},
			Payments: payments.NewMemBank(),
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid", func(c *Config) {}, nil},
		{"missing id", func(c *Config) { c.ID = bond.SeriesID{} }, ErrMissingID},
		{"missing payments", func(c *Config) { c.Payments = nil }, ErrMissingPayments},
		{"missing issuer", func(c *Config) { c.Terms.Issuer = bond.ZeroAddress }, ErrMissingIssuer},
		{"missing account", func(c *Config) { c.Terms.Account = bond.ZeroAddress }, ErrMissingAccount},
		{"zero supply", func(c *Config) { c.Terms.TotalSupply = 0 }, ErrZeroSupply},
		{"zero share", func(c *Config) { c.Terms.ShareBps = 0 }, ErrInvalidShareBps},
		{"share over 100%", func(c *Config) { c.Terms.ShareBps = 10001 }, ErrInvalidShareBps},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			_, err := New(cfg)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestMintSupplyOnce(t *testing.T) {
	f := newFixture(t, 1000)
	assert.Error(t, f.series.MintSupply(issuer))
	assert.Equal(t, uint64(1000), f.series.Supply())
}

// --- Distribution tests ---

func TestDistributeAccrues(t *testing.T) {
	f := newFixture(t, 1_000_000)
	ctx := context.Background()

	// Alice holds 10% of the supply.
	require.NoError(t, f.series.Transfer(issuer, alice, 100_000))

	f.bank.Deposit(issuer, 100)
	require.NoError(t, f.series.Distribute(ctx, issuer, 100))

	assert.Equal(t, uint64(100), f.series.TotalReceived())

	got, err := f.series.Claimable(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), got)

	got, err = f.series.Claimable(issuer)
	require.NoError(t, err)
	assert.Equal(t, uint64(90), got)

	// Revenue moved into the series account.
	bal, err := f.bank.BalanceOf(ctx, account)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), bal)
}

func TestDistributeByRouter(t *testing.T) {
	f := newFixture(t, 1000)
	f.bank.Deposit(routerAcc, 50)

	require.NoError(t, f.series.Distribute(context.Background(), routerAcc, 50))
	assert.Equal(t, uint64(50), f.series.TotalReceived())
}

func TestDistributeRejections(t *testing.T) {
	ctx := context.Background()

	t.Run("unauthorized caller", func(t *testing.T) {
		f := newFixture(t, 1000)
		f.bank.Deposit(alice, 100)
		assert.ErrorIs(t, f.series.Distribute(ctx, alice, 100), ErrNotDistributor)
	})

	t.Run("after maturity timestamp", func(t *testing.T) {
		f := newFixture(t, 1000)
		f.bank.Deposit(issuer, 100)
		f.clock.Advance(366 * 24 * time.Hour)
		assert.ErrorIs(t, f.series.Distribute(ctx, issuer, 100), ErrDistributionAfterMaturity)
	})

	t.Run("after matured flag", func(t *testing.T) {
		f := newFixture(t, 1000)
		f.bank.Deposit(issuer, 100)
		f.clock.Advance(366 * 24 * time.Hour)
		require.NoError(t, f.series.Mature())
		assert.ErrorIs(t, f.series.Distribute(ctx, issuer, 100), ErrDistributionAfterMaturity)
	})

	t.Run("below minimum", func(t *testing.T) {
		clock := clockwork.NewFakeClockAt(time.Unix(1700000000, 0))
		bank := payments.NewMemBank()
		s, err := New(Config{
			ID: makeSeriesID(0x01),
			Terms: Terms{
				Issuer: issuer, Account: account, ShareBps: 2000,
				Maturity: clock.Now().Add(time.Hour), TotalSupply: 1000,
				MinDistribution: 10,
			},
			Payments: bank,
			Clock:    clock,
		})
		require.NoError(t, err)
		require.NoError(t, s.MintSupply(issuer))
		bank.Deposit(issuer, 100)
		assert.ErrorIs(t, s.Distribute(ctx, issuer, 9), ErrBelowMinDistribution)
	})

	t.Run("no supply minted", func(t *testing.T) {
		clock := clockwork.NewFakeClockAt(time.Unix(1700000000, 0))
		s, err := New(Config{
			ID: makeSeriesID(0x01),
			Terms: Terms{
				Issuer: issuer, Account: account, ShareBps: 2000,
				Maturity: clock.Now().Add(time.Hour), TotalSupply: 1000,
			},
			Payments: payments.NewMemBank(),
			Clock:    clock,
		})
		require.NoError(t, err)
		assert.ErrorIs(t, s.Distribute(ctx, issuer, 100), ErrNoSupply)
	})

	t.Run("settlement failure leaves no trace", func(t *testing.T) {
		f := newFixture(t, 1000)
		// Issuer has no funds, so the inbound transfer fails.
		err := f.series.Distribute(ctx, issuer, 100)
		assert.ErrorIs(t, err, ErrSettlementFailed)
		assert.Zero(t, f.series.TotalReceived())

		got, cerr := f.series.Claimable(issuer)
		require.NoError(t, cerr)
		assert.Zero(t, got)
	})
}

func TestDistributeUnattributableAmount(t *testing.T) {
	// A payment whose scaled per-unit delta rounds to zero is rejected, not
	// silently absorbed. Scale is 1e18, so supply must exceed amount*1e18.
	clock := clockwork.NewFakeClockAt(time.Unix(1700000000, 0))
	bank := payments.NewMemBank()
	s, err := New(Config{
		ID: makeSeriesID(0x01),
		Terms: Terms{
			Issuer: issuer, Account: account, ShareBps: 2000,
			Maturity: clock.Now().Add(time.Hour), TotalSupply: 2_000_000_000_000_000_000,
		},
		Payments: bank,
		Clock:    clock,
	})
	require.NoError(t, err)
	require.NoError(t, s.MintSupply(issuer))
	bank.Deposit(issuer, 1)

	err = s.Distribute(context.Background(), issuer, 1)
	assert.ErrorIs(t, err, ErrUnattributableAmount)
	assert.Zero(t, s.TotalReceived())

	// Nothing left the issuer's account.
	bal, berr := bank.BalanceOf(context.Background(), issuer)
	require.NoError(t, berr)
	assert.Equal(t, uint64(1), bal)
}

func TestDistributeReporterFailureIsBestEffort(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Unix(1700000000, 0))
	bank := payments.NewMemBank()
	log := events.NewMemLog()
	s, err := New(Config{
		ID: makeSeriesID(0x01),
		Terms: Terms{
			Issuer: issuer, Account: account, ShareBps: 2000,
			Maturity: clock.Now().Add(time.Hour), TotalSupply: 1000,
		},
		Payments: bank,
		Reporter: reporterFunc(func(bond.SeriesID, uint64) error { return errors.New("scoring down") }),
		Events:   log,
		Clock:    clock,
	})
	require.NoError(t, err)
	require.NoError(t, s.MintSupply(issuer))
	bank.Deposit(issuer, 100)

	// The distribution itself succeeds.
	require.NoError(t, s.Distribute(context.Background(), issuer, 100))
	assert.Equal(t, uint64(100), s.TotalReceived())

	evs, err := log.Events()
	require.NoError(t, err)
	assert.Len(t, events.OfType(evs, events.TypeDiagnostic), 1)
}

type reporterFunc func(bond.SeriesID, uint64) error

func (f reporterFunc) RecordDistribution(id bond.SeriesID, amount uint64) error {
	return f(id, amount)
}

// --- Claim tests ---

func TestClaim(t *testing.T) {
	f := newFixture(t, 1_000_000)
	ctx := context.Background()
	require.NoError(t, f.series.Transfer(issuer, alice, 100_000))

	f.bank.Deposit(issuer, 100)
	require.NoError(t, f.series.Distribute(ctx, issuer, 100))

	got, err := f.series.Claim(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), got)

	bal, err := f.bank.BalanceOf(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), bal)

	// Claiming again with nothing accrued is rejected, not a silent no-op.
	_, err = f.series.Claim(ctx, alice)
	assert.ErrorIs(t, err, ErrNothingToClaim)
}

func TestClaimNothingAccrued(t *testing.T) {
	f := newFixture(t, 1000)
	_, err := f.series.Claim(context.Background(), alice)
	assert.ErrorIs(t, err, ErrNothingToClaim)
}

func TestClaimSettlementFailureKeepsBalance(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(time.Unix(1700000000, 0))
	mock := &payments.MockService{}
	s, err := New(Config{
		ID: makeSeriesID(0x01),
		Terms: Terms{
			Issuer: issuer, Account: account, ShareBps: 2000,
			Maturity: clock.Now().Add(time.Hour), TotalSupply: 1000,
		},
		Payments: mock,
		Clock:    clock,
	})
	require.NoError(t, err)
	require.NoError(t, s.MintSupply(alice))

	mock.TransferFn = func(context.Context, bond.Address, bond.Address, uint64) error { return nil }
	require.NoError(t, s.Distribute(ctx, issuer, 100))

	mock.TransferFn = func(context.Context, bond.Address, bond.Address, uint64) error {
		return errors.New("bank offline")
	}
	_, err = s.Claim(ctx, alice)
	assert.ErrorIs(t, err, ErrSettlementFailed)

	// The claimable balance survives the failed settlement.
	got, err := s.Claimable(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), got)
}

func TestClaimReentrancyRejected(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(time.Unix(1700000000, 0))
	mock := &payments.MockService{}
	s, err := New(Config{
		ID: makeSeriesID(0x01),
		Terms: Terms{
			Issuer: issuer, Account: account, ShareBps: 2000,
			Maturity: clock.Now().Add(time.Hour), TotalSupply: 1000,
		},
		Payments: mock,
		Clock:    clock,
	})
	require.NoError(t, err)
	require.NoError(t, s.MintSupply(alice))

	mock.TransferFn = func(context.Context, bond.Address, bond.Address, uint64) error { return nil }
	require.NoError(t, s.Distribute(ctx, issuer, 100))

	// The settlement callback tries to claim again before the first claim
	// commits; the guard must reject it.
	var nested error
	mock.TransferFn = func(context.Context, bond.Address, bond.Address, uint64) error {
		_, nested = s.Claim(ctx, alice)
		return nil
	}
	got, err := s.Claim(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), got)
	assert.ErrorIs(t, nested, guard.ErrReentrantCall)
}

// --- Transfer and accrual tests ---

func TestTransferPreservesClaimable(t *testing.T) {
	f := newFixture(t, 1_000_000)
	ctx := context.Background()
	require.NoError(t, f.series.Transfer(issuer, alice, 400_000))
	require.NoError(t, f.series.Transfer(issuer, bob, 600_000))

	f.bank.Deposit(issuer, 1000)
	require.NoError(t, f.series.Distribute(ctx, issuer, 1000))

	before := claimableSum(t, f.series, alice, bob)

	// Moving units after a distribution must not move already-accrued
	// revenue.
	require.NoError(t, f.series.Transfer(alice, bob, 400_000))
	after := claimableSum(t, f.series, alice, bob)
	assert.Equal(t, before, after)

	aliceClaim, err := f.series.Claimable(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(400), aliceClaim)
}

func TestAccrualFollowsBalanceAcrossDistributions(t *testing.T) {
	f := newFixture(t, 1_000_000)
	ctx := context.Background()
	require.NoError(t, f.series.Transfer(issuer, alice, 500_000))

	f.bank.Deposit(issuer, 2000)
	require.NoError(t, f.series.Distribute(ctx, issuer, 1000))

	// Alice sells half her units, then another distribution lands.
	require.NoError(t, f.series.Transfer(alice, bob, 250_000))
	require.NoError(t, f.series.Distribute(ctx, issuer, 1000))

	// 500 from the first round (50% of supply) plus 250 from the second
	// (25% of supply).
	got, err := f.series.Claimable(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(750), got)

	// Bob earns only from the round he held units for.
	got, err = f.series.Claimable(bob)
	require.NoError(t, err)
	assert.Equal(t, uint64(250), got)
}

func TestConservation(t *testing.T) {
	f := newFixture(t, 999_983) // prime supply forces rounding everywhere
	ctx := context.Background()
	require.NoError(t, f.series.Transfer(issuer, alice, 333_000))
	require.NoError(t, f.series.Transfer(issuer, bob, 111_111))
	require.NoError(t, f.series.Transfer(issuer, carol, 7))

	total := uint64(0)
	for _, amount := range []uint64{97, 1000, 3, 55555} {
		f.bank.Deposit(issuer, amount)
		require.NoError(t, f.series.Distribute(ctx, issuer, amount))
		total += amount
	}

	sum := claimableSum(t, f.series, issuer, alice, bob, carol)
	assert.LessOrEqual(t, sum, total)

	// Rounding loss is bounded by one unit per holder per distribution.
	assert.LessOrEqual(t, total-sum, uint64(4*4))
}

func claimableSum(t *testing.T, s *Series, holders ...bond.Address) uint64 {
	t.Helper()
	var sum uint64
	for _, h := range holders {
		got, err := s.Claimable(h)
		require.NoError(t, err)
		sum += got
	}
	return sum
}

// --- Maturity tests ---

func TestMature(t *testing.T) {
	f := newFixture(t, 1000)

	assert.ErrorIs(t, f.series.Mature(), ErrNotYetMature)
	assert.True(t, f.series.Active())

	f.clock.Advance(366 * 24 * time.Hour)
	assert.False(t, f.series.Active())

	require.NoError(t, f.series.Mature())
	assert.True(t, f.series.Matured())
	assert.ErrorIs(t, f.series.Mature(), ErrAlreadyMatured)
}

func TestClaimAfterMaturity(t *testing.T) {
	f := newFixture(t, 1_000_000)
	ctx := context.Background()
	require.NoError(t, f.series.Transfer(issuer, alice, 100_000))

	f.bank.Deposit(issuer, 100)
	require.NoError(t, f.series.Distribute(ctx, issuer, 100))

	f.clock.Advance(366 * 24 * time.Hour)
	require.NoError(t, f.series.Mature())

	// Maturity stops distributions, never claims.
	got, err := f.series.Claim(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), got)
}

// --- Snapshot tests ---

func TestSnapshotRoundTrip(t *testing.T) {
	f := newFixture(t, 1_000_000)
	ctx := context.Background()
	require.NoError(t, f.series.Transfer(issuer, alice, 100_000))
	f.bank.Deposit(issuer, 100)
	require.NoError(t, f.series.Distribute(ctx, issuer, 100))

	snap := f.series.Snapshot()
	restored, err := NewFromSnapshot(Config{
		ID:       snap.ID,
		Terms:    snap.Terms,
		Payments: f.bank,
		Clock:    f.clock,
	}, snap)
	require.NoError(t, err)

	assert.Equal(t, f.series.TotalReceived(), restored.TotalReceived())
	assert.Equal(t, f.series.Supply(), restored.Supply())
	assert.Equal(t, f.series.BalanceOf(alice), restored.BalanceOf(alice))

	want, err := f.series.Claimable(alice)
	require.NoError(t, err)
	got, err := restored.Claimable(alice)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// The restored series keeps accruing correctly.
	f.bank.Deposit(issuer, 100)
	require.NoError(t, restored.Distribute(ctx, issuer, 100))
	got, err = restored.Claimable(alice)
	require.NoError(t, err)
	assert.Equal(t, want+10, got)
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	f := newFixture(t, 1_000_000)
	ctx := context.Background()
	f.bank.Deposit(issuer, 100)
	require.NoError(t, f.series.Distribute(ctx, issuer, 100))

	snap := f.series.Snapshot()
	snap.Accumulator.SetInt64(0)
	snap.Balances[alice] = 12345

	assert.Equal(t, uint64(0), f.series.BalanceOf(alice))
	got, err := f.series.Claimable(issuer)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), got)
}
