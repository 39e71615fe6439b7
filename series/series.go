// Package series implements the reward accounting engine for one issued
// bond series: a fixed-supply unit ledger combined with a scaled
// reward-per-unit accumulator, so that every holder's claimable revenue is
// unclaimed[holder] + balance*(accumulator-lastSeen[holder])/Scale at all
// times, no matter how units move between holders.
package series

import (
	"log/slog"
	"math/big"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/bitfsorg/libbond-go/bond"
	"github.com/bitfsorg/libbond-go/events"
	"github.com/bitfsorg/libbond-go/guard"
	"github.com/bitfsorg/libbond-go/ledger"
	"github.com/bitfsorg/libbond-go/payments"
)

// Reporter receives best-effort distribution notifications for reputation
// scoring. A Reporter failure never aborts the distribution that triggered
// it.
type Reporter interface {
	RecordDistribution(id bond.SeriesID, amount uint64) error
}

// Terms are the immutable parameters fixed at issuance.
type Terms struct {
	// Issuer is the protocol raising revenue against this series.
	Issuer bond.Address

	// Router is the revenue router account paired with this series. The
	// issuer and the router are the only authorized distributors.
	Router bond.Address

	// Account is the currency account held by the series itself. Revenue
	// sits here between distribution and claim.
	Account bond.Address

	// ShareBps is the revenue share promised to holders, in basis points.
	ShareBps uint32

	// Maturity is the scheduled end of term.
	Maturity time.Time

	// TotalSupply is the fixed unit supply minted at activation.
	TotalSupply uint64

	// MinDistribution is the smallest accepted distribution amount.
	MinDistribution uint64
}

// Config assembles a Series. ID, Terms, and Payments are required; Clock
// defaults to the real clock and Logger to a discarding logger.
type Config struct {
	ID       bond.SeriesID
	Terms    Terms
	Payments payments.Service
	Reporter Reporter
	Events   events.Log
	Logger   *slog.Logger
	Clock    clockwork.Clock
}

// Validate checks required fields and defaults the optional ones.
func (cfg *Config) Validate() error {
	if cfg.ID == (bond.SeriesID{}) {
		return ErrMissingID
	}
	if cfg.Payments == nil {
		return ErrMissingPayments
	}
	if cfg.Terms.Issuer.IsZero() {
		return ErrMissingIssuer
	}
	if cfg.Terms.Account.IsZero() {
		return ErrMissingAccount
	}
	if cfg.Terms.TotalSupply == 0 {
		return ErrZeroSupply
	}
	if cfg.Terms.ShareBps == 0 || cfg.Terms.ShareBps > 10000 {
		return ErrInvalidShareBps
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return nil
}

// Series is the accounting state for one issued bond series. All mutating
// entry points are protected by a call-depth guard; a nested re-entry from
// within an outward settlement call is rejected.
type Series struct {
	id    bond.SeriesID
	terms Terms

	units         *ledger.Ledger
	accumulator   *big.Int // scaled by safemath.Scale, never decreases
	lastSeen      map[bond.Address]*big.Int
	unclaimed     map[bond.Address]uint64
	totalReceived uint64
	matured       bool

	payments payments.Service
	reporter Reporter
	events   events.Log
	log      *slog.Logger
	clock    clockwork.Clock
	mu       guard.Guard
}

// New creates a series with an empty ledger. The fixed supply is minted
// separately via MintSupply (at creation for plain series, at principal
// deposit for escrow series).
func New(cfg Config) (*Series, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Series{
		id:          cfg.ID,
		terms:       cfg.Terms,
		accumulator: new(big.Int),
		lastSeen:    make(map[bond.Address]*big.Int),
		unclaimed:   make(map[bond.Address]uint64),
		payments:    cfg.Payments,
		reporter:    cfg.Reporter,
		events:      cfg.Events,
		log:         cfg.Logger,
		clock:       cfg.Clock,
	}
	s.units = ledger.New(s)
	return s, nil
}

// ID returns the series identifier.
func (s *Series) ID() bond.SeriesID { return s.id }

// Terms returns the immutable issuance terms.
func (s *Series) Terms() Terms { return s.terms }

// TotalReceived returns the cumulative revenue distributed to the series.
func (s *Series) TotalReceived() uint64 { return s.totalReceived }

// BalanceOf returns the holder's unit balance.
func (s *Series) BalanceOf(holder bond.Address) uint64 { return s.units.BalanceOf(holder) }

// Supply returns the current (post-burn) unit supply.
func (s *Series) Supply() uint64 { return s.units.TotalSupply() }

// Matured reports whether the series has been marked matured.
func (s *Series) Matured() bool { return s.matured }

// Active reports whether the series accepts distributions: supply minted,
// not matured, and before the maturity timestamp.
func (s *Series) Active() bool {
	return s.units.Minted() && !s.matured && s.clock.Now().Before(s.terms.Maturity)
}

// MinDistribution returns the smallest accepted distribution amount.
func (s *Series) MinDistribution() uint64 { return s.terms.MinDistribution }

// MintSupply creates the fixed supply and assigns it to the given holder.
// Exactly once per series.
func (s *Series) MintSupply(to bond.Address) error {
	if err := s.mu.Enter(); err != nil {
		return err
	}
	defer s.mu.Exit()
	return s.units.Mint(to, s.terms.TotalSupply)
}

// Mature flags the series matured. Callable by anyone once the maturity
// timestamp has passed.
func (s *Series) Mature() error {
	if err := s.mu.Enter(); err != nil {
		return err
	}
	defer s.mu.Exit()
	return s.mature()
}

// mature is the unguarded transition, shared with lazy maturation paths.
func (s *Series) mature() error {
	if s.matured {
		return ErrAlreadyMatured
	}
	if s.clock.Now().Before(s.terms.Maturity) {
		return ErrNotYetMature
	}
	s.matured = true
	s.emit(events.TypeMatured, bond.ZeroAddress, 0, "")
	return nil
}

// Burn destroys the holder's units, reducing supply. Reward accrual is
// settled by the ledger hook first, so revenue earned before the burn stays
// claimable afterwards. Used by principal redemption.
func (s *Series) Burn(from bond.Address, amount uint64) error {
	if err := s.mu.Enter(); err != nil {
		return err
	}
	defer s.mu.Exit()
	return s.units.Burn(from, amount)
}

// Transfer moves units between holders. Reward accrual for both parties is
// settled by the ledger hook before any balance changes, so the sum of
// their claimable amounts is preserved across the transfer.
func (s *Series) Transfer(from, to bond.Address, amount uint64) error {
	if err := s.mu.Enter(); err != nil {
		return err
	}
	defer s.mu.Exit()
	if err := s.units.Transfer(from, to, amount); err != nil {
		return err
	}
	s.emit(events.TypeTransfer, from, amount, to.String())
	return nil
}

// emit appends an audit event, logging (never propagating) append failures.
func (s *Series) emit(t events.Type, actor bond.Address, amount uint64, reason string) {
	ev := events.Event{
		Time:   s.clock.Now(),
		Type:   t,
		Series: s.id,
		Actor:  actor,
		Amount: amount,
		Reason: reason,
	}
	if err := events.Emit(s.events, ev); err != nil {
		s.log.Warn("series: event append failed", "series", s.id, "type", t, "err", err)
	}
}
