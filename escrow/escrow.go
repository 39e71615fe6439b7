// Package escrow implements the principal-backed bond variant: a series
// whose fixed supply is minted only once the issuer escrows the promised
// principal, and whose holders can redeem their proportional principal
// share at maturity by burning their units.
//
// The lifecycle is monotone: PendingPrincipal advances to Active (deposit)
// or Defaulted (deadline passes unfunded), Active advances to Matured, and
// both Matured and Defaulted are terminal. Active never defaults: the
// default path only protects against a no-show on principal funding.
package escrow

import (
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/bitfsorg/libbond-go/bond"
	"github.com/bitfsorg/libbond-go/events"
	"github.com/bitfsorg/libbond-go/guard"
	"github.com/bitfsorg/libbond-go/payments"
	"github.com/bitfsorg/libbond-go/series"
)

// State is the escrow lifecycle state.
type State uint8

const (
	// StatePendingPrincipal awaits the issuer's principal deposit.
	StatePendingPrincipal State = iota

	// StateActive has the principal escrowed and supply outstanding.
	StateActive

	// StateMatured allows proportional principal redemption.
	StateMatured

	// StateDefaulted is terminal: the deposit deadline passed unfunded.
	StateDefaulted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StatePendingPrincipal:
		return "pending_principal"
	case StateActive:
		return "active"
	case StateMatured:
		return "matured"
	case StateDefaulted:
		return "defaulted"
	default:
		return "unknown"
	}
}

// DefaultReporter receives best-effort default notifications so the
// reputation registry can blacklist the issuer. A reporter failure never
// blocks the default determination.
type DefaultReporter interface {
	ReportDefault(id bond.SeriesID, issuer bond.Address) error
}

// Config assembles an Escrow and its underlying series.
type Config struct {
	ID    bond.SeriesID
	Terms series.Terms

	// Principal is the escrowed amount guaranteed for return at maturity.
	Principal uint64

	// MinPurchase is the smallest transferable holding, a floor against
	// dust positions (a holder may always move out a full balance).
	MinPurchase uint64

	// DepositDeadline bounds how long the series may await its principal.
	DepositDeadline time.Time

	Payments payments.Service
	Reporter series.Reporter
	Defaults DefaultReporter
	Events   events.Log
	Logger   *slog.Logger
	Clock    clockwork.Clock
}

// Validate checks escrow-specific fields and defaults optional ones. The
// underlying series config is validated by series.New.
func (cfg *Config) Validate() error {
	if cfg.Principal == 0 {
		return ErrZeroPrincipal
	}
	if !cfg.DepositDeadline.Before(cfg.Terms.Maturity) {
		return ErrDeadlineAfterMaturity
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return nil
}

// Escrow is the lifecycle state machine wrapped around one series.
type Escrow struct {
	bond *series.Series

	principal       uint64
	minPurchase     uint64
	depositDeadline time.Time

	state                 State
	principalClaimed      map[bond.Address]bool
	totalPrincipalClaimed uint64
	dustSwept             bool

	payments payments.Service
	defaults DefaultReporter
	events   events.Log
	log      *slog.Logger
	clock    clockwork.Clock
	mu       guard.Guard
}

// New creates an escrow series in StatePendingPrincipal. No supply exists
// until the principal is deposited.
func New(cfg Config) (*Escrow, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s, err := series.New(series.Config{
		ID:       cfg.ID,
		Terms:    cfg.Terms,
		Payments: cfg.Payments,
		Reporter: cfg.Reporter,
		Events:   cfg.Events,
		Logger:   cfg.Logger,
		Clock:    cfg.Clock,
	})
	if err != nil {
		return nil, err
	}
	return &Escrow{
		bond:             s,
		principal:        cfg.Principal,
		minPurchase:      cfg.MinPurchase,
		depositDeadline:  cfg.DepositDeadline,
		state:            StatePendingPrincipal,
		principalClaimed: make(map[bond.Address]bool),
		payments:         cfg.Payments,
		defaults:         cfg.Defaults,
		events:           cfg.Events,
		log:              cfg.Logger,
		clock:            cfg.Clock,
	}, nil
}

// Series exposes the underlying reward accounting engine.
func (e *Escrow) Series() *series.Series { return e.bond }

// ID returns the series identifier.
func (e *Escrow) ID() bond.SeriesID { return e.bond.ID() }

// Active reports whether the escrow accepts distributions: principal
// deposited and the underlying series before maturity.
func (e *Escrow) Active() bool { return e.state == StateActive && e.bond.Active() }

// MinDistribution returns the smallest accepted distribution amount.
func (e *Escrow) MinDistribution() uint64 { return e.bond.MinDistribution() }

// State returns the current lifecycle state.
func (e *Escrow) State() State { return e.state }

// Principal returns the escrowed principal amount.
func (e *Escrow) Principal() uint64 { return e.principal }

// TotalPrincipalClaimed returns the principal redeemed so far.
func (e *Escrow) TotalPrincipalClaimed() uint64 { return e.totalPrincipalClaimed }

// PrincipalClaimed reports whether the holder has redeemed its share.
func (e *Escrow) PrincipalClaimed(holder bond.Address) bool { return e.principalClaimed[holder] }

// emit appends an audit event, logging (never propagating) append failures.
func (e *Escrow) emit(t events.Type, actor bond.Address, amount uint64, reason string) {
	ev := events.Event{
		Time:   e.clock.Now(),
		Type:   t,
		Series: e.bond.ID(),
		Actor:  actor,
		Amount: amount,
		Reason: reason,
	}
	if err := events.Emit(e.events, ev); err != nil {
		e.log.Warn("escrow: event append failed", "series", e.bond.ID(), "type", t, "err", err)
	}
}
