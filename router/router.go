// Package router implements the revenue routing reconciliation protocol.
// Inbound value always lands in a pending-to-route balance first; a route
// attempt then either clears it to a dead series, defers it for
// accumulation, or splits it between the series (rounded up, in the
// holders' favor) and the issuer. A failed attempt restores the pending
// balance exactly, so no value is created or destroyed by failure.
package router

import (
	"context"
	"log/slog"

	"github.com/jonboulle/clockwork"

	"github.com/bitfsorg/libbond-go/bond"
	"github.com/bitfsorg/libbond-go/events"
	"github.com/bitfsorg/libbond-go/guard"
	"github.com/bitfsorg/libbond-go/payments"
)

// Target is the series-side surface the router routes into. Both plain and
// escrow series satisfy it.
type Target interface {
	// ID returns the series identifier.
	ID() bond.SeriesID

	// Active reports whether the series currently accepts distributions.
	Active() bool

	// MinDistribution returns the smallest accepted distribution amount.
	MinDistribution() uint64

	// Distribute accrues a revenue payment, settling it from the caller's
	// currency account.
	Distribute(ctx context.Context, caller bond.Address, amount uint64) error
}

// Config assembles a Router.
type Config struct {
	// Issuer may withdraw the non-pending remainder.
	Issuer bond.Address

	// Operator holds the emergency-withdraw escape hatch.
	Operator bond.Address

	// Account is the router's own currency account. Inbound revenue sits
	// here until routed or withdrawn. The paired series authorizes this
	// address as its router.
	Account bond.Address

	// ShareBps is the holders' share of routed revenue, in basis points.
	ShareBps uint32

	Payments payments.Service
	Events   events.Log
	Logger   *slog.Logger
	Clock    clockwork.Clock
}

// Validate checks required fields and defaults the optional ones.
func (cfg *Config) Validate() error {
	if cfg.Issuer.IsZero() {
		return ErrMissingIssuer
	}
	if cfg.Account.IsZero() {
		return ErrMissingAccount
	}
	if cfg.ShareBps == 0 || cfg.ShareBps > 10000 {
		return ErrInvalidShareBps
	}
	if cfg.Payments == nil {
		return ErrMissingPayments
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return nil
}

// Router receives external revenue for one series and reconciles it.
type Router struct {
	issuer   bond.Address
	operator bond.Address
	account  bond.Address
	shareBps uint32

	target Target
	bound  bool

	totalReceived  uint64
	totalRouted    uint64
	totalReturned  uint64
	pending        uint64
	failCount      uint64
	lastFailReason string

	payments payments.Service
	events   events.Log
	log      *slog.Logger
	clock    clockwork.Clock
	mu       guard.Guard
}

// New creates an unbound router. The paired series is attached afterwards
// with BindSeries (two-phase construction: the series needs the router's
// account in its terms, the router needs the series reference).
func New(cfg Config) (*Router, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Router{
		issuer:   cfg.Issuer,
		operator: cfg.Operator,
		account:  cfg.Account,
		shareBps: cfg.ShareBps,
		payments: cfg.Payments,
		events:   cfg.Events,
		log:      cfg.Logger,
		clock:    cfg.Clock,
	}, nil
}

// BindSeries attaches the routing target. Exactly once.
func (r *Router) BindSeries(t Target) error {
	if r.bound {
		return ErrAlreadyBound
	}
	if t == nil {
		return ErrNilTarget
	}
	r.target = t
	r.bound = true
	return nil
}

// Account returns the router's currency account address.
func (r *Router) Account() bond.Address { return r.account }

// Pending returns the pending-to-route balance.
func (r *Router) Pending() uint64 { return r.pending }

// TotalReceived returns the cumulative revenue received.
func (r *Router) TotalReceived() uint64 { return r.totalReceived }

// TotalRouted returns the cumulative amount routed to the series.
func (r *Router) TotalRouted() uint64 { return r.totalRouted }

// TotalReturned returns the cumulative amount withdrawn by the issuer.
func (r *Router) TotalReturned() uint64 { return r.totalReturned }

// FailCount returns the number of failed or cleared route attempts.
func (r *Router) FailCount() uint64 { return r.failCount }

// LastFailReason returns the captured reason of the latest route failure.
func (r *Router) LastFailReason() string { return r.lastFailReason }

// emit appends an audit event, logging (never propagating) append failures.
func (r *Router) emit(t events.Type, actor bond.Address, amount uint64, reason string) {
	ev := events.Event{
		Time:   r.clock.Now(),
		Type:   t,
		Actor:  actor,
		Amount: amount,
		Reason: reason,
	}
	if r.bound {
		ev.Series = r.target.ID()
	}
	if err := events.Emit(r.events, ev); err != nil {
		r.log.Warn("router: event append failed", "type", t, "err", err)
	}
}

