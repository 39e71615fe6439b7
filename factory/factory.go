// Package factory wires new bond series together: hardcoded limits, then
// access, then safety, then the one-time creation fee, then two-phase
// construction of the series/router pair. Creation is atomic — any policy
// rejection or fee failure aborts before anything is built.
package factory

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"log/slog"
	"time"

	bsvhash "github.com/bsv-blockchain/go-sdk/primitives/hash"
	"github.com/jonboulle/clockwork"

	"github.com/bitfsorg/libbond-go/bond"
	"github.com/bitfsorg/libbond-go/escrow"
	"github.com/bitfsorg/libbond-go/events"
	"github.com/bitfsorg/libbond-go/payments"
	"github.com/bitfsorg/libbond-go/policy"
	"github.com/bitfsorg/libbond-go/reputation"
	"github.com/bitfsorg/libbond-go/router"
	"github.com/bitfsorg/libbond-go/series"
)

// Config assembles a Factory.
type Config struct {
	// Operator is the emergency-withdraw authority given to every router.
	Operator bond.Address

	// Limits is the hardcoded safety-limit layer, checked before any
	// pluggable policy.
	Limits policy.Limits

	// Fee, Safety, and Access are the pluggable policies. Each may be nil;
	// a nil Access policy means permissionless creation.
	Fee    policy.FeePolicy
	Safety policy.SafetyPolicy
	Access policy.AccessPolicy

	Payments   payments.Service
	Reputation *reputation.Engine
	Events     events.Log
	Logger     *slog.Logger
	Clock      clockwork.Clock
}

// Validate checks required fields and defaults the optional ones.
func (cfg *Config) Validate() error {
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

// CreateParams are the issuer-chosen parameters for a new series.
// Principal, MinPurchase, and DepositWindow apply to the escrow variant
// only.
type CreateParams struct {
	Issuer          bond.Address
	ShareBps        uint32
	TotalSupply     uint64
	MinDistribution uint64
	Term            time.Duration

	// ExpectedRevenue and Cadence are the issuer's declared commitments,
	// registered with the reputation engine.
	ExpectedRevenue uint64
	Cadence         time.Duration

	Principal     uint64
	MinPurchase   uint64
	DepositWindow time.Duration
}

// Factory creates series/router pairs.
type Factory struct {
	operator   bond.Address
	limits     policy.Limits
	fee        policy.FeePolicy
	safety     policy.SafetyPolicy
	access     policy.AccessPolicy
	payments   payments.Service
	reputation *reputation.Engine
	events     events.Log
	log        *slog.Logger
	clock      clockwork.Clock
	nonce      uint64
}

// New creates a factory. The identity nonce is seeded randomly so two
// factory processes (or one across a restart) cannot mint the same series
// identity for an issuer within the same second.
func New(cfg Config) (*Factory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	var seed [8]byte
	if _, err := rand.Read(seed[:]); err != nil {
		return nil, fmt.Errorf("%w: nonce seed: %v", ErrNonceSeed, err)
	}
	return &Factory{
		operator:   cfg.Operator,
		limits:     cfg.Limits,
		fee:        cfg.Fee,
		safety:     cfg.Safety,
		access:     cfg.Access,
		payments:   cfg.Payments,
		reputation: cfg.Reputation,
		events:     cfg.Events,
		log:        cfg.Logger,
		clock:      cfg.Clock,
		nonce:      binary.BigEndian.Uint64(seed[:]),
	}, nil
}

// CreateSeries builds a plain revenue-share series with its router. The
// fixed supply is minted to the issuer immediately.
func (f *Factory) CreateSeries(ctx context.Context, caller bond.Address, params CreateParams) (*series.Series, *router.Router, error) {
	req := createRequest(caller, params, false)
	if err := f.admit(ctx, req); err != nil {
		return nil, nil, err
	}
	if err := f.chargeFee(ctx, caller, req); err != nil {
		return nil, nil, err
	}

	id, terms, rtr, err := f.buildPair(params)
	if err != nil {
		return nil, nil, err
	}
	s, err := series.New(series.Config{
		ID:       id,
		Terms:    terms,
		Payments: f.payments,
		Reporter: f.recorder(terms.Account),
		Events:   f.events,
		Logger:   f.log,
		Clock:    f.clock,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := rtr.BindSeries(s); err != nil {
		return nil, nil, err
	}
	if err := s.MintSupply(params.Issuer); err != nil {
		return nil, nil, err
	}

	f.register(id, params, terms.Account)
	f.emit(id, params.Issuer, params.TotalSupply, "series")
	return s, rtr, nil
}

// CreateEscrow builds an escrow-backed series with its router. No supply
// exists until the issuer deposits the principal.
func (f *Factory) CreateEscrow(ctx context.Context, caller bond.Address, params CreateParams) (*escrow.Escrow, *router.Router, error) {
	req := createRequest(caller, params, true)
	if err := f.admit(ctx, req); err != nil {
		return nil, nil, err
	}
	if err := f.chargeFee(ctx, caller, req); err != nil {
		return nil, nil, err
	}

	id, terms, rtr, err := f.buildPair(params)
	if err != nil {
		return nil, nil, err
	}
	now := f.clock.Now()
	e, err := escrow.New(escrow.Config{
		ID:              id,
		Terms:           terms,
		Principal:       params.Principal,
		MinPurchase:     params.MinPurchase,
		DepositDeadline: now.Add(params.DepositWindow),
		Payments:        f.payments,
		Reporter:        f.recorder(terms.Account),
		Defaults:        f.defaultReporter(),
		Events:          f.events,
		Logger:          f.log,
		Clock:           f.clock,
	})
	if err != nil {
		return nil, nil, err
	}
	if err := rtr.BindSeries(e); err != nil {
		return nil, nil, err
	}

	f.register(id, params, terms.Account)
	f.emit(id, params.Issuer, params.Principal, "escrow")
	return e, rtr, nil
}

// admit runs the admission pipeline: hardcoded limits first, then access,
// then the pluggable safety policy. Order matters — a plugged-in policy
// can only restrict further than the limits, never loosen them.
func (f *Factory) admit(ctx context.Context, req policy.CreateRequest) error {
	if req.Issuer.IsZero() {
		return ErrMissingIssuer
	}
	if err := f.limits.Check(req); err != nil {
		return err
	}
	if f.access != nil {
		ok, err := f.access.CanCreate(ctx, req.Caller)
		if err != nil {
			return fmt.Errorf("%w: access policy: %v", ErrPolicyFailed, err)
		}
		if !ok {
			return fmt.Errorf("%w: %s", ErrCreationDenied, req.Caller)
		}
	}
	if f.safety != nil {
		if err := f.safety.Validate(ctx, req); err != nil {
			return fmt.Errorf("%w: %v", ErrSafetyRejected, err)
		}
	}
	return nil
}

// chargeFee quotes and settles the one-time creation fee. Any failure
// aborts the creation before anything is built.
func (f *Factory) chargeFee(ctx context.Context, caller bond.Address, req policy.CreateRequest) error {
	if f.fee == nil {
		return nil
	}
	fee, receiver, err := f.fee.Quote(ctx, req)
	if err != nil {
		return fmt.Errorf("%w: fee policy: %v", ErrPolicyFailed, err)
	}
	if fee == 0 {
		return nil
	}
	if err := f.payments.Transfer(ctx, caller, receiver, fee); err != nil {
		return fmt.Errorf("%w: creation fee: %v", ErrFeeFailed, err)
	}
	return nil
}

// buildPair allocates the identity, terms, and router for a new series.
// Two-phase construction: the router exists first with the account the
// series will authorize, then the caller binds the built series into it.
func (f *Factory) buildPair(params CreateParams) (bond.SeriesID, series.Terms, *router.Router, error) {
	now := f.clock.Now()
	id := bond.NewSeriesID(params.Issuer, now, f.nonce)
	f.nonce++

	terms := series.Terms{
		Issuer:          params.Issuer,
		Router:          deriveAccount(id, "router"),
		Account:         deriveAccount(id, "series"),
		ShareBps:        params.ShareBps,
		Maturity:        now.Add(params.Term),
		TotalSupply:     params.TotalSupply,
		MinDistribution: params.MinDistribution,
	}
	rtr, err := router.New(router.Config{
		Issuer:   params.Issuer,
		Operator: f.operator,
		Account:  terms.Router,
		ShareBps: params.ShareBps,
		Payments: f.payments,
		Events:   f.events,
		Logger:   f.log,
		Clock:    f.clock,
	})
	if err != nil {
		return bond.SeriesID{}, series.Terms{}, nil, err
	}
	return id, terms, rtr, nil
}

// register notifies the reputation engine about the new series.
// Best-effort: a registry failure never unwinds the creation.
func (f *Factory) register(id bond.SeriesID, params CreateParams, reporter bond.Address) {
	if f.reputation == nil {
		return
	}
	if err := f.reputation.RegisterSeries(params.Issuer, id, params.ExpectedRevenue, params.Cadence); err != nil {
		f.log.Warn("factory: reputation register failed", "series", id, "err", err)
		f.diagnostic(id, "reputation register: "+err.Error())
		return
	}
	if err := f.reputation.AuthorizeReporter(id, reporter); err != nil {
		f.log.Warn("factory: reporter authorization failed", "series", id, "err", err)
		f.diagnostic(id, "reporter authorization: "+err.Error())
	}
}

func (f *Factory) recorder(reporter bond.Address) series.Reporter {
	if f.reputation == nil {
		return nil
	}
	return f.reputation.RecorderFor(reporter)
}

func (f *Factory) defaultReporter() escrow.DefaultReporter {
	if f.reputation == nil {
		return nil
	}
	return f.reputation
}

func (f *Factory) emit(id bond.SeriesID, issuer bond.Address, amount uint64, kind string) {
	ev := events.Event{
		Time:   f.clock.Now(),
		Type:   events.TypeSeriesCreated,
		Series: id,
		Actor:  issuer,
		Amount: amount,
		Reason: kind,
	}
	if err := events.Emit(f.events, ev); err != nil {
		f.log.Warn("factory: event append failed", "series", id, "err", err)
	}
}

func (f *Factory) diagnostic(id bond.SeriesID, reason string) {
	ev := events.Event{
		Time:   f.clock.Now(),
		Type:   events.TypeDiagnostic,
		Series: id,
		Reason: reason,
	}
	if err := events.Emit(f.events, ev); err != nil {
		f.log.Warn("factory: event append failed", "series", id, "err", err)
	}
}

// createRequest projects creation parameters into the policy view.
func createRequest(caller bond.Address, params CreateParams, isEscrow bool) policy.CreateRequest {
	return policy.CreateRequest{
		Caller:          caller,
		Issuer:          params.Issuer,
		ShareBps:        params.ShareBps,
		TotalSupply:     params.TotalSupply,
		MinDistribution: params.MinDistribution,
		Term:            params.Term,
		Principal:       params.Principal,
		MinPurchase:     params.MinPurchase,
		DepositWindow:   params.DepositWindow,
		Escrow:          isEscrow,
	}
}

// deriveAccount derives a component's currency account address from the
// series identity, so the pair needs no external address allocation.
func deriveAccount(id bond.SeriesID, role string) bond.Address {
	var addr bond.Address
	copy(addr[:], bsvhash.Hash160(append(id[:], []byte(role)...)))
	return addr
}
