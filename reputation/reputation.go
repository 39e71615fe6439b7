// Package reputation tracks payment behavior per protocol and per series
// and condenses it into a 0-100 score. Records are created on first
// registration and only ever updated or flagged, never deleted; a
// blacklisted protocol scores zero unconditionally.
package reputation

import (
	"log/slog"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/bitfsorg/libbond-go/bond"
	"github.com/bitfsorg/libbond-go/safemath"
)

// ProtocolStats aggregates behavior across all of a protocol's series.
type ProtocolStats struct {
	SeriesCount    uint32
	TotalPromised  uint64
	TotalDelivered uint64
	LatePayments   uint32
	OnTimePayments uint32
	LastPayment    time.Time
	Blacklisted    bool
}

// SeriesStats tracks one registered series.
type SeriesStats struct {
	Protocol          bond.Address
	ExpectedRevenue   uint64
	ActualRevenue     uint64
	Cadence           time.Duration
	RegisteredAt      time.Time
	LastDistribution  time.Time
	DistributionCount uint32
	LastLateFlag      time.Time
	Active            bool
}

// Config assembles an Engine.
type Config struct {
	Logger *slog.Logger
	Clock  clockwork.Clock
}

// Validate defaults the optional fields.
func (cfg *Config) Validate() error {
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return nil
}

// Engine is the reputation registry and scoring engine.
type Engine struct {
	mu        sync.Mutex
	protocols map[bond.Address]*ProtocolStats
	series    map[bond.SeriesID]*SeriesStats
	reporters map[bond.SeriesID]map[bond.Address]bool

	log   *slog.Logger
	clock clockwork.Clock
}

// NewEngine creates an empty engine.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		protocols: make(map[bond.Address]*ProtocolStats),
		series:    make(map[bond.SeriesID]*SeriesStats),
		reporters: make(map[bond.SeriesID]map[bond.Address]bool),
		log:       cfg.Logger,
		clock:     cfg.Clock,
	}, nil
}

// RegisterSeries records a new series for a protocol, with the protocol's
// declared expected revenue and distribution cadence. A zero expected
// revenue is allowed but weighs on the score as a transparency penalty.
func (e *Engine) RegisterSeries(protocol bond.Address, id bond.SeriesID, expectedRevenue uint64, cadence time.Duration) error {
	if protocol.IsZero() {
		return ErrInvalidProtocol
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.series[id]; exists {
		return ErrSeriesRegistered
	}
	stats, ok := e.protocols[protocol]
	var promised uint64
	if ok {
		promised = stats.TotalPromised
	}
	promised, err := safemath.CheckedAdd(promised, expectedRevenue)
	if err != nil {
		return err
	}
	if !ok {
		stats = &ProtocolStats{}
		e.protocols[protocol] = stats
	}
	stats.SeriesCount++
	stats.TotalPromised = promised

	e.series[id] = &SeriesStats{
		Protocol:        protocol,
		ExpectedRevenue: expectedRevenue,
		Cadence:         cadence,
		RegisteredAt:    e.clock.Now(),
		Active:          true,
	}
	return nil
}

// AuthorizeReporter allows the given address to record distributions for
// the series.
func (e *Engine) AuthorizeReporter(id bond.SeriesID, reporter bond.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.series[id]; !ok {
		return ErrSeriesUnknown
	}
	if e.reporters[id] == nil {
		e.reporters[id] = make(map[bond.Address]bool)
	}
	e.reporters[id][reporter] = true
	return nil
}

// RecordDistribution credits a revenue payment to the series. The payment
// counts on-time when it arrives within the declared cadence of the
// previous payment (the first payment is measured from registration; a
// zero cadence disables lateness accounting).
func (e *Engine) RecordDistribution(reporter bond.Address, id bond.SeriesID, amount uint64) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ss, ok := e.series[id]
	if !ok {
		return ErrSeriesUnknown
	}
	if !e.reporters[id][reporter] {
		return ErrReporterUnauthorized
	}
	if !ss.Active {
		return ErrSeriesInactive
	}

	now := e.clock.Now()
	ps := e.protocols[ss.Protocol]
	actual, err := safemath.CheckedAdd(ss.ActualRevenue, amount)
	if err != nil {
		return err
	}
	delivered, err := safemath.CheckedAdd(ps.TotalDelivered, amount)
	if err != nil {
		return err
	}
	if ss.Cadence > 0 {
		ref := ss.LastDistribution
		if ref.IsZero() {
			ref = ss.RegisteredAt
		}
		if now.Sub(ref) > ss.Cadence {
			ps.LatePayments++
		} else {
			ps.OnTimePayments++
		}
	} else {
		ps.OnTimePayments++
	}

	ss.ActualRevenue = actual
	ss.LastDistribution = now
	ss.DistributionCount++
	ps.TotalDelivered = delivered
	ps.LastPayment = now
	return nil
}

// FlagLate marks a series late. Any caller may flag once the elapsed time
// since the last distribution exceeds the declared cadence; flags are
// rate-limited to one per cadence window so the late counter cannot be
// inflated by spam.
func (e *Engine) FlagLate(id bond.SeriesID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ss, ok := e.series[id]
	if !ok {
		return ErrSeriesUnknown
	}
	if !ss.Active {
		return ErrSeriesInactive
	}
	if ss.Cadence <= 0 {
		return ErrNoCadence
	}

	now := e.clock.Now()
	ref := ss.LastDistribution
	if ref.IsZero() {
		ref = ss.RegisteredAt
	}
	if now.Sub(ref) <= ss.Cadence {
		return ErrNotLate
	}
	if !ss.LastLateFlag.IsZero() && now.Sub(ss.LastLateFlag) < ss.Cadence {
		return ErrFlagRateLimited
	}

	ss.LastLateFlag = now
	e.protocols[ss.Protocol].LatePayments++
	return nil
}

// BlacklistProtocol flags the protocol; its score drops to zero
// unconditionally. The record is created if the protocol was never seen.
func (e *Engine) BlacklistProtocol(protocol bond.Address) error {
	if protocol.IsZero() {
		return ErrInvalidProtocol
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	stats, ok := e.protocols[protocol]
	if !ok {
		stats = &ProtocolStats{}
		e.protocols[protocol] = stats
	}
	stats.Blacklisted = true
	return nil
}

// ReportDefault records a principal-funding default: the series is
// deactivated and its issuer blacklisted. Implements the escrow package's
// DefaultReporter.
func (e *Engine) ReportDefault(id bond.SeriesID, issuer bond.Address) error {
	e.mu.Lock()
	if ss, ok := e.series[id]; ok {
		ss.Active = false
	}
	e.mu.Unlock()
	return e.BlacklistProtocol(issuer)
}

// Protocol returns a copy of the protocol's record, or false if the
// protocol was never registered.
func (e *Engine) Protocol(protocol bond.Address) (ProtocolStats, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	stats, ok := e.protocols[protocol]
	if !ok {
		return ProtocolStats{}, false
	}
	return *stats, true
}

// Series returns a copy of the series record, or false if unknown.
func (e *Engine) Series(id bond.SeriesID) (SeriesStats, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	ss, ok := e.series[id]
	if !ok {
		return SeriesStats{}, false
	}
	return *ss, true
}

// Recorder binds the engine to one reporter identity, satisfying the
// series package's Reporter interface.
type Recorder struct {
	engine   *Engine
	reporter bond.Address
}

// RecorderFor returns a Recorder reporting as the given address.
func (e *Engine) RecorderFor(reporter bond.Address) *Recorder {
	return &Recorder{engine: e, reporter: reporter}
}

// RecordDistribution reports a distribution under the bound identity.
func (r *Recorder) RecordDistribution(id bond.SeriesID, amount uint64) error {
	return r.engine.RecordDistribution(r.reporter, id, amount)
}
