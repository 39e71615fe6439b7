package reputation

import (
	"time"

	"github.com/bitfsorg/libbond-go/bond"
	"github.com/bitfsorg/libbond-go/safemath"
)

const (
	scoreNeutral     = 50
	scoreOpaque      = 25
	componentMax     = 50
	inactivityWindow = 90 * 24 * time.Hour
)

// Score condenses a protocol's record into [0, 100]:
//
//   - 0 if blacklisted, unconditionally.
//   - 50 (neutral) if the protocol never registered a series.
//   - 25 if it registered series but never declared an expected revenue
//     for any of them — a transparency penalty for dodging measurable
//     commitments.
//   - Otherwise deliveryScore + reliabilityScore, each in [0, 50].
//
// deliveryScore weights each series' delivery ratio (capped at 1) by its
// expected revenue. reliabilityScore is the global on-time ratio, halved
// when the protocol averages fewer than two payments per series — spinning
// up many series and barely paying any of them does not buy reliability.
// The whole score halves again after 90 days without a payment.
func (e *Engine) Score(protocol bond.Address) uint8 {
	e.mu.Lock()
	defer e.mu.Unlock()

	ps, ok := e.protocols[protocol]
	if !ok {
		return scoreNeutral
	}
	if ps.Blacklisted {
		return 0
	}
	if ps.SeriesCount == 0 {
		return scoreNeutral
	}
	if ps.TotalPromised == 0 {
		return scoreOpaque
	}

	// Σ min(actual, expected) / Σ expected, scaled to 50. Equivalent to
	// the expected-revenue-weighted mean of capped per-series ratios.
	var deliveredCapped uint64
	var totalPayments uint32
	for _, ss := range e.series {
		if ss.Protocol != protocol {
			continue
		}
		totalPayments += ss.DistributionCount
		if ss.ExpectedRevenue == 0 {
			continue
		}
		capped := ss.ActualRevenue
		if capped > ss.ExpectedRevenue {
			capped = ss.ExpectedRevenue
		}
		deliveredCapped += capped
	}
	// deliveredCapped never exceeds TotalPromised, so the quotient is at
	// most componentMax; MulDiv keeps the product at full width.
	deliveryScore, err := safemath.MulDiv(componentMax, deliveredCapped, ps.TotalPromised)
	if err != nil {
		e.log.Error("reputation: delivery ratio", "protocol", protocol, "err", err)
		return 0
	}

	var reliabilityScore uint64
	if tracked := ps.OnTimePayments + ps.LatePayments; tracked > 0 {
		reliabilityScore = uint64(componentMax) * uint64(ps.OnTimePayments) / uint64(tracked)
	}
	if totalPayments < 2*ps.SeriesCount {
		reliabilityScore /= 2
	}

	score := deliveryScore + reliabilityScore
	if ps.LastPayment.IsZero() || e.clock.Now().Sub(ps.LastPayment) > inactivityWindow {
		score /= 2
	}
	return uint8(score)
}
