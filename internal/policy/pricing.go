package policy

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/seu-repo/sigec-site/internal/domain"
)

const (
	// DefaultPricePerKWh applies when a site has no pricing policy.
	DefaultPricePerKWh = 3.5
	// DefaultGraceMinutes applies when a site has no energy policy.
	DefaultGraceMinutes = 10
)

// PriceAt returns the per-kWh price of the TOU block containing the local
// hour of t. With no matching block the first block wins; with no policy the
// default price applies.
func PriceAt(p *domain.PricingPolicy, t time.Time, loc *time.Location) float64 {
	if p == nil {
		return DefaultPricePerKWh
	}
	if loc != nil {
		t = t.In(loc)
	}
	hour := t.Hour()
	for _, b := range p.TOU {
		if b.Contains(hour) {
			return b.PricePerKWh
		}
	}
	if len(p.TOU) > 0 {
		return p.TOU[0].PricePerKWh
	}
	return DefaultPricePerKWh
}

// EstimateSessionCost prices the session's energy at the rate in force when it
// started, then adds the idle fee for minutes past the grace window. The price
// is not integrated across TOU boundaries.
func EstimateSessionCost(s *domain.Session, pricing *domain.PricingPolicy, energy *domain.EnergyPolicy, loc *time.Location) domain.CostBreakdown {
	price := PriceAt(pricing, s.StartAt, loc)

	grace := DefaultGraceMinutes
	if energy != nil {
		grace = energy.GraceMinutes
	}
	extra := s.IdleMinutes - grace
	if extra < 0 {
		extra = 0
	}

	energyCost := decimal.NewFromFloat(s.KWh).Mul(decimal.NewFromFloat(price))
	idleFee := decimal.Zero
	currency := ""
	if pricing != nil {
		idleFee = decimal.NewFromFloat(pricing.IdleFeePerMinute).Mul(decimal.NewFromInt(int64(extra)))
		currency = pricing.Currency
	}

	return domain.CostBreakdown{
		PricePerKWh: price,
		EnergyCost:  energyCost.InexactFloat64(),
		IdleMinutes: s.IdleMinutes,
		ExtraIdle:   extra,
		IdleFee:     idleFee.InexactFloat64(),
		Total:       energyCost.Add(idleFee).InexactFloat64(),
		Currency:    currency,
	}
}

// RoundMoney rounds half away from zero to two decimals.
func RoundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
