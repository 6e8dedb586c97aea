package policy

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seu-repo/sigec-site/internal/domain"
)

func hqPricing() *domain.PricingPolicy {
	return &domain.PricingPolicy{
		SiteID:           "site-hq",
		Currency:         "MXN",
		IdleFeePerMinute: 0.9,
		TOU: []domain.TOUBlock{
			{StartHour: 0, EndHour: 7, PricePerKWh: 2.8},
			{StartHour: 7, EndHour: 17, PricePerKWh: 3.6},
			{StartHour: 17, EndHour: 22, PricePerKWh: 5.4},
			{StartHour: 22, EndHour: 24, PricePerKWh: 2.8},
		},
	}
}

func TestPriceAt(t *testing.T) {
	p := hqPricing()
	tests := []struct {
		hour int
		want float64
	}{
		{0, 2.8}, {6, 2.8}, {7, 3.6}, {16, 3.6}, {17, 5.4}, {21, 5.4}, {22, 2.8}, {23, 2.8},
	}
	for _, tt := range tests {
		at := time.Date(2024, 1, 1, tt.hour, 30, 0, 0, time.UTC)
		assert.Equal(t, tt.want, PriceAt(p, at, time.UTC), "hour %d", tt.hour)
	}
}

func TestPriceAt_UsesSiteLocalHour(t *testing.T) {
	loc, err := time.LoadLocation("America/Mexico_City")
	require.NoError(t, err)

	// 15:00 UTC is 09:00 in Mexico City (UTC-6, no DST since 2022).
	at := time.Date(2024, 1, 1, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, 3.6, PriceAt(hqPricing(), at, loc))
	assert.Equal(t, 3.6, PriceAt(hqPricing(), at, time.UTC))

	// 23:00 UTC is 17:00 local: peak.
	assert.Equal(t, 5.4, PriceAt(hqPricing(), time.Date(2024, 1, 1, 23, 0, 0, 0, time.UTC), loc))
}

func TestPriceAt_Fallbacks(t *testing.T) {
	at := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, DefaultPricePerKWh, PriceAt(nil, at, nil))
	assert.Equal(t, DefaultPricePerKWh, PriceAt(&domain.PricingPolicy{}, at, nil))

	gappy := &domain.PricingPolicy{TOU: []domain.TOUBlock{{StartHour: 0, EndHour: 6, PricePerKWh: 1.9}}}
	assert.Equal(t, 1.9, PriceAt(gappy, at, nil))
}

func TestEstimateSessionCost_IdleWithinGrace(t *testing.T) {
	s := &domain.Session{
		StartAt:     time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		KWh:         16,
		IdleMinutes: 5,
	}
	energy := &domain.EnergyPolicy{GraceMinutes: 10}

	got := EstimateSessionCost(s, hqPricing(), energy, time.UTC)

	assert.Equal(t, 0.0, got.IdleFee)
	assert.InDelta(t, 16*3.6, got.EnergyCost, 1e-9)
	assert.InDelta(t, 16*3.6, got.Total, 1e-9)
	assert.Equal(t, "MXN", got.Currency)
}

func TestEstimateSessionCost_IdleFeeAfterGrace(t *testing.T) {
	s := &domain.Session{
		StartAt:     time.Date(2024, 1, 1, 18, 0, 0, 0, time.UTC),
		KWh:         10,
		IdleMinutes: 25,
	}

	got := EstimateSessionCost(s, hqPricing(), &domain.EnergyPolicy{GraceMinutes: 10}, time.UTC)

	assert.Equal(t, 15, got.ExtraIdle)
	assert.InDelta(t, 13.5, got.IdleFee, 1e-9)
	assert.InDelta(t, 54+13.5, got.Total, 1e-9)
}

func TestEstimateSessionCost_PriceLockedAtStart(t *testing.T) {
	// Starts off-peak at 16:30 and runs into the 17:00 peak block.
	end := time.Date(2024, 1, 1, 19, 0, 0, 0, time.UTC)
	s := &domain.Session{
		StartAt: time.Date(2024, 1, 1, 16, 30, 0, 0, time.UTC),
		EndAt:   &end,
		KWh:     20,
	}

	got := EstimateSessionCost(s, hqPricing(), nil, time.UTC)

	assert.Equal(t, 3.6, got.PricePerKWh)
	assert.InDelta(t, 72, got.Total, 1e-9)
}

func TestEstimateSessionCost_Defaults(t *testing.T) {
	s := &domain.Session{StartAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), KWh: 2, IdleMinutes: 30}

	got := EstimateSessionCost(s, nil, nil, nil)

	assert.Equal(t, 20, got.ExtraIdle)
	assert.Equal(t, 0.0, got.IdleFee)
	assert.InDelta(t, 7.0, got.Total, 1e-9)
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 59.4, RoundMoney(59.400000000001))
	assert.Equal(t, 1.01, RoundMoney(1.005))
	assert.Equal(t, 0.0, RoundMoney(0))
}
