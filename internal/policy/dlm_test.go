package policy

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocatePower_EvenSplitBothThrottled(t *testing.T) {
	demands := []PowerDemand{
		{SessionID: "s-1", ChargerKW: 60, VehicleKW: 150},
		{SessionID: "s-2", ChargerKW: 80, VehicleKW: 250},
	}

	snap := AllocatePower("site-1", 100, demands)

	assert.Equal(t, 50.0, snap.ShareKW)
	require.Len(t, snap.Assignments, 2)
	assert.Equal(t, 50.0, snap.Assignments[0].AssignedKW)
	assert.Equal(t, 50.0, snap.Assignments[1].AssignedKW)
	assert.True(t, snap.Assignments[0].Throttled)
	assert.True(t, snap.Assignments[1].Throttled)
	assert.Equal(t, 2, snap.ThrottledCount)
	assert.Equal(t, 100.0, snap.TotalAssignedKW)
}

func TestAllocatePower_CappedByPairing(t *testing.T) {
	demands := []PowerDemand{
		{SessionID: "s-1", ChargerKW: 22, VehicleKW: 11},
		{SessionID: "s-2", ChargerKW: 150, VehicleKW: 120},
	}

	snap := AllocatePower("site-1", 150, demands)

	assert.Equal(t, 75.0, snap.ShareKW)
	assert.Equal(t, 11.0, snap.Assignments[0].AssignedKW)
	assert.False(t, snap.Assignments[0].Throttled)
	assert.Equal(t, 75.0, snap.Assignments[1].AssignedKW)
	assert.True(t, snap.Assignments[1].Throttled)
	assert.Equal(t, 1, snap.ThrottledCount)
	assert.Equal(t, 86.0, snap.TotalAssignedKW)
}

func TestAllocatePower_UnknownRatingsDefault(t *testing.T) {
	snap := AllocatePower("site-1", 80, []PowerDemand{{SessionID: "s-1"}})

	assert.Equal(t, DefaultPairingKW, snap.Assignments[0].MaxKW)
	assert.Equal(t, DefaultPairingKW, snap.Assignments[0].AssignedKW)
	assert.False(t, snap.Assignments[0].Throttled)
}

func TestAllocatePower_NoSessions(t *testing.T) {
	snap := AllocatePower("site-1", 80, nil)

	assert.Equal(t, 80.0, snap.ShareKW)
	assert.Empty(t, snap.Assignments)
	assert.Zero(t, snap.TotalAssignedKW)
	assert.Zero(t, snap.ThrottledCount)
}

func TestAllocatePower_FloorsShare(t *testing.T) {
	demands := []PowerDemand{
		{ChargerKW: 200, VehicleKW: 200},
		{ChargerKW: 200, VehicleKW: 200},
		{ChargerKW: 200, VehicleKW: 200},
	}

	snap := AllocatePower("site-1", 100, demands)

	assert.Equal(t, 33.0, snap.ShareKW)
	assert.Equal(t, 99.0, snap.TotalAssignedKW)
}

func TestAllocatePower_NeverExceedsCap(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	ratings := []float64{0, 7, 11, 22, 50, 75, 150, 200}

	for i := 0; i < 200; i++ {
		n := rng.Intn(12)
		capKW := float64(rng.Intn(400))
		demands := make([]PowerDemand, n)
		for j := range demands {
			demands[j] = PowerDemand{
				SessionID: fmt.Sprintf("s-%d", j),
				ChargerKW: ratings[rng.Intn(len(ratings))],
				VehicleKW: ratings[rng.Intn(len(ratings))],
			}
		}

		snap := AllocatePower("site-1", capKW, demands)

		assert.LessOrEqual(t, snap.TotalAssignedKW, capKW)
		for k, a := range snap.Assignments {
			assert.LessOrEqual(t, a.AssignedKW, demands[k].MaxKW())
			assert.Equal(t, a.AssignedKW < a.MaxKW, a.Throttled)
		}
	}
}
