package policy

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/seu-repo/sigec-site/internal/domain"
)

const (
	// DefaultSiteCapKW applies when a site has no energy policy.
	DefaultSiteCapKW = 80.0
	// DefaultPairingKW stands in for an unknown charger or vehicle rating.
	DefaultPairingKW = 7.0
)

// PowerDemand describes one active session as seen by the allocator.
// Non-positive ratings mean unknown and fall back to DefaultPairingKW.
type PowerDemand struct {
	SessionID string
	BayID     string
	ChargerID string
	VehicleID string
	ChargerKW float64
	VehicleKW float64
}

// MaxKW is the physical ceiling of the charger/vehicle pairing.
func (d PowerDemand) MaxKW() float64 {
	c, v := d.ChargerKW, d.VehicleKW
	if c <= 0 {
		c = DefaultPairingKW
	}
	if v <= 0 {
		v = DefaultPairingKW
	}
	return math.Min(c, v)
}

// AllocatePower splits capKW evenly across demands, capping each session at
// its pairing ceiling. Priority tiers do not influence the split. The sum of
// assignments never exceeds capKW.
func AllocatePower(siteID string, capKW float64, demands []PowerDemand) domain.DLMSnapshot {
	if capKW < 0 {
		capKW = 0
	}
	n := len(demands)
	if n < 1 {
		n = 1
	}
	share := math.Floor(capKW / float64(n))

	snap := domain.DLMSnapshot{
		SiteID:      siteID,
		SiteCapKW:   capKW,
		ShareKW:     share,
		Assignments: make([]domain.PowerAssignment, 0, len(demands)),
	}
	assigned := make([]float64, 0, len(demands))

	for _, d := range demands {
		maxKW := d.MaxKW()
		a := math.Min(share, maxKW)
		throttled := a < maxKW
		if throttled {
			snap.ThrottledCount++
		}
		snap.Assignments = append(snap.Assignments, domain.PowerAssignment{
			SessionID:  d.SessionID,
			BayID:      d.BayID,
			ChargerID:  d.ChargerID,
			VehicleID:  d.VehicleID,
			MaxKW:      maxKW,
			AssignedKW: a,
			Throttled:  throttled,
		})
		assigned = append(assigned, a)
	}

	if len(assigned) > 0 {
		snap.TotalAssignedKW = floats.Sum(assigned)
	}
	return snap
}
