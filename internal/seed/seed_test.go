package seed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seu-repo/sigec-site/internal/domain"
)

func testOptions() Options {
	return Options{
		Now:      time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC),
		Location: time.UTC,
		RandSeed: 7,
	}
}

func TestBuild_Shape(t *testing.T) {
	snap := Build(testOptions())

	assert.Len(t, snap.Sites, 3)
	assert.Len(t, snap.Zones, 7)
	assert.Len(t, snap.Bays, 44)
	assert.Len(t, snap.Chargers, 44)
	assert.Len(t, snap.Users, 17)
	assert.Len(t, snap.Vehicles, 12)
	assert.Len(t, snap.Reservations, 33)
	assert.Len(t, snap.EnergyPolicies, 3)
	assert.Len(t, snap.Tickets, 3)

	for _, p := range snap.PricingPolicies {
		require.NoError(t, p.Validate(), p.SiteID)
	}
}

func TestBuild_Deterministic(t *testing.T) {
	a := Build(testOptions())
	b := Build(testOptions())
	assert.Equal(t, a, b)
}

func TestBuild_ReferentialIntegrity(t *testing.T) {
	snap := Build(testOptions())

	bays := map[string]domain.Bay{}
	for _, b := range snap.Bays {
		bays[b.ID] = b
	}
	chargers := map[string]domain.Charger{}
	for _, c := range snap.Chargers {
		chargers[c.ID] = c
		assert.Equal(t, c.BayID, bays[c.BayID].ID)
	}
	for _, r := range snap.Reservations {
		require.NoError(t, domain.ValidateWindow(r.StartAt, r.EndAt))
		bay, ok := bays[r.BayID]
		require.True(t, ok, r.ID)
		assert.Equal(t, bay.SiteID, r.SiteID)
		assert.Equal(t, bay.ZoneID, r.ZoneID)
	}
	active := 0
	for _, s := range snap.Sessions {
		if s.Status == domain.SessionStatusActive {
			active++
			assert.Nil(t, s.EndAt)
			assert.Equal(t, domain.ChargerStatusInUse, chargers[s.ChargerID].Status)
		} else {
			require.NotNil(t, s.EndAt)
		}
	}
	assert.Equal(t, 3, active)
}

func TestUsers_RolesAndHosts(t *testing.T) {
	hosts := 0
	for _, u := range Users() {
		if u.IsHost {
			hosts++
		}
		_, err := domain.ParseRole(string(u.Role))
		assert.NoError(t, err, u.ID)
	}
	assert.Equal(t, len(HostUsers), hosts)
}
