package policy

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/seu-repo/sigec-site/internal/domain"
)

func reservationsFor(userID string, n int, start time.Time, status domain.ReservationStatus) []domain.Reservation {
	out := make([]domain.Reservation, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, domain.Reservation{
			ID:      fmt.Sprintf("%s-r%d", userID, i),
			UserID:  userID,
			Status:  status,
			StartAt: start.Add(time.Duration(i) * time.Hour),
			EndAt:   start.Add(time.Duration(i)*time.Hour + time.Hour),
		})
	}
	return out
}

func TestCountWeeklyReservations(t *testing.T) {
	rs := reservationsFor("u-1", 2, now.Add(-24*time.Hour), domain.ReservationStatusConfirmed)
	rs = append(rs, reservationsFor("u-1", 1, now.Add(-8*24*time.Hour), domain.ReservationStatusCompleted)...)
	rs = append(rs, reservationsFor("u-1", 1, now, domain.ReservationStatusCanceled)...)
	rs = append(rs, reservationsFor("u-2", 3, now, domain.ReservationStatusRequested)...)
	rs = append(rs, reservationsFor("u-1", 1, now.Add(48*time.Hour), domain.ReservationStatusRequested)...)

	assert.Equal(t, 3, CountWeeklyReservations(rs, "u-1", now))
	assert.Equal(t, 3, CountWeeklyReservations(rs, "u-2", now))
	assert.Equal(t, 0, CountWeeklyReservations(rs, "u-3", now))
}

func TestCanMakeReservation_WeeklyLimit(t *testing.T) {
	tests := []struct {
		name    string
		isHost  bool
		count   int
		allowed bool
	}{
		{"driver under limit", false, 1, true},
		{"driver at limit", false, 2, false},
		{"host over base limit", true, 2, true},
		{"host under limit", true, 4, true},
		{"host at limit", true, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := reservationsFor("u-1", tt.count, now.Add(-time.Hour), domain.ReservationStatusConfirmed)

			got := CanMakeReservation(rs, "u-1", domain.RoleDriver, tt.isHost, now, nil)

			assert.Equal(t, tt.allowed, got.Allowed)
			if !tt.allowed {
				assert.Contains(t, got.Reason, "limit")
			}
		})
	}
}

func TestCanMakeReservation_RoleDoesNotChangeLimit(t *testing.T) {
	rs := reservationsFor("u-1", 2, now, domain.ReservationStatusRequested)
	for _, role := range domain.Roles {
		assert.False(t, CanMakeReservation(rs, "u-1", role, false, now, nil).Allowed, role)
	}
}

func TestCanUserReserve_SuspendedAlwaysRejected(t *testing.T) {
	until := now.Add(24 * time.Hour)
	user := &domain.User{ID: "u-1", Role: domain.RoleDriver, IsHost: true}
	suspension := &domain.UserSuspension{UserID: "u-1", TotalPoints: 4, SuspendedUntil: &until, IsActive: true}

	got := CanUserReserve(user, suspension, nil, now, nil)

	assert.False(t, got.Allowed)
	assert.Contains(t, got.Reason, "suspended")
}

func TestCanUserReserve_ExpiredSuspensionAllowed(t *testing.T) {
	until := now.Add(-time.Minute)
	user := &domain.User{ID: "u-1", Role: domain.RoleDriver}
	suspension := &domain.UserSuspension{UserID: "u-1", TotalPoints: 4, SuspendedUntil: &until}

	assert.True(t, CanUserReserve(user, suspension, nil, now, nil).Allowed)
}

func TestCanUserReserve_UnknownUser(t *testing.T) {
	assert.False(t, CanUserReserve(nil, nil, nil, now, nil).Allowed)
}
