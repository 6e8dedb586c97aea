package policy

import (
	"fmt"
	"time"

	"github.com/seu-repo/sigec-site/internal/domain"
)

// WeeklyWindow is the trailing window used by the weekly limit.
const WeeklyWindow = 7 * 24 * time.Hour

// Eligibility is the outcome of a reservation gate. A rejection is an
// expected answer, not an error.
type Eligibility struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

// CountWeeklyReservations counts the user's non-canceled reservations whose
// start is within the trailing seven days (future starts included).
func CountWeeklyReservations(reservations []domain.Reservation, userID string, now time.Time) int {
	since := now.Add(-WeeklyWindow)
	count := 0
	for i := range reservations {
		r := &reservations[i]
		if r.UserID != userID || r.Status == domain.ReservationStatusCanceled {
			continue
		}
		if !r.StartAt.Before(since) {
			count++
		}
	}
	return count
}

// WeeklyLimit returns the reservation limit for a user. The role does not
// change the limit today; hosts get the configured bonus.
func WeeklyLimit(role domain.Role, isHost bool, cfg *domain.ReservationConfig) int {
	if cfg == nil {
		cfg = domain.DefaultReservationConfig()
	}
	limit := cfg.WeeklyLimit
	if isHost {
		limit += cfg.HostBonus
	}
	return limit
}

// CanMakeReservation applies the weekly limit only. Suspension is layered on
// top by CanUserReserve.
func CanMakeReservation(reservations []domain.Reservation, userID string, role domain.Role, isHost bool, now time.Time, cfg *domain.ReservationConfig) Eligibility {
	limit := WeeklyLimit(role, isHost, cfg)
	if count := CountWeeklyReservations(reservations, userID, now); count >= limit {
		return Eligibility{
			Allowed: false,
			Reason:  fmt.Sprintf("weekly reservation limit of %d reached", limit),
		}
	}
	return Eligibility{Allowed: true}
}

// CanUserReserve combines the suspension check with the weekly limit.
func CanUserReserve(user *domain.User, suspension *domain.UserSuspension, reservations []domain.Reservation, now time.Time, cfg *domain.ReservationConfig) Eligibility {
	if user == nil {
		return Eligibility{Allowed: false, Reason: "user not found"}
	}
	if IsSuspended(suspension, now) {
		return Eligibility{
			Allowed: false,
			Reason:  fmt.Sprintf("account suspended until %s", suspension.SuspendedUntil.Format("2006-01-02")),
		}
	}
	return CanMakeReservation(reservations, user.ID, user.Role, user.IsHost, now, cfg)
}
