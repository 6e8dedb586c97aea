package policy

import (
	"time"

	"github.com/seu-repo/sigec-site/internal/domain"
)

// PointsFor returns the suspension points charged for an infraction type.
func PointsFor(t domain.InfractionType) int {
	switch t {
	case domain.InfractionCancellation, domain.InfractionOvertime, domain.InfractionUserReport:
		return 1
	case domain.InfractionNoShow:
		return 2
	default:
		return 0
	}
}

// RecordInfraction appends point to the user's history and recomputes the
// aggregate. A nil current suspension starts a fresh history. The returned
// value is a new aggregate; current is not modified.
func RecordInfraction(current *domain.UserSuspension, point domain.SuspensionPoint, now time.Time, cfg *domain.SuspensionConfig) *domain.UserSuspension {
	if cfg == nil {
		cfg = domain.DefaultSuspensionConfig()
	}

	next := &domain.UserSuspension{UserID: point.UserID}
	if current != nil {
		next.UserID = current.UserID
		next.Points = append(next.Points, current.Points...)
	}
	if point.Points == 0 {
		point.Points = PointsFor(point.Type)
	}
	if point.CreatedAt.IsZero() {
		point.CreatedAt = now
	}
	next.Points = append(next.Points, point)

	for _, p := range next.Points {
		next.TotalPoints += p.Points
	}

	if next.TotalPoints >= cfg.Threshold {
		until := now.AddDate(0, cfg.Months, 0)
		next.SuspendedUntil = &until
	}
	next.IsActive = IsSuspended(next, now)
	return next
}

// IsSuspended reports whether the suspension is in force at now. A user with
// no record is never suspended.
func IsSuspended(s *domain.UserSuspension, now time.Time) bool {
	if s == nil || s.SuspendedUntil == nil {
		return false
	}
	return s.SuspendedUntil.After(now)
}
