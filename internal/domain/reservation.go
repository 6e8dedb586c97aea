package domain

import (
	"fmt"
	"time"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	ReservationStatusRequested ReservationStatus = "requested"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusActive    ReservationStatus = "active" // User arrived and is charging
	ReservationStatusCompleted ReservationStatus = "completed"
	ReservationStatusCanceled  ReservationStatus = "canceled"
	ReservationStatusNoShow    ReservationStatus = "no-show" // Confirmed but never started
	ReservationStatusExpired   ReservationStatus = "expired" // Never confirmed before its window closed
)

// PriorityTier orders arrivals on the operations board.
type PriorityTier string

const (
	PriorityFleet    PriorityTier = "Fleet"
	PriorityEmployee PriorityTier = "Employee"
	PriorityGuest    PriorityTier = "Guest"
)

// Weight returns the arrivals ordering weight: Fleet=3 > Employee=2 > Guest=1.
func (p PriorityTier) Weight() int {
	switch p {
	case PriorityFleet:
		return 3
	case PriorityEmployee:
		return 2
	case PriorityGuest:
		return 1
	}
	return 0
}

// Reservation represents a charging reservation for a bay in a zone
type Reservation struct {
	ID            string            `json:"id"`
	UserID        string            `json:"user_id"`
	VehicleID     string            `json:"vehicle_id"`
	SiteID        string            `json:"site_id"`
	ZoneID        string            `json:"zone_id"`
	BayID         string            `json:"bay_id,omitempty"` // assigned at booking or at session start
	ConnectorType ConnectorType     `json:"connector_type"`
	Status        ReservationStatus `json:"status"`
	StartAt       time.Time         `json:"start_at"`
	EndAt         time.Time         `json:"end_at"`
	TargetSoc     int               `json:"target_soc"`
	Priority      PriorityTier      `json:"priority"`
	Urgent        bool              `json:"urgent"`
	Code          string            `json:"code"`
	Version       int64             `json:"version"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// ReservationConfig holds reservation system configuration
type ReservationConfig struct {
	// WeeklyLimit is the number of non-canceled reservations a driver may
	// hold within the trailing seven days.
	WeeklyLimit int `json:"weekly_limit" mapstructure:"weekly_limit"`

	// HostBonus is added to WeeklyLimit for users who can host guests.
	HostBonus int `json:"host_bonus" mapstructure:"host_bonus"`

	// MaxDurationMinutes caps the reservation window. Zero disables the check.
	MaxDurationMinutes int `json:"max_duration_minutes" mapstructure:"max_duration_minutes"`

	// NoShowGraceMinutes is how long after startAt a confirmed reservation
	// may remain unstarted before the sweep marks it as a no-show.
	NoShowGraceMinutes int `json:"no_show_grace_minutes" mapstructure:"no_show_grace_minutes"`

	// CodePrefix is prepended to kiosk codes.
	CodePrefix string `json:"code_prefix" mapstructure:"code_prefix"`
}

// DefaultReservationConfig returns sensible defaults
func DefaultReservationConfig() *ReservationConfig {
	return &ReservationConfig{
		WeeklyLimit:        2,
		HostBonus:          3,
		MaxDurationMinutes: 0,
		NoShowGraceMinutes: 15,
		CodePrefix:         "MABE",
	}
}

// IsTerminal returns true once no further transition is possible
func (r *Reservation) IsTerminal() bool {
	switch r.Status {
	case ReservationStatusCompleted, ReservationStatusCanceled, ReservationStatusNoShow, ReservationStatusExpired:
		return true
	}
	return false
}

// IsPending returns true if the reservation is requested or confirmed
func (r *Reservation) IsPending() bool {
	return r.Status == ReservationStatusRequested || r.Status == ReservationStatusConfirmed
}

// CanBeCancelled returns true if the reservation can still be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.IsPending()
}

// HoldsBay reports whether the reservation still claims its bay for its window.
func (r *Reservation) HoldsBay() bool {
	return r.IsPending() || r.Status == ReservationStatusActive
}

// Overlaps reports whether the reservation window intersects [start, end).
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.StartAt.Before(end) && start.Before(r.EndAt)
}

// Duration returns the length of the reservation window.
func (r *Reservation) Duration() time.Duration {
	return r.EndAt.Sub(r.StartAt)
}

// ValidateWindow checks the endAt > startAt invariant.
func ValidateWindow(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("start and end are required: %w", ErrTimeWindowInvalid)
	}
	if !end.After(start) {
		return fmt.Errorf("end %s must be after start %s: %w",
			end.Format(time.RFC3339), start.Format(time.RFC3339), ErrTimeWindowInvalid)
	}
	return nil
}

// ReservationFilter narrows repository listings. Zero values match everything.
type ReservationFilter struct {
	UserID   string
	SiteID   string
	BayID    string
	Statuses []ReservationStatus
}

// Matches reports whether r satisfies the filter.
func (f ReservationFilter) Matches(r *Reservation) bool {
	if f.UserID != "" && r.UserID != f.UserID {
		return false
	}
	if f.SiteID != "" && r.SiteID != f.SiteID {
		return false
	}
	if f.BayID != "" && r.BayID != f.BayID {
		return false
	}
	if len(f.Statuses) == 0 {
		return true
	}
	for _, s := range f.Statuses {
		if r.Status == s {
			return true
		}
	}
	return false
}
