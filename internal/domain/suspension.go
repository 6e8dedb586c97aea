package domain

import "time"

// InfractionType is the reason a suspension point was accrued
type InfractionType string

const (
	InfractionCancellation InfractionType = "cancellation"
	InfractionNoShow       InfractionType = "no_show"
	InfractionOvertime     InfractionType = "overtime"
	InfractionUserReport   InfractionType = "user_report"
)

// Valid reports whether t is a known infraction type.
func (t InfractionType) Valid() bool {
	switch t {
	case InfractionCancellation, InfractionNoShow, InfractionOvertime, InfractionUserReport:
		return true
	}
	return false
}

// SuspensionPoint is a single infraction record
type SuspensionPoint struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id"`
	Type          InfractionType `json:"type"`
	Points        int            `json:"points"`
	Reason        string         `json:"reason"`
	ReservationID string         `json:"reservation_id,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

// UserSuspension aggregates the infraction history of a user. Points never decay.
type UserSuspension struct {
	UserID         string            `json:"user_id"`
	TotalPoints    int               `json:"total_points"`
	SuspendedUntil *time.Time        `json:"suspended_until,omitempty"`
	IsActive       bool              `json:"is_active"`
	Points         []SuspensionPoint `json:"points"`
}

// SuspensionConfig holds the threshold policy
type SuspensionConfig struct {
	Threshold int `json:"threshold" mapstructure:"threshold"`
	// Months of suspension once the threshold is reached.
	Months int `json:"months" mapstructure:"months"`
}

// DefaultSuspensionConfig returns the 4-point / 1-month policy
func DefaultSuspensionConfig() *SuspensionConfig {
	return &SuspensionConfig{
		Threshold: 4,
		Months:    1,
	}
}
