package domain

import "time"

// SessionStatus represents the status of a charging session
type SessionStatus string

const (
	SessionStatusActive    SessionStatus = "active"
	SessionStatusCompleted SessionStatus = "completed"
)

// Session is a charging event tied 1:1 to a reservation
type Session struct {
	ID            string        `json:"id"`
	ReservationID string        `json:"reservation_id"`
	ChargerID     string        `json:"charger_id,omitempty"`
	BayID         string        `json:"bay_id"`
	UserID        string        `json:"user_id"`
	VehicleID     string        `json:"vehicle_id"`
	SiteID        string        `json:"site_id"`
	StartAt       time.Time     `json:"start_at"`
	EndAt         *time.Time    `json:"end_at,omitempty"`
	KWh           float64       `json:"kwh"`
	Status        SessionStatus `json:"status"`
	IdleMinutes   int           `json:"idle_minutes"`
	Cost          *float64      `json:"cost,omitempty"`
	Version       int64         `json:"version"`
}

// IsActive returns true while the session is drawing power
func (s *Session) IsActive() bool {
	return s.Status == SessionStatusActive
}

// Duration returns elapsed charging time, measured to now for active sessions.
func (s *Session) Duration(now time.Time) time.Duration {
	if s.EndAt != nil {
		return s.EndAt.Sub(s.StartAt)
	}
	return now.Sub(s.StartAt)
}

// ChargingConfig holds the simplified energy model for sessions. Completion
// adds a flat increment instead of integrating a charge curve.
type ChargingConfig struct {
	StartKWh      float64 `json:"start_kwh" mapstructure:"start_kwh"`
	CompletionKWh float64 `json:"completion_kwh" mapstructure:"completion_kwh"`
}

// DefaultChargingConfig returns the demo energy model
func DefaultChargingConfig() *ChargingConfig {
	return &ChargingConfig{
		StartKWh:      0.5,
		CompletionKWh: 16,
	}
}

// CostBreakdown is the billing estimate of a session
type CostBreakdown struct {
	PricePerKWh float64 `json:"price_per_kwh"`
	EnergyCost  float64 `json:"energy_cost"`
	IdleMinutes int     `json:"idle_minutes"`
	ExtraIdle   int     `json:"extra_idle_minutes"`
	IdleFee     float64 `json:"idle_fee"`
	Total       float64 `json:"total"`
	Currency    string  `json:"currency"`
}
