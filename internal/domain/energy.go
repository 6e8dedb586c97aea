package domain

// QueuePolicy labels how waiting vehicles are served. Only FIFO exists.
type QueuePolicy string

const QueuePolicyFIFO QueuePolicy = "FIFO"

// EnergyPolicy is the per-site load management policy
type EnergyPolicy struct {
	SiteID        string      `json:"site_id"`
	CapacityCapKW float64     `json:"capacity_cap_kw"`
	BufferMinutes int         `json:"buffer_minutes"`
	GraceMinutes  int         `json:"grace_minutes"` // idle-fee-free window
	QueuePolicy   QueuePolicy `json:"queue_policy"`
}

// EnergyPolicyPatch carries optional updates to an EnergyPolicy
type EnergyPolicyPatch struct {
	CapacityCapKW *float64 `json:"capacity_cap_kw,omitempty"`
	BufferMinutes *int     `json:"buffer_minutes,omitempty"`
	GraceMinutes  *int     `json:"grace_minutes,omitempty"`
}

// Apply copies the set fields of the patch onto p.
func (pt EnergyPolicyPatch) Apply(p *EnergyPolicy) {
	if pt.CapacityCapKW != nil {
		p.CapacityCapKW = *pt.CapacityCapKW
	}
	if pt.BufferMinutes != nil {
		p.BufferMinutes = *pt.BufferMinutes
	}
	if pt.GraceMinutes != nil {
		p.GraceMinutes = *pt.GraceMinutes
	}
}

// PowerAssignment is the DLM result for a single active session
type PowerAssignment struct {
	SessionID  string  `json:"session_id"`
	BayID      string  `json:"bay_id"`
	ChargerID  string  `json:"charger_id,omitempty"`
	VehicleID  string  `json:"vehicle_id"`
	MaxKW      float64 `json:"max_kw"`
	AssignedKW float64 `json:"assigned_kw"`
	Throttled  bool    `json:"throttled"`
}

// DLMSnapshot is the power distribution of a site at a point in time
type DLMSnapshot struct {
	SiteID          string            `json:"site_id"`
	SiteCapKW       float64           `json:"site_cap_kw"`
	ShareKW         float64           `json:"share_kw"`
	Assignments     []PowerAssignment `json:"assignments"`
	ThrottledCount  int               `json:"throttled_count"`
	TotalAssignedKW float64           `json:"total_assigned_kw"`
}

// SiteKPIs summarises a site for the operations dashboard
type SiteKPIs struct {
	SiteID             string  `json:"site_id"`
	ActiveSessions     int     `json:"active_sessions"`
	ReservationsToday  int     `json:"reservations_today"`
	AvailableChargers  int     `json:"available_chargers"`
	FaultedChargers    int     `json:"faulted_chargers"`
	CapacityCapKW      float64 `json:"capacity_cap_kw"`
	AssignedKW         float64 `json:"assigned_kw"`
	RenewablePercent   float64 `json:"renewable_percent"`
	EnergyDeliveredKWh float64 `json:"energy_delivered_kwh"`
}
