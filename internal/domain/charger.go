package domain

type ChargerStatus string

const (
	ChargerStatusAvailable   ChargerStatus = "Available"
	ChargerStatusInUse       ChargerStatus = "InUse"
	ChargerStatusFaulted     ChargerStatus = "Faulted"
	ChargerStatusReserved    ChargerStatus = "Reserved"
	ChargerStatusUnavailable ChargerStatus = "Unavailable"
)

type ConnectorType string

const (
	ConnectorCCS1  ConnectorType = "CCS1"
	ConnectorType2 ConnectorType = "Type2"
	ConnectorNACS  ConnectorType = "NACS"
)

// Valid reports whether c is one of the supported connector types.
func (c ConnectorType) Valid() bool {
	switch c {
	case ConnectorCCS1, ConnectorType2, ConnectorNACS:
		return true
	}
	return false
}

// Charger is the hardware unit mounted at a bay.
type Charger struct {
	ID         string        `json:"id"`
	SiteID     string        `json:"site_id"`
	BayID      string        `json:"bay_id"`
	Model      string        `json:"model"`
	PowerKW    float64       `json:"power_kw"`
	Protocol   string        `json:"protocol"`
	Status     ChargerStatus `json:"status"`
	Connectors []Connector   `json:"connectors"`
	LastErrors []string      `json:"last_errors,omitempty"`
	Firmware   string        `json:"firmware"`
}

type Connector struct {
	ID        string        `json:"id"`
	ChargerID string        `json:"charger_id"`
	Type      ConnectorType `json:"type"`
	MaxKW     float64       `json:"max_kw"`
}

// Assignable returns false for chargers that must not receive new sessions.
func (c *Charger) Assignable() bool {
	return c.Status != ChargerStatusFaulted && c.Status != ChargerStatusUnavailable
}
