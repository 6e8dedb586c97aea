package domain

import "time"

// ReportType classifies a user report
type ReportType string

const (
	ReportOccupiedSpot   ReportType = "occupied_spot"
	ReportDamagedCharger ReportType = "damaged_charger"
	ReportOther          ReportType = "other"
)

// Valid reports whether t is a known report type.
func (t ReportType) Valid() bool {
	return t == ReportOccupiedSpot || t == ReportDamagedCharger || t == ReportOther
}

// ReportStatus tracks handling of a user report
type ReportStatus string

const (
	ReportStatusPending   ReportStatus = "pending"
	ReportStatusResolved  ReportStatus = "resolved"
	ReportStatusDismissed ReportStatus = "dismissed"
)

// UserReport is filed by a driver about a problem at a bay
type UserReport struct {
	ID            string       `json:"id"`
	ReporterID    string       `json:"reporter_id"`
	Type          ReportType   `json:"type"`
	SiteID        string       `json:"site_id"`
	BayID         string       `json:"bay_id,omitempty"`
	ReservationID string       `json:"reservation_id,omitempty"`
	Description   string       `json:"description"`
	Status        ReportStatus `json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
}
