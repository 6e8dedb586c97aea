package domain

import "time"

// Guest is a visitor sponsored by a host user
type Guest struct {
	ID                  string        `json:"id"`
	HostUserID          string        `json:"host_user_id"`
	Name                string        `json:"name"`
	Email               string        `json:"email,omitempty"`
	Phone               string        `json:"phone,omitempty"`
	LicensePlate        string        `json:"license_plate"`
	VehicleMake         string        `json:"vehicle_make,omitempty"`
	VehicleModel        string        `json:"vehicle_model,omitempty"`
	ConnectorType       ConnectorType `json:"connector_type,omitempty"`
	MonthlyReservations int           `json:"monthly_reservations"`
	CreatedAt           time.Time     `json:"created_at"`
}

// GuestReservation is a booking made by a host on behalf of a guest
type GuestReservation struct {
	ID         string            `json:"id"`
	GuestID    string            `json:"guest_id"`
	HostUserID string            `json:"host_user_id"`
	SiteID     string            `json:"site_id"`
	ZoneID     string            `json:"zone_id"`
	BayID      string            `json:"bay_id,omitempty"`
	StartAt    time.Time         `json:"start_at"`
	EndAt      time.Time         `json:"end_at"`
	Status     ReservationStatus `json:"status"`
	Code       string            `json:"code"`
	Urgent     bool              `json:"urgent"`
}
