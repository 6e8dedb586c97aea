package domain

// Snapshot is the full application state as persisted between restarts
type Snapshot struct {
	Sites             []Site             `json:"sites"`
	Zones             []Zone             `json:"zones"`
	Bays              []Bay              `json:"bays"`
	Chargers          []Charger          `json:"chargers"`
	Users             []User             `json:"users"`
	Vehicles          []Vehicle          `json:"vehicles"`
	Reservations      []Reservation      `json:"reservations"`
	Sessions          []Session          `json:"sessions"`
	EnergyPolicies    []EnergyPolicy     `json:"energy_policies"`
	PricingPolicies   []PricingPolicy    `json:"pricing_policies"`
	Suspensions       []UserSuspension   `json:"suspensions"`
	ExpressCharges    []ExpressCharge    `json:"express_charges"`
	Guests            []Guest            `json:"guests"`
	GuestReservations []GuestReservation `json:"guest_reservations"`
	Reports           []UserReport       `json:"reports"`
	Tickets           []Ticket           `json:"tickets"`
}
