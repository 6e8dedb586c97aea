package domain

// Site is a charging location. It owns zones and bays.
type Site struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Timezone         string  `json:"timezone"`
	Address          string  `json:"address"`
	RenewablePercent float64 `json:"renewable_percent"`
}

// Zone groups bays within a site.
type Zone struct {
	ID     string `json:"id"`
	SiteID string `json:"site_id"`
	Name   string `json:"name"`
}

// Bay is a single physical parking/charging slot.
type Bay struct {
	ID        string `json:"id"`
	SiteID    string `json:"site_id"`
	ZoneID    string `json:"zone_id"`
	Label     string `json:"label"`
	ChargerID string `json:"charger_id,omitempty"`
}
