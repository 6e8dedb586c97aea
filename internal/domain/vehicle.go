package domain

type Vehicle struct {
	ID              string        `json:"id"`
	Make            string        `json:"make"`
	Model           string        `json:"model"`
	ConnectorType   ConnectorType `json:"connector_type"`
	BatteryKWh      float64       `json:"battery_kwh"`
	TypicalChargeKW float64       `json:"typical_charge_kw"`
	OwnerUserID     string        `json:"owner_user_id,omitempty"`
	Nickname        string        `json:"nickname,omitempty"`
}

// Label is the human readable "make model" pair used by dashboards.
func (v *Vehicle) Label() string {
	if v == nil {
		return ""
	}
	return v.Make + " " + v.Model
}
