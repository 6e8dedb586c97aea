package domain

import "time"

// ExpressStatus represents the status of an express (walk-up) charge
type ExpressStatus string

const (
	ExpressStatusActive    ExpressStatus = "active"
	ExpressStatusCompleted ExpressStatus = "completed"
	ExpressStatusCanceled  ExpressStatus = "canceled"
)

// MaxExpressMinutes caps the duration of an express charge
const MaxExpressMinutes = 180

// ExpressCharge is an unreserved short charge on a free bay
type ExpressCharge struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	SiteID      string        `json:"site_id"`
	BayID       string        `json:"bay_id"`
	StartAt     time.Time     `json:"start_at"`
	EndAt       time.Time     `json:"end_at"`
	MaxDuration int           `json:"max_duration"`
	Status      ExpressStatus `json:"status"`
}
