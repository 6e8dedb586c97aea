package domain

import (
	"fmt"
	"sort"
)

// TOUBlock is a time-of-use price band covering [StartHour, EndHour)
type TOUBlock struct {
	StartHour   int     `json:"start_hour"`
	EndHour     int     `json:"end_hour"`
	PricePerKWh float64 `json:"price_per_kwh"`
}

// Contains reports whether hour falls inside the block.
func (b TOUBlock) Contains(hour int) bool {
	return hour >= b.StartHour && hour < b.EndHour
}

// PricingPolicy is the per-site tariff
type PricingPolicy struct {
	SiteID           string     `json:"site_id"`
	Currency         string     `json:"currency"`
	IdleFeePerMinute float64    `json:"idle_fee_per_minute"`
	TOU              []TOUBlock `json:"tou"`
}

// Validate checks that the TOU blocks are contiguous and cover the whole day.
func (p *PricingPolicy) Validate() error {
	if len(p.TOU) == 0 {
		return fmt.Errorf("pricing policy for %s has no TOU blocks: %w", p.SiteID, ErrValidation)
	}
	if p.IdleFeePerMinute < 0 {
		return fmt.Errorf("idle fee must not be negative: %w", ErrValidation)
	}

	blocks := make([]TOUBlock, len(p.TOU))
	copy(blocks, p.TOU)
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].StartHour < blocks[j].StartHour })

	next := 0
	for _, b := range blocks {
		if b.StartHour != next {
			return fmt.Errorf("TOU gap or overlap at hour %d: %w", next, ErrValidation)
		}
		if b.EndHour <= b.StartHour || b.EndHour > 24 {
			return fmt.Errorf("TOU block %d-%d is invalid: %w", b.StartHour, b.EndHour, ErrValidation)
		}
		if b.PricePerKWh < 0 {
			return fmt.Errorf("TOU block %d-%d has a negative price: %w", b.StartHour, b.EndHour, ErrValidation)
		}
		next = b.EndHour
	}
	if next != 24 {
		return fmt.Errorf("TOU blocks end at hour %d instead of 24: %w", next, ErrValidation)
	}
	return nil
}
