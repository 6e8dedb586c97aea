package domain

import (
	"errors"
	"testing"
)

func TestPricingPolicyValidate(t *testing.T) {
	tests := []struct {
		name    string
		blocks  []TOUBlock
		wantErr bool
	}{
		{
			name:   "full day out of order",
			blocks: []TOUBlock{{17, 22, 5.4}, {0, 7, 2.8}, {22, 24, 2.8}, {7, 17, 3.6}},
		},
		{
			name:   "single block",
			blocks: []TOUBlock{{0, 24, 3.0}},
		},
		{
			name:    "empty",
			wantErr: true,
		},
		{
			name:    "gap",
			blocks:  []TOUBlock{{0, 7, 2.8}, {8, 24, 3.6}},
			wantErr: true,
		},
		{
			name:    "overlap",
			blocks:  []TOUBlock{{0, 8, 2.8}, {7, 24, 3.6}},
			wantErr: true,
		},
		{
			name:    "short of midnight",
			blocks:  []TOUBlock{{0, 12, 2.8}, {12, 23, 3.6}},
			wantErr: true,
		},
		{
			name:    "past midnight",
			blocks:  []TOUBlock{{0, 12, 2.8}, {12, 25, 3.6}},
			wantErr: true,
		},
		{
			name:    "negative price",
			blocks:  []TOUBlock{{0, 24, -1}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &PricingPolicy{SiteID: "site-1", TOU: tt.blocks}
			err := p.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Errorf("expected ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}
