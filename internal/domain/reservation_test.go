package domain

import (
	"errors"
	"testing"
	"time"
)

func TestValidateWindow(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	if err := ValidateWindow(start, start.Add(time.Hour)); err != nil {
		t.Errorf("expected valid window, got %v", err)
	}
	if err := ValidateWindow(start, start); !errors.Is(err, ErrTimeWindowInvalid) {
		t.Errorf("expected ErrTimeWindowInvalid for empty window, got %v", err)
	}
	if err := ValidateWindow(start, start.Add(-time.Minute)); !errors.Is(err, ErrTimeWindowInvalid) {
		t.Errorf("expected ErrTimeWindowInvalid for inverted window, got %v", err)
	}
	if err := ValidateWindow(time.Time{}, start); !errors.Is(err, ErrTimeWindowInvalid) {
		t.Errorf("expected ErrTimeWindowInvalid for zero start, got %v", err)
	}
}

func TestReservationOverlaps(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	r := &Reservation{StartAt: start, EndAt: start.Add(time.Hour)}

	if !r.Overlaps(start.Add(30*time.Minute), start.Add(90*time.Minute)) {
		t.Error("expected partial overlap")
	}
	if r.Overlaps(start.Add(time.Hour), start.Add(2*time.Hour)) {
		t.Error("adjacent windows must not overlap")
	}
	if r.Overlaps(start.Add(-time.Hour), start) {
		t.Error("adjacent windows must not overlap")
	}
}

func TestReservationStatusPredicates(t *testing.T) {
	tests := []struct {
		status   ReservationStatus
		terminal bool
		pending  bool
	}{
		{ReservationStatusRequested, false, true},
		{ReservationStatusConfirmed, false, true},
		{ReservationStatusActive, false, false},
		{ReservationStatusCompleted, true, false},
		{ReservationStatusCanceled, true, false},
		{ReservationStatusNoShow, true, false},
		{ReservationStatusExpired, true, false},
	}
	for _, tt := range tests {
		r := &Reservation{Status: tt.status}
		if r.IsTerminal() != tt.terminal {
			t.Errorf("%s: IsTerminal = %v", tt.status, r.IsTerminal())
		}
		if r.CanBeCancelled() != tt.pending {
			t.Errorf("%s: CanBeCancelled = %v", tt.status, r.CanBeCancelled())
		}
	}
}

func TestPriorityWeight(t *testing.T) {
	if !(PriorityFleet.Weight() > PriorityEmployee.Weight() && PriorityEmployee.Weight() > PriorityGuest.Weight()) {
		t.Error("expected Fleet > Employee > Guest")
	}
	if PriorityTier("VIP").Weight() != 0 {
		t.Error("unknown tiers must weigh zero")
	}
}
