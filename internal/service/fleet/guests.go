package fleet

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/sigec-site/internal/domain"
)

const guestCodePrefix = "GUEST"

// GuestBooking carries the input of BookGuestReservation
type GuestBooking struct {
	GuestID    string    `json:"guest_id"`
	HostUserID string    `json:"host_user_id"`
	SiteID     string    `json:"site_id"`
	ZoneID     string    `json:"zone_id"`
	BayID      string    `json:"bay_id,omitempty"`
	StartAt    time.Time `json:"start_at"`
	EndAt      time.Time `json:"end_at"`
	Urgent     bool      `json:"urgent"`
}

// CanUserHostGuests reports whether the user may sponsor guests
func (s *Service) CanUserHostGuests(ctx context.Context, userID string) (bool, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to get user: %w", err)
	}
	return u != nil && u.IsHost, nil
}

// AddGuest registers a guest under a host
func (s *Service) AddGuest(ctx context.Context, g domain.Guest) (*domain.Guest, error) {
	host, err := s.getUser(ctx, g.HostUserID)
	if err != nil {
		return nil, err
	}
	if !host.IsHost {
		return nil, fmt.Errorf("user %s cannot host guests: %w", host.ID, domain.ErrPolicyViolation)
	}
	if g.Name == "" || g.LicensePlate == "" {
		return nil, fmt.Errorf("guest name and license plate are required: %w", domain.ErrValidation)
	}
	if g.ConnectorType != "" && !g.ConnectorType.Valid() {
		return nil, fmt.Errorf("unknown connector type %q: %w", g.ConnectorType, domain.ErrValidation)
	}

	g.ID = s.ids.NewID("g")
	g.CreatedAt = s.clock.Now()
	g.MonthlyReservations = 0
	if err := s.guests.CreateGuest(ctx, &g); err != nil {
		return nil, fmt.Errorf("failed to save guest: %w", err)
	}

	s.log.Info("Guest added", zap.String("guest_id", g.ID), zap.String("host_id", g.HostUserID))
	return &g, nil
}

// ListGuests lists the guests of a host
func (s *Service) ListGuests(ctx context.Context, hostUserID string) ([]domain.Guest, error) {
	return s.guests.FindGuestsByHost(ctx, hostUserID)
}

// BookGuestReservation books on behalf of a host's guest with a GUEST-#### code
func (s *Service) BookGuestReservation(ctx context.Context, req GuestBooking) (*domain.GuestReservation, error) {
	if err := domain.ValidateWindow(req.StartAt, req.EndAt); err != nil {
		return nil, err
	}
	guest, err := s.guests.FindGuest(ctx, req.GuestID)
	if err != nil {
		return nil, fmt.Errorf("failed to get guest: %w", err)
	}
	if guest == nil {
		return nil, fmt.Errorf("guest %s: %w", req.GuestID, domain.ErrNotFound)
	}
	if guest.HostUserID != req.HostUserID {
		return nil, fmt.Errorf("guest %s is not sponsored by %s: %w", guest.ID, req.HostUserID, domain.ErrPolicyViolation)
	}
	zone, err := s.sites.FindZone(ctx, req.ZoneID)
	if err != nil {
		return nil, fmt.Errorf("failed to get zone: %w", err)
	}
	if zone == nil || zone.SiteID != req.SiteID {
		return nil, fmt.Errorf("zone %s in site %s: %w", req.ZoneID, req.SiteID, domain.ErrNotFound)
	}

	var code string
	for i := 0; i < 20 && code == ""; i++ {
		candidate := s.ids.NewCode(guestCodePrefix)
		exists, err := s.guests.CodeExists(ctx, candidate)
		if err != nil {
			return nil, fmt.Errorf("failed to check guest code: %w", err)
		}
		if !exists {
			code = candidate
		}
	}
	if code == "" {
		return nil, fmt.Errorf("could not allocate a unique guest code")
	}

	gr := &domain.GuestReservation{
		ID:         s.ids.NewID("gr"),
		GuestID:    guest.ID,
		HostUserID: req.HostUserID,
		SiteID:     req.SiteID,
		ZoneID:     req.ZoneID,
		BayID:      req.BayID,
		StartAt:    req.StartAt,
		EndAt:      req.EndAt,
		Status:     domain.ReservationStatusRequested,
		Code:       code,
		Urgent:     req.Urgent,
	}
	if err := s.guests.CreateReservation(ctx, gr); err != nil {
		return nil, fmt.Errorf("failed to save guest reservation: %w", err)
	}

	guest.MonthlyReservations++
	if err := s.guests.SaveGuest(ctx, guest); err != nil {
		s.log.Warn("Failed to update guest counter", zap.String("guest_id", guest.ID), zap.Error(err))
	}

	s.log.Info("Guest reservation created",
		zap.String("guest_reservation_id", gr.ID),
		zap.String("guest_id", guest.ID),
		zap.String("code", code),
	)
	return gr, nil
}
