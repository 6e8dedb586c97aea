package reservation

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/sigec-site/internal/domain"
	"github.com/seu-repo/sigec-site/internal/observability/telemetry"
	"github.com/seu-repo/sigec-site/internal/policy"
	"github.com/seu-repo/sigec-site/internal/ports"
	"github.com/seu-repo/sigec-site/internal/service/sitelock"
)

const maxCodeAttempts = 20

// InfractionRecorder accrues suspension points
type InfractionRecorder interface {
	RecordInfraction(ctx context.Context, userID string, typ domain.InfractionType, reason, reservationID string) (*domain.UserSuspension, error)
}

// BookRequest carries the input of BookReservation
type BookRequest struct {
	UserID        string               `json:"user_id"`
	VehicleID     string               `json:"vehicle_id"`
	SiteID        string               `json:"site_id"`
	ZoneID        string               `json:"zone_id"`
	BayID         string               `json:"bay_id,omitempty"`
	ConnectorType domain.ConnectorType `json:"connector_type"`
	StartAt       time.Time            `json:"start_at"`
	EndAt         time.Time            `json:"end_at"`
	TargetSoc     int                  `json:"target_soc"`
	Priority      domain.PriorityTier  `json:"priority"`
	Urgent        bool                 `json:"urgent"`
}

// SweepResult lists the reservations moved by SweepExpired
type SweepResult struct {
	NoShows []string `json:"no_shows"`
	Expired []string `json:"expired"`
}

// Service implements the reservation half of the state machine
type Service struct {
	repo        ports.ReservationRepository
	sites       ports.SiteRepository
	users       ports.UserRepository
	vehicles    ports.VehicleRepository
	infractions InfractionRecorder
	events      ports.EventPublisher
	clock       ports.Clock
	ids         ports.IDGenerator
	locks       *sitelock.Locker
	config      *domain.ReservationConfig
	log         *zap.Logger
}

// NewService creates a new reservation service
func NewService(
	repo ports.ReservationRepository,
	sites ports.SiteRepository,
	users ports.UserRepository,
	vehicles ports.VehicleRepository,
	infractions InfractionRecorder,
	events ports.EventPublisher,
	clock ports.Clock,
	ids ports.IDGenerator,
	locks *sitelock.Locker,
	config *domain.ReservationConfig,
	log *zap.Logger,
) *Service {
	if config == nil {
		config = domain.DefaultReservationConfig()
	}
	if locks == nil {
		locks = sitelock.New()
	}

	return &Service{
		repo:        repo,
		sites:       sites,
		users:       users,
		vehicles:    vehicles,
		infractions: infractions,
		events:      events,
		clock:       clock,
		ids:         ids,
		locks:       locks,
		config:      config,
		log:         log,
	}
}

// BookReservation creates a reservation in the requested state. Eligibility
// (suspension, weekly limit) is checked by the caller through CanUserReserve.
func (s *Service) BookReservation(ctx context.Context, req *BookRequest) (*domain.Reservation, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(sitelock.Site(req.SiteID))
	defer unlock()

	vehicle, err := s.checkReferences(ctx, req)
	if err != nil {
		return nil, err
	}

	if req.BayID != "" {
		if err := s.checkBayFree(ctx, req.BayID, "", req.StartAt, req.EndAt); err != nil {
			return nil, err
		}
	}

	code, err := s.uniqueCode(ctx)
	if err != nil {
		return nil, err
	}

	connector := req.ConnectorType
	if connector == "" {
		connector = vehicle.ConnectorType
	}
	priority := req.Priority
	if priority == "" {
		priority = domain.PriorityEmployee
	}

	now := s.clock.Now()
	reservation := &domain.Reservation{
		ID:            s.ids.NewID("r"),
		UserID:        req.UserID,
		VehicleID:     req.VehicleID,
		SiteID:        req.SiteID,
		ZoneID:        req.ZoneID,
		BayID:         req.BayID,
		ConnectorType: connector,
		Status:        domain.ReservationStatusRequested,
		StartAt:       req.StartAt,
		EndAt:         req.EndAt,
		TargetSoc:     req.TargetSoc,
		Priority:      priority,
		Urgent:        req.Urgent,
		Code:          code,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Save(ctx, reservation); err != nil {
		return nil, fmt.Errorf("failed to save reservation: %w", err)
	}

	s.log.Info("Reservation created",
		zap.String("reservation_id", reservation.ID),
		zap.String("user_id", req.UserID),
		zap.String("site_id", req.SiteID),
		zap.String("code", code),
		zap.Time("start_at", req.StartAt),
	)
	s.transitioned(ctx, ports.TopicReservationBooked, reservation)
	return reservation, nil
}

// validateRequest validates a booking request
func (s *Service) validateRequest(req *BookRequest) error {
	if req == nil {
		return fmt.Errorf("booking request is required: %w", domain.ErrValidation)
	}
	if req.UserID == "" || req.VehicleID == "" || req.SiteID == "" || req.ZoneID == "" {
		return fmt.Errorf("user, vehicle, site and zone are required: %w", domain.ErrValidation)
	}
	if err := domain.ValidateWindow(req.StartAt, req.EndAt); err != nil {
		return err
	}
	if s.config.MaxDurationMinutes > 0 && req.EndAt.Sub(req.StartAt) > time.Duration(s.config.MaxDurationMinutes)*time.Minute {
		return fmt.Errorf("maximum duration is %d minutes: %w", s.config.MaxDurationMinutes, domain.ErrTimeWindowInvalid)
	}
	if req.TargetSoc < 0 || req.TargetSoc > 100 {
		return fmt.Errorf("target SoC %d outside 0-100: %w", req.TargetSoc, domain.ErrValidation)
	}
	if req.Priority != "" && req.Priority.Weight() == 0 {
		return fmt.Errorf("unknown priority tier %q: %w", req.Priority, domain.ErrValidation)
	}
	if req.ConnectorType != "" && !req.ConnectorType.Valid() {
		return fmt.Errorf("unknown connector type %q: %w", req.ConnectorType, domain.ErrValidation)
	}
	return nil
}

func (s *Service) checkReferences(ctx context.Context, req *BookRequest) (*domain.Vehicle, error) {
	user, err := s.users.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", req.UserID, domain.ErrNotFound)
	}

	vehicle, err := s.vehicles.FindByID(ctx, req.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, fmt.Errorf("vehicle %s: %w", req.VehicleID, domain.ErrNotFound)
	}

	site, err := s.sites.FindByID(ctx, req.SiteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get site: %w", err)
	}
	if site == nil {
		return nil, fmt.Errorf("site %s: %w", req.SiteID, domain.ErrNotFound)
	}

	zone, err := s.sites.FindZone(ctx, req.ZoneID)
	if err != nil {
		return nil, fmt.Errorf("failed to get zone: %w", err)
	}
	if zone == nil || zone.SiteID != req.SiteID {
		return nil, fmt.Errorf("zone %s in site %s: %w", req.ZoneID, req.SiteID, domain.ErrNotFound)
	}

	if req.BayID != "" {
		bay, err := s.sites.FindBay(ctx, req.BayID)
		if err != nil {
			return nil, fmt.Errorf("failed to get bay: %w", err)
		}
		if bay == nil || bay.SiteID != req.SiteID || bay.ZoneID != req.ZoneID {
			return nil, fmt.Errorf("bay %s in zone %s: %w", req.BayID, req.ZoneID, domain.ErrNotFound)
		}
	}
	return vehicle, nil
}

// checkBayFree rejects windows that overlap another reservation holding the bay.
func (s *Service) checkBayFree(ctx context.Context, bayID, exceptID string, start, end time.Time) error {
	existing, err := s.repo.Find(ctx, domain.ReservationFilter{
		BayID: bayID,
		Statuses: []domain.ReservationStatus{
			domain.ReservationStatusRequested,
			domain.ReservationStatusConfirmed,
			domain.ReservationStatusActive,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to check availability: %w", err)
	}
	for i := range existing {
		r := &existing[i]
		if r.ID != exceptID && r.Overlaps(start, end) {
			return fmt.Errorf("bay %s already reserved by %s: %w", bayID, r.Code, domain.ErrBayConflict)
		}
	}
	return nil
}

func (s *Service) uniqueCode(ctx context.Context) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code := s.ids.NewCode(s.config.CodePrefix)
		existing, err := s.repo.FindByCode(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check code: %w", err)
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not allocate a unique reservation code")
}

// GetReservation retrieves a reservation by ID
func (s *Service) GetReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	if r == nil {
		return nil, fmt.Errorf("reservation %s: %w", id, domain.ErrNotFound)
	}
	return r, nil
}

// ListReservations lists reservations matching the filter
func (s *Service) ListReservations(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error) {
	return s.repo.Find(ctx, filter)
}

// ConfirmReservation moves a requested reservation to confirmed. Any other
// status yields ErrInvalidTransition and leaves the reservation untouched.
func (s *Service) ConfirmReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	r, err := s.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status != domain.ReservationStatusRequested {
		return nil, fmt.Errorf("cannot confirm reservation in status %s: %w", r.Status, domain.ErrInvalidTransition)
	}

	r.Status = domain.ReservationStatusConfirmed
	r.UpdatedAt = s.clock.Now()
	if err := s.repo.Save(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to confirm reservation: %w", err)
	}

	s.log.Info("Reservation confirmed", zap.String("reservation_id", id))
	s.transitioned(ctx, ports.TopicReservationConfirmed, r)
	return r, nil
}

// UpdateReservationWindow reschedules a requested or confirmed reservation
func (s *Service) UpdateReservationWindow(ctx context.Context, id string, start, end time.Time) (*domain.Reservation, error) {
	if err := domain.ValidateWindow(start, end); err != nil {
		return nil, err
	}
	if s.config.MaxDurationMinutes > 0 && end.Sub(start) > time.Duration(s.config.MaxDurationMinutes)*time.Minute {
		return nil, fmt.Errorf("maximum duration is %d minutes: %w", s.config.MaxDurationMinutes, domain.ErrTimeWindowInvalid)
	}

	r, err := s.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(sitelock.Site(r.SiteID))
	defer unlock()

	if r, err = s.GetReservation(ctx, id); err != nil {
		return nil, err
	}
	if !r.IsPending() {
		return nil, fmt.Errorf("cannot reschedule reservation in status %s: %w", r.Status, domain.ErrInvalidTransition)
	}
	if r.BayID != "" {
		if err := s.checkBayFree(ctx, r.BayID, r.ID, start, end); err != nil {
			return nil, err
		}
	}

	r.StartAt = start
	r.EndAt = end
	r.UpdatedAt = s.clock.Now()
	if err := s.repo.Save(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to reschedule reservation: %w", err)
	}

	s.log.Info("Reservation rescheduled",
		zap.String("reservation_id", id),
		zap.Time("start_at", start),
		zap.Time("end_at", end),
	)
	s.publish(ctx, ports.TopicReservationRescheduled, r)
	return r, nil
}

// CancelReservation cancels a requested or confirmed reservation and charges
// the owner one cancellation point. Canceling twice is an invalid transition
// and charges nothing.
func (s *Service) CancelReservation(ctx context.Context, id string, reason string) (*domain.Reservation, error) {
	r, err := s.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(sitelock.Site(r.SiteID))
	defer unlock()

	if r, err = s.GetReservation(ctx, id); err != nil {
		return nil, err
	}
	if !r.CanBeCancelled() {
		return nil, fmt.Errorf("cannot cancel reservation in status %s: %w", r.Status, domain.ErrInvalidTransition)
	}

	r.Status = domain.ReservationStatusCanceled
	r.UpdatedAt = s.clock.Now()
	if err := s.repo.Save(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to cancel reservation: %w", err)
	}

	s.log.Info("Reservation cancelled",
		zap.String("reservation_id", id),
		zap.String("user_id", r.UserID),
		zap.String("reason", reason),
	)
	s.transitioned(ctx, ports.TopicReservationCanceled, r)

	if reason == "" {
		reason = "Reservation " + r.Code + " canceled"
	}
	if _, err := s.infractions.RecordInfraction(ctx, r.UserID, domain.InfractionCancellation, reason, r.ID); err != nil {
		return r, fmt.Errorf("reservation canceled but cancellation point not recorded: %w", err)
	}
	return r, nil
}

// FindReservationByCode looks a reservation up by its kiosk code, ignoring
// case and surrounding whitespace.
func (s *Service) FindReservationByCode(ctx context.Context, code string) (*domain.Reservation, error) {
	r, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to find reservation by code: %w", err)
	}
	if r == nil {
		return nil, fmt.Errorf("reservation code %q: %w", code, domain.ErrNotFound)
	}
	return r, nil
}

// ArrivalsBoard lists the site's pending and active reservations, fleet first
// then by start time.
func (s *Service) ArrivalsBoard(ctx context.Context, siteID string) ([]domain.Reservation, error) {
	site, err := s.sites.FindByID(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get site: %w", err)
	}
	if site == nil {
		return nil, fmt.Errorf("site %s: %w", siteID, domain.ErrNotFound)
	}

	rs, err := s.repo.Find(ctx, domain.ReservationFilter{
		SiteID: siteID,
		Statuses: []domain.ReservationStatus{
			domain.ReservationStatusRequested,
			domain.ReservationStatusConfirmed,
			domain.ReservationStatusActive,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	policy.SortArrivals(rs)
	return rs, nil
}

// SweepExpired closes reservations nobody showed up for. Confirmed
// reservations still unstarted after startAt plus the grace period become
// no-shows and cost the owner a no_show infraction; requested reservations
// whose window has ended become expired.
func (s *Service) SweepExpired(ctx context.Context) (*SweepResult, error) {
	pending, err := s.repo.Find(ctx, domain.ReservationFilter{
		Statuses: []domain.ReservationStatus{
			domain.ReservationStatusRequested,
			domain.ReservationStatusConfirmed,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending reservations: %w", err)
	}

	result := &SweepResult{NoShows: []string{}, Expired: []string{}}
	grace := time.Duration(s.config.NoShowGraceMinutes) * time.Minute

	for i := range pending {
		now := s.clock.Now()
		r := &pending[i]

		var next domain.ReservationStatus
		switch {
		case r.Status == domain.ReservationStatusConfirmed && now.After(r.StartAt.Add(grace)):
			next = domain.ReservationStatusNoShow
		case r.Status == domain.ReservationStatusRequested && !now.Before(r.EndAt):
			next = domain.ReservationStatusExpired
		default:
			continue
		}

		moved, err := s.closeUnattended(ctx, r.ID, r.Status, next)
		if err != nil {
			s.log.Error("Failed to sweep reservation", zap.String("reservation_id", r.ID), zap.Error(err))
			continue
		}
		if !moved {
			continue
		}
		if next == domain.ReservationStatusNoShow {
			result.NoShows = append(result.NoShows, r.ID)
		} else {
			result.Expired = append(result.Expired, r.ID)
		}
	}

	if len(result.NoShows)+len(result.Expired) > 0 {
		s.log.Info("Processed unattended reservations",
			zap.Int("no_shows", len(result.NoShows)),
			zap.Int("expired", len(result.Expired)),
		)
	}
	return result, nil
}

// closeUnattended moves one reservation under the site lock, re-checking that
// it is still in the status the sweep saw.
func (s *Service) closeUnattended(ctx context.Context, id string, from, to domain.ReservationStatus) (bool, error) {
	r, err := s.GetReservation(ctx, id)
	if err != nil {
		return false, err
	}

	unlock := s.locks.Lock(sitelock.Site(r.SiteID))
	defer unlock()

	if r, err = s.GetReservation(ctx, id); err != nil {
		return false, err
	}
	if r.Status != from {
		return false, nil
	}

	r.Status = to
	r.UpdatedAt = s.clock.Now()
	if err := s.repo.Save(ctx, r); err != nil {
		return false, fmt.Errorf("failed to save reservation: %w", err)
	}

	if to == domain.ReservationStatusNoShow {
		s.log.Warn("Reservation marked as no-show",
			zap.String("reservation_id", r.ID),
			zap.String("user_id", r.UserID),
		)
		s.transitioned(ctx, ports.TopicReservationNoShow, r)
		if _, err := s.infractions.RecordInfraction(ctx, r.UserID, domain.InfractionNoShow, "No-show for reservation "+r.Code, r.ID); err != nil {
			s.log.Error("Failed to record no-show point", zap.String("reservation_id", r.ID), zap.Error(err))
		}
		return true, nil
	}

	s.log.Info("Reservation expired", zap.String("reservation_id", r.ID))
	s.transitioned(ctx, ports.TopicReservationExpired, r)
	return true, nil
}

func (s *Service) transitioned(ctx context.Context, topic string, r *domain.Reservation) {
	telemetry.ReservationTransitionsTotal.WithLabelValues(string(r.Status)).Inc()
	s.publish(ctx, topic, r)
}

func (s *Service) publish(ctx context.Context, topic string, payload interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, topic, payload); err != nil {
		s.log.Warn("Failed to publish event", zap.String("topic", topic), zap.Error(err))
	}
}
