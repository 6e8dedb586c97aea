package session

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/sigec-site/internal/domain"
	"github.com/seu-repo/sigec-site/internal/observability/telemetry"
	"github.com/seu-repo/sigec-site/internal/policy"
	"github.com/seu-repo/sigec-site/internal/ports"
	"github.com/seu-repo/sigec-site/internal/service/sitelock"
)

// SuspensionChecker answers whether a user is currently suspended
type SuspensionChecker interface {
	IsSuspended(ctx context.Context, userID string) (bool, error)
}

// Service implements the session half of the state machine
type Service struct {
	repo         ports.SessionRepository
	reservations ports.ReservationRepository
	sites        ports.SiteRepository
	chargers     ports.ChargerRepository
	policies     ports.PolicyRepository
	express      ports.ExpressChargeRepository
	suspensions  SuspensionChecker
	events       ports.EventPublisher
	clock        ports.Clock
	ids          ports.IDGenerator
	locks        *sitelock.Locker
	config       *domain.ChargingConfig
	log          *zap.Logger
}

// NewService creates a new session service
func NewService(
	repo ports.SessionRepository,
	reservations ports.ReservationRepository,
	sites ports.SiteRepository,
	chargers ports.ChargerRepository,
	policies ports.PolicyRepository,
	express ports.ExpressChargeRepository,
	suspensions SuspensionChecker,
	events ports.EventPublisher,
	clock ports.Clock,
	ids ports.IDGenerator,
	locks *sitelock.Locker,
	config *domain.ChargingConfig,
	log *zap.Logger,
) *Service {
	if config == nil {
		config = domain.DefaultChargingConfig()
	}
	if locks == nil {
		locks = sitelock.New()
	}

	return &Service{
		repo:         repo,
		reservations: reservations,
		sites:        sites,
		chargers:     chargers,
		policies:     policies,
		express:      express,
		suspensions:  suspensions,
		events:       events,
		clock:        clock,
		ids:          ids,
		locks:        locks,
		config:       config,
		log:          log,
	}
}

// StartSession activates a confirmed reservation. When the reservation has no
// bay, the first assignable and unoccupied bay of its zone is taken.
func (s *Service) StartSession(ctx context.Context, reservationID string) (*domain.Session, error) {
	r, err := s.getReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(sitelock.Site(r.SiteID))
	defer unlock()

	if r, err = s.getReservation(ctx, reservationID); err != nil {
		return nil, err
	}
	if r.Status != domain.ReservationStatusConfirmed {
		return nil, fmt.Errorf("cannot start session for reservation in status %s: %w", r.Status, domain.ErrInvalidTransition)
	}

	bay, err := s.resolveBay(ctx, r)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	sess := &domain.Session{
		ID:            s.ids.NewID("s"),
		ReservationID: r.ID,
		ChargerID:     bay.ChargerID,
		BayID:         bay.ID,
		UserID:        r.UserID,
		VehicleID:     r.VehicleID,
		SiteID:        r.SiteID,
		StartAt:       now,
		KWh:           s.config.StartKWh,
		Status:        domain.SessionStatusActive,
		IdleMinutes:   0,
	}

	r.Status = domain.ReservationStatusActive
	r.BayID = bay.ID
	r.UpdatedAt = now
	if err := s.reservations.Save(ctx, r); err != nil {
		return nil, fmt.Errorf("failed to activate reservation: %w", err)
	}
	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	s.setChargerStatus(ctx, bay.ChargerID, domain.ChargerStatusInUse)

	telemetry.ActiveChargingSessions.WithLabelValues(sess.SiteID).Inc()
	telemetry.ReservationTransitionsTotal.WithLabelValues(string(r.Status)).Inc()
	s.log.Info("Session started",
		zap.String("session_id", sess.ID),
		zap.String("reservation_id", r.ID),
		zap.String("bay_id", bay.ID),
		zap.String("charger_id", bay.ChargerID),
	)
	s.publish(ctx, ports.TopicSessionStarted, sess)
	return sess, nil
}

func (s *Service) resolveBay(ctx context.Context, r *domain.Reservation) (*domain.Bay, error) {
	if r.BayID != "" {
		bay, err := s.sites.FindBay(ctx, r.BayID)
		if err != nil {
			return nil, fmt.Errorf("failed to get bay: %w", err)
		}
		if bay == nil {
			return nil, fmt.Errorf("bay %s: %w", r.BayID, domain.ErrNotFound)
		}
		ok, err := s.bayAssignable(ctx, bay)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("bay %s is occupied or out of service: %w", bay.ID, domain.ErrBayConflict)
		}
		return bay, nil
	}

	bays, err := s.sites.FindBays(ctx, r.SiteID, r.ZoneID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bays: %w", err)
	}
	for i := range bays {
		ok, err := s.bayAssignable(ctx, &bays[i])
		if err != nil {
			return nil, err
		}
		if ok {
			return &bays[i], nil
		}
	}
	return nil, fmt.Errorf("no free bay in zone %s: %w", r.ZoneID, domain.ErrBayConflict)
}

// bayAssignable reports whether the bay's charger can take a session and no
// session or express charge occupies it.
func (s *Service) bayAssignable(ctx context.Context, bay *domain.Bay) (bool, error) {
	if bay.ChargerID != "" {
		charger, err := s.chargers.FindByID(ctx, bay.ChargerID)
		if err != nil {
			return false, fmt.Errorf("failed to get charger: %w", err)
		}
		if charger != nil && !charger.Assignable() {
			return false, nil
		}
	}
	active, err := s.repo.FindActiveByBay(ctx, bay.ID)
	if err != nil {
		return false, fmt.Errorf("failed to check bay occupancy: %w", err)
	}
	if active != nil {
		return false, nil
	}
	ec, err := s.express.FindActiveByBay(ctx, bay.ID)
	if err != nil {
		return false, fmt.Errorf("failed to check express charges: %w", err)
	}
	return ec == nil, nil
}

// EndSession completes an active session: the flat completion increment is
// added, the cost is priced and the reservation completes.
func (s *Service) EndSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(sitelock.Site(sess.SiteID))
	defer unlock()

	if sess, err = s.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	if !sess.IsActive() {
		return nil, fmt.Errorf("cannot end session in status %s: %w", sess.Status, domain.ErrInvalidTransition)
	}

	now := s.clock.Now()
	sess.EndAt = &now
	sess.KWh += s.config.CompletionKWh
	sess.Status = domain.SessionStatusCompleted

	breakdown, err := s.price(ctx, sess)
	if err != nil {
		return nil, err
	}
	cost := policy.RoundMoney(breakdown.Total)
	sess.Cost = &cost

	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	r, err := s.reservations.FindByID(ctx, sess.ReservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	if r != nil && r.Status == domain.ReservationStatusActive {
		r.Status = domain.ReservationStatusCompleted
		r.UpdatedAt = now
		if err := s.reservations.Save(ctx, r); err != nil {
			return nil, fmt.Errorf("failed to complete reservation: %w", err)
		}
		telemetry.ReservationTransitionsTotal.WithLabelValues(string(r.Status)).Inc()
	}
	s.setChargerStatus(ctx, sess.ChargerID, domain.ChargerStatusAvailable)

	telemetry.ActiveChargingSessions.WithLabelValues(sess.SiteID).Dec()
	telemetry.EnergyDeliveredTotal.WithLabelValues(sess.SiteID).Add(sess.KWh)
	s.log.Info("Session ended",
		zap.String("session_id", sess.ID),
		zap.Float64("kwh", sess.KWh),
		zap.Float64("cost", cost),
	)
	s.publish(ctx, ports.TopicSessionEnded, sess)
	return sess, nil
}

// ReassignBay moves an active session to a free bay of the same site
func (s *Service) ReassignBay(ctx context.Context, sessionID, newBayID string) (*domain.Session, error) {
	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(sitelock.Site(sess.SiteID))
	defer unlock()

	if sess, err = s.GetSession(ctx, sessionID); err != nil {
		return nil, err
	}
	if !sess.IsActive() {
		return nil, fmt.Errorf("cannot reassign session in status %s: %w", sess.Status, domain.ErrInvalidTransition)
	}
	if sess.BayID == newBayID {
		return sess, nil
	}

	bay, err := s.sites.FindBay(ctx, newBayID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bay: %w", err)
	}
	if bay == nil {
		return nil, fmt.Errorf("bay %s: %w", newBayID, domain.ErrNotFound)
	}
	if bay.SiteID != sess.SiteID {
		return nil, fmt.Errorf("bay %s belongs to site %s: %w", bay.ID, bay.SiteID, domain.ErrBayConflict)
	}
	ok, err := s.bayAssignable(ctx, bay)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("bay %s is occupied or out of service: %w", bay.ID, domain.ErrBayConflict)
	}

	oldBayID, oldChargerID := sess.BayID, sess.ChargerID
	sess.BayID = bay.ID
	sess.ChargerID = bay.ChargerID
	if err := s.repo.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	r, err := s.reservations.FindByID(ctx, sess.ReservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	if r != nil {
		r.BayID = bay.ID
		r.UpdatedAt = s.clock.Now()
		if err := s.reservations.Save(ctx, r); err != nil {
			return nil, fmt.Errorf("failed to update reservation bay: %w", err)
		}
	}

	s.setChargerStatus(ctx, oldChargerID, domain.ChargerStatusAvailable)
	s.setChargerStatus(ctx, bay.ChargerID, domain.ChargerStatusInUse)

	s.log.Info("Session reassigned",
		zap.String("session_id", sess.ID),
		zap.String("from_bay", oldBayID),
		zap.String("to_bay", bay.ID),
	)
	s.publish(ctx, ports.TopicSessionReassigned, sess)
	return sess, nil
}

// EndSessionByCode is the kiosk check-out. It reports false when the code is
// unknown or its reservation has no active session.
func (s *Service) EndSessionByCode(ctx context.Context, code string) (bool, *domain.Session, error) {
	r, err := s.reservations.FindByCode(ctx, code)
	if err != nil {
		return false, nil, fmt.Errorf("failed to find reservation by code: %w", err)
	}
	if r == nil {
		return false, nil, nil
	}
	active, err := s.repo.FindActiveByReservation(ctx, r.ID)
	if err != nil {
		return false, nil, fmt.Errorf("failed to find active session: %w", err)
	}
	if active == nil {
		return false, nil, nil
	}

	ended, err := s.EndSession(ctx, active.ID)
	if err != nil {
		return false, nil, err
	}
	return true, ended, nil
}

// EstimateCost prices a session with the tariff in force at its start
func (s *Service) EstimateCost(ctx context.Context, sessionID string) (*domain.CostBreakdown, error) {
	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.price(ctx, sess)
}

func (s *Service) price(ctx context.Context, sess *domain.Session) (*domain.CostBreakdown, error) {
	pricing, err := s.policies.FindPricingPolicy(ctx, sess.SiteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pricing policy: %w", err)
	}
	energy, err := s.policies.FindEnergyPolicy(ctx, sess.SiteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get energy policy: %w", err)
	}
	loc, err := s.siteLocation(ctx, sess.SiteID)
	if err != nil {
		return nil, err
	}

	// a completed session bills only energy delivered after the plug-in
	// reading; a running estimate uses the meter as read
	billed := *sess
	if sess.Status == domain.SessionStatusCompleted {
		billed.KWh = math.Max(0, sess.KWh-s.config.StartKWh)
	}

	b := policy.EstimateSessionCost(&billed, pricing, energy, loc)
	return &b, nil
}

func (s *Service) siteLocation(ctx context.Context, siteID string) (*time.Location, error) {
	site, err := s.sites.FindByID(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get site: %w", err)
	}
	if site == nil || site.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(site.Timezone)
	if err != nil {
		s.log.Warn("Unknown site timezone, pricing in UTC",
			zap.String("site_id", siteID),
			zap.String("timezone", site.Timezone),
		)
		return time.UTC, nil
	}
	return loc, nil
}

// GetSession retrieves a session by ID
func (s *Service) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	sess, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if sess == nil {
		return nil, fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	return sess, nil
}

// ListSessions lists sessions of a site, or all sessions for an empty site
func (s *Service) ListSessions(ctx context.Context, siteID string, status domain.SessionStatus) ([]domain.Session, error) {
	if siteID == "" {
		return s.repo.FindAll(ctx)
	}
	return s.repo.FindBySite(ctx, siteID, status)
}

func (s *Service) getReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	r, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}
	if r == nil {
		return nil, fmt.Errorf("reservation %s: %w", id, domain.ErrNotFound)
	}
	return r, nil
}

// setChargerStatus is informational; failures are logged only.
func (s *Service) setChargerStatus(ctx context.Context, chargerID string, status domain.ChargerStatus) {
	if chargerID == "" {
		return
	}
	charger, err := s.chargers.FindByID(ctx, chargerID)
	if err != nil || charger == nil {
		return
	}
	// faults raised by technicians win over session bookkeeping
	if !charger.Assignable() {
		return
	}
	if err := s.chargers.UpdateStatus(ctx, chargerID, status); err != nil {
		s.log.Warn("Failed to update charger status",
			zap.String("charger_id", chargerID),
			zap.String("status", string(status)),
			zap.Error(err),
		)
	}
}

func (s *Service) publish(ctx context.Context, topic string, payload interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, topic, payload); err != nil {
		s.log.Warn("Failed to publish event", zap.String("topic", topic), zap.Error(err))
	}
}
