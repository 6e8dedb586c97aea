package energy

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/seu-repo/sigec-site/internal/domain"
	"github.com/seu-repo/sigec-site/internal/observability/telemetry"
	"github.com/seu-repo/sigec-site/internal/policy"
	"github.com/seu-repo/sigec-site/internal/ports"
)

// Service computes power distribution and site indicators. Allocation is a
// stateless query over the current sessions; nothing is cached.
type Service struct {
	sites        ports.SiteRepository
	sessions     ports.SessionRepository
	chargers     ports.ChargerRepository
	vehicles     ports.VehicleRepository
	policies     ports.PolicyRepository
	reservations ports.ReservationRepository
	clock        ports.Clock
	log          *zap.Logger
}

func NewService(
	sites ports.SiteRepository,
	sessions ports.SessionRepository,
	chargers ports.ChargerRepository,
	vehicles ports.VehicleRepository,
	policies ports.PolicyRepository,
	reservations ports.ReservationRepository,
	clock ports.Clock,
	log *zap.Logger,
) *Service {
	return &Service{
		sites:        sites,
		sessions:     sessions,
		chargers:     chargers,
		vehicles:     vehicles,
		policies:     policies,
		reservations: reservations,
		clock:        clock,
		log:          log,
	}
}

// AllocatePower splits the site cap evenly across its active sessions
func (s *Service) AllocatePower(ctx context.Context, siteID string) (*domain.DLMSnapshot, error) {
	if _, err := s.getSite(ctx, siteID); err != nil {
		return nil, err
	}

	capKW, err := s.siteCap(ctx, siteID)
	if err != nil {
		return nil, err
	}

	active, err := s.sessions.FindBySite(ctx, siteID, domain.SessionStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list active sessions: %w", err)
	}

	demands := make([]policy.PowerDemand, 0, len(active))
	for _, sess := range active {
		d := policy.PowerDemand{
			SessionID: sess.ID,
			BayID:     sess.BayID,
			ChargerID: sess.ChargerID,
			VehicleID: sess.VehicleID,
		}
		if sess.ChargerID != "" {
			charger, err := s.chargers.FindByID(ctx, sess.ChargerID)
			if err != nil {
				return nil, fmt.Errorf("failed to get charger: %w", err)
			}
			if charger != nil {
				d.ChargerKW = charger.PowerKW
			}
		}
		vehicle, err := s.vehicles.FindByID(ctx, sess.VehicleID)
		if err != nil {
			return nil, fmt.Errorf("failed to get vehicle: %w", err)
		}
		if vehicle != nil {
			d.VehicleKW = vehicle.TypicalChargeKW
		}
		demands = append(demands, d)
	}

	snap := policy.AllocatePower(siteID, capKW, demands)
	telemetry.DLMThrottledSessions.WithLabelValues(siteID).Set(float64(snap.ThrottledCount))

	s.log.Debug("Power allocated",
		zap.String("site_id", siteID),
		zap.Float64("cap_kw", capKW),
		zap.Int("sessions", len(demands)),
		zap.Float64("assigned_kw", snap.TotalAssignedKW),
		zap.Int("throttled", snap.ThrottledCount),
	)
	return &snap, nil
}

func (s *Service) siteCap(ctx context.Context, siteID string) (float64, error) {
	p, err := s.policies.FindEnergyPolicy(ctx, siteID)
	if err != nil {
		return 0, fmt.Errorf("failed to get energy policy: %w", err)
	}
	if p == nil {
		return policy.DefaultSiteCapKW, nil
	}
	return p.CapacityCapKW, nil
}

// SiteKPIs summarises a site for the operations dashboard. "Today" is the
// calendar day in the site's timezone.
func (s *Service) SiteKPIs(ctx context.Context, siteID string) (*domain.SiteKPIs, error) {
	site, err := s.getSite(ctx, siteID)
	if err != nil {
		return nil, err
	}

	dlm, err := s.AllocatePower(ctx, siteID)
	if err != nil {
		return nil, err
	}

	sessions, err := s.sessions.FindBySite(ctx, siteID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	delivered := make([]float64, 0, len(sessions))
	active := 0
	for _, sess := range sessions {
		if sess.IsActive() {
			active++
		} else {
			delivered = append(delivered, sess.KWh)
		}
	}

	chargers, err := s.chargers.FindBySite(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chargers: %w", err)
	}
	kpis := &domain.SiteKPIs{
		SiteID:             siteID,
		ActiveSessions:     active,
		CapacityCapKW:      dlm.SiteCapKW,
		AssignedKW:         dlm.TotalAssignedKW,
		RenewablePercent:   site.RenewablePercent,
		EnergyDeliveredKWh: floats.Sum(delivered),
	}
	for _, c := range chargers {
		switch c.Status {
		case domain.ChargerStatusAvailable:
			kpis.AvailableChargers++
		case domain.ChargerStatusFaulted:
			kpis.FaultedChargers++
		}
	}

	loc := time.UTC
	if l, err := time.LoadLocation(site.Timezone); err == nil {
		loc = l
	}
	now := s.clock.Now().In(loc)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	rs, err := s.reservations.Find(ctx, domain.ReservationFilter{SiteID: siteID})
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	for i := range rs {
		if rs[i].Status != domain.ReservationStatusCanceled && rs[i].Overlaps(dayStart, dayEnd) {
			kpis.ReservationsToday++
		}
	}
	return kpis, nil
}

// GetEnergyPolicy returns the site's policy, or the defaults when it has none
func (s *Service) GetEnergyPolicy(ctx context.Context, siteID string) (*domain.EnergyPolicy, error) {
	if _, err := s.getSite(ctx, siteID); err != nil {
		return nil, err
	}
	p, err := s.policies.FindEnergyPolicy(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get energy policy: %w", err)
	}
	if p == nil {
		p = defaultPolicy(siteID)
	}
	return p, nil
}

// UpdateEnergyPolicy applies a partial update to the site's policy
func (s *Service) UpdateEnergyPolicy(ctx context.Context, siteID string, patch domain.EnergyPolicyPatch) (*domain.EnergyPolicy, error) {
	if patch.CapacityCapKW != nil && *patch.CapacityCapKW <= 0 {
		return nil, fmt.Errorf("capacity cap must be positive: %w", domain.ErrValidation)
	}
	if patch.GraceMinutes != nil && *patch.GraceMinutes < 0 {
		return nil, fmt.Errorf("grace minutes must not be negative: %w", domain.ErrValidation)
	}
	if patch.BufferMinutes != nil && *patch.BufferMinutes < 0 {
		return nil, fmt.Errorf("buffer minutes must not be negative: %w", domain.ErrValidation)
	}

	p, err := s.GetEnergyPolicy(ctx, siteID)
	if err != nil {
		return nil, err
	}
	patch.Apply(p)

	if err := s.policies.SaveEnergyPolicy(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to save energy policy: %w", err)
	}

	s.log.Info("Energy policy updated",
		zap.String("site_id", siteID),
		zap.Float64("cap_kw", p.CapacityCapKW),
		zap.Int("grace_minutes", p.GraceMinutes),
	)
	return p, nil
}

// GetPricingPolicy returns the site's tariff or nil when it has none
func (s *Service) GetPricingPolicy(ctx context.Context, siteID string) (*domain.PricingPolicy, error) {
	return s.policies.FindPricingPolicy(ctx, siteID)
}

func (s *Service) getSite(ctx context.Context, siteID string) (*domain.Site, error) {
	site, err := s.sites.FindByID(ctx, siteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get site: %w", err)
	}
	if site == nil {
		return nil, fmt.Errorf("site %s: %w", siteID, domain.ErrNotFound)
	}
	return site, nil
}

func defaultPolicy(siteID string) *domain.EnergyPolicy {
	return &domain.EnergyPolicy{
		SiteID:        siteID,
		CapacityCapKW: policy.DefaultSiteCapKW,
		GraceMinutes:  policy.DefaultGraceMinutes,
		QueuePolicy:   domain.QueuePolicyFIFO,
	}
}
