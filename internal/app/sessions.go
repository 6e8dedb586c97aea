package app

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/seu-repo/sigec-site/internal/domain"
	"github.com/seu-repo/sigec-site/internal/service/session"
)

func (s *Store) StartSession(ctx context.Context, reservationID string) (sess *domain.Session, err error) {
	ctx, span := start(ctx, "StartSession", attribute.String("reservation_id", reservationID))
	defer func() { end(span, err) }()
	return s.sessions.StartSession(ctx, reservationID)
}

func (s *Store) EndSession(ctx context.Context, sessionID string) (sess *domain.Session, err error) {
	ctx, span := start(ctx, "EndSession", attribute.String("session_id", sessionID))
	defer func() { end(span, err) }()
	return s.sessions.EndSession(ctx, sessionID)
}

func (s *Store) ReassignBay(ctx context.Context, sessionID, bayID string) (sess *domain.Session, err error) {
	ctx, span := start(ctx, "ReassignBay",
		attribute.String("session_id", sessionID), attribute.String("bay_id", bayID))
	defer func() { end(span, err) }()
	return s.sessions.ReassignBay(ctx, sessionID, bayID)
}

// EndSessionByCode is the kiosk checkout.
func (s *Store) EndSessionByCode(ctx context.Context, code string) (ok bool, sess *domain.Session, err error) {
	ctx, span := start(ctx, "EndSessionByCode")
	defer func() { end(span, err) }()
	return s.sessions.EndSessionByCode(ctx, code)
}

func (s *Store) EstimateCost(ctx context.Context, sessionID string) (c *domain.CostBreakdown, err error) {
	ctx, span := start(ctx, "EstimateCost", attribute.String("session_id", sessionID))
	defer func() { end(span, err) }()
	return s.sessions.EstimateCost(ctx, sessionID)
}

func (s *Store) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	return s.sessions.GetSession(ctx, id)
}

func (s *Store) ListSessions(ctx context.Context, siteID string, status domain.SessionStatus) ([]domain.Session, error) {
	return s.sessions.ListSessions(ctx, siteID, status)
}

func (s *Store) StartExpressCharge(ctx context.Context, req *session.ExpressRequest) (x *domain.ExpressCharge, err error) {
	ctx, span := start(ctx, "StartExpressCharge",
		attribute.String("user_id", req.UserID), attribute.String("bay_id", req.BayID))
	defer func() { end(span, err) }()
	return s.sessions.StartExpressCharge(ctx, req)
}

func (s *Store) EndExpressCharge(ctx context.Context, id string) (x *domain.ExpressCharge, err error) {
	ctx, span := start(ctx, "EndExpressCharge", attribute.String("express_id", id))
	defer func() { end(span, err) }()
	return s.sessions.EndExpressCharge(ctx, id)
}

func (s *Store) AllocatePower(ctx context.Context, siteID string) (d *domain.DLMSnapshot, err error) {
	ctx, span := start(ctx, "AllocatePower", attribute.String("site_id", siteID))
	defer func() { end(span, err) }()
	return s.energy.AllocatePower(ctx, siteID)
}

func (s *Store) SiteKPIs(ctx context.Context, siteID string) (k *domain.SiteKPIs, err error) {
	ctx, span := start(ctx, "SiteKPIs", attribute.String("site_id", siteID))
	defer func() { end(span, err) }()
	return s.energy.SiteKPIs(ctx, siteID)
}

func (s *Store) GetEnergyPolicy(ctx context.Context, siteID string) (*domain.EnergyPolicy, error) {
	return s.energy.GetEnergyPolicy(ctx, siteID)
}

func (s *Store) UpdateEnergyPolicy(ctx context.Context, siteID string, patch domain.EnergyPolicyPatch) (p *domain.EnergyPolicy, err error) {
	ctx, span := start(ctx, "UpdateEnergyPolicy", attribute.String("site_id", siteID))
	defer func() { end(span, err) }()
	return s.energy.UpdateEnergyPolicy(ctx, siteID, patch)
}

func (s *Store) GetPricingPolicy(ctx context.Context, siteID string) (*domain.PricingPolicy, error) {
	return s.energy.GetPricingPolicy(ctx, siteID)
}
