package session

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/sigec-site/internal/domain"
	"github.com/seu-repo/sigec-site/internal/ports"
	"github.com/seu-repo/sigec-site/internal/service/sitelock"
)

// ExpressRequest carries the input of StartExpressCharge
type ExpressRequest struct {
	UserID  string `json:"user_id"`
	SiteID  string `json:"site_id"`
	BayID   string `json:"bay_id"`
	Minutes int    `json:"minutes"`
}

// StartExpressCharge occupies a free bay for a walk-up charge of at most
// three hours. Suspended users are rejected.
func (s *Service) StartExpressCharge(ctx context.Context, req *ExpressRequest) (*domain.ExpressCharge, error) {
	if req.UserID == "" || req.SiteID == "" || req.BayID == "" {
		return nil, fmt.Errorf("user, site and bay are required: %w", domain.ErrValidation)
	}
	if req.Minutes <= 0 {
		return nil, fmt.Errorf("duration must be positive: %w", domain.ErrValidation)
	}

	suspended, err := s.suspensions.IsSuspended(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	if suspended {
		return nil, fmt.Errorf("user %s is suspended: %w", req.UserID, domain.ErrPolicyViolation)
	}

	unlock := s.locks.Lock(sitelock.Site(req.SiteID))
	defer unlock()

	bay, err := s.sites.FindBay(ctx, req.BayID)
	if err != nil {
		return nil, fmt.Errorf("failed to get bay: %w", err)
	}
	if bay == nil || bay.SiteID != req.SiteID {
		return nil, fmt.Errorf("bay %s in site %s: %w", req.BayID, req.SiteID, domain.ErrNotFound)
	}
	ok, err := s.bayAssignable(ctx, bay)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("bay %s is occupied or out of service: %w", bay.ID, domain.ErrBayConflict)
	}

	minutes := req.Minutes
	if minutes > domain.MaxExpressMinutes {
		minutes = domain.MaxExpressMinutes
	}
	now := s.clock.Now()
	ec := &domain.ExpressCharge{
		ID:          s.ids.NewID("ec"),
		UserID:      req.UserID,
		SiteID:      req.SiteID,
		BayID:       bay.ID,
		StartAt:     now,
		EndAt:       now.Add(time.Duration(minutes) * time.Minute),
		MaxDuration: minutes,
		Status:      domain.ExpressStatusActive,
	}
	if err := s.express.Create(ctx, ec); err != nil {
		return nil, fmt.Errorf("failed to save express charge: %w", err)
	}
	s.setChargerStatus(ctx, bay.ChargerID, domain.ChargerStatusInUse)

	s.log.Info("Express charge started",
		zap.String("express_id", ec.ID),
		zap.String("user_id", ec.UserID),
		zap.String("bay_id", ec.BayID),
		zap.Int("minutes", minutes),
	)
	s.publish(ctx, ports.TopicExpressStarted, ec)
	return ec, nil
}

// EndExpressCharge completes an active express charge and frees the bay
func (s *Service) EndExpressCharge(ctx context.Context, id string) (*domain.ExpressCharge, error) {
	ec, err := s.express.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get express charge: %w", err)
	}
	if ec == nil {
		return nil, fmt.Errorf("express charge %s: %w", id, domain.ErrNotFound)
	}

	unlock := s.locks.Lock(sitelock.Site(ec.SiteID))
	defer unlock()

	if ec, err = s.express.FindByID(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to get express charge: %w", err)
	}
	if ec.Status != domain.ExpressStatusActive {
		return nil, fmt.Errorf("cannot end express charge in status %s: %w", ec.Status, domain.ErrInvalidTransition)
	}

	ec.Status = domain.ExpressStatusCompleted
	ec.EndAt = s.clock.Now()
	if err := s.express.Save(ctx, ec); err != nil {
		return nil, fmt.Errorf("failed to save express charge: %w", err)
	}

	bay, err := s.sites.FindBay(ctx, ec.BayID)
	if err == nil && bay != nil {
		s.setChargerStatus(ctx, bay.ChargerID, domain.ChargerStatusAvailable)
	}

	s.log.Info("Express charge ended", zap.String("express_id", ec.ID))
	s.publish(ctx, ports.TopicExpressEnded, ec)
	return ec, nil
}
