package fleet

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/seu-repo/sigec-site/internal/domain"
	"github.com/seu-repo/sigec-site/internal/ports"
)

// OpenTicket opens a maintenance ticket and takes the charger out of service
func (s *Service) OpenTicket(ctx context.Context, t domain.Ticket) (*domain.Ticket, error) {
	if t.IssueType == "" {
		return nil, fmt.Errorf("issue type is required: %w", domain.ErrValidation)
	}
	if t.Severity.SLA() == 0 {
		return nil, fmt.Errorf("unknown severity %q: %w", t.Severity, domain.ErrValidation)
	}
	charger, err := s.chargers.FindByID(ctx, t.ChargerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get charger: %w", err)
	}
	if charger == nil {
		return nil, fmt.Errorf("charger %s: %w", t.ChargerID, domain.ErrNotFound)
	}

	now := s.clock.Now()
	t.ID = s.ids.NewID("t")
	t.SiteID = charger.SiteID
	if t.BayID == "" {
		t.BayID = charger.BayID
	}
	t.Status = domain.TicketStatusOpen
	t.OpenedAt = now
	t.SLADue = now.Add(t.Severity.SLA())
	t.ResolvedAt = nil

	if err := s.tickets.Create(ctx, &t); err != nil {
		return nil, fmt.Errorf("failed to save ticket: %w", err)
	}
	if err := s.chargers.UpdateStatus(ctx, charger.ID, domain.ChargerStatusFaulted); err != nil {
		return nil, fmt.Errorf("failed to mark charger faulted: %w", err)
	}
	if err := s.chargers.AppendError(ctx, charger.ID, t.IssueType); err != nil {
		s.log.Warn("Failed to log charger error", zap.String("charger_id", charger.ID), zap.Error(err))
	}

	s.log.Info("Ticket opened",
		zap.String("ticket_id", t.ID),
		zap.String("charger_id", t.ChargerID),
		zap.String("severity", string(t.Severity)),
	)
	s.publish(ctx, ports.TopicTicketOpened, t)
	return &t, nil
}

// UpdateTicketStatus moves a ticket. Resolving it returns the charger to service.
func (s *Service) UpdateTicketStatus(ctx context.Context, id string, status domain.TicketStatus, assigneeID string) (*domain.Ticket, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("unknown ticket status %q: %w", status, domain.ErrValidation)
	}
	t, err := s.tickets.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	if t == nil {
		return nil, fmt.Errorf("ticket %s: %w", id, domain.ErrNotFound)
	}
	if t.Status == domain.TicketStatusResolved {
		return nil, fmt.Errorf("ticket %s is already resolved: %w", id, domain.ErrInvalidTransition)
	}

	t.Status = status
	if assigneeID != "" {
		t.AssigneeID = assigneeID
	}
	if status == domain.TicketStatusResolved {
		now := s.clock.Now()
		t.ResolvedAt = &now
	}
	if err := s.tickets.Save(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to save ticket: %w", err)
	}
	if status == domain.TicketStatusResolved {
		if err := s.chargers.UpdateStatus(ctx, t.ChargerID, domain.ChargerStatusAvailable); err != nil {
			return nil, fmt.Errorf("failed to return charger to service: %w", err)
		}
	}

	s.log.Info("Ticket updated", zap.String("ticket_id", id), zap.String("status", string(status)))
	s.publish(ctx, ports.TopicTicketUpdated, t)
	return t, nil
}

// ListTickets lists tickets of a site, or all tickets for an empty site
func (s *Service) ListTickets(ctx context.Context, siteID string) ([]domain.Ticket, error) {
	return s.tickets.FindBySite(ctx, siteID)
}
