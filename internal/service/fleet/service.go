package fleet

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/seu-repo/sigec-site/internal/domain"
	"github.com/seu-repo/sigec-site/internal/ports"
)

// ReservationCanceler cancels a reservation, accruing the owner's point
type ReservationCanceler interface {
	CancelReservation(ctx context.Context, id string, reason string) (*domain.Reservation, error)
}

// Service manages the supporting records around reservations: vehicles,
// guests, user reports and maintenance tickets.
type Service struct {
	users    ports.UserRepository
	vehicles ports.VehicleRepository
	guests   ports.GuestRepository
	reports  ports.ReportRepository
	tickets  ports.TicketRepository
	sites    ports.SiteRepository
	chargers ports.ChargerRepository
	canceler ReservationCanceler
	events   ports.EventPublisher
	clock    ports.Clock
	ids      ports.IDGenerator
	log      *zap.Logger
}

func NewService(
	users ports.UserRepository,
	vehicles ports.VehicleRepository,
	guests ports.GuestRepository,
	reports ports.ReportRepository,
	tickets ports.TicketRepository,
	sites ports.SiteRepository,
	chargers ports.ChargerRepository,
	canceler ReservationCanceler,
	events ports.EventPublisher,
	clock ports.Clock,
	ids ports.IDGenerator,
	log *zap.Logger,
) *Service {
	return &Service{
		users:    users,
		vehicles: vehicles,
		guests:   guests,
		reports:  reports,
		tickets:  tickets,
		sites:    sites,
		chargers: chargers,
		canceler: canceler,
		events:   events,
		clock:    clock,
		ids:      ids,
		log:      log,
	}
}

func (s *Service) getUser(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	return u, nil
}

func (s *Service) publish(ctx context.Context, topic string, payload interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, topic, payload); err != nil {
		s.log.Warn("Failed to publish event", zap.String("topic", topic), zap.Error(err))
	}
}
