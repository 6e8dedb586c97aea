package ports

import (
	"context"

	"github.com/seu-repo/sigec-site/internal/domain"
)

// Repositories return (nil, nil) when an entity does not exist. Saves of
// versioned entities (Reservation, Session) fail with domain.ErrConcurrentUpdate
// when the stored version moved since the entity was read. Create rejects an
// existing id with domain.ErrAlreadyExists; Save on the unversioned fleet
// entities updates and fails with domain.ErrNotFound for an unknown id.

type SiteRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Site, error)
	FindAll(ctx context.Context) ([]domain.Site, error)
	FindZone(ctx context.Context, id string) (*domain.Zone, error)
	FindBay(ctx context.Context, id string) (*domain.Bay, error)
	// FindBays lists the bays of a site in seed order; an empty zoneID matches every zone.
	FindBays(ctx context.Context, siteID, zoneID string) ([]domain.Bay, error)
}

type ChargerRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Charger, error)
	FindBySite(ctx context.Context, siteID string) ([]domain.Charger, error)
	UpdateStatus(ctx context.Context, id string, status domain.ChargerStatus) error
	AppendError(ctx context.Context, id string, message string) error
}

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
}

type VehicleRepository interface {
	Create(ctx context.Context, v *domain.Vehicle) error
	Save(ctx context.Context, v *domain.Vehicle) error
	FindByID(ctx context.Context, id string) (*domain.Vehicle, error)
	FindByOwner(ctx context.Context, userID string) ([]domain.Vehicle, error)
	Delete(ctx context.Context, id string) error
}

type ReservationRepository interface {
	Save(ctx context.Context, r *domain.Reservation) error
	FindByID(ctx context.Context, id string) (*domain.Reservation, error)
	// FindByCode matches the kiosk code case-insensitively.
	FindByCode(ctx context.Context, code string) (*domain.Reservation, error)
	Find(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error)
}

type SessionRepository interface {
	Save(ctx context.Context, s *domain.Session) error
	FindByID(ctx context.Context, id string) (*domain.Session, error)
	FindActiveByReservation(ctx context.Context, reservationID string) (*domain.Session, error)
	FindActiveByBay(ctx context.Context, bayID string) (*domain.Session, error)
	// FindBySite lists sessions of a site; an empty status matches all.
	FindBySite(ctx context.Context, siteID string, status domain.SessionStatus) ([]domain.Session, error)
	FindAll(ctx context.Context) ([]domain.Session, error)
}

type PolicyRepository interface {
	FindEnergyPolicy(ctx context.Context, siteID string) (*domain.EnergyPolicy, error)
	SaveEnergyPolicy(ctx context.Context, p *domain.EnergyPolicy) error
	FindPricingPolicy(ctx context.Context, siteID string) (*domain.PricingPolicy, error)
}

type SuspensionRepository interface {
	FindByUserID(ctx context.Context, userID string) (*domain.UserSuspension, error)
	Save(ctx context.Context, s *domain.UserSuspension) error
	Delete(ctx context.Context, userID string) error
}

type ExpressChargeRepository interface {
	Create(ctx context.Context, e *domain.ExpressCharge) error
	Save(ctx context.Context, e *domain.ExpressCharge) error
	FindByID(ctx context.Context, id string) (*domain.ExpressCharge, error)
	FindActiveByBay(ctx context.Context, bayID string) (*domain.ExpressCharge, error)
}

type GuestRepository interface {
	CreateGuest(ctx context.Context, g *domain.Guest) error
	SaveGuest(ctx context.Context, g *domain.Guest) error
	FindGuest(ctx context.Context, id string) (*domain.Guest, error)
	FindGuestsByHost(ctx context.Context, hostUserID string) ([]domain.Guest, error)
	CreateReservation(ctx context.Context, r *domain.GuestReservation) error
	CodeExists(ctx context.Context, code string) (bool, error)
}

type ReportRepository interface {
	Create(ctx context.Context, r *domain.UserReport) error
	FindByID(ctx context.Context, id string) (*domain.UserReport, error)
	FindAll(ctx context.Context) ([]domain.UserReport, error)
}

type TicketRepository interface {
	Create(ctx context.Context, t *domain.Ticket) error
	Save(ctx context.Context, t *domain.Ticket) error
	FindByID(ctx context.Context, id string) (*domain.Ticket, error)
	FindBySite(ctx context.Context, siteID string) ([]domain.Ticket, error)
}
