package memory

import "github.com/seu-repo/sigec-site/internal/ports"

// Repositories bundles every repository backed by one DB.
type Repositories struct {
	Sites        ports.SiteRepository
	Chargers     ports.ChargerRepository
	Users        ports.UserRepository
	Vehicles     ports.VehicleRepository
	Reservations ports.ReservationRepository
	Sessions     ports.SessionRepository
	Policies     ports.PolicyRepository
	Suspensions  ports.SuspensionRepository
	Express      ports.ExpressChargeRepository
	Guests       ports.GuestRepository
	Reports      ports.ReportRepository
	Tickets      ports.TicketRepository
}

// NewRepositories wires all repositories to db.
func NewRepositories(db *DB) *Repositories {
	return &Repositories{
		Sites:        NewSiteRepository(db),
		Chargers:     NewChargerRepository(db),
		Users:        NewUserRepository(db),
		Vehicles:     NewVehicleRepository(db),
		Reservations: NewReservationRepository(db),
		Sessions:     NewSessionRepository(db),
		Policies:     NewPolicyRepository(db),
		Suspensions:  NewSuspensionRepository(db),
		Express:      NewExpressChargeRepository(db),
		Guests:       NewGuestRepository(db),
		Reports:      NewReportRepository(db),
		Tickets:      NewTicketRepository(db),
	}
}
