package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/seu-repo/sigec-site/internal/domain"
)

// upsert replaces the element matching id or appends v.
func upsert[T any](items []T, v T, same func(*T) bool) []T {
	if cur, _ := find(items, same); cur != nil {
		*cur = v
		return items
	}
	return append(items, v)
}

// insert appends v, refusing an id already present.
func insert[T any](items []T, v T, id string, same func(*T) bool) ([]T, error) {
	if cur, _ := find(items, same); cur != nil {
		return items, fmt.Errorf("%s: %w", id, domain.ErrAlreadyExists)
	}
	return append(items, v), nil
}

// replace overwrites the element matching id, which must exist.
func replace[T any](items []T, v T, id string, same func(*T) bool) error {
	cur, _ := find(items, same)
	if cur == nil {
		return fmt.Errorf("%s: %w", id, domain.ErrNotFound)
	}
	*cur = v
	return nil
}

type VehicleRepository struct{ db *DB }

func NewVehicleRepository(db *DB) *VehicleRepository { return &VehicleRepository{db: db} }

func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) error {
	return r.db.write(ctx, func(s *domain.Snapshot) (err error) {
		s.Vehicles, err = insert(s.Vehicles, *v, "vehicle "+v.ID, func(x *domain.Vehicle) bool { return x.ID == v.ID })
		return err
	})
}

func (r *VehicleRepository) Save(ctx context.Context, v *domain.Vehicle) error {
	return r.db.write(ctx, func(s *domain.Snapshot) error {
		return replace(s.Vehicles, *v, "vehicle "+v.ID, func(x *domain.Vehicle) bool { return x.ID == v.ID })
	})
}

func (r *VehicleRepository) FindByID(ctx context.Context, id string) (v *domain.Vehicle, err error) {
	r.db.read(func(s *domain.Snapshot) {
		found, _ := find(s.Vehicles, func(x *domain.Vehicle) bool { return x.ID == id })
		v = copyOf(found)
	})
	return v, nil
}

func (r *VehicleRepository) FindByOwner(ctx context.Context, userID string) (out []domain.Vehicle, err error) {
	r.db.read(func(s *domain.Snapshot) {
		out = filter(s.Vehicles, func(x *domain.Vehicle) bool { return x.OwnerUserID == userID })
	})
	return out, nil
}

func (r *VehicleRepository) Delete(ctx context.Context, id string) error {
	return r.db.write(ctx, func(s *domain.Snapshot) error {
		_, i := find(s.Vehicles, func(x *domain.Vehicle) bool { return x.ID == id })
		if i < 0 {
			return fmt.Errorf("vehicle %s: %w", id, domain.ErrNotFound)
		}
		s.Vehicles = append(s.Vehicles[:i:i], s.Vehicles[i+1:]...)
		return nil
	})
}

type SuspensionRepository struct{ db *DB }

func NewSuspensionRepository(db *DB) *SuspensionRepository { return &SuspensionRepository{db: db} }

func (r *SuspensionRepository) FindByUserID(ctx context.Context, userID string) (out *domain.UserSuspension, err error) {
	r.db.read(func(s *domain.Snapshot) {
		v, _ := find(s.Suspensions, func(x *domain.UserSuspension) bool { return x.UserID == userID })
		out = copyOf(v)
	})
	return out, nil
}

func (r *SuspensionRepository) Save(ctx context.Context, us *domain.UserSuspension) error {
	return r.db.write(ctx, func(s *domain.Snapshot) error {
		s.Suspensions = upsert(s.Suspensions, *us, func(x *domain.UserSuspension) bool { return x.UserID == us.UserID })
		return nil
	})
}

// Delete is a no-op for users without a record.
func (r *SuspensionRepository) Delete(ctx context.Context, userID string) error {
	return r.db.write(ctx, func(s *domain.Snapshot) error {
		if _, i := find(s.Suspensions, func(x *domain.UserSuspension) bool { return x.UserID == userID }); i >= 0 {
			s.Suspensions = append(s.Suspensions[:i:i], s.Suspensions[i+1:]...)
		}
		return nil
	})
}

type ExpressChargeRepository struct{ db *DB }

func NewExpressChargeRepository(db *DB) *ExpressChargeRepository {
	return &ExpressChargeRepository{db: db}
}

func (r *ExpressChargeRepository) Create(ctx context.Context, e *domain.ExpressCharge) error {
	return r.db.write(ctx, func(s *domain.Snapshot) (err error) {
		s.ExpressCharges, err = insert(s.ExpressCharges, *e, "express charge "+e.ID, func(x *domain.ExpressCharge) bool { return x.ID == e.ID })
		return err
	})
}

func (r *ExpressChargeRepository) Save(ctx context.Context, e *domain.ExpressCharge) error {
	return r.db.write(ctx, func(s *domain.Snapshot) error {
		return replace(s.ExpressCharges, *e, "express charge "+e.ID, func(x *domain.ExpressCharge) bool { return x.ID == e.ID })
	})
}

func (r *ExpressChargeRepository) FindByID(ctx context.Context, id string) (out *domain.ExpressCharge, err error) {
	r.db.read(func(s *domain.Snapshot) {
		v, _ := find(s.ExpressCharges, func(x *domain.ExpressCharge) bool { return x.ID == id })
		out = copyOf(v)
	})
	return out, nil
}

func (r *ExpressChargeRepository) FindActiveByBay(ctx context.Context, bayID string) (out *domain.ExpressCharge, err error) {
	r.db.read(func(s *domain.Snapshot) {
		v, _ := find(s.ExpressCharges, func(x *domain.ExpressCharge) bool {
			return x.BayID == bayID && x.Status == domain.ExpressStatusActive
		})
		out = copyOf(v)
	})
	return out, nil
}

type GuestRepository struct{ db *DB }

func NewGuestRepository(db *DB) *GuestRepository { return &GuestRepository{db: db} }

func (r *GuestRepository) CreateGuest(ctx context.Context, g *domain.Guest) error {
	return r.db.write(ctx, func(s *domain.Snapshot) (err error) {
		s.Guests, err = insert(s.Guests, *g, "guest "+g.ID, func(x *domain.Guest) bool { return x.ID == g.ID })
		return err
	})
}

func (r *GuestRepository) SaveGuest(ctx context.Context, g *domain.Guest) error {
	return r.db.write(ctx, func(s *domain.Snapshot) error {
		return replace(s.Guests, *g, "guest "+g.ID, func(x *domain.Guest) bool { return x.ID == g.ID })
	})
}

func (r *GuestRepository) FindGuest(ctx context.Context, id string) (out *domain.Guest, err error) {
	r.db.read(func(s *domain.Snapshot) {
		v, _ := find(s.Guests, func(x *domain.Guest) bool { return x.ID == id })
		out = copyOf(v)
	})
	return out, nil
}

func (r *GuestRepository) FindGuestsByHost(ctx context.Context, hostUserID string) (out []domain.Guest, err error) {
	r.db.read(func(s *domain.Snapshot) {
		out = filter(s.Guests, func(x *domain.Guest) bool { return x.HostUserID == hostUserID })
	})
	return out, nil
}

func (r *GuestRepository) CreateReservation(ctx context.Context, gr *domain.GuestReservation) error {
	return r.db.write(ctx, func(s *domain.Snapshot) (err error) {
		s.GuestReservations, err = insert(s.GuestReservations, *gr, "guest reservation "+gr.ID, func(x *domain.GuestReservation) bool { return x.ID == gr.ID })
		return err
	})
}

func (r *GuestRepository) CodeExists(ctx context.Context, code string) (exists bool, err error) {
	r.db.read(func(s *domain.Snapshot) {
		v, _ := find(s.GuestReservations, func(x *domain.GuestReservation) bool { return strings.EqualFold(x.Code, code) })
		exists = v != nil
	})
	return exists, nil
}

type ReportRepository struct{ db *DB }

func NewReportRepository(db *DB) *ReportRepository { return &ReportRepository{db: db} }

func (r *ReportRepository) Create(ctx context.Context, rep *domain.UserReport) error {
	return r.db.write(ctx, func(s *domain.Snapshot) (err error) {
		s.Reports, err = insert(s.Reports, *rep, "report "+rep.ID, func(x *domain.UserReport) bool { return x.ID == rep.ID })
		return err
	})
}

func (r *ReportRepository) FindByID(ctx context.Context, id string) (out *domain.UserReport, err error) {
	r.db.read(func(s *domain.Snapshot) {
		v, _ := find(s.Reports, func(x *domain.UserReport) bool { return x.ID == id })
		out = copyOf(v)
	})
	return out, nil
}

func (r *ReportRepository) FindAll(ctx context.Context) (out []domain.UserReport, err error) {
	r.db.read(func(s *domain.Snapshot) { out = clone(s.Reports) })
	return out, nil
}

type TicketRepository struct{ db *DB }

func NewTicketRepository(db *DB) *TicketRepository { return &TicketRepository{db: db} }

func (r *TicketRepository) Create(ctx context.Context, t *domain.Ticket) error {
	return r.db.write(ctx, func(s *domain.Snapshot) (err error) {
		s.Tickets, err = insert(s.Tickets, *t, "ticket "+t.ID, func(x *domain.Ticket) bool { return x.ID == t.ID })
		return err
	})
}

func (r *TicketRepository) Save(ctx context.Context, t *domain.Ticket) error {
	return r.db.write(ctx, func(s *domain.Snapshot) error {
		return replace(s.Tickets, *t, "ticket "+t.ID, func(x *domain.Ticket) bool { return x.ID == t.ID })
	})
}

func (r *TicketRepository) FindByID(ctx context.Context, id string) (out *domain.Ticket, err error) {
	r.db.read(func(s *domain.Snapshot) {
		v, _ := find(s.Tickets, func(x *domain.Ticket) bool { return x.ID == id })
		out = copyOf(v)
	})
	return out, nil
}

func (r *TicketRepository) FindBySite(ctx context.Context, siteID string) (out []domain.Ticket, err error) {
	r.db.read(func(s *domain.Snapshot) {
		out = filter(s.Tickets, func(x *domain.Ticket) bool { return siteID == "" || x.SiteID == siteID })
	})
	return out, nil
}
