package memory

import (
	"context"
	"fmt"

	"github.com/seu-repo/sigec-site/internal/domain"
)

// SiteRepository serves sites, zones and bays.
type SiteRepository struct{ db *DB }

func NewSiteRepository(db *DB) *SiteRepository { return &SiteRepository{db: db} }

func (r *SiteRepository) FindByID(ctx context.Context, id string) (site *domain.Site, err error) {
	r.db.read(func(s *domain.Snapshot) {
		v, _ := find(s.Sites, func(x *domain.Site) bool { return x.ID == id })
		site = copyOf(v)
	})
	return site, nil
}

func (r *SiteRepository) FindAll(ctx context.Context) (sites []domain.Site, err error) {
	r.db.read(func(s *domain.Snapshot) { sites = clone(s.Sites) })
	return sites, nil
}

func (r *SiteRepository) FindZone(ctx context.Context, id string) (zone *domain.Zone, err error) {
	r.db.read(func(s *domain.Snapshot) {
		v, _ := find(s.Zones, func(x *domain.Zone) bool { return x.ID == id })
		zone = copyOf(v)
	})
	return zone, nil
}

func (r *SiteRepository) FindBay(ctx context.Context, id string) (bay *domain.Bay, err error) {
	r.db.read(func(s *domain.Snapshot) {
		v, _ := find(s.Bays, func(x *domain.Bay) bool { return x.ID == id })
		bay = copyOf(v)
	})
	return bay, nil
}

func (r *SiteRepository) FindBays(ctx context.Context, siteID, zoneID string) (bays []domain.Bay, err error) {
	r.db.read(func(s *domain.Snapshot) {
		bays = filter(s.Bays, func(x *domain.Bay) bool {
			return x.SiteID == siteID && (zoneID == "" || x.ZoneID == zoneID)
		})
	})
	return bays, nil
}

// ChargerRepository serves chargers.
type ChargerRepository struct{ db *DB }

func NewChargerRepository(db *DB) *ChargerRepository { return &ChargerRepository{db: db} }

func (r *ChargerRepository) FindByID(ctx context.Context, id string) (c *domain.Charger, err error) {
	r.db.read(func(s *domain.Snapshot) {
		v, _ := find(s.Chargers, func(x *domain.Charger) bool { return x.ID == id })
		c = copyOf(v)
	})
	return c, nil
}

func (r *ChargerRepository) FindBySite(ctx context.Context, siteID string) (cs []domain.Charger, err error) {
	r.db.read(func(s *domain.Snapshot) {
		cs = filter(s.Chargers, func(x *domain.Charger) bool { return x.SiteID == siteID })
	})
	return cs, nil
}

func (r *ChargerRepository) UpdateStatus(ctx context.Context, id string, status domain.ChargerStatus) error {
	return r.db.write(ctx, func(s *domain.Snapshot) error {
		c, _ := find(s.Chargers, func(x *domain.Charger) bool { return x.ID == id })
		if c == nil {
			return fmt.Errorf("charger %s: %w", id, domain.ErrNotFound)
		}
		c.Status = status
		return nil
	})
}

// AppendError keeps the five most recent error messages.
func (r *ChargerRepository) AppendError(ctx context.Context, id string, message string) error {
	return r.db.write(ctx, func(s *domain.Snapshot) error {
		c, _ := find(s.Chargers, func(x *domain.Charger) bool { return x.ID == id })
		if c == nil {
			return fmt.Errorf("charger %s: %w", id, domain.ErrNotFound)
		}
		errs := append([]string{message}, c.LastErrors...)
		if len(errs) > 5 {
			errs = errs[:5]
		}
		c.LastErrors = errs
		return nil
	})
}

// UserRepository serves users.
type UserRepository struct{ db *DB }

func NewUserRepository(db *DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) FindByID(ctx context.Context, id string) (u *domain.User, err error) {
	r.db.read(func(s *domain.Snapshot) {
		v, _ := find(s.Users, func(x *domain.User) bool { return x.ID == id })
		u = copyOf(v)
	})
	return u, nil
}

func (r *UserRepository) FindAll(ctx context.Context) (users []domain.User, err error) {
	r.db.read(func(s *domain.Snapshot) { users = clone(s.Users) })
	return users, nil
}

// PolicyRepository serves energy and pricing policies.
type PolicyRepository struct{ db *DB }

func NewPolicyRepository(db *DB) *PolicyRepository { return &PolicyRepository{db: db} }

func (r *PolicyRepository) FindEnergyPolicy(ctx context.Context, siteID string) (p *domain.EnergyPolicy, err error) {
	r.db.read(func(s *domain.Snapshot) {
		v, _ := find(s.EnergyPolicies, func(x *domain.EnergyPolicy) bool { return x.SiteID == siteID })
		p = copyOf(v)
	})
	return p, nil
}

func (r *PolicyRepository) SaveEnergyPolicy(ctx context.Context, p *domain.EnergyPolicy) error {
	return r.db.write(ctx, func(s *domain.Snapshot) error {
		if cur, _ := find(s.EnergyPolicies, func(x *domain.EnergyPolicy) bool { return x.SiteID == p.SiteID }); cur != nil {
			*cur = *p
			return nil
		}
		s.EnergyPolicies = append(s.EnergyPolicies, *p)
		return nil
	})
}

func (r *PolicyRepository) FindPricingPolicy(ctx context.Context, siteID string) (p *domain.PricingPolicy, err error) {
	r.db.read(func(s *domain.Snapshot) {
		v, _ := find(s.PricingPolicies, func(x *domain.PricingPolicy) bool { return x.SiteID == siteID })
		p = copyOf(v)
	})
	return p, nil
}
