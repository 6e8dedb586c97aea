package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/seu-repo/sigec-site/internal/domain"
)

// ReservationRepository stores reservations with optimistic versioning.
type ReservationRepository struct{ db *DB }

func NewReservationRepository(db *DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Save inserts unknown reservations at version 1. Updates must carry the
// stored version and bump it; otherwise ErrConcurrentUpdate is returned.
func (r *ReservationRepository) Save(ctx context.Context, res *domain.Reservation) error {
	return r.db.write(ctx, func(s *domain.Snapshot) error {
		cur, _ := find(s.Reservations, func(x *domain.Reservation) bool { return x.ID == res.ID })
		if cur == nil {
			res.Version = 1
			s.Reservations = append(s.Reservations, *res)
			return nil
		}
		if cur.Version != res.Version {
			return fmt.Errorf("reservation %s at version %d, stored %d: %w",
				res.ID, res.Version, cur.Version, domain.ErrConcurrentUpdate)
		}
		res.Version++
		*cur = *res
		return nil
	})
}

func (r *ReservationRepository) FindByID(ctx context.Context, id string) (res *domain.Reservation, err error) {
	r.db.read(func(s *domain.Snapshot) {
		v, _ := find(s.Reservations, func(x *domain.Reservation) bool { return x.ID == id })
		res = copyOf(v)
	})
	return res, nil
}

func (r *ReservationRepository) FindByCode(ctx context.Context, code string) (res *domain.Reservation, err error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	r.db.read(func(s *domain.Snapshot) {
		v, _ := find(s.Reservations, func(x *domain.Reservation) bool { return strings.EqualFold(x.Code, code) })
		res = copyOf(v)
	})
	return res, nil
}

func (r *ReservationRepository) Find(ctx context.Context, f domain.ReservationFilter) (out []domain.Reservation, err error) {
	r.db.read(func(s *domain.Snapshot) {
		out = filter(s.Reservations, f.Matches)
	})
	return out, nil
}

// SessionRepository stores sessions with optimistic versioning.
type SessionRepository struct{ db *DB }

func NewSessionRepository(db *DB) *SessionRepository { return &SessionRepository{db: db} }

func (r *SessionRepository) Save(ctx context.Context, sess *domain.Session) error {
	return r.db.write(ctx, func(s *domain.Snapshot) error {
		cur, _ := find(s.Sessions, func(x *domain.Session) bool { return x.ID == sess.ID })
		if cur == nil {
			sess.Version = 1
			s.Sessions = append(s.Sessions, *sess)
			return nil
		}
		if cur.Version != sess.Version {
			return fmt.Errorf("session %s at version %d, stored %d: %w",
				sess.ID, sess.Version, cur.Version, domain.ErrConcurrentUpdate)
		}
		sess.Version++
		*cur = *sess
		return nil
	})
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (sess *domain.Session, err error) {
	r.db.read(func(s *domain.Snapshot) {
		v, _ := find(s.Sessions, func(x *domain.Session) bool { return x.ID == id })
		sess = copyOf(v)
	})
	return sess, nil
}

func (r *SessionRepository) FindActiveByReservation(ctx context.Context, reservationID string) (sess *domain.Session, err error) {
	r.db.read(func(s *domain.Snapshot) {
		v, _ := find(s.Sessions, func(x *domain.Session) bool {
			return x.ReservationID == reservationID && x.IsActive()
		})
		sess = copyOf(v)
	})
	return sess, nil
}

func (r *SessionRepository) FindActiveByBay(ctx context.Context, bayID string) (sess *domain.Session, err error) {
	r.db.read(func(s *domain.Snapshot) {
		v, _ := find(s.Sessions, func(x *domain.Session) bool { return x.BayID == bayID && x.IsActive() })
		sess = copyOf(v)
	})
	return sess, nil
}

func (r *SessionRepository) FindBySite(ctx context.Context, siteID string, status domain.SessionStatus) (out []domain.Session, err error) {
	r.db.read(func(s *domain.Snapshot) {
		out = filter(s.Sessions, func(x *domain.Session) bool {
			return x.SiteID == siteID && (status == "" || x.Status == status)
		})
	})
	return out, nil
}

func (r *SessionRepository) FindAll(ctx context.Context) (out []domain.Session, err error) {
	r.db.read(func(s *domain.Snapshot) { out = clone(s.Sessions) })
	return out, nil
}
