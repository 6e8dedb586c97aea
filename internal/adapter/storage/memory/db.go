package memory

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/seu-repo/sigec-site/internal/domain"
	"github.com/seu-repo/sigec-site/internal/ports"
)

// DB owns the whole application state. Every successful mutation is written
// through to the snapshot store while the write lock is held, so snapshots
// are always taken from a consistent state.
type DB struct {
	mu    sync.RWMutex
	state *domain.Snapshot
	store ports.SnapshotStore
	log   *zap.Logger
}

// NewDB creates an empty database. store may be nil to disable persistence.
func NewDB(store ports.SnapshotStore, log *zap.Logger) *DB {
	return &DB{
		state: &domain.Snapshot{},
		store: store,
		log:   log,
	}
}

// Restore loads the last snapshot from the store. When none exists, seed is
// used and immediately persisted. It reports whether state came from the store.
func (db *DB) Restore(ctx context.Context, seed func() *domain.Snapshot) (bool, error) {
	if db.store != nil {
		snap, err := db.store.Load(ctx)
		if err != nil {
			return false, fmt.Errorf("failed to load snapshot: %w", err)
		}
		if snap != nil {
			db.mu.Lock()
			db.state = snap
			db.mu.Unlock()
			db.log.Info("State restored from snapshot",
				zap.Int("reservations", len(snap.Reservations)),
				zap.Int("sessions", len(snap.Sessions)),
			)
			return true, nil
		}
	}

	return false, db.Replace(ctx, seed())
}

// Replace swaps the whole state and persists it.
func (db *DB) Replace(ctx context.Context, snap *domain.Snapshot) error {
	if snap == nil {
		snap = &domain.Snapshot{}
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	db.state = snap
	db.persistLocked(ctx)
	return nil
}

// Snapshot returns a copy of the current state.
func (db *DB) Snapshot() *domain.Snapshot {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return cloneSnapshot(db.state)
}

func (db *DB) read(fn func(s *domain.Snapshot)) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	fn(db.state)
}

func (db *DB) write(ctx context.Context, fn func(s *domain.Snapshot) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := fn(db.state); err != nil {
		return err
	}
	db.persistLocked(ctx)
	return nil
}

func (db *DB) persistLocked(ctx context.Context) {
	if db.store == nil {
		return
	}
	if err := db.store.Save(ctx, cloneSnapshot(db.state)); err != nil {
		db.log.Error("Failed to persist snapshot", zap.Error(err))
	}
}

func cloneSnapshot(s *domain.Snapshot) *domain.Snapshot {
	return &domain.Snapshot{
		Sites:             clone(s.Sites),
		Zones:             clone(s.Zones),
		Bays:              clone(s.Bays),
		Chargers:          clone(s.Chargers),
		Users:             clone(s.Users),
		Vehicles:          clone(s.Vehicles),
		Reservations:      clone(s.Reservations),
		Sessions:          clone(s.Sessions),
		EnergyPolicies:    clone(s.EnergyPolicies),
		PricingPolicies:   clone(s.PricingPolicies),
		Suspensions:       clone(s.Suspensions),
		ExpressCharges:    clone(s.ExpressCharges),
		Guests:            clone(s.Guests),
		GuestReservations: clone(s.GuestReservations),
		Reports:           clone(s.Reports),
		Tickets:           clone(s.Tickets),
	}
}

// clone copies the slice header and elements. Nested slices are shared; the
// repositories never mutate them in place.
func clone[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

func find[T any](items []T, match func(*T) bool) (*T, int) {
	for i := range items {
		if match(&items[i]) {
			return &items[i], i
		}
	}
	return nil, -1
}

func filter[T any](items []T, match func(*T) bool) []T {
	out := make([]T, 0)
	for i := range items {
		if match(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}

// copyOf returns a pointer to a copy so callers never alias stored state.
func copyOf[T any](v *T) *T {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
