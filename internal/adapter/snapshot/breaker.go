package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/seu-repo/sigec-site/internal/domain"
	"github.com/seu-repo/sigec-site/internal/ports"
)

// ErrStoreUnavailable is returned while the breaker is open
var ErrStoreUnavailable = errors.New("snapshot store temporarily unavailable")

// BreakerSettings tunes the breaker around a remote store
type BreakerSettings struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
	MinRequests  uint32
}

// BreakerStore stops hammering a remote store that keeps failing. Saves
// rejected by an open breaker are lost; the next successful save carries the
// full state anyway.
type BreakerStore struct {
	next ports.SnapshotStore
	cb   *gobreaker.CircuitBreaker
}

func NewBreakerStore(next ports.SnapshotStore, name string, s BreakerSettings, log *zap.Logger) *BreakerStore {
	if s.MaxRequests == 0 {
		s.MaxRequests = 3
	}
	if s.Interval == 0 {
		s.Interval = time.Minute
	}
	if s.Timeout == 0 {
		s.Timeout = 30 * time.Second
	}
	if s.FailureRatio == 0 {
		s.FailureRatio = 0.6
	}
	if s.MinRequests == 0 {
		s.MinRequests = 3
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "snapshot-" + name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= s.MinRequests && failureRatio >= s.FailureRatio
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn("Circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	return &BreakerStore{next: next, cb: cb}
}

func (b *BreakerStore) run(fn func() (interface{}, error)) (interface{}, error) {
	v, err := b.cb.Execute(fn)
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%s: %w", err.Error(), ErrStoreUnavailable)
	}
	return v, err
}

func (b *BreakerStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	v, err := b.run(func() (interface{}, error) { return b.next.Load(ctx) })
	if err != nil {
		return nil, err
	}
	snap, _ := v.(*domain.Snapshot)
	return snap, nil
}

func (b *BreakerStore) Save(ctx context.Context, s *domain.Snapshot) error {
	_, err := b.run(func() (interface{}, error) { return nil, b.next.Save(ctx, s) })
	return err
}

func (b *BreakerStore) Clear(ctx context.Context) error {
	_, err := b.run(func() (interface{}, error) { return nil, b.next.Clear(ctx) })
	return err
}

// State exposes the breaker state for health reporting
func (b *BreakerStore) State() string {
	return b.cb.State().String()
}

// Ping reports an open breaker as unavailable, otherwise asks the wrapped store.
func (b *BreakerStore) Ping(ctx context.Context) error {
	if b.cb.State() == gobreaker.StateOpen {
		return fmt.Errorf("breaker open: %w", ErrStoreUnavailable)
	}
	return Ping(ctx, b.next)
}
