// Package snapshot persists the whole application state as one JSON document
// keyed by a namespace. The memory database writes through to one of these
// stores after every mutation.
package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/seu-repo/sigec-site/internal/domain"
	"github.com/seu-repo/sigec-site/internal/ports"
)

// DefaultNamespace is the key every store writes under.
const DefaultNamespace = "mabe-ev"

// Drivers
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// Options selects and configures a store
type Options struct {
	Driver      string
	Namespace   string
	FilePath    string
	RedisURL    string
	DatabaseURL string
	LogQueries  bool
	Breaker     BreakerSettings
}

// Open builds the configured store. The memory driver returns a nil store,
// which disables persistence. The returned close function is never nil.
func Open(opts Options, log *zap.Logger) (ports.SnapshotStore, func() error, error) {
	if opts.Namespace == "" {
		opts.Namespace = DefaultNamespace
	}
	noop := func() error { return nil }

	switch opts.Driver {
	case "", DriverMemory:
		log.Info("Snapshot persistence disabled")
		return nil, noop, nil

	case DriverFile:
		store, err := NewFileStore(opts.FilePath, log)
		if err != nil {
			return nil, noop, err
		}
		return Instrument(store, DriverFile), noop, nil

	case DriverRedis:
		store, err := NewRedisStore(opts.RedisURL, opts.Namespace, log)
		if err != nil {
			return nil, noop, err
		}
		return Instrument(NewBreakerStore(store, DriverRedis, opts.Breaker, log), DriverRedis), store.Close, nil

	case DriverPostgres:
		store, err := NewPostgresStore(opts.DatabaseURL, opts.Namespace, opts.LogQueries, log)
		if err != nil {
			return nil, noop, err
		}
		return Instrument(NewBreakerStore(store, DriverPostgres, opts.Breaker, log), DriverPostgres), store.Close, nil
	}

	return nil, noop, fmt.Errorf("unknown snapshot driver %q", opts.Driver)
}

// document is the persisted envelope
type document struct {
	SavedAt time.Time        `json:"saved_at"`
	State   *domain.Snapshot `json:"state"`
}

// Pinger is implemented by stores backed by a remote service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ping checks a store's backend. Stores without one, and a nil store, are
// always reachable.
func Ping(ctx context.Context, store ports.SnapshotStore) error {
	if p, ok := store.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func encode(s *domain.Snapshot) ([]byte, error) {
	b, err := json.Marshal(document{SavedAt: time.Now().UTC(), State: s})
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return b, nil
}

func decode(b []byte) (*domain.Snapshot, error) {
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return doc.State, nil
}
