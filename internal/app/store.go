// Package app is the application store: the single entry point the HTTP
// layer and the CLI use to drive reservations, sessions, suspensions,
// energy management and the supporting fleet records.
package app

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/seu-repo/sigec-site/internal/adapter/storage/memory"
	"github.com/seu-repo/sigec-site/internal/domain"
	"github.com/seu-repo/sigec-site/internal/observability/telemetry"
	"github.com/seu-repo/sigec-site/internal/ports"
	"github.com/seu-repo/sigec-site/internal/seed"
	"github.com/seu-repo/sigec-site/internal/service/energy"
	"github.com/seu-repo/sigec-site/internal/service/fleet"
	"github.com/seu-repo/sigec-site/internal/service/reservation"
	"github.com/seu-repo/sigec-site/internal/service/session"
	"github.com/seu-repo/sigec-site/internal/service/sitelock"
	"github.com/seu-repo/sigec-site/internal/service/suspension"
)

// Config carries the policy knobs of every service. Nil fields use defaults.
type Config struct {
	Reservation *domain.ReservationConfig
	Charging    *domain.ChargingConfig
	Suspension  *domain.SuspensionConfig
	// Seed is used by Reset; Now is taken from the clock at reset time.
	Seed seed.Options
}

// Store wires the services over one in-memory database.
type Store struct {
	db    *memory.DB
	store ports.SnapshotStore
	clock ports.Clock
	seed  seed.Options
	log   *zap.Logger

	reservations *reservation.Service
	sessions     *session.Service
	suspensions  *suspension.Service
	energy       *energy.Service
	fleet        *fleet.Service
}

// New builds the store. events and store may be nil.
func New(db *memory.DB, store ports.SnapshotStore, events ports.EventPublisher, clock ports.Clock, ids ports.IDGenerator, cfg Config, log *zap.Logger) *Store {
	repos := memory.NewRepositories(db)
	locks := sitelock.New()

	suspensions := suspension.NewService(repos.Users, repos.Suspensions, repos.Reservations,
		events, clock, ids, locks, cfg.Reservation, cfg.Suspension, log.Named("suspension"))
	reservations := reservation.NewService(repos.Reservations, repos.Sites, repos.Users, repos.Vehicles,
		suspensions, events, clock, ids, locks, cfg.Reservation, log.Named("reservation"))
	sessions := session.NewService(repos.Sessions, repos.Reservations, repos.Sites, repos.Chargers,
		repos.Policies, repos.Express, suspensions, events, clock, ids, locks, cfg.Charging, log.Named("session"))
	en := energy.NewService(repos.Sites, repos.Sessions, repos.Chargers, repos.Vehicles,
		repos.Policies, repos.Reservations, clock, log.Named("energy"))
	fl := fleet.NewService(repos.Users, repos.Vehicles, repos.Guests, repos.Reports, repos.Tickets,
		repos.Sites, repos.Chargers, reservations, events, clock, ids, log.Named("fleet"))

	return &Store{
		db:           db,
		store:        store,
		clock:        clock,
		seed:         cfg.Seed,
		log:          log,
		reservations: reservations,
		sessions:     sessions,
		suspensions:  suspensions,
		energy:       en,
		fleet:        fl,
	}
}

func start(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return telemetry.Tracer().Start(ctx, "store."+op, trace.WithAttributes(attrs...))
}

// end closes the span, recording err when set.
func end(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// Snapshot returns a copy of the whole state.
func (s *Store) Snapshot() *domain.Snapshot {
	return s.db.Snapshot()
}

// Reset replaces the state with freshly generated demo data and drops the
// persisted snapshot before writing the new one.
func (s *Store) Reset(ctx context.Context) (err error) {
	ctx, span := start(ctx, "Reset")
	defer func() { end(span, err) }()

	if s.store != nil {
		if err := s.store.Clear(ctx); err != nil {
			s.log.Warn("Failed to clear snapshot", zap.Error(err))
		}
	}
	opts := s.seed
	opts.Now = s.clock.Now()
	if err := s.db.Replace(ctx, seed.Build(opts)); err != nil {
		return err
	}
	s.log.Info("State reset to demo data", zap.Time("reference", opts.Now))
	return nil
}

// RunSweeper calls SweepExpired every interval until ctx is done.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			res, err := s.SweepExpired(ctx)
			if err != nil {
				s.log.Error("Sweep failed", zap.Error(err))
				continue
			}
			if len(res.NoShows)+len(res.Expired) > 0 {
				s.log.Info("Sweep closed reservations",
					zap.Int("no_shows", len(res.NoShows)),
					zap.Int("expired", len(res.Expired)),
				)
			}
		}
	}
}
