package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/seu-repo/sigec-site/internal/adapter/idgen"
	"github.com/seu-repo/sigec-site/internal/adapter/snapshot"
	"github.com/seu-repo/sigec-site/internal/adapter/storage/memory"
	"github.com/seu-repo/sigec-site/internal/app"
	"github.com/seu-repo/sigec-site/internal/domain"
	"github.com/seu-repo/sigec-site/internal/ports"
	"github.com/seu-repo/sigec-site/internal/seed"
	"github.com/seu-repo/sigec-site/pkg/config"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:          "sigec-site",
	Short:        "EV charging site reservations, sessions and load management",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (default ./configs/config.yaml)")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	zc := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// runtime holds what every command needs: config, logger, the restored
// state and the store facade.
type runtime struct {
	cfg   *config.Config
	log   *zap.Logger
	db    *memory.DB
	store *app.Store

	snapStore     ports.SnapshotStore
	closeSnapshot func() error
}

func (r *runtime) Close() {
	if err := r.closeSnapshot(); err != nil {
		r.log.Error("Error closing snapshot store", zap.Error(err))
	}
	_ = r.log.Sync()
}

// bootstrap loads the config, opens the snapshot store and restores the state,
// seeding it when nothing was persisted. events may be nil.
func bootstrap(ctx context.Context, events func(*runtime) (ports.EventPublisher, error)) (*runtime, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	snapStore, closeSnapshot, err := snapshot.Open(snapshot.Options{
		Driver:      cfg.Persistence.Driver,
		Namespace:   cfg.Persistence.Namespace,
		FilePath:    cfg.Persistence.FilePath,
		RedisURL:    cfg.Redis.URL,
		DatabaseURL: cfg.Database.URL,
		LogQueries:  cfg.Database.LogQueries,
		Breaker:     cfg.CircuitBreaker.BreakerSettings(),
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}

	rt := &runtime{cfg: cfg, log: logger, snapStore: snapStore, closeSnapshot: closeSnapshot}

	loc, err := time.LoadLocation(cfg.Seed.Timezone)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("invalid seed timezone: %w", err)
	}
	clock := idgen.SystemClock{}
	seedOpts := seed.Options{Location: loc, RandSeed: cfg.Seed.RandSeed}

	rt.db = memory.NewDB(snapStore, logger)
	restored, err := rt.db.Restore(ctx, func() *domain.Snapshot {
		if !cfg.Seed.Enabled {
			return &domain.Snapshot{}
		}
		opts := seedOpts
		opts.Now = clock.Now()
		return seed.Build(opts)
	})
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("restore state: %w", err)
	}
	logger.Info("State loaded",
		zap.String("persistence", cfg.Persistence.Driver),
		zap.Bool("restored", restored),
	)

	var publisher ports.EventPublisher
	if events != nil {
		if publisher, err = events(rt); err != nil {
			rt.Close()
			return nil, err
		}
	}

	rt.store = app.New(rt.db, snapStore, publisher, clock, idgen.New(), app.Config{
		Reservation: &cfg.Reservation,
		Charging:    &cfg.Charging,
		Suspension:  &cfg.Suspension,
		Seed:        seedOpts,
	}, logger)
	return rt, nil
}
