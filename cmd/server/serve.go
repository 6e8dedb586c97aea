package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/seu-repo/sigec-site/internal/adapter/http/fiber/router"
	"github.com/seu-repo/sigec-site/internal/adapter/queue"
	"github.com/seu-repo/sigec-site/internal/adapter/snapshot"
	wsAdapter "github.com/seu-repo/sigec-site/internal/adapter/websocket"
	"github.com/seu-repo/sigec-site/internal/observability/telemetry"
	"github.com/seu-repo/sigec-site/internal/ports"
	"github.com/seu-repo/sigec-site/internal/service/health"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, the dashboard feed and the periodic sweep",
	RunE:  serve,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var mq queue.MessageQueue
	rt, err := bootstrap(ctx, func(rt *runtime) (ports.EventPublisher, error) {
		var err error
		mq, err = queue.New(queue.Config{
			Driver:    rt.cfg.Queue.Driver,
			URL:       rt.cfg.Queue.URL,
			Namespace: rt.cfg.Persistence.Namespace,
		}, rt.log)
		if err != nil {
			return nil, fmt.Errorf("connect message queue: %w", err)
		}
		return queue.NewPublisher(mq, rt.cfg.App.Name, rt.log), nil
	})
	if err != nil {
		return err
	}
	defer rt.Close()
	defer mq.Close()

	cfg, logger := rt.cfg, rt.log
	logger.Info("Starting SIGEC site service",
		zap.String("service", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	if cfg.OpenTelemetry.Enabled {
		tp, err := telemetry.InitTracer(cfg.OpenTelemetry.ServiceName, cfg.App.Version,
			cfg.OpenTelemetry.Jaeger.Endpoint, cfg.OpenTelemetry.Jaeger.SamplerParam)
		if err != nil {
			return fmt.Errorf("init tracer: %w", err)
		}
		defer func() {
			if err := telemetry.Shutdown(context.Background(), tp); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	hub := wsAdapter.NewHub(logger)
	go hub.Run(ctx)
	if err := wsAdapter.NewRelay(hub, mq, logger).Start(ports.Topics); err != nil {
		return fmt.Errorf("start event relay: %w", err)
	}

	go rt.store.RunSweeper(ctx, cfg.Sweep.Interval)

	checks := health.NewService(cfg.App.Version, logger)
	checks.RegisterChecker("snapshot", health.PingCheck(func(ctx context.Context) error {
		return snapshot.Ping(ctx, rt.snapStore)
	}, false, logger))
	// events are best effort; a lost broker degrades the dashboards only
	checks.RegisterChecker("queue", health.PingCheck(func(context.Context) error {
		return queue.Healthy(mq)
	}, true, logger))

	fa := router.New(rt.store, hub, router.Options{
		AppName:     cfg.App.Name,
		Health:      checks,
		CORS:        cfg.CORS,
		AccessLog:   cfg.HTTP.AccessLog,
		MetricsPath: cfg.Prometheus.Path,
	}, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		errCh <- fa.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port))
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := fa.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
	return nil
}
