package snapshot

import (
	"context"
	"time"

	"github.com/seu-repo/sigec-site/internal/domain"
	"github.com/seu-repo/sigec-site/internal/observability/telemetry"
	"github.com/seu-repo/sigec-site/internal/ports"
)

type instrumented struct {
	ports.SnapshotStore
	driver string
}

// Instrument records save latency per driver and result
func Instrument(store ports.SnapshotStore, driver string) ports.SnapshotStore {
	return &instrumented{SnapshotStore: store, driver: driver}
}

func (i *instrumented) Save(ctx context.Context, s *domain.Snapshot) error {
	start := time.Now()
	err := i.SnapshotStore.Save(ctx, s)
	result := "ok"
	if err != nil {
		result = "error"
	}
	telemetry.SnapshotSaveLatency.WithLabelValues(i.driver, result).Observe(time.Since(start).Seconds())
	return err
}

func (i *instrumented) Ping(ctx context.Context) error {
	return Ping(ctx, i.SnapshotStore)
}
