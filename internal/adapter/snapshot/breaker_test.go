package snapshot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/seu-repo/sigec-site/internal/domain"
	"github.com/seu-repo/sigec-site/internal/mocks"
)

func TestBreakerStore_OpensAfterFailures(t *testing.T) {
	calls := 0
	inner := &mocks.MockSnapshotStore{
		SaveFunc: func(ctx context.Context, s *domain.Snapshot) error {
			calls++
			return errors.New("connection refused")
		},
	}
	store := NewBreakerStore(inner, "test", BreakerSettings{MinRequests: 3, FailureRatio: 0.6, Timeout: time.Minute}, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := store.Save(ctx, &domain.Snapshot{})
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrStoreUnavailable)
	}

	err := store.Save(ctx, &domain.Snapshot{})

	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Equal(t, 3, calls)
	assert.Equal(t, "open", store.State())
}

func TestBreakerStore_PassesThrough(t *testing.T) {
	inner := &mocks.MockSnapshotStore{}
	store := NewBreakerStore(inner, "test", BreakerSettings{}, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleSnapshot()))
	got, err := store.Load(ctx)

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "s-1", got.Sites[0].ID)
	assert.Equal(t, 1, inner.Saves())
}

func TestBreakerStore_LoadEmpty(t *testing.T) {
	store := NewBreakerStore(&mocks.MockSnapshotStore{}, "test", BreakerSettings{}, zap.NewNop())

	got, err := store.Load(context.Background())

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPing(t *testing.T) {
	ctx := context.Background()
	inner := &mocks.MockSnapshotStore{
		SaveFunc: func(ctx context.Context, s *domain.Snapshot) error { return errors.New("timeout") },
	}
	store := Instrument(NewBreakerStore(inner, "test", BreakerSettings{MinRequests: 1, FailureRatio: 0.5, Timeout: time.Minute}, zap.NewNop()), "redis")

	assert.NoError(t, Ping(ctx, nil))
	assert.NoError(t, Ping(ctx, store))

	_ = store.Save(ctx, &domain.Snapshot{})

	assert.ErrorIs(t, Ping(ctx, store), ErrStoreUnavailable)
}
