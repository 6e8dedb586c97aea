package snapshot

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/seu-repo/sigec-site/internal/domain"
)

func sampleSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Sites: []domain.Site{{ID: "s-1", Name: "Sede", Timezone: "America/Mexico_City"}},
		Reservations: []domain.Reservation{
			{ID: "r-1", UserID: "u-1", Status: domain.ReservationStatusConfirmed, Code: "MABE-1001", Version: 3},
		},
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "snapshot.json")
	store, err := NewFileStore(path, zap.NewNop())
	require.NoError(t, err)

	empty, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, empty)

	require.NoError(t, store.Save(ctx, sampleSnapshot()))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "MABE-1001", got.Reservations[0].Code)
	assert.EqualValues(t, 3, got.Reservations[0].Version)

	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))

	gone, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestOpen_MemoryDisablesPersistence(t *testing.T) {
	store, closeFn, err := Open(Options{Driver: DriverMemory}, zap.NewNop())

	require.NoError(t, err)
	assert.Nil(t, store)
	assert.NoError(t, closeFn())
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")

	store, _, err := Open(Options{Driver: DriverFile, FilePath: path}, zap.NewNop())

	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), sampleSnapshot()))
	assert.FileExists(t, path)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, _, err := Open(Options{Driver: "etcd"}, zap.NewNop())

	assert.Error(t, err)
}
