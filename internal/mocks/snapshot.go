package mocks

import (
	"context"
	"sync"

	"github.com/seu-repo/sigec-site/internal/domain"
)

// MockSnapshotStore keeps the last saved snapshot in memory
type MockSnapshotStore struct {
	mu        sync.Mutex
	Saved     *domain.Snapshot
	SaveCount int
	LoadFunc  func(ctx context.Context) (*domain.Snapshot, error)
	SaveFunc  func(ctx context.Context, s *domain.Snapshot) error
}

func (m *MockSnapshotStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	if m.LoadFunc != nil {
		return m.LoadFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Saved, nil
}

func (m *MockSnapshotStore) Save(ctx context.Context, s *domain.Snapshot) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, s)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saved = s
	m.SaveCount++
	return nil
}

func (m *MockSnapshotStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saved = nil
	return nil
}

// Saves returns how many snapshots were written.
func (m *MockSnapshotStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SaveCount
}
