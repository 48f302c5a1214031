package editor

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/chaincanvas/chaincanvas/internal/canvas"
)

// MemoryStore is an in-memory PersistenceAdapter, useful for tests and
// single-session tooling that never talks to a real backend.
type MemoryStore struct {
	mu     sync.RWMutex
	graphs map[string]canvas.Snapshot
}

// NewMemoryStore creates an empty in-memory persistence adapter.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		graphs: make(map[string]canvas.Snapshot),
	}
}

func (m *MemoryStore) List(_ context.Context) ([]Summary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	summaries := make([]Summary, 0, len(m.graphs))
	for id, snap := range m.graphs {
		summaries = append(summaries, Summary{ID: id, Name: snap.Name})
	}
	return summaries, nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (Stored, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap, exists := m.graphs[id]
	if !exists {
		return Stored{}, errors.Errorf("graph not found: %s", id)
	}
	return Stored{ID: id, Snapshot: snap}, nil
}

func (m *MemoryStore) Create(_ context.Context, snap canvas.Snapshot) (Stored, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New().String()
	m.graphs[id] = snap
	return Stored{ID: id, Snapshot: snap}, nil
}

func (m *MemoryStore) Update(_ context.Context, id string, snap canvas.Snapshot) (Stored, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.graphs[id]; !exists {
		return Stored{}, errors.Errorf("graph not found: %s", id)
	}
	m.graphs[id] = snap
	return Stored{ID: id, Snapshot: snap}, nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.graphs, id)
	return nil
}

// Len reports the number of stored graphs.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.graphs)
}
