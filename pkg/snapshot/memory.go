package snapshot

import (
	"context"
	"sync"
)

// MemoryStore keeps the snapshot in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Get returns a copy of the stored snapshot.
func (m *MemoryStore) Get(ctx context.Context) (*Snapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap.Clone(), nil
}

// Set stores a copy of s.
func (m *MemoryStore) Set(ctx context.Context, s *Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = s.Clone()
	return nil
}

// Delete clears the stored snapshot.
func (m *MemoryStore) Delete(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = nil
	return nil
}

// Close does nothing for the memory store.
func (m *MemoryStore) Close() error {
	return nil
}

var _ Store = (*MemoryStore)(nil)
