package repository

import (
	"context"
	"sync"

	"fleet-scheduler/internal/scheduler"
)

// MemoryStore keeps the latest encoded snapshot in process memory.
type MemoryStore struct {
	mu     sync.Mutex
	latest []byte
	ver    int64
	saves  int
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Save keeps snap if it is newer than the stored one. The snapshot goes
// through the same codec as the durable backends.
func (m *MemoryStore) Save(ctx context.Context, snap scheduler.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := scheduler.EncodeSnapshot(snap)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if m.latest != nil && snap.Version <= m.ver {
		return nil
	}
	m.latest = payload
	m.ver = snap.Version
	return nil
}

// LoadLatest returns the newest snapshot saved.
func (m *MemoryStore) LoadLatest(ctx context.Context) (scheduler.Snapshot, bool, error) {
	if err := ctx.Err(); err != nil {
		return scheduler.Snapshot{}, false, err
	}
	m.mu.Lock()
	payload := m.latest
	m.mu.Unlock()

	if payload == nil {
		return scheduler.Snapshot{}, false, nil
	}
	snap, err := scheduler.DecodeSnapshot(payload)
	if err != nil {
		return scheduler.Snapshot{}, false, err
	}
	return snap, true, nil
}

// Saves returns how many Save calls were accepted.
func (m *MemoryStore) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
