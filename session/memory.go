package session

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type memoryEntry struct {
	state   []byte
	expires time.Time // zero: never
}

// MemoryStore keeps states in a map guarded by a RWMutex.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
	sweep   *sweeper
}

// NewMemoryStore returns an empty store. ttl <= 0 disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Save implements Store. The state slice is copied.
func (m *MemoryStore) Save(ctx context.Context, id string, state []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := validateID(id); err != nil {
		return err
	}
	e := memoryEntry{state: append([]byte(nil), state...)}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}

	m.mu.Lock()
	m.entries[id] = e
	m.mu.Unlock()

	return nil
}

// Load implements Store. Expired entries are removed on access.
func (m *MemoryStore) Load(ctx context.Context, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	e, ok := m.entries[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if m.expired(e) {
		m.mu.Lock()
		delete(m.entries, id)
		m.mu.Unlock()
		return nil, ErrNotFound
	}

	return append([]byte(nil), e.state...), nil
}

// Delete implements Store.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if !ok || m.expired(e) {
		delete(m.entries, id)
		return ErrNotFound
	}
	delete(m.entries, id)

	return nil
}

// Len returns the number of entries, including expired ones not yet collected.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.entries)
}

// Purge removes expired entries and reports how many were dropped.
// Complexity: O(n) under the write lock.
func (m *MemoryStore) Purge(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, e := range m.entries {
		if m.expired(e) {
			delete(m.entries, id)
			n++
		}
	}

	return n, nil
}

// StartSweeper purges expired entries every interval until Close.
// It is a no-op when the store has no TTL or a sweeper is already running.
func (m *MemoryStore) StartSweeper(interval time.Duration, logger *slog.Logger) {
	if m.ttl <= 0 || interval <= 0 || m.sweep != nil {
		return
	}
	m.sweep = startSweeper(m, interval, logger)
}

// Close implements Store. It stops the sweeper, if any.
func (m *MemoryStore) Close() error {
	m.sweep.close()
	m.sweep = nil

	return nil
}

func (m *MemoryStore) expired(e memoryEntry) bool {
	return !e.expires.IsZero() && !m.now().Before(e.expires)
}
