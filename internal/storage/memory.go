package storage

import (
	"context"
	"sync"
	"time"
)

type memEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryBackend keeps entries in process memory. Each entry expires ttl after
// its last write; reads do not extend it.
type MemoryBackend struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	data map[string]map[string]memEntry
}

// NewMemoryBackend creates a backend; ttl <= 0 keeps entries forever.
func NewMemoryBackend(ttl time.Duration) *MemoryBackend {
	return &MemoryBackend{
		ttl:  ttl,
		now:  time.Now,
		data: map[string]map[string]memEntry{},
	}
}

func (m *MemoryBackend) Get(_ context.Context, scope, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.data[scope][key]
	if !ok {
		return "", false, nil
	}
	if m.expired(entry) {
		m.deleteLocked(scope, key)
		return "", false, nil
	}
	return entry.value, true, nil
}

func (m *MemoryBackend) Set(_ context.Context, scope, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data[scope] == nil {
		m.data[scope] = map[string]memEntry{}
	}
	entry := memEntry{value: value}
	if m.ttl > 0 {
		entry.expiresAt = m.now().Add(m.ttl)
	}
	m.data[scope][key] = entry
	return nil
}

func (m *MemoryBackend) Remove(_ context.Context, scope, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteLocked(scope, key)
	return nil
}

func (m *MemoryBackend) PurgeExpired(context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for scope, entries := range m.data {
		for key, entry := range entries {
			if m.expired(entry) {
				m.deleteLocked(scope, key)
				n++
			}
		}
	}
	return n, nil
}

func (m *MemoryBackend) expired(e memEntry) bool {
	return !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt)
}

func (m *MemoryBackend) deleteLocked(scope, key string) {
	delete(m.data[scope], key)
	if len(m.data[scope]) == 0 {
		delete(m.data, scope)
	}
}
