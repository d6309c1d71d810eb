package cache

import (
	"context"
	"sync"
	"time"
)

// Memory is an in-process Store with per-entry expiry and a size cap. Used
// when no Redis is configured and in tests.
type Memory struct {
	entries map[string]*memoryEntry
	mu      sync.RWMutex
	maxSize int
	hits    int64
	misses  int64
}

type memoryEntry struct {
	value     any
	expiresAt time.Time
}

// MemoryConfig configures the in-memory cache
type MemoryConfig struct {
	MaxSize int
}

// DefaultMemoryConfig returns sensible defaults
func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{
		MaxSize: 1000,
	}
}

// NewMemory creates a new in-memory cache
func NewMemory(config MemoryConfig) *Memory {
	return &Memory{
		entries: make(map[string]*memoryEntry),
		maxSize: config.MaxSize,
	}
}

func (m *Memory) Get(_ context.Context, key string) (any, bool, error) {
	m.mu.RLock()
	entry, exists := m.entries[key]
	m.mu.RUnlock()

	if !exists || time.Now().After(entry.expiresAt) {
		m.mu.Lock()
		if exists {
			delete(m.entries, key)
		}
		m.misses++
		m.mu.Unlock()
		return nil, false, nil
	}

	m.mu.Lock()
	m.hits++
	m.mu.Unlock()

	return entry.value, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Evict expired entries when full; if still full, drop an arbitrary
	// entry rather than grow without bound.
	if len(m.entries) >= m.maxSize {
		now := time.Now()
		for k, e := range m.entries {
			if now.After(e.expiresAt) {
				delete(m.entries, k)
			}
		}
		if len(m.entries) >= m.maxSize {
			for k := range m.entries {
				delete(m.entries, k)
				break
			}
		}
	}

	m.entries[key] = &memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// Stats returns hit/miss counters and the current entry count.
func (m *Memory) Stats() (hits int64, misses int64, size int) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hits, m.misses, len(m.entries)
}
