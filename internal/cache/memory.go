package cache

import (
	"sync"
	"time"

	"github.com/WasiqP/MovieApp/internal/timeutil"
)

const janitorInterval = 5 * time.Minute

// entry is a stored value with its absolute expiry instant
type entry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-process Store with per-entry TTL. Expired entries are
// dropped lazily on read and swept by a background janitor.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry
	done    chan struct{}
	once    sync.Once
}

// NewMemory creates a Memory store and starts its janitor.
func NewMemory() *Memory {
	m := &Memory{
		entries: make(map[string]entry),
		done:    make(chan struct{}),
	}
	go m.janitor()
	return m
}

// Get returns the value stored under key, treating expired entries as absent.
func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if !timeutil.Now().Before(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false, nil
	}
	return e.value, true, nil
}

// Set stores value under key for ttl.
func (m *Memory) Set(key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	m.entries[key] = entry{value: value, expiresAt: timeutil.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

// Close stops the janitor.
func (m *Memory) Close() {
	m.once.Do(func() { close(m.done) })
}

// janitor periodically sweeps expired entries so long-dead keys do not pin
// memory between reads
func (m *Memory) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := timeutil.Now()
			m.mu.Lock()
			for key, e := range m.entries {
				if !now.Before(e.expiresAt) {
					delete(m.entries, key)
				}
			}
			m.mu.Unlock()
		case <-m.done:
			return
		}
	}
}
