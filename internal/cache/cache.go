// Package cache provides a concurrency-safe in-memory TTL cache keyed by
// strings, with prefix-based bulk invalidation. Entries are immutable once
// stored; expiry is lazy (checked on read, no background sweep).
package cache

import (
	"strings"
	"sync"
	"time"
)

// entry is the stored record. Never exposed outside the package.
type entry struct {
	value     any
	storedAt  time.Time
	expiresAt time.Time
}

// Store is a key -> (value, expiry) map safe for concurrent use
type Store struct {
	mu       sync.RWMutex
	entries  map[string]entry
	now      func() time.Time
	disabled bool
}

// NewStore creates an empty cache store
func NewStore() *Store {
	return &Store{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// NewStoreWithClock creates a store with an injected clock for expiry tests
func NewStoreWithClock(now func() time.Time) *Store {
	return &Store{
		entries: make(map[string]entry),
		now:     now,
	}
}

// Disable drops all entries and makes every subsequent Put a no-op, so
// every read goes to the origin
func (s *Store) Disable() {
	s.mu.Lock()
	s.disabled = true
	s.entries = make(map[string]entry)
	s.mu.Unlock()
}

// Get returns the stored value if present and not expired. Expired entries
// are removed on access.
func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !s.now().Before(e.expiresAt) {
		s.mu.Lock()
		// Re-check under the write lock; a Put may have replaced the entry
		if cur, ok := s.entries[key]; ok && cur.expiresAt.Equal(e.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

// Put stores a value with expiresAt = now + ttl, overwriting any existing
// entry. A non-positive ttl stores nothing.
func (s *Store) Put(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	now := s.now()
	s.mu.Lock()
	if s.disabled {
		s.mu.Unlock()
		return
	}
	s.entries[key] = entry{
		value:     value,
		storedAt:  now,
		expiresAt: now.Add(ttl),
	}
	s.mu.Unlock()
}

// Invalidate removes every entry whose key starts with the given prefix and
// returns the number of entries removed
func (s *Store) Invalidate(prefix string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for k := range s.entries {
		if strings.HasPrefix(k, prefix) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

// Clear drops all entries
func (s *Store) Clear() {
	s.mu.Lock()
	s.entries = make(map[string]entry)
	s.mu.Unlock()
}

// Len returns the number of entries, counting any not yet lazily expired
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
