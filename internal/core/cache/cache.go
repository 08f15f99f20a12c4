// Package cache provides a process-wide TTL key value store
// expiry is lazy and checked at read time under the same lock as the lookup
package cache

import (
	"strings"
	"sync"
	"time"
)

// entry pairs a value with its absolute expiry instant
type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Store is a mutex guarded key value store with per entry TTL
// construct one per process and inject it, fresh instances isolate tests
type Store[V any] struct {
	mu      sync.Mutex
	entries map[string]entry[V]

	// now is a seam for tests
	now func() time.Time
}

// New returns an empty Store
func New[V any]() *Store[V] {
	return &Store[V]{
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// Get returns the value for key when present and not expired
// an expired entry is deleted as a side effect and reported as absent
func (s *Store[V]) Get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if s.now().After(e.expiresAt) {
		delete(s.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set stores value under key with expiry now plus ttl
// overwrites any existing entry unconditionally
func (s *Store[V]) Set(key string, value V, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry[V]{value: value, expiresAt: s.now().Add(ttl)}
}

// Invalidate removes the entry for key, a missing key is a no-op
func (s *Store[V]) Invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
}

// InvalidatePrefix removes every entry whose key starts with prefix
func (s *Store[V]) InvalidatePrefix(prefix string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for k := range s.entries {
		if strings.HasPrefix(k, prefix) {
			delete(s.entries, k)
		}
	}
}

// Clear removes all entries
func (s *Store[V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make(map[string]entry[V])
}

// Len reports the number of stored entries including any not yet swept
func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// SetNow swaps the clock used for expiry checks, for tests
func (s *Store[V]) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.now = now
}
