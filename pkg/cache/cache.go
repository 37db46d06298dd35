package cache

import (
	"strings"
	"sync"
	"time"
)

// Store is a small query cache keyed by (query name, params). Writers call
// Invalidate explicitly after mutating the backing data; there is no TTL
// eviction and no ambient refresh. Entries are overwritten wholesale, so a
// result computed from outdated params can never be read under a newer key
// (last write wins).
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
}

type entry struct {
	value    interface{}
	storedAt time.Time
}

// New creates an empty cache store.
func New() *Store {
	return &Store{
		entries: make(map[string]entry),
	}
}

// Key builds a cache key from a query name and its parameters.
func Key(query string, params ...string) string {
	if len(params) == 0 {
		return query
	}
	return query + "|" + strings.Join(params, "|")
}

// Get returns the cached value for key, if present.
func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, true
}

// Set stores value under key, replacing any previous entry.
func (s *Store) Set(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = entry{value: value, storedAt: time.Now()}
}

// Invalidate drops every entry belonging to the given query name,
// regardless of params.
func (s *Store) Invalidate(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefix := query + "|"
	for k := range s.entries {
		if k == query || strings.HasPrefix(k, prefix) {
			delete(s.entries, k)
		}
	}
}

// InvalidateAll empties the cache.
func (s *Store) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]entry)
}

// Len returns the number of cached entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
