package storage

import (
	"prayerd/internal/structures"
	"sync"
	"time"
)

type memoryItem struct {
	value   []byte
	expires time.Time
}

// MemoryStore is a map guarded by a RWMutex. Entries expire after ttl and the
// store never holds more than maxEntries keys. A zero value disables either
// limit.
type MemoryStore struct {
	mu         sync.RWMutex
	data       map[string]memoryItem
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return NewBoundedMemoryStore(structures.MemoryConfig{})
}

func NewBoundedMemoryStore(conf structures.MemoryConfig) *MemoryStore {
	return &MemoryStore{
		data:       make(map[string]memoryItem),
		ttl:        conf.TTL,
		maxEntries: conf.MaxEntries,
		now:        time.Now,
	}
}

func (s *MemoryStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.data[key]
	if !ok || s.expired(item, s.now()) {
		return nil, false
	}
	return clone(item.value), true
}

func (s *MemoryStore) Set(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.put(key, value, s.now())
}

func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune(s.now())
	return len(s.data)
}

func (s *MemoryStore) Snapshot() map[string][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune(s.now())
	out := make(map[string][]byte, len(s.data))
	for k, item := range s.data {
		out[k] = clone(item.value)
	}
	return out
}

// Restore merges entries into the store, overwriting existing keys. Restored
// entries start a fresh ttl.
func (s *MemoryStore) Restore(entries map[string][]byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for k, v := range entries {
		s.put(k, v, now)
	}
}

func (s *MemoryStore) Backend() string {
	return BackendMemory
}

func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) put(key string, value []byte, now time.Time) {
	if _, exists := s.data[key]; !exists && s.maxEntries > 0 && len(s.data) >= s.maxEntries {
		s.prune(now)
		if len(s.data) >= s.maxEntries {
			s.evictOldest()
		}
	}
	item := memoryItem{value: clone(value)}
	if s.ttl > 0 {
		item.expires = now.Add(s.ttl)
	}
	s.data[key] = item
}

func (s *MemoryStore) expired(item memoryItem, now time.Time) bool {
	return !item.expires.IsZero() && !now.Before(item.expires)
}

// prune drops expired entries. Callers hold the write lock.
func (s *MemoryStore) prune(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for k, item := range s.data {
		if s.expired(item, now) {
			delete(s.data, k)
		}
	}
}

// evictOldest drops the entry written longest ago. Without a ttl every
// expiry is zero, so an arbitrary key goes.
func (s *MemoryStore) evictOldest() {
	var (
		victim string
		oldest time.Time
		found  bool
	)
	for k, item := range s.data {
		if !found || item.expires.Before(oldest) {
			victim, oldest, found = k, item.expires, true
		}
	}
	if found {
		delete(s.data, victim)
	}
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
