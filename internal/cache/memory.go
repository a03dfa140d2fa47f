package cache

import (
	"sync"
	"time"

	"league-activity/internal/dependencies/clock"
)

type entry struct {
	value     []byte
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

// memoryStore is the in-process fallback tier: a TTL map with lazy
// expiry on read and a periodic sweep to bound memory. The mutex is
// held only for map mutation, never across any call that can block.
type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	clock   clock.Clock
	stop    chan struct{}
	done    chan struct{}
}

func newMemoryStore(clk clock.Clock, sweepInterval time.Duration) *memoryStore {
	s := &memoryStore{
		entries: make(map[string]entry),
		clock:   clk,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go s.sweep(sweepInterval)
	return s
}

func (s *memoryStore) get(key string) ([]byte, bool) {
	now := s.clock.Now()

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if e.expired(now) {
		s.mu.Lock()
		// Re-check: a fresher entry may have landed in between.
		if cur, ok := s.entries[key]; ok && cur.expired(now) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (s *memoryStore) set(key string, value []byte, ttl time.Duration) {
	e := entry{value: value, expiresAt: s.clock.Now().Add(ttl)}
	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
}

func (s *memoryStore) delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *memoryStore) sweep(interval time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			now := s.clock.Now()
			s.mu.Lock()
			for key, e := range s.entries {
				if e.expired(now) {
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		}
	}
}

func (s *memoryStore) close() {
	close(s.stop)
	<-s.done
}
