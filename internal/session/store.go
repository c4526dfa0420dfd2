package session

import (
	"context"
	"sync"
	"time"

	comparison "Sediment/internal/calc/comparison"
)

type entry struct {
	log  *comparison.Log
	seen time.Time
}

// Store owns the comparison logs of live sessions. Logs are held in memory
// only; a log untouched for longer than the session lifetime is dropped.
type Store struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	logs map[string]*entry
}

// NewStore returns a store whose sessions expire after ttl without access.
// A non-positive ttl keeps logs until they are discarded.
func NewStore(ttl time.Duration) *Store {
	return &Store{ttl: ttl, now: time.Now, logs: make(map[string]*entry)}
}

func (s *Store) expired(e *entry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.seen) > s.ttl
}

// Log returns the session's log, creating an empty one on first use or
// after the previous one expired.
func (s *Store) Log(id string) *comparison.Log {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.logs[id]
	if !ok || s.expired(e, now) {
		e = &entry{log: comparison.NewLog()}
		s.logs[id] = e
	}
	e.seen = now
	return e.log
}

// Get returns the session's log without creating one.
func (s *Store) Get(id string) (*comparison.Log, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	e, ok := s.logs[id]
	if !ok {
		return nil, false
	}
	if s.expired(e, now) {
		delete(s.logs, id)
		return nil, false
	}
	e.seen = now
	return e.log, true
}

// Discard ends the session's log. The next Log call starts a fresh one.
func (s *Store) Discard(id string) {
	s.mu.Lock()
	delete(s.logs, id)
	s.mu.Unlock()
}

// Sweep drops expired logs and reports how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for id, e := range s.logs {
		if s.expired(e, now) {
			delete(s.logs, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.logs)
}
