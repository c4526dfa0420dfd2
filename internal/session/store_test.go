package session

import (
	"context"
	"testing"
	"time"

	shields "Sediment/internal/calc/shields"
)

var sand = shields.Input{WaterDensityKgM3: 1000, SedimentDensityKgM3: 2650, GrainDiameterM: 0.001, ShearVelocityMS: 0.05, CriticalShields: 0.047}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func storeWithClock(ttl time.Duration) (*Store, *clock) {
	c := &clock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	s := NewStore(ttl)
	s.now = c.now
	return s, c
}

func TestStoreLogIsPerSession(t *testing.T) {
	s := NewStore(time.Hour)
	s.Log("a").Append(sand, shields.Evaluate(sand))

	if s.Log("a").Len() != 1 {
		t.Fatal("expected session a to keep its entry")
	}
	if s.Log("b").Len() != 0 {
		t.Fatal("expected session b to start empty")
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 sessions, got %d", s.Len())
	}
}

func TestStoreGetDoesNotCreate(t *testing.T) {
	s := NewStore(time.Hour)
	for i := 0; i < 100; i++ {
		if _, ok := s.Get("reader"); ok {
			t.Fatal("expected no log for an unknown session")
		}
	}
	if s.Len() != 0 {
		t.Fatalf("lookups must not store logs, got %d", s.Len())
	}

	s.Log("writer").Append(sand, shields.Evaluate(sand))
	l, ok := s.Get("writer")
	if !ok || l.Len() != 1 {
		t.Fatal("expected the writer's log")
	}
}

func TestStoreDiscard(t *testing.T) {
	s := NewStore(time.Hour)
	old := s.Log("a")
	old.Append(sand, shields.Evaluate(sand))

	s.Discard("a")
	if s.Len() != 0 {
		t.Fatalf("expected no sessions, got %d", s.Len())
	}
	if s.Log("a").Len() != 0 {
		t.Fatal("expected a fresh log after discard")
	}
	if old.Len() != 1 {
		t.Fatal("discard must not mutate entries of the old log")
	}
}

func TestStoreExpiry(t *testing.T) {
	s, c := storeWithClock(time.Hour)
	s.Log("idle").Append(sand, shields.Evaluate(sand))
	s.Log("busy").Append(sand, shields.Evaluate(sand))

	c.t = c.t.Add(40 * time.Minute)
	if _, ok := s.Get("busy"); !ok {
		t.Fatal("expected busy session to be live")
	}

	c.t = c.t.Add(30 * time.Minute)
	if n := s.Sweep(); n != 1 {
		t.Fatalf("expected 1 expired session, got %d", n)
	}
	if _, ok := s.Get("idle"); ok {
		t.Fatal("expected idle session to be gone")
	}
	if l, ok := s.Get("busy"); !ok || l.Len() != 1 {
		t.Fatal("expected busy session to survive the sweep")
	}
}

func TestStoreExpiredOnAccess(t *testing.T) {
	s, c := storeWithClock(time.Hour)
	s.Log("a").Append(sand, shields.Evaluate(sand))

	c.t = c.t.Add(2 * time.Hour)
	if _, ok := s.Get("a"); ok {
		t.Fatal("expected expired log to be hidden")
	}
	if s.Len() != 0 {
		t.Fatalf("expected expired log to be removed, got %d", s.Len())
	}

	s.Log("b").Append(sand, shields.Evaluate(sand))
	c.t = c.t.Add(2 * time.Hour)
	if s.Log("b").Len() != 0 {
		t.Fatal("expected a fresh log once the old one expired")
	}
}

func TestStoreRunStopsWithContext(t *testing.T) {
	s := NewStore(time.Nanosecond)
	s.Log("a")
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx, time.Millisecond)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for s.Len() != 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()
	<-done
	if s.Len() != 0 {
		t.Fatal("expected the sweeper to drop the expired log")
	}
}
