package comparison

import (
	"sync"
	"testing"

	shields "Sediment/internal/calc/shields"
)

var (
	fineSand = shields.Input{WaterDensityKgM3: 1000, SedimentDensityKgM3: 2650, GrainDiameterM: 0.001, ShearVelocityMS: 0.05, CriticalShields: 0.047}
	gravel   = shields.Input{WaterDensityKgM3: 1000, SedimentDensityKgM3: 2650, GrainDiameterM: 0.01, ShearVelocityMS: 0.02, CriticalShields: 0.047}
)

func TestLogStartsEmpty(t *testing.T) {
	if n := NewLog().Len(); n != 0 {
		t.Fatalf("expected empty log, got %d", n)
	}
}

func TestLogAppendKeepsOrder(t *testing.T) {
	l := NewLog()
	r1 := shields.Evaluate(fineSand)
	r2 := shields.Evaluate(gravel)
	l.Append(fineSand, r1)
	l.Append(gravel, r2)

	entries := l.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Input != fineSand || entries[0].Result != r1 {
		t.Fatalf("entry 0 mismatch: %+v", entries[0])
	}
	if entries[1].Input != gravel || entries[1].Result != r2 {
		t.Fatalf("entry 1 mismatch: %+v", entries[1])
	}
	if !entries[0].Result.ErosionOccurs || entries[1].Result.ErosionOccurs {
		t.Fatal("verdicts were not carried through")
	}
}

func TestLogNoDeduplication(t *testing.T) {
	l := NewLog()
	res := shields.Evaluate(fineSand)
	for i := 0; i < 3; i++ {
		l.Append(fineSand, res)
	}
	if l.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", l.Len())
	}
}

func TestLogEntriesIsACopy(t *testing.T) {
	l := NewLog()
	l.Append(fineSand, shields.Evaluate(fineSand))

	snapshot := l.Entries()
	snapshot[0].Input.GrainDiameterM = 42
	snapshot[0].Result.ErosionOccurs = false

	got := l.Entries()[0]
	if got.Input != fineSand || !got.Result.ErosionOccurs {
		t.Fatalf("stored entry was mutated: %+v", got)
	}
}

func TestLogConcurrentAppends(t *testing.T) {
	l := NewLog()
	res := shields.Evaluate(gravel)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Append(gravel, res)
		}()
	}
	wg.Wait()
	if l.Len() != 50 {
		t.Fatalf("expected 50 entries, got %d", l.Len())
	}
}

func TestLogAppendReturnsPosition(t *testing.T) {
	l := NewLog()
	res := shields.Evaluate(fineSand)
	for want := 1; want <= 3; want++ {
		e, n := l.Append(fineSand, res)
		if n != want {
			t.Fatalf("expected position %d, got %d", want, n)
		}
		if e.Input != fineSand {
			t.Fatalf("unexpected entry %+v", e)
		}
	}
}
