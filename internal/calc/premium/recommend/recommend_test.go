package recommend

import "testing"

func TestStabilityAdvice(t *testing.T) {
	if got := Stability(0.15, 0.047); got != unstableAdvice {
		t.Fatalf("expected unstable advice, got %q", got)
	}
	if got := Stability(0.002, 0.047); got != stableAdvice {
		t.Fatalf("expected stable advice, got %q", got)
	}
}

func TestStabilityBoundaryIsStable(t *testing.T) {
	if got := Stability(0.047, 0.047); got != stableAdvice {
		t.Fatalf("equality must be stable, got %q", got)
	}
}

func TestMargin(t *testing.T) {
	if m := Margin(0.094, 0.047); m != 2 {
		t.Fatalf("expected 2, got %f", m)
	}
	if m := Margin(0.1, 0); m != 0 {
		t.Fatalf("expected 0 for non-positive critical, got %f", m)
	}
}
