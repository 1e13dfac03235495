package testutil

import (
	"math"
	"testing"
)

func TestMaxAbsDiff(t *testing.T) {
	a := []float64{1.0, 2.0, 3.0}
	b := []float64{1.0, 2.1, 3.0}

	d, err := MaxAbsDiff(a, b)
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}

	if math.Abs(d-0.1) > 1e-15 {
		t.Fatalf("MaxAbsDiff = %v, want 0.1", d)
	}
}

func TestMaxAbsDiffLengthMismatch(t *testing.T) {
	_, err := MaxAbsDiff([]float64{1}, []float64{1, 2})
	if err == nil {
		t.Fatal("expected error for length mismatch")
	}
}

func TestMaxAbsDiffIdentical(t *testing.T) {
	a := []float64{1, 2, 3}

	d, err := MaxAbsDiff(a, a)
	if err != nil {
		t.Fatalf("MaxAbsDiff error: %v", err)
	}

	if d != 0 {
		t.Fatalf("MaxAbsDiff = %v, want 0 for identical slices", d)
	}
}

func TestWrapPhase(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{7, 7 - 2*math.Pi},
	}
	for _, tt := range tests {
		if got := WrapPhase(tt.in); math.Abs(got-tt.want) > 1e-12 {
			t.Fatalf("WrapPhase(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRequireHelpersPass(t *testing.T) {
	RequireNearlyEqual(t, "x", 1.0, 1.0+1e-13, 1e-12)
	RequireRelative(t, "y", 1.005, 1.0, 0.01)
	RequireSliceNearlyEqual(t, []float64{1, 2}, []float64{1, 2}, 0)
	RequireFinite(t, []float64{0, 1})
}
