package time

import (
	"math"
	"testing"

	"github.com/cwbudde/galnoise/internal/testutil"
)

const tolerance = 1e-10

func TestRMS(t *testing.T) {
	tests := []struct {
		name   string
		signal []float64
		want   float64
	}{
		{name: "empty", signal: nil, want: 0},
		{name: "dc", signal: testutil.DC(2, 100), want: 2},
		{name: "square", signal: []float64{3, -3, 3, -3}, want: 3},
		{name: "mixed", signal: []float64{1, 2, 3, 4}, want: math.Sqrt(7.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RMS(tt.signal); math.Abs(got-tt.want) > tolerance {
				t.Fatalf("RMS() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRMSSine(t *testing.T) {
	// 64 full cycles at 1 kHz / 64 kHz.
	s := testutil.DeterministicSine(1000, 64000, 2, 64*64)
	want := 2 / math.Sqrt2
	if got := RMS(s); math.Abs(got-want) > 1e-9 {
		t.Fatalf("RMS(sine) = %v, want %v", got, want)
	}
}

func TestDC(t *testing.T) {
	if got := DC(nil); got != 0 {
		t.Fatalf("DC(nil) = %v, want 0", got)
	}
	if got := DC([]float64{1, 2, 3, 4}); math.Abs(got-2.5) > tolerance {
		t.Fatalf("DC = %v, want 2.5", got)
	}
}

func TestPopStdDev(t *testing.T) {
	if got := PopStdDev([]float64{5}); got != 0 {
		t.Fatalf("PopStdDev(single) = %v, want 0", got)
	}
	// Population std of {2,4,4,4,5,5,7,9} is exactly 2.
	if got := PopStdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}); math.Abs(got-2) > tolerance {
		t.Fatalf("PopStdDev = %v, want 2", got)
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{name: "odd", values: []float64{5, 1, 3}, want: 3},
		{name: "even", values: []float64{4, 1, 3, 2}, want: 2.5},
		{name: "single", values: []float64{7}, want: 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := append([]float64(nil), tt.values...)
			if got := Median(in); got != tt.want {
				t.Fatalf("Median() = %v, want %v", got, tt.want)
			}
			for i := range in {
				if in[i] != tt.values[i] {
					t.Fatal("Median modified its input")
				}
			}
		})
	}

	if !math.IsNaN(Median(nil)) {
		t.Fatal("Median(nil) should be NaN")
	}
}
