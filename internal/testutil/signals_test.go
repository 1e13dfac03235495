package testutil

import (
	"math"
	"testing"
	"time"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	// First sample of a sine at phase 0 should be 0.
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
	}
}

func TestGaussianNoiseDifferentSeeds(t *testing.T) {
	a := GaussianNoise(1, 1.0, 16)
	b := GaussianNoise(2, 1.0, 16)
	same := true
	for i := range a {
		if a[i] != b[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestDC(t *testing.T) {
	d := DC(0.5, 4)
	for i, v := range d {
		if v != 0.5 {
			t.Fatalf("DC[%d] = %v, want 0.5", i, v)
		}
	}
}

func TestInjectBursts(t *testing.T) {
	base := DC(0, 16)
	out := InjectBursts(base, 4, []int{1, 3}, 5)
	for i, v := range out {
		seg := i / 4
		hit := seg == 1 || seg == 3
		if hit && math.Abs(v) != 5 {
			t.Fatalf("out[%d] = %v, want ±5", i, v)
		}
		if !hit && v != 0 {
			t.Fatalf("out[%d] = %v, want 0", i, v)
		}
	}
	if base[4] != 0 {
		t.Fatal("InjectBursts modified its input")
	}
}

func TestDualSinusoidAtEpoch(t *testing.T) {
	times := []time.Time{time.Unix(0, 0)}
	got := DualSinusoid(times, 1e-5, 2, math.Pi/2, 1e-5, 1, 0, 0.5)
	if math.Abs(got[0]-2.5) > 1e-12 {
		t.Fatalf("got %v, want 2.5", got[0])
	}
}

func TestEvenTimes(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	ts := EvenTimes(start, time.Hour, 3)
	if !ts[2].Equal(start.Add(2 * time.Hour)) {
		t.Fatalf("ts[2] = %v", ts[2])
	}
}
