package noise

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/galnoise/core"
	"github.com/cwbudde/galnoise/internal/testutil"
)

// stepped builds a waveform whose segment i is the constant levels[i], so the
// RMS of segment i is |levels[i]|.
func stepped(segLen int, levels []float64) []float64 {
	out := make([]float64, 0, segLen*len(levels))
	for _, v := range levels {
		out = append(out, testutil.DC(v, segLen)...)
	}
	return out
}

func TestSegmentCount(t *testing.T) {
	tests := []struct {
		n, segLen, want int
	}{
		{n: 1024, segLen: 64, want: 15},
		{n: 1000, segLen: 64, want: 14},
		{n: 128, segLen: 64, want: 1},
		{n: 127, segLen: 64, want: 0},
		{n: 64, segLen: 64, want: 0},
		{n: 0, segLen: 64, want: 0},
		{n: 10, segLen: 0, want: 0},
	}

	for _, tt := range tests {
		if got := SegmentCount(tt.n, tt.segLen); got != tt.want {
			t.Fatalf("SegmentCount(%d, %d) = %d, want %d", tt.n, tt.segLen, got, tt.want)
		}
	}
}

func TestSubtracesTileInOrder(t *testing.T) {
	for _, n := range []int{130, 500, 1024, 1100} {
		for _, segLen := range []int{8, 32, 64} {
			samples := make([]float64, n)
			for i := range samples {
				samples[i] = float64(i)
			}
			segs := Subtraces(samples, segLen)
			if want := n/segLen - 1; len(segs) != want {
				t.Fatalf("n=%d L=%d: %d segments, want %d", n, segLen, len(segs), want)
			}
			for i, seg := range segs {
				if len(seg) != segLen {
					t.Fatalf("segment %d has length %d", i, len(seg))
				}
				if seg[0] != float64(i*segLen) || seg[segLen-1] != float64((i+1)*segLen-1) {
					t.Fatalf("segment %d spans [%v, %v]", i, seg[0], seg[segLen-1])
				}
			}
		}
	}
}

func TestSubtraceRMSSorted(t *testing.T) {
	levels := []float64{5, -1, 3, 2, 9}
	rms := SubtraceRMS(stepped(4, levels), 4)
	testutil.RequireSliceNearlyEqual(t, rms, []float64{1, 2, 3, 5}, 1e-12)
}

func TestEstimateMeanAndMedian(t *testing.T) {
	// Segments 0..14 have RMS (i+1)², segment 15 is silent and must be ignored.
	levels := make([]float64, 16)
	for i := 0; i < 15; i++ {
		levels[i] = float64((i + 1) * (i + 1))
	}
	samples := stepped(64, levels)

	mean, err := NewEstimator().Estimate(samples)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if mean.Segments != 15 || mean.Used != 10 {
		t.Fatalf("segments/used = %d/%d, want 15/10", mean.Segments, mean.Used)
	}
	testutil.RequireNearlyEqual(t, "mean", mean.Value, 38.5, 1e-12)

	median, err := NewEstimator(core.WithReduction(core.ReductionMedian)).Estimate(samples)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	testutil.RequireNearlyEqual(t, "median", median.Value, 30.5, 1e-12)
	if median.Reduction != core.ReductionMedian {
		t.Fatalf("reduction = %v", median.Reduction)
	}
}

func TestEstimateFewerSegmentsThanK(t *testing.T) {
	samples := stepped(64, []float64{3, 1, 2, 100})
	e, err := NewEstimator().Estimate(samples)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if e.Used != 3 {
		t.Fatalf("used = %d, want 3", e.Used)
	}
	testutil.RequireNearlyEqual(t, "value", e.Value, 2, 1e-12)
}

func TestEstimateInsufficientData(t *testing.T) {
	for _, n := range []int{0, 63, 64, 127} {
		_, err := NewEstimator().Estimate(make([]float64, n))
		if !errors.Is(err, core.ErrInsufficientData) {
			t.Fatalf("n=%d: err = %v, want ErrInsufficientData", n, err)
		}
	}
}

func TestEstimateIgnoresBurstsInFewSegments(t *testing.T) {
	// 4 full cycles per segment: every segment has the same RMS.
	clean := testutil.DeterministicSine(1, 16, 3, 1024)
	base, err := NewEstimator().Estimate(clean)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}

	polluted := testutil.InjectBursts(clean, 64, []int{2, 7, 11}, 500)
	got, err := NewEstimator().Estimate(polluted)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	testutil.RequireNearlyEqual(t, "estimate", got.Value, base.Value, 1e-12)
	testutil.RequireNearlyEqual(t, "estimate", got.Value, 3/math.Sqrt2, 1e-9)
	if got.TraceRMS <= base.TraceRMS {
		t.Fatalf("trace RMS %v should rise above %v", got.TraceRMS, base.TraceRMS)
	}
}

func TestEstimateRobustToBurstsInExcludedSegments(t *testing.T) {
	clean := testutil.DeterministicSine(1, 16, 1, 1024+20)
	base, _ := NewEstimator().Estimate(clean)

	// Segment 15 is the excluded last full segment, 16 is the partial tail.
	polluted := testutil.InjectBursts(clean, 64, []int{15, 16}, 1e4)
	got, err := NewEstimator().Estimate(polluted)
	if err != nil {
		t.Fatalf("Estimate: %v", err)
	}
	if got.Value != base.Value {
		t.Fatalf("value = %v, want %v", got.Value, base.Value)
	}
}

func TestEstimateMonotonicUnderInterference(t *testing.T) {
	clean := testutil.GaussianNoise(7, 1, 1024)
	segments := []int{0, 3, 4, 5, 8, 9}
	est := NewEstimator()

	prev := math.Inf(-1)
	for _, amp := range []float64{0, 5, 50, 500, 5000} {
		e, err := est.Estimate(testutil.InjectBursts(clean, 64, segments, amp))
		if err != nil {
			t.Fatalf("Estimate: %v", err)
		}
		if e.Value < prev {
			t.Fatalf("amp %v: estimate %v dropped below %v", amp, e.Value, prev)
		}
		prev = e.Value
	}
}

func TestNewEstimatorFromConfigRepairsInvalid(t *testing.T) {
	est := NewEstimatorFromConfig(core.Config{})
	if est.SegmentLength() != core.DefaultSegmentLength || est.LowestK() != core.DefaultLowestK {
		t.Fatalf("got L=%d K=%d", est.SegmentLength(), est.LowestK())
	}
	if est.Reduction() != core.ReductionMean {
		t.Fatalf("reduction = %v", est.Reduction())
	}
}
