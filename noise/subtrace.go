package noise

import (
	"sort"

	timestats "github.com/cwbudde/galnoise/stats/time"
)

// SegmentCount returns the number of sub-traces used for a waveform of n
// samples and segment length segLen: ⌊n/segLen⌋ − 1, never negative.
func SegmentCount(n, segLen int) int {
	if segLen <= 0 || n <= 0 {
		return 0
	}
	count := n/segLen - 1
	if count < 0 {
		return 0
	}
	return count
}

// Subtraces returns the segments of samples as sub-slices sharing its
// backing array. Segment i covers [i·segLen, (i+1)·segLen).
func Subtraces(samples []float64, segLen int) [][]float64 {
	count := SegmentCount(len(samples), segLen)
	if count == 0 {
		return nil
	}
	out := make([][]float64, count)
	for i := range out {
		start := i * segLen
		out[i] = samples[start : start+segLen : start+segLen]
	}
	return out
}

// SubtraceRMS returns the RMS of every segment, sorted ascending.
func SubtraceRMS(samples []float64, segLen int) []float64 {
	segs := Subtraces(samples, segLen)
	if len(segs) == 0 {
		return nil
	}
	out := make([]float64, len(segs))
	for i, seg := range segs {
		out[i] = timestats.RMS(seg)
	}
	sort.Float64s(out)
	return out
}
