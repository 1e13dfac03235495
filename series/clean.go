package series

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/galnoise/core"
)

// Clean keeps the samples whose value is at most min(values) + margin and
// drops the rest. Order is preserved. Applying Clean twice with the same
// margin returns the same samples.
func Clean(samples []Sample, margin float64) []Sample {
	if len(samples) == 0 {
		return nil
	}
	threshold := floats.Min(Values(samples)) + margin

	out := make([]Sample, 0, len(samples))
	for _, s := range samples {
		if s.Value <= threshold {
			out = append(out, s)
		}
	}
	return out
}

// Restrict sorts samples by time and keeps start ≤ t < end. A zero start or
// end leaves that side of the window open.
func Restrict(samples []Sample, start, end time.Time) []Sample {
	sorted := SortByTime(samples)
	out := sorted[:0]
	for _, s := range sorted {
		if !start.IsZero() && s.Time.Before(start) {
			continue
		}
		if !end.IsZero() && !s.Time.Before(end) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// Center subtracts the mean value from every sample.
func Center(samples []Sample) []Sample {
	if len(samples) == 0 {
		return nil
	}
	mean := stat.Mean(Values(samples), nil)
	out := make([]Sample, len(samples))
	for i, s := range samples {
		out[i] = Sample{Time: s.Time, Value: s.Value - mean}
	}
	return out
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTime parses an RFC 3339 timestamp, a bare date-time, or a date. Values
// without a zone are UTC.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("series: cannot parse time %q: %w", s, core.ErrDataConsistency)
}
