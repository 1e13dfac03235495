package series

import (
	"fmt"
	"sort"
	"time"

	"github.com/cwbudde/galnoise/core"
)

// Sample is one measurement of a channel.
type Sample struct {
	Time  time.Time
	Value float64
}

// Series is a ChannelTimeSeries: one time-ordered []Sample per (antenna,
// channel) pair of a fixed-shape matrix. A Series is never modified after
// construction; every transformation returns a new one.
type Series struct {
	antennas int
	channels int
	data     [][]Sample
}

// FromChannels builds a Series of the given shape from per-key samples. Keys
// outside the matrix are rejected; missing keys become empty channels. Each
// channel is copied and sorted by time.
func FromChannels(antennas, channels int, byKey map[core.Key][]Sample) (*Series, error) {
	if antennas <= 0 || channels <= 0 {
		return nil, fmt.Errorf("series: invalid shape %dx%d: %w", antennas, channels, core.ErrDataConsistency)
	}
	s := &Series{antennas: antennas, channels: channels, data: make([][]Sample, antennas*channels)}
	for k, samples := range byKey {
		if !s.contains(k) {
			return nil, fmt.Errorf("series: %s outside %dx%d matrix: %w", k, antennas, channels, core.ErrDataConsistency)
		}
		s.data[s.index(k)] = SortByTime(samples)
	}
	return s, nil
}

// Antennas returns the number of antennas.
func (s *Series) Antennas() int { return s.antennas }

// Channels returns the number of channels per antenna.
func (s *Series) Channels() int { return s.channels }

// Keys lists every pair of the matrix in antenna-major order.
func (s *Series) Keys() []core.Key { return core.Keys(s.antennas, s.channels) }

// Len returns the number of samples of k, or 0 for a key outside the matrix.
func (s *Series) Len(k core.Key) int {
	if !s.contains(k) {
		return 0
	}
	return len(s.data[s.index(k)])
}

// Channel returns a copy of the samples of k in time order.
func (s *Series) Channel(k core.Key) []Sample {
	if !s.contains(k) {
		return nil
	}
	src := s.data[s.index(k)]
	out := make([]Sample, len(src))
	copy(out, src)
	return out
}

// Clean applies Clean to every channel independently.
func (s *Series) Clean(margin float64) *Series {
	return s.mapChannels(func(in []Sample) []Sample { return Clean(in, margin) })
}

// Restrict applies Restrict to every channel.
func (s *Series) Restrict(start, end time.Time) *Series {
	return s.mapChannels(func(in []Sample) []Sample { return Restrict(in, start, end) })
}

func (s *Series) mapChannels(fn func([]Sample) []Sample) *Series {
	out := &Series{antennas: s.antennas, channels: s.channels, data: make([][]Sample, len(s.data))}
	for i, ch := range s.data {
		out.data[i] = fn(ch)
	}
	return out
}

func (s *Series) contains(k core.Key) bool {
	return k.Antenna >= 0 && k.Antenna < s.antennas && k.Channel >= 0 && k.Channel < s.channels
}

func (s *Series) index(k core.Key) int {
	return k.Antenna*s.channels + k.Channel
}

// SortByTime returns a copy of samples ordered by time ascending. Samples
// with equal timestamps keep their relative order.
func SortByTime(samples []Sample) []Sample {
	out := make([]Sample, len(samples))
	copy(out, samples)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out
}

// Values extracts the values of samples.
func Values(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Value
	}
	return out
}

// Times extracts the timestamps of samples.
func Times(samples []Sample) []time.Time {
	out := make([]time.Time, len(samples))
	for i, s := range samples {
		out[i] = s.Time
	}
	return out
}
