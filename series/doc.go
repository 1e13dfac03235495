// Package series assembles per-event noise estimates into per-channel time
// series and prepares them for periodicity fitting.
//
// A [Builder] accumulates (timestamp, antenna, channel, value) measurements
// in a fixed antenna × channel matrix. [Builder.Finalize] sorts every channel
// by time and returns an immutable [Series]. Cleaning, smoothing, time-window
// restriction and centring then operate on one channel's []Sample at a time:
//
//	s, err := b.Finalize()
//	cleaned := s.Clean(17)
//	sm, err := series.Smooth(cleaned.Channel(key), 150)
//	window := series.Restrict(sm.Defined(), start, end)
//	centred := series.Center(window)
//
// Cleaning is per channel, so after it different channels may keep different
// timestamps.
package series
