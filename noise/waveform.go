package noise

import "time"

// Waveform is one captured trace. Samples are never modified by the
// estimator.
type Waveform struct {
	Antenna int
	Channel int
	Samples []float64
}

// Event groups the waveforms of one trigger. All of them share Time.
type Event struct {
	Time      time.Time
	Waveforms []Waveform
}

// Len returns the number of waveforms in the event.
func (e Event) Len() int { return len(e.Waveforms) }
