package series

import (
	"fmt"
	"math"
	"time"

	"github.com/cwbudde/galnoise/core"
)

// Event carries the estimates of one accepted event: every channel shares
// the event timestamp. Channels never set are missing, not zero.
type Event struct {
	Time     time.Time
	antennas int
	channels int
	values   []float64
	present  []bool
}

// NewEvent returns an empty event for an antennas × channels matrix.
func NewEvent(t time.Time, antennas, channels int) *Event {
	if antennas < 0 {
		antennas = 0
	}
	if channels < 0 {
		channels = 0
	}
	return &Event{
		Time:     t,
		antennas: antennas,
		channels: channels,
		values:   make([]float64, antennas*channels),
		present:  make([]bool, antennas*channels),
	}
}

// Set records the estimate of one channel.
func (e *Event) Set(antenna, channel int, value float64) error {
	if antenna < 0 || antenna >= e.antennas || channel < 0 || channel >= e.channels {
		return fmt.Errorf("series: antenna %d channel %d outside %dx%d event: %w",
			antenna, channel, e.antennas, e.channels, core.ErrDataConsistency)
	}
	i := antenna*e.channels + channel
	e.values[i] = value
	e.present[i] = true
	return nil
}

// Value returns the estimate of one channel and whether it was set.
func (e *Event) Value(antenna, channel int) (float64, bool) {
	if antenna < 0 || antenna >= e.antennas || channel < 0 || channel >= e.channels {
		return math.NaN(), false
	}
	i := antenna*e.channels + channel
	return e.values[i], e.present[i]
}

// Present returns the number of channels set.
func (e *Event) Present() int {
	n := 0
	for _, p := range e.present {
		if p {
			n++
		}
	}
	return n
}
