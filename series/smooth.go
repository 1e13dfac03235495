package series

import (
	"errors"
	"fmt"
	"time"

	"github.com/cwbudde/algo-vecmath"
)

// ErrInvalidWindow is returned for a non-positive smoothing window.
var ErrInvalidWindow = errors.New("series: smoothing window must be positive")

// Point is one entry of a smoothed series. Value is meaningful only when
// Defined is true.
type Point struct {
	Time    time.Time
	Value   float64
	Defined bool
}

// Smoothed is a trailing moving average of a channel.
type Smoothed struct {
	Window int
	Points []Point
}

// Smooth computes the trailing mean over window samples, in the order of
// samples (time order for a finalized channel). The first window−1 points
// are undefined. A window of 1 reproduces the input.
func Smooth(samples []Sample, window int) (Smoothed, error) {
	if window <= 0 {
		return Smoothed{}, fmt.Errorf("%w: %d", ErrInvalidWindow, window)
	}

	values := Values(samples)
	points := make([]Point, len(samples))
	for i, s := range samples {
		points[i].Time = s.Time
		if i+1 < window {
			continue
		}
		if window == 1 {
			points[i].Value = s.Value
		} else {
			points[i].Value = vecmath.Sum(values[i+1-window:i+1]) / float64(window)
		}
		points[i].Defined = true
	}
	return Smoothed{Window: window, Points: points}, nil
}

// Defined returns the defined points as samples.
func (s Smoothed) Defined() []Sample {
	out := make([]Sample, 0, len(s.Points))
	for _, p := range s.Points {
		if p.Defined {
			out = append(out, Sample{Time: p.Time, Value: p.Value})
		}
	}
	return out
}

// Len returns the number of points, defined or not.
func (s Smoothed) Len() int { return len(s.Points) }
