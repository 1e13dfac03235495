// Package report serialises analysis results as MessagePack.
package report

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/cwbudde/galnoise/core"
	"github.com/cwbudde/galnoise/fit"
	"github.com/cwbudde/galnoise/pipeline"
	"github.com/cwbudde/galnoise/series"
)

// Report is the persisted outcome of one run.
type Report struct {
	RunID    string      `msgpack:"run_id"`
	Created  time.Time   `msgpack:"created"`
	Config   core.Config `msgpack:"config"`
	Start    time.Time   `msgpack:"start,omitempty"`
	End      time.Time   `msgpack:"end,omitempty"`
	Stats    *Stats      `msgpack:"stats,omitempty"`
	Channels []Channel   `msgpack:"channels"`
}

// Stats mirrors pipeline.Stats.
type Stats struct {
	Events    int            `msgpack:"events"`
	Processed int            `msgpack:"processed"`
	Skipped   int            `msgpack:"skipped"`
	ByReason  map[string]int `msgpack:"by_reason,omitempty"`
}

// Channel is the analysis of one (antenna, channel) pair.
type Channel struct {
	Name     string   `msgpack:"name"`
	Antenna  int      `msgpack:"antenna"`
	Channel  int      `msgpack:"channel"`
	Samples  int      `msgpack:"samples"`
	Cleaned  int      `msgpack:"cleaned"`
	Error    string   `msgpack:"error,omitempty"`
	Fit      *Fit     `msgpack:"fit,omitempty"`
	Window   int      `msgpack:"window"`
	Smoothed []Point  `msgpack:"smoothed,omitempty"`
	Centered []Sample `msgpack:"centered,omitempty"`
	Raw      []Sample `msgpack:"raw,omitempty"`
}

// Param is a fitted value with its standard error.
type Param struct {
	Value  float64 `msgpack:"value"`
	StdErr float64 `msgpack:"stderr"`
}

// Fit is the fitted model of one channel.
type Fit struct {
	SiderealHz        float64   `msgpack:"sidereal_hz"`
	SolarHz           float64   `msgpack:"solar_hz"`
	SiderealAmplitude Param     `msgpack:"sidereal_amplitude"`
	SiderealPhase     Param     `msgpack:"sidereal_phase"`
	SolarAmplitude    Param     `msgpack:"solar_amplitude"`
	SolarPhase        Param     `msgpack:"solar_phase"`
	Offset            Param     `msgpack:"offset"`
	Fitted            []float64 `msgpack:"fitted"`
	MSE               float64   `msgpack:"mse"`
	Iterations        int       `msgpack:"iterations"`
	Observations      int       `msgpack:"observations"`
	DoF               int       `msgpack:"dof"`
	Termination       string    `msgpack:"termination"`
	SiderealPeak      time.Time `msgpack:"sidereal_peak,omitempty"`
	PeakLMST          float64   `msgpack:"peak_lmst"`
}

// Sample is one (time, value) pair.
type Sample struct {
	Time  time.Time `msgpack:"t"`
	Value float64   `msgpack:"v"`
}

// Point is one smoothed value; Value is meaningless unless Defined.
type Point struct {
	Time    time.Time `msgpack:"t"`
	Value   float64   `msgpack:"v"`
	Defined bool      `msgpack:"d"`
}

// New assembles a report from analysis results.
func New(runID string, cfg core.Config, results []pipeline.ChannelResult) *Report {
	r := &Report{
		RunID:    runID,
		Created:  time.Now().UTC(),
		Config:   cfg,
		Channels: make([]Channel, 0, len(results)),
	}
	for _, res := range results {
		r.Channels = append(r.Channels, channelFrom(res, cfg))
	}
	return r
}

// WithStats attaches ingestion counters.
func (r *Report) WithStats(st pipeline.Stats) *Report {
	s := &Stats{Events: st.Events, Processed: st.Processed, Skipped: st.Skipped}
	if len(st.SkippedByReason) > 0 {
		s.ByReason = make(map[string]int, len(st.SkippedByReason))
		for k, v := range st.SkippedByReason {
			s.ByReason[string(k)] = v
		}
	}
	r.Stats = s
	return r
}

// WithTimeWindow records the analysed window.
func (r *Report) WithTimeWindow(start, end time.Time) *Report {
	r.Start, r.End = start, end
	return r
}

// Channel returns the entry named name (rms{antenna}{channel}).
func (r *Report) Channel(name string) (Channel, bool) {
	for _, c := range r.Channels {
		if c.Name == name {
			return c, true
		}
	}
	return Channel{}, false
}

// Encode writes r to w.
func (r *Report) Encode(w io.Writer) error {
	if err := msgpack.NewEncoder(w).Encode(r); err != nil {
		return fmt.Errorf("report: encode: %w", err)
	}
	return nil
}

// Decode reads a report written by Encode.
func Decode(rd io.Reader) (*Report, error) {
	var r Report
	if err := msgpack.NewDecoder(rd).Decode(&r); err != nil {
		return nil, fmt.Errorf("report: decode: %w", err)
	}
	return &r, nil
}

func channelFrom(res pipeline.ChannelResult, cfg core.Config) Channel {
	c := Channel{
		Name:     res.Key.Name(),
		Antenna:  res.Key.Antenna,
		Channel:  res.Key.Channel,
		Samples:  res.Samples,
		Cleaned:  res.Cleaned,
		Window:   res.Smoothed.Window,
		Centered: samples(res.Centered),
		Raw:      samples(res.Raw),
	}
	if res.Err != nil {
		c.Error = res.Err.Error()
	}
	for _, p := range res.Smoothed.Points {
		c.Smoothed = append(c.Smoothed, Point{Time: p.Time, Value: p.Value, Defined: p.Defined})
	}
	if res.Fit != nil {
		c.Fit = fitFrom(*res.Fit, cfg.Longitude)
	}
	return c
}

func fitFrom(f fit.Result, longitude float64) *Fit {
	out := &Fit{
		SiderealHz:        f.Sidereal.Frequency,
		SolarHz:           f.Solar.Frequency,
		SiderealAmplitude: Param(f.Sidereal.Amplitude),
		SiderealPhase:     Param(f.Sidereal.Phase),
		SolarAmplitude:    Param(f.Solar.Amplitude),
		SolarPhase:        Param(f.Solar.Phase),
		Offset:            Param(f.Offset),
		Fitted:            f.Fitted,
		MSE:               f.MSE,
		Iterations:        f.Iterations,
		Observations:      f.Observations,
		DoF:               f.DoF,
		Termination:       string(f.Termination),
		SiderealPeak:      f.SiderealPeak,
		PeakLMST:          math.NaN(),
	}
	if !f.SiderealPeak.IsZero() {
		out.PeakLMST = f.PeakLocalSiderealHours(longitude)
	}
	return out
}

func samples(in []series.Sample) []Sample {
	if len(in) == 0 {
		return nil
	}
	out := make([]Sample, len(in))
	for i, s := range in {
		out[i] = Sample{Time: s.Time, Value: s.Value}
	}
	return out
}
