// Package config reads run configuration files.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"

	"github.com/cwbudde/galnoise/core"
	"github.com/cwbudde/galnoise/series"
)

// File mirrors the YAML run configuration. Unset keys keep their defaults.
type File struct {
	SegmentLength int      `yaml:"segment_length,omitempty"`
	LowestK       int      `yaml:"lowest_k,omitempty"`
	Reduction     string   `yaml:"reduction,omitempty"`
	OutlierMargin *float64 `yaml:"outlier_margin,omitempty"`
	Window        int      `yaml:"window,omitempty"`
	Antennas      int      `yaml:"antennas,omitempty"`
	Channels      int      `yaml:"channels,omitempty"`
	SiderealHz    float64  `yaml:"sidereal_hz,omitempty"`
	SolarHz       float64  `yaml:"solar_hz,omitempty"`
	TraceLength   *int     `yaml:"trace_length,omitempty"`
	SampleRate    float64  `yaml:"sample_rate,omitempty"`
	Impedance     float64  `yaml:"impedance,omitempty"`
	Longitude     *float64 `yaml:"longitude,omitempty"`

	// Start and End bound the analysed time window; either may be empty.
	Start string `yaml:"start,omitempty"`
	End   string `yaml:"end,omitempty"`

	Compression string `yaml:"compression,omitempty"`
	Debug       bool   `yaml:"debug,omitempty"`
}

// Load reads and parses a YAML configuration file.
func Load(filename string) (*File, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML configuration.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if _, err := f.Options(); err != nil {
		return nil, err
	}
	if _, _, err := f.TimeWindow(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Options converts the file into core options. Out-of-range values are
// reported as core.ErrDataConsistency.
func (f *File) Options() ([]core.Option, error) {
	if err := f.validate(); err != nil {
		return nil, err
	}
	var opts []core.Option
	add := func(set bool, opt core.Option) {
		if set {
			opts = append(opts, opt)
		}
	}

	add(f.SegmentLength != 0, core.WithSegmentLength(f.SegmentLength))
	add(f.LowestK != 0, core.WithLowestK(f.LowestK))
	if f.Reduction != "" {
		r, err := core.ParseReduction(f.Reduction)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		opts = append(opts, core.WithReduction(r))
	}
	if f.OutlierMargin != nil {
		opts = append(opts, core.WithOutlierMargin(*f.OutlierMargin))
	}
	add(f.Window != 0, core.WithWindow(f.Window))
	add(f.Antennas != 0, core.WithAntennas(f.Antennas))
	add(f.Channels != 0, core.WithChannels(f.Channels))
	add(f.SiderealHz != 0, core.WithSiderealHz(f.SiderealHz))
	add(f.SolarHz != 0, core.WithSolarHz(f.SolarHz))
	if f.TraceLength != nil {
		opts = append(opts, core.WithTraceLength(*f.TraceLength))
	}
	add(f.SampleRate != 0, core.WithSampleRate(f.SampleRate))
	add(f.Impedance != 0, core.WithImpedance(f.Impedance))
	if f.Longitude != nil {
		opts = append(opts, core.WithLongitude(*f.Longitude))
	}
	return opts, nil
}

// validate rejects values the core options would silently ignore. Zero
// counts and rates mean unset.
func (f *File) validate() error {
	for _, c := range []struct {
		key string
		n   int
	}{
		{"segment_length", f.SegmentLength},
		{"lowest_k", f.LowestK},
		{"window", f.Window},
		{"antennas", f.Antennas},
		{"channels", f.Channels},
	} {
		if c.n < 0 {
			return invalid(c.key, c.n)
		}
	}
	for _, c := range []struct {
		key string
		x   float64
	}{
		{"sidereal_hz", f.SiderealHz},
		{"solar_hz", f.SolarHz},
		{"sample_rate", f.SampleRate},
		{"impedance", f.Impedance},
	} {
		if c.x < 0 || !core.IsFinite(c.x) {
			return invalid(c.key, c.x)
		}
	}
	if f.OutlierMargin != nil && (*f.OutlierMargin < 0 || !core.IsFinite(*f.OutlierMargin)) {
		return invalid("outlier_margin", *f.OutlierMargin)
	}
	if f.TraceLength != nil && *f.TraceLength < 0 {
		return invalid("trace_length", *f.TraceLength)
	}
	if f.Longitude != nil && !(*f.Longitude >= -180 && *f.Longitude <= 180) {
		return invalid("longitude", *f.Longitude)
	}
	return nil
}

func invalid(key string, v any) error {
	return fmt.Errorf("config: %s: invalid value %v: %w", key, v, core.ErrDataConsistency)
}

// Config applies the file over base.
func (f *File) Config(base core.Config) (core.Config, error) {
	opts, err := f.Options()
	if err != nil {
		return base, err
	}
	return base.Apply(opts...), nil
}

// TimeWindow parses Start and End. Empty values yield zero times.
func (f *File) TimeWindow() (start, end time.Time, err error) {
	if f.Start != "" {
		if start, err = series.ParseTime(f.Start); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("config: start: %w", err)
		}
	}
	if f.End != "" {
		if end, err = series.ParseTime(f.End); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("config: end: %w", err)
		}
	}
	if !start.IsZero() && !end.IsZero() && !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("config: start %s not before end %s: %w",
			f.Start, f.End, core.ErrDataConsistency)
	}
	return start, end, nil
}
