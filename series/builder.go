package series

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cwbudde/galnoise/core"
)

// Builder accumulates noise estimates into per-channel sequences. It is owned
// by a single ingestion loop and is not safe for concurrent use.
type Builder struct {
	antennas        int
	channels        int
	requireComplete bool
	logger          *zap.Logger

	data   [][]Sample
	events int
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithRequireComplete controls the equal-length check of Finalize. It is on
// by default because every accepted event measures every channel.
func WithRequireComplete(require bool) BuilderOption {
	return func(b *Builder) {
		b.requireComplete = require
	}
}

// WithLogger sets the logger used for finalize diagnostics.
func WithLogger(logger *zap.Logger) BuilderOption {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBuilder creates a builder for an antennas × channels matrix. Non-positive
// dimensions fall back to the defaults.
func NewBuilder(antennas, channels int, opts ...BuilderOption) *Builder {
	if antennas <= 0 {
		antennas = core.DefaultAntennas
	}
	if channels <= 0 {
		channels = core.DefaultChannels
	}
	b := &Builder{
		antennas:        antennas,
		channels:        channels,
		requireComplete: true,
		logger:          zap.NewNop(),
		data:            make([][]Sample, antennas*channels),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Add appends one measurement. Arrival order is free; Finalize sorts.
func (b *Builder) Add(t time.Time, antenna, channel int, value float64) error {
	if err := b.check(t, antenna, channel, value); err != nil {
		return err
	}
	i := antenna*b.channels + channel
	b.data[i] = append(b.data[i], Sample{Time: t, Value: value})
	return nil
}

// Ingest appends every present channel of ev under the shared event
// timestamp. The event is validated as a whole first: on error nothing is
// appended.
func (b *Builder) Ingest(ev *Event) error {
	if ev == nil {
		return fmt.Errorf("series: nil event: %w", core.ErrDataConsistency)
	}
	if ev.antennas != b.antennas || ev.channels != b.channels {
		return fmt.Errorf("series: event shape %dx%d, builder %dx%d: %w",
			ev.antennas, ev.channels, b.antennas, b.channels, core.ErrDataConsistency)
	}
	for a := 0; a < b.antennas; a++ {
		for c := 0; c < b.channels; c++ {
			if v, ok := ev.Value(a, c); ok {
				if err := b.check(ev.Time, a, c, v); err != nil {
					return err
				}
			}
		}
	}
	for i, ok := range ev.present {
		if ok {
			b.data[i] = append(b.data[i], Sample{Time: ev.Time, Value: ev.values[i]})
		}
	}
	b.events++
	return nil
}

// Events returns the number of events ingested through Ingest.
func (b *Builder) Events() int { return b.events }

// Finalize returns the accumulated samples as a time-sorted Series. With
// RequireComplete on, diverging channel lengths fail with
// core.ErrDataConsistency instead of being reshaped. The builder may keep
// accumulating afterwards; the returned Series does not share memory with it.
func (b *Builder) Finalize() (*Series, error) {
	if b.requireComplete {
		if err := b.checkLengths(); err != nil {
			return nil, err
		}
	}

	s := &Series{antennas: b.antennas, channels: b.channels, data: make([][]Sample, len(b.data))}
	for i, ch := range b.data {
		s.data[i] = SortByTime(ch)
	}

	b.logger.Debug("series finalized",
		zap.Int("antennas", b.antennas),
		zap.Int("channels", b.channels),
		zap.Int("events", b.events),
		zap.Int("samples", len(s.data[0])),
	)
	return s, nil
}

func (b *Builder) checkLengths() error {
	want := len(b.data[0])
	var bad []string
	for _, k := range core.Keys(b.antennas, b.channels) {
		if n := len(b.data[k.Antenna*b.channels+k.Channel]); n != want {
			bad = append(bad, fmt.Sprintf("%s=%d", k.Name(), n))
		}
	}
	if len(bad) == 0 {
		return nil
	}
	b.logger.Warn("channel lengths diverge",
		zap.String("reference", fmt.Sprintf("%s=%d", core.Key{}.Name(), want)),
		zap.Strings("diverging", bad),
	)
	return fmt.Errorf("series: channel lengths diverge from %s=%d (%s): %w",
		core.Key{}.Name(), want, strings.Join(bad, ", "), core.ErrDataConsistency)
}

func (b *Builder) check(t time.Time, antenna, channel int, value float64) error {
	if antenna < 0 || antenna >= b.antennas || channel < 0 || channel >= b.channels {
		return fmt.Errorf("series: antenna %d channel %d outside %dx%d matrix: %w",
			antenna, channel, b.antennas, b.channels, core.ErrDataConsistency)
	}
	if t.IsZero() {
		return fmt.Errorf("series: missing timestamp for %s: %w",
			core.Key{Antenna: antenna, Channel: channel}, core.ErrDataConsistency)
	}
	if !core.IsFinite(value) {
		return fmt.Errorf("series: non-finite value %v for %s: %w",
			value, core.Key{Antenna: antenna, Channel: channel}, core.ErrDataConsistency)
	}
	return nil
}
