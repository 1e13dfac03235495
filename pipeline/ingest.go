package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"

	"go.uber.org/zap"

	"github.com/cwbudde/galnoise/core"
	"github.com/cwbudde/galnoise/noise"
	"github.com/cwbudde/galnoise/series"
	"github.com/cwbudde/galnoise/spectrum"
)

// SkipReason classifies a skipped event.
type SkipReason string

const (
	SkipTimestamp   SkipReason = "timestamp"
	SkipShape       SkipReason = "shape"
	SkipIncomplete  SkipReason = "incomplete"
	SkipTraceLength SkipReason = "trace_length"
	SkipEstimate    SkipReason = "estimate"
	SkipSeries      SkipReason = "series"
)

// ErrSkipped is wrapped by the error Process returns for a skipped event.
var ErrSkipped = errors.New("pipeline: event skipped")

// Stats counts the events of one ingestion.
type Stats struct {
	Events          int
	Processed       int
	Skipped         int
	SkippedByReason map[SkipReason]int
}

// IngestOption configures an Ingestor.
type IngestOption func(*Ingestor)

// WithLogger sets the ingestion logger.
func WithLogger(logger *zap.Logger) IngestOption {
	return func(in *Ingestor) {
		if logger != nil {
			in.logger = logger
		}
	}
}

// WithSpectrum accumulates the spectrum of every processed waveform in avg.
func WithSpectrum(avg *spectrum.Averager) IngestOption {
	return func(in *Ingestor) {
		in.spectra = avg
	}
}

// Ingestor turns events into a channel series. It is owned by one
// ingestion loop.
type Ingestor struct {
	cfg       core.Config
	estimator *noise.Estimator
	builder   *series.Builder
	spectra   *spectrum.Averager
	logger    *zap.Logger
	stats     Stats
}

// NewIngestor creates an ingestor for cfg.
func NewIngestor(cfg core.Config, opts ...IngestOption) *Ingestor {
	in := &Ingestor{
		cfg:       cfg,
		estimator: noise.NewEstimatorFromConfig(cfg),
		logger:    zap.NewNop(),
		stats:     Stats{SkippedByReason: make(map[SkipReason]int)},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(in)
		}
	}
	in.builder = series.NewBuilder(cfg.Antennas, cfg.Channels, series.WithLogger(in.logger))
	return in
}

// Process estimates and appends one event. A skipped event is counted and
// reported as an error wrapping ErrSkipped; the builder is left untouched.
func (in *Ingestor) Process(ev noise.Event) error {
	in.stats.Events++

	sev, reason, err := in.estimate(ev)
	if err == nil {
		if err = in.builder.Ingest(sev); err != nil {
			reason = SkipSeries
		}
	}
	if err != nil {
		in.stats.Skipped++
		in.stats.SkippedByReason[reason]++
		in.logger.Warn("event skipped",
			zap.Time("time", ev.Time),
			zap.String("reason", string(reason)),
			zap.Error(err),
		)
		return fmt.Errorf("%w (%s): %w", ErrSkipped, reason, err)
	}

	in.stats.Processed++
	in.addSpectra(ev)
	return nil
}

// Run drains src, skipping unusable events, until io.EOF or ctx is done.
func (in *Ingestor) Run(ctx context.Context, src Source) (Stats, error) {
	for {
		if err := ctx.Err(); err != nil {
			return in.Stats(), err
		}
		ev, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return in.Stats(), fmt.Errorf("pipeline: read event: %w", err)
		}
		_ = in.Process(ev)
	}

	st := in.Stats()
	in.logger.Info("ingestion finished",
		zap.Int("events", st.Events),
		zap.Int("processed", st.Processed),
		zap.Int("skipped", st.Skipped),
	)
	return st, nil
}

// Finalize returns the accumulated series.
func (in *Ingestor) Finalize() (*series.Series, error) {
	return in.builder.Finalize()
}

// Stats returns a copy of the counters.
func (in *Ingestor) Stats() Stats {
	st := in.stats
	st.SkippedByReason = maps.Clone(in.stats.SkippedByReason)
	return st
}

func (in *Ingestor) estimate(ev noise.Event) (*series.Event, SkipReason, error) {
	if ev.Time.IsZero() {
		return nil, SkipTimestamp, fmt.Errorf("pipeline: event without timestamp: %w", core.ErrDataConsistency)
	}

	antennas, channels := in.cfg.Antennas, in.cfg.Channels
	sev := series.NewEvent(ev.Time, antennas, channels)
	for _, wf := range ev.Waveforms {
		k := core.Key{Antenna: wf.Antenna, Channel: wf.Channel}
		if wf.Antenna < 0 || wf.Antenna >= antennas || wf.Channel < 0 || wf.Channel >= channels {
			return nil, SkipShape, fmt.Errorf("pipeline: waveform %s outside %dx%d matrix: %w",
				k, antennas, channels, core.ErrDataConsistency)
		}
		if _, dup := sev.Value(wf.Antenna, wf.Channel); dup {
			return nil, SkipShape, fmt.Errorf("pipeline: duplicate waveform %s: %w", k, core.ErrDataConsistency)
		}
		if in.cfg.TraceLength > 0 && len(wf.Samples) != in.cfg.TraceLength {
			return nil, SkipTraceLength, fmt.Errorf("pipeline: %s trace length %d, want %d: %w",
				k, len(wf.Samples), in.cfg.TraceLength, core.ErrDataConsistency)
		}

		est, err := in.estimator.Estimate(wf.Samples)
		if err != nil {
			return nil, SkipEstimate, fmt.Errorf("pipeline: %s: %w", k, err)
		}
		if err := sev.Set(wf.Antenna, wf.Channel, est.Value); err != nil {
			return nil, SkipShape, err
		}
	}

	if n := sev.Present(); n != antennas*channels {
		return nil, SkipIncomplete, fmt.Errorf("pipeline: %d of %d channels present: %w",
			n, antennas*channels, core.ErrDataConsistency)
	}
	return sev, "", nil
}

func (in *Ingestor) addSpectra(ev noise.Event) {
	if in.spectra == nil {
		return
	}
	for _, wf := range ev.Waveforms {
		k := core.Key{Antenna: wf.Antenna, Channel: wf.Channel}
		if err := in.spectra.Add(k, wf.Samples); err != nil {
			in.logger.Debug("spectrum not accumulated", zap.Stringer("key", k), zap.Error(err))
		}
	}
}
