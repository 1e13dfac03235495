package pipeline

import (
	"time"

	"go.uber.org/zap"

	"github.com/cwbudde/galnoise/core"
	"github.com/cwbudde/galnoise/fit"
	"github.com/cwbudde/galnoise/series"
)

// ChannelResult is the analysis of one channel.
type ChannelResult struct {
	Key core.Key

	// Samples is the channel length before and after cleaning.
	Samples int
	Cleaned int

	// Smoothed is the full smoothed series, undefined points included.
	Smoothed series.Smoothed
	// Centered holds the restricted, mean-subtracted smoothed values that
	// were fitted; Raw is the cleaned series restricted and centred the
	// same way.
	Centered []series.Sample
	Raw      []series.Sample

	Fit *fit.Result
	Err error
}

type analyzeConfig struct {
	start, end time.Time
	fitter     *fit.Fitter
	logger     *zap.Logger
}

// AnalyzeOption configures Analyze.
type AnalyzeOption func(*analyzeConfig)

// WithTimeWindow restricts the fit to start ≤ t < end. Zero times leave the
// corresponding side open.
func WithTimeWindow(start, end time.Time) AnalyzeOption {
	return func(c *analyzeConfig) {
		c.start, c.end = start, end
	}
}

// WithFitter replaces the fitter derived from the configuration.
func WithFitter(f *fit.Fitter) AnalyzeOption {
	return func(c *analyzeConfig) {
		if f != nil {
			c.fitter = f
		}
	}
}

// WithAnalyzeLogger sets the logger for per-channel diagnostics.
func WithAnalyzeLogger(logger *zap.Logger) AnalyzeOption {
	return func(c *analyzeConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Analyze cleans, smooths, restricts, centres and fits every channel of s
// in key order.
func Analyze(s *series.Series, cfg core.Config, opts ...AnalyzeOption) []ChannelResult {
	ac := analyzeConfig{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&ac)
		}
	}
	if ac.fitter == nil {
		ac.fitter = fit.NewFitter(fit.FromCore(cfg), fit.WithLogger(ac.logger))
	}

	keys := s.Keys()
	out := make([]ChannelResult, 0, len(keys))
	for _, k := range keys {
		r := analyzeChannel(s.Channel(k), k, cfg, ac)
		if r.Err != nil {
			ac.logger.Warn("channel analysis failed", zap.String("channel", k.Name()), zap.Error(r.Err))
		}
		out = append(out, r)
	}
	return out
}

func analyzeChannel(samples []series.Sample, k core.Key, cfg core.Config, ac analyzeConfig) ChannelResult {
	r := ChannelResult{Key: k, Samples: len(samples)}

	cleaned := series.Clean(samples, cfg.OutlierMargin)
	r.Cleaned = len(cleaned)
	r.Raw = series.Center(series.Restrict(cleaned, ac.start, ac.end))

	sm, err := series.Smooth(cleaned, cfg.Window)
	if err != nil {
		r.Err = err
		return r
	}
	r.Smoothed = sm
	r.Centered = series.Center(series.Restrict(sm.Defined(), ac.start, ac.end))
	if n := len(r.Centered); n > 1 {
		span := r.Centered[n-1].Time.Sub(r.Centered[0].Time)
		if minSpan := ac.fitter.Config().MinSpan(); span < minSpan {
			ac.logger.Warn("fit window shorter than one period of the slower term",
				zap.String("channel", k.Name()),
				zap.Duration("span", span),
				zap.Duration("min_span", minSpan),
			)
		}
	}

	res, err := ac.fitter.Fit(series.Times(r.Centered), series.Values(r.Centered))
	if err != nil {
		r.Err = err
		return r
	}
	r.Fit = &res
	return r
}
