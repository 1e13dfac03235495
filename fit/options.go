package fit

import (
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/cwbudde/galnoise/core"
)

const (
	// DefaultSolarAmplitude is the initial guess of A₂.
	DefaultSolarAmplitude = 0.001
	// DefaultSolarPhase is the initial guess of φ₂ in radians.
	DefaultSolarPhase = 0.5
	// DefaultMaxIterations bounds the solver.
	DefaultMaxIterations = 500
	// DefaultFTol is the relative cost reduction below which the fit stops.
	DefaultFTol = 1e-10
	// DefaultXTol is the relative step size below which the fit stops.
	DefaultXTol = 1e-10
	// DefaultGTol is the gradient orthogonality below which the fit stops.
	DefaultGTol = 1e-12
)

// Config controls a Fitter.
type Config struct {
	SiderealHz     float64
	SolarHz        float64
	SolarAmplitude float64
	SolarPhase     float64
	MaxIterations  int
	FTol           float64
	XTol           float64
	GTol           float64
	Epoch          time.Time
	Logger         *zap.Logger
}

// Option mutates a fitter configuration.
type Option func(*Config)

// DefaultConfig returns the fitter defaults.
func DefaultConfig() Config {
	return Config{
		SiderealHz:     1 / core.SiderealDay,
		SolarHz:        1 / core.SolarDay,
		SolarAmplitude: DefaultSolarAmplitude,
		SolarPhase:     DefaultSolarPhase,
		MaxIterations:  DefaultMaxIterations,
		FTol:           DefaultFTol,
		XTol:           DefaultXTol,
		GTol:           DefaultGTol,
		Epoch:          time.Unix(0, 0).UTC(),
		Logger:         zap.NewNop(),
	}
}

// ApplyOptions applies opts over DefaultConfig.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithFrequencies sets the sidereal and solar frequencies in Hz.
func WithFrequencies(siderealHz, solarHz float64) Option {
	return func(cfg *Config) {
		if siderealHz > 0 && core.IsFinite(siderealHz) {
			cfg.SiderealHz = siderealHz
		}
		if solarHz > 0 && core.IsFinite(solarHz) {
			cfg.SolarHz = solarHz
		}
	}
}

// WithSolarGuess sets the initial solar amplitude and phase.
func WithSolarGuess(amplitude, phase float64) Option {
	return func(cfg *Config) {
		if amplitude >= 0 && core.IsFinite(amplitude) {
			cfg.SolarAmplitude = amplitude
		}
		if core.IsFinite(phase) {
			cfg.SolarPhase = phase
		}
	}
}

// WithMaxIterations bounds the number of solver iterations.
func WithMaxIterations(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.MaxIterations = n
		}
	}
}

// WithTolerances sets the cost, step and gradient stopping tolerances.
// Non-positive values keep the current setting.
func WithTolerances(ftol, xtol, gtol float64) Option {
	return func(cfg *Config) {
		if ftol > 0 {
			cfg.FTol = ftol
		}
		if xtol > 0 {
			cfg.XTol = xtol
		}
		if gtol > 0 {
			cfg.GTol = gtol
		}
	}
}

// WithEpoch sets the time origin of the model.
func WithEpoch(epoch time.Time) Option {
	return func(cfg *Config) {
		if !epoch.IsZero() {
			cfg.Epoch = epoch
		}
	}
}

// WithLogger sets the logger for solver diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *Config) {
		if logger != nil {
			cfg.Logger = logger
		}
	}
}

// FromCore carries the frequencies of a shared configuration.
func FromCore(cfg core.Config) Option {
	return WithFrequencies(cfg.SiderealHz, cfg.SolarHz)
}

// MinSpan is one period of the slower of the two terms. Over shorter spans
// the sidereal and solar sinusoids are nearly collinear and the solver
// usually runs into the iteration cap.
func (cfg Config) MinSpan() time.Duration {
	f := math.Min(cfg.SiderealHz, cfg.SolarHz)
	if !(f > 0) {
		return 0
	}
	return time.Duration(math.Round(float64(time.Second) / f))
}
