package core

// Default run parameters. They reproduce the analysis of the three-antenna,
// two-polarisation surface radio stations.
const (
	DefaultSegmentLength = 64
	DefaultLowestK       = 10
	DefaultOutlierMargin = 17.0
	DefaultWindow        = 150
	DefaultAntennas      = 3
	DefaultChannels      = 2
	DefaultTraceLength   = 1024
	DefaultSampleRate    = 1e9
	DefaultImpedance     = 50.0

	// SiderealDay is the length of one sidereal day in seconds (23h56m4.0916s).
	SiderealDay = 86164.0916
	// SolarDay is the length of one solar day in seconds.
	SolarDay = 86400.0
)

// Config holds every externally configurable parameter of a run.
type Config struct {
	// SegmentLength is the subtrace length L in samples.
	SegmentLength int
	// LowestK is the number of lowest subtrace RMS values reduced to one estimate.
	LowestK int
	// Reduction selects mean or median over the lowest K values.
	Reduction Reduction
	// OutlierMargin is the cleaning threshold above the per-channel minimum.
	OutlierMargin float64
	// Window is the trailing moving-average length W in samples.
	Window int
	// Antennas and Channels fix the shape of the channel matrix.
	Antennas int
	Channels int
	// SiderealHz and SolarHz are the two fixed oscillation frequencies.
	SiderealHz float64
	SolarHz    float64
	// TraceLength is the accepted waveform length; 0 accepts any length.
	TraceLength int
	// SampleRate of the digitiser in Hz, used for spectra.
	SampleRate float64
	// Impedance of the antenna load in ohm, used for dBm conversion.
	Impedance float64
	// Longitude of the site in degrees east, used for local sidereal time.
	Longitude float64
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the parameters of the reference analysis.
func DefaultConfig() Config {
	return Config{
		SegmentLength: DefaultSegmentLength,
		LowestK:       DefaultLowestK,
		Reduction:     ReductionMean,
		OutlierMargin: DefaultOutlierMargin,
		Window:        DefaultWindow,
		Antennas:      DefaultAntennas,
		Channels:      DefaultChannels,
		SiderealHz:    1 / SiderealDay,
		SolarHz:       1 / SolarDay,
		TraceLength:   DefaultTraceLength,
		SampleRate:    DefaultSampleRate,
		Impedance:     DefaultImpedance,
	}
}

// WithSegmentLength sets the subtrace length L.
func WithSegmentLength(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.SegmentLength = n
		}
	}
}

// WithLowestK sets how many of the lowest subtrace RMS values are reduced.
func WithLowestK(k int) Option {
	return func(cfg *Config) {
		if k > 0 {
			cfg.LowestK = k
		}
	}
}

// WithReduction selects the lowest-K reduction policy.
func WithReduction(r Reduction) Option {
	return func(cfg *Config) {
		if r.Valid() {
			cfg.Reduction = r
		}
	}
}

// WithOutlierMargin sets the cleaning margin above the channel minimum.
func WithOutlierMargin(margin float64) Option {
	return func(cfg *Config) {
		if margin >= 0 {
			cfg.OutlierMargin = margin
		}
	}
}

// WithWindow sets the moving-average window W.
func WithWindow(w int) Option {
	return func(cfg *Config) {
		if w > 0 {
			cfg.Window = w
		}
	}
}

// WithAntennas sets the number of antennas.
func WithAntennas(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.Antennas = n
		}
	}
}

// WithChannels sets the number of channels per antenna.
func WithChannels(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.Channels = n
		}
	}
}

// WithSiderealHz overrides the sidereal oscillation frequency.
func WithSiderealHz(hz float64) Option {
	return func(cfg *Config) {
		if hz > 0 {
			cfg.SiderealHz = hz
		}
	}
}

// WithSolarHz overrides the solar oscillation frequency.
func WithSolarHz(hz float64) Option {
	return func(cfg *Config) {
		if hz > 0 {
			cfg.SolarHz = hz
		}
	}
}

// WithTraceLength sets the accepted waveform length. Zero disables the gate.
func WithTraceLength(n int) Option {
	return func(cfg *Config) {
		if n >= 0 {
			cfg.TraceLength = n
		}
	}
}

// WithSampleRate sets the digitiser sample rate.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithImpedance sets the load impedance used for power conversion.
func WithImpedance(ohm float64) Option {
	return func(cfg *Config) {
		if ohm > 0 {
			cfg.Impedance = ohm
		}
	}
}

// WithLongitude sets the site longitude in degrees east.
func WithLongitude(deg float64) Option {
	return func(cfg *Config) {
		if deg >= -180 && deg <= 180 {
			cfg.Longitude = deg
		}
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Apply applies opts on top of cfg and returns the result.
func (cfg Config) Apply(opts ...Option) Config {
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Keys lists every (antenna, channel) pair of the configured matrix in
// antenna-major order.
func (cfg Config) Keys() []Key {
	return Keys(cfg.Antennas, cfg.Channels)
}
