package spectrum

import (
	"fmt"
	"sort"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/dsp/window"

	"github.com/cwbudde/galnoise/core"
)

// minDensity keeps empty bins finite in dB (−270 dBm/Hz).
const minDensity = 1e-30

// Spectrum is an averaged one-sided power spectral density.
type Spectrum struct {
	Key    core.Key
	Freqs  []float64
	DBmHz  []float64
	Frames int
}

// Option configures an Averager.
type Option func(*Averager)

// WithSampleRate sets the digitiser rate in Hz.
func WithSampleRate(hz float64) Option {
	return func(a *Averager) {
		if hz > 0 && core.IsFinite(hz) {
			a.sampleRate = hz
		}
	}
}

// WithImpedance sets the load impedance in ohm.
func WithImpedance(ohm float64) Option {
	return func(a *Averager) {
		if ohm > 0 && core.IsFinite(ohm) {
			a.impedance = ohm
		}
	}
}

// FromCore carries sample rate and impedance of a shared configuration.
func FromCore(cfg core.Config) Option {
	return func(a *Averager) {
		WithSampleRate(cfg.SampleRate)(a)
		WithImpedance(cfg.Impedance)(a)
	}
}

type accum struct {
	sum    []float64
	frames int
}

// Averager accumulates spectra of fixed-length traces. It is not safe for
// concurrent use.
type Averager struct {
	n          int
	sampleRate float64
	impedance  float64

	win     []float64
	winPow  float64
	forward func(dst, src []complex128) error

	in  []complex128
	out []complex128
	re  []float64
	im  []float64
	pow []float64

	acc map[core.Key]*accum
}

// NewAverager creates an averager for traces of n samples.
func NewAverager(n int, opts ...Option) (*Averager, error) {
	if n < 2 {
		return nil, fmt.Errorf("spectrum: trace length %d: %w", n, core.ErrInsufficientData)
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("spectrum: fft plan for %d samples: %w", n, err)
	}

	win := make([]float64, n)
	for i := range win {
		win[i] = 1
	}
	window.Hann(win)

	bins := n/2 + 1
	a := &Averager{
		n:          n,
		sampleRate: core.DefaultSampleRate,
		impedance:  core.DefaultImpedance,
		win:        win,
		winPow:     vecmath.DotProduct(win, win),
		forward:    plan.Forward,
		in:         make([]complex128, n),
		out:        make([]complex128, n),
		re:         make([]float64, bins),
		im:         make([]float64, bins),
		pow:        make([]float64, bins),
		acc:        make(map[core.Key]*accum),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a, nil
}

// Len returns the trace length.
func (a *Averager) Len() int { return a.n }

// Bins returns the number of one-sided frequency bins.
func (a *Averager) Bins() int { return a.n/2 + 1 }

// Freqs returns the bin centre frequencies in Hz.
func (a *Averager) Freqs() []float64 {
	out := make([]float64, a.Bins())
	for k := range out {
		out[k] = float64(k) * a.sampleRate / float64(a.n)
	}
	return out
}

// Add accumulates the spectrum of one trace of k.
func (a *Averager) Add(k core.Key, samples []float64) error {
	if len(samples) != a.n {
		return fmt.Errorf("spectrum: %s trace has %d samples, want %d: %w",
			k, len(samples), a.n, core.ErrDataConsistency)
	}

	density, err := a.density(samples)
	if err != nil {
		return err
	}

	acc, ok := a.acc[k]
	if !ok {
		acc = &accum{sum: make([]float64, len(density))}
		a.acc[k] = acc
	}
	for i, d := range density {
		acc.sum[i] += d
	}
	acc.frames++
	return nil
}

// Average returns the mean spectrum of k.
func (a *Averager) Average(k core.Key) (Spectrum, error) {
	acc, ok := a.acc[k]
	if !ok || acc.frames == 0 {
		return Spectrum{}, fmt.Errorf("spectrum: no traces for %s: %w", k, core.ErrInsufficientData)
	}
	out := make([]float64, len(acc.sum))
	inv := 1 / float64(acc.frames)
	for i, s := range acc.sum {
		out[i] = s * inv
	}
	return Spectrum{Key: k, Freqs: a.Freqs(), DBmHz: out, Frames: acc.frames}, nil
}

// Keys lists the channels with at least one trace, antenna-major.
func (a *Averager) Keys() []core.Key {
	keys := make([]core.Key, 0, len(a.acc))
	for k := range a.acc {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Antenna != keys[j].Antenna {
			return keys[i].Antenna < keys[j].Antenna
		}
		return keys[i].Channel < keys[j].Channel
	})
	return keys
}

// density returns the one-sided PSD of samples (volts) in dBm/Hz:
// P[k] = c·|X[k]|² / (fs · Σw² · R), c = 2 except at DC and Nyquist.
func (a *Averager) density(samples []float64) ([]float64, error) {
	for i, s := range samples {
		a.in[i] = complex(s*a.win[i], 0)
	}
	if err := a.forward(a.out, a.in); err != nil {
		return nil, fmt.Errorf("spectrum: fft: %w", err)
	}

	for i := range a.re {
		a.re[i] = real(a.out[i])
		a.im[i] = imag(a.out[i])
	}
	vecmath.Power(a.pow, a.re, a.im)

	norm := a.sampleRate * a.winPow * a.impedance
	last := len(a.pow) - 1
	out := make([]float64, len(a.pow))
	for i, p := range a.pow {
		d := p / norm
		if i != 0 && !(i == last && a.n%2 == 0) {
			d *= 2
		}
		if d < minDensity {
			d = minDensity
		}
		out[i] = core.LinearPowerToDB(d * 1e3)
	}
	return out, nil
}
