package fit

import (
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/galnoise/core"
)

// Param is a fitted value with its one-sigma standard error.
type Param struct {
	Value  float64
	StdErr float64
}

// Component is one sinusoid of the model.
type Component struct {
	Frequency float64
	Amplitude Param
	Phase     Param
}

// Result is the outcome of a fit.
type Result struct {
	Sidereal Component
	Solar    Component
	Offset   Param

	// Times and Fitted hold the fitted curve at each input timestamp.
	Times  []time.Time
	Fitted []float64

	MSE          float64
	Iterations   int
	Observations int
	DoF          int
	Termination  Termination

	// SiderealPeak is the first time at or after the first observation at
	// which the sidereal term is maximal. Zero when its amplitude is zero.
	SiderealPeak time.Time

	Epoch time.Time
}

// Params returns the fitted parameter values.
func (r Result) Params() Params {
	return Params{
		SiderealAmplitude: r.Sidereal.Amplitude.Value,
		SiderealPhase:     r.Sidereal.Phase.Value,
		SolarAmplitude:    r.Solar.Amplitude.Value,
		SolarPhase:        r.Solar.Phase.Value,
		Offset:            r.Offset.Value,
	}
}

// Model returns the model the result was fitted with.
func (r Result) Model() Model {
	return Model{SiderealHz: r.Sidereal.Frequency, SolarHz: r.Solar.Frequency, Epoch: r.Epoch}
}

// Eval evaluates the fitted curve at ts.
func (r Result) Eval(ts time.Time) float64 {
	return r.Model().EvalTime(r.Params(), ts)
}

// Fitter fits the dual-sinusoid model. A Fitter is immutable and safe for
// concurrent use.
type Fitter struct {
	cfg Config
}

// NewFitter creates a fitter from options.
func NewFitter(opts ...Option) *Fitter {
	return &Fitter{cfg: ApplyOptions(opts...)}
}

// Config returns the fitter configuration.
func (f *Fitter) Config() Config { return f.cfg }

// Fit estimates the model parameters of (times, values).
func (f *Fitter) Fit(times []time.Time, values []float64) (Result, error) {
	if len(times) != len(values) {
		return Result{}, fmt.Errorf("fit: %d timestamps for %d values: %w", len(times), len(values), core.ErrDataConsistency)
	}
	if d := distinct(times); d < numParams {
		return Result{}, fmt.Errorf("fit: %d distinct timestamps for %d parameters: %w: %w",
			d, numParams, core.ErrFitConvergence, core.ErrInsufficientData)
	}
	for i, v := range values {
		if !core.IsFinite(v) {
			return Result{}, fmt.Errorf("fit: non-finite value at index %d: %w", i, core.ErrDataConsistency)
		}
	}

	model := Model{SiderealHz: f.cfg.SiderealHz, SolarHz: f.cfg.SolarHz, Epoch: f.cfg.Epoch}
	pr := &problem{model: model, t: make([]float64, len(times)), y: values}
	for i, ts := range times {
		pr.t[i] = model.Seconds(ts)
	}

	sol, err := pr.solve(f.initialGuess(values), f.cfg)
	if err != nil {
		span := time.Duration(spanSeconds(pr.t) * float64(time.Second))
		if minSpan := f.cfg.MinSpan(); span < minSpan {
			err = fmt.Errorf("fit: span %s is shorter than %s, sidereal and solar terms are nearly collinear: %w",
				span.Round(time.Second), minSpan.Round(time.Second), err)
		}
		f.cfg.Logger.Warn("fit failed", zap.Int("observations", len(values)), zap.Error(err))
		return Result{}, err
	}

	n := len(values)
	dof := n - numParams
	jac := mat.NewDense(n, numParams, nil)
	pr.jacobian(sol.v, jac)
	se, err := standardErrors(jac, sol.ssr, dof)
	if err != nil {
		return Result{}, err
	}

	fitted := make([]float64, n)
	var sq float64
	for i, t := range pr.t {
		fitted[i] = model.eval(sol.v, t)
		d := fitted[i] - values[i]
		sq += d * d
	}

	res := Result{
		Sidereal: Component{
			Frequency: model.SiderealHz,
			Amplitude: Param{Value: sol.v[idxSiderealAmp], StdErr: se[idxSiderealAmp]},
			Phase:     Param{Value: sol.v[idxSiderealPhase], StdErr: se[idxSiderealPhase]},
		},
		Solar: Component{
			Frequency: model.SolarHz,
			Amplitude: Param{Value: sol.v[idxSolarAmp], StdErr: se[idxSolarAmp]},
			Phase:     Param{Value: sol.v[idxSolarPhase], StdErr: se[idxSolarPhase]},
		},
		Offset:       Param{Value: sol.v[idxOffset], StdErr: se[idxOffset]},
		Times:        append([]time.Time(nil), times...),
		Fitted:       fitted,
		MSE:          sq / float64(n),
		Iterations:   sol.iterations,
		Observations: n,
		DoF:          dof,
		Termination:  sol.reason,
		Epoch:        model.Epoch,
	}
	res.SiderealPeak = siderealPeak(model, sol.v, earliest(pr.t))

	f.cfg.Logger.Debug("fit converged",
		zap.Int("observations", n),
		zap.Int("iterations", sol.iterations),
		zap.String("termination", string(sol.reason)),
		zap.Float64("sidereal_amplitude", res.Sidereal.Amplitude.Value),
		zap.Float64("mse", res.MSE),
	)
	return res, nil
}

// initialGuess is A₁ = σ/√2, φ₁ = 0, the configured solar guess and C = 0.
func (f *Fitter) initialGuess(values []float64) [numParams]float64 {
	_, std := stat.PopMeanStdDev(values, nil)
	return [numParams]float64{
		idxSiderealAmp: std / math.Sqrt2,
		idxSolarAmp:    f.cfg.SolarAmplitude,
		idxSolarPhase:  f.cfg.SolarPhase,
	}
}

// siderealPeak returns the first time ≥ t0 at which sin(2πf₁t+φ₁) = 1.
func siderealPeak(m Model, v [numParams]float64, t0 float64) time.Time {
	if v[idxSiderealAmp] == 0 || m.SiderealHz <= 0 {
		return time.Time{}
	}
	period := 1 / m.SiderealHz
	base := (math.Pi/2 - v[idxSiderealPhase]) / (2 * math.Pi * m.SiderealHz)
	k := math.Ceil((t0 - base) / period)
	return m.Time(base + k*period)
}

func distinct(times []time.Time) int {
	seen := make(map[int64]struct{}, len(times))
	for _, ts := range times {
		seen[ts.UnixNano()] = struct{}{}
	}
	return len(seen)
}

func spanSeconds(t []float64) float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, x := range t {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	if hi < lo {
		return 0
	}
	return hi - lo
}

func earliest(t []float64) float64 {
	lo := math.Inf(1)
	for _, x := range t {
		lo = math.Min(lo, x)
	}
	return lo
}
