package noise

import (
	"fmt"

	"github.com/cwbudde/galnoise/core"
	timestats "github.com/cwbudde/galnoise/stats/time"
)

// Estimate is the noise floor of one waveform.
type Estimate struct {
	// Value is the reduced lowest-K sub-trace RMS.
	Value float64
	// Segments is the number of complete segments examined.
	Segments int
	// Used is the number of segments reduced into Value (min(K, Segments)).
	Used int
	// Reduction is the policy that produced Value.
	Reduction core.Reduction
	// TraceRMS is the RMS of the whole waveform, kept for comparison with
	// Value; it is biased upward by any interference.
	TraceRMS float64
}

// Estimator computes robust noise floors. It holds no per-waveform state and
// may be reused.
type Estimator struct {
	segLen    int
	lowestK   int
	reduction core.Reduction
}

// NewEstimator creates an estimator from the segment length, lowest-K count
// and reduction of the resolved configuration.
func NewEstimator(opts ...core.Option) *Estimator {
	return NewEstimatorFromConfig(core.ApplyOptions(opts...))
}

// NewEstimatorFromConfig creates an estimator from an existing configuration.
func NewEstimatorFromConfig(cfg core.Config) *Estimator {
	def := core.DefaultConfig()
	e := &Estimator{
		segLen:    cfg.SegmentLength,
		lowestK:   cfg.LowestK,
		reduction: cfg.Reduction,
	}
	if e.segLen <= 0 {
		e.segLen = def.SegmentLength
	}
	if e.lowestK <= 0 {
		e.lowestK = def.LowestK
	}
	if !e.reduction.Valid() {
		e.reduction = def.Reduction
	}
	return e
}

// SegmentLength returns the configured L.
func (e *Estimator) SegmentLength() int { return e.segLen }

// LowestK returns the configured K.
func (e *Estimator) LowestK() int { return e.lowestK }

// Reduction returns the configured reduction policy.
func (e *Estimator) Reduction() core.Reduction { return e.reduction }

// Estimate returns the noise floor of samples. It fails with
// core.ErrInsufficientData when no complete segment is available.
func (e *Estimator) Estimate(samples []float64) (Estimate, error) {
	rms := SubtraceRMS(samples, e.segLen)
	if len(rms) == 0 {
		return Estimate{}, fmt.Errorf("noise: %d samples with segment length %d leave no segment: %w",
			len(samples), e.segLen, core.ErrInsufficientData)
	}

	used := e.lowestK
	if used > len(rms) {
		used = len(rms)
	}

	return Estimate{
		Value:     reduce(rms[:used], e.reduction),
		Segments:  len(rms),
		Used:      used,
		Reduction: e.reduction,
		TraceRMS:  timestats.RMS(samples),
	}, nil
}

// reduce collapses sorted values with the given policy.
func reduce(sorted []float64, r core.Reduction) float64 {
	if r == core.ReductionMedian {
		return timestats.MedianSorted(sorted)
	}
	return timestats.DC(sorted)
}
