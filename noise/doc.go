// Package noise estimates the noise floor of a digitised antenna waveform
// from its quietest sub-traces.
//
// The waveform is cut into contiguous segments of length L. The RMS of each
// segment is computed, the values are sorted, and the lowest K are reduced to
// one number by mean or median. Interference bursts raise the RMS of the
// segments they touch but can never push a segment below the true noise
// floor, so the lowest segments track the floor even in polluted traces.
//
// Segmentation keeps ⌊N/L⌋−1 segments: the trailing partial segment and the
// last full segment are both dropped, matching the calibration of the
// station archives.
//
// # Usage
//
//	est := noise.NewEstimator(core.WithReduction(core.ReductionMedian))
//	e, err := est.Estimate(samples)
//	if errors.Is(err, core.ErrInsufficientData) {
//		// trace shorter than two segments
//	}
//	fmt.Printf("floor=%.2f trace=%.2f\n", e.Value, e.TraceRMS)
package noise
