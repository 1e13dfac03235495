// Package fit fits the sidereal/solar modulation of a noise-floor series.
//
// The model is a sum of two sinusoids at fixed frequencies plus an offset:
//
//	y(t) = A₁·sin(2πf₁t + φ₁) + A₂·sin(2πf₂t + φ₂) + C
//
// with t in seconds since the configured epoch (the Unix epoch by default),
// f₁ = 1/86164.0916 Hz (one sidereal day) and f₂ = 1/86400 Hz (one solar day).
// Parameters are estimated with a Levenberg–Marquardt least-squares solver on
// gonum/mat; standard errors come from the pseudo-inverse of JᵀJ scaled by
// the residual variance.
//
// # Usage
//
//	f := fit.NewFitter()
//	res, err := f.Fit(times, values)
//	if err != nil {
//		return err
//	}
//	fmt.Println(res.Sidereal.Amplitude.Value, res.MSE)
//
// Both frequencies differ by one cycle per year, so the sidereal term is only
// separable from the solar term on series spanning a large part of a year.
// Series sampled once per day at a fixed time of day see a constant solar
// term that is indistinguishable from the offset; the fit still converges
// and the standard errors of that degenerate direction are dropped.
//
// Below one period of the slower term (Config.MinSpan, about one day) the two
// sinusoids are nearly collinear. Such fits, for example a few hours of
// minute data with noise, typically exhaust the iteration budget; the
// returned core.ErrFitConvergence then names the span.
package fit
