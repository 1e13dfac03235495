package testutil

import (
	"math"
	"math/rand"
	"time"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// GaussianNoise generates zero-mean normal noise with standard deviation sigma.
func GaussianNoise(seed int64, sigma float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = rng.NormFloat64() * sigma
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// InjectBursts returns a copy of signal where every sample of the listed
// segments (of length segLen) has amplitude added with alternating sign,
// imitating a broadband RFI burst.
func InjectBursts(signal []float64, segLen int, segments []int, amplitude float64) []float64 {
	out := make([]float64, len(signal))
	copy(out, signal)
	for _, seg := range segments {
		start := seg * segLen
		for i := start; i < start+segLen && i < len(out); i++ {
			if i%2 == 0 {
				out[i] += amplitude
			} else {
				out[i] -= amplitude
			}
		}
	}
	return out
}

// EvenTimes returns n timestamps starting at start spaced by step.
func EvenTimes(start time.Time, step time.Duration, n int) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = start.Add(time.Duration(i) * step)
	}
	return out
}

// DualSinusoid evaluates a1·sin(2πf1t+p1) + a2·sin(2πf2t+p2) + c at each
// timestamp, with t in seconds since the Unix epoch.
func DualSinusoid(times []time.Time, f1, a1, p1, f2, a2, p2, c float64) []float64 {
	out := make([]float64, len(times))
	for i, ts := range times {
		t := float64(ts.UnixNano()) / 1e9
		out[i] = a1*math.Sin(2*math.Pi*f1*t+p1) + a2*math.Sin(2*math.Pi*f2*t+p2) + c
	}
	return out
}
