// Package time provides time-domain statistics of sampled signals and
// measurement series.
package time

import (
	"math"
	"sort"

	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/stat"
)

// RMS returns the root-mean-square of the signal.
// Returns 0 for an empty signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	return math.Sqrt(vecmath.DotProduct(signal, signal) / float64(len(signal)))
}

// DC returns the mean (DC offset) of the signal.
func DC(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	// Use Kahan summation for numerical stability.
	var sum, c float64
	for _, x := range signal {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	return sum / float64(len(signal))
}

// PopStdDev returns the population standard deviation (divisor n).
// Returns 0 for fewer than two values.
func PopStdDev(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}

	return stat.PopStdDev(values, nil)
}

// Median returns the median of values. For an even count it is the mean of
// the two middle values. The input is not modified. Returns NaN when empty.
func Median(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return math.NaN()
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	return MedianSorted(sorted)
}

// MedianSorted is Median for input already sorted ascending.
func MedianSorted(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}

	if n%2 == 1 {
		return sorted[n/2]
	}

	return 0.5 * (sorted[n/2-1] + sorted[n/2])
}
