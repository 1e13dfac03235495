package noise_test

import (
	"fmt"

	"github.com/cwbudde/galnoise/noise"
)

func ExampleEstimator_Estimate() {
	// Quiet trace with a loud burst in the second segment.
	samples := make([]float64, 256)
	for i := range samples {
		samples[i] = 1
		if i >= 64 && i < 128 {
			samples[i] = 40
		}
	}

	e, err := noise.NewEstimator().Estimate(samples)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("segments=%d floor=%.1f\n", e.Segments, e.Value)

	// Output:
	// segments=3 floor=14.0
}
