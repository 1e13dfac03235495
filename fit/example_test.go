package fit_test

import (
	"fmt"
	"time"

	"github.com/cwbudde/galnoise/core"
	"github.com/cwbudde/galnoise/fit"
	"github.com/cwbudde/galnoise/internal/testutil"
)

func ExampleFitter_Fit() {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	times := testutil.EvenTimes(start, 2*time.Hour, 4380)
	values := testutil.DualSinusoid(times, 1/core.SiderealDay, 2, 1, 1/core.SolarDay, 0.5, -1, 10)

	res, err := fit.NewFitter().Fit(times, values)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("A1=%.3f phi1=%.3f A2=%.3f C=%.3f\n",
		res.Sidereal.Amplitude.Value, res.Sidereal.Phase.Value, res.Solar.Amplitude.Value, res.Offset.Value)
	// Output:
	// A1=2.000 phi1=1.000 A2=0.500 C=10.000
}
