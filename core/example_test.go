package core_test

import (
	"fmt"
	"strings"

	"github.com/cwbudde/galnoise/core"
)

func ExampleApplyOptions() {
	cfg := core.ApplyOptions(
		core.WithSegmentLength(128),
		core.WithReduction(core.ReductionMedian),
	)

	fmt.Printf("L=%d K=%d reduction=%s window=%d\n", cfg.SegmentLength, cfg.LowestK, cfg.Reduction, cfg.Window)

	// Output:
	// L=128 K=10 reduction=median window=150
}

func ExampleKey_Name() {
	var names []string
	for _, k := range core.Keys(2, 2) {
		names = append(names, k.Name())
	}
	fmt.Println(strings.Join(names, " "))

	// Output:
	// rms10 rms11 rms20 rms21
}
