package core

import (
	"fmt"
	"strings"
)

// Reduction is the policy used to collapse the lowest-K subtrace RMS values.
type Reduction int

const (
	// ReductionMean averages the lowest K values.
	ReductionMean Reduction = iota + 1
	// ReductionMedian takes the median of the lowest K values.
	ReductionMedian
)

// Valid reports whether r is a known policy.
func (r Reduction) Valid() bool {
	return r == ReductionMean || r == ReductionMedian
}

func (r Reduction) String() string {
	switch r {
	case ReductionMean:
		return "mean"
	case ReductionMedian:
		return "median"
	default:
		return fmt.Sprintf("Reduction(%d)", int(r))
	}
}

// ParseReduction parses "mean" or "median" (case-insensitive).
func ParseReduction(s string) (Reduction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mean", "average":
		return ReductionMean, nil
	case "median":
		return ReductionMedian, nil
	default:
		return 0, fmt.Errorf("core: unknown reduction %q", s)
	}
}
