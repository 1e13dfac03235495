package noise

import (
	"testing"

	"github.com/cwbudde/galnoise/internal/testutil"
)

func BenchmarkEstimate1024(b *testing.B) {
	samples := testutil.GaussianNoise(3, 10, 1024)
	est := NewEstimator()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := est.Estimate(samples); err != nil {
			b.Fatal(err)
		}
	}
}
