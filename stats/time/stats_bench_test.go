package time

import (
	"testing"

	"github.com/cwbudde/galnoise/internal/testutil"
)

func BenchmarkRMS(b *testing.B) {
	signal := testutil.DeterministicNoise(1, 1, 1024)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = RMS(signal)
	}
}

func BenchmarkMedian(b *testing.B) {
	values := testutil.DeterministicNoise(2, 1, 10)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Median(values)
	}
}
