package pipeline

import (
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cwbudde/galnoise/core"
	"github.com/cwbudde/galnoise/internal/testutil"
	"github.com/cwbudde/galnoise/series"
)

func TestAnalyzePerChannel(t *testing.T) {
	times := testutil.EvenTimes(t0, 2*time.Hour, 4380)
	values := testutil.DualSinusoid(times, 1/core.SiderealDay, 2, 0.5, 1/core.SolarDay, 0.5, -1, 20)

	good := make([]series.Sample, len(times))
	for i := range times {
		good[i] = series.Sample{Time: times[i], Value: values[i]}
	}
	// One burst far above the floor is removed by cleaning.
	good[100].Value = 500

	s, err := series.FromChannels(1, 2, map[core.Key][]series.Sample{
		{Channel: 0}: good,
		{Channel: 1}: good[:3],
	})
	if err != nil {
		t.Fatalf("FromChannels: %v", err)
	}

	cfg := core.ApplyOptions(core.WithAntennas(1), core.WithChannels(2), core.WithWindow(1), core.WithOutlierMargin(17))
	results := Analyze(s, cfg)
	if len(results) != 2 {
		t.Fatalf("results = %d", len(results))
	}

	r := results[0]
	if r.Err != nil {
		t.Fatalf("channel 0: %v", r.Err)
	}
	if r.Samples != len(good) || r.Cleaned != len(good)-1 {
		t.Fatalf("samples %d cleaned %d", r.Samples, r.Cleaned)
	}
	testutil.RequireNearlyEqual(t, "A1", r.Fit.Sidereal.Amplitude.Value, 2, 1e-4)
	if r.Fit.MSE > 1e-8 {
		t.Fatalf("MSE = %g", r.Fit.MSE)
	}
	// Centring removes the offset before fitting.
	if m := r.Fit.Offset.Value; m > 0.5 || m < -0.5 {
		t.Fatalf("offset = %v after centring", m)
	}
	if len(r.Raw) != len(r.Centered) {
		t.Fatalf("raw %d centred %d", len(r.Raw), len(r.Centered))
	}

	bad := results[1]
	if bad.Fit != nil || !errors.Is(bad.Err, core.ErrInsufficientData) || !errors.Is(bad.Err, core.ErrFitConvergence) {
		t.Fatalf("channel 1: fit %v err %v", bad.Fit, bad.Err)
	}
}

func TestAnalyzeWindowAndSmoothing(t *testing.T) {
	var samples []series.Sample
	for i := 0; i < 20; i++ {
		samples = append(samples, series.Sample{Time: t0.Add(time.Duration(i) * time.Hour), Value: float64(i % 4)})
	}
	s, _ := series.FromChannels(1, 1, map[core.Key][]series.Sample{{}: samples})
	cfg := core.ApplyOptions(core.WithAntennas(1), core.WithChannels(1), core.WithWindow(4))

	results := Analyze(s, cfg, WithTimeWindow(t0.Add(5*time.Hour), t0.Add(15*time.Hour)))
	r := results[0]
	if r.Smoothed.Len() != 20 || len(r.Smoothed.Defined()) != 17 {
		t.Fatalf("smoothed %d defined %d", r.Smoothed.Len(), len(r.Smoothed.Defined()))
	}
	if len(r.Centered) != 10 || !r.Centered[0].Time.Equal(t0.Add(5*time.Hour)) {
		t.Fatalf("centred window = %+v", r.Centered)
	}
	// Every window of four covers 0..3 once.
	for _, c := range r.Centered {
		testutil.RequireNearlyEqual(t, "centred", c.Value, 0, 1e-12)
	}
	if len(r.Raw) != 10 {
		t.Fatalf("raw window = %d", len(r.Raw))
	}
}

func TestAnalyzeInvalidWindow(t *testing.T) {
	s, _ := series.FromChannels(1, 1, nil)
	cfg := core.DefaultConfig()
	cfg.Window = 0
	r := Analyze(s, cfg)[0]
	if !errors.Is(r.Err, series.ErrInvalidWindow) {
		t.Fatalf("err = %v", r.Err)
	}
}

func TestAnalyzeWarnsOnShortSpan(t *testing.T) {
	obs, logs := observer.New(zapcore.WarnLevel)
	var short, long []series.Sample
	for i := 0; i < 12; i++ {
		short = append(short, series.Sample{Time: t0.Add(time.Duration(i) * time.Minute), Value: float64(i % 3)})
		long = append(long, series.Sample{Time: t0.Add(time.Duration(i) * 6 * time.Hour), Value: float64(i % 3)})
	}
	s, err := series.FromChannels(1, 2, map[core.Key][]series.Sample{
		{Channel: 0}: short,
		{Channel: 1}: long,
	})
	if err != nil {
		t.Fatalf("FromChannels: %v", err)
	}
	cfg := core.ApplyOptions(core.WithAntennas(1), core.WithChannels(2), core.WithWindow(1))
	Analyze(s, cfg, WithAnalyzeLogger(zap.New(obs)))

	warned := logs.FilterMessage("fit window shorter than one period of the slower term").All()
	if len(warned) != 1 {
		t.Fatalf("span warnings = %d, want 1", len(warned))
	}
	if ch := warned[0].ContextMap()["channel"]; ch != "rms10" {
		t.Fatalf("warned channel = %v, want rms10", ch)
	}
}
