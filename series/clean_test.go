package series

import (
	"errors"
	"testing"
	"time"

	"github.com/cwbudde/galnoise/core"
)

func samplesOf(values ...float64) []Sample {
	out := make([]Sample, len(values))
	for i, v := range values {
		out[i] = Sample{Time: at(i), Value: v}
	}
	return out
}

func TestCleanRemovesSpike(t *testing.T) {
	got := Clean(samplesOf(1, 1, 1, 50, 1, 1), 2)
	if len(got) != 5 {
		t.Fatalf("kept %d samples, want 5", len(got))
	}
	for _, s := range got {
		if s.Value == 50 {
			t.Fatal("spike survived cleaning")
		}
	}
	if !got[3].Time.Equal(at(4)) {
		t.Fatalf("order not preserved: %v", got[3].Time)
	}
}

func TestCleanIdempotent(t *testing.T) {
	in := samplesOf(12, 3, 25, 19, 4, 20, 40, 3.5, 21)
	once := Clean(in, 17)
	twice := Clean(once, 17)
	if len(once) != len(twice) {
		t.Fatalf("len %d then %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("index %d: %+v vs %+v", i, once[i], twice[i])
		}
	}
	if len(once) != 6 {
		t.Fatalf("kept %d, want 6", len(once))
	}
}

func TestCleanEmpty(t *testing.T) {
	if got := Clean(nil, 1); got != nil {
		t.Fatalf("Clean(nil) = %v", got)
	}
}

func TestSeriesCleanPerChannel(t *testing.T) {
	s, err := FromChannels(1, 2, map[core.Key][]Sample{
		{Channel: 0}: samplesOf(1, 1, 100, 1),
		{Channel: 1}: samplesOf(1, 100, 1, 1),
	})
	if err != nil {
		t.Fatalf("FromChannels: %v", err)
	}
	c := s.Clean(2)
	a, b := c.Channel(core.Key{Channel: 0}), c.Channel(core.Key{Channel: 1})
	if len(a) != 3 || len(b) != 3 {
		t.Fatalf("lengths %d/%d, want 3/3", len(a), len(b))
	}
	if !a[2].Time.Equal(at(3)) {
		t.Fatalf("channel 0 kept %v at index 2, want %v", a[2].Time, at(3))
	}
	if !b[1].Time.Equal(at(2)) {
		t.Fatalf("channel 1 kept %v at index 1, want %v", b[1].Time, at(2))
	}
	if s.Len(core.Key{}) != 4 {
		t.Fatal("Clean mutated the source series")
	}
}

func TestRestrict(t *testing.T) {
	in := []Sample{
		{Time: at(5), Value: 5},
		{Time: at(1), Value: 1},
		{Time: at(3), Value: 3},
		{Time: at(2), Value: 2},
		{Time: at(4), Value: 4},
	}
	got := Restrict(in, at(2), at(4))
	if len(got) != 2 || got[0].Value != 2 || got[1].Value != 3 {
		t.Fatalf("Restrict = %+v, want [2 3]", got)
	}
	open := Restrict(in, time.Time{}, at(3))
	if len(open) != 2 || open[0].Value != 1 {
		t.Fatalf("open start = %+v", open)
	}
	if in[0].Value != 5 {
		t.Fatal("Restrict reordered its input")
	}
}

func TestCenter(t *testing.T) {
	got := Center(samplesOf(1, 2, 3, 6))
	want := []float64{-2, -1, 0, 3}
	for i, s := range got {
		if s.Value != want[i] {
			t.Fatalf("index %d = %v, want %v", i, s.Value, want[i])
		}
	}
	if Center(nil) != nil {
		t.Fatal("Center(nil) should be nil")
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{in: "2022-11-26", want: time.Date(2022, 11, 26, 0, 0, 0, 0, time.UTC)},
		{in: "2023-09-25T12:30:00", want: time.Date(2023, 9, 25, 12, 30, 0, 0, time.UTC)},
		{in: "2023-09-25T12:30:00+02:00", want: time.Date(2023, 9, 25, 10, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseTime(tt.in)
		if err != nil {
			t.Fatalf("ParseTime(%q): %v", tt.in, err)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("ParseTime(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if _, err := ParseTime("yesterday"); !errors.Is(err, core.ErrDataConsistency) {
		t.Fatalf("err = %v, want ErrDataConsistency", err)
	}
}
