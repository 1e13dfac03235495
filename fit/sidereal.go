package fit

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/sidereal"
)

// LocalSiderealHours returns the local mean sidereal time at t in hours
// [0, 24) for an observer at longitudeDeg, positive east.
func LocalSiderealHours(t time.Time, longitudeDeg float64) float64 {
	jd := julian.TimeToJD(t.UTC())
	gmst := sidereal.Mean(jd).Hour()
	h := math.Mod(gmst+longitudeDeg/15, 24)
	if h < 0 {
		h += 24
	}
	return h
}

// PeakLocalSiderealHours returns the local sidereal time of the sidereal
// maximum of r, or NaN when the fit has no sidereal peak.
func (r Result) PeakLocalSiderealHours(longitudeDeg float64) float64 {
	if r.SiderealPeak.IsZero() {
		return math.NaN()
	}
	return LocalSiderealHours(r.SiderealPeak, longitudeDeg)
}
