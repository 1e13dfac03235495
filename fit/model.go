package fit

import (
	"math"
	"time"
)

const numParams = 5

// Parameter vector layout.
const (
	idxSiderealAmp = iota
	idxSiderealPhase
	idxSolarAmp
	idxSolarPhase
	idxOffset
)

// Params holds the five model parameters. Phases are in radians.
type Params struct {
	SiderealAmplitude float64
	SiderealPhase     float64
	SolarAmplitude    float64
	SolarPhase        float64
	Offset            float64
}

func (p Params) vector() [numParams]float64 {
	return [numParams]float64{p.SiderealAmplitude, p.SiderealPhase, p.SolarAmplitude, p.SolarPhase, p.Offset}
}

func paramsFrom(v [numParams]float64) Params {
	return Params{
		SiderealAmplitude: v[idxSiderealAmp],
		SiderealPhase:     v[idxSiderealPhase],
		SolarAmplitude:    v[idxSolarAmp],
		SolarPhase:        v[idxSolarPhase],
		Offset:            v[idxOffset],
	}
}

// Model is the dual sinusoid at two fixed frequencies.
type Model struct {
	SiderealHz float64
	SolarHz    float64
	Epoch      time.Time
}

// Eval returns the model value at t seconds since the epoch.
func (m Model) Eval(p Params, t float64) float64 {
	return m.eval(p.vector(), t)
}

// EvalTime returns the model value at ts.
func (m Model) EvalTime(p Params, ts time.Time) float64 {
	return m.eval(p.vector(), m.Seconds(ts))
}

// Seconds converts ts to seconds since the model epoch.
func (m Model) Seconds(ts time.Time) float64 {
	return float64(ts.Unix()-m.Epoch.Unix()) + float64(ts.Nanosecond()-m.Epoch.Nanosecond())/1e9
}

// Time converts seconds since the model epoch back to a timestamp.
func (m Model) Time(seconds float64) time.Time {
	whole, frac := math.Modf(seconds)
	return m.Epoch.Add(time.Duration(whole) * time.Second).Add(time.Duration(frac * 1e9)).UTC()
}

func (m Model) eval(v [numParams]float64, t float64) float64 {
	return v[idxSiderealAmp]*math.Sin(2*math.Pi*m.SiderealHz*t+v[idxSiderealPhase]) +
		v[idxSolarAmp]*math.Sin(2*math.Pi*m.SolarHz*t+v[idxSolarPhase]) +
		v[idxOffset]
}

// gradient writes ∂y/∂p at t into row.
func (m Model) gradient(v [numParams]float64, t float64, row []float64) {
	s1, c1 := math.Sincos(2*math.Pi*m.SiderealHz*t + v[idxSiderealPhase])
	s2, c2 := math.Sincos(2*math.Pi*m.SolarHz*t + v[idxSolarPhase])
	row[idxSiderealAmp] = s1
	row[idxSiderealPhase] = v[idxSiderealAmp] * c1
	row[idxSolarAmp] = s2
	row[idxSolarPhase] = v[idxSolarAmp] * c2
	row[idxOffset] = 1
}

// canonical maps v onto A ≥ 0 and phases in (−π, π] without changing the
// model value.
func canonical(v [numParams]float64) [numParams]float64 {
	for _, i := range [...]int{idxSiderealAmp, idxSolarAmp} {
		if v[i] < 0 {
			v[i] = -v[i]
			v[i+1] += math.Pi
		}
		v[i+1] = wrapPhase(v[i+1])
	}
	return v
}

func wrapPhase(phi float64) float64 {
	phi = math.Mod(phi+math.Pi, 2*math.Pi)
	if phi <= 0 {
		phi += 2 * math.Pi
	}
	return phi - math.Pi
}
