// Package spectrum averages the power spectral density of captured traces
// per (antenna, channel).
//
// Each trace is Hann windowed and transformed; the one-sided density in
// dBm/Hz across the load impedance is accumulated per channel and averaged
// over all added traces (the mean is taken over dB values).
//
// # Usage
//
//	avg, err := spectrum.NewAverager(1024, spectrum.WithSampleRate(1e9))
//	if err != nil {
//		return err
//	}
//	for _, wf := range event.Waveforms {
//		_ = avg.Add(core.Key{Antenna: wf.Antenna, Channel: wf.Channel}, wf.Samples)
//	}
//	s, _ := avg.Average(core.Key{})
package spectrum
