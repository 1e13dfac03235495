package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/galnoise/core"
	"github.com/cwbudde/galnoise/pipeline"
	"github.com/cwbudde/galnoise/spectrum"
)

func runSpectrum(args []string) error {
	fs := flag.NewFlagSet("spectrum", flag.ExitOnError)
	in := fs.String("in", "", "waveform parquet file")
	step := fs.Int("step", 16, "print every step-th frequency bin")
	sampleRate := fs.Float64("rate", 0, "sample rate in Hz (default from config)")
	impedance := fs.Float64("ohm", 0, "load impedance in ohm (default from config)")
	var rf runFlags
	rf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	r, err := rf.resolve("spectrum")
	if err != nil {
		return err
	}
	defer func() { _ = r.logger.Sync() }()
	cfg := r.cfg.Apply(core.WithSampleRate(*sampleRate), core.WithImpedance(*impedance))
	if cfg.TraceLength == 0 {
		return fmt.Errorf("spectrum needs a fixed trace length")
	}

	src, err := openWaveforms(*in)
	if err != nil {
		return err
	}
	avg, err := spectrum.NewAverager(cfg.TraceLength, spectrum.FromCore(cfg))
	if err != nil {
		return err
	}
	ing := pipeline.NewIngestor(cfg, pipeline.WithLogger(r.logger), pipeline.WithSpectrum(avg))
	if _, err := ing.Run(context.Background(), src); err != nil {
		return err
	}

	keys := avg.Keys()
	if len(keys) == 0 {
		return fmt.Errorf("no accepted events")
	}
	if *step < 1 {
		*step = 1
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "Freq [MHz]")
	spectra := make([]spectrum.Spectrum, len(keys))
	for i, k := range keys {
		if spectra[i], err = avg.Average(k); err != nil {
			return err
		}
		fmt.Fprintf(tw, "\t%s [dBm/Hz]", k.Name())
	}
	fmt.Fprintln(tw)
	for b := 0; b < avg.Bins(); b += *step {
		fmt.Fprintf(tw, "%.2f", spectra[0].Freqs[b]/1e6)
		for _, s := range spectra {
			fmt.Fprintf(tw, "\t%.2f", s.DBmHz[b])
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
