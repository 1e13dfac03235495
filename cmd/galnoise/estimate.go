package main

import (
	"context"
	"flag"
	"fmt"
	"maps"
	"os"
	"os/signal"
	"slices"

	"go.uber.org/zap"

	"github.com/cwbudde/galnoise/archive"
	"github.com/cwbudde/galnoise/pipeline"
)

func runEstimate(args []string) error {
	fs := flag.NewFlagSet("estimate", flag.ExitOnError)
	in := fs.String("in", "", "waveform parquet file")
	out := fs.String("out", "noise.parquet", "noise archive to write")
	var rf runFlags
	rf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	r, err := rf.resolve("estimate")
	if err != nil {
		return err
	}
	defer func() { _ = r.logger.Sync() }()

	src, err := openWaveforms(*in)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ing := pipeline.NewIngestor(r.cfg, pipeline.WithLogger(r.logger))
	st, err := ing.Run(ctx, src)
	if err != nil {
		return err
	}
	s, err := ing.Finalize()
	if err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	if err := archive.Write(f, s, archive.WithCompression(r.codec), archive.WithStats(st)); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	r.logger.Info("noise archive written",
		zap.String("path", *out),
		zap.Int("processed", st.Processed),
		zap.Int("skipped", st.Skipped),
	)
	fmt.Printf("%d events, %d processed, %d skipped\n", st.Events, st.Processed, st.Skipped)
	for _, reason := range slices.Sorted(maps.Keys(st.SkippedByReason)) {
		fmt.Printf("  skipped %-12s %d\n", reason, st.SkippedByReason[reason])
	}
	return nil
}

func openWaveforms(path string) (*archive.WaveformReader, error) {
	f, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return archive.NewWaveformReader(f)
}
