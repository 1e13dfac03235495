package main

import (
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/cwbudde/galnoise/archive"
	"github.com/cwbudde/galnoise/fit"
	"github.com/cwbudde/galnoise/pipeline"
	"github.com/cwbudde/galnoise/report"
)

func runFit(args []string) error {
	fs := flag.NewFlagSet("fit", flag.ExitOnError)
	in := fs.String("in", "", "noise archive")
	out := fs.String("out", "", "MessagePack report to write (optional)")
	maxIter := fs.Int("max-iter", fit.DefaultMaxIterations, "solver iteration cap")
	var rf runFlags
	rf.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	r, err := rf.resolve("fit")
	if err != nil {
		return err
	}
	defer func() { _ = r.logger.Sync() }()

	f, err := openInput(*in)
	if err != nil {
		return err
	}
	s, st, err := archive.Load(f, archive.WithShape(r.cfg.Antennas, r.cfg.Channels))
	_ = f.Close()
	if err != nil {
		return err
	}

	fitter := fit.NewFitter(fit.FromCore(r.cfg), fit.WithMaxIterations(*maxIter), fit.WithLogger(r.logger))
	results := pipeline.Analyze(s, r.cfg,
		pipeline.WithTimeWindow(r.start, r.end),
		pipeline.WithFitter(fitter),
		pipeline.WithAnalyzeLogger(r.logger),
	)
	rep := report.New(r.runID, r.cfg, results).WithTimeWindow(r.start, r.end)
	if st != nil {
		rep.WithStats(*st)
	}

	if *out != "" {
		w, err := os.Create(*out)
		if err != nil {
			return err
		}
		if err := rep.Encode(w); err != nil {
			_ = w.Close()
			return err
		}
		if err := w.Close(); err != nil {
			return err
		}
		r.logger.Info("report written", zap.String("path", *out))
	}
	return rep.WriteTable(os.Stdout)
}
