package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cwbudde/galnoise/config"
	"github.com/cwbudde/galnoise/core"
	"github.com/cwbudde/galnoise/internal/log"
	"github.com/cwbudde/galnoise/series"
)

// runFlags are shared by every command that processes data.
type runFlags struct {
	configFile string
	debug      bool
	antennas   int
	channels   int
	segLen     int
	lowestK    int
	reduction  string
	margin     float64
	window     int
	traceLen   int
	start      string
	end        string
	codec      string
}

func (rf *runFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&rf.configFile, "config", "", "YAML run configuration")
	fs.BoolVar(&rf.debug, "debug", false, "development logging")
	fs.IntVar(&rf.antennas, "antennas", 0, "number of antennas (default from config)")
	fs.IntVar(&rf.channels, "channels", 0, "channels per antenna (default from config)")
	fs.IntVar(&rf.segLen, "segment", 0, "subtrace length L in samples")
	fs.IntVar(&rf.lowestK, "k", 0, "number of lowest subtraces reduced")
	fs.StringVar(&rf.reduction, "reduction", "", "mean or median over the lowest subtraces")
	fs.Float64Var(&rf.margin, "margin", -1, "outlier margin above the channel minimum")
	fs.IntVar(&rf.window, "window", 0, "smoothing window W in samples")
	fs.IntVar(&rf.traceLen, "trace-length", -1, "accepted trace length, 0 accepts any")
	fs.StringVar(&rf.start, "start", "", "first timestamp of the fit window")
	fs.StringVar(&rf.end, "end", "", "end of the fit window (exclusive)")
	fs.StringVar(&rf.codec, "compression", "", "parquet codec: zstd, gzip, snappy, none")
}

type run struct {
	cfg        core.Config
	start, end time.Time
	codec      string
	runID      string
	logger     *zap.Logger
}

// resolve merges defaults, the config file and flags, in that order.
func (rf *runFlags) resolve(command string) (*run, error) {
	cfg := core.DefaultConfig()
	r := &run{codec: "zstd"}
	debug := rf.debug

	if rf.configFile != "" {
		f, err := config.Load(rf.configFile)
		if err != nil {
			return nil, err
		}
		if cfg, err = f.Config(cfg); err != nil {
			return nil, err
		}
		if r.start, r.end, err = f.TimeWindow(); err != nil {
			return nil, err
		}
		if f.Compression != "" {
			r.codec = f.Compression
		}
		debug = debug || f.Debug
	}

	var opts []core.Option
	if rf.antennas > 0 {
		opts = append(opts, core.WithAntennas(rf.antennas))
	}
	if rf.channels > 0 {
		opts = append(opts, core.WithChannels(rf.channels))
	}
	if rf.segLen > 0 {
		opts = append(opts, core.WithSegmentLength(rf.segLen))
	}
	if rf.lowestK > 0 {
		opts = append(opts, core.WithLowestK(rf.lowestK))
	}
	if rf.reduction != "" {
		red, err := core.ParseReduction(rf.reduction)
		if err != nil {
			return nil, err
		}
		opts = append(opts, core.WithReduction(red))
	}
	if rf.margin >= 0 {
		opts = append(opts, core.WithOutlierMargin(rf.margin))
	}
	if rf.window > 0 {
		opts = append(opts, core.WithWindow(rf.window))
	}
	if rf.traceLen >= 0 {
		opts = append(opts, core.WithTraceLength(rf.traceLen))
	}
	r.cfg = cfg.Apply(opts...)

	var err error
	if rf.start != "" {
		if r.start, err = series.ParseTime(rf.start); err != nil {
			return nil, err
		}
	}
	if rf.end != "" {
		if r.end, err = series.ParseTime(rf.end); err != nil {
			return nil, err
		}
	}
	if rf.codec != "" {
		r.codec = rf.codec
	}

	logger, err := log.New(debug)
	if err != nil {
		return nil, err
	}
	r.runID = log.NewRunID()
	r.logger = log.WithRun(logger, r.runID, command)
	return r, nil
}

func openInput(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("missing -in")
	}
	return os.Open(path)
}
