package archive

import (
	"strings"

	parquet "github.com/parquet-go/parquet-go"

	"github.com/cwbudde/galnoise/pipeline"
)

type config struct {
	compression parquet.WriterOption
	codec       string
	antennas    int
	channels    int
	stats       *pipeline.Stats
}

// Option configures reading or writing.
type Option func(*config)

func applyOptions(opts []Option) config {
	cfg := config{
		compression: parquet.Compression(&parquet.Zstd),
		codec:       "zstd",
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithCompression selects the page codec: zstd (default), gzip, snappy or
// none. Unknown names keep the current codec.
func WithCompression(name string) Option {
	return func(cfg *config) {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "zstd":
			cfg.compression, cfg.codec = parquet.Compression(&parquet.Zstd), "zstd"
		case "gzip", "gz":
			cfg.compression, cfg.codec = parquet.Compression(&parquet.Gzip), "gzip"
		case "snappy":
			cfg.compression, cfg.codec = parquet.Compression(&parquet.Snappy), "snappy"
		case "none", "uncompressed":
			cfg.compression, cfg.codec = parquet.Compression(&parquet.Uncompressed), "none"
		}
	}
}

// WithShape fixes the antenna × channel shape of a series read back from an
// archive. Without it the shape is the smallest one holding every row.
func WithShape(antennas, channels int) Option {
	return func(cfg *config) {
		if antennas > 0 && channels > 0 {
			cfg.antennas, cfg.channels = antennas, channels
		}
	}
}

// WithStats stores the ingestion counters in the file metadata of a noise
// archive, so a later analysis of the archive can report them.
func WithStats(st pipeline.Stats) Option {
	return func(cfg *config) {
		cfg.stats = &st
	}
}
