package archive

import (
	"errors"
	"fmt"
	"io"
	"time"

	parquet "github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/format"

	"github.com/cwbudde/galnoise/core"
	"github.com/cwbudde/galnoise/pipeline"
	"github.com/cwbudde/galnoise/series"
)

// NoiseRecord is one row of the noise archive.
type NoiseRecord struct {
	Column  string  `parquet:"column,dict"`
	Antenna int32   `parquet:"antenna"`
	Channel int32   `parquet:"channel"`
	Time    int64   `parquet:"time"`
	Value   float64 `parquet:"value"`
}

// Records flattens s into archive rows sorted by antenna, channel and time.
func Records(s *series.Series) []NoiseRecord {
	var out []NoiseRecord
	for _, k := range s.Keys() {
		name := k.Name()
		for _, smp := range s.Channel(k) {
			out = append(out, NoiseRecord{
				Column:  name,
				Antenna: int32(k.Antenna),
				Channel: int32(k.Channel),
				Time:    smp.Time.UnixNano(),
				Value:   smp.Value,
			})
		}
	}
	return out
}

// Write stores s as a parquet noise archive.
func Write(w io.Writer, s *series.Series, opts ...Option) error {
	if s == nil {
		return fmt.Errorf("archive: nil series: %w", core.ErrDataConsistency)
	}
	cfg := applyOptions(opts)

	pw := parquet.NewGenericWriter[NoiseRecord](w, cfg.compression)
	if cfg.stats != nil {
		for key, value := range encodeStats(*cfg.stats) {
			pw.SetKeyValueMetadata(key, value)
		}
	}
	if rows := Records(s); len(rows) > 0 {
		if _, err := pw.Write(rows); err != nil {
			_ = pw.Close()
			return fmt.Errorf("archive: write rows: %w", err)
		}
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("archive: close writer: %w", err)
	}
	return nil
}

// Read loads the series of a noise archive written by Write.
func Read(r io.ReaderAt, opts ...Option) (*series.Series, error) {
	s, _, err := Load(r, opts...)
	return s, err
}

// Load reads a noise archive together with the ingestion counters stored by
// WithStats. The counters are nil when the archive carries none.
func Load(r io.ReaderAt, opts ...Option) (*series.Series, *pipeline.Stats, error) {
	cfg := applyOptions(opts)

	rows, meta, err := readFile[NoiseRecord](r)
	if err != nil {
		return nil, nil, err
	}
	st, err := decodeStats(meta)
	if err != nil {
		return nil, nil, err
	}

	byKey := make(map[core.Key][]series.Sample)
	antennas, channels := cfg.antennas, cfg.channels
	inferShape := antennas == 0
	for i, row := range rows {
		k := core.Key{Antenna: int(row.Antenna), Channel: int(row.Channel)}
		if k.Antenna < 0 || k.Channel < 0 || k.Name() != row.Column {
			return nil, nil, fmt.Errorf("archive: row %d: column %q does not match %s: %w",
				i, row.Column, k, core.ErrDataConsistency)
		}
		byKey[k] = append(byKey[k], series.Sample{Time: time.Unix(0, row.Time).UTC(), Value: row.Value})
		if inferShape {
			antennas = max(antennas, k.Antenna+1)
			channels = max(channels, k.Channel+1)
		}
	}
	if antennas == 0 {
		antennas, channels = core.DefaultAntennas, core.DefaultChannels
	}

	s, err := series.FromChannels(antennas, channels, byKey)
	if err != nil {
		return nil, nil, err
	}
	return s, st, nil
}

func readAll[T any](r io.ReaderAt) ([]T, error) {
	rows, _, err := readFile[T](r)
	return rows, err
}

// readFile returns the rows and the key/value metadata of a parquet file.
func readFile[T any](r io.ReaderAt) ([]T, []format.KeyValue, error) {
	gr := parquet.NewGenericReader[T](r)
	defer gr.Close()
	meta := gr.File().Metadata().KeyValueMetadata

	out := make([]T, 0, 1024)
	batch := make([]T, 1024)
	for {
		n, err := gr.Read(batch)
		if n > 0 {
			out = append(out, batch[:n]...)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("archive: read rows: %w", err)
		}
	}
	return out, meta, nil
}
