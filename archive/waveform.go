package archive

import (
	"fmt"
	"io"
	"sort"
	"time"

	parquet "github.com/parquet-go/parquet-go"

	"github.com/cwbudde/galnoise/core"
	"github.com/cwbudde/galnoise/noise"
)

// WaveformRecord is one captured trace on disk.
type WaveformRecord struct {
	Time    int64     `parquet:"time"`
	Antenna int32     `parquet:"antenna"`
	Channel int32     `parquet:"channel"`
	Samples []float64 `parquet:"samples"`
}

// WaveformReader yields the events of a waveform file in time order. Rows
// sharing a timestamp form one event.
type WaveformReader struct {
	events []noise.Event
	next   int
}

// NewWaveformReader loads the waveform records of r.
func NewWaveformReader(r io.ReaderAt) (*WaveformReader, error) {
	rows, err := readAll[WaveformRecord](r)
	if err != nil {
		return nil, err
	}
	events, err := groupEvents(rows)
	if err != nil {
		return nil, err
	}
	return &WaveformReader{events: events}, nil
}

// Next returns the next event, or io.EOF after the last one.
func (wr *WaveformReader) Next() (noise.Event, error) {
	if wr.next >= len(wr.events) {
		return noise.Event{}, io.EOF
	}
	ev := wr.events[wr.next]
	wr.next++
	return ev, nil
}

// Len returns the number of events in the file.
func (wr *WaveformReader) Len() int { return len(wr.events) }

// Reset rewinds the reader to the first event.
func (wr *WaveformReader) Reset() { wr.next = 0 }

func groupEvents(rows []WaveformRecord) ([]noise.Event, error) {
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Time < rows[j].Time })

	var events []noise.Event
	for i, row := range rows {
		if row.Time == 0 || row.Antenna < 0 || row.Channel < 0 {
			return nil, fmt.Errorf("archive: waveform row %d has time %d antenna %d channel %d: %w",
				i, row.Time, row.Antenna, row.Channel, core.ErrDataConsistency)
		}
		w := noise.Waveform{Antenna: int(row.Antenna), Channel: int(row.Channel), Samples: row.Samples}
		if n := len(events); n > 0 && events[n-1].Time.UnixNano() == row.Time {
			events[n-1].Waveforms = append(events[n-1].Waveforms, w)
			continue
		}
		events = append(events, noise.Event{Time: time.Unix(0, row.Time).UTC(), Waveforms: []noise.Waveform{w}})
	}
	return events, nil
}

// WriteWaveforms stores events as waveform records.
func WriteWaveforms(w io.Writer, events []noise.Event, opts ...Option) error {
	cfg := applyOptions(opts)

	pw := parquet.NewGenericWriter[WaveformRecord](w, cfg.compression)
	for _, ev := range events {
		rows := make([]WaveformRecord, 0, len(ev.Waveforms))
		for _, wf := range ev.Waveforms {
			rows = append(rows, WaveformRecord{
				Time:    ev.Time.UnixNano(),
				Antenna: int32(wf.Antenna),
				Channel: int32(wf.Channel),
				Samples: wf.Samples,
			})
		}
		if len(rows) == 0 {
			continue
		}
		if _, err := pw.Write(rows); err != nil {
			_ = pw.Close()
			return fmt.Errorf("archive: write waveforms: %w", err)
		}
	}
	if err := pw.Close(); err != nil {
		return fmt.Errorf("archive: close writer: %w", err)
	}
	return nil
}
