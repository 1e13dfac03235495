// Package archive stores noise-floor series and reads captured waveforms as
// parquet files.
//
// The noise archive is long-form: one row per (channel, time) with the
// channel name rms{antenna}{channel} (antenna 1-based, channel 0-based)
// dictionary-encoded, so channels of different length after cleaning share
// one file. The zero-based antenna and channel indices are stored beside
// the name, which is not unique once an index reaches 10. Rows are sorted by
// antenna, channel and time. Ingestion counters passed to WithStats travel
// in the file's key/value metadata and come back from Load.
//
// # Usage
//
//	var buf bytes.Buffer
//	if err := archive.Write(&buf, s); err != nil {
//		return err
//	}
//	s2, err := archive.Read(bytes.NewReader(buf.Bytes()))
package archive
