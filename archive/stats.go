package archive

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go/format"

	"github.com/cwbudde/galnoise/core"
	"github.com/cwbudde/galnoise/pipeline"
)

// Metadata keys of the ingestion counters.
const (
	metaEvents    = "galnoise.events"
	metaProcessed = "galnoise.processed"
	metaSkipped   = "galnoise.skipped"
	metaReason    = "galnoise.skipped."
)

func encodeStats(st pipeline.Stats) map[string]string {
	kv := map[string]string{
		metaEvents:    strconv.Itoa(st.Events),
		metaProcessed: strconv.Itoa(st.Processed),
		metaSkipped:   strconv.Itoa(st.Skipped),
	}
	for reason, n := range st.SkippedByReason {
		kv[metaReason+string(reason)] = strconv.Itoa(n)
	}
	return kv
}

// decodeStats returns nil when meta holds no counters.
func decodeStats(meta []format.KeyValue) (*pipeline.Stats, error) {
	var (
		st    pipeline.Stats
		found bool
	)
	for _, kv := range meta {
		if !strings.HasPrefix(kv.Key, "galnoise.") {
			continue
		}
		n, err := strconv.Atoi(kv.Value)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("archive: metadata %s=%q: %w", kv.Key, kv.Value, core.ErrDataConsistency)
		}
		found = true
		switch {
		case kv.Key == metaEvents:
			st.Events = n
		case kv.Key == metaProcessed:
			st.Processed = n
		case kv.Key == metaSkipped:
			st.Skipped = n
		case strings.HasPrefix(kv.Key, metaReason):
			if st.SkippedByReason == nil {
				st.SkippedByReason = make(map[pipeline.SkipReason]int)
			}
			st.SkippedByReason[pipeline.SkipReason(strings.TrimPrefix(kv.Key, metaReason))] = n
		}
	}
	if !found {
		return nil, nil
	}
	return &st, nil
}
