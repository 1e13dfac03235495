// Package pipeline runs the noise-floor analysis end to end.
//
// An Ingestor consumes events from a Source one at a time, estimates the
// noise floor of every waveform and appends each event to a channel series
// as a unit. Events that cannot be used are skipped and counted by reason.
// Analyze then cleans, smooths, restricts, centres and fits every channel
// independently; a channel that fails carries its error and the others
// proceed.
//
// # Usage
//
//	in := pipeline.NewIngestor(cfg, pipeline.WithLogger(logger))
//	stats, err := in.Run(ctx, src)
//	if err != nil {
//		return err
//	}
//	s, err := in.Finalize()
//	if err != nil {
//		return err
//	}
//	results := pipeline.Analyze(s, cfg)
package pipeline
