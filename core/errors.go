package core

import "errors"

// Error taxonomy shared by every stage. Callers match with errors.Is; stages
// wrap these with context.
var (
	// ErrInsufficientData reports a waveform without a complete segment or a
	// fit with fewer observations than free parameters.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrDataConsistency reports diverging channel lengths, malformed indices
	// or timestamps that cannot be parsed or ordered.
	ErrDataConsistency = errors.New("data consistency")
	// ErrFitConvergence reports a least-squares fit that did not converge or
	// produced non-finite parameters.
	ErrFitConvergence = errors.New("fit did not converge")
)
