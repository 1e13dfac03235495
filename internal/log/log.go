// Package log builds the zap loggers used by the command line tools.
package log

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// New returns a development logger when debug is set and a production
// logger otherwise. Both write to stderr.
func New(debug bool) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("log: can't initialize zap logger: %w", err)
	}
	return logger, nil
}

// NewRunID returns a fresh identifier for one processing run.
func NewRunID() string {
	return uuid.NewString()
}

// WithRun tags every entry of logger with the run id and command name.
func WithRun(logger *zap.Logger, runID, command string) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return logger.With(zap.String("run_id", runID), zap.String("command", command))
}
