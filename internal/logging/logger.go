// internal/logging/logger.go
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Options configures a simulation logger.
type Options struct {
	Level  string
	Writer io.Writer
	Prefix string
	// Timestamps are off by default so replays diff cleanly.
	Timestamps bool
}

// New builds a leveled key/value logger.
func New(opts Options) (*log.Logger, error) {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	level := log.InfoLevel
	if opts.Level != "" {
		lvl, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("bad log level %q: %w", opts.Level, err)
		}
		level = lvl
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          opts.Prefix,
		ReportTimestamp: opts.Timestamps,
	}), nil
}

// Discard returns a logger that drops everything. Used by tests and by
// callers that did not supply a logger.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
