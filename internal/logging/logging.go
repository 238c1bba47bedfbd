// Package logging builds the structured loggers used across gesturify.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Options holds logging configuration
type Options struct {
	Level      string
	TimeFormat string
	ShowCaller bool
}

// DefaultOptions returns sensible defaults
func DefaultOptions() Options {
	return Options{
		Level:      "info",
		TimeFormat: "15:04:05",
		ShowCaller: false,
	}
}

// New builds a logger writing to w. A nil w means stderr.
func New(w io.Writer, opts Options) (*log.Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	if opts.Level == "" {
		opts.Level = "info"
	}
	level, err := log.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", opts.Level, err)
	}
	if opts.TimeFormat == "" {
		opts.TimeFormat = DefaultOptions().TimeFormat
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		TimeFormat:      opts.TimeFormat,
		ReportCaller:    opts.ShowCaller,
	})
	log.SetDefault(logger)
	return logger, nil
}

// Component returns a child logger with a component prefix
func Component(parent *log.Logger, name string) *log.Logger {
	if parent == nil {
		parent = log.Default()
	}
	return parent.WithPrefix(name)
}
