// Package logging builds the zerolog loggers used by the hosts and
// adapters. Domain packages never log; everything above them receives a
// logger and tags it with a component field.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config selects the log level and output format.
type Config struct {
	Level  string // trace, debug, info, warn, error; empty means info
	Format string // "console", "json", or empty to auto-detect a terminal
}

// New returns a logger writing to stderr per cfg.
func New(cfg Config) zerolog.Logger {
	return NewWithWriter(os.Stderr, cfg)
}

// NewWithWriter returns a logger writing to w per cfg.
func NewWithWriter(w io.Writer, cfg Config) zerolog.Logger {
	if useConsole(cfg.Format) {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	}
	return zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp().Logger()
}

// Nop returns a logger that discards everything.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

func parseLevel(s string) zerolog.Level {
	if s == "" {
		return zerolog.InfoLevel
	}
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

// useConsole picks pretty output when asked for explicitly, JSON when asked
// for explicitly, and otherwise only when stderr is a terminal.
func useConsole(format string) bool {
	switch format {
	case "console":
		return true
	case "json":
		return false
	}
	if fileInfo, _ := os.Stderr.Stat(); fileInfo != nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}
	return false
}
