// Package logging builds the leveled console logger shared by every
// component.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Prefix tags every line the program logs.
const Prefix = "todos"

// ParseLevel maps a level name to a log level. Unknown names fall back to
// warn.
func ParseLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.WarnLevel
	}
}

// New returns a text logger writing to w at the named level.
func New(w io.Writer, level string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           ParseLevel(level),
		Formatter:       log.TextFormatter,
		ReportTimestamp: false,
		Prefix:          Prefix,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
