// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Output formats
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Setup sets the global level and output format.
// Logs go to stderr so that CLI output on stdout stays machine-readable.
func Setup(level, format string) error {
	return SetupWriter(os.Stderr, level, format)
}

// SetupWriter is Setup with an explicit destination
func SetupWriter(w io.Writer, level, format string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	var out io.Writer
	switch strings.ToLower(format) {
	case "", FormatConsole:
		out = zerolog.ConsoleWriter{Out: w, NoColor: true, TimeFormat: time.RFC3339}
	case FormatJSON:
		out = w
	default:
		return fmt.Errorf("unknown log format %q", format)
	}

	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return nil
}

// ParseLevel maps a level name to a zerolog level; empty means info
func ParseLevel(level string) (zerolog.Level, error) {
	if strings.TrimSpace(level) == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}
