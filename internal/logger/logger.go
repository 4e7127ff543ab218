// Package logger builds the zerolog logger shared by the binary and the chart.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config selects level, format and destination.
type Config struct {
	Level  string // trace, debug, info, warn, error, fatal, panic, disabled
	Format string // json or console
	Output string // stdout, stderr, or file path
}

// New creates a logger. The returned closer releases a log file and is a no-op for
// the standard streams.
func New(cfg Config) (zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		l, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("invalid log level: %w", err)
		}
		level = l
	}

	var out io.Writer
	var closer io.Closer = nopCloser{}
	switch cfg.Output {
	case "", "stderr":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	default:
		f, err := os.OpenFile(cfg.Output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return zerolog.Nop(), nopCloser{}, fmt.Errorf("could not open log file: %w", err)
		}
		out, closer = f, f
	}
	return build(out, cfg.Format, level), closer, nil
}

func build(out io.Writer, format string, level zerolog.Level) zerolog.Logger {
	if format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
