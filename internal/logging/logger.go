// Package logging provides structured logging for recon using zerolog.
//
// Example usage:
//
//	log := logging.Default()
//	log.Info().Int("sources", 10).Msg("Reconciling")
//
//	ctx := logging.WithLogger(context.Background(), log)
//	logging.FromContext(ctx).Debug().Msg("Using logger from context")
package logging

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration options.
type Config struct {
	// Level is the minimum log level to output (debug, info, warn, error).
	Level string `toml:"level"`

	// Format is the output format: console or json.
	Format string `toml:"format"`

	// Output is stderr, stdout, discard or a file path.
	Output string `toml:"output"`
}

var defaultLogger = NewFromConfig(Config{Level: "info", Format: "console"})

// Nop discards everything.
var Nop = zerolog.Nop()

// Default returns the process-wide logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the process-wide logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
}

// New creates a JSON logger writing to w.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// NewFromConfig builds a logger from cfg. Unknown levels fall back to info.
func NewFromConfig(cfg Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	var w io.Writer
	switch strings.ToLower(cfg.Output) {
	case "", "stderr":
		w = os.Stderr
	case "stdout":
		w = os.Stdout
	case "discard", "none":
		w = io.Discard
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			w = os.Stderr
		} else {
			w = f
		}
	}

	if strings.ToLower(cfg.Format) != "json" {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}

	logger := zerolog.New(w).Level(level).With().Timestamp().Logger()
	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

type contextKey struct{}

// WithLogger adds a logger to the context.
func WithLogger(ctx context.Context, logger *zerolog.Logger) context.Context {
	if logger == nil {
		logger = Default()
	}
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext extracts the logger from context, or returns the default logger.
func FromContext(ctx context.Context) *zerolog.Logger {
	if ctx == nil {
		return Default()
	}
	if logger, ok := ctx.Value(contextKey{}).(*zerolog.Logger); ok && logger != nil {
		return logger
	}
	return Default()
}
