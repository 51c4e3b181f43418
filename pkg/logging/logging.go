// Package logging provides structured logging for raintank using zerolog.
//
// A process-wide logger is configured once from the CLI with Init. Code that
// runs below the CLI receives its logger through the context:
//
//	ctx := logging.WithLogger(ctx, logging.WithPhase("simulate"))
//	log := logging.FromContext(ctx)
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	logger = New(os.Stderr, false, false)
}

// New builds a logger writing to w.
// If debug is true, the level is Debug instead of Info.
// If human is true, a console writer replaces JSON output.
func New(w io.Writer, debug, human bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	var output io.Writer = w
	if human {
		output = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// Init replaces the process-wide logger with one writing to stderr.
func Init(debug, human bool) {
	logger = New(os.Stderr, debug, human)
}

// L returns the process-wide logger.
func L() *zerolog.Logger {
	return &logger
}

// SetLogger overrides the process-wide logger (useful for testing).
func SetLogger(l zerolog.Logger) {
	logger = l
}

// WithPhase returns a logger with the phase field set.
// Phases used by the CLI are "load", "simulate" and "report".
func WithPhase(phase string) zerolog.Logger {
	return logger.With().Str("phase", phase).Logger()
}

type loggerKey struct{}

// WithLogger returns a copy of ctx carrying l.
func WithLogger(ctx context.Context, l zerolog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, l)
}

// FromContext returns the logger stored in ctx, or the process-wide logger
// when ctx is nil or carries none. It never returns a zero-value logger.
func FromContext(ctx context.Context) zerolog.Logger {
	if ctx == nil {
		return logger
	}
	if l, ok := ctx.Value(loggerKey{}).(zerolog.Logger); ok {
		return l
	}
	return logger
}

// WithStr returns a context whose logger has the string field added.
func WithStr(ctx context.Context, key, value string) context.Context {
	return WithLogger(ctx, FromContext(ctx).With().Str(key, value).Logger())
}
