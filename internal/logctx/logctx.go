// Package logctx carries a zerolog logger through context.Context.
//
// The registry codec itself never logs; the ingest driver and the CLI pull
// their logger from the context so callers can attach fields (the registry
// file, the package being added) once and have them appear on every line.
//
//	ctx := logctx.WithLogger(ctx, logctx.NewConfiguredLogger(os.Stderr, debug, human))
//	ctx = logctx.WithStr(ctx, "registry", path)
//	logctx.FromContext(ctx).Info().Msg("loaded")
package logctx

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
)

type loggerKey struct{}

// WithLogger returns a copy of ctx carrying logger.
func WithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stored in ctx. Without one it returns a
// disabled logger, so library callers that never configured logging stay
// silent.
func FromContext(ctx context.Context) zerolog.Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(loggerKey{}).(zerolog.Logger); ok {
			return logger
		}
	}
	return zerolog.Nop()
}

// WithStr returns a copy of ctx whose logger carries one more string field.
func WithStr(ctx context.Context, key, value string) context.Context {
	logger := FromContext(ctx).With().Str(key, value).Logger()
	return WithLogger(ctx, logger)
}

// NewConfiguredLogger builds the CLI logger. debug lowers the level to
// Debug; human swaps JSON lines for zerolog's console writer.
func NewConfiguredLogger(w io.Writer, debug, human bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	out := w
	if human {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
