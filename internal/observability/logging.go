package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

// LogOptions selects the level and encoding of log output.
type LogOptions struct {
	Level  slog.Level
	Format string // "text" or "json"
	Out    io.Writer
}

// InitLogger creates a structured logger with trace correlation and
// installs it as the slog default. Every log line from a traced context
// includes trace_id and span_id.
func InitLogger(opts LogOptions) *slog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}
	hopts := &slog.HandlerOptions{Level: opts.Level}

	var inner slog.Handler
	if opts.Format == "json" {
		inner = slog.NewJSONHandler(out, hopts)
	} else {
		inner = slog.NewTextHandler(out, hopts)
	}
	logger := slog.New(&traceHandler{inner: inner})
	slog.SetDefault(logger)
	return logger
}

// ParseLevel accepts debug, info, warn or error.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}

// VerbosityLevel lowers base by one step per -v flag.
func VerbosityLevel(base slog.Level, verbosity int) slog.Level {
	l := base - slog.Level(4*verbosity)
	if l < slog.LevelDebug {
		return slog.LevelDebug
	}
	return l
}

// traceHandler wraps a slog.Handler to inject trace_id and span_id from context.
type traceHandler struct {
	inner slog.Handler
}

func (h *traceHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

func (h *traceHandler) Handle(ctx context.Context, r slog.Record) error {
	sc := trace.SpanContextFromContext(ctx)
	if sc.IsValid() {
		r.AddAttrs(
			slog.String("trace_id", sc.TraceID().String()),
			slog.String("span_id", sc.SpanID().String()),
		)
	}
	return h.inner.Handle(ctx, r)
}

func (h *traceHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &traceHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *traceHandler) WithGroup(name string) slog.Handler {
	return &traceHandler{inner: h.inner.WithGroup(name)}
}
