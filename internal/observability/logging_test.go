package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestInitLogger_JSONWithTrace(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := InitLogger(LogOptions{Level: slog.LevelInfo, Format: "json", Out: &buf})

	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	logger.InfoContext(ctx, "hello", "k", "v")
	span.End()

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "hello", line["msg"])
	assert.Equal(t, span.SpanContext().TraceID().String(), line["trace_id"])
	assert.Equal(t, span.SpanContext().SpanID().String(), line["span_id"])
}

func TestInitLogger_TextFiltersLevel(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	InitLogger(LogOptions{Level: slog.LevelWarn, Format: "text", Out: &buf})
	slog.Info("hidden")
	slog.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=shown")
	assert.NotContains(t, buf.String(), "trace_id")
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	_, err = ParseLevel("chatty")
	assert.Error(t, err)
}

func TestVerbosityLevel(t *testing.T) {
	assert.Equal(t, slog.LevelWarn, VerbosityLevel(slog.LevelWarn, 0))
	assert.Equal(t, slog.LevelInfo, VerbosityLevel(slog.LevelWarn, 1))
	assert.Equal(t, slog.LevelDebug, VerbosityLevel(slog.LevelWarn, 2))
	assert.Equal(t, slog.LevelDebug, VerbosityLevel(slog.LevelWarn, 5))
}
