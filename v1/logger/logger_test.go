package logger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObservedLogger(tracing bool) (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewFromZap(zap.New(core), tracing), logs
}

func spanContext(t *testing.T) context.Context {
	t.Helper()
	traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	require.NoError(t, err)
	spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
	require.NoError(t, err)

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), sc)
}

func TestLogger_FieldsAndError(t *testing.T) {
	log, logs := newObservedLogger(false)

	log.Error("persist failed", errors.New("disk full"), map[string]interface{}{
		"collection": "users",
	}, map[string]interface{}{
		"documents": 3,
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "persist failed", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "disk full", fields["error"])
	assert.Equal(t, "users", fields["collection"])
	assert.EqualValues(t, 3, fields["documents"])
}

func TestLogger_Levels(t *testing.T) {
	log, logs := newObservedLogger(false)

	log.Debug("d", nil)
	log.Info("i", nil)
	log.Warn("w", nil)

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
	assert.Equal(t, zapcore.InfoLevel, entries[1].Level)
	assert.Equal(t, zapcore.WarnLevel, entries[2].Level)
}

func TestLogger_WithContextAddsTraceFields(t *testing.T) {
	log, logs := newObservedLogger(true)

	log.InfoWithContext(spanContext(t), "query", nil, nil)

	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", fields["trace_id"])
	assert.Equal(t, "00f067aa0ba902b7", fields["span_id"])
}

func TestLogger_WithContextTracingDisabled(t *testing.T) {
	log, logs := newObservedLogger(false)

	log.WarnWithContext(spanContext(t), "query", nil, nil)

	fields := logs.All()[0].ContextMap()
	assert.NotContains(t, fields, "trace_id")
	assert.NotContains(t, fields, "span_id")
}

func TestLogger_WithContextNoSpan(t *testing.T) {
	log, logs := newObservedLogger(true)

	log.ErrorWithContext(context.Background(), "query", nil, nil)
	log.DebugWithContext(context.Background(), "query", nil, nil)

	for _, entry := range logs.All() {
		assert.NotContains(t, entry.ContextMap(), "trace_id")
	}
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel(Debug))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(Info))
	assert.Equal(t, zapcore.WarnLevel, parseLevel(Warning))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel(Error))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("verbose"))
}

func TestFXModule(t *testing.T) {
	var client *Logger
	app := fxtest.New(t,
		FXModule,
		fx.Provide(func() Config {
			return Config{Level: Debug, ServiceName: "jsondb-test"}
		}),
		fx.Populate(&client),
	)
	app.RequireStart()
	require.NotNil(t, client)
	assert.True(t, client.Zap.Core().Enabled(zapcore.DebugLevel))
	app.RequireStop()
}
