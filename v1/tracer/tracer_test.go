package tracer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"
)

func newRecordingTracer(t *testing.T) (*Tracer, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	ctrl := gomock.NewController(t)
	return NewWithProvider(tp, NewMockLogger(ctrl)), recorder
}

func TestStartSpan_RecordsError(t *testing.T) {
	tr, recorder := newRecordingTracer(t)

	_, span := tr.StartSpan(context.Background(), "collection.find")
	tr.SetAttributes(span, map[string]interface{}{
		"collection": "users",
		"count":      3,
		"ratio":      0.5,
		"cached":     true,
		"size":       int64(12),
		"other":      []int{1},
	})
	tr.RecordErrorOnSpan(span, errors.New("boom"))
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "collection.find", spans[0].Name())
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "boom", spans[0].Status().Description)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range spans[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "users", attrs["collection"].AsString())
	assert.Equal(t, int64(3), attrs["count"].AsInt64())
	assert.Equal(t, 0.5, attrs["ratio"].AsFloat64())
	assert.True(t, attrs["cached"].AsBool())
	assert.Equal(t, int64(12), attrs["size"].AsInt64())
	assert.Equal(t, "[1]", attrs["other"].AsString())
}

func TestSetAttributes_Empty(t *testing.T) {
	tr, recorder := newRecordingTracer(t)

	_, span := tr.StartSpan(context.Background(), "noop")
	tr.SetAttributes(span, nil)
	span.End()

	assert.Empty(t, recorder.Ended()[0].Attributes())
}

func TestRegisterTracerLifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockLogger := NewMockLogger(ctrl)
	mockLogger.EXPECT().Info("shutting down tracer...", nil, gomock.Any()).Times(1)

	tr := NewWithProvider(sdktrace.NewTracerProvider(), mockLogger)

	lc := fxtest.NewLifecycle(t)
	RegisterTracerLifecycle(lc, tr)
	lc.RequireStart()
	lc.RequireStop()
}
