package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = provider.Shutdown(context.Background())
	})
	return recorder
}

func attrMap(attrs []attribute.KeyValue) map[string]attribute.Value {
	m := make(map[string]attribute.Value, len(attrs))
	for _, kv := range attrs {
		m[string(kv.Key)] = kv.Value
	}
	return m
}

func TestStartServiceSpan_NameAndAttributes(t *testing.T) {
	recorder := withRecorder(t)

	ctx, span := StartServiceSpan(context.Background(), "order", "create",
		WithAttribute(SpanAttrItemsCount, 2),
		WithSpanKind(trace.SpanKindServer),
	)
	SetAttributes(span, SpanAttrTotal, "19.98", SpanAttrDroppedItems, 1, 42, "ignored", "odd")
	assert.NotEmpty(t, GetTraceID(ctx))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "order.create", ended[0].Name())
	assert.Equal(t, trace.SpanKindServer, ended[0].SpanKind())

	attrs := attrMap(ended[0].Attributes())
	assert.Equal(t, int64(2), attrs[SpanAttrItemsCount].AsInt64())
	assert.Equal(t, "19.98", attrs[SpanAttrTotal].AsString())
	assert.Equal(t, int64(1), attrs[SpanAttrDroppedItems].AsInt64())
	assert.Len(t, attrs, 3)
}

func TestRecordError_SetsStatus(t *testing.T) {
	recorder := withRecorder(t)

	_, span := StartSpan(context.Background(), "bill.create")
	RecordError(span, errors.New("bill number taken"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "bill number taken", ended[0].Status().Description)
	require.Len(t, ended[0].Events(), 1)
	assert.Equal(t, "exception", ended[0].Events()[0].Name)
}

func TestRecordError_NilIsNoop(t *testing.T) {
	recorder := withRecorder(t)

	_, span := StartSpan(context.Background(), "noop")
	RecordError(span, nil)
	SetOK(span)
	span.End()

	assert.Equal(t, codes.Ok, recorder.Ended()[0].Status().Code)
}

func TestAddEvent(t *testing.T) {
	recorder := withRecorder(t)

	_, span := StartSpan(context.Background(), "order.create")
	AddEvent(span, "client_not_found", "customer_fullname", "Ada Lovelace")
	span.End()

	events := recorder.Ended()[0].Events()
	require.Len(t, events, 1)
	assert.Equal(t, "client_not_found", events[0].Name)
	assert.Equal(t, "Ada Lovelace", attrMap(events[0].Attributes)["customer_fullname"].AsString())
}

func TestGetTraceID_NoSpan(t *testing.T) {
	assert.Empty(t, GetTraceID(context.Background()))
}

type stringer struct{}

func (stringer) String() string { return "stringer" }

func TestToAttribute(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  attribute.Value
	}{
		{"string", "x", attribute.StringValue("x")},
		{"int", 3, attribute.IntValue(3)},
		{"int64", int64(4), attribute.Int64Value(4)},
		{"float", 1.5, attribute.Float64Value(1.5)},
		{"bool", true, attribute.BoolValue(true)},
		{"strings", []string{"a", "b"}, attribute.StringSliceValue([]string{"a", "b"})},
		{"stringer", stringer{}, attribute.StringValue("stringer")},
		{"fallback", struct{ A int }{1}, attribute.StringValue("{1}")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toAttribute("k", tt.value).Value)
		})
	}
}
