package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func validSpanContext() trace.SpanContext {
	return trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01, 0x02, 0x03},
		SpanID:     trace.SpanID{0x04, 0x05},
		TraceFlags: trace.FlagsSampled,
	})
}

func TestFromContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	l := zap.NewExample()
	ctx := WithContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
}

func TestContextFields(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	base := zap.New(core)

	ctx, _ := WithRequestID(context.Background(), base, "req-1")
	ctx, _ = WithUserID(ctx, FromContext(ctx), "user-9")

	assert.Equal(t, "req-1", GetRequestID(ctx))
	assert.Equal(t, "user-9", GetUserID(ctx))

	L(ctx).Info("hello")
	entry := recorded.All()[0]
	assert.Equal(t, "req-1", entry.ContextMap()["request_id"])
	assert.Equal(t, "user-9", entry.ContextMap()["user_id"])
	assert.NotContains(t, entry.ContextMap(), "trace_id")
}

func TestTraceCorrelation(t *testing.T) {
	core, recorded := observer.New(zapcore.InfoLevel)
	ctx := trace.ContextWithSpanContext(context.Background(), validSpanContext())
	ctx = WithContext(ctx, zap.New(core))

	assert.Equal(t, validSpanContext().TraceID().String(), GetTraceID(ctx))
	assert.Empty(t, GetTraceID(context.Background()))

	L(ctx).Info("traced")
	fields := recorded.All()[0].ContextMap()
	assert.Equal(t, validSpanContext().TraceID().String(), fields["trace_id"])
	assert.Equal(t, validSpanContext().SpanID().String(), fields["span_id"])
}
