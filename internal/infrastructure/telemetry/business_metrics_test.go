package telemetry

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func newTestMeter(t *testing.T) (*sdkmetric.ManualReader, *sdkmetric.MeterProvider) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })
	return reader, provider
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := map[string]metricdata.Metrics{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func sumOf(t *testing.T, m metricdata.Metrics) int64 {
	t.Helper()
	sum, ok := m.Data.(metricdata.Sum[int64])
	require.True(t, ok, "metric %s is not an int64 sum", m.Name)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestNewBusinessMetrics_NilMeter(t *testing.T) {
	_, err := NewBusinessMetrics(nil)
	assert.ErrorIs(t, err, ErrMeterNil)
}

func TestBusinessMetrics_RecordDocument(t *testing.T) {
	reader, provider := newTestMeter(t)
	bm, err := NewBusinessMetrics(provider.Meter("test"))
	require.NoError(t, err)

	ctx := context.Background()
	bm.RecordDocument(ctx, DocumentOrder, decimal.RequireFromString("19.98"))
	bm.RecordDocument(ctx, DocumentBill, decimal.RequireFromString("75"))
	bm.RecordDroppedLines(ctx, DocumentOrder, 2)
	bm.RecordDroppedLines(ctx, DocumentOrder, 0)
	bm.RecordLogin(ctx, LoginFailure)

	metrics := collect(t, reader)
	assert.Equal(t, int64(2), sumOf(t, metrics["shop_documents_created_total"]))
	assert.Equal(t, int64(2), sumOf(t, metrics["shop_dropped_lines_total"]))
	assert.Equal(t, int64(1), sumOf(t, metrics["shop_logins_total"]))

	hist, ok := metrics["shop_document_amount"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var total float64
	for _, dp := range hist.DataPoints {
		total += dp.Sum
	}
	assert.InDelta(t, 94.98, total, 0.001)
}

func TestBusinessMetrics_NilReceiver(t *testing.T) {
	var bm *BusinessMetrics
	assert.NotPanics(t, func() {
		bm.RecordDocument(context.Background(), DocumentOrder, decimal.Zero)
		bm.RecordLogin(context.Background(), LoginSuccess)
	})
}

func TestHTTPMetrics_Observe(t *testing.T) {
	reader, provider := newTestMeter(t)
	hm, err := NewHTTPMetrics(provider.Meter("test"))
	require.NoError(t, err)

	hm.Observe(context.Background(), http.MethodGet, "/api/v1/products", http.StatusOK, 20*time.Millisecond)
	hm.Observe(context.Background(), http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	metrics := collect(t, reader)
	assert.Equal(t, int64(2), sumOf(t, metrics["http_server_requests_total"]))
	assert.Contains(t, metrics, "http_server_request_duration_seconds")
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "2xx", statusClass(201))
	assert.Equal(t, "3xx", statusClass(304))
	assert.Equal(t, "4xx", statusClass(422))
	assert.Equal(t, "5xx", statusClass(503))
}
