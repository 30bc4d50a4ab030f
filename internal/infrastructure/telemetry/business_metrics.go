package telemetry

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ErrMeterNil is returned when metrics are built without a meter.
var ErrMeterNil = errors.New("telemetry: meter cannot be nil")

// DocumentKind labels order and bill metrics.
type DocumentKind string

const (
	DocumentOrder DocumentKind = "order"
	DocumentBill  DocumentKind = "buying_bill"
)

// LoginResult labels authentication attempts.
type LoginResult string

const (
	LoginSuccess LoginResult = "success"
	LoginFailure LoginResult = "failure"
)

// BusinessMetrics holds the shop's domain counters.
type BusinessMetrics struct {
	documentsCreated *Counter
	documentAmount   *Histogram
	droppedLines     *Counter
	logins           *Counter
}

// NewBusinessMetrics registers the business instruments on meter.
func NewBusinessMetrics(meter metric.Meter) (*BusinessMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	created, err := NewCounter(meter, "shop_documents_created_total",
		"Orders and buying bills created", "{document}")
	if err != nil {
		return nil, err
	}
	amount, err := NewHistogram(meter, HistogramOpts{
		Name:        "shop_document_amount",
		Description: "Total amount of created orders and buying bills",
		Unit:        "{currency}",
		Buckets:     AmountBuckets,
	})
	if err != nil {
		return nil, err
	}
	dropped, err := NewCounter(meter, "shop_dropped_lines_total",
		"Duplicate product lines dropped during validation", "{line}")
	if err != nil {
		return nil, err
	}
	logins, err := NewCounter(meter, "shop_logins_total", "Login attempts", "{attempt}")
	if err != nil {
		return nil, err
	}

	return &BusinessMetrics{
		documentsCreated: created,
		documentAmount:   amount,
		droppedLines:     dropped,
		logins:           logins,
	}, nil
}

// RecordDocument counts a created document and records its total.
func (bm *BusinessMetrics) RecordDocument(ctx context.Context, kind DocumentKind, total decimal.Decimal) {
	if bm == nil {
		return
	}
	attrs := []attribute.KeyValue{AttrKind.String(string(kind))}
	bm.documentsCreated.Inc(ctx, attrs...)
	bm.documentAmount.Record(ctx, total.InexactFloat64(), attrs...)
}

// RecordDroppedLines counts duplicate lines removed from a request.
func (bm *BusinessMetrics) RecordDroppedLines(ctx context.Context, kind DocumentKind, n int) {
	if bm == nil || n <= 0 {
		return
	}
	bm.droppedLines.Add(ctx, int64(n), AttrKind.String(string(kind)))
}

// RecordLogin counts a login attempt.
func (bm *BusinessMetrics) RecordLogin(ctx context.Context, result LoginResult) {
	if bm == nil {
		return
	}
	bm.logins.Inc(ctx, AttrResult.String(string(result)))
}

// HTTPMetrics records request counts and latencies.
type HTTPMetrics struct {
	requests *Counter
	duration *Histogram
}

// NewHTTPMetrics registers the HTTP server instruments on meter.
func NewHTTPMetrics(meter metric.Meter) (*HTTPMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}
	requests, err := NewCounter(meter, "http_server_requests_total", "HTTP requests served", "{request}")
	if err != nil {
		return nil, err
	}
	duration, err := NewHistogram(meter, HistogramOpts{
		Name:        "http_server_request_duration_seconds",
		Description: "HTTP request latency",
		Unit:        "s",
		Buckets:     DurationBuckets,
	})
	if err != nil {
		return nil, err
	}
	return &HTTPMetrics{requests: requests, duration: duration}, nil
}

// Observe records one served request.
func (hm *HTTPMetrics) Observe(ctx context.Context, method, route string, status int, elapsed time.Duration) {
	if hm == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	attrs := []attribute.KeyValue{
		AttrHTTPMethod.String(method),
		AttrHTTPRoute.String(route),
		AttrHTTPStatus.String(strconv.Itoa(status)),
		AttrStatus.String(statusClass(status)),
	}
	hm.requests.Inc(ctx, attrs...)
	hm.duration.RecordDuration(ctx, elapsed, attrs...)
}

func statusClass(status int) string {
	switch {
	case status >= http.StatusInternalServerError:
		return "5xx"
	case status >= http.StatusBadRequest:
		return "4xx"
	case status >= http.StatusMultipleChoices:
		return "3xx"
	default:
		return "2xx"
	}
}
