package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// CallMetrics records per-call metrics for wrapped functions.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: must return quickly.
// - Errors: implementations must not panic.
type CallMetrics interface {
	// RecordCall records one call with its duration and error status.
	RecordCall(ctx context.Context, meta FuncMeta, duration time.Duration, err error)
}

type callMetrics struct {
	total    metric.Int64Counter
	errors   metric.Int64Counter
	duration metric.Float64Histogram
}

// NewCallMetrics creates CallMetrics backed by meter.
func NewCallMetrics(meter metric.Meter) (CallMetrics, error) {
	total, err := meter.Int64Counter(
		"func.call.total",
		metric.WithDescription("Total number of wrapped function calls"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	errs, err := meter.Int64Counter(
		"func.call.errors",
		metric.WithDescription("Total number of wrapped function calls that returned an error"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	duration, err := meter.Float64Histogram(
		"func.call.duration_ms",
		metric.WithDescription("Wrapped function call duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &callMetrics{total: total, errors: errs, duration: duration}, nil
}

func (m *callMetrics) RecordCall(ctx context.Context, meta FuncMeta, duration time.Duration, err error) {
	opt := metric.WithAttributes(funcAttrs(meta)...)

	m.total.Add(ctx, 1, opt)
	if err != nil {
		m.errors.Add(ctx, 1, opt)
	}
	m.duration.Record(ctx, float64(duration)/float64(time.Millisecond), opt)
}

// CacheMetrics counts memoization outcomes per cached function.
// The name passed to each method becomes the func.id attribute.
type CacheMetrics struct {
	hits      metric.Int64Counter
	misses    metric.Int64Counter
	evictions metric.Int64Counter
}

// NewCacheMetrics creates CacheMetrics backed by meter.
func NewCacheMetrics(meter metric.Meter) (*CacheMetrics, error) {
	hits, err := meter.Int64Counter(
		"memo.cache.hits",
		metric.WithDescription("Calls served from the memo cache"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	misses, err := meter.Int64Counter(
		"memo.cache.misses",
		metric.WithDescription("Calls that invoked the wrapped function"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	evictions, err := meter.Int64Counter(
		"memo.cache.evictions",
		metric.WithDescription("Entries evicted to respect the size bound"),
		metric.WithUnit("{entry}"),
	)
	if err != nil {
		return nil, err
	}

	return &CacheMetrics{hits: hits, misses: misses, evictions: evictions}, nil
}

// RecordHit counts a cache hit.
func (m *CacheMetrics) RecordHit(ctx context.Context, name string) {
	m.hits.Add(ctx, 1, metric.WithAttributes(attribute.String("func.id", name)))
}

// RecordMiss counts a cache miss.
func (m *CacheMetrics) RecordMiss(ctx context.Context, name string) {
	m.misses.Add(ctx, 1, metric.WithAttributes(attribute.String("func.id", name)))
}

// RecordEviction counts an evicted entry.
func (m *CacheMetrics) RecordEviction(ctx context.Context, name string) {
	m.evictions.Add(ctx, 1, metric.WithAttributes(attribute.String("func.id", name)))
}

func funcAttrs(meta FuncMeta) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String("func.id", meta.FuncID()),
		attribute.String("func.name", meta.Name),
	}
	if meta.Namespace != "" {
		attrs = append(attrs, attribute.String("func.namespace", meta.Namespace))
	}
	return attrs
}

type nopCallMetrics struct{}

func (nopCallMetrics) RecordCall(context.Context, FuncMeta, time.Duration, error) {}
