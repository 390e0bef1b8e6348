// Package observe provides observability primitives for wrapped functions.
//
// It builds OpenTelemetry tracer and meter providers from a Config, offers a
// small JSON structured logger, records call and cache metrics, and supplies
// a timing Middleware that measures, traces and logs each call of a wrapped
// function. The memo package reports cache hits, misses and evictions through
// CacheMetrics.
package observe
