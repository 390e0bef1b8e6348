package memo

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/jonwraymond/fnwrap/observe"
)

// Recorder receives cache outcomes, typically observe.CacheMetrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic and must return quickly.
type Recorder interface {
	RecordHit(ctx context.Context, name string)
	RecordMiss(ctx context.Context, name string)
	RecordEviction(ctx context.Context, name string)
}

type config struct {
	name         string
	maxSize      int
	ttl          time.Duration
	typed        bool
	singleFlight bool
	clock        clock.Clock
	logger       observe.Logger
	recorder     Recorder
}

func defaultConfig() config {
	return config{
		name:     "memo",
		maxSize:  Unbounded,
		ttl:      NoExpiry,
		clock:    clock.New(),
		logger:   observe.NopLogger(),
		recorder: nopRecorder{},
	}
}

// Option configures a Cache.
type Option func(*config)

// WithMaxSize bounds the number of cached entries. Zero disables caching:
// every call runs the wrapped function and nothing is stored. A negative n
// removes the bound.
// Default: unbounded
func WithMaxSize(n int) Option {
	return func(c *config) {
		if n < 0 {
			n = Unbounded
		}
		c.maxSize = n
	}
}

// WithTTL expires entries d after they were stored. A zero or negative d
// expires entries immediately: no call is ever served from the cache.
// Default: entries never expire
func WithTTL(d time.Duration) Option {
	return func(c *config) {
		if d < 0 {
			d = 0
		}
		c.ttl = d
	}
}

// WithTyped makes argument types part of the key, so f(1) and f(1.0) are
// cached separately.
func WithTyped() Option {
	return func(c *config) {
		c.typed = true
	}
}

// WithSingleFlight coalesces concurrent misses on the same key into a single
// call of the wrapped function. Waiting callers share its result or error.
// The context of the caller that started the call is the one passed to the
// wrapped function.
func WithSingleFlight() Option {
	return func(c *config) {
		c.singleFlight = true
	}
}

// WithName names the cache in logs and metrics.
// Default: "memo"
func WithName(name string) Option {
	return func(c *config) {
		if name != "" {
			c.name = name
		}
	}
}

// WithClock sets the clock used to timestamp and expire entries.
func WithClock(clk clock.Clock) Option {
	return func(c *config) {
		if clk != nil {
			c.clock = clk
		}
	}
}

// WithLogger sets the logger for debug output about misses, evictions and
// rejected arguments.
func WithLogger(l observe.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRecorder reports hits, misses and evictions to r.
func WithRecorder(r Recorder) Option {
	return func(c *config) {
		if r != nil {
			c.recorder = r
		}
	}
}

type nopRecorder struct{}

func (nopRecorder) RecordHit(context.Context, string)      {}
func (nopRecorder) RecordMiss(context.Context, string)     {}
func (nopRecorder) RecordEviction(context.Context, string) {}

var _ Recorder = (*observe.CacheMetrics)(nil)
