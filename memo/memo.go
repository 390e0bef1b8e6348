package memo

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/jonwraymond/fnwrap/observe"
)

// Func is the function a Cache memoizes.
type Func[R any] func(ctx context.Context, call Call) (R, error)

// Call carries the arguments of one invocation.
type Call struct {
	Args   []any
	Kwargs Kwargs
}

// Info is a snapshot of a cache's size, configuration and counters.
type Info struct {
	Len       int
	MaxSize   int           // Unbounded if no bound was configured
	TTL       time.Duration // NoExpiry if entries never expire
	Typed     bool
	Hits      int64
	Misses    int64
	Evictions int64
}

// Cache memoizes a Func.
//
// Contract:
//   - Concurrency: safe for concurrent use. The wrapped function runs outside
//     the store lock, so it may call back into the same Cache.
//   - Errors: key errors and errors from the wrapped function are returned
//     unchanged. Failed calls are never cached.
//   - Ownership: results are stored and returned by value; a cached pointer,
//     slice or map is shared by every caller that hits it.
type Cache[R any] struct {
	fn     Func[R]
	cfg    config
	store  *Store[R]
	group  *singleflight.Group
	logger observe.Logger

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// New wraps fn in a Cache with its own private Store.
func New[R any](fn Func[R], opts ...Option) *Cache[R] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Cache[R]{
		fn:     fn,
		cfg:    cfg,
		store:  NewStore[R](cfg.maxSize, cfg.ttl, cfg.clock),
		logger: cfg.logger.WithFunc(observe.FuncMeta{Namespace: "memo", Name: cfg.name}),
	}
	if cfg.singleFlight {
		c.group = &singleflight.Group{}
	}
	return c
}

// Call invokes the cached function with positional arguments.
func (c *Cache[R]) Call(ctx context.Context, args ...any) (R, error) {
	return c.Do(ctx, Call{Args: args})
}

// CallKw invokes the cached function with keyword and positional arguments.
func (c *Cache[R]) CallKw(ctx context.Context, kwargs Kwargs, args ...any) (R, error) {
	return c.Do(ctx, Call{Args: args, Kwargs: kwargs})
}

// Do returns the cached result for call, invoking the wrapped function on a
// miss. Arguments that cannot form a key fail with an error matching
// ErrUnhashableArgument and the wrapped function is not invoked.
func (c *Cache[R]) Do(ctx context.Context, call Call) (R, error) {
	key, err := BuildKey(call.Args, call.Kwargs, c.cfg.typed)
	if err != nil {
		c.logger.Debug(ctx, "arguments cannot be cached", observe.Field{Key: "error", Value: err.Error()})
		var zero R
		return zero, err
	}

	if v, ok := c.store.Get(key); ok {
		c.hits.Add(1)
		c.cfg.recorder.RecordHit(ctx, c.cfg.name)
		return v, nil
	}

	c.misses.Add(1)
	c.cfg.recorder.RecordMiss(ctx, c.cfg.name)
	c.logger.Debug(ctx, "cache miss", observe.Field{Key: "key", Value: key.String()})

	if c.group == nil {
		return c.load(ctx, key, call)
	}

	v, err, _ := c.group.Do(key.String(), func() (any, error) {
		return c.load(ctx, key, call)
	})
	r, _ := v.(R)
	return r, err
}

func (c *Cache[R]) load(ctx context.Context, key Key, call Call) (R, error) {
	v, err := c.fn(ctx, call)
	if err != nil {
		return v, err
	}

	if c.store.Put(key, v, pinned(call)) {
		c.evictions.Add(1)
		c.cfg.recorder.RecordEviction(ctx, c.cfg.name)
		c.logger.Debug(ctx, "evicted least recently used entry",
			observe.Field{Key: "max_size", Value: c.cfg.maxSize})
	}
	return v, nil
}

// Clear removes every cached entry. Counters are kept.
func (c *Cache[R]) Clear() {
	c.store.Clear()
	c.logger.Debug(context.Background(), "cache cleared")
}

// Invalidate removes the entry cached for call, if any, so the next identical
// call invokes the wrapped function again. It fails like Do when the
// arguments cannot form a key.
func (c *Cache[R]) Invalidate(call Call) (bool, error) {
	key, err := BuildKey(call.Args, call.Kwargs, c.cfg.typed)
	if err != nil {
		return false, err
	}
	return c.store.Remove(key), nil
}

// Keys returns the keys of the cached entries from most to least recently
// used. Expired entries not yet removed are included.
func (c *Cache[R]) Keys() []Key {
	return c.store.Keys()
}

// EvictExpired removes expired entries now instead of waiting for them to be
// looked up, and returns how many were removed.
func (c *Cache[R]) EvictExpired() int {
	return c.store.EvictExpired()
}

// Info returns the current entry count, configured bounds and counters.
func (c *Cache[R]) Info() Info {
	return Info{
		Len:       c.store.Len(),
		MaxSize:   c.store.MaxSize(),
		TTL:       c.store.TTL(),
		Typed:     c.cfg.typed,
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}

// pinned collects every argument value so the entry keeps them reachable.
func pinned(call Call) []any {
	if len(call.Kwargs) == 0 {
		return call.Args
	}
	vals := make([]any, 0, len(call.Args)+len(call.Kwargs))
	vals = append(vals, call.Args...)
	for _, v := range call.Kwargs {
		vals = append(vals, v)
	}
	return vals
}
