package resilience

import (
	"context"
	"errors"
	"time"
)

// Executor composes suppression, retry and a per-attempt timeout around an
// operation.
type Executor struct {
	suppress       *SuppressConfig
	retry          *Retry
	attemptTimeout time.Duration
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// NewExecutor creates a new resilience executor.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// WithRetry adds retry logic to the executor.
func WithRetry(r *Retry) ExecutorOption {
	return func(e *Executor) {
		e.retry = r
	}
}

// WithSuppress swallows errors matched by cfg once retries are exhausted.
func WithSuppress(cfg SuppressConfig) ExecutorOption {
	return func(e *Executor) {
		e.suppress = &cfg
	}
}

// WithAttemptTimeout bounds each attempt. An attempt that runs longer fails
// with ErrAttemptTimeout, which the retry policy may retry.
func WithAttemptTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) {
		if d > 0 {
			e.attemptTimeout = d
		}
	}
}

// Execute runs the operation through all configured wrappers.
//
// The execution order is:
// 1. Suppress (if configured) - swallows matching final errors
// 2. Retry (if configured) - retries on failure
// 3. Attempt timeout (if configured) - limits each attempt
func (e *Executor) Execute(ctx context.Context, op func(context.Context) error) error {
	if op == nil {
		return ErrNilOperation
	}

	_, err := ExecuteValue(ctx, e, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	})
	return err
}

// ExecuteValue runs op through e and returns the value of the attempt that
// succeeded. An attempt abandoned by the attempt timeout never publishes its
// value, even if it finishes later.
func ExecuteValue[T any](ctx context.Context, e *Executor, op func(context.Context) (T, error)) (T, error) {
	var result T
	if op == nil {
		return result, ErrNilOperation
	}

	// Wrap with attempt timeout (innermost)
	attempt := op
	if e.attemptTimeout > 0 {
		attempt = func(ctx context.Context) (T, error) {
			return runWithTimeout(ctx, e.attemptTimeout, op)
		}
	}

	// result is only written here, on the calling goroutine.
	execute := func(ctx context.Context) error {
		v, err := attempt(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	}

	// Wrap with retry
	if e.retry != nil {
		inner := execute
		execute = func(ctx context.Context) error {
			return e.retry.Execute(ctx, inner)
		}
	}

	// Wrap with suppression (outermost)
	if e.suppress != nil {
		inner := execute
		cfg := *e.suppress
		execute = func(ctx context.Context) error {
			return Suppress(ctx, cfg, inner)
		}
	}

	if err := execute(ctx); err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

type attemptResult[T any] struct {
	value T
	err   error
}

// runWithTimeout returns as soon as the deadline passes, even if op ignores
// its context. The abandoned attempt's result is dropped.
func runWithTimeout[T any](ctx context.Context, d time.Duration, op func(context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()

	done := make(chan attemptResult[T], 1)
	go func() {
		v, err := op(ctx)
		done <- attemptResult[T]{value: v, err: err}
	}()

	select {
	case r := <-done:
		return r.value, r.err
	case <-ctx.Done():
		var zero T
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return zero, ErrAttemptTimeout
		}
		return zero, ctx.Err()
	}
}
