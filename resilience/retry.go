package resilience

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/benbjohnson/clock"
)

// RetryConfig configures the retry behavior.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial).
	// Default: 3
	MaxAttempts int

	// InitialDelay is the delay before the first retry.
	// Default: 0 (retry immediately)
	InitialDelay time.Duration

	// MaxDelay caps the delay between attempts, jitter included.
	// Default: 30m
	MaxDelay time.Duration

	// Multiplier scales the delay after every retry. 1 keeps it constant.
	// Default: 1
	Multiplier float64

	// Jitter is the upper bound of a random extra delay, drawn uniformly
	// from [0, Jitter) for each retry.
	// Default: 0
	Jitter time.Duration

	// RetryIf determines if an error should trigger a retry. Errors it
	// rejects are returned immediately.
	// Default: all non-nil errors trigger retry.
	RetryIf func(err error) bool

	// OnRetry is called after a failed attempt that will be retried, before
	// waiting. attempt is 1-based.
	OnRetry func(attempt int, err error, delay time.Duration)

	// Clock is used to wait between attempts.
	// Default: wall clock
	Clock clock.Clock
}

// Retry re-runs failed operations with a growing delay between attempts.
//
// Contract:
//   - Concurrency: a Retry is immutable and safe for concurrent use.
//   - Context: waiting between attempts stops when ctx is done.
//   - Errors: the error of the last attempt is returned unchanged.
type Retry struct {
	config RetryConfig
}

// NewRetry creates a new retry handler.
func NewRetry(config RetryConfig) *Retry {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 3
	}
	if config.InitialDelay < 0 {
		config.InitialDelay = 0
	}
	if config.MaxDelay <= 0 {
		config.MaxDelay = 30 * time.Minute
	}
	if config.Multiplier <= 0 {
		config.Multiplier = 1
	}
	if config.Jitter < 0 {
		config.Jitter = 0
	}
	if config.RetryIf == nil {
		config.RetryIf = func(err error) bool { return err != nil }
	}
	if config.Clock == nil {
		config.Clock = clock.New()
	}

	return &Retry{config: config}
}

// Execute runs op until it succeeds, returns an error RetryIf rejects, or
// MaxAttempts is reached. If ctx is done while waiting, ctx.Err() is
// returned.
func (r *Retry) Execute(ctx context.Context, op func(context.Context) error) error {
	if op == nil {
		return ErrNilOperation
	}

	var lastErr error

	for attempt := 1; attempt <= r.config.MaxAttempts; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}
		lastErr = err

		if !r.config.RetryIf(err) {
			return err
		}
		if attempt >= r.config.MaxAttempts {
			break
		}

		delay := r.calculateDelay(attempt)
		if r.config.OnRetry != nil {
			r.config.OnRetry(attempt, err, delay)
		}

		if err := r.wait(ctx, delay); err != nil {
			return err
		}
	}

	return lastErr
}

// Do runs op through r and returns its value from the successful attempt.
func Do[T any](ctx context.Context, r *Retry, op func(context.Context) (T, error)) (T, error) {
	var result T
	if op == nil {
		return result, ErrNilOperation
	}

	err := r.Execute(ctx, func(ctx context.Context) error {
		v, err := op(ctx)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	return result, err
}

func (r *Retry) wait(ctx context.Context, delay time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if delay <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-r.config.Clock.After(delay):
		return nil
	}
}

// calculateDelay returns the wait after the given failed attempt:
// InitialDelay * Multiplier^(attempt-1) plus jitter, capped at MaxDelay.
func (r *Retry) calculateDelay(attempt int) time.Duration {
	delay := float64(r.config.InitialDelay) * math.Pow(r.config.Multiplier, float64(attempt-1))

	if r.config.Jitter > 0 {
		// #nosec G404 -- jitter is non-cryptographic timing variance.
		delay += float64(rand.Int63n(int64(r.config.Jitter)))
	}

	if delay >= float64(r.config.MaxDelay) {
		return r.config.MaxDelay
	}
	return time.Duration(delay)
}

// Config returns the retry configuration with defaults applied.
func (r *Retry) Config() RetryConfig {
	return r.config
}
