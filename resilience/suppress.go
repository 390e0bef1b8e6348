package resilience

import (
	"context"
	"errors"
)

// SuppressConfig configures which errors Suppress swallows.
type SuppressConfig struct {
	// Match selects the errors to suppress.
	// Default: every non-nil error
	Match func(err error) bool

	// OnSuppress is called with each suppressed error.
	OnSuppress func(err error)
}

func (c SuppressConfig) suppresses(err error) bool {
	if err == nil {
		return false
	}
	if c.Match == nil {
		return true
	}
	return c.Match(err)
}

// Suppress runs op and swallows its error if cfg matches it. Errors that do
// not match are returned unchanged.
func Suppress(ctx context.Context, cfg SuppressConfig, op func(context.Context) error) error {
	if op == nil {
		return ErrNilOperation
	}

	err := op(ctx)
	if !cfg.suppresses(err) {
		return err
	}
	if cfg.OnSuppress != nil {
		cfg.OnSuppress(err)
	}
	return nil
}

// SuppressValue runs op and returns fallback in place of a suppressed
// error. A non-matching error is returned together with op's value.
func SuppressValue[T any](ctx context.Context, cfg SuppressConfig, fallback T, op func(context.Context) (T, error)) (T, error) {
	if op == nil {
		return fallback, ErrNilOperation
	}

	v, err := op(ctx)
	if !cfg.suppresses(err) {
		return v, err
	}
	if cfg.OnSuppress != nil {
		cfg.OnSuppress(err)
	}
	return fallback, nil
}

// MatchErrors returns a matcher that reports whether an error is any of
// targets, as determined by errors.Is. It suits both SuppressConfig.Match
// and RetryConfig.RetryIf.
func MatchErrors(targets ...error) func(error) bool {
	return func(err error) bool {
		for _, target := range targets {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}
}
