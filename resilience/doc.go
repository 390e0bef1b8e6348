// Package resilience provides control-flow wrappers for fallible functions.
//
// # Wrappers
//
//   - Retry: re-runs a failed operation up to MaxAttempts times. The delay
//     before retry n is InitialDelay * Multiplier^(n-1) plus a random jitter
//     in [0, Jitter), capped at MaxDelay.
//
//   - Suppress: swallows selected errors, optionally substituting a fallback
//     value, and lets all others through unchanged.
//
//   - Executor: composes suppression, retry and a per-attempt timeout.
//
// # Usage
//
//	retry := resilience.NewRetry(resilience.RetryConfig{
//	    MaxAttempts:  5,
//	    InitialDelay: 100 * time.Millisecond,
//	    Multiplier:   2,
//	    Jitter:       50 * time.Millisecond,
//	    RetryIf:      resilience.MatchErrors(errTemporary),
//	})
//
//	body, err := resilience.Do(ctx, retry, func(ctx context.Context) ([]byte, error) {
//	    return fetch(ctx, url)
//	})
//
//	n, err := resilience.SuppressValue(ctx, resilience.SuppressConfig{
//	    Match: resilience.MatchErrors(strconv.ErrSyntax),
//	}, 0, func(context.Context) (int, error) {
//	    return strconv.Atoi(s)
//	})
package resilience
