package resilience

import "errors"

// Sentinel errors for resilience operations.
var (
	// ErrNilOperation is returned when a nil operation is passed to a wrapper.
	ErrNilOperation = errors.New("resilience: nil operation")

	// ErrAttemptTimeout is returned when a single attempt exceeds the
	// Executor's attempt timeout.
	ErrAttemptTimeout = errors.New("resilience: attempt timed out")
)
