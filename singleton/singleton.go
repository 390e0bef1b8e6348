package singleton

import (
	"sync"
	"sync/atomic"
)

// Instance holds a value built on first use.
//
// Contract:
//   - Concurrency: safe for concurrent use. At most one constructor call runs
//     at a time; concurrent Get calls wait for it.
//   - Errors: a failed construction is returned unchanged and retried by the
//     next Get.
//   - Reentrancy: the constructor must not call Get on its own Instance.
type Instance[T any] struct {
	ctor func() (T, error)

	mu      sync.Mutex
	current atomic.Pointer[T]
}

// New returns an Instance that builds its value with ctor.
func New[T any](ctor func() (T, error)) *Instance[T] {
	return &Instance[T]{ctor: ctor}
}

// Get returns the value, constructing it if no construction has succeeded
// yet.
func (i *Instance[T]) Get() (T, error) {
	if p := i.current.Load(); p != nil {
		return *p, nil
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if p := i.current.Load(); p != nil {
		return *p, nil
	}

	var zero T
	if i.ctor == nil {
		return zero, ErrNilConstructor
	}

	v, err := i.ctor()
	if err != nil {
		return zero, err
	}
	i.current.Store(&v)
	return v, nil
}

// Peek returns the value without constructing it. ok is false until a Get
// has succeeded.
func (i *Instance[T]) Peek() (value T, ok bool) {
	if p := i.current.Load(); p != nil {
		return *p, true
	}
	return value, false
}

// Reset drops the value so the next Get constructs a new one. Callers that
// already hold the old value keep it.
func (i *Instance[T]) Reset() {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.current.Store(nil)
}
