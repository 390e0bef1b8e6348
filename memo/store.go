package memo

import (
	"container/list"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

const (
	// Unbounded disables the size limit of a Store.
	Unbounded = -1

	// NoExpiry disables the TTL of a Store.
	NoExpiry time.Duration = -1
)

// Store is a bounded, recency-ordered map from Key to value.
//
// Contract:
//   - Concurrency: all methods are safe for concurrent use; they share one mutex.
//   - Ordering: Get hits and every Put mark the entry most recently used.
//     Misses, including expired entries, do not count as use.
//   - Bound: Len never exceeds MaxSize after Put returns.
//   - Expiry: an entry is readable while now-createdAt < TTL. Expired entries
//     are removed lazily by Get or by EvictExpired.
type Store[V any] struct {
	mu      sync.Mutex
	order   *list.List // front is most recently used
	index   map[Key]*list.Element
	maxSize int
	ttl     time.Duration
	clock   clock.Clock
}

type entry[V any] struct {
	key       Key
	value     V
	createdAt time.Time
	// args keeps the call arguments reachable while the entry lives, so
	// addresses encoded into key cannot be reused by other objects.
	args []any
}

// NewStore creates an empty store.
//
// A negative maxSize means no bound; zero means nothing is ever stored.
// A negative ttl means entries never expire; zero means nothing is ever
// stored either. A nil clk uses the wall clock.
func NewStore[V any](maxSize int, ttl time.Duration, clk clock.Clock) *Store[V] {
	if clk == nil {
		clk = clock.New()
	}
	if maxSize < 0 {
		maxSize = Unbounded
	}
	if ttl < 0 {
		ttl = NoExpiry
	}
	return &Store[V]{
		order:   list.New(),
		index:   make(map[Key]*list.Element),
		maxSize: maxSize,
		ttl:     ttl,
		clock:   clk,
	}
}

// Get returns the value for key and marks it most recently used.
// It reports false if the key is absent or expired; an expired entry is
// removed.
func (s *Store[V]) Get(key Key) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero V
	elem, ok := s.index[key]
	if !ok {
		return zero, false
	}

	ent := elem.Value.(*entry[V])
	if s.expired(ent, s.clock.Now()) {
		s.removeElement(elem)
		return zero, false
	}

	s.order.MoveToFront(elem)
	return ent.value, true
}

// Put inserts or replaces the value for key with a fresh timestamp and marks
// it most recently used. args are retained alongside the value.
//
// If inserting a new key would exceed the bound, the least recently used
// entry is evicted first and Put reports true. A store with zero size or
// zero TTL keeps nothing.
func (s *Store[V]) Put(key Key, value V, args []any) (evicted bool) {
	// Nothing could ever be read back.
	if s.maxSize == 0 || s.ttl == 0 {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()

	if elem, ok := s.index[key]; ok {
		ent := elem.Value.(*entry[V])
		ent.value = value
		ent.createdAt = now
		ent.args = args
		s.order.MoveToFront(elem)
		return false
	}

	if s.maxSize > 0 && s.order.Len() >= s.maxSize {
		if back := s.order.Back(); back != nil {
			s.removeElement(back)
			evicted = true
		}
	}

	s.index[key] = s.order.PushFront(&entry[V]{
		key:       key,
		value:     value,
		createdAt: now,
		args:      args,
	})
	return evicted
}

// Remove deletes key if present and reports whether it was.
func (s *Store[V]) Remove(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	elem, ok := s.index[key]
	if !ok {
		return false
	}
	s.removeElement(elem)
	return true
}

// EvictExpired removes every expired entry and returns how many were removed.
func (s *Store[V]) EvictExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ttl < 0 {
		return 0
	}

	now := s.clock.Now()
	removed := 0
	for elem := s.order.Back(); elem != nil; {
		prev := elem.Prev()
		if s.expired(elem.Value.(*entry[V]), now) {
			s.removeElement(elem)
			removed++
		}
		elem = prev
	}
	return removed
}

// Clear drops all entries.
func (s *Store[V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.order.Init()
	s.index = make(map[Key]*list.Element)
}

// Len returns the number of entries, including expired entries that have not
// been removed yet.
func (s *Store[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.order.Len()
}

// Keys returns the keys from most to least recently used.
func (s *Store[V]) Keys() []Key {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]Key, 0, s.order.Len())
	for elem := s.order.Front(); elem != nil; elem = elem.Next() {
		keys = append(keys, elem.Value.(*entry[V]).key)
	}
	return keys
}

// MaxSize returns the configured bound (Unbounded if none).
func (s *Store[V]) MaxSize() int {
	return s.maxSize
}

// TTL returns the configured time-to-live (NoExpiry if none).
func (s *Store[V]) TTL() time.Duration {
	return s.ttl
}

func (s *Store[V]) expired(ent *entry[V], now time.Time) bool {
	return s.ttl >= 0 && now.Sub(ent.createdAt) >= s.ttl
}

func (s *Store[V]) removeElement(elem *list.Element) {
	ent := s.order.Remove(elem).(*entry[V])
	delete(s.index, ent.key)
}
