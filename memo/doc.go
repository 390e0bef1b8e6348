// Package memo provides a memoizing wrapper for functions.
//
// A Cache derives a Key from each call's positional and keyword arguments,
// serves repeated calls from a bounded, recency-ordered Store, and invokes
// the wrapped function only on a miss. Entries can expire after a uniform
// TTL and are evicted least-recently-used first once MaxSize is reached.
//
// # Keys
//
// Arguments must be comparable in the Go sense: booleans, numbers, strings,
// pointers, channels, and arrays or structs built only from those. Slices,
// maps and funcs cannot form a key and fail the call with
// ErrUnhashableArgument before the wrapped function runs.
//
// By default numerically equal values share a key (int 1 and float64 1.0).
// WithTyped makes the runtime type part of the key.
//
// # Concurrency
//
// A Cache is safe for concurrent use. The wrapped function runs outside the
// store lock, so concurrent misses for the same key may each invoke it and
// the last result stored wins. WithSingleFlight coalesces those misses into
// one invocation instead.
//
//	square, c := memo.Wrap1(func(ctx context.Context, n int) (int, error) {
//	    return n * n, nil
//	}, memo.WithMaxSize(128), memo.WithTTL(time.Minute))
//
//	v, err := square(ctx, 12) // miss: computed
//	v, err = square(ctx, 12)  // hit: served from the store
//	fmt.Println(c.Info().Hits)
package memo
