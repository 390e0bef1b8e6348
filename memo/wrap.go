package memo

import "context"

// Wrap0 memoizes a function without arguments: after the first successful
// call its result is reused until it expires or Clear is called.
func Wrap0[R any](fn func(context.Context) (R, error), opts ...Option) (func(context.Context) (R, error), *Cache[R]) {
	c := New(func(ctx context.Context, _ Call) (R, error) {
		return fn(ctx)
	}, opts...)

	return func(ctx context.Context) (R, error) {
		return c.Do(ctx, Call{})
	}, c
}

// Wrap1 memoizes a one-argument function. The returned Cache exposes Clear
// and Info for the memoized function.
func Wrap1[A, R any](fn func(context.Context, A) (R, error), opts ...Option) (func(context.Context, A) (R, error), *Cache[R]) {
	c := New(func(ctx context.Context, call Call) (R, error) {
		return fn(ctx, arg[A](call.Args, 0))
	}, opts...)

	return func(ctx context.Context, a A) (R, error) {
		return c.Call(ctx, a)
	}, c
}

// Wrap2 memoizes a two-argument function.
func Wrap2[A, B, R any](fn func(context.Context, A, B) (R, error), opts ...Option) (func(context.Context, A, B) (R, error), *Cache[R]) {
	c := New(func(ctx context.Context, call Call) (R, error) {
		return fn(ctx, arg[A](call.Args, 0), arg[B](call.Args, 1))
	}, opts...)

	return func(ctx context.Context, a A, b B) (R, error) {
		return c.Call(ctx, a, b)
	}, c
}

// arg converts args[i] back to its static type. A nil interface value
// becomes the zero value of T.
func arg[T any](args []any, i int) T {
	v, _ := args[i].(T)
	return v
}
