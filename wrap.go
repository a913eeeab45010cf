package cashier

import (
	"context"

	"github.com/zoola969/go-cashier/key"
)

// Wrap1 memoizes a one-argument function, preserving its signature. The
// returned function derives keys, consults the store and deduplicates
// concurrent calls exactly like [Cached]. The underlying function's runtime
// name is used as the key namespace unless WithName overrides it.
func Wrap1[A, T any](fn func(context.Context, A) (T, error), opts ...Option) (func(context.Context, A) (T, error), error) {
	c, err := Wrap(func(ctx context.Context, args []any, _ map[string]any) (T, error) {
		return fn(ctx, unbox[A](args[0]))
	}, withDefaultName(key.FuncName(fn), opts)...)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, a A) (T, error) {
		return c.Call(ctx, a)
	}, nil
}

// Wrap2 memoizes a two-argument function, preserving its signature.
func Wrap2[A, B, T any](fn func(context.Context, A, B) (T, error), opts ...Option) (func(context.Context, A, B) (T, error), error) {
	c, err := Wrap(func(ctx context.Context, args []any, _ map[string]any) (T, error) {
		return fn(ctx, unbox[A](args[0]), unbox[B](args[1]))
	}, withDefaultName(key.FuncName(fn), opts)...)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, a A, b B) (T, error) {
		return c.Call(ctx, a, b)
	}, nil
}

// Wrap3 memoizes a three-argument function, preserving its signature.
func Wrap3[A, B, C, T any](fn func(context.Context, A, B, C) (T, error), opts ...Option) (func(context.Context, A, B, C) (T, error), error) {
	c, err := Wrap(func(ctx context.Context, args []any, _ map[string]any) (T, error) {
		return fn(ctx, unbox[A](args[0]), unbox[B](args[1]), unbox[C](args[2]))
	}, withDefaultName(key.FuncName(fn), opts)...)
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context, a A, b B, c3 C) (T, error) {
		return c.Call(ctx, a, b, c3)
	}, nil
}

// withDefaultName namespaces keys by the user's function rather than the
// boxing closure the adapters hand to Wrap. Later options still win.
func withDefaultName(name string, opts []Option) []Option {
	return append([]Option{WithName(name)}, opts...)
}

// unbox recovers a typed argument boxed into any by the adapters. A nil
// interface-typed argument boxes to a nil any, which a plain type assertion
// would panic on; it comes back as the zero value of A instead, exactly what
// the underlying function would have received.
func unbox[A any](v any) A {
	a, _ := v.(A)
	return a
}
