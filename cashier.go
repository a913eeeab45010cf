package cashier

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/zoola969/go-cashier/key"
	"github.com/zoola969/go-cashier/store"
)

// Func is the generic calling convention for a memoized callable: positional
// arguments in declaration order plus an optional keyword-argument map. Use
// [Wrap1], [Wrap2] or [Wrap3] to keep a typed signature instead.
type Func[T any] func(ctx context.Context, args []any, kwargs map[string]any) (T, error)

// Cached memoizes calls to one underlying callable.
//
// Concurrent calls that derive the same key while a computation for that key
// is in flight attach to it instead of executing again; every attached
// caller receives the single computed result. Failed computations are
// delivered to all attached callers and never stored, so the next call
// re-executes. A caller whose context is cancelled while waiting detaches
// with its context error, but the computation runs to completion so the
// remaining callers still receive a result.
type Cached[T any] struct {
	fn      Func[T]
	builder key.Builder
	store   *store.Store
	// owned reports whether Close should stop the store. False when the
	// store was injected via WithStore.
	owned bool
	group singleflight.Group
	log   *zap.Logger
	hooks *Hooks
}

// Wrap memoizes fn. Invalid option combinations (empty or unknown cache-by
// names, malformed TTL strings) are reported here, wrapping
// [key.ErrConfiguration]; a failed Wrap never affects other wrapped
// callables.
func Wrap[T any](fn Func[T], opts ...Option) (*Cached[T], error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: fn must not be nil", key.ErrConfiguration)
	}
	cfg := applyOptions(opts)
	if cfg.err != nil {
		return nil, cfg.err
	}

	builder := cfg.builder
	if builder == nil {
		name := cfg.name
		if name == "" {
			name = key.FuncName(fn)
		}
		var err error
		builder, err = key.NewBuilder(key.Config{
			Name:        name,
			Prefix:      cfg.prefix,
			Params:      cfg.params,
			KeywordOnly: cfg.kwOnly,
			CacheBy:     cfg.cacheBy,
			Serializer:  cfg.serializer,
		})
		if err != nil {
			return nil, err
		}
	}

	c := &Cached[T]{
		fn:      fn,
		builder: builder,
		log:     cfg.log,
		hooks:   cfg.hooks,
	}
	if cfg.store != nil {
		c.store = cfg.store
	} else {
		c.store = store.New(context.Background(), cfg.ttl,
			store.WithSweepInterval(cfg.sweepInterval),
			store.WithLogger(cfg.log),
			store.WithEvictFunc(func(k string) {
				cfg.log.Debug("entry expired", zap.String("key", k))
				c.hooks.evict(k)
			}),
		)
		c.owned = true
	}
	return c, nil
}

// Call invokes the wrapped callable with positional arguments only.
func (c *Cached[T]) Call(ctx context.Context, args ...any) (T, error) {
	return c.CallKw(ctx, args, nil)
}

// CallKw invokes the wrapped callable with positional and keyword
// arguments. On a fresh cache entry for the derived key the stored result is
// returned without executing the callable. Otherwise at most one execution
// runs per key at a time; when concurrent calls share a key, the first
// caller's argument values are the ones passed to the callable.
func (c *Cached[T]) CallKw(ctx context.Context, args []any, kwargs map[string]any) (T, error) {
	var zero T
	k, err := c.builder.BuildKey(args, kwargs)
	if err != nil {
		return zero, err
	}

	if v, ok := c.store.Get(k); ok {
		c.log.Debug("value retrieved from cache", zap.String("key", k))
		c.hooks.hit(ctx, k)
		return c.assert(k, v)
	}
	c.log.Debug("no entry in cache", zap.String("key", k))
	c.hooks.miss(ctx, k)

	// The computation must outlive any individual waiter: detach it from
	// the triggering caller's cancellation so late attachers still get a
	// result.
	callCtx := context.WithoutCancel(ctx)
	// Singleflight reports Shared=true to every caller of a multi-caller
	// flight, including the one whose closure executed; executed
	// distinguishes that caller so OnShared only fires for true attachers.
	// It is written before the flight resolves and read after, so the
	// channel receive orders the two.
	var executed bool
	ch := c.group.DoChan(k, func() (any, error) {
		executed = true
		// A flight that resolved between our Get and DoChan may have
		// stored a fresh value already.
		if v, ok := c.store.Get(k); ok {
			return v, nil
		}
		v, err := c.fn(callCtx, args, kwargs)
		if err != nil {
			// Failures are never stored; the next caller retries.
			return nil, err
		}
		c.store.Put(k, v)
		c.log.Debug("value stored in cache", zap.String("key", k))
		c.hooks.store(callCtx, k)
		return v, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		if res.Shared && !executed {
			c.hooks.shared(ctx, k)
		}
		return c.assert(k, res.Val)
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Key returns the cache key the given arguments derive to. It is mainly
// useful for diagnostics and tests.
func (c *Cached[T]) Key(args []any, kwargs map[string]any) (string, error) {
	return c.builder.BuildKey(args, kwargs)
}

// Forget drops the stored result for the given positional arguments, so the
// next call recomputes.
func (c *Cached[T]) Forget(args ...any) error {
	return c.ForgetKw(args, nil)
}

// ForgetKw drops the stored result for the given positional and keyword
// arguments.
func (c *Cached[T]) ForgetKw(args []any, kwargs map[string]any) error {
	k, err := c.builder.BuildKey(args, kwargs)
	if err != nil {
		return err
	}
	c.store.Delete(k)
	return nil
}

// Store returns the backing store.
func (c *Cached[T]) Store() *store.Store { return c.store }

// Close stops the background sweep of the store owned by this instance. It
// is a no-op when the store was injected via WithStore.
func (c *Cached[T]) Close() {
	if c.owned {
		c.store.Close()
	}
}

func (c *Cached[T]) assert(k string, v any) (T, error) {
	if v == nil {
		// A computation returned a nil interface value; hand back the
		// zero value rather than failing the assertion below.
		var zero T
		return zero, nil
	}
	t, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cashier: entry for key %q holds %T, want %T", k, v, zero)
	}
	return t, nil
}
