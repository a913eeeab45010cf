// Package cashier memoizes function calls: given a callable and its
// arguments it returns a previously computed result while one is still
// fresh, and otherwise computes, stores and returns a fresh one.
//
// # Wrapping a callable
//
// [Wrap] takes a [Func] — positional arguments plus an optional
// keyword-argument map — and returns a [Cached] with Call/CallKw methods:
//
//	c, err := cashier.Wrap(fetchUser,
//	    cashier.WithParams("id", "region"),
//	    cashier.WithCacheBy("id"),
//	    cashier.WithTTL(5*time.Minute),
//	)
//	user, err := c.Call(ctx, 123, "eu")
//
// [Wrap1], [Wrap2] and [Wrap3] preserve a typed signature instead:
//
//	cached, err := cashier.Wrap1(fetchUser, cashier.WithTTL(time.Minute))
//	user1, err := cached(ctx, 123) // executes
//	user2, err := cached(ctx, 123) // served from cache
//
// # Key derivation
//
// Keys are assembled by the [github.com/zoola969/go-cashier/key] package: a
// namespace unique to the callable (its runtime symbol name, optionally
// prefixed), followed by the serialized values of the included arguments.
// WithParams declares parameter names, WithCacheBy selects the subset that
// participates in the key; by default all declared parameters do. Keyword
// fragments are always ordered by name, so equivalent calls supplying
// keywords in different orders share a key. Invalid selections (an empty
// cache-by set, or names that were never declared) fail at wrap time with an
// error wrapping [key.ErrConfiguration].
//
// # Freshness and storage
//
// Results live in an expiring store
// ([github.com/zoola969/go-cashier/store]) with one uniform TTL. Expired
// entries are treated as absent, removed when a read observes them, and
// reaped by a background sweep. Each wrapped callable owns a private store
// unless one is injected with [WithStore]; injected stores can be shared
// across callables because every callable's keys carry its own namespace.
//
// # Concurrency
//
// Concurrent calls that derive the same key are single-flighted: the first
// caller executes, everyone else attaches and receives the same result, and
// the underlying callable runs at most once per key at a time. This holds
// whether callers are parallel OS threads or cooperatively scheduled
// goroutines. A caller whose context is cancelled while waiting detaches
// with its context error; the computation keeps running so the remaining
// callers are still served.
//
// # Errors
//
// A failed computation is delivered verbatim to every attached caller and
// is never stored — the next call re-executes. The package performs no
// retries of its own. Serialization failures abort the call before any
// store access with an error wrapping [key.ErrDerivation].
//
// # Diagnostics
//
// Hit, miss, store, shared and evict events are observable through a
// [Hooks] set ([WithHooks]) or OpenTelemetry counters ([NewMeterHooks]),
// and are logged at debug level when a logger is supplied with
// [WithLogger]. Diagnostics never affect what a call returns.
package cashier
