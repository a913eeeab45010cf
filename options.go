package cashier

import (
	"fmt"
	"time"

	str2duration "github.com/xhit/go-str2duration/v2"
	"go.uber.org/zap"

	"github.com/zoola969/go-cashier/key"
	"github.com/zoola969/go-cashier/store"
)

// DefaultTTL is the time-to-live applied to stored results when no TTL
// option is given.
const DefaultTTL = time.Minute

// config holds the resolved configuration for a wrapped callable.
type config struct {
	ttl           time.Duration
	sweepInterval time.Duration
	prefix        string
	name          string
	params        []string
	kwOnly        []string
	cacheBy       []string
	serializer    key.Serializer
	builder       key.Builder
	store         *store.Store
	log           *zap.Logger
	hooks         *Hooks
	// err defers option validation failures to Wrap, which reports them as
	// configuration errors.
	err error
}

// Option configures a wrapped callable.
type Option func(*config)

func defaultConfig() config {
	return config{
		ttl: DefaultTTL,
		log: zap.NewNop(),
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithTTL sets the time-to-live for stored results. Defaults to DefaultTTL.
// Ignored when a store is injected via WithStore; the injected store's TTL
// governs.
func WithTTL(d time.Duration) Option {
	return func(c *config) { c.ttl = d }
}

// WithTTLString sets the time-to-live from a duration string. It accepts
// the day and week units ("1d12h", "2w") on top of the standard ones. A
// parse failure surfaces from Wrap as a configuration error.
func WithTTLString(s string) Option {
	return func(c *config) {
		d, err := str2duration.ParseDuration(s)
		if err != nil {
			c.err = fmt.Errorf("%w: invalid ttl %q: %w", key.ErrConfiguration, s, err)
			return
		}
		c.ttl = d
	}
}

// WithParams declares the callable's positional parameter names in
// declaration order. Required before WithCacheBy can name them.
func WithParams(names ...string) Option {
	return func(c *config) { c.params = names }
}

// WithKeywordOnly declares parameter names that are only passed through the
// kwargs map, never positionally.
func WithKeywordOnly(names ...string) Option {
	return func(c *config) { c.kwOnly = names }
}

// WithCacheBy restricts the cache key to a subset of the declared parameter
// names. Calling it with no names, or with a name that was not declared, is
// a configuration error reported by Wrap.
func WithCacheBy(names ...string) Option {
	return func(c *config) {
		if names == nil {
			names = []string{}
		}
		c.cacheBy = names
	}
}

// WithSerializer sets the serializer used by the default key builder.
// Defaults to [key.GoSyntaxSerializer]. Ignored when WithKeyBuilder is used.
func WithSerializer(s key.Serializer) Option {
	return func(c *config) { c.serializer = s }
}

// WithKeyBuilder replaces the default key builder entirely. Parameter,
// cache-by, prefix and serializer options are ignored when set.
func WithKeyBuilder(b key.Builder) Option {
	return func(c *config) { c.builder = b }
}

// WithStore injects a shared store. The wrapped callable will not own it:
// Close becomes a no-op, the store's TTL and lifecycle stay with the
// caller, and TTL/sweep options are ignored. Sharing a store across
// callables is safe because each callable's keys carry its own namespace.
func WithStore(s *store.Store) Option {
	return func(c *config) { c.store = s }
}

// WithPrefix prepends an extra namespace to every key built for this
// callable.
func WithPrefix(p string) Option {
	return func(c *config) { c.prefix = p }
}

// WithName overrides the callable identity used as the key namespace.
// Defaults to the function's runtime symbol name ([key.FuncName]).
func WithName(name string) Option {
	return func(c *config) { c.name = name }
}

// WithLogger sets the logger for hit/miss/store diagnostics. Defaults to a
// no-op logger.
func WithLogger(log *zap.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

// WithHooks subscribes a hook set to this callable's cache events.
func WithHooks(h *Hooks) Option {
	return func(c *config) { c.hooks = h }
}

// WithSweepInterval sets the background sweep period of the owned store.
// Ignored when a store is injected via WithStore.
func WithSweepInterval(d time.Duration) Option {
	return func(c *config) { c.sweepInterval = d }
}
