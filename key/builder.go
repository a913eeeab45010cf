package key

import (
	"fmt"
	"sort"
	"strings"
)

// Config describes one wrapped callable to [NewBuilder].
type Config struct {
	// Name is the stable identity of the wrapped callable, typically
	// [FuncName] of the underlying function. Required.
	Name string

	// Prefix is an optional caller-supplied namespace prepended to Name.
	Prefix string

	// Params are the declared positional parameter names in declaration
	// order. May be empty when the callable's parameters are not named, in
	// which case every argument participates in the key.
	Params []string

	// KeywordOnly are declared parameter names that are only ever passed by
	// keyword.
	KeywordOnly []string

	// CacheBy restricts the key to a subset of the declared parameter
	// names. Nil includes all declared parameters. An empty non-nil slice,
	// or a name not present among the declared parameters, is a
	// configuration error.
	CacheBy []string

	// Serializer converts argument values to key fragments. Defaults to
	// [GoSyntaxSerializer].
	Serializer Serializer
}

type positionalParam struct {
	name     string
	included bool
}

// DefaultBuilder is the standard [Builder]. It selects the included
// arguments once at construction and is immutable afterwards.
//
// Fragment ordering: included positional arguments in declaration order,
// then included keyword arguments sorted by name, so two calls supplying the
// same keyword arguments in different orders always assemble the same key.
type DefaultBuilder struct {
	prefix     string
	serializer Serializer
	positional []positionalParam
	includedKw map[string]struct{}
	// allArgs is set when no parameters were declared; every positional
	// argument and every keyword argument is then included.
	allArgs bool
}

var _ Builder = (*DefaultBuilder)(nil)

// NewBuilder validates cfg and constructs a DefaultBuilder. All returned
// errors wrap [ErrConfiguration].
func NewBuilder(cfg Config) (*DefaultBuilder, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("%w: callable name is required", ErrConfiguration)
	}
	if cfg.Serializer == nil {
		cfg.Serializer = GoSyntaxSerializer{}
	}

	declared := make(map[string]struct{}, len(cfg.Params)+len(cfg.KeywordOnly))
	for _, name := range append(append([]string{}, cfg.Params...), cfg.KeywordOnly...) {
		if _, dup := declared[name]; dup {
			return nil, fmt.Errorf("%w: duplicate parameter %q", ErrConfiguration, name)
		}
		declared[name] = struct{}{}
	}

	included := declared
	if cfg.CacheBy != nil {
		if len(cfg.CacheBy) == 0 {
			return nil, fmt.Errorf("%w: cache-by set cannot be empty", ErrConfiguration)
		}
		var unknown []string
		included = make(map[string]struct{}, len(cfg.CacheBy))
		for _, name := range cfg.CacheBy {
			if _, ok := declared[name]; !ok {
				unknown = append(unknown, name)
				continue
			}
			included[name] = struct{}{}
		}
		if len(unknown) > 0 {
			sort.Strings(unknown)
			return nil, fmt.Errorf("%w: cache-by contains unknown parameters: %s",
				ErrConfiguration, strings.Join(unknown, ", "))
		}
	}

	positional := make([]positionalParam, len(cfg.Params))
	for i, name := range cfg.Params {
		_, ok := included[name]
		positional[i] = positionalParam{name: name, included: ok}
	}

	prefix := cfg.Name
	if cfg.Prefix != "" {
		prefix = cfg.Prefix + Separator + cfg.Name
	}

	return &DefaultBuilder{
		prefix:     prefix,
		serializer: cfg.Serializer,
		positional: positional,
		includedKw: included,
		allArgs:    len(declared) == 0,
	}, nil
}

// BuildKey assembles the cache key for one call. Serialization failures and
// arity mismatches wrap [ErrDerivation]. Keyword arguments whose names are
// not declared do not participate in the key.
func (b *DefaultBuilder) BuildKey(args []any, kwargs map[string]any) (string, error) {
	if !b.allArgs && len(args) > len(b.positional) {
		return "", fmt.Errorf("%w: %d positional arguments for %d declared parameters",
			ErrDerivation, len(args), len(b.positional))
	}

	frags := make([]string, 0, len(args)+len(kwargs)+1)
	frags = append(frags, b.prefix)

	for i, arg := range args {
		if !b.allArgs && !b.positional[i].included {
			continue
		}
		s, err := b.serializer.ToString(arg)
		if err != nil {
			return "", fmt.Errorf("%w: positional argument %d: %w", ErrDerivation, i, err)
		}
		frags = append(frags, s)
	}

	names := make([]string, 0, len(kwargs))
	for name := range kwargs {
		if b.allArgs {
			names = append(names, name)
			continue
		}
		if _, ok := b.includedKw[name]; ok {
			names = append(names, name)
		}
	}
	// Canonical keyword order: callers may supply keyword arguments in any
	// order and still land on the same key.
	sort.Strings(names)
	for _, name := range names {
		s, err := b.serializer.ToString(kwargs[name])
		if err != nil {
			return "", fmt.Errorf("%w: keyword argument %q: %w", ErrDerivation, name, err)
		}
		frags = append(frags, s)
	}

	return strings.Join(frags, Separator), nil
}
