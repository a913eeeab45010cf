// Package key derives deterministic, collision-resistant cache keys from a
// callable's identity and a selected subset of its call arguments.
//
// A [Serializer] turns a single argument value into a canonical string
// fragment. A [Builder] owns the per-callable argument selection and joins
// the fragments, prefixed by a namespace unique to the wrapped callable,
// into one cache key.
package key

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
)

// Separator joins the namespace prefix and serialized argument fragments.
// If a serialized fragment itself contains the separator, two different
// argument tuples can assemble the same key; callers that serialize values
// containing "/" should switch to the digest serializer.
const Separator = "/"

// Sentinel errors for key derivation.
var (
	// ErrConfiguration reports an invalid builder setup. It is returned at
	// wrap time and never after.
	ErrConfiguration = errors.New("key: invalid configuration")
	// ErrDerivation reports that an argument could not be serialized into a
	// key fragment. It is returned at call time, before any store access.
	ErrDerivation = errors.New("key: derivation failed")
)

// Serializer converts a single argument value into a canonical key fragment.
//
// Contract:
// - Determinism: equal values must produce equal fragments.
// - Purity: no I/O, no side effects.
//
// Values without a stable representation (unordered containers, values
// compared by identity) are a known source of key instability; making such
// values representable is the caller's responsibility.
type Serializer interface {
	ToString(v any) (string, error)
}

// Builder assembles a cache key for one wrapped callable.
//
// Implementations must be safe for concurrent use; the default builder is
// immutable after construction.
type Builder interface {
	BuildKey(args []any, kwargs map[string]any) (string, error)
}

// FuncName returns a stable identifier for fn derived from its runtime
// symbol name (e.g. "github.com/acme/users.Fetch"). It is stable across
// calls within a process and distinct per distinct function, which makes it
// a suitable default key namespace.
func FuncName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		return fmt.Sprintf("%T", fn)
	}
	if rf := runtime.FuncForPC(v.Pointer()); rf != nil {
		return rf.Name()
	}
	return fmt.Sprintf("%T", fn)
}
