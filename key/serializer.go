package key

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// LiteralSerializer renders a value in its plain textual form ("%v").
//
// It produces the shortest and most readable fragments, but distinct values
// with the same textual form collide: the int 1 and the string "1" both
// serialize to "1". Prefer [GoSyntaxSerializer] unless keys are only built
// from values of a single type.
type LiteralSerializer struct{}

func (LiteralSerializer) ToString(v any) (string, error) {
	return fmt.Sprintf("%v", v), nil
}

// GoSyntaxSerializer renders a value in Go-syntax form ("%#v"), which
// encodes the value's type alongside its structure. The int 1 becomes "1"
// while the string "1" becomes `"1"`, so cross-type collisions of the
// literal form are avoided. This is the recommended default.
type GoSyntaxSerializer struct{}

func (GoSyntaxSerializer) ToString(v any) (string, error) {
	return fmt.Sprintf("%#v", v), nil
}

// DigestSerializer produces a fixed-size fragment: the value is encoded to
// its msgpack structural form and hashed with xxhash. Key length stays
// bounded regardless of value size, at the cost of accepting the (remote)
// possibility of hash collisions.
//
// Values msgpack cannot encode (functions, channels, complex numbers) fail
// with an error, which surfaces as a derivation error at call time. Map
// encoding follows Go map iteration order and is therefore not canonical;
// use struct or slice arguments when digest keys must be reproducible.
type DigestSerializer struct{}

func (DigestSerializer) ToString(v any) (string, error) {
	b, err := msgpack.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("key: cannot encode value of type %T: %w", v, err)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(b)), nil
}

var (
	_ Serializer = LiteralSerializer{}
	_ Serializer = GoSyntaxSerializer{}
	_ Serializer = DigestSerializer{}
)
