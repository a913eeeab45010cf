package key

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// Two calls with identical included-argument values must derive the same
// key; differing values must derive different keys.
func TestBuildKeyDeterminismProperty(t *testing.T) {
	b, err := NewBuilder(Config{Name: "pkg.f", Params: []string{"a", "b"}})
	require.NoError(t, err)

	rapid.Check(t, func(rt *rapid.T) {
		a := rapid.Int().Draw(rt, "a")
		s := rapid.String().Draw(rt, "b")

		k1, err := b.BuildKey([]any{a, s}, nil)
		if err != nil {
			rt.Fatalf("BuildKey failed: %v", err)
		}
		k2, err := b.BuildKey([]any{a, s}, nil)
		if err != nil {
			rt.Fatalf("BuildKey failed: %v", err)
		}
		if k1 != k2 {
			rt.Fatalf("identical arguments derived different keys: %q vs %q", k1, k2)
		}
	})
}

func TestBuildKeyDifferenceProperty(t *testing.T) {
	b, err := NewBuilder(Config{Name: "pkg.f", Params: []string{"a"}})
	require.NoError(t, err)

	rapid.Check(t, func(rt *rapid.T) {
		x := rapid.Int().Draw(rt, "x")
		y := rapid.Int().Draw(rt, "y")
		if x == y {
			return
		}
		kx, err := b.BuildKey([]any{x}, nil)
		if err != nil {
			rt.Fatalf("BuildKey failed: %v", err)
		}
		ky, err := b.BuildKey([]any{y}, nil)
		if err != nil {
			rt.Fatalf("BuildKey failed: %v", err)
		}
		if kx == ky {
			rt.Fatalf("distinct arguments %d and %d derived the same key %q", x, y, kx)
		}
	})
}

// The digest strategy must stay deterministic and fixed-size across
// arbitrary string and slice inputs.
func TestDigestSerializerProperty(t *testing.T) {
	s := DigestSerializer{}

	rapid.Check(t, func(rt *rapid.T) {
		v := rapid.SliceOf(rapid.String()).Draw(rt, "v")

		d1, err := s.ToString(v)
		if err != nil {
			rt.Fatalf("ToString failed: %v", err)
		}
		d2, err := s.ToString(v)
		if err != nil {
			rt.Fatalf("ToString failed: %v", err)
		}
		if d1 != d2 {
			rt.Fatalf("digest not deterministic: %q vs %q", d1, d2)
		}
		if len(d1) != 16 {
			rt.Fatalf("digest %q has length %d, want 16", d1, len(d1))
		}
	})
}
