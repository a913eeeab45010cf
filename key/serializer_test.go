package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiteralSerializer(t *testing.T) {
	s := LiteralSerializer{}
	got, err := s.ToString(42)
	assert.NoError(t, err)
	assert.Equal(t, "42", got)

	// The documented collision: int 1 and string "1" share a literal form.
	a, err := s.ToString(1)
	require.NoError(t, err)
	b, err := s.ToString("1")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGoSyntaxSerializer(t *testing.T) {
	s := GoSyntaxSerializer{}

	a, err := s.ToString(1)
	require.NoError(t, err)
	b, err := s.ToString("1")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	type point struct{ X, Y int }
	got, err := s.ToString(point{1, 2})
	require.NoError(t, err)
	assert.Contains(t, got, "point")
	assert.Contains(t, got, "X:1")
}

func TestDigestSerializer(t *testing.T) {
	s := DigestSerializer{}

	a, err := s.ToString([]int{1, 2, 3})
	require.NoError(t, err)
	assert.Len(t, a, 16)

	// Deterministic for equal values.
	b, err := s.ToString([]int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, a, b)

	// Distinct values digest differently.
	c, err := s.ToString([]int{1, 2, 4})
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	// Fixed size regardless of value size.
	big := make([]byte, 1<<16)
	d, err := s.ToString(big)
	require.NoError(t, err)
	assert.Len(t, d, 16)
}

func TestDigestSerializerUnencodable(t *testing.T) {
	s := DigestSerializer{}
	_, err := s.ToString(func() {})
	assert.Error(t, err)
}
