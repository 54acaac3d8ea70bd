package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHasher_HashAndVerify(t *testing.T) {
	t.Parallel()

	h := NewHasher(4) // min cost keeps the test fast

	digest, err := h.Hash("secret1")
	require.NoError(t, err)
	require.NotEmpty(t, digest)

	require.True(t, h.Verify("secret1", digest))
	require.False(t, h.Verify("secret2", digest))
}

func TestHasher_SamePasswordDifferentDigests(t *testing.T) {
	t.Parallel()

	h := NewHasher(4)

	d1, err := h.Hash("secret1")
	require.NoError(t, err)
	d2, err := h.Hash("secret1")
	require.NoError(t, err)

	require.NotEqual(t, d1, d2)
	require.True(t, h.Verify("secret1", d1))
	require.True(t, h.Verify("secret1", d2))
}

func TestHasher_MalformedDigestIsNotAMatch(t *testing.T) {
	t.Parallel()

	h := NewHasher(4)

	require.False(t, h.Verify("secret1", ""))
	require.False(t, h.Verify("secret1", "not-a-bcrypt-digest"))
	require.False(t, h.Verify("secret1", "$2a$xx$garbage"))
}

func TestNewHasher_CostOutOfRangeFallsBack(t *testing.T) {
	t.Parallel()

	require.Equal(t, NewHasher(10), NewHasher(0))
	require.Equal(t, NewHasher(10), NewHasher(99))
}
