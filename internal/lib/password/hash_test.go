package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	raw := "correct-horse-battery"

	hash, err := Hash(raw)
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	assert.NotEqual(t, raw, hash)

	assert.True(t, Verify(hash, raw))
	assert.False(t, Verify(hash, "wrong-password"))
}

func TestHash_SaltedDigestsDiffer(t *testing.T) {
	raw := "same-password"

	first, err := Hash(raw)
	require.NoError(t, err)
	second, err := Hash(raw)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, Verify(first, raw))
	assert.True(t, Verify(second, raw))
}

func TestVerify_MalformedDigest(t *testing.T) {
	assert.False(t, Verify("not-a-bcrypt-digest", "password123"))
	assert.False(t, Verify("", "password123"))
}
