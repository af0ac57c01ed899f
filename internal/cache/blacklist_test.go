package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBlacklist(t *testing.T) {
	bl := NewMemoryBlacklist()

	revoked, err := bl.Contains("some-token")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, bl.Add("some-token"))

	revoked, err = bl.Contains("some-token")
	require.NoError(t, err)
	assert.True(t, revoked)

	// unrelated tokens stay valid
	revoked, err = bl.Contains("other-token")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestMemoryBlacklistAddIsIdempotent(t *testing.T) {
	bl := NewMemoryBlacklist()

	require.NoError(t, bl.Add("token"))
	require.NoError(t, bl.Add("token"))

	revoked, err := bl.Contains("token")
	require.NoError(t, err)
	assert.True(t, revoked)
}
