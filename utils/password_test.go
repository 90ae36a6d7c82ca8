package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("Sup3r$ecret")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3r$ecret", hash)
	assert.True(t, CheckPassword(hash, "Sup3r$ecret"))
	assert.False(t, CheckPassword(hash, "sup3r$ecret"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestHashPasswordSalted(t *testing.T) {
	first, err := HashPassword("Sup3r$ecret")
	require.NoError(t, err)
	second, err := HashPassword("Sup3r$ecret")
	require.NoError(t, err)
	// bcrypt salts per call; equal inputs must not produce equal hashes.
	assert.NotEqual(t, first, second)
}
