package code

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_LengthAndAlphabet(t *testing.T) {
	for _, n := range []int{1, 6, 12} {
		c, err := New(n)
		require.NoError(t, err)
		assert.Len(t, c, n)
		for _, r := range c {
			assert.True(t, r >= '0' && r <= '9', "non-digit %q in code %q", r, c)
		}
	}
}

func TestNew_NotConstant(t *testing.T) {
	// 20 draws of 6 digits collide with probability ~2e-4 per pair;
	// all 20 identical means the source is broken.
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		c, err := New(6)
		require.NoError(t, err)
		seen[c] = true
	}
	assert.Greater(t, len(seen), 1)
}

func TestNew_ZeroLength(t *testing.T) {
	c, err := New(0)
	require.NoError(t, err)
	assert.Empty(t, c)
}
