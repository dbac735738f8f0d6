package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The counter derivation is the whole point: expected values in golden files
// are written down by hand, so the first few draws are pinned here.
func TestCountingEntropy(t *testing.T) {
	e := NewCountingEntropy()

	assert.Equal(t, "id00000001", e.ShortID())
	assert.Equal(t, "00000000-0000-0000-0000-000000000002", e.NewUUID().String())
	assert.Equal(t, int64(1003), e.IntBetween(1000, 1000000))

	e.Reset()
	assert.Equal(t, "id00000001", e.ShortID())
}

func TestCountingEntropyIntBetweenDegenerateRange(t *testing.T) {
	e := NewCountingEntropy()
	assert.Equal(t, int64(7), e.IntBetween(7, 7))
	assert.Equal(t, int64(7), e.IntBetween(7, 3))
}
