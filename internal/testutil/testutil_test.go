package testutil

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedTokenGenerator_OrderAndExhaustion(t *testing.T) {
	gen := NewFixedTokenGenerator("job-1", "job-2")
	assert.Equal(t, "job-1", gen.Generate())
	assert.Equal(t, "job-2", gen.Generate())
	assert.Panics(t, func() { gen.Generate() })
}

func TestConstantTokenGenerator(t *testing.T) {
	gen := ConstantTokenGenerator("job-x")
	assert.Equal(t, "job-x", gen.Generate())
	assert.Equal(t, "job-x", gen.Generate())
}

func TestShuffledFrames_SeedStableAndComplete(t *testing.T) {
	first := ShuffledFrames(42, 50)
	second := ShuffledFrames(42, 50)
	assert.Equal(t, first, second, "same seed must give the same order")

	other := ShuffledFrames(7, 50)
	assert.NotEqual(t, first, other, "different seeds should give different orders")

	sorted := append([]int(nil), first...)
	sort.Ints(sorted)
	require.Len(t, sorted, 50)
	for i, frame := range sorted {
		assert.Equal(t, i, frame)
	}
}
