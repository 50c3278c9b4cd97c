package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(1.))
	assert.False(t, IsFinite(math.NaN()))
	assert.False(t, IsFinite([]float64{1, math.Inf(-1)}))
	assert.False(t, IsFinite([2][2]float64{{0, 0}, {math.NaN(), 0}}))
	M := NewMatrix(2, 2)
	assert.True(t, IsFinite(M))
	M.Set(1, 1, math.Inf(1))
	assert.False(t, IsFinite(M))
	// Named and unlisted types are rejected rather than reported finite
	type block [2][2]float64
	assert.Panics(t, func() { IsFinite(block{{math.NaN(), 0}, {0, 0}}) })
	assert.Panics(t, func() { IsFinite([3]float64{}) })
	assert.Panics(t, func() { IsFinite(float32(1)) })
	assert.Contains(t, GetMemUsage(), "Alloc")
}
