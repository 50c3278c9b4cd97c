package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/mat"
)

func TestMatrix(t *testing.T) {
	// Blocks
	{
		M := NewMatrix(4, 4)
		M.SetBlock2(1, 0, [2][2]float64{{1, 2}, {3, 4}})
		assert.Equal(t, 1., M.At(2, 0))
		assert.Equal(t, 2., M.At(2, 1))
		assert.Equal(t, 3., M.At(3, 0))
		assert.Equal(t, 4., M.At(3, 1))
		assert.Equal(t, [2][2]float64{{1, 2}, {3, 4}}, M.Block2(1, 0))
		assert.Equal(t, [2][2]float64{}, M.Block2(1, 1))
		assert.Equal(t, []float64{0, 0, 1, 3}, M.Col(0))
	}
	// Negative indexing from the end
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		M.Set(-1, -1, -7)
		assert.Equal(t, -7., M.At(1, 2))
		assert.Equal(t, []float64{3, -7}, M.Col(-1))
	}
	// Read only protection
	{
		M := NewMatrix(2, 2)
		C := M.Copy()
		M.SetReadOnly("M")
		assert.True(t, M.IsReadOnly())
		assert.Panics(t, func() { M.Set(0, 0, 1) })
		assert.Panics(t, func() { M.SetBlock2(0, 0, [2][2]float64{}) })
		assert.NotPanics(t, func() { C.Set(0, 0, 1) })
		assert.Equal(t, 0., M.At(0, 0))
	}
	// Usable directly as a gonum matrix
	{
		M := NewMatrix(2, 2, []float64{
			4, 1,
			2, 3,
		})
		var lu mat.LU
		lu.Factorize(M)
		assert.InDelta(t, 10., lu.Det(), 1.e-12)
		assert.Equal(t, 2., M.T().At(0, 1))
	}
	assert.Panics(t, func() { NewMatrix(2, 2, []float64{1, 2, 3}) })
}
