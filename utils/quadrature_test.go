package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGaussLegendre(t *testing.T) {
	// Known two and three point rules
	{
		X, W := GaussLegendre(2)
		assert.InDelta(t, -1/math.Sqrt(3), X[0], 1e-14)
		assert.InDelta(t, 1/math.Sqrt(3), X[1], 1e-14)
		assert.InDelta(t, 1., W[0], 1e-14)
		assert.InDelta(t, 1., W[1], 1e-14)
		X, W = GaussLegendre(3)
		assert.InDelta(t, -math.Sqrt(0.6), X[0], 1e-14)
		assert.InDelta(t, 0., X[1], 1e-14)
		assert.InDelta(t, 5./9., W[0], 1e-14)
		assert.InDelta(t, 8./9., W[1], 1e-14)
	}
	// An N point rule integrates polynomials up to degree 2N-1 exactly
	for N := 1; N <= 12; N++ {
		X, W := GaussLegendre(N)
		require.Equal(t, N, len(X))
		require.Equal(t, N, len(W))
		for k := 0; k <= 2*N-1; k++ {
			var s float64
			for i, x := range X {
				s += W[i] * math.Pow(x, float64(k))
			}
			exact := 0.
			if k%2 == 0 {
				exact = 2. / float64(k+1)
			}
			assert.InDeltaf(t, exact, s, 1e-13, "N = %d, moment %d", N, k)
		}
		for i := 1; i < N; i++ {
			assert.True(t, X[i] > X[i-1])
		}
	}
	assert.Panics(t, func() { GaussLegendre(0) })
}
