package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// NewSymTriDiagonal builds a symmetric tridiagonal matrix from its main
// diagonal d0 and first off diagonal d1.
func NewSymTriDiagonal(d0, d1 []float64) (Tri *mat.SymDense) {
	var (
		N = len(d0)
	)
	Tri = mat.NewSymDense(N, nil)
	for i := 0; i < N; i++ {
		Tri.SetSym(i, i, d0[i])
	}
	for i := 0; i < N-1; i++ {
		Tri.SetSym(i, i+1, d1[i])
	}
	return
}

// GaussLegendre returns the N point Gauss-Legendre nodes and weights on [-1,1],
// computed as the eigen decomposition of the Jacobi matrix (Golub-Welsch).
// Nodes are returned in ascending order.
func GaussLegendre(N int) (X, W []float64) {
	if N < 1 {
		panic(fmt.Errorf("Gauss-Legendre order must be positive, have %d", N))
	}
	if N == 1 {
		return []float64{0}, []float64{2}
	}
	var (
		d0 = make([]float64, N)
		d1 = make([]float64, N-1)
	)
	for i := 0; i < N-1; i++ {
		k := float64(i + 1)
		d1[i] = k / math.Sqrt(4*k*k-1)
	}
	JJ := NewSymTriDiagonal(d0, d1)

	var eig mat.EigenSym
	if ok := eig.Factorize(JJ, true); !ok {
		panic("eigenvalue decomposition failed")
	}
	X = eig.Values(nil)

	VVr := mat.NewDense(N, N, nil)
	eig.VectorsTo(VVr)
	W = make([]float64, N)
	for i := range W {
		v := VVr.At(0, i)
		W[i] = 2 * v * v
	}
	// Symmetrize against round off so that odd integrands vanish to machine precision
	for i := 0; i < N/2; i++ {
		j := N - 1 - i
		x := 0.5 * (X[j] - X[i])
		w := 0.5 * (W[i] + W[j])
		X[i], X[j] = -x, x
		W[i], W[j] = w, w
	}
	if N%2 == 1 {
		X[N/2] = 0
	}
	return
}
