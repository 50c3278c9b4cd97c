package BEM2D

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/panelyze/geometry2D"
	"github.com/notargets/panelyze/material"
)

// Lekhnitskii is the anisotropic fundamental solution written with the two
// complex potentials phi_k = A_lk ln(z_k), z_k = x + mu_k y, for a unit load
// in direction l.
//
//	u = 2 Re sum p_k phi_k      v = 2 Re sum q_k phi_k
//	sxx = 2 Re sum mu_k^2 phi_k'  syy = 2 Re sum phi_k'  sxy = -2 Re sum mu_k phi_k'
type Lekhnitskii struct {
	mu, p, q [2]complex128
	A        [2][2]complex128 // A[l][k]
	C        [3][3]float64    // Plane stress stiffness, Voigt
}

func NewLekhnitskii(m *material.Orthotropic) (lk *Lekhnitskii, err error) {
	lk = &Lekhnitskii{
		mu: m.Roots(),
		C:  m.Stiffness(),
	}
	lk.p, lk.q = m.DisplacementCoefficients()
	if err = lk.solveCoefficients(); err != nil {
		lk = nil
	}
	return
}

// solveCoefficients finds A_lk from four real conditions per load direction:
// the tractions on any contour around the load balance it, and the
// displacements are single valued. With A_k = a_k + i b_k and
// Re(2 pi i c A) = -2 pi (Im(c) a + Re(c) b) for c in {1, mu, p, q}.
func (lk *Lekhnitskii) solveCoefficients() (err error) {
	var (
		M   = mat.NewDense(4, 4, nil)
		B   = mat.NewDense(4, 2, nil)
		X   mat.Dense
		row = func(i int, c [2]complex128) {
			M.SetRow(i, []float64{imag(c[0]), real(c[0]), imag(c[1]), real(c[1])})
		}
	)
	row(0, [2]complex128{1, 1})
	row(1, lk.mu)
	row(2, lk.p)
	row(3, lk.q)
	// Load in x: sum of x tractions balances, load in y: sum of y tractions
	B.Set(1, 0, 1./(4*math.Pi))
	B.Set(0, 1, -1./(4*math.Pi))
	if err = X.Solve(M, B); err != nil {
		err = fmt.Errorf("%w: complex potential coefficients: %v", material.ErrInvalidMaterial, err)
		return
	}
	for l := 0; l < 2; l++ {
		lk.A[l][0] = complex(X.At(0, l), X.At(1, l))
		lk.A[l][1] = complex(X.At(2, l), X.At(3, l))
	}
	return
}

func (lk *Lekhnitskii) Name() string { return "Lekhnitskii" }

func (lk *Lekhnitskii) z(src, x geometry2D.Point) (z [2]complex128) {
	d := x.Sub(src)
	for k := 0; k < 2; k++ {
		z[k] = complex(d[0], 0) + lk.mu[k]*complex(d[1], 0)
	}
	return
}

func (lk *Lekhnitskii) Fundamental(src, x geometry2D.Point, n [2]float64) (U, T Block) {
	var (
		z = lk.z(src, x)
	)
	for k := 0; k < 2; k++ {
		var (
			lnz = clog(z[k])
			eta = lk.mu[k]*complex(n[0], 0) - complex(n[1], 0)
			iz  = 1 / z[k]
		)
		for l := 0; l < 2; l++ {
			a := lk.A[l][k]
			U[l][0] += 2 * real(lk.p[k]*a*lnz)
			U[l][1] += 2 * real(lk.q[k]*a*lnz)
			f := eta * a * iz
			T[l][0] += 2 * real(lk.mu[k]*f)
			T[l][1] -= 2 * real(f)
		}
	}
	return
}

// SelfDisplacement integrates ln(s w_k), w_k = tx + mu_k ty, over
// s in [-L/2, L/2], exactly.
func (lk *Lekhnitskii) SelfDisplacement(e *geometry2D.Element) (U Block) {
	var (
		L  = e.Length
		hL = 0.5 * L
	)
	for k := 0; k < 2; k++ {
		w := complex(e.Tangent[0], 0) + lk.mu[k]*complex(e.Tangent[1], 0)
		I := complex(L*(math.Log(hL)-1), 0) + complex(hL, 0)*(clog(w)+clog(-w))
		for l := 0; l < 2; l++ {
			a := lk.A[l][k]
			U[l][0] += 2 * real(lk.p[k]*a*I)
			U[l][1] += 2 * real(lk.q[k]*a*I)
		}
	}
	return
}

// StressKernels differentiate the displacement representation with respect
// to the source point and map the strains through the stiffness
func (lk *Lekhnitskii) StressKernels(src, x geometry2D.Point, n [2]float64) (D, S [2]Stress) {
	var (
		z = lk.z(src, x)
		// gradient[m][l][dir] of the displacement u_l at src
		gU, gT [2][2][2]float64
	)
	for k := 0; k < 2; k++ {
		var (
			mu   = lk.mu[k]
			iz   = 1 / z[k]
			iz2  = iz * iz
			eta  = mu*complex(n[0], 0) - complex(n[1], 0)
			P    = [2]complex128{lk.p[k], lk.q[k]}
			Q    = [2]complex128{mu, -1}
			dLog = [2]complex128{-iz, -mu * iz} // d ln(z)/d src
			dInv = [2]complex128{iz2, mu * iz2} // d (1/z)/d src
		)
		for l := 0; l < 2; l++ {
			a := lk.A[l][k]
			for m := 0; m < 2; m++ {
				for dir := 0; dir < 2; dir++ {
					gU[m][l][dir] += 2 * real(P[m]*a*dLog[dir])
					gT[m][l][dir] += 2 * real(Q[m]*eta*a*dInv[dir])
				}
			}
		}
	}
	for m := 0; m < 2; m++ {
		D[m] = lk.stressFromGradient(gU[m])
		S[m] = lk.stressFromGradient(gT[m])
	}
	return
}

func (lk *Lekhnitskii) stressFromGradient(g [2][2]float64) Stress {
	var (
		eps = [3]float64{g[0][0], g[1][1], g[0][1] + g[1][0]}
		sig [3]float64
	)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sig[i] += lk.C[i][j] * eps[j]
		}
	}
	return Stress{sig[0], sig[1], sig[2]}
}
