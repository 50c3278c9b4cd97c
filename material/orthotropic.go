// Package material holds the plane-stress orthotropic elastic constants of a
// panel and the quantities derived from them that the boundary kernels need.
package material

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

var ErrInvalidMaterial = errors.New("invalid material")

const (
	// DefaultThickness is used when no thickness is supplied
	DefaultThickness = 1.
	// RootTolerance is the separation below which the two characteristic
	// roots are treated as repeated
	RootTolerance = 1.e-4
	// IsotropicTolerance is the relative difference of E1 and E2 under which
	// a material with repeated roots is treated as isotropic
	IsotropicTolerance = 1.e-6
)

// Orthotropic is a plane-stress orthotropic material with principal axes
// aligned with the panel x and y axes. It is immutable after construction.
type Orthotropic struct {
	E1, E2    float64 // Moduli in the principal directions
	Nu12      float64 // Major Poisson ratio
	G12       float64 // In-plane shear modulus
	Thickness float64

	a11, a12, a22, a66 float64 // Plane-stress compliance
	mu                 [2]complex128
	isotropic          bool
	shearNudge         float64 // Relative change applied to a66 to split repeated roots
}

// NewOrthotropic validates the elastic constants and derives the compliance
// and the characteristic roots. An optional thickness may be supplied.
func NewOrthotropic(e1, e2, nu12, g12 float64, thicknessO ...float64) (m *Orthotropic, err error) {
	var (
		thickness = DefaultThickness
	)
	if len(thicknessO) != 0 {
		thickness = thicknessO[0]
	}
	for _, v := range []struct {
		name string
		val  float64
	}{{"e1", e1}, {"e2", e2}, {"nu12", nu12}, {"g12", g12}, {"thickness", thickness}} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) {
			err = fmt.Errorf("%w: %s is not finite: %v", ErrInvalidMaterial, v.name, v.val)
			return
		}
	}
	switch {
	case e1 <= 0:
		err = fmt.Errorf("%w: e1 must be positive, have %g", ErrInvalidMaterial, e1)
	case e2 <= 0:
		err = fmt.Errorf("%w: e2 must be positive, have %g", ErrInvalidMaterial, e2)
	case g12 <= 0:
		err = fmt.Errorf("%w: g12 must be positive, have %g", ErrInvalidMaterial, g12)
	case thickness <= 0:
		err = fmt.Errorf("%w: thickness must be positive, have %g", ErrInvalidMaterial, thickness)
	case nu12*nu12 >= e1/e2:
		// Positive strain energy requires nu12*nu21 < 1 with nu21 = nu12*e2/e1
		err = fmt.Errorf("%w: nu12 = %g violates nu12^2 < e1/e2 = %g", ErrInvalidMaterial, nu12, e1/e2)
	}
	if err != nil {
		return
	}
	m = &Orthotropic{
		E1:        e1,
		E2:        e2,
		Nu12:      nu12,
		G12:       g12,
		Thickness: thickness,
		a11:       1. / e1,
		a22:       1. / e2,
		a12:       -nu12 / e1,
		a66:       1. / g12,
	}
	if err = m.solveRoots(); err != nil {
		m = nil
	}
	return
}

func (m *Orthotropic) solveRoots() (err error) {
	var (
		a66 = m.a66
	)
	m.mu = characteristicRoots(m.a11, m.a12, m.a22, a66)
	if cmplx.Abs(m.mu[0]-m.mu[1]) >= RootTolerance {
		return
	}
	if math.Abs(m.E1-m.E2) <= IsotropicTolerance*m.E1 {
		m.isotropic = true
		return
	}
	// Repeated roots without isotropy: perturb the shear compliance until the
	// roots split far enough for the complex potential formulation
	for _, eps := range []float64{1.e-6, 1.e-5, 1.e-4, 1.e-3} {
		mu := characteristicRoots(m.a11, m.a12, m.a22, a66*(1+eps))
		if cmplx.Abs(mu[0]-mu[1]) >= RootTolerance {
			m.mu = mu
			m.a66 = a66 * (1 + eps)
			m.shearNudge = eps
			return
		}
	}
	err = fmt.Errorf("%w: unable to separate repeated characteristic roots %v", ErrInvalidMaterial, m.mu)
	return
}

// characteristicRoots solves a11 mu^4 + (2 a12 + a66) mu^2 + a22 = 0 and
// returns the two roots with positive imaginary part.
func characteristicRoots(a11, a12, a22, a66 float64) (mu [2]complex128) {
	var (
		b    = 2*a12 + a66
		disc = b*b - 4*a11*a22
		s    [2]complex128
	)
	if disc < 0 {
		sq := math.Sqrt(-disc)
		s[0] = complex(-b/(2*a11), sq/(2*a11))
		s[1] = cmplx.Conj(s[0])
	} else {
		// Positive definite compliance forces b > 0 here, both roots are negative
		sq := math.Sqrt(disc)
		s[0] = complex((-b+sq)/(2*a11), 0)
		s[1] = complex((-b-sq)/(2*a11), 0)
	}
	for k := 0; k < 2; k++ {
		mu[k] = cmplx.Sqrt(s[k])
		if imag(mu[k]) < 0 {
			mu[k] = -mu[k]
		}
	}
	return
}

// Nu21 is the minor Poisson ratio from the reciprocity relation
func (m *Orthotropic) Nu21() float64 { return m.Nu12 * m.E2 / m.E1 }

// Roots returns the characteristic roots mu1, mu2, both with positive
// imaginary part.
func (m *Orthotropic) Roots() [2]complex128 { return m.mu }

// IsIsotropic reports repeated characteristic roots with E1 == E2, in which
// case the complex potential kernels degenerate and the classical Kelvin
// solution applies.
func (m *Orthotropic) IsIsotropic() bool { return m.isotropic }

// ShearNudge is the relative perturbation applied to the shear compliance to
// split repeated roots of a non-isotropic material, zero otherwise.
func (m *Orthotropic) ShearNudge() float64 { return m.shearNudge }

// Compliance returns the plane-stress compliance in Voigt form
// (xx, yy, engineering shear xy).
func (m *Orthotropic) Compliance() (S [3][3]float64) {
	S[0][0], S[0][1] = m.a11, m.a12
	S[1][0], S[1][1] = m.a12, m.a22
	S[2][2] = m.a66
	return
}

// Stiffness returns the inverse of Compliance
func (m *Orthotropic) Stiffness() (C [3][3]float64) {
	det := m.a11*m.a22 - m.a12*m.a12
	C[0][0], C[0][1] = m.a22/det, -m.a12/det
	C[1][0], C[1][1] = -m.a12/det, m.a11/det
	C[2][2] = 1. / m.a66
	return
}

// DisplacementCoefficients returns p_k and q_k linking the complex potentials
// to the displacements: u = 2 Re(sum p_k phi_k), v = 2 Re(sum q_k phi_k).
func (m *Orthotropic) DisplacementCoefficients() (p, q [2]complex128) {
	for k, mu := range m.mu {
		p[k] = complex(m.a11, 0)*mu*mu + complex(m.a12, 0)
		q[k] = complex(m.a12, 0)*mu + complex(m.a22, 0)/mu
	}
	return
}

// IsotropicConstants returns Young's modulus, Poisson ratio and shear modulus
// of the isotropic material, consistent with E = 2G(1+nu).
func (m *Orthotropic) IsotropicConstants() (E, nu, G float64) {
	E, nu = m.E1, m.Nu12
	G = E / (2 * (1 + nu))
	return
}

func (m *Orthotropic) String() string {
	return fmt.Sprintf("Orthotropic{E1: %g, E2: %g, Nu12: %g, G12: %g, Thickness: %g}",
		m.E1, m.E2, m.Nu12, m.G12, m.Thickness)
}
