package material

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOrthotropicValidation(t *testing.T) {
	bad := []struct {
		name                 string
		e1, e2, nu12, g12, h float64
	}{
		{"zero e1", 0, 1e7, 0.3, 4e6, 1},
		{"negative e2", 1e7, -1, 0.3, 4e6, 1},
		{"zero g12", 1e7, 1e7, 0.3, 0, 1},
		{"zero thickness", 1e7, 1e7, 0.3, 4e6, 0},
		{"nu12 too large", 1e7, 1e7, 1.0, 4e6, 1},
		{"nu12 beyond reciprocity bound", 1e7, 4e7, 0.6, 4e6, 1},
		{"nan", math.NaN(), 1e7, 0.3, 4e6, 1},
		{"inf", 1e7, math.Inf(1), 0.3, 4e6, 1},
	}
	for _, tc := range bad {
		m, err := NewOrthotropic(tc.e1, tc.e2, tc.nu12, tc.g12, tc.h)
		assert.ErrorIsf(t, err, ErrInvalidMaterial, tc.name)
		assert.Nilf(t, m, tc.name)
	}
	// Strongly orthotropic but admissible: nu12^2 < e1/e2
	m, err := NewOrthotropic(1.4e8, 1e7, 0.3, 5e6)
	require.NoError(t, err)
	assert.Equal(t, DefaultThickness, m.Thickness)
	assert.InDelta(t, 0.3*1e7/1.4e8, m.Nu21(), 1e-15)
}

func TestCharacteristicRoots(t *testing.T) {
	check := func(m *Orthotropic) {
		S := m.Compliance()
		for _, mu := range m.Roots() {
			assert.True(t, imag(mu) > 0)
			mu2 := mu * mu
			res := complex(S[0][0], 0)*mu2*mu2 + complex(2*S[0][1]+S[2][2], 0)*mu2 + complex(S[1][1], 0)
			assert.InDelta(t, 0., cmplx.Abs(res)/S[1][1], 1e-10)
		}
	}
	{ // Graphite-epoxy like, purely imaginary roots
		m, err := NewOrthotropic(1.81e11, 1.03e10, 0.28, 7.17e9)
		require.NoError(t, err)
		check(m)
		mu := m.Roots()
		assert.InDelta(t, 0., real(mu[0]), 1e-12)
		assert.InDelta(t, 0., real(mu[1]), 1e-12)
		// mu1^2 mu2^2 = a22/a11 = e1/e2
		prod := mu[0] * mu[0] * mu[1] * mu[1]
		assert.InDelta(t, 1.81e11/1.03e10, real(prod), 1e-8)
		assert.False(t, m.IsIsotropic())
	}
	{ // Shear stiff material gives a complex conjugate pair of mu^2
		m, err := NewOrthotropic(1e7, 1e7, 0.3, 2e7)
		require.NoError(t, err)
		check(m)
		mu := m.Roots()
		assert.InDelta(t, real(mu[0]), -real(mu[1]), 1e-12)
		assert.InDelta(t, imag(mu[0]), imag(mu[1]), 1e-12)
	}
	{ // Pseudo isotropic material keeps distinct roots close to i
		E, nu := 1e7, 0.33
		m, err := NewOrthotropic(E, 1.001*E, nu, E/(2*(1+nu)))
		require.NoError(t, err)
		check(m)
		assert.False(t, m.IsIsotropic())
		for _, mu := range m.Roots() {
			assert.InDelta(t, 0., cmplx.Abs(mu-1i), 0.05)
		}
	}
	{ // Exactly isotropic
		E, nu := 1e7, 0.33
		m, err := NewOrthotropic(E, E, nu, E/(2*(1+nu)), 0.1)
		require.NoError(t, err)
		assert.True(t, m.IsIsotropic())
		e, n, g := m.IsotropicConstants()
		assert.Equal(t, E, e)
		assert.Equal(t, nu, n)
		assert.InDelta(t, E/(2*(1+nu)), g, 1e-6)
	}
	{ // Repeated roots without isotropy are split by a tiny shear perturbation
		e1, e2, nu := 2e7, 1e7, 0.3
		a11, a22, a12 := 1/e1, 1/e2, -nu/e1
		a66 := 2 * (math.Sqrt(a11*a22) - a12)
		m, err := NewOrthotropic(e1, e2, nu, 1/a66)
		require.NoError(t, err)
		assert.False(t, m.IsIsotropic())
		assert.True(t, m.ShearNudge() > 0)
		assert.True(t, m.ShearNudge() <= 1e-3)
		mu := m.Roots()
		assert.True(t, cmplx.Abs(mu[0]-mu[1]) >= RootTolerance)
	}
}

func TestStiffnessCompliance(t *testing.T) {
	m, err := NewOrthotropic(10.5e6, 1.00105e7, 0.33, 3.947e6, 0.08)
	require.NoError(t, err)
	S, C := m.Compliance(), m.Stiffness()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += C[i][k] * S[k][j]
			}
			exp := 0.
			if i == j {
				exp = 1
			}
			assert.InDelta(t, exp, sum, 1e-12)
		}
	}
	// Reciprocity of the compliance: -nu12/e1 == -nu21/e2
	assert.InDelta(t, -m.Nu21()/m.E2, S[0][1], 1e-20)
	p, q := m.DisplacementCoefficients()
	mu := m.Roots()
	for k := 0; k < 2; k++ {
		// gamma_xy compatibility: p mu + q = -a66 mu
		assert.InDelta(t, 0., cmplx.Abs(p[k]*mu[k]+q[k]+complex(S[2][2], 0)*mu[k])/S[2][2], 1e-10)
	}
	assert.Contains(t, m.String(), "Thickness: 0.08")
}
