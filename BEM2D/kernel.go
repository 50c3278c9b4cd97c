package BEM2D

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/notargets/panelyze/geometry2D"
	"github.com/notargets/panelyze/material"
)

// Block is a 2x2 influence block indexed [load direction][response component]
type Block [2][2]float64

func (b Block) Add(a Block, scale float64) Block {
	for l := 0; l < 2; l++ {
		for m := 0; m < 2; m++ {
			b[l][m] += scale * a[l][m]
		}
	}
	return b
}

// Stress is a plane stress state in Voigt order
type Stress struct {
	XX, YY, XY float64
}

func (s Stress) Add(a Stress, scale float64) Stress {
	return Stress{s.XX + scale*a.XX, s.YY + scale*a.YY, s.XY + scale*a.XY}
}

func (s Stress) Tensor() [2][2]float64 {
	return [2][2]float64{{s.XX, s.XY}, {s.XY, s.YY}}
}

// VonMises is the plane stress equivalent stress
func (s Stress) VonMises() float64 {
	return math.Sqrt(s.XX*s.XX - s.XX*s.YY + s.YY*s.YY + 3*s.XY*s.XY)
}

// Principal returns the in-plane principal stresses, s1 >= s2
func (s Stress) Principal() (s1, s2 float64) {
	c := 0.5 * (s.XX + s.YY)
	r := math.Hypot(0.5*(s.XX-s.YY), s.XY)
	return c + r, c - r
}

func (s Stress) String() string {
	return fmt.Sprintf("[%g, %g, %g]", s.XX, s.YY, s.XY)
}

// Kernel is the fundamental solution of the plane problem for one material.
// All methods are pure, a Kernel is safe for concurrent use.
type Kernel interface {
	// Fundamental returns the displacement U[l][m] and traction T[l][m]
	// (on a surface with unit normal n) in direction m at x, caused by a unit
	// load in direction l at src
	Fundamental(src, x geometry2D.Point, n [2]float64) (U, T Block)
	// SelfDisplacement is the closed form integral of U over a straight
	// element with the source at its center
	SelfDisplacement(e *geometry2D.Element) Block
	// StressKernels return the stress at src caused by a unit traction (D[m])
	// and by a unit displacement (S[m]) in direction m at x
	StressKernels(src, x geometry2D.Point, n [2]float64) (D, S [2]Stress)
	Name() string
}

// NewKernel picks the complex potential kernel for distinct characteristic
// roots and the Kelvin kernel for an isotropic material
func NewKernel(m *material.Orthotropic) (Kernel, error) {
	if m.IsIsotropic() {
		return NewKelvin(m), nil
	}
	return NewLekhnitskii(m)
}

// clog is the principal logarithm with the cut approached from above, so
// points exactly on the cut take the same branch for both roots
func clog(z complex128) complex128 {
	if imag(z) == 0 {
		z = complex(real(z), 0)
	}
	return cmplx.Log(z)
}
