package BEM2D

import (
	"math"

	"github.com/notargets/panelyze/geometry2D"
	"github.com/notargets/panelyze/material"
)

// Kelvin is the isotropic point load solution. Plane stress is obtained from
// the plane strain form with the effective ratio nu/(1+nu).
type Kelvin struct {
	G, Nu float64 // Shear modulus and effective Poisson ratio
}

func NewKelvin(m *material.Orthotropic) *Kelvin {
	_, nu, G := m.IsotropicConstants()
	return &Kelvin{G: G, Nu: nu / (1 + nu)}
}

func (kv *Kelvin) Name() string { return "Kelvin" }

func delta(i, j int) float64 {
	if i == j {
		return 1
	}
	return 0
}

func radial(src, x geometry2D.Point, n [2]float64) (R float64, dr [2]float64, drdn float64) {
	d := x.Sub(src)
	R = math.Hypot(d[0], d[1])
	dr = [2]float64{d[0] / R, d[1] / R}
	drdn = dr[0]*n[0] + dr[1]*n[1]
	return
}

func (kv *Kelvin) Fundamental(src, x geometry2D.Point, n [2]float64) (U, T Block) {
	var (
		nu          = kv.Nu
		R, dr, drdn = radial(src, x, n)
		cu          = 1. / (8 * math.Pi * kv.G * (1 - nu))
		ct          = -1. / (4 * math.Pi * (1 - nu) * R)
		lnr         = math.Log(1 / R)
		c34, c12    = 3 - 4*nu, 1 - 2*nu
	)
	for l := 0; l < 2; l++ {
		for m := 0; m < 2; m++ {
			U[l][m] = cu * (c34*lnr*delta(l, m) + dr[l]*dr[m])
			T[l][m] = ct * (drdn*(c12*delta(l, m)+2*dr[l]*dr[m]) -
				c12*(dr[l]*n[m]-dr[m]*n[l]))
		}
	}
	return
}

func (kv *Kelvin) SelfDisplacement(e *geometry2D.Element) (U Block) {
	var (
		nu = kv.Nu
		L  = e.Length
		c  = L / (8 * math.Pi * kv.G * (1 - nu))
		lg = (3 - 4*nu) * (1 - math.Log(0.5*L))
	)
	for l := 0; l < 2; l++ {
		for m := 0; m < 2; m++ {
			U[l][m] = c * (lg*delta(l, m) + e.Tangent[l]*e.Tangent[m])
		}
	}
	return
}

var voigt = [3][2]int{{0, 0}, {1, 1}, {0, 1}}

func (kv *Kelvin) StressKernels(src, x geometry2D.Point, n [2]float64) (D, S [2]Stress) {
	var (
		nu          = kv.Nu
		R, dr, drdn = radial(src, x, n)
		cd          = 1. / (4 * math.Pi * (1 - nu) * R)
		cs          = kv.G / (2 * math.Pi * (1 - nu) * R * R)
		c12, c14    = 1 - 2*nu, 1 - 4*nu
	)
	for k := 0; k < 2; k++ {
		var d, s [3]float64
		for v, ij := range voigt {
			i, j := ij[0], ij[1]
			d[v] = cd * (c12*(delta(k, i)*dr[j]+delta(k, j)*dr[i]-delta(i, j)*dr[k]) +
				2*dr[i]*dr[j]*dr[k])
			s[v] = cs * (2*drdn*(c12*delta(i, j)*dr[k]+nu*(delta(i, k)*dr[j]+delta(j, k)*dr[i])-
				4*dr[i]*dr[j]*dr[k]) +
				2*nu*(n[i]*dr[j]*dr[k]+n[j]*dr[i]*dr[k]) +
				c12*(2*n[k]*dr[i]*dr[j]+n[j]*delta(i, k)+n[i]*delta(j, k)) -
				c14*n[k]*delta(i, j))
		}
		D[k] = Stress{d[0], d[1], d[2]}
		S[k] = Stress{s[0], s[1], s[2]}
	}
	return
}
