// Package ana implements analytical reference solutions used to verify the
// boundary element results
package ana

import "math"

// PlateHole is Kirsch's solution for an infinite plate with a circular hole
// of radius R centred at (Xc, Yc), loaded remotely by the stresses SH along x
// and SV along y. Tension is positive.
//
//	         SV
//	  ↑↑↑↑↑↑↑↑↑↑↑↑↑
//	  -------------
//	←  |    .--.   | → SH
//	←  |   (  R )  | →
//	←  |    `--'   | →
//	  -------------
//	  ↓↓↓↓↓↓↓↓↓↓↓↓↓
type PlateHole struct {
	Xc, Yc, R float64
	SH, SV    float64
}

func NewPlateHole(xc, yc, r, sh, sv float64) *PlateHole {
	return &PlateHole{Xc: xc, Yc: yc, R: r, SH: sh, SV: sv}
}

// Polar returns the radial, hoop and shear stress at (x, y)
func (o *PlateHole) Polar(x, y float64) (sr, st, srt float64) {
	var (
		dx, dy = x - o.Xc, y - o.Yc
		d      = math.Hypot(dx, dy)
		c, s   = dx / d, dy / d
		c2t    = c*c - s*s
		s2t    = 2 * c * s
		pm     = 0.5 * (o.SH + o.SV)
		pd     = 0.5 * (o.SH - o.SV)
		b      = o.R * o.R / (d * d)
	)
	sr = pm*(1-b) + pd*(1-4*b+3*b*b)*c2t
	st = pm*(1+b) - pd*(1+3*b*b)*c2t
	srt = -pd * (1 + 2*b - 3*b*b) * s2t
	return
}

// Stress returns the Cartesian stress at (x, y), which must lie outside the
// hole
func (o *PlateHole) Stress(x, y float64) (sx, sy, sxy float64) {
	var (
		dx, dy      = x - o.Xc, y - o.Yc
		d           = math.Hypot(dx, dy)
		c, s        = dx / d, dy / d
		cc, ss, cs  = c * c, s * s, c * s
		sr, st, srt = o.Polar(x, y)
	)
	sx = cc*sr + ss*st - 2*cs*srt
	sy = ss*sr + cc*st + 2*cs*srt
	sxy = cs*sr - cs*st + (cc-ss)*srt
	return
}

// OrthotropicHoleKt is Lekhnitskii's stress concentration factor at the edge
// of a circular hole in an infinite orthotropic plate loaded along the 1
// axis
func OrthotropicHoleKt(e1, e2, nu12, g12 float64) float64 {
	return 1 + math.Sqrt(2*(math.Sqrt(e1/e2)-nu12)+e1/g12)
}

// HeywoodKt is the net-section based stress concentration factor of a
// circular hole of diameter d in a finite width strip of width w, referred
// to the gross section stress
func HeywoodKt(d, w float64) float64 {
	r := d / w
	kn := 2 + math.Pow(1-r, 3)
	return kn / (1 - r)
}
