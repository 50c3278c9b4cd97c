package geometry2D

import (
	"fmt"
	"math"
)

// Cutout is a hole in the panel. A shape only has to produce its boundary as
// an ordered, clockwise polygon so that the element normals built from it
// point away from the panel material, into the hole.
type Cutout interface {
	// Boundary returns N vertices traversed clockwise, element k runs from
	// vertex k to vertex (k+1)%N
	Boundary(N int) []Point
	// Contains reports whether p lies inside or on the cutout
	Contains(p Point) bool
	BoundingBox() (min, max Point)
	Validate() error
	String() string
}

// Circular is a circular hole of radius R centered at (Xc, Yc)
type Circular struct {
	Xc, Yc, R float64
}

func NewCircular(xc, yc, r float64) *Circular {
	return &Circular{Xc: xc, Yc: yc, R: r}
}

func (c *Circular) Boundary(N int) (pts []Point) {
	return ellipseBoundary(c.Xc, c.Yc, c.R, c.R, N)
}

func (c *Circular) Contains(p Point) bool {
	dx, dy := p.X[0]-c.Xc, p.X[1]-c.Yc
	return dx*dx+dy*dy <= c.R*c.R
}

func (c *Circular) BoundingBox() (min, max Point) {
	min = NewPoint(c.Xc-c.R, c.Yc-c.R)
	max = NewPoint(c.Xc+c.R, c.Yc+c.R)
	return
}

func (c *Circular) Validate() error {
	if !isFinite(c.Xc, c.Yc, c.R) || c.R <= 0 {
		return fmt.Errorf("%w: circular cutout radius must be positive, have %g", ErrInvalidGeometry, c.R)
	}
	return nil
}

func (c *Circular) String() string {
	return fmt.Sprintf("Circular{Xc: %g, Yc: %g, R: %g}", c.Xc, c.Yc, c.R)
}

// Elliptical is an axis aligned elliptical hole with semi axes A (along x)
// and B (along y)
type Elliptical struct {
	Xc, Yc, A, B float64
}

func NewElliptical(xc, yc, a, b float64) *Elliptical {
	return &Elliptical{Xc: xc, Yc: yc, A: a, B: b}
}

// Boundary places vertices at equal steps of the parametric angle
func (e *Elliptical) Boundary(N int) []Point {
	return ellipseBoundary(e.Xc, e.Yc, e.A, e.B, N)
}

func (e *Elliptical) Contains(p Point) bool {
	dx, dy := (p.X[0]-e.Xc)/e.A, (p.X[1]-e.Yc)/e.B
	return dx*dx+dy*dy <= 1
}

func (e *Elliptical) BoundingBox() (min, max Point) {
	min = NewPoint(e.Xc-e.A, e.Yc-e.B)
	max = NewPoint(e.Xc+e.A, e.Yc+e.B)
	return
}

func (e *Elliptical) Validate() error {
	if !isFinite(e.Xc, e.Yc, e.A, e.B) || e.A <= 0 || e.B <= 0 {
		return fmt.Errorf("%w: elliptical cutout semi axes must be positive, have %g, %g",
			ErrInvalidGeometry, e.A, e.B)
	}
	return nil
}

func (e *Elliptical) String() string {
	return fmt.Sprintf("Elliptical{Xc: %g, Yc: %g, A: %g, B: %g}", e.Xc, e.Yc, e.A, e.B)
}

func ellipseBoundary(xc, yc, a, b float64, N int) (pts []Point) {
	var (
		dTheta = 2 * math.Pi / float64(N)
	)
	// Start half a step above the x axis and walk clockwise, which puts the
	// element midpoints at theta = 0, -dTheta, -2 dTheta, ...
	pts = make([]Point, N)
	for k := 0; k < N; k++ {
		theta := 0.5*dTheta - float64(k)*dTheta
		pts[k] = NewPoint(xc+a*math.Cos(theta), yc+b*math.Sin(theta))
	}
	return
}

// cutoutsOverlap checks two cutouts against each other by sampling their
// boundaries, which is exact enough for convex shapes at this resolution
func cutoutsOverlap(c1, c2 Cutout) bool {
	const nSample = 360
	min1, max1 := c1.BoundingBox()
	min2, max2 := c2.BoundingBox()
	if min1.X[0] > max2.X[0] || min2.X[0] > max1.X[0] ||
		min1.X[1] > max2.X[1] || min2.X[1] > max1.X[1] {
		return false
	}
	if a, b := circleOf(c1), circleOf(c2); a != nil && b != nil {
		dx, dy := a.Xc-b.Xc, a.Yc-b.Yc
		return math.Sqrt(dx*dx+dy*dy) <= a.R+b.R
	}
	for _, p := range c1.Boundary(nSample) {
		if c2.Contains(p) {
			return true
		}
	}
	for _, p := range c2.Boundary(nSample) {
		if c1.Contains(p) {
			return true
		}
	}
	return false
}

func circleOf(c Cutout) *Circular {
	if cc, ok := c.(*Circular); ok {
		return cc
	}
	return nil
}

func isFinite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
