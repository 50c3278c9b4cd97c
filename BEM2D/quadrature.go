package BEM2D

import (
	"fmt"
	"math"

	"github.com/notargets/panelyze/geometry2D"
	"github.com/notargets/panelyze/utils"
)

// SegmentRule integrates along one straight element with a Gauss-Legendre
// rule, splitting the element into equal pieces when the source is close
// compared to the element length
type SegmentRule struct {
	Order           int
	NearFactor      float64 // Pieces ~ NearFactor * Length / distance
	MaxSubdivisions int
	X, W            []float64
}

func NewSegmentRule(order int, nearFactor float64, maxSub int) (sr *SegmentRule, err error) {
	if order < 2 {
		err = fmt.Errorf("quadrature order must be >= 2, have %d", order)
		return
	}
	if nearFactor <= 0 || maxSub < 1 {
		err = fmt.Errorf("invalid subdivision parameters: factor %g, max %d", nearFactor, maxSub)
		return
	}
	sr = &SegmentRule{
		Order:           order,
		NearFactor:      nearFactor,
		MaxSubdivisions: maxSub,
	}
	sr.X, sr.W = utils.GaussLegendre(order)
	return
}

// Subdivisions is the number of equal pieces used for a source at distance
// dist from an element of length L
func (sr *SegmentRule) Subdivisions(L, dist float64) (nsub int) {
	if dist <= 0 {
		return sr.MaxSubdivisions
	}
	f := math.Ceil(sr.NearFactor * L / dist)
	if f > float64(sr.MaxSubdivisions) {
		return sr.MaxSubdivisions
	}
	if nsub = int(f); nsub < 1 {
		nsub = 1
	}
	return
}

// Visit calls fn for every quadrature point of the element with the
// local coordinate s in [-1,1], the point, and the weight including the
// Jacobian L/2
func (sr *SegmentRule) Visit(e *geometry2D.Element, nsub int,
	fn func(s float64, x geometry2D.Point, w float64)) {
	var (
		h = 2. / float64(nsub)
	)
	for is := 0; is < nsub; is++ {
		a := -1 + float64(is)*h
		for q := range sr.X {
			s := a + 0.5*h*(sr.X[q]+1)
			fn(s, e.PointAt(s), sr.W[q]*0.5*h*0.5*e.Length)
		}
	}
}
