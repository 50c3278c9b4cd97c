// Package geometry2D describes a rectangular panel with cutouts and
// discretizes its boundary into straight constant elements.
package geometry2D

import (
	"errors"
	"fmt"
)

var ErrInvalidGeometry = errors.New("invalid geometry")

// Panel is the rectangle [0,W]x[0,H] with an ordered list of cutouts
type Panel struct {
	W, H    float64
	Cutouts []Cutout
}

func NewPanel(W, H float64) *Panel {
	return &Panel{W: W, H: H}
}

// AddCutout validates the cutout against the panel and the cutouts already
// present before appending it.
func (pn *Panel) AddCutout(c Cutout) (err error) {
	if err = pn.validateOuter(); err != nil {
		return
	}
	if err = pn.validateCutout(c, pn.Cutouts); err != nil {
		return
	}
	pn.Cutouts = append(pn.Cutouts, c)
	return
}

func (pn *Panel) Validate() (err error) {
	if err = pn.validateOuter(); err != nil {
		return
	}
	for i, c := range pn.Cutouts {
		if err = pn.validateCutout(c, pn.Cutouts[:i]); err != nil {
			return
		}
	}
	return
}

func (pn *Panel) validateOuter() error {
	if !isFinite(pn.W, pn.H) || pn.W <= 0 || pn.H <= 0 {
		return fmt.Errorf("%w: panel dimensions must be positive, have W = %g, H = %g",
			ErrInvalidGeometry, pn.W, pn.H)
	}
	return nil
}

func (pn *Panel) validateCutout(c Cutout, others []Cutout) (err error) {
	if c == nil {
		return fmt.Errorf("%w: nil cutout", ErrInvalidGeometry)
	}
	if err = c.Validate(); err != nil {
		return
	}
	min, max := c.BoundingBox()
	if min.X[0] <= 0 || min.X[1] <= 0 || max.X[0] >= pn.W || max.X[1] >= pn.H {
		return fmt.Errorf("%w: %v extends outside the %gx%g panel", ErrInvalidGeometry, c, pn.W, pn.H)
	}
	for _, o := range others {
		if cutoutsOverlap(c, o) {
			return fmt.Errorf("%w: %v overlaps %v", ErrInvalidGeometry, c, o)
		}
	}
	return
}

// Contains reports whether p lies strictly inside the panel material
func (pn *Panel) Contains(p Point) bool {
	if p.X[0] <= 0 || p.X[0] >= pn.W || p.X[1] <= 0 || p.X[1] >= pn.H {
		return false
	}
	for _, c := range pn.Cutouts {
		if c.Contains(p) {
			return false
		}
	}
	return true
}

// Discretize splits each outer edge into elementsPerSide equal elements and
// each cutout into elementsPerCutout elements. The outer boundary is walked
// counter-clockwise starting at (0,0) along the bottom edge, the cutouts
// clockwise, so every element normal points away from the material.
func (pn *Panel) Discretize(elementsPerSide, elementsPerCutout int) (els Elements, err error) {
	if elementsPerSide <= 0 {
		err = fmt.Errorf("%w: elements per side must be positive, have %d", ErrInvalidGeometry, elementsPerSide)
		return
	}
	switch {
	case elementsPerCutout <= 0:
		err = fmt.Errorf("%w: elements per cutout must be positive, have %d", ErrInvalidGeometry, elementsPerCutout)
	case len(pn.Cutouts) != 0 && elementsPerCutout < 3:
		err = fmt.Errorf("%w: elements per cutout must be at least 3, have %d", ErrInvalidGeometry, elementsPerCutout)
	}
	if err != nil {
		return
	}
	if err = pn.Validate(); err != nil {
		return
	}
	var (
		corners = []Point{
			NewPoint(0, 0), NewPoint(pn.W, 0), NewPoint(pn.W, pn.H), NewPoint(0, pn.H),
		}
		tags = []BoundaryTag{Bottom, Right, Top, Left}
		N    = 4*elementsPerSide + len(pn.Cutouts)*elementsPerCutout
	)
	els = make(Elements, 0, N)
	lerp := func(a, b Point, f float64) Point {
		return NewPoint(a.X[0]+f*(b.X[0]-a.X[0]), a.X[1]+f*(b.X[1]-a.X[1]))
	}
	for side := 0; side < 4; side++ {
		a, b := corners[side], corners[(side+1)%4]
		for k := 0; k < elementsPerSide; k++ {
			p1 := lerp(a, b, float64(k)/float64(elementsPerSide))
			p2 := lerp(a, b, float64(k+1)/float64(elementsPerSide))
			// Pin the exact corner coordinates
			if k == elementsPerSide-1 {
				p2 = b
			}
			els = append(els, newElement(len(els), p1, p2, tags[side], 0))
		}
	}
	for c, cut := range pn.Cutouts {
		pts := cut.Boundary(elementsPerCutout)
		for k := range pts {
			els = append(els, newElement(len(els), pts[k], pts[(k+1)%len(pts)], CutoutBoundary, c+1))
		}
	}
	linkContours(els)
	return
}

func linkContours(els Elements) {
	var (
		start int
	)
	for start < len(els) {
		end := start
		for end < len(els) && els[end].Contour == els[start].Contour {
			end++
		}
		n := end - start
		for i := start; i < end; i++ {
			els[i].Prev = start + (i-start+n-1)%n
			els[i].Next = start + (i-start+1)%n
		}
		start = end
	}
}
