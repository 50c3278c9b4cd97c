package geometry2D

import (
	"fmt"
	"math"
	"strings"
)

type Point struct {
	X [2]float64
}

func NewPoint(x, y float64) Point {
	return Point{X: [2]float64{x, y}}
}

func (p Point) Sub(q Point) [2]float64 {
	return [2]float64{p.X[0] - q.X[0], p.X[1] - q.X[1]}
}

func (p Point) Dist(q Point) float64 {
	d := p.Sub(q)
	return math.Hypot(d[0], d[1])
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X[0], p.X[1])
}

// BoundaryTag identifies which part of the panel boundary an element lies on
type BoundaryTag uint8

const (
	Bottom BoundaryTag = iota // y = 0
	Right                     // x = W
	Top                       // y = H
	Left                      // x = 0
	CutoutBoundary
)

func (bt BoundaryTag) String() string {
	switch bt {
	case Bottom:
		return "Bottom"
	case Right:
		return "Right"
	case Top:
		return "Top"
	case Left:
		return "Left"
	case CutoutBoundary:
		return "Cutout"
	}
	return "Unknown"
}

// Element is a straight constant boundary element. The collocation point is
// Center and both displacement and traction are constant along the element.
type Element struct {
	Index      int
	P1, P2     Point // Start and end, in traversal order
	Center     Point
	Tangent    [2]float64 // Unit vector from P1 to P2
	Normal     [2]float64 // Unit normal pointing away from the panel material
	Length     float64
	Boundary   BoundaryTag
	Contour    int // 0 is the outer rectangle, k+1 is cutout k
	Prev, Next int // Neighbours in the same closed contour
}

func newElement(index int, p1, p2 Point, tag BoundaryTag, contour int) (e Element) {
	d := p2.Sub(p1)
	L := math.Hypot(d[0], d[1])
	e = Element{
		Index:    index,
		P1:       p1,
		P2:       p2,
		Center:   NewPoint(0.5*(p1.X[0]+p2.X[0]), 0.5*(p1.X[1]+p2.X[1])),
		Tangent:  [2]float64{d[0] / L, d[1] / L},
		Length:   L,
		Boundary: tag,
		Contour:  contour,
	}
	// Right hand normal of the traversal direction
	e.Normal = [2]float64{e.Tangent[1], -e.Tangent[0]}
	return
}

// DOF returns the global x and y degree of freedom indices of the element
func (e *Element) DOF() (ix, iy int) {
	return 2 * e.Index, 2*e.Index + 1
}

// PointAt maps the local coordinate s in [-1,1] onto the element
func (e *Element) PointAt(s float64) Point {
	h := 0.5 * s * e.Length
	return NewPoint(e.Center.X[0]+h*e.Tangent[0], e.Center.X[1]+h*e.Tangent[1])
}

// Distance is the shortest distance from p to the element segment
func (e *Element) Distance(p Point) float64 {
	var (
		d = p.Sub(e.P1)
		s = d[0]*e.Tangent[0] + d[1]*e.Tangent[1]
	)
	switch {
	case s <= 0:
		return p.Dist(e.P1)
	case s >= e.Length:
		return p.Dist(e.P2)
	}
	return math.Abs(d[0]*e.Normal[0] + d[1]*e.Normal[1])
}

type Elements []Element

// NDOF is the number of boundary degrees of freedom, two per element
func (els Elements) NDOF() int { return 2 * len(els) }

// OnBoundary returns the indices of the elements carrying the tag
func (els Elements) OnBoundary(tag BoundaryTag) (I []int) {
	for i := range els {
		if els[i].Boundary == tag {
			I = append(I, i)
		}
	}
	return
}

// OnContour returns the indices of the elements of a closed contour
func (els Elements) OnContour(contour int) (I []int) {
	for i := range els {
		if els[i].Contour == contour {
			I = append(I, i)
		}
	}
	return
}

// Nearest returns the element closest to p and the distance to it
func (els Elements) Nearest(p Point) (index int, dist float64) {
	index, dist = -1, math.Inf(1)
	for i := range els {
		if d := els[i].Distance(p); d < dist {
			index, dist = i, d
		}
	}
	return
}

// ParseBoundaryTag matches a boundary name case-insensitively
func ParseBoundaryTag(name string) (bt BoundaryTag, err error) {
	for bt = Bottom; bt <= CutoutBoundary; bt++ {
		if strings.EqualFold(strings.TrimSpace(name), bt.String()) {
			return
		}
	}
	err = fmt.Errorf("%w: unknown boundary %q", ErrInvalidGeometry, name)
	return
}
