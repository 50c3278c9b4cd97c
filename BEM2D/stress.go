package BEM2D

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/notargets/panelyze/geometry2D"
	"github.com/notargets/panelyze/utils"
)

// CornerCosine marks neighbouring elements whose normals differ by more than
// 30 degrees, traction is not interpolated across such a junction
var CornerCosine = math.Cos(math.Pi / 6)

// boundaryField evaluates the boundary data along an element, either as the
// element constant or interpolated towards the neighbouring collocation
// points of the same contour
type boundaryField struct {
	els    geometry2D.Elements
	sol    *Solution
	linear bool
}

func (bf *boundaryField) at(j int, s float64) (u, t [2]float64) {
	var (
		e  = &bf.els[j]
		nb = e.Next
		a  = 0.5 * s * e.Length // Arc offset from the collocation point
	)
	u, t = bf.sol.Displacement(j), bf.sol.Traction(j)
	if !bf.linear || s == 0 {
		return
	}
	if a < 0 {
		nb, a = e.Prev, -a
	}
	var (
		enb = &bf.els[nb]
		f   = a / (0.5 * (e.Length + enb.Length))
		unb = bf.sol.Displacement(nb)
	)
	for m := 0; m < 2; m++ {
		u[m] += f * (unb[m] - u[m])
	}
	if e.Normal[0]*enb.Normal[0]+e.Normal[1]*enb.Normal[1] >= CornerCosine {
		tnb := bf.sol.Traction(nb)
		for m := 0; m < 2; m++ {
			t[m] += f * (tnb[m] - t[m])
		}
	}
	return
}

// CheckPoint reports whether p is strictly inside the panel material and
// clear of the boundary
func (s *Solver) CheckPoint(p geometry2D.Point) (err error) {
	if !utils.IsFinite([]float64{p.X[0], p.X[1]}) {
		return fmt.Errorf("%w: %v", ErrInvalidEvaluationPoint, p)
	}
	if _, dist := s.Elements.Nearest(p); dist <= s.Opts.BoundaryTolerance*s.minLength {
		return fmt.Errorf("%w: %v is on the boundary", ErrInvalidEvaluationPoint, p)
	}
	if s.Panel != nil && !s.Panel.Contains(p) {
		return fmt.Errorf("%w: %v is outside the panel material", ErrInvalidEvaluationPoint, p)
	}
	for contour, nc := 0, s.contours(); contour < nc; contour++ {
		inside := s.insideContour(p, contour)
		if (contour == 0) != inside {
			return fmt.Errorf("%w: %v is outside the panel material", ErrInvalidEvaluationPoint, p)
		}
	}
	return
}

func (s *Solver) contours() (nc int) {
	for i := range s.Elements {
		nc = max(nc, s.Elements[i].Contour+1)
	}
	return
}

// insideContour is the even-odd crossing test against the contour polygon
func (s *Solver) insideContour(p geometry2D.Point, contour int) (inside bool) {
	x, y := p.X[0], p.X[1]
	for i := range s.Elements {
		e := &s.Elements[i]
		if e.Contour != contour {
			continue
		}
		x1, y1, x2, y2 := e.P1.X[0], e.P1.X[1], e.P2.X[0], e.P2.X[1]
		if (y1 > y) != (y2 > y) && x < x1+(y-y1)*(x2-x1)/(y2-y1) {
			inside = !inside
		}
	}
	return
}

// ComputeStress recovers the interior stress from the boundary solution,
// sigma = (1/h) Int D t - Int S u, with the element pieces refined by the
// point to element distance
func (s *Solver) ComputeStress(points []geometry2D.Point, sol *Solution) (stress []Stress, err error) {
	n := s.Elements.NDOF()
	if sol == nil || len(sol.U) != n || len(sol.T) != n {
		err = fmt.Errorf("%w: solution does not match %d boundary dofs", ErrInvalidBoundaryCondition, n)
		return
	}
	for _, p := range points {
		if err = s.CheckPoint(p); err != nil {
			return
		}
	}
	if len(points) == 0 {
		return
	}
	var (
		st = make([]Stress, len(points))
		bf = &boundaryField{els: s.Elements, sol: sol, linear: s.Opts.Recovery == LinearRecovery}
		pm = utils.NewPartitionMap(s.Opts.Workers, len(points))
		eg errgroup.Group
	)
	for np := 0; np < pm.ParallelDegree; np++ {
		kMin, kMax := pm.GetBucketRange(np)
		eg.Go(func() error {
			for k := kMin; k < kMax; k++ {
				st[k] = s.stressAt(points[k], bf)
				if !utils.IsFinite([]float64{st[k].XX, st[k].YY, st[k].XY}) {
					return fmt.Errorf("%w: stress at %v", ErrSingularIntegration, points[k])
				}
			}
			return nil
		})
	}
	if err = eg.Wait(); err != nil {
		return
	}
	s.Opts.Logger.V(DEBUG).Info("Recovered interior stress", "points", len(points),
		"recovery", s.Opts.Recovery.String())
	stress = st
	return
}

func (s *Solver) stressAt(src geometry2D.Point, bf *boundaryField) (sig Stress) {
	var (
		rule = s.ev.Rule
		h    = s.Material.Thickness
	)
	for j := range s.Elements {
		e := &s.Elements[j]
		nsub := rule.Subdivisions(e.Length, e.Distance(src))
		rule.Visit(e, nsub, func(ls float64, x geometry2D.Point, w float64) {
			D, S := s.Kernel.StressKernels(src, x, e.Normal)
			u, t := bf.at(j, ls)
			for m := 0; m < 2; m++ {
				sig = sig.Add(D[m], w*t[m]/h)
				sig = sig.Add(S[m], -w*u[m])
			}
		})
	}
	return
}

// StressConcentration normalizes a stress by the nominal stress of a line
// load q on a panel of thickness h
func StressConcentration(sigma, q, h float64) float64 {
	return sigma / (q / h)
}
