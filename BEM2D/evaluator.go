package BEM2D

import (
	"fmt"

	"github.com/notargets/panelyze/geometry2D"
	"github.com/notargets/panelyze/utils"
)

// Evaluator produces the H and G influence blocks between a collocation
// point and an element
type Evaluator struct {
	Kernel    Kernel
	Elements  geometry2D.Elements
	Thickness float64
	Rule      *SegmentRule
}

func NewEvaluator(k Kernel, els geometry2D.Elements, thickness float64, rule *SegmentRule) *Evaluator {
	return &Evaluator{
		Kernel:    k,
		Elements:  els,
		Thickness: thickness,
		Rule:      rule,
	}
}

// Block returns the influence of element j on the collocation point of
// element i. The self block uses the closed form displacement integral and
// the smooth boundary free term.
func (ev *Evaluator) Block(i, j int) (H, G Block, err error) {
	if i != j {
		return ev.Integrate(ev.Elements[i].Center, j)
	}
	e := &ev.Elements[j]
	G = ev.Kernel.SelfDisplacement(e)
	for l := 0; l < 2; l++ {
		for m := 0; m < 2; m++ {
			G[l][m] /= ev.Thickness
		}
		H[l][l] = 0.5
	}
	if !utils.IsFinite([2][2]float64(G)) {
		err = fmt.Errorf("%w: self term of element %d", ErrSingularIntegration, j)
	}
	return
}

// Integrate applies the regular rule over element j for a source at src
func (ev *Evaluator) Integrate(src geometry2D.Point, j int) (H, G Block, err error) {
	var (
		e    = &ev.Elements[j]
		dist = e.Distance(src)
	)
	if dist <= utils.NODETOL*e.Length {
		err = fmt.Errorf("%w: source %v lies on element %d", ErrSingularIntegration, src, j)
		return
	}
	ev.Rule.Visit(e, ev.Rule.Subdivisions(e.Length, dist), func(_ float64, x geometry2D.Point, w float64) {
		U, T := ev.Kernel.Fundamental(src, x, e.Normal)
		H = H.Add(T, w)
		G = G.Add(U, w/ev.Thickness)
	})
	if !utils.IsFinite([2][2]float64(H)) || !utils.IsFinite([2][2]float64(G)) {
		err = fmt.Errorf("%w: element %d from source %v", ErrSingularIntegration, j, src)
	}
	return
}
