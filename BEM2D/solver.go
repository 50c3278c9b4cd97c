package BEM2D

import (
	"fmt"
	"math"

	"github.com/go-logr/logr"

	"github.com/notargets/panelyze/geometry2D"
	"github.com/notargets/panelyze/material"
	"github.com/notargets/panelyze/utils"
)

// Verbosity levels used with logr
const (
	DEBUG = 1
	TRACE = 2
)

type RecoveryMode uint8

const (
	// LinearRecovery interpolates the boundary data between neighbouring
	// collocation points of a contour when recovering interior stress
	LinearRecovery RecoveryMode = iota
	// ConstantRecovery uses the element constant boundary data as solved
	ConstantRecovery
)

func (rm RecoveryMode) String() string {
	switch rm {
	case LinearRecovery:
		return "Linear"
	case ConstantRecovery:
		return "Constant"
	}
	return "Unknown"
}

type Options struct {
	Workers           int     // Parallel degree, < 1 uses GOMAXPROCS
	QuadratureOrder   int     // Gauss-Legendre points per element piece
	NearFactor        float64 // Element pieces ~ NearFactor * length / distance
	MaxSubdivisions   int
	ConditionLimit    float64 // Largest accepted condition estimate of the combined system
	BoundaryTolerance float64 // Relative to the shortest element, stress points closer are rejected
	Recovery          RecoveryMode
	Logger            logr.Logger
}

func DefaultOptions() Options {
	return Options{
		QuadratureOrder:   6,
		NearFactor:        2,
		MaxSubdivisions:   64,
		ConditionLimit:    1.e12,
		BoundaryTolerance: 1.e-6,
		Recovery:          LinearRecovery,
		Logger:            logr.Discard(),
	}
}

func (o *Options) fillDefaults() {
	def := DefaultOptions()
	if o.QuadratureOrder == 0 {
		o.QuadratureOrder = def.QuadratureOrder
	}
	if o.NearFactor == 0 {
		o.NearFactor = def.NearFactor
	}
	if o.MaxSubdivisions == 0 {
		o.MaxSubdivisions = def.MaxSubdivisions
	}
	if o.ConditionLimit == 0 {
		o.ConditionLimit = def.ConditionLimit
	}
	if o.BoundaryTolerance == 0 {
		o.BoundaryTolerance = def.BoundaryTolerance
	}
	if o.Logger.GetSink() == nil {
		o.Logger = def.Logger
	}
}

// Solver owns the influence matrices of one discretized panel. After
// Assemble, H and G are read only and Solve and ComputeStress may be called
// any number of times, concurrently.
type Solver struct {
	Material  *material.Orthotropic
	Kernel    Kernel
	Elements  geometry2D.Elements
	Panel     *geometry2D.Panel // Optional, used to reject stress points inside cutouts
	Opts      Options
	H, G      utils.Matrix
	ev        *Evaluator
	assembled bool
	minLength float64
}

func NewSolver(m *material.Orthotropic, els geometry2D.Elements, optsO ...Options) (s *Solver, err error) {
	var (
		opts = DefaultOptions()
		k    Kernel
		rule *SegmentRule
	)
	if len(optsO) != 0 {
		opts = optsO[0]
		opts.fillDefaults()
	}
	if m == nil {
		err = fmt.Errorf("%w: nil material", material.ErrInvalidMaterial)
		return
	}
	if len(els) == 0 {
		err = fmt.Errorf("%w: no boundary elements", geometry2D.ErrInvalidGeometry)
		return
	}
	if k, err = NewKernel(m); err != nil {
		return
	}
	if rule, err = NewSegmentRule(opts.QuadratureOrder, opts.NearFactor, opts.MaxSubdivisions); err != nil {
		return
	}
	s = &Solver{
		Material:  m,
		Kernel:    k,
		Elements:  els,
		Opts:      opts,
		ev:        NewEvaluator(k, els, m.Thickness, rule),
		minLength: math.Inf(1),
	}
	for i := range els {
		s.minLength = math.Min(s.minLength, els[i].Length)
	}
	opts.Logger.V(DEBUG).Info("Created solver", "kernel", k.Name(), "elements", len(els),
		"quadratureOrder", opts.QuadratureOrder, "recovery", opts.Recovery.String())
	return
}

// Evaluator exposes the block integrator used by Assemble
func (s *Solver) Evaluator() *Evaluator { return s.ev }

func (s *Solver) IsAssembled() bool { return s.assembled }

// Solution holds the boundary displacement U and traction T, both indexed
// by global degree of freedom
type Solution struct {
	U, T      []float64
	Condition float64 // Condition estimate of the combined system
}

func (sol *Solution) Displacement(i int) [2]float64 {
	return [2]float64{sol.U[2*i], sol.U[2*i+1]}
}

func (sol *Solution) Traction(i int) [2]float64 {
	return [2]float64{sol.T[2*i], sol.T[2*i+1]}
}

// Resultant is the net boundary force, zero for a solution in equilibrium
func (sol *Solution) Resultant(els geometry2D.Elements) (F [2]float64) {
	for i := range els {
		t := sol.Traction(i)
		F[0] += t[0] * els[i].Length
		F[1] += t[1] * els[i].Length
	}
	return
}
