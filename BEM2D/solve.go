package BEM2D

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/panelyze/geometry2D"
	"github.com/notargets/panelyze/utils"
)

func (s *Solver) checkBCs(bcType []utils.BCType, bcValue []float64) (err error) {
	n := s.Elements.NDOF()
	if len(bcType) != n || len(bcValue) != n {
		err = fmt.Errorf("%w: have %d types and %d values, need %d",
			ErrInvalidBoundaryCondition, len(bcType), len(bcValue), n)
		return
	}
	for k := 0; k < n; k++ {
		if !bcType[k].IsValid() {
			err = fmt.Errorf("%w: dof %d has type %d", ErrInvalidBoundaryCondition, k, bcType[k])
			return
		}
		if !utils.IsFinite(bcValue[k]) {
			err = fmt.Errorf("%w: dof %d has value %g", ErrInvalidBoundaryCondition, k, bcValue[k])
			return
		}
	}
	return
}

// RestraintTolerance is the smallest ratio of singular values of the rigid
// body modes sampled at the displacement-known dofs
const RestraintTolerance = 1.e-8

// checkRestraint requires the prescribed displacements to remove both rigid
// translations and the rigid rotation. Without that H u = G t has no unique
// solution, and a free rotation does not show in the condition estimate
// because the discrete H only annihilates translations exactly.
func (s *Solver) checkRestraint(bcType []utils.BCType) (err error) {
	var (
		c    geometry2D.Point
		Lmax float64
		rows []float64
		nr   int
	)
	for i := range s.Elements {
		c.X[0] += s.Elements[i].Center.X[0] / float64(len(s.Elements))
		c.X[1] += s.Elements[i].Center.X[1] / float64(len(s.Elements))
	}
	for i := range s.Elements {
		Lmax = math.Max(Lmax, s.Elements[i].Center.Dist(c))
	}
	for k, bt := range bcType {
		if bt != utils.DisplacementKnown {
			continue
		}
		// Rows of the x translation, y translation and rotation about c
		r := s.Elements[k/2].Center.Sub(c)
		if k%2 == 0 {
			rows = append(rows, 1, 0, -r[1]/Lmax)
		} else {
			rows = append(rows, 0, 1, r[0]/Lmax)
		}
		nr++
	}
	if nr < 3 {
		err = fmt.Errorf("%w: %d displacement constraints cannot restrain the three rigid body modes",
			ErrSingularSystem, nr)
		return
	}
	var svd mat.SVD
	if !svd.Factorize(mat.NewDense(nr, 3, rows), mat.SVDNone) {
		err = fmt.Errorf("%w: rigid body restraint check failed to converge", ErrSingularSystem)
		return
	}
	if sv := svd.Values(nil); sv[2] <= RestraintTolerance*sv[0] {
		err = fmt.Errorf("%w: displacement constraints leave a rigid body mode free", ErrSingularSystem)
	}
	return
}

// Solve applies the mixed boundary conditions to H u = G t. The column of
// every degree of freedom holds the coefficient of its unknown member, the
// prescribed member moves to the right hand side. Columns are equilibrated
// before the LU factorization so the condition estimate is independent of
// the modulus scale.
func (s *Solver) Solve(bcType []utils.BCType, bcValue []float64) (sol *Solution, err error) {
	if !s.assembled {
		err = ErrNotAssembled
		return
	}
	if err = s.checkBCs(bcType, bcValue); err != nil {
		return
	}
	if err = s.checkRestraint(bcType); err != nil {
		return
	}
	var (
		n      = s.Elements.NDOF()
		A      = utils.NewMatrix(n, n)
		b      = mat.NewVecDense(n, nil)
		scale  = make([]float64, n)
		logger = s.Opts.Logger
	)
	for k := 0; k < n; k++ {
		var (
			col, rhs = s.H.Col(k), s.G.Col(k)
			sign     = 1.
			v        = bcValue[k]
		)
		if bcType[k] == utils.DisplacementKnown {
			col, rhs, sign = rhs, col, -1.
		}
		for _, c := range col {
			scale[k] = math.Max(scale[k], math.Abs(c))
		}
		if scale[k] == 0 {
			err = fmt.Errorf("%w: dof %d has an empty column", ErrSingularSystem, k)
			return
		}
		for i, c := range col {
			A.Set(i, k, sign*c/scale[k])
			if v != 0 {
				b.SetVec(i, b.AtVec(i)+sign*rhs[i]*v)
			}
		}
	}
	var (
		lu mat.LU
		x  mat.VecDense
	)
	lu.Factorize(A)
	cond := lu.Cond()
	logger.V(DEBUG).Info("Factorized combined system", "dofs", n, "condition", cond)
	if math.IsNaN(cond) || cond > s.Opts.ConditionLimit {
		err = fmt.Errorf("%w: condition estimate %g exceeds %g, check the displacement constraints",
			ErrSingularSystem, cond, s.Opts.ConditionLimit)
		return
	}
	if err = lu.SolveVecTo(&x, false, b); err != nil {
		err = fmt.Errorf("%w: %v", ErrSingularSystem, err)
		return
	}
	sol = &Solution{
		U:         make([]float64, n),
		T:         make([]float64, n),
		Condition: cond,
	}
	for k := 0; k < n; k++ {
		xk := x.AtVec(k) / scale[k]
		switch bcType[k] {
		case utils.DisplacementKnown:
			sol.U[k], sol.T[k] = bcValue[k], xk
		default:
			sol.U[k], sol.T[k] = xk, bcValue[k]
		}
	}
	if !utils.IsFinite(sol.U) || !utils.IsFinite(sol.T) {
		err = fmt.Errorf("%w: non finite solution", ErrSingularSystem)
		sol = nil
	}
	return
}
