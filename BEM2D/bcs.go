package BEM2D

import (
	"fmt"

	"github.com/notargets/panelyze/geometry2D"
	"github.com/notargets/panelyze/utils"
)

// BoundaryConditions builds the per degree of freedom type and value arrays
// consumed by Solve. Every dof starts traction free.
type BoundaryConditions struct {
	Type  []utils.BCType
	Value []float64
}

func NewBoundaryConditions(nElements int) *BoundaryConditions {
	return &BoundaryConditions{
		Type:  make([]utils.BCType, 2*nElements),
		Value: make([]float64, 2*nElements),
	}
}

func (bc *BoundaryConditions) checkElement(elem int) (err error) {
	if elem < 0 || 2*elem+1 >= len(bc.Type) {
		err = fmt.Errorf("%w: element %d out of range [0,%d)", ErrInvalidBoundaryCondition, elem, len(bc.Type)/2)
	}
	return
}

// SetTraction prescribes the line load (force per unit boundary length) on
// an element
func (bc *BoundaryConditions) SetTraction(elem int, tx, ty float64) (err error) {
	if err = bc.checkElement(elem); err != nil {
		return
	}
	bc.Type[2*elem], bc.Value[2*elem] = utils.TractionKnown, tx
	bc.Type[2*elem+1], bc.Value[2*elem+1] = utils.TractionKnown, ty
	return
}

// SetDisplacement prescribes the displacement of one degree of freedom,
// 2*element for x and 2*element+1 for y
func (bc *BoundaryConditions) SetDisplacement(dof int, val float64) (err error) {
	if dof < 0 || dof >= len(bc.Type) {
		err = fmt.Errorf("%w: dof %d out of range [0,%d)", ErrInvalidBoundaryCondition, dof, len(bc.Type))
		return
	}
	bc.Type[dof], bc.Value[dof] = utils.DisplacementKnown, val
	return
}

func (bc *BoundaryConditions) FixElement(elem int) (err error) {
	if err = bc.checkElement(elem); err != nil {
		return
	}
	if err = bc.SetDisplacement(2*elem, 0); err != nil {
		return
	}
	return bc.SetDisplacement(2*elem+1, 0)
}

// ApplyEdgeTraction loads every element carrying the tag with (tx, ty)
func (bc *BoundaryConditions) ApplyEdgeTraction(els geometry2D.Elements, tag geometry2D.BoundaryTag, tx, ty float64) (err error) {
	I := els.OnBoundary(tag)
	if len(I) == 0 {
		return fmt.Errorf("%w: no elements on boundary %s", ErrInvalidBoundaryCondition, tag)
	}
	for _, i := range I {
		if err = bc.SetTraction(i, tx, ty); err != nil {
			return
		}
	}
	return
}

// ApplyNormalTraction loads the tagged elements along their outward normal,
// positive q is tension
func (bc *BoundaryConditions) ApplyNormalTraction(els geometry2D.Elements, tag geometry2D.BoundaryTag, q float64) (err error) {
	I := els.OnBoundary(tag)
	if len(I) == 0 {
		return fmt.Errorf("%w: no elements on boundary %s", ErrInvalidBoundaryCondition, tag)
	}
	for _, i := range I {
		n := els[i].Normal
		if err = bc.SetTraction(i, q*n[0], q*n[1]); err != nil {
			return
		}
	}
	return
}

// RestrainRigidBody removes the three plane rigid body modes by fixing both
// components of the first bottom element and the y component of the last one
func (bc *BoundaryConditions) RestrainRigidBody(els geometry2D.Elements) (err error) {
	I := els.OnBoundary(geometry2D.Bottom)
	if len(I) < 2 {
		return fmt.Errorf("%w: need two bottom elements to restrain rigid body motion", ErrInvalidBoundaryCondition)
	}
	if err = bc.FixElement(I[0]); err != nil {
		return
	}
	return bc.SetDisplacement(2*I[len(I)-1]+1, 0)
}

func (bc *BoundaryConditions) Arrays() ([]utils.BCType, []float64) {
	return bc.Type, bc.Value
}

// UniaxialTension loads the left and right edges of the panel with the line
// load q along x and restrains rigid body motion
func UniaxialTension(els geometry2D.Elements, q float64) (bc *BoundaryConditions, err error) {
	bc = NewBoundaryConditions(len(els))
	if err = bc.ApplyNormalTraction(els, geometry2D.Left, q); err != nil {
		return
	}
	if err = bc.ApplyNormalTraction(els, geometry2D.Right, q); err != nil {
		return
	}
	err = bc.RestrainRigidBody(els)
	return
}
