package BEM2D

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/panelyze/geometry2D"
	"github.com/notargets/panelyze/utils"
)

func TestBoundaryConditions(t *testing.T) {
	var (
		els = discretize(t, 4, 2, 2, 4) // Bottom 0-1, right 2-3, top 4-5, left 6-7
		bc  = NewBoundaryConditions(len(els))
	)
	require.Len(t, bc.Type, 16)
	for k := range bc.Type {
		assert.Equal(t, utils.TractionKnown, bc.Type[k])
		assert.Zero(t, bc.Value[k])
	}
	assert.ErrorIs(t, bc.SetTraction(8, 1, 1), ErrInvalidBoundaryCondition)
	assert.ErrorIs(t, bc.SetTraction(-1, 1, 1), ErrInvalidBoundaryCondition)
	assert.ErrorIs(t, bc.SetDisplacement(16, 0), ErrInvalidBoundaryCondition)
	assert.ErrorIs(t, bc.ApplyEdgeTraction(els, geometry2D.CutoutBoundary, 1, 0), ErrInvalidBoundaryCondition)

	require.NoError(t, bc.ApplyEdgeTraction(els, geometry2D.Top, 0, 5))
	assert.Equal(t, []float64{0, 5, 0, 5}, bc.Value[8:12])

	require.NoError(t, bc.ApplyNormalTraction(els, geometry2D.Left, 3))
	assert.Equal(t, []float64{-3, 0, -3, 0}, bc.Value[12:16])

	require.NoError(t, bc.RestrainRigidBody(els))
	types, values := bc.Arrays()
	assert.Equal(t, []utils.BCType{
		utils.DisplacementKnown, utils.DisplacementKnown, utils.TractionKnown, utils.DisplacementKnown,
	}, types[0:4])
	assert.Equal(t, []float64{0, 0, 0, 0}, values[0:4])

	require.NoError(t, bc.FixElement(5))
	assert.Equal(t, utils.DisplacementKnown, bc.Type[10])
	assert.Zero(t, bc.Value[11])

	bc, err := UniaxialTension(els, 7)
	require.NoError(t, err)
	assert.Equal(t, []float64{7, 0, 7, 0}, bc.Value[4:8])
	assert.Equal(t, []float64{-7, 0, -7, 0}, bc.Value[12:16])
	_, err = UniaxialTension(discretize(t, 4, 2, 1, 4), 7)
	assert.ErrorIs(t, err, ErrInvalidBoundaryCondition)
}
