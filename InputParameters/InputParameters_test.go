package InputParameters

import (
	"testing"

	"github.com/ghodss/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/panelyze/BEM2D"
	"github.com/notargets/panelyze/geometry2D"
	"github.com/notargets/panelyze/material"
	"github.com/notargets/panelyze/utils"
)

var exampleInput = []byte(`
Title: Uniaxial tension, circular cutout
Material:
  E1: 10.5e6
  E2: 10.0105e6
  Nu12: 0.33
  G12: 3.947e6
  Thickness: 0.08
Panel:
  Width: 30.
  Height: 15.
  Cutouts:
    - Type: circle
      Center: [15., 7.5]
      Radius: 1.5
Discretization:
  ElementsPerSide: 4
  ElementsPerCutout: 12
Loads:
  Left:
    Normal: 500.
  Right:
    Normal: 500.
  Top:
    Tx: 2.5
Constraints:
  RigidBody: true
  DOFs:
    - Element: 10
      Component: y
      Type: displacement
      Value: 0.001
EvaluationPoints:
  - [15., 9.01]
  - [5., 7.5]
Solver:
  QuadratureOrder: 8
  Workers: 2
  Recovery: constant
`)

func TestParse(t *testing.T) {
	var ip PanelInput
	require.NoError(t, ip.Parse(exampleInput))
	assert.Equal(t, "Uniaxial tension, circular cutout", ip.Title)
	assert.Equal(t, 10.5e6, ip.Material.E1)
	assert.Equal(t, 0.08, ip.Material.Thickness)
	require.Len(t, ip.Panel.Cutouts, 1)
	assert.Equal(t, [2]float64{15, 7.5}, ip.Panel.Cutouts[0].Center)
	assert.Equal(t, 500., ip.Loads["Left"].Normal)
	assert.Equal(t, 2.5, ip.Loads["Top"].Tx)
	assert.True(t, ip.Constraints.RigidBody)
	assert.Equal(t, [][2]float64{{15, 9.01}, {5, 7.5}}, ip.EvaluationPoints)
	ip.Print()
	require.NoError(t, ip.Validate())

	m, err := ip.NewMaterial()
	require.NoError(t, err)
	assert.Equal(t, 0.08, m.Thickness)
	opts, err := ip.Options()
	require.NoError(t, err)
	assert.Equal(t, 8, opts.QuadratureOrder)
	assert.Equal(t, 2, opts.Workers)
	assert.Equal(t, BEM2D.ConstantRecovery, opts.Recovery)
	assert.Len(t, ip.Points(), 2)
}

func TestBoundaryConditions(t *testing.T) {
	var ip PanelInput
	require.NoError(t, ip.Parse(exampleInput))
	_, els, err := ip.Discretize()
	require.NoError(t, err)
	require.Len(t, els, 28)
	bc, err := ip.BoundaryConditions(els)
	require.NoError(t, err)
	// Right edge, elements 4-7, pulled along +x
	for _, i := range els.OnBoundary(geometry2D.Right) {
		assert.Equal(t, utils.TractionKnown, bc.Type[2*i])
		assert.InDelta(t, 500., bc.Value[2*i], 1.e-12)
		assert.InDelta(t, 0., bc.Value[2*i+1], 1.e-12)
	}
	for _, i := range els.OnBoundary(geometry2D.Left) {
		assert.InDelta(t, -500., bc.Value[2*i], 1.e-12)
	}
	for _, i := range els.OnBoundary(geometry2D.Top) {
		if i == 10 {
			continue
		}
		assert.Equal(t, 2.5, bc.Value[2*i])
	}
	// Explicit dof constraint after the loads
	assert.Equal(t, utils.DisplacementKnown, bc.Type[21])
	assert.Equal(t, 0.001, bc.Value[21])
	// Rigid body restraint on the bottom edge
	assert.Equal(t, utils.DisplacementKnown, bc.Type[0])
	assert.Equal(t, utils.DisplacementKnown, bc.Type[1])
	assert.Equal(t, utils.DisplacementKnown, bc.Type[7])
	assert.Equal(t, utils.TractionKnown, bc.Type[6])
}

func TestComponent(t *testing.T) {
	parse := func(text string) (dc DOFConstraint, err error) {
		err = yaml.Unmarshal([]byte("Element: 3\nType: fixed\nComponent: "+text+"\n"), &dc)
		return
	}
	for text, exp := range map[string]Component{
		"y": "y", "Y": "y", `"y"`: "y", "'Y'": "y", "v": "v", "1": "y",
		"x": "x", "X": "x", "u": "u", "0": "x",
	} {
		dc, err := parse(text)
		require.NoErrorf(t, err, text)
		assert.Equalf(t, exp, dc.Component, text)
		assert.Equal(t, 3, dc.Element)
	}
	for _, text := range []string{"n", "2", "[x]"} {
		// The decoder flattens the error into its message
		_, err := parse(text)
		require.Errorf(t, err, text)
		assert.Contains(t, err.Error(), "use x or y")
	}
	// An unquoted y constraint reaches the y dof
	var ip PanelInput
	require.NoError(t, ip.Parse(exampleInput))
	require.Len(t, ip.Constraints.DOFs, 1)
	assert.Equal(t, Component("y"), ip.Constraints.DOFs[0].Component)
	_, els, err := ip.Discretize()
	require.NoError(t, err)
	for _, c := range []Component{"x", "u"} {
		ip.Constraints.DOFs[0].Component = c
		bc, err := ip.BoundaryConditions(els)
		require.NoError(t, err)
		assert.Equal(t, utils.DisplacementKnown, bc.Type[20])
		assert.Equal(t, 0.001, bc.Value[20])
	}
}

func TestInputErrors(t *testing.T) {
	parse := func(edit func(ip *PanelInput)) *PanelInput {
		var ip PanelInput
		require.NoError(t, ip.Parse(exampleInput))
		edit(&ip)
		return &ip
	}
	ip := parse(func(ip *PanelInput) { ip.Material.G12 = 0 })
	assert.ErrorIs(t, ip.Validate(), material.ErrInvalidMaterial)

	ip = parse(func(ip *PanelInput) { ip.Panel.Cutouts[0].Radius = 8 })
	assert.ErrorIs(t, ip.Validate(), geometry2D.ErrInvalidGeometry)

	ip = parse(func(ip *PanelInput) { ip.Panel.Cutouts[0].Type = "square" })
	assert.ErrorIs(t, ip.Validate(), geometry2D.ErrInvalidGeometry)

	ip = parse(func(ip *PanelInput) { ip.Discretization.ElementsPerCutout = 2 })
	assert.ErrorIs(t, ip.Validate(), geometry2D.ErrInvalidGeometry)

	ip = parse(func(ip *PanelInput) { ip.Loads["Front"] = EdgeLoad{Normal: 1} })
	assert.ErrorIs(t, ip.Validate(), BEM2D.ErrInvalidBoundaryCondition)

	ip = parse(func(ip *PanelInput) { ip.Constraints.DOFs[0].Component = "z" })
	assert.ErrorIs(t, ip.Validate(), BEM2D.ErrInvalidBoundaryCondition)

	ip = parse(func(ip *PanelInput) { ip.Constraints.DOFs[0].Type = "spring" })
	assert.ErrorIs(t, ip.Validate(), BEM2D.ErrInvalidBoundaryCondition)

	ip = parse(func(ip *PanelInput) { ip.Constraints.DOFs[0].Element = 99 })
	assert.ErrorIs(t, ip.Validate(), BEM2D.ErrInvalidBoundaryCondition)

	ip = parse(func(ip *PanelInput) { ip.Solver.Recovery = "quadratic" })
	assert.Error(t, ip.Validate())
}

func TestResultMarshal(t *testing.T) {
	r := &Result{
		Title:    "case",
		Kernel:   "Kelvin",
		Elements: 280,
		Stresses: []PointStress{{Point: [2]float64{1, 2}, XX: 3, YY: 4, XY: 5}},
	}
	data, err := r.Marshal()
	require.NoError(t, err)
	assert.Contains(t, string(data), "Kernel: Kelvin")
	assert.Contains(t, string(data), "XX: 3")
}
