package InputParameters

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ghodss/yaml"

	"github.com/notargets/panelyze/BEM2D"
	"github.com/notargets/panelyze/geometry2D"
	"github.com/notargets/panelyze/material"
	"github.com/notargets/panelyze/utils"
)

// Parameters obtained from the YAML input file
type PanelInput struct {
	Title            string              `json:"Title"`
	Material         MaterialInput       `json:"Material"`
	Panel            PanelGeometry       `json:"Panel"`
	Discretization   Discretization      `json:"Discretization"`
	Loads            map[string]EdgeLoad `json:"Loads"` // Keyed by boundary: Bottom, Right, Top, Left, Cutout
	Constraints      Constraints         `json:"Constraints"`
	EvaluationPoints [][2]float64        `json:"EvaluationPoints"`
	Solver           SolverInput         `json:"Solver"`
}

type MaterialInput struct {
	E1        float64 `json:"E1"`
	E2        float64 `json:"E2"`
	Nu12      float64 `json:"Nu12"`
	G12       float64 `json:"G12"`
	Thickness float64 `json:"Thickness"`
}

type PanelGeometry struct {
	Width   float64       `json:"Width"`
	Height  float64       `json:"Height"`
	Cutouts []CutoutInput `json:"Cutouts"`
}

type CutoutInput struct {
	Type   string     `json:"Type"` // circle or ellipse
	Center [2]float64 `json:"Center"`
	Radius float64    `json:"Radius"`
	A      float64    `json:"A"`
	B      float64    `json:"B"`
}

type Discretization struct {
	ElementsPerSide   int `json:"ElementsPerSide"`
	ElementsPerCutout int `json:"ElementsPerCutout"`
}

// EdgeLoad is a line load, force per unit length of boundary. Normal acts
// along the outward normal, positive in tension, and adds to (Tx, Ty).
type EdgeLoad struct {
	Normal float64 `json:"Normal"`
	Tx     float64 `json:"Tx"`
	Ty     float64 `json:"Ty"`
}

type Constraints struct {
	RigidBody bool            `json:"RigidBody"` // Statically determinate restraint on the bottom edge
	Clamped   []string        `json:"Clamped"`   // Boundaries with zero displacement
	DOFs      []DOFConstraint `json:"DOFs"`
}

type DOFConstraint struct {
	Element   int       `json:"Element"`
	Component Component `json:"Component"`
	Type      string    `json:"Type"` // Any name known to utils.ParseBCName
	Value     float64   `json:"Value"`
}

// Component selects the x or y degree of freedom of an element. YAML 1.1
// reads an unquoted y as the boolean true, which is accepted as y; 0 and 1
// and the names u and v work as well.
type Component string

func (c *Component) UnmarshalJSON(data []byte) (err error) {
	var v interface{}
	if err = json.Unmarshal(data, &v); err != nil {
		return
	}
	switch val := v.(type) {
	case string:
		*c = Component(strings.ToLower(strings.TrimSpace(val)))
		return
	case bool:
		if val {
			*c = "y"
			return
		}
	case float64:
		switch val {
		case 0:
			*c = "x"
			return
		case 1:
			*c = "y"
			return
		}
	}
	return fmt.Errorf("%w: component %s, use x or y", BEM2D.ErrInvalidBoundaryCondition, string(data))
}

type SolverInput struct {
	QuadratureOrder int     `json:"QuadratureOrder"`
	Workers         int     `json:"Workers"`
	Recovery        string  `json:"Recovery"` // linear or constant
	ConditionLimit  float64 `json:"ConditionLimit"`
	NearFactor      float64 `json:"NearFactor"`
	MaxSubdivisions int     `json:"MaxSubdivisions"`
}

func (ip *PanelInput) Parse(data []byte) error {
	return yaml.Unmarshal(data, ip)
}

func (ip *PanelInput) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	m := ip.Material
	fmt.Printf("[%g, %g, %g, %g]\t= E1, E2, Nu12, G12\n", m.E1, m.E2, m.Nu12, m.G12)
	fmt.Printf("%8.5f\t\t= Thickness\n", m.Thickness)
	fmt.Printf("[%g x %g]\t\t= Panel\n", ip.Panel.Width, ip.Panel.Height)
	for i, c := range ip.Panel.Cutouts {
		fmt.Printf("Cutouts[%d] = %s at %v, R=%g, A=%g, B=%g\n", i, c.Type, c.Center, c.Radius, c.A, c.B)
	}
	fmt.Printf("[%d, %d]\t\t\t= Elements per side, per cutout\n",
		ip.Discretization.ElementsPerSide, ip.Discretization.ElementsPerCutout)
	keys := make([]string, 0, len(ip.Loads))
	for k := range ip.Loads {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("Loads[%s] = %+v\n", key, ip.Loads[key])
	}
	fmt.Printf("%+v\t= Constraints\n", ip.Constraints)
	fmt.Printf("%v\t= Evaluation Points\n", ip.EvaluationPoints)
}

func (ip *PanelInput) NewMaterial() (*material.Orthotropic, error) {
	m := ip.Material
	if m.Thickness == 0 {
		return material.NewOrthotropic(m.E1, m.E2, m.Nu12, m.G12)
	}
	return material.NewOrthotropic(m.E1, m.E2, m.Nu12, m.G12, m.Thickness)
}

func (ip *PanelInput) NewPanel() (pn *geometry2D.Panel, err error) {
	pn = geometry2D.NewPanel(ip.Panel.Width, ip.Panel.Height)
	for i, ci := range ip.Panel.Cutouts {
		var c geometry2D.Cutout
		switch strings.ToLower(strings.TrimSpace(ci.Type)) {
		case "circle", "circular", "":
			c = geometry2D.NewCircular(ci.Center[0], ci.Center[1], ci.Radius)
		case "ellipse", "elliptical":
			c = geometry2D.NewElliptical(ci.Center[0], ci.Center[1], ci.A, ci.B)
		default:
			err = fmt.Errorf("%w: cutout %d has unknown type %q", geometry2D.ErrInvalidGeometry, i, ci.Type)
			return nil, err
		}
		if err = pn.AddCutout(c); err != nil {
			return nil, fmt.Errorf("cutout %d: %w", i, err)
		}
	}
	err = pn.Validate()
	return
}

func (ip *PanelInput) Discretize() (pn *geometry2D.Panel, els geometry2D.Elements, err error) {
	if pn, err = ip.NewPanel(); err != nil {
		return
	}
	els, err = pn.Discretize(ip.Discretization.ElementsPerSide, ip.Discretization.ElementsPerCutout)
	return
}

func (ip *PanelInput) Points() (pts []geometry2D.Point) {
	pts = make([]geometry2D.Point, len(ip.EvaluationPoints))
	for i, p := range ip.EvaluationPoints {
		pts[i] = geometry2D.NewPoint(p[0], p[1])
	}
	return
}

func (ip *PanelInput) Options() (opts BEM2D.Options, err error) {
	si := ip.Solver
	opts = BEM2D.Options{
		Workers:         si.Workers,
		QuadratureOrder: si.QuadratureOrder,
		ConditionLimit:  si.ConditionLimit,
		NearFactor:      si.NearFactor,
		MaxSubdivisions: si.MaxSubdivisions,
	}
	switch strings.ToLower(strings.TrimSpace(si.Recovery)) {
	case "", "linear":
		opts.Recovery = BEM2D.LinearRecovery
	case "constant":
		opts.Recovery = BEM2D.ConstantRecovery
	default:
		err = fmt.Errorf("unknown stress recovery %q, use linear or constant", si.Recovery)
	}
	return
}

// BoundaryConditions turns the loads and constraints into the per degree
// of freedom arrays for the discretized panel
func (ip *PanelInput) BoundaryConditions(els geometry2D.Elements) (bc *BEM2D.BoundaryConditions, err error) {
	bc = BEM2D.NewBoundaryConditions(len(els))
	keys := make([]string, 0, len(ip.Loads))
	for k := range ip.Loads {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		var (
			ld = ip.Loads[key]
			bt geometry2D.BoundaryTag
		)
		if bt, err = geometry2D.ParseBoundaryTag(key); err != nil {
			return nil, fmt.Errorf("%w: load on %q", BEM2D.ErrInvalidBoundaryCondition, key)
		}
		I := els.OnBoundary(bt)
		if len(I) == 0 {
			return nil, fmt.Errorf("%w: no elements on %s", BEM2D.ErrInvalidBoundaryCondition, bt)
		}
		for _, i := range I {
			n := els[i].Normal
			if err = bc.SetTraction(i, ld.Tx+ld.Normal*n[0], ld.Ty+ld.Normal*n[1]); err != nil {
				return nil, err
			}
		}
	}
	cs := ip.Constraints
	for _, name := range cs.Clamped {
		var bt geometry2D.BoundaryTag
		if bt, err = geometry2D.ParseBoundaryTag(name); err != nil {
			return nil, fmt.Errorf("%w: clamped boundary %q", BEM2D.ErrInvalidBoundaryCondition, name)
		}
		for _, i := range els.OnBoundary(bt) {
			if err = bc.FixElement(i); err != nil {
				return nil, err
			}
		}
	}
	if cs.RigidBody {
		if err = bc.RestrainRigidBody(els); err != nil {
			return nil, err
		}
	}
	for _, dc := range cs.DOFs {
		var (
			bcType utils.BCType
			dof    = 2 * dc.Element
		)
		switch dc.Component {
		case "x", "u":
		case "y", "v":
			dof++
		default:
			return nil, fmt.Errorf("%w: component %q of element %d", BEM2D.ErrInvalidBoundaryCondition,
				dc.Component, dc.Element)
		}
		if dc.Element < 0 || dc.Element >= len(els) {
			return nil, fmt.Errorf("%w: element %d out of range", BEM2D.ErrInvalidBoundaryCondition, dc.Element)
		}
		if bcType, err = utils.ParseBCName(dc.Type); err != nil {
			return nil, fmt.Errorf("%w: %v", BEM2D.ErrInvalidBoundaryCondition, err)
		}
		bc.Type[dof], bc.Value[dof] = bcType, dc.Value
	}
	return
}

// Validate checks everything that can be checked before assembly
func (ip *PanelInput) Validate() (err error) {
	var els geometry2D.Elements
	if _, err = ip.NewMaterial(); err != nil {
		return
	}
	if _, els, err = ip.Discretize(); err != nil {
		return
	}
	if _, err = ip.Options(); err != nil {
		return
	}
	if _, err = ip.BoundaryConditions(els); err != nil {
		return
	}
	for i, p := range ip.EvaluationPoints {
		if math.IsNaN(p[0]) || math.IsNaN(p[1]) {
			return fmt.Errorf("%w: evaluation point %d", BEM2D.ErrInvalidEvaluationPoint, i)
		}
	}
	return
}

// Result is the YAML output of one analysis
type Result struct {
	Title     string  `json:"Title"`
	Kernel    string  `json:"Kernel"`
	Elements  int     `json:"Elements"`
	Condition float64 `json:"Condition"`
	// Circular hole in an infinite plate of the same material, loaded along x
	ReferenceKt float64       `json:"ReferenceKt,omitempty"`
	Stresses    []PointStress `json:"Stresses"`
}

type PointStress struct {
	Point    [2]float64 `json:"Point"`
	XX       float64    `json:"XX"`
	YY       float64    `json:"YY"`
	XY       float64    `json:"XY"`
	VonMises float64    `json:"VonMises"`
}

func (r *Result) Marshal() ([]byte, error) {
	return yaml.Marshal(r)
}
