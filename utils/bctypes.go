package utils

import (
	"fmt"
	"strings"
)

// BCType tags which member of the (displacement, traction) pair is prescribed
// at a boundary degree of freedom. The numeric values are part of the input
// format: 0 is traction known, 1 is displacement known.
type BCType uint8

const (
	TractionKnown BCType = iota
	DisplacementKnown
)

// String returns the string representation of a BCType
func (bc BCType) String() string {
	switch bc {
	case TractionKnown:
		return "TractionKnown"
	case DisplacementKnown:
		return "DisplacementKnown"
	}
	return "Unknown"
}

func (bc BCType) IsValid() bool {
	return bc == TractionKnown || bc == DisplacementKnown
}

// BCNameMap provides a mapping from common boundary condition names to BCType
// Keys are lowercase for case-insensitive matching
var BCNameMap = map[string]BCType{
	"traction":           TractionKnown,
	"tractionknown":      TractionKnown,
	"traction_known":     TractionKnown,
	"neumann":            TractionKnown,
	"free":               TractionKnown,
	"load":               TractionKnown,
	"displacement":       DisplacementKnown,
	"displacementknown":  DisplacementKnown,
	"displacement_known": DisplacementKnown,
	"dirichlet":          DisplacementKnown,
	"fixed":              DisplacementKnown,
	"support":            DisplacementKnown,
}

// ParseBCName converts a boundary condition name string to BCType
// The matching is case-insensitive and trims whitespace
func ParseBCName(name string) (BCType, error) {
	lowerName := strings.ToLower(strings.TrimSpace(name))
	if bcType, ok := BCNameMap[lowerName]; ok {
		return bcType, nil
	}
	return TractionKnown, fmt.Errorf("unknown boundary condition type: %q", name)
}
