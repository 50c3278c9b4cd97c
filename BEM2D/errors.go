package BEM2D

import "errors"

var (
	// ErrSingularIntegration flags a kernel integral that could not be
	// evaluated to a finite value, e.g. regular quadrature through the source
	ErrSingularIntegration = errors.New("singular integration")
	// ErrSingularSystem flags a combined system that is singular or too
	// badly conditioned, typically an under constrained panel
	ErrSingularSystem = errors.New("singular system")
	// ErrInvalidEvaluationPoint flags a stress query on the boundary or
	// outside the panel material
	ErrInvalidEvaluationPoint = errors.New("invalid evaluation point")
	// ErrInvalidBoundaryCondition flags malformed boundary condition arrays
	ErrInvalidBoundaryCondition = errors.New("invalid boundary condition")
	ErrNotAssembled             = errors.New("solver is not assembled")
)
