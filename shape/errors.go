package shape

import "errors"

// Sentinel errors surfaced by shape construction and batch combinators.
var (
	// ErrEmptyBatch is returned by the batch combinators when given an
	// empty list of shapes.
	ErrEmptyBatch = errors.New("shape: batch combinator received an empty list")

	// ErrShapeParity is returned by NewCylinder when the top and bottom
	// radii differ modulo 2 px (so 1 and 3 share parity, while 1 and 2,
	// or 1.5 and 2.5, do not).
	ErrShapeParity = errors.New("shape: cylinder top and bottom radius must both be either even or odd")

	// ErrShapeRadiusGrid is returned by NewCylinder when a radius is not
	// a multiple of 0.5 px, or by NewCylinder when neither radius nor a
	// bottom/top pair is fully specified.
	ErrShapeRadiusGrid = errors.New("shape: cylinder radius must be a multiple of 0.5 px and fully constrained")
)
