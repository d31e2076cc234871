// Package polychannel builds a swept channel out of a sparse sequence
// of cross-section descriptions: each entry may omit almost every
// field, inheriting it from its predecessor. The pipeline runs in four
// stages — defaulting, corner rounding, Bézier expansion, and
// materialisation — matching original_source/backend/polychannel.py's
// Polychannel.__init__.
package polychannel

import "github.com/3D-Printing-for-Microfluidics/openmfd-go/manifold"

// ShapeType names which primitive a dense entry materialises into.
type ShapeType string

const (
	Cube        ShapeType = "cube"
	Sphere      ShapeType = "sphere"
	RoundedCube ShapeType = "rounded_cube"
)

// Entry is implemented by SparseShape and SparseBezierShape: the two
// kinds of cross-section a caller may place in a polychannel's input
// list. Mirrors the teacher's path.go sum-type pattern (PathElement),
// generalised from a private marker method to cover two sparse record
// shapes instead of path verbs.
type Entry interface {
	isEntry()
}

// SparseShape is a single cross-section with every field optional
// except on the first entry of a polychannel (see defaultAgainst).
// A nil field means "inherit from the previous entry".
type SparseShape struct {
	ShapeType         *ShapeType
	Position          *manifold.Vec3
	Size              *manifold.Vec3
	RoundedCubeRadius *manifold.Vec3
	Rotation          *manifold.Vec3
	AbsolutePosition  *bool
	CornerRadius      *float64
	CornerSegments    *int
	FN                *int
	NoValidation      bool
}

func (*SparseShape) isEntry() {}

// SparseBezierShape is a Bézier-curved run of cross-sections between
// the previous entry and this one's resolved position; it may not be
// the first entry in a polychannel.
type SparseBezierShape struct {
	SparseShape
	ControlPoints  []manifold.Vec3
	BezierSegments int
}

func (*SparseBezierShape) isEntry() {}
