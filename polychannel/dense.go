package polychannel

import "github.com/3D-Printing-for-Microfluidics/openmfd-go/manifold"

// denseEntry is the resolved-field view corner rounding and
// materialisation read from, implemented by *DenseShape directly and
// promoted through *DenseBezierShape's embedding.
type denseEntry interface {
	pos() manifold.Vec3
	extent() manifold.Vec3
	kind() ShapeType
	rot() manifold.Vec3
	radius() manifold.Vec3
	cornerR() float64
	cornerSegs() int
	facets() int
	noValidation() bool
}

// DenseShape is a fully-resolved cross-section: every field that was
// optional on SparseShape has been defaulted against its predecessor.
type DenseShape struct {
	ShapeType         ShapeType
	Position          manifold.Vec3
	Size              manifold.Vec3
	RoundedCubeRadius manifold.Vec3
	Rotation          manifold.Vec3
	CornerRadius      float64
	CornerSegments    int
	FN                int
	NoValidation      bool
}

func (d *DenseShape) pos() manifold.Vec3      { return d.Position }
func (d *DenseShape) extent() manifold.Vec3   { return d.Size }
func (d *DenseShape) kind() ShapeType         { return d.ShapeType }
func (d *DenseShape) rot() manifold.Vec3      { return d.Rotation }
func (d *DenseShape) radius() manifold.Vec3   { return d.RoundedCubeRadius }
func (d *DenseShape) cornerR() float64        { return d.CornerRadius }
func (d *DenseShape) cornerSegs() int         { return d.CornerSegments }
func (d *DenseShape) facets() int             { return d.FN }
func (d *DenseShape) noValidation() bool      { return d.NoValidation }

// DenseBezierShape is a fully-resolved Bézier run: same resolved
// fields as DenseShape (the endpoint the curve blends towards) plus
// the curve's own control points and segment count.
type DenseBezierShape struct {
	DenseShape
	ControlPoints  []manifold.Vec3
	BezierSegments int
}
