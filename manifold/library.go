// Package manifold declares the external manifold-CSG collaborator that
// spec.md §1/§4.1/§6 treats as out of scope ("the core does not itself
// implement manifold CSG — it consumes a manifold library's surface"),
// and ships a conservative pure-Go reference implementation of that
// surface so the rest of this module and its tests do not require cgo.
package manifold

// Vec3 is a 3D point or vector with float64 coordinates, the continuous
// counterpart to units.Point3 used while a shape is still being built up
// from primitives (before it is snapped onto the integer pixel lattice).
type Vec3 struct {
	X, Y, Z float64
}

// Box is an axis-aligned bounding box in the same continuous space as Vec3.
type Box struct {
	Min, Max Vec3
}

// Empty reports whether b has non-positive extent on any axis.
func (b Box) Empty() bool {
	return b.Max.X <= b.Min.X || b.Max.Y <= b.Min.Y || b.Max.Z <= b.Min.Z
}

// BooleanOp selects the operation performed by Library.BatchBoolean.
type BooleanOp int

const (
	OpAdd BooleanOp = iota
	OpSubtract
	OpIntersect
)

// Polygon is a closed 2D loop produced by slicing a Solid at a given Z.
// Winding order is significant: the slicer treats loops that run
// counter-clockwise in the XY plane (Y up) as fill and clockwise loops as
// holes.
type Polygon struct {
	Points []Vec3 // Z is constant across all points (the slicing plane).
}

// Mesh is a triangle mesh: Verts indexed by the three ints of each Faces
// entry.
type Mesh struct {
	Verts []Vec3
	Faces [][3]int
}

// Solid is an opaque manifold solid. Everything touching Solid other than
// Library itself treats it as immutable: every transform returns a new
// Solid and leaves the receiver untouched, mirroring spec.md's "a new
// Shape" framing for batch combinators.
type Solid interface {
	BoundingBox() Box
	Translate(v Vec3) Solid
	Rotate(degreesXYZ Vec3) Solid
	Scale(s Vec3) Solid
	Mirror(axis [3]bool) Solid
	Slice(z float64) []Polygon
	ToMesh() Mesh
}

// Library is the full surface of the external manifold-CSG collaborator,
// per spec.md §4.1.
type Library interface {
	Cube(size Vec3, center bool) Solid
	Cylinder(height, rLow, rHigh float64, segments int, center bool) Solid
	Sphere(radius float64, segments int) Solid
	BatchBoolean(solids []Solid, op BooleanOp) Solid
	BatchHull(solids []Solid) Solid
	LevelSet(f func(x, y, z float64) float64, bounds Box, edgeLength, level float64) Solid
	Mesh(verts []Vec3, faces [][3]int) Solid
}
