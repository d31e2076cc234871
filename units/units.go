// Package units defines the integer pixel/layer lattice that all geometry
// in openmfd is authored in, and the rounded mm conversions between a
// component's unit system and its parent's.
package units

import "math"

// Point3 is an integer point in pixel (X, Y) / layer (Z) space.
type Point3 struct {
	X, Y, Z int
}

// Pt3 constructs a Point3.
func Pt3(x, y, z int) Point3 { return Point3{X: x, Y: y, Z: z} }

// Add returns the component-wise sum of p and o.
func (p Point3) Add(o Point3) Point3 {
	return Point3{p.X + o.X, p.Y + o.Y, p.Z + o.Z}
}

// Sub returns the component-wise difference p - o.
func (p Point3) Sub(o Point3) Point3 {
	return Point3{p.X - o.X, p.Y - o.Y, p.Z - o.Z}
}

// Manhattan returns the L1 distance between p and o.
func (p Point3) Manhattan(o Point3) int {
	return absInt(p.X-o.X) + absInt(p.Y-o.Y) + absInt(p.Z-o.Z)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Axis identifies one of the three principal axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Get returns the coordinate of p along axis a.
func (p Point3) Get(a Axis) int {
	switch a {
	case AxisX:
		return p.X
	case AxisY:
		return p.Y
	default:
		return p.Z
	}
}

// With returns a copy of p with axis a set to v.
func (p Point3) With(a Axis, v int) Point3 {
	switch a {
	case AxisX:
		p.X = v
	case AxisY:
		p.Y = v
	default:
		p.Z = v
	}
	return p
}

// Box3 is an axis-aligned bounding box in pixel/layer space, half-open on
// no particular end: (X0,Y0,Z0) is the box's minimum corner and
// (X1,Y1,Z1) its maximum corner, with X1>=X0 etc. enforced by Normalize.
type Box3 struct {
	X0, Y0, Z0 float64
	X1, Y1, Z1 float64
}

// NewBox3 builds a box from two opposite corners, normalizing order.
func NewBox3(x0, y0, z0, x1, y1, z1 float64) Box3 {
	return Box3{x0, y0, z0, x1, y1, z1}.Normalize()
}

// Normalize returns a copy of b with min <= max on every axis.
func (b Box3) Normalize() Box3 {
	if b.X0 > b.X1 {
		b.X0, b.X1 = b.X1, b.X0
	}
	if b.Y0 > b.Y1 {
		b.Y0, b.Y1 = b.Y1, b.Y0
	}
	if b.Z0 > b.Z1 {
		b.Z0, b.Z1 = b.Z1, b.Z0
	}
	return b
}

// Empty reports whether b has zero or negative extent on any axis.
func (b Box3) Empty() bool {
	return b.X1 <= b.X0 || b.Y1 <= b.Y0 || b.Z1 <= b.Z0
}

// Center returns the midpoint of the box.
func (b Box3) Center() (x, y, z float64) {
	return (b.X0 + b.X1) / 2, (b.Y0 + b.Y1) / 2, (b.Z0 + b.Z1) / 2
}

// Size returns the extent of the box on each axis.
func (b Box3) Size() (dx, dy, dz float64) {
	return b.X1 - b.X0, b.Y1 - b.Y0, b.Z1 - b.Z0
}

// Union returns the smallest box containing both b and o.
func (b Box3) Union(o Box3) Box3 {
	return Box3{
		X0: math.Min(b.X0, o.X0), Y0: math.Min(b.Y0, o.Y0), Z0: math.Min(b.Z0, o.Z0),
		X1: math.Max(b.X1, o.X1), Y1: math.Max(b.Y1, o.Y1), Z1: math.Max(b.Z1, o.Z1),
	}
}

// Intersect returns the overlap between b and o, and whether one exists.
func (b Box3) Intersect(o Box3) (Box3, bool) {
	r := Box3{
		X0: math.Max(b.X0, o.X0), Y0: math.Max(b.Y0, o.Y0), Z0: math.Max(b.Z0, o.Z0),
		X1: math.Min(b.X1, o.X1), Y1: math.Min(b.Y1, o.Y1), Z1: math.Min(b.Z1, o.Z1),
	}
	if r.Empty() {
		return Box3{}, false
	}
	return r, true
}

// Intersects reports whether b and o overlap with non-zero volume.
func (b Box3) Intersects(o Box3) bool {
	_, ok := b.Intersect(o)
	return ok
}

// Contains reports whether o lies entirely within b.
func (b Box3) Contains(o Box3) bool {
	return o.X0 >= b.X0 && o.Y0 >= b.Y0 && o.Z0 >= b.Z0 &&
		o.X1 <= b.X1 && o.Y1 <= b.Y1 && o.Z1 <= b.Z1
}

// Shrink returns b inset by d on every face (used by the router's
// 1-pixel-shrunk validity check).
func (b Box3) Shrink(d float64) Box3 {
	return Box3{
		X0: b.X0 + d, Y0: b.Y0 + d, Z0: b.Z0 + d,
		X1: b.X1 - d, Y1: b.Y1 - d, Z1: b.Z1 - d,
	}
}

// Translate shifts b by (dx, dy, dz).
func (b Box3) Translate(dx, dy, dz float64) Box3 {
	return Box3{
		X0: b.X0 + dx, Y0: b.Y0 + dy, Z0: b.Z0 + dz,
		X1: b.X1 + dx, Y1: b.Y1 + dy, Z1: b.Z1 + dz,
	}
}

// Scale multiplies b's coordinates by (sx, sy, sz) about the origin.
func (b Box3) Scale(sx, sy, sz float64) Box3 {
	return Box3{
		X0: b.X0 * sx, Y0: b.Y0 * sy, Z0: b.Z0 * sz,
		X1: b.X1 * sx, Y1: b.Y1 * sy, Z1: b.Z1 * sz,
	}.Normalize()
}

// RoundTo3 rounds v to 3 decimal places, the precision spec.md mandates
// for unit conversions between a component and its parent.
func RoundTo3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Convert converts a measurement in child pixel/layer units into parent
// units given the two unit systems' mm-per-unit scalars, rounded to 3
// decimals as spec.md §3 requires.
func Convert(value, childUnitMM, parentUnitMM float64) float64 {
	if parentUnitMM == 0 {
		return 0
	}
	return RoundTo3(value * childUnitMM / parentUnitMM)
}
