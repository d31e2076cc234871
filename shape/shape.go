// Package shape wraps the external manifold-CSG collaborator (package
// manifold) with the keepout bookkeeping spec.md §3 attaches to every
// Shape: each CSG transform and combinator carries a parallel list of
// axis-aligned "do not route through" boxes through the same operation.
package shape

import (
	"math"

	"github.com/3D-Printing-for-Microfluidics/openmfd-go/manifold"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/palette"
)

// Shape is a manifold solid plus the metadata and keepouts spec.md §3
// attaches to it. The zero value is not usable; construct with one of
// the primitive constructors or a combinator.
type Shape struct {
	lib manifold.Library

	Object   manifold.Solid
	Keepouts []manifold.Box

	// Name, Color and Label are metadata carried for bookkeeping by the
	// owning component; Copy only preserves them when asked (see the
	// internal flag on the teacher's Python copy()).
	Name  string
	Color *palette.Color
	Label string
}

// wrap builds a Shape around an already-constructed solid, seeding its
// keepout list with the solid's own bounding box — every primitive
// constructor ends by doing exactly this.
func wrap(lib manifold.Library, obj manifold.Solid) *Shape {
	return &Shape{lib: lib, Object: obj, Keepouts: []manifold.Box{obj.BoundingBox()}}
}

// BoundingBox returns the underlying solid's bounding box.
func (s *Shape) BoundingBox() manifold.Box { return s.Object.BoundingBox() }

// Translate shifts the solid and every keepout by v.
func (s *Shape) Translate(v manifold.Vec3) *Shape {
	return &Shape{
		lib:      s.lib,
		Object:   s.Object.Translate(v),
		Keepouts: translateKeepouts(s.Keepouts, v),
		Name:     s.Name, Color: s.Color, Label: s.Label,
	}
}

func translateKeepouts(boxes []manifold.Box, v manifold.Vec3) []manifold.Box {
	out := make([]manifold.Box, len(boxes))
	for i, b := range boxes {
		out[i] = manifold.Box{
			Min: manifold.Vec3{X: b.Min.X + v.X, Y: b.Min.Y + v.Y, Z: b.Min.Z + v.Z},
			Max: manifold.Vec3{X: b.Max.X + v.X, Y: b.Max.Y + v.Y, Z: b.Max.Z + v.Z},
		}
	}
	return out
}

// Rotate applies an intrinsic X, then Y, then Z rotation in degrees to
// the solid, and takes the AABB of each keepout's 8 rotated corners.
func (s *Shape) Rotate(degreesXYZ manifold.Vec3) *Shape {
	return &Shape{
		lib:      s.lib,
		Object:   s.Object.Rotate(degreesXYZ),
		Keepouts: rotateKeepouts(s.Keepouts, degreesXYZ),
		Name:     s.Name, Color: s.Color, Label: s.Label,
	}
}

func rotateKeepouts(boxes []manifold.Box, degreesXYZ manifold.Vec3) []manifold.Box {
	rx := degreesXYZ.X * math.Pi / 180
	ry := degreesXYZ.Y * math.Pi / 180
	rz := degreesXYZ.Z * math.Pi / 180
	out := make([]manifold.Box, len(boxes))
	for i, b := range boxes {
		corners := [8]manifold.Vec3{
			{X: b.Min.X, Y: b.Min.Y, Z: b.Min.Z}, {X: b.Max.X, Y: b.Min.Y, Z: b.Min.Z},
			{X: b.Min.X, Y: b.Max.Y, Z: b.Min.Z}, {X: b.Max.X, Y: b.Max.Y, Z: b.Min.Z},
			{X: b.Min.X, Y: b.Min.Y, Z: b.Max.Z}, {X: b.Max.X, Y: b.Min.Y, Z: b.Max.Z},
			{X: b.Min.X, Y: b.Max.Y, Z: b.Max.Z}, {X: b.Max.X, Y: b.Max.Y, Z: b.Max.Z},
		}
		rb := manifold.Box{}
		for j, c := range corners {
			p := rotatePoint(c, rx, ry, rz)
			if j == 0 {
				rb.Min, rb.Max = p, p
				continue
			}
			rb.Min.X, rb.Max.X = math.Min(rb.Min.X, p.X), math.Max(rb.Max.X, p.X)
			rb.Min.Y, rb.Max.Y = math.Min(rb.Min.Y, p.Y), math.Max(rb.Max.Y, p.Y)
			rb.Min.Z, rb.Max.Z = math.Min(rb.Min.Z, p.Z), math.Max(rb.Max.Z, p.Z)
		}
		out[i] = rb
	}
	return out
}

// rotatePoint applies intrinsic X, then Y, then Z rotation (radians),
// matching original_source/backend/manifold3d.py's _rotate_point.
func rotatePoint(p manifold.Vec3, rx, ry, rz float64) manifold.Vec3 {
	cx, sx := math.Cos(rx), math.Sin(rx)
	p = manifold.Vec3{X: p.X, Y: p.Y*cx - p.Z*sx, Z: p.Y*sx + p.Z*cx}
	cy, sy := math.Cos(ry), math.Sin(ry)
	p = manifold.Vec3{X: p.X*cy + p.Z*sy, Y: p.Y, Z: -p.X*sy + p.Z*cy}
	cz, sz := math.Cos(rz), math.Sin(rz)
	return manifold.Vec3{X: p.X*cz - p.Y*sz, Y: p.X*sz + p.Y*cz, Z: p.Z}
}

// Resize scales the solid so its current bounding box maps onto target,
// computing the per-axis scale factor from the current AABB extent (a
// zero or negative current extent clamps to 1e-4 to avoid a singular
// scale, matching the primitive constructors' zero-extent clamp).
func (s *Shape) Resize(target manifold.Vec3) *Shape {
	b := s.Object.BoundingBox()
	factor := func(cur, want float64) float64 {
		if cur <= 1e-9 {
			cur = 1e-4
		}
		return want / cur
	}
	scale := manifold.Vec3{
		X: factor(b.Max.X-b.Min.X, target.X),
		Y: factor(b.Max.Y-b.Min.Y, target.Y),
		Z: factor(b.Max.Z-b.Min.Z, target.Z),
	}
	return s.scale(scale)
}

func (s *Shape) scale(f manifold.Vec3) *Shape {
	return &Shape{
		lib:      s.lib,
		Object:   s.Object.Scale(f),
		Keepouts: scaleKeepouts(s.Keepouts, f),
		Name:     s.Name, Color: s.Color, Label: s.Label,
	}
}

func scaleKeepouts(boxes []manifold.Box, f manifold.Vec3) []manifold.Box {
	out := make([]manifold.Box, len(boxes))
	for i, b := range boxes {
		out[i] = manifold.Box{
			Min: manifold.Vec3{X: b.Min.X * f.X, Y: b.Min.Y * f.Y, Z: b.Min.Z * f.Z},
			Max: manifold.Vec3{X: b.Max.X * f.X, Y: b.Max.Y * f.Y, Z: b.Max.Z * f.Z},
		}
	}
	return sortCorners(out)
}

// Mirror negates the solid along each flagged axis and re-sorts the
// keepout min/max on that axis (a negative scale flips which corner is
// the minimum), matching _mirror_keepouts's sort-after-negate pattern.
func (s *Shape) Mirror(x, y, z bool) *Shape {
	f := manifold.Vec3{X: 1, Y: 1, Z: 1}
	if x {
		f.X = -1
	}
	if y {
		f.Y = -1
	}
	if z {
		f.Z = -1
	}
	axis := [3]bool{x, y, z}
	return &Shape{
		lib:      s.lib,
		Object:   s.Object.Mirror(axis),
		Keepouts: scaleKeepouts(s.Keepouts, f),
		Name:     s.Name, Color: s.Color, Label: s.Label,
	}
}

// sortCorners fixes up Min/Max ordering per axis after a signed scale.
func sortCorners(boxes []manifold.Box) []manifold.Box {
	out := make([]manifold.Box, len(boxes))
	for i, b := range boxes {
		if b.Min.X > b.Max.X {
			b.Min.X, b.Max.X = b.Max.X, b.Min.X
		}
		if b.Min.Y > b.Max.Y {
			b.Min.Y, b.Max.Y = b.Max.Y, b.Min.Y
		}
		if b.Min.Z > b.Max.Z {
			b.Min.Z, b.Max.Z = b.Max.Z, b.Min.Z
		}
		out[i] = b
	}
	return out
}

// Union ("+") combines two shapes: the solids are unioned and both
// keepout lists are concatenated.
func (s *Shape) Union(other *Shape) *Shape {
	combined := s.lib.BatchBoolean([]manifold.Solid{s.Object, other.Object}, manifold.OpAdd)
	return &Shape{
		lib:      s.lib,
		Object:   combined,
		Keepouts: append(append([]manifold.Box{}, s.Keepouts...), other.Keepouts...),
	}
}

// Subtract ("-") removes other from s; only s's own keepouts survive,
// matching the teacher source's "difference, keeps self keepouts".
func (s *Shape) Subtract(other *Shape) *Shape {
	combined := s.lib.BatchBoolean([]manifold.Solid{s.Object, other.Object}, manifold.OpSubtract)
	return &Shape{
		lib:      s.lib,
		Object:   combined,
		Keepouts: append([]manifold.Box{}, s.Keepouts...),
	}
}

// Intersect ("&") keeps the overlap of the two solids, and pairwise
// intersects every keepout in s against every keepout in other,
// discarding empty results.
func (s *Shape) Intersect(other *Shape) *Shape {
	combined := s.lib.BatchBoolean([]manifold.Solid{s.Object, other.Object}, manifold.OpIntersect)
	var keepouts []manifold.Box
	for _, a := range s.Keepouts {
		for _, b := range other.Keepouts {
			ib := manifold.Box{
				Min: manifold.Vec3{X: math.Max(a.Min.X, b.Min.X), Y: math.Max(a.Min.Y, b.Min.Y), Z: math.Max(a.Min.Z, b.Min.Z)},
				Max: manifold.Vec3{X: math.Min(a.Max.X, b.Max.X), Y: math.Min(a.Max.Y, b.Max.Y), Z: math.Min(a.Max.Z, b.Max.Z)},
			}
			if !ib.Empty() {
				keepouts = append(keepouts, ib)
			}
		}
	}
	return &Shape{lib: s.lib, Object: combined, Keepouts: keepouts}
}

// Hull batch-hulls the two solids and appends both keepout lists plus
// a bridging box spanning the full min/max of both shapes' bounding
// boxes on every axis. The teacher's _bridge construction picks a
// "separation axis" but its two branches compute an identical bridge
// box regardless of which axis is chosen, so the axis selection has no
// observable effect; this reproduces that behaviour directly as an
// unconditional full-span bridge box.
func (s *Shape) Hull(other *Shape) *Shape {
	hulled := s.lib.BatchHull([]manifold.Solid{s.Object, other.Object})
	bridge := bridgeBox(s.Object.BoundingBox(), other.Object.BoundingBox())
	keepouts := append(append([]manifold.Box{}, s.Keepouts...), other.Keepouts...)
	keepouts = append(keepouts, bridge)
	return &Shape{lib: s.lib, Object: hulled, Keepouts: keepouts}
}

func bridgeBox(a, b manifold.Box) manifold.Box {
	return manifold.Box{
		Min: manifold.Vec3{X: math.Min(a.Min.X, b.Min.X), Y: math.Min(a.Min.Y, b.Min.Y), Z: math.Min(a.Min.Z, b.Min.Z)},
		Max: manifold.Vec3{X: math.Max(a.Max.X, b.Max.X), Y: math.Max(a.Max.Y, b.Max.Y), Z: math.Max(a.Max.Z, b.Max.Z)},
	}
}

// Copy deep-copies the solid (by round-tripping through a mesh) and the
// keepout list. When preserveMetadata is true, Name/Color/Label are
// also copied, matching the teacher's "_internal" copy flag.
func (s *Shape) Copy(preserveMetadata bool) *Shape {
	mesh := s.Object.ToMesh()
	out := &Shape{
		lib:      s.lib,
		Object:   s.lib.Mesh(mesh.Verts, mesh.Faces),
		Keepouts: append([]manifold.Box{}, s.Keepouts...),
	}
	if preserveMetadata {
		out.Name, out.Color, out.Label = s.Name, s.Color, s.Label
	}
	return out
}
