package manifold

import "math"

// meshSolid is the reference Solid implementation: an explicit triangle
// mesh plus a cached bounding box. Boolean combinators are intentionally
// conservative (see BatchBoolean) — shape.Shape tracks keepouts through
// its own AABB bookkeeping independent of the underlying solid's true
// geometry (spec.md §3: "Keepouts are carried through transforms in
// parallel with the solid"), so MeshLibrary does not need watertight CSG
// to support the rest of this module.
type meshSolid struct {
	verts []Vec3
	faces [][3]int
	bbox  Box
}

func newMeshSolid(verts []Vec3, faces [][3]int) *meshSolid {
	return &meshSolid{verts: verts, faces: faces, bbox: boundsOf(verts)}
}

func boundsOf(verts []Vec3) Box {
	if len(verts) == 0 {
		return Box{}
	}
	b := Box{Min: verts[0], Max: verts[0]}
	for _, v := range verts[1:] {
		b.Min.X, b.Max.X = math.Min(b.Min.X, v.X), math.Max(b.Max.X, v.X)
		b.Min.Y, b.Max.Y = math.Min(b.Min.Y, v.Y), math.Max(b.Max.Y, v.Y)
		b.Min.Z, b.Max.Z = math.Min(b.Min.Z, v.Z), math.Max(b.Max.Z, v.Z)
	}
	return b
}

func (m *meshSolid) BoundingBox() Box { return m.bbox }

func (m *meshSolid) Translate(v Vec3) Solid {
	out := make([]Vec3, len(m.verts))
	for i, p := range m.verts {
		out[i] = add(p, v)
	}
	return newMeshSolid(out, m.faces)
}

func (m *meshSolid) Scale(s Vec3) Solid {
	out := make([]Vec3, len(m.verts))
	for i, p := range m.verts {
		out[i] = Vec3{p.X * s.X, p.Y * s.Y, p.Z * s.Z}
	}
	return newMeshSolid(out, m.faces)
}

func (m *meshSolid) Mirror(axis [3]bool) Solid {
	s := Vec3{1, 1, 1}
	if axis[0] {
		s.X = -1
	}
	if axis[1] {
		s.Y = -1
	}
	if axis[2] {
		s.Z = -1
	}
	return m.Scale(s)
}

// Rotate applies intrinsic X, then Y, then Z rotation (degrees), matching
// the order original_source/backend/manifold3d.py's _rotate_point uses.
func (m *meshSolid) Rotate(degreesXYZ Vec3) Solid {
	rx := degreesXYZ.X * math.Pi / 180
	ry := degreesXYZ.Y * math.Pi / 180
	rz := degreesXYZ.Z * math.Pi / 180
	out := make([]Vec3, len(m.verts))
	for i, p := range m.verts {
		out[i] = rotateZ(rotateY(rotateX(p, rx), ry), rz)
	}
	return newMeshSolid(out, m.faces)
}

func rotateX(p Vec3, a float64) Vec3 {
	c, s := math.Cos(a), math.Sin(a)
	return Vec3{p.X, p.Y*c - p.Z*s, p.Y*s + p.Z*c}
}

func rotateY(p Vec3, a float64) Vec3 {
	c, s := math.Cos(a), math.Sin(a)
	return Vec3{p.X*c + p.Z*s, p.Y, -p.X*s + p.Z*c}
}

func rotateZ(p Vec3, a float64) Vec3 {
	c, s := math.Cos(a), math.Sin(a)
	return Vec3{p.X*c - p.Y*s, p.X*s + p.Y*c, p.Z}
}

func (m *meshSolid) ToMesh() Mesh {
	return Mesh{Verts: append([]Vec3(nil), m.verts...), Faces: append([][3]int(nil), m.faces...)}
}

// Slice intersects every triangle of the mesh against the z plane,
// collects the resulting line segments, and stitches them end-to-end
// into closed polygons. Standard triangle-mesh planar slicing; new
// domain code with no direct teacher analogue (grounded on spec.md §4.5's
// description of the slicing step itself).
func (m *meshSolid) Slice(z float64) []Polygon {
	type segment struct{ a, b Vec3 }
	var segs []segment

	for _, f := range m.faces {
		v0, v1, v2 := m.verts[f[0]], m.verts[f[1]], m.verts[f[2]]
		pts := trianglePlaneIntersection(v0, v1, v2, z)
		if len(pts) == 2 {
			segs = append(segs, segment{pts[0], pts[1]})
		}
	}
	if len(segs) == 0 {
		return nil
	}

	const eps = 1e-6
	eq := func(a, b Vec3) bool {
		return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
	}

	used := make([]bool, len(segs))
	var polys []Polygon
	for start := range segs {
		if used[start] {
			continue
		}
		used[start] = true
		loop := []Vec3{segs[start].a, segs[start].b}
		for {
			tail := loop[len(loop)-1]
			if eq(tail, loop[0]) && len(loop) > 2 {
				break
			}
			found := false
			for i, s := range segs {
				if used[i] {
					continue
				}
				switch {
				case eq(s.a, tail):
					loop = append(loop, s.b)
					used[i] = true
					found = true
				case eq(s.b, tail):
					loop = append(loop, s.a)
					used[i] = true
					found = true
				}
				if found {
					break
				}
			}
			if !found {
				break
			}
		}
		polys = append(polys, Polygon{Points: loop})
	}
	return polys
}

// trianglePlaneIntersection returns the 0 or 2 points where triangle
// (v0,v1,v2) crosses the z plane.
func trianglePlaneIntersection(v0, v1, v2 Vec3, z float64) []Vec3 {
	edges := [3][2]Vec3{{v0, v1}, {v1, v2}, {v2, v0}}
	var pts []Vec3
	for _, e := range edges {
		a, b := e[0], e[1]
		da, db := a.Z-z, b.Z-z
		if (da <= 0 && db > 0) || (da > 0 && db <= 0) {
			t := da / (da - db)
			pts = append(pts, Vec3{
				X: a.X + t*(b.X-a.X),
				Y: a.Y + t*(b.Y-a.Y),
				Z: z,
			})
		}
	}
	if len(pts) > 2 {
		pts = pts[:2]
	}
	return pts
}

// meshLibrary is the reference Library implementation.
type meshLibrary struct{}

// New returns the reference pure-Go manifold Library.
func New() Library { return meshLibrary{} }

func (meshLibrary) Cube(size Vec3, center bool) Solid {
	hx, hy, hz := size.X, size.Y, size.Z
	var ox, oy, oz float64
	if center {
		ox, oy, oz = -hx/2, -hy/2, -hz/2
	}
	verts := []Vec3{
		{ox, oy, oz}, {ox + hx, oy, oz}, {ox + hx, oy + hy, oz}, {ox, oy + hy, oz},
		{ox, oy, oz + hz}, {ox + hx, oy, oz + hz}, {ox + hx, oy + hy, oz + hz}, {ox, oy + hy, oz + hz},
	}
	faces := [][3]int{
		{0, 2, 1}, {0, 3, 2}, // bottom
		{4, 5, 6}, {4, 6, 7}, // top
		{0, 1, 5}, {0, 5, 4}, // front
		{1, 2, 6}, {1, 6, 5}, // right
		{2, 3, 7}, {2, 7, 6}, // back
		{3, 0, 4}, {3, 4, 7}, // left
	}
	return newMeshSolid(verts, faces)
}

func (meshLibrary) Sphere(radius float64, segments int) Solid {
	if segments < 3 {
		segments = CircularSegments()
	}
	return sphereMesh(radius, radius, radius, segments)
}

func sphereMesh(rx, ry, rz float64, segments int) Solid {
	lat := segments / 2
	if lat < 2 {
		lat = 2
	}
	lon := segments
	if lon < 3 {
		lon = 3
	}
	var verts []Vec3
	for i := 0; i <= lat; i++ {
		theta := math.Pi * float64(i) / float64(lat)
		for j := 0; j < lon; j++ {
			phi := 2 * math.Pi * float64(j) / float64(lon)
			verts = append(verts, Vec3{
				X: rx * math.Sin(theta) * math.Cos(phi),
				Y: ry * math.Sin(theta) * math.Sin(phi),
				Z: rz * math.Cos(theta),
			})
		}
	}
	var faces [][3]int
	for i := 0; i < lat; i++ {
		for j := 0; j < lon; j++ {
			jn := (j + 1) % lon
			a := i*lon + j
			b := i*lon + jn
			c := (i+1)*lon + j
			d := (i+1)*lon + jn
			faces = append(faces, [3]int{a, c, b}, [3]int{b, c, d})
		}
	}
	return newMeshSolid(verts, faces)
}

func (meshLibrary) Cylinder(height, rLow, rHigh float64, segments int, center bool) Solid {
	if segments < 3 {
		segments = CircularSegments()
	}
	z0, z1 := 0.0, height
	if center {
		z0, z1 = -height/2, height/2
	}
	verts := make([]Vec3, 0, 2*segments)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		verts = append(verts, Vec3{rLow * math.Cos(a), rLow * math.Sin(a), z0})
	}
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		verts = append(verts, Vec3{rHigh * math.Cos(a), rHigh * math.Sin(a), z1})
	}
	var faces [][3]int
	for i := 0; i < segments; i++ {
		ni := (i + 1) % segments
		faces = append(faces,
			[3]int{i, ni, segments + ni},
			[3]int{i, segments + ni, segments + i},
		)
	}
	// Caps, fan from the first vertex of each ring.
	for i := 1; i < segments-1; i++ {
		faces = append(faces, [3]int{0, i + 1, i})
		faces = append(faces, [3]int{segments, segments + i, segments + i + 1})
	}
	return newMeshSolid(verts, faces)
}

// BatchBoolean is the conservative reference combinator: OpAdd
// concatenates the meshes, OpIntersect keeps the first solid only if all
// the bounding boxes share a common overlap (else an empty solid), and OpSubtract
// returns the minuend unchanged.
func (meshLibrary) BatchBoolean(solids []Solid, op BooleanOp) Solid {
	if len(solids) == 0 {
		return newMeshSolid(nil, nil)
	}
	if len(solids) == 1 {
		return solids[0]
	}
	switch op {
	case OpAdd:
		return unionMeshes(solids)
	case OpIntersect:
		return intersectBounds(solids)
	default: // OpSubtract: conservative, keeps the minuend (see doc comment).
		return solids[0]
	}
}

func unionMeshes(solids []Solid) Solid {
	var verts []Vec3
	var faces [][3]int
	offset := 0
	for _, s := range solids {
		m := s.ToMesh()
		verts = append(verts, m.Verts...)
		for _, f := range m.Faces {
			faces = append(faces, [3]int{f[0] + offset, f[1] + offset, f[2] + offset})
		}
		offset += len(m.Verts)
	}
	return newMeshSolid(verts, faces)
}

// intersectBounds approximates an intersection by clipping the first
// solid's bounding box against the others' and keeping the first solid's
// mesh only if the intersection is non-empty; see BatchBoolean doc.
func intersectBounds(solids []Solid) Solid {
	b := solids[0].BoundingBox()
	for _, s := range solids[1:] {
		o := s.BoundingBox()
		b = Box{
			Min: Vec3{math.Max(b.Min.X, o.Min.X), math.Max(b.Min.Y, o.Min.Y), math.Max(b.Min.Z, o.Min.Z)},
			Max: Vec3{math.Min(b.Max.X, o.Max.X), math.Min(b.Max.Y, o.Max.Y), math.Min(b.Max.Z, o.Max.Z)},
		}
	}
	if b.Empty() {
		return newMeshSolid(nil, nil)
	}
	return solids[0]
}

func (meshLibrary) BatchHull(solids []Solid) Solid {
	var pts []Vec3
	for _, s := range solids {
		pts = append(pts, s.ToMesh().Verts...)
	}
	mesh := convexHull3D(pts)
	return newMeshSolid(mesh.Verts, mesh.Faces)
}

func (meshLibrary) LevelSet(f func(x, y, z float64) float64, bounds Box, edgeLength, level float64) Solid {
	return levelSetMesh(f, bounds, edgeLength, level)
}

func (meshLibrary) Mesh(verts []Vec3, faces [][3]int) Solid {
	return newMeshSolid(verts, faces)
}
