package manifold

import "math"

// convexHullFace is a triangle of the evolving hull, with an outward
// normal cached for the visibility test.
type convexHullFace struct {
	a, b, c int
	normal  Vec3
}

func sub(a, b Vec3) Vec3 { return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z} }
func add(a, b Vec3) Vec3 { return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z} }
func scaleV(a Vec3, s float64) Vec3 { return Vec3{a.X * s, a.Y * s, a.Z * s} }
func cross(a, b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}
func dot(a, b Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func norm(a Vec3) float64   { return math.Sqrt(dot(a, a)) }

func faceNormal(pts []Vec3, f convexHullFace) Vec3 {
	n := cross(sub(pts[f.b], pts[f.a]), sub(pts[f.c], pts[f.a]))
	if l := norm(n); l > 1e-12 {
		return scaleV(n, 1/l)
	}
	return n
}

// convexHull3D computes the 3D convex hull of points using an incremental
// algorithm (start from a non-degenerate tetrahedron, then repeatedly
// absorb the next point by removing every face it is outside of and
// stitching the resulting horizon back together through it). Degenerate
// inputs (fewer than 4 distinct, non-coplanar points) fall back to
// returning the point cloud as a degenerate "mesh" with no faces, which
// Slice/ToMesh callers treat as an empty solid.
//
// This is new geometry code with no direct teacher analogue (the teacher
// has no 3D CSG); it backs Shape.hull and RoundedCube's "convex hull of
// eight scaled spheres" construction from spec.md §3/§4.1.
func convexHull3D(points []Vec3) Mesh {
	pts := dedupe(points)
	if len(pts) < 4 {
		return Mesh{Verts: pts}
	}

	tet, ok := findInitialTetrahedron(pts)
	if !ok {
		return Mesh{Verts: pts}
	}

	faces := initialFaces(pts, tet)

	for i, p := range pts {
		if i == tet[0] || i == tet[1] || i == tet[2] || i == tet[3] {
			continue
		}
		faces = absorbPoint(pts, faces, i, p)
	}

	return Mesh{Verts: pts, Faces: facesToTriples(faces)}
}

func dedupe(points []Vec3) []Vec3 {
	out := make([]Vec3, 0, len(points))
	for _, p := range points {
		dup := false
		for _, q := range out {
			if math.Abs(p.X-q.X) < 1e-9 && math.Abs(p.Y-q.Y) < 1e-9 && math.Abs(p.Z-q.Z) < 1e-9 {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}

func findInitialTetrahedron(pts []Vec3) ([4]int, bool) {
	n := len(pts)
	// Pick the two farthest-apart points as a seed edge.
	bi, bj, best := 0, 1, -1.0
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := norm(sub(pts[i], pts[j]))
			if d > best {
				best, bi, bj = d, i, j
			}
		}
	}
	// Third point farthest from the line (i,j).
	bk, bestArea := -1, -1.0
	for k := 0; k < n; k++ {
		if k == bi || k == bj {
			continue
		}
		area := norm(cross(sub(pts[bj], pts[bi]), sub(pts[k], pts[bi])))
		if area > bestArea {
			bestArea, bk = area, k
		}
	}
	if bk < 0 || bestArea < 1e-12 {
		return [4]int{}, false
	}
	// Fourth point farthest from the plane (i,j,k).
	planeN := cross(sub(pts[bj], pts[bi]), sub(pts[bk], pts[bi]))
	bl, bestVol := -1, -1.0
	for l := 0; l < n; l++ {
		if l == bi || l == bj || l == bk {
			continue
		}
		vol := math.Abs(dot(planeN, sub(pts[l], pts[bi])))
		if vol > bestVol {
			bestVol, bl = vol, l
		}
	}
	if bl < 0 || bestVol < 1e-12 {
		return [4]int{}, false
	}
	return [4]int{bi, bj, bk, bl}, true
}

func initialFaces(pts []Vec3, tet [4]int) []convexHullFace {
	centroid := scaleV(add(add(pts[tet[0]], pts[tet[1]]), add(pts[tet[2]], pts[tet[3]])), 0.25)
	combos := [][3]int{
		{tet[0], tet[1], tet[2]},
		{tet[0], tet[1], tet[3]},
		{tet[0], tet[2], tet[3]},
		{tet[1], tet[2], tet[3]},
	}
	faces := make([]convexHullFace, 0, 4)
	for _, c := range combos {
		f := convexHullFace{a: c[0], b: c[1], c: c[2]}
		f.normal = faceNormal(pts, f)
		// Orient outward: the face normal must point away from the centroid.
		if dot(f.normal, sub(pts[f.a], centroid)) < 0 {
			f.a, f.b = f.b, f.a
			f.normal = faceNormal(pts, f)
		}
		faces = append(faces, f)
	}
	return faces
}

func absorbPoint(pts []Vec3, faces []convexHullFace, idx int, p Vec3) []convexHullFace {
	visible := make([]bool, len(faces))
	anyVisible := false
	for i, f := range faces {
		if dot(f.normal, sub(p, pts[f.a])) > 1e-9 {
			visible[i] = true
			anyVisible = true
		}
	}
	if !anyVisible {
		return faces
	}

	type edge struct{ u, v int }
	edgeCount := make(map[edge]int)
	addEdge := func(u, v int) {
		edgeCount[edge{u, v}]++
	}
	kept := make([]convexHullFace, 0, len(faces))
	for i, f := range faces {
		if visible[i] {
			addEdge(f.a, f.b)
			addEdge(f.b, f.c)
			addEdge(f.c, f.a)
			continue
		}
		kept = append(kept, f)
	}

	// Horizon edges are those that bordered exactly one removed face and
	// are not shared with another removed face in the opposite direction.
	for e, cnt := range edgeCount {
		rev := edge{e.v, e.u}
		if _, revRemoved := edgeCount[rev]; revRemoved {
			continue // interior edge between two removed faces
		}
		if cnt == 0 {
			continue
		}
		nf := convexHullFace{a: e.u, b: e.v, c: idx}
		nf.normal = faceNormal(pts, nf)
		kept = append(kept, nf)
	}
	return kept
}

func facesToTriples(faces []convexHullFace) [][3]int {
	out := make([][3]int, len(faces))
	for i, f := range faces {
		out[i] = [3]int{f.a, f.b, f.c}
	}
	return out
}
