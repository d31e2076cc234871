package manifold

import "math"

// levelSetMesh samples f over a regular grid spanning bounds at the given
// edge length and emits a voxel surface mesh of cells where f < level,
// producing exposed faces only. This is a coarse voxel approximation of
// level-set meshing (not marching cubes); TPMS().Resize smooths the
// visible stair-stepping to the degree the target pixel grid allows, and
// the rest of the pipeline (keepouts, slicing) only needs a plausible
// bounding volume, which voxelization gives directly — documented as a
// reference-implementation simplification, not a claim of faithful
// minimal-surface geometry.
func levelSetMesh(f func(x, y, z float64) float64, bounds Box, edgeLength, level float64) Solid {
	if edgeLength <= 0 {
		edgeLength = 1
	}
	nx := int(math.Ceil((bounds.Max.X - bounds.Min.X) / edgeLength))
	ny := int(math.Ceil((bounds.Max.Y - bounds.Min.Y) / edgeLength))
	nz := int(math.Ceil((bounds.Max.Z - bounds.Min.Z) / edgeLength))
	if nx < 1 || ny < 1 || nz < 1 {
		return newMeshSolid(nil, nil)
	}

	inside := func(ix, iy, iz int) bool {
		if ix < 0 || iy < 0 || iz < 0 || ix >= nx || iy >= ny || iz >= nz {
			return false
		}
		x := bounds.Min.X + (float64(ix)+0.5)*edgeLength
		y := bounds.Min.Y + (float64(iy)+0.5)*edgeLength
		z := bounds.Min.Z + (float64(iz)+0.5)*edgeLength
		return f(x, y, z) < level
	}

	var verts []Vec3
	var faces [][3]int
	addQuad := func(a, b, c, d Vec3) {
		base := len(verts)
		verts = append(verts, a, b, c, d)
		faces = append(faces, [3]int{base, base + 1, base + 2}, [3]int{base, base + 2, base + 3})
	}

	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny; iy++ {
			for iz := 0; iz < nz; iz++ {
				if !inside(ix, iy, iz) {
					continue
				}
				x0 := bounds.Min.X + float64(ix)*edgeLength
				y0 := bounds.Min.Y + float64(iy)*edgeLength
				z0 := bounds.Min.Z + float64(iz)*edgeLength
				x1, y1, z1 := x0+edgeLength, y0+edgeLength, z0+edgeLength

				if !inside(ix, iy, iz-1) { // -Z face
					addQuad(Vec3{x0, y1, z0}, Vec3{x1, y1, z0}, Vec3{x1, y0, z0}, Vec3{x0, y0, z0})
				}
				if !inside(ix, iy, iz+1) { // +Z face
					addQuad(Vec3{x0, y0, z1}, Vec3{x1, y0, z1}, Vec3{x1, y1, z1}, Vec3{x0, y1, z1})
				}
				if !inside(ix, iy-1, iz) { // -Y face
					addQuad(Vec3{x0, y0, z0}, Vec3{x1, y0, z0}, Vec3{x1, y0, z1}, Vec3{x0, y0, z1})
				}
				if !inside(ix, iy+1, iz) { // +Y face
					addQuad(Vec3{x1, y1, z0}, Vec3{x0, y1, z0}, Vec3{x0, y1, z1}, Vec3{x1, y1, z1})
				}
				if !inside(ix-1, iy, iz) { // -X face
					addQuad(Vec3{x0, y1, z0}, Vec3{x0, y0, z0}, Vec3{x0, y0, z1}, Vec3{x0, y1, z1})
				}
				if !inside(ix+1, iy, iz) { // +X face
					addQuad(Vec3{x1, y0, z0}, Vec3{x1, y1, z0}, Vec3{x1, y1, z1}, Vec3{x1, y0, z1})
				}
			}
		}
	}
	return newMeshSolid(verts, faces)
}

// Gyroid is the classic gyroid TPMS implicit function.
func Gyroid(x, y, z float64) float64 {
	return math.Sin(x)*math.Cos(y) + math.Sin(y)*math.Cos(z) + math.Sin(z)*math.Cos(x)
}

// Diamond is the classic Schwarz-diamond TPMS implicit function.
func Diamond(x, y, z float64) float64 {
	return math.Sin(x)*math.Sin(y)*math.Sin(z) +
		math.Sin(x)*math.Cos(y)*math.Cos(z) +
		math.Cos(x)*math.Sin(y)*math.Cos(z) +
		math.Cos(x)*math.Cos(y)*math.Sin(z)
}
