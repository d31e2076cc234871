package manifold

import "testing"

func TestCubeBoundingBox(t *testing.T) {
	lib := New()
	s := lib.Cube(Vec3{10, 20, 30}, true)
	b := s.BoundingBox()
	if b.Min.X != -5 || b.Max.X != 5 {
		t.Errorf("Cube bbox X = [%v, %v], want [-5, 5]", b.Min.X, b.Max.X)
	}
	if b.Min.Z != -15 || b.Max.Z != 15 {
		t.Errorf("Cube bbox Z = [%v, %v], want [-15, 15]", b.Min.Z, b.Max.Z)
	}
}

func TestCubeTranslate(t *testing.T) {
	lib := New()
	s := lib.Cube(Vec3{2, 2, 2}, false).Translate(Vec3{10, 0, 0})
	b := s.BoundingBox()
	if b.Min.X != 10 || b.Max.X != 12 {
		t.Errorf("Translate bbox X = [%v, %v], want [10, 12]", b.Min.X, b.Max.X)
	}
}

func TestUnionBoundingBox(t *testing.T) {
	lib := New()
	a := lib.Cube(Vec3{2, 2, 2}, false)
	b := lib.Cube(Vec3{2, 2, 2}, false).Translate(Vec3{10, 0, 0})
	u := lib.BatchBoolean([]Solid{a, b}, OpAdd)
	bb := u.BoundingBox()
	if bb.Min.X != 0 || bb.Max.X != 12 {
		t.Errorf("Union bbox X = [%v, %v], want [0, 12]", bb.Min.X, bb.Max.X)
	}
}

func TestSliceCube(t *testing.T) {
	lib := New()
	s := lib.Cube(Vec3{10, 10, 10}, true)
	polys := s.Slice(0)
	if len(polys) == 0 {
		t.Fatal("Slice(0) on a centered cube produced no polygons")
	}
	for _, p := range polys {
		if len(p.Points) < 3 {
			t.Errorf("slice polygon has only %d points", len(p.Points))
		}
	}
}

func TestSliceOutsideBounds(t *testing.T) {
	lib := New()
	s := lib.Cube(Vec3{10, 10, 10}, true)
	if polys := s.Slice(100); len(polys) != 0 {
		t.Errorf("Slice(100) outside the cube returned %d polygons, want 0", len(polys))
	}
}

func TestBatchHullContainsInputs(t *testing.T) {
	lib := New()
	a := lib.Sphere(5, 12)
	b := lib.Sphere(5, 12).Translate(Vec3{20, 0, 0})
	h := lib.BatchHull([]Solid{a, b})
	bb := h.BoundingBox()
	if bb.Max.X < 24 || bb.Min.X > -4 {
		t.Errorf("hull bbox X = [%v, %v], want to cover roughly [-5, 25]", bb.Min.X, bb.Max.X)
	}
}

func TestCircularSegmentsTunable(t *testing.T) {
	old := CircularSegments()
	defer SetCircularSegments(old)

	SetCircularSegments(8)
	if got := CircularSegments(); got != 8 {
		t.Errorf("CircularSegments() = %d, want 8", got)
	}
}
