package polychannel

import (
	"testing"

	"github.com/3D-Printing-for-Microfluidics/openmfd-go/manifold"
)

func cubeType() *ShapeType {
	t := Cube
	return &t
}

func vec(x, y, z float64) *manifold.Vec3 {
	v := manifold.Vec3{X: x, Y: y, Z: z}
	return &v
}

func f(v float64) *float64 { return &v }
func iv(v int) *int        { return &v }

func TestBuildTwoCubesHulled(t *testing.T) {
	lib := manifold.New()
	entries := []Entry{
		&SparseShape{ShapeType: cubeType(), Size: vec(4, 4, 4), Position: vec(0, 0, 0)},
		&SparseShape{Position: vec(20, 0, 0)},
	}
	s, err := Build(lib, entries, false, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := s.BoundingBox()
	if b.Max.X < 22 || b.Min.X > -2 {
		t.Errorf("bbox X = [%v, %v], want roughly [-2, 22]", b.Min.X, b.Max.X)
	}
}

func TestBuildTooShortFails(t *testing.T) {
	lib := manifold.New()
	entries := []Entry{
		&SparseShape{ShapeType: cubeType(), Size: vec(4, 4, 4)},
	}
	if _, err := Build(lib, entries, false, true); err != ErrPolychannelTooShort {
		t.Errorf("error = %v, want ErrPolychannelTooShort", err)
	}
}

func TestBuildBezierFirstFails(t *testing.T) {
	lib := manifold.New()
	entries := []Entry{
		&SparseBezierShape{ControlPoints: []manifold.Vec3{{X: 1}}, BezierSegments: 4},
		&SparseShape{Size: vec(4, 4, 4), Position: vec(10, 0, 0)},
	}
	if _, err := Build(lib, entries, false, true); err != ErrBezierFirst {
		t.Errorf("error = %v, want ErrBezierFirst", err)
	}
}

func TestDefaultFirstRequiresTypeAndSize(t *testing.T) {
	if _, err := defaultFirst(&SparseShape{}); err != ErrFirstEntryIncomplete {
		t.Errorf("error = %v, want ErrFirstEntryIncomplete", err)
	}
}

func TestDefaultFirstSphereRadiusDefault(t *testing.T) {
	st := Sphere
	d, err := defaultFirst(&SparseShape{ShapeType: &st, Size: vec(10, 10, 10)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.RoundedCubeRadius != (manifold.Vec3{X: 5, Y: 5, Z: 5}) {
		t.Errorf("sphere radius default = %+v, want (5,5,5)", d.RoundedCubeRadius)
	}
}

func TestDefaultAgainstInheritsSizeAndType(t *testing.T) {
	prev := &DenseShape{ShapeType: Cube, Size: manifold.Vec3{X: 4, Y: 4, Z: 4}, Position: manifold.Vec3{X: 0, Y: 0, Z: 0}}
	d, err := defaultAgainst(prev, &SparseShape{Position: vec(10, 0, 0)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ShapeType != Cube {
		t.Errorf("ShapeType = %v, want Cube (inherited)", d.ShapeType)
	}
	if d.Size != prev.Size {
		t.Errorf("Size = %+v, want inherited %+v", d.Size, prev.Size)
	}
	// relative position (absolute_position defaults false) adds onto prev.
	if d.Position != (manifold.Vec3{X: 10, Y: 0, Z: 0}) {
		t.Errorf("Position = %+v, want (10,0,0)", d.Position)
	}
}

func TestBuildThreeCubesWithCornerRadius(t *testing.T) {
	lib := manifold.New()
	entries := []Entry{
		&SparseShape{ShapeType: cubeType(), Size: vec(4, 4, 4), Position: vec(0, 0, 0)},
		&SparseShape{Position: vec(20, 0, 0), CornerRadius: f(1), CornerSegments: iv(5)},
		// Corner radius is inherited from the previous entry unless reset;
		// the last entry must zero it out, since the first and last
		// entries may not have a non-zero corner radius.
		&SparseShape{Position: vec(20, 20, 0), CornerRadius: f(0)},
	}
	s, err := Build(lib, entries, false, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.BoundingBox().Empty() {
		t.Error("expected non-empty bounding box")
	}
}

func TestBuildShowOnlyShapesUnions(t *testing.T) {
	lib := manifold.New()
	entries := []Entry{
		&SparseShape{ShapeType: cubeType(), Size: vec(4, 4, 4), Position: vec(0, 0, 0)},
		&SparseShape{Position: vec(20, 0, 0)},
	}
	s, err := Build(lib, entries, true, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Keepouts) != 2 {
		t.Errorf("expected 2 keepouts from a plain union, got %d", len(s.Keepouts))
	}
}
