package shape

import (
	"math"
	"testing"

	"github.com/3D-Printing-for-Microfluidics/openmfd-go/manifold"
)

func TestNewCubeCentered(t *testing.T) {
	lib := manifold.New()
	s := NewCube(lib, manifold.Vec3{X: 10, Y: 10, Z: 10}, WithCenter(true))
	b := s.BoundingBox()
	if b.Min.X != -5 || b.Max.X != 5 {
		t.Errorf("bbox X = [%v, %v], want [-5, 5]", b.Min.X, b.Max.X)
	}
	if len(s.Keepouts) != 1 {
		t.Fatalf("expected 1 keepout, got %d", len(s.Keepouts))
	}
}

func TestNewCubeOddCenteredShift(t *testing.T) {
	lib := manifold.New()
	s := NewCube(lib, manifold.Vec3{X: 5, Y: 10, Z: 10}, WithCenter(true))
	b := s.BoundingBox()
	// Odd x extent shifts by 0.5 so faces land on the pixel grid.
	if got := b.Min.X; math.Abs(got-(-2)) > 1e-9 {
		t.Errorf("bbox min X = %v, want -2", got)
	}
}

func TestTranslateKeepouts(t *testing.T) {
	lib := manifold.New()
	s := NewCube(lib, manifold.Vec3{X: 2, Y: 2, Z: 2}, WithCenter(false))
	moved := s.Translate(manifold.Vec3{X: 10, Y: 0, Z: 0})
	b := moved.Keepouts[0]
	if b.Min.X != 10 || b.Max.X != 12 {
		t.Errorf("keepout X = [%v, %v], want [10, 12]", b.Min.X, b.Max.X)
	}
}

func TestUnionConcatenatesKeepouts(t *testing.T) {
	lib := manifold.New()
	a := NewCube(lib, manifold.Vec3{X: 2, Y: 2, Z: 2}, WithCenter(false))
	b := NewCube(lib, manifold.Vec3{X: 2, Y: 2, Z: 2}, WithCenter(false)).Translate(manifold.Vec3{X: 10, Y: 0, Z: 0})
	u := a.Union(b)
	if len(u.Keepouts) != 2 {
		t.Fatalf("expected 2 keepouts after union, got %d", len(u.Keepouts))
	}
}

func TestSubtractKeepsSelfKeepouts(t *testing.T) {
	lib := manifold.New()
	a := NewCube(lib, manifold.Vec3{X: 10, Y: 10, Z: 10}, WithCenter(true))
	b := NewCube(lib, manifold.Vec3{X: 2, Y: 2, Z: 2}, WithCenter(true))
	diff := a.Subtract(b)
	if len(diff.Keepouts) != 1 {
		t.Fatalf("expected 1 keepout (self only) after subtract, got %d", len(diff.Keepouts))
	}
	if diff.Keepouts[0] != a.Keepouts[0] {
		t.Errorf("subtract keepout = %+v, want self keepout %+v", diff.Keepouts[0], a.Keepouts[0])
	}
}

func TestIntersectKeepsOnlyNonEmpty(t *testing.T) {
	lib := manifold.New()
	a := NewCube(lib, manifold.Vec3{X: 10, Y: 10, Z: 10}, WithCenter(true))
	b := NewCube(lib, manifold.Vec3{X: 10, Y: 10, Z: 10}, WithCenter(true)).Translate(manifold.Vec3{X: 100, Y: 0, Z: 0})
	inter := a.Intersect(b)
	if len(inter.Keepouts) != 0 {
		t.Errorf("expected 0 keepouts for disjoint boxes, got %d", len(inter.Keepouts))
	}
}

func TestHullAddsBridgeBox(t *testing.T) {
	lib := manifold.New()
	a := NewCube(lib, manifold.Vec3{X: 2, Y: 2, Z: 2}, WithCenter(true))
	b := NewCube(lib, manifold.Vec3{X: 2, Y: 2, Z: 2}, WithCenter(true)).Translate(manifold.Vec3{X: 20, Y: 0, Z: 0})
	h := a.Hull(b)
	if len(h.Keepouts) != 3 {
		t.Fatalf("expected 2 own keepouts + 1 bridge, got %d", len(h.Keepouts))
	}
	bridge := h.Keepouts[2]
	if bridge.Max.X < 21 || bridge.Min.X > -1 {
		t.Errorf("bridge box X = [%v, %v], want to span roughly [-1, 21]", bridge.Min.X, bridge.Max.X)
	}
}

func TestCopyPreservesMetadataOnlyWhenAsked(t *testing.T) {
	lib := manifold.New()
	a := NewCube(lib, manifold.Vec3{X: 2, Y: 2, Z: 2}, WithCenter(true))
	a.Name = "widget"
	if got := a.Copy(false).Name; got != "" {
		t.Errorf("Copy(false).Name = %q, want empty", got)
	}
	if got := a.Copy(true).Name; got != "widget" {
		t.Errorf("Copy(true).Name = %q, want widget", got)
	}
}

func TestNewCylinderRadiusGridValidation(t *testing.T) {
	lib := manifold.New()
	bad := 1.3
	good := 1.5
	if _, err := NewCylinder(lib, 10, &bad, nil, nil, true, false); err == nil {
		t.Error("expected ErrShapeRadiusGrid for non-half-pixel radius")
	}
	if _, err := NewCylinder(lib, 10, &good, nil, nil, true, false); err != nil {
		t.Errorf("unexpected error for valid radius: %v", err)
	}
}

func TestNewCylinderParityValidation(t *testing.T) {
	lib := manifold.New()
	bottom, top := 2.0, 3.0
	if _, err := NewCylinder(lib, 10, nil, &bottom, &top, true, false); err == nil {
		t.Error("expected ErrShapeParity for mismatched top/bottom parity")
	}
}

func TestNewRoundedCubeContainsCube(t *testing.T) {
	lib := manifold.New()
	s := NewRoundedCube(lib, manifold.Vec3{X: 10, Y: 10, Z: 10}, manifold.Vec3{X: 1, Y: 1, Z: 1}, WithCenter(true), WithSegments(8))
	b := s.BoundingBox()
	if b.Max.X < 4 || b.Min.X > -4 {
		t.Errorf("rounded cube bbox X = [%v, %v], want to roughly cover [-5, 5]", b.Min.X, b.Max.X)
	}
}

func TestBatchUnionEmptyFails(t *testing.T) {
	if _, err := BatchUnion(nil); err != ErrEmptyBatch {
		t.Errorf("BatchUnion(nil) error = %v, want ErrEmptyBatch", err)
	}
}

func TestBatchUnionSingleShortCircuitsToCopy(t *testing.T) {
	lib := manifold.New()
	a := NewCube(lib, manifold.Vec3{X: 2, Y: 2, Z: 2}, WithCenter(true))
	out, err := BatchUnion([]*Shape{a})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Object == a.Object {
		t.Error("single-element batch should copy, not alias, the solid")
	}
}

func TestBatchAddThenSubtract(t *testing.T) {
	lib := manifold.New()
	a := NewCube(lib, manifold.Vec3{X: 10, Y: 10, Z: 10}, WithCenter(true))
	b := NewCube(lib, manifold.Vec3{X: 10, Y: 10, Z: 10}, WithCenter(true)).Translate(manifold.Vec3{X: 20, Y: 0, Z: 0})
	cut := NewCube(lib, manifold.Vec3{X: 2, Y: 2, Z: 2}, WithCenter(true))
	out, err := BatchAddThenSubtract([]*Shape{a, b}, []*Shape{cut})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out.Keepouts) != 2 {
		t.Errorf("expected 2 keepouts (union survivors), got %d", len(out.Keepouts))
	}
}
