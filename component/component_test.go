package component

import (
	"errors"
	"testing"

	"github.com/3D-Printing-for-Microfluidics/openmfd-go/manifold"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/palette"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/shape"
)

func cube(lib manifold.Library, size manifold.Vec3) *shape.Shape {
	return shape.NewCube(lib, size, shape.WithCenter(true))
}

func TestAddLabelThenVoidRequiresLabel(t *testing.T) {
	c := New(manifold.Vec3{X: 100, Y: 100, Z: 10}, manifold.Vec3{})
	lib := manifold.New()
	if err := c.AddVoid("hole", cube(lib, manifold.Vec3{X: 4, Y: 4, Z: 4}), "channel"); err == nil {
		t.Fatal("expected error adding a void under an undeclared label")
	}
	if err := c.AddLabel("channel", palette.New(0, 0, 255, 255)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.AddVoid("hole", cube(lib, manifold.Vec3{X: 4, Y: 4, Z: 4}), "channel"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateNameRejectsCollisionAndBadIdentifier(t *testing.T) {
	c := New(manifold.Vec3{X: 100, Y: 100, Z: 10}, manifold.Vec3{})
	if err := c.AddLabel("chan", palette.New(0, 0, 255, 255)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.AddLabel("chan", palette.New(255, 0, 0, 255)); !errors.Is(err, ErrNameCollision) {
		t.Errorf("error = %v, want ErrNameCollision", err)
	}
	if err := c.AddLabel("1bad", palette.New(255, 0, 0, 255)); !errors.Is(err, ErrNonIdentifierName) {
		t.Errorf("error = %v, want ErrNonIdentifierName", err)
	}
}

func TestAddSubcomponentPromotesLabels(t *testing.T) {
	parent := New(manifold.Vec3{X: 100, Y: 100, Z: 10}, manifold.Vec3{})
	child := New(manifold.Vec3{X: 10, Y: 10, Z: 10}, manifold.Vec3{})
	lib := manifold.New()
	if err := child.AddLabel("chan", palette.New(0, 0, 255, 255)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := child.AddVoid("hole", cube(lib, manifold.Vec3{X: 2, Y: 2, Z: 2}), "chan"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := parent.AddSubcomponent("mixer", child, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := child.Labels()["mixer.chan"]; !ok {
		t.Errorf("expected label promoted to 'mixer.chan', got %v", child.Labels())
	}
	if got := child.Voids()["hole"].Label; got != "mixer.chan" {
		t.Errorf("void label = %q, want 'mixer.chan'", got)
	}
}

func TestAddPortDoubleOwnershipFails(t *testing.T) {
	a := New(manifold.Vec3{X: 100, Y: 100, Z: 10}, manifold.Vec3{})
	b := New(manifold.Vec3{X: 100, Y: 100, Z: 10}, manifold.Vec3{})
	p := NewPort(PortIn, manifold.Vec3{}, manifold.Vec3{X: 2, Y: 2, Z: 2}, PosX)
	if err := a.AddPort("in", p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.AddPort("in2", p); !errors.Is(err, ErrDoubleOwnership) {
		t.Errorf("error = %v, want ErrDoubleOwnership", err)
	}
}

func TestRotate90RemapsPortPositionAndNormal(t *testing.T) {
	c := New(manifold.Vec3{X: 100, Y: 50, Z: 10}, manifold.Vec3{})
	p := NewPort(PortOut, manifold.Vec3{X: 100, Y: 10, Z: 0}, manifold.Vec3{X: 2, Y: 2, Z: 2}, PosX)
	if err := c.AddPort("out", p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.Rotate(90, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.SurfaceNormal != PosY {
		t.Errorf("surface normal = %v, want PosY", p.SurfaceNormal)
	}
	// (-y, x) = (-10, 100); +X->+Y step is (-1, 0)*size giving (-2, 0).
	want := manifold.Vec3{X: -10 - 2, Y: 100, Z: 0}
	if p.Position != want {
		t.Errorf("position = %+v, want %+v", p.Position, want)
	}
}

func TestMirrorXAppliesSymmetricShiftForBothNormals(t *testing.T) {
	mkPort := func(n SurfaceNormal) *Port {
		return NewPort(PortIn, manifold.Vec3{X: 5, Y: 0, Z: 0}, manifold.Vec3{X: 3, Y: 3, Z: 3}, n)
	}
	posX := mkPort(PosX)
	negX := mkPort(NegX)

	cPos := New(manifold.Vec3{X: 50, Y: 50, Z: 10}, manifold.Vec3{})
	cNeg := New(manifold.Vec3{X: 50, Y: 50, Z: 10}, manifold.Vec3{})
	if err := cPos.AddPort("p", posX); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := cNeg.AddPort("p", negX); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := cPos.Mirror(true, false, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := cNeg.Mirror(true, false, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Both the +X and -X cases apply the same "+= sx" correction after the
	// mirror negation, so they land on the same X, regardless of which way
	// the port originally pointed. This is intentional original behaviour
	// (see Mirror's doc comment), not a bug to fix away.
	if posX.Position.X != negX.Position.X {
		t.Errorf("mirrored X = %v vs %v, want equal (symmetric shift quirk)", posX.Position.X, negX.Position.X)
	}
	if posX.SurfaceNormal != NegX || negX.SurfaceNormal != PosX {
		t.Errorf("normals after mirror: %v, %v", posX.SurfaceNormal, negX.SurfaceNormal)
	}
}

func TestTranslateRootAccumulatesPending(t *testing.T) {
	c := New(manifold.Vec3{X: 10, Y: 10, Z: 10}, manifold.Vec3{X: 1, Y: 1, Z: 1})
	c.Translate(manifold.Vec3{X: 5, Y: 0, Z: 0})
	if c.translations != (manifold.Vec3{X: 5}) {
		t.Errorf("pending translation = %+v, want (5,0,0)", c.translations)
	}
	if c.position != (manifold.Vec3{X: 1, Y: 1, Z: 1}) {
		t.Errorf("position should be untouched until attached, got %+v", c.position)
	}
}

func TestAddSubcomponentRunsPendingTranslate(t *testing.T) {
	parent := New(manifold.Vec3{X: 100, Y: 100, Z: 10}, manifold.Vec3{})
	child := New(manifold.Vec3{X: 10, Y: 10, Z: 10}, manifold.Vec3{X: 1, Y: 1, Z: 1})
	child.Translate(manifold.Vec3{X: 5, Y: 5, Z: 0})
	if err := parent.AddSubcomponent("child", child, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := manifold.Vec3{X: 6, Y: 6, Z: 1}
	if child.position != want {
		t.Errorf("position after attach = %+v, want %+v", child.position, want)
	}
}

func TestRegionalSettingsOverlapRejected(t *testing.T) {
	c := New(manifold.Vec3{X: 100, Y: 100, Z: 10}, manifold.Vec3{})
	lib := manifold.New()
	if err := c.AddLabel("region", palette.New(0, 255, 0, 255)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a := cube(lib, manifold.Vec3{X: 10, Y: 10, Z: 10})
	b := a.Copy(false)
	type exposureSettings struct{ Seconds float64 }
	if err := c.AddRegionalSettings("r1", a, exposureSettings{Seconds: 1}, "region"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.AddRegionalSettings("r2", b, exposureSettings{Seconds: 2}, "region"); !errors.Is(err, ErrRegionalOverlap) {
		t.Errorf("error = %v, want ErrRegionalOverlap", err)
	}
}

func TestDeviceHasRasterSize(t *testing.T) {
	d := NewDevice("dev", manifold.Vec3{}, 50, WithPxCount(2560, 1600))
	if d.Size() != (manifold.Vec3{X: 2560, Y: 1600, Z: 50}) {
		t.Errorf("device size = %+v", d.Size())
	}
}

func TestStitchedDeviceValidatesTilesAndOverlap(t *testing.T) {
	if _, err := NewStitchedDevice("s", manifold.Vec3{}, 10, [2]int{100, 100}, 0, 2, 5); !errors.Is(err, errStitchTiles) {
		t.Errorf("error = %v, want errStitchTiles", err)
	}
	if _, err := NewStitchedDevice("s", manifold.Vec3{}, 10, [2]int{100, 100}, 2, 2, 200); !errors.Is(err, errStitchOverlap) {
		t.Errorf("error = %v, want errStitchOverlap", err)
	}
	s, err := NewStitchedDevice("s", manifold.Vec3{}, 10, [2]int{100, 100}, 2, 2, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := (manifold.Vec3{X: 190, Y: 190, Z: 10}); s.Size() != want {
		t.Errorf("stitched size = %+v, want %+v", s.Size(), want)
	}
	if len(s.Tiles()) != 4 {
		t.Errorf("expected 4 tiles, got %d", len(s.Tiles()))
	}
}

func TestVariableLayerThicknessCommonDenominator(t *testing.T) {
	v, err := NewVariableLayerThicknessComponent(
		manifold.Vec3{X: 10, Y: 10, Z: 3},
		manifold.Vec3{},
		[]LayerRun{{Count: 2, Thickness: 0.02}, {Count: 1, Thickness: 0.03}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := v.LayerSize(); got != 0.01 {
		t.Errorf("layer size = %v, want 0.01 (gcf of 0.02, 0.03)", got)
	}
	if got := v.DeviceHeight(); got != 0.07 {
		t.Errorf("device height = %v, want 0.07", got)
	}
}

func TestVariableLayerThicknessRejectsMismatchedCount(t *testing.T) {
	_, err := NewVariableLayerThicknessComponent(
		manifold.Vec3{X: 10, Y: 10, Z: 5},
		manifold.Vec3{},
		[]LayerRun{{Count: 2, Thickness: 0.02}},
	)
	if !errors.Is(err, errLayerSumMismatch) {
		t.Errorf("error = %v, want errLayerSumMismatch", err)
	}
}

func TestRelabelRequiresExistingTargetLabel(t *testing.T) {
	c := New(manifold.Vec3{X: 10, Y: 10, Z: 10}, manifold.Vec3{})
	if err := c.AddLabel("a", palette.New(1, 1, 1, 255)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := c.Relabel(map[RelabelKey]string{PathKey("a"): "b"}, false)
	if !errors.Is(err, errRelabelTargetMiss) {
		t.Errorf("error = %v, want errRelabelTargetMiss", err)
	}
}

func TestRelabelRenamesLabelAndPropagatesColor(t *testing.T) {
	c := New(manifold.Vec3{X: 10, Y: 10, Z: 10}, manifold.Vec3{})
	lib := manifold.New()
	if err := c.AddLabel("a", palette.New(1, 1, 1, 255)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	newColor := palette.New(9, 9, 9, 255)
	if err := c.AddLabel("b", newColor); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.AddVoid("hole", cube(lib, manifold.Vec3{X: 2, Y: 2, Z: 2}), "a"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.Relabel(map[RelabelKey]string{PathKey("a"): "b"}, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := c.Labels()["a"]; ok {
		t.Error("old label 'a' should have been removed")
	}
	if c.Voids()["hole"].Label != "b" {
		t.Errorf("void label = %q, want 'b'", c.Voids()["hole"].Label)
	}
	if *c.Voids()["hole"].Color != newColor {
		t.Errorf("void color = %+v, want %+v", c.Voids()["hole"].Color, newColor)
	}
}
