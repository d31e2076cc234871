package router

import (
	"testing"

	"github.com/3D-Printing-for-Microfluidics/openmfd-go/component"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/manifold"
)

type fakeSolid struct{ box manifold.Box }

func (s fakeSolid) BoundingBox() manifold.Box          { return s.box }
func (s fakeSolid) Translate(v manifold.Vec3) manifold.Solid {
	return fakeSolid{manifold.Box{
		Min: manifold.Vec3{X: s.box.Min.X + v.X, Y: s.box.Min.Y + v.Y, Z: s.box.Min.Z + v.Z},
		Max: manifold.Vec3{X: s.box.Max.X + v.X, Y: s.box.Max.Y + v.Y, Z: s.box.Max.Z + v.Z},
	}}
}
func (s fakeSolid) Rotate(manifold.Vec3) manifold.Solid { return s }
func (s fakeSolid) Scale(manifold.Vec3) manifold.Solid  { return s }
func (s fakeSolid) Mirror([3]bool) manifold.Solid       { return s }
func (s fakeSolid) Slice(float64) []manifold.Polygon    { return nil }
func (s fakeSolid) ToMesh() manifold.Mesh               { return manifold.Mesh{} }

type fakeLib struct{}

func (fakeLib) Cube(size manifold.Vec3, center bool) manifold.Solid {
	if center {
		return fakeSolid{manifold.Box{Min: manifold.Vec3{X: -size.X / 2, Y: -size.Y / 2, Z: -size.Z / 2}, Max: manifold.Vec3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2}}}
	}
	return fakeSolid{manifold.Box{Max: size}}
}
func (fakeLib) Cylinder(float64, float64, float64, int, bool) manifold.Solid { return fakeSolid{} }
func (fakeLib) Sphere(float64, int) manifold.Solid                           { return fakeSolid{} }
func (fakeLib) BatchBoolean(solids []manifold.Solid, op manifold.BooleanOp) manifold.Solid {
	if len(solids) == 0 {
		return fakeSolid{}
	}
	b := solids[0].BoundingBox()
	for _, s := range solids[1:] {
		ob := s.BoundingBox()
		b = manifold.Box{
			Min: manifold.Vec3{X: min(b.Min.X, ob.Min.X), Y: min(b.Min.Y, ob.Min.Y), Z: min(b.Min.Z, ob.Min.Z)},
			Max: manifold.Vec3{X: max(b.Max.X, ob.Max.X), Y: max(b.Max.Y, ob.Max.Y), Z: max(b.Max.Z, ob.Max.Z)},
		}
	}
	return fakeSolid{b}
}
func (fakeLib) BatchHull(solids []manifold.Solid) manifold.Solid { return fakeLib{}.BatchBoolean(solids, manifold.OpAdd) }
func (fakeLib) LevelSet(func(x, y, z float64) float64, manifold.Box, float64, float64) manifold.Solid {
	return fakeSolid{}
}
func (fakeLib) Mesh([]manifold.Vec3, [][3]int) manifold.Solid { return fakeSolid{} }

func newTestComponent(t *testing.T) *component.Component {
	t.Helper()
	return component.New(manifold.Vec3{X: 100, Y: 100, Z: 20}, manifold.Vec3{}, component.WithPxSize(1), component.WithLayerSize(1))
}

func TestAutorouteChannelStraightLine(t *testing.T) {
	comp := newTestComponent(t)
	in := component.NewPort(component.PortIn, manifold.Vec3{X: 10, Y: 10, Z: 5}, manifold.Vec3{X: 2, Y: 2, Z: 2}, component.NegX)
	out := component.NewPort(component.PortOut, manifold.Vec3{X: 50, Y: 10, Z: 5}, manifold.Vec3{X: 2, Y: 2, Z: 2}, component.PosX)
	if err := comp.AddPort("in", in); err != nil {
		t.Fatalf("AddPort in: %v", err)
	}
	if err := comp.AddPort("out", out); err != nil {
		t.Fatalf("AddPort out: %v", err)
	}

	r := NewRouter(comp, fakeLib{}, [3]int{2, 2, 2}, [3]int{1, 1, 1}, true)
	if err := r.AutorouteChannel(in, out, "channel"); err != nil {
		t.Fatalf("AutorouteChannel: %v", err)
	}
	if err := r.FinalizeRoutes(); err != nil {
		t.Fatalf("FinalizeRoutes: %v", err)
	}

	name, _, _, _ := routeName(in, out)
	if _, ok := comp.Voids()[name]; !ok {
		t.Fatalf("expected a void named %q, got %v", name, comp.Voids())
	}
}

func TestRouteWithFractionalPathRejectsBadSum(t *testing.T) {
	comp := newTestComponent(t)
	in := component.NewPort(component.PortIn, manifold.Vec3{X: 10, Y: 10, Z: 5}, manifold.Vec3{X: 2, Y: 2, Z: 2}, component.NegX)
	out := component.NewPort(component.PortOut, manifold.Vec3{X: 50, Y: 10, Z: 5}, manifold.Vec3{X: 2, Y: 2, Z: 2}, component.PosX)
	_ = comp.AddPort("in", in)
	_ = comp.AddPort("out", out)

	r := NewRouter(comp, fakeLib{}, [3]int{2, 2, 2}, [3]int{1, 1, 1}, true)
	err := r.RouteWithFractionalPath(in, out, [][3]float64{{0.5, 0.5, 0.5}}, "channel")
	if err == nil {
		t.Fatal("expected an error for a fractional path that doesn't sum to 1")
	}
}

func TestSimplifyCardinalPathCollapsesStraightRuns(t *testing.T) {
	path := []cell{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}, {2, 1, 0}, {2, 2, 0}}
	got := simplifyCardinalPath(path)
	want := []cell{{0, 0, 0}, {2, 0, 0}, {2, 2, 0}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
