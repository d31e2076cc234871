package component

import (
	"fmt"

	"github.com/3D-Printing-for-Microfluidics/openmfd-go/manifold"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/palette"
)

// PortType distinguishes how fluid flows through a port.
type PortType int

const (
	PortIn PortType = iota
	PortOut
	PortInOut
)

// SurfaceNormal identifies which face of a component a port opens onto.
type SurfaceNormal int

const (
	PosX SurfaceNormal = iota
	PosY
	PosZ
	NegX
	NegY
	NegZ
)

var normalVectors = map[SurfaceNormal]manifold.Vec3{
	PosX: {X: 1}, PosY: {Y: 1}, PosZ: {Z: 1},
	NegX: {X: -1}, NegY: {Y: -1}, NegZ: {Z: -1},
}

// Port is a named connection point on a Component's boundary, grounded on
// original_source/openmfd.py's Port class.
type Port struct {
	Type          PortType
	Position      manifold.Vec3
	Size          manifold.Vec3
	SurfaceNormal SurfaceNormal

	name   string
	parent *Component
}

// NewPort constructs an unattached port; it becomes addressable only once
// added to a Component via Component.AddPort.
func NewPort(t PortType, position, size manifold.Vec3, normal SurfaceNormal) *Port {
	return &Port{Type: t, Position: position, Size: size, SurfaceNormal: normal}
}

// Copy returns an unattached duplicate of p (parent/name cleared), matching
// the original's Port.copy().
func (p *Port) Copy() *Port {
	return &Port{Type: p.Type, Position: p.Position, Size: p.Size, SurfaceNormal: p.SurfaceNormal}
}

// Name returns "<parent>_<port>", the short form used for error messages.
func (p *Port) Name() (string, error) {
	if p.name == "" {
		return "", errPortUnnamed
	}
	return fmt.Sprintf("%s_%s", p.parent.name, p.name), nil
}

// FullyQualifiedName walks the parent chain, joining names with '.', and
// substituting the owning file's provenance stem once the chain reaches an
// unnamed root component.
func (p *Port) FullyQualifiedName() (string, error) {
	if p.name == "" {
		return "", errPortUnnamed
	}
	name := p.name
	parent := p.parent
	for parent != nil {
		if parent.name != "" {
			name = parent.name + "." + name
			parent = parent.parent
			continue
		}
		return parent.instantiationStem() + "." + name, nil
	}
	return name, nil
}

// Parent returns the component that owns p, or nil if p has not been
// added to a component yet.
func (p *Port) Parent() *Component { return p.parent }

// Vector returns the unit direction the surface normal points along.
func (p *Port) Vector() manifold.Vec3 {
	return normalVectors[p.SurfaceNormal]
}

// BoundingBox returns the port's AABB in the requested unit system (the
// owning component's own px_size/layer_size when nil), shifted back by Size
// on any axis with a negative surface normal per spec.md §3.
func (p *Port) BoundingBox(pxSize, layerSize *float64) (x0, y0, z0, x1, y1, z1 float64) {
	v := p.Vector()
	pos := p.Position
	if v.X < 0 {
		pos.X -= p.Size.X
	}
	if v.Y < 0 {
		pos.Y -= p.Size.Y
	}
	if v.Z < 0 {
		pos.Z -= p.Size.Z
	}

	px, lz := p.parent.pxSize, p.parent.layerSize
	cpx, clz := resolveUnits(p.parent, pxSize, layerSize)

	x0 = roundTo3(pos.X * px / cpx)
	y0 = roundTo3(pos.Y * px / cpx)
	z0 = roundTo3(pos.Z * lz / clz)
	x1 = x0 + roundTo3(p.Size.X*px/cpx)
	y1 = y0 + roundTo3(p.Size.Y*px/cpx)
	z1 = z0 + roundTo3(p.Size.Z*lz/clz)
	return
}

// Origin returns the minimum corner of the port's bounding box.
func (p *Port) Origin(pxSize, layerSize *float64) (x, y, z float64) {
	x, y, z, _, _, _ = p.BoundingBox(pxSize, layerSize)
	return
}

// PositionIn converts the port's raw position into the requested unit
// system, matching Port.get_position.
func (p *Port) PositionIn(pxSize, layerSize *float64) (x, y, z float64) {
	px, lz := p.parent.pxSize, p.parent.layerSize
	cpx, clz := resolveUnits(p.parent, pxSize, layerSize)
	return roundTo3(p.Position.X * px / cpx), roundTo3(p.Position.Y * px / cpx), roundTo3(p.Position.Z * lz / clz)
}

// SizeIn converts the port's raw size into the requested unit system.
func (p *Port) SizeIn(pxSize, layerSize *float64) (x, y, z float64) {
	px, lz := p.parent.pxSize, p.parent.layerSize
	cpx, clz := resolveUnits(p.parent, pxSize, layerSize)
	return roundTo3(p.Size.X * px / cpx), roundTo3(p.Size.Y * px / cpx), roundTo3(p.Size.Z * lz / clz)
}

// Color returns the conventional port color by type: green for IN, red for
// OUT, blue for INOUT, white otherwise.
func (p *Port) Color() palette.Color {
	switch p.Type {
	case PortIn:
		c, _ := palette.FromName("green", 255)
		return c
	case PortOut:
		c, _ := palette.FromName("red", 255)
		return c
	case PortInOut:
		c, _ := palette.FromName("blue", 255)
		return c
	default:
		c, _ := palette.FromName("white", 255)
		return c
	}
}

func resolveUnits(parent *Component, pxSize, layerSize *float64) (float64, float64) {
	px, lz := parent.pxSize, parent.layerSize
	if pxSize != nil {
		px = *pxSize
	}
	if layerSize != nil {
		lz = *layerSize
	}
	return px, lz
}
