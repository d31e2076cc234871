package component

import "github.com/3D-Printing-for-Microfluidics/openmfd-go/manifold"

// Translate shifts the component by v, which is interpreted in the
// component's own units. A root component with no parent just accumulates
// the request into its pending translation vector until it is attached via
// AddSubcomponent, which calls runTranslate to apply it in the parent's
// units; an already-attached component applies the (converted) shift to
// its subtree immediately.
func (c *Component) Translate(v manifold.Vec3) *Component {
	return c.translate(v, false)
}

func (c *Component) translate(v manifold.Vec3, internal bool) *Component {
	if c.parent == nil && !internal {
		c.translations.X += v.X
		c.translations.Y += v.Y
		c.translations.Z += v.Z
		return c
	}

	if !internal {
		v = manifold.Vec3{
			X: roundTo3(v.X / c.pxSize * c.parent.pxSize),
			Y: roundTo3(v.Y / c.pxSize * c.parent.pxSize),
			Z: roundTo3(v.Z / c.layerSize * c.parent.layerSize),
		}
	}
	c.applyTranslation(v)
	if !internal {
		c.position.X += v.X
		c.position.Y += v.Y
		c.position.Z += v.Z
	}
	return c
}

// applyTranslation pushes v onto every subcomponent, shape and port owned
// by c, without touching c.position itself.
func (c *Component) applyTranslation(v manifold.Vec3) {
	for _, sub := range c.subcomponents {
		sub.translate(v, false)
	}
	for name, s := range c.voids {
		c.voids[name] = s.Translate(v)
	}
	for name, s := range c.bulks {
		c.bulks[name] = s.Translate(v)
	}
	for name, e := range c.regionalSettings {
		e.Shape = e.Shape.Translate(v)
		c.regionalSettings[name] = e
	}
	for _, p := range c.ports {
		p.Position.X += v.X
		p.Position.Y += v.Y
		p.Position.Z += v.Z
	}
}

// runTranslate applies the pending translation accumulated before the
// component had a parent, converting it into the parent's unit system.
// Called once, by AddSubcomponent, right after the parent link is set.
func (c *Component) runTranslate() {
	v := manifold.Vec3{
		X: roundTo3(c.translations.X / c.pxSize * c.parent.pxSize),
		Y: roundTo3(c.translations.Y / c.pxSize * c.parent.pxSize),
		Z: roundTo3(c.translations.Z / c.layerSize * c.parent.layerSize),
	}
	c.applyTranslation(v)
	c.position.X += v.X
	c.position.Y += v.Y
	c.position.Z += v.Z
}

var zRotationTable = map[int]map[SurfaceNormal]struct {
	normal SurfaceNormal
	dx, dy float64
}{
	90: {
		PosX: {PosY, -1, 0},
		PosY: {NegX, 0, 0},
		NegX: {NegY, -1, 0},
		NegY: {PosX, 0, 0},
	},
	180: {
		PosX: {NegX, 0, -1},
		PosY: {NegY, -1, 0},
		NegX: {PosX, 0, -1},
		NegY: {PosY, -1, 0},
	},
	270: {
		PosX: {NegY, 0, 0},
		PosY: {PosX, 0, -1},
		NegX: {PosY, 0, 0},
		NegY: {NegX, 0, -1},
	},
}

// Rotate rotates the component and everything it owns by rotation degrees
// around Z; rotation must be a multiple of 90. When inPlace is true, the
// component is translated to the origin first, rotated, then translated
// back so its negative-negative corner lands where it started (adjusted
// for the axis swap).
func (c *Component) Rotate(rotation int, inPlace bool) (*Component, error) {
	if rotation%90 != 0 {
		return nil, errRotationNotMul90
	}
	c.rotationDeg = ((c.rotationDeg+rotation)%360 + 360) % 360

	var original manifold.Vec3
	if inPlace {
		original = c.position
		c.translate(manifold.Vec3{X: -c.position.X, Y: -c.position.Y, Z: -c.position.Z}, true)
	}

	for _, sub := range c.subcomponents {
		sub.Rotate(rotation, false)
	}
	degrees := manifold.Vec3{Z: float64(rotation)}
	for name, s := range c.voids {
		c.voids[name] = s.Rotate(degrees)
	}
	for name, s := range c.bulks {
		c.bulks[name] = s.Rotate(degrees)
	}
	for name, e := range c.regionalSettings {
		e.Shape = e.Shape.Rotate(degrees)
		c.regionalSettings[name] = e
	}

	rot := ((rotation % 360) + 360) % 360
	for _, p := range c.ports {
		x, y, z := p.Position.X, p.Position.Y, p.Position.Z
		switch rot {
		case 90:
			p.Position = manifold.Vec3{X: -y, Y: x, Z: z}
		case 180:
			p.Position = manifold.Vec3{X: -x, Y: -y, Z: z}
		case 270:
			p.Position = manifold.Vec3{X: y, Y: -x, Z: z}
		}
		if table, ok := zRotationTable[rot]; ok {
			if step, ok := table[p.SurfaceNormal]; ok {
				p.Position.X += step.dx * p.Size.X
				p.Position.Y += step.dy * p.Size.Y
				p.SurfaceNormal = step.normal
			}
		}
		if p.SurfaceNormal == PosZ || p.SurfaceNormal == NegZ {
			switch rot {
			case 90:
				p.Position.X -= p.Size.X
			case 180:
				p.Position.X -= p.Size.X
				p.Position.Y -= p.Size.Y
			case 270:
				p.Position.Y -= p.Size.Y
			}
		}
	}

	if inPlace {
		switch rot {
		case 90:
			c.translate(manifold.Vec3{X: original.X + c.size.Y, Y: original.Y, Z: original.Z}, true)
		case 180:
			c.translate(manifold.Vec3{X: original.X + c.size.X, Y: original.Y + c.size.Y, Z: original.Z}, true)
		case 270:
			c.translate(manifold.Vec3{X: original.X, Y: original.Y + c.size.X, Z: original.Z}, true)
		}
		if rot == 90 || rot == 270 {
			c.size.X, c.size.Y = c.size.Y, c.size.X
		}
	} else {
		switch rot {
		case 90:
			c.position.X -= c.size.Y
		case 180:
			c.position.X -= c.size.X
			c.position.Y -= c.size.Y
		case 270:
			c.position.Y -= c.size.X
		}
		if rot == 90 || rot == 270 {
			c.size.X, c.size.Y = c.size.Y, c.size.X
		}
	}
	return c, nil
}

var mirrorFlipX = map[SurfaceNormal]SurfaceNormal{PosX: NegX, NegX: PosX}
var mirrorFlipY = map[SurfaceNormal]SurfaceNormal{PosY: NegY, NegY: PosY}

// Mirror flips the component across X and/or Y. A dual mirror is
// equivalent to, and delegates to, a 180-degree rotation. The shift applied
// to +X/-X (and +Y/-Y) ported positions is symmetric by construction: both
// directions correct for the flipped port "sticking out" of its owning
// face by re-adding its own size, so the outer face of a port stays flush
// with the mirrored component's boundary regardless of which way it
// pointed before the mirror. This is intentional, observable original
// behaviour, not a translation slip.
func (c *Component) Mirror(mirrorX, mirrorY, inPlace bool) (*Component, error) {
	if !mirrorX && !mirrorY {
		return c, nil
	}
	if mirrorX && mirrorY {
		return c.Rotate(180, inPlace)
	}

	c.mirrorX = mirrorX != c.mirrorX
	c.mirrorY = mirrorY != c.mirrorY

	var original manifold.Vec3
	if inPlace {
		original = c.position
		c.translate(manifold.Vec3{X: -c.position.X, Y: -c.position.Y, Z: -c.position.Z}, true)
	}

	for _, sub := range c.subcomponents {
		sub.Mirror(mirrorX, mirrorY, false)
	}
	for name, s := range c.voids {
		c.voids[name] = s.Mirror(mirrorX, mirrorY, false)
	}
	for name, s := range c.bulks {
		c.bulks[name] = s.Mirror(mirrorX, mirrorY, false)
	}
	for name, e := range c.regionalSettings {
		e.Shape = e.Shape.Mirror(mirrorX, mirrorY, false)
		c.regionalSettings[name] = e
	}

	for _, p := range c.ports {
		x, y, z := p.Position.X, p.Position.Y, p.Position.Z
		sx, sy := p.Size.X, p.Size.Y

		if mirrorX {
			x = -x - sx
			if p.SurfaceNormal == PosX || p.SurfaceNormal == NegX {
				x += sx
			}
			if flipped, ok := mirrorFlipX[p.SurfaceNormal]; ok {
				p.SurfaceNormal = flipped
			}
		}
		if mirrorY {
			y = -y - sy
			if p.SurfaceNormal == PosY || p.SurfaceNormal == NegY {
				y += sy
			}
			if flipped, ok := mirrorFlipY[p.SurfaceNormal]; ok {
				p.SurfaceNormal = flipped
			}
		}
		p.Position = manifold.Vec3{X: x, Y: y, Z: z}
	}

	if inPlace {
		switch {
		case mirrorX && !mirrorY:
			c.translate(manifold.Vec3{X: original.X + c.size.X, Y: original.Y, Z: original.Z}, true)
		case !mirrorX && mirrorY:
			c.translate(manifold.Vec3{X: original.X, Y: original.Y + c.size.Y, Z: original.Z}, true)
		}
	} else {
		switch {
		case mirrorX && !mirrorY:
			c.position.X -= c.size.X
		case !mirrorX && mirrorY:
			c.position.Y -= c.size.Y
		}
	}
	return c, nil
}
