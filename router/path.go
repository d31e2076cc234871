package router

import (
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/component"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/manifold"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/polychannel"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/units"
)

// portRoutable reports whether p is attached to a component and therefore
// has a well-defined position to route from/to.
func (r *Router) portRoutable(p *component.Port) bool {
	return p.Parent() != nil
}

// channelBox returns the channel cross-section box centred on pos, in the
// routed component's own grid units.
func (r *Router) channelBox(pos cell) units.Box3 {
	hx, hy, hz := r.channelSize[0]/2, r.channelSize[1]/2, r.channelSize[2]/2
	return units.NewBox3(
		float64(pos.x-hx), float64(pos.y-hy), float64(pos.z-hz),
		float64(pos.x+hx), float64(pos.y+hy), float64(pos.z+hz),
	)
}

// validPoints batch-checks every point in points: a point is valid when
// its margined channel box still fits inside the routed component's own
// bounds, and its one-unit-shrunk channel box has no keepout overlap.
// Grounded on original_source/router/router.py's _is_valid_points /
// _is_bbox_inside / _get_box_from_pos_and_size.
func (r *Router) validPoints(points []cell) []bool {
	out := make([]bool, len(points))
	for i, p := range points {
		box := r.channelBox(p)
		margined := addMargin(box, r.channelMargin)
		if !r.bounds.Contains(margined) {
			continue
		}
		shrunk := box.Shrink(1)
		if len(r.index.Intersecting(shrunk)) > 0 {
			continue
		}
		out[i] = true
	}
	return out
}

// moveOutsidePort returns the grid cell one channel width outward from p's
// own face along its surface normal, the point A* actually searches
// from/to rather than a point buried inside the port's own keepout box.
// Grounded on the original's _move_outside_port.
func (r *Router) moveOutsidePort(p *component.Port) cell {
	px, lz := r.comp.PxSize(), r.comp.LayerSize()
	x, y, z := p.PositionIn(&px, &lz)
	v := p.Vector()
	step := r.channelSize[0]
	return cell{
		x: int(x) + int(v.X)*step,
		y: int(y) + int(v.Y)*step,
		z: int(z) + int(v.Z)*step,
	}
}

// closePathAtPorts wraps a manually specified polychannel path with a
// leading cross-section anchored at input's own origin and a trailing one
// anchored at output's own origin, closing the channel onto both port
// faces, matching route_with_polychannel.
func (r *Router) closePathAtPorts(input, output *component.Port, path []polychannel.Entry) []polychannel.Entry {
	px, lz := r.comp.PxSize(), r.comp.LayerSize()
	ix, iy, iz := input.Origin(&px, &lz)
	ox, oy, oz := output.Origin(&px, &lz)

	full := make([]polychannel.Entry, 0, len(path)+2)
	full = append(full, r.portEntry(ix, iy, iz))
	full = append(full, path...)
	full = append(full, r.portEntry(ox, oy, oz))
	return full
}

func (r *Router) portEntry(x, y, z float64) polychannel.Entry {
	shapeType := polychannel.Cube
	size := manifold.Vec3{X: float64(r.channelSize[0]), Y: float64(r.channelSize[1]), Z: float64(r.channelSize[2])}
	pos := manifold.Vec3{X: x, Y: y, Z: z}
	abs := true
	return &polychannel.SparseShape{
		ShapeType:        &shapeType,
		Position:         &pos,
		Size:             &size,
		AbsolutePosition: &abs,
	}
}

// pathToPolychannelEntries turns a sequence of cell waypoints (an
// autoroute's simplified A* path, or a fractional route's resolved
// waypoints) into a constant cross-section polychannel path anchored at
// input and output's own origins. Grounded on the original's
// _path_to_polychannel_shapes.
func (r *Router) pathToPolychannelEntries(input, output *component.Port, waypoints []cell) []polychannel.Entry {
	middle := make([]polychannel.Entry, 0, len(waypoints))
	for _, w := range waypoints {
		middle = append(middle, r.portEntry(float64(w.x), float64(w.y), float64(w.z)))
	}
	return r.closePathAtPorts(input, output, middle)
}
