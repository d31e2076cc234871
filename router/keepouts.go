package router

import (
	"fmt"

	"github.com/3D-Printing-for-Microfluidics/openmfd-go/manifold"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/rtree"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/units"
)

// keepoutRef is a single indexed keepout: the id it was inserted under and
// the exact box, needed to remove it again later (Tree.Delete matches on
// both).
type keepoutRef struct {
	id  int64
	box units.Box3
}

func addMargin(b units.Box3, margin [3]int) units.Box3 {
	mx, my, mz := float64(margin[0]), float64(margin[1]), float64(margin[2])
	return units.Box3{
		X0: b.X0 - mx, Y0: b.Y0 - my, Z0: b.Z0 - mz,
		X1: b.X1 + mx, Y1: b.Y1 + my, Z1: b.Z1 + mz,
	}
}

func boxFromManifold(b manifold.Box) units.Box3 {
	return units.NewBox3(b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z)
}

// generateKeepoutIndex rebuilds the R-tree from scratch: one keepout per
// subcomponent's own bounding box, one (margined) keepout per subcomponent
// port, and one (margined) keepout per void shape's own keepout list.
// Rebuilding fresh every call is a deliberate simplification of the
// original's incremental diff against a previous keepout dict — it costs
// one extra full rebuild per finalize pass but removes an entire class of
// staleness bugs, and the router only finalizes once per component.
func (r *Router) generateKeepoutIndex() {
	r.index = rtree.New()
	r.nonroutedKeepouts = make(map[string]keepoutRef)
	r.routedKeepouts = make(map[string]keepoutRef)
	r.keepoutsByPort = make(map[string][]string)

	px, lz := r.comp.PxSize(), r.comp.LayerSize()

	for name, sub := range r.comp.Subcomponents() {
		x0, y0, z0, x1, y1, z1 := sub.BoundingBox(&px, &lz)
		r.insertNonrouted(name, units.NewBox3(x0, y0, z0, x1, y1, z1))

		for portName, p := range sub.Ports() {
			key := fmt.Sprintf("%s_%s", name, portName)
			x0, y0, z0, x1, y1, z1 := p.BoundingBox(&px, &lz)
			box := addMargin(units.NewBox3(x0, y0, z0, x1, y1, z1), r.channelMargin)
			r.insertRouted(key, box)
			r.keepoutsByPort[key] = []string{key}
		}
	}

	i := 0
	for shapeName, s := range r.comp.Voids() {
		for _, ko := range s.Keepouts {
			key := fmt.Sprintf("%s_%d", shapeName, i)
			box := addMargin(boxFromManifold(ko), r.channelMargin)
			r.insertNonrouted(key, box)
			i++
		}
	}

	px0, py0, pz0, px1, py1, pz1 := r.comp.BoundingBox(&px, &lz)
	r.bounds = units.NewBox3(px0, py0, pz0, px1, py1, pz1)
}

func (r *Router) insertNonrouted(key string, box units.Box3) {
	id := r.nextID
	r.nextID++
	r.index.Insert(id, box)
	r.nonroutedKeepouts[key] = keepoutRef{id: id, box: box}
}

func (r *Router) insertRouted(key string, box units.Box3) {
	id := r.nextID
	r.nextID++
	r.index.Insert(id, box)
	r.routedKeepouts[key] = keepoutRef{id: id, box: box}
}

// removePortKeepouts pulls every indexed keepout owned by inputName or
// outputName out of the tree, returning them so they can be restored by
// addPortKeepouts once the route between them has been materialised.
func (r *Router) removePortKeepouts(inputName, outputName string) map[string]keepoutRef {
	removed := make(map[string]keepoutRef)
	for _, key := range append(append([]string{}, r.keepoutsByPort[inputName]...), r.keepoutsByPort[outputName]...) {
		if _, ok := removed[key]; ok {
			continue
		}
		ref, ok := r.routedKeepouts[key]
		if !ok {
			continue
		}
		removed[key] = ref
		r.index.Delete(ref.id, ref.box)
	}
	return removed
}

func (r *Router) addPortKeepouts(removed map[string]keepoutRef) {
	for _, ref := range removed {
		r.index.Insert(ref.id, ref.box)
	}
}

// addKeepoutsFromPath indexes every keepout box carried by a materialised
// route shape, under routeName, and records them against both endpoint
// port keys so a later reroute of either port can pull them back out.
func (r *Router) addKeepoutsFromPath(routeName string, keepouts []manifold.Box, inputKey, outputKey string) {
	for j, ko := range keepouts {
		key := fmt.Sprintf("%s_%d", routeName, j)
		box := addMargin(boxFromManifold(ko), r.channelMargin)
		r.insertRouted(key, box)
		r.keepoutsByPort[inputKey] = append(r.keepoutsByPort[inputKey], key)
		r.keepoutsByPort[outputKey] = append(r.keepoutsByPort[outputKey], key)
	}
}

// violatesKeepouts reports whether any box in keepouts (shrunk by one unit,
// matching the original's one-pixel routing tolerance) overlaps the index.
func (r *Router) violatesKeepouts(keepouts []manifold.Box) bool {
	for _, ko := range keepouts {
		box := addMargin(boxFromManifold(ko), [3]int{-1, -1, -1})
		if len(r.index.Intersecting(box)) > 0 {
			return true
		}
	}
	return false
}
