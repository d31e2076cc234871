package shape

import "github.com/3D-Printing-for-Microfluidics/openmfd-go/manifold"

// BatchUnion unions every shape in one call instead of a binary chain
// of Union, which the underlying manifold library implements
// significantly more cheaply. A single-element input short-circuits to
// a copy; an empty input fails with ErrEmptyBatch.
func BatchUnion(shapes []*Shape) (*Shape, error) {
	return batchAdd(shapes)
}

func batchAdd(shapes []*Shape) (*Shape, error) {
	if len(shapes) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(shapes) == 1 {
		return shapes[0].Copy(false), nil
	}
	lib := shapes[0].lib
	solids := make([]manifold.Solid, len(shapes))
	var keepouts []manifold.Box
	for i, s := range shapes {
		solids[i] = s.Object
		keepouts = append(keepouts, s.Keepouts...)
	}
	return &Shape{lib: lib, Object: lib.BatchBoolean(solids, manifold.OpAdd), Keepouts: keepouts}, nil
}

// BatchSubtract subtracts every shape in subs from base in one call.
// Only base's keepouts survive, matching Shape.Subtract. base and subs
// must be non-empty.
func BatchSubtract(base *Shape, subs []*Shape) (*Shape, error) {
	if base == nil || len(subs) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(subs) == 1 {
		return base.Subtract(subs[0]), nil
	}
	lib := base.lib
	solids := make([]manifold.Solid, 0, len(subs)+1)
	solids = append(solids, base.Object)
	for _, s := range subs {
		solids = append(solids, s.Object)
	}
	return &Shape{
		lib:      lib,
		Object:   lib.BatchBoolean(solids, manifold.OpSubtract),
		Keepouts: append([]manifold.Box{}, base.Keepouts...),
	}, nil
}

// BatchAddThenSubtract unions adds, then subtracts subs from the
// result, combining both batch calls into the same combinator spec.md
// §4.1 names as the class-level "_batch_boolean_add_then_subtract"
// preferred over a chain of binary operators.
func BatchAddThenSubtract(adds []*Shape, subs []*Shape) (*Shape, error) {
	union, err := batchAdd(adds)
	if err != nil {
		return nil, err
	}
	if len(subs) == 0 {
		return union, nil
	}
	return BatchSubtract(union, subs)
}

// BatchHull hulls every shape's solid in one call, appending every
// shape's keepouts plus one bridging box spanning the union of every
// shape's bounding box (generalising Shape.Hull's pairwise bridge to N
// shapes).
func BatchHull(shapes []*Shape) (*Shape, error) {
	if len(shapes) == 0 {
		return nil, ErrEmptyBatch
	}
	if len(shapes) == 1 {
		return shapes[0].Copy(false), nil
	}
	lib := shapes[0].lib
	solids := make([]manifold.Solid, len(shapes))
	var keepouts []manifold.Box
	bridge := shapes[0].Object.BoundingBox()
	for i, s := range shapes {
		solids[i] = s.Object
		keepouts = append(keepouts, s.Keepouts...)
		bridge = bridgeBox(bridge, s.Object.BoundingBox())
	}
	keepouts = append(keepouts, bridge)
	return &Shape{lib: lib, Object: lib.BatchHull(solids), Keepouts: keepouts}, nil
}
