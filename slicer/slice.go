package slicer

import (
	"fmt"

	"github.com/3D-Printing-for-Microfluidics/openmfd-go/component"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/manifold"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/shape"
)

// Slice is one z-plane raster extracted from a component, grounded on
// original_source/backend/slice.py's per-layer dict entries.
type Slice struct {
	ImageName     string
	Image         RLEImage
	LayerPosition float64 // micrometres, rounded to 0.1
}

// Position records an already-sliced component instance being reused at
// another (parent, dx, dy, dz) offset, matching the original's "already
// seen" bookkeeping in slice_component.
type Position struct {
	Parent *component.Component
	DX, DY, DZ float64
}

// DeviceSlices is the slicing result for one component instance: its own
// body slices, its per-region mask slices, and every position it was
// placed at.
type DeviceSlices struct {
	Component *component.Component
	Positions []Position
	Slices    []Slice
	Masks     map[string][]Slice
}

// sliceSet accumulates SliceComponent's recursive walk, deduplicating by
// component identity the way the original's sliced_devices list does.
type sliceSet struct {
	index map[*component.Component]int
	data  []*DeviceSlices
}

// SliceComponent walks dev depth-first and slices every component
// instance (and its regional masks) exactly once, recording repeated
// placements as additional Positions. Grounded on
// original_source/backend/slice.py's slice_component.
func SliceComponent(dev *component.Component, lib manifold.Library) ([]*DeviceSlices, error) {
	set := &sliceSet{index: make(map[*component.Component]int)}
	if err := sliceComponentInto(set, dev, lib); err != nil {
		return nil, err
	}
	return set.data, nil
}

func sliceComponentInto(set *sliceSet, dev *component.Component, lib manifold.Library) error {
	parent := dev.Parent()
	var xPos, yPos, zPos float64
	if parent == nil {
		x, y, z := dev.PositionIn(nil, nil)
		xPos, yPos, zPos = x, y, z*dev.LayerSize()
	} else {
		ppx, plz := parent.PxSize(), parent.LayerSize()
		dx, dy, dz := dev.PositionIn(&ppx, &plz)
		px, py, pz := parent.PositionIn(&ppx, &plz)
		xPos, yPos = dx-px, dy-py
		zPos = (dz - pz) * plz
	}

	if idx, ok := set.index[dev]; ok {
		set.data[idx].Positions = append(set.data[idx].Positions, Position{Parent: parent, DX: xPos, DY: yPos, DZ: zPos})
		return nil
	}

	entry := &DeviceSlices{
		Component: dev,
		Positions: []Position{{Parent: parent, DX: xPos, DY: yPos, DZ: zPos}},
		Masks:     make(map[string][]Slice),
	}
	set.index[dev] = len(set.data)
	set.data = append(set.data, entry)

	bulks := dev.Bulks()
	if len(bulks) == 0 {
		return fmt.Errorf("%w: %q", errNoBulkShape, dev.Name())
	}
	bulkList := make([]*shape.Shape, 0, len(bulks))
	for _, s := range bulks {
		bulkList = append(bulkList, s)
	}
	composite, err := shape.BatchUnion(bulkList)
	if err != nil {
		return fmt.Errorf("slicer: union bulk shapes of %q: %w", dev.Name(), err)
	}

	var cutoutPool []*shape.Shape
	px, lz := dev.PxSize(), dev.LayerSize()
	for _, sub := range dev.Subcomponents() {
		if sub.SubtractBoundingBox() {
			x0, y0, z0, x1, y1, z1 := sub.BoundingBox(&px, &lz)
			size := manifold.Vec3{
				X: (x1 - x0) - px*0.1,
				Y: (y1 - y0) - px*0.1,
				Z: (z1 - z0) - lz*0.1,
			}
			cube := shape.NewCube(lib, size).Translate(manifold.Vec3{
				X: x0 + px*0.05,
				Y: y0 + px*0.05,
				Z: z0 + lz*0.05,
			})
			cutoutPool = append(cutoutPool, cube)
		}
		if err := sliceComponentInto(set, sub, lib); err != nil {
			return err
		}
	}

	cutoutPool = append(cutoutPool, voidShapes(dev)...)
	if len(cutoutPool) > 0 {
		composite, err = shape.BatchSubtract(composite, cutoutPool)
		if err != nil {
			return fmt.Errorf("slicer: subtract cutouts of %q: %w", dev.Name(), err)
		}
	}

	slices, err := sliceLayers(dev, composite)
	if err != nil {
		return err
	}
	entry.Slices = slices

	for region, mask := range dev.RegionalShapes() {
		maskSlices, err := sliceLayers(dev, mask)
		if err != nil {
			return fmt.Errorf("slicer: slicing %q mask %q: %w", dev.Name(), region, err)
		}
		entry.Masks[region] = maskSlices
	}

	return nil
}

func voidShapes(dev *component.Component) []*shape.Shape {
	voids := dev.Voids()
	out := make([]*shape.Shape, 0, len(voids))
	for _, s := range voids {
		out = append(out, s)
	}
	return out
}

// sliceLayers walks composite's solid from the bottom of dev upward one
// modelling layer at a time, rasterising the polygon cross-section at
// each layer into a Slice. Grounded on original_source/backend/slice.py's
// _slice.
func sliceLayers(dev *component.Component, composite *shape.Shape) ([]Slice, error) {
	w, h, sizeZ := dev.SizeIn(nil, nil)
	width, height := int(w), int(h)

	expanded := dev.ExpandedLayerSizes()
	posX, posY, posZ := dev.PositionIn(nil, nil)
	layerSize := dev.LayerSize()
	name, _ := dev.FullyQualifiedName()

	var out []Slice
	slicePosition := 0.0
	actualSlicePosition := 0.5
	layerNum := 0

	for actualSlicePosition < sizeZ {
		sliceZ := posZ + actualSlicePosition
		polys := composite.Object.Slice(sliceZ)
		raster := RasterizeLayer(polys, width, height, posX, posY)

		out = append(out, Slice{
			ImageName:     fmt.Sprintf("%s-slice%04d.png", name, layerNum),
			Image:         EncodeRLE(raster),
			LayerPosition: round1(slicePosition * 1000),
		})

		if expanded != nil {
			slicePosition += expanded[layerNum]
			if layerNum < len(expanded)-1 {
				actualSlicePosition += expanded[layerNum]/layerSize/2 + expanded[layerNum+1]/layerSize/2
			} else {
				actualSlicePosition += expanded[layerNum] / layerSize
			}
		} else {
			slicePosition += layerSize
			actualSlicePosition += 1.0
		}
		layerNum++
	}
	return out, nil
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
