package compiler

import (
	"math"

	"github.com/3D-Printing-for-Microfluidics/openmfd-go/component"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/slicer"
)

// zToleranceUm is how close two slices' layer positions must be to count
// as the same physical layer when embedding a subcomponent's slices into
// its parent's.
const zToleranceUm = 0.5

// EmbedSubcomponents composites every subcomponent's body slices into its
// parent's (regional mask slices are not embedded and stay with the
// component that owns them), walking the tree leaves-first so that by
// the time a device's own slices are compiled they already carry every
// descendant's geometry. Offsets come from slicer.Position (DX/DY in
// the parent's pixel grid, DZ in mm); a child slice is merged into the
// parent slice whose layer position is closest, within tolerance.
//
// This Go port compiles one device's full tree per invocation rather
// than the original's multi-device stitching pass, so the original's
// separate device-vs-non-device embedding cases collapse into this one
// same-grid compositing path; a subcomponent whose own pixel/layer grid
// differs from its parent's is embedded at the nearest matching layer
// using its body slice verbatim (without warping pixel size), which is
// exact for the common case of matching grids and an approximation
// otherwise.
func EmbedSubcomponents(tree []*slicer.DeviceSlices) {
	byComponent := make(map[*component.Component]*slicer.DeviceSlices, len(tree))
	for _, ds := range tree {
		byComponent[ds.Component] = ds
	}

	for i := len(tree) - 1; i >= 0; i-- {
		ds := tree[i]
		for _, pos := range ds.Positions {
			if pos.Parent == nil {
				continue
			}
			parentSlices, ok := byComponent[pos.Parent]
			if !ok {
				continue
			}
			embedInto(parentSlices, ds, pos)
		}
	}
}

func embedInto(parent, child *slicer.DeviceSlices, pos slicer.Position) {
	dxPx := int(math.Round(pos.DX))
	dyPx := int(math.Round(pos.DY))
	dzUm := pos.DZ * 1000

	for _, cs := range child.Slices {
		targetZ := cs.LayerPosition + dzUm
		idx := closestLayerIndex(parent.Slices, targetZ)
		if idx < 0 {
			continue
		}
		mergeSlice(&parent.Slices[idx], cs, dxPx, dyPx)
	}
}

func closestLayerIndex(slices []slicer.Slice, targetZ float64) int {
	best, bestDist := -1, math.Inf(1)
	for i, s := range slices {
		d := math.Abs(s.LayerPosition - targetZ)
		if d < bestDist {
			bestDist, best = d, i
		}
	}
	if best >= 0 && bestDist <= zToleranceUm {
		return best
	}
	return -1
}

// mergeSlice ORs child's decoded raster into parent's at (dx, dy),
// clipped to the parent raster's bounds.
func mergeSlice(parent *slicer.Slice, child slicer.Slice, dx, dy int) {
	if child.Image.IsAllZeros() {
		return
	}
	pr := parent.Image.Decode()
	cr := child.Image.Decode()

	for y := 0; y < cr.Height; y++ {
		py := y + dy
		if py < 0 || py >= pr.Height {
			continue
		}
		for x := 0; x < cr.Width; x++ {
			px := x + dx
			if px < 0 || px >= pr.Width {
				continue
			}
			if cr.Pix[y*cr.Width+x] != 0 {
				pr.Pix[py*pr.Width+px] = 255
			}
		}
	}
	parent.Image = slicer.EncodeRLE(pr)
}
