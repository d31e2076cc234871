package component

import "github.com/3D-Printing-for-Microfluidics/openmfd-go/manifold"

// StitchedDevice is a Device whose logical raster is a grid of tiles of a
// base pixel count with per-tile overlap, grounded on
// original_source/openmfd.py's StitchedDevice class.
type StitchedDevice struct {
	*Device

	TilesX, TilesY   int
	BasePxCount      [2]int
	OverlapPx        int
}

// NewStitchedDevice constructs a StitchedDevice tiling tilesX*tilesY tiles
// of basePxCount pixels each, overlapping by overlapPx pixels.
func NewStitchedDevice(name string, position manifold.Vec3, layers int, basePxCount [2]int, tilesX, tilesY, overlapPx int, opts ...DeviceOption) (*StitchedDevice, error) {
	if tilesX < 1 || tilesY < 1 {
		return nil, errStitchTiles
	}
	if overlapPx < 0 || overlapPx >= basePxCount[0] || overlapPx >= basePxCount[1] {
		return nil, errStitchOverlap
	}

	loc := callerFile()
	stitchedW := basePxCount[0]*tilesX - overlapPx*(tilesX-1)
	stitchedH := basePxCount[1]*tilesY - overlapPx*(tilesY-1)

	o := resolveDeviceOptions(append(opts, WithPxCount(stitchedW, stitchedH)))
	co := resolveOptions(o.componentOpts)

	size := manifold.Vec3{X: float64(stitchedW), Y: float64(stitchedH), Z: float64(layers)}
	c := newComponent("StitchedDevice", size, position, co, loc)
	c.name = name

	return &StitchedDevice{
		Device:      &Device{Component: c, Layers: layers, PxCount: [2]int{stitchedW, stitchedH}},
		TilesX:      tilesX,
		TilesY:      tilesY,
		BasePxCount: basePxCount,
		OverlapPx:   overlapPx,
	}, nil
}

// Tiles returns the per-tile pixel-space origin of every tile in the
// stitched grid, in row-major (y, then x) order, for use by the print
// compiler when it splits a stitched slice into per-tile rasters.
func (s *StitchedDevice) Tiles() [][2]int {
	out := make([][2]int, 0, s.TilesX*s.TilesY)
	for ty := 0; ty < s.TilesY; ty++ {
		for tx := 0; tx < s.TilesX; tx++ {
			x := tx * (s.BasePxCount[0] - s.OverlapPx)
			y := ty * (s.BasePxCount[1] - s.OverlapPx)
			out = append(out, [2]int{x, y})
		}
	}
	return out
}
