// Package imaging derives position, exposure, membrane, and secondary-dose
// masks from a device's sliced rasters, grounded on
// original_source/slicer/image_generation.py. There is no morphology
// library anywhere in the retrieved corpus, so Erode/Dilate/Open are
// hand-written over slicer.Raster — documented stdlib-only in DESIGN.md.
package imaging

import "github.com/3D-Printing-for-Microfluidics/openmfd-go/slicer"

// Erode shrinks the non-zero region of r by radiusPx using a square
// (2*radiusPx+1)-sided structuring element: a pixel survives only if
// every pixel within the kernel is also non-zero. Matches
// cv2.erode with a cv2.MORPH_RECT kernel away from the image border;
// pixels within radiusPx of the border erode as well (see atOrEdge).
func Erode(r *slicer.Raster, radiusPx int) *slicer.Raster {
	return rectMorph(r, radiusPx, true)
}

// Dilate grows the non-zero region of r by radiusPx: a pixel is set if
// any pixel within the kernel is non-zero. Matches cv2.dilate with a
// cv2.MORPH_RECT kernel.
func Dilate(r *slicer.Raster, radiusPx int) *slicer.Raster {
	return rectMorph(r, radiusPx, false)
}

// Open erodes then dilates by the same radius, removing small isolated
// specks while preserving the shape of larger regions. Matches
// cv2.morphologyEx(..., cv2.MORPH_OPEN, ...).
func Open(r *slicer.Raster, radiusPx int) *slicer.Raster {
	return Dilate(Erode(r, radiusPx), radiusPx)
}

func rectMorph(r *slicer.Raster, radius int, erode bool) *slicer.Raster {
	if radius <= 0 {
		return r.Clone()
	}
	out := slicer.NewRaster(r.Width, r.Height)
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			var result bool
			if erode {
				result = true
			loopErode:
				for dy := -radius; dy <= radius; dy++ {
					for dx := -radius; dx <= radius; dx++ {
						if atOrEdge(r, x+dx, y+dy) == 0 {
							result = false
							break loopErode
						}
					}
				}
			} else {
			loopDilate:
				for dy := -radius; dy <= radius; dy++ {
					for dx := -radius; dx <= radius; dx++ {
						if atOrEdge(r, x+dx, y+dy) != 0 {
							result = true
							break loopDilate
						}
					}
				}
			}
			if result {
				out.Pix[y*r.Width+x] = 255
			}
		}
	}
	return out
}

// atOrEdge samples r at (x,y), treating out-of-bounds as 0 (background)
// for both erode and dilate — a constant-zero border. For dilate this
// agrees with OpenCV's default; for erode it does not, since OpenCV's
// default erode border never removes pixels at the image edge.
func atOrEdge(r *slicer.Raster, x, y int) byte {
	if x < 0 || x >= r.Width || y < 0 || y >= r.Height {
		return 0
	}
	return r.Pix[y*r.Width+x]
}
