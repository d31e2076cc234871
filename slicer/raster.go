// Package slicer turns a component's composite CSG solid into per-layer
// grayscale rasters, grounded on
// original_source/backend/slice.py's _slice/slice_component and the
// teacher's Pixmap (pixmap.go) buffer idiom.
package slicer

import (
	"image"
	"image/png"
	"io"
	"math"

	"github.com/3D-Printing-for-Microfluidics/openmfd-go/manifold"
)

// Raster is an 8-bit grayscale mask: 255 means "expose", 0 means "dark",
// matching spec.md §4.5/§6. It is the slicer's equivalent of the teacher's
// Pixmap, generalized from RGBA to a single exposure channel.
type Raster struct {
	Width, Height int
	Pix           []byte // row-major, one byte per pixel
}

// NewRaster returns a w×h raster cleared to 0 (dark).
func NewRaster(w, h int) *Raster {
	return &Raster{Width: w, Height: h, Pix: make([]byte, w*h)}
}

func (r *Raster) at(x, y int) byte {
	if x < 0 || x >= r.Width || y < 0 || y >= r.Height {
		return 0
	}
	return r.Pix[y*r.Width+x]
}

func (r *Raster) set(x, y int, v byte) {
	if x < 0 || x >= r.Width || y < 0 || y >= r.Height {
		return
	}
	r.Pix[y*r.Width+x] = v
}

// FillSpan sets pixels [x1, x2) on row y to v, matching Pixmap.FillSpan's
// bounds-clamping behaviour.
func (r *Raster) FillSpan(x1, x2, y int, v byte) {
	if y < 0 || y >= r.Height || x1 >= x2 {
		return
	}
	if x1 < 0 {
		x1 = 0
	}
	if x2 > r.Width {
		x2 = r.Width
	}
	for x := x1; x < x2; x++ {
		r.Pix[y*r.Width+x] = v
	}
}

// IsEmpty reports whether every pixel is 0.
func (r *Raster) IsEmpty() bool {
	for _, v := range r.Pix {
		if v != 0 {
			return false
		}
	}
	return true
}

// CountNonZero returns the number of non-zero pixels, the Raster
// equivalent of cv2.countNonZero used throughout
// original_source/slicer/image_generation.py.
func (r *Raster) CountNonZero() int {
	n := 0
	for _, v := range r.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of r.
func (r *Raster) Clone() *Raster {
	cp := &Raster{Width: r.Width, Height: r.Height, Pix: make([]byte, len(r.Pix))}
	copy(cp.Pix, r.Pix)
	return cp
}

// FullWhite returns a w×h raster with every pixel set to 255.
func FullWhite(w, h int) *Raster {
	r := NewRaster(w, h)
	for i := range r.Pix {
		r.Pix[i] = 255
	}
	return r
}

// And returns the pixelwise AND of r and other (each treated as a
// boolean mask, 0 vs non-zero), matching cv2.bitwise_and.
func (r *Raster) And(other *Raster) *Raster {
	return combine(r, other, func(a, b byte) byte {
		if a != 0 && b != 0 {
			return 255
		}
		return 0
	})
}

// Or returns the pixelwise OR of r and other.
func (r *Raster) Or(other *Raster) *Raster {
	return combine(r, other, func(a, b byte) byte {
		if a != 0 || b != 0 {
			return 255
		}
		return 0
	})
}

// Xor returns the pixelwise XOR of r and other.
func (r *Raster) Xor(other *Raster) *Raster {
	return combine(r, other, func(a, b byte) byte {
		if (a != 0) != (b != 0) {
			return 255
		}
		return 0
	})
}

// AndNot returns r AND (NOT other).
func (r *Raster) AndNot(other *Raster) *Raster {
	return combine(r, other, func(a, b byte) byte {
		if a != 0 && b == 0 {
			return 255
		}
		return 0
	})
}

// Not returns the pixelwise complement of r.
func (r *Raster) Not() *Raster {
	out := NewRaster(r.Width, r.Height)
	for i, v := range r.Pix {
		if v == 0 {
			out.Pix[i] = 255
		}
	}
	return out
}

// Equal reports whether r and other have identical dimensions and
// pixels.
func (r *Raster) Equal(other *Raster) bool {
	if r.Width != other.Width || r.Height != other.Height {
		return false
	}
	for i, v := range r.Pix {
		if other.Pix[i] != v {
			return false
		}
	}
	return true
}

func combine(a, b *Raster, f func(a, b byte) byte) *Raster {
	out := NewRaster(a.Width, a.Height)
	for i := range out.Pix {
		out.Pix[i] = f(a.Pix[i], b.Pix[i])
	}
	return out
}

// ToImage returns r as a standard library grayscale image, for PNG output.
func (r *Raster) ToImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, r.Width, r.Height))
	copy(img.Pix, r.Pix)
	return img
}

// EncodePNG writes r to w as an 8-bit grayscale PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	return png.Encode(w, r.ToImage())
}

// signedArea2x returns twice the signed area swept by the polygon's
// edges; positive means clockwise in the already Y-flipped pixel space,
// matching original_source/backend/slice.py's _is_clockwise.
func signedArea2x(points []pixelPoint) float64 {
	var sum float64
	for i := range points {
		a := points[i]
		b := points[(i+1)%len(points)]
		sum += (b.x - a.x) * (b.y + a.y)
	}
	return sum
}

type pixelPoint struct{ x, y float64 }

// projectPolygon converts a world-space slicing polygon into local pixel
// coordinates: subtract the device's own XY world position, round to the
// nearest integer pixel, then flip Y so row 0 is the image's top edge.
func projectPolygon(poly manifold.Polygon, originX, originY float64, height int) []pixelPoint {
	out := make([]pixelPoint, len(poly.Points))
	for i, p := range poly.Points {
		x := math.Round(p.X - originX)
		y := math.Round(p.Y - originY)
		out[i] = pixelPoint{x: x, y: float64(height) - y}
	}
	return out
}

// FillPolygon rasterises one already-pixel-projected polygon onto r using
// a standard scanline point-in-polygon fill (one row of pixel centres at
// a time), with v chosen by the caller from the polygon's own winding
// direction. Grounded on PIL's ImageDraw.polygon via
// original_source/backend/slice.py's per-polygon draw call: each polygon
// is painted independently in sequence, so a later hole polygon (v=0)
// overwrites whatever an earlier solid polygon (v=255) already painted in
// the same pixels.
func (r *Raster) FillPolygon(points []pixelPoint, v byte) {
	if len(points) < 3 {
		return
	}
	minY, maxY := points[0].y, points[0].y
	for _, p := range points {
		minY = math.Min(minY, p.y)
		maxY = math.Max(maxY, p.y)
	}
	y0 := int(math.Floor(minY))
	y1 := int(math.Ceil(maxY))
	if y0 < 0 {
		y0 = 0
	}
	if y1 > r.Height {
		y1 = r.Height
	}

	for y := y0; y < y1; y++ {
		scan := float64(y) + 0.5
		var xs []float64
		for i := range points {
			a := points[i]
			b := points[(i+1)%len(points)]
			if (a.y <= scan && b.y > scan) || (b.y <= scan && a.y > scan) {
				t := (scan - a.y) / (b.y - a.y)
				xs = append(xs, a.x+t*(b.x-a.x))
			}
		}
		sortFloats(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			r.FillSpan(int(math.Round(xs[i])), int(math.Round(xs[i+1])), y, v)
		}
	}
}

func sortFloats(xs []float64) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}

// RasterizeLayer paints every polygon from one Z-slice onto a fresh
// w×h raster, filling clockwise polygons solid and counter-clockwise
// polygons (holes) dark, per spec.md §4.5 step 5.
func RasterizeLayer(polygons []manifold.Polygon, w, h int, originX, originY float64) *Raster {
	r := NewRaster(w, h)
	for _, poly := range polygons {
		pts := projectPolygon(poly, originX, originY, h)
		v := byte(0)
		if signedArea2x(pts) > 0 {
			v = 255
		}
		r.FillPolygon(pts, v)
	}
	return r
}
