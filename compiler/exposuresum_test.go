package compiler

import (
	"testing"

	"github.com/3D-Printing-for-Microfluidics/openmfd-go/imaging"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/settings"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/slicer"
)

// raster builds a w x h mask from a list of lit pixel indices.
func raster(w, h int, lit ...int) *slicer.Raster {
	img := slicer.NewRaster(w, h)
	for _, i := range lit {
		img.Pix[i] = 255
	}
	return img
}

func layerImage(img *slicer.Raster, exposureMs float64) *imaging.LayerImage {
	return &imaging.LayerImage{
		Image:    img,
		Exposure: &settings.ExposureSettings{ExposureTimeMs: f64Ptr(exposureMs)},
	}
}

// TestCombineExposuresScenarioD constructs the overlapping-square-mask case:
// a base square A exposed for 100ms and a smaller square B, fully nested
// inside A, exposed for an additional 150ms wherever it's lit. The overlap
// region therefore needs a cumulative 250ms of light: 100ms from A plus
// 150ms more from B. CombineExposures must re-express this as two
// non-overlapping layers: A's full footprint (A union B, since B is nested)
// at 100ms, then B's footprint alone (A intersect B) at the marginal 150ms.
func TestCombineExposuresScenarioD(t *testing.T) {
	const w, h = 4, 1
	// A covers pixels 0,1,2; B is nested inside A and covers pixels 1,2.
	a := layerImage(raster(w, h, 0, 1, 2), 100)
	b := layerImage(raster(w, h, 1, 2), 150)

	out := CombineExposures([]*imaging.LayerImage{a, b})
	if len(out) != 2 {
		t.Fatalf("expected 2 combined layers, got %d", len(out))
	}

	if out[0].ExposureTimeMs != 100 {
		t.Fatalf("expected first layer exposure 100ms, got %v", out[0].ExposureTimeMs)
	}
	wantUnion := raster(w, h, 0, 1, 2)
	if !pixEqual(out[0].Image, wantUnion) {
		t.Fatalf("expected first layer mask to be A union B, got %v", out[0].Image.Pix)
	}

	if out[1].ExposureTimeMs != 150 {
		t.Fatalf("expected second layer exposure 150ms, got %v", out[1].ExposureTimeMs)
	}
	wantIntersection := raster(w, h, 1, 2)
	if !pixEqual(out[1].Image, wantIntersection) {
		t.Fatalf("expected second layer mask to be A intersect B, got %v", out[1].Image.Pix)
	}
}

// TestCombineExposuresPixelwiseExposureSumLaw verifies spec.md's exposure-sum
// law directly: for every pixel, the total exposure time it receives across
// all emitted layers whose mask lights that pixel equals the additive sum
// of the native exposure times of every input image that lit it.
func TestCombineExposuresPixelwiseExposureSumLaw(t *testing.T) {
	const w, h = 4, 1
	// A: pixels 0,1,2 at 100ms. B: pixels 1,2,3 at 250ms (partial overlap,
	// neither mask nested in the other).
	a := layerImage(raster(w, h, 0, 1, 2), 100)
	b := layerImage(raster(w, h, 1, 2, 3), 250)

	group := []*imaging.LayerImage{a, b}
	out := CombineExposures(group)
	if len(out) == 0 {
		t.Fatalf("expected at least one combined layer")
	}

	for px := 0; px < w*h; px++ {
		var want float64
		for _, li := range group {
			if li.Image.Pix[px] != 0 {
				want += *li.Exposure.ExposureTimeMs
			}
		}

		var got float64
		for _, ce := range out {
			if ce.Image.Pix[px] != 0 {
				got += ce.ExposureTimeMs
			}
		}

		if got != want {
			t.Fatalf("pixel %d: exposure-sum law violated, want %v got %v", px, want, got)
		}
	}
}

func TestCombineExposuresSingleImagePassesThrough(t *testing.T) {
	img := raster(2, 2, 0, 3)
	li := layerImage(img, 200)

	out := CombineExposures([]*imaging.LayerImage{li})
	if len(out) != 1 {
		t.Fatalf("expected 1 combined layer for a single-image group, got %d", len(out))
	}
	if out[0].ExposureTimeMs != 200 {
		t.Fatalf("expected exposure 200ms unchanged, got %v", out[0].ExposureTimeMs)
	}
	if !pixEqual(out[0].Image, img) {
		t.Fatalf("expected mask to pass through unchanged")
	}
}

func pixEqual(a, b *slicer.Raster) bool {
	if a.Width != b.Width || a.Height != b.Height {
		return false
	}
	for i := range a.Pix {
		if (a.Pix[i] != 0) != (b.Pix[i] != 0) {
			return false
		}
	}
	return true
}
