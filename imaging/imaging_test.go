package imaging

import (
	"testing"

	"github.com/3D-Printing-for-Microfluidics/openmfd-go/settings"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/slicer"
)

func square(w, h, x0, y0, x1, y1 int) *slicer.Raster {
	r := slicer.NewRaster(w, h)
	for y := y0; y < y1; y++ {
		r.FillSpan(x0, x1, y, 255)
	}
	return r
}

func TestErodeShrinksAndDilateGrows(t *testing.T) {
	r := square(10, 10, 3, 3, 7, 7)
	eroded := Erode(r, 1)
	if eroded.CountNonZero() >= r.CountNonZero() {
		t.Fatalf("erosion must shrink the non-zero region")
	}
	dilated := Dilate(r, 1)
	if dilated.CountNonZero() <= r.CountNonZero() {
		t.Fatalf("dilation must grow the non-zero region")
	}
}

func TestOpenRemovesIsolatedSpeck(t *testing.T) {
	r := slicer.NewRaster(10, 10)
	r.FillSpan(5, 6, 5, 255) // single isolated pixel
	opened := Open(r, 1)
	if opened.CountNonZero() != 0 {
		t.Fatalf("opening must remove a single-pixel speck")
	}
}

func TestGenerateExposureImagesSplitsMaskedRegion(t *testing.T) {
	body := []*LayerImage{{
		ImageName:     "dev-slice0000.png",
		Image:         square(10, 10, 0, 0, 10, 10),
		LayerPosition: 0,
	}}
	maskRaster := square(10, 10, 0, 0, 5, 10)
	maskSlices := []slicer.Slice{{ImageName: "dev-slice0000.png", Image: slicer.EncodeRLE(maskRaster)}}

	exp := settings.DefaultExposureSettings()
	used := map[string]bool{}
	out := GenerateExposureImages(body, maskSlices, exp, used)

	if len(out) != 1 {
		t.Fatalf("expected one exposure slice, got %d", len(out))
	}
	if body[0].Image.CountNonZero() != 50 {
		t.Fatalf("expected the masked half removed from the body image, got %d lit pixels", body[0].Image.CountNonZero())
	}
	if out[0].Image.CountNonZero() != 50 {
		t.Fatalf("expected the exposure image to hold the masked half, got %d lit pixels", out[0].Image.CountNonZero())
	}
}
