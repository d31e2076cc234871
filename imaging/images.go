package imaging

import (
	"fmt"
	"strings"

	"github.com/3D-Printing-for-Microfluidics/openmfd-go/settings"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/slicer"
)

// LayerImage is one in-memory raster plus the settings a later compiler
// stage will attach to it, the decoded working form of a slicer.Slice.
type LayerImage struct {
	ImageName     string
	Image         *slicer.Raster
	LayerPosition float64
	Position      *settings.PositionSettings
	Exposure      *settings.ExposureSettings
}

// MembraneLayerImage additionally carries the dilation radius the
// compiler needs to re-derive the pre-dilation membrane shape later.
type MembraneLayerImage struct {
	LayerImage
	DilationPx int
}

// FromSlices decodes a device's raw slice list into mutable LayerImages.
func FromSlices(slices []slicer.Slice) []*LayerImage {
	out := make([]*LayerImage, len(slices))
	for i, s := range slices {
		out[i] = &LayerImage{ImageName: s.ImageName, Image: s.Image.Decode(), LayerPosition: s.LayerPosition}
	}
	return out
}

// decodedMasks decodes a device's regional mask slice list, returning
// nil at any index whose packed mask is entirely dark — matching
// get_mask_from_masks_data's "all zeros means no mask" rule.
func decodedMasks(masks []slicer.Slice) []*slicer.Raster {
	out := make([]*slicer.Raster, len(masks))
	for i, m := range masks {
		if m.Image.IsAllZeros() {
			continue
		}
		out[i] = m.Image.Decode()
	}
	return out
}

// stem strips the .png suffix from an image name, mirroring
// pathlib.Path(name).stem.
func stem(name string) string {
	return strings.TrimSuffix(name, ".png")
}

// uniquePath synthesises a non-colliding derived image name, the Go
// equivalent of original_source/slicer/uniqueimagestore.py's
// get_unique_path: {stem}_{postfix}.png, or {stem}_{postfix}_{n}.png on
// collision against used.
func uniquePath(used map[string]bool, baseStem, postfix string) string {
	candidate := fmt.Sprintf("%s_%s.png", baseStem, postfix)
	if !used[candidate] {
		used[candidate] = true
		return candidate
	}
	for n := 1; ; n++ {
		candidate = fmt.Sprintf("%s_%s_%d.png", baseStem, postfix, n)
		if !used[candidate] {
			used[candidate] = true
			return candidate
		}
	}
}
