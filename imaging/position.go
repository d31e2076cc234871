package imaging

import (
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/settings"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/slicer"
)

// GeneratePositionImages attaches pos to every body slice whose
// corresponding regional mask (by index — both lists are produced by
// the same per-layer walk, see slicer.sliceLayers) is non-empty.
// Grounded on generate_position_images_from_folders.
func GeneratePositionImages(body []*LayerImage, maskSlices []slicer.Slice, pos *settings.PositionSettings) {
	if len(maskSlices) == 0 {
		return
	}
	masks := decodedMasks(maskSlices)
	for i, li := range body {
		if i >= len(masks) || masks[i] == nil {
			continue
		}
		li.Position = pos
	}
}
