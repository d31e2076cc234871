package imaging

import (
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/settings"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/slicer"
)

// GenerateExposureImages splits each body slice whose mask is non-empty
// into a dark-region image (kept in place) and an exposure-region image
// (returned as a new slice list carrying exp's settings). Grounded on
// generate_exposure_images_from_folders.
func GenerateExposureImages(body []*LayerImage, maskSlices []slicer.Slice, exp *settings.ExposureSettings, used map[string]bool) []*LayerImage {
	if len(maskSlices) == 0 {
		return nil
	}
	masks := decodedMasks(maskSlices)

	var out []*LayerImage
	for i, li := range body {
		if i >= len(masks) || masks[i] == nil {
			continue
		}
		mask := masks[i]
		exposureImg := li.Image.And(mask)
		li.Image = li.Image.AndNot(mask)

		if exposureImg.CountNonZero() == 0 {
			continue
		}
		name := uniquePath(used, stem(li.ImageName), "regional")
		out = append(out, &LayerImage{
			ImageName:     name,
			Image:         exposureImg,
			LayerPosition: li.LayerPosition,
			Position:      li.Position,
			Exposure:      exp,
		})
	}
	return out
}
