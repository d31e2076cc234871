package imaging

import (
	"math"

	"github.com/3D-Printing-for-Microfluidics/openmfd-go/settings"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/slicer"
)

const membraneToleranceUm = 0.01

// GenerateMembraneImages finds, for each slice, a prior slice roughly
// membrane.MaxMembraneThicknessUm below it; the layers after that prior
// slice up to and including this one (bounded above by the next slice)
// are candidates for a thin extractable membrane. Grounded on
// generate_membrane_images_from_folders.
func GenerateMembraneImages(body []*LayerImage, maskSlices []slicer.Slice, membrane *settings.MembraneSettings, used map[string]bool) []*MembraneLayerImage {
	if len(maskSlices) == 0 {
		return nil
	}
	masks := decodedMasks(maskSlices)

	var out []*MembraneLayerImage
	for i := range body {
		prevIndex := -1
		deltaZ := 0.0
		for j := 0; j < i; j++ {
			deltaZ = math.Abs(body[i].LayerPosition - body[j].LayerPosition)
			if math.Abs(deltaZ-membrane.MaxMembraneThicknessUm) < membraneToleranceUm {
				prevIndex = j
				break
			}
		}
		if math.Abs(deltaZ-membrane.MaxMembraneThicknessUm) > membraneToleranceUm {
			continue
		}

		nextIndex := i + 1
		for j := prevIndex + 1; j < nextIndex; j++ {
			if j >= len(masks) || masks[j] == nil {
				continue
			}
			img := body[j].Image

			var prevImg *slicer.Raster
			if prevIndex < 0 {
				prevImg = slicer.NewRaster(img.Width, img.Height)
			} else {
				if body[prevIndex].Image.CountNonZero() == body[prevIndex].Image.Width*body[prevIndex].Image.Height {
					continue // fully-white prior slice: original's get_slice(invert_check=true) yields nothing
				}
				prevImg = body[prevIndex].Image
			}

			var nextImg *slicer.Raster
			if nextIndex >= len(body) {
				nextImg = slicer.NewRaster(img.Width, img.Height)
			} else {
				if body[nextIndex].Image.CountNonZero() == body[nextIndex].Image.Width*body[nextIndex].Image.Height {
					continue
				}
				nextImg = body[nextIndex].Image
			}

			mask := prevImg.Not().And(nextImg.Not()).And(masks[j])

			candidate := img.And(mask)
			candidate = Open(candidate, 1)
			if candidate.CountNonZero() == 0 {
				continue
			}

			body[j].Image = img.AndNot(candidate)
			dilated := Dilate(candidate, membrane.DilationPx)

			name := uniquePath(used, stem(body[j].ImageName), "membrane")
			out = append(out, &MembraneLayerImage{
				LayerImage: LayerImage{
					ImageName:     name,
					Image:         dilated,
					LayerPosition: body[j].LayerPosition,
					Position:      body[j].Position,
					Exposure:      membrane.ExposureSettings,
				},
				DilationPx: membrane.DilationPx,
			})
		}
	}
	return out
}
