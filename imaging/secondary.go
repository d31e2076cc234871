package imaging

import (
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/settings"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/slicer"
)

// GenerateSecondaryDoseImages derives edge and roof secondary-dose
// rasters per slice, subtracting them from the (mutated in place) body
// raster and returning the emitted edge/roof slices. Grounded on
// generate_secondary_images_from_folders.
func GenerateSecondaryDoseImages(
	body []*LayerImage,
	maskSlices []slicer.Slice,
	membranes []*MembraneLayerImage,
	doseSettings *settings.SecondaryDoseSettings,
	used map[string]bool,
) []*LayerImage {
	if len(maskSlices) == 0 {
		return nil
	}
	masks := decodedMasks(maskSlices)

	membranesByName := make(map[string][]*MembraneLayerImage)
	for _, m := range membranes {
		// membrane images are named "{bodyStem}_membrane[...]".
		for _, li := range body {
			if hasMembranePrefix(m.ImageName, stem(li.ImageName)) {
				membranesByName[li.ImageName] = append(membranesByName[li.ImageName], m)
			}
		}
	}

	hasEdge := doseSettings.HasEdgeDose()
	hasRoof := doseSettings.HasRoofDose()

	var out []*LayerImage
	var prevImages []*slicer.Raster

	for i, li := range body {
		if i >= len(masks) || masks[i] == nil {
			continue
		}
		mask := masks[i]
		img := li.Image

		membraneMask := slicer.NewRaster(img.Width, img.Height)
		for _, m := range membranesByName[li.ImageName] {
			og := Erode(m.Image, m.DilationPx)
			membraneMask = membraneMask.Or(og)
		}

		eroded := Erode(img.Or(membraneMask), doseSettings.EdgeErosionPx)
		dilated := Dilate(img.Or(membraneMask), doseSettings.EdgeDilationPx)
		eroded = eroded.AndNot(membraneMask)
		dilated = dilated.AndNot(membraneMask)

		edge := dilated.AndNot(eroded)

		var roof *slicer.Raster
		if doseSettings.RoofLayersAbove > 0 {
			roof = slicer.FullWhite(img.Width, img.Height)
			for _, prev := range prevImages {
				roof = roof.And(Erode(prev, doseSettings.RoofErosionPx))
			}
			roofEroded := Erode(img, doseSettings.RoofErosionPx)
			roof = roofEroded.AndNot(roof.Or(membraneMask))
		}

		if doseSettings.RoofLayersAbove > 0 {
			prevImages = append(prevImages, img.Clone())
			if len(prevImages) > doseSettings.RoofLayersAbove {
				prevImages = prevImages[1:]
			}
		}

		var nonBulk *slicer.Raster
		if roof != nil {
			nonBulk = edge.Or(roof)
		} else {
			nonBulk = edge
		}
		bulk := img.AndNot(nonBulk)

		if !hasEdge && !hasRoof {
			continue
		} else if !hasEdge {
			edge = nil
		} else if !hasRoof {
			roof = nil
		} else {
			edgeDose := *doseSettings.EdgeExposureSettings.ExposureTimeMs
			roofDose := *doseSettings.RoofExposureSettings.ExposureTimeMs
			if edgeDose >= roofDose {
				edge = edge.AndNot(roof)
			} else {
				roof = roof.AndNot(edge)
			}
		}

		outside := img.AndNot(mask)
		inside := bulk.And(mask)
		bulk = outside.Or(inside)

		if edge != nil {
			edge = edge.And(mask)
		}
		if roof != nil {
			roof = roof.And(mask)
		}

		if bulk.CountNonZero() == 0 {
			bulk = nil
		}
		if edge != nil && edge.CountNonZero() == 0 {
			edge = nil
		}
		if roof != nil && roof.CountNonZero() == 0 {
			roof = nil
		}

		if bulk != nil && !bulk.Equal(img) {
			li.Image = bulk
		}
		if edge != nil {
			name := uniquePath(used, stem(li.ImageName), "edge")
			out = append(out, &LayerImage{
				ImageName:     name,
				Image:         edge,
				LayerPosition: li.LayerPosition,
				Position:      li.Position,
				Exposure:      doseSettings.EdgeExposureSettings,
			})
		}
		if roof != nil {
			name := uniquePath(used, stem(li.ImageName), "roof")
			out = append(out, &LayerImage{
				ImageName:     name,
				Image:         roof,
				LayerPosition: li.LayerPosition,
				Position:      li.Position,
				Exposure:      doseSettings.RoofExposureSettings,
			})
		}
	}
	return out
}

func hasMembranePrefix(membraneName, bodyStem string) bool {
	prefix := bodyStem + "_membrane"
	if len(membraneName) < len(prefix) {
		return false
	}
	return membraneName[:len(prefix)] == prefix
}
