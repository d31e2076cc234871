package compiler

import (
	"sort"

	"github.com/3D-Printing-for-Microfluidics/openmfd-go/imaging"
)

// GroupBySettings partitions one layer's images into groups that share
// an ExposureSettings.GroupKey (light engine, XY offset, focus, power,
// wavelength, grayscale correction — image file, exposure time, and both
// wait times are ignored), then sorts the groups by light engine, XY
// offset, focus, power and grayscale correction. Grounded on
// _group_images_by_settings in the original slicer.
func GroupBySettings(images []*imaging.LayerImage) [][]*imaging.LayerImage {
	var groups [][]*imaging.LayerImage
	var keys []any
	var reps []*imaging.LayerImage
	for _, img := range images {
		k := img.Exposure.GroupKey()
		placed := false
		for i := range groups {
			if keys[i] == any(k) {
				groups[i] = append(groups[i], img)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []*imaging.LayerImage{img})
			keys = append(keys, k)
			reps = append(reps, img)
		}
	}

	order := make([]int, len(groups))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return groupLess(reps[order[a]], reps[order[b]])
	})

	out := make([][]*imaging.LayerImage, len(groups))
	for i, idx := range order {
		out[i] = groups[idx]
	}
	return out
}

func groupLess(a, b *imaging.LayerImage) bool {
	ae, be := a.Exposure, b.Exposure
	al, bl := derefStr(ae.LightEngine), derefStr(be.LightEngine)
	if al != bl {
		return al < bl
	}
	ax, bx := derefF64(ae.ImageXOffsetUm), derefF64(be.ImageXOffsetUm)
	if ax != bx {
		return ax < bx
	}
	ay, by := derefF64(ae.ImageYOffsetUm), derefF64(be.ImageYOffsetUm)
	if ay != by {
		return ay < by
	}
	af, bf := derefF64(ae.RelativeFocusPositionUm), derefF64(be.RelativeFocusPositionUm)
	if af != bf {
		return af < bf
	}
	ap, bp := derefInt(ae.PowerSetting), derefInt(be.PowerSetting)
	if ap != bp {
		return ap < bp
	}
	return !derefBool(ae.GrayscaleCorrection) && derefBool(be.GrayscaleCorrection)
}

func derefStr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func derefF64(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func derefInt(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func derefBool(p *bool) bool {
	if p == nil {
		return false
	}
	return *p
}
