package compiler

import (
	"sort"

	"github.com/3D-Printing-for-Microfluidics/openmfd-go/imaging"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/slicer"
)

// CombinedExposure is one output image emitted by CombineExposures: a
// mask plus the exposure time the light engine spends on it, after all
// of a group's overlapping images have had their doses summed.
type CombinedExposure struct {
	Image          *slicer.Raster
	ExposureTimeMs float64
	Source         *imaging.LayerImage // representative image the other settings come from
}

// CombineExposures sums per-pixel exposure time across every image in a
// settings group and re-expresses the result as a small number of
// non-overlapping masks, each exposed for the marginal time beyond the
// previous threshold: for ascending unique dose levels u_1 < u_2 < ...,
// layer i's mask is [sum >= u_i] and its exposure time is u_i - u_(i-1).
// Grounded on the exposure-sum combination block in the original
// slicer's make_print_file (the image_from_dict / exposure_sum logic).
func CombineExposures(group []*imaging.LayerImage) []CombinedExposure {
	if len(group) == 0 {
		return nil
	}
	if len(group) == 1 {
		li := group[0]
		return []CombinedExposure{{
			Image:          li.Image,
			ExposureTimeMs: derefF64(li.Exposure.ExposureTimeMs),
			Source:         li,
		}}
	}

	w, h := group[0].Image.Width, group[0].Image.Height
	sum := make([]float64, w*h)
	for _, li := range group {
		exp := derefF64(li.Exposure.ExposureTimeMs)
		if exp == 0 {
			continue
		}
		for i, v := range li.Image.Pix {
			if v != 0 {
				sum[i] += exp
			}
		}
	}

	unique := uniqueSortedPositive(sum)
	out := make([]CombinedExposure, 0, len(unique))
	prev := 0.0
	for _, u := range unique {
		img := slicer.NewRaster(w, h)
		for i, v := range sum {
			if v >= u {
				img.Pix[i] = 255
			}
		}
		out = append(out, CombinedExposure{
			Image:          img,
			ExposureTimeMs: u - prev,
			Source:         group[0],
		})
		prev = u
	}
	return out
}

func uniqueSortedPositive(vals []float64) []float64 {
	seen := make(map[float64]bool)
	var out []float64
	for _, v := range vals {
		if v <= 0 || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Float64s(out)
	return out
}
