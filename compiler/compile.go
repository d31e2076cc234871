package compiler

import (
	"bytes"
	"sort"

	"github.com/3D-Printing-for-Microfluidics/openmfd-go/component"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/imaging"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/imgstore"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/manifold"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/settings"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/slicer"
)

// CompileDevice runs spec.md §4.7's full pipeline for one device: slice
// its tree, embed every subcomponent's geometry into it, derive
// position/exposure/membrane/secondary-dose images from its regional
// settings, combine overlapping exposures, deduplicate settings into
// named tables, minimize identical adjacent layers, and store every
// distinct image in store. store is shared across every device in a
// print job so identical images anywhere in the design dedupe together.
func CompileDevice(dev *component.Component, lib manifold.Library, store *imgstore.UniqueImageStore) (*CompiledDevice, error) {
	tree, err := slicer.SliceComponent(dev, lib)
	if err != nil {
		return nil, err
	}
	if len(tree) == 0 {
		return nil, errNoLayers
	}
	EmbedSubcomponents(tree)

	root := tree[0]
	if len(root.Slices) == 0 {
		return nil, errNoLayers
	}

	defaultPos := defaultPositionFor(dev)
	defaultExp := defaultExposureFor(dev)

	body := imaging.FromSlices(root.Slices)
	for _, li := range body {
		li.Position = defaultPos
		li.Exposure = defaultExp
	}

	used := make(map[string]bool, len(body))
	for _, li := range body {
		used[li.ImageName] = true
	}

	var extras []*imaging.LayerImage
	var membranes []*imaging.MembraneLayerImage
	regional := dev.RegionalSettings()
	for region, maskSlices := range root.Masks {
		switch s := regional[region].(type) {
		case *settings.PositionSettings:
			imaging.GeneratePositionImages(body, maskSlices, s)
		case *settings.ExposureSettings:
			extras = append(extras, imaging.GenerateExposureImages(body, maskSlices, s, used)...)
		case *settings.MembraneSettings:
			membranes = append(membranes, imaging.GenerateMembraneImages(body, maskSlices, s, used)...)
		case *settings.SecondaryDoseSettings:
			extras = append(extras, imaging.GenerateSecondaryDoseImages(body, maskSlices, membranes, s, used)...)
		}
	}
	for _, m := range membranes {
		extras = append(extras, &m.LayerImage)
	}

	all := append(body, extras...)
	var nonEmpty []*imaging.LayerImage
	for _, li := range all {
		if li.Image.CountNonZero() > 0 {
			nonEmpty = append(nonEmpty, li)
		}
	}
	all = nonEmpty

	byLayer := make(map[float64][]*imaging.LayerImage)
	for _, li := range all {
		byLayer[li.LayerPosition] = append(byLayer[li.LayerPosition], li)
	}
	var positions []float64
	for p := range byLayer {
		positions = append(positions, p)
	}
	sort.Float64s(positions)

	name, _ := dev.FullyQualifiedName()
	posTable := NewNamedSettingsTable("position", "Using named position settings", defaultPos.ToDict())
	imgTable := NewNamedSettingsTable("image", "Using named image settings", defaultExp.ToDict())
	noIgnores := map[string]bool{}

	var layers []Layer
	prevPos := 0.0
	for _, p := range positions {
		imgs := byLayer[p]
		sort.SliceStable(imgs, func(i, j int) bool {
			return derefF64(imgs[i].Exposure.ExposureTimeMs) < derefF64(imgs[j].Exposure.ExposureTimeMs)
		})

		thickness := p - prevPos
		prevPos = p

		var imageRefs []ImageRef
		positionName := posTable.Resolve(withThickness(defaultPos, imgs[0].Position, thickness), noIgnores)

		for gi, g := range GroupBySettings(imgs) {
			for _, c := range CombineExposures(g) {
				if c.ExposureTimeMs <= 0 || c.Image.CountNonZero() == 0 {
					continue
				}
				exp := g[0].Exposure.Copy()
				exp.ExposureTimeMs = f64Ptr(c.ExposureTimeMs)

				var buf bytes.Buffer
				if err := c.Image.EncodePNG(&buf); err != nil {
					return nil, err
				}
				storedName := store.AddImage(imageNameFor(g[0], gi), buf.Bytes())
				settingsName := imgTable.Resolve(exp.ToDict(), noIgnores)
				imageRefs = append(imageRefs, ImageRef{ImageFile: storedName, SettingsName: settingsName})
			}
		}

		layers = append(layers, Layer{Duplications: 1, PositionSettingsName: positionName, Images: imageRefs})
	}

	return &CompiledDevice{
		Name:          name,
		Layers:        Minimize(layers),
		PositionTable: posTable,
		ImageTable:    imgTable,
	}, nil
}

func withThickness(base, override *settings.PositionSettings, thicknessUm float64) map[string]any {
	p := base
	if override != nil {
		p = override
	}
	cp := p.Copy()
	cp.LayerThicknessUm = f64Ptr(thicknessUm)
	return cp.ToDict()
}

func imageNameFor(li *imaging.LayerImage, groupIndex int) string {
	return li.ImageName
}

func f64Ptr(v float64) *float64 { return &v }
