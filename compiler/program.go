package compiler

import (
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/settings"
)

// schemaVersion is the print-program JSON schema version spec.md §6
// names.
const schemaVersion = "5.0.0"

// BuildPrintProgram assembles spec.md §6's top-level print-program JSON
// object for a single compiled device.
func BuildPrintProgram(dev *CompiledDevice, cfg *settings.Settings, designFile, date string, minimized bool) map[string]any {
	imageDir := "slices"
	if minimized {
		imageDir = "minimized_slices"
	}

	namedPositions := map[string]any{}
	for name, delta := range dev.PositionTable.Deltas() {
		namedPositions[name] = delta
	}
	namedImages := map[string]any{}
	for name, delta := range dev.ImageTable.Deltas() {
		namedImages[name] = delta
	}

	var layers []any
	for _, l := range dev.Layers {
		var images []any
		for _, ref := range l.Images {
			images = append(images, map[string]any{
				"Image file":                 ref.ImageFile,
				"Using named image settings": ref.SettingsName,
			})
		}
		layers = append(layers, map[string]any{
			"Number of duplications": l.Duplications,
			"Position settings": map[string]any{
				"Using named position settings": l.PositionSettingsName,
			},
			"Image settings list": images,
		})
	}

	return map[string]any{
		"Header": map[string]any{
			"Schema version":  schemaVersion,
			"Image directory": imageDir,
		},
		"Design":                   cfg.Header(designFile, date),
		"Variables":                map[string]any{},
		"Default layer settings":   cfg.DefaultLayerSettings(),
		"Special print techniques": cfg.SpecialPrintTechniquesDict(),
		"Named position settings":  namedPositions,
		"Named image settings":     namedImages,
		"Named layer groups":       map[string]any{},
		"Layers":                   layers,
	}
}
