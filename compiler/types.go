package compiler

import (
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/settings"
)

// ImageRef is one image-settings-list entry within a compiled layer:
// an image file name paired with the name of the image settings applied
// to it, matching spec.md §6's "Image settings list" array.
type ImageRef struct {
	ImageFile    string
	SettingsName string
}

// Layer is one minimized entry in spec.md §6's "Layers" array: a run of
// Duplications identical layers sharing a position-settings name and an
// ordered image list.
type Layer struct {
	Duplications         int
	PositionSettingsName string
	Images               []ImageRef
}

// CompiledDevice is the result of compiling one device's slice tree: its
// minimized layer list plus the named-settings tables the layers
// reference, ready for JSON rendering.
type CompiledDevice struct {
	Name          string
	Layers        []Layer
	PositionTable *NamedSettingsTable
	ImageTable    *NamedSettingsTable
}

func defaultPositionFor(dev interface{ DefaultPositionSettings() any }) *settings.PositionSettings {
	if v, ok := dev.DefaultPositionSettings().(*settings.PositionSettings); ok && v != nil {
		return v
	}
	return settings.DefaultPositionSettings()
}

func defaultExposureFor(dev interface{ DefaultExposureSettings() any }) *settings.ExposureSettings {
	if v, ok := dev.DefaultExposureSettings().(*settings.ExposureSettings); ok && v != nil {
		return v
	}
	return settings.DefaultExposureSettings()
}
