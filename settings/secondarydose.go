package settings

// SecondaryDoseSettings configures edge- and roof-dose extraction
// (spec.md §4.6). Grounded on
// original_source/slicer/settings.py's SecondaryDoseSettings.
type SecondaryDoseSettings struct {
	EdgeErosionPx         int
	EdgeDilationPx        int
	RoofErosionPx         int
	RoofLayersAbove       int
	EdgeExposureSettings  *ExposureSettings
	RoofExposureSettings  *ExposureSettings
}

func NewSecondaryDoseSettings(
	edgeExposureTimeMs *float64, edgeErosionPx, edgeDilationPx int,
	roofExposureTimeMs *float64, roofErosionPx, roofLayersAbove int,
) *SecondaryDoseSettings {
	return &SecondaryDoseSettings{
		EdgeErosionPx:        edgeErosionPx,
		EdgeDilationPx:       edgeDilationPx,
		RoofErosionPx:        roofErosionPx,
		RoofLayersAbove:      roofLayersAbove,
		EdgeExposureSettings: &ExposureSettings{ExposureTimeMs: edgeExposureTimeMs},
		RoofExposureSettings: &ExposureSettings{ExposureTimeMs: roofExposureTimeMs},
	}
}

// HasEdgeDose reports whether edge dosing is configured.
func (s *SecondaryDoseSettings) HasEdgeDose() bool {
	return s.EdgeExposureSettings != nil && s.EdgeExposureSettings.ExposureTimeMs != nil
}

// HasRoofDose reports whether roof dosing is configured.
func (s *SecondaryDoseSettings) HasRoofDose() bool {
	return s.RoofExposureSettings != nil && s.RoofExposureSettings.ExposureTimeMs != nil
}
