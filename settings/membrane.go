package settings

// MembraneSettings configures membrane-layer extraction (spec.md §4.6).
// Grounded on original_source/slicer/settings.py's MembraneSettings.
type MembraneSettings struct {
	MaxMembraneThicknessUm float64
	DilationPx             int
	ExposureSettings       *ExposureSettings
}

func NewMembraneSettings(maxThicknessUm, exposureTimeMs float64, dilationPx int) *MembraneSettings {
	return &MembraneSettings{
		MaxMembraneThicknessUm: maxThicknessUm,
		DilationPx:             dilationPx,
		ExposureSettings:       &ExposureSettings{ExposureTimeMs: f64(exposureTimeMs)},
	}
}

func (m *MembraneSettings) Equal(other *MembraneSettings) bool {
	return m.MaxMembraneThicknessUm == other.MaxMembraneThicknessUm && m.DilationPx == other.DilationPx
}
