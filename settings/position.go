package settings

// PositionSettings controls the build-plate motion for one layer.
// Pointer fields are nil until filled in, either explicitly or by
// FillWithDefaults, mirroring the original's None-as-unset convention.
// Grounded on original_source/slicer/settings.py's PositionSettings.
type PositionSettings struct {
	LayerThicknessUm      *float64
	DistanceUpMm          *float64
	InitialWaitMs         *float64
	UpSpeedMmPerSec       *float64
	UpAccelerationMmPerS2 *float64
	UpWaitMs              *float64
	DownSpeedMmPerSec     *float64
	DownAccelMmPerS2      *float64
	FinalWaitMs           *float64
	SpecialLayerTechniques []SpecialLayerTechnique
}

// DefaultPositionSettings returns spec.md §6's default position values.
func DefaultPositionSettings() *PositionSettings {
	return &PositionSettings{
		DistanceUpMm:          f64(1.0),
		InitialWaitMs:         f64(0.0),
		UpSpeedMmPerSec:       f64(25.0),
		UpAccelerationMmPerS2: f64(50.0),
		UpWaitMs:              f64(0.0),
		DownSpeedMmPerSec:     f64(20.0),
		DownAccelMmPerS2:      f64(50.0),
		FinalWaitMs:           f64(0.0),
	}
}

// Copy returns a shallow copy of p; SpecialLayerTechniques is copied as a
// new slice header over the same entries.
func (p *PositionSettings) Copy() *PositionSettings {
	cp := *p
	cp.SpecialLayerTechniques = append([]SpecialLayerTechnique(nil), p.SpecialLayerTechniques...)
	return &cp
}

// FillWithDefaults sets every nil field of p from defaults, field by
// field — the explicit Go equivalent of the original's
// `for var in vars(self)` reflective loop.
func (p *PositionSettings) FillWithDefaults(defaults *PositionSettings) {
	if p.DistanceUpMm == nil {
		p.DistanceUpMm = defaults.DistanceUpMm
	}
	if p.InitialWaitMs == nil {
		p.InitialWaitMs = defaults.InitialWaitMs
	}
	if p.UpSpeedMmPerSec == nil {
		p.UpSpeedMmPerSec = defaults.UpSpeedMmPerSec
	}
	if p.UpAccelerationMmPerS2 == nil {
		p.UpAccelerationMmPerS2 = defaults.UpAccelerationMmPerS2
	}
	if p.UpWaitMs == nil {
		p.UpWaitMs = defaults.UpWaitMs
	}
	if p.DownSpeedMmPerSec == nil {
		p.DownSpeedMmPerSec = defaults.DownSpeedMmPerSec
	}
	if p.DownAccelMmPerS2 == nil {
		p.DownAccelMmPerS2 = defaults.DownAccelMmPerS2
	}
	if p.FinalWaitMs == nil {
		p.FinalWaitMs = defaults.FinalWaitMs
	}
}

// Diff returns the subset of p's fields (by JSON key) that differ from
// other, for the compiler's named-settings delta encoding (spec.md §4.7
// step 6).
func (p *PositionSettings) Diff(other *PositionSettings) map[string]any {
	out := map[string]any{}
	addFloatDiff(out, "Layer thickness (um)", p.LayerThicknessUm, other.LayerThicknessUm)
	addFloatDiff(out, "Distance up (mm)", p.DistanceUpMm, other.DistanceUpMm)
	addFloatDiff(out, "Initial wait (ms)", p.InitialWaitMs, other.InitialWaitMs)
	addFloatDiff(out, "BP up speed (mm/sec)", p.UpSpeedMmPerSec, other.UpSpeedMmPerSec)
	addFloatDiff(out, "BP up acceleration (mm/sec^2)", p.UpAccelerationMmPerS2, other.UpAccelerationMmPerS2)
	addFloatDiff(out, "Up wait (ms)", p.UpWaitMs, other.UpWaitMs)
	addFloatDiff(out, "BP down speed (mm/sec)", p.DownSpeedMmPerSec, other.DownSpeedMmPerSec)
	addFloatDiff(out, "BP down acceleration (mm/sec^2)", p.DownAccelMmPerS2, other.DownAccelMmPerS2)
	addFloatDiff(out, "Final wait (ms)", p.FinalWaitMs, other.FinalWaitMs)
	return out
}

// ToDict renders p as spec.md §6's "Position settings" JSON object.
func (p *PositionSettings) ToDict() map[string]any {
	out := map[string]any{
		"Layer thickness (um)":          derefF(p.LayerThicknessUm),
		"Distance up (mm)":              derefF(p.DistanceUpMm),
		"Initial wait (ms)":             derefF(p.InitialWaitMs),
		"BP up speed (mm/sec)":          derefF(p.UpSpeedMmPerSec),
		"BP up acceleration (mm/sec^2)": derefF(p.UpAccelerationMmPerS2),
		"Up wait (ms)":                  derefF(p.UpWaitMs),
		"BP down speed (mm/sec)":        derefF(p.DownSpeedMmPerSec),
		"BP down acceleration (mm/sec^2)": derefF(p.DownAccelMmPerS2),
		"Final wait (ms)":               derefF(p.FinalWaitMs),
	}
	if len(p.SpecialLayerTechniques) > 0 {
		techniques := map[string]any{}
		for _, t := range p.SpecialLayerTechniques {
			if s, ok := t.(SqueezeOutResin); ok {
				techniques["Squeeze out resin"] = map[string]any{
					"Enable squeeze":    s.Enabled,
					"Squeeze count":     s.Count,
					"Squeeze force (N)": s.SqueezeForce,
					"Squeeze time (ms)": s.SqueezeTime,
				}
			}
		}
		out["Special layer techniques"] = techniques
	}
	return out
}

func f64(v float64) *float64 { return &v }

func derefF(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func addFloatDiff(out map[string]any, key string, a, b *float64) {
	av, bv := derefF(a), derefF(b)
	if av != bv {
		out[key] = av
	}
}
