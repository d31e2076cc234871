package settings

// ExposureSettings controls how one image is exposed. Grounded on
// original_source/slicer/settings.py's ExposureSettings.
type ExposureSettings struct {
	ImageFile                 *string
	GrayscaleCorrection       *bool
	ImageXOffsetUm            *float64
	ImageYOffsetUm            *float64
	ExposureTimeMs            *float64
	LightEngine               *string
	PowerSetting              *int
	WavelengthNm              *int
	RelativeFocusPositionUm   *float64
	WaitBeforeExposureMs      *float64
	WaitAfterExposureMs       *float64
	SpecialImageTechniques    []SpecialImageTechnique
	Burnin                    bool
}

// DefaultExposureSettings returns spec.md §6's default exposure values.
func DefaultExposureSettings() *ExposureSettings {
	return &ExposureSettings{
		GrayscaleCorrection:     boolPtr(false),
		ExposureTimeMs:          f64(300.0),
		PowerSetting:            intPtr(100),
		WavelengthNm:            intPtr(365),
		RelativeFocusPositionUm: f64(0.0),
		WaitBeforeExposureMs:    f64(0.0),
		WaitAfterExposureMs:     f64(0.0),
	}
}

func (e *ExposureSettings) Copy() *ExposureSettings {
	cp := *e
	cp.SpecialImageTechniques = append([]SpecialImageTechnique(nil), e.SpecialImageTechniques...)
	return &cp
}

func (e *ExposureSettings) FillWithDefaults(defaults *ExposureSettings) {
	if e.GrayscaleCorrection == nil {
		e.GrayscaleCorrection = defaults.GrayscaleCorrection
	}
	if e.ExposureTimeMs == nil {
		e.ExposureTimeMs = defaults.ExposureTimeMs
	}
	if e.PowerSetting == nil {
		e.PowerSetting = defaults.PowerSetting
	}
	if e.WavelengthNm == nil {
		e.WavelengthNm = defaults.WavelengthNm
	}
	if e.RelativeFocusPositionUm == nil {
		e.RelativeFocusPositionUm = defaults.RelativeFocusPositionUm
	}
	if e.WaitBeforeExposureMs == nil {
		e.WaitBeforeExposureMs = defaults.WaitBeforeExposureMs
	}
	if e.WaitAfterExposureMs == nil {
		e.WaitAfterExposureMs = defaults.WaitAfterExposureMs
	}
}

// GroupKey returns the subset of e relevant to spec.md §4.7 step 4's
// grouping rule: image file, exposure time, and the two wait times are
// ignored when deciding whether two slices share a group. Special image
// techniques are not part of the key either.
func (e *ExposureSettings) GroupKey() groupKey {
	return groupKey{
		lightEngine: derefS(e.LightEngine),
		xOffset:     derefF(e.ImageXOffsetUm),
		yOffset:     derefF(e.ImageYOffsetUm),
		focus:       derefF(e.RelativeFocusPositionUm),
		power:       derefI(e.PowerSetting),
		wavelength:  derefI(e.WavelengthNm),
		grayscale:   derefB(e.GrayscaleCorrection),
	}
}

type groupKey struct {
	lightEngine string
	xOffset     any
	yOffset     any
	focus       any
	power       any
	wavelength  any
	grayscale   any
}

// Diff returns the subset of e's fields (by JSON key) that differ from
// other, for named-image-settings deduplication.
func (e *ExposureSettings) Diff(other *ExposureSettings) map[string]any {
	out := map[string]any{}
	if derefS(e.ImageFile) != derefS(other.ImageFile) {
		out["Image file"] = derefS(e.ImageFile)
	}
	if derefB(e.GrayscaleCorrection) != derefB(other.GrayscaleCorrection) {
		out["Do light grayscale correction"] = derefB(e.GrayscaleCorrection)
	}
	addFloatDiff(out, "Image x offset (um)", e.ImageXOffsetUm, other.ImageXOffsetUm)
	addFloatDiff(out, "Image y offset (um)", e.ImageYOffsetUm, other.ImageYOffsetUm)
	addFloatDiff(out, "Layer exposure time (ms)", e.ExposureTimeMs, other.ExposureTimeMs)
	if derefS(e.LightEngine) != derefS(other.LightEngine) {
		out["Light engine"] = derefS(e.LightEngine)
	}
	if derefI(e.PowerSetting) != derefI(other.PowerSetting) {
		out["Light engine power setting"] = derefI(e.PowerSetting)
	}
	if derefI(e.WavelengthNm) != derefI(other.WavelengthNm) {
		out["Light engine wavelength (nm)"] = derefI(e.WavelengthNm)
	}
	addFloatDiff(out, "Relative focus position (um)", e.RelativeFocusPositionUm, other.RelativeFocusPositionUm)
	addFloatDiff(out, "Wait before exposure (ms)", e.WaitBeforeExposureMs, other.WaitBeforeExposureMs)
	addFloatDiff(out, "Wait after exposure (ms)", e.WaitAfterExposureMs, other.WaitAfterExposureMs)
	return out
}

func (e *ExposureSettings) ToDict() map[string]any {
	out := map[string]any{
		"Image file":                       derefS(e.ImageFile),
		"Do light grayscale correction":     derefB(e.GrayscaleCorrection),
		"Image x offset (um)":               derefF(e.ImageXOffsetUm),
		"Image y offset (um)":               derefF(e.ImageYOffsetUm),
		"Layer exposure time (ms)":          derefF(e.ExposureTimeMs),
		"Light engine":                      derefS(e.LightEngine),
		"Light engine power setting":        derefI(e.PowerSetting),
		"Light engine wavelength (nm)":      derefI(e.WavelengthNm),
		"Relative focus position (um)":      derefF(e.RelativeFocusPositionUm),
		"Wait before exposure (ms)":         derefF(e.WaitBeforeExposureMs),
		"Wait after exposure (ms)":          derefF(e.WaitAfterExposureMs),
	}
	if len(e.SpecialImageTechniques) > 0 {
		techniques := map[string]any{}
		for _, t := range e.SpecialImageTechniques {
			switch v := t.(type) {
			case ZeroMicronLayer:
				techniques["Zero micron layer"] = map[string]any{
					"Enable zero micron": v.Enabled,
					"Zero micron count":  v.Count,
				}
			case PrintOnFilm:
				techniques["Print on film"] = map[string]any{
					"Enable print on film": v.Enabled,
					"Distance up (mm)":     v.DistanceUp,
				}
			}
		}
		out["Special image techniques"] = techniques
	}
	return out
}

func boolPtr(v bool) *bool { return &v }
func intPtr(v int) *int    { return &v }

func derefS(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
func derefI(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}
func derefB(p *bool) any {
	if p == nil {
		return nil
	}
	return *p
}
