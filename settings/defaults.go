package settings

// Settings is the top-level print-job configuration: printer/resin
// identity plus the default position and exposure settings every
// component inherits from, grounded on
// original_source/slicer/settings.py's Settings.
type Settings struct {
	PrinterName string
	Resin       string
	User        string
	Purpose     string
	Description string

	DefaultPositionSettings *PositionSettings
	DefaultExposureSettings *ExposureSettings
	SpecialPrintTechniques  []PrintUnderVacuum
}

// NewSettings fills any unset default position/exposure fields with
// spec.md §6's documented defaults before returning.
func NewSettings(printerName, resin, user, purpose, description string, position *PositionSettings, exposure *ExposureSettings) *Settings {
	position.FillWithDefaults(DefaultPositionSettings())
	exposure.FillWithDefaults(DefaultExposureSettings())
	return &Settings{
		PrinterName:             printerName,
		Resin:                   resin,
		User:                    user,
		Purpose:                 purpose,
		Description:             description,
		DefaultPositionSettings: position,
		DefaultExposureSettings: exposure,
	}
}

// Header renders the print program's top-level "Design" plus
// "Default layer settings" sections per spec.md §6.
func (s *Settings) Header(designFile, date string) map[string]any {
	out := map[string]any{
		"User":        s.User,
		"Purpose":     s.Purpose,
		"Description": s.Description,
		"Resin":       s.Resin,
		"3D printer":  s.PrinterName,
		"Design file": designFile,
		"Slicer":      "OpenMFD",
		"Date":        date,
	}
	return out
}

// DefaultLayerSettings renders spec.md §6's "Default layer settings" block.
func (s *Settings) DefaultLayerSettings() map[string]any {
	return map[string]any{
		"Number of duplications": 1,
		"Position settings":      s.DefaultPositionSettings.ToDict(),
		"Image settings":         s.DefaultExposureSettings.ToDict(),
	}
}

// SpecialPrintTechniquesDict renders the "Special print techniques" block.
func (s *Settings) SpecialPrintTechniquesDict() map[string]any {
	out := map[string]any{}
	for _, v := range s.SpecialPrintTechniques {
		out["Print under vacuum"] = map[string]any{
			"Enable vacuum":               v.Enabled,
			"Target vacuum level (Torr)":  v.TargetVacuumTorr,
			"Vacuum wait time (sec)":      v.VacuumWaitSec,
		}
	}
	return out
}
