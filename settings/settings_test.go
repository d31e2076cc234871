package settings

import "testing"

func TestPositionSettingsFillWithDefaults(t *testing.T) {
	p := &PositionSettings{DistanceUpMm: f64(5.0)}
	p.FillWithDefaults(DefaultPositionSettings())

	if *p.DistanceUpMm != 5.0 {
		t.Fatalf("explicit field must survive fill: got %v", *p.DistanceUpMm)
	}
	if p.UpSpeedMmPerSec == nil || *p.UpSpeedMmPerSec != 25.0 {
		t.Fatalf("unset field must take default, got %v", p.UpSpeedMmPerSec)
	}
}

func TestExposureSettingsDiffOnlyReportsChangedKeys(t *testing.T) {
	base := DefaultExposureSettings()
	changed := base.Copy()
	changed.ExposureTimeMs = f64(500.0)

	diff := changed.Diff(base)
	if len(diff) != 1 {
		t.Fatalf("expected exactly one changed key, got %v", diff)
	}
	if diff["Layer exposure time (ms)"] != 500.0 {
		t.Fatalf("unexpected diff value: %v", diff)
	}
}

func TestExposureSettingsGroupKeyIgnoresWaitAndExposureTime(t *testing.T) {
	a := DefaultExposureSettings()
	b := a.Copy()
	b.ExposureTimeMs = f64(999.0)
	b.WaitBeforeExposureMs = f64(999.0)
	b.WaitAfterExposureMs = f64(999.0)

	if a.GroupKey() != b.GroupKey() {
		t.Fatalf("exposure time and wait times must not affect the group key")
	}
}

func TestSecondaryDoseSettingsDoseFlags(t *testing.T) {
	withEdge := NewSecondaryDoseSettings(f64(100), 1, 1, nil, 0, 0)
	if !withEdge.HasEdgeDose() || withEdge.HasRoofDose() {
		t.Fatalf("expected edge dose only, got edge=%v roof=%v", withEdge.HasEdgeDose(), withEdge.HasRoofDose())
	}
}
