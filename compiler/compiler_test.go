package compiler

import (
	"testing"

	"github.com/3D-Printing-for-Microfluidics/openmfd-go/component"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/imgstore"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/manifold"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/palette"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/settings"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/shape"
)

func TestCompileDeviceProducesOneLayerPerUniformThicknessStep(t *testing.T) {
	lib := manifold.New()
	dev := component.New(manifold.Vec3{X: 20, Y: 20, Z: 5}, manifold.Vec3{}, component.WithPxSize(1), component.WithLayerSize(1))
	if err := dev.AddLabel("bulk", palette.New(128, 128, 128, 255)); err != nil {
		t.Fatalf("AddLabel: %v", err)
	}
	if err := dev.AddBulk("body", shape.NewCube(lib, manifold.Vec3{X: 20, Y: 20, Z: 5}), "bulk"); err != nil {
		t.Fatalf("AddBulk: %v", err)
	}

	store := imgstore.New()
	compiled, err := CompileDevice(dev, lib, store)
	if err != nil {
		t.Fatalf("CompileDevice: %v", err)
	}
	if len(compiled.Layers) == 0 {
		t.Fatalf("expected at least one compiled layer")
	}
	total := 0
	for _, l := range compiled.Layers {
		total += l.Duplications
	}
	if total != 5 {
		t.Fatalf("expected 5 total layers across runs, got %d", total)
	}
	if store.Len() == 0 {
		t.Fatalf("expected at least one image stored")
	}
}

func TestCompileDeviceErrorsWithoutBulkShape(t *testing.T) {
	lib := manifold.New()
	dev := component.New(manifold.Vec3{X: 10, Y: 10, Z: 1}, manifold.Vec3{}, component.WithPxSize(1), component.WithLayerSize(1))
	store := imgstore.New()
	if _, err := CompileDevice(dev, lib, store); err == nil {
		t.Fatalf("expected an error compiling a device with no bulk shape")
	}
}

func TestMinimizeCollapsesIdenticalRuns(t *testing.T) {
	layers := []Layer{
		{Duplications: 1, PositionSettingsName: "default", Images: []ImageRef{{ImageFile: "a.png", SettingsName: "default"}}},
		{Duplications: 1, PositionSettingsName: "default", Images: []ImageRef{{ImageFile: "a.png", SettingsName: "default"}}},
		{Duplications: 1, PositionSettingsName: "default", Images: []ImageRef{{ImageFile: "b.png", SettingsName: "default"}}},
	}
	out := Minimize(layers)
	if len(out) != 2 {
		t.Fatalf("expected 2 runs after minimization, got %d", len(out))
	}
	if out[0].Duplications != 2 {
		t.Fatalf("expected the first run to collapse to 2 duplications, got %d", out[0].Duplications)
	}
}

func TestNamedSettingsTableReusesExactMatch(t *testing.T) {
	tbl := NewNamedSettingsTable("image", "Using named image settings", map[string]any{"a": 1, "b": 2})
	name1 := tbl.Resolve(map[string]any{"a": 1, "b": 3}, nil)
	name2 := tbl.Resolve(map[string]any{"a": 1, "b": 3}, nil)
	if name1 != name2 {
		t.Fatalf("expected identical dicts to resolve to the same name, got %q and %q", name1, name2)
	}
	if name1 == "default" {
		t.Fatalf("expected a fresh name for a dict that differs from the default")
	}
	if len(tbl.Deltas()) != 1 {
		t.Fatalf("expected exactly one delta recorded, got %d", len(tbl.Deltas()))
	}
}

func TestBuildPrintProgramIncludesHeaderAndLayers(t *testing.T) {
	cfg := settings.NewSettings("Test printer", "Test resin", "tester", "testing", "desc",
		&settings.PositionSettings{}, &settings.ExposureSettings{})

	dev := &CompiledDevice{
		Name:          "dev",
		Layers:        []Layer{{Duplications: 1, PositionSettingsName: "default"}},
		PositionTable: NewNamedSettingsTable("position", "Using named position settings", cfg.DefaultPositionSettings.ToDict()),
		ImageTable:    NewNamedSettingsTable("image", "Using named image settings", cfg.DefaultExposureSettings.ToDict()),
	}

	program := BuildPrintProgram(dev, cfg, "design.py", "2026-07-29 00:00:00", true)
	header, ok := program["Header"].(map[string]any)
	if !ok || header["Schema version"] != schemaVersion {
		t.Fatalf("expected a Header block with the schema version, got %#v", program["Header"])
	}
	if header["Image directory"] != "minimized_slices" {
		t.Fatalf("expected the minimized image directory name, got %v", header["Image directory"])
	}
	layers, ok := program["Layers"].([]any)
	if !ok || len(layers) != 1 {
		t.Fatalf("expected one rendered layer, got %#v", program["Layers"])
	}
}
