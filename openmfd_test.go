package openmfd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/3D-Printing-for-Microfluidics/openmfd-go/component"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/manifold"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/palette"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/settings"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/shape"
)

func TestCompileProducesValidPrintProgram(t *testing.T) {
	lib := manifold.New()
	dev := component.NewDevice("chip", manifold.Vec3{}, 5,
		component.WithPxCount(64, 64),
		component.WithComponentOptions(component.WithPxSize(0.05), component.WithLayerSize(0.1)),
	)
	if err := dev.AddLabel("bulk", palette.New(128, 128, 128, 255)); err != nil {
		t.Fatalf("AddLabel: %v", err)
	}
	if err := dev.AddBulk("body", shape.NewCube(lib, manifold.Vec3{X: float64(dev.PxCount[0]), Y: float64(dev.PxCount[1]), Z: 5}), "bulk"); err != nil {
		t.Fatalf("AddBulk: %v", err)
	}

	cfg := settings.NewSettings("Test printer", "Test resin", "tester", "testing", "a tiny chip",
		&settings.PositionSettings{}, &settings.ExposureSettings{})

	result, err := Compile(dev.Component, lib, cfg, WithDesignFile("chip.py"), WithDate("2026-07-29 00:00:00"))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(result.Images) == 0 {
		t.Fatalf("expected at least one stored image")
	}

	var program map[string]any
	if err := json.Unmarshal(result.ProgramJSON, &program); err != nil {
		t.Fatalf("invalid print program JSON: %v", err)
	}
	if _, ok := program["Layers"]; !ok {
		t.Fatalf("expected a Layers key in the print program")
	}

	var buf bytes.Buffer
	if err := result.WriteZip(&buf, true); err != nil {
		t.Fatalf("WriteZip: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected a non-empty zip archive")
	}
}
