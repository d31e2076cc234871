package component

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/3D-Printing-for-Microfluidics/openmfd-go/manifold"
)

// LayerRun is one run-length-encoded group of layers sharing a thickness,
// expressed as (count, thickness in mm).
type LayerRun struct {
	Count     int
	Thickness float64
}

// VariableLayerThicknessComponent is a component whose Z extent is a list
// of (count, thickness) run-length pairs rather than one uniform layer
// size; its modelling layer_size is the greatest common factor of the run
// thicknesses, so that every run is an integer number of modelling layers.
// Grounded on original_source/openmfd.py's VariableLayerThicknessComponent
// and its float_gcf helper.
type VariableLayerThicknessComponent struct {
	*Component

	layerRuns []LayerRun
}

// NewVariableLayerThicknessComponent constructs a component whose total
// layer count (size.Z) must equal the sum of every run's count.
func NewVariableLayerThicknessComponent(size, position manifold.Vec3, layerRuns []LayerRun, opts ...Option) (*VariableLayerThicknessComponent, error) {
	loc := callerFile()

	total := 0
	for _, r := range layerRuns {
		total += r.Count
	}
	if float64(total) != size.Z {
		return nil, fmt.Errorf("%w: %d runs vs %v component layers", errLayerSumMismatch, total, size.Z)
	}

	thicknesses := make([]float64, len(layerRuns))
	for i, r := range layerRuns {
		thicknesses[i] = r.Thickness
	}
	layerSize := floatGCF(thicknesses)

	o := resolveOptions(opts)
	o.layerSize = layerSize
	c := newComponent("VariableLayerThicknessComponent", size, position, o, loc)
	c.expandedLayerSizes = expandLayerRuns(layerRuns)

	return &VariableLayerThicknessComponent{Component: c, layerRuns: layerRuns}, nil
}

// LayerRuns returns the component's (count, thickness) run list.
func (v *VariableLayerThicknessComponent) LayerRuns() []LayerRun { return v.layerRuns }

func expandLayerRuns(layerRuns []LayerRun) []float64 {
	var out []float64
	for _, r := range layerRuns {
		for i := 0; i < r.Count; i++ {
			out = append(out, r.Thickness)
		}
	}
	return out
}

// DeviceHeight returns the component's true Z extent in mm, the sum of
// each run's count*thickness (as opposed to size.Z * layerSize, which only
// equals DeviceHeight when every run shares the common denominator
// exactly).
func (v *VariableLayerThicknessComponent) DeviceHeight() float64 {
	var h float64
	for _, r := range v.layerRuns {
		h += float64(r.Count) * r.Thickness
	}
	return h
}

// BoundingBox overrides Component.BoundingBox: identical in X/Y, but the Z
// extent uses the component's true device height rather than
// size.Z*layerSize, matching the original's override.
func (v *VariableLayerThicknessComponent) BoundingBox(pxSize, layerSize *float64) (x0, y0, z0, x1, y1, z1 float64) {
	x0, y0, z0, x1, y1, _ = v.Component.BoundingBox(pxSize, layerSize)
	_, clz := resolveUnitsFor(v.Component, pxSize, layerSize)
	z1 = z0 + roundTo3(v.DeviceHeight()/clz)
	return
}

// SizeIn overrides Component.SizeIn with the same true-height Z override.
func (v *VariableLayerThicknessComponent) SizeIn(pxSize, layerSize *float64) (x, y, z float64) {
	x, y, _ = v.Component.SizeIn(pxSize, layerSize)
	_, clz := resolveUnitsFor(v.Component, pxSize, layerSize)
	z = roundTo3(v.DeviceHeight() / clz)
	return
}

// floatGCF returns the greatest common factor of a list of floating-point
// mm thicknesses, by converting each to the big.Rat of its shortest
// decimal form (so 0.02 becomes 1/50, not its binary expansion), scaling
// by the LCM of their denominators, taking the integer GCD, and converting
// back — the same rational-arithmetic approach as the original's
// float_gcf (Fraction-based), using math/big in place of
// Python's fractions module (documented stdlib choice: no arbitrary-
// precision rational library appears anywhere in the corpus).
func floatGCF(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	rats := make([]*big.Rat, len(values))
	for i, v := range values {
		r, ok := new(big.Rat).SetString(strconv.FormatFloat(v, 'g', -1, 64))
		if !ok {
			r = new(big.Rat).SetFloat64(v)
		}
		rats[i] = r
	}

	commonDen := big.NewInt(1)
	for _, r := range rats {
		commonDen = lcmInt(commonDen, r.Denom())
	}

	ints := make([]*big.Int, len(rats))
	for i, r := range rats {
		n := new(big.Int).Mul(r.Num(), new(big.Int).Div(commonDen, r.Denom()))
		ints[i] = n
	}

	result := new(big.Int).Abs(ints[0])
	for _, n := range ints[1:] {
		result.GCD(nil, nil, result, new(big.Int).Abs(n))
	}

	out := new(big.Rat).SetFrac(result, commonDen)
	f, _ := out.Float64()
	return f
}

func lcmInt(a, b *big.Int) *big.Int {
	gcd := new(big.Int).GCD(nil, nil, a, b)
	return new(big.Int).Div(new(big.Int).Mul(a, b), gcd)
}
