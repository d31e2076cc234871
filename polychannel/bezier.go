package polychannel

import "github.com/3D-Printing-for-Microfluidics/openmfd-go/manifold"

// expandBezier walks the rounded entry list and replaces every
// *DenseBezierShape with its sampled cross-sections, leaving plain
// entries untouched. Mirrors
// original_source/backend/polychannel.py's _expand_bezier_shapes plus
// BezierCurveShape._generate.
func expandBezier(entries []denseEntry) ([]*DenseShape, error) {
	out := make([]*DenseShape, 0, len(entries))
	var last *DenseShape

	for _, e := range entries {
		switch v := e.(type) {
		case *DenseShape:
			out = append(out, v)
			last = v
		case *DenseBezierShape:
			if last == nil {
				return nil, ErrBezierFirst
			}
			samples := generateBezier(last, v)
			out = append(out, samples...)
			last = samples[len(samples)-1]
		}
	}
	return out, nil
}

func generateBezier(last *DenseShape, b *DenseBezierShape) []*DenseShape {
	shapeType := b.ShapeType
	if shapeType != last.ShapeType {
		shapeType = RoundedCube
	}

	controls := make([]manifold.Vec3, 0, len(b.ControlPoints)+2)
	controls = append(controls, last.Position)
	controls = append(controls, b.ControlPoints...)
	controls = append(controls, b.Position)

	n := b.BezierSegments
	samples := make([]*DenseShape, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		samples[i] = &DenseShape{
			ShapeType:         shapeType,
			Position:          bernstein(controls, t),
			Size:              lerpVec(last.Size, b.Size, t),
			RoundedCubeRadius: lerpVec(last.RoundedCubeRadius, b.RoundedCubeRadius, t),
			Rotation:          lerpVec(last.Rotation, b.Rotation, t),
			FN:                b.FN,
			NoValidation:      i != 0 && i != n-1,
		}
	}
	return samples
}

// bernstein evaluates the Bernstein-polynomial Bézier curve defined by
// control points at parameter t.
func bernstein(points []manifold.Vec3, t float64) manifold.Vec3 {
	n := len(points) - 1
	var out manifold.Vec3
	for i, p := range points {
		coef := binomial(n, i) * pow(1-t, n-i) * pow(t, i)
		out = vadd(out, vscale(p, coef))
	}
	return out
}

func pow(base float64, exp int) float64 {
	if exp <= 0 {
		return 1
	}
	result := 1.0
	for i := 0; i < exp; i++ {
		result *= base
	}
	return result
}

func binomial(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	result := 1.0
	for i := 0; i < k; i++ {
		result *= float64(n-i) / float64(i+1)
	}
	return result
}
