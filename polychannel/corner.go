package polychannel

import (
	"math"

	"github.com/3D-Printing-for-Microfluidics/openmfd-go/manifold"
)

func vsub(a, b manifold.Vec3) manifold.Vec3 { return manifold.Vec3{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z} }
func vadd(a, b manifold.Vec3) manifold.Vec3 { return manifold.Vec3{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z} }
func vscale(a manifold.Vec3, s float64) manifold.Vec3 {
	return manifold.Vec3{X: a.X * s, Y: a.Y * s, Z: a.Z * s}
}
func vcross(a, b manifold.Vec3) manifold.Vec3 {
	return manifold.Vec3{X: a.Y*b.Z - a.Z*b.Y, Y: a.Z*b.X - a.X*b.Z, Z: a.X*b.Y - a.Y*b.X}
}
func vdot(a, b manifold.Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }
func vnorm(a manifold.Vec3) float64   { return math.Sqrt(vdot(a, a)) }
func vunit(a manifold.Vec3) manifold.Vec3 {
	n := vnorm(a)
	if n == 0 {
		return a
	}
	return vscale(a, 1/n)
}

func lerpVec(a, b manifold.Vec3, t float64) manifold.Vec3 {
	return manifold.Vec3{
		X: a.X*(1-t) + b.X*t,
		Y: a.Y*(1-t) + b.Y*t,
		Z: a.Z*(1-t) + b.Z*t,
	}
}

// arcBetween computes a circular arc of radius r between the segments
// BA and BC (B is the corner vertex), sampled at n points. Returns
// ok=false with no error when the bisector is degenerate (A, B, C
// collinear) — the corner is emitted unchanged in that case, matching
// original_source/backend/polychannel.py's _arc_between_angle_3d.
func arcBetween(a, b, c manifold.Vec3, r float64, n int) (points []manifold.Vec3, rotations []manifold.Vec3, startDir, endDir int, ok bool, err error) {
	ba := vsub(a, b)
	bc := vsub(c, b)
	uba := vunit(ba)
	ubc := vunit(bc)

	lenBA, lenBC := vnorm(ba), vnorm(bc)
	if r > math.Round(lenBA) || r > math.Round(lenBC) {
		return nil, nil, 0, 0, false, ErrArcGeometry
	}

	cosTheta := clamp(vdot(uba, ubc), -1, 1)
	theta := math.Acos(cosTheta)
	halfTheta := theta / 2

	offset := r / math.Tan(halfTheta)
	if math.Round(offset) > math.Round(lenBA) || math.Round(offset) > math.Round(lenBC) {
		return nil, nil, 0, 0, false, ErrArcGeometry
	}

	p1 := vadd(b, vscale(uba, offset))
	p2 := vadd(b, vscale(ubc, offset))

	bisector := vadd(uba, ubc)
	if vnorm(bisector) == 0 {
		return nil, nil, 0, 0, false, nil // straight line, caller keeps the shape unchanged
	}
	bisector = vunit(bisector)

	center := vadd(b, vscale(bisector, r/math.Sin(halfTheta)))

	v1 := vsub(p1, center)
	v2 := vsub(p2, center)
	normal := vunit(vcross(v1, v2))

	u := vunit(v1)
	v := vunit(vcross(normal, u))

	startAngle := 0.0
	endAngle := math.Atan2(vdot(v2, v), vdot(v2, u))
	if endAngle < 0 {
		endAngle += 2 * math.Pi
	}
	if endAngle > math.Pi {
		endAngle -= 2 * math.Pi
	}

	points = make([]manifold.Vec3, n)
	rotations = make([]manifold.Vec3, n)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		angle := startAngle + (endAngle-startAngle)*t
		pt := vadd(center, vadd(vscale(u, r*math.Cos(angle)), vscale(v, r*math.Sin(angle))))
		points[i] = pt
		rotations[i] = vscale(normal, angle*180/math.Pi)
	}
	return points, rotations, argmaxAbs(uba), argmaxAbs(ubc), true, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func argmaxAbs(v manifold.Vec3) int {
	ax, ay, az := math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)
	if ax >= ay && ax >= az {
		return 0
	}
	if ay >= az {
		return 1
	}
	return 2
}

func axisSet(v manifold.Vec3, axis int, val float64) manifold.Vec3 {
	switch axis {
	case 0:
		v.X = val
	case 1:
		v.Y = val
	default:
		v.Z = val
	}
	return v
}

// roundCorners replaces every interior *DenseShape entry with
// corner_radius > 0 by a sampled arc of cross-sections; Bézier entries
// and entries with zero radius pass through unchanged. Supporting
// rounding on a Bézier entry itself is out of scope: by the time an
// entry reaches this stage its Bézier run has not yet been expanded,
// and rounding would discard the control points it carries — no
// spec-described scenario exercises that combination.
func roundCorners(entries []denseEntry) ([]denseEntry, error) {
	if len(entries) < 3 {
		return entries, nil
	}

	out := make([]denseEntry, 0, len(entries))
	for i, e := range entries {
		d, plain := e.(*DenseShape)
		if !plain || d.CornerRadius <= 0 {
			out = append(out, e)
			continue
		}
		if i == 0 || i == len(entries)-1 {
			return nil, ErrCornerRadiusEnds
		}

		prevPos := entries[i-1].pos()
		nextPos := entries[i+1].pos()
		points, rotations, startDir, endDir, ok, err := arcBetween(prevPos, d.Position, nextPos, d.CornerRadius, d.CornerSegments)
		if err != nil {
			return nil, err
		}
		if !ok {
			out = append(out, e)
			continue
		}

		startSize := d.Size
		startSize = axisSet(startSize, startDir, 0)
		endSize := startSize
		endSize = axisSet(endSize, endDir, axisGet(d.Size, startDir))
		endSize = axisSet(endSize, startDir, 0)

		for j, p := range points {
			t := float64(j) / float64(d.CornerSegments-1)
			size := lerpVec(startSize, endSize, t)
			out = append(out, &DenseShape{
				ShapeType:         d.ShapeType,
				Position:          p,
				Size:              size,
				RoundedCubeRadius: d.RoundedCubeRadius,
				Rotation:          vadd(d.Rotation, rotations[j]),
				CornerRadius:      d.CornerRadius,
				CornerSegments:    d.CornerSegments,
				FN:                d.FN,
				NoValidation:      j != 0,
			})
		}
	}
	return out, nil
}

func axisGet(v manifold.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
