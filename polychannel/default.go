package polychannel

import "github.com/3D-Printing-for-Microfluidics/openmfd-go/manifold"

// defaultEntries resolves a sparse entry list into dense form: the
// first entry must fully specify type, size and (for a rounded cube)
// radius; every later entry inherits any nil field from its
// predecessor, and a relative position/control-point list is added to
// the predecessor's resolved position.
func defaultEntries(entries []Entry) ([]denseEntry, error) {
	out := make([]denseEntry, 0, len(entries))
	var prev *DenseShape

	for i, e := range entries {
		sparse := sparseOf(e)
		if i == 0 {
			if _, isBezier := e.(*SparseBezierShape); isBezier {
				return nil, ErrBezierFirst
			}
			d, err := defaultFirst(sparse)
			if err != nil {
				return nil, err
			}
			prev = d
			out = append(out, d)
			continue
		}

		d, err := defaultAgainst(prev, sparse)
		if err != nil {
			return nil, err
		}

		if bz, isBezier := e.(*SparseBezierShape); isBezier {
			bd, err := defaultBezier(prev, d, bz)
			if err != nil {
				return nil, err
			}
			out = append(out, bd)
			prev = &bd.DenseShape
			continue
		}

		out = append(out, d)
		prev = d
	}
	return out, nil
}

func sparseOf(e Entry) *SparseShape {
	if bz, ok := e.(*SparseBezierShape); ok {
		return &bz.SparseShape
	}
	return e.(*SparseShape)
}

func defaultFirst(s *SparseShape) (*DenseShape, error) {
	if s.ShapeType == nil || s.Size == nil {
		return nil, ErrFirstEntryIncomplete
	}
	d := &DenseShape{
		ShapeType:    *s.ShapeType,
		Size:         *s.Size,
		NoValidation: s.NoValidation,
	}
	switch d.ShapeType {
	case RoundedCube:
		if s.RoundedCubeRadius == nil {
			return nil, ErrFirstEntryIncomplete
		}
		d.RoundedCubeRadius = *s.RoundedCubeRadius
	case Cube:
		d.RoundedCubeRadius = manifold.Vec3{}
	case Sphere:
		d.RoundedCubeRadius = manifold.Vec3{X: d.Size.X / 2, Y: d.Size.Y / 2, Z: d.Size.Z / 2}
	default:
		return nil, ErrUnsupportedShapeType
	}
	if s.Position != nil {
		d.Position = *s.Position
	}
	if s.CornerRadius != nil {
		d.CornerRadius = *s.CornerRadius
	}
	d.CornerSegments = 10
	if s.CornerSegments != nil {
		d.CornerSegments = *s.CornerSegments
	}
	if s.FN != nil {
		d.FN = *s.FN
	}
	return d, nil
}

func defaultAgainst(prev *DenseShape, s *SparseShape) (*DenseShape, error) {
	d := &DenseShape{NoValidation: s.NoValidation}

	d.ShapeType = prev.ShapeType
	if s.ShapeType != nil {
		d.ShapeType = *s.ShapeType
	}

	d.Size = prev.Size
	if s.Size != nil {
		d.Size = *s.Size
	}

	switch {
	case s.RoundedCubeRadius != nil:
		d.RoundedCubeRadius = *s.RoundedCubeRadius
	case d.ShapeType == Cube:
		d.RoundedCubeRadius = manifold.Vec3{}
	case d.ShapeType == Sphere:
		d.RoundedCubeRadius = manifold.Vec3{X: d.Size.X / 2, Y: d.Size.Y / 2, Z: d.Size.Z / 2}
	case d.ShapeType == RoundedCube:
		d.RoundedCubeRadius = prev.RoundedCubeRadius
	default:
		return nil, ErrUnsupportedShapeType
	}

	absolute := false
	if s.AbsolutePosition != nil {
		absolute = *s.AbsolutePosition
	}
	pos := prev.Position
	if s.Position != nil {
		pos = *s.Position
	}
	if !absolute {
		pos = manifold.Vec3{X: pos.X + prev.Position.X, Y: pos.Y + prev.Position.Y, Z: pos.Z + prev.Position.Z}
	}
	d.Position = pos

	d.CornerRadius = prev.CornerRadius
	if s.CornerRadius != nil {
		d.CornerRadius = *s.CornerRadius
	}
	d.CornerSegments = prev.CornerSegments
	if s.CornerSegments != nil {
		d.CornerSegments = *s.CornerSegments
	}
	d.Rotation = prev.Rotation
	if s.Rotation != nil {
		d.Rotation = *s.Rotation
	}
	if s.FN != nil {
		d.FN = *s.FN
	}
	return d, nil
}

func defaultBezier(prev *DenseShape, resolved *DenseShape, s *SparseBezierShape) (*DenseBezierShape, error) {
	if len(s.ControlPoints) < 1 {
		return nil, ErrFirstEntryIncomplete
	}
	if s.BezierSegments < 2 {
		return nil, ErrFirstEntryIncomplete
	}
	absolute := false
	if s.AbsolutePosition != nil {
		absolute = *s.AbsolutePosition
	}
	controls := make([]manifold.Vec3, len(s.ControlPoints))
	for i, p := range s.ControlPoints {
		if absolute {
			controls[i] = p
		} else {
			controls[i] = manifold.Vec3{X: p.X + prev.Position.X, Y: p.Y + prev.Position.Y, Z: p.Z + prev.Position.Z}
		}
	}
	return &DenseBezierShape{
		DenseShape:     *resolved,
		ControlPoints:  controls,
		BezierSegments: s.BezierSegments,
	}, nil
}
