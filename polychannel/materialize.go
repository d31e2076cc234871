package polychannel

import (
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/manifold"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/shape"
)

// Build runs the full sparse-to-materialised pipeline: defaulting,
// corner rounding, Bézier expansion, then instantiation into
// Cube/Sphere/RoundedCube primitives, rotated then translated and
// reduced pairwise by hull into one continuous channel. When
// showOnlyShapes is true, the cross-sections are unioned instead of
// hulled, producing the bare shapes with no connecting sweep.
func Build(lib manifold.Library, entries []Entry, showOnlyShapes, quiet bool) (*shape.Shape, error) {
	dense, err := defaultEntries(entries)
	if err != nil {
		return nil, err
	}
	rounded, err := roundCorners(dense)
	if err != nil {
		return nil, err
	}
	flat, err := expandBezier(rounded)
	if err != nil {
		return nil, err
	}
	if len(flat) < 2 {
		return nil, ErrPolychannelTooShort
	}

	shapes := make([]*shape.Shape, len(flat))
	for i, d := range flat {
		s, err := instantiate(lib, d, quiet)
		if err != nil {
			return nil, err
		}
		s = s.Rotate(d.Rotation).Translate(d.Position)
		shapes[i] = s
	}

	if showOnlyShapes {
		path := shapes[0]
		for _, s := range shapes[1:] {
			path = path.Union(s)
		}
		return path, nil
	}

	path := shapes[0].Hull(shapes[1])
	last := shapes[1]
	for _, s := range shapes[2:] {
		path = path.Union(last.Hull(s))
		last = s
	}
	return path, nil
}

func instantiate(lib manifold.Library, d *DenseShape, quiet bool) (*shape.Shape, error) {
	opts := []shape.Option{shape.WithCenter(true), shape.WithQuiet(quiet), shape.WithNoValidation(d.NoValidation), shape.WithSegments(d.FN)}
	switch d.ShapeType {
	case Cube:
		return shape.NewCube(lib, d.Size, opts...), nil
	case Sphere:
		return shape.NewSphere(lib, d.Size, opts...), nil
	case RoundedCube:
		return shape.NewRoundedCube(lib, d.Size, d.RoundedCubeRadius, opts...), nil
	default:
		return nil, ErrUnsupportedShapeType
	}
}
