package polychannel

import "errors"

// Sentinel errors surfaced by the polychannel builder.
var (
	// ErrPolychannelTooShort is returned when fewer than two shapes
	// remain after defaulting, rounding and Bézier expansion.
	ErrPolychannelTooShort = errors.New("polychannel: requires at least 2 shapes")

	// ErrBezierFirst is returned when a BezierCurveShape is the first
	// entry in a polychannel; there is no previous shape to curve from.
	ErrBezierFirst = errors.New("polychannel: a Bezier curve cannot be the first shape")

	// ErrArcGeometry is returned by corner rounding when the requested
	// radius (or its tangent offset) exceeds the incoming or outgoing
	// segment length.
	ErrArcGeometry = errors.New("polychannel: corner radius is too large for the surrounding segments")

	// ErrCornerRadiusEnds is returned when the first or last entry in a
	// polychannel specifies a non-zero corner radius.
	ErrCornerRadiusEnds = errors.New("polychannel: first and last shapes cannot have a corner radius")

	// ErrFirstEntryIncomplete is returned when the first entry is
	// missing a required field (shape type, size, or — for a rounded
	// cube — a corner radius).
	ErrFirstEntryIncomplete = errors.New("polychannel: first shape must specify type, size, and (for rounded cubes) a radius")

	// ErrUnsupportedShapeType is returned for a shape_type other than
	// "cube", "sphere", or "rounded_cube".
	ErrUnsupportedShapeType = errors.New("polychannel: unsupported shape type")
)
