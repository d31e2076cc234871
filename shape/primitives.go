package shape

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/3D-Printing-for-Microfluidics/openmfd-go/manifold"
)

// Option configures a primitive constructor. Following the pack's
// functional-options convention, every primitive accepts zero or more
// Options on top of its required geometric parameters.
type Option func(*primitiveOptions)

type primitiveOptions struct {
	center       bool
	quiet        bool
	noValidation bool
	segments     int
	log          *slog.Logger
}

func defaultPrimitiveOptions() primitiveOptions {
	return primitiveOptions{log: slog.Default()}
}

// WithCenter centers the primitive at the origin instead of anchoring
// its minimum corner there.
func WithCenter(center bool) Option {
	return func(o *primitiveOptions) { o.center = center }
}

// WithQuiet suppresses the informational log line emitted when a
// centred, odd-extent primitive is shifted by half a pixel to land on
// the pixel grid.
func WithQuiet(quiet bool) Option {
	return func(o *primitiveOptions) { o.quiet = quiet }
}

// WithNoValidation skips the odd-extent pixel-grid shift entirely, for
// use when a calling pipeline (e.g. the polychannel builder) has
// already positioned the shape.
func WithNoValidation(noValidation bool) Option {
	return func(o *primitiveOptions) { o.noValidation = noValidation }
}

// WithSegments sets the circular-segment count for round primitives.
// Zero or negative falls back to manifold.CircularSegments().
func WithSegments(n int) Option {
	return func(o *primitiveOptions) { o.segments = n }
}

// WithLogger overrides the logger used for the pixel-grid shift notice.
func WithLogger(l *slog.Logger) Option {
	return func(o *primitiveOptions) { o.log = l }
}

func resolve(opts []Option) primitiveOptions {
	o := defaultPrimitiveOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// centerShift returns the half-pixel shift applied per axis so a
// centred, odd-extent primitive's faces land on integer pixel
// boundaries (spec.md §3's pixel-grid alignment policy), logging one
// line per shifted axis unless quieted.
func centerShift(o primitiveOptions, axisName string, extent float64) float64 {
	if o.noValidation || !o.center {
		return 0
	}
	if math.Mod(extent, 2) == 0 {
		return 0
	}
	if !o.quiet {
		o.log.Info("centered primitive has odd extent, shifting half a pixel to align with pixel grid", "axis", axisName)
	}
	return 0.5
}

// clampZero replaces a zero extent with a tiny positive value so no
// axis produces a singular scale.
func clampZero(v float64) float64 {
	if v == 0 {
		return 0.0001
	}
	return v
}

// NewCube builds a cube of the given size (px/layer space).
func NewCube(lib manifold.Library, size manifold.Vec3, opts ...Option) *Shape {
	o := resolve(opts)
	size = manifold.Vec3{X: clampZero(size.X), Y: clampZero(size.Y), Z: clampZero(size.Z)}
	shift := manifold.Vec3{
		X: centerShift(o, "x", size.X),
		Y: centerShift(o, "y", size.Y),
		Z: centerShift(o, "z", size.Z),
	}
	obj := lib.Cube(size, o.center).Translate(shift)
	return wrap(lib, obj)
}

// NewCylinder builds a cylinder with independent bottom/top radii (or
// a single uniform radius). Radii must be multiples of 0.5 px and must
// share parity.
func NewCylinder(lib manifold.Library, height int, radius, bottomR, topR *float64, centerXY, centerZ bool, opts ...Option) (*Shape, error) {
	o := resolve(opts)

	checkGrid := func(r *float64) error {
		if r != nil && !isHalfPxMultiple(*r) {
			return fmt.Errorf("%w: got %v", ErrShapeRadiusGrid, *r)
		}
		return nil
	}
	if err := checkGrid(radius); err != nil {
		return nil, err
	}
	if err := checkGrid(bottomR); err != nil {
		return nil, err
	}
	if err := checkGrid(topR); err != nil {
		return nil, err
	}

	bottom := pick(bottomR, radius)
	top := pick(topR, radius)
	if bottom == nil || top == nil {
		return nil, fmt.Errorf("%w: either radius or bottom_r and top_r must be provided", ErrShapeRadiusGrid)
	}
	if math.Abs(math.Mod(*top, 2)-math.Mod(*bottom, 2)) > 1e-9 {
		return nil, ErrShapeParity
	}

	h := float64(height)
	if h == 0 {
		h = 0.0001
	}
	var z float64
	if centerZ && height%2 != 0 {
		if !o.quiet {
			o.log.Info("centered cylinder has odd z extent, shifting half a pixel to align with pixel grid")
		}
		z = 0.5
	}

	segments := o.segments
	var xy float64
	var obj manifold.Solid
	if centerXY {
		if math.Mod(*top*2, 2) != 0 {
			if !o.quiet {
				o.log.Info("centered cylinder has odd radius, shifting half a pixel to align with pixel grid")
			}
			xy = 0.5
		}
		obj = lib.Cylinder(h, *bottom, *top, segments, centerZ).Translate(manifold.Vec3{X: xy, Y: xy, Z: z})
	} else {
		r := *bottom
		if *top > r {
			r = *top
		}
		obj = lib.Cylinder(h, *bottom, *top, segments, centerZ).Translate(manifold.Vec3{X: r, Y: r, Z: z})
	}
	return wrap(lib, obj), nil
}

func isHalfPxMultiple(r float64) bool {
	doubled := r * 2
	return math.Abs(doubled-math.Round(doubled)) < 1e-9
}

func pick(primary, fallback *float64) *float64 {
	if primary != nil {
		return primary
	}
	return fallback
}

// NewSphere builds an ellipsoid by scaling a unit sphere.
func NewSphere(lib manifold.Library, size manifold.Vec3, opts ...Option) *Shape {
	o := resolve(opts)
	size = manifold.Vec3{X: clampZero(size.X), Y: clampZero(size.Y), Z: clampZero(size.Z)}

	segments := o.segments
	obj := lib.Sphere(1, segments)
	s := wrap(lib, obj).Resize(size)

	if o.center {
		shift := manifold.Vec3{
			X: centerShift(o, "x", size.X),
			Y: centerShift(o, "y", size.Y),
			Z: centerShift(o, "z", size.Z),
		}
		return s.Translate(shift)
	}
	return s.Translate(manifold.Vec3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2})
}

// NewRoundedCube builds a cube with rounded corners as the convex hull
// of eight spheres scaled to the corner radii and placed at each
// corner inset by that radius.
func NewRoundedCube(lib manifold.Library, size, radius manifold.Vec3, opts ...Option) *Shape {
	o := resolve(opts)
	size = manifold.Vec3{X: clampZero(size.X), Y: clampZero(size.Y), Z: clampZero(size.Z)}
	radius = manifold.Vec3{X: clampZero(radius.X), Y: clampZero(radius.Y), Z: clampZero(radius.Z)}

	shift := manifold.Vec3{
		X: centerShift(o, "x", size.X),
		Y: centerShift(o, "y", size.Y),
		Z: centerShift(o, "z", size.Z),
	}

	var spheres []manifold.Solid
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				s := lib.Sphere(1, o.segments).Scale(radius)
				dx, dy, dz := signed(i, size.X/2-radius.X), signed(j, size.Y/2-radius.Y), signed(k, size.Z/2-radius.Z)
				s = s.Translate(manifold.Vec3{X: shift.X + dx, Y: shift.Y + dy, Z: shift.Z + dz})
				if !o.center {
					s = s.Translate(manifold.Vec3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2})
				}
				spheres = append(spheres, s)
			}
		}
	}
	return wrap(lib, lib.BatchHull(spheres))
}

func signed(bit int, mag float64) float64 {
	if bit == 0 {
		return -mag
	}
	return mag
}

// NewTPMS builds a triply-periodic minimal surface by sampling the
// implicit function f (see manifold.Gyroid, manifold.Diamond) over a
// unit-cell grid spanning [0,size] and resizing to the target extent.
func NewTPMS(lib manifold.Library, f func(x, y, z float64) float64, size manifold.Vec3, cellEdge float64) *Shape {
	size = manifold.Vec3{X: clampZero(size.X), Y: clampZero(size.Y), Z: clampZero(size.Z)}
	bounds := manifold.Box{Max: size}
	obj := lib.LevelSet(f, bounds, cellEdge, 0)
	return wrap(lib, obj).Resize(size)
}

// MeshSource supplies a repaired, watertight mesh for ImportModel, the
// external trimesh-import-and-repair collaborator spec.md §1 treats as
// out of scope.
type MeshSource interface {
	Mesh() (verts []manifold.Vec3, faces [][3]int, err error)
}

// ErrMeshNotWatertight is returned by NewImportModel when the supplied
// mesh source reports its repair step failed.
var ErrMeshNotWatertight = fmt.Errorf("shape: imported mesh is not watertight after repair")

// NewImportModel builds a Shape from an external, already-repaired
// triangle mesh.
func NewImportModel(lib manifold.Library, src MeshSource) (*Shape, error) {
	verts, faces, err := src.Mesh()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMeshNotWatertight, err)
	}
	return wrap(lib, lib.Mesh(verts, faces)), nil
}

// NewTextExtrusion builds a Shape by extruding each rune's 2D glyph
// outline (from the out-of-scope font collaborator, manifold.GlyphOutlineSource)
// into a solid of the given height and unioning the runes together.
func NewTextExtrusion(lib manifold.Library, src manifold.GlyphOutlineSource, text string, height float64) (*Shape, error) {
	var letters []manifold.Solid
	for _, r := range text {
		polys, err := src.Outline(r)
		if err != nil {
			return nil, fmt.Errorf("shape: extruding %q: %w", r, err)
		}
		var verts []manifold.Vec3
		var faces [][3]int
		for _, p := range polys {
			base := len(verts)
			bottom := make([]manifold.Vec3, len(p.Points))
			top := make([]manifold.Vec3, len(p.Points))
			for i, pt := range p.Points {
				bottom[i] = manifold.Vec3{X: pt.X, Y: pt.Y, Z: 0}
				top[i] = manifold.Vec3{X: pt.X, Y: pt.Y, Z: height}
			}
			verts = append(verts, bottom...)
			verts = append(verts, top...)
			n := len(p.Points)
			for i := 0; i < n; i++ {
				ni := (i + 1) % n
				faces = append(faces,
					[3]int{base + i, base + ni, base + n + ni},
					[3]int{base + i, base + n + ni, base + n + i},
				)
			}
		}
		letters = append(letters, lib.Mesh(verts, faces))
	}
	if len(letters) == 0 {
		return wrap(lib, lib.Mesh(nil, nil)), nil
	}
	return wrap(lib, lib.BatchBoolean(letters, manifold.OpAdd)), nil
}
