package component

import "github.com/3D-Printing-for-Microfluidics/openmfd-go/manifold"

// Device is a leaf component sized to a light engine's raster and layer
// count, grounded on original_source/openmfd.py's Device class.
type Device struct {
	*Component

	Layers  int
	PxCount [2]int
}

// DeviceOption configures a Device at construction time.
type DeviceOption func(*deviceOptions)

type deviceOptions struct {
	componentOpts []Option
	pxCount       [2]int
}

func resolveDeviceOptions(opts []DeviceOption) deviceOptions {
	o := deviceOptions{pxCount: [2]int{2560, 1600}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithPxCount overrides the default 2560x1600 light-engine raster size.
func WithPxCount(w, h int) DeviceOption {
	return func(o *deviceOptions) { o.pxCount = [2]int{w, h} }
}

// WithComponentOptions forwards Options through to the embedded Component.
func WithComponentOptions(opts ...Option) DeviceOption {
	return func(o *deviceOptions) { o.componentOpts = append(o.componentOpts, opts...) }
}

// NewDevice constructs a named Device at position, with layers layers.
func NewDevice(name string, position manifold.Vec3, layers int, opts ...DeviceOption) *Device {
	loc := callerFile()
	o := resolveDeviceOptions(opts)
	co := resolveOptions(o.componentOpts)

	size := manifold.Vec3{X: float64(o.pxCount[0]), Y: float64(o.pxCount[1]), Z: float64(layers)}
	c := newComponent("Device", size, position, co, loc)
	c.name = name
	return &Device{Component: c, Layers: layers, PxCount: o.pxCount}
}
