package component

import "github.com/3D-Printing-for-Microfluidics/openmfd-go/provenance"

// Option configures a Component at construction time, grounded on the
// teacher's functional-options convention (options.go's ContextOption).
type Option func(*componentOptions)

type componentOptions struct {
	pxSize       float64
	layerSize    float64
	hideInRender bool
	quiet        bool
	tracker      *provenance.Tracker
}

func resolveOptions(opts []Option) componentOptions {
	o := componentOptions{pxSize: 0.0076, layerSize: 0.01, tracker: defaultTracker}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithPxSize overrides the default 0.0076mm pixel size.
func WithPxSize(v float64) Option { return func(o *componentOptions) { o.pxSize = v } }

// WithLayerSize overrides the default 0.01mm layer size.
func WithLayerSize(v float64) Option { return func(o *componentOptions) { o.layerSize = v } }

// WithHideInRender marks a component as excluded from preview renders.
func WithHideInRender(v bool) Option { return func(o *componentOptions) { o.hideInRender = v } }

// WithQuiet suppresses the "Creating <type> component..." log line.
func WithQuiet(v bool) Option { return func(o *componentOptions) { o.quiet = v } }

// WithTracker injects a ProvenanceTracker other than the package default,
// per spec.md's REDESIGN FLAGS note on making instantiation tracking an
// explicit injected service.
func WithTracker(t *provenance.Tracker) Option {
	return func(o *componentOptions) {
		if t != nil {
			o.tracker = t
		}
	}
}

// defaultTracker is the process-wide ProvenanceTracker used when a caller
// does not inject one explicitly, mirroring the original module-global
// _instantiation_paths dict with an explicit service instead.
var defaultTracker = provenance.NewTracker()
