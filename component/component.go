// Package component implements the hierarchical scene graph spec.md §3/§4.3
// describes: Component nodes own ports, void/bulk shapes, regional settings
// and subcomponents, in parent-relative pixel/layer units, and carry
// transforms (translate/rotate/mirror) that propagate down the tree.
package component

import (
	"fmt"
	"log/slog"

	"github.com/3D-Printing-for-Microfluidics/openmfd-go/manifold"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/palette"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/shape"
)

// regionalEntry pairs a regional-settings shape with its settings value.
// Settings is left as `any`: the settings package (built separately) owns
// the concrete ExposureSettings/PositionSettings/MembraneSettings/
// SecondaryDoseSettings types consumed here, and this seam avoids a
// component→settings→component import cycle.
type regionalEntry struct {
	Shape    *shape.Shape
	Settings any
}

// Component is a node in the device tree, grounded on
// original_source/openmfd.py's Component class.
type Component struct {
	size, position manifold.Vec3
	pxSize         float64
	layerSize      float64
	hideInRender   bool
	quiet          bool
	// subtractBoundingBox, when set on a subcomponent, makes the slicer
	// carve this subcomponent's whole AABB out of its parent's composite
	// shape instead of only its own void shapes.
	subtractBoundingBox bool

	name     string
	parent   *Component
	location string // provenance: source file this component's type was first built from

	translations manifold.Vec3
	rotationDeg  int
	mirrorX      bool
	mirrorY      bool

	labels         map[string]palette.Color
	voids          map[string]*shape.Shape
	bulks          map[string]*shape.Shape
	ports          map[string]*Port
	connectedPorts []*Port
	subcomponents  map[string]*Component

	defaultExposureSettings any
	defaultPositionSettings any
	regionalSettings        map[string]regionalEntry
	burninExposure          []float64

	// expandedLayerSizes is nil for a uniform-thickness component, and one
	// mm thickness per modelling layer for a variable-thickness one. A
	// plain field rather than a type assertion on the subcomponents map's
	// *Component values, since VariableLayerThicknessComponent is attached
	// to its parent by its embedded *Component (AddSubcomponent takes
	// *Component), losing the wrapper type at that point.
	expandedLayerSizes []float64
}

// ExpandedLayerSizes returns one mm thickness per modelling layer for a
// variable-thickness component, or nil for a uniform-thickness one.
func (c *Component) ExpandedLayerSizes() []float64 { return c.expandedLayerSizes }

// New constructs a root Component with no parent. size and position are in
// this component's own integer pixel/layer units.
func New(size, position manifold.Vec3, opts ...Option) *Component {
	loc := callerFile()
	o := resolveOptions(opts)
	return newComponent("Component", size, position, o, loc)
}

func newComponent(typeID string, size, position manifold.Vec3, o componentOptions, loc string) *Component {
	if !o.quiet {
		slog.Default().Info("creating component", "type", typeID)
	}
	return &Component{
		size: size, position: position,
		pxSize: o.pxSize, layerSize: o.layerSize,
		hideInRender: o.hideInRender, quiet: o.quiet,
		location:         o.tracker.Register(typeID, loc),
		labels:           make(map[string]palette.Color),
		voids:            make(map[string]*shape.Shape),
		bulks:            make(map[string]*shape.Shape),
		ports:            make(map[string]*Port),
		subcomponents:    make(map[string]*Component),
		regionalSettings: make(map[string]regionalEntry),
	}
}

// Size returns the component's extent in its own units.
func (c *Component) Size() manifold.Vec3 { return c.size }

// PositionVec returns the component's position in parent units.
func (c *Component) PositionVec() manifold.Vec3 { return c.position }

// PxSize returns the component's pixel size in mm.
func (c *Component) PxSize() float64 { return c.pxSize }

// LayerSize returns the component's layer size in mm.
func (c *Component) LayerSize() float64 { return c.layerSize }

// Name returns the slot name this component was added under, or "" if it
// has not been attached to a parent yet.
func (c *Component) Name() string { return c.name }

// Parent returns the owning component, or nil for a root component.
func (c *Component) Parent() *Component { return c.parent }

// FullyQualifiedName walks the parent chain, substituting the owning file's
// provenance stem once the chain reaches an unnamed root.
func (c *Component) FullyQualifiedName() (string, error) {
	if c.name == "" {
		return "", errComponentUnnamed
	}
	name := c.name
	parent := c.parent
	for parent != nil {
		if parent.name != "" {
			name = parent.name + "." + name
			parent = parent.parent
			continue
		}
		return parent.instantiationStem() + "." + name, nil
	}
	return name, nil
}

// BoundingBox returns the component's AABB in the requested unit system
// (its own when pxSize/layerSize are nil).
func (c *Component) BoundingBox(pxSize, layerSize *float64) (x0, y0, z0, x1, y1, z1 float64) {
	cpx, clz := resolveUnitsFor(c, pxSize, layerSize)
	x0 = roundTo3(c.position.X * c.pxSize / cpx)
	x1 = roundTo3((c.position.X + c.size.X) * c.pxSize / cpx)
	y0 = roundTo3(c.position.Y * c.pxSize / cpx)
	y1 = roundTo3((c.position.Y + c.size.Y) * c.pxSize / cpx)
	z0 = roundTo3(c.position.Z * c.layerSize / clz)
	z1 = roundTo3((c.position.Z + c.size.Z) * c.layerSize / clz)
	return
}

// SizeIn converts the component's size into the requested unit system.
func (c *Component) SizeIn(pxSize, layerSize *float64) (x, y, z float64) {
	cpx, clz := resolveUnitsFor(c, pxSize, layerSize)
	return roundTo3(c.size.X * c.pxSize / cpx), roundTo3(c.size.Y * c.pxSize / cpx), roundTo3(c.size.Z * c.layerSize / clz)
}

// PositionIn converts the component's position into the requested unit
// system.
func (c *Component) PositionIn(pxSize, layerSize *float64) (x, y, z float64) {
	cpx, clz := resolveUnitsFor(c, pxSize, layerSize)
	return roundTo3(c.position.X * c.pxSize / cpx), roundTo3(c.position.Y * c.pxSize / cpx), roundTo3(c.position.Z * c.layerSize / clz)
}

func resolveUnitsFor(c *Component, pxSize, layerSize *float64) (float64, float64) {
	px, lz := c.pxSize, c.layerSize
	if pxSize != nil {
		px = *pxSize
	}
	if layerSize != nil {
		lz = *layerSize
	}
	return px, lz
}

// Ports returns the component's port table.
func (c *Component) Ports() map[string]*Port { return c.ports }

// Labels returns the component's label-to-color table.
func (c *Component) Labels() map[string]palette.Color { return c.labels }

// Voids returns the component's void-shape table.
func (c *Component) Voids() map[string]*shape.Shape { return c.voids }

// Bulks returns the component's bulk-shape table.
func (c *Component) Bulks() map[string]*shape.Shape { return c.bulks }

// RegionalShapes returns the shape half of the regional-settings table,
// keyed by region name.
func (c *Component) RegionalShapes() map[string]*shape.Shape {
	out := make(map[string]*shape.Shape, len(c.regionalSettings))
	for k, v := range c.regionalSettings {
		out[k] = v.Shape
	}
	return out
}

// RegionalSettings returns the settings half of the regional-settings
// table, keyed by the same region names as RegionalShapes. Values are
// left as `any`; callers type-assert to the concrete settings type they
// expect for that region (ExposureSettings, MembraneSettings,
// SecondaryDoseSettings, ...).
func (c *Component) RegionalSettings() map[string]any {
	out := make(map[string]any, len(c.regionalSettings))
	for k, v := range c.regionalSettings {
		out[k] = v.Settings
	}
	return out
}

// Subcomponents returns the component's subcomponent table.
func (c *Component) Subcomponents() map[string]*Component { return c.subcomponents }

// SubtractBoundingBox reports whether the slicer should carve c's whole
// AABB out of its parent's composite shape.
func (c *Component) SubtractBoundingBox() bool { return c.subtractBoundingBox }

// SetSubtractBoundingBox toggles the behaviour SubtractBoundingBox
// reports; callers set this on a subcomponent after attaching it, e.g.
// for an opaque subcomponent that should fully mask the space it
// occupies in its parent regardless of its own void shapes.
func (c *Component) SetSubtractBoundingBox(v bool) { c.subtractBoundingBox = v }

// Port looks up a port by name, the explicit replacement for the original's
// __getattr__ port-as-attribute sugar (spec.md REDESIGN FLAGS).
func (c *Component) Port(name string) (*Port, bool) {
	p, ok := c.ports[name]
	return p, ok
}

// validateName rejects a name already used by any slot on c, or one that is
// not a valid identifier.
func (c *Component) validateName(name string) error {
	if _, ok := c.ports[name]; ok {
		return fmt.Errorf("%w: port %q in component %q", ErrNameCollision, name, c.name)
	}
	if _, ok := c.voids[name]; ok {
		return fmt.Errorf("%w: void %q in component %q", ErrNameCollision, name, c.name)
	}
	if _, ok := c.bulks[name]; ok {
		return fmt.Errorf("%w: bulk %q in component %q", ErrNameCollision, name, c.name)
	}
	if _, ok := c.regionalSettings[name]; ok {
		return fmt.Errorf("%w: regional settings %q in component %q", ErrNameCollision, name, c.name)
	}
	if _, ok := c.subcomponents[name]; ok {
		return fmt.Errorf("%w: subcomponent %q in component %q", ErrNameCollision, name, c.name)
	}
	if _, ok := c.labels[name]; ok {
		return fmt.Errorf("%w: label %q in component %q", ErrNameCollision, name, c.name)
	}
	if !isIdentifier(name) {
		return fmt.Errorf("%w: %q", ErrNonIdentifierName, name)
	}
	return nil
}

// AddLabel registers a named color that void/bulk/regional shapes can
// reference.
func (c *Component) AddLabel(name string, color palette.Color) error {
	if err := c.validateName(name); err != nil {
		return err
	}
	c.labels[name] = color
	return nil
}

// AddLabels registers multiple labels at once.
func (c *Component) AddLabels(mapping map[string]palette.Color) error {
	for name, color := range mapping {
		if err := c.AddLabel(name, color); err != nil {
			return err
		}
	}
	return nil
}

// AddVoid attaches a void (subtracted) shape under a label already present
// in the component's label table.
func (c *Component) AddVoid(name string, s *shape.Shape, label string) error {
	if err := c.validateName(name); err != nil {
		return err
	}
	color, ok := c.labels[label]
	if !ok {
		return fmt.Errorf("component: label %q not found in component %q", label, c.name)
	}
	s.Name, s.Color, s.Label = name, &color, label
	c.voids[name] = s
	return nil
}

// AddBulk attaches a bulk (additive) shape under an existing label.
func (c *Component) AddBulk(name string, s *shape.Shape, label string) error {
	if err := c.validateName(name); err != nil {
		return err
	}
	color, ok := c.labels[label]
	if !ok {
		return fmt.Errorf("component: label %q not found in component %q", label, c.name)
	}
	s.Name, s.Color, s.Label = name, &color, label
	c.bulks[name] = s
	return nil
}

// AddPort attaches a port, naming and claiming ownership of it.
func (c *Component) AddPort(name string, p *Port) error {
	if err := c.validateName(name); err != nil {
		return err
	}
	if p.parent != nil {
		return fmt.Errorf("%w: port %q already belongs to %q", ErrDoubleOwnership, p.name, p.parent.name)
	}
	p.name = name
	p.parent = c
	c.ports[name] = p
	return nil
}

// AddSubcomponent attaches sub as a named child, promoting all of its
// labels (and its descendants') by prefixing them with name, per spec.md
// §4.3's label-promotion rule.
func (c *Component) AddSubcomponent(name string, sub *Component, hideInRender bool) error {
	if err := c.validateName(name); err != nil {
		return err
	}
	if sub.parent != nil {
		return fmt.Errorf("%w: component %q already belongs to %q", ErrDoubleOwnership, sub.name, sub.parent.name)
	}
	sub.name = name
	sub.parent = c
	sub.runTranslate()

	promoteLabels(sub, name)

	c.subcomponents[name] = sub
	if hideInRender {
		sub.hideInRender = true
	}
	return nil
}

// promoteLabels prefixes every label key (and every shape referencing it)
// in comp, recursively, by prefix.
func promoteLabels(comp *Component, prefix string) {
	renamed := make(map[string]palette.Color, len(comp.labels))
	for label, color := range comp.labels {
		renamed[prefix+"."+label] = color
	}
	comp.labels = renamed
	for _, s := range comp.voids {
		s.Label = prefix + "." + s.Label
	}
	for _, s := range comp.bulks {
		s.Label = prefix + "." + s.Label
	}
	for _, entry := range comp.regionalSettings {
		entry.Shape.Label = prefix + "." + entry.Shape.Label
	}
	for _, child := range comp.subcomponents {
		promoteLabels(child, prefix)
	}
}

// AddDefaultExposureSettings sets the default exposure settings inherited
// by children that don't override it.
func (c *Component) AddDefaultExposureSettings(settings any) { c.defaultExposureSettings = settings }

// DefaultExposureSettings returns the component's default exposure
// settings, or nil.
func (c *Component) DefaultExposureSettings() any { return c.defaultExposureSettings }

// AddDefaultPositionSettings sets the default position settings inherited
// by children that don't override it.
func (c *Component) AddDefaultPositionSettings(settings any) { c.defaultPositionSettings = settings }

// DefaultPositionSettings returns the component's default position
// settings, or nil.
func (c *Component) DefaultPositionSettings() any { return c.defaultPositionSettings }

// AddRegionalSettings attaches settings scoped to shape under label,
// rejecting the addition if shape overlaps an existing region carrying the
// same concrete settings type (spec.md's RegionalOverlap invariant).
func (c *Component) AddRegionalSettings(name string, s *shape.Shape, settings any, label string) error {
	if err := c.validateName(name); err != nil {
		return err
	}
	color, ok := c.labels[label]
	if !ok {
		return fmt.Errorf("component: label %q not found in component %q", label, c.name)
	}

	for existingName, existing := range c.regionalSettings {
		if fmt.Sprintf("%T", existing.Settings) != fmt.Sprintf("%T", settings) {
			continue
		}
		combined := s.Copy(false).Intersect(existing.Shape.Copy(false))
		if !combined.BoundingBox().Empty() {
			return fmt.Errorf("%w: %q collides with %q in component %q", ErrRegionalOverlap, name, existingName, c.name)
		}
	}

	s.Name, s.Color, s.Label = name, &color, label
	c.regionalSettings[name] = regionalEntry{Shape: s, Settings: settings}
	return nil
}

// SetBurnInExposure records the burn-in exposure schedule (in seconds).
func (c *Component) SetBurnInExposure(exposureTimes []float64) { c.burninExposure = exposureTimes }

// BurnInExposure returns the component's burn-in exposure schedule.
func (c *Component) BurnInExposure() []float64 { return c.burninExposure }

// ConnectPort marks p as connected, recording it at most once.
func (c *Component) ConnectPort(p *Port) {
	for _, existing := range c.connectedPorts {
		if existing == p {
			return
		}
	}
	c.connectedPorts = append(c.connectedPorts, p)
}

// ConnectedPorts returns the ports marked connected via ConnectPort.
func (c *Component) ConnectedPorts() []*Port { return c.connectedPorts }
