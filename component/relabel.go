package component

import (
	"fmt"
	"strings"

	"github.com/3D-Printing-for-Microfluidics/openmfd-go/palette"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/shape"
)

// RelabelKey identifies what to relabel: either a *shape.Shape directly, or
// a dotted path (optionally crossing into subcomponents) naming a label,
// void, bulk, or regional-settings shape.
type RelabelKey struct {
	Shape *shape.Shape
	Path  string
}

// ShapeKey builds a RelabelKey targeting a shape directly.
func ShapeKey(s *shape.Shape) RelabelKey { return RelabelKey{Shape: s} }

// PathKey builds a RelabelKey targeting a dotted name.
func PathKey(path string) RelabelKey { return RelabelKey{Path: path} }

// Relabel renames every target in mapping to its new label. Every new label
// must already exist in c's own label table (colours propagate from
// there); recursive extends string-path resolution to match labels/shapes
// whose current label ends in the target's trailing path segment, not just
// an exact match, letting one call relabel the same slot name across every
// subcomponent that has it.
func (c *Component) Relabel(mapping map[RelabelKey]string, recursive bool) error {
	colorByLabel := make(map[string]palette.Color, len(mapping))
	for _, newLabel := range mapping {
		color, ok := c.labels[newLabel]
		if !ok {
			return fmt.Errorf("%w: %q not found in component %q", errRelabelTargetMiss, newLabel, c.name)
		}
		colorByLabel[newLabel] = color
	}
	for key, newLabel := range mapping {
		if err := c.relabelOne(key, newLabel, colorByLabel, recursive); err != nil {
			return err
		}
	}
	return nil
}

func (c *Component) relabelOne(key RelabelKey, newLabel string, colorByLabel map[string]palette.Color, recursive bool) error {
	if key.Shape != nil {
		key.Shape.Label = newLabel
		color := colorByLabel[newLabel]
		key.Shape.Color = &color
		return nil
	}
	if key.Path == "" {
		return errRelabelInvalidKey
	}

	parts := strings.Split(key.Path, ".")
	comp := c
	for _, part := range parts[:len(parts)-1] {
		next, ok := comp.subcomponents[part]
		if !ok {
			return fmt.Errorf("%w: %q in %q", errSubcomponentNotFound, part, comp.name)
		}
		comp = next
	}
	tail := parts[len(parts)-1]

	for _, sub := range comp.subcomponents {
		_ = sub.relabelOne(RelabelKey{Path: tail}, newLabel, colorByLabel, recursive)
	}

	if labelKey, ok := matchKey(comp.labels, tail, recursive); ok {
		comp.labels[newLabel] = comp.labels[labelKey]
		delete(comp.labels, labelKey)
		for _, s := range allRegionShapes(comp) {
			if s.Label == labelKey || (recursive && strings.HasSuffix(s.Label, "."+tail)) {
				s.Label = newLabel
				color := colorByLabel[newLabel]
				s.Color = &color
			}
		}
		return nil
	}
	if s, ok := matchShape(comp.voids, tail, recursive); ok {
		color := colorByLabel[newLabel]
		s.Label, s.Color = newLabel, &color
		return nil
	}
	if s, ok := matchShape(comp.bulks, tail, recursive); ok {
		color := colorByLabel[newLabel]
		s.Label, s.Color = newLabel, &color
		return nil
	}
	if s, ok := matchRegional(comp.regionalSettings, tail, recursive); ok {
		color := colorByLabel[newLabel]
		s.Label, s.Color = newLabel, &color
		return nil
	}
	// No match anywhere in this component's own slots. The original only
	// raises here when no color mapping has been built yet, which by this
	// point in the call tree is never the case (the caller always builds
	// one up front) — so a miss silently falls through. Preserved as
	// observed original behaviour rather than surfacing errRelabelSourceMiss.
	return nil
}

func matchKey[V any](m map[string]V, tail string, recursive bool) (string, bool) {
	if _, ok := m[tail]; ok {
		return tail, true
	}
	if recursive {
		for k := range m {
			if strings.HasSuffix(k, "."+tail) {
				return k, true
			}
		}
	}
	return "", false
}

func matchShape(m map[string]*shape.Shape, tail string, recursive bool) (*shape.Shape, bool) {
	if s, ok := m[tail]; ok {
		return s, true
	}
	if recursive {
		if k, ok := matchKey(m, tail, recursive); ok {
			return m[k], true
		}
	}
	return nil, false
}

func matchRegional(m map[string]regionalEntry, tail string, recursive bool) (*shape.Shape, bool) {
	if e, ok := m[tail]; ok {
		return e.Shape, true
	}
	if recursive {
		if k, ok := matchKey(m, tail, recursive); ok {
			return m[k].Shape, true
		}
	}
	return nil, false
}

func allRegionShapes(c *Component) []*shape.Shape {
	out := make([]*shape.Shape, 0, len(c.voids)+len(c.bulks)+len(c.regionalSettings))
	for _, s := range c.voids {
		out = append(out, s)
	}
	for _, s := range c.bulks {
		out = append(out, s)
	}
	for _, e := range c.regionalSettings {
		out = append(out, e.Shape)
	}
	return out
}
