package component

import "errors"

// Sentinel errors surfaced by component-tree operations, named to match
// spec.md's error table so callers can compare with errors.Is.
var (
	ErrNameCollision     = errors.New("component: name already exists in this component")
	ErrNonIdentifierName = errors.New("component: name is not a valid identifier")
	ErrDoubleOwnership   = errors.New("component: shape or port already owned by a component")
	ErrRegionalOverlap   = errors.New("component: regional settings collide with an existing region of the same kind")

	errPortUnnamed        = errors.New("component: port has not been named")
	errComponentUnnamed   = errors.New("component: component has not been named")
	errRotationNotMul90   = errors.New("component: rotation must be a multiple of 90 degrees")
	errRelabelTargetMiss  = errors.New("component: new label not found in component")
	errRelabelSourceMiss  = errors.New("component: shape or label not found")
	errRelabelInvalidKey  = errors.New("component: relabel key must be a *shape.Shape or a string")
	errSubcomponentNotFound = errors.New("component: subcomponent not found")
	errLayerSumMismatch   = errors.New("component: layer run counts do not sum to the component's Z extent")
	errStitchTiles        = errors.New("component: tiles_x and tiles_y must each be >= 1")
	errStitchOverlap      = errors.New("component: overlap_px must be >= 0 and smaller than base_px_count on both axes")
)
