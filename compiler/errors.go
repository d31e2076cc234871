package compiler

import "errors"

// errNoLayers is returned when a device produces no slices at all, which
// the original treats as a malformed device rather than an empty print job.
var errNoLayers = errors.New("compiler: device produced no layers")

// errDeviceSizeMismatch is returned when a regional mask's slice count
// does not match its device's body slice count, which should never
// happen since both come from the same per-layer Z walk (slicer.sliceLayers).
var errDeviceSizeMismatch = errors.New("compiler: mask slice count does not match body slice count")
