package slicer

import "errors"

// errNoBulkShape is wrapped by sliceComponentInto's "no bulk shape" error
// message, matching original_source/backend/slice.py's
// RuntimeError("Tried to slice component without bulk shape").
var errNoBulkShape = errors.New("slicer: component has no bulk shape")
