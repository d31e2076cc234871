package router

import "errors"

var (
	ErrPortUnattached   = errors.New("router: port must be added to a component before routing")
	ErrPortNotFound     = errors.New("router: port not found")
	ErrSubcomponentGone = errors.New("router: subcomponent not found in fully qualified name")

	errFractionalSumNotOne = errors.New("router: fractional routing components must each sum to 1.0")
)
