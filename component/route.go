package component

// RouteType selects how a Route's path was (or should be) resolved.
type RouteType int

const (
	RouteAutoroute RouteType = iota
	RoutePolychannel
	RouteFractional
)

// Route records a requested or resolved channel between two ports,
// grounded on spec.md §3's Route record and §4.4's request constructors.
type Route struct {
	Type    RouteType
	Input   *Port
	Output  *Port
	Label   string

	// Optional A*-only tuning, meaningful only when Type == RouteAutoroute.
	TimeoutSeconds    float64
	HeuristicWeight   float64
	TurnWeight        float64
	DirectionPrefs    [3]Axis

	// Path is the resolved route: a PolychannelShape-equivalent descriptor
	// list, populated once routing/materialisation has run. Left as `any`
	// to avoid a component→polychannel import (polychannel already depends
	// on shape, which component also depends on; a back-reference here
	// would cycle).
	Path any
}

// Axis names one of the three router search directions, used to express a
// caller's direction_preference tuple.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)
