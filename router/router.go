// Package router implements the 3D autorouter spec.md §4.4 describes: a
// Router is bound to one component, owns an R-tree keepout index built
// from its subcomponents/ports/void shapes, and resolves a batch of
// manual (polychannel/fractional) and automatic (A*) route requests into
// Polychannel voids added back onto the component. Grounded on
// original_source/router/router.py's Router class.
package router

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/3D-Printing-for-Microfluidics/openmfd-go/component"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/manifold"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/palette"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/polychannel"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/rtree"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/units"
)

// routeRequest is one pending route registered before FinalizeRoutes runs.
type routeRequest struct {
	name   string
	kind   component.RouteType
	input  *component.Port
	output *component.Port
	label  string

	timeoutSeconds  float64
	heuristicWeight float64
	turnWeight      float64
	directionPrefs  [3]component.Axis

	path []polychannel.Entry // already resolved for polychannel/fractional; nil for autoroute until solved
}

// AutorouteOption tunes an autoroute request away from its defaults.
type AutorouteOption func(*routeRequest)

func WithTimeout(seconds float64) AutorouteOption {
	return func(r *routeRequest) { r.timeoutSeconds = seconds }
}
func WithHeuristicWeight(w float64) AutorouteOption {
	return func(r *routeRequest) { r.heuristicWeight = w }
}
func WithTurnWeight(w float64) AutorouteOption {
	return func(r *routeRequest) { r.turnWeight = w }
}
func WithDirectionPreference(axes [3]component.Axis) AutorouteOption {
	return func(r *routeRequest) { r.directionPrefs = axes }
}

// Router routes channels within one component, per spec.md §4.4.
type Router struct {
	comp          *component.Component
	lib           manifold.Library
	channelSize   [3]int
	channelMargin [3]int
	quiet         bool

	order  []string
	routes map[string]*routeRequest

	index             *rtree.Tree
	nextID            int64
	nonroutedKeepouts map[string]keepoutRef
	routedKeepouts    map[string]keepoutRef
	keepoutsByPort    map[string][]string
	bounds            units.Box3
}

// NewRouter constructs a Router bound to comp, with a uniform channel
// cross-section size and routing margin expressed in comp's own
// pixel/layer units.
func NewRouter(comp *component.Component, lib manifold.Library, channelSize, channelMargin [3]int, quiet bool) *Router {
	return &Router{
		comp:          comp,
		lib:           lib,
		channelSize:   channelSize,
		channelMargin: channelMargin,
		quiet:         quiet,
		routes:        make(map[string]*routeRequest),
	}
}

func routeName(input, output *component.Port) (string, string, string, error) {
	inFQN, err := input.FullyQualifiedName()
	if err != nil {
		return "", "", "", fmt.Errorf("%w (input)", ErrPortUnattached)
	}
	outFQN, err := output.FullyQualifiedName()
	if err != nil {
		return "", "", "", fmt.Errorf("%w (output)", ErrPortUnattached)
	}
	return inFQN + "__to__" + outFQN, inFQN, outFQN, nil
}

// AutorouteChannel registers an automatic A*-routed channel between input
// and output, resolved when FinalizeRoutes runs.
func (r *Router) AutorouteChannel(input, output *component.Port, label string, opts ...AutorouteOption) error {
	name, _, _, err := routeName(input, output)
	if err != nil {
		return err
	}
	req := &routeRequest{
		name: name, kind: component.RouteAutoroute,
		input: input, output: output, label: label,
		timeoutSeconds: 120, heuristicWeight: 10, turnWeight: 2,
		directionPrefs: [3]component.Axis{component.AxisX, component.AxisY, component.AxisZ},
	}
	for _, opt := range opts {
		opt(req)
	}
	r.register(name, req)
	return nil
}

// RouteWithPolychannel registers a manually specified path between input
// and output; path is wrapped with a leading/trailing cube anchored at
// each port's own origin, as the original does to close the channel onto
// the port face.
func (r *Router) RouteWithPolychannel(input, output *component.Port, path []polychannel.Entry, label string) error {
	name, _, _, err := routeName(input, output)
	if err != nil {
		return err
	}
	full := r.closePathAtPorts(input, output, path)
	r.register(name, &routeRequest{
		name: name, kind: component.RoutePolychannel,
		input: input, output: output, label: label, path: full,
	})
	return nil
}

// RouteWithFractionalPath registers a path described as a sequence of
// fractional steps between the input and output port positions; each
// step's (x, y, z) fractions must sum to (1, 1, 1) across the whole
// route, matching the original's route_with_fractional_path.
func (r *Router) RouteWithFractionalPath(input, output *component.Port, steps [][3]float64, label string) error {
	name, _, _, err := routeName(input, output)
	if err != nil {
		return err
	}

	px, lz := r.comp.PxSize(), r.comp.LayerSize()
	sx, sy, sz := input.PositionIn(&px, &lz)
	ex, ey, ez := output.PositionIn(&px, &lz)
	start := cell{int(math.Round(sx)), int(math.Round(sy)), int(math.Round(sz))}
	end := cell{int(math.Round(ex)), int(math.Round(ey)), int(math.Round(ez))}
	diff := cell{end.x - start.x, end.y - start.y, end.z - start.z}

	var sumX, sumY, sumZ float64
	waypoints := make([]cell, 0, len(steps))
	for _, s := range steps {
		sumX += s[0]
		sumY += s[1]
		sumZ += s[2]
		waypoints = append(waypoints, cell{
			start.x + int(math.Round(sumX*float64(diff.x))),
			start.y + int(math.Round(sumY*float64(diff.y))),
			start.z + int(math.Round(sumZ*float64(diff.z))),
		})
	}
	if sumX != 1.0 || sumY != 1.0 || sumZ != 1.0 {
		return fmt.Errorf("%w: got (%v, %v, %v)", errFractionalSumNotOne, sumX, sumY, sumZ)
	}

	middle := waypoints
	if len(middle) > 0 {
		middle = middle[:len(middle)-1]
	}
	path := r.pathToPolychannelEntries(input, output, middle)
	r.register(name, &routeRequest{
		name: name, kind: component.RouteFractional,
		input: input, output: output, label: label, path: path,
	})
	return nil
}

func (r *Router) register(name string, req *routeRequest) {
	if _, exists := r.routes[name]; !exists {
		r.order = append(r.order, name)
	}
	r.routes[name] = req
}

// FinalizeRoutes resolves every registered route: it rebuilds the keepout
// index, runs A* for autoroute requests, materialises every request's
// path into a Polychannel, validates it against the keepout index
// (warning rather than failing for manual requests), and adds the
// resulting void back onto the routed component.
func (r *Router) FinalizeRoutes() error {
	cached := r.loadCache()
	r.generateKeepoutIndex()

	for _, name := range r.order {
		req := r.routes[name]
		inKey, outKey := portKey(req.input), portKey(req.output)
		removed := r.removePortKeepouts(inKey, outKey)

		if req.kind == component.RouteAutoroute {
			if cr, ok := cached[name]; ok && cr.RouteType == req.kind && originsMatch(r, req, cr) {
				req.path = cr.Path
				if !r.finalizeRoute(req, inKey, outKey, true) {
					req.path = nil
				}
			}
			if req.path == nil {
				if !r.autoroute(req) && !r.quiet {
					slog.Warn("autoroute failed", "route", name)
				} else {
					r.finalizeRoute(req, inKey, outKey, false)
				}
			}
		} else {
			r.finalizeRoute(req, inKey, outKey, false)
		}

		r.addPortKeepouts(removed)
	}

	r.saveCache()
	return nil
}

func portKey(p *component.Port) string {
	name, err := p.Name()
	if err != nil {
		return ""
	}
	return name
}

// finalizeRoute materialises req.path, checks it against the keepout
// index (hard-failing only autoroute paths), and if acceptable adds it as
// a void on the routed component. Returns whether the route was added.
func (r *Router) finalizeRoute(req *routeRequest, inKey, outKey string, loaded bool) bool {
	built, err := polychannel.Build(r.lib, req.path, false, r.quiet)
	if err != nil {
		if !r.quiet {
			slog.Warn("failed to materialise route", "route", req.name, "error", err)
		}
		return false
	}

	if r.violatesKeepouts(built.Keepouts) {
		if req.kind == component.RouteAutoroute {
			if !r.quiet {
				slog.Warn("autoroute keepout violation, discarding", "route", req.name)
			}
			return false
		}
		if !r.quiet {
			slog.Warn("route violates keepouts", "route", req.name)
		}
	}

	if !loaded {
		r.addKeepoutsFromPath(req.name, built.Keepouts, inKey, outKey)
	}

	if _, ok := r.comp.Labels()[req.label]; !ok {
		color, _ := palette.FromName("w", 255)
		_ = r.comp.AddLabel(req.label, color)
	}
	if err := r.comp.AddVoid(req.name, built, req.label); err != nil && !r.quiet {
		slog.Warn("failed to add route void", "route", req.name, "error", err)
	}

	if req.input.Parent() != r.comp {
		req.input.Parent().ConnectPort(req.input)
	}
	if req.output.Parent() != r.comp {
		req.output.Parent().ConnectPort(req.output)
	}
	return true
}

// autoroute runs A* between req.input and req.output and, on success,
// turns the resulting waypoints into a constant-cross-section polychannel
// path on req.
func (r *Router) autoroute(req *routeRequest) bool {
	if !r.portRoutable(req.input) || !r.portRoutable(req.output) {
		return false
	}

	start := r.moveOutsidePort(req.input)
	end := r.moveOutsidePort(req.output)
	if valid := r.validPoints([]cell{start, end}); !valid[0] || !valid[1] {
		return false
	}

	path := r.aStar3D(start, end, req.timeoutSeconds, req.heuristicWeight, req.turnWeight, req.directionPrefs)
	if len(path) < 2 {
		return false
	}

	req.path = r.pathToPolychannelEntries(req.input, req.output, path)
	return true
}

func originsMatch(r *Router, req *routeRequest, cr cachedRoute) bool {
	px, lz := r.comp.PxSize(), r.comp.LayerSize()
	ix, iy, iz := req.input.Origin(&px, &lz)
	ox, oy, oz := req.output.Origin(&px, &lz)
	return cr.InputOrigin == [3]float64{ix, iy, iz} && cr.OutputOrigin == [3]float64{ox, oy, oz}
}
