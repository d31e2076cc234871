package router

import (
	"encoding/gob"
	"os"
	"path/filepath"

	"github.com/3D-Printing-for-Microfluidics/openmfd-go/component"
	"github.com/3D-Printing-for-Microfluidics/openmfd-go/polychannel"
)

func init() {
	gob.Register(&polychannel.SparseShape{})
	gob.Register(&polychannel.SparseBezierShape{})
}

// cachedRoute is the on-disk form of one resolved autoroute request,
// keyed by its fully-qualified route name. Only autoroute requests are
// cached: polychannel/fractional requests already have their path fully
// known at registration time, so there's nothing for the cache to save
// them from recomputing.
type cachedRoute struct {
	RouteType    component.RouteType
	InputOrigin  [3]float64
	OutputOrigin [3]float64
	Path         []polychannel.Entry
}

// cacheFile returns the path spec.md's route-cache convention assigns to
// the routed component: {instantiation_dir}/{source_file_stem}_cache/{name}.
func (r *Router) cacheFile() string {
	dir := filepath.Join(r.comp.InstantiationDir(), r.comp.InstantiationStem()+"_cache")
	return filepath.Join(dir, r.comp.Name())
}

// loadCache reads a previously saved route cache, returning an empty map
// on any read or decode failure (a missing or stale cache is never fatal
// — it just means every autoroute request falls back to a fresh A* run).
func (r *Router) loadCache() map[string]cachedRoute {
	cache := make(map[string]cachedRoute)
	f, err := os.Open(r.cacheFile())
	if err != nil {
		return cache
	}
	defer f.Close()
	if err := gob.NewDecoder(f).Decode(&cache); err != nil {
		return make(map[string]cachedRoute)
	}
	return cache
}

// saveCache writes every resolved autoroute request's path back to disk,
// so the next FinalizeRoutes run over an unchanged component can skip
// A* entirely.
func (r *Router) saveCache() {
	cache := make(map[string]cachedRoute)
	px, lz := r.comp.PxSize(), r.comp.LayerSize()
	for _, name := range r.order {
		req := r.routes[name]
		if req.kind != component.RouteAutoroute || req.path == nil {
			continue
		}
		ix, iy, iz := req.input.Origin(&px, &lz)
		ox, oy, oz := req.output.Origin(&px, &lz)
		cache[name] = cachedRoute{
			RouteType:    req.kind,
			InputOrigin:  [3]float64{ix, iy, iz},
			OutputOrigin: [3]float64{ox, oy, oz},
			Path:         req.path,
		}
	}
	if len(cache) == 0 {
		return
	}

	path := r.cacheFile()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()
	_ = gob.NewEncoder(f).Encode(cache)
}
