// Package provenance replaces the teacher's original "where was this
// instantiated" mixin with an explicit service: spec.md §9's REDESIGN
// FLAGS call for the instantiation-path tracker to become "a small
// injected service (ProvenanceTracker) whose register(typeId, location)
// → Path is called by Component/Device constructors", rather than a
// base class every component silently inherits from.
package provenance

import "sync"

// Tracker records, once per type, the filesystem location a caller
// claims to be constructing from. The first registration for a given
// type wins; later registrations for the same type are ignored and
// return the original location, mirroring the original's
// write-once-per-class behaviour.
type Tracker struct {
	mu    sync.Mutex
	paths map[string]string
}

// NewTracker returns an empty, ready-to-use Tracker.
func NewTracker() *Tracker {
	return &Tracker{paths: make(map[string]string)}
}

// Register records location for typeID if no location has been
// recorded for it yet, and returns the (possibly pre-existing) value.
func (t *Tracker) Register(typeID, location string) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if existing, ok := t.paths[typeID]; ok {
		return existing
	}
	t.paths[typeID] = location
	return location
}

// Lookup returns the recorded location for typeID, if any.
func (t *Tracker) Lookup(typeID string) (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	loc, ok := t.paths[typeID]
	return loc, ok
}
