package compiler

import (
	"fmt"
	"reflect"
	"sort"
)

// matchOrFindClosest looks up current among named's expanded dictionaries
// ignoring the keys in ignoreKeys. An exact match (after ignoring those
// keys) returns its key and an empty delta. Otherwise it returns the key
// of the entry with the fewest differing keys, plus that delta, so the
// caller can decide whether the match is close enough to reuse or needs
// a new named entry. Grounded on
// _match_or_find_closest_named_setting in the original slicer.
func matchOrFindClosest(current map[string]any, named map[string]map[string]any, ignoreKeys map[string]bool) (key string, delta map[string]any) {
	filtered := withoutKeys(current, ignoreKeys)

	var keys []string
	for k := range named {
		keys = append(keys, k)
	}
	sort.Strings(keys) // deterministic tie-breaking

	bestKey := ""
	var bestDelta map[string]any
	fewest := -1
	for _, k := range keys {
		candidate := withoutKeys(named[k], ignoreKeys)
		d := diffDicts(filtered, candidate)
		if len(d) == 0 {
			return k, map[string]any{}
		}
		if fewest == -1 || len(d) < fewest {
			fewest = len(d)
			bestKey = k
			bestDelta = d
		}
	}
	return bestKey, bestDelta
}

func withoutKeys(m map[string]any, ignore map[string]bool) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if ignore[k] {
			continue
		}
		out[k] = v
	}
	return out
}

// diffDicts returns the subset of a's entries whose value differs from
// b's (or is altogether absent from b), keyed the same as a.
func diffDicts(a, b map[string]any) map[string]any {
	out := map[string]any{}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !reflect.DeepEqual(av, bv) {
			out[k] = av
		}
	}
	return out
}

// NamedSettingsTable assigns a stable name to each distinct settings
// dictionary a compiled device encounters, reusing a prior name when the
// dictionary is an exact match and otherwise minting a fresh name and
// recording the delta against the closest existing entry — spec.md §4.7
// step 6's named-settings deduplication.
type NamedSettingsTable struct {
	backrefKey string // e.g. "Using named image settings" — the key deltas record their base under
	expanded   map[string]map[string]any
	deltas     map[string]map[string]any
	order      []string
	next       int
	prefix     string
}

// NewNamedSettingsTable seeds the table with one entry named "default"
// holding defaultDict, the dictionary every other entry is diffed
// against first.
func NewNamedSettingsTable(prefix, backrefKey string, defaultDict map[string]any) *NamedSettingsTable {
	return &NamedSettingsTable{
		backrefKey: backrefKey,
		expanded:   map[string]map[string]any{"default": defaultDict},
		deltas:     map[string]map[string]any{},
		order:      []string{"default"},
		prefix:     prefix,
	}
}

// Resolve returns the name of the entry matching current exactly, or
// mints a new one if no entry matches once ignoreKeys are excluded from
// comparison.
func (t *NamedSettingsTable) Resolve(current map[string]any, ignoreKeys map[string]bool) string {
	key, delta := matchOrFindClosest(current, t.expanded, ignoreKeys)
	if len(delta) == 0 {
		return key
	}

	name := t.freshName()
	delta[t.backrefKey] = key
	t.deltas[name] = delta
	t.expanded[name] = current
	t.order = append(t.order, name)
	return name
}

func (t *NamedSettingsTable) freshName() string {
	for {
		t.next++
		name := fmt.Sprintf("%s%d", t.prefix, t.next)
		if _, ok := t.expanded[name]; !ok {
			return name
		}
	}
}

// Deltas returns every named entry (excluding "default") as its
// recorded delta dictionary, keyed by name (a map, so unordered; Order
// gives the minting order) — for spec.md §6's "Named position settings" /
// "Named image settings" tables.
func (t *NamedSettingsTable) Deltas() map[string]map[string]any {
	out := make(map[string]map[string]any, len(t.deltas))
	for k, v := range t.deltas {
		out[k] = v
	}
	return out
}

// Order returns the minted-name order (excluding "default").
func (t *NamedSettingsTable) Order() []string {
	out := make([]string, 0, len(t.order))
	for _, n := range t.order {
		if n != "default" {
			out = append(out, n)
		}
	}
	return out
}
