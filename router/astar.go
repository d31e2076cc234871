package router

import (
	"container/heap"
	"time"

	"github.com/3D-Printing-for-Microfluidics/openmfd-go/component"
)

// cell is an integer grid position in the routed component's own
// pixel/layer units.
type cell struct{ x, y, z int }

func (c cell) add(d cell) cell { return cell{c.x + d.x, c.y + d.y, c.z + d.z} }

// aStarArena is a flat, index-addressed pool of search nodes, grounded on
// spec.md §9's recommendation to avoid a heap of linked-list nodes; path
// reconstruction walks parent indices instead of pointers.
type aStarArena struct {
	pos    []cell
	parent []int32 // -1 for the start node
	cost   []int
	turns  []int
	dir    []cell
}

func (a *aStarArena) push(pos cell, parent int32, cost, turns int, dir cell) int32 {
	a.pos = append(a.pos, pos)
	a.parent = append(a.parent, parent)
	a.cost = append(a.cost, cost)
	a.turns = append(a.turns, turns)
	a.dir = append(a.dir, dir)
	return int32(len(a.pos) - 1)
}

// frontierEntry is a priority-queue item referencing an arena slot; the
// weighted cost is cached at push time so the heap never revisits the
// arena during comparisons.
type frontierEntry struct {
	idx     int32
	f       float64
	heurIdx float64
}

type frontier []frontierEntry

func (f frontier) Len() int            { return len(f) }
func (f frontier) Less(i, j int) bool  { return f[i].f < f[j].f }
func (f frontier) Swap(i, j int)       { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)         { *f = append(*f, x.(frontierEntry)) }
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

var baseDirections = []cell{
	{1, 0, 0}, {-1, 0, 0},
	{0, 1, 0}, {0, -1, 0},
	{0, 0, 1}, {0, 0, -1},
}

// orderedDirections returns baseDirections reordered per a caller's
// direction_preference, matching the original's axis-group ordering.
func orderedDirections(prefs [3]component.Axis) []cell {
	out := make([]cell, 0, 6)
	for _, axis := range prefs {
		switch axis {
		case component.AxisX:
			out = append(out, cell{1, 0, 0}, cell{-1, 0, 0})
		case component.AxisY:
			out = append(out, cell{0, 1, 0}, cell{0, -1, 0})
		case component.AxisZ:
			out = append(out, cell{0, 0, 1}, cell{0, 0, -1})
		}
	}
	if len(out) == 0 {
		return baseDirections
	}
	return out
}

func manhattan(a, b cell) int {
	return absInt(a.x-b.x) + absInt(a.y-b.y) + absInt(a.z-b.z)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// aStar3D searches the routed component's keepout-free pixel grid for a
// turn-weighted shortest path between start and goal, grounded on
// original_source/router/router.py's Router._a_star_3d. Returns nil if no
// path was found, timed out, or the goal is unreachable.
//
// Direction order is static: it is computed once from dirPrefs before the
// search starts and reused for every node's neighbor expansion. The
// original computes a largest-remaining-delta "sorted_directions" list on
// every loop iteration but never reads it back for neighbor expansion,
// which always uses the outer, direction_preference-derived list instead
// — so this mirrors the original's actual behavior, not its apparent intent.
func (r *Router) aStar3D(start, goal cell, timeoutSeconds, heuristicWeight, turnWeight float64, dirPrefs [3]component.Axis) []cell {
	deadline := time.Now().Add(time.Duration(timeoutSeconds * float64(time.Second)))
	directions := orderedDirections(dirPrefs)

	var arena aStarArena
	startIdx := arena.push(start, -1, 0, 0, cell{})
	var open frontier
	heap.Push(&open, frontierEntry{idx: startIdx, f: heuristicWeight * float64(manhattan(start, goal))})

	visited := make(map[cell][2]int)

	for open.Len() > 0 {
		if time.Now().After(deadline) {
			return nil
		}
		top := heap.Pop(&open).(frontierEntry)
		cur := top.idx
		pos := arena.pos[cur]

		if pos == goal {
			return reconstructPath(&arena, cur)
		}

		if best, ok := visited[pos]; ok {
			if best[0] <= arena.cost[cur] && best[1] <= arena.turns[cur] {
				continue
			}
		}
		visited[pos] = [2]int{arena.cost[cur], arena.turns[cur]}

		neighbors := make([]cell, len(directions))
		for i, d := range directions {
			neighbors[i] = pos.add(d)
		}
		valid := r.validPoints(neighbors)

		for i, d := range directions {
			if !valid[i] {
				continue
			}
			isTurn := arena.dir[cur] != (cell{}) && arena.dir[cur] != d
			turns := arena.turns[cur]
			if isTurn {
				turns++
			}
			cost := arena.cost[cur] + 1
			nIdx := arena.push(neighbors[i], cur, cost, turns, d)
			f := float64(cost) + heuristicWeight*float64(manhattan(neighbors[i], goal)) + turnWeight*float64(turns)
			heap.Push(&open, frontierEntry{idx: nIdx, f: f})
		}
	}
	return nil
}

func reconstructPath(arena *aStarArena, idx int32) []cell {
	var path []cell
	for idx != -1 {
		path = append(path, arena.pos[idx])
		idx = arena.parent[idx]
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return simplifyCardinalPath(path)
}

// simplifyCardinalPath collapses a cell-by-cell path down to its turning
// points, matching the original's _simplify_cardinal_path.
func simplifyCardinalPath(points []cell) []cell {
	if len(points) == 0 {
		return points
	}
	dedup := points[:1]
	for _, p := range points[1:] {
		if p != dedup[len(dedup)-1] {
			dedup = append(dedup, p)
		}
	}
	if len(dedup) <= 2 {
		return dedup
	}

	simplified := []cell{dedup[0], dedup[1]}
	dir := cell{
		simplified[1].x - simplified[0].x,
		simplified[1].y - simplified[0].y,
		simplified[1].z - simplified[0].z,
	}
	for _, p := range dedup[2:] {
		last := simplified[len(simplified)-1]
		nd := cell{p.x - last.x, p.y - last.y, p.z - last.z}
		if nd != dir {
			simplified = append(simplified, p)
			dir = nd
		} else {
			simplified[len(simplified)-1] = p
		}
	}
	return simplified
}
