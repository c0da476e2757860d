package ai

import (
	"container/heap"

	"snake-ai/game/types"
)

// node is a search node living in the per-call arena
type node struct {
	pos    types.Point
	g, h   int
	parent int // arena index, -1 for the start node
}

// entry is a frontier handle into the arena
type entry struct {
	idx int
	f   int
	h   int
	seq int // insertion order
}

// frontier orders entries by f, then h, then insertion order
type frontier []entry

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].f != f[j].f {
		return f[i].f < f[j].f
	}
	if f[i].h != f[j].h {
		return f[i].h < f[j].h
	}
	return f[i].seq < f[j].seq
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(entry)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	e := old[n-1]
	*f = old[:n-1]
	return e
}

// FindPath returns a shortest 4-connected path from start to goal that avoids
// every cell of body, inclusive of both ends. The start cell is never tested
// against body since it is normally the snake's own head. Returns nil when the
// goal is unreachable.
//
// A cell is closed the first time it is popped and is never re-expanded. With
// unit edge costs and a consistent heuristic the first pop is already optimal.
func FindPath(grid types.Grid, start, goal types.Point, body []types.Point) []types.Point {
	if start == goal {
		return []types.Point{start}
	}

	occ := types.NewOccupancy(grid, body)
	if !grid.Walkable(goal, occ) {
		return nil
	}

	closed := make([]bool, grid.Cells())
	arena := make([]node, 0, grid.Cells())
	open := make(frontier, 0, grid.Cells())

	h := types.Manhattan(start, goal)
	arena = append(arena, node{pos: start, h: h, parent: -1})
	heap.Push(&open, entry{idx: 0, f: h, h: h})
	seq := 1

	for open.Len() > 0 {
		e := heap.Pop(&open).(entry)
		cur := arena[e.idx]

		if cur.pos == goal {
			return reconstruct(arena, e.idx)
		}

		if grid.Contains(cur.pos) {
			ci := grid.Index(cur.pos)
			if closed[ci] {
				continue
			}
			closed[ci] = true
		}

		for _, d := range types.Directions {
			next := cur.pos.Add(d.Vector())
			if !grid.Walkable(next, occ) || closed[grid.Index(next)] {
				continue
			}

			g := cur.g + 1
			nh := types.Manhattan(next, goal)
			arena = append(arena, node{pos: next, g: g, h: nh, parent: e.idx})
			heap.Push(&open, entry{idx: len(arena) - 1, f: g + nh, h: nh, seq: seq})
			seq++
		}
	}

	return nil
}

func reconstruct(arena []node, idx int) []types.Point {
	var path []types.Point
	for i := idx; i != -1; i = arena[i].parent {
		path = append(path, arena[i].pos)
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}
