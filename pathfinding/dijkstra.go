// Package pathfinding runs Dijkstra's algorithm over a grid.Grid.
//
// Every orthogonal step between two open cells costs 1. The search records
// the order in which cells are finalized and reconstructs the shortest path
// from the start to the finish through the cells' Previous links. Ties in
// the frontier are broken by discovery order, so repeated searches over the
// same layout return identical traces.
//
// Search writes only the Distance, IsVisited and Previous fields of the
// grid's cells and resets them on entry. It must not run concurrently with
// another call on the same grid.
package pathfinding

import (
	"container/heap"
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-pathfinder/grid"
)

var (
	// ErrNilGrid indicates a nil grid was passed to Search.
	ErrNilGrid = errors.New("pathfinding: grid is nil")

	// ErrOutOfBounds indicates a start or finish position outside the grid.
	ErrOutOfBounds = errors.New("pathfinding: position out of bounds")
)

const unseen = -1

// Trace is the outcome of a search.
type Trace struct {
	Visited []grid.Cell // Cells in the order their distance was finalized.
	Path    []grid.Cell // Shortest path from start to finish inclusive; empty if unreachable.
}

// Found reports whether the finish was reached.
func (t Trace) Found() bool {
	return len(t.Path) > 0
}

// Moves returns the number of steps along Path, or -1 if no path exists.
func (t Trace) Moves() int {
	return len(t.Path) - 1
}

// Solve searches from the grid's start cell to its finish cell.
func Solve(g *grid.Grid) (Trace, error) {
	if g == nil {
		return Trace{}, ErrNilGrid
	}
	return Search(g, g.Start(), g.Finish())
}

// Search computes shortest distances from start and returns the visitation
// order together with the shortest path to finish. start and finish need not
// carry the grid's start/finish roles and may be the same position.
func Search(g *grid.Grid, start, finish grid.Position) (Trace, error) {
	if g == nil {
		return Trace{}, ErrNilGrid
	}
	if !g.InBounds(start.Row, start.Col) {
		return Trace{}, fmt.Errorf("%w: start (%d,%d)", ErrOutOfBounds, start.Row, start.Col)
	}
	if !g.InBounds(finish.Row, finish.Col) {
		return Trace{}, fmt.Errorf("%w: finish (%d,%d)", ErrOutOfBounds, finish.Row, finish.Col)
	}

	r := &runner{
		g:      g,
		source: g.Index(start.Row, start.Col),
		target: g.Index(finish.Row, finish.Col),
	}
	r.init()
	r.process()
	return r.trace(), nil
}

// runner holds the mutable state of a single search.
type runner struct {
	g      *grid.Grid
	source int      // flat index of the start cell
	target int      // flat index of the finish cell
	pq     frontier // lazy min-heap of discovered cells
	seq    []int    // first-discovery sequence per cell, unseen if never pushed
	next   int      // next discovery sequence number
	order  []int    // finalized cells in order
	buf    []int    // neighbour scratch space
}

func (r *runner) init() {
	r.g.ResetSearch()

	r.seq = make([]int, r.g.Len())
	for i := range r.seq {
		r.seq[i] = unseen
	}
	r.pq = make(frontier, 0, r.g.Len())
	r.buf = make([]int, 0, len(grid.Directions))

	r.g.CellAt(r.source).Distance = 0
	r.discover(r.source, 0)
}

func (r *runner) discover(i, dist int) {
	if r.seq[i] == unseen {
		r.seq[i] = r.next
		r.next++
	}
	heap.Push(&r.pq, frontierItem{index: i, dist: dist, seq: r.seq[i]})
}

func (r *runner) process() {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(frontierItem)
		c := r.g.CellAt(item.index)

		// Stale entry from an earlier, longer relaxation.
		if c.IsVisited || item.dist > c.Distance {
			continue
		}
		if c.Distance == grid.Infinity {
			return
		}
		if c.IsWall {
			continue
		}

		c.IsVisited = true
		r.order = append(r.order, item.index)
		if item.index == r.target {
			return
		}
		r.relax(item.index)
	}
}

func (r *runner) relax(u int) {
	cu := r.g.CellAt(u)
	r.buf = r.g.Neighbors(r.buf[:0], u)
	for _, v := range r.buf {
		cv := r.g.CellAt(v)
		if cv.IsWall || cv.IsVisited {
			continue
		}

		candidate := cu.Distance + 1
		if candidate >= cv.Distance {
			continue
		}
		cv.Distance = candidate
		cv.Previous = u
		r.discover(v, candidate)
	}
}

func (r *runner) trace() Trace {
	t := Trace{Visited: make([]grid.Cell, 0, len(r.order))}
	for _, i := range r.order {
		t.Visited = append(t.Visited, *r.g.CellAt(i))
	}

	finish := r.g.CellAt(r.target)
	if finish.IsWall {
		return t
	}
	if finish.Previous == grid.NoPrevious && r.target != r.source {
		return t
	}

	for i := r.target; i != grid.NoPrevious; i = r.g.CellAt(i).Previous {
		t.Path = append(t.Path, *r.g.CellAt(i))
	}
	for a, b := 0, len(t.Path)-1; a < b; a, b = a+1, b-1 {
		t.Path[a], t.Path[b] = t.Path[b], t.Path[a]
	}
	return t
}
