/*
Package maze fills a grid.Grid with a wall layout that keeps the start and
finish connected.

Generation carves passages out of solid rock instead of punching holes into an
open grid. Every non-endpoint cell starts as a wall, passages are carved on a
lattice of cells two steps apart anchored at the start cell, and the finish is
joined to the carved network by the shortest corridor if the carve missed it.
The finished layout is checked with the pathfinding engine before it is
written back, so a failed generation never touches the caller's grid.

Two carving algorithms are available: a randomized depth-first backtracker
(long winding corridors) and Wilson's loop-erased random walk (uniform
spanning tree, shorter dead ends). Both are reproducible from a seed.
*/
package maze

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/grid"
	"github.com/beka-birhanu/vinom-pathfinder/pathfinding"
)

const (
	minDimension = 2 // Minimum rows and columns for a carve step to fit.
	carveStep    = 2 // Distance between lattice cells.
)

var (
	// ErrInvalidGeometry aliases grid.ErrInvalidGeometry so callers can test
	// for either with errors.Is.
	ErrInvalidGeometry = grid.ErrInvalidGeometry

	ErrNilGrid          = errors.New("maze: grid is nil")
	ErrUnknownAlgorithm = errors.New("maze: unknown algorithm")
	ErrDisconnected     = errors.New("maze: generated layout does not connect start and finish")
)

// Algorithm names a carving strategy.
type Algorithm string

const (
	Backtracker Algorithm = "backtracker"
	Wilson      Algorithm = "wilson"
)

type carver func(g *grid.Grid, rng *rand.Rand)

var carvers = map[Algorithm]carver{
	Backtracker: carveBacktracker,
	Wilson:      carveWilson,
}

// ParseAlgorithm maps a name to an Algorithm. The empty string selects
// Backtracker.
func ParseAlgorithm(s string) (Algorithm, error) {
	if s == "" {
		return Backtracker, nil
	}
	a := Algorithm(s)
	if _, ok := carvers[a]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownAlgorithm, s)
	}
	return a, nil
}

// Options configures a generation run.
type Options struct {
	Seed      int64     // Seed of the random source
	HasSeed   bool      // HasSeed is false when Seed should be drawn from the clock
	Algorithm Algorithm // Carving strategy
}

// Option mutates Options.
type Option func(*Options)

// WithSeed makes the generation reproducible.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Seed = seed
		o.HasSeed = true
	}
}

// WithAlgorithm selects the carving strategy.
func WithAlgorithm(a Algorithm) Option {
	return func(o *Options) {
		o.Algorithm = a
	}
}

// Info describes a finished generation, enough to reproduce it.
type Info struct {
	Seed      int64     `json:"seed"`
	Algorithm Algorithm `json:"algorithm"`
	Walls     int       `json:"walls"`
}

// String returns a short human-readable summary.
func (i Info) String() string {
	return fmt.Sprintf("%s maze, seed %d, %d walls", i.Algorithm, i.Seed, i.Walls)
}

// Generate replaces the wall layout of g with a freshly carved maze. Start and
// finish stay where they are. On error g is left unchanged.
func Generate(g *grid.Grid, opts ...Option) (Info, error) {
	cfg := Options{Algorithm: Backtracker}
	for _, opt := range opts {
		opt(&cfg)
	}
	if !cfg.HasSeed {
		cfg.Seed = time.Now().UnixNano()
	}

	if g == nil {
		return Info{}, ErrNilGrid
	}
	if g.Rows() < minDimension || g.Cols() < minDimension {
		return Info{}, fmt.Errorf("%w: maze needs at least %dx%d cells, got %dx%d",
			ErrInvalidGeometry, minDimension, minDimension, g.Rows(), g.Cols())
	}
	carve, ok := carvers[cfg.Algorithm]
	if !ok {
		return Info{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, cfg.Algorithm)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	work := g.Clone()
	fillWalls(work)
	carve(work, rng)
	connectFinish(work)

	trace, err := pathfinding.Solve(work)
	if err != nil {
		return Info{}, err
	}
	if !trace.Found() {
		return Info{}, ErrDisconnected
	}

	for i := 0; i < work.Len(); i++ {
		c := work.CellAt(i)
		g.SetWall(c.Row, c.Col, c.IsWall)
	}
	g.ResetSearch()

	return Info{
		Seed:      cfg.Seed,
		Algorithm: cfg.Algorithm,
		Walls:     g.WallCount(),
	}, nil
}

// fillWalls turns every non-endpoint cell into a wall.
func fillWalls(g *grid.Grid) {
	for i := 0; i < g.Len(); i++ {
		c := g.CellAt(i)
		g.SetWall(c.Row, c.Col, true)
	}
}

// latticeNeighbors returns the in-bounds cells one carve step away from p.
func latticeNeighbors(g *grid.Grid, p grid.Position) []grid.Position {
	var result []grid.Position
	for _, d := range grid.Directions {
		n := grid.Position{Row: p.Row + d.Row*carveStep, Col: p.Col + d.Col*carveStep}
		if g.InBounds(n.Row, n.Col) {
			result = append(result, n)
		}
	}
	return result
}

// carveBetween opens a, b and the cell between them.
func carveBetween(g *grid.Grid, a, b grid.Position) {
	mid := grid.Position{Row: (a.Row + b.Row) / 2, Col: (a.Col + b.Col) / 2}
	for _, p := range [3]grid.Position{a, mid, b} {
		g.SetWall(p.Row, p.Col, false)
	}
}

// connectFinish carves the shortest corridor from the finish to the nearest
// cell already reachable from the start.
func connectFinish(g *grid.Grid) {
	reach := reachable(g, g.Start())
	finish := g.Index(g.Finish().Row, g.Finish().Col)
	if reach[finish] {
		return
	}

	prev := make([]int, g.Len())
	for i := range prev {
		prev[i] = grid.NoPrevious
	}
	seen := make([]bool, g.Len())
	seen[finish] = true
	queue := []int{finish}
	found := grid.NoPrevious

	for qi := 0; qi < len(queue) && found == grid.NoPrevious; qi++ {
		u := queue[qi]
		for _, v := range g.Neighbors(nil, u) {
			if seen[v] {
				continue
			}
			seen[v] = true
			prev[v] = u
			if reach[v] {
				found = v
				break
			}
			queue = append(queue, v)
		}
	}
	if found == grid.NoPrevious {
		return
	}

	for i := prev[found]; i != finish && i != grid.NoPrevious; i = prev[i] {
		p := g.PositionOf(i)
		g.SetWall(p.Row, p.Col, false)
	}
}

// reachable flood-fills the open cells connected to from.
func reachable(g *grid.Grid, from grid.Position) []bool {
	seen := make([]bool, g.Len())
	src := g.Index(from.Row, from.Col)
	seen[src] = true
	queue := []int{src}
	for qi := 0; qi < len(queue); qi++ {
		for _, v := range g.Neighbors(nil, queue[qi]) {
			if seen[v] || g.CellAt(v).IsWall {
				continue
			}
			seen[v] = true
			queue = append(queue, v)
		}
	}
	return seen
}
