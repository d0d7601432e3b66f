package maze

import (
	"math/rand"

	"github.com/beka-birhanu/vinom-pathfinder/grid"
)

// carveBacktracker runs a randomized depth-first carve from the start cell.
// The recursion is kept on an explicit stack so large grids cannot blow the
// goroutine stack.
func carveBacktracker(g *grid.Grid, rng *rand.Rand) {
	visited := make([]bool, g.Len())
	start := g.Start()
	visited[g.Index(start.Row, start.Col)] = true
	stack := []grid.Position{start}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]

		var candidates []grid.Position
		for _, n := range latticeNeighbors(g, cur) {
			if !visited[g.Index(n.Row, n.Col)] {
				candidates = append(candidates, n)
			}
		}
		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		next := candidates[rng.Intn(len(candidates))]
		carveBetween(g, cur, next)
		visited[g.Index(next.Row, next.Col)] = true
		stack = append(stack, next)
	}
}

// carveWilson builds a uniform spanning tree over the lattice with Wilson's
// algorithm: a random walk from an unvisited cell runs until it hits the
// tree, and the loop-erased walk is carved into it.
func carveWilson(g *grid.Grid, rng *rand.Rand) {
	start := g.Start()
	var nodes []grid.Position
	for row := start.Row % carveStep; row < g.Rows(); row += carveStep {
		for col := start.Col % carveStep; col < g.Cols(); col += carveStep {
			nodes = append(nodes, grid.Position{Row: row, Col: col})
		}
	}
	rng.Shuffle(len(nodes), func(i, j int) { nodes[i], nodes[j] = nodes[j], nodes[i] })

	inTree := make([]bool, g.Len())
	inTree[g.Index(start.Row, start.Col)] = true
	// next[i] is the last step the current walk took out of cell i; revisits
	// overwrite it, which erases the loop.
	next := make([]grid.Position, g.Len())

	for _, node := range nodes {
		if inTree[g.Index(node.Row, node.Col)] {
			continue
		}

		cell := node
		for !inTree[g.Index(cell.Row, cell.Col)] {
			neighbors := latticeNeighbors(g, cell)
			step := neighbors[rng.Intn(len(neighbors))]
			next[g.Index(cell.Row, cell.Col)] = step
			cell = step
		}

		cell = node
		for !inTree[g.Index(cell.Row, cell.Col)] {
			inTree[g.Index(cell.Row, cell.Col)] = true
			step := next[g.Index(cell.Row, cell.Col)]
			carveBetween(g, cell, step)
			cell = step
		}
	}
}
