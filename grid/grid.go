/*
Package grid provides the rectangular cell grid the pathfinding engine and the
maze generator work on.

A Grid owns its cells in row-major order and keeps exactly one start cell and
one finish cell. Role and wall flags are changed only through MoveEndpoint and
ToggleWall, which refuse any change that would put a wall on an endpoint or
stack both roles on one cell.
*/
package grid

import (
	"fmt"
)

// Directions lists the orthogonal offsets in the order neighbours are visited.
var Directions = [4]Position{
	{Row: -1, Col: 0}, // up
	{Row: 1, Col: 0},  // down
	{Row: 0, Col: -1}, // left
	{Row: 0, Col: 1},  // right
}

// Grid is a fixed-size rectangular arrangement of cells.
type Grid struct {
	rows   int    // Number of rows
	cols   int    // Number of columns
	cells  []Cell // Cells in row-major order
	start  int    // Flat index of the start cell
	finish int    // Flat index of the finish cell
}

// New allocates a rows×cols grid of open cells and marks start and finish.
func New(rows, cols int, start, finish Position) (*Grid, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidGeometry, rows, cols)
	}

	g := &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
	}
	if !g.InBounds(start.Row, start.Col) {
		return nil, fmt.Errorf("%w: start (%d,%d) out of bounds", ErrInvalidGeometry, start.Row, start.Col)
	}
	if !g.InBounds(finish.Row, finish.Col) {
		return nil, fmt.Errorf("%w: finish (%d,%d) out of bounds", ErrInvalidGeometry, finish.Row, finish.Col)
	}
	if start == finish {
		return nil, fmt.Errorf("%w: start and finish coincide at (%d,%d)", ErrInvalidGeometry, start.Row, start.Col)
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			g.cells[g.Index(row, col)] = newCell(row, col)
		}
	}

	g.start = g.Index(start.Row, start.Col)
	g.finish = g.Index(finish.Row, finish.Col)
	g.cells[g.start].IsStart = true
	g.cells[g.finish].IsFinish = true
	return g, nil
}

// Default creates a grid with the start one cell in from the top-left corner
// and the finish one cell in from the bottom-right corner. Grids too small for
// that placement fall back to the corners themselves.
func Default(rows, cols int) (*Grid, error) {
	start := Position{Row: min(1, rows-1), Col: min(1, cols-1)}
	finish := Position{Row: max(rows-2, 0), Col: max(cols-2, 0)}
	if start == finish || finish.Row < start.Row || finish.Col < start.Col {
		start = Position{}
		finish = Position{Row: rows - 1, Col: cols - 1}
	}
	return New(rows, cols, start, finish)
}

// Restore rebuilds a grid from a stored layout. Walls on an endpoint are
// rejected rather than dropped.
func Restore(rows, cols int, start, finish Position, walls []Position) (*Grid, error) {
	g, err := New(rows, cols, start, finish)
	if err != nil {
		return nil, err
	}

	for _, w := range walls {
		if !g.InBounds(w.Row, w.Col) {
			return nil, fmt.Errorf("%w: wall (%d,%d) out of bounds", ErrInvalidGeometry, w.Row, w.Col)
		}
		c := &g.cells[g.Index(w.Row, w.Col)]
		if c.IsEndpoint() {
			return nil, fmt.Errorf("%w: wall on endpoint (%d,%d)", ErrInvalidGeometry, w.Row, w.Col)
		}
		c.IsWall = true
	}
	return g, nil
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// Start returns the position of the start cell.
func (g *Grid) Start() Position { return g.PositionOf(g.start) }

// Finish returns the position of the finish cell.
func (g *Grid) Finish() Position { return g.PositionOf(g.finish) }

// InBounds reports whether (row, col) lies inside the grid.
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Index converts (row, col) into the row-major flat index.
func (g *Grid) Index(row, col int) int {
	return row*g.cols + col
}

// PositionOf converts a flat index back into (row, col).
func (g *Grid) PositionOf(i int) Position {
	return Position{Row: i / g.cols, Col: i % g.cols}
}

// At returns the cell at (row, col), or nil when out of bounds. The pointer
// aliases grid storage; role and wall flags must not be written through it.
func (g *Grid) At(row, col int) *Cell {
	if !g.InBounds(row, col) {
		return nil
	}
	return &g.cells[g.Index(row, col)]
}

// CellAt returns the cell at flat index i.
func (g *Grid) CellAt(i int) *Cell {
	return &g.cells[i]
}

// Neighbors appends to dst the flat indexes of the in-bounds orthogonal
// neighbours of flat index i, in Directions order.
func (g *Grid) Neighbors(dst []int, i int) []int {
	p := g.PositionOf(i)
	for _, d := range Directions {
		r, c := p.Row+d.Row, p.Col+d.Col
		if g.InBounds(r, c) {
			dst = append(dst, g.Index(r, c))
		}
	}
	return dst
}

// MoveEndpoint moves the start or finish marker to (row, col). It refuses
// out-of-bounds targets, walls, and the cell holding the other role; a
// refused move leaves the grid unchanged.
func (g *Grid) MoveEndpoint(role Role, row, col int) bool {
	if !g.InBounds(row, col) {
		return false
	}

	target := g.Index(row, col)
	c := &g.cells[target]
	if c.IsWall {
		return false
	}

	switch role {
	case RoleStart:
		if c.IsFinish {
			return false
		}
		g.cells[g.start].IsStart = false
		c.IsStart = true
		g.start = target
	case RoleFinish:
		if c.IsStart {
			return false
		}
		g.cells[g.finish].IsFinish = false
		c.IsFinish = true
		g.finish = target
	default:
		return false
	}
	return true
}

// ToggleWall flips the wall flag of (row, col). Endpoints and out-of-bounds
// positions are left alone and reported as false.
func (g *Grid) ToggleWall(row, col int) bool {
	c := g.At(row, col)
	if c == nil || c.IsEndpoint() {
		return false
	}
	c.IsWall = !c.IsWall
	return true
}

// SetWall forces the wall flag of (row, col) to wall. It follows the same
// rejection rules as ToggleWall.
func (g *Grid) SetWall(row, col int, wall bool) bool {
	c := g.At(row, col)
	if c == nil || c.IsEndpoint() {
		return false
	}
	c.IsWall = wall
	return true
}

// ClearWalls removes every wall and resets search bookkeeping.
func (g *Grid) ClearWalls() {
	for i := range g.cells {
		g.cells[i].IsWall = false
	}
	g.ResetSearch()
}

// ResetSearch restores distance, visited and previous on every cell.
func (g *Grid) ResetSearch() {
	for i := range g.cells {
		c := &g.cells[i]
		c.Distance = Infinity
		c.IsVisited = false
		c.Previous = NoPrevious
	}
}

// Walls returns the positions of all wall cells in row-major order.
func (g *Grid) Walls() []Position {
	var walls []Position
	for _, c := range g.cells {
		if c.IsWall {
			walls = append(walls, c.Position())
		}
	}
	return walls
}

// WallCount returns the number of wall cells.
func (g *Grid) WallCount() int {
	n := 0
	for _, c := range g.cells {
		if c.IsWall {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{
		rows:   g.rows,
		cols:   g.cols,
		cells:  cells,
		start:  g.start,
		finish: g.finish,
	}
}

// Flat returns a row-major copy of the cells.
func (g *Grid) Flat() []Cell {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return cells
}

// Matrix returns a copy of the cells addressable as [row][col].
func (g *Grid) Matrix() [][]Cell {
	m, _ := To2D(g.cells, g.rows, g.cols)
	return m
}
