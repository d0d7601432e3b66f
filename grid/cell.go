package grid

import "math"

const (
	// Infinity is the distance of a cell the search has not reached.
	Infinity = math.MaxInt

	// NoPrevious marks a cell without a predecessor on the current search tree.
	NoPrevious = -1
)

// Role identifies one of the two endpoint markers of a grid.
type Role int

const (
	RoleStart Role = iota + 1
	RoleFinish
)

// String returns the lower-case name of the role.
func (r Role) String() string {
	switch r {
	case RoleStart:
		return "start"
	case RoleFinish:
		return "finish"
	default:
		return "unknown"
	}
}

// ParseRole converts "start" or "finish" into a Role.
func ParseRole(s string) (Role, bool) {
	switch s {
	case "start":
		return RoleStart, true
	case "finish":
		return RoleFinish, true
	}
	return 0, false
}

// Position is a 0-indexed row/column pair.
type Position struct {
	Row int `json:"row" bson:"row"`
	Col int `json:"col" bson:"col"`
}

// Cell represents one grid position together with its role flags and
// search bookkeeping.
type Cell struct {
	Row      int  // Row index of the cell
	Col      int  // Column index of the cell
	IsStart  bool // IsStart is set on exactly one cell of a grid.
	IsFinish bool // IsFinish is set on exactly one cell of a grid.
	IsWall   bool // IsWall is never set on the start or finish cell.

	Distance  int  // Distance from the search source, Infinity if unreached.
	IsVisited bool // IsVisited reports whether the search finalized the cell.
	Previous  int  // Previous is the flat index of the predecessor, or NoPrevious.
}

// Position returns the row/column pair of the cell.
func (c Cell) Position() Position {
	return Position{Row: c.Row, Col: c.Col}
}

// IsEndpoint reports whether the cell carries the start or finish role.
func (c Cell) IsEndpoint() bool {
	return c.IsStart || c.IsFinish
}

// SameLayout reports whether two cells agree on position, roles and walls,
// ignoring search bookkeeping.
func (c Cell) SameLayout(o Cell) bool {
	return c.Row == o.Row && c.Col == o.Col &&
		c.IsStart == o.IsStart && c.IsFinish == o.IsFinish && c.IsWall == o.IsWall
}

func newCell(row, col int) Cell {
	return Cell{
		Row:      row,
		Col:      col,
		Distance: Infinity,
		Previous: NoPrevious,
	}
}
