// Package boardapi exposes boards, mazes and shortest-path searches over HTTP.
package boardapi

import (
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/animation"
	dmn "github.com/beka-birhanu/vinom-pathfinder/domain"
	"github.com/beka-birhanu/vinom-pathfinder/grid"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/pathfinding"
)

// CreateBoardRequest describes a new board. Zero dimensions and missing
// endpoints select the server defaults.
type CreateBoardRequest struct {
	Rows   int            `json:"rows" binding:"min=0"`
	Cols   int            `json:"cols" binding:"min=0"`
	Start  *grid.Position `json:"start"`
	Finish *grid.Position `json:"finish"`
}

// PositionRequest addresses a single cell.
type PositionRequest struct {
	Row *int `json:"row" binding:"required"`
	Col *int `json:"col" binding:"required"`
}

func (r PositionRequest) position() grid.Position {
	return grid.Position{Row: *r.Row, Col: *r.Col}
}

// MazeRequest selects the carving algorithm and an optional seed.
type MazeRequest struct {
	Seed      *int64 `json:"seed"`
	Algorithm string `json:"algorithm"`
}

// LayoutRequest is a complete board layout sent by a stateless client.
type LayoutRequest struct {
	Rows   int             `json:"rows" binding:"required,min=1"`
	Cols   int             `json:"cols" binding:"required,min=1"`
	Start  *grid.Position  `json:"start" binding:"required"`
	Finish *grid.Position  `json:"finish" binding:"required"`
	Walls  []grid.Position `json:"walls"`
}

// StatelessMazeRequest asks for a maze layout without storing a board.
type StatelessMazeRequest struct {
	CreateBoardRequest
	MazeRequest
}

// LayoutResponse is the wire form of a grid.
type LayoutResponse struct {
	Rows   int             `json:"rows"`
	Cols   int             `json:"cols"`
	Start  grid.Position   `json:"start"`
	Finish grid.Position   `json:"finish"`
	Walls  []grid.Position `json:"walls"`
}

// BoardResponse is the wire form of a stored board.
type BoardResponse struct {
	ID        string         `json:"id"`
	Layout    LayoutResponse `json:"layout"`
	Maze      *maze.Info     `json:"maze,omitempty"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// EditResponse reports whether an edit was applied, together with the board
// as it is after the request.
type EditResponse struct {
	Applied bool          `json:"applied"`
	Board   BoardResponse `json:"board"`
}

// MazeResponse is returned by the stateless maze endpoint.
type MazeResponse struct {
	Layout LayoutResponse `json:"layout"`
	Maze   maze.Info      `json:"maze"`
}

// SearchResponse carries a search trace and its replay frames.
type SearchResponse struct {
	Visited         []grid.Position    `json:"visited"`
	Path            []grid.Position    `json:"path"`
	Frames          animation.Sequence `json:"frames"`
	Found           bool               `json:"found"`
	NodesVisited    int                `json:"nodesVisited"`
	Moves           int                `json:"moves"`
	ExecutionTimeMs float64            `json:"executionTimeMs"`
}

func toLayout(g *grid.Grid) LayoutResponse {
	walls := g.Walls()
	if walls == nil {
		walls = []grid.Position{}
	}
	return LayoutResponse{
		Rows:   g.Rows(),
		Cols:   g.Cols(),
		Start:  g.Start(),
		Finish: g.Finish(),
		Walls:  walls,
	}
}

func toBoardResponse(b *dmn.Board) BoardResponse {
	return BoardResponse{
		ID:        b.ID.String(),
		Layout:    toLayout(b.Grid),
		Maze:      b.Maze,
		UpdatedAt: b.UpdatedAt,
	}
}

func toSearchResponse(t pathfinding.Trace, elapsed time.Duration) SearchResponse {
	return SearchResponse{
		Visited:         positions(t.Visited),
		Path:            positions(t.Path),
		Frames:          animation.Frames(t),
		Found:           t.Found(),
		NodesVisited:    len(t.Visited),
		Moves:           t.Moves(),
		ExecutionTimeMs: float64(elapsed.Microseconds()) / 1000,
	}
}

func positions(cells []grid.Cell) []grid.Position {
	out := make([]grid.Position, len(cells))
	for i, c := range cells {
		out[i] = c.Position()
	}
	return out
}
