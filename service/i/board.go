package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-pathfinder/domain"
	"github.com/beka-birhanu/vinom-pathfinder/grid"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/pathfinding"
	"github.com/google/uuid"
)

// BoardSpec describes a board to create. Zero dimensions select the service
// defaults; nil endpoints select the default placement.
type BoardSpec struct {
	Rows   int
	Cols   int
	Start  *grid.Position
	Finish *grid.Position
}

// BoardManager runs grid, maze and search operations on stored boards on
// behalf of a user.
type BoardManager interface {
	Create(ctx context.Context, owner uuid.UUID, spec BoardSpec) (*dmn.Board, error)
	Board(ctx context.Context, owner, id uuid.UUID) (*dmn.Board, error)
	Delete(ctx context.Context, owner, id uuid.UUID) error

	// ToggleWall and MoveEndpoint report a rejected toggle as false with a nil error.
	ToggleWall(ctx context.Context, owner, id uuid.UUID, pos grid.Position) (*dmn.Board, bool, error)
	MoveEndpoint(ctx context.Context, owner, id uuid.UUID, role grid.Role, pos grid.Position) (*dmn.Board, bool, error)

	ClearWalls(ctx context.Context, owner, id uuid.UUID) (*dmn.Board, error)
	GenerateMaze(ctx context.Context, owner, id uuid.UUID, opts ...maze.Option) (*dmn.Board, error)
	Search(ctx context.Context, owner, id uuid.UUID) (*dmn.Board, pathfinding.Trace, error)
}
