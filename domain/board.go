// Package domain holds the entities the service layer stores and hands to
// controllers.
package domain

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-pathfinder/grid"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/google/uuid"
)

var (
	ErrBoardNotFound = errors.New("board not found")
	ErrUserNotFound  = errors.New("user not found")
)

// Board is one user's editable grid session.
type Board struct {
	ID        uuid.UUID  // Board identifier
	OwnerID   uuid.UUID  // User that created the board
	Grid      *grid.Grid // Layout of the board
	Maze      *maze.Info // Last maze generation, nil once the layout is edited by hand
	UpdatedAt time.Time  // Time of the last change
}

// NewBoard wraps g in a new board owned by owner.
func NewBoard(owner uuid.UUID, g *grid.Grid) *Board {
	return &Board{
		ID:        uuid.New(),
		OwnerID:   owner,
		Grid:      g,
		UpdatedAt: time.Now().UTC(),
	}
}

// OwnedBy reports whether user may read and modify the board.
func (b *Board) OwnedBy(user uuid.UUID) bool {
	return b.OwnerID == user
}

// Touch records a change to the board.
func (b *Board) Touch() {
	b.UpdatedAt = time.Now().UTC()
}
