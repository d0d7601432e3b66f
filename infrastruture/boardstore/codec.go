// Package boardstore keeps board sessions for the board service, either in
// redis or in process memory. Boards are stored as BSON documents holding
// the layout only; search bookkeeping is never stored.
package boardstore

import (
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-pathfinder/domain"
	"github.com/beka-birhanu/vinom-pathfinder/grid"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// boardDocument is the stored form of a board.
type boardDocument struct {
	ID        string          `bson:"_id"`
	OwnerID   string          `bson:"ownerId"`
	Rows      int             `bson:"rows"`
	Cols      int             `bson:"cols"`
	Start     grid.Position   `bson:"start"`
	Finish    grid.Position   `bson:"finish"`
	Walls     []grid.Position `bson:"walls"`
	Maze      *mazeDocument   `bson:"maze,omitempty"`
	UpdatedAt time.Time       `bson:"updatedAt"`
}

type mazeDocument struct {
	Seed      int64  `bson:"seed"`
	Algorithm string `bson:"algorithm"`
	Walls     int    `bson:"walls"`
}

func encodeBoard(b *dmn.Board) ([]byte, error) {
	doc := boardDocument{
		ID:        b.ID.String(),
		OwnerID:   b.OwnerID.String(),
		Rows:      b.Grid.Rows(),
		Cols:      b.Grid.Cols(),
		Start:     b.Grid.Start(),
		Finish:    b.Grid.Finish(),
		Walls:     b.Grid.Walls(),
		UpdatedAt: b.UpdatedAt,
	}
	if b.Maze != nil {
		doc.Maze = &mazeDocument{
			Seed:      b.Maze.Seed,
			Algorithm: string(b.Maze.Algorithm),
			Walls:     b.Maze.Walls,
		}
	}
	return bson.Marshal(doc)
}

func decodeBoard(data []byte) (*dmn.Board, error) {
	var doc boardDocument
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding board: %w", err)
	}

	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("decoding board id: %w", err)
	}
	owner, err := uuid.Parse(doc.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("decoding board owner: %w", err)
	}
	g, err := grid.Restore(doc.Rows, doc.Cols, doc.Start, doc.Finish, doc.Walls)
	if err != nil {
		return nil, fmt.Errorf("decoding board %s: %w", doc.ID, err)
	}

	board := &dmn.Board{
		ID:        id,
		OwnerID:   owner,
		Grid:      g,
		UpdatedAt: doc.UpdatedAt,
	}
	if doc.Maze != nil {
		board.Maze = &maze.Info{
			Seed:      doc.Maze.Seed,
			Algorithm: maze.Algorithm(doc.Maze.Algorithm),
			Walls:     doc.Maze.Walls,
		}
	}
	return board, nil
}
