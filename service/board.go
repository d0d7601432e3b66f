package service

import (
	"context"
	"errors"
	"fmt"

	dmn "github.com/beka-birhanu/vinom-pathfinder/domain"
	"github.com/beka-birhanu/vinom-pathfinder/grid"
	"github.com/beka-birhanu/vinom-pathfinder/maze"
	"github.com/beka-birhanu/vinom-pathfinder/pathfinding"
	"github.com/beka-birhanu/vinom-pathfinder/service/i"
	"github.com/google/uuid"
)

const (
	defaultRows         = 37
	defaultCols         = 37
	defaultMaxDimension = 101
)

var (
	ErrForbidden         = errors.New("board belongs to another user")
	ErrDimensionTooLarge = errors.New("board dimension too large")
	ErrBoardBusy         = errors.New("board is locked by another operation")
)

// BoardOptions configures a BoardService.
type BoardOptions struct {
	Rows         int // Rows of a board created without explicit dimensions
	Cols         int // Columns of a board created without explicit dimensions
	MaxDimension int // Upper bound on rows and columns
}

// BoardService runs grid, maze and search operations on stored boards.
// Every mutating operation holds the board lock from load to save, so at most
// one operation touches a board's grid at a time.
type BoardService struct {
	store  i.BoardStore
	logger i.Logger
	opts   *BoardOptions
}

var _ i.BoardManager = (*BoardService)(nil)

// NewBoardService creates a BoardService. A nil opts selects the defaults.
func NewBoardService(store i.BoardStore, logger i.Logger, opts *BoardOptions) (*BoardService, error) {
	if store == nil || logger == nil {
		return nil, errors.New("board service: missing dependency")
	}

	if opts == nil {
		opts = &BoardOptions{}
	}

	if opts.MaxDimension <= 0 {
		opts.MaxDimension = defaultMaxDimension
	}

	if opts.Rows <= 0 {
		opts.Rows = min(defaultRows, opts.MaxDimension)
	}

	if opts.Cols <= 0 {
		opts.Cols = min(defaultCols, opts.MaxDimension)
	}

	return &BoardService{
		store:  store,
		logger: logger,
		opts:   opts,
	}, nil
}

// Create builds a new board for owner and stores it.
func (s *BoardService) Create(ctx context.Context, owner uuid.UUID, spec i.BoardSpec) (*dmn.Board, error) {
	rows, cols := spec.Rows, spec.Cols
	if rows == 0 {
		rows = s.opts.Rows
	}
	if cols == 0 {
		cols = s.opts.Cols
	}
	if rows > s.opts.MaxDimension || cols > s.opts.MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d", ErrDimensionTooLarge, rows, cols, s.opts.MaxDimension)
	}

	g, err := newGrid(rows, cols, spec.Start, spec.Finish)
	if err != nil {
		return nil, err
	}

	board := dmn.NewBoard(owner, g)
	if err := s.store.Save(ctx, board); err != nil {
		s.logger.Error(fmt.Sprintf("saving board %s: %s", board.ID, err))
		return nil, err
	}

	s.logger.Info(fmt.Sprintf("board created: ID=%s Owner=%s Size=%dx%d", board.ID, owner, rows, cols))
	return board, nil
}

// newGrid places missing endpoints where grid.Default would put them.
func newGrid(rows, cols int, start, finish *grid.Position) (*grid.Grid, error) {
	if start == nil && finish == nil {
		return grid.Default(rows, cols)
	}

	def, err := grid.Default(rows, cols)
	if err != nil {
		return nil, err
	}
	s, f := def.Start(), def.Finish()
	if start != nil {
		s = *start
	}
	if finish != nil {
		f = *finish
	}
	return grid.New(rows, cols, s, f)
}

// Board returns a board owned by owner.
func (s *BoardService) Board(ctx context.Context, owner, id uuid.UUID) (*dmn.Board, error) {
	return s.load(ctx, owner, id)
}

// Delete removes a board owned by owner.
func (s *BoardService) Delete(ctx context.Context, owner, id uuid.UUID) error {
	_, err := s.withBoard(ctx, owner, id, func(b *dmn.Board) (bool, error) {
		return false, s.store.Delete(ctx, b.ID)
	})
	if err == nil {
		s.logger.Info(fmt.Sprintf("board deleted: ID=%s", id))
	}
	return err
}

// ToggleWall flips the wall at pos. A rejected toggle returns false and
// leaves the stored board untouched.
func (s *BoardService) ToggleWall(ctx context.Context, owner, id uuid.UUID, pos grid.Position) (*dmn.Board, bool, error) {
	var applied bool
	board, err := s.withBoard(ctx, owner, id, func(b *dmn.Board) (bool, error) {
		applied = b.Grid.ToggleWall(pos.Row, pos.Col)
		if applied {
			b.Maze = nil
		}
		return applied, nil
	})
	return board, applied, err
}

// MoveEndpoint moves the start or finish marker to pos.
func (s *BoardService) MoveEndpoint(ctx context.Context, owner, id uuid.UUID, role grid.Role, pos grid.Position) (*dmn.Board, bool, error) {
	var applied bool
	board, err := s.withBoard(ctx, owner, id, func(b *dmn.Board) (bool, error) {
		applied = b.Grid.MoveEndpoint(role, pos.Row, pos.Col)
		if applied {
			b.Maze = nil
		}
		return applied, nil
	})
	return board, applied, err
}

// ClearWalls removes every wall from the board.
func (s *BoardService) ClearWalls(ctx context.Context, owner, id uuid.UUID) (*dmn.Board, error) {
	return s.withBoard(ctx, owner, id, func(b *dmn.Board) (bool, error) {
		b.Grid.ClearWalls()
		b.Maze = nil
		return true, nil
	})
}

// GenerateMaze replaces the board's walls with a generated maze.
func (s *BoardService) GenerateMaze(ctx context.Context, owner, id uuid.UUID, opts ...maze.Option) (*dmn.Board, error) {
	return s.withBoard(ctx, owner, id, func(b *dmn.Board) (bool, error) {
		info, err := maze.Generate(b.Grid, opts...)
		if err != nil {
			s.logger.Warning(fmt.Sprintf("maze generation on board %s failed: %s", b.ID, err))
			return false, err
		}
		b.Maze = &info
		s.logger.Info(fmt.Sprintf("board %s: %s", b.ID, info))
		return true, nil
	})
}

// Search runs the shortest-path engine from the board's start to its finish.
// Search bookkeeping is not stored.
func (s *BoardService) Search(ctx context.Context, owner, id uuid.UUID) (*dmn.Board, pathfinding.Trace, error) {
	var trace pathfinding.Trace
	board, err := s.withBoard(ctx, owner, id, func(b *dmn.Board) (bool, error) {
		var err error
		trace, err = pathfinding.Solve(b.Grid)
		return false, err
	})
	if err != nil {
		return nil, pathfinding.Trace{}, err
	}

	s.logger.Info(fmt.Sprintf("board %s searched: visited=%d found=%t moves=%d", id, len(trace.Visited), trace.Found(), trace.Moves()))
	return board, trace, nil
}

// withBoard loads the board under its lock, applies fn and saves the board
// when fn reports a change.
func (s *BoardService) withBoard(ctx context.Context, owner, id uuid.UUID, fn func(*dmn.Board) (bool, error)) (*dmn.Board, error) {
	unlock, err := s.store.Lock(ctx, id)
	if err != nil {
		s.logger.Warning(fmt.Sprintf("locking board %s: %s", id, err))
		return nil, fmt.Errorf("%w: %v", ErrBoardBusy, err)
	}
	defer unlock()

	board, err := s.load(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	changed, err := fn(board)
	if err != nil {
		return nil, err
	}
	if !changed {
		return board, nil
	}

	board.Touch()
	if err := s.store.Save(ctx, board); err != nil {
		s.logger.Error(fmt.Sprintf("saving board %s: %s", board.ID, err))
		return nil, err
	}
	return board, nil
}

func (s *BoardService) load(ctx context.Context, owner, id uuid.UUID) (*dmn.Board, error) {
	board, err := s.store.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !board.OwnedBy(owner) {
		return nil, ErrForbidden
	}
	return board, nil
}
