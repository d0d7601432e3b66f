package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-pathfinder/domain"
	"github.com/google/uuid"
)

// UserRepo defines the interface for user persistence operations.
type UserRepo interface {
	// Save inserts or updates a user in the repository.
	// If the user already exists, it updates the record. Otherwise, it creates a new one.
	Save(user *dmn.User) error

	// ByID retrieves a user by their unique ID.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByID(id uuid.UUID) (*dmn.User, error)

	// ByUsername retrieves a user by their username.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByUsername(username string) (*dmn.User, error)
}

// BoardStore keeps board sessions between requests.
type BoardStore interface {
	// Save stores the board, replacing any previous version and refreshing its lifetime.
	Save(ctx context.Context, board *dmn.Board) error

	// ByID loads a board. Returns dmn.ErrBoardNotFound when it does not exist or has expired.
	ByID(ctx context.Context, id uuid.UUID) (*dmn.Board, error)

	// Delete removes a board. Deleting a missing board is not an error.
	Delete(ctx context.Context, id uuid.UUID) error

	// Lock takes the exclusive lock of a board. Operations on one board are
	// serialised through it; the returned function releases the lock.
	Lock(ctx context.Context, id uuid.UUID) (func(), error)
}
