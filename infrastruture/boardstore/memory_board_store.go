package boardstore

import (
	"context"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/vinom-pathfinder/domain"
	"github.com/google/uuid"
)

type memoryEntry struct {
	data      []byte
	expiresAt time.Time // zero when the entry never expires
}

// MemoryBoardStore keeps boards in process memory. It stores encoded copies,
// so callers never share a grid with the store.
type MemoryBoardStore struct {
	mu     sync.Mutex
	boards map[uuid.UUID]memoryEntry
	locks  map[uuid.UUID]chan struct{}
	ttl    time.Duration
	now    func() time.Time
}

// NewMemoryBoardStore creates an empty store. A non-positive ttlSeconds keeps
// boards until they are deleted.
func NewMemoryBoardStore(ttlSeconds int) *MemoryBoardStore {
	return &MemoryBoardStore{
		boards: make(map[uuid.UUID]memoryEntry),
		locks:  make(map[uuid.UUID]chan struct{}),
		ttl:    time.Duration(max(ttlSeconds, 0)) * time.Second,
		now:    time.Now,
	}
}

// Save stores a copy of the board and refreshes its TTL.
func (s *MemoryBoardStore) Save(_ context.Context, board *dmn.Board) error {
	data, err := encodeBoard(board)
	if err != nil {
		return err
	}

	entry := memoryEntry{data: data}
	if s.ttl > 0 {
		entry.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.boards[board.ID] = entry
	return nil
}

// ByID returns a fresh copy of the board.
func (s *MemoryBoardStore) ByID(_ context.Context, id uuid.UUID) (*dmn.Board, error) {
	s.mu.Lock()
	entry, ok := s.boards[id]
	if ok && !entry.expiresAt.IsZero() && !s.now().Before(entry.expiresAt) {
		delete(s.boards, id)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, dmn.ErrBoardNotFound
	}
	return decodeBoard(entry.data)
}

// Delete removes a board.
func (s *MemoryBoardStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.boards, id)
	return nil
}

// Lock waits for the board's lock or for ctx to end.
func (s *MemoryBoardStore) Lock(ctx context.Context, id uuid.UUID) (func(), error) {
	s.mu.Lock()
	sem, ok := s.locks[id]
	if !ok {
		sem = make(chan struct{}, 1)
		s.locks[id] = sem
	}
	s.mu.Unlock()

	select {
	case sem <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-sem }) }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
