package boardstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-pathfinder/domain"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "pathfinder"
	boardKeyFmt   = "%s:board:%s"
	lockSuffix    = ":lock"

	lockExpiry = 10 * time.Second
	lockTries  = 20
)

// RedisBoardStore keeps boards in redis with a sliding TTL and serialises
// operations on a board through a redsync mutex.
type RedisBoardStore struct {
	client *redis.Client
	locker *redsync.Redsync
	ttl    time.Duration
	prefix string
}

// NewRedisBoardStore initializes a RedisBoardStore with the provided Redis
// client. A non-positive ttlSeconds keeps boards until they are deleted.
func NewRedisBoardStore(client *redis.Client, ttlSeconds int) (*RedisBoardStore, error) {
	if client == nil {
		return nil, errors.New("redis board store: client is nil")
	}

	store := &RedisBoardStore{
		client: client,
		ttl:    time.Duration(max(ttlSeconds, 0)) * time.Second,
		prefix: defaultPrefix,
	}
	pool := goredis.NewPool(client)
	store.locker = redsync.New(pool)
	return store, nil
}

func (s *RedisBoardStore) key(id uuid.UUID) string {
	return fmt.Sprintf(boardKeyFmt, s.prefix, id)
}

// Save stores the board and refreshes its TTL.
func (s *RedisBoardStore) Save(ctx context.Context, board *dmn.Board) error {
	data, err := encodeBoard(board)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(board.ID), data, s.ttl).Err()
}

// ByID loads a board, returning dmn.ErrBoardNotFound for missing or expired keys.
func (s *RedisBoardStore) ByID(ctx context.Context, id uuid.UUID) (*dmn.Board, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, dmn.ErrBoardNotFound
	}
	if err != nil {
		return nil, err
	}
	return decodeBoard(data)
}

// Delete removes a board.
func (s *RedisBoardStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

// Lock takes the board's distributed mutex.
func (s *RedisBoardStore) Lock(ctx context.Context, id uuid.UUID) (func(), error) {
	mutex := s.locker.NewMutex(s.key(id)+lockSuffix,
		redsync.WithExpiry(lockExpiry),
		redsync.WithTries(lockTries),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}
	return func() {
		_, _ = mutex.Unlock()
	}, nil
}
