package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/aretw0/matrixdeck/pkg/domain"
)

// Store implements ports.BookmarkStore using Redis, so several machines
// presenting the same deck share where the talk left off.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for bookmarks.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for bookmarks.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "matrixdeck:bookmark:",
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *Store) key(deckID string) string {
	return s.prefix + deckID
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// Save persists the bookmark and indexes the deck by expiry.
func (s *Store) Save(ctx context.Context, deckID string, bookmark domain.Bookmark) error {
	data, err := json.Marshal(bookmark)
	if err != nil {
		return fmt.Errorf("failed to marshal bookmark: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, s.key(deckID), data, s.ttl)

	// Score is the expiry; without a TTL it is far in the future.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = 4102444800
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{Score: score, Member: deckID})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Load retrieves the bookmark for deckID.
func (s *Store) Load(ctx context.Context, deckID string) (domain.Bookmark, error) {
	val, err := s.client.Get(ctx, s.key(deckID)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return domain.Bookmark{}, domain.ErrBookmarkNotFound
		}
		return domain.Bookmark{}, fmt.Errorf("failed to get from redis: %w", err)
	}

	var bm domain.Bookmark
	if err := json.Unmarshal([]byte(val), &bm); err != nil {
		return domain.Bookmark{}, fmt.Errorf("failed to unmarshal bookmark: %w", err)
	}
	return bm, nil
}

// Delete removes the bookmark.
func (s *Store) Delete(ctx context.Context, deckID string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, s.key(deckID))
	pipe.ZRem(ctx, s.indexKey(), deckID)
	_, err := pipe.Exec(ctx)
	return err
}

// List returns the bookmarked decks, pruning expired index entries first.
func (s *Store) List(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())
	if err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err(); err != nil {
		return nil, fmt.Errorf("failed to prune expired bookmarks: %w", err)
	}

	ids, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	return ids, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
