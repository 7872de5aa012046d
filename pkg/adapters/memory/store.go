package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/matrixdeck/pkg/domain"
)

// Store implements ports.BookmarkStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]domain.Bookmark
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Bookmark),
	}
}

// Save keeps the bookmark for deckID.
func (s *Store) Save(ctx context.Context, deckID string, bookmark domain.Bookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[deckID] = bookmark
	return nil
}

// Load retrieves the bookmark for deckID.
func (s *Store) Load(ctx context.Context, deckID string) (domain.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bm, ok := s.data[deckID]
	if !ok {
		return domain.Bookmark{}, domain.ErrBookmarkNotFound
	}
	return bm, nil
}

// Delete removes the bookmark.
func (s *Store) Delete(ctx context.Context, deckID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, deckID)
	return nil
}

// List returns the bookmarked deck IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
