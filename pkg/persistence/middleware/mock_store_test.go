package middleware_test

import (
	"context"
	"errors"

	"github.com/aretw0/matrixdeck/pkg/domain"
	"github.com/aretw0/matrixdeck/pkg/ports"
)

var errBackendDown = errors.New("backend down")

// BlockingStore waits for its context on every call, like an unreachable server.
// If Fail is set it returns errBackendDown instead.
type BlockingStore struct {
	Fail bool
}

func (s *BlockingStore) wait(ctx context.Context) error {
	if s.Fail {
		return errBackendDown
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *BlockingStore) Save(ctx context.Context, deckID string, bookmark domain.Bookmark) error {
	return s.wait(ctx)
}

func (s *BlockingStore) Load(ctx context.Context, deckID string) (domain.Bookmark, error) {
	return domain.Bookmark{}, s.wait(ctx)
}

func (s *BlockingStore) Delete(ctx context.Context, deckID string) error {
	return s.wait(ctx)
}

func (s *BlockingStore) List(ctx context.Context) ([]string, error) {
	return nil, s.wait(ctx)
}

var _ ports.BookmarkStore = (*BlockingStore)(nil)
