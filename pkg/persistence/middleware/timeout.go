package middleware

import (
	"context"
	"time"

	"github.com/aretw0/matrixdeck/pkg/domain"
	"github.com/aretw0/matrixdeck/pkg/ports"
)

type timeoutMiddleware struct {
	next    ports.BookmarkStore
	timeout time.Duration
}

// NewTimeoutMiddleware bounds every store call by d, so an unreachable backend
// cannot hold up resuming or quitting a presentation. d <= 0 disables it.
func NewTimeoutMiddleware(d time.Duration) Middleware {
	return func(next ports.BookmarkStore) ports.BookmarkStore {
		if d <= 0 {
			return next
		}
		return &timeoutMiddleware{next: next, timeout: d}
	}
}

func (m *timeoutMiddleware) Save(ctx context.Context, deckID string, bookmark domain.Bookmark) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return m.next.Save(ctx, deckID, bookmark)
}

func (m *timeoutMiddleware) Load(ctx context.Context, deckID string) (domain.Bookmark, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return m.next.Load(ctx, deckID)
}

func (m *timeoutMiddleware) Delete(ctx context.Context, deckID string) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return m.next.Delete(ctx, deckID)
}

func (m *timeoutMiddleware) List(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()
	return m.next.List(ctx)
}
