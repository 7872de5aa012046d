package ports

import (
	"context"

	"github.com/aretw0/matrixdeck/pkg/domain"
)

// BookmarkStore persists the last position shown for each deck, enabling resume.
type BookmarkStore interface {
	// Save persists the bookmark for a deck ID.
	Save(ctx context.Context, deckID string, bookmark domain.Bookmark) error

	// Load retrieves the bookmark for a deck ID.
	// Returns domain.ErrBookmarkNotFound if none exists.
	Load(ctx context.Context, deckID string) (domain.Bookmark, error)

	// Delete removes the bookmark for a deck ID.
	Delete(ctx context.Context, deckID string) error

	// List returns the deck IDs that have a bookmark.
	List(ctx context.Context) ([]string, error)
}
