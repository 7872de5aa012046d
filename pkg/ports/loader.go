package ports

import (
	"context"

	"github.com/aretw0/matrixdeck/pkg/domain"
)

// DeckLoader defines how a deck is read from its source.
// This allows the storage layer (files, memory) to be decoupled.
type DeckLoader interface {
	// Load parses the deck found at source.
	Load(ctx context.Context, source string) (*domain.Deck, error)
}
