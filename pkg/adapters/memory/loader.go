package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/matrixdeck/pkg/adapters/deckfile"
	"github.com/aretw0/matrixdeck/pkg/domain"
)

// Loader implements ports.DeckLoader over in-memory deck sources.
type Loader struct {
	sources map[string][]byte
}

// NewLoader creates a loader from raw deck sources keyed by name.
// The name's extension selects the format, as it does for files.
func NewLoader(data map[string]string) *Loader {
	sources := make(map[string][]byte, len(data))
	for k, v := range data {
		sources[k] = []byte(v)
	}
	return &Loader{sources: sources}
}

// Load parses the named source. Each call returns a fresh deck.
func (l *Loader) Load(ctx context.Context, source string) (*domain.Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, ok := l.sources[source]
	if !ok {
		return nil, fmt.Errorf("deck not found: %s", source)
	}
	deck, err := deckfile.Parse(source, data)
	if err != nil {
		return nil, fmt.Errorf("failed to load deck %s: %w", source, err)
	}
	deck.Source = source
	return deck, nil
}

// List returns the available source names.
func (l *Loader) List() []string {
	names := make([]string, 0, len(l.sources))
	for k := range l.sources {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
