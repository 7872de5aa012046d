package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/matrixdeck/pkg/adapters/deckfile"
	"github.com/aretw0/matrixdeck/pkg/domain"
)

// LoadDeck reads and parses the deck at path.
func LoadDeck(ctx context.Context, path string) (*domain.Deck, error) {
	return deckfile.NewLoader().Load(ctx, path)
}

// ValidationResult is the outcome for one deck file.
type ValidationResult struct {
	Path   string
	Slides int
	Err    error
}

// DefaultDeckGlob matches every markdown deck under the root. YAML decks are
// only checked when named, since YAML files are often something else.
const DefaultDeckGlob = "**/*.{md,markdown}"

// ValidateDecks parses every deck matching patterns, relative to root.
// Files that are not decks by extension are skipped.
func ValidateDecks(ctx context.Context, root string, patterns []string) ([]ValidationResult, error) {
	if len(patterns) == 0 {
		patterns = []string{DefaultDeckGlob}
	}

	fsys := os.DirFS(root)
	seen := make(map[string]bool)
	var paths []string
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid pattern %q", pattern)
		}
		matches, err := doublestar.Glob(fsys, filepath.ToSlash(pattern), doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if !seen[m] && deckfile.Supported(m) {
				seen[m] = true
				paths = append(paths, m)
			}
		}
	}
	sort.Strings(paths)

	loader := deckfile.NewLoader(deckfile.WithFS(fsys))
	results := make([]ValidationResult, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		r := ValidationResult{Path: filepath.Join(root, filepath.FromSlash(p))}
		deck, err := loader.Load(ctx, p)
		if err != nil {
			r.Err = err
		} else {
			r.Slides = deck.Total()
		}
		results = append(results, r)
	}
	return results, nil
}
