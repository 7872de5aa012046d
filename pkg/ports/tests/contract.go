package tests

import (
	"context"
	"testing"

	"github.com/aretw0/matrixdeck/pkg/ports"
)

// DeckLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.DeckLoader.
// expected maps a source to the slide titles it must produce, in order.
func DeckLoaderContractTest(t *testing.T, loader ports.DeckLoader, expected map[string][]string) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load_Success", func(t *testing.T) {
		for source, titles := range expected {
			deck, err := loader.Load(ctx, source)
			if err != nil {
				t.Fatalf("unexpected error loading %s: %v", source, err)
			}
			if deck.Total() != len(titles) {
				t.Fatalf("expected %d slides in %s, got %d", len(titles), source, deck.Total())
			}
			for i, want := range titles {
				s, err := deck.Slide(i + 1)
				if err != nil {
					t.Fatalf("slide %d: %v", i+1, err)
				}
				if s.Title != want {
					t.Errorf("slide %d: expected title %q, got %q", i+1, want, s.Title)
				}
				if s.Position != i+1 {
					t.Errorf("slide %d: position %d", i+1, s.Position)
				}
			}
		}
	})

	t.Run("Reveal_Indices_Stable", func(t *testing.T) {
		for source := range expected {
			deck, err := loader.Load(ctx, source)
			if err != nil {
				t.Fatalf("unexpected error loading %s: %v", source, err)
			}
			for _, s := range deck.Slides {
				for i, r := range s.Reveals {
					if r.Index != i {
						t.Errorf("%s slide %d: reveal %d has index %d", source, s.Position, i, r.Index)
					}
				}
			}
		}
	})

	t.Run("Load_Missing", func(t *testing.T) {
		_, err := loader.Load(ctx, "non-existent-deck.md")
		if err == nil {
			t.Error("expected error for missing deck, got nil")
		}
	})
}
