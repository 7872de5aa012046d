package deckfile_test

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/aretw0/matrixdeck/pkg/adapters/deckfile"
	"github.com/aretw0/matrixdeck/pkg/domain"
	"github.com/aretw0/matrixdeck/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Contract(t *testing.T) {
	tests.DeckLoaderContractTest(t, deckfile.NewLoader(), map[string][]string{
		filepath.Join("testdata", "talk.md"):   {"Wake Up, Neo", "Agents", "Code"},
		filepath.Join("testdata", "talk.yaml"): {"Intro", "Choices"},
	})
}

func TestLoader_Markdown(t *testing.T) {
	deck, err := deckfile.NewLoader().Load(context.Background(), filepath.Join("testdata", "talk.md"))
	require.NoError(t, err)

	assert.Equal(t, "Wake Up", deck.Meta.Title)
	assert.Equal(t, "Morpheus", deck.Meta.Author)
	assert.Equal(t, filepath.Join("testdata", "talk.md"), deck.Source)

	agents, _ := deck.Slide(2)
	require.Len(t, agents.Reveals, 4)
	last := agents.Blocks[len(agents.Blocks)-1]
	assert.Equal(t, domain.BlockQuote, last.Kind)
	assert.Equal(t, "There is no spoon.", last.Text)

	code, _ := deck.Slide(3)
	assert.Contains(t, code.Blocks[1].Text, "---", "separator inside a fence is content")
	assert.Equal(t, "python", code.Blocks[1].Language)
}

func TestLoader_YAML(t *testing.T) {
	deck, err := deckfile.NewLoader().Load(context.Background(), filepath.Join("testdata", "talk.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "Structured", deck.Meta.Title)

	intro, _ := deck.Slide(1)
	require.Len(t, intro.Blocks, 2)
	assert.Equal(t, "Welcome to the desert of the real.", intro.Blocks[1].Text)

	choices, _ := deck.Slide(2)
	require.Len(t, choices.Reveals, 3)
	assert.Equal(t, domain.BlockCode, choices.Blocks[3].Kind)
	assert.Equal(t, `if choice == "red": follow()`, choices.Blocks[3].Text)
}

func TestLoader_Unsupported(t *testing.T) {
	_, err := deckfile.NewLoader().Load(context.Background(), "slides.pptx")
	assert.ErrorIs(t, err, domain.ErrUnsupportedFormat)
	assert.False(t, deckfile.Supported("deck.txt"))
	assert.True(t, deckfile.Supported("DECK.MD"))
}

func TestLoader_FS(t *testing.T) {
	fsys := fstest.MapFS{
		"decks/a.md": {Data: []byte("# A\n---\n# B\n")},
	}
	deck, err := deckfile.NewLoader(deckfile.WithFS(fsys)).Load(context.Background(), "decks/a.md")
	require.NoError(t, err)
	assert.Equal(t, 2, deck.Total())
}

func TestLoader_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := deckfile.NewLoader().Load(ctx, filepath.Join("testdata", "talk.md"))
	assert.ErrorIs(t, err, context.Canceled)
}
