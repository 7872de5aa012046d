package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/matrixdeck/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunBookmarkStoreContract runs a suite of tests to verify that a BookmarkStore implementation
// adheres to the defined interface contract.
func RunBookmarkStoreContract(t *testing.T, store BookmarkStore) {
	ctx := context.Background()
	deckID := "contract-test-deck-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		bm := domain.Bookmark{DeckID: deckID, Position: 7, UpdatedAt: time.Now().Unix()}

		err := store.Save(ctx, deckID, bm)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, deckID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, 7, loaded.Position)
		assert.Equal(t, deckID, loaded.DeckID)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, deckID, domain.Bookmark{DeckID: deckID, Position: 2}))
		require.NoError(t, store.Save(ctx, deckID, domain.Bookmark{DeckID: deckID, Position: 3}))

		loaded, err := store.Load(ctx, deckID)
		require.NoError(t, err)
		assert.Equal(t, 3, loaded.Position)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+deckID)
		assert.ErrorIs(t, err, domain.ErrBookmarkNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, deckID, domain.Bookmark{DeckID: deckID, Position: 1})
		require.NoError(t, err)

		err = store.Delete(ctx, deckID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, deckID)
		assert.ErrorIs(t, err, domain.ErrBookmarkNotFound, "Load after Delete should return ErrBookmarkNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := deckID + "-1"
		id2 := deckID + "-2"
		_ = store.Save(ctx, id1, domain.Bookmark{DeckID: id1, Position: 1})
		_ = store.Save(ctx, id2, domain.Bookmark{DeckID: id2, Position: 2})

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}
