package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/aretw0/matrixdeck/pkg/domain"
)

// Store implements ports.BookmarkStore using the local filesystem.
// Each deck's bookmark is a JSON file in a configured directory.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".matrixdeck/bookmarks".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".matrixdeck", "bookmarks")
	}
	return &Store{BasePath: basePath}
}

func (s *Store) path(deckID string) string {
	return filepath.Join(s.BasePath, deckID+".json")
}

// Save persists the bookmark atomically: it writes a temporary file in the same
// directory, syncs it and renames it over the destination.
func (s *Store) Save(ctx context.Context, deckID string, bookmark domain.Bookmark) error {
	if deckID == "" {
		return fmt.Errorf("deckID cannot be empty")
	}
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure bookmark directory: %w", err)
	}

	data, err := json.MarshalIndent(bookmark, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal bookmark: %w", err)
	}

	tmpFile, err := os.CreateTemp(s.BasePath, "tmp-"+deckID+"-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	destPath := s.path(deckID)
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing bookmark for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to bookmark: %w", err)
	}
	return nil
}

// Load retrieves the bookmark for deckID.
func (s *Store) Load(ctx context.Context, deckID string) (domain.Bookmark, error) {
	if deckID == "" {
		return domain.Bookmark{}, fmt.Errorf("deckID cannot be empty")
	}

	data, err := os.ReadFile(s.path(deckID))
	if err != nil {
		if os.IsNotExist(err) {
			return domain.Bookmark{}, domain.ErrBookmarkNotFound
		}
		return domain.Bookmark{}, fmt.Errorf("failed to read bookmark file: %w", err)
	}

	var bm domain.Bookmark
	if err := json.Unmarshal(data, &bm); err != nil {
		return domain.Bookmark{}, fmt.Errorf("failed to unmarshal bookmark: %w", err)
	}
	return bm, nil
}

// Delete removes the bookmark file.
func (s *Store) Delete(ctx context.Context, deckID string) error {
	if deckID == "" {
		return fmt.Errorf("deckID cannot be empty")
	}
	if err := os.Remove(s.path(deckID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete bookmark file: %w", err)
	}
	return nil
}

// List returns every bookmarked deck ID.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		ids = append(ids, name[:len(name)-len(".json")])
	}
	sort.Strings(ids)
	return ids, nil
}
