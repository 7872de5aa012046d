// Package deckfile loads decks from markdown and YAML files.
package deckfile

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/matrixdeck/pkg/domain"
	"github.com/aretw0/matrixdeck/pkg/ports"
)

// Loader implements ports.DeckLoader over the OS filesystem or an fs.FS.
type Loader struct {
	fsys fs.FS
}

var _ ports.DeckLoader = (*Loader)(nil)

// Option configures a Loader.
type Option func(*Loader)

// WithFS reads decks from fsys instead of the OS filesystem.
func WithFS(fsys fs.FS) Option {
	return func(l *Loader) {
		l.fsys = fsys
	}
}

// NewLoader creates a file loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads and parses the deck at source, picking the format from the extension.
func (l *Loader) Load(ctx context.Context, source string) (*domain.Deck, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !Supported(source) {
		return nil, fmt.Errorf("%s: %w", source, domain.ErrUnsupportedFormat)
	}

	var (
		data []byte
		err  error
	)
	if l.fsys != nil {
		data, err = fs.ReadFile(l.fsys, filepath.ToSlash(source))
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read deck %s: %w", source, err)
	}

	deck, err := Parse(source, data)
	if err != nil {
		return nil, fmt.Errorf("failed to load deck %s: %w", source, err)
	}
	deck.Source = source
	return deck, nil
}

// Supported reports whether the extension of name is a known deck format.
func Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown", ".yaml", ".yml":
		return true
	}
	return false
}

// Parse decodes data according to the extension of name.
func Parse(name string, data []byte) (*domain.Deck, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".md", ".markdown":
		return ParseMarkdown(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return nil, domain.ErrUnsupportedFormat
	}
}
