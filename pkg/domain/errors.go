package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidSlideIndex is returned when a navigation targets a position outside the deck.
var ErrInvalidSlideIndex = errors.New("invalid slide index")

// ErrEmptyDeck is returned when a deck has no slides.
var ErrEmptyDeck = errors.New("deck has no slides")

// ErrBookmarkNotFound is returned when no bookmark exists for a deck.
var ErrBookmarkNotFound = errors.New("bookmark not found")

// ErrUnsupportedFormat is returned when a deck file extension is not recognized.
var ErrUnsupportedFormat = errors.New("unsupported deck format")

// InvalidSlideIndexError carries the rejected position.
type InvalidSlideIndexError struct {
	Requested int
	Total     int
}

func (e *InvalidSlideIndexError) Error() string {
	return fmt.Sprintf("slide %d is out of range [1, %d]", e.Requested, e.Total)
}

// Unwrap allows errors.Is(err, ErrInvalidSlideIndex).
func (e *InvalidSlideIndexError) Unwrap() error {
	return ErrInvalidSlideIndex
}
