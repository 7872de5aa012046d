package domain

import "fmt"

// Snapshot is the derived, read-only view of the navigation state after a transition.
type Snapshot struct {
	SessionID       string `json:"session_id,omitempty"`
	Position        int    `json:"position"`
	Total           int    `json:"total"`
	Counter         string `json:"counter"`
	PreviousEnabled bool   `json:"previous_enabled"`
	NextEnabled     bool   `json:"next_enabled"`
	TitleActive     bool   `json:"title_active"`
	SlideTitle      string `json:"slide_title,omitempty"`
}

// NewSnapshot derives every UI flag from position and total.
func NewSnapshot(sessionID string, position, total int, title string) Snapshot {
	return Snapshot{
		SessionID:       sessionID,
		Position:        position,
		Total:           total,
		Counter:         FormatCounter(position, total),
		PreviousEnabled: position > 1,
		NextEnabled:     position < total,
		TitleActive:     position == 1,
		SlideTitle:      title,
	}
}

// FormatCounter renders the "{position} / {total}" counter text.
func FormatCounter(position, total int) string {
	return fmt.Sprintf("%d / %d", position, total)
}

// Bookmark records the last position shown for a deck.
type Bookmark struct {
	DeckID    string `json:"deck_id"`
	Position  int    `json:"position"`
	UpdatedAt int64  `json:"updated_at"`
}
