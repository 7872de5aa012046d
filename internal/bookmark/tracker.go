// Package bookmark remembers the last slide shown for each deck so a talk can resume.
package bookmark

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/matrixdeck/internal/logging"
	"github.com/aretw0/matrixdeck/pkg/domain"
	"github.com/aretw0/matrixdeck/pkg/ports"
)

// DeckID derives a stable, filename-safe identifier from the deck's absolute
// source path, or from its title for decks without a source.
func DeckID(deck *domain.Deck) string {
	name := deck.Meta.Title
	if deck.Source != "" {
		name = deck.Source
		if abs, err := filepath.Abs(deck.Source); err == nil {
			name = abs
		}
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("matrixdeck:"+name)).String()
}

// Tracker saves the current position whenever a slide is entered.
// Saves happen on the tracker's own goroutine so a slow store never stalls navigation;
// only the latest position is kept while a save is in flight.
type Tracker struct {
	store   ports.BookmarkStore
	deckID  string
	logger  *slog.Logger
	updates chan int
	now     func() time.Time
}

// NewTracker creates a tracker for deckID.
func NewTracker(store ports.BookmarkStore, deckID string, logger *slog.Logger) *Tracker {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Tracker{
		store:   store,
		deckID:  deckID,
		logger:  logger,
		updates: make(chan int, 1),
		now:     time.Now,
	}
}

// Resume returns the saved position, if any. Store failures are logged and treated as none.
func (t *Tracker) Resume(ctx context.Context) (int, bool) {
	bm, err := t.store.Load(ctx, t.deckID)
	if err != nil {
		if !errors.Is(err, domain.ErrBookmarkNotFound) {
			t.logger.Warn("failed to load bookmark", "deck", t.deckID, "error", err)
		}
		return 0, false
	}
	return bm.Position, true
}

// Hooks records every slide entry. The hook never blocks.
func (t *Tracker) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSlideEnter: func(_ context.Context, e *domain.SlideEvent) {
			t.push(e.Position)
		},
	}
}

func (t *Tracker) push(position int) {
	select {
	case t.updates <- position:
		return
	default:
	}
	// Replace the position nobody has picked up yet.
	select {
	case <-t.updates:
	default:
	}
	select {
	case t.updates <- position:
	default:
	}
}

// Run saves positions until ctx is done, then flushes the last pending one.
func (t *Tracker) Run(ctx context.Context) {
	for {
		select {
		case pos := <-t.updates:
			t.save(ctx, pos)
		case <-ctx.Done():
			select {
			case pos := <-t.updates:
				t.save(context.WithoutCancel(ctx), pos)
			default:
			}
			return
		}
	}
}

func (t *Tracker) save(ctx context.Context, position int) {
	bm := domain.Bookmark{DeckID: t.deckID, Position: position, UpdatedAt: t.now().Unix()}
	if err := t.store.Save(ctx, t.deckID, bm); err != nil {
		t.logger.Warn("failed to save bookmark", "deck", t.deckID, "position", position, "error", err)
		return
	}
	t.logger.Debug("bookmark saved", "deck", t.deckID, "position", position)
}
