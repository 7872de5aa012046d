package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/matrixdeck/pkg/domain"
)

// Markdown turns a deck back into markdown, one section per slide,
// with every reveal element shown.
func Markdown(deck *domain.Deck) string {
	var sb strings.Builder
	if deck.Meta.Author != "" || deck.Meta.Date != "" {
		fmt.Fprintf(&sb, "*%s*\n\n", strings.Trim(deck.Meta.Author+" · "+deck.Meta.Date, " ·"))
	}
	for i, s := range deck.Slides {
		if i > 0 {
			sb.WriteString("\n---\n\n")
		}
		headed := false
		for _, b := range s.Blocks {
			if b.Kind == domain.BlockHeading {
				headed = true
				break
			}
		}
		if !headed {
			fmt.Fprintf(&sb, "## %s\n\n", s.Title)
		}
		for _, b := range s.Blocks {
			writeBlock(&sb, b)
		}
		fmt.Fprintf(&sb, "*%s*\n", domain.FormatCounter(s.Position, deck.Total()))
	}
	return sb.String()
}

func writeBlock(sb *strings.Builder, b *domain.Block) {
	switch b.Kind {
	case domain.BlockHeading:
		fmt.Fprintf(sb, "%s %s\n\n", strings.Repeat("#", max(b.Level, 1)), b.Text)
	case domain.BlockItem:
		fmt.Fprintf(sb, "%s- %s\n\n", strings.Repeat("  ", max(b.Level-1, 0)), b.Text)
	case domain.BlockCode:
		fmt.Fprintf(sb, "```%s\n%s\n```\n\n", b.Language, strings.TrimRight(b.Text, "\n"))
	case domain.BlockQuote:
		for _, l := range strings.Split(b.Text, "\n") {
			fmt.Fprintf(sb, "> %s\n", l)
		}
		sb.WriteString("\n")
	default:
		fmt.Fprintf(sb, "%s\n\n", b.Text)
	}
}

// Print renders the whole deck for the terminal, or as plain text when plain is set.
func Print(deck *domain.Deck, width int, plain bool) (string, error) {
	render, err := NewRenderer(width, plain)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	return render(Markdown(deck))
}
