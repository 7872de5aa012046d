package deckfile

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/matrixdeck/pkg/domain"
)

// yamlDeck is the structured deck format.
type yamlDeck struct {
	domain.Meta `yaml:",inline"`
	Slides      []yamlSlide `yaml:"slides"`
}

type yamlSlide struct {
	Title    string   `yaml:"title"`
	Content  string   `yaml:"content"`
	Points   []string `yaml:"points"`
	Code     string   `yaml:"code"`
	Language string   `yaml:"language"`
}

// ParseYAML reads a structured deck. Each slide has a title plus any of markdown
// content, bullet points and one code sample, in that order.
func ParseYAML(data []byte) (*domain.Deck, error) {
	var raw yamlDeck
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse deck: %w", err)
	}

	slides := make([]*domain.Slide, 0, len(raw.Slides))
	for i, s := range raw.Slides {
		var blocks []*domain.Block
		if s.Title != "" {
			blocks = append(blocks, &domain.Block{Kind: domain.BlockHeading, Level: 1, Text: s.Title})
		}
		if strings.TrimSpace(s.Content) != "" {
			blocks = append(blocks, ParseBlocks([]byte(s.Content))...)
		}
		for _, p := range s.Points {
			blocks = append(blocks, &domain.Block{Kind: domain.BlockItem, Level: 1, Text: p})
		}
		if s.Code != "" {
			blocks = append(blocks, &domain.Block{
				Kind:     domain.BlockCode,
				Language: s.Language,
				Text:     strings.TrimRight(s.Code, "\n"),
			})
		}
		slides = append(slides, domain.NewSlide(slideTitle(blocks, i+1), blocks))
	}

	deck, err := domain.NewDeck(raw.Meta, slides)
	if err != nil {
		return nil, err
	}
	if deck.Meta.Title == "" {
		deck.Meta.Title = deck.Slides[0].Title
	}
	return deck, nil
}
