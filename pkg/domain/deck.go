package domain

import "fmt"

// BlockKind identifies how a content block is laid out.
type BlockKind string

const (
	BlockHeading   BlockKind = "heading"
	BlockParagraph BlockKind = "paragraph"
	BlockItem      BlockKind = "item"
	BlockCode      BlockKind = "code"
	BlockQuote     BlockKind = "quote"
)

// Revealable reports whether blocks of this kind take part in progressive disclosure.
// Headings stay visible so the slide is never blank while its content builds.
func (k BlockKind) Revealable() bool {
	return k != BlockHeading
}

// Meta describes the deck as a whole.
type Meta struct {
	Title  string `json:"title" yaml:"title" mapstructure:"title"`
	Author string `json:"author,omitempty" yaml:"author,omitempty" mapstructure:"author"`
	Date   string `json:"date,omitempty" yaml:"date,omitempty" mapstructure:"date"`
	Theme  string `json:"theme,omitempty" yaml:"theme,omitempty" mapstructure:"theme"`
}

// Block is one unit of slide content.
type Block struct {
	Kind BlockKind
	Text string

	// Level is the heading level for headings and the nesting depth for list items.
	Level int

	// Language is the info string of fenced code blocks.
	Language string

	// Reveal is nil for static blocks.
	Reveal *RevealElement
}

// RevealElement is a block taking part in progressive disclosure.
type RevealElement struct {
	// Index is the zero-based position within the slide's reveal order.
	Index int

	// Revealed is flipped only by the disclosure controller.
	Revealed bool
}

// Slide is a single page of the deck.
type Slide struct {
	Position int
	Title    string
	Blocks   []*Block
	Reveals  []*RevealElement
}

// NewSlide creates a slide and assigns reveal indices in block order.
func NewSlide(title string, blocks []*Block) *Slide {
	s := &Slide{Title: title, Blocks: blocks}
	for _, b := range blocks {
		if !b.Kind.Revealable() {
			b.Reveal = nil
			continue
		}
		b.Reveal = &RevealElement{Index: len(s.Reveals)}
		s.Reveals = append(s.Reveals, b.Reveal)
	}
	return s
}

// Deck is the ordered sequence of slides. Its structure never changes after load.
type Deck struct {
	Meta   Meta
	Slides []*Slide

	// Source is the path the deck was loaded from, if any.
	Source string
}

// NewDeck numbers the slides 1..N and returns ErrEmptyDeck when there are none.
func NewDeck(meta Meta, slides []*Slide) (*Deck, error) {
	if len(slides) == 0 {
		return nil, ErrEmptyDeck
	}
	for i, s := range slides {
		if s == nil {
			return nil, fmt.Errorf("slide %d is nil", i+1)
		}
		s.Position = i + 1
	}
	return &Deck{Meta: meta, Slides: slides}, nil
}

// Total returns the number of slides.
func (d *Deck) Total() int {
	return len(d.Slides)
}

// Contains reports whether position is a valid 1-based slide position.
func (d *Deck) Contains(position int) bool {
	return position >= 1 && position <= len(d.Slides)
}

// Slide returns the slide at a 1-based position.
func (d *Deck) Slide(position int) (*Slide, error) {
	if !d.Contains(position) {
		return nil, &InvalidSlideIndexError{Requested: position, Total: len(d.Slides)}
	}
	return d.Slides[position-1], nil
}
