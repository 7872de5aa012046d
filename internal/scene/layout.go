package scene

import (
	"fmt"

	"github.com/aretw0/matrixdeck/pkg/domain"
	"github.com/aretw0/matrixdeck/pkg/ports"
)

// Well-known node names.
const (
	NameRoot    = "root"
	NameRain    = "rain"
	NameSlides  = "slides"
	NameCounter = "counter"
	NamePrev    = "prev"
	NameNext    = "next"
	NameStatus  = "status"
)

// Control labels.
const (
	LabelPrev = "◀ PREV"
	LabelNext = "NEXT ▶"
)

// SlideName is the registered name of the slide node at position.
func SlideName(position int) string {
	return fmt.Sprintf("slide-%d", position)
}

// HeadingName is the registered name of the first heading of a slide.
func HeadingName(position int) string {
	return fmt.Sprintf("slide-%d/heading", position)
}

// RevealName is the registered name of the reveal element index of a slide.
func RevealName(position, index int) string {
	return fmt.Sprintf("slide-%d/reveal-%d", position, index)
}

// Chrome selects which pieces of navigation chrome are mounted.
type Chrome struct {
	Counter  bool
	Controls bool
	Rain     bool
	Status   bool
}

// FullChrome mounts everything.
func FullChrome() Chrome {
	return Chrome{Counter: true, Controls: true, Rain: true, Status: true}
}

// Mount builds the standard tree for deck: the rain layer behind the slides,
// one node per slide with its blocks, then the counter and controls.
// Reveal blocks start hidden; the disclosure controller shows them.
func Mount(r ports.Renderer, deck *domain.Deck, chrome Chrome) {
	if chrome.Rain {
		r.CreateNode(0, ports.Node{Name: NameRain, Kind: ports.KindLayer, Opacity: 0})
	}

	slides := r.CreateNode(0, ports.Node{Name: NameSlides, Kind: ports.KindLayer, Opacity: 1})
	for _, s := range deck.Slides {
		slideID := r.CreateNode(slides, ports.Node{
			Name:    SlideName(s.Position),
			Kind:    ports.KindSlide,
			Text:    s.Title,
			Opacity: 1,
		})
		r.SetActive(slideID, false)

		headingSeen := false
		for _, b := range s.Blocks {
			n := ports.Node{
				Kind:    ports.KindBlock,
				Role:    string(b.Kind),
				Level:   b.Level,
				Text:    b.Text,
				Opacity: 1,
			}
			switch {
			case b.Reveal != nil:
				n.Name = RevealName(s.Position, b.Reveal.Index)
				n.Opacity = 0
			case b.Kind == domain.BlockHeading && !headingSeen:
				n.Name = HeadingName(s.Position)
				headingSeen = true
			}
			r.CreateNode(slideID, n)
		}
	}

	if chrome.Counter {
		r.CreateNode(0, ports.Node{Name: NameCounter, Kind: ports.KindText, Opacity: 1})
	}
	if chrome.Controls {
		r.CreateNode(0, ports.Node{Name: NamePrev, Kind: ports.KindControl, Text: LabelPrev, Opacity: 1})
		r.CreateNode(0, ports.Node{Name: NameNext, Kind: ports.KindControl, Text: LabelNext, Opacity: 1})
	}
	if chrome.Status {
		r.CreateNode(0, ports.Node{Name: NameStatus, Kind: ports.KindText, Opacity: 1})
	}
}
