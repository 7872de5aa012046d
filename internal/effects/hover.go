package effects

import "github.com/aretw0/matrixdeck/pkg/ports"

// Hover keeps the glow on the node under the pointer.
type Hover struct {
	r       ports.Renderer
	current ports.NodeID
}

// NewHover creates a hover tracker.
func NewHover(r ports.Renderer) *Hover {
	return &Hover{r: r}
}

// Move glows id and clears the previous node. Zero means nothing is hovered.
func (h *Hover) Move(id ports.NodeID) {
	if id == h.current {
		return
	}
	if h.current != 0 {
		h.r.SetHighlight(h.current, false)
	}
	if id != 0 {
		h.r.SetHighlight(id, true)
	}
	h.current = id
}

// Current returns the hovered node.
func (h *Hover) Current() ports.NodeID {
	return h.current
}
