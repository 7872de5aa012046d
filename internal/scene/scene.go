// Package scene holds the retained visual tree that the core mutates through
// ports.Renderer and the terminal view reads when drawing a frame.
//
// A Scene is confined to the event loop; it has no locking of its own.
package scene

import (
	"github.com/aretw0/matrixdeck/pkg/ports"
)

// Node is a live node of the tree.
type Node struct {
	ports.Node

	ID        ports.NodeID
	Parent    ports.NodeID
	Children  []ports.NodeID
	Enabled   bool
	Active    bool
	Highlight bool
}

// Scene implements ports.Renderer in memory.
type Scene struct {
	nodes map[ports.NodeID]*Node
	names map[string]ports.NodeID
	next  ports.NodeID
	root  ports.NodeID
}

var _ ports.Renderer = (*Scene)(nil)

// New creates a scene containing only the root node.
func New() *Scene {
	s := &Scene{
		nodes: make(map[ports.NodeID]*Node),
		names: make(map[string]ports.NodeID),
	}
	s.root = s.insert(0, ports.Node{Name: NameRoot, Kind: ports.KindRoot, Opacity: 1})
	return s
}

// Root returns the root node id.
func (s *Scene) Root() ports.NodeID {
	return s.root
}

// Len returns the number of live nodes, root included.
func (s *Scene) Len() int {
	return len(s.nodes)
}

// Get returns the live node for id.
func (s *Scene) Get(id ports.NodeID) (*Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Children returns the live children of id in creation order.
func (s *Scene) Children(id ports.NodeID) []*Node {
	n, ok := s.nodes[id]
	if !ok {
		return nil
	}
	out := make([]*Node, 0, len(n.Children))
	for _, c := range n.Children {
		if child, ok := s.nodes[c]; ok {
			out = append(out, child)
		}
	}
	return out
}

// Lookup resolves a registered node name.
func (s *Scene) Lookup(name string) (ports.NodeID, bool) {
	id, ok := s.names[name]
	return id, ok
}

// CreateNode adds a node under parent. A zero parent means the root.
// It returns zero if parent does not exist.
func (s *Scene) CreateNode(parent ports.NodeID, n ports.Node) ports.NodeID {
	if parent == 0 {
		parent = s.root
	}
	if _, ok := s.nodes[parent]; !ok {
		return 0
	}
	return s.insert(parent, n)
}

func (s *Scene) insert(parent ports.NodeID, n ports.Node) ports.NodeID {
	s.next++
	id := s.next
	n.Opacity = clamp01(n.Opacity)
	s.nodes[id] = &Node{Node: n, ID: id, Parent: parent, Enabled: true}
	if n.Name != "" {
		s.names[n.Name] = id
	}
	if p, ok := s.nodes[parent]; ok && parent != id {
		p.Children = append(p.Children, id)
	}
	return id
}

// RemoveNode deletes a node and its whole subtree. Removing the root is ignored.
func (s *Scene) RemoveNode(id ports.NodeID) {
	n, ok := s.nodes[id]
	if !ok || id == s.root {
		return
	}
	if p, ok := s.nodes[n.Parent]; ok {
		for i, c := range p.Children {
			if c == id {
				p.Children = append(p.Children[:i], p.Children[i+1:]...)
				break
			}
		}
	}
	s.drop(n)
}

func (s *Scene) drop(n *Node) {
	for _, c := range n.Children {
		if child, ok := s.nodes[c]; ok {
			s.drop(child)
		}
	}
	if n.Name != "" && s.names[n.Name] == n.ID {
		delete(s.names, n.Name)
	}
	delete(s.nodes, n.ID)
}

// SetOpacity sets the opacity, clamped to [0, 1].
func (s *Scene) SetOpacity(id ports.NodeID, opacity float64) {
	if n, ok := s.nodes[id]; ok {
		n.Opacity = clamp01(opacity)
	}
}

// SetTransform sets the drawing offset.
func (s *Scene) SetTransform(id ports.NodeID, offset ports.Offset) {
	if n, ok := s.nodes[id]; ok {
		n.Offset = offset
	}
}

// SetText replaces the node text.
func (s *Scene) SetText(id ports.NodeID, text string) {
	if n, ok := s.nodes[id]; ok {
		n.Text = text
	}
}

// SetEnabled toggles interactivity.
func (s *Scene) SetEnabled(id ports.NodeID, enabled bool) {
	if n, ok := s.nodes[id]; ok {
		n.Enabled = enabled
	}
}

// SetActive marks the node as the active one among its siblings.
func (s *Scene) SetActive(id ports.NodeID, active bool) {
	if n, ok := s.nodes[id]; ok {
		n.Active = active
	}
}

// SetHighlight toggles the hover glow.
func (s *Scene) SetHighlight(id ports.NodeID, highlight bool) {
	if n, ok := s.nodes[id]; ok {
		n.Highlight = highlight
	}
}

// Walk visits id and its subtree depth-first, parents before children.
func (s *Scene) Walk(id ports.NodeID, fn func(*Node) bool) {
	n, ok := s.nodes[id]
	if !ok {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		s.Walk(c, fn)
	}
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
