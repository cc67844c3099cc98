package dock

import (
	"fmt"
	"strings"

	"github.com/matzehuels/dockyard/pkg/geom"
)

// NodeID identifies a node in a Space's arena. The zero value means "no node".
type NodeID int32

// Kind is the tag of a DockingNode.
type Kind uint8

const (
	KindSimple Kind = iota + 1
	KindTabbed
	KindSplit
	KindRoot
)

// String returns the kind name used in layouts ("simple", "tabbed", ...).
func (k Kind) String() string {
	switch k {
	case KindSimple:
		return "simple"
	case KindTabbed:
		return "tabbed"
	case KindSplit:
		return "split"
	case KindRoot:
		return "root"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Node is one DockingNode. Which fields are meaningful depends on Kind:
//
//   - Simple: handle
//   - Tabbed: tabs, selected
//   - Split: left, right, orientation, proportion
//   - Root: child
//
// Nodes are created and freed by the mutator. Callers only read them.
type Node struct {
	arena  *arena
	id     NodeID
	kind   Kind
	parent NodeID
	window *Window

	handle *Handle

	tabs     []*Handle
	selected int

	left, right NodeID
	orientation Orientation
	proportion  float64

	child NodeID

	bounds geom.Rect
}

func (n *Node) ID() NodeID          { return n.id }
func (n *Node) Kind() Kind          { return n.kind }
func (n *Node) Window() *Window     { return n.window }
func (n *Node) Parent() *Node       { return n.arena.get(n.parent) }
func (n *Node) Handle() *Handle     { return n.handle }
func (n *Node) Selected() int       { return n.selected }
func (n *Node) Left() *Node         { return n.arena.get(n.left) }
func (n *Node) Right() *Node        { return n.arena.get(n.right) }
func (n *Node) Child() *Node        { return n.arena.get(n.child) }
func (n *Node) Proportion() float64 { return n.proportion }

// Orientation returns the split axis. Only meaningful for Split nodes.
func (n *Node) Orientation() Orientation { return n.orientation }

// Tabs returns the Tabbed node's handles in tab order.
func (n *Node) Tabs() []*Handle {
	return append([]*Handle(nil), n.tabs...)
}

// SelectedHandle returns the visible handle of a Simple or Tabbed node.
func (n *Node) SelectedHandle() *Handle {
	switch n.kind {
	case KindSimple:
		return n.handle
	case KindTabbed:
		if n.selected >= 0 && n.selected < len(n.tabs) {
			return n.tabs[n.selected]
		}
	}
	return nil
}

// Empty reports whether a Root node has no child.
func (n *Node) Empty() bool { return n.kind == KindRoot && n.child == 0 }

// Children returns the direct child nodes (Split: left then right; Root:
// child). Leaves and Tabbed nodes return nil.
func (n *Node) Children() []*Node {
	switch n.kind {
	case KindSplit:
		return []*Node{n.Left(), n.Right()}
	case KindRoot:
		if n.child != 0 {
			return []*Node{n.Child()}
		}
	}
	return nil
}

// Handles returns every handle in the subtree in tree order.
func (n *Node) Handles() []*Handle {
	var out []*Handle
	n.walk(func(m *Node) {
		switch m.kind {
		case KindSimple:
			out = append(out, m.handle)
		case KindTabbed:
			out = append(out, m.tabs...)
		}
	})
	return out
}

// Bounds returns the node's screen bounds, recomputing the window layout
// first if it is stale.
func (n *Node) Bounds() geom.Rect {
	if n.window != nil {
		n.window.space.ensureLayout(n.window)
	}
	return n.bounds
}

// holdsOnly reports whether the node's only content is h.
func (n *Node) holdsOnly(h *Handle) bool {
	switch n.kind {
	case KindSimple:
		return n.handle == h
	case KindTabbed:
		return len(n.tabs) == 1 && n.tabs[0] == h
	}
	return false
}

// sibling returns the other child of a Split.
func (n *Node) sibling(child NodeID) NodeID {
	if n.left == child {
		return n.right
	}
	return n.left
}

func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children() {
		if c != nil {
			c.walk(fn)
		}
	}
}

// String renders the subtree in a compact notation, for example
// "Root(Split(V,0.50,Simple(one),Tabbed([two,*three])))" where * marks the
// selected tab.
func (n *Node) String() string {
	var b strings.Builder
	n.format(&b)
	return b.String()
}

func (n *Node) format(b *strings.Builder) {
	switch n.kind {
	case KindSimple:
		fmt.Fprintf(b, "Simple(%s)", n.handle.ID())
	case KindTabbed:
		b.WriteString("Tabbed([")
		for i, h := range n.tabs {
			if i > 0 {
				b.WriteByte(',')
			}
			if i == n.selected {
				b.WriteByte('*')
			}
			b.WriteString(h.ID())
		}
		b.WriteString("])")
	case KindSplit:
		fmt.Fprintf(b, "Split(%s,%.2f,", n.orientation, n.proportion)
		n.Left().format(b)
		b.WriteByte(',')
		n.Right().format(b)
		b.WriteByte(')')
	case KindRoot:
		b.WriteString("Root(")
		if c := n.Child(); c != nil {
			c.format(b)
		}
		b.WriteByte(')')
	}
}

// =============================================================================
// Arena
// =============================================================================

// arena owns every node of a Space. IDs are never reused so a stale NodeID
// resolves to nil instead of to an unrelated node.
type arena struct {
	nodes map[NodeID]*Node
	next  NodeID
}

func newArena() *arena {
	return &arena{nodes: make(map[NodeID]*Node)}
}

func (a *arena) alloc(kind Kind, w *Window) *Node {
	a.next++
	n := &Node{arena: a, id: a.next, kind: kind, window: w}
	a.nodes[n.id] = n
	return n
}

func (a *arena) get(id NodeID) *Node {
	if id == 0 {
		return nil
	}
	return a.nodes[id]
}

func (a *arena) free(n *Node) {
	delete(a.nodes, n.id)
	n.parent = 0
	n.handle = nil
	n.tabs = nil
	n.left, n.right, n.child = 0, 0, 0
}

func (a *arena) contains(n *Node) bool {
	return n != nil && a.nodes[n.id] == n
}
