package dock

import "github.com/matzehuels/dockyard/pkg/geom"

// Handle associates a registered Dockable with its current tree position and
// visual bounds. Exactly one Handle exists per registered dockable between
// Register and Deregister.
type Handle struct {
	space    *Space
	dockable Dockable
	node     NodeID // owning Simple or Tabbed node; zero when unanchored
	window   *Window
	bounds   geom.Rect
	pin      *unpinned // set while auto-hidden at a window edge

	observers observers
	removed   bool
}

// Dockable returns the wrapped dockable.
func (h *Handle) Dockable() Dockable { return h.dockable }

// ID returns the dockable's persistent ID.
func (h *Handle) ID() string { return h.dockable.PersistentID() }

// Docked reports whether the handle is anchored in a tree.
func (h *Handle) Docked() bool { return h.node != 0 }

// Node returns the owning Simple or Tabbed node, or nil when unanchored.
func (h *Handle) Node() *Node { return h.space.arena.get(h.node) }

// Window returns the window the handle is docked in, or nil.
func (h *Handle) Window() *Window { return h.window }

// Unpinned reports whether the dockable is auto-hidden at a window edge.
func (h *Handle) Unpinned() bool { return h.pin != nil }

// UnpinnedEdge returns the edge an unpinned dockable is hidden at.
func (h *Handle) UnpinnedEdge() (Region, bool) {
	if h.pin == nil {
		return Center, false
	}
	return h.pin.edge, true
}

// Home returns the window the dockable is docked or unpinned in, or nil.
func (h *Handle) Home() *Window {
	if h.pin != nil {
		return h.pin.window
	}
	return h.window
}

// Bounds returns the content area the dockable is shown in. For a tab that
// is the Tabbed node's area below its header.
func (h *Handle) Bounds() geom.Rect {
	if h.window != nil {
		h.space.ensureLayout(h.window)
	}
	return h.bounds
}

func (h *Handle) anchor(n *Node) {
	h.node = n.id
	h.window = n.window
}

func (h *Handle) unanchor() {
	h.node = 0
	h.window = nil
	h.bounds = geom.Rect{}
}
