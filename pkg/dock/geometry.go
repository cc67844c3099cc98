package dock

import (
	"math"

	"github.com/matzehuels/dockyard/pkg/geom"
)

// invalidate marks w's cached geometry stale and queues a relayout. Several
// invalidations before the queue drains share one task.
func (s *Space) invalidate(w *Window) {
	if w == nil || w.closed {
		return
	}
	w.dirty = true
	if w.layoutPosted {
		return
	}
	w.layoutPosted = true
	s.queue.Post(func() {
		w.layoutPosted = false
		s.ensureLayout(w)
	})
}

func (s *Space) ensureLayout(w *Window) {
	if w.closed || !w.dirty {
		return
	}
	w.dirty = false
	w.layoutVersion++
	root := w.Root()
	if root == nil {
		return
	}
	s.layoutNode(root, w.bounds)
	if m := w.Maximized(); m != nil {
		s.layoutMaximized(root, m, w.bounds)
	}
}

// layoutMaximized gives m and its ancestors the whole window and every other
// node empty bounds.
func (s *Space) layoutMaximized(root, m *Node, r geom.Rect) {
	root.walk(func(n *Node) {
		n.bounds = geom.Rect{}
		switch n.kind {
		case KindSimple:
			n.handle.bounds = geom.Rect{}
		case KindTabbed:
			for _, h := range n.tabs {
				h.bounds = geom.Rect{}
			}
		}
	})
	for a := m.Parent(); a != nil; a = a.Parent() {
		a.bounds = r
	}
	s.layoutNode(m, r)
}

// Layout recomputes w's geometry immediately.
func (s *Space) Layout(w *Window) error {
	if err := s.checkWindow(w); err != nil {
		return err
	}
	w.dirty = true
	s.ensureLayout(w)
	return nil
}

func (s *Space) layoutNode(n *Node, r geom.Rect) {
	n.bounds = r
	switch n.kind {
	case KindRoot:
		if c := n.Child(); c != nil {
			s.layoutNode(c, r)
		}
	case KindSimple:
		n.handle.bounds = r
	case KindTabbed:
		header := min(s.opts.TabHeaderHeight, r.H)
		content := geom.Rect{X: r.X, Y: r.Y + header, W: r.W, H: r.H - header}
		for _, h := range n.tabs {
			h.bounds = content
		}
	case KindSplit:
		div := s.opts.DividerSize
		var first, second geom.Rect
		if n.orientation == Horizontal {
			first, second = r.SplitH(share(r.W-div, n.proportion), div)
		} else {
			first, second = r.SplitV(share(r.H-div, n.proportion), div)
		}
		s.layoutNode(n.Left(), first)
		s.layoutNode(n.Right(), second)
	}
}

func share(avail int, p float64) int {
	if avail <= 0 {
		return 0
	}
	return int(math.Round(float64(avail) * p))
}

// FindNodeAtScreenPos returns the deepest node under pos in the top-most
// window containing it, or nil when no window is there.
func (s *Space) FindNodeAtScreenPos(pos geom.Point) *Node {
	w := s.WindowAt(pos)
	if w == nil {
		return nil
	}
	return s.NodeAt(w, pos)
}

// NodeAt returns the deepest node of w whose bounds contain pos, or nil if
// pos is outside the window.
func (s *Space) NodeAt(w *Window, pos geom.Point) *Node {
	s.ensureLayout(w)
	root := w.Root()
	if root == nil || !root.bounds.Contains(pos) {
		return nil
	}
	n := root
	for {
		var next *Node
		for _, c := range n.Children() {
			if c != nil && c.bounds.Contains(pos) {
				next = c
				break
			}
		}
		if next == nil {
			return n
		}
		n = next
	}
}

// FindDockableAtScreenPos returns the dockable displayed under pos (the
// selected tab for Tabbed nodes), or nil.
func (s *Space) FindDockableAtScreenPos(pos geom.Point) Dockable {
	n := s.FindNodeAtScreenPos(pos)
	if n == nil {
		return nil
	}
	if h := n.SelectedHandle(); h != nil {
		return h.dockable
	}
	return nil
}
