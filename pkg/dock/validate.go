package dock

import (
	"fmt"

	"github.com/matzehuels/dockyard/pkg/errors"
)

// Validate checks the structural invariants of every tree in the Space:
//   - the trees are acyclic and every node's parent link matches its slot
//   - every Simple leaf's handle points back at that leaf
//   - every Tabbed node has at least one entry and a selected index in range
//   - every Split has two children and a proportion within (0,1)
//   - every docked handle is reachable from exactly one Root
//   - every unpinned handle is listed once, by its own window, and is not docked
//   - a maximized node is a Simple or Tabbed node of its window
//   - the arena holds no node outside a tree
//
// A Space only mutated through its API always validates; Validate exists for
// tests and for diagnosing hosts that restore external state.
func (s *Space) Validate() error {
	seen := make(map[NodeID]bool)
	placed := make(map[*Handle]bool)

	var check func(n *Node, parent NodeID, w *Window) error
	check = func(n *Node, parent NodeID, w *Window) error {
		if n == nil {
			return invalid("node %d is missing from the arena", parent)
		}
		if seen[n.id] {
			return invalid("node %d is reachable twice", n.id)
		}
		seen[n.id] = true
		if n.parent != parent {
			return invalid("node %d has parent %d, want %d", n.id, n.parent, parent)
		}
		if n.window != w {
			return invalid("node %d belongs to another window", n.id)
		}

		switch n.kind {
		case KindSimple:
			if n.handle == nil || n.handle.node != n.id || n.handle.window != w {
				return invalid("simple node %d is not owned by its handle", n.id)
			}
			if placed[n.handle] {
				return invalid("dockable %q is placed twice", n.handle.ID())
			}
			placed[n.handle] = true
		case KindTabbed:
			if len(n.tabs) == 0 {
				return invalid("tabbed node %d is empty", n.id)
			}
			if n.selected < 0 || n.selected >= len(n.tabs) {
				return invalid("tabbed node %d selects %d of %d", n.id, n.selected, len(n.tabs))
			}
			for _, h := range n.tabs {
				if h.node != n.id || h.window != w {
					return invalid("tab %q of node %d is not owned by it", h.ID(), n.id)
				}
				if placed[h] {
					return invalid("dockable %q is placed twice", h.ID())
				}
				placed[h] = true
			}
		case KindSplit:
			if n.left == 0 || n.right == 0 {
				return invalid("split node %d has an empty side", n.id)
			}
			if err := checkProportion(n.proportion); err != nil {
				return invalid("split node %d: %s", n.id, errors.UserMessage(err))
			}
			if err := check(s.arena.get(n.left), n.id, w); err != nil {
				return err
			}
			return check(s.arena.get(n.right), n.id, w)
		case KindRoot:
			if parent != 0 {
				return invalid("root node %d is nested", n.id)
			}
			if n.child != 0 {
				return check(s.arena.get(n.child), n.id, w)
			}
		default:
			return invalid("node %d has unknown kind %v", n.id, n.kind)
		}
		return nil
	}

	for _, w := range s.windows {
		root := w.Root()
		if root == nil || root.kind != KindRoot {
			return invalid("window %q has no root", w.id)
		}
		if err := check(root, 0, w); err != nil {
			return err
		}
	}

	listed := make(map[*Handle]bool)
	for _, w := range s.windows {
		for _, h := range w.unpinned {
			if h.pin == nil || h.pin.window != w || h.Docked() || h.removed {
				return invalid("unpinned dockable %q of window %q is inconsistent", h.ID(), w.id)
			}
			if listed[h] {
				return invalid("dockable %q is unpinned twice", h.ID())
			}
			listed[h] = true
		}
		if w.maximized != 0 {
			m := s.arena.get(w.maximized)
			if m == nil || m.window != w || (m.kind != KindSimple && m.kind != KindTabbed) {
				return invalid("window %q maximizes node %d which it cannot show", w.id, w.maximized)
			}
		}
	}
	for _, h := range s.handles {
		if h.Unpinned() != listed[h] {
			return invalid("dockable %q unpinned=%v but listed=%v", h.ID(), h.Unpinned(), listed[h])
		}
	}

	if len(seen) != len(s.arena.nodes) {
		return invalid("%d nodes are detached from every tree", len(s.arena.nodes)-len(seen))
	}
	for _, h := range s.handles {
		if h.Docked() != placed[h] {
			return invalid("dockable %q docked=%v but placed=%v", h.ID(), h.Docked(), placed[h])
		}
	}
	return nil
}

func invalid(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidLayout, "%s", fmt.Sprintf(format, args...))
}
