package dock

import (
	"slices"

	"github.com/matzehuels/dockyard/pkg/errors"
)

// =============================================================================
// Public API
// =============================================================================

// Dock places source relative to the node that currently holds target. With
// CENTER the source joins target as a tab; with an edge region the target's
// node is split and proportion is the share given to the source (under the
// default convention).
//
// Dock fails with NOT_REGISTERED for unknown dockables, SELF_DOCK when source
// and target are the same dockable, and NOT_DOCKED when target has no
// position.
func (s *Space) Dock(source, target Dockable, region Region, proportion float64) error {
	h, err := s.handleFor(source)
	if err != nil {
		return err
	}
	th, err := s.handleFor(target)
	if err != nil {
		return err
	}
	if h == th {
		return errors.New(errors.ErrCodeSelfDock, "cannot dock %q to itself", h.ID())
	}
	if !th.Docked() {
		return errors.New(errors.ErrCodeNotDocked, "target %q is not docked", th.ID())
	}
	return s.dock(h, th.Node(), region, proportion)
}

// DockToWindow places source at the root of w. CENTER fills an empty root (or
// joins a Simple/Tabbed root child as a tab); an edge region splits the whole
// window.
func (s *Space) DockToWindow(source Dockable, w *Window, region Region, proportion float64) error {
	h, err := s.handleFor(source)
	if err != nil {
		return err
	}
	if err := s.checkWindow(w); err != nil {
		return err
	}
	return s.dock(h, w.Root(), region, proportion)
}

// DockToNode places source relative to an arbitrary node of this Space. It is
// the operation the drag controller applies on release.
func (s *Space) DockToNode(source Dockable, target *Node, region Region, proportion float64) error {
	h, err := s.handleFor(source)
	if err != nil {
		return err
	}
	return s.dock(h, target, region, proportion)
}

// Undock removes d from its tree, collapsing any structure left empty, or
// from its window's unpinned list. Undock fails with NOT_DOCKED if d has no
// position; calling it twice reports NOT_DOCKED the second time and changes
// nothing.
func (s *Space) Undock(d Dockable) error {
	h, err := s.handleFor(d)
	if err != nil {
		return err
	}
	return s.undock(h)
}

// SelectTab makes d the visible tab of its Tabbed node. It is a no-op for
// dockables in Simple nodes.
func (s *Space) SelectTab(d Dockable) error {
	h, err := s.handleFor(d)
	if err != nil {
		return err
	}
	n := h.Node()
	if n == nil {
		return errors.New(errors.ErrCodeNotDocked, "dockable %q is not docked", h.ID())
	}
	if n.kind == KindTabbed {
		n.selected = slices.Index(n.tabs, h)
		s.invalidate(n.window)
		s.emitLayout(n.window)
	}
	return nil
}

// SetProportion changes a Split node's stored proportion.
func (s *Space) SetProportion(n *Node, proportion float64) error {
	if !s.arena.contains(n) || n.kind != KindSplit {
		return errors.New(errors.ErrCodeInvalidLayout, "node is not a split of this space")
	}
	if err := checkProportion(proportion); err != nil {
		return err
	}
	n.proportion = proportion
	s.invalidate(n.window)
	s.emitLayout(n.window)
	return nil
}

// =============================================================================
// Dock
// =============================================================================

func (s *Space) dock(h *Handle, target *Node, region Region, proportion float64) error {
	if !s.arena.contains(target) {
		return errors.New(errors.ErrCodeInvalidWindow, "target node does not belong to this space")
	}
	if !region.Valid() {
		return errors.New(errors.ErrCodeInvalidRegion, "invalid region %d", int(region))
	}
	if region.IsEdge() {
		if err := checkProportion(proportion); err != nil {
			return err
		}
	}
	w := target.window
	if home := h.Home(); home != nil && h.dockable.Capabilities().LimitToRoot && home != w {
		return errors.New(errors.ErrCodeLimitedToRoot, "dockable %q is limited to its window", h.ID())
	}

	// Resolve the node that will receive the dockable once the source has
	// been detached from its current position. Detaching may collapse the
	// target's split, in which case the surviving sibling takes its place.
	eff, err := s.effectiveTarget(h, target)
	if err != nil {
		return err
	}
	if eff.kind == KindRoot {
		child := s.childAfterDetach(h, eff)
		switch {
		case child == nil && region != Center:
			return errors.New(errors.ErrCodeInvalidRegion, "empty root only accepts CENTER, got %s", region)
		case child != nil:
			eff = child
		}
	}
	if eff.kind == KindSplit && region == Center {
		return errors.New(errors.ErrCodeInvalidRegion, "cannot dock as a tab onto a split")
	}

	oldWindow := h.Home()
	s.clearMaximized(oldWindow)
	s.clearMaximized(w)
	switch {
	case h.Docked():
		s.detach(h)
	case h.Unpinned():
		s.dropUnpinned(h)
	}

	switch {
	case eff.kind == KindRoot:
		leaf := s.newSimple(h, w)
		eff.child = leaf.id
		leaf.parent = eff.id
	case region == Center:
		s.joinTabs(h, eff)
	default:
		s.split(h, eff, region, proportion)
	}

	s.invalidate(oldWindow)
	s.invalidate(w)
	s.logger.Debug("docked", "id", h.ID(), "region", region, "window", w.id)
	s.emitDockable(EventDocked, h)
	s.emitLayout(oldWindow, w)
	return nil
}

// effectiveTarget returns the node that receives the source after detach.
func (s *Space) effectiveTarget(h *Handle, target *Node) (*Node, error) {
	own := h.Node()
	if own == nil {
		return target, nil
	}
	if target == own {
		if own.holdsOnly(h) {
			return nil, errors.New(errors.ErrCodeSelfDock, "cannot dock %q onto its own node", h.ID())
		}
		return target, nil
	}
	if target.kind == KindSplit && (target.left == own.id || target.right == own.id) && own.holdsOnly(h) {
		return s.arena.get(target.sibling(own.id)), nil
	}
	return target, nil
}

// childAfterDetach returns what the root's child will be once h is detached.
func (s *Space) childAfterDetach(h *Handle, root *Node) *Node {
	child := root.Child()
	own := h.Node()
	if child == nil || own == nil || !own.holdsOnly(h) {
		return child
	}
	if child == own {
		return nil
	}
	if child.kind == KindSplit && (child.left == own.id || child.right == own.id) {
		return s.arena.get(child.sibling(own.id))
	}
	return child
}

func (s *Space) newSimple(h *Handle, w *Window) *Node {
	n := s.arena.alloc(KindSimple, w)
	n.handle = h
	h.anchor(n)
	return n
}

// joinTabs docks h as the new selected tab of a Simple or Tabbed node.
func (s *Space) joinTabs(h *Handle, target *Node) {
	if target.kind == KindTabbed {
		target.tabs = append(target.tabs, h)
		target.selected = len(target.tabs) - 1
		h.anchor(target)
		return
	}

	tabbed := s.arena.alloc(KindTabbed, target.window)
	existing := target.handle
	tabbed.tabs = []*Handle{existing, h}
	tabbed.selected = 1
	s.replaceSlot(target, tabbed)
	s.arena.free(target)
	existing.anchor(tabbed)
	h.anchor(tabbed)
}

// split replaces target's slot with a new Split holding target and a new
// Simple node for h.
func (s *Space) split(h *Handle, target *Node, region Region, proportion float64) {
	sp := s.arena.alloc(KindSplit, target.window)
	sp.orientation = region.Orientation()
	sp.proportion = s.opts.Convention.Stored(region, proportion)
	s.replaceSlot(target, sp)

	leaf := s.newSimple(h, target.window)
	if region.NewPanelSecond() {
		sp.left, sp.right = target.id, leaf.id
	} else {
		sp.left, sp.right = leaf.id, target.id
	}
	target.parent = sp.id
	leaf.parent = sp.id
}

// replaceSlot puts repl into the slot old occupies in its parent.
func (s *Space) replaceSlot(old, repl *Node) {
	parent := old.Parent()
	repl.parent = old.parent
	old.parent = 0
	if parent == nil {
		return
	}
	switch parent.kind {
	case KindRoot:
		parent.child = repl.id
	case KindSplit:
		if parent.left == old.id {
			parent.left = repl.id
		} else {
			parent.right = repl.id
		}
	}
}

// =============================================================================
// Undock
// =============================================================================

func (s *Space) undock(h *Handle) error {
	if h.Unpinned() {
		w := h.pin.window
		s.dropUnpinned(h)
		s.logger.Debug("undocked", "id", h.ID(), "window", w.id, "unpinned", true)
		s.emitDockable(EventUndocked, h)
		s.emitLayout(w)
		return nil
	}
	if !h.Docked() {
		return errors.New(errors.ErrCodeNotDocked, "dockable %q is not docked", h.ID())
	}
	w := h.window
	s.clearMaximized(w)
	s.detach(h)
	s.invalidate(w)
	s.logger.Debug("undocked", "id", h.ID(), "window", w.id)
	s.emitDockable(EventUndocked, h)
	s.emitLayout(w)
	return nil
}

// detach removes h from its owning node and collapses emptied structure. It
// never fires events.
func (s *Space) detach(h *Handle) {
	n := h.Node()
	h.unanchor()

	if n.kind == KindTabbed {
		idx := slices.Index(n.tabs, h)
		n.tabs = slices.Delete(n.tabs, idx, idx+1)
		switch len(n.tabs) {
		case 0:
		case 1:
			// A group never keeps a single tab. It turns into a Simple leaf
			// in place, so its ID and slot survive.
			n.kind = KindSimple
			n.handle = n.tabs[0]
			n.tabs, n.selected = nil, 0
			return
		default:
			switch {
			case idx < n.selected:
				n.selected--
			case idx == n.selected && n.selected >= len(n.tabs):
				n.selected = len(n.tabs) - 1
			}
			return
		}
	}
	s.removeNode(n)
}

// removeNode frees an emptied Simple or Tabbed node. A Split parent collapses
// into the surviving sibling; a Root parent becomes empty.
func (s *Space) removeNode(n *Node) {
	parent := n.Parent()
	switch parent.kind {
	case KindRoot:
		parent.child = 0
	case KindSplit:
		sibling := s.arena.get(parent.sibling(n.id))
		s.replaceSlot(parent, sibling)
		s.arena.free(parent)
	}
	s.arena.free(n)
}

func checkProportion(p float64) error {
	if !(p > 0 && p < 1) {
		return errors.New(errors.ErrCodeInvalidProportion, "proportion %v must be within (0,1)", p)
	}
	return nil
}
