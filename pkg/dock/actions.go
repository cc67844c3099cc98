package dock

import (
	"slices"

	"github.com/matzehuels/dockyard/pkg/errors"
	"github.com/matzehuels/dockyard/pkg/geom"
)

// Header actions: close, pin/unpin and maximize/minimize. Each one is gated
// by a dockable capability and otherwise follows the mutator rules: validate
// first, then mutate, then fire events.

// unpinned records an auto-hidden dockable and the slot it left.
type unpinned struct {
	window *Window
	edge   Region
	slot   pinSlot
}

// pinSlot is where an unpinned dockable sat before it left the tree.
type pinSlot struct {
	node       NodeID  // former sibling subtree or tab group
	anchor     *Handle // a dockable inside node, used once node is gone
	region     Region  // side of node the dockable occupied; CENTER for a tab group
	proportion float64 // stored proportion of the collapsed split
}

// Close removes d from the layout at the user's request. A window other than
// the main window that is left without content is disposed.
//
// Close fails with NOT_CLOSABLE when d does not allow closing and NOT_DOCKED
// when d is neither docked nor unpinned.
func (s *Space) Close(d Dockable) error {
	h, err := s.handleFor(d)
	if err != nil {
		return err
	}
	if !h.dockable.Capabilities().Closable {
		return errors.New(errors.ErrCodeNotClosable, "dockable %q cannot be closed", h.ID())
	}
	w := h.Home()
	if err := s.undock(h); err != nil {
		return err
	}
	s.logger.Debug("closed", "id", h.ID(), "window", w.id)
	if w != s.main && w.Root().Empty() && len(w.unpinned) == 0 {
		return s.CloseWindow(w)
	}
	return nil
}

// Unpin auto-hides d at an edge of its window. The dockable leaves the tree,
// which collapses as it does for Undock, and is listed by [Window.Unpinned]
// until Pin puts it back. edge is WEST, EAST or SOUTH.
//
// Unpin fails with NOT_PINNABLE when d does not allow pinning, NOT_DOCKED
// when it has no position and INVALID_REGION for any other edge.
func (s *Space) Unpin(d Dockable, edge Region) error {
	h, err := s.handleFor(d)
	if err != nil {
		return err
	}
	if !h.dockable.Capabilities().Pinnable {
		return errors.New(errors.ErrCodeNotPinnable, "dockable %q cannot be unpinned", h.ID())
	}
	if !h.Docked() {
		return errors.New(errors.ErrCodeNotDocked, "dockable %q is not docked", h.ID())
	}
	if edge != West && edge != East && edge != South {
		return errors.New(errors.ErrCodeInvalidRegion, "unpin edge must be WEST, EAST or SOUTH, got %s", edge)
	}

	w := h.window
	slot := s.slotOf(h)
	s.clearMaximized(w)
	s.detach(h)
	h.pin = &unpinned{window: w, edge: edge, slot: slot}
	w.unpinned = append(w.unpinned, h)

	s.invalidate(w)
	s.logger.Debug("unpinned", "id", h.ID(), "edge", edge, "window", w.id)
	s.emitDockable(EventUnpinned, h)
	s.emitLayout(w)
	return nil
}

// Pin docks an unpinned dockable back where it was unpinned from: beside its
// former sibling, or into its former tab group as the selected tab. When that
// structure is gone it docks beside a dockable that shared it, and failing
// that at its unpin edge of the window (CENTER when the window is empty).
//
// Pin fails with NOT_UNPINNED when d is not unpinned.
func (s *Space) Pin(d Dockable) error {
	h, err := s.handleFor(d)
	if err != nil {
		return err
	}
	if h.pin == nil {
		return errors.New(errors.ErrCodeNotUnpinned, "dockable %q is not unpinned", h.ID())
	}
	target, region, p := s.pinTarget(h)
	return s.dock(h, target, region, p)
}

// Maximize shows d's node over its whole window. The other nodes stay in the
// tree with empty bounds, so hit tests never reach them and Capture still
// records the full layout. The window returns to normal on Minimize or on
// the next dock, undock or unpin that touches it. A tab is selected first.
//
// Maximize fails with NOT_MAXIMIZABLE when d does not allow it and
// NOT_DOCKED when it has no position.
func (s *Space) Maximize(d Dockable) error {
	h, err := s.handleFor(d)
	if err != nil {
		return err
	}
	if !h.dockable.Capabilities().MinMax {
		return errors.New(errors.ErrCodeNotMaximizable, "dockable %q cannot be maximized", h.ID())
	}
	if !h.Docked() {
		return errors.New(errors.ErrCodeNotDocked, "dockable %q is not docked", h.ID())
	}
	n, w := h.Node(), h.window
	if n.kind == KindTabbed {
		n.selected = slices.Index(n.tabs, h)
	}
	w.maximized = n.id
	s.invalidate(w)
	s.logger.Debug("maximized", "id", h.ID(), "window", w.id)
	s.emitLayout(w)
	return nil
}

// Minimize returns w to its normal layout. It does nothing when no node of w
// is maximized.
func (s *Space) Minimize(w *Window) error {
	if err := s.checkWindow(w); err != nil {
		return err
	}
	if w.maximized == 0 {
		return nil
	}
	s.clearMaximized(w)
	s.invalidate(w)
	s.emitLayout(w)
	return nil
}

// FlyoutBounds returns the area an unpinned dockable covers while the host
// shows it: a quarter of the window width at the WEST or EAST edge, a
// quarter of its height at the SOUTH edge.
func (s *Space) FlyoutBounds(d Dockable) (geom.Rect, error) {
	h, err := s.handleFor(d)
	if err != nil {
		return geom.Rect{}, err
	}
	if h.pin == nil {
		return geom.Rect{}, errors.New(errors.ErrCodeNotUnpinned, "dockable %q is not unpinned", h.ID())
	}
	b := h.pin.window.bounds
	switch h.pin.edge {
	case West:
		return geom.R(b.X, b.Y, b.W/4, b.H), nil
	case East:
		w := b.W / 4
		return geom.R(b.X+b.W-w, b.Y, w, b.H), nil
	}
	hh := b.H / 4
	return geom.R(b.X, b.Y+b.H-hh, b.W, hh), nil
}

// slotOf describes h's position so that docking h back recreates it.
func (s *Space) slotOf(h *Handle) pinSlot {
	n := h.Node()
	if n.kind == KindTabbed && len(n.tabs) > 1 {
		other := n.tabs[0]
		if other == h {
			other = n.tabs[1]
		}
		return pinSlot{node: n.id, anchor: other, region: Center}
	}
	parent := n.Parent()
	if parent.kind != KindSplit {
		return pinSlot{region: Center}
	}
	sib := s.arena.get(parent.sibling(n.id))
	slot := pinSlot{node: sib.id, anchor: sib.Handles()[0], proportion: parent.proportion}
	first := parent.left == n.id
	switch {
	case parent.orientation == Horizontal && first:
		slot.region = West
	case parent.orientation == Horizontal:
		slot.region = East
	case first:
		slot.region = North
	default:
		slot.region = South
	}
	return slot
}

// pinTarget picks the dock call that puts h back. The recorded proportion is
// a stored value; Stored is its own inverse, so it also converts back.
func (s *Space) pinTarget(h *Handle) (*Node, Region, float64) {
	u := h.pin
	w := u.window
	p := s.opts.Convention.Stored(u.slot.region, u.slot.proportion)
	if n := s.arena.get(u.slot.node); n != nil && n.window == w && n.kind != KindRoot {
		if u.slot.region != Center || n.kind != KindSplit {
			return n, u.slot.region, p
		}
	}
	if a := u.slot.anchor; a != nil && !a.removed && a.window == w {
		return a.Node(), u.slot.region, p
	}
	if w.Root().Empty() {
		return w.Root(), Center, DefaultProportion
	}
	return w.Root(), u.edge, DefaultRootProportion
}

// dropUnpinned forgets h's unpinned state.
func (s *Space) dropUnpinned(h *Handle) {
	w := h.pin.window
	w.unpinned = slices.DeleteFunc(w.unpinned, func(x *Handle) bool { return x == h })
	h.pin = nil
}

func (s *Space) clearMaximized(w *Window) {
	if w == nil || w.maximized == 0 {
		return
	}
	w.maximized = 0
	s.logger.Debug("window restored", "window", w.id)
}
