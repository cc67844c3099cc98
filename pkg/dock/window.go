package dock

import (
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/dockyard/pkg/errors"
	"github.com/matzehuels/dockyard/pkg/geom"
)

// Window is a top-level host window. It owns exactly one Root node for its
// whole lifetime.
type Window struct {
	space   *Space
	id      string
	title   string
	bounds  geom.Rect
	visible bool
	root    NodeID
	closed  bool

	unpinned  []*Handle // auto-hidden dockables in unpin order
	maximized NodeID    // node shown over the whole window, or zero

	dirty         bool // geometry must be recomputed
	layoutPosted  bool // a relayout task is queued
	layoutVersion int
}

func (w *Window) ID() string        { return w.id }
func (w *Window) Title() string     { return w.title }
func (w *Window) Bounds() geom.Rect { return w.bounds }
func (w *Window) Visible() bool     { return w.visible }
func (w *Window) Closed() bool      { return w.closed }

// Root returns the window's Root node.
func (w *Window) Root() *Node { return w.space.arena.get(w.root) }

// Unpinned returns the window's auto-hidden dockables in unpin order.
func (w *Window) Unpinned() []*Handle {
	return append([]*Handle(nil), w.unpinned...)
}

// Maximized returns the node shown over the whole window, or nil.
func (w *Window) Maximized() *Node { return w.space.arena.get(w.maximized) }

// Main reports whether this is the Space's main window.
func (w *Window) Main() bool { return w.space.main == w }

// LayoutVersion increases every time the window's geometry is recomputed.
func (w *Window) LayoutVersion() int { return w.layoutVersion }

// NewWindow creates a visible window with an empty Root and puts it on top of
// the z-order. The first window created becomes the main window.
func (s *Space) NewWindow(title string, bounds geom.Rect) *Window {
	w := &Window{
		space:   s,
		id:      uuid.NewString(),
		title:   title,
		bounds:  bounds,
		visible: true,
	}
	root := s.arena.alloc(KindRoot, w)
	w.root = root.id
	s.windows = append(s.windows, w)
	if s.main == nil {
		s.main = w
	}
	s.invalidate(w)
	s.logger.Debug("window created", "window", w.id, "title", title, "bounds", bounds)
	return w
}

// SetMainWindow marks w as the main window, which CloseWindow refuses to
// dispose.
func (s *Space) SetMainWindow(w *Window) error {
	if err := s.checkWindow(w); err != nil {
		return err
	}
	s.main = w
	return nil
}

// MainWindow returns the main window, or nil before any window exists.
func (s *Space) MainWindow() *Window { return s.main }

// CanDisposeWindow reports whether CloseWindow would accept w.
func (s *Space) CanDisposeWindow(w *Window) bool {
	return s.checkWindow(w) == nil && w != s.main
}

// CloseWindow undocks every dockable in w, including the unpinned ones,
// firing undocked events, and then removes the window and its Root. The main
// window cannot be closed.
func (s *Space) CloseWindow(w *Window) error {
	if err := s.checkWindow(w); err != nil {
		return err
	}
	if w == s.main {
		return errors.New(errors.ErrCodeInvalidWindow, "main window %q cannot be disposed", w.title)
	}

	root := w.Root()
	for _, h := range append(root.Handles(), w.unpinned...) {
		if err := s.undock(h); err != nil {
			return err
		}
	}

	s.arena.free(root)
	w.closed = true
	s.windows = slices.DeleteFunc(s.windows, func(x *Window) bool { return x == w })
	s.logger.Debug("window closed", "window", w.id)
	return nil
}

// Windows returns the open windows in z-order, bottom first.
func (s *Space) Windows() []*Window {
	return append([]*Window(nil), s.windows...)
}

// WindowByID returns the open window with the given ID.
func (s *Space) WindowByID(id string) (*Window, error) {
	for _, w := range s.windows {
		if w.id == id {
			return w, nil
		}
	}
	return nil, errors.New(errors.ErrCodeInvalidWindow, "no window with ID %q", id)
}

// RaiseWindow moves w to the top of the z-order.
func (s *Space) RaiseWindow(w *Window) error {
	if err := s.checkWindow(w); err != nil {
		return err
	}
	s.windows = slices.DeleteFunc(s.windows, func(x *Window) bool { return x == w })
	s.windows = append(s.windows, w)
	return nil
}

// SetWindowBounds moves or resizes w and invalidates its geometry.
func (s *Space) SetWindowBounds(w *Window, bounds geom.Rect) error {
	if err := s.checkWindow(w); err != nil {
		return err
	}
	w.bounds = bounds
	s.invalidate(w)
	return nil
}

// SetWindowVisible shows or hides w. Hidden windows are never hit by
// screen-position queries.
func (s *Space) SetWindowVisible(w *Window, visible bool) error {
	if err := s.checkWindow(w); err != nil {
		return err
	}
	w.visible = visible
	return nil
}

// WindowAt returns the top-most visible window containing pos, or nil.
func (s *Space) WindowAt(pos geom.Point) *Window {
	for i := len(s.windows) - 1; i >= 0; i-- {
		w := s.windows[i]
		if w.visible && w.bounds.Contains(pos) {
			return w
		}
	}
	return nil
}

// WindowFor returns the window d is docked in, or nil.
func (s *Space) WindowFor(d Dockable) *Window {
	h, err := s.handleFor(d)
	if err != nil {
		return nil
	}
	return h.window
}

func (s *Space) checkWindow(w *Window) error {
	if w == nil || w.space != s || w.closed {
		return errors.New(errors.ErrCodeInvalidWindow, "window does not belong to this space or is closed")
	}
	return nil
}
