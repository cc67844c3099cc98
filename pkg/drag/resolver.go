package drag

import (
	"github.com/matzehuels/dockyard/pkg/dock"
	"github.com/matzehuels/dockyard/pkg/geom"
)

// Candidate is a resolved drop target. Node is the window's Root node when
// Root is set, otherwise the Simple or Tabbed node under the pointer.
type Candidate struct {
	Window *dock.Window
	Node   *dock.Node
	Region dock.Region
	Root   bool
}

// Overlay is the transient per-window state of an active drag: the window
// bounds, its root zones and the local zones of the node under the pointer.
// Renderers read it to draw handles and the drop preview.
type Overlay struct {
	Window     *dock.Window
	Bounds     geom.Rect
	RootZones  []Zone
	Node       *dock.Node
	LocalZones []Zone
	// Active is the zone under the pointer, if any.
	Active *Zone
	// Preview is the area the source would occupy on release.
	Preview geom.Rect
}

// Resolver is the drag-target state machine. Begin starts a gesture, Update
// is fed every pointer position, and Resolve reports the candidate computed
// by the last Update. Cancel ends the gesture without touching any tree.
//
// A Resolver is bound to one Space and, like the Space, is used from the UI
// thread only.
type Resolver struct {
	space *dock.Space
	cfg   Config

	source dock.Dockable
	handle *dock.Handle
	active bool

	overlays  map[*dock.Window]*Overlay
	current   *Overlay
	candidate *Candidate
}

// NewResolver creates an idle resolver for s.
func NewResolver(s *dock.Space, cfg Config) *Resolver {
	return &Resolver{space: s, cfg: cfg.withDefaults()}
}

// Config returns the zone configuration.
func (r *Resolver) Config() Config { return r.cfg }

// Begin starts a drag of source, discarding any gesture in progress.
func (r *Resolver) Begin(source dock.Dockable) error {
	h, err := r.space.Handle(source)
	if err != nil {
		return err
	}
	r.Cancel()
	r.source, r.handle, r.active = source, h, true
	r.overlays = make(map[*dock.Window]*Overlay)
	return nil
}

// Active reports whether a gesture is in progress.
func (r *Resolver) Active() bool { return r.active }

// Source returns the dockable being dragged, or nil.
func (r *Resolver) Source() dock.Dockable { return r.source }

// Update recomputes the candidate for pos: the top-most window containing
// pos, the deepest node under it, and then the root zones before the local
// zones of that node, each in the order N, S, E, W, CENTER. It returns the
// same result as a following Resolve.
func (r *Resolver) Update(pos geom.Point) (Candidate, bool) {
	r.candidate = nil
	if r.current != nil {
		r.current.Active = nil
		r.current.Preview = geom.Rect{}
	}
	r.current = nil
	if !r.active {
		return Candidate{}, false
	}

	w := r.space.WindowAt(pos)
	if w == nil || !r.accepts(w) {
		return Candidate{}, false
	}
	root := w.Root()
	ov := r.overlay(w)
	r.current = ov

	ov.Node = r.space.NodeAt(w, pos)
	ov.LocalZones = nil
	if ov.Node != nil && r.offersLocal(ov.Node) {
		ov.LocalZones = LocalZones(ov.Node.Bounds(), r.cfg)
	}

	if z, ok := hit(ov.RootZones, pos); ok {
		r.candidate = &Candidate{Window: w, Node: root, Region: z.Region, Root: true}
		ov.Active = &z
		ov.Preview = Preview(ov.Bounds, z.Region, r.cfg.RootProportion)
	} else if z, ok := hit(ov.LocalZones, pos); ok {
		r.candidate = &Candidate{Window: w, Node: ov.Node, Region: z.Region}
		ov.Active = &z
		ov.Preview = Preview(ov.Node.Bounds(), z.Region, r.cfg.Proportion)
	}
	return r.Resolve()
}

// Resolve returns the candidate computed by the last Update. It has no side
// effects.
func (r *Resolver) Resolve() (Candidate, bool) {
	if r.candidate == nil {
		return Candidate{}, false
	}
	return *r.candidate, true
}

// IsDockingToRoot reports whether the last candidate is a root zone.
func (r *Resolver) IsDockingToRoot() bool {
	return r.candidate != nil && r.candidate.Root
}

// IsDockingToDockable reports whether the last candidate is a local zone of a
// docked node.
func (r *Resolver) IsDockingToDockable() bool {
	return r.candidate != nil && !r.candidate.Root
}

// Overlay returns the overlay of the window under the pointer, or nil.
func (r *Resolver) Overlay() *Overlay { return r.current }

// Overlays returns the overlays of every window the pointer has visited
// during the gesture.
func (r *Resolver) Overlays() []*Overlay {
	out := make([]*Overlay, 0, len(r.overlays))
	for _, w := range r.space.Windows() {
		if ov, ok := r.overlays[w]; ok {
			out = append(out, ov)
		}
	}
	return out
}

// Cancel clears the gesture and every overlay.
func (r *Resolver) Cancel() {
	r.source, r.handle, r.active = nil, nil, false
	r.overlays = nil
	r.current, r.candidate = nil, nil
}

// overlay returns w's overlay, refreshing its bounds and root zones.
func (r *Resolver) overlay(w *dock.Window) *Overlay {
	ov, ok := r.overlays[w]
	if !ok {
		ov = &Overlay{Window: w}
		r.overlays[w] = ov
	}
	root := w.Root()
	ov.Bounds = root.Bounds()
	ov.RootZones = RootZones(ov.Bounds, r.vacant(root), r.cfg)
	return ov
}

// accepts reports whether the source may be dropped into w.
func (r *Resolver) accepts(w *dock.Window) bool {
	if !r.source.Capabilities().LimitToRoot || r.handle.Home() == nil {
		return true
	}
	return r.handle.Home() == w
}

// vacant reports whether root is empty once the source has left it.
func (r *Resolver) vacant(root *dock.Node) bool {
	return r.holdsOnlySource(root)
}

// offersLocal reports whether n gets local zones: only leaves and tab groups
// do, except the source's own node when dropping there would be a no-op.
func (r *Resolver) offersLocal(n *dock.Node) bool {
	switch n.Kind() {
	case dock.KindSimple, dock.KindTabbed:
		return !r.holdsOnlySource(n)
	}
	return false
}

func (r *Resolver) holdsOnlySource(n *dock.Node) bool {
	hs := n.Handles()
	return len(hs) == 0 || (len(hs) == 1 && hs[0] == r.handle)
}
