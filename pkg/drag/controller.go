package drag

import (
	"github.com/charmbracelet/log"

	"github.com/matzehuels/dockyard/pkg/dock"
	"github.com/matzehuels/dockyard/pkg/errors"
	"github.com/matzehuels/dockyard/pkg/geom"
)

// Floater promotes a dockable released over no drop target to a standalone
// window.
type Floater interface {
	Float(d dock.Dockable, pos geom.Point) error
}

// FloaterFunc adapts a function to the Floater interface.
type FloaterFunc func(d dock.Dockable, pos geom.Point) error

func (f FloaterFunc) Float(d dock.Dockable, pos geom.Point) error { return f(d, pos) }

// WindowFloater floats a dockable by creating a new window at the release
// position and docking the dockable into it. The window keeps the size the
// dockable had before; Size is used for dockables that were not docked.
type WindowFloater struct {
	Space *dock.Space
	Size  geom.Point
}

// Float implements Floater.
func (f WindowFloater) Float(d dock.Dockable, pos geom.Point) error {
	h, err := f.Space.Handle(d)
	if err != nil {
		return err
	}
	if d.Capabilities().LimitToRoot && h.Home() != nil {
		return errors.New(errors.ErrCodeLimitedToRoot, "dockable %q cannot leave its window", h.ID())
	}

	size := f.Size
	if b := h.Bounds(); h.Docked() && !b.Empty() {
		size = geom.Pt(b.W, b.H)
	}
	old := h.Window()
	w := f.Space.NewWindow(d.TabText(), geom.R(pos.X, pos.Y, size.X, size.Y))
	if err := f.Space.DockToWindow(d, w, dock.Center, dock.DefaultProportion); err != nil {
		_ = f.Space.CloseWindow(w)
		return err
	}
	return closeIfEmpty(f.Space, old)
}

// closeIfEmpty disposes a window left without docked or unpinned dockables,
// unless it is the main window.
func closeIfEmpty(s *dock.Space, w *dock.Window) error {
	if w == nil || w.Closed() || !w.Root().Empty() || len(w.Unpinned()) > 0 || !s.CanDisposeWindow(w) {
		return nil
	}
	return s.CloseWindow(w)
}

// Outcome says what a finished drag did.
type Outcome int

const (
	// Docked means the source was docked at the resolved candidate.
	Docked Outcome = iota + 1
	// Floated means no candidate was under the pointer and the source was
	// handed to the Floater.
	Floated
)

func (o Outcome) String() string {
	switch o {
	case Docked:
		return "docked"
	case Floated:
		return "floated"
	}
	return "none"
}

// Result describes a completed drag. Candidate is set when Outcome is Docked.
type Result struct {
	Outcome   Outcome
	Candidate Candidate
}

// Controller implements the drag protocol consumed from the host's gesture
// source: OnDragStart, OnDragUpdate for every pointer move, and OnDragEnd on
// release. Drops are applied with the same mutator used for programmatic
// docking.
type Controller struct {
	space    *dock.Space
	resolver *Resolver
	floater  Floater
	logger   *log.Logger
}

// NewController creates a controller for s. A nil floater defaults to a
// WindowFloater.
func NewController(s *dock.Space, cfg Config, floater Floater) *Controller {
	cfg = cfg.withDefaults()
	if floater == nil {
		floater = WindowFloater{Space: s, Size: geom.Pt(cfg.HandleSize*10, cfg.HandleSize*8)}
	}
	return &Controller{
		space:    s,
		resolver: NewResolver(s, cfg),
		floater:  floater,
		logger:   s.Logger(),
	}
}

// Resolver returns the controller's resolver, for renderers that draw the
// live overlay.
func (c *Controller) Resolver() *Resolver { return c.resolver }

// Dragging reports whether a gesture is in progress.
func (c *Controller) Dragging() bool { return c.resolver.Active() }

// OnDragStart begins dragging d. The tree is not modified until release.
func (c *Controller) OnDragStart(d dock.Dockable) error {
	if err := c.resolver.Begin(d); err != nil {
		return err
	}
	c.logger.Debug("drag started", "id", d.PersistentID())
	return nil
}

// OnDragUpdate feeds a pointer position and returns the live candidate.
func (c *Controller) OnDragUpdate(pos geom.Point) (Candidate, bool) {
	return c.resolver.Update(pos)
}

// OnDragEnd resolves the drop at pos and applies it. With a candidate the
// source is docked there; without one it is floated, unless it is not
// floatable (NOT_FLOATABLE) or is limited to the window it is docked in
// (LIMITED_TO_ROOT). A rejected float leaves the tree unchanged.
// The gesture is over afterwards whatever the outcome.
func (c *Controller) OnDragEnd(pos geom.Point) (Result, error) {
	if !c.resolver.Active() {
		return Result{}, errors.New(errors.ErrCodeNoDrag, "no drag in progress")
	}
	source := c.resolver.Source()
	old := c.space.WindowFor(source)
	cand, ok := c.resolver.Update(pos)
	c.resolver.Cancel()

	if ok {
		p := c.resolver.cfg.Proportion
		if cand.Root {
			p = c.resolver.cfg.RootProportion
		}
		if err := c.space.DockToNode(source, cand.Node, cand.Region, p); err != nil {
			return Result{}, err
		}
		c.logger.Debug("drag dropped", "id", source.PersistentID(), "region", cand.Region, "root", cand.Root)
		return Result{Outcome: Docked, Candidate: cand}, closeIfEmpty(c.space, old)
	}

	caps := source.Capabilities()
	if !caps.Floatable {
		return Result{}, errors.New(errors.ErrCodeNotFloatable, "dockable %q cannot float", source.PersistentID())
	}
	if h, err := c.space.Handle(source); err == nil && caps.LimitToRoot && h.Home() != nil {
		return Result{}, errors.New(errors.ErrCodeLimitedToRoot, "dockable %q cannot leave its window", h.ID())
	}
	if err := c.floater.Float(source, pos); err != nil {
		return Result{}, err
	}
	c.logger.Debug("drag floated", "id", source.PersistentID(), "pos", pos)
	return Result{Outcome: Floated}, nil
}

// Cancel aborts the gesture without modifying any tree.
func (c *Controller) Cancel() {
	if c.resolver.Active() {
		c.logger.Debug("drag cancelled", "id", c.resolver.Source().PersistentID())
	}
	c.resolver.Cancel()
}
