package dock

import (
	"io"

	"github.com/charmbracelet/log"
)

// DeregisterPolicy decides what Deregister does with a still-docked dockable.
type DeregisterPolicy int

const (
	// DeregisterRequireUndocked rejects deregistration of a docked dockable
	// with STILL_DOCKED. The window-teardown code is expected to undock first.
	DeregisterRequireUndocked DeregisterPolicy = iota
	// DeregisterAutoUndock undocks the dockable before removing it.
	DeregisterAutoUndock
)

// Default sizes and proportions.
const (
	// DefaultProportion is the share given to a panel docked next to another.
	DefaultProportion = 0.5
	// DefaultRootProportion is the share given to a panel docked at a window edge.
	DefaultRootProportion = 0.25
)

// Options configures a Space. The zero value is usable.
type Options struct {
	// Logger receives debug logs for every mutation. Nil discards them.
	Logger *log.Logger
	// Convention selects how dock proportions are stored.
	Convention ProportionConvention
	// Deregister selects the deregistration policy for docked dockables.
	Deregister DeregisterPolicy
	// DividerSize is the gap between the two sides of a split.
	DividerSize int
	// TabHeaderHeight is reserved at the top of Tabbed nodes for the tab strip.
	TabHeaderHeight int
}

// Space is a docking space: the registry, windows, trees, observers and task
// queue of one host application. It is the explicit context passed to every
// docking operation.
//
// The zero value is not usable; use New.
type Space struct {
	opts   Options
	logger *log.Logger
	arena  *arena

	handles map[string]*Handle
	order   []string

	windows []*Window // z-order, bottom first
	main    *Window

	observers observers
	queue     Queue
}

// New creates an empty Space.
func New(opts Options) *Space {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Space{
		opts:    opts,
		logger:  logger,
		arena:   newArena(),
		handles: make(map[string]*Handle),
	}
}

// Options returns the options the Space was created with.
func (s *Space) Options() Options { return s.opts }

// Logger returns the Space's logger (never nil).
func (s *Space) Logger() *log.Logger { return s.logger }

// Queue returns the Space's deferred task queue.
func (s *Space) Queue() *Queue { return &s.queue }

// Flush runs every pending deferred task and returns how many ran.
func (s *Space) Flush() int { return s.queue.Drain() }

// Subscribe registers fn for every event in the Space and returns a function
// that removes it. Observers run synchronously in registration order.
func (s *Space) Subscribe(fn func(Event)) (cancel func()) {
	return s.observers.add(fn)
}

// Watch registers fn for the docked and undocked events of one dockable. The
// observer is owned by the dockable's handle and is detached on Deregister.
func (s *Space) Watch(d Dockable, fn func(Event)) (cancel func(), err error) {
	h, err := s.handleFor(d)
	if err != nil {
		return nil, err
	}
	return h.observers.add(fn), nil
}

func (s *Space) emitDockable(kind EventKind, h *Handle) {
	e := Event{Kind: kind, Dockable: h.dockable, Window: h.Home()}
	s.observers.notify(e)
	h.observers.notify(e)
}

func (s *Space) emitLayout(windows ...*Window) {
	seen := make(map[*Window]bool, len(windows))
	for _, w := range windows {
		if w == nil || w.closed || seen[w] {
			continue
		}
		seen[w] = true
		s.observers.notify(Event{Kind: EventLayoutChanged, Window: w})
	}
}
