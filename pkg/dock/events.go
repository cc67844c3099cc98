package dock

// EventKind identifies what happened.
type EventKind int

const (
	// EventDocked fires for the source dockable after a dock completes.
	EventDocked EventKind = iota + 1
	// EventUndocked fires after a dockable has been removed from its tree.
	EventUndocked
	// EventLayoutChanged fires once per affected window after a mutation.
	EventLayoutChanged
	// EventUnpinned fires after a dockable has been auto-hidden at an edge.
	EventUnpinned
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventDocked:
		return "docked"
	case EventUndocked:
		return "undocked"
	case EventLayoutChanged:
		return "layoutChanged"
	case EventUnpinned:
		return "unpinned"
	}
	return "unknown"
}

// Event is delivered synchronously to observers after a mutation completes.
// Dockable is set for docked, undocked and unpinned events. Window is set for
// layoutChanged and names the dockable's window for the others (nil once
// undocked).
type Event struct {
	Kind     EventKind
	Dockable Dockable
	Window   *Window
}

// observers is an ordered observer list. Delivery follows registration
// order; removing an observer during delivery takes effect on the next event.
type observers struct {
	subs []subscription
	next int
}

type subscription struct {
	id int
	fn func(Event)
}

func (o *observers) add(fn func(Event)) func() {
	o.next++
	id := o.next
	o.subs = append(o.subs, subscription{id: id, fn: fn})
	return func() { o.remove(id) }
}

func (o *observers) remove(id int) {
	for i, s := range o.subs {
		if s.id == id {
			o.subs = append(o.subs[:i:i], o.subs[i+1:]...)
			return
		}
	}
}

func (o *observers) notify(e Event) {
	for _, s := range append([]subscription(nil), o.subs...) {
		s.fn(e)
	}
}

func (o *observers) clear() { o.subs = nil }

func (o *observers) len() int { return len(o.subs) }
