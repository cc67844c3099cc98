package dock

import "maps"

// Style is the display style tag of a dockable.
type Style int

const (
	// StyleDocument is a main content panel (editors, viewers).
	StyleDocument Style = iota
	// StyleTool is an auxiliary tool panel (explorers, consoles).
	StyleTool
)

// String returns "document" or "tool".
func (s Style) String() string {
	if s == StyleTool {
		return "tool"
	}
	return "document"
}

// Capabilities are the behaviour flags a dockable advertises.
type Capabilities struct {
	Closable    bool // may be closed by the user
	Pinnable    bool // may be unpinned to a window edge
	Floatable   bool // may be floated into its own window at drag end
	MinMax      bool // may be maximized over its window
	LimitToRoot bool // may not leave the window it is docked in
}

// Dockable is externally owned content that can be placed in a layout tree.
// Identity is the persistent ID; the engine never compares dockables by
// reference.
type Dockable interface {
	// PersistentID returns the stable unique identifier used by layouts.
	PersistentID() string
	// TabText returns the display text. It must not be empty.
	TabText() string
	// Style returns the display style tag.
	Style() Style
	// Capabilities returns the behaviour flags.
	Capabilities() Capabilities
}

// PropertyHolder is implemented by dockables that persist extra state
// (column order, sizes) alongside the layout.
type PropertyHolder interface {
	Properties() map[string]string
	SetProperties(props map[string]string)
}

// Panel is a plain Dockable implementation for hosts and tests that do not
// need a custom type.
type Panel struct {
	ID    string
	Title string
	Kind  Style
	Flags Capabilities
	Props map[string]string
}

// NewPanel returns a document panel that allows every header action and
// floating.
func NewPanel(id, title string) *Panel {
	return &Panel{
		ID:    id,
		Title: title,
		Flags: Capabilities{Closable: true, Pinnable: true, Floatable: true, MinMax: true},
	}
}

func (p *Panel) PersistentID() string       { return p.ID }
func (p *Panel) TabText() string            { return p.Title }
func (p *Panel) Style() Style               { return p.Kind }
func (p *Panel) Capabilities() Capabilities { return p.Flags }

// Properties returns a copy of the panel's properties.
func (p *Panel) Properties() map[string]string { return maps.Clone(p.Props) }

// SetProperties replaces the panel's properties.
func (p *Panel) SetProperties(props map[string]string) { p.Props = maps.Clone(props) }

var (
	_ Dockable       = (*Panel)(nil)
	_ PropertyHolder = (*Panel)(nil)
)
