package layout

import (
	"maps"
	"math"
	"slices"

	"github.com/matzehuels/dockyard/pkg/dock"
	"github.com/matzehuels/dockyard/pkg/errors"
)

// FormatVersion is written into every Description.
const FormatVersion = 1

// Kind tags a Node.
type Kind string

const (
	KindSimple Kind = "simple"
	KindTabbed Kind = "tabbed"
	KindSplit  Kind = "split"
)

// Description is the serializable shape of one window's tree. It stands for
// the Root node: Root is its child and is nil for an empty window.
type Description struct {
	Version int    `json:"version"`
	Name    string `json:"name,omitempty"`
	Root    *Node  `json:"root,omitempty"`
	// Properties holds the extra state of dockables implementing
	// dock.PropertyHolder, keyed by persistent ID.
	Properties map[string]map[string]string `json:"properties,omitempty"`
}

// Node is one node of a Description. Which fields are set depends on Kind:
//
//   - simple: ID
//   - tabbed: Tabs, Selected
//   - split: Orientation, Proportion, Left, Right
type Node struct {
	Kind        Kind     `json:"kind"`
	ID          string   `json:"id,omitempty"`
	Tabs        []string `json:"tabs,omitempty"`
	Selected    int      `json:"selected,omitempty"`
	Orientation string   `json:"orientation,omitempty"`
	Proportion  float64  `json:"proportion,omitempty"`
	Left        *Node    `json:"left,omitempty"`
	Right       *Node    `json:"right,omitempty"`
}

// Simple returns a leaf node.
func Simple(id string) *Node { return &Node{Kind: KindSimple, ID: id} }

// Tabbed returns a tab group with the given selected index.
func Tabbed(selected int, ids ...string) *Node {
	return &Node{Kind: KindTabbed, Tabs: ids, Selected: selected}
}

// Split returns a split node. proportion is the share of left.
func Split(o dock.Orientation, proportion float64, left, right *Node) *Node {
	return &Node{Kind: KindSplit, Orientation: o.String(), Proportion: proportion, Left: left, Right: right}
}

// IDs returns every persistent ID in the layout in tree order.
func (d Description) IDs() []string {
	var out []string
	d.Root.walk(func(n *Node) {
		switch n.Kind {
		case KindSimple:
			out = append(out, n.ID)
		case KindTabbed:
			out = append(out, n.Tabs...)
		}
	})
	return out
}

// Validate checks that the description is a well-formed tree: known kinds,
// non-empty tab groups with an in-range selection, splits with two sides and
// a proportion within (0,1), and every ID valid and used once.
func (d Description) Validate() error {
	seen := make(map[string]bool)
	use := func(id string) error {
		if err := errors.ValidatePersistentID(id); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidLayout, err, "invalid dockable ID")
		}
		if seen[id] {
			return errors.New(errors.ErrCodeInvalidLayout, "dockable %q appears more than once", id)
		}
		seen[id] = true
		return nil
	}

	var check func(n *Node) error
	check = func(n *Node) error {
		if n == nil {
			return errors.New(errors.ErrCodeInvalidLayout, "missing node")
		}
		switch n.Kind {
		case KindSimple:
			return use(n.ID)
		case KindTabbed:
			if len(n.Tabs) == 0 {
				return errors.New(errors.ErrCodeInvalidLayout, "tab group without tabs")
			}
			if n.Selected < 0 || n.Selected >= len(n.Tabs) {
				return errors.New(errors.ErrCodeInvalidLayout, "selected tab %d out of range for %d tabs", n.Selected, len(n.Tabs))
			}
			for _, id := range n.Tabs {
				if err := use(id); err != nil {
					return err
				}
			}
			return nil
		case KindSplit:
			if _, err := dock.ParseOrientation(n.Orientation); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidLayout, err, "split")
			}
			if !(n.Proportion > 0 && n.Proportion < 1) {
				return errors.New(errors.ErrCodeInvalidLayout, "split proportion %v must be within (0,1)", n.Proportion)
			}
			if err := check(n.Left); err != nil {
				return err
			}
			return check(n.Right)
		}
		return errors.New(errors.ErrCodeInvalidLayout, "unknown node kind %q", n.Kind)
	}

	if d.Root == nil {
		return nil
	}
	return check(d.Root)
}

// Equivalent reports whether a and b have the same structure, ID placement
// and tab order and selection, with split proportions equal within tol.
func Equivalent(a, b *Node, tol float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindSimple:
		return a.ID == b.ID
	case KindTabbed:
		return a.Selected == b.Selected && slices.Equal(a.Tabs, b.Tabs)
	case KindSplit:
		return a.Orientation == b.Orientation &&
			math.Abs(a.Proportion-b.Proportion) <= tol &&
			Equivalent(a.Left, b.Left, tol) &&
			Equivalent(a.Right, b.Right, tol)
	}
	return false
}

// Clone returns a deep copy of d.
func (d Description) Clone() Description {
	out := d
	out.Root = d.Root.clone()
	if d.Properties != nil {
		out.Properties = make(map[string]map[string]string, len(d.Properties))
		for id, props := range d.Properties {
			out.Properties[id] = maps.Clone(props)
		}
	}
	return out
}

func (n *Node) clone() *Node {
	if n == nil {
		return nil
	}
	c := *n
	c.Tabs = slices.Clone(n.Tabs)
	c.Left = n.Left.clone()
	c.Right = n.Right.clone()
	return &c
}

func (n *Node) walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	n.Left.walk(fn)
	n.Right.walk(fn)
}

// first returns the first ID of the subtree in tree order.
func (n *Node) first() string {
	switch n.Kind {
	case KindSimple:
		return n.ID
	case KindTabbed:
		return n.Tabs[0]
	}
	return n.Left.first()
}
