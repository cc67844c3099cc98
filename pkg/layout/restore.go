package layout

import (
	"time"

	"github.com/matzehuels/dockyard/pkg/dock"
	"github.com/matzehuels/dockyard/pkg/errors"
	"github.com/matzehuels/dockyard/pkg/observability"
)

// Report summarizes a Restore.
type Report struct {
	// Skipped lists the IDs in the description that are not registered.
	Skipped []string
	// Restored lists the IDs placed in the window, in tree order.
	Restored []string
	// Deferred counts tasks posted to the Space queue: property application
	// and, for windows without a valid size yet, split reapplication.
	Deferred int
}

// Restore rebuilds w's tree from d by issuing dock calls: the first dockable
// goes to the empty root and every later one docks relative to a dockable
// already placed. Whatever w held before is undocked first.
//
// IDs that are not registered are skipped and the rest of the layout is
// still restored; the returned error is then an *errors.SkippedError (code
// UNKNOWN_IDENTIFIER) listing them alongside a complete Report. Any other
// error is returned before w is touched.
//
// Properties recorded in d are applied through the Space queue after the
// tree is rebuilt. When w has no size yet the split proportions are
// reapplied from the queue as well, once the host has sized the window and
// calls Flush.
func Restore(s *dock.Space, w *dock.Window, d Description) (Report, error) {
	start := time.Now()
	rep, err := restore(s, w, d)
	observability.Layout().OnRestore(len(rep.Restored), len(rep.Skipped), time.Since(start), err)
	return rep, err
}

func restore(s *dock.Space, w *dock.Window, d Description) (Report, error) {
	var rep Report
	if err := d.Validate(); err != nil {
		return rep, err
	}
	if _, err := s.WindowByID(w.ID()); err != nil {
		return rep, err
	}

	pruned, skipped := prune(d.Root, s.Registered)
	rep.Skipped = skipped

	r := &restorer{s: s, w: w}
	for _, id := range (Description{Root: pruned}).IDs() {
		h, _ := s.HandleByID(id)
		if home := h.Home(); h.Dockable().Capabilities().LimitToRoot && home != nil && home != w {
			return Report{}, errors.New(errors.ErrCodeLimitedToRoot, "dockable %q cannot leave its window", id)
		}
		r.ids = append(r.ids, id)
	}

	for _, h := range w.Root().Handles() {
		if err := s.Undock(h.Dockable()); err != nil {
			return rep, err
		}
	}

	if pruned != nil {
		seed := func(d dock.Dockable) error { return s.DockToWindow(d, w, dock.Center, dock.DefaultProportion) }
		if _, err := r.build(pruned, seed); err != nil {
			return rep, err
		}
	}
	rep.Restored = r.ids

	if len(r.splits) > 0 && w.Bounds().Empty() {
		splits := r.splits
		s.Queue().Post(func() {
			for _, sp := range splits {
				if err := s.SetProportion(sp.node, sp.proportion); err != nil {
					s.Logger().Debug("deferred proportion dropped", "window", w.ID(), "err", err)
				}
			}
		})
		rep.Deferred++
	}
	for _, id := range r.ids {
		props, ok := d.Properties[id]
		if !ok {
			continue
		}
		h, _ := s.HandleByID(id)
		holder, ok := h.Dockable().(dock.PropertyHolder)
		if !ok {
			continue
		}
		s.Queue().Post(func() { holder.SetProperties(props) })
		rep.Deferred++
	}

	s.Logger().Debug("restored", "window", w.ID(), "dockables", len(rep.Restored), "skipped", len(rep.Skipped))
	if len(rep.Skipped) > 0 {
		return rep, &errors.SkippedError{IDs: rep.Skipped}
	}
	return rep, nil
}

type restoredSplit struct {
	node       *dock.Node
	proportion float64
}

type restorer struct {
	s      *dock.Space
	w      *dock.Window
	ids    []string
	splits []restoredSplit
}

// build places the subtree n. place docks the subtree's first dockable; the
// rest dock relative to dockables already placed. It returns the node at the
// top of the built subtree.
func (r *restorer) build(n *Node, place func(dock.Dockable) error) (*dock.Node, error) {
	switch n.Kind {
	case KindSimple:
		return r.placeFirst(n.ID, place)

	case KindTabbed:
		top, err := r.placeFirst(n.Tabs[0], place)
		if err != nil {
			return nil, err
		}
		first := top.Handle().Dockable()
		for _, id := range n.Tabs[1:] {
			d, _ := r.s.Lookup(id)
			if err := r.s.Dock(d, first, dock.Center, dock.DefaultProportion); err != nil {
				return nil, err
			}
		}
		sel, _ := r.s.Lookup(n.Tabs[n.Selected])
		if err := r.s.SelectTab(sel); err != nil {
			return nil, err
		}
		h, _ := r.s.Handle(first)
		return h.Node(), nil

	case KindSplit:
		left, err := r.build(n.Left, place)
		if err != nil {
			return nil, err
		}
		o, _ := dock.ParseOrientation(n.Orientation)
		region := dock.East
		if o == dock.Vertical {
			region = dock.South
		}
		if _, err := r.build(n.Right, func(d dock.Dockable) error {
			return r.s.DockToNode(d, left, region, dock.DefaultProportion)
		}); err != nil {
			return nil, err
		}
		split := left.Parent()
		if err := r.s.SetProportion(split, n.Proportion); err != nil {
			return nil, err
		}
		r.splits = append(r.splits, restoredSplit{node: split, proportion: n.Proportion})
		return split, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidLayout, "unknown node kind %q", n.Kind)
}

func (r *restorer) placeFirst(id string, place func(dock.Dockable) error) (*dock.Node, error) {
	d, err := r.s.Lookup(id)
	if err != nil {
		return nil, err
	}
	if err := place(d); err != nil {
		return nil, err
	}
	h, _ := r.s.Handle(d)
	return h.Node(), nil
}

// prune drops unknown IDs from n. Emptied tab groups and split sides
// collapse the way an undock would. It returns the pruned copy and the
// skipped IDs in tree order.
func prune(n *Node, known func(string) bool) (*Node, []string) {
	var skipped []string
	var walk func(n *Node) *Node
	walk = func(n *Node) *Node {
		if n == nil {
			return nil
		}
		switch n.Kind {
		case KindSimple:
			if !known(n.ID) {
				skipped = append(skipped, n.ID)
				return nil
			}
			return Simple(n.ID)
		case KindTabbed:
			var tabs []string
			selected, before := -1, 0
			for i, id := range n.Tabs {
				if !known(id) {
					skipped = append(skipped, id)
					continue
				}
				if i == n.Selected {
					selected = len(tabs)
				} else if i < n.Selected {
					before++
				}
				tabs = append(tabs, id)
			}
			if len(tabs) == 0 {
				return nil
			}
			if selected < 0 {
				// Same rule as removing the selected tab from a live group.
				selected = min(before, len(tabs)-1)
			}
			return Tabbed(selected, tabs...)
		case KindSplit:
			left, right := walk(n.Left), walk(n.Right)
			switch {
			case left == nil:
				return right
			case right == nil:
				return left
			}
			return &Node{Kind: KindSplit, Orientation: n.Orientation, Proportion: n.Proportion, Left: left, Right: right}
		}
		return nil
	}
	return walk(n), skipped
}
