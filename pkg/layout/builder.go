package layout

import (
	"github.com/matzehuels/dockyard/pkg/dock"
	"github.com/matzehuels/dockyard/pkg/errors"
)

// Builder assembles a Description by persistent ID without a live window,
// for hosts that ship a default layout. Dock calls follow the same rules as
// the live mutator: CENTER joins the target as a tab and the edges split it
// with the proportion describing the new panel.
type Builder struct {
	root       *Node
	convention dock.ProportionConvention
}

// NewBuilder starts a layout whose root holds firstID.
func NewBuilder(firstID string) (*Builder, error) {
	if err := errors.ValidatePersistentID(firstID); err != nil {
		return nil, err
	}
	return &Builder{root: Simple(firstID)}, nil
}

// WithConvention sets how edge proportions are stored.
func (b *Builder) WithConvention(c dock.ProportionConvention) *Builder {
	b.convention = c
	return b
}

// Dock places source relative to target, which must already be in the
// layout.
func (b *Builder) Dock(source, target string, region dock.Region, proportion float64) error {
	if err := b.checkSource(source, region, proportion); err != nil {
		return err
	}
	slot := b.find(&b.root, target)
	if slot == nil {
		return errors.New(errors.ErrCodeUnknownIdentifier, "target %q is not in the layout", target)
	}
	b.apply(slot, source, region, proportion)
	return nil
}

// DockToRoot places id at the root. An edge region splits the whole layout;
// CENTER joins the root's child as a tab when that child is not a split.
func (b *Builder) DockToRoot(id string, region dock.Region, proportion float64) error {
	if err := b.checkSource(id, region, proportion); err != nil {
		return err
	}
	if region == dock.Center && b.root.Kind == KindSplit {
		return errors.New(errors.ErrCodeInvalidRegion, "cannot dock as a tab onto a split")
	}
	b.apply(&b.root, id, region, proportion)
	return nil
}

// Build returns the finished description.
func (b *Builder) Build() Description {
	return Description{Version: FormatVersion, Root: b.root.clone()}
}

func (b *Builder) checkSource(id string, region dock.Region, proportion float64) error {
	if err := errors.ValidatePersistentID(id); err != nil {
		return err
	}
	if (Description{Root: b.root}).contains(id) {
		return errors.New(errors.ErrCodeDuplicateIdentifier, "dockable %q is already in the layout", id)
	}
	if !region.Valid() {
		return errors.New(errors.ErrCodeInvalidRegion, "invalid region %d", int(region))
	}
	if region.IsEdge() && !(proportion > 0 && proportion < 1) {
		return errors.New(errors.ErrCodeInvalidProportion, "proportion %v must be within (0,1)", proportion)
	}
	return nil
}

// apply docks id at the node in slot.
func (b *Builder) apply(slot **Node, id string, region dock.Region, proportion float64) {
	target := *slot
	if region == dock.Center {
		if target.Kind == KindTabbed {
			target.Tabs = append(target.Tabs, id)
			target.Selected = len(target.Tabs) - 1
			return
		}
		*slot = Tabbed(1, target.ID, id)
		return
	}

	leaf := Simple(id)
	p := b.convention.Stored(region, proportion)
	if region.NewPanelSecond() {
		*slot = Split(region.Orientation(), p, target, leaf)
	} else {
		*slot = Split(region.Orientation(), p, leaf, target)
	}
}

// find returns the slot holding the Simple or Tabbed node that contains id.
func (b *Builder) find(slot **Node, id string) **Node {
	n := *slot
	switch n.Kind {
	case KindSimple:
		if n.ID == id {
			return slot
		}
	case KindTabbed:
		for _, t := range n.Tabs {
			if t == id {
				return slot
			}
		}
	case KindSplit:
		if s := b.find(&n.Left, id); s != nil {
			return s
		}
		return b.find(&n.Right, id)
	}
	return nil
}

func (d Description) contains(id string) bool {
	for _, x := range d.IDs() {
		if x == id {
			return true
		}
	}
	return false
}
