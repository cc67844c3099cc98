package layout

import (
	"github.com/matzehuels/dockyard/pkg/dock"
	"github.com/matzehuels/dockyard/pkg/observability"
)

// Capture walks the tree below root and returns its description. root is
// usually a window's Root node; passing any other node captures that subtree
// as if it were a Root's child. Capture does not modify the tree.
func Capture(root *dock.Node) Description {
	d := Description{Version: FormatVersion}
	if root == nil {
		return d
	}
	if root.Kind() == dock.KindRoot {
		d.Root = captureNode(root.Child())
	} else {
		d.Root = captureNode(root)
	}

	for _, h := range root.Handles() {
		holder, ok := h.Dockable().(dock.PropertyHolder)
		if !ok {
			continue
		}
		props := holder.Properties()
		if len(props) == 0 {
			continue
		}
		if d.Properties == nil {
			d.Properties = make(map[string]map[string]string)
		}
		d.Properties[h.ID()] = props
	}
	observability.Layout().OnCapture(len(root.Handles()))
	return d
}

// CaptureWindow captures w's tree and names the description after the window.
func CaptureWindow(w *dock.Window) Description {
	d := Capture(w.Root())
	d.Name = w.Title()
	return d
}

func captureNode(n *dock.Node) *Node {
	if n == nil {
		return nil
	}
	switch n.Kind() {
	case dock.KindSimple:
		return Simple(n.Handle().ID())
	case dock.KindTabbed:
		tabs := n.Tabs()
		ids := make([]string, len(tabs))
		for i, h := range tabs {
			ids[i] = h.ID()
		}
		return Tabbed(n.Selected(), ids...)
	case dock.KindSplit:
		return Split(n.Orientation(), n.Proportion(), captureNode(n.Left()), captureNode(n.Right()))
	}
	return nil
}
