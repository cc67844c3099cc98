package drag_test

import (
	"fmt"

	"github.com/matzehuels/dockyard/pkg/dock"
	"github.com/matzehuels/dockyard/pkg/drag"
	"github.com/matzehuels/dockyard/pkg/geom"
)

func ExampleController() {
	s := dock.New(dock.Options{})
	w := s.NewWindow("main", geom.R(0, 0, 200, 100))
	editor := dock.NewPanel("editor", "Editor")
	console := dock.NewPanel("console", "Console")
	_ = s.Register(editor)
	_ = s.Register(console)
	_ = s.DockToWindow(editor, w, dock.Center, dock.DefaultProportion)

	c := drag.NewController(s, drag.Config{HandleSize: 10, HandleMargin: 2}, nil)
	_ = c.OnDragStart(console)
	if cand, ok := c.OnDragUpdate(geom.Pt(100, 95)); ok {
		fmt.Println("candidate:", cand.Region, "root:", cand.Root)
	}
	res, _ := c.OnDragEnd(geom.Pt(100, 95))
	fmt.Println(res.Outcome)
	fmt.Println(w.Root())
	// Output:
	// candidate: SOUTH root: true
	// docked
	// Root(Split(V,0.75,Simple(editor),Simple(console)))
}
