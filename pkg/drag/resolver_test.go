package drag

import (
	"testing"

	"github.com/matzehuels/dockyard/pkg/dock"
	"github.com/matzehuels/dockyard/pkg/errors"
	"github.com/matzehuels/dockyard/pkg/geom"
)

// world is a 200x100 window holding one | two side by side, with "three"
// registered but undocked.
type world struct {
	s      *dock.Space
	w      *dock.Window
	panels map[string]*dock.Panel
}

func newWorld(t *testing.T, ids ...string) *world {
	t.Helper()
	wd := &world{s: dock.New(dock.Options{}), panels: make(map[string]*dock.Panel)}
	wd.w = wd.s.NewWindow("main", geom.R(0, 0, 200, 100))
	for _, id := range ids {
		p := dock.NewPanel(id, id)
		if err := wd.s.Register(p); err != nil {
			t.Fatalf("Register(%q): %v", id, err)
		}
		wd.panels[id] = p
	}
	return wd
}

func sideBySide(t *testing.T) *world {
	t.Helper()
	wd := newWorld(t, "one", "two", "three")
	if err := wd.s.DockToWindow(wd.panels["one"], wd.w, dock.Center, 0.5); err != nil {
		t.Fatal(err)
	}
	if err := wd.s.Dock(wd.panels["two"], wd.panels["one"], dock.East, 0.5); err != nil {
		t.Fatal(err)
	}
	return wd
}

func (wd *world) nodeOf(id string) *dock.Node {
	h, _ := wd.s.HandleByID(id)
	return h.Node()
}

func TestResolverUpdate(t *testing.T) {
	tests := []struct {
		name     string
		pos      geom.Point
		ok       bool
		root     bool
		region   dock.Region
		targetID string
	}{
		{name: "LocalCenter", pos: geom.Pt(50, 50), ok: true, region: dock.Center, targetID: "one"},
		{name: "LocalNorth", pos: geom.Pt(50, 38), ok: true, region: dock.North, targetID: "one"},
		{name: "LocalWestOfTwo", pos: geom.Pt(137, 50), ok: true, region: dock.West, targetID: "two"},
		{name: "RootWest", pos: geom.Pt(5, 50), ok: true, root: true, region: dock.West},
		{name: "RootSouth", pos: geom.Pt(100, 95), ok: true, root: true, region: dock.South},
		{name: "NoZone", pos: geom.Pt(20, 20)},
		{name: "OutsideWindows", pos: geom.Pt(500, 500)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wd := sideBySide(t)
			r := NewResolver(wd.s, testConfig)
			if err := r.Begin(wd.panels["three"]); err != nil {
				t.Fatalf("Begin: %v", err)
			}
			got, ok := r.Update(tt.pos)
			if ok != tt.ok {
				t.Fatalf("Update ok = %v, want %v (candidate %+v)", ok, tt.ok, got)
			}
			if again, againOK := r.Resolve(); again != got || againOK != ok {
				t.Errorf("Resolve = %+v, %v; Update returned %+v, %v", again, againOK, got, ok)
			}
			if !ok {
				if r.IsDockingToRoot() || r.IsDockingToDockable() {
					t.Error("predicates true without candidate")
				}
				return
			}
			if got.Region != tt.region || got.Root != tt.root {
				t.Errorf("candidate = %s root=%v, want %s root=%v", got.Region, got.Root, tt.region, tt.root)
			}
			if r.IsDockingToRoot() != tt.root || r.IsDockingToDockable() == tt.root {
				t.Errorf("predicates root=%v dockable=%v", r.IsDockingToRoot(), r.IsDockingToDockable())
			}
			want := wd.w.Root()
			if !tt.root {
				want = wd.nodeOf(tt.targetID)
			}
			if got.Node != want || got.Window != wd.w {
				t.Errorf("candidate node = %v, want %v", got.Node, want)
			}
		})
	}
}

func TestResolverTieBreak(t *testing.T) {
	cfg := Config{HandleSize: 10, HandleMargin: 0}

	t.Run("RootBeatsLocal", func(t *testing.T) {
		wd := newWorld(t, "one", "two")
		if err := wd.s.SetWindowBounds(wd.w, geom.R(0, 0, 100, 20)); err != nil {
			t.Fatal(err)
		}
		if err := wd.s.DockToWindow(wd.panels["one"], wd.w, dock.Center, 0.5); err != nil {
			t.Fatal(err)
		}
		r := NewResolver(wd.s, cfg)
		if err := r.Begin(wd.panels["two"]); err != nil {
			t.Fatal(err)
		}
		// Each point lies in the root North zone and in a local zone.
		for _, pos := range []geom.Point{geom.Pt(49, 9), geom.Pt(49, 5), geom.Pt(53, 9)} {
			for range 3 {
				c, ok := r.Update(pos)
				if !ok || !c.Root || c.Region != dock.North {
					t.Fatalf("Update(%v) = %s root=%v ok=%v, want root NORTH", pos, c.Region, c.Root, ok)
				}
			}
		}
	})

	t.Run("EdgeOrder", func(t *testing.T) {
		wd := newWorld(t, "one", "two")
		if err := wd.s.SetWindowBounds(wd.w, geom.R(0, 0, 20, 20)); err != nil {
			t.Fatal(err)
		}
		if err := wd.s.DockToWindow(wd.panels["one"], wd.w, dock.Center, 0.5); err != nil {
			t.Fatal(err)
		}
		r := NewResolver(wd.s, cfg)
		if err := r.Begin(wd.panels["two"]); err != nil {
			t.Fatal(err)
		}
		tests := []struct {
			pos  geom.Point
			want dock.Region
		}{
			{geom.Pt(12, 7), dock.North}, // N and E overlap
			{geom.Pt(8, 8), dock.North},  // N and W overlap
			{geom.Pt(12, 12), dock.South},
			{geom.Pt(3, 7), dock.West},
		}
		for _, tt := range tests {
			c, ok := r.Update(tt.pos)
			if !ok || c.Region != tt.want || !c.Root {
				t.Errorf("Update(%v) = %s root=%v ok=%v, want root %s", tt.pos, c.Region, c.Root, ok, tt.want)
			}
		}
	})
}

func TestResolverSourceNode(t *testing.T) {
	wd := newWorld(t, "one")
	if err := wd.s.DockToWindow(wd.panels["one"], wd.w, dock.Center, 0.5); err != nil {
		t.Fatal(err)
	}
	r := NewResolver(wd.s, testConfig)
	if err := r.Begin(wd.panels["one"]); err != nil {
		t.Fatal(err)
	}

	// The only panel gets no local zones and the root counts as vacant.
	if _, ok := r.Update(geom.Pt(50, 50)); ok {
		t.Error("source offered a zone on its own node")
	}
	ov := r.Overlay()
	if ov == nil || ov.LocalZones != nil {
		t.Fatalf("overlay = %+v, want no local zones", ov)
	}
	if len(ov.RootZones) != 1 || ov.RootZones[0].Region != dock.Center {
		t.Errorf("root zones = %v, want a single CENTER", ov.RootZones)
	}
	c, ok := r.Update(geom.Pt(100, 50))
	if !ok || !c.Root || c.Region != dock.Center {
		t.Errorf("Update(center) = %+v ok=%v, want root CENTER", c, ok)
	}
}

func TestResolverLimitToRoot(t *testing.T) {
	wd := sideBySide(t)
	limited := wd.panels["two"]
	limited.Flags.LimitToRoot = true
	other := wd.s.NewWindow("other", geom.R(300, 0, 100, 100))
	if err := wd.s.DockToWindow(wd.panels["three"], other, dock.Center, 0.5); err != nil {
		t.Fatal(err)
	}

	r := NewResolver(wd.s, testConfig)
	if err := r.Begin(limited); err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Update(geom.Pt(350, 50)); ok {
		t.Error("limited dockable offered a target in another window")
	}
	if _, ok := r.Update(geom.Pt(50, 50)); !ok {
		t.Error("limited dockable offered nothing in its own window")
	}
}

func TestResolverOverlayState(t *testing.T) {
	wd := sideBySide(t)
	r := NewResolver(wd.s, testConfig)
	if err := r.Begin(wd.panels["three"]); err != nil {
		t.Fatal(err)
	}
	r.Update(geom.Pt(5, 50))
	ov := r.Overlay()
	if ov == nil || ov.Active == nil || ov.Active.Region != dock.West {
		t.Fatalf("overlay active = %+v, want WEST", ov)
	}
	if want := geom.R(0, 0, 50, 100); ov.Preview != want {
		t.Errorf("preview = %v, want %v", ov.Preview, want)
	}
	if ov.Node != wd.nodeOf("one") {
		t.Errorf("overlay node = %v, want one", ov.Node)
	}

	r.Update(geom.Pt(20, 20))
	if ov.Active != nil || !ov.Preview.Empty() {
		t.Errorf("stale highlight after moving off zones: %+v", ov)
	}
	if got := len(r.Overlays()); got != 1 {
		t.Errorf("Overlays = %d, want 1", got)
	}
}

func TestResolverCancel(t *testing.T) {
	wd := sideBySide(t)
	before := wd.w.Root().String()
	r := NewResolver(wd.s, testConfig)
	if err := r.Begin(wd.panels["two"]); err != nil {
		t.Fatal(err)
	}
	if _, ok := r.Update(geom.Pt(50, 50)); !ok {
		t.Fatal("no candidate before cancel")
	}
	r.Cancel()

	if r.Active() || r.Source() != nil || r.Overlay() != nil {
		t.Error("gesture state survived Cancel")
	}
	if _, ok := r.Resolve(); ok {
		t.Error("candidate survived Cancel")
	}
	if _, ok := r.Update(geom.Pt(50, 50)); ok {
		t.Error("idle resolver produced a candidate")
	}
	if got := wd.w.Root().String(); got != before {
		t.Errorf("Cancel changed the tree: %s -> %s", before, got)
	}
}

func TestResolverBeginUnknown(t *testing.T) {
	wd := newWorld(t)
	r := NewResolver(wd.s, testConfig)
	err := r.Begin(dock.NewPanel("ghost", "Ghost"))
	if !errors.Is(err, errors.ErrCodeNotRegistered) {
		t.Errorf("Begin error = %v, want NOT_REGISTERED", err)
	}
	if r.Active() {
		t.Error("resolver active after failed Begin")
	}
}
