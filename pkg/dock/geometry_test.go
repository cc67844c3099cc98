package dock

import (
	"testing"

	"github.com/matzehuels/dockyard/pkg/geom"
)

func TestLayoutBounds(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		build func(t *testing.T, f *fixture)
		want  map[string]geom.Rect
	}{
		{
			name:  "Simple",
			build: func(t *testing.T, f *fixture) {},
			want:  map[string]geom.Rect{"one": geom.R(0, 0, 100, 50)},
		},
		{
			name: "SplitEast",
			build: func(t *testing.T, f *fixture) {
				f.mustDock(t, "two", "one", East, 0.3)
			},
			want: map[string]geom.Rect{
				"one": geom.R(0, 0, 70, 50),
				"two": geom.R(70, 0, 30, 50),
			},
		},
		{
			name: "SplitSouthWithDivider",
			opts: Options{DividerSize: 2},
			build: func(t *testing.T, f *fixture) {
				f.mustDock(t, "two", "one", South, 0.5)
			},
			want: map[string]geom.Rect{
				"one": geom.R(0, 0, 100, 24),
				"two": geom.R(0, 26, 100, 24),
			},
		},
		{
			name: "TabHeader",
			opts: Options{TabHeaderHeight: 3},
			build: func(t *testing.T, f *fixture) {
				f.mustDock(t, "two", "one", Center, 0)
			},
			want: map[string]geom.Rect{
				"one": geom.R(0, 3, 100, 47),
				"two": geom.R(0, 3, 100, 47),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.opts, "one", "two")
			f.mustDockRoot(t, "one")
			tt.build(t, f)
			for id, want := range tt.want {
				h, _ := f.s.HandleByID(id)
				if got := h.Bounds(); got != want {
					t.Errorf("%s bounds = %v, want %v", id, got, want)
				}
			}
		})
	}
}

func TestUndockedHandleHasNoBounds(t *testing.T) {
	f := scenarioA(t, Options{})
	h, _ := f.s.Handle(f.p("two"))
	if h.Bounds().Empty() {
		t.Fatal("docked handle has empty bounds")
	}
	if err := f.s.Undock(f.p("two")); err != nil {
		t.Fatal(err)
	}
	if !h.Bounds().Empty() {
		t.Errorf("undocked handle bounds = %v, want empty", h.Bounds())
	}
}

func TestRelayoutIsCoalesced(t *testing.T) {
	s := New(Options{})
	w := s.NewWindow("main", geom.R(0, 0, 100, 50))
	for _, id := range []string{"a", "b", "c"} {
		p := NewPanel(id, id)
		if err := s.Register(p); err != nil {
			t.Fatal(err)
		}
		if err := s.DockToWindow(p, w, Center, 0); err != nil {
			t.Fatal(err)
		}
	}
	if got := s.Queue().Len(); got != 1 {
		t.Fatalf("queued %d relayouts, want 1", got)
	}
	if ran := s.Flush(); ran != 1 {
		t.Errorf("Flush ran %d tasks, want 1", ran)
	}
	if got := w.LayoutVersion(); got != 1 {
		t.Errorf("LayoutVersion = %d, want 1", got)
	}

	// A query after invalidation recomputes lazily; the queued task then
	// finds nothing to do.
	if err := s.SetWindowBounds(w, geom.R(0, 0, 60, 60)); err != nil {
		t.Fatal(err)
	}
	if got := w.Root().Bounds(); got != geom.R(0, 0, 60, 60) {
		t.Errorf("root bounds = %v, want 0,0 60x60", got)
	}
	s.Flush()
	if got := w.LayoutVersion(); got != 2 {
		t.Errorf("LayoutVersion = %d, want 2", got)
	}
}

func TestHitTesting(t *testing.T) {
	f := newFixture(t, Options{}, "one", "two", "three")
	f.mustDockRoot(t, "one")
	f.mustDock(t, "two", "one", East, 0.5)
	f.mustDock(t, "three", "two", Center, 0)

	tests := []struct {
		name     string
		pos      geom.Point
		wantKind Kind
		wantID   string
	}{
		{"LeftLeaf", geom.Pt(10, 10), KindSimple, "one"},
		{"RightTabs", geom.Pt(75, 40), KindTabbed, "three"},
		{"Edge", geom.Pt(50, 0), KindTabbed, "three"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := f.s.FindNodeAtScreenPos(tt.pos)
			if n == nil {
				t.Fatalf("FindNodeAtScreenPos(%v) = nil", tt.pos)
			}
			if n.Kind() != tt.wantKind {
				t.Errorf("kind = %v, want %v", n.Kind(), tt.wantKind)
			}
			d := f.s.FindDockableAtScreenPos(tt.pos)
			if d == nil || d.PersistentID() != tt.wantID {
				t.Errorf("FindDockableAtScreenPos(%v) = %v, want %s", tt.pos, d, tt.wantID)
			}
		})
	}

	if n := f.s.FindNodeAtScreenPos(geom.Pt(100, 10)); n != nil {
		t.Errorf("point outside window hit %v", n)
	}
	if d := f.s.FindDockableAtScreenPos(geom.Pt(-1, -1)); d != nil {
		t.Errorf("point outside window found %v", d)
	}
}

func TestHitTestingEmptyRoot(t *testing.T) {
	f := newFixture(t, Options{})
	n := f.s.FindNodeAtScreenPos(geom.Pt(5, 5))
	if n == nil || n.Kind() != KindRoot {
		t.Fatalf("FindNodeAtScreenPos = %v, want root", n)
	}
	if d := f.s.FindDockableAtScreenPos(geom.Pt(5, 5)); d != nil {
		t.Errorf("empty root found dockable %v", d)
	}
}
