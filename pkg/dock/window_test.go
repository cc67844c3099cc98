package dock

import (
	"testing"

	"github.com/matzehuels/dockyard/pkg/errors"
	"github.com/matzehuels/dockyard/pkg/geom"
)

func TestMainWindow(t *testing.T) {
	f := newFixture(t, Options{})
	if !f.w.Main() || f.s.MainWindow() != f.w {
		t.Fatal("first window is not the main window")
	}
	w2 := f.s.NewWindow("second", geom.R(0, 0, 10, 10))
	if w2.Main() {
		t.Error("second window became main")
	}
	if f.s.CanDisposeWindow(f.w) {
		t.Error("main window reported disposable")
	}
	if err := f.s.CloseWindow(f.w); !errors.Is(err, errors.ErrCodeInvalidWindow) {
		t.Errorf("CloseWindow(main) error = %v, want INVALID_WINDOW", err)
	}
	if err := f.s.SetMainWindow(w2); err != nil {
		t.Fatalf("SetMainWindow: %v", err)
	}
	if !f.s.CanDisposeWindow(f.w) {
		t.Error("former main window not disposable")
	}
}

func TestCloseWindow(t *testing.T) {
	f := newFixture(t, Options{}, "one", "two", "three")
	f.mustDockRoot(t, "one")
	w2 := f.s.NewWindow("floating", geom.R(200, 200, 40, 40))
	if err := f.s.DockToWindow(f.p("two"), w2, Center, 0); err != nil {
		t.Fatal(err)
	}
	if err := f.s.Dock(f.p("three"), f.p("two"), South, 0.5); err != nil {
		t.Fatal(err)
	}

	var undocked []string
	f.s.Subscribe(func(e Event) {
		if e.Kind == EventUndocked {
			undocked = append(undocked, e.Dockable.PersistentID())
		}
	})
	if err := f.s.CloseWindow(w2); err != nil {
		t.Fatalf("CloseWindow: %v", err)
	}
	if len(undocked) != 2 || undocked[0] != "two" || undocked[1] != "three" {
		t.Errorf("undocked = %v, want [two three]", undocked)
	}
	if !w2.Closed() || len(f.s.Windows()) != 1 {
		t.Errorf("window not removed: closed=%v windows=%d", w2.Closed(), len(f.s.Windows()))
	}
	if _, err := f.s.WindowByID(w2.ID()); !errors.Is(err, errors.ErrCodeInvalidWindow) {
		t.Errorf("WindowByID(closed) error = %v, want INVALID_WINDOW", err)
	}
	if err := f.s.DockToWindow(f.p("two"), w2, Center, 0); !errors.Is(err, errors.ErrCodeInvalidWindow) {
		t.Errorf("DockToWindow(closed) error = %v, want INVALID_WINDOW", err)
	}
	if err := f.s.CloseWindow(w2); !errors.Is(err, errors.ErrCodeInvalidWindow) {
		t.Errorf("second CloseWindow error = %v, want INVALID_WINDOW", err)
	}
	f.mustValidate(t)
}

func TestWindowAt(t *testing.T) {
	s := New(Options{})
	bottom := s.NewWindow("bottom", geom.R(0, 0, 100, 100))
	top := s.NewWindow("top", geom.R(50, 50, 100, 100))

	tests := []struct {
		name  string
		setup func(t *testing.T)
		pos   geom.Point
		want  *Window
	}{
		{"OnlyBottom", nil, geom.Pt(10, 10), bottom},
		{"OverlapPrefersTop", nil, geom.Pt(60, 60), top},
		{"Outside", nil, geom.Pt(500, 500), nil},
		{
			name: "RaisedBottom",
			setup: func(t *testing.T) {
				if err := s.RaiseWindow(bottom); err != nil {
					t.Fatal(err)
				}
			},
			pos:  geom.Pt(60, 60),
			want: bottom,
		},
		{
			name: "HiddenSkipped",
			setup: func(t *testing.T) {
				if err := s.SetWindowVisible(bottom, false); err != nil {
					t.Fatal(err)
				}
			},
			pos:  geom.Pt(60, 60),
			want: top,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup(t)
			}
			if got := s.WindowAt(tt.pos); got != tt.want {
				t.Errorf("WindowAt(%v) = %v, want %v", tt.pos, title(got), title(tt.want))
			}
		})
	}
}

func TestWindowIDsAreUnique(t *testing.T) {
	s := New(Options{})
	seen := make(map[string]bool)
	for range 10 {
		w := s.NewWindow("w", geom.R(0, 0, 1, 1))
		if seen[w.ID()] {
			t.Fatalf("duplicate window ID %s", w.ID())
		}
		seen[w.ID()] = true
		got, err := s.WindowByID(w.ID())
		if err != nil || got != w {
			t.Fatalf("WindowByID(%s) = %v, %v", w.ID(), got, err)
		}
	}
}

func title(w *Window) string {
	if w == nil {
		return "<nil>"
	}
	return w.Title()
}
