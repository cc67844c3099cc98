package layout

import (
	"bytes"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dockyard/pkg/dock"
	"github.com/matzehuels/dockyard/pkg/errors"
	"github.com/matzehuels/dockyard/pkg/geom"
)

// newSpace returns a Space with one 200x100 window and a panel per id.
func newSpace(t *testing.T, ids ...string) (*dock.Space, *dock.Window) {
	t.Helper()
	s := dock.New(dock.Options{})
	w := s.NewWindow("main", geom.R(0, 0, 200, 100))
	for _, id := range ids {
		if err := s.Register(dock.NewPanel(id, id)); err != nil {
			t.Fatalf("Register(%q): %v", id, err)
		}
	}
	return s, w
}

func lookup(t *testing.T, s *dock.Space, id string) dock.Dockable {
	t.Helper()
	d, err := s.Lookup(id)
	if err != nil {
		t.Fatalf("Lookup(%q): %v", id, err)
	}
	return d
}

// sample builds Split(H,0.30,tree,Split(V,0.70,Tabbed([editor,*preview]),console)).
func sample(t *testing.T) (*dock.Space, *dock.Window) {
	t.Helper()
	s, w := newSpace(t, "tree", "editor", "preview", "console")
	steps := []struct {
		src, dst string
		region   dock.Region
		p        float64
	}{
		{"editor", "tree", dock.East, 0.7},
		{"preview", "editor", dock.Center, 0.5},
		{"console", "editor", dock.South, 0.3},
	}
	if err := s.DockToWindow(lookup(t, s, "tree"), w, dock.Center, dock.DefaultProportion); err != nil {
		t.Fatal(err)
	}
	for _, st := range steps {
		if err := s.Dock(lookup(t, s, st.src), lookup(t, s, st.dst), st.region, st.p); err != nil {
			t.Fatalf("Dock(%s, %s, %s): %v", st.src, st.dst, st.region, err)
		}
	}
	return s, w
}

func TestCapture(t *testing.T) {
	_, w := sample(t)
	d := CaptureWindow(w)

	want := Split(dock.Horizontal, 0.3,
		Simple("tree"),
		Split(dock.Vertical, 0.7, Tabbed(1, "editor", "preview"), Simple("console")))
	if !Equivalent(d.Root, want, 1e-9) {
		t.Errorf("Capture = %s, want %s", ToDOT(d), ToDOT(Description{Root: want}))
	}
	if d.Name != "main" {
		t.Errorf("Name = %q, want main", d.Name)
	}
	if got := d.IDs(); !slices.Equal(got, []string{"tree", "editor", "preview", "console"}) {
		t.Errorf("IDs = %v", got)
	}
}

func TestCaptureEmptyWindow(t *testing.T) {
	_, w := newSpace(t)
	d := CaptureWindow(w)
	if d.Root != nil {
		t.Errorf("Root = %+v, want nil", d.Root)
	}
	if err := d.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	_, w := sample(t)
	d := CaptureWindow(w)

	s2, w2 := newSpace(t, d.IDs()...)
	rep, err := Restore(s2, w2, d)
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if len(rep.Skipped) != 0 || len(rep.Restored) != 4 {
		t.Errorf("Report = %+v", rep)
	}
	if err := s2.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	got := Capture(w2.Root())
	if !Equivalent(got.Root, d.Root, 1e-9) {
		t.Errorf("round trip:\n got  %s\n want %s", w2.Root(), w.Root())
	}
}

func TestRestoreReplacesWindowContents(t *testing.T) {
	s, w := sample(t)
	d := Description{Root: Split(dock.Vertical, 0.4, Simple("console"), Simple("tree"))}

	if _, err := Restore(s, w, d); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	if got, want := w.Root().String(), "Root(Split(V,0.40,Simple(console),Simple(tree)))"; got != want {
		t.Errorf("tree = %s, want %s", got, want)
	}
	for _, id := range []string{"editor", "preview"} {
		if s.IsDocked(lookup(t, s, id)) {
			t.Errorf("%s still docked", id)
		}
	}
	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestRestoreSkipsUnknownIDs(t *testing.T) {
	tests := []struct {
		name    string
		root    *Node
		skipped []string
		want    string
	}{
		{
			name:    "split side",
			root:    Split(dock.Horizontal, 0.3, Simple("ghost"), Simple("a")),
			skipped: []string{"ghost"},
			want:    "Root(Simple(a))",
		},
		{
			name:    "selected tab",
			root:    Tabbed(2, "a", "b", "ghost"),
			skipped: []string{"ghost"},
			want:    "Root(Tabbed([a,*b]))",
		},
		{
			name:    "tab group reduced to one",
			root:    Split(dock.Vertical, 0.6, Tabbed(0, "ghost", "a"), Simple("b")),
			skipped: []string{"ghost"},
			want:    "Root(Split(V,0.60,Simple(a),Simple(b)))",
		},
		{
			name:    "everything unknown",
			root:    Split(dock.Vertical, 0.6, Simple("x"), Tabbed(0, "y", "z")),
			skipped: []string{"x", "y", "z"},
			want:    "Root()",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, w := newSpace(t, "a", "b")
			rep, err := Restore(s, w, Description{Root: tt.root})
			if !errors.Is(err, errors.ErrCodeUnknownIdentifier) {
				t.Fatalf("err = %v, want UNKNOWN_IDENTIFIER", err)
			}
			var skipped *errors.SkippedError
			if !asSkipped(err, &skipped) || !slices.Equal(skipped.IDs, tt.skipped) {
				t.Errorf("SkippedError = %v, want %v", err, tt.skipped)
			}
			if !slices.Equal(rep.Skipped, tt.skipped) {
				t.Errorf("Report.Skipped = %v, want %v", rep.Skipped, tt.skipped)
			}
			if got := w.Root().String(); got != tt.want {
				t.Errorf("tree = %s, want %s", got, tt.want)
			}
			if err := s.Validate(); err != nil {
				t.Fatal(err)
			}
		})
	}
}

func asSkipped(err error, target **errors.SkippedError) bool {
	se, ok := err.(*errors.SkippedError)
	if ok {
		*target = se
	}
	return ok
}

func TestRestoreRejectsBeforeMutating(t *testing.T) {
	tests := []struct {
		name string
		d    Description
		code errors.Code
	}{
		{"duplicate id", Description{Root: Split(dock.Horizontal, 0.5, Simple("a"), Simple("a"))}, errors.ErrCodeInvalidLayout},
		{"bad proportion", Description{Root: Split(dock.Horizontal, 1, Simple("a"), Simple("b"))}, errors.ErrCodeInvalidLayout},
		{"selection out of range", Description{Root: Tabbed(3, "a", "b")}, errors.ErrCodeInvalidLayout},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, w := newSpace(t, "a", "b")
			if err := s.DockToWindow(lookup(t, s, "b"), w, dock.Center, dock.DefaultProportion); err != nil {
				t.Fatal(err)
			}
			before := w.Root().String()
			_, err := Restore(s, w, tt.d)
			if !errors.Is(err, tt.code) {
				t.Fatalf("err = %v, want %s", err, tt.code)
			}
			if got := w.Root().String(); got != before {
				t.Errorf("tree changed to %s", got)
			}
		})
	}
}

func TestRestoreLimitedToRoot(t *testing.T) {
	s, w := newSpace(t, "a")
	pinned := dock.NewPanel("pinned", "Pinned")
	pinned.Flags.LimitToRoot = true
	if err := s.Register(pinned); err != nil {
		t.Fatal(err)
	}
	other := s.NewWindow("other", geom.R(300, 0, 100, 100))
	if err := s.DockToWindow(pinned, other, dock.Center, dock.DefaultProportion); err != nil {
		t.Fatal(err)
	}
	if err := s.DockToWindow(lookup(t, s, "a"), w, dock.Center, dock.DefaultProportion); err != nil {
		t.Fatal(err)
	}

	_, err := Restore(s, w, Description{Root: Tabbed(0, "a", "pinned")})
	if !errors.Is(err, errors.ErrCodeLimitedToRoot) {
		t.Fatalf("err = %v, want LIMITED_TO_ROOT", err)
	}
	if got := w.Root().String(); got != "Root(Simple(a))" {
		t.Errorf("tree = %s", got)
	}
}

func TestRestoreDefersWithoutBounds(t *testing.T) {
	_, w := sample(t)
	d := CaptureWindow(w)

	s2 := dock.New(dock.Options{})
	w2 := s2.NewWindow("later", geom.Rect{})
	for _, id := range d.IDs() {
		if err := s2.Register(dock.NewPanel(id, id)); err != nil {
			t.Fatal(err)
		}
	}
	rep, err := Restore(s2, w2, d)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Deferred != 1 {
		t.Errorf("Deferred = %d, want 1", rep.Deferred)
	}

	// The host drags a divider before the window is sized; the queued task
	// puts the recorded proportion back.
	if err := s2.SetProportion(w2.Root().Child(), 0.9); err != nil {
		t.Fatal(err)
	}
	if err := s2.SetWindowBounds(w2, geom.R(0, 0, 200, 100)); err != nil {
		t.Fatal(err)
	}
	s2.Flush()
	if got := Capture(w2.Root()); !Equivalent(got.Root, d.Root, 1e-9) {
		t.Errorf("after flush: %s", w2.Root())
	}
}

func TestRestoreLogsStaleDeferredSplit(t *testing.T) {
	var buf bytes.Buffer
	s := dock.New(dock.Options{Logger: log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})})
	w := s.NewWindow("later", geom.Rect{})
	for _, id := range []string{"left", "right"} {
		if err := s.Register(dock.NewPanel(id, id)); err != nil {
			t.Fatal(err)
		}
	}
	b, err := NewBuilder("left")
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Dock("right", "left", dock.East, 0.4); err != nil {
		t.Fatal(err)
	}
	if _, err := Restore(s, w, b.Build()); err != nil {
		t.Fatal(err)
	}

	// Undocking collapses the split the queued task refers to.
	if err := s.Undock(lookup(t, s, "right")); err != nil {
		t.Fatal(err)
	}
	s.Flush()
	if !strings.Contains(buf.String(), "deferred proportion dropped") {
		t.Errorf("stale split not logged:\n%s", buf.String())
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestRestoreAppliesProperties(t *testing.T) {
	s, w := newSpace(t)
	out := dock.NewPanel("output", "Output")
	if err := s.Register(out); err != nil {
		t.Fatal(err)
	}
	d := Description{
		Root:       Simple("output"),
		Properties: map[string]map[string]string{"output": {"columns": "time,level,message"}},
	}

	rep, err := Restore(s, w, d)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Deferred != 1 {
		t.Errorf("Deferred = %d, want 1", rep.Deferred)
	}
	if out.Props != nil {
		t.Errorf("properties applied before Flush: %v", out.Props)
	}
	s.Flush()
	if got := out.Props["columns"]; got != "time,level,message" {
		t.Errorf("columns = %q", got)
	}

	if got := Capture(w.Root()).Properties["output"]["columns"]; got != "time,level,message" {
		t.Errorf("captured columns = %q", got)
	}
}

func TestRandomLayoutsRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	regions := []dock.Region{dock.North, dock.South, dock.East, dock.West, dock.Center}

	for round := range 50 {
		ids := make([]string, 2+rng.IntN(10))
		for i := range ids {
			ids[i] = "p" + strconv.Itoa(i)
		}
		s, w := newSpace(t, ids...)
		if err := s.DockToWindow(lookup(t, s, ids[0]), w, dock.Center, dock.DefaultProportion); err != nil {
			t.Fatal(err)
		}
		for i := 1; i < len(ids); i++ {
			target := ids[rng.IntN(i)]
			region := regions[rng.IntN(len(regions))]
			p := 0.1 + 0.8*rng.Float64()
			if err := s.Dock(lookup(t, s, ids[i]), lookup(t, s, target), region, p); err != nil {
				t.Fatalf("round %d: Dock(%s, %s, %s): %v", round, ids[i], target, region, err)
			}
		}
		d := CaptureWindow(w)

		s2, w2 := newSpace(t, ids...)
		if _, err := Restore(s2, w2, d); err != nil {
			t.Fatalf("round %d: Restore: %v", round, err)
		}
		if err := s2.Validate(); err != nil {
			t.Fatalf("round %d: %v", round, err)
		}
		if got := Capture(w2.Root()); !Equivalent(got.Root, d.Root, 1e-9) {
			t.Fatalf("round %d:\n got  %s\n want %s", round, w2.Root(), w.Root())
		}
	}
}
