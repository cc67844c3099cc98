package layout

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/dockyard/pkg/dock"
	"github.com/matzehuels/dockyard/pkg/errors"
)

func TestJSONRoundTrip(t *testing.T) {
	d := Description{
		Version: FormatVersion,
		Name:    "work",
		Root: Split(dock.Horizontal, 0.123456789,
			Simple("tree"),
			Tabbed(1, "editor", "preview")),
		Properties: map[string]map[string]string{"tree": {"expanded": "src"}},
	}

	var buf bytes.Buffer
	if err := WriteJSON(d, &buf); err != nil {
		t.Fatal(err)
	}
	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if !Equivalent(got.Root, d.Root, 0) {
		t.Errorf("root = %+v", got.Root)
	}
	if got.Name != "work" || got.Properties["tree"]["expanded"] != "src" {
		t.Errorf("got %+v", got)
	}
}

func TestReadJSONErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `{"version": 1, "root": `},
		{"future version", `{"version": 99}`},
		{"unknown kind", `{"version": 1, "root": {"kind": "grid"}}`},
		{"missing split side", `{"version": 1, "root": {"kind": "split", "orientation": "H", "proportion": 0.5, "left": {"kind": "simple", "id": "a"}}}`},
		{"bad orientation", `{"version": 1, "root": {"kind": "split", "orientation": "X", "proportion": 0.5, "left": {"kind": "simple", "id": "a"}, "right": {"kind": "simple", "id": "b"}}}`},
		{"empty tabs", `{"version": 1, "root": {"kind": "tabbed", "tabs": []}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.input))
			if !errors.Is(err, errors.ErrCodeInvalidLayout) {
				t.Errorf("err = %v, want INVALID_LAYOUT", err)
			}
		})
	}
}

func TestReadJSONEmptyLayout(t *testing.T) {
	d, err := ReadJSON(strings.NewReader(`{"version": 1}`))
	if err != nil {
		t.Fatal(err)
	}
	if d.Root != nil {
		t.Errorf("Root = %+v, want nil", d.Root)
	}
}

func TestExportImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	d := Description{Root: Split(dock.Vertical, 0.25, Simple("a"), Simple("b"))}
	if err := ExportJSON(d, path); err != nil {
		t.Fatal(err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Version != FormatVersion || !Equivalent(got.Root, d.Root, 0) {
		t.Errorf("imported %+v", got)
	}
	if _, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ImportJSON(missing) succeeded")
	}
}

func TestDOT(t *testing.T) {
	d := Description{
		Name: "main",
		Root: Split(dock.Vertical, 0.7, Tabbed(1, "editor", "preview"), Simple("console")),
	}
	dot := ToDOT(d)
	for _, want := range []string{
		`n0 [label="main", shape=doubleoctagon];`,
		`n1 [label="V 0.70", shape=ellipse`,
		`n2 [label="editor | *preview"`,
		`n3 [label="console"];`,
		`n1 -> n2 [label="top"];`,
		`n1 -> n3 [label="bottom"];`,
		`n0 -> n1;`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 120.40 80.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 120.40 80.00" width="120" height="80"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox = %s", got)
	}
	if plain := []byte("<svg></svg>"); string(normalizeViewBox(plain)) != "<svg></svg>" {
		t.Error("svg without viewBox changed")
	}
}

func TestExampleLayoutFiles(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "..", "examples", "layouts", "*.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no example layouts found")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			d, err := ImportJSON(path)
			if err != nil {
				t.Fatalf("ImportJSON: %v", err)
			}
			if len(d.IDs()) == 0 {
				t.Error("example layout is empty")
			}
		})
	}
}
