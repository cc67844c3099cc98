package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var svgKey = ArtifactKey("digraph layout { n0; }", "svg")

func newTestCache(t *testing.T) (*FileCache, *time.Time) {
	t.Helper()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "render"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	return c, &now
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Put(ctx, svgKey, "ide", []byte("<svg/>"), time.Hour); err != nil {
		t.Errorf("Put error: %v", err)
	}
	if _, hit, err := c.Get(ctx, svgKey); hit || err != nil {
		t.Errorf("Get = hit %v, err %v; NullCache should not store data", hit, err)
	}
	if list, err := c.List(ctx); len(list) != 0 || err != nil {
		t.Errorf("List = %v, %v", list, err)
	}
	if err := c.Delete(ctx, svgKey); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, now := newTestCache(t)
	defer c.Close()

	if _, hit, err := c.Get(ctx, svgKey); hit || err != nil {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Put(ctx, svgKey, "ide", []byte("<svg/>"), time.Hour); err != nil {
		t.Fatalf("Put: %v", err)
	}
	a, hit, err := c.Get(ctx, svgKey)
	if err != nil || !hit {
		t.Fatalf("Get = hit %v, err %v", hit, err)
	}
	if a.Layout != "ide" || a.Format != "svg" || a.Source != svgKey.Source || a.Size != 6 {
		t.Errorf("artifact = %+v", a)
	}
	if string(a.Data) != "<svg/>" {
		t.Errorf("Data = %q", a.Data)
	}
	if !a.CreatedAt.Equal(*now) || !a.ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Errorf("created %v expires %v", a.CreatedAt, a.ExpiresAt)
	}
	if _, err := os.Stat(filepath.Join(c.Dir(), "svg", svgKey.Source+".json")); err != nil {
		t.Errorf("entry file: %v", err)
	}

	if err := c.Delete(ctx, svgKey); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, svgKey); hit {
		t.Error("entry survived Delete")
	}
	if err := c.Delete(ctx, svgKey); err != nil {
		t.Errorf("Delete(missing): %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, now := newTestCache(t)
	short := ArtifactKey("a", "svg")
	forever := ArtifactKey("b", "svg")

	_ = c.Put(ctx, short, "a.json", []byte("a"), time.Minute)
	_ = c.Put(ctx, forever, "b.json", []byte("b"), 0)

	*now = now.Add(time.Hour)
	if _, hit, _ := c.Get(ctx, short); hit {
		t.Error("expired entry was returned")
	}
	if _, err := os.Stat(c.path(short)); !os.IsNotExist(err) {
		t.Error("expired entry was not removed")
	}
	if _, hit, _ := c.Get(ctx, forever); !hit {
		t.Error("entry without ttl expired")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)
	path := c.path(svgKey)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, svgKey); hit || err != nil {
		t.Errorf("Get(corrupt) = hit %v, err %v; want a miss", hit, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt entry was not removed")
	}
}

func TestFileCacheListPruneClear(t *testing.T) {
	ctx := context.Background()
	c, now := newTestCache(t)

	_ = c.Put(ctx, ArtifactKey("old", "svg"), "old.json", []byte("old"), time.Minute)
	*now = now.Add(time.Second)
	_ = c.Put(ctx, ArtifactKey("ide", "svg"), "ide", []byte("<svg>ide</svg>"), time.Hour)
	*now = now.Add(time.Second)
	_ = c.Put(ctx, ArtifactKey("ide", "png"), "ide", []byte("png"), 0)
	if err := os.WriteFile(filepath.Join(c.Dir(), "svg", "broken.json"), []byte("{"), 0600); err != nil {
		t.Fatal(err)
	}

	list, err := c.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var got []string
	for _, a := range list {
		if a.Data != nil {
			t.Errorf("List returned data for %s", a.Layout)
		}
		got = append(got, a.Layout+"/"+a.Format)
	}
	want := []string{"ide/png", "ide/svg", "old.json/svg"}
	if len(got) != len(want) {
		t.Fatalf("List = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("List[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	*now = now.Add(10 * time.Minute)
	n, err := c.Prune(ctx)
	if err != nil || n != 2 {
		t.Errorf("Prune = %d, %v; want the expired and the broken entry", n, err)
	}
	if list, _ := c.List(ctx); len(list) != 2 {
		t.Errorf("after Prune: %d entries, want 2", len(list))
	}

	n, err = c.Clear(ctx)
	if err != nil || n != 2 {
		t.Errorf("Clear = %d, %v; want 2", n, err)
	}
	if list, _ := c.List(ctx); len(list) != 0 {
		t.Errorf("after Clear: %d entries", len(list))
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestArtifactKey(t *testing.T) {
	dot := "digraph layout { n0; }"
	tests := []struct {
		name   string
		a, b   string
		fa, fb string
		same   bool
	}{
		{"same source and format", dot, dot, "svg", "svg", true},
		{"different format", dot, dot, "svg", "png", false},
		{"different source", dot, "digraph layout { n1; }", "svg", "svg", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ArtifactKey(tt.a, tt.fa) == ArtifactKey(tt.b, tt.fb); got != tt.same {
				t.Errorf("keys equal = %v, want %v", got, tt.same)
			}
		})
	}
}

func TestInvalidKey(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)
	for _, k := range []Key{{}, {Format: "../svg", Source: "x"}, {Format: "svg", Source: ".."}} {
		if err := c.Put(ctx, k, "x", nil, 0); err == nil {
			t.Errorf("Put(%q) succeeded", k.String())
		}
		if _, _, err := c.Get(ctx, k); err == nil {
			t.Errorf("Get(%q) succeeded", k.String())
		}
	}
}
