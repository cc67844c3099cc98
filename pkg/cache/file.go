package cache

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// FileCache keeps artifacts as <dir>/<format>/<source>.json.
type FileCache struct {
	dir string
	now func() time.Time
}

// NewFileCache creates a file cache in dir, creating the directory if needed.
func NewFileCache(dir string) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir, now: time.Now}, nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

// Get implements Cache. Expired and corrupt entries are removed and reported
// as misses.
func (c *FileCache) Get(ctx context.Context, key Key) (Artifact, bool, error) {
	if err := key.validate(); err != nil {
		return Artifact{}, false, err
	}
	path := c.path(key)
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Artifact{}, false, nil
	}
	if err != nil {
		return Artifact{}, false, err
	}
	var a Artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		_ = os.Remove(path)
		return Artifact{}, false, nil
	}
	if a.Expired(c.now()) {
		_ = os.Remove(path)
		return Artifact{}, false, nil
	}
	return a, true, nil
}

// Put implements Cache.
func (c *FileCache) Put(ctx context.Context, key Key, layout string, data []byte, ttl time.Duration) error {
	if err := key.validate(); err != nil {
		return err
	}
	now := c.now()
	a := Artifact{
		Layout:    layout,
		Format:    key.Format,
		Source:    key.Source,
		Size:      len(data),
		CreatedAt: now,
		Data:      data,
	}
	if ttl > 0 {
		a.ExpiresAt = now.Add(ttl)
	}
	raw, err := json.Marshal(a)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Delete implements Cache.
func (c *FileCache) Delete(ctx context.Context, key Key) error {
	if err := key.validate(); err != nil {
		return err
	}
	err := os.Remove(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// List implements Cache. Entries that cannot be read are skipped.
func (c *FileCache) List(ctx context.Context) ([]Artifact, error) {
	now := c.now()
	var out []Artifact
	err := c.walk(func(path string) error {
		a, err := readArtifact(path)
		if err != nil || a.Expired(now) {
			return nil
		}
		a.Data = nil
		out = append(out, a)
		return nil
	})
	slices.SortFunc(out, func(a, b Artifact) int { return b.CreatedAt.Compare(a.CreatedAt) })
	return out, err
}

// Prune implements Cache.
func (c *FileCache) Prune(ctx context.Context) (int, error) {
	now := c.now()
	n := 0
	err := c.walk(func(path string) error {
		if a, err := readArtifact(path); err == nil && !a.Expired(now) {
			return nil
		}
		if err := os.Remove(path); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}

// Clear implements Cache.
func (c *FileCache) Clear(ctx context.Context) (int, error) {
	n := 0
	err := c.walk(func(path string) error {
		if err := os.Remove(path); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}

// Close does nothing for the file cache.
func (c *FileCache) Close() error {
	return nil
}

func (c *FileCache) path(key Key) string {
	return filepath.Join(c.dir, key.Format, key.Source+".json")
}

// walk calls fn for every entry file, one directory level per format.
func (c *FileCache) walk(fn func(path string) error) error {
	formats, err := os.ReadDir(c.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, f := range formats {
		if !f.IsDir() {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(c.dir, f.Name()))
		if err != nil {
			return err
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			if err := fn(filepath.Join(c.dir, f.Name(), e.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}

func readArtifact(path string) (Artifact, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Artifact{}, err
	}
	var a Artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return Artifact{}, err
	}
	return a, nil
}

var _ Cache = (*FileCache)(nil)
