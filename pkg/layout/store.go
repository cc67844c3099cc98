package layout

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/dockyard/pkg/errors"
)

// Store keeps named layouts. Save validates the name and the description
// and overwrites an existing entry. Load and Delete return a NOT_FOUND error
// for unknown names.
type Store interface {
	Save(ctx context.Context, name string, d Description) error
	Load(ctx context.Context, name string) (Description, error)
	Delete(ctx context.Context, name string) error
	// List returns the stored names in sorted order.
	List(ctx context.Context) ([]string, error)
	Close() error
}

func checkSave(name string, d Description) (Description, error) {
	if err := errors.ValidateLayoutName(name); err != nil {
		return Description{}, err
	}
	if err := d.Validate(); err != nil {
		return Description{}, err
	}
	d = d.Clone()
	d.Name = name
	if d.Version == 0 {
		d.Version = FormatVersion
	}
	return d, nil
}

func notFound(name string) error {
	return errors.New(errors.ErrCodeNotFound, "layout %q not found", name)
}

// =============================================================================
// Memory
// =============================================================================

// MemoryStore keeps layouts in memory. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	layouts map[string]Description
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{layouts: make(map[string]Description)}
}

func (s *MemoryStore) Save(ctx context.Context, name string, d Description) error {
	d, err := checkSave(name, d)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.layouts[name] = d
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, name string) (Description, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.layouts[name]
	if !ok {
		return Description{}, notFound(name)
	}
	return d.Clone(), nil
}

func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.layouts[name]; !ok {
		return notFound(name)
	}
	delete(s.layouts, name)
	return nil
}

func (s *MemoryStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.layouts))
	for name := range s.layouts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)

// =============================================================================
// File
// =============================================================================

// FileStore keeps one JSON file per layout in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// DefaultLayoutDir returns ~/.config/dockyard/layouts.
func DefaultLayoutDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "dockyard", "layouts"), nil
}

// NewFileStore creates a file-based layout store.
// If baseDir is empty, defaults to [DefaultLayoutDir].
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		dir, err := DefaultLayoutDir()
		if err != nil {
			return nil, err
		}
		baseDir = dir
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create layout dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) layoutPath(name string) string {
	return filepath.Join(s.baseDir, name+".json")
}

func (s *FileStore) Save(ctx context.Context, name string, d Description) error {
	d, err := checkSave(name, d)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := WriteJSON(d, &buf); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.layoutPath(name), buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("write layout file: %w", err)
	}
	return nil
}

func (s *FileStore) Load(ctx context.Context, name string) (Description, error) {
	if err := errors.ValidateLayoutName(name); err != nil {
		return Description{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.layoutPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return Description{}, notFound(name)
		}
		return Description{}, fmt.Errorf("read layout file: %w", err)
	}
	return ReadJSON(bytes.NewReader(data))
}

func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateLayoutName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.layoutPath(name)); err != nil {
		if os.IsNotExist(err) {
			return notFound(name)
		}
		return fmt.Errorf("remove layout file: %w", err)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read layout dir: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".json")
		if errors.ValidateLayoutName(name) != nil {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the directory holding the layout files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
