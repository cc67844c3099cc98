// Package cache stores rendered layout diagrams keyed by their DOT source.
//
// Rendering a DOT graph to SVG boots the Graphviz WebAssembly runtime, which
// dominates the cost of the render command. The cache lets repeated renders
// of an unchanged layout skip that step.
//
// Every entry is an [Artifact] that remembers which layout it was rendered
// from, its format and when it was created, so the cache can be listed and
// pruned from the command line.
//
// Two implementations are provided:
//
//   - [FileCache] keeps one JSON file per artifact under a directory.
//   - [NullCache] never stores anything; use it to disable caching.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DefaultTTL is how long rendered artifacts stay valid.
const DefaultTTL = 7 * 24 * time.Hour

// Key identifies the rendering of one DOT source in one format.
type Key struct {
	Format string // output format, "svg"
	Source string // hex SHA-256 of the DOT source
}

// ArtifactKey returns the key of dot rendered as format.
func ArtifactKey(dot, format string) Key {
	return Key{Format: format, Source: Hash([]byte(dot))}
}

// String returns "format:source".
func (k Key) String() string { return k.Format + ":" + k.Source }

func (k Key) validate() error {
	for _, part := range []string{k.Format, k.Source} {
		if part == "" || part == "." || part == ".." || strings.ContainsAny(part, `/\`) {
			return fmt.Errorf("invalid cache key %q", k.String())
		}
	}
	return nil
}

// Artifact is one cached rendering.
type Artifact struct {
	Layout    string    `json:"layout"` // file or stored layout name it was rendered from
	Format    string    `json:"format"`
	Source    string    `json:"source"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
	Data      []byte    `json:"data,omitempty"`
}

// Expired reports whether the artifact is past its expiry at now. Artifacts
// without an expiry never expire.
func (a Artifact) Expired(now time.Time) bool {
	return !a.ExpiresAt.IsZero() && now.After(a.ExpiresAt)
}

// Cache is an artifact store with per-entry expiry.
type Cache interface {
	// Get returns the artifact stored under key. A miss, including an
	// expired entry, is (Artifact{}, false, nil).
	Get(ctx context.Context, key Key) (Artifact, bool, error)
	// Put stores data rendered from layout under key. A ttl of zero never
	// expires.
	Put(ctx context.Context, key Key, layout string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key Key) error
	// List returns the metadata of every live artifact, without data, newest
	// first.
	List(ctx context.Context) ([]Artifact, error)
	// Prune removes expired and unreadable entries and returns how many.
	Prune(ctx context.Context) (int, error)
	// Clear removes every entry and returns how many.
	Clear(ctx context.Context) (int, error)
	Close() error
}

// Hash computes a SHA-256 hash of the input data as a 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// DefaultDir returns the per-user render cache directory.
func DefaultDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "dockyard", "render"), nil
}
