package cache

import (
	"context"
	"time"
)

// NullCache never stores anything. The render command uses it for --no-cache
// and when the cache directory is unusable.
type NullCache struct{}

// NewNullCache creates a null cache.
func NewNullCache() *NullCache {
	return &NullCache{}
}

func (NullCache) Get(context.Context, Key) (Artifact, bool, error) { return Artifact{}, false, nil }

func (NullCache) Put(context.Context, Key, string, []byte, time.Duration) error { return nil }

func (NullCache) Delete(context.Context, Key) error { return nil }

func (NullCache) List(context.Context) ([]Artifact, error) { return nil, nil }

func (NullCache) Prune(context.Context) (int, error) { return 0, nil }

func (NullCache) Clear(context.Context) (int, error) { return 0, nil }

func (NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
