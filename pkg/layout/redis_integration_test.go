//go:build integration

package layout

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
)

// TestRedisStore needs a running Redis. Set DOCKYARD_REDIS_ADDR to point
// elsewhere than localhost:6379.
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("DOCKYARD_REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	ctx := context.Background()
	s, err := NewRedisStore(ctx, RedisConfig{Addr: addr, Prefix: "dockyard-test:" + uuid.NewString() + ":"})
	if err != nil {
		t.Skipf("redis unavailable: %v", err)
	}
	defer s.Close()
	defer func() {
		names, _ := s.List(ctx)
		for _, name := range names {
			_ = s.Delete(ctx, name)
		}
	}()

	exerciseStore(t, s)
}
