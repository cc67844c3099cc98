package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dockyard/pkg/observability"
)

// logHooks reports layout and cache events on the debug log.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnCapture(dockables int) {
	h.logger.Debug("layout captured", "dockables", dockables)
}

func (h logHooks) OnRestore(restored, skipped int, d time.Duration, err error) {
	h.logger.Debug("layout restored", "restored", restored, "skipped", skipped, "took", d, "err", err)
}

func (h logHooks) OnRender(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("layout rendered", "formats", formats, "took", d, "err", err)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

// RegisterHooks routes the observability hooks to the CLI logger.
func (c *CLI) RegisterHooks() {
	h := logHooks{logger: c.Logger}
	observability.SetLayoutHooks(h)
	observability.SetCacheHooks(h)
}
