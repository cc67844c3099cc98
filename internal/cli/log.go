// Package cli implements the dockyard command-line interface.
//
// The commands work on layout descriptions: JSON files written by
// layout.WriteJSON or entries in the configured named-layout store. The CLI
// is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - inspect: Print a layout as a tree with statistics
//   - validate: Check layout files for structural errors
//   - render: Export a layout as DOT, SVG, PNG or PDF
//   - layouts: List, show, save and delete named layouts
//   - demo: Drag panels around an interactive terminal docking space
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which includes
// the docking engine's mutation logs in the demo.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Rendered layout.svg (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
