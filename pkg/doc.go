// Package pkg provides the core libraries for Dockyard docking layouts.
//
// # Overview
//
// Dockyard arranges externally owned panels ("dockables") inside windows as
// a binary tree of splits, tab groups and single panels, the way IDE tool
// windows and editors are docked. The pkg directory is organized into these
// areas:
//
//  1. [dock] - The docking engine (registry, layout tree, mutations, geometry)
//  2. [drag] - Drag-and-drop target resolution and drop application
//  3. [layout] - Layout descriptions: capture, restore, storage, rendering
//  4. [errors] - Error codes shared by every package
//  5. [cache], [observability] - Render cache and instrumentation hooks
//
// # Architecture
//
// The typical data flow through Dockyard:
//
//	Host gestures / programmatic calls
//	         ↓
//	    [drag] package (resolve drop target, preview)
//	         ↓
//	    [dock] package (validate, mutate tree, relayout, events)
//	         ↓
//	    [layout] package (capture ⇄ restore, JSON, DOT)
//	         ↓
//	    File/Redis store, SVG/PDF/PNG output
//
// # Quick Start
//
// Register panels, dock them and save the result:
//
//	import (
//	    "github.com/matzehuels/dockyard/pkg/dock"
//	    "github.com/matzehuels/dockyard/pkg/geom"
//	    "github.com/matzehuels/dockyard/pkg/layout"
//	)
//
//	// 1. Create a space and register dockables
//	s := dock.New(dock.Options{})
//	editor, files := dock.NewPanel("editor", "Editor"), dock.NewPanel("files", "Files")
//	_ = s.Register(editor)
//	_ = s.Register(files)
//
//	// 2. Dock them into a window
//	w := s.NewWindow("main", geom.R(0, 0, 120, 40))
//	_ = s.DockToWindow(editor, w, dock.Center, dock.DefaultProportion)
//	_ = s.Dock(files, editor, dock.West, 0.25)
//
//	// 3. Capture and persist the arrangement
//	_ = layout.ExportJSON(layout.CaptureWindow(w), "main.json")
//
// # Main Packages
//
// ## Docking Engine
//
// [dock] - The Space owns the dockable registry, the windows and a node arena
// holding each window's tree. Dock, Undock and SelectTab validate every
// argument before touching the tree and fire docked, undocked and
// layoutChanged events synchronously once a mutation completes. Geometry is
// computed lazily from split proportions. Deferred work goes through the
// Space queue and runs on Flush.
//
// ## Drag and Drop
//
// [drag] - The Resolver maps a pointer position to a drop candidate. Root
// zones at the window edges win over the compass zones of the node under the
// pointer. The Controller applies the drop through the same mutator used for
// programmatic docking, or floats the dockable into a new window.
//
// ## Layouts
//
// [layout] - A Description is a serializable tree of persistent IDs.
// [layout.Capture] reads a live tree; [layout.Restore] rebuilds one by issuing
// dock calls and skips IDs that are not registered. [layout.Builder] creates
// descriptions without a Space. Stores keep named layouts in memory, in files
// or in Redis. [layout.ToDOT] and [layout.RenderSVG] draw a description with
// Graphviz.
//
// ## Support
//
// [errors] - Coded errors (INVALID_REGION, UNKNOWN_IDENTIFIER, ...) and
// persistent ID validation.
//
// [geom] - Integer points and rectangles in screen cells.
//
// [cache] - Content-addressed cache for rendered SVG artifacts.
//
// [observability] - Hooks for layout, render and cache events.
//
// [buildinfo] - Version information set at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/dock/...               # Specific package
//	go test -run Example                 # Examples only
//	go test -tags integration ./pkg/...  # Include Redis integration tests
//
// [dock]: https://pkg.go.dev/github.com/matzehuels/dockyard/pkg/dock
// [drag]: https://pkg.go.dev/github.com/matzehuels/dockyard/pkg/drag
// [layout]: https://pkg.go.dev/github.com/matzehuels/dockyard/pkg/layout
// [errors]: https://pkg.go.dev/github.com/matzehuels/dockyard/pkg/errors
// [geom]: https://pkg.go.dev/github.com/matzehuels/dockyard/pkg/geom
// [cache]: https://pkg.go.dev/github.com/matzehuels/dockyard/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/dockyard/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/dockyard/pkg/buildinfo
// [layout.Capture]: https://pkg.go.dev/github.com/matzehuels/dockyard/pkg/layout#Capture
// [layout.Restore]: https://pkg.go.dev/github.com/matzehuels/dockyard/pkg/layout#Restore
// [layout.Builder]: https://pkg.go.dev/github.com/matzehuels/dockyard/pkg/layout#Builder
// [layout.ToDOT]: https://pkg.go.dev/github.com/matzehuels/dockyard/pkg/layout#ToDOT
// [layout.RenderSVG]: https://pkg.go.dev/github.com/matzehuels/dockyard/pkg/layout#RenderSVG
package pkg
