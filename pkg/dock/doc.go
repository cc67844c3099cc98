// Package dock implements the docking tree model and its mutation algorithm.
//
// A [Space] is the explicit context object that owns everything: the
// registry of dockables, the windows and their layout trees, the observer
// lists and the single-threaded task queue. Hosts may run several Spaces side
// by side; there is no package-level state.
//
// # Tree Model
//
// Every [Window] owns exactly one Root node. The tree below it is built from
// four node kinds:
//
//   - Simple: a leaf holding one dockable
//   - Tabbed: an ordered group of dockables sharing one area, one selected
//   - Split: a binary horizontal or vertical division with a proportion
//   - Root: the window anchor with an optional child
//
// Nodes live in an arena and refer to each other by [NodeID]. Parent links are
// plain IDs used for upward navigation only; a node is freed when the mutator
// removes it from its slot.
//
// # Docking
//
// [Space.Dock], [Space.DockToWindow] and [Space.DockToNode] insert a dockable
// relative to a target by [Region]. CENTER joins the target as a tab; the four
// edges split the target's slot. The proportion always describes the newly
// added panel under the default [ProportionNewPanel] convention, so EAST and
// SOUTH docks store 1-p on the split.
//
// [Space.Undock] removes a dockable and collapses the structure left behind:
// a tab group left with one tab turns into a Simple leaf, an emptied Split is
// replaced by its remaining sibling and an emptied Root child becomes empty.
//
// # Header Actions
//
// [Space.Close], [Space.Unpin], [Space.Pin] and [Space.Maximize] back the
// buttons of a dockable header and are gated by its [Capabilities]. An
// unpinned dockable leaves the tree but stays listed by its window until Pin
// docks it back where it was. Maximize only changes geometry.
//
// All operations validate before they mutate. A failed call leaves every
// tree exactly as it was.
//
// # Concurrency
//
// A Space is not safe for concurrent use. All calls are expected on the host's
// UI thread. Work that depends on valid geometry is posted to the Space's
// [Queue] and runs when the host calls [Space.Flush].
package dock
