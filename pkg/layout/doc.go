// Package layout captures docking trees into serializable descriptions and
// restores them.
//
// A [Description] is the shape of one window's tree by persistent ID: node
// kinds, tab order and selection, split orientation and proportion. It holds
// no references to live nodes, so it can be written to JSON with
// [WriteJSON], kept in a named-layout [Store], or built from scratch with a
// [Builder].
//
// # Capture and Restore
//
// [Capture] walks a tree without modifying it. [Restore] empties a window and
// rebuilds it by issuing ordinary dock calls: the first dockable goes to the
// empty root, every later one docks relative to a dockable already placed,
// and each split gets its recorded proportion afterwards. Capturing the
// restored tree yields a description equivalent to the original.
//
// IDs that are not registered in the Space are skipped. The remaining
// structure collapses the way an undock would, the rest still restores, and
// the skipped IDs come back in both the [Report] and an [errors.SkippedError].
//
// # Stores
//
// Named layouts live in a [Store]:
//
//	store := layout.NewMemoryStore()          // tests and short-lived hosts
//	store, err := layout.NewFileStore("")     // ~/.config/dockyard/layouts
//	store, err := layout.NewRedisStore(ctx, layout.RedisConfig{Addr: "localhost:6379"})
//
// # Rendering
//
// [ToDOT] turns a description into a Graphviz graph, [RenderSVG] renders it,
// and [ToPNG] and [ToPDF] convert the SVG with rsvg-convert.
package layout
