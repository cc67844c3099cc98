// Package drag resolves drop targets during interactive drag gestures and
// applies the drop on release.
//
// A [Resolver] is fed pointer positions. For each one it finds the top-most
// window under the pointer, the deepest docking node there, and then tests
// the window's root handle zones before the local handle zones of that node.
// Both zone sets are tested in the fixed order N, S, E, W, CENTER and the
// first hit wins, so overlapping zones at corners always resolve the same
// way and a root zone always beats a local one.
//
// A [Controller] wraps the resolver in the three-call drag protocol. On
// release it docks the source at the candidate through
// [dock.Space.DockToNode], or hands it to a [Floater] when nothing is under
// the pointer.
package drag
