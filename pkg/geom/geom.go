// Package geom provides the integer screen geometry used for docking layout
// bounds and drag hit testing.
//
// All coordinates are in screen space. A [Rect] spans the half-open ranges
// [X, X+W) and [Y, Y+H), so adjacent rectangles never both contain the
// shared edge.
package geom

import "fmt"

// Point is a screen position.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point { return Point{X: x, Y: y} }

// String returns "(x,y)".
func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Rect is an axis-aligned rectangle with its top-left corner at (X, Y).
type Rect struct {
	X, Y int // Top-left position
	W, H int // Width and height
}

// R is shorthand for Rect{X: x, Y: y, W: w, H: h}.
func R(x, y, w, h int) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// String returns "x,y wxh".
func (r Rect) String() string { return fmt.Sprintf("%d,%d %dx%d", r.X, r.Y, r.W, r.H) }

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return !r.Empty() && p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Max returns the exclusive bottom-right corner.
func (r Rect) Max() Point {
	return Point{X: r.X + r.W, Y: r.Y + r.H}
}

// Intersects reports whether r and other overlap.
func (r Rect) Intersects(other Rect) bool {
	if r.Empty() || other.Empty() {
		return false
	}
	return r.X < other.X+other.W && other.X < r.X+r.W &&
		r.Y < other.Y+other.H && other.Y < r.Y+r.H
}

// Inset shrinks the rectangle by d on every side. The result never has
// negative size.
func (r Rect) Inset(d int) Rect {
	out := Rect{X: r.X + d, Y: r.Y + d, W: r.W - 2*d, H: r.H - 2*d}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// Square returns a size x size rectangle centered on c.
func Square(c Point, size int) Rect {
	return Rect{X: c.X - size/2, Y: c.Y - size/2, W: size, H: size}
}

// SplitH divides r into a left part of width leftW and a right part, leaving
// a gap of divider between them.
func (r Rect) SplitH(leftW, divider int) (left, right Rect) {
	leftW = clamp(leftW, 0, r.W)
	left = Rect{X: r.X, Y: r.Y, W: leftW, H: r.H}
	rx := r.X + leftW + divider
	right = Rect{X: rx, Y: r.Y, W: max(0, r.X+r.W-rx), H: r.H}
	return left, right
}

// SplitV divides r into a top part of height topH and a bottom part, leaving
// a gap of divider between them.
func (r Rect) SplitV(topH, divider int) (top, bottom Rect) {
	topH = clamp(topH, 0, r.H)
	top = Rect{X: r.X, Y: r.Y, W: r.W, H: topH}
	by := r.Y + topH + divider
	bottom = Rect{X: r.X, Y: by, W: r.W, H: max(0, r.Y+r.H-by)}
	return top, bottom
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
