package dock

import (
	"strings"

	"github.com/matzehuels/dockyard/pkg/errors"
)

// Region says where a dockable lands relative to its target. CENTER joins
// the target as a tab; the edges split it.
type Region int

const (
	Center Region = iota
	North
	South
	East
	West
)

// Regions lists every region in the fixed hit-test order N, S, E, W, CENTER.
var Regions = []Region{North, South, East, West, Center}

var regionNames = map[Region]string{
	Center: "CENTER",
	North:  "NORTH",
	South:  "SOUTH",
	East:   "EAST",
	West:   "WEST",
}

// String returns the upper-case region name.
func (r Region) String() string {
	if s, ok := regionNames[r]; ok {
		return s
	}
	return "INVALID"
}

// Valid reports whether r is one of the five regions.
func (r Region) Valid() bool {
	_, ok := regionNames[r]
	return ok
}

// IsEdge reports whether r splits its target.
func (r Region) IsEdge() bool { return r.Valid() && r != Center }

// Orientation returns the split orientation an edge region produces:
// Horizontal for EAST/WEST, Vertical for NORTH/SOUTH.
func (r Region) Orientation() Orientation {
	if r == East || r == West {
		return Horizontal
	}
	return Vertical
}

// NewPanelSecond reports whether the new panel takes the second (right or
// bottom) side of the split.
func (r Region) NewPanelSecond() bool { return r == East || r == South }

// ParseRegion converts a case-insensitive region name ("north", "N", ...).
func ParseRegion(s string) (Region, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CENTER", "C":
		return Center, nil
	case "NORTH", "N":
		return North, nil
	case "SOUTH", "S":
		return South, nil
	case "EAST", "E":
		return East, nil
	case "WEST", "W":
		return West, nil
	}
	return Center, errors.New(errors.ErrCodeInvalidRegion, "unknown region %q", s)
}

// Orientation is the axis of a Split node.
type Orientation int

const (
	// Horizontal places the children left and right.
	Horizontal Orientation = iota
	// Vertical places the children top and bottom.
	Vertical
)

// String returns "H" or "V".
func (o Orientation) String() string {
	if o == Vertical {
		return "V"
	}
	return "H"
}

// ParseOrientation accepts "H", "V", "horizontal" or "vertical".
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "h", "horizontal":
		return Horizontal, nil
	case "v", "vertical":
		return Vertical, nil
	}
	return Horizontal, errors.New(errors.ErrCodeInvalidLayout, "unknown orientation %q", s)
}

// ProportionConvention selects how the proportion passed to a dock call is
// stored on the new Split.
type ProportionConvention int

const (
	// ProportionNewPanel makes the proportion describe the newly added panel.
	// EAST and SOUTH docks store 1-p because the new panel is the second side.
	ProportionNewPanel ProportionConvention = iota
	// ProportionFirstSide stores the proportion unchanged as the share of the
	// first (left or top) side.
	ProportionFirstSide
)

// String returns the configuration spelling of the convention.
func (c ProportionConvention) String() string {
	if c == ProportionFirstSide {
		return "first-side"
	}
	return "new-panel"
}

// ParseProportionConvention accepts "new-panel" or "first-side".
func ParseProportionConvention(s string) (ProportionConvention, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "new-panel":
		return ProportionNewPanel, nil
	case "first-side":
		return ProportionFirstSide, nil
	}
	return ProportionNewPanel, errors.New(errors.ErrCodeInvalidProportion, "unknown proportion convention %q", s)
}

// Stored converts a caller proportion to the value kept on the split.
func (c ProportionConvention) Stored(region Region, p float64) float64 {
	if c == ProportionNewPanel && region.NewPanelSecond() {
		return 1 - p
	}
	return p
}
