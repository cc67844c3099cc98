package drag

import (
	"math"

	"github.com/matzehuels/dockyard/pkg/dock"
	"github.com/matzehuels/dockyard/pkg/geom"
)

// Config sizes the hit zones offered during a drag and the proportions used
// when a drop is applied.
type Config struct {
	// HandleSize is the side of a root handle zone and the upper bound of a
	// local handle zone.
	HandleSize int
	// HandleMargin is the distance between a root handle zone and the
	// window edge it sits on.
	HandleMargin int
	// Proportion is the share given to a panel dropped on a local edge zone.
	Proportion float64
	// RootProportion is the share given to a panel dropped on a root edge zone.
	RootProportion float64
}

// DefaultConfig returns the zone sizes used for pixel-based hosts.
func DefaultConfig() Config {
	return Config{
		HandleSize:     32,
		HandleMargin:   12,
		Proportion:     dock.DefaultProportion,
		RootProportion: dock.DefaultRootProportion,
	}
}

// withDefaults fills an unset handle size and out-of-range proportions from
// DefaultConfig. A zero margin is kept.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.HandleSize <= 0 {
		c.HandleSize = d.HandleSize
	}
	if c.HandleMargin < 0 {
		c.HandleMargin = 0
	}
	if !(c.Proportion > 0 && c.Proportion < 1) {
		c.Proportion = d.Proportion
	}
	if !(c.RootProportion > 0 && c.RootProportion < 1) {
		c.RootProportion = d.RootProportion
	}
	return c
}

// Zone is one hit-test area offering a region.
type Zone struct {
	Region dock.Region
	Bounds geom.Rect
}

// RootZones returns the root handle zones of a window in the fixed order N,
// S, E, W. Each zone is a HandleSize square centred on its edge and inset by
// HandleMargin. A vacant root offers only a CENTER zone at the window centre,
// since an empty Root accepts nothing but CENTER.
func RootZones(bounds geom.Rect, vacant bool, cfg Config) []Zone {
	cfg = cfg.withDefaults()
	if bounds.Empty() {
		return nil
	}
	s, m := cfg.HandleSize, cfg.HandleMargin
	c := bounds.Center()
	if vacant {
		return []Zone{{Region: dock.Center, Bounds: geom.Square(c, s)}}
	}
	br := bounds.Max()
	return []Zone{
		{Region: dock.North, Bounds: geom.R(c.X-s/2, bounds.Y+m, s, s)},
		{Region: dock.South, Bounds: geom.R(c.X-s/2, br.Y-m-s, s, s)},
		{Region: dock.East, Bounds: geom.R(br.X-m-s, c.Y-s/2, s, s)},
		{Region: dock.West, Bounds: geom.R(bounds.X+m, c.Y-s/2, s, s)},
	}
}

// LocalZones returns the compass of handle zones around the centre of a
// node's bounds in the fixed order N, S, E, W, CENTER. The zone side is
// HandleSize, shrunk to a fifth of the node's smaller dimension.
func LocalZones(bounds geom.Rect, cfg Config) []Zone {
	cfg = cfg.withDefaults()
	side := min(cfg.HandleSize, min(bounds.W, bounds.H)/5)
	if side <= 0 {
		return nil
	}
	c := bounds.Center()
	return []Zone{
		{Region: dock.North, Bounds: geom.Square(geom.Pt(c.X, c.Y-side), side)},
		{Region: dock.South, Bounds: geom.Square(geom.Pt(c.X, c.Y+side), side)},
		{Region: dock.East, Bounds: geom.Square(geom.Pt(c.X+side, c.Y), side)},
		{Region: dock.West, Bounds: geom.Square(geom.Pt(c.X-side, c.Y), side)},
		{Region: dock.Center, Bounds: geom.Square(c, side)},
	}
}

// hit returns the first zone containing pos.
func hit(zones []Zone, pos geom.Point) (Zone, bool) {
	for _, z := range zones {
		if z.Bounds.Contains(pos) {
			return z, true
		}
	}
	return Zone{}, false
}

// Preview returns the part of bounds a panel docked with region and
// proportion p would occupy. CENTER previews the whole area.
func Preview(bounds geom.Rect, region dock.Region, p float64) geom.Rect {
	w := int(math.Round(float64(bounds.W) * p))
	h := int(math.Round(float64(bounds.H) * p))
	br := bounds.Max()
	switch region {
	case dock.North:
		return geom.R(bounds.X, bounds.Y, bounds.W, h)
	case dock.South:
		return geom.R(bounds.X, br.Y-h, bounds.W, h)
	case dock.East:
		return geom.R(br.X-w, bounds.Y, w, bounds.H)
	case dock.West:
		return geom.R(bounds.X, bounds.Y, w, bounds.H)
	}
	return bounds
}
