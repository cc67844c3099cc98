package cli

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/dockyard/internal/config"
	"github.com/matzehuels/dockyard/pkg/dock"
	"github.com/matzehuels/dockyard/pkg/drag"
	"github.com/matzehuels/dockyard/pkg/geom"
)

// role selects the style of a canvas cell.
type role uint8

const (
	roleText role = iota
	roleBorder
	roleTitle
	roleTab
	roleTabSelected
	roleZone
	roleZoneActive
	rolePreview
	roleGhost
	roleCount
)

// themeStyles maps a palette onto the cell roles.
func themeStyles(p config.Palette) [roleCount]lipgloss.Style {
	var s [roleCount]lipgloss.Style
	s[roleText] = lipgloss.NewStyle()
	s[roleBorder] = lipgloss.NewStyle().Foreground(lipgloss.Color(p.TitlebarBorder))
	s[roleTitle] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color(p.HandlesOutline)).
		Background(lipgloss.Color(p.TitlebarBackground))
	s[roleTab] = lipgloss.NewStyle().Foreground(lipgloss.Color(p.HandlesBorder))
	s[roleTabSelected] = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color(p.HandlesFill))
	s[roleZone] = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.HandlesOutline)).
		Background(lipgloss.Color(p.HandlesBackground))
	s[roleZoneActive] = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color(p.HandlesFill))
	s[rolePreview] = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Overlay))
	s[roleGhost] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color(p.OverlayBorder)).
		Background(lipgloss.Color(p.Overlay))
	return s
}

// canvas is a grid of styled cells painted back to front.
type canvas struct {
	w, h  int
	cells [][]rune
	roles [][]role
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: max(w, 0), h: max(h, 0)}
	c.cells = make([][]rune, c.h)
	c.roles = make([][]role, c.h)
	for y := range c.cells {
		c.cells[y] = []rune(strings.Repeat(" ", c.w))
		c.roles[y] = make([]role, c.w)
	}
	return c
}

func (c *canvas) set(x, y int, r rune, ro role) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = r
	c.roles[y][x] = ro
}

// text writes s starting at (x, y), clipped to maxW cells.
func (c *canvas) text(x, y int, s string, ro role, maxW int) {
	i := 0
	for _, r := range s {
		if i >= maxW {
			return
		}
		c.set(x+i, y, r, ro)
		i++
	}
}

func (c *canvas) fill(r geom.Rect, ch rune, ro role) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			c.set(x, y, ch, ro)
		}
	}
}

// box draws a border around r. Rects smaller than 2x2 are filled instead.
func (c *canvas) box(r geom.Rect, ro role) {
	if r.W < 2 || r.H < 2 {
		c.fill(r, '▒', ro)
		return
	}
	x1, y1 := r.X+r.W-1, r.Y+r.H-1
	for x := r.X + 1; x < x1; x++ {
		c.set(x, r.Y, '─', ro)
		c.set(x, y1, '─', ro)
	}
	for y := r.Y + 1; y < y1; y++ {
		c.set(r.X, y, '│', ro)
		c.set(x1, y, '│', ro)
	}
	c.set(r.X, r.Y, '┌', ro)
	c.set(x1, r.Y, '┐', ro)
	c.set(r.X, y1, '└', ro)
	c.set(x1, y1, '┘', ro)
}

// render joins runs of equally styled cells into lines.
func (c *canvas) render(styles [roleCount]lipgloss.Style) string {
	var b strings.Builder
	for y := 0; y < c.h; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		start := 0
		for x := 1; x <= c.w; x++ {
			if x < c.w && c.roles[y][x] == c.roles[y][start] {
				continue
			}
			b.WriteString(styles[c.roles[y][start]].Render(string(c.cells[y][start:x])))
			start = x
		}
	}
	return b.String()
}

// plain returns the canvas text without styles.
func (c *canvas) plain() string {
	lines := make([]string, c.h)
	for y := range c.cells {
		lines[y] = string(c.cells[y])
	}
	return strings.Join(lines, "\n")
}

// =============================================================================
// Docking Trees
// =============================================================================

// tabSpan is the header cell range of one tab.
type tabSpan struct {
	x0, x1 int
	handle *dock.Handle
}

// tabSpans lays out the tab labels of a Tabbed node along its header row.
func tabSpans(n *dock.Node) []tabSpan {
	r := n.Bounds()
	x := r.X
	var spans []tabSpan
	for _, h := range n.Tabs() {
		w := len([]rune(h.Dockable().TabText())) + 2
		spans = append(spans, tabSpan{x0: x, x1: min(x+w, r.X+r.W), handle: h})
		x += w + 1
		if x >= r.X+r.W {
			break
		}
	}
	return spans
}

// tabAt returns the tab whose label is under pos, or nil.
func tabAt(n *dock.Node, pos geom.Point) *dock.Handle {
	if n == nil || n.Kind() != dock.KindTabbed || pos.Y != n.Bounds().Y {
		return nil
	}
	for _, sp := range tabSpans(n) {
		if pos.X >= sp.x0 && pos.X < sp.x1 {
			return sp.handle
		}
	}
	return nil
}

// drawWindow paints one window's tree.
func (c *canvas) drawWindow(w *dock.Window) {
	root := w.Root()
	c.fill(root.Bounds(), ' ', roleText)
	if root.Empty() {
		b := root.Bounds()
		c.box(b, roleBorder)
		c.text(b.X+2, b.Y+b.H/2, "drop a panel here", roleBorder, b.W-4)
		return
	}
	walkNodes(root.Child(), func(n *dock.Node) {
		switch n.Kind() {
		case dock.KindSimple:
			b := n.Bounds()
			c.box(b, roleBorder)
			c.text(b.X+1, b.Y, " "+n.Handle().Dockable().TabText()+" ", roleTitle, b.W-2)
			c.body(n.Handle())
		case dock.KindTabbed:
			b := n.Bounds()
			for _, sp := range tabSpans(n) {
				ro := roleTab
				if sp.handle == n.SelectedHandle() {
					ro = roleTabSelected
				}
				c.text(sp.x0, b.Y, " "+sp.handle.Dockable().TabText()+" ", ro, sp.x1-sp.x0)
			}
			h := n.SelectedHandle()
			c.box(h.Bounds(), roleBorder)
			c.body(h)
		}
	})
}

// body prints the dockable's ID and size inside its content area.
func (c *canvas) body(h *dock.Handle) {
	b := h.Bounds()
	if b.H < 3 {
		return
	}
	c.text(b.X+2, b.Y+1, h.ID(), roleText, b.W-3)
	if b.H >= 4 {
		c.text(b.X+2, b.Y+2, sizeLabel(b), roleBorder, b.W-3)
	}
}

func sizeLabel(r geom.Rect) string {
	return strconv.Itoa(r.W) + "x" + strconv.Itoa(r.H)
}

func walkNodes(n *dock.Node, fn func(*dock.Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, c := range n.Children() {
		walkNodes(c, fn)
	}
}

// =============================================================================
// Unpinned Panels
// =============================================================================

// demoTitle heads the top row; unpinned panel labels follow it.
const demoTitle = " dockyard demo "

// unpinnedSpans lays out one label per unpinned panel of every window along
// the top row.
func unpinnedSpans(s *dock.Space) []tabSpan {
	x := len([]rune(demoTitle)) + 1
	var spans []tabSpan
	for _, w := range s.Windows() {
		for _, h := range w.Unpinned() {
			n := len([]rune(h.Dockable().TabText())) + 4
			spans = append(spans, tabSpan{x0: x, x1: x + n, handle: h})
			x += n + 1
		}
	}
	return spans
}

// unpinnedAt returns the unpinned panel whose label is under pos, or nil.
func unpinnedAt(s *dock.Space, pos geom.Point) *dock.Handle {
	if pos.Y != 0 {
		return nil
	}
	for _, sp := range unpinnedSpans(s) {
		if pos.X >= sp.x0 && pos.X < sp.x1 {
			return sp.handle
		}
	}
	return nil
}

func (c *canvas) drawUnpinned(s *dock.Space, focus dock.Dockable) {
	for _, sp := range unpinnedSpans(s) {
		ro := roleTab
		if focus != nil && sp.handle.ID() == focus.PersistentID() {
			ro = roleTabSelected
		}
		edge, _ := sp.handle.UnpinnedEdge()
		label := " " + string(zoneGlyph(edge)) + " " + sp.handle.Dockable().TabText() + " "
		c.text(sp.x0, 0, label, ro, sp.x1-sp.x0)
	}
}

// drawFlyout shows the focused panel over its window edge while it is
// unpinned.
func (c *canvas) drawFlyout(s *dock.Space, focus dock.Dockable) {
	if focus == nil {
		return
	}
	h, err := s.Handle(focus)
	if err != nil || !h.Unpinned() {
		return
	}
	b, err := s.FlyoutBounds(focus)
	if err != nil || b.Empty() {
		return
	}
	c.fill(b, ' ', roleText)
	c.box(b, roleBorder)
	c.text(b.X+1, b.Y, " "+focus.TabText()+" ", roleTitle, b.W-2)
	if b.H >= 3 {
		c.text(b.X+2, b.Y+1, h.ID(), roleText, b.W-3)
	}
}

// drawOverlay paints the drop zones and the preview of the live candidate.
func (c *canvas) drawOverlay(ov *drag.Overlay) {
	if ov == nil {
		return
	}
	if ov.Active != nil && !ov.Preview.Empty() {
		c.box(ov.Preview, rolePreview)
	}
	zones := append(append([]drag.Zone(nil), ov.LocalZones...), ov.RootZones...)
	for _, z := range zones {
		ro := roleZone
		if ov.Active != nil && *ov.Active == z {
			ro = roleZoneActive
		}
		c.fill(z.Bounds, ' ', ro)
		ctr := z.Bounds.Center()
		c.set(ctr.X, ctr.Y, zoneGlyph(z.Region), ro)
	}
}

func zoneGlyph(r dock.Region) rune {
	switch r {
	case dock.North:
		return '▲'
	case dock.South:
		return '▼'
	case dock.East:
		return '▶'
	case dock.West:
		return '◀'
	}
	return '■'
}
