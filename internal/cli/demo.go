package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dockyard/internal/config"
	"github.com/matzehuels/dockyard/pkg/dock"
	"github.com/matzehuels/dockyard/pkg/drag"
	"github.com/matzehuels/dockyard/pkg/errors"
	"github.com/matzehuels/dockyard/pkg/geom"
	"github.com/matzehuels/dockyard/pkg/layout"
)

// demoPanels are the dockables of the demo space.
var demoPanels = []struct {
	id, title string
	floatable bool
}{
	{"files", "Files", true},
	{"editor", "Editor", true},
	{"preview", "Preview", true},
	{"console", "Console", true},
	{"outline", "Outline", false},
}

// defaultDemoLayout is the arrangement the demo starts with and resets to.
func defaultDemoLayout() layout.Description {
	b, _ := layout.NewBuilder("files")
	_ = b.Dock("editor", "files", dock.East, 0.8)
	_ = b.Dock("preview", "editor", dock.Center, dock.DefaultProportion)
	_ = b.Dock("console", "editor", dock.South, 0.3)
	_ = b.Dock("outline", "editor", dock.East, 0.25)
	return b.Build()
}

// demoCommand runs the interactive docking demo.
func (c *CLI) demoCommand() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Drag panels around an interactive docking space",
		Long: `Run a terminal docking space. Drag a panel by its title or tab with the
mouse; drop it on a highlighted zone to dock it there or anywhere else to
float it in its own window.

Clicking a panel focuses it. The header actions close, unpin and maximize
the focused panel; unpinned panels are listed on the top row and open as a
flyout when clicked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			store, err := cfg.OpenStore(ctx)
			if err != nil {
				c.Logger.Warn("layout store unavailable, using memory", "err", err)
				store = layout.NewMemoryStore()
			}
			defer store.Close()

			m, err := newDemoModel(ctx, cfg, store, name)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx)).Run()
			return err
		},
	}
	cmd.Flags().StringVar(&name, "layout", "demo", "named layout used by save and load")
	return cmd
}

// =============================================================================
// Model
// =============================================================================

type layoutSavedMsg struct{ err error }

type layoutLoadedMsg struct {
	d   layout.Description
	err error
}

// demoModel is the bubbletea model of the docking demo. All docking calls
// happen in Update, on the program's event loop.
type demoModel struct {
	ctx   context.Context
	space *dock.Space
	main  *dock.Window
	ctrl  *drag.Controller
	store layout.Store
	name  string

	theme  config.Theme
	styles [roleCount]lipgloss.Style
	keys   demoKeys
	help   help.Model

	width, height int
	pressed       dock.Dockable
	focus         dock.Dockable
	pointer       geom.Point
	status        string
	events        int
}

func newDemoModel(ctx context.Context, cfg config.Config, store layout.Store, name string) (*demoModel, error) {
	s := dock.New(cfg.DockOptions(nil))
	for _, p := range demoPanels {
		panel := dock.NewPanel(p.id, p.title)
		panel.Flags.Floatable = p.floatable
		if err := s.Register(panel); err != nil {
			return nil, err
		}
	}
	m := &demoModel{
		ctx:   ctx,
		space: s,
		main:  s.NewWindow("dockyard", geom.R(0, 1, 80, 22)),
		store: store,
		name:  name,
		theme: cfg.Theme,
		keys:  newDemoKeys(),
		help:  help.New(),
	}
	floater := drag.WindowFloater{Space: s, Size: geom.Pt(30, 10)}
	m.ctrl = drag.NewController(s, cfg.DragConfig(), floater)
	m.styles = themeStyles(m.theme.Palette())
	s.Subscribe(func(e dock.Event) {
		m.events++
		if e.Dockable != nil {
			m.status = fmt.Sprintf("%s %s", e.Kind, e.Dockable.PersistentID())
		}
	})

	if _, err := layout.Restore(s, m.main, defaultDemoLayout()); err != nil {
		return nil, err
	}
	m.flush()
	m.focus, _ = s.Lookup("editor")
	m.status = "drag a title or tab to move a panel"
	return m, nil
}

func (m *demoModel) Init() tea.Cmd { return nil }

func (m *demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	defer m.flush()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case layoutSavedMsg:
		if msg.err != nil {
			m.status = "save failed: " + errors.UserMessage(msg.err)
		} else {
			m.status = "saved layout " + m.name
		}

	case layoutLoadedMsg:
		if msg.err != nil {
			m.status = "load failed: " + errors.UserMessage(msg.err)
			return m, nil
		}
		m.restore(msg.d)
	}
	return m, nil
}

func (m *demoModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		if m.ctrl.Dragging() {
			m.ctrl.Cancel()
			m.status = "drag cancelled"
		}
		m.pressed = nil
	case key.Matches(msg, m.keys.Close):
		m.closeFocused()
	case key.Matches(msg, m.keys.Pin):
		m.togglePin()
	case key.Matches(msg, m.keys.Maximize):
		m.toggleMaximize()
	case key.Matches(msg, m.keys.Save):
		d := layout.CaptureWindow(m.main)
		store, name, ctx := m.store, m.name, m.ctx
		return func() tea.Msg { return layoutSavedMsg{err: store.Save(ctx, name, d)} }
	case key.Matches(msg, m.keys.Load):
		store, name, ctx := m.store, m.name, m.ctx
		return func() tea.Msg {
			d, err := store.Load(ctx, name)
			return layoutLoadedMsg{d: d, err: err}
		}
	case key.Matches(msg, m.keys.Reset):
		m.restore(defaultDemoLayout())
	case key.Matches(msg, m.keys.Theme):
		if m.theme.Mode == "dark" {
			m.theme.Mode = "light"
		} else {
			m.theme.Mode = "dark"
		}
		m.styles = themeStyles(m.theme.Palette())
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
	}
	return nil
}

// =============================================================================
// Header Actions
// =============================================================================

// closeFocused closes the focused panel and moves focus to the first panel
// left in the main window.
func (m *demoModel) closeFocused() {
	if m.focus == nil {
		m.status = "no panel focused"
		return
	}
	id := m.focus.PersistentID()
	if err := m.space.Close(m.focus); err != nil {
		m.status = errors.UserMessage(err)
		return
	}
	m.status = "closed " + id
	m.focus = nil
	if hs := m.main.Root().Handles(); len(hs) > 0 {
		m.focus = hs[0].Dockable()
	}
}

// togglePin unpins the focused panel to the nearer side edge of its window,
// or pins it back when it is already unpinned.
func (m *demoModel) togglePin() {
	if m.focus == nil {
		m.status = "no panel focused"
		return
	}
	h, err := m.space.Handle(m.focus)
	if err == nil {
		if h.Unpinned() {
			err = m.space.Pin(m.focus)
		} else {
			err = m.space.Unpin(m.focus, unpinEdge(h))
		}
	}
	if err != nil {
		m.status = errors.UserMessage(err)
	}
}

func unpinEdge(h *dock.Handle) dock.Region {
	w := h.Window()
	if w != nil && h.Bounds().Center().X < w.Bounds().Center().X {
		return dock.West
	}
	return dock.East
}

// toggleMaximize maximizes the focused panel over its window, or restores
// the window when a panel already covers it.
func (m *demoModel) toggleMaximize() {
	w := m.main
	if m.focus != nil {
		if fw := m.space.WindowFor(m.focus); fw != nil {
			w = fw
		}
	}
	if w.Maximized() != nil {
		_ = m.space.Minimize(w)
		m.status = "restored " + w.Title()
		return
	}
	if m.focus == nil {
		m.status = "no panel focused"
		return
	}
	if err := m.space.Maximize(m.focus); err != nil {
		m.status = errors.UserMessage(err)
		return
	}
	m.status = "maximized " + m.focus.PersistentID()
}

// restore closes the floating windows and rebuilds the main window from d.
func (m *demoModel) restore(d layout.Description) {
	m.ctrl.Cancel()
	m.pressed = nil
	_ = m.space.Minimize(m.main)
	for _, w := range m.space.Windows() {
		if w != m.main {
			_ = m.space.CloseWindow(w)
		}
	}
	rep, err := layout.Restore(m.space, m.main, d)
	switch {
	case len(rep.Skipped) > 0:
		m.status = fmt.Sprintf("restored %d panels, skipped %s", len(rep.Restored), strings.Join(rep.Skipped, ", "))
	case err != nil:
		m.status = "restore failed: " + errors.UserMessage(err)
	default:
		m.status = fmt.Sprintf("restored %d panels", len(rep.Restored))
	}
}

func (m *demoModel) handleMouse(msg tea.MouseMsg) {
	pos := geom.Pt(msg.X, msg.Y)
	m.pointer = pos

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		if h := unpinnedAt(m.space, pos); h != nil {
			m.focus = h.Dockable()
			m.status = "showing " + h.ID()
			return
		}
		m.pressed = m.grab(pos)
		if m.pressed != nil {
			m.focus = m.pressed
		}

	case tea.MouseActionMotion:
		if m.pressed == nil {
			return
		}
		if !m.ctrl.Dragging() {
			if err := m.ctrl.OnDragStart(m.pressed); err != nil {
				m.status = errors.UserMessage(err)
				m.pressed = nil
				return
			}
		}
		if cand, ok := m.ctrl.OnDragUpdate(pos); ok {
			m.status = fmt.Sprintf("drop %s %s", m.pressed.PersistentID(), describeCandidate(cand))
		} else {
			m.status = fmt.Sprintf("release to float %s", m.pressed.PersistentID())
		}

	case tea.MouseActionRelease:
		src := m.pressed
		m.pressed = nil
		if src == nil || !m.ctrl.Dragging() {
			return
		}
		res, err := m.ctrl.OnDragEnd(pos)
		if err != nil {
			m.status = errors.UserMessage(err)
			return
		}
		m.status = fmt.Sprintf("%s %s", res.Outcome, src.PersistentID())
		if w := m.space.WindowFor(src); w != nil && w != m.main {
			_ = m.space.RaiseWindow(w)
		}
	}
}

// grab returns the dockable whose title or tab is under pos. Pressing a tab
// also selects it.
func (m *demoModel) grab(pos geom.Point) dock.Dockable {
	n := m.space.FindNodeAtScreenPos(pos)
	if n == nil {
		return nil
	}
	if h := tabAt(n, pos); h != nil {
		_ = m.space.SelectTab(h.Dockable())
		return h.Dockable()
	}
	if n.Kind() == dock.KindSimple && pos.Y == n.Bounds().Y {
		return n.Handle().Dockable()
	}
	return nil
}

func describeCandidate(c drag.Candidate) string {
	if c.Root {
		return "at window " + strings.ToLower(c.Region.String())
	}
	target := ""
	if hs := c.Node.Handles(); len(hs) > 0 {
		target = hs[0].ID()
	}
	if c.Region == dock.Center {
		return "as tab of " + target
	}
	return strings.ToLower(c.Region.String()) + " of " + target
}

// footerHeight is the status line plus the help view.
func (m *demoModel) footerHeight() int {
	return 1 + lipgloss.Height(m.help.View(m.keys))
}

// resize fits the main window between the title row and the footer.
func (m *demoModel) resize() {
	h := max(m.height-1-m.footerHeight(), 1)
	_ = m.space.SetWindowBounds(m.main, geom.R(0, 1, max(m.width, 1), h))
}

// flush runs the queued relayouts and deferred restore work.
func (m *demoModel) flush() { m.space.Flush() }

func (m *demoModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	c := m.paint()
	var b strings.Builder
	b.WriteString(c.render(m.styles))
	b.WriteByte('\n')
	b.WriteString(StyleDim.Render(fmt.Sprintf("%s  ·  %d events", m.status, m.events)))
	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// paint draws the title row, every window in z-order and the drag overlay.
func (m *demoModel) paint() *canvas {
	c := newCanvas(m.width, m.height-m.footerHeight())
	c.text(0, 0, demoTitle, roleTitle, c.w)
	c.drawUnpinned(m.space, m.focus)
	for _, w := range m.space.Windows() {
		c.drawWindow(w)
	}
	c.drawFlyout(m.space, m.focus)
	if m.ctrl.Dragging() {
		c.drawOverlay(m.ctrl.Resolver().Overlay())
		if src := m.ctrl.Resolver().Source(); src != nil {
			c.text(m.pointer.X, m.pointer.Y, " "+src.TabText()+" ", roleGhost, c.w-m.pointer.X)
		}
	}
	return c
}
