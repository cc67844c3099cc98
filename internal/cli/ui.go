package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/dockyard/pkg/layout"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleSplit    = lipgloss.NewStyle().Foreground(colorGray)
	styleTabs     = lipgloss.NewStyle().Foreground(colorYellow)
	styleSelected = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Println(styleIconError.Render(iconError) + " " + fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + fmt.Sprintf(format, args...))
}

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// printTable prints rows under headers in a rounded table. The first column
// is highlighted.
func printTable(headers []string, rows [][]string) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return StyleValue.Padding(0, 1)
			}
			return StyleDim.Padding(0, 1)
		})
	fmt.Println(t.Render())
}

// =============================================================================
// Layout Trees
// =============================================================================

// layoutStats counts the nodes of a description.
type layoutStats struct {
	dockables, splits, groups, depth int
}

func statsOf(n *layout.Node) layoutStats {
	var s layoutStats
	var walk func(n *layout.Node, depth int)
	walk = func(n *layout.Node, depth int) {
		if n == nil {
			return
		}
		s.depth = max(s.depth, depth)
		switch n.Kind {
		case layout.KindSimple:
			s.dockables++
		case layout.KindTabbed:
			s.groups++
			s.dockables += len(n.Tabs)
		case layout.KindSplit:
			s.splits++
			walk(n.Left, depth+1)
			walk(n.Right, depth+1)
		}
	}
	walk(n, 1)
	return s
}

// renderTree draws a description as an indented tree, one node per line.
func renderTree(d layout.Description) string {
	var b strings.Builder
	title := "root"
	if d.Name != "" {
		title = d.Name
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteByte('\n')
	if d.Root == nil {
		b.WriteString(StyleDim.Render("└── (empty)"))
		b.WriteByte('\n')
		return b.String()
	}
	writeTree(&b, d.Root, "", true)
	return b.String()
}

func writeTree(b *strings.Builder, n *layout.Node, prefix string, last bool) {
	branch, indent := "├── ", "│   "
	if last {
		branch, indent = "└── ", "    "
	}
	b.WriteString(StyleDim.Render(prefix + branch))
	b.WriteString(nodeLabel(n))
	b.WriteByte('\n')
	if n.Kind == layout.KindSplit {
		writeTree(b, n.Left, prefix+indent, false)
		writeTree(b, n.Right, prefix+indent, true)
	}
}

func nodeLabel(n *layout.Node) string {
	switch n.Kind {
	case layout.KindSimple:
		return StyleValue.Render(n.ID)
	case layout.KindTabbed:
		tabs := make([]string, len(n.Tabs))
		for i, id := range n.Tabs {
			if i == n.Selected {
				tabs[i] = styleSelected.Render("[" + id + "]")
			} else {
				tabs[i] = styleTabs.Render(id)
			}
		}
		return strings.Join(tabs, " ")
	case layout.KindSplit:
		return styleSplit.Render(fmt.Sprintf("split %s %.2f", n.Orientation, n.Proportion))
	}
	return string(n.Kind)
}
