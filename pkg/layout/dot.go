package layout

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
)

// ToDOT converts a description to Graphviz DOT. Splits become ellipses
// labeled with orientation and proportion, tab groups become boxes listing
// their tabs with the selected tab marked, and leaves become rounded boxes.
// The edge to a split's first side is labeled "left" or "top".
func ToDOT(d Description) string {
	var buf bytes.Buffer
	buf.WriteString("digraph layout {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [fontsize=10];\n")
	buf.WriteString("\n")

	root := "root"
	if d.Name != "" {
		root = d.Name
	}
	fmt.Fprintf(&buf, "  n0 [label=%q, shape=doubleoctagon];\n", root)
	if d.Root != nil {
		w := &dotWriter{buf: &buf}
		child := w.node(d.Root)
		fmt.Fprintf(&buf, "  n0 -> %s;\n", child)
	}

	buf.WriteString("}\n")
	return buf.String()
}

type dotWriter struct {
	buf  *bytes.Buffer
	next int
}

func (w *dotWriter) node(n *Node) string {
	w.next++
	name := "n" + strconv.Itoa(w.next)
	switch n.Kind {
	case KindSimple:
		fmt.Fprintf(w.buf, "  %s [label=%q];\n", name, n.ID)
	case KindTabbed:
		tabs := make([]string, len(n.Tabs))
		for i, id := range n.Tabs {
			if i == n.Selected {
				id = "*" + id
			}
			tabs[i] = id
		}
		fmt.Fprintf(w.buf, "  %s [label=%q, style=filled, fillcolor=lightyellow];\n", name, strings.Join(tabs, " | "))
	case KindSplit:
		fmt.Fprintf(w.buf, "  %s [label=%q, shape=ellipse, style=filled, fillcolor=lightgrey];\n",
			name, fmt.Sprintf("%s %.2f", n.Orientation, n.Proportion))
		first, second := "left", "right"
		if n.Orientation == "V" {
			first, second = "top", "bottom"
		}
		l := w.node(n.Left)
		r := w.node(n.Right)
		fmt.Fprintf(w.buf, "  %s -> %s [label=%q];\n", name, l, first)
		fmt.Fprintf(w.buf, "  %s -> %s [label=%q];\n", name, r, second)
	}
	return name
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// The SVG can be converted further with [ToPDF] or [ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root svg tag so the drawing starts at the
// origin and carries explicit width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}
	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}
	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
