package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/dctree/pkg/dctree"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds element and node ranges to every label.
	// When false, labels show the node id and element count.
	Detailed bool

	// MaxDepth omits nodes deeper than this. Zero draws the whole tree.
	MaxDepth int
}

// ToDOT converts a tree to Graphviz DOT format.
// The resulting DOT string can be rendered using [RenderSVG].
func ToDOT(t *dctree.Tree, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	var edges []string
	var visit func(n *dctree.Node, depth int)
	visit = func(n *dctree.Node, depth int) {
		cut := opts.MaxDepth > 0 && depth == opts.MaxDepth && !n.IsLeaf()
		attrs := fmtAttrs(n, fmtLabel(n, opts.Detailed, cut))
		fmt.Fprintf(&buf, "  n%d [%s];\n", n.ID, strings.Join(attrs, ", "))
		if cut {
			return
		}
		for _, c := range n.Children() {
			style := ""
			if c == n.Separator {
				style = " [style=dashed, label=\"sep\"]"
			}
			edges = append(edges, fmt.Sprintf("  n%d -> n%d%s;\n", n.ID, c.ID, style))
			visit(c, depth+1)
		}
	}
	if t.Root != nil {
		visit(t.Root, 0)
	}

	buf.WriteString("\n")
	for _, e := range edges {
		buf.WriteString(e)
	}
	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *dctree.Node, detailed, cut bool) string {
	var label string
	if n.IsLeaf() {
		label = fmt.Sprintf("#%d: %d elems", n.ID, n.NbElem())
	} else {
		label = fmt.Sprintf("#%d", n.ID)
	}
	if detailed {
		label += fmt.Sprintf("\nelems [%d,%d]\nnodes [%d,%d]", n.FirstElem, n.LastElem, n.FirstNode, n.LastNode)
	}
	if cut {
		hidden := -1
		dctree.Walk(n, func(*dctree.Node, int) bool {
			hidden++
			return true
		})
		label += fmt.Sprintf("\n(+%d hidden)", hidden)
	}
	return label
}

func fmtAttrs(n *dctree.Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch n.Kind() {
	case dctree.Leaf:
		attrs = append(attrs, "fillcolor=lightblue")
	case dctree.SeparatorLeaf:
		attrs = append(attrs, "fillcolor=orange")
	}
	if n.Sep && !n.IsLeaf() {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [ToPDF] or [ToPNG].
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

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
