// Package render draws D&C trees as Graphviz diagrams.
//
// # Usage
//
// Convert a tree to DOT, then render it in-process to SVG:
//
//	dot := render.ToDOT(tree, render.Options{Detailed: true})
//	svg, err := render.RenderSVG(ctx, dot)
//
// [ToPDF] and [ToPNG] convert the SVG with the external rsvg-convert tool.
//
// # Diagram
//
// Internal nodes are white boxes, ordinary leaves are blue and separator
// leaves are orange. Separator subtrees hang off dashed edges, since they
// run after both ordinary children. Options.MaxDepth cuts deep trees; a cut
// node shows how many tree nodes it hides.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. PDF and PNG conversion requires librsvg (rsvg-convert).
package render
