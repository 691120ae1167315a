// Package hierarchy renders the dataset's group tree as a node-link diagram.
//
// The treemap shows sizes; this view shows structure. [ToDOT] writes the tree
// in Graphviz DOT with each platform node filled in its treemap color, and
// [RenderSVG] lays it out with the embedded Graphviz engine:
//
//	dot := hierarchy.ToDOT(root, assignment, hierarchy.Options{Leaves: true})
//	svg, err := hierarchy.RenderSVG(ctx, dot)
//
// [RenderPDF] and [RenderPNG] convert the SVG with rsvg-convert.
package hierarchy
