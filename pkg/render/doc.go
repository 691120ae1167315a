// Package render turns treemap layouts into visual output.
//
// # Overview
//
// The rendering side is split by concern:
//
//   - [palette]: group-to-color assignment and the legend grid
//   - [styles]: label sizing, wrapping and escaping helpers
//   - [sink]: output formats (SVG, HTML, JSON, PNG, PDF) and the
//     loading and error views
//   - [hierarchy]: node-link diagram of the group tree via Graphviz
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG to other formats using the external
// rsvg-convert tool (from librsvg). Both the treemap sinks and the hierarchy
// renderer use them.
//
//	svg := sink.RenderSVG(layout, assignment)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// [palette]: github.com/matzehuels/treemap/pkg/render/palette
// [styles]: github.com/matzehuels/treemap/pkg/render/styles
// [sink]: github.com/matzehuels/treemap/pkg/render/sink
// [hierarchy]: github.com/matzehuels/treemap/pkg/render/hierarchy
package render
