// Package sink provides output format renderers for treemap layouts.
//
// # Overview
//
// A "sink" transforms a computed [treemap.Layout] plus a [palette.Assignment]
// into a final output format:
//
//   - SVG: standalone document with legend and hover tooltip
//   - HTML: host page with the #treemap-container and #treemap mount points
//   - JSON: layout export including colors and the legend grid
//   - PDF and PNG: via rsvg-convert
//
// The loading and error placeholders are sinks too: [RenderStateSVG] and
// [RenderStateHTML] draw a [StateView] in place of the chart so a failed
// fetch is visible.
//
// # SVG Output
//
// Each leaf becomes
//
//	<rect class="tile" data-name=".." data-category=".." data-value="..">
//
// filled with its group color and followed by a wrapped label. The legend is
// a <g id="legend"> of "legend-item" swatches in columns of six. With
// [WithTooltips] a hidden <g id="tooltip"> and a small script are appended;
// the script moves the tooltip to the pointer on mousemove and hides it on
// mouseout.
//
//	svg := sink.RenderSVG(layout, assignment,
//	    sink.WithTooltips(),
//	    sink.WithTitle("Video Game Sales", sink.Describe(layout)),
//	)
//
// [treemap.Layout]: github.com/matzehuels/treemap/pkg/treemap.Layout
// [palette.Assignment]: github.com/matzehuels/treemap/pkg/render/palette.Assignment
package sink
