package sink

import (
	"bytes"
	"fmt"
	"math"

	"github.com/matzehuels/treemap/pkg/render/palette"
	"github.com/matzehuels/treemap/pkg/render/styles"
	"github.com/matzehuels/treemap/pkg/treemap"
)

const (
	titleHeight       = 34.0
	descriptionHeight = 22.0
	legendGap         = 24.0
	legendRowHeight   = 24.0
	legendColWidth    = 170.0
	legendSwatch      = 16.0
	fallbackColor     = "#cccccc"
)

const tileCSS = `
    text { font-family: "Helvetica Neue", Helvetica, Arial, sans-serif; }
    #title { font-size: 24px; font-weight: bold; }
    #description { font-size: 14px; }
    .tile { stroke: none; }
    .tile:hover { stroke: #000; stroke-width: 1; }
    .tile-label { pointer-events: none; }
    .legend-label { font-size: 13px; }`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	legendRows  int
	tooltips    bool
	renderID    string
	title       string
	description string
}

// WithLegendRows sets how many legend entries share a column (default 6).
func WithLegendRows(n int) SVGOption { return func(r *svgRenderer) { r.legendRows = n } }

// WithTooltips enables the hover tooltip and its script.
func WithTooltips() SVGOption { return func(r *svgRenderer) { r.tooltips = true } }

// WithRenderID stamps the document with the id of the render pass.
func WithRenderID(id string) SVGOption { return func(r *svgRenderer) { r.renderID = id } }

// WithTitle sets the heading and the description line. Empty strings omit them.
func WithTitle(title, description string) SVGOption {
	return func(r *svgRenderer) { r.title, r.description = title, description }
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{legendRows: palette.DefaultLegendRows}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws the layout as a standalone SVG document: one tile per leaf
// colored by its top-level group, wrapped labels, the legend below the chart,
// and (with [WithTooltips]) a tooltip that follows the pointer.
func RenderSVG(l treemap.Layout, a palette.Assignment, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	legend := palette.Legend(a, r.legendRows)

	top := r.headerHeight()
	legendTop := top + l.Height + legendGap
	width := max(l.Width, float64(legend.Columns)*legendColWidth)
	height := legendTop + float64(legend.Rows)*legendRowHeight

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f"`,
		width, height, width, height)
	if r.renderID != "" {
		fmt.Fprintf(&buf, ` data-render-id="%s"`, styles.EscapeXML(r.renderID))
	}
	buf.WriteString(">\n")
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", tileCSS)

	r.renderHeader(&buf, width)
	renderTiles(&buf, l, a, top)
	renderLegend(&buf, legend, legendTop)
	if r.tooltips {
		renderTooltip(&buf)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) headerHeight() float64 {
	h := 0.0
	if r.title != "" {
		h += titleHeight
	}
	if r.description != "" {
		h += descriptionHeight
	}
	return h
}

func (r svgRenderer) renderHeader(buf *bytes.Buffer, width float64) {
	y := 0.0
	if r.title != "" {
		y += titleHeight
		fmt.Fprintf(buf, `  <text id="title" x="%.1f" y="%.1f" text-anchor="middle">%s</text>`+"\n",
			width/2, y-10, styles.EscapeXML(r.title))
	}
	if r.description != "" {
		y += descriptionHeight
		fmt.Fprintf(buf, `  <text id="description" x="%.1f" y="%.1f" text-anchor="middle">%s</text>`+"\n",
			width/2, y-8, styles.EscapeXML(r.description))
	}
}

func renderTiles(buf *bytes.Buffer, l treemap.Layout, a palette.Assignment, top float64) {
	fmt.Fprintf(buf, `  <g id="tiles" transform="translate(0,%.2f)">`+"\n", top)
	for _, t := range l.Tiles {
		renderTile(buf, t, a.ColorOr(t.Group, fallbackColor))
	}
	buf.WriteString("  </g>\n")
}

func renderTile(buf *bytes.Buffer, t treemap.Tile, fill string) {
	name := styles.EscapeXML(t.Name)
	category := styles.EscapeXML(t.Category)
	value := styles.FormatValue(t.Value)

	fmt.Fprintf(buf, `    <g class="cell" transform="translate(%.2f,%.2f)">`+"\n", t.X0, t.Y0)
	fmt.Fprintf(buf, `      <rect class="tile" id="tile-%d" width="%.2f" height="%.2f" fill="%s" data-name="%s" data-category="%s" data-value="%s">`,
		t.Index, t.Width(), t.Height(), fill, name, category, value)
	fmt.Fprintf(buf, "<title>%s&#10;Category: %s&#10;Value: %s</title></rect>\n", name, category, value)

	size := styles.FontSize(t.Width(), t.Height(), t.Name)
	if lines := styles.WrapLabel(t.Name, t.Width(), t.Height(), size); len(lines) > 0 {
		fmt.Fprintf(buf, `      <text class="tile-label" font-size="%.1f" fill="%s">`, size, palette.TextColor(fill))
		for i, line := range lines {
			fmt.Fprintf(buf, `<tspan x="%.1f" y="%.1f">%s</tspan>`,
				styles.LabelInset, styles.LabelInset+size+float64(i)*styles.LineHeight(size), styles.EscapeXML(line))
		}
		buf.WriteString("</text>\n")
	}
	buf.WriteString("    </g>\n")
}

func renderLegend(buf *bytes.Buffer, legend palette.LegendGrid, top float64) {
	fmt.Fprintf(buf, `  <g id="legend" transform="translate(0,%.2f)">`+"\n", top)
	for _, e := range legend.Entries {
		x := float64(e.Column) * legendColWidth
		y := float64(e.Row) * legendRowHeight
		fmt.Fprintf(buf, `    <g class="legend-entry" transform="translate(%.1f,%.1f)">`, x, y)
		fmt.Fprintf(buf, `<rect class="legend-item" width="%.0f" height="%.0f" fill="%s" data-group="%s"/>`,
			legendSwatch, legendSwatch, e.Color, styles.EscapeXML(e.Group))
		fmt.Fprintf(buf, `<text class="legend-label" x="%.0f" y="%.0f">%s</text></g>`+"\n",
			legendSwatch+6, legendSwatch-3, styles.EscapeXML(e.Group))
	}
	buf.WriteString("  </g>\n")
}

// Describe builds the default description line for a layout.
func Describe(l treemap.Layout) string {
	return fmt.Sprintf("%d titles across %d platforms, %s million units",
		len(l.Tiles), len(l.Order), styles.FormatValue(math.Round(l.Total*100)/100))
}
