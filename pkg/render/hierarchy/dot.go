package hierarchy

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/treemap/pkg/dataset"
	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/render"
	"github.com/matzehuels/treemap/pkg/render/palette"
	"github.com/matzehuels/treemap/pkg/render/styles"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Leaves includes one node per sales record. When false, the diagram stops
	// at the platform level.
	Leaves bool
	// Detailed adds leaf counts and value totals to group labels.
	Detailed bool
}

// ToDOT converts the group tree under root to Graphviz DOT format. Top-level
// groups take their fill from a; leaves inherit a lighter shade of it.
func ToDOT(root *dataset.Node, a palette.Assignment, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.15;\n")
	buf.WriteString("\n")

	w := dotWriter{buf: &buf, a: a, opts: opts}
	w.node(root, 0, "")

	buf.WriteString("}\n")
	return buf.String()
}

type dotWriter struct {
	buf  *bytes.Buffer
	a    palette.Assignment
	opts Options
	next int
}

func (w *dotWriter) node(n *dataset.Node, depth int, group string) string {
	id := fmt.Sprintf("n%d", w.next)
	w.next++
	if depth == 1 {
		group = n.Name
	}

	attrs := []string{fmt.Sprintf("label=%q", w.label(n))}
	if c, ok := w.a.Color(group); ok && depth > 0 {
		if n.IsLeaf() && depth > 1 {
			c = palette.Dim(c, 0.45)
		}
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", c), fmt.Sprintf("fontcolor=%q", palette.TextColor(c)))
	}
	if depth == 0 {
		attrs = append(attrs, "shape=doubleoctagon")
	}
	fmt.Fprintf(w.buf, "  %s [%s];\n", id, strings.Join(attrs, ", "))

	for _, c := range n.Children {
		if c.IsLeaf() && depth >= 1 && !w.opts.Leaves {
			continue
		}
		child := w.node(c, depth+1, group)
		fmt.Fprintf(w.buf, "  %s -> %s;\n", id, child)
	}
	return id
}

func (w *dotWriter) label(n *dataset.Node) string {
	if n.IsLeaf() {
		return fmt.Sprintf("%s\n%s", n.Name, styles.FormatValue(n.Value))
	}
	if !w.opts.Detailed {
		return n.Name
	}
	return fmt.Sprintf("%s\nleaves: %d\ntotal: %.2f", n.Name, len(n.Leaves()), n.Total())
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [render.ToPDF] or [render.ToPNG].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render DOT")
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

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPDF(svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return render.ToPNG(svg, scale)
}
