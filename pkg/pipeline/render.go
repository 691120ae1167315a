package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/matzehuels/treemap/pkg/dataset"
	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/render"
	"github.com/matzehuels/treemap/pkg/render/hierarchy"
	"github.com/matzehuels/treemap/pkg/render/palette"
	"github.com/matzehuels/treemap/pkg/render/sink"
	"github.com/matzehuels/treemap/pkg/treemap"
)

// RenderInput is everything a render pass reads. None of it is modified.
type RenderInput struct {
	Layout     treemap.Layout
	Dataset    *dataset.Node
	Assignment palette.Assignment
	RenderID   string
}

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, in RenderInput, opts Options) (map[string][]byte, error) {
	if opts.IsHierarchy() {
		return renderHierarchy(ctx, in, opts)
	}
	return renderTreemap(in, opts)
}

// renderTreemap generates treemap outputs.
func renderTreemap(in RenderInput, opts Options) (map[string][]byte, error) {
	svgOpts := BuildSVGOptions(in.Layout, in.RenderID, opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data = sink.RenderSVG(in.Layout, in.Assignment, svgOpts...)
		case FormatHTML:
			data, err = sink.RenderHTML(in.Layout, in.Assignment, svgOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(in.Layout, in.Assignment,
				sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.PNGScale))
		case FormatPDF:
			data, err = sink.RenderPDF(in.Layout, in.Assignment, sink.WithPDFSVGOptions(svgOpts...))
		case FormatJSON:
			data, err = sink.RenderJSON(in.Layout, in.Assignment,
				sink.WithJSONRenderID(in.RenderID), sink.WithJSONLegendRows(opts.LegendRows))
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported treemap format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// renderHierarchy generates node-link outputs through Graphviz.
func renderHierarchy(ctx context.Context, in RenderInput, opts Options) (map[string][]byte, error) {
	dot := hierarchy.ToDOT(in.Dataset, in.Assignment, hierarchy.Options{Leaves: opts.Leaves, Detailed: true})
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatSVG:
			data, err = hierarchy.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = hierarchy.RenderPNG(ctx, dot, opts.PNGScale)
		case FormatPDF:
			data, err = hierarchy.RenderPDF(ctx, dot)
		case FormatJSON:
			data, err = json.MarshalIndent(struct {
				VizType string `json:"viz_type"`
				DOT     string `json:"dot"`
			}{VizTypeHierarchy, dot}, "", "  ")
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported hierarchy format: %s", format)
		}

		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}

// BuildSVGOptions builds SVG rendering options.
func BuildSVGOptions(l treemap.Layout, renderID string, opts Options) []sink.SVGOption {
	title := opts.Title
	if title == "" {
		title = l.Name
	}
	svgOpts := []sink.SVGOption{
		sink.WithLegendRows(opts.LegendRows),
		sink.WithRenderID(renderID),
		sink.WithTitle(title, sink.Describe(l)),
	}
	if opts.Tooltips {
		svgOpts = append(svgOpts, sink.WithTooltips())
	}
	return svgOpts
}

// ErrorView describes err as the placeholder shown instead of the chart.
func ErrorView(err error, opts Options) sink.StateView {
	return sink.StateView{
		State:   sink.StateError,
		Title:   "Could not load the sales data",
		Message: errors.UserMessage(err),
		Detail:  string(errors.GetCode(err)),
		Width:   opts.Width,
		Height:  opts.Height,
	}
}

// LoadingView is the placeholder shown while the dataset is in flight.
func LoadingView(opts Options) sink.StateView {
	return sink.StateView{
		State:   sink.StateLoading,
		Title:   "Video Game Sales",
		Message: "Loading dataset...",
		Width:   opts.Width,
		Height:  opts.Height,
		Refresh: 2,
	}
}

// RenderFailure renders the error view in every requested format.
func RenderFailure(err error, opts Options) (map[string][]byte, error) {
	v := ErrorView(err, opts)
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		var data []byte
		var rerr error

		switch format {
		case FormatSVG:
			data = sink.RenderStateSVG(v)
		case FormatHTML:
			data, rerr = sink.RenderStateHTML(v)
		case FormatPNG:
			data, rerr = render.ToPNG(sink.RenderStateSVG(v), opts.PNGScale)
		case FormatPDF:
			data, rerr = render.ToPDF(sink.RenderStateSVG(v))
		case FormatJSON:
			data, rerr = json.MarshalIndent(struct {
				State   string `json:"state"`
				Code    string `json:"code,omitempty"`
				Message string `json:"message"`
			}{string(sink.StateError), v.Detail, v.Message}, "", "  ")
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}

		if rerr != nil {
			return nil, fmt.Errorf("render %s: %w", format, rerr)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
