// Package pipeline provides the fetch → layout → render pipeline for treemap.
//
// The CLI, the HTTP server and the terminal viewer all drive the same stages
// through a [Runner], so every entry point lays out and colors the dataset
// identically.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Fetch: one GET of the fixed dataset URL, decoded and validated
//  2. Layout: optional JSONPath selection, then the squarified layout
//  3. Render: palette assignment and output in each requested format
//
// A failed fetch is not a dead end. With [Options.RenderFailures] set the
// runner renders the error view in every requested format and returns a
// [Result] in state [StateFailed] so the failure is visible.
//
// # Usage
//
//	runner := pipeline.NewRunner(dataset.NewFetcher(), logger)
//	opts := pipeline.Options{Formats: []string{"svg", "html"}, Tooltips: true}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	fetched := runner.Fetch(ctx)
//	result, err := runner.Build(ctx, fetched, opts)
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treemap/pkg/dataset"
	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/render/palette"
	"github.com/matzehuels/treemap/pkg/treemap"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, Server, and Viewer
// =============================================================================

const (
	// DefaultWidth is the default canvas width in pixels.
	DefaultWidth = 960.0

	// DefaultHeight is the default canvas height in pixels.
	DefaultHeight = 570.0

	// DefaultPaddingInner is the default gap between sibling tiles.
	DefaultPaddingInner = 1.0

	// DefaultPaddingOuter is the default inset of a group's children.
	DefaultPaddingOuter = 0.0

	// DefaultLegendRows is the number of legend entries per column.
	DefaultLegendRows = palette.DefaultLegendRows

	// DefaultPNGScale is the raster scale for PNG output.
	DefaultPNGScale = 2.0
)

// Visualization types.
const (
	VizTypeTreemap   = "treemap"
	VizTypeHierarchy = "hierarchy"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeTreemap

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatHTML = "html"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatHTML: true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeTreemap:   true,
	VizTypeHierarchy: true,
}

// =============================================================================
// State
// =============================================================================

// State is the lifecycle phase of a render. It only moves forward:
// Unloaded → Loaded → Rendered, or Unloaded → Failed.
type State int

const (
	StateUnloaded State = iota
	StateLoaded
	StateRendered
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoaded:
		return "loaded"
	case StateRendered:
		return "rendered"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// CanAdvance reports whether moving from s to next is allowed.
func (s State) CanAdvance(next State) bool {
	switch s {
	case StateUnloaded:
		return next == StateLoaded || next == StateFailed
	case StateLoaded:
		return next == StateRendered || next == StateFailed
	}
	return false
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
type Options struct {
	// Layout options
	Select       string  `json:"select,omitempty"` // JSONPath subtree selector
	VizType      string  `json:"viz_type,omitempty"`
	Width        float64 `json:"width,omitempty"`
	Height       float64 `json:"height,omitempty"`
	PaddingInner float64 `json:"padding_inner"`
	PaddingOuter float64 `json:"padding_outer"`

	// Render options
	Formats    []string        `json:"formats,omitempty"`
	Palette    palette.Palette `json:"palette,omitempty"`
	LegendRows int             `json:"legend_rows,omitempty"`
	Tooltips   bool            `json:"tooltips,omitempty"`
	Title      string          `json:"title,omitempty"`  // defaults to the dataset name
	Leaves     bool            `json:"leaves,omitempty"` // hierarchy: include sales records
	PNGScale   float64         `json:"png_scale,omitempty"`

	// RenderFailures renders the error view instead of returning a fetch error.
	RenderFailures bool `json:"render_failures,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// State is StateRendered on success and StateFailed when the error view
	// was rendered instead.
	State State

	// Err is the fetch or build failure behind a StateFailed result.
	Err error

	// Fetch is the raw outcome of the dataset request.
	Fetch dataset.Result

	// Dataset is the (possibly selected) tree that was laid out.
	Dataset *dataset.Node

	// Layout holds the computed tile bounds.
	Layout treemap.Layout

	// Assignment is the group → color mapping used for this render.
	Assignment palette.Assignment

	// RenderID identifies this render pass in logs and output.
	RenderID string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Groups     int
	Leaves     int
	Tiles      int
	Total      float64
	Bytes      int64
	FetchTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, html, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errors.New(errors.ErrCodeInvalidVizType, "invalid viz_type: %q (must be one of: treemap, hierarchy)", vizType)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks every field and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := ValidateVizType(o.VizType); err != nil {
		return err
	}
	if err := errors.ValidateSelector(o.Select); err != nil {
		return err
	}
	return o.TreemapOptions().Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	o.Formats = uniqueFormats(o.Formats)
	if len(o.Palette) == 0 {
		o.Palette = palette.Default()
	}
	if o.LegendRows == 0 {
		o.LegendRows = DefaultLegendRows
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// uniqueFormats drops repeated formats, keeping the first occurrence, so
// each artifact is rendered and written once.
func uniqueFormats(formats []string) []string {
	seen := make(map[string]bool, len(formats))
	out := formats[:0:0]
	for _, f := range formats {
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.IsHierarchy() && slices.Contains(o.Formats, FormatHTML) {
		return errors.New(errors.ErrCodeInvalidFormat, "html output is only available for the treemap view")
	}
	if o.LegendRows < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "legend rows must be positive, got %d", o.LegendRows)
	}
	return nil
}

// IsTreemap returns true if this is a treemap visualization.
func (o *Options) IsTreemap() bool {
	return o.VizType == "" || o.VizType == VizTypeTreemap
}

// IsHierarchy returns true if this is a node-link hierarchy visualization.
func (o *Options) IsHierarchy() bool {
	return o.VizType == VizTypeHierarchy
}

// TreemapOptions returns the layout parameters.
func (o *Options) TreemapOptions() treemap.Options {
	return treemap.Options{
		Width:        o.Width,
		Height:       o.Height,
		PaddingInner: o.PaddingInner,
		PaddingOuter: o.PaddingOuter,
		Ratio:        treemap.Phi,
	}
}
