package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/treemap/pkg/dataset"
	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/observability"
	"github.com/matzehuels/treemap/pkg/render/palette"
	"github.com/matzehuels/treemap/pkg/treemap"
)

// Runner drives the pipeline stages.
//
// The Runner is stateless except for the fetcher and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Fetcher *dataset.Fetcher
	Logger  *log.Logger
}

// NewRunner creates a runner.
// If fetcher is nil, a default fetcher for the published dataset is used.
func NewRunner(fetcher *dataset.Fetcher, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	if fetcher == nil {
		fetcher = dataset.NewFetcher(dataset.WithLogger(logger))
	}
	return &Runner{Fetcher: fetcher, Logger: logger}
}

// Execute runs the complete fetch → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return r.Build(ctx, r.Fetch(ctx), opts)
}

// Fetch runs the fetch stage.
func (r *Runner) Fetch(ctx context.Context) dataset.Result {
	res := r.Fetcher.Fetch(ctx)
	if res.OK() {
		r.Logger.Info("fetched dataset",
			"bytes", res.Bytes,
			"duration", res.Duration)
	}
	return res
}

// Build runs layout and render on an already fetched dataset.
func (r *Runner) Build(ctx context.Context, fetched dataset.Result, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		State:     StateUnloaded,
		Fetch:     fetched,
		RenderID:  uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}
	result.Stats.FetchTime = fetched.Duration
	result.Stats.Bytes = fetched.Bytes

	if !fetched.OK() {
		err := fetched.Err
		if err == nil {
			err = errors.New(errors.ErrCodeEmptyDataset, "no dataset")
		}
		return r.fail(result, err, opts)
	}
	result.State = StateLoaded

	// Stage 1: Select + Layout
	layoutStart := time.Now()
	root, err := dataset.Select(fetched.Root, opts.Select)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	result.Dataset = root

	leaves := len(root.Leaves())
	observability.Pipeline().OnLayoutStart(ctx, leaves)
	l, err := treemap.Compute(root, opts.TreemapOptions())
	result.Stats.LayoutTime = time.Since(layoutStart)
	observability.Pipeline().OnLayoutComplete(ctx, len(l.Tiles), result.Stats.LayoutTime, err)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = l

	stats := dataset.Summarize(root)
	result.Stats.Groups = stats.Groups
	result.Stats.Leaves = stats.Leaves
	result.Stats.Total = stats.Total
	result.Stats.Tiles = len(l.Tiles)

	opts.Logger.Info("computed layout",
		"tiles", len(l.Tiles),
		"groups", stats.Groups,
		"duration", result.Stats.LayoutTime)

	// Stage 2: Render
	a, err := palette.Assign(l.Order, opts.Palette)
	if err != nil {
		return nil, fmt.Errorf("palette: %w", err)
	}
	result.Assignment = a

	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	artifacts, err := Render(ctx, RenderInput{
		Layout:     l,
		Dataset:    root,
		Assignment: a,
		RenderID:   result.RenderID,
	}, opts)
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, err)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.State = StateRendered

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"render_id", result.RenderID,
		"duration", result.Stats.RenderTime)

	return result, nil
}

func (r *Runner) fail(result *Result, err error, opts Options) (*Result, error) {
	if !opts.RenderFailures {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	result.State = StateFailed
	result.Err = err

	artifacts, rerr := RenderFailure(err, opts)
	if rerr != nil {
		return nil, fmt.Errorf("render error view: %w", rerr)
	}
	result.Artifacts = artifacts

	opts.Logger.Warn("rendered error view",
		"code", errors.GetCode(err),
		"render_id", result.RenderID)
	return result, nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
