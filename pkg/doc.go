// Package pkg provides the core libraries for the treemap renderer.
//
// # Overview
//
// Treemap draws the video game sales dataset as a squarified treemap: every
// title is a rectangle whose area follows its sales, colored by platform,
// with a legend and hover tooltips. The pkg directory is organized by stage:
//
//  1. [dataset] - Fetching, decoding, validating and selecting the dataset
//  2. [treemap] - The squarified layout
//  3. [render] - Palette, legend, output formats and the hierarchy diagram
//  4. [pipeline] - Orchestration (fetch → layout → render)
//
// # Architecture
//
// The data flow through treemap:
//
//	Dataset URL (one GET per run)
//	         ↓
//	    [dataset] package (decode + validate, optional JSONPath selection)
//	         ↓
//	    [treemap] package (squarified rectangles)
//	         ↓
//	    [render] packages (palette, legend, tooltips)
//	         ↓
//	    SVG/HTML/PNG/PDF/JSON output
//
// # Quick Start
//
// Fetch the dataset and render an SVG:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/treemap/pkg/dataset"
//	    "github.com/matzehuels/treemap/pkg/render/palette"
//	    "github.com/matzehuels/treemap/pkg/render/sink"
//	    "github.com/matzehuels/treemap/pkg/treemap"
//	)
//
//	// 1. Fetch
//	res := dataset.NewFetcher().Fetch(context.Background())
//	if !res.OK() {
//	    return res.Err
//	}
//
//	// 2. Compute layout
//	l, _ := treemap.Compute(res.Root, treemap.DefaultOptions())
//
//	// 3. Assign colors and render
//	a, _ := palette.Assign(l.Order, palette.Default())
//	svg := sink.RenderSVG(l, a, sink.WithTooltips())
//
// Most callers use [pipeline.Runner] instead, which runs the same stages and
// renders the error view when the fetch fails.
//
// # Main Packages
//
// [dataset] - The Node tree, the HTTP fetcher with its [dataset.Result], and
// JSONPath selection of subtrees.
//
// [treemap] - Squarified tiling with d3-style inner and outer padding.
// Layouts are deterministic and never alias the input.
//
// [render/palette] - Group → color assignment in first-seen order, the
// legend grid, and label contrast colors.
//
// [render/sink] - SVG, HTML, JSON, PNG and PDF writers plus the loading and
// error views.
//
// [render/hierarchy] - Node-link diagram of the platform tree via Graphviz.
//
// [pipeline] - The fetch → layout → render pipeline shared by the CLI, the
// HTTP server and the terminal viewer.
//
// ## Support
//
// [config] - TOML config file, .env and TREEMAP_* environment overrides.
//
// [errors] - Coded errors and input validation.
//
// [observability] - Hooks for fetch, pipeline and HTTP events.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                # All tests
//	go test ./pkg/treemap/...        # Specific package
//	go test -run Example ./pkg/...   # Examples only
//
// [dataset]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/dataset
// [dataset.Result]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/dataset#Result
// [treemap]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/treemap
// [render]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/render
// [render/palette]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/render/palette
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/render/sink
// [render/hierarchy]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/render/hierarchy
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/pipeline
// [pipeline.Runner]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/pipeline#Runner
// [config]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/treemap/pkg/buildinfo
package pkg
