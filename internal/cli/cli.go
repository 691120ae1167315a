// Package cli implements the treemap command-line interface.
//
// Every command drives the same [pipeline.Runner]: render writes the chart
// to files, serve publishes it over HTTP, view opens it in the terminal and
// stats summarizes the dataset. Settings come from the config file and
// TREEMAP_* environment variables; flags override both.
package cli

import (
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/matzehuels/treemap/pkg/buildinfo"
	"github.com/matzehuels/treemap/pkg/config"
	"github.com/matzehuels/treemap/pkg/dataset"
	"github.com/matzehuels/treemap/pkg/observability"
	"github.com/matzehuels/treemap/pkg/pipeline"
	"github.com/matzehuels/treemap/pkg/render/palette"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for output files and display.
const appName = "treemap"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	configPath string
	client     *http.Client // nil uses the fetcher's default client
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level. At debug level the pipeline's
// fetch, layout and render events are logged too.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
	if level <= log.DebugLevel {
		hooks := debugHooks{logger: c.Logger}
		observability.SetFetchHooks(hooks)
		observability.SetPipelineHooks(hooks)
		observability.SetHTTPHooks(hooks)
	}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Treemap renders the video game sales dataset as a squarified treemap",
		Long:         `Treemap fetches the video game sales dataset, lays every title out as a rectangle sized by its sales, colors it by platform and renders the result as SVG, HTML, PNG, PDF, JSON or an interactive terminal view.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/treemap/config.toml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(logger *log.Logger) *pipeline.Runner {
	opts := []dataset.FetcherOption{dataset.WithLogger(logger)}
	if c.client != nil {
		opts = append(opts, dataset.WithHTTPClient(c.client))
	}
	return pipeline.NewRunner(dataset.NewFetcher(opts...), logger)
}

// loadConfig reads the effective configuration.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutFlags are the canvas flags shared by render, serve and view.
type layoutFlags struct {
	width        float64
	height       float64
	paddingInner float64
	paddingOuter float64
	legendRows   int
	palette      string
	selector     string
	noTooltips   bool
}

func (f *layoutFlags) register(fs *pflag.FlagSet) {
	fs.Float64Var(&f.width, "width", pipeline.DefaultWidth, "canvas width")
	fs.Float64Var(&f.height, "height", pipeline.DefaultHeight, "canvas height")
	fs.Float64Var(&f.paddingInner, "padding-inner", pipeline.DefaultPaddingInner, "gap between sibling tiles")
	fs.Float64Var(&f.paddingOuter, "padding-outer", pipeline.DefaultPaddingOuter, "inset of each platform's tiles")
	fs.IntVar(&f.legendRows, "legend-rows", pipeline.DefaultLegendRows, "legend entries per column")
	fs.StringVar(&f.palette, "palette", "", "comma-separated platform colors")
	fs.StringVar(&f.selector, "select", "", "JSONPath selecting the part of the dataset to draw")
	fs.BoolVar(&f.noTooltips, "no-tooltips", false, "omit hover tooltips")
}

// options seeds pipeline options from cfg and applies every flag the user
// set explicitly.
func (f *layoutFlags) options(fs *pflag.FlagSet, cfg config.Config) (pipeline.Options, error) {
	opts, err := cfg.Options()
	if err != nil {
		return opts, err
	}
	if fs.Changed("width") {
		opts.Width = f.width
	}
	if fs.Changed("height") {
		opts.Height = f.height
	}
	if fs.Changed("padding-inner") {
		opts.PaddingInner = f.paddingInner
	}
	if fs.Changed("padding-outer") {
		opts.PaddingOuter = f.paddingOuter
	}
	if fs.Changed("legend-rows") {
		opts.LegendRows = f.legendRows
	}
	if fs.Changed("palette") {
		p, err := palette.Parse(f.palette)
		if err != nil {
			return opts, err
		}
		opts.Palette = p
	}
	if f.noTooltips {
		opts.Tooltips = false
	}
	opts.Select = f.selector
	return opts, nil
}

// parseFormats parses a comma-separated format string into a slice,
// dropping empty entries and repeats.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	var formats []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" || slices.Contains(formats, part) {
			continue
		}
		formats = append(formats, part)
	}
	if len(formats) == 0 {
		return []string{pipeline.FormatSVG}
	}
	return formats
}
