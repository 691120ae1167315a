package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/pipeline"
)

// renderOpts holds the flags of the render command that are not layout flags.
type renderOpts struct {
	output  string // output file (single format) or base path
	formats string // comma-separated formats
	vizType string
	title   string
	leaves  bool
}

// renderCommand creates the render command for writing the chart to files.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		opts   renderOpts
		layout layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Fetch the dataset and render the treemap to files",
		Long: `Fetch the video game sales dataset and render it.

The treemap is written as SVG by default. Request several formats at once
with a comma-separated --format list; each is written next to the base path
given by --output. If the dataset cannot be fetched the error view is
written instead and the command exits non-zero.`,
		Example: `  treemap render
  treemap render -f svg,html -o sales
  treemap render -f png --width 1920 --height 1080
  treemap render -t hierarchy -f svg --select '$.children[0]' --leaves`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			popts, err := layout.options(cmd.Flags(), cfg)
			if err != nil {
				return err
			}
			popts.Formats = parseFormats(opts.formats)
			popts.VizType = opts.vizType
			popts.Title = opts.title
			popts.Leaves = opts.leaves
			popts.RenderFailures = true
			if err := popts.ValidateAndSetDefaults(); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), popts, opts.output)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (default: treemap)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), html, png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.vizType, "type", "t", pipeline.DefaultVizType, "visualization type: treemap (default), hierarchy")
	cmd.Flags().StringVar(&opts.title, "title", "", "chart title (default: dataset name)")
	cmd.Flags().BoolVar(&opts.leaves, "leaves", false, "include individual titles (hierarchy)")
	layout.register(cmd.Flags())
	_ = cmd.RegisterFlagCompletionFunc("format", completeFormats)
	_ = cmd.RegisterFlagCompletionFunc("type", completeVizTypes)

	return cmd
}

// runRender executes the pipeline and writes every artifact.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	spinner := newSpinnerWithContext(ctx, "Fetching dataset...")
	spinner.Start()

	result, err := c.newRunner(logger).Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := writeArtifacts(result.Artifacts, opts.Formats, output)
	if err != nil {
		return err
	}

	if result.State == pipeline.StateFailed {
		printError("Could not load the sales data: %s", errors.UserMessage(result.Err))
		printDetail("code %s, error view written instead", errors.GetCode(result.Err))
		for _, p := range paths {
			printFile(p)
		}
		return fmt.Errorf("fetch dataset: %w", result.Err)
	}

	prog.done(fmt.Sprintf("Rendered %d tiles", result.Stats.Tiles))
	printSuccess("Render complete")
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Stats.Groups, result.Stats.Tiles, result.Stats.Total)
	printNewline()
	printNextStep("Explore interactively", appName+" view")
	return nil
}

// writeArtifacts writes each format in order and returns the paths written.
func writeArtifacts(artifacts map[string][]byte, formats []string, output string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := outputPath(output, format, len(formats))
		if err := errors.ValidateOutputPath(path); err != nil {
			return paths, err
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return paths, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// outputPath picks the file for one format. A single format with an explicit
// output uses that path as is; otherwise the format is appended to the base
// path after stripping any known format extension.
func outputPath(output, format string, count int) string {
	if output != "" && count == 1 {
		return output
	}
	return basePath(output) + "." + format
}

// basePath strips a known format extension from output, defaulting to the
// application name.
func basePath(output string) string {
	if output == "" {
		return appName
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
