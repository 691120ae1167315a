package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treemap/pkg/dataset"
	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/render/palette"
)

// statsCommand creates the stats command for summarizing the dataset.
func (c *CLI) statsCommand() *cobra.Command {
	var (
		selector string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the dataset per platform",
		Example: `  treemap stats
  treemap stats --select '$.children[?(@.name == "Wii")]'
  treemap stats --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			p, err := cfg.ParsedPalette()
			if err != nil {
				return err
			}
			return c.runStats(cmd.Context(), selector, p, asJSON)
		},
	}

	cmd.Flags().StringVar(&selector, "select", "", "JSONPath selecting the part of the dataset to summarize")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")

	return cmd
}

func (c *CLI) runStats(ctx context.Context, selector string, p palette.Palette, asJSON bool) error {
	logger := loggerFromContext(ctx)

	spinner := newSpinnerWithContext(ctx, "Fetching dataset...")
	spinner.Start()
	res := c.newRunner(logger).Fetch(ctx)
	if !res.OK() {
		spinner.StopWithError("Fetch failed")
		return res.Err
	}
	spinner.Stop()

	root, err := dataset.Select(res.Root, selector)
	if err != nil {
		return err
	}
	stats := dataset.Summarize(root)

	if asJSON {
		data, err := json.MarshalIndent(stats, "", "  ")
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode stats")
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	// Colors are informational; an overflowing palette leaves swatches blank.
	colors := map[string]string{}
	if a, err := palette.Assign(root.Groups(), p); err == nil {
		colors = a.Map()
	} else {
		printWarning("%s", errors.UserMessage(err))
	}

	fmt.Fprintln(out, StyleTitle.Render(stats.Name))
	printStats(stats.Groups, stats.Leaves, stats.Total)
	fmt.Fprintln(out, groupTable(stats, colors))
	printKeyValue("Source", res.URL)
	printKeyValue("Fetched", fmt.Sprintf("%s in %s", formatBytes(res.Bytes), res.Duration.Round(time.Millisecond)))
	return nil
}

// formatBytes renders a byte count in KB or MB.
func formatBytes(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
