package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treemap/internal/tui"
)

// viewCommand creates the view command for the interactive terminal treemap.
func (c *CLI) viewCommand() *cobra.Command {
	var layout layoutFlags

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Explore the treemap in the terminal",
		Long: `Open the treemap in a full-screen terminal view.

Hover a tile with the mouse to see its name, platform and sales. Press l to
toggle the legend, ? for help and q to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts, err := layout.options(cmd.Flags(), cfg)
			if err != nil {
				return err
			}

			// Log lines would tear the alternate screen.
			logger := newLogger(io.Discard, c.Logger.GetLevel())
			opts.Logger = logger
			return tui.Run(cmd.Context(), c.newRunner(logger), opts)
		},
	}

	layout.register(cmd.Flags())

	return cmd
}
