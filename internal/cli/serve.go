package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/treemap/internal/server"
	"github.com/matzehuels/treemap/internal/view"
)

// serveCommand creates the serve command for publishing the chart over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr   string
		layout layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the interactive treemap over HTTP",
		Long: `Serve the treemap as an HTML page with hover tooltips.

The dataset is fetched once at startup. Until it arrives every route answers
with the loading view; if the fetch fails they answer with the error view.

Routes:
  /              HTML page
  /treemap.svg   SVG chart
  /layout.json   tile bounds and legend
  /healthz       fetch state

Every chart route accepts ?select=<jsonpath> to draw part of the dataset.`,
		Example: `  treemap serve
  treemap serve --addr :9000 --palette '#1f77b4,#ff7f0e,#2ca02c'`,
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
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			logger := loggerFromContext(cmd.Context())
			opts.Logger = logger
			srv := server.New(c.newRunner(logger), view.NewStore(), opts, logger)

			printInfo("Serving on %s", StyleLink.Render("http://"+cfg.Server.Addr))
			return srv.ListenAndServe(cmd.Context(), cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config: 127.0.0.1:8080)")
	layout.register(cmd.Flags())

	return cmd
}
