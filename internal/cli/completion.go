package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/treemap/pkg/pipeline"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Print a completion script for treemap to stdout.

Besides the commands (render, serve, view, stats, config), the scripts
complete output formats for --format, including comma-separated lists
such as "svg,html", and visualization types for --type.

  bash        source <(treemap completion bash)
  zsh         treemap completion zsh > "${fpath[1]}/_treemap"
  fish        treemap completion fish | source
  powershell  treemap completion powershell | Out-String | Invoke-Expression

Start a new shell after installing the zsh script.`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(w, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(w)
			case "fish":
				return cmd.Root().GenFishCompletion(w, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(w)
			}
			return nil
		},
	}

	return cmd
}

// completeFormats completes the last entry of a comma-separated --format
// value, skipping formats already listed.
func completeFormats(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	prefix, last := "", toComplete
	if i := strings.LastIndex(toComplete, ","); i >= 0 {
		prefix, last = toComplete[:i+1], toComplete[i+1:]
	}
	listed := strings.Split(prefix, ",")

	var out []string
	for _, f := range []string{pipeline.FormatSVG, pipeline.FormatHTML, pipeline.FormatPNG, pipeline.FormatPDF, pipeline.FormatJSON} {
		if !strings.HasPrefix(f, last) || containsTrimmed(listed, f) {
			continue
		}
		out = append(out, prefix+f)
	}
	return out, cobra.ShellCompDirectiveNoSpace | cobra.ShellCompDirectiveNoFileComp
}

// completeVizTypes completes the --type flag.
func completeVizTypes(_ *cobra.Command, _ []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, t := range []string{pipeline.VizTypeTreemap, pipeline.VizTypeHierarchy} {
		if strings.HasPrefix(t, toComplete) {
			out = append(out, t)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func containsTrimmed(list []string, s string) bool {
	for _, v := range list {
		if strings.TrimSpace(v) == s {
			return true
		}
	}
	return false
}
