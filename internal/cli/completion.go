package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/treeflow/pkg/config"
	treeio "github.com/matzehuels/treeflow/pkg/io"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for treeflow and write it to stdout.

  bash:        source <(treeflow completion bash)
  zsh:         treeflow completion zsh > "${fpath[1]}/_treeflow"
  fish:        treeflow completion fish | source
  powershell:  treeflow completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// completeDocuments offers tree documents for a single positional argument.
func completeDocuments(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 && cmd.Args != nil && cmd.Args(cmd, append(args, toComplete)) != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return treeio.Extensions, cobra.ShellCompDirectiveFilterFileExt
}

// completeFormats offers the render formats with a short description each.
func completeFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{
		config.FormatSVG + "\tcanvas drawing",
		config.FormatDOT + "\tGraphviz DOT source",
		config.FormatGraphviz + "\tSVG laid out by Graphviz",
		config.FormatJSON + "\tresolved canvas geometry",
	}, cobra.ShellCompDirectiveNoFileComp
}
