package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/flowgrid/flowgrid/pkg/diagram"
	"github.com/flowgrid/flowgrid/pkg/export"
	"github.com/flowgrid/flowgrid/pkg/render"
)

// completionCommand creates the completion command for generating shell
// completions. The generated script also completes the closed value sets
// flowgrid validates itself: --style, --direction, --kind, and --format.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate a shell completion script for flowgrid.

The script completes subcommands, flags, and flag values, so

  $ flowgrid render --style <TAB>

offers ascii, unicode, unicode-math, and compact.

To load completions:

Bash:
  $ source <(flowgrid completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ flowgrid completion bash > /etc/bash_completion.d/flowgrid
  # macOS:
  $ flowgrid completion bash > $(brew --prefix)/etc/bash_completion.d/flowgrid

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ flowgrid completion zsh > "${fpath[1]}/_flowgrid"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ flowgrid completion fish | source

  # To load completions for each session, execute once:
  $ flowgrid completion fish > ~/.config/fish/completions/flowgrid.fish

PowerShell:
  PS> flowgrid completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> flowgrid completion powershell > flowgrid.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}

// registerValueCompletions attaches flag value completion for whichever of
// the closed-set flags the command defines. Unknown flags are skipped, so
// commands register the whole set with one call.
func registerValueCompletions(cmd *cobra.Command) {
	values := map[string][]string{
		"style":     styleNames(),
		"direction": {"TD", "BT", "LR", "RL"},
		"kind":      kindNames(),
		"format":    export.Formats(),
	}
	for flag, names := range values {
		if cmd.Flags().Lookup(flag) == nil {
			continue
		}
		_ = cmd.RegisterFlagCompletionFunc(flag,
			cobra.FixedCompletions(names, cobra.ShellCompDirectiveNoFileComp))
	}
}

func styleNames() []string {
	styles := render.Styles()
	names := make([]string, len(styles))
	for i, s := range styles {
		names[i] = string(s)
	}
	return names
}

func kindNames() []string {
	kinds := diagram.NewRegistry().Kinds()
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}
