package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/streak/pkg/clock"
	"tableflip.dev/streak/pkg/day"
)

// recentDays is how far back date completion offers days.
const recentDays = 14

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts.",
		Long: `To load completion in bash run

. <(streak completion bash)

To configure your shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(streak completion bash)

Dates for "streak start" and "streak relapse --on" complete to the last two weeks.
`,
		ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
		Args:      cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := "bash"
			if len(args) == 1 {
				shell = args[0]
			}
			return genCompletion(topLevel, shell, cmd.OutOrStdout())
		},
	}

	topLevel.AddCommand(cmd)
}

func genCompletion(root *cobra.Command, shell string, w io.Writer) error {
	switch shell {
	case "bash":
		return root.GenBashCompletion(w)
	case "zsh":
		return root.GenZshCompletion(w)
	case "fish":
		return root.GenFishCompletion(w, true)
	case "powershell":
		return root.GenPowerShellCompletionWithDesc(w)
	default:
		return fmt.Errorf("unsupported shell %q", shell)
	}
}

// completeDays offers the recent days, newest first, that start with
// toComplete. Day arguments are never files.
func completeDays(toComplete string) ([]string, cobra.ShellCompDirective) {
	today := clock.Today(clock.System{})
	var out []string
	for i := 0; i < recentDays; i++ {
		d := today.AddDays(-i)
		if strings.HasPrefix(d.String(), toComplete) {
			out = append(out, d.String()+"\t"+describeDay(i, d))
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func describeDay(ago int, d day.Day) string {
	switch ago {
	case 0:
		return "today"
	case 1:
		return "yesterday"
	default:
		return d.Weekday().String()
	}
}
