package commands

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"
)

const installPath = "tableflip.dev/streak/cmd/streak"

func addUpgrade(topLevel *cobra.Command) {
	target := "latest"

	cmd := &cobra.Command{
		Use:   "upgrade",
		Short: "Reinstall streak with go install.",
		Example: `
streak upgrade
streak upgrade --to v0.2.0
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			gobin, err := exec.LookPath("go")
			if err != nil {
				return fmt.Errorf("upgrade needs the go toolchain on PATH: %w", err)
			}
			ex := exec.Command(gobin, "install", installPath+"@"+target)
			var out bytes.Buffer
			ex.Stdout = &out
			ex.Stderr = &out
			if err := ex.Run(); err != nil {
				return fmt.Errorf("%s: %w\n%s", ex.String(), err, out.String())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "installed %s@%s (was %s)\n", installPath, target, version)
			return nil
		},
	}

	cmd.Flags().StringVar(&target, "to", target, "Version to install, a tag or \"latest\".")
	topLevel.AddCommand(cmd)
}
