package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/streak/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the live terminal user interface",
		Example: `
streak ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEngine()
			if err != nil {
				return err
			}
			defer e.Close()
			i := ui.UI{Engine: e}
			return i.Do(background(cmd))
		},
	}

	topLevel.AddCommand(cmd)
}
