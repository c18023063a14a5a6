package options

import (
	"errors"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// ConfirmOptions
type ConfirmOptions struct {
	Yes bool
}

func AddConfirmArgs(cmd *cobra.Command, o *ConfirmOptions) {
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		"Confirm a destructive change.")
}

// Confirm returns true when --yes was given. Otherwise, and only when
// interactive, it asks label as a y/N question on the terminal.
func (o *ConfirmOptions) Confirm(label string, interactive bool) (bool, error) {
	if o.Yes || !interactive {
		return o.Yes, nil
	}
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) || errors.Is(err, promptui.ErrInterrupt) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
