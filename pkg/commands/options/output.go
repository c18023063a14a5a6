package options

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/streak/pkg/timeutil"
)

// OutputOptions
type OutputOptions struct {
	JSON bool
	// Out receives JSON errors; defaults to color.Output.
	Out io.Writer
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

// HandleError prints err as a JSON object when --json is set and swallows
// it; otherwise err is returned for cobra to report.
func (o *OutputOptions) HandleError(err error) error {
	if o.JSON && err != nil {
		out := map[string]string{
			"error": err.Error(),
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		w := o.Out
		if w == nil {
			w = color.Output
		}
		_, _ = fmt.Fprintln(w, string(b))
		return nil
	}
	return err
}

// StaleOptions
type StaleOptions struct {
	Stale string
}

func AddStaleArgs(cmd *cobra.Command, o *StaleOptions) {
	cmd.Flags().StringVar(&o.Stale, "stale", "",
		`Flag a last check-in older than this, example: --stale="1d12h".`)
}

// GetStale returns zero when --stale was not given.
func (o *StaleOptions) GetStale() (time.Duration, error) {
	if o.Stale == "" {
		return 0, nil
	}
	return timeutil.ParseSpan(o.Stale)
}
