package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/absrewrite/cmd/absrewrite/opts"
	"github.com/walteh/absrewrite/pkg/rewrite"
	"gitlab.com/tozd/go/errors"
)

// NewSampleCmd creates the sample command
func NewSampleCmd(ro *opts.RootOpts) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Show the built-in sample and its rewrite under the current modes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ro.LoadConfig(cmd.Context(), false)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if raw {
				fmt.Fprintln(out, rewrite.Sample)
				return nil
			}

			modes := cfg.RewriteModes()
			fmt.Fprint(out, pterm.DefaultSection.Sprint("input"))
			fmt.Fprintln(out, rewrite.Sample)
			fmt.Fprint(out, pterm.DefaultSection.Sprintf("eq=%s le=%s", modes.Eq, modes.Le))
			if _, err := fmt.Fprintln(out, rewrite.Transform(rewrite.Sample, modes)); err != nil {
				return errors.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print only the sample text, suitable for piping into transform")
	return cmd
}
