package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/absrewrite/cmd/absrewrite/opts"
	"github.com/walteh/absrewrite/pkg/log"
	"github.com/walteh/absrewrite/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewCheckCmd creates the check command
func NewCheckCmd(ro *opts.RootOpts) *cobra.Command {
	var showDiff bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report files a rewrite would change",
		Long: `Check runs the rewriter over the files selected by the config without
writing anything. It exits non-zero when at least one file would change.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := ro.LoadConfig(ctx, true)
			if err != nil {
				return err
			}

			op, err := operation.NewCheckOperation(operation.Options{
				Config: cfg,
				Logger: log.New(cmd.ErrOrStderr(), *zerolog.Ctx(ctx)),
				Out:    cmd.OutOrStdout(),
			}, showDiff)
			if err != nil {
				return errors.Errorf("creating check operation: %w", err)
			}

			return operation.NewRunner(false).Run(ctx, op)
		},
	}

	cmd.Flags().BoolVar(&showDiff, "diff", false, "print a line diff for every file that would change")
	return cmd
}
