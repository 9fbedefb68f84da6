package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/absrewrite/cmd/absrewrite/opts"
	"github.com/walteh/absrewrite/pkg/log"
	"github.com/walteh/absrewrite/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewRewriteCmd creates the rewrite command
func NewRewriteCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		write bool
		async bool
	)

	cmd := &cobra.Command{
		Use:   "rewrite",
		Short: "Rewrite the files selected by the config",
		Long: `Rewrite runs the rewriter over every file matched by files.include
and not matched by files.ignore, relative to the config file's directory.
With write enabled, changed files are replaced in place; otherwise their
rewritten content is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := ro.LoadConfig(ctx, true)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("write") {
				cfg.Write = write
			}

			op, err := operation.NewRewriteOperation(operation.Options{
				Config: cfg,
				Logger: log.New(cmd.ErrOrStderr(), *zerolog.Ctx(ctx)),
				Out:    cmd.OutOrStdout(),
			})
			if err != nil {
				return errors.Errorf("creating rewrite operation: %w", err)
			}

			return operation.NewRunner(async).Run(ctx, op)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "replace changed files in place (overrides config)")
	cmd.Flags().BoolVar(&async, "async", false, "stop waiting as soon as the command is interrupted")
	return cmd
}
