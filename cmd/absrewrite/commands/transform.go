package commands

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/absrewrite/cmd/absrewrite/opts"
	"github.com/walteh/absrewrite/pkg/rewrite"
	"gitlab.com/tozd/go/errors"
)

// NewTransformCmd creates the transform command
func NewTransformCmd(ro *opts.RootOpts) *cobra.Command {
	var (
		inputFile  string
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "transform [text...]",
		Short: "Rewrite text from arguments, a file or stdin",
		Long: `Transform rewrites a piece of text under the current modes.
The text comes from:
1. The arguments, joined by spaces
2. The file named by --file
3. Standard input
The result goes to standard output, followed by a newline when it does not
already end in one. With --output it is written to that file byte for byte,
with no newline added.`,
		Example: `  absrewrite transform --eq split 'abs(x) == 4'
  absrewrite transform --le range --file notes.txt --output notes.out.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := ro.LoadConfig(ctx, false)
			if err != nil {
				return err
			}

			var src io.Reader
			switch {
			case len(args) > 0:
				src = strings.NewReader(strings.Join(args, " "))
			case inputFile != "":
				f, err := os.Open(inputFile)
				if err != nil {
					return errors.Errorf("opening input: %w", err)
				}
				defer f.Close()
				src = f
			default:
				src = cmd.InOrStdin()
			}

			res, err := rewrite.NewRewriter().Rewrite(ctx, src, cfg.RewriteModes())
			if err != nil {
				return errors.Errorf("transforming input: %w", err)
			}
			zerolog.Ctx(ctx).Debug().
				Int("replacements", res.ReplacementCount()).
				Bool("modified", res.WasModified).
				Msg("transformed input")

			if err := writeOutput(cmd.OutOrStdout(), outputFile, res.ModifiedContent); err != nil {
				return errors.Errorf("failed to write output: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "file", "f", "", "read text from this file when no arguments are given")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "write the result to this file instead of stdout")
	return cmd
}

// writeOutput sends content to path, or to stdout when path is empty. Output
// to stdout always ends in a newline.
func writeOutput(stdout io.Writer, path string, content []byte) error {
	if path != "" {
		return os.WriteFile(path, content, 0o644)
	}
	if !bytes.HasSuffix(content, []byte("\n")) {
		content = append(content, '\n')
	}
	_, err := stdout.Write(content)
	return err
}
