package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/absrewrite/cmd/absrewrite/opts"
	"github.com/walteh/absrewrite/pkg/rewrite"
	"gitlab.com/tozd/go/errors"
)

const (
	eqExample = "abs(x) == 4"
	leExample = "abs(x) <= 3"
)

// NewModesCmd creates the modes command
func NewModesCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modes",
		Short: "List rewrite modes and mark the active ones",
		Long: `Modes lists every eq and le mode with an example rewrite.
The active modes come from the config and the --eq and --le flags;
"abs" for both is the default and leaves text unchanged.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ro.LoadConfig(cmd.Context(), false)
			if err != nil {
				return err
			}

			table, err := pterm.DefaultTable.WithHasHeader().WithData(modesTable(cfg.RewriteModes())).Srender()
			if err != nil {
				return errors.Errorf("rendering modes table: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), table)
			return nil
		},
	}
	return cmd
}

// modesTable builds one row per mode, eq modes first
func modesTable(active rewrite.Modes) pterm.TableData {
	defaults := rewrite.DefaultModes()
	data := pterm.TableData{{"Pattern", "Mode", "Example", "Description", "Active"}}

	for _, m := range rewrite.AllEqModes() {
		name := string(m)
		if m == defaults.Eq {
			name += " (default)"
		}
		example := rewrite.Transform(eqExample, rewrite.Modes{Eq: m, Le: rewrite.LeAbs})
		data = append(data, []string{"eq", name, example, m.Describe(), mark(m == active.Eq)})
	}
	for _, m := range rewrite.AllLeModes() {
		name := string(m)
		if m == defaults.Le {
			name += " (default)"
		}
		example := rewrite.Transform(leExample, rewrite.Modes{Eq: rewrite.EqAbs, Le: m})
		data = append(data, []string{"le", name, example, m.Describe(), mark(m == active.Le)})
	}
	return data
}

func mark(on bool) string {
	if on {
		return "●"
	}
	return ""
}
