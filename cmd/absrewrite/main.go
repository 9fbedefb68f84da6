// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/absrewrite/cmd/absrewrite/commands"
	"github.com/walteh/absrewrite/cmd/absrewrite/opts"
	"github.com/walteh/absrewrite/pkg/log"
	"github.com/walteh/absrewrite/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ro := &opts.RootOpts{}
	rootCmd := newRootCmd(ro)
	rootCmd.SetArgs(args)
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	userLogger := ro.UserLogger
	if userLogger == nil {
		// flag parsing failed before the pre-run hook
		userLogger = log.NewUserLogger(ctx, stderr)
	}
	if errors.Is(err, operation.ErrRewriteNeeded) {
		userLogger.LogValidation(false, "Files need rewriting", nil)
		return 1
	}
	userLogger.LogValidation(false, "Command failed", err)
	return 1
}

// newRootCmd builds the command tree around ro
func newRootCmd(ro *opts.RootOpts) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "absrewrite",
		Short: "Rewrite abs(v) == n and abs(v) <= n into absolute-value-free forms",
		Long: `absrewrite rewrites absolute-value comparisons in plain text.

  abs(v) == n   eq modes: abs (unchanged), square (v^2 == n^2), split (v == -n or v == n)
  abs(v) <= n   le modes: abs (unchanged), square (v^2 <= n^2), range (-n <= v and v <= n)

It can transform text given on the command line, or rewrite and check files
selected by a config file.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := setupLogging(ro.Debug, cmd.ErrOrStderr())
			ctx := logger.WithContext(cmd.Context())
			cmd.SetContext(ctx)
			ro.UserLogger = log.NewUserLogger(ctx, cmd.ErrOrStderr())
			return nil
		},
	}

	addRootFlags(rootCmd, ro)

	rootCmd.AddCommand(
		commands.NewTransformCmd(ro),
		commands.NewSampleCmd(ro),
		commands.NewRewriteCmd(ro),
		commands.NewCheckCmd(ro),
		commands.NewWatchCmd(ro),
		commands.NewModesCmd(ro),
		newVersionCmd(),
	)

	return rootCmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, ro *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&ro.ConfigFile, "config", "c", ".absrewrite.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&ro.Debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().StringVar(&ro.Eq, "eq", "", "equality mode: abs, square or split (overrides config)")
	cmd.PersistentFlags().StringVar(&ro.Le, "le", "", "inequality mode: abs, square or range (overrides config)")
}

// setupLogging builds the zerolog logger carried in the command context.
// Structured events stay quiet unless --debug is set; users see the console
// lines and pterm notices instead.
func setupLogging(debug bool, w io.Writer) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
}
