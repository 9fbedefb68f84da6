package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/absrewrite/cmd/absrewrite/opts"
	"github.com/walteh/absrewrite/pkg/config"
	"github.com/walteh/absrewrite/pkg/log"
	"github.com/walteh/absrewrite/pkg/operation"
	"github.com/walteh/absrewrite/pkg/watch"
)

// NewWatchCmd creates the watch command
func NewWatchCmd(ro *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Rewrite files now and again whenever they change",
		Long: `Watch runs rewrite once, then polls the selected files and the config
file. A burst of changes is coalesced into a single rerun after the
debounce window. Edits to the config file are picked up on the next rerun.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			cfg, err := ro.LoadConfig(ctx, true)
			if err != nil {
				return err
			}

			s := &watchSession{
				ro:     ro,
				cfg:    cfg,
				logger: log.New(cmd.ErrOrStderr(), *zerolog.Ctx(ctx)),
				out:    cmd.OutOrStdout(),
			}
			s.run(ctx)

			d := watch.NewDebouncer(cfg.DebounceDuration(), func() { s.rerun(ctx) })
			w := watch.NewWatcher(s.list, cfg.PollInterval(), d)

			ro.UserLogger.LogNotice(fmt.Sprintf("watching %s, press ctrl-c to stop", cfg.Root()))
			return w.Run(ctx)
		},
	}
	return cmd
}

// watchSession holds the config a watch reruns with
type watchSession struct {
	ro     *opts.RootOpts
	logger *log.Logger
	out    io.Writer

	mu  sync.Mutex
	cfg *config.Config
}

func (s *watchSession) config() *config.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// list returns the planned files and the config file, joined to the config root
func (s *watchSession) list(ctx context.Context) ([]string, error) {
	cfg := s.config()
	plan, err := operation.PlanFiles(ctx, cfg)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(plan.Files)+1)
	for _, rel := range plan.Files {
		paths = append(paths, filepath.Join(cfg.Root(), filepath.FromSlash(rel)))
	}
	if loc := cfg.Location(); loc != "" {
		paths = append(paths, loc)
	}
	return paths, nil
}

// rerun reloads the config, keeping the previous one when it no longer
// loads, and runs the rewrite again
func (s *watchSession) rerun(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	next, err := s.ro.LoadConfig(ctx, true)
	switch {
	case err != nil:
		s.ro.UserLogger.LogValidation(false, "Config reload failed, keeping the previous config", err)
	case next.Hash() != s.config().Hash():
		s.ro.UserLogger.LogNotice("Configuration changed")
		s.mu.Lock()
		s.cfg = next
		s.mu.Unlock()
	}

	s.run(ctx)
}

// run executes one rewrite pass. Failures are reported, not returned, so the
// watch keeps going.
func (s *watchSession) run(ctx context.Context) {
	op, err := operation.NewRewriteOperation(operation.Options{
		Config: s.config(),
		Logger: s.logger,
		Out:    s.out,
	})
	if err == nil {
		err = operation.NewRunner(false).Run(ctx, op)
	}
	if err != nil && ctx.Err() == nil {
		s.ro.UserLogger.LogValidation(false, "Rewrite failed", err)
	}
}
