// Package operation runs the rewriter over the files selected by a config.
package operation

import (
	"bytes"
	"context"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/absrewrite/pkg/config"
	"github.com/walteh/absrewrite/pkg/log"
	"github.com/walteh/absrewrite/pkg/rewrite"
	"github.com/walteh/absrewrite/pkg/status"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🎯 Operation is one unit of work the runner executes
type Operation interface {
	Execute(ctx context.Context) error
}

// ErrRewriteNeeded is returned by the check operation when at least one
// file would change.
var ErrRewriteNeeded = errors.Base("files need rewriting")

// 🔧 Options contains what every file operation needs
type Options struct {
	// Config selects modes and files
	Config *config.Config
	// Logger receives per-file lines and the run summary
	Logger *log.Logger
	// Out receives printed content and diffs
	Out io.Writer
}

// 📦 Plan is the outcome of expanding the include and ignore globs
type Plan struct {
	Files   []string // slash-separated paths relative to the config root, sorted
	Skipped []string // paths matched by an include glob and then ignored
}

// 🗺️ PlanFiles expands cfg's include globs under cfg.Root and drops ignored
// paths. The config file itself is never planned.
func PlanFiles(ctx context.Context, cfg *config.Config) (*Plan, error) {
	root := cfg.Root()
	fsys := os.DirFS(root)

	self := ""
	if loc := cfg.Location(); loc != "" {
		self = filepath.ToSlash(filepath.Base(loc))
	}

	seen := make(map[string]bool)
	plan := &Plan{}
	for _, pattern := range cfg.Files.Include {
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding glob %q: %w", pattern, err)
		}
		for _, m := range matches {
			if seen[m] || m == self {
				continue
			}
			seen[m] = true

			ignored, err := isIgnored(m, cfg.Files.Ignore)
			if err != nil {
				return nil, err
			}
			if ignored {
				plan.Skipped = append(plan.Skipped, m)
				continue
			}
			plan.Files = append(plan.Files, m)
		}
	}
	sort.Strings(plan.Files)
	sort.Strings(plan.Skipped)

	zerolog.Ctx(ctx).Debug().
		Str("root", root).
		Int("files", len(plan.Files)).
		Int("skipped", len(plan.Skipped)).
		Msg("planned files")

	return plan, nil
}

func isIgnored(p string, patterns []string) (bool, error) {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, p)
		if err != nil {
			return false, errors.Errorf("matching ignore pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
		// a bare name ignores it anywhere in the tree
		if matched, _ := doublestar.Match(pattern, path.Base(p)); matched {
			return true, nil
		}
	}
	return false, nil
}

// fileOutcome carries what a worker produced for one file.
type fileOutcome struct {
	entry  status.Entry
	result *rewrite.Result
}

// 🏗️ BaseOperation holds the state shared by file operations
type BaseOperation struct {
	Options
	rewriter *rewrite.Rewriter
	summary  *status.Summary

	mu       sync.Mutex
	outcomes map[string]fileOutcome
}

// 🏭 NewBaseOperation validates opts and fills in defaults. The config is
// validated here too, so a hand-built Config gets its modes resolved and a
// positive concurrency.
func NewBaseOperation(opts Options) (*BaseOperation, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if err := config.Validate(context.Background(), opts.Config); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, zerolog.Nop())
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	return &BaseOperation{
		Options:  opts,
		rewriter: rewrite.NewRewriter(),
		summary:  status.NewSummary(),
		outcomes: make(map[string]fileOutcome),
	}, nil
}

// Summary returns the per-file outcomes of the last Execute.
func (op *BaseOperation) Summary() *status.Summary {
	return op.summary
}

// visit plans the files, records skipped ones, and calls fn for every file
// with at most Config.Concurrency calls in flight. A failing file is
// recorded and logged; it does not stop the others.
func (op *BaseOperation) visit(ctx context.Context, fn func(ctx context.Context, rel, abs string) (fileOutcome, error)) error {
	plan, err := PlanFiles(ctx, op.Config)
	if err != nil {
		return errors.Errorf("planning files: %w", err)
	}

	op.summary = status.NewSummary()
	op.outcomes = make(map[string]fileOutcome)

	for _, rel := range plan.Skipped {
		e := status.Entry{Path: rel, Status: status.StatusSkipped}
		op.summary.Record(e)
		op.Logger.LogFileRewrite(ctx, e)
	}

	root := op.Config.Root()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(op.Config.Concurrency)
	for _, rel := range plan.Files {
		g.Go(func() error {
			abs := filepath.Join(root, filepath.FromSlash(rel))
			out, err := fn(gctx, rel, abs)
			if err != nil {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				out.entry = status.Entry{Path: rel, Status: status.StatusError, Err: err}
			}
			out.entry.Path = rel

			op.mu.Lock()
			op.outcomes[rel] = out
			op.mu.Unlock()

			op.summary.Record(out.entry)
			op.Logger.LogFileRewrite(gctx, out.entry)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return errors.Errorf("visiting files: %w", err)
	}

	if failed := op.summary.Failed(); len(failed) > 0 {
		return errors.Errorf("%d of %d files failed, first %s: %w", len(failed), len(plan.Files), failed[0].Path, failed[0].Err)
	}
	return nil
}

// rewriteFile runs the rewriter over one file.
func (op *BaseOperation) rewriteFile(ctx context.Context, abs string) (*rewrite.Result, error) {
	f, err := os.Open(abs)
	if err != nil {
		return nil, errors.Errorf("opening file: %w", err)
	}
	defer f.Close()

	res, err := op.rewriter.Rewrite(ctx, f, op.Config.RewriteModes())
	if err != nil {
		return nil, errors.Errorf("rewriting %s: %w", filepath.Base(abs), err)
	}
	return res, nil
}

// sortedOutcomes returns the recorded outcomes ordered by path.
func (op *BaseOperation) sortedOutcomes() []fileOutcome {
	op.mu.Lock()
	defer op.mu.Unlock()
	out := make([]fileOutcome, 0, len(op.outcomes))
	for _, o := range op.outcomes {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].entry.Path < out[j].entry.Path })
	return out
}

// writeFileAtomic replaces dest with content through a temp file in the same
// directory, keeping the original permissions.
func writeFileAtomic(dest string, content []byte) error {
	info, err := os.Stat(dest)
	if err != nil {
		return errors.Errorf("stat %s: %w", dest, err)
	}

	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dest)+".absrewrite-*")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() { _ = os.Remove(tmpPath) }

	if _, err := io.Copy(tmp, bytes.NewReader(content)); err != nil {
		tmp.Close()
		cleanup()
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		cleanup()
		return errors.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		cleanup()
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
		cleanup()
		return errors.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		cleanup()
		return errors.Errorf("replacing %s: %w", dest, err)
	}
	return nil
}
