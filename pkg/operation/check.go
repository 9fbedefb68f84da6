package operation

import (
	"context"
	"fmt"

	"github.com/walteh/absrewrite/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🔍 CheckOperation reports which planned files a rewrite would change,
// without touching them.
type CheckOperation struct {
	*BaseOperation
	showDiff bool
}

// 📦 NewCheckOperation creates a new check operation. With showDiff, a line
// diff of every pending file is printed to Out.
func NewCheckOperation(opts Options, showDiff bool) (*CheckOperation, error) {
	base, err := NewBaseOperation(opts)
	if err != nil {
		return nil, errors.Errorf("creating check operation: %w", err)
	}
	return &CheckOperation{BaseOperation: base, showDiff: showDiff}, nil
}

// 🏃 Execute runs the check; it wraps ErrRewriteNeeded when a file would change
func (op *CheckOperation) Execute(ctx context.Context) error {
	modes := op.Config.RewriteModes()
	op.Logger.Header(fmt.Sprintf("checking files (eq=%s, le=%s)", modes.Eq, modes.Le))

	visitErr := op.visit(ctx, func(ctx context.Context, rel, abs string) (fileOutcome, error) {
		res, err := op.rewriteFile(ctx, abs)
		if err != nil {
			return fileOutcome{}, err
		}
		entry := status.Entry{
			Status:       status.StatusUnchanged,
			Equalities:   res.EqualityCount,
			Inequalities: res.InequalityCount,
		}
		if res.WasModified {
			entry.Status = status.StatusPending
		}
		return fileOutcome{entry: entry, result: res}, nil
	})

	if op.showDiff {
		for _, o := range op.sortedOutcomes() {
			if o.result == nil || !o.result.WasModified {
				continue
			}
			fmt.Fprint(op.Out, status.Diff(o.entry.Path, string(o.result.OriginalContent), string(o.result.ModifiedContent)))
		}
	}

	op.Logger.LogNewline()
	if visitErr != nil {
		op.Logger.Error(status.FormatSummary(op.summary))
		return errors.Errorf("checking files: %w", visitErr)
	}

	if pending := op.summary.Changed(); len(pending) > 0 {
		op.Logger.Warningf("%s; run rewrite to apply", status.FormatSummary(op.summary))
		return errors.Errorf("%d files: %w", len(pending), ErrRewriteNeeded)
	}
	op.Logger.Success(status.FormatSummary(op.summary))
	return nil
}
