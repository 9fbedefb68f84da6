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

package operation

import (
	"context"
	"fmt"

	"github.com/walteh/absrewrite/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// ✏️ RewriteOperation rewrites every planned file. With Config.Write it
// replaces changed files on disk; otherwise it prints their rewritten
// content to Out in path order.
type RewriteOperation struct {
	*BaseOperation
}

// 📦 NewRewriteOperation creates a new rewrite operation
func NewRewriteOperation(opts Options) (*RewriteOperation, error) {
	base, err := NewBaseOperation(opts)
	if err != nil {
		return nil, errors.Errorf("creating rewrite operation: %w", err)
	}
	return &RewriteOperation{BaseOperation: base}, nil
}

// 🏃 Execute runs the rewrite operation
func (op *RewriteOperation) Execute(ctx context.Context) error {
	modes := op.Config.RewriteModes()
	op.Logger.Header(fmt.Sprintf("rewriting files (eq=%s, le=%s)", modes.Eq, modes.Le))

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
			entry.Status = status.StatusRewritten
			if op.Config.Write {
				if err := writeFileAtomic(abs, res.ModifiedContent); err != nil {
					return fileOutcome{}, err
				}
			}
		}
		return fileOutcome{entry: entry, result: res}, nil
	})

	if !op.Config.Write {
		for _, o := range op.sortedOutcomes() {
			if o.result == nil || !o.result.WasModified {
				continue
			}
			fmt.Fprintf(op.Out, "==> %s <==\n%s\n", o.entry.Path, o.result.ModifiedContent)
		}
	}

	op.Logger.LogNewline()
	if visitErr != nil {
		op.Logger.Error(status.FormatSummary(op.summary))
		return errors.Errorf("rewriting files: %w", visitErr)
	}
	op.Logger.Success(status.FormatSummary(op.summary))
	return nil
}
