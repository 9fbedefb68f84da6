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
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🏃 Runner executes operations
type Runner struct {
	async bool
}

// 🏗️ NewRunner creates a new runner. An async runner returns as soon as the
// context is cancelled, without waiting for the operation to notice.
func NewRunner(async bool) *Runner {
	return &Runner{async: async}
}

// 🏃 Run executes an operation
func (r *Runner) Run(ctx context.Context, op Operation) error {
	start := time.Now()

	var err error
	if r.async {
		err = r.runAsync(ctx, op)
	} else {
		err = op.Execute(ctx)
	}

	zerolog.Ctx(ctx).Debug().
		Bool("async", r.async).
		Dur("elapsed", time.Since(start)).
		AnErr("error", err).
		Msg("operation finished")

	return err
}

// ⚡ runAsync runs an operation in the background and waits for it or the context
func (r *Runner) runAsync(ctx context.Context, op Operation) error {
	done := make(chan error, 1)
	go func() {
		done <- op.Execute(ctx)
	}()

	select {
	case <-ctx.Done():
		return errors.Errorf("operation cancelled: %w", ctx.Err())
	case err := <-done:
		if err != nil {
			return errors.Errorf("executing operation: %w", err)
		}
		return nil
	}
}
