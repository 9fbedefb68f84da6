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

package rewrite

import (
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// Transform rewrites every abs(v) == n and abs(v) <= n in text according to
// modes. Equality matches are rewritten first; the inequality pass then scans
// the result of the first pass. Text outside matches is left untouched.
func Transform(text string, modes Modes) string {
	out, _ := transform(text, modes)
	return out
}

// counts holds the number of matches whose replacement differs from the
// matched text, per kind.
type counts struct {
	eq int
	le int
}

func transform(text string, modes Modes) (string, counts) {
	var c counts
	out, n := substitute(Equality, text, modes)
	c.eq = n
	out, n = substitute(Inequality, out, modes)
	c.le = n
	return out, c
}

// substitute splices the replacement of every match of kind k into text and
// reports how many matches changed.
func substitute(k Kind, text string, modes Modes) (string, int) {
	sc := NewScanner(k, text)
	m, ok := sc.Next()
	if !ok {
		return text, 0
	}

	var b strings.Builder
	b.Grow(len(text))
	last, changed := 0, 0
	for ; ok; m, ok = sc.Next() {
		repl := Replacement(m, modes)
		if repl != m.Text {
			changed++
		}
		b.WriteString(text[last:m.Start])
		b.WriteString(repl)
		last = m.End
	}
	b.WriteString(text[last:])
	return b.String(), changed
}

// Replacement returns the rewritten form of a single match. An unrecognized
// mode returns the match text verbatim.
func Replacement(m Match, modes Modes) string {
	v, n := m.Ident, strings.TrimSpace(m.RHS)
	switch m.Kind {
	case Equality:
		switch modes.Eq {
		case EqAbs:
			return "abs(" + v + ") == " + n
		case EqSquare:
			return v + "^2 == " + SquaredValue(n)
		case EqSplit:
			w := Wrap(n)
			return v + " == -" + w + " or " + v + " == " + w
		}
	case Inequality:
		switch modes.Le {
		case LeAbs:
			return "abs(" + v + ") <= " + n
		case LeSquare:
			return v + "^2 <= " + SquaredValue(n)
		case LeRange:
			w := Wrap(n)
			return "-" + w + " <= " + v + " and " + v + " <= " + w
		}
	}
	return m.Text
}

// Result describes one Rewrite call.
type Result struct {
	// OriginalContent is the content before rewriting
	OriginalContent []byte

	// ModifiedContent is the content after rewriting
	ModifiedContent []byte

	// EqualityCount is the number of abs(v) == n matches that changed
	EqualityCount int

	// InequalityCount is the number of abs(v) <= n matches that changed
	InequalityCount int

	// WasModified reports whether the content differs after rewriting
	WasModified bool
}

// ReplacementCount is the total number of matches that changed.
func (r *Result) ReplacementCount() int {
	return r.EqualityCount + r.InequalityCount
}

// Rewriter applies Transform to streamed content and reports what changed.
type Rewriter struct{}

// NewRewriter creates a new Rewriter
func NewRewriter() *Rewriter {
	return &Rewriter{}
}

// Rewrite reads all of content and rewrites it with modes.
func (r *Rewriter) Rewrite(ctx context.Context, content io.Reader, modes Modes) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Errorf("rewriting content: %w", err)
	}

	original, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	out, c := transform(string(original), modes)

	result := &Result{
		OriginalContent: original,
		ModifiedContent: []byte(out),
		EqualityCount:   c.eq,
		InequalityCount: c.le,
		WasModified:     out != string(original),
	}

	zerolog.Ctx(ctx).Trace().
		Str("eq_mode", string(modes.Eq)).
		Str("le_mode", string(modes.Le)).
		Int("eq_rewrites", c.eq).
		Int("le_rewrites", c.le).
		Bool("modified", result.WasModified).
		Msg("rewrote content")

	return result, nil
}

// ValidateModes reports unrecognized modes for callers that want strict input.
func (r *Rewriter) ValidateModes(modes Modes) error {
	if err := modes.Validate(); err != nil {
		return errors.Errorf("validating modes: %w", err)
	}
	return nil
}
