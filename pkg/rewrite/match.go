package rewrite

import (
	"regexp"
	"strings"
)

// Kind identifies which comparison shape a Match came from.
type Kind int

const (
	Equality   Kind = iota // abs(v) == n
	Inequality             // abs(v) <= n
)

func (k Kind) String() string {
	switch k {
	case Equality:
		return "equality"
	case Inequality:
		return "inequality"
	default:
		return "unknown"
	}
}

// Operator returns the comparison token of the kind.
func (k Kind) Operator() string {
	if k == Inequality {
		return "<="
	}
	return "=="
}

const (
	identPattern = `[A-Za-z_]\w*`
	// number | identifier | one level of parentheses on a single line
	rhsPattern = `(-?\d+(?:\.\d+)?|[A-Za-z_]\w*|\([^()\n]*\))`
	// \s plus vertical tab and Unicode spaces such as U+00A0 and U+3000
	spacePattern = `[\s\v\p{Zs}\x{FEFF}\x{2028}\x{2029}]*`
)

// group 1: IDENT, group 2: RHS
var (
	equalityRe   = comparisonRe("==")
	inequalityRe = comparisonRe("<=")
)

func comparisonRe(op string) *regexp.Regexp {
	return regexp.MustCompile(`\babs\(` + spacePattern + `(` + identPattern + `)` + spacePattern +
		`\)` + spacePattern + regexp.QuoteMeta(op) + spacePattern + rhsPattern)
}

func (k Kind) regexp() *regexp.Regexp {
	if k == Inequality {
		return inequalityRe
	}
	return equalityRe
}

// Match is one occurrence of a comparison pattern. Start and End are byte
// offsets into the scanned text.
type Match struct {
	Kind  Kind
	Start int
	End   int
	Ident string
	RHS   string
	Text  string
}

// Scanner walks the non-overlapping matches of one Kind from left to right.
// It does no work until Next is called and can be restarted with Reset.
type Scanner struct {
	kind Kind
	text string
	pos  int
}

// NewScanner returns a Scanner over text for matches of kind k.
func NewScanner(k Kind, text string) *Scanner {
	return &Scanner{kind: k, text: text}
}

// Next returns the next match, or false once the text is exhausted.
func (s *Scanner) Next() (Match, bool) {
	re := s.kind.regexp()
	for s.pos <= len(s.text) {
		loc := re.FindStringSubmatchIndex(s.text[s.pos:])
		if loc == nil {
			s.pos = len(s.text) + 1
			return Match{}, false
		}
		base := s.pos
		start, end := base+loc[0], base+loc[1]
		// slicing hides the preceding byte from \b; re-check it against the full text
		if start == base && start > 0 && isWordByte(s.text[start-1]) {
			s.pos = start + 1
			continue
		}
		s.pos = end
		return Match{
			Kind:  s.kind,
			Start: start,
			End:   end,
			Ident: s.text[base+loc[2] : base+loc[3]],
			RHS:   strings.TrimSpace(s.text[base+loc[4] : base+loc[5]]),
			Text:  s.text[start:end],
		}, true
	}
	return Match{}, false
}

// Reset rewinds the scanner to the start of its text.
func (s *Scanner) Reset() {
	s.pos = 0
}

// FindMatches collects every match of kind k in text.
func FindMatches(k Kind, text string) []Match {
	var out []Match
	sc := NewScanner(k, text)
	for m, ok := sc.Next(); ok; m, ok = sc.Next() {
		out = append(out, m)
	}
	return out
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}
