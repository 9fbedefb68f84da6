package rewrite

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	numberRe = regexp.MustCompile(`^-?\d+(?:\.\d+)?$`)
	identRe  = regexp.MustCompile(`^[A-Za-z_]\w*$`)
)

// maxFractionDigits caps the fractional digits of a non-integer square.
const maxFractionDigits = 12

// IsNumber reports whether the trimmed s is an optionally negative decimal
// literal: digits with an optional fractional part. No exponent, no leading +.
func IsNumber(s string) bool {
	return numberRe.MatchString(strings.TrimSpace(s))
}

// IsIdent reports whether the trimmed s is a bare variable name.
func IsIdent(s string) bool {
	return identRe.MatchString(strings.TrimSpace(s))
}

// Wrap trims s and encloses it in parentheses unless it is already an
// identifier or a number, so it can sit next to a unary minus or ^2. An
// already enclosed group such as (A+B) is not wrapped again.
func Wrap(s string) string {
	t := strings.TrimSpace(s)
	if IsIdent(t) || IsNumber(t) || isEnclosed(t) {
		return t
	}
	return "(" + t + ")"
}

// isEnclosed reports whether the first and last bytes of t are a matching
// pair of parentheses around the whole value.
func isEnclosed(t string) bool {
	if len(t) < 2 || t[0] != '(' || t[len(t)-1] != ')' {
		return false
	}
	depth := 0
	for i := 0; i < len(t); i++ {
		switch t[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i != len(t)-1 {
				return false
			}
		}
		if depth < 0 {
			return false
		}
	}
	return depth == 0
}

// SquaredValue squares numeric values and formats the result; anything
// else is squared symbolically as Wrap(s) + "^2".
func SquaredValue(s string) string {
	t := strings.TrimSpace(s)
	if !IsNumber(t) {
		return Wrap(t) + "^2"
	}
	n, err := strconv.ParseFloat(t, 64)
	if err != nil {
		// IsNumber guarantees a parsable literal; overflow still lands here as ±Inf
		if !math.IsInf(n, 0) {
			return Wrap(t) + "^2"
		}
	}
	return formatSquare(n * n)
}

func formatSquare(v float64) string {
	switch {
	case math.IsInf(v, 0):
		return "Infinity"
	case math.IsNaN(v):
		return "NaN"
	case v == math.Trunc(v):
		if math.Abs(v) >= 1e21 {
			return strconv.FormatFloat(v, 'g', -1, 64)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	out := strconv.FormatFloat(v, 'f', maxFractionDigits, 64)
	out = strings.TrimRight(out, "0")
	return strings.TrimSuffix(out, ".")
}
