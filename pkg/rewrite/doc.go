/*
Package rewrite finds absolute-value comparisons in free text and rewrites them.

Two surface shapes are recognized:

	abs(v) == n
	abs(v) <= n

where v is a variable name and n is a number, a variable name, or a single
parenthesized group without nested parentheses. Each shape has its own mode:

	eq: abs     abs(v) == n
	    square  v^2 == n^2
	    split   v == -n or v == n

	le: abs     abs(v) <= n
	    square  v^2 <= n^2
	    range   -n <= v and v <= n

Numeric right-hand sides are squared numerically; anything else is squared
symbolically, e.g. (A+B)^2.

This is textual substitution only. The surrounding text is never parsed, and
everything outside a match is passed through unchanged.

🔍 Example:

	out := rewrite.Transform("abs(x) == 4", rewrite.Modes{Eq: rewrite.EqSplit, Le: rewrite.LeAbs})
	// out == "x == -4 or x == 4"
*/
package rewrite
