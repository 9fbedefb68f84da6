package status

import (
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// 🔍 Diff renders a line diff between before and after, or "" when they are
// equal. Removed lines start with "- ", added lines with "+ ", context with
// two spaces.
func Diff(path, before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	sb.WriteString(color.New(color.Bold).Sprint("--- a/"+path) + "\n")
	sb.WriteString(color.New(color.Bold).Sprint("+++ b/"+path) + "\n")
	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				sb.WriteString(color.RedString("- "+line) + "\n")
			case diffmatchpatch.DiffInsert:
				sb.WriteString(color.GreenString("+ "+line) + "\n")
			default:
				sb.WriteString("  " + line + "\n")
			}
		}
	}
	return sb.String()
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
