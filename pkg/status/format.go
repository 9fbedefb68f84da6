package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	fileIndent  = 4  // spaces to indent file entries
	nameWidth   = 35 // Base width for filename
	statusWidth = 12 // Width for status text
)

// summaryOrder is the order statuses appear in FormatSummary.
var summaryOrder = []FileStatus{StatusRewritten, StatusPending, StatusUnchanged, StatusSkipped, StatusError}

// 🎯 FormatFileLine formats one file outcome for display
func FormatFileLine(path string, st FileStatus, eq, le int) string {
	var prefix string
	switch st {
	case StatusRewritten:
		prefix = color.GreenString("✓")
	case StatusPending:
		prefix = color.YellowString("⟳")
	case StatusError:
		prefix = color.RedString("✗")
	case StatusUnchanged:
		prefix = color.CyanString("•")
	default:
		prefix = color.HiBlackString("-")
	}

	return fmt.Sprintf("%s%s %-*s %-*s eq=%d le=%d",
		strings.Repeat(" ", fileIndent),
		prefix,
		nameWidth, path,
		statusWidth, st.String(),
		eq, le,
	)
}

// 🧾 FormatSummary formats the one-line tally of a run
func FormatSummary(s *Summary) string {
	total := s.Total()
	noun := "files"
	if total == 1 {
		noun = "file"
	}
	head := fmt.Sprintf("%d %s", total, noun)

	counts := s.Counts()
	var parts []string
	for _, st := range summaryOrder {
		if n := counts[st]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, st))
		}
	}
	if len(parts) == 0 {
		return head
	}
	return head + ": " + strings.Join(parts, ", ")
}
