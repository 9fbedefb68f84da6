/*
Package status records and formats the outcome of a rewrite run.

🎯 Purpose:
- Classifies each visited file (unchanged, rewritten, pending, skipped, error)
- Tallies outcomes across concurrent workers
- Formats per-file lines, the run summary and line diffs for the console

🔍 Example:

	sum := status.NewSummary()
	sum.Record(status.Entry{Path: "a.txt", Status: status.StatusRewritten, Equalities: 2})
	fmt.Println(status.FormatSummary(sum)) // 1 file: 1 rewritten
*/
package status
