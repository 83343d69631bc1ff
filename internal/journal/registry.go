package journal

import "sort"

// Line registry: stable integer identifiers for expense lines. Attachments
// and invoice links are keyed by (category, line_number), so a number, once
// assigned, must survive every subsequent merge.

// MaxLineNumber returns the highest assigned line number across the given
// lists. 0 means nothing is assigned yet; valid numbers start at 1.
func MaxLineNumber(lists ...[]*LineView) int {
	max := 0
	for _, list := range lists {
		for _, l := range list {
			if l.LineNumber > max {
				max = l.LineNumber
			}
		}
	}
	return max
}

// AssignLineNumbers fills missing line numbers across the manual and the
// invoice-derived list of one category and returns both merged, ordered by
// line number. The maximum is taken over BOTH lists before anything is
// assigned: manual lines get numbered first, invoice-derived lines after
// them, and lines that already carry a number are never renumbered. Running
// it again over its own output changes nothing.
func AssignLineNumbers(manual, paid []*LineView) []*LineView {
	maxLn := MaxLineNumber(manual, paid)

	for _, l := range manual {
		if l.LineNumber == 0 {
			maxLn++
			l.LineNumber = maxLn
		}
	}
	for _, l := range paid {
		if l.LineNumber == 0 {
			maxLn++
			l.LineNumber = maxLn
		}
	}

	combined := make([]*LineView, 0, len(manual)+len(paid))
	combined = append(combined, manual...)
	combined = append(combined, paid...)
	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].LineNumber < combined[j].LineNumber
	})
	return combined
}

// FillLineNumbers numbers a single client-submitted list in place (the save
// payload carries manual and mirrored lines already combined). Same rule:
// max first, then fill, never renumber.
func FillLineNumbers(lines []*LineView) {
	maxLn := MaxLineNumber(lines)
	for _, l := range lines {
		if l.LineNumber == 0 {
			maxLn++
			l.LineNumber = maxLn
		}
	}
}
