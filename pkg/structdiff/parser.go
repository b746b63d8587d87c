package structdiff

import (
	"strconv"
	"strings"
)

// SafeInt extracts an integer from loosely formatted model output.
// Digits and minus signs are kept, everything else is dropped, and any
// remainder that still fails to parse becomes 0. "12 lines" -> 12,
// "none" -> 0, "-3" -> -3.
func SafeInt(value string) int {
	var cleaned strings.Builder
	for _, r := range value {
		if (r >= '0' && r <= '9') || r == '-' {
			cleaned.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(cleaned.String())
	if err != nil {
		return 0
	}
	return n
}

// normalizeLine trims whitespace and any leading bullet dashes so field
// prefixes match regardless of how the model formatted its list.
func normalizeLine(line string) string {
	return strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "- "))
}

// fieldValue returns the text after the first occurrence of prefix.
func fieldValue(line, prefix string) string {
	_, after, _ := strings.Cut(line, prefix)
	return strings.TrimSpace(after)
}

// splitList splits a comma-separated field into trimmed entries,
// treating "none" and "n/a" as empty.
func splitList(value string) []string {
	lower := strings.ToLower(strings.TrimSpace(value))
	if lower == "" || lower == "none" || lower == "n/a" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// ParseReport parses the whole-diff reply format (FILE SUMMARY blocks
// followed by an OVERALL STATISTICS block). It never fails: unrecognized
// lines are skipped and missing fields keep their zero values.
func ParseReport(text string) *StructuredDiff {
	result := &StructuredDiff{
		OverallStats: newOverallStats(),
	}

	var current *FileChange
	flush := func() {
		if current != nil {
			result.Files = append(result.Files, *current)
			current = nil
		}
	}

	for _, rawLine := range strings.Split(text, "\n") {
		line := normalizeLine(rawLine)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "OVERALL STATISTICS"):
			flush()

		case strings.HasPrefix(line, "FILE SUMMARY"):
			if current == nil {
				current = &FileChange{}
			}

		case strings.HasPrefix(line, "Name:"):
			// A Name line opens a new file block.
			if current != nil && current.Name != "" {
				flush()
			}
			if current == nil {
				current = &FileChange{}
			}
			current.Name = fieldValue(line, "Name:")

		case strings.HasPrefix(line, "Type:"):
			if current != nil {
				current.ChangeType = NormalizeChangeType(strings.ToLower(fieldValue(line, "Type:")))
			}

		case strings.HasPrefix(line, "Summary:"):
			if current != nil {
				current.Summary = fieldValue(line, "Summary:")
			}

		case strings.HasPrefix(line, "Lines Added:"):
			if current != nil {
				current.Additions = SafeInt(fieldValue(line, "Lines Added:"))
			}

		case strings.HasPrefix(line, "Lines Deleted:"):
			if current != nil {
				current.Deletions = SafeInt(fieldValue(line, "Lines Deleted:"))
			}

		case strings.HasPrefix(line, "Modified Functions:"):
			if current != nil {
				current.FunctionsModified = splitList(fieldValue(line, "Modified Functions:"))
			}

		case strings.HasPrefix(line, "Key Changes:"):
			// Header only; the changes follow as bullet lines.

		case strings.HasPrefix(line, "*"):
			if current != nil {
				change := strings.TrimSpace(strings.TrimLeft(line, "* "))
				if change != "" {
					current.KeyChanges = append(current.KeyChanges, change)
				}
			}

		case strings.HasPrefix(line, "Total Files Changed:"):
			result.OverallStats.TotalFiles = SafeInt(fieldValue(line, "Total Files Changed:"))

		case strings.HasPrefix(line, "Total Additions:"):
			result.OverallStats.TotalAdditions = SafeInt(fieldValue(line, "Total Additions:"))

		case strings.HasPrefix(line, "Total Deletions:"):
			result.OverallStats.TotalDeletions = SafeInt(fieldValue(line, "Total Deletions:"))

		case strings.HasPrefix(line, "Modified:"):
			result.OverallStats.ChangeTypes[ChangeModify] = SafeInt(fieldValue(line, "Modified:"))

		case strings.HasPrefix(line, "Added:"):
			result.OverallStats.ChangeTypes[ChangeAdd] = SafeInt(fieldValue(line, "Added:"))

		case strings.HasPrefix(line, "Deleted:"):
			result.OverallStats.ChangeTypes[ChangeDelete] = SafeInt(fieldValue(line, "Deleted:"))
		}
	}
	flush()

	return result
}

// ParseFileAnalysis parses the per-file reply format used on the chunked
// path (Type/Summary/Lines Added/Lines Deleted/Modified Functions followed
// by bulleted key changes). Missing fields keep their defaults.
func ParseFileAnalysis(name, text string) FileChange {
	change := FileChange{
		Name:       name,
		ChangeType: ChangeModify,
	}

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.TrimSpace(rawLine)
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "Type:"):
			change.ChangeType = NormalizeChangeType(strings.ToLower(fieldValue(line, "Type:")))

		case strings.HasPrefix(line, "Summary:"):
			change.Summary = fieldValue(line, "Summary:")

		case strings.HasPrefix(line, "Lines Added:"):
			change.Additions = SafeInt(fieldValue(line, "Lines Added:"))

		case strings.HasPrefix(line, "Lines Deleted:"):
			change.Deletions = SafeInt(fieldValue(line, "Lines Deleted:"))

		case strings.HasPrefix(line, "Modified Functions:"):
			change.FunctionsModified = splitList(fieldValue(line, "Modified Functions:"))

		case strings.HasPrefix(line, "Key Changes:"):
			// Header only.

		case strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*"):
			item := strings.TrimSpace(strings.TrimLeft(line, "-* "))
			lower := strings.ToLower(item)
			if item != "" && lower != "none" && lower != "n/a" {
				change.KeyChanges = append(change.KeyChanges, item)
			}
		}
	}

	// A summary with no explicit key changes still gives callers something
	// to render.
	if len(change.KeyChanges) == 0 && change.Summary != "" {
		change.KeyChanges = []string{change.Summary}
	}

	return change
}
