package structdiff

import (
	"fmt"
	"strings"
)

// FormatDetails renders a StructuredDiff as indented detail lines grouped
// by file: a "filename:" header followed by two-space-indented sub-entries
// for the summary, modified functions, and key changes. Files with nothing
// to report are skipped. Pure function of its input.
func FormatDetails(sd *StructuredDiff) []string {
	var details []string

	for _, file := range sd.Files {
		name := file.Name
		if name == "" {
			name = "Unknown file"
		}

		var entries []string
		if file.Summary != "" {
			entries = append(entries, fmt.Sprintf("Summary: %s", file.Summary))
		}
		if len(file.FunctionsModified) > 0 {
			entries = append(entries, fmt.Sprintf("Modified functions: %s", strings.Join(file.FunctionsModified, ", ")))
		}
		if len(file.KeyChanges) > 0 {
			entries = append(entries, "Key changes:")
			for _, change := range file.KeyChanges {
				entries = append(entries, fmt.Sprintf("  - %s", change))
			}
		}

		if len(entries) == 0 {
			continue
		}

		details = append(details, name+":")
		for _, entry := range entries {
			details = append(details, "  "+entry)
		}
	}

	return details
}
