package commitmsg

import "strings"

// Message is a structured commit message.
type Message struct {
	// Title is the first line. May be empty, in which case the rendered
	// message starts with the Summary section.
	Title string

	// Summary is a short paragraph describing the change set.
	Summary string

	// Details are pre-formatted detail lines grouped by file.
	Details []string

	// FilesChanged lists the paths included in the commit.
	FilesChanged []string
}

// Render produces the final commit message text. Sections are separated
// by blank lines and empty sections are omitted.
func (m *Message) Render() string {
	var lines []string

	if m.Title != "" {
		lines = append(lines, m.Title, "")
	}

	if m.Summary != "" {
		lines = append(lines, "Summary:", m.Summary, "")
	}

	if len(m.Details) > 0 {
		lines = append(lines, "Details:")
		for _, detail := range m.Details {
			if strings.TrimSpace(detail) == "" {
				continue
			}
			// File headers and indented sub-entries keep their shape;
			// everything else becomes a bullet.
			if strings.HasSuffix(detail, ":") || strings.HasPrefix(detail, "  ") {
				lines = append(lines, detail)
			} else {
				lines = append(lines, "- "+detail)
			}
		}
		lines = append(lines, "")
	}

	if len(m.FilesChanged) > 0 {
		lines = append(lines, "Files Changed:")
		for _, file := range m.FilesChanged {
			lines = append(lines, "- "+file)
		}
	}

	return strings.Join(lines, "\n")
}

// Minimal builds the last-resort commit message used when structured
// generation fails entirely: the user's message (or a generic line) plus
// the list of changed files.
func Minimal(userMsg string, files []string) string {
	var sb strings.Builder

	if strings.TrimSpace(userMsg) != "" {
		sb.WriteString(userMsg)
	} else {
		sb.WriteString("Update files")
	}
	sb.WriteString("\n\nFiles Changed:\n")
	for _, file := range files {
		if strings.TrimSpace(file) == "" {
			continue
		}
		sb.WriteString("- " + strings.TrimSpace(file) + "\n")
	}
	return sb.String()
}
