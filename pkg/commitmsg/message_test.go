package commitmsg

import (
	"strings"
	"testing"
)

func TestMessageRender(t *testing.T) {
	t.Run("full message", func(t *testing.T) {
		m := &Message{
			Title:   "Fix parser crash",
			Summary: "Hardened the report parser against empty replies.",
			Details: []string{
				"parser.go:",
				"  Summary: Guard against nil sections",
				"Key changes:",
			},
			FilesChanged: []string{"parser.go", "parser_test.go"},
		}

		got := m.Render()

		wantOrder := []string{
			"Fix parser crash",
			"Summary:",
			"Hardened the report parser",
			"Details:",
			"parser.go:",
			"  Summary: Guard against nil sections",
			"Files Changed:",
			"- parser.go",
			"- parser_test.go",
		}
		last := -1
		for _, want := range wantOrder {
			idx := strings.Index(got, want)
			if idx < 0 {
				t.Fatalf("rendered message missing %q:\n%s", want, got)
			}
			if idx < last {
				t.Errorf("%q out of order in:\n%s", want, got)
			}
			last = idx
		}
	})

	t.Run("sections separated by blank lines", func(t *testing.T) {
		m := &Message{Title: "Title", Summary: "Sum", FilesChanged: []string{"a.go"}}
		got := m.Render()
		if !strings.Contains(got, "Title\n\nSummary:") {
			t.Errorf("expected blank line after title:\n%s", got)
		}
		if !strings.Contains(got, "Sum\n\nFiles Changed:") {
			t.Errorf("expected blank line after summary:\n%s", got)
		}
	})

	t.Run("empty sections omitted", func(t *testing.T) {
		m := &Message{Summary: "Just a summary"}
		got := m.Render()
		if strings.Contains(got, "Details:") || strings.Contains(got, "Files Changed:") {
			t.Errorf("empty sections should be omitted:\n%s", got)
		}
		if !strings.HasPrefix(got, "Summary:") {
			t.Errorf("message without title should start with Summary:\n%s", got)
		}
	})

	t.Run("plain detail lines get bullets", func(t *testing.T) {
		m := &Message{Details: []string{"changed something", "file.go:", "  sub"}}
		got := m.Render()
		if !strings.Contains(got, "- changed something") {
			t.Errorf("plain detail should be bulleted:\n%s", got)
		}
		if strings.Contains(got, "- file.go:") {
			t.Errorf("file header should not be bulleted:\n%s", got)
		}
	})
}

func TestMinimal(t *testing.T) {
	t.Run("with user message", func(t *testing.T) {
		got := Minimal("fix stuff", []string{"a.go", "b.go"})
		if !strings.HasPrefix(got, "fix stuff\n\nFiles Changed:\n") {
			t.Errorf("unexpected prefix:\n%s", got)
		}
		if !strings.Contains(got, "- a.go\n") || !strings.Contains(got, "- b.go\n") {
			t.Errorf("missing file entries:\n%s", got)
		}
	})

	t.Run("without user message", func(t *testing.T) {
		got := Minimal("  ", []string{"a.go"})
		if !strings.HasPrefix(got, "Update files") {
			t.Errorf("expected generic lead, got:\n%s", got)
		}
	})
}
