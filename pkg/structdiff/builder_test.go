package structdiff

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Caleb68864/CC-AI-Tools/internal/aitest"
	"github.com/Caleb68864/CC-AI-Tools/pkg/retry"
)

func fastRetry() retry.Options {
	return retry.Options{
		MaxRetries:   1,
		InitialDelay: time.Millisecond,
		Timeout:      time.Second,
	}
}

func TestBuild(t *testing.T) {
	t.Run("small diff uses whole-diff path", func(t *testing.T) {
		sender := aitest.Static("Name: a.go\nType: modify\nSummary: Tweaked\nTotal Files Changed: 1")
		b := NewBuilder(sender, BuilderConfig{Model: "test-model", Retry: fastRetry()})

		sd := b.Build(context.Background(), "diff --git a/a.go b/a.go\n+x", []string{"a.go"})
		if sender.CallCount() != 1 {
			t.Fatalf("calls = %d, want 1", sender.CallCount())
		}
		if len(sd.Files) != 1 || sd.Files[0].Name != "a.go" {
			t.Errorf("Files = %v", sd.Files)
		}
		if sd.OverallStats.TotalFiles != 1 {
			t.Errorf("TotalFiles = %d", sd.OverallStats.TotalFiles)
		}
		call := sender.Calls()[0]
		if call.Model != "test-model" || call.MaxTokens != 1000 {
			t.Errorf("call = %+v", call)
		}
	})

	t.Run("failure degrades to file list fallback", func(t *testing.T) {
		sender := aitest.Failing(errors.New("unreachable"))
		b := NewBuilder(sender, BuilderConfig{Retry: fastRetry()})

		sd := b.Build(context.Background(), "small diff", []string{"main.go", "README.md"})
		if len(sd.Files) != 2 {
			t.Fatalf("Files = %v", sd.Files)
		}
		if sd.Files[0].Summary != "Modified go file" {
			t.Errorf("Summary = %q", sd.Files[0].Summary)
		}
		if sd.Files[1].Summary != "Modified md file" {
			t.Errorf("Summary = %q", sd.Files[1].Summary)
		}
		if sd.OverallStats.TotalFiles != 2 {
			t.Errorf("TotalFiles = %d", sd.OverallStats.TotalFiles)
		}
	})

	t.Run("large diff is summarized per file", func(t *testing.T) {
		var diff strings.Builder
		for i := 0; i < 4; i++ {
			fmt.Fprintf(&diff, "diff --git a/file%d.go b/file%d.go\n", i, i)
			diff.WriteString(strings.Repeat("+padding line\n", 100))
		}

		sender := aitest.NewSender(func(call aitest.Call) (string, error) {
			return "Type: modify\nSummary: Changed " + extractFileName(call.SystemPrompt), nil
		})
		b := NewBuilder(sender, BuilderConfig{
			ChunkThreshold: 500,
			Workers:        2,
			Batches:        2,
			Retry:          fastRetry(),
		})

		sd := b.Build(context.Background(), diff.String(), nil)
		if len(sd.Files) != 4 {
			t.Fatalf("len(Files) = %d, want 4", len(sd.Files))
		}
		if sender.CallCount() != 4 {
			t.Errorf("calls = %d, want 4", sender.CallCount())
		}
		names := make(map[string]bool)
		for _, f := range sd.Files {
			names[f.Name] = true
		}
		for i := 0; i < 4; i++ {
			name := fmt.Sprintf("file%d.go", i)
			if !names[name] {
				t.Errorf("missing %s in %v", name, names)
			}
		}
		if sd.OverallStats.TotalFiles != 4 {
			t.Errorf("TotalFiles = %d", sd.OverallStats.TotalFiles)
		}
		if sd.OverallStats.ChangeTypes[ChangeModify] != 4 {
			t.Errorf("ChangeTypes = %v", sd.OverallStats.ChangeTypes)
		}
	})

	t.Run("failed file becomes error placeholder", func(t *testing.T) {
		diff := "diff --git a/bad.go b/bad.go\n" + strings.Repeat("+x\n", 300)
		sender := aitest.Failing(errors.New("boom"))
		b := NewBuilder(sender, BuilderConfig{ChunkThreshold: 100, Retry: fastRetry()})

		sd := b.Build(context.Background(), diff, nil)
		if len(sd.Files) != 1 {
			t.Fatalf("Files = %v", sd.Files)
		}
		f := sd.Files[0]
		if f.Name != "bad.go" || f.ChangeType != ChangeModify {
			t.Errorf("file = %+v", f)
		}
		if len(f.KeyChanges) != 1 || !strings.Contains(f.KeyChanges[0], "Error processing") {
			t.Errorf("KeyChanges = %v", f.KeyChanges)
		}
	})

	t.Run("high-level summary above threshold", func(t *testing.T) {
		var diff strings.Builder
		for i := 0; i < 3; i++ {
			fmt.Fprintf(&diff, "diff --git a/f%d.go b/f%d.go\n", i, i)
			diff.WriteString(strings.Repeat("+x\n", 100))
		}

		sender := aitest.NewSender(func(call aitest.Call) (string, error) {
			if strings.HasPrefix(call.SystemPrompt, "Generate a high-level summary") {
				return "Broad refactoring of the f files.", nil
			}
			return "Type: modify\nSummary: Changed", nil
		})
		b := NewBuilder(sender, BuilderConfig{
			ChunkThreshold:       100,
			LargeCommitThreshold: 2,
			Retry:                fastRetry(),
		})

		sd := b.Build(context.Background(), diff.String(), nil)
		if sd.HighLevelSummary != "Broad refactoring of the f files." {
			t.Errorf("HighLevelSummary = %q", sd.HighLevelSummary)
		}
	})
}

// extractFileName pulls the quoted file name out of the per-file prompt.
func extractFileName(prompt string) string {
	_, after, ok := strings.Cut(prompt, "'")
	if !ok {
		return ""
	}
	name, _, _ := strings.Cut(after, "'")
	return name
}

func TestFormatDetails(t *testing.T) {
	sd := &StructuredDiff{
		Files: []FileChange{
			{
				Name:              "a.go",
				Summary:           "Reworked parsing",
				FunctionsModified: []string{"Parse", "normalize"},
				KeyChanges:        []string{"Stricter validation"},
			},
			{Name: "empty.go"},
		},
	}

	details := FormatDetails(sd)
	want := []string{
		"a.go:",
		"  Summary: Reworked parsing",
		"  Modified functions: Parse, normalize",
		"  Key changes:",
		"    - Stricter validation",
	}
	if len(details) != len(want) {
		t.Fatalf("details = %q", details)
	}
	for i := range want {
		if details[i] != want[i] {
			t.Errorf("details[%d] = %q, want %q", i, details[i], want[i])
		}
	}
}
