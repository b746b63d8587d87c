package commitmsg

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Caleb68864/CC-AI-Tools/internal/aitest"
	"github.com/Caleb68864/CC-AI-Tools/pkg/ai"
	"github.com/Caleb68864/CC-AI-Tools/pkg/retry"
	"github.com/Caleb68864/CC-AI-Tools/pkg/structdiff"
)

func fastRetry() retry.Options {
	return retry.Options{MaxRetries: 1, InitialDelay: time.Millisecond, Timeout: time.Second}
}

func sampleDiff() *structdiff.StructuredDiff {
	return &structdiff.StructuredDiff{
		Files: []structdiff.FileChange{
			{
				Name:       "pkg/server/handler.go",
				ChangeType: structdiff.ChangeModify,
				Summary:    "Reworked request validation",
				Additions:  20,
				Deletions:  5,
				KeyChanges: []string{"Added input validation"},
			},
			{
				Name:       "pkg/server/handler_test.go",
				ChangeType: structdiff.ChangeModify,
				Summary:    "Covered validation failures",
				Additions:  30,
			},
		},
		OverallStats: structdiff.OverallStats{
			TotalFiles:     2,
			TotalAdditions: 50,
			TotalDeletions: 5,
		},
	}
}

func TestGenerateTitle(t *testing.T) {
	t.Run("returns model reply trimmed", func(t *testing.T) {
		sender := aitest.Static("  Rework request validation  ")
		g := NewGenerator(sender, GeneratorConfig{Model: "small", Retry: fastRetry()})

		got := g.GenerateTitle(context.Background(), "", sampleDiff())
		if got != "Rework request validation" {
			t.Errorf("GenerateTitle() = %q", got)
		}
	})

	t.Run("strips preamble phrases", func(t *testing.T) {
		sender := aitest.Static("Title: Rework request validation")
		g := NewGenerator(sender, GeneratorConfig{Model: "small", Retry: fastRetry()})

		got := g.GenerateTitle(context.Background(), "", sampleDiff())
		if got != "Rework request validation" {
			t.Errorf("GenerateTitle() = %q, want preamble stripped", got)
		}
	})

	t.Run("prompt carries key changes", func(t *testing.T) {
		sender := aitest.Static("ok")
		g := NewGenerator(sender, GeneratorConfig{Model: "small", Retry: fastRetry()})

		g.GenerateTitle(context.Background(), "user note", sampleDiff())

		calls := sender.Calls()
		if len(calls) != 1 {
			t.Fatalf("expected 1 call, got %d", len(calls))
		}
		if !strings.Contains(calls[0].SystemPrompt, "pkg/server/handler.go: Added input validation") {
			t.Errorf("prompt missing key changes:\n%s", calls[0].SystemPrompt)
		}
		if calls[0].UserMessage != "user note" {
			t.Errorf("UserMessage = %q", calls[0].UserMessage)
		}
	})

	t.Run("failure falls back to user message truncated", func(t *testing.T) {
		sender := aitest.Failing(&ai.OverloadedError{Provider: "anthropic"})
		g := NewGenerator(sender, GeneratorConfig{Model: "small", Retry: fastRetry()})

		long := strings.Repeat("x", 60)
		got := g.GenerateTitle(context.Background(), long, sampleDiff())
		if got != strings.Repeat("x", 50) {
			t.Errorf("expected user message truncated to 50 chars, got %q", got)
		}
	})

	t.Run("failure without user message names first file", func(t *testing.T) {
		sender := aitest.Failing(&ai.OverloadedError{Provider: "anthropic"})
		g := NewGenerator(sender, GeneratorConfig{Model: "small", Retry: fastRetry()})

		got := g.GenerateTitle(context.Background(), "", sampleDiff())
		if got != "Update handler.go" {
			t.Errorf("GenerateTitle() = %q, want %q", got, "Update handler.go")
		}
	})

	t.Run("failure with no files at all", func(t *testing.T) {
		sender := aitest.Failing(&ai.OverloadedError{Provider: "anthropic"})
		g := NewGenerator(sender, GeneratorConfig{Model: "small", Retry: fastRetry()})

		got := g.GenerateTitle(context.Background(), "", &structdiff.StructuredDiff{})
		if got != "Update files" {
			t.Errorf("GenerateTitle() = %q, want %q", got, "Update files")
		}
	})
}

func TestGenerateSummary(t *testing.T) {
	t.Run("strips summary preamble", func(t *testing.T) {
		sender := aitest.Static("Concise Summary: Reworked validation end to end")
		g := NewGenerator(sender, GeneratorConfig{Model: "small", Retry: fastRetry()})

		got := g.GenerateSummary(context.Background(), "", sampleDiff())
		if got != "Reworked validation end to end" {
			t.Errorf("GenerateSummary() = %q", got)
		}
	})

	t.Run("overload falls back to counts sentence", func(t *testing.T) {
		sender := aitest.Failing(&ai.OverloadedError{Provider: "anthropic"})
		g := NewGenerator(sender, GeneratorConfig{Model: "small", Retry: fastRetry()})

		got := g.GenerateSummary(context.Background(), "", sampleDiff())
		want := "Updated 2 files with 50 additions and 5 deletions."
		if got != want {
			t.Errorf("GenerateSummary() = %q, want %q", got, want)
		}
	})

	t.Run("other errors fall back to generic sentence", func(t *testing.T) {
		sender := aitest.Failing(&ai.ProviderError{Provider: "anthropic", StatusCode: 500})
		g := NewGenerator(sender, GeneratorConfig{Model: "small", Retry: fastRetry()})

		got := g.GenerateSummary(context.Background(), "", sampleDiff())
		if got != "Updated files with various changes." {
			t.Errorf("GenerateSummary() = %q", got)
		}
	})
}

func TestGenerate(t *testing.T) {
	t.Run("assembles all sections", func(t *testing.T) {
		sender := aitest.NewSender(func(call aitest.Call) (string, error) {
			if call.MaxTokens == 50 {
				return "Rework validation", nil
			}
			return "Validation reworked across the handler.", nil
		})
		g := NewGenerator(sender, GeneratorConfig{Model: "small", Retry: fastRetry()})

		msg := g.Generate(context.Background(), "note", sampleDiff())

		if msg.Title != "Rework validation" {
			t.Errorf("Title = %q", msg.Title)
		}
		if msg.Summary != "Validation reworked across the handler." {
			t.Errorf("Summary = %q", msg.Summary)
		}
		if len(msg.Details) == 0 {
			t.Error("expected details from structured diff")
		}
		if len(msg.FilesChanged) != 2 {
			t.Errorf("FilesChanged = %v", msg.FilesChanged)
		}
		if sender.CallCount() != 2 {
			t.Errorf("expected 2 calls (title + summary), got %d", sender.CallCount())
		}
	})

	t.Run("generic title is dropped", func(t *testing.T) {
		sender := aitest.Failing(&ai.OverloadedError{Provider: "anthropic"})
		g := NewGenerator(sender, GeneratorConfig{Model: "small", Retry: fastRetry()})

		msg := g.Generate(context.Background(), "", &structdiff.StructuredDiff{})
		if msg.Title != "" {
			t.Errorf("generic fallback title should be dropped, got %q", msg.Title)
		}
	})
}
