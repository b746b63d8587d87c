package report

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Caleb68864/CC-AI-Tools/internal/aitest"
	"github.com/Caleb68864/CC-AI-Tools/pkg/ai"
)

func TestGroupAnalyses(t *testing.T) {
	analyses := []CommitAnalysis{
		{Summary: "first fix", Type: "fix", Scope: "core", OriginalIndex: 0},
		{Summary: "feature", Type: "feat", Scope: "api", OriginalIndex: 1},
		{Summary: "second fix", Type: "fix", Scope: "core", OriginalIndex: 2},
	}

	groups := GroupAnalyses(analyses)

	if len(groups) != 2 {
		t.Fatalf("len = %d, want 2", len(groups))
	}
	if groups[0].Key != "fix/core" || groups[1].Key != "feat/api" {
		t.Errorf("group order = %q, %q", groups[0].Key, groups[1].Key)
	}
	if len(groups[0].Analyses) != 2 {
		t.Fatalf("fix/core size = %d", len(groups[0].Analyses))
	}
	if groups[0].Analyses[0].Summary != "first fix" || groups[0].Analyses[1].Summary != "second fix" {
		t.Errorf("chronological order lost: %v", groups[0].Analyses)
	}
}

func TestGroupAnalysesRestoresOrder(t *testing.T) {
	// Completion order scrambled; grouping must restore it.
	analyses := []CommitAnalysis{
		{Summary: "third", Type: "fix", Scope: "core", OriginalIndex: 2},
		{Summary: "first", Type: "fix", Scope: "core", OriginalIndex: 0},
		{Summary: "second", Type: "fix", Scope: "core", OriginalIndex: 1},
	}

	groups := GroupAnalyses(analyses)
	got := []string{}
	for _, a := range groups[0].Analyses {
		got = append(got, a.Summary)
	}
	want := []string{"first", "second", "third"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSanitizeBranchTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2024/05/01-0930-alice-feat-new-login", "2024 05 01 0930 alice feat new login"},
		{"main", "main"},
		{"feature/add--stuff", "feature add stuff"},
		{"fix_bug", "fix_bug"},
	}
	for _, tt := range tests {
		if got := SanitizeBranchTitle(tt.input); got != tt.want {
			t.Errorf("SanitizeBranchTitle(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestTitle(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	got := Title("feature/add-login", now)
	want := "Progress Report for feature add login on 05/01/2024\n"
	if got != want {
		t.Errorf("Title() = %q, want %q", got, want)
	}
}

func TestGenerate(t *testing.T) {
	groups := GroupAnalyses([]CommitAnalysis{
		{Summary: "added login form", Type: "feat", Scope: "ui", Impact: "MEDIUM", OriginalIndex: 0},
		{Summary: "fixed session bug", Type: "fix", Scope: "auth", Impact: "HIGH", OriginalIndex: 1},
	})
	title := "Progress Report for main on 05/01/2024\n"

	t.Run("success returns model output", func(t *testing.T) {
		sender := aitest.Static("the report")
		g := NewGenerator(sender, GeneratorConfig{Model: "small", Retry: fastRetry()})

		got := g.Generate(context.Background(), title, groups)
		if got != "the report" {
			t.Errorf("Generate() = %q", got)
		}

		calls := sender.Calls()
		msg := calls[0].UserMessage
		for _, want := range []string{
			"Uses exactly this title: '" + title + "'",
			"feat/ui:",
			"- added login form (Impact: MEDIUM)",
			"fix/auth:",
			fmt.Sprintf("Stays under %d characters total", 475-len(title)),
		} {
			if !strings.Contains(msg, want) {
				t.Errorf("prompt missing %q:\n%s", want, msg)
			}
		}
	})

	t.Run("failure assembles simplified report", func(t *testing.T) {
		sender := aitest.Failing(&ai.OverloadedError{Provider: "anthropic"})
		g := NewGenerator(sender, GeneratorConfig{Model: "small", Retry: fastRetry()})

		got := g.Generate(context.Background(), title, groups)
		if !strings.HasPrefix(got, title) {
			t.Errorf("simplified report should begin with title:\n%s", got)
		}
		if !strings.Contains(got, "## feat/ui") || !strings.Contains(got, "- added login form") {
			t.Errorf("simplified report missing group content:\n%s", got)
		}
	})

	t.Run("simplified report caps entries per group", func(t *testing.T) {
		var many []CommitAnalysis
		for i := 0; i < 8; i++ {
			many = append(many, CommitAnalysis{
				Summary:       fmt.Sprintf("change %d", i),
				Type:          "fix",
				Scope:         "core",
				OriginalIndex: i,
			})
		}
		sender := aitest.Failing(&ai.ProviderError{Provider: "anthropic", StatusCode: 500})
		g := NewGenerator(sender, GeneratorConfig{Model: "small", Retry: fastRetry()})

		got := g.Generate(context.Background(), title, GroupAnalyses(many))
		if !strings.Contains(got, "- ... and 3 more changes") {
			t.Errorf("expected overflow marker:\n%s", got)
		}
		if strings.Contains(got, "change 5") {
			t.Errorf("entries past the cap should be omitted:\n%s", got)
		}
	})
}

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2024-03-20", time.Date(2024, 3, 20, 0, 0, 0, 0, time.Local)},
		{"2024-03-20 14:30:00", time.Date(2024, 3, 20, 14, 30, 0, 0, time.Local)},
		{"2024-03-20 14:30", time.Date(2024, 3, 20, 14, 30, 0, 0, time.Local)},
		{"03/20/2024", time.Date(2024, 3, 20, 0, 0, 0, 0, time.Local)},
	}
	for _, tt := range tests {
		got, err := ParseDateTime(tt.input)
		if err != nil {
			t.Errorf("ParseDateTime(%q) error: %v", tt.input, err)
			continue
		}
		if !got.Equal(tt.want) {
			t.Errorf("ParseDateTime(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	if _, err := ParseDateTime("not a date"); err == nil {
		t.Error("expected error for unparseable input")
	}
}
