package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"

	"github.com/Caleb68864/CC-AI-Tools/pkg/retry"
	"github.com/Caleb68864/CC-AI-Tools/pkg/structdiff"
)

// maxReportLength bounds the whole report, title included.
const maxReportLength = 475

// Group is one type/scope bucket of analyses, in chronological order.
type Group struct {
	Key      string
	Analyses []CommitAnalysis
}

// GroupAnalyses buckets analyses by type/scope. Groups appear in order
// of first appearance; within a group, analyses are ordered by their
// chronological index.
func GroupAnalyses(analyses []CommitAnalysis) []Group {
	var groups []Group
	index := make(map[string]int)

	for _, a := range analyses {
		key := a.GroupKey()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key})
		}
		groups[i].Analyses = append(groups[i].Analyses, a)
	}

	for i := range groups {
		g := groups[i].Analyses
		for j := 1; j < len(g); j++ {
			for k := j; k > 0 && g[k].OriginalIndex < g[k-1].OriginalIndex; k-- {
				g[k], g[k-1] = g[k-1], g[k]
			}
		}
	}
	return groups
}

// SanitizeBranchTitle turns a branch name into report title words:
// punctuation becomes spaces and whitespace runs collapse.
func SanitizeBranchTitle(branch string) string {
	var b strings.Builder
	for _, r := range branch {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Title builds the report title line for a branch and date.
func Title(branch string, now time.Time) string {
	return fmt.Sprintf("Progress Report for %s on %s\n", SanitizeBranchTitle(branch), now.Format("01/02/2006"))
}

const reportPrompt = "You are a technical writer tasked with creating progress reports from git commit logs. " +
	"You analyze commit messages to create clear, organized summaries that group related changes " +
	"and use professional, technical language. Focus on the actual changes made rather than " +
	"reformatting commit messages. Always use bullet points and keep responses concise. " +
	"IMPORTANT: Always present changes in chronological order (from beginning to end)."

// GeneratorConfig tunes final report generation.
type GeneratorConfig struct {
	// Model used for the final report call.
	Model string

	// Retry wraps the report call; its Timeout is the report timeout.
	Retry retry.Options
}

// Generator produces the final report text.
type Generator struct {
	sender structdiff.Sender
	cfg    GeneratorConfig
}

// NewGenerator creates a report Generator using sender for AI calls.
func NewGenerator(sender structdiff.Sender, cfg GeneratorConfig) *Generator {
	return &Generator{sender: sender, cfg: cfg}
}

// Generate condenses grouped analyses into a report under the length
// budget. If the AI call fails, it assembles a simplified report from
// the group summaries instead; Generate never fails.
func (g *Generator) Generate(ctx context.Context, title string, groups []Group) string {
	budget := maxReportLength - len(title)

	var user strings.Builder
	fmt.Fprintf(&user, "Please create a progress report from the following analyzed git commits that:\n")
	fmt.Fprintf(&user, "1. Uses exactly this title: '%s'\n", title)
	fmt.Fprintf(&user, "2. Uses the grouped changes below\n")
	fmt.Fprintf(&user, "3. Uses bullet points for each change\n")
	fmt.Fprintf(&user, "4. Stays under %d characters total\n", budget)
	fmt.Fprintf(&user, "5. Lists changes in chronological order (from beginning to end, not end to beginning)\n\n")
	user.WriteString("Analyzed commits by category:\n")

	for _, group := range groups {
		fmt.Fprintf(&user, "\n%s:\n", group.Key)
		for _, a := range group.Analyses {
			summary := a.Summary
			if summary == "" {
				summary = "No summary available"
			}
			fmt.Fprintf(&user, "- %s (Impact: %s)\n", summary, a.Impact)
		}
	}

	text, err := retry.Do(ctx, g.cfg.Retry, func(ctx context.Context) (string, error) {
		return g.sender.Send(ctx, reportPrompt, user.String(), g.cfg.Model, 4000, 0.2)
	})
	if err != nil {
		slog.Warn("report generation failed, assembling simplified report", "error", err)
		return simplifiedReport(title, groups)
	}
	return text
}

// simplifiedReport builds a report directly from the grouped summaries:
// up to five entries per group plus a count of what was omitted.
func simplifiedReport(title string, groups []Group) string {
	var sb strings.Builder
	sb.WriteString(title)
	sb.WriteString("\n\nError generating detailed report. Here's a simple summary:\n\n")

	for _, group := range groups {
		fmt.Fprintf(&sb, "## %s\n", group.Key)

		shown := group.Analyses
		if len(shown) > 5 {
			shown = shown[:5]
		}
		for _, a := range shown {
			summary := a.Summary
			if summary == "" {
				summary = "No summary"
			}
			fmt.Fprintf(&sb, "- %s\n", summary)
		}
		if n := len(group.Analyses) - 5; n > 0 {
			fmt.Fprintf(&sb, "- ... and %d more changes\n", n)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
