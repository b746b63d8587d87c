package commitmsg

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/Caleb68864/CC-AI-Tools/pkg/ai"
	"github.com/Caleb68864/CC-AI-Tools/pkg/retry"
	"github.com/Caleb68864/CC-AI-Tools/pkg/structdiff"
)

// unwantedTitlePhrases are preamble phrases models prepend despite
// instructions. They are stripped from generated titles.
var unwantedTitlePhrases = []string{
	"Concise Commit Title:",
	"Here is the title:",
	"Title:",
	"Commit Title:",
	"Suggested Title:",
	"Generated Title:",
	"Commit Message:",
	"Here's a concise title:",
	"Based on the changes:",
	"I suggest this title:",
	"Proposed Title:",
}

// GeneratorConfig tunes message generation.
type GeneratorConfig struct {
	// Model used for title and summary calls.
	Model string

	// Temperature for generation requests.
	// Default: 0.2
	Temperature float64

	// Retry wraps every gateway call.
	Retry retry.Options
}

// Generator produces commit messages from structured diffs.
type Generator struct {
	sender structdiff.Sender
	cfg    GeneratorConfig
}

// NewGenerator creates a Generator using sender for AI calls.
func NewGenerator(sender structdiff.Sender, cfg GeneratorConfig) *Generator {
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.2
	}
	return &Generator{sender: sender, cfg: cfg}
}

// Generate builds a complete commit message. The title and summary calls
// run concurrently; the details and file list come straight from the
// structured diff. Generate never fails: each piece degrades to its
// fallback independently.
func (g *Generator) Generate(ctx context.Context, userMsg string, sd *structdiff.StructuredDiff) *Message {
	var (
		wg      sync.WaitGroup
		title   string
		summary string
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		title = g.GenerateTitle(ctx, userMsg, sd)
	}()
	go func() {
		defer wg.Done()
		summary = g.GenerateSummary(ctx, userMsg, sd)
	}()
	wg.Wait()

	msg := &Message{
		Details: structdiff.FormatDetails(sd),
	}
	// Generic fallbacks are dropped so the rendered message does not
	// lead with filler.
	if title != "" && title != "Update files" {
		msg.Title = title
	}
	if summary != "" && summary != "No Summary" {
		msg.Summary = summary
	}
	for _, file := range sd.Files {
		msg.FilesChanged = append(msg.FilesChanged, file.Name)
	}
	return msg
}

// GenerateTitle produces a commit title under 50 characters. On failure
// it falls back to the user's message truncated to 50 characters, then
// to "Update <first file>", then to "Update files".
func (g *Generator) GenerateTitle(ctx context.Context, userMsg string, sd *structdiff.StructuredDiff) string {
	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Generate a concise commit title (under 50 chars) based on these changes:\n")
	fmt.Fprintf(&prompt, "Files Changed: %d\n", len(sd.Files))
	fmt.Fprintf(&prompt, "Total Additions: %d\n", sd.OverallStats.TotalAdditions)
	fmt.Fprintf(&prompt, "Total Deletions: %d\n\n", sd.OverallStats.TotalDeletions)
	prompt.WriteString("Key Changes:\n")
	for _, file := range sd.Files {
		if len(file.KeyChanges) > 0 {
			fmt.Fprintf(&prompt, "- %s: %s\n", file.Name, strings.Join(file.KeyChanges, ", "))
		}
	}
	fmt.Fprintf(&prompt, "Do not include any of the following phrases: %s\n", strings.Join(unwantedTitlePhrases, ", "))

	title, err := retry.Do(ctx, g.cfg.Retry, func(ctx context.Context) (string, error) {
		return g.sender.Send(ctx, prompt.String(), userMsg, g.cfg.Model, 50, g.cfg.Temperature)
	})
	if err != nil {
		if ai.IsOverloaded(err) {
			slog.Warn("provider overloaded generating title, using fallback")
		} else {
			slog.Warn("title generation failed, using fallback", "error", err)
		}
		return fallbackTitle(userMsg, sd)
	}

	title = strings.TrimSpace(title)
	for _, phrase := range unwantedTitlePhrases {
		title = strings.TrimSpace(strings.ReplaceAll(title, phrase, ""))
	}
	return title
}

func fallbackTitle(userMsg string, sd *structdiff.StructuredDiff) string {
	if trimmed := strings.TrimSpace(userMsg); trimmed != "" {
		if len(trimmed) > 50 {
			trimmed = trimmed[:50]
		}
		return trimmed
	}
	if len(sd.Files) > 0 {
		name := sd.Files[0].Name
		if idx := strings.LastIndex(name, "/"); idx >= 0 {
			name = name[idx+1:]
		}
		return "Update " + name
	}
	return "Update files"
}

// GenerateSummary produces a short summary paragraph. On overload it
// falls back to a counts-based sentence; on any other failure to a
// generic one.
func (g *Generator) GenerateSummary(ctx context.Context, userMsg string, sd *structdiff.StructuredDiff) string {
	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Generate a concise summary of the following changes:\n")
	fmt.Fprintf(&prompt, "Total Files Changed: %d\n", len(sd.Files))
	fmt.Fprintf(&prompt, "Total Additions: %d\n", sd.OverallStats.TotalAdditions)
	fmt.Fprintf(&prompt, "Total Deletions: %d\n\n", sd.OverallStats.TotalDeletions)
	prompt.WriteString("Here are the key changes:\n")
	for _, file := range sd.Files {
		if file.Summary != "" {
			fmt.Fprintf(&prompt, "- %s: %s\n", file.Name, file.Summary)
		}
	}
	prompt.WriteString("\nPlease provide a summary without any introductory phrases or unnecessary content.")

	summary, err := retry.Do(ctx, g.cfg.Retry, func(ctx context.Context) (string, error) {
		return g.sender.Send(ctx, prompt.String(), userMsg, g.cfg.Model, 100, g.cfg.Temperature)
	})
	if err != nil {
		if ai.IsOverloaded(err) {
			slog.Warn("provider overloaded generating summary, using fallback")
			return fmt.Sprintf("Updated %d files with %d additions and %d deletions.",
				len(sd.Files), sd.OverallStats.TotalAdditions, sd.OverallStats.TotalDeletions)
		}
		slog.Warn("summary generation failed, using fallback", "error", err)
		return "Updated files with various changes."
	}

	summary = strings.TrimSpace(summary)
	summary = strings.TrimSpace(strings.ReplaceAll(summary, "Concise Summary:", ""))
	return summary
}
