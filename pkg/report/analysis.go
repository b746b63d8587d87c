package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Caleb68864/CC-AI-Tools/pkg/cli"
	"github.com/Caleb68864/CC-AI-Tools/pkg/gitx"
	"github.com/Caleb68864/CC-AI-Tools/pkg/retry"
	"github.com/Caleb68864/CC-AI-Tools/pkg/structdiff"
)

// CommitAnalysis is the structured classification of one commit.
type CommitAnalysis struct {
	Summary      string
	Type         string
	Scope        string
	FilesChanged []string
	Impact       string

	// OriginalIndex is the commit's position in the chronological input,
	// assigned before parallel dispatch so grouping can restore order no
	// matter when each analysis completes.
	OriginalIndex int
}

// GroupKey is the "type/scope" bucket this analysis belongs to.
func (a CommitAnalysis) GroupKey() string {
	return fmt.Sprintf("%s/%s", a.Type, a.Scope)
}

const analyzePrompt = "You are a commit message analyzer. Analyze the git commit message and return information in this exact format:\n" +
	"COMMIT ANALYSIS\n" +
	"Summary: <clear, concise technical description of changes (max 100 chars)>\n" +
	"Type: <feat/fix/refactor/docs/style/test/chore>\n" +
	"Scope: <main component or area affected>\n" +
	"Files Changed:\n" +
	"- <file1>\n" +
	"- <file2>\n" +
	"Impact: <LOW/MEDIUM/HIGH>\n\n" +
	"Be specific and technical. Return only the structured format above, no other text."

// ParseAnalysis extracts a CommitAnalysis from a model reply. Missing
// fields keep their defaults (type and scope "unknown", impact "LOW").
func ParseAnalysis(text string) CommitAnalysis {
	analysis := CommitAnalysis{
		Type:   "unknown",
		Scope:  "unknown",
		Impact: "LOW",
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "Summary:"):
			analysis.Summary = strings.TrimSpace(strings.TrimPrefix(line, "Summary:"))
		case strings.HasPrefix(line, "Type:"):
			if v := strings.TrimSpace(strings.TrimPrefix(line, "Type:")); v != "" {
				analysis.Type = v
			}
		case strings.HasPrefix(line, "Scope:"):
			if v := strings.TrimSpace(strings.TrimPrefix(line, "Scope:")); v != "" {
				analysis.Scope = v
			}
		case strings.HasPrefix(line, "Files Changed:"):
			// File entries follow as bullets.
		case strings.HasPrefix(line, "- "):
			analysis.FilesChanged = append(analysis.FilesChanged, strings.TrimSpace(line[2:]))
		case strings.HasPrefix(line, "Impact:"):
			if v := strings.TrimSpace(strings.TrimPrefix(line, "Impact:")); v != "" {
				analysis.Impact = v
			}
		}
	}
	return analysis
}

// AnalyzerConfig tunes parallel commit analysis.
type AnalyzerConfig struct {
	// Model used for per-commit analysis calls.
	Model string

	// Workers bounds the analysis worker pool.
	// Default: 5
	Workers int

	// BatchSize splits the commit list into sequential batches. Zero
	// processes everything as one batch.
	BatchSize int

	// Retry wraps each analysis call; its Timeout is the per-commit
	// timeout.
	Retry retry.Options

	// Progress receives per-commit completion updates. Optional.
	Progress cli.ProgressReporter
}

func (c *AnalyzerConfig) applyDefaults() {
	if c.Workers < 1 {
		c.Workers = 5
	}
	if c.Progress == nil {
		c.Progress = cli.NopProgress{}
	}
}

// Analyzer classifies commits with AI calls.
type Analyzer struct {
	sender structdiff.Sender
	cfg    AnalyzerConfig
}

// NewAnalyzer creates an Analyzer using sender for AI calls.
func NewAnalyzer(sender structdiff.Sender, cfg AnalyzerConfig) *Analyzer {
	cfg.applyDefaults()
	return &Analyzer{sender: sender, cfg: cfg}
}

// AnalyzeCommits classifies every commit. Commits are processed in
// batches, each batch in parallel; a failed analysis becomes a fallback
// entry, so the result always has one analysis per commit. Results carry
// their chronological index regardless of completion order.
func (a *Analyzer) AnalyzeCommits(ctx context.Context, commits []gitx.CommitRef) []CommitAnalysis {
	if len(commits) == 0 {
		return nil
	}

	batchSize := a.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = len(commits)
	}

	a.cfg.Progress.Start(int64(len(commits)))
	defer a.cfg.Progress.Finish()

	analyses := make([]CommitAnalysis, len(commits))
	completed := 0

	sem := make(chan struct{}, a.cfg.Workers)
	type result struct {
		idx      int
		analysis CommitAnalysis
	}

	for start := 0; start < len(commits); start += batchSize {
		end := start + batchSize
		if end > len(commits) {
			end = len(commits)
		}
		batch := commits[start:end]

		results := make(chan result, len(batch))
		for i, commit := range batch {
			idx := start + i
			commit := commit
			go func() {
				sem <- struct{}{}
				defer func() { <-sem }()
				results <- result{idx: idx, analysis: a.analyzeOne(ctx, commit, idx)}
			}()
		}

		for range batch {
			r := <-results
			analyses[r.idx] = r.analysis
			completed++
			a.cfg.Progress.Update(int64(completed))
		}
	}

	return analyses
}

// analyzeOne classifies a single commit, falling back to a message-derived
// entry on failure.
func (a *Analyzer) analyzeOne(ctx context.Context, commit gitx.CommitRef, idx int) CommitAnalysis {
	var msg strings.Builder
	fmt.Fprintf(&msg, "Analyze this commit:\n")
	fmt.Fprintf(&msg, "Message: %s\n", commit.Message)
	fmt.Fprintf(&msg, "Files Changed: %s\n", strings.Join(commit.ChangedPaths(0), ", "))
	fmt.Fprintf(&msg, "Insertions: %d\n", commit.Insertions)
	fmt.Fprintf(&msg, "Deletions: %d\n", commit.Deletions)

	text, err := retry.Do(ctx, a.cfg.Retry, func(ctx context.Context) (string, error) {
		return a.sender.Send(ctx, analyzePrompt, msg.String(), a.cfg.Model, 150, 0.1)
	})
	if err != nil {
		slog.Warn("commit analysis failed", "commit", commit.ShortHash(), "error", err)
		return fallbackAnalysis(commit, idx)
	}

	analysis := ParseAnalysis(text)
	analysis.OriginalIndex = idx
	return analysis
}

// fallbackAnalysis builds an entry from the commit itself when analysis
// fails: unknown type and scope, LOW impact, truncated subject.
func fallbackAnalysis(commit gitx.CommitRef, idx int) CommitAnalysis {
	subject := commit.Subject()
	if len(subject) > 60 {
		subject = subject[:60]
	}
	return CommitAnalysis{
		Summary:       fmt.Sprintf("Error analyzing commit: %s", subject),
		Type:          "unknown",
		Scope:         "unknown",
		FilesChanged:  commit.ChangedPaths(5),
		Impact:        "LOW",
		OriginalIndex: idx,
	}
}
