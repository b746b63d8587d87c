package structdiff

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/Caleb68864/CC-AI-Tools/pkg/ai"
	"github.com/Caleb68864/CC-AI-Tools/pkg/cli"
	"github.com/Caleb68864/CC-AI-Tools/pkg/retry"
)

// Sender is the gateway surface the builder drives.
// *ai.Gateway satisfies it.
type Sender interface {
	Send(ctx context.Context, systemPrompt, userMessage, model string, maxTokens int, temperature float64) (string, error)
}

// BuilderConfig tunes one builder.
type BuilderConfig struct {
	// Model is the model identifier used for all summarization calls
	// (a small-tier model; every sub-task here is cheap).
	Model string

	// Temperature for all calls.
	// Default: 0.2
	Temperature float64

	// ChunkThreshold is the diff size in characters above which the
	// parallel per-file path is used.
	// Default: DefaultChunkThreshold
	ChunkThreshold int

	// Workers bounds the per-file worker pool.
	// Default: 5
	Workers int

	// Batches is how many roughly-equal batches the file set is split into.
	// Default: 5
	Batches int

	// LargeCommitThreshold is the file count above which an extra
	// high-level summary is generated.
	// Default: 10
	LargeCommitThreshold int

	// Retry wraps every gateway call.
	Retry retry.Options

	// Progress receives per-file completion updates on the chunked path.
	// Optional.
	Progress cli.ProgressReporter
}

func (c *BuilderConfig) applyDefaults() {
	if c.Temperature == 0 {
		c.Temperature = 0.2
	}
	if c.ChunkThreshold == 0 {
		c.ChunkThreshold = DefaultChunkThreshold
	}
	if c.Workers < 1 {
		c.Workers = 5
	}
	if c.Batches < 1 {
		c.Batches = 5
	}
	if c.LargeCommitThreshold == 0 {
		c.LargeCommitThreshold = 10
	}
}

// Builder drives the gateway to turn diffs into StructuredDiffs.
type Builder struct {
	sender Sender
	cfg    BuilderConfig
}

// NewBuilder creates a builder over a gateway.
func NewBuilder(sender Sender, cfg BuilderConfig) *Builder {
	cfg.applyDefaults()
	return &Builder{sender: sender, cfg: cfg}
}

const wholeDiffPrompt = `Parse the following git diff into a structured format. For each file, provide:

FILE SUMMARY
- Name: <filename>
- Type: <add/modify/delete>
- Summary: Brief description of changes
- Lines Added: <number>
- Lines Deleted: <number>
- Modified Functions: List of changed functions
- Key Changes:
  * Change 1
  * Change 2

OVERALL STATISTICS
- Total Files Changed: <number>
- Total Additions: <number>
- Total Deletions: <number>
- Changes By Type:
  * Modified: <number>
  * Added: <number>
  * Deleted: <number>

Important:
- Be specific and technical in descriptions
- Include actual function names from the code
- Count real additions and deletions
- Identify meaningful code changes, not just formatting
- Group related changes together
`

// Build turns a raw diff into a StructuredDiff. It never fails: when the
// gateway is exhausted the result degrades to a structure built from
// fileList alone.
func (b *Builder) Build(ctx context.Context, diffText string, fileList []string) *StructuredDiff {
	if NeedsChunking(diffText, b.cfg.ChunkThreshold) {
		slog.Debug("large diff detected, processing in chunks", "size", len(diffText))
		return b.buildChunked(ctx, diffText, fileList)
	}

	text, err := retry.Do(ctx, b.cfg.Retry, func(ctx context.Context) (string, error) {
		return b.sender.Send(ctx, wholeDiffPrompt, diffText, b.cfg.Model, 1000, b.cfg.Temperature)
	})
	if err != nil {
		if ai.IsOverloaded(err) {
			slog.Warn("provider overloaded while parsing diff, using fallback structure", "error", err)
		} else {
			slog.Warn("failed to parse diff, using fallback structure", "error", err)
		}
		return Fallback(fileList)
	}

	return ParseReport(text)
}

// buildChunked splits the diff by file and summarizes fragments in
// parallel, batch by batch. Results arrive in completion order.
func (b *Builder) buildChunked(ctx context.Context, diffText string, fileList []string) *StructuredDiff {
	fragments := SplitByFile(diffText)
	if len(fragments) == 0 {
		slog.Warn("could not split diff by files, using fallback structure")
		return Fallback(fileList)
	}

	if b.cfg.Progress != nil {
		b.cfg.Progress.Start(int64(len(fragments)))
	}

	results := make(chan FileChange, len(fragments))
	collect := make([]FileChange, 0, len(fragments))
	sem := make(chan struct{}, b.cfg.Workers)
	var completed int64

	for _, batch := range Batch(fragments, b.cfg.Batches) {
		for _, fragment := range batch {
			go func(fragment FileDiff) {
				sem <- struct{}{}
				defer func() { <-sem }()
				results <- b.summarizeFile(ctx, fragment)
			}(fragment)
		}

		// Drain this batch before dispatching the next so parallelism stays
		// bounded per stage. Results land in completion order.
		for range batch {
			collect = append(collect, <-results)
			completed++
			if b.cfg.Progress != nil {
				b.cfg.Progress.Update(completed)
			}
		}
	}

	if b.cfg.Progress != nil {
		b.cfg.Progress.Finish()
	}

	combined := &StructuredDiff{
		Files:        collect,
		OverallStats: newOverallStats(),
	}
	combined.OverallStats.TotalFiles = len(collect)
	for _, change := range collect {
		combined.OverallStats.TotalAdditions += change.Additions
		combined.OverallStats.TotalDeletions += change.Deletions
		combined.OverallStats.ChangeTypes[NormalizeChangeType(string(change.ChangeType))]++
	}

	if len(collect) > b.cfg.LargeCommitThreshold {
		combined.HighLevelSummary = b.highLevelSummary(ctx, combined)
	}

	return combined
}

// summarizeFile analyzes one fragment, degrading to a minimal FileChange
// on failure so a single bad file never aborts the build.
func (b *Builder) summarizeFile(ctx context.Context, fragment FileDiff) FileChange {
	prompt := fmt.Sprintf(
		"Parse the git diff for file '%s' and provide:\n\n"+
			"- Type: <add/modify/delete>\n"+
			"- Summary: Brief description of changes (1 sentence)\n"+
			"- Lines Added: <number>\n"+
			"- Lines Deleted: <number>\n"+
			"- Modified Functions: List of changed functions\n"+
			"- Key Changes: List 1-3 most important changes\n\n"+
			"Be specific and technical. Include actual function names.",
		fragment.Name,
	)

	text, err := retry.Do(ctx, b.cfg.Retry, func(ctx context.Context) (string, error) {
		return b.sender.Send(ctx, prompt, fragment.Content, b.cfg.Model, 500, b.cfg.Temperature)
	})
	if err != nil {
		slog.Debug("file summarization failed", "file", fragment.Name, "error", err)
		return FileChange{
			Name:       fragment.Name,
			ChangeType: ChangeModify,
			Summary:    fmt.Sprintf("Modified %s", fragment.Name),
			KeyChanges: []string{fmt.Sprintf("Error processing: %v", err)},
		}
	}

	return ParseFileAnalysis(fragment.Name, text)
}

// highLevelSummary asks for one extra overview of a large commit.
// Failure is swallowed; the summary is simply omitted.
func (b *Builder) highLevelSummary(ctx context.Context, sd *StructuredDiff) string {
	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Generate a high-level summary of these changes:\n\n")
	fmt.Fprintf(&prompt, "Total Files: %d\n", len(sd.Files))
	fmt.Fprintf(&prompt, "Total Additions: %d\n", sd.OverallStats.TotalAdditions)
	fmt.Fprintf(&prompt, "Total Deletions: %d\n\n", sd.OverallStats.TotalDeletions)
	prompt.WriteString("Key Changes:\n")
	for i, file := range sd.Files {
		if i >= 5 {
			break
		}
		if file.Summary != "" {
			fmt.Fprintf(&prompt, "- %s: %s\n", file.Name, file.Summary)
		}
	}

	text, err := b.sender.Send(ctx, prompt.String(), "", b.cfg.Model, 200, b.cfg.Temperature)
	if err != nil {
		slog.Debug("could not generate high-level summary", "error", err)
		return ""
	}
	return strings.TrimSpace(text)
}

// Fallback builds the degraded structure used when the AI path is
// exhausted: one modify-typed FileChange per externally known file with
// zero stats.
func Fallback(fileList []string) *StructuredDiff {
	result := &StructuredDiff{
		OverallStats: newOverallStats(),
	}

	for _, name := range fileList {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		ext := strings.TrimPrefix(filepath.Ext(name), ".")
		if ext == "" {
			ext = "unknown"
		}
		result.Files = append(result.Files, FileChange{
			Name:       name,
			ChangeType: ChangeModify,
			Summary:    fmt.Sprintf("Modified %s file", ext),
			KeyChanges: []string{fmt.Sprintf("Updated %s", name)},
		})
	}

	result.OverallStats.TotalFiles = len(result.Files)
	result.OverallStats.ChangeTypes[ChangeModify] = len(result.Files)
	return result
}
