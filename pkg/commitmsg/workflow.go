package commitmsg

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Caleb68864/CC-AI-Tools/pkg/auditlog"
	"github.com/Caleb68864/CC-AI-Tools/pkg/cli"
	"github.com/Caleb68864/CC-AI-Tools/pkg/gitx"
	"github.com/Caleb68864/CC-AI-Tools/pkg/structdiff"
)

// Workflow runs the interactive commit flow: stage, analyze, generate,
// confirm, commit, push, audit.
type Workflow struct {
	Repo      *gitx.Repo
	Builder   *structdiff.Builder
	Generator *Generator
	Prompter  *cli.Prompter
	Out       io.Writer

	// AuditDir receives a log file per accepted message. Empty disables
	// file logging.
	AuditDir string

	// Store records runs. Nil disables run recording.
	Store *auditlog.Store

	// Model is recorded with audit entries.
	Model string
}

// Run executes the commit flow with the user's guidance message. It
// returns false when the user declined to commit or there was nothing to
// commit.
func (w *Workflow) Run(ctx context.Context, userMsg string) (bool, error) {
	fmt.Fprintln(w.Out, "Analyzing changes...")

	staged, err := w.prepareStagedChanges(ctx)
	if err != nil || !staged {
		return false, err
	}

	diffFiles, err := w.Repo.DiffNames(ctx, gitx.CachedRef)
	if err != nil {
		return false, fmt.Errorf("failed to read staged file list: %w", err)
	}
	diffText, err := w.Repo.DiffText(ctx, gitx.CachedRef)
	if err != nil {
		return false, fmt.Errorf("failed to read staged diff: %w", err)
	}
	if strings.TrimSpace(diffFiles) == "" && strings.TrimSpace(diffText) == "" {
		fmt.Fprintln(w.Out, "No staged changes to commit")
		return false, nil
	}

	fileList := splitNonEmpty(diffFiles)
	sd := w.Builder.Build(ctx, diffText, fileList)

	fmt.Fprintln(w.Out, "Generating title and summary in parallel...")
	message := w.Generator.Generate(ctx, userMsg, sd)

	final := message.Render()
	if strings.TrimSpace(final) == "" {
		final = Minimal(userMsg, fileList)
	}

	fmt.Fprintln(w.Out, "\nFinal Commit Message:")
	fmt.Fprintln(w.Out, strings.Repeat("=", 50))
	fmt.Fprintln(w.Out, final)
	fmt.Fprintln(w.Out, strings.Repeat("=", 50))

	ok, err := w.Prompter.YesNo("\nDo you want to commit these changes?")
	if err != nil {
		return false, err
	}
	if !ok {
		fmt.Fprintln(w.Out, "Changes not committed.")
		return false, nil
	}

	if err := w.Repo.Commit(ctx, final); err != nil {
		return false, fmt.Errorf("failed to commit: %w", err)
	}
	fmt.Fprintln(w.Out, "Changes committed.")

	w.audit(ctx, userMsg, final)

	push, err := w.Prompter.YesNo("Do you want to push the changes to remote repository?")
	if err != nil {
		return true, err
	}
	if push {
		if err := w.Repo.Push(ctx); err != nil {
			fmt.Fprintf(w.Out, "Failed to push changes: %v\n", err)
		} else {
			fmt.Fprintln(w.Out, "Changes pushed to the remote repository.")
		}
	} else {
		fmt.Fprintln(w.Out, "Changes not pushed to the remote repository.")
	}

	return true, nil
}

// prepareStagedChanges makes sure there is a staged change set to work
// with, offering the already-staged set or interactive selection of
// unstaged files.
func (w *Workflow) prepareStagedChanges(ctx context.Context) (bool, error) {
	if w.Repo.HasStagedChanges(ctx) {
		stagedFiles, err := w.Repo.StagedFiles(ctx)
		if err != nil {
			return false, fmt.Errorf("failed to list staged files: %w", err)
		}

		fmt.Fprintf(w.Out, "Found %d already staged files:\n", len(stagedFiles))
		for i, file := range stagedFiles {
			fmt.Fprintf(w.Out, "  %d. %s\n", i+1, file)
		}

		useStaged, err := w.Prompter.YesNo("\nDo you want to work with these staged files?")
		if err != nil {
			return false, err
		}
		if useStaged {
			fmt.Fprintln(w.Out, "Using already staged files.")
			return true, nil
		}
	}

	unstaged, err := w.Repo.UnstagedFiles(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to list unstaged files: %w", err)
	}
	if len(unstaged) == 0 {
		fmt.Fprintln(w.Out, "No unstaged changes found")
		return false, nil
	}

	fmt.Fprintf(w.Out, "\nUnstaged files (%d):\n", len(unstaged))
	for i, file := range unstaged {
		fmt.Fprintf(w.Out, "  %d. %s\n", i+1, file)
	}

	selection, err := w.Prompter.Line("\nEnter file numbers to stage (e.g., '1,3,5-7', or press Enter for all): ")
	if err != nil {
		return false, err
	}

	selected := gitx.ParseFileSelection(selection, unstaged)
	if len(selected) == 0 {
		fmt.Fprintln(w.Out, "No files selected for staging")
		return false, nil
	}

	progress := cli.NewProgressReporter(w.Out, "files")
	progress.Start(int64(len(selected)))
	for i, file := range selected {
		if err := w.Repo.Stage(ctx, []string{file}); err != nil {
			progress.Error(err)
			return false, fmt.Errorf("failed to stage %s: %w", file, err)
		}
		progress.Update(int64(i + 1))
	}
	progress.Finish()
	fmt.Fprintln(w.Out, "Files staged successfully.")

	return true, nil
}

// audit records the accepted message. Failures are logged, never fatal.
func (w *Workflow) audit(ctx context.Context, userMsg, final string) {
	if w.AuditDir != "" {
		if path, err := auditlog.WriteMessageLog(w.AuditDir, userMsg, final); err != nil {
			slog.Warn("could not save commit message to log", "error", err)
		} else {
			fmt.Fprintf(w.Out, "Commit message saved to %s\n", path)
		}
	}

	if w.Store != nil {
		branch, _ := w.Repo.CurrentBranch()
		run := &auditlog.Run{
			Tool:    "commit",
			Repo:    w.Repo.Name(),
			Branch:  branch,
			Model:   w.Model,
			Message: userMsg,
			Output:  final,
		}
		if err := w.Store.Record(ctx, run); err != nil {
			slog.Warn("could not record commit run", "error", err)
		}
	}
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
