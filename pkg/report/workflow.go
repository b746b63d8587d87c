package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/atotto/clipboard"

	"github.com/Caleb68864/CC-AI-Tools/pkg/auditlog"
	"github.com/Caleb68864/CC-AI-Tools/pkg/cli"
	"github.com/Caleb68864/CC-AI-Tools/pkg/gitx"
)

// dateTimeFormats are the accepted layouts for --since/--until/--date.
var dateTimeFormats = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
}

// ParseDateTime parses a user-supplied date or datetime string.
func ParseDateTime(s string) (time.Time, error) {
	for _, layout := range dateTimeFormats {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("time data %q does not match any supported formats", s)
}

// WindowOptions selects the commit range a report covers.
type WindowOptions struct {
	// Since and Until bound the window explicitly.
	Since string
	Until string

	// Date is shorthand for Since.
	Date string

	// RecentCommits, when positive, lists the last N commits and lets
	// the user pick the starting one interactively.
	RecentCommits int
}

// Workflow runs the interactive report flow: resolve the window, fetch
// and analyze commits, generate the report, offer a clipboard copy, and
// persist the run.
type Workflow struct {
	Repo      *gitx.Repo
	Analyzer  *Analyzer
	Generator *Generator
	Prompter  *cli.Prompter
	Out       io.Writer

	// LastRun tracks per repo/branch report times. Nil disables
	// last-run handling.
	LastRun *auditlog.LastRunFile

	// Store records runs. Nil disables run recording.
	Store *auditlog.Store

	// Model is recorded with audit entries.
	Model string

	// CopyToClipboard copies the report; defaults to the system
	// clipboard.
	CopyToClipboard func(string) error
}

// Run generates a progress report for the current branch. It returns
// false when there was nothing to report or the window selection was
// cancelled.
func (w *Workflow) Run(ctx context.Context, opts WindowOptions) (bool, error) {
	branch, err := w.Repo.CurrentBranch()
	if err != nil {
		return false, fmt.Errorf("failed to resolve current branch: %w", err)
	}

	start, end, ok, err := w.resolveWindow(opts, branch)
	if err != nil || !ok {
		return false, err
	}

	fmt.Fprintf(w.Out, "Analysis configuration:\n")
	fmt.Fprintf(w.Out, "  Branch: %s\n", branch)
	fmt.Fprintf(w.Out, "  Start:  %s\n", start.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w.Out, "  End:    %s\n", end.Format("2006-01-02 15:04:05"))

	commits, err := w.Repo.CommitHistory(&start, &end, branch)
	if err != nil {
		return false, fmt.Errorf("failed to read commit history: %w", err)
	}
	if len(commits) == 0 {
		fmt.Fprintln(w.Out, "No new commits since last run.")
		return false, nil
	}

	// Oldest first so indexes reflect chronological order.
	sort.Slice(commits, func(i, j int) bool { return commits[i].When.Before(commits[j].When) })

	fmt.Fprintf(w.Out, "\nFound %d new commits to analyze...\n", len(commits))
	analyses := w.Analyzer.AnalyzeCommits(ctx, commits)
	groups := GroupAnalyses(analyses)

	fmt.Fprintf(w.Out, "\nFound %d categories of changes:\n", len(groups))
	for _, group := range groups {
		fmt.Fprintf(w.Out, "  %s (%d commits)\n", group.Key, len(group.Analyses))
	}

	fmt.Fprintln(w.Out, "\nGenerating final report...")
	title := Title(branch, time.Now())
	output := w.Generator.Generate(ctx, title, groups)

	fmt.Fprintln(w.Out, "\nGit Progress Report:")
	fmt.Fprintln(w.Out, output)
	fmt.Fprintf(w.Out, "\nReport generated! (%d characters)\n", len(output))

	w.recordRun(ctx, branch, output)

	copyIt, err := w.Prompter.YesNo("\nCopy progress report to clipboard?")
	if err != nil {
		return true, err
	}
	if copyIt {
		copyFn := w.CopyToClipboard
		if copyFn == nil {
			copyFn = clipboard.WriteAll
		}
		if err := copyFn(output); err != nil {
			fmt.Fprintf(w.Out, "Could not copy to clipboard: %v\n", err)
		} else {
			fmt.Fprintln(w.Out, "Progress report copied to clipboard!")
		}

		if w.LastRun != nil {
			if err := w.LastRun.Update(w.Repo.Name(), branch, time.Now()); err != nil {
				slog.Warn("could not update last-run file", "error", err)
			} else {
				fmt.Fprintln(w.Out, "Last-run file updated.")
			}
		}
	} else {
		fmt.Fprintln(w.Out, "Progress report not copied to clipboard.")
	}

	return true, nil
}

// resolveWindow picks the report window. Precedence: interactive recent
// commit pick, --date, --since, then the stored last run plus a small
// skew (falling back to 3 AM today). ok is false when the interactive
// pick was cancelled.
func (w *Workflow) resolveWindow(opts WindowOptions, branch string) (start, end time.Time, ok bool, err error) {
	switch {
	case opts.RecentCommits > 0:
		start, ok, err = w.selectRecentCommit(opts.RecentCommits, branch)
		if err != nil || !ok {
			return time.Time{}, time.Time{}, ok, err
		}
	case opts.Date != "":
		start, err = ParseDateTime(opts.Date)
		if err != nil {
			return time.Time{}, time.Time{}, false, err
		}
	case opts.Since != "":
		start, err = ParseDateTime(opts.Since)
		if err != nil {
			return time.Time{}, time.Time{}, false, err
		}
	default:
		start = w.defaultStart(branch)
	}

	end = time.Now()
	if opts.Until != "" {
		end, err = ParseDateTime(opts.Until)
		if err != nil {
			return time.Time{}, time.Time{}, false, err
		}
	}
	return start, end, true, nil
}

// defaultStart is the last recorded run plus two minutes, or 3 AM today
// when there is no usable record.
func (w *Workflow) defaultStart(branch string) time.Time {
	if w.LastRun != nil {
		if last, found := w.LastRun.LastRun(w.Repo.Name(), branch); found {
			return last.Add(2 * time.Minute)
		}
	}
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 3, 0, 0, 0, now.Location())
}

// selectRecentCommit lists the last n commits and lets the user pick the
// starting point. ok is false when the user cancels.
func (w *Workflow) selectRecentCommit(n int, branch string) (time.Time, bool, error) {
	fmt.Fprintf(w.Out, "\nRetrieving last %d commits on branch %q...\n", n, branch)

	commits, err := w.Repo.RecentCommits(branch, n)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to list recent commits: %w", err)
	}
	if len(commits) == 0 {
		fmt.Fprintln(w.Out, "No commits found")
		return time.Time{}, false, nil
	}

	fmt.Fprintln(w.Out, "\nRecent commits:")
	for i, commit := range commits {
		subject := commit.Subject()
		if len(subject) > 60 {
			subject = subject[:60]
		}
		fmt.Fprintf(w.Out, "%d. %s - %s\n", i+1, commit.When.Format("2006-01-02 15:04:05"), subject)
	}

	choice, err := w.Prompter.SelectNumber("\nSelect a number to use as starting commit (or press Enter to cancel): ", len(commits))
	if err != nil {
		return time.Time{}, false, err
	}
	if choice == 0 {
		fmt.Fprintln(w.Out, "No date selected.")
		return time.Time{}, false, nil
	}

	selected := commits[choice-1]
	fmt.Fprintf(w.Out, "\nProcessing: Selected commit - %s\n", selected.Subject())
	return selected.When, true, nil
}

// recordRun stores the generated report. Failures are logged, never fatal.
func (w *Workflow) recordRun(ctx context.Context, branch, output string) {
	if w.Store == nil {
		return
	}
	run := &auditlog.Run{
		Tool:   "report",
		Repo:   w.Repo.Name(),
		Branch: branch,
		Model:  w.Model,
		Output: output,
	}
	if err := w.Store.Record(ctx, run); err != nil {
		slog.Warn("could not record report run", "error", err)
	}
}
