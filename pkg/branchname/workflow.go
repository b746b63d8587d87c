package branchname

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/Caleb68864/CC-AI-Tools/pkg/auditlog"
	"github.com/Caleb68864/CC-AI-Tools/pkg/cli"
	"github.com/Caleb68864/CC-AI-Tools/pkg/gitx"
)

// Workflow runs the interactive branch creation flow.
type Workflow struct {
	Repo      *gitx.Repo
	Generator *Generator
	Prompter  *cli.Prompter
	Out       io.Writer

	// EnvPath is where a newly entered username is saved.
	EnvPath string

	// Store records runs. Nil disables run recording.
	Store *auditlog.Store

	// Model is recorded with audit entries.
	Model string
}

// Run drives branch creation: AI suggestions by default, custom
// assembly as the alternative. It returns the created branch name, or
// empty when the user quit without creating one.
func (w *Workflow) Run(ctx context.Context) (string, error) {
	currentBranch, err := w.Repo.CurrentBranch()
	if err != nil {
		return "", fmt.Errorf("failed to resolve current branch: %w", err)
	}

	fmt.Fprintln(w.Out, "Branch creation options:")
	fmt.Fprintln(w.Out, "1. Generate AI suggestions based on description (default)")
	fmt.Fprintln(w.Out, "2. Create custom branch name")

	choice, err := w.Prompter.SelectNumber("\nSelect an option (1/2, default: 1): ", 2)
	if err != nil {
		return "", err
	}

	if choice != 2 {
		name, switched, err := w.runSuggestions(ctx, currentBranch)
		if err != nil || !switched {
			return name, err
		}
		return name, nil
	}
	return w.runCustom(ctx, currentBranch)
}

// runSuggestions asks for a change description, offers the AI
// suggestions, and creates the chosen branch. Falls back to the custom
// flow when suggestions cannot be parsed or the user asks for it.
func (w *Workflow) runSuggestions(ctx context.Context, currentBranch string) (string, bool, error) {
	description, err := w.Prompter.Line("\nDescribe the changes you'll make in this branch: ")
	if err != nil {
		return "", false, err
	}

	fmt.Fprintln(w.Out, "\nGenerating branch name suggestions...")
	suggestions, err := w.Generator.Suggest(ctx, description)
	if err != nil {
		fmt.Fprintf(w.Out, "Error parsing suggestions: %v\n", err)
		name, err := w.runCustom(ctx, currentBranch)
		return name, name != "", err
	}

	fmt.Fprintln(w.Out, "\nSuggested branch names:")
	fmt.Fprintln(w.Out, strings.Repeat("=", 50))
	for _, s := range suggestions {
		fmt.Fprintf(w.Out, "%d. %s - %s\n", s.Number, s.Name, s.Description)
	}
	fmt.Fprintf(w.Out, "%d. Create custom branch name instead\n", len(suggestions)+1)
	fmt.Fprintln(w.Out, strings.Repeat("=", 50))

	for {
		choice, err := w.Prompter.SelectNumber("\nEnter the number of the branch name you would like to create (or press Enter to quit): ", len(suggestions)+1)
		if err != nil {
			return "", false, err
		}
		if choice == 0 {
			return "", false, nil
		}
		if choice == len(suggestions)+1 {
			name, err := w.runCustom(ctx, currentBranch)
			return name, name != "", err
		}

		branchType, desc := SplitTypeDescription(suggestions[choice-1].Name)
		name, created, err := w.confirmAndCreate(ctx, currentBranch, branchType, desc)
		if err != nil {
			return "", false, err
		}
		if created {
			return name, true, nil
		}
		// Declined; offer the list again.
	}
}

// runCustom assembles a branch name from a selected type and a typed
// description.
func (w *Workflow) runCustom(ctx context.Context, currentBranch string) (string, error) {
	for {
		fmt.Fprintln(w.Out, "\nAvailable branch types:")
		fmt.Fprintln(w.Out, strings.Repeat("=", 50))
		for i, t := range BranchTypes {
			fmt.Fprintf(w.Out, "%d. %s\n", i+1, t)
		}
		fmt.Fprintln(w.Out, strings.Repeat("=", 50))

		choice, err := w.Prompter.SelectNumber("\nSelect a branch type (enter number): ", len(BranchTypes))
		if err != nil {
			return "", err
		}
		if choice == 0 {
			return "", nil
		}
		branchType := BranchTypes[choice-1]

		var description string
		for description == "" {
			description, err = w.Prompter.Line(fmt.Sprintf("\nEnter a description for your %s branch: ", branchType))
			if err != nil {
				return "", err
			}
			if description == "" {
				fmt.Fprintln(w.Out, "Description cannot be empty. Please try again.")
			}
		}

		name, created, err := w.confirmAndCreate(ctx, currentBranch, branchType, description)
		if err != nil {
			return "", err
		}
		if created {
			return name, nil
		}
	}
}

// confirmAndCreate formats the final name, confirms, creates and
// optionally pushes the branch, and records the run.
func (w *Workflow) confirmAndCreate(ctx context.Context, currentBranch, branchType, description string) (string, bool, error) {
	username, err := ResolveUsername(w.Prompter, w.EnvPath)
	if err != nil {
		return "", false, err
	}

	name := Format(time.Now(), username, branchType, description)

	ok, err := w.Prompter.YesNo(fmt.Sprintf("\nCreate new branch '%s' from '%s'?", name, currentBranch))
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}

	created, err := w.Repo.CreateBranch(name)
	if err != nil {
		fmt.Fprintf(w.Out, "%v\n", err)
		return "", false, nil
	}
	fmt.Fprintf(w.Out, "\nCreated and switched to new branch: %s\n", created)

	w.recordRun(ctx, currentBranch, created)

	push, err := w.Prompter.YesNo("\nWould you like to push this branch to remote?")
	if err != nil {
		return created, true, err
	}
	if push {
		if err := w.Repo.PushBranch(ctx, created); err != nil {
			fmt.Fprintf(w.Out, "Failed to push to remote: %v\n", err)
		} else {
			fmt.Fprintf(w.Out, "Successfully pushed branch to remote: origin/%s\n", created)
		}
	}

	return created, true, nil
}

func (w *Workflow) recordRun(ctx context.Context, fromBranch, name string) {
	if w.Store == nil {
		return
	}
	run := &auditlog.Run{
		Tool:   "branch",
		Repo:   w.Repo.Name(),
		Branch: fromBranch,
		Model:  w.Model,
		Output: name,
	}
	if err := w.Store.Record(ctx, run); err != nil {
		slog.Warn("could not record branch run", "error", err)
	}
}
