package gitx

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// CachedRef selects the staged diff instead of a branch comparison.
const CachedRef = "--cached"

// Repo is a handle to one local git repository.
type Repo struct {
	dir  string
	repo *gogit.Repository
}

// Open locates the repository containing dir (searching parent directories
// the way git itself does) and returns a handle to it.
func Open(dir string) (*Repo, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("not a valid git repository: %w", err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve worktree: %w", err)
	}

	return &Repo{
		dir:  worktree.Filesystem.Root(),
		repo: repo,
	}, nil
}

// Dir returns the repository's working-tree root.
func (r *Repo) Dir() string {
	return r.dir
}

// Name returns the base name of the working tree, used to key per-repo
// persisted state.
func (r *Repo) Name() string {
	return filepath.Base(r.dir)
}

// CurrentBranch returns the checked-out branch name.
func (r *Repo) CurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", fmt.Errorf("HEAD is detached at %s", head.Hash())
	}
	return head.Name().Short(), nil
}

// StageAll stages every change in the working tree.
func (r *Repo) StageAll(ctx context.Context) error {
	_, err := r.git(ctx, "add", ".")
	return err
}

// Stage stages the given paths.
func (r *Repo) Stage(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"add", "--"}, paths...)
	_, err := r.git(ctx, args...)
	return err
}

// HasStagedChanges reports whether anything is staged for commit.
func (r *Repo) HasStagedChanges(ctx context.Context) bool {
	out, err := r.git(ctx, "diff", "--cached", "--name-only")
	return err == nil && strings.TrimSpace(out) != ""
}

// StagedFiles returns the paths currently staged for commit.
func (r *Repo) StagedFiles(ctx context.Context) ([]string, error) {
	out, err := r.git(ctx, "diff", "--cached", "--name-only")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// UnstagedFiles returns modified and untracked paths that are not staged.
func (r *Repo) UnstagedFiles(ctx context.Context) ([]string, error) {
	out, err := r.git(ctx, "ls-files", "--modified", "--others", "--exclude-standard")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// DiffNames returns the newline-joined list of files that differ from the
// given ref, or from the index when ref is CachedRef.
func (r *Repo) DiffNames(ctx context.Context, ref string) (string, error) {
	var out string
	var err error
	if ref == CachedRef {
		out, err = r.git(ctx, "diff", "--cached", "--name-only")
	} else {
		out, err = r.git(ctx, "diff", "--name-only", ref)
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// DiffText returns the unified diff against the given ref, or the staged
// diff when ref is CachedRef.
func (r *Repo) DiffText(ctx context.Context, ref string) (string, error) {
	var out string
	var err error
	if ref == CachedRef {
		out, err = r.git(ctx, "diff", "--cached")
	} else {
		out, err = r.git(ctx, "diff", ref)
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Commit commits the staged changes with the given message.
func (r *Repo) Commit(ctx context.Context, message string) error {
	_, err := r.git(ctx, "commit", "-m", message)
	return err
}

// Push pushes the current branch. When the branch has no upstream yet, it
// retries with --set-upstream origin <branch>.
func (r *Repo) Push(ctx context.Context) error {
	if _, err := r.git(ctx, "push"); err == nil {
		return nil
	}

	branch, err := r.CurrentBranch()
	if err != nil {
		return err
	}
	_, err = r.git(ctx, "push", "--set-upstream", "origin", branch)
	return err
}

// PushBranch pushes the named branch and sets its upstream.
func (r *Repo) PushBranch(ctx context.Context, name string) error {
	_, err := r.git(ctx, "push", "--set-upstream", "origin", name)
	return err
}

// CreateBranch creates a branch at HEAD and checks it out.
// Returns an error if the branch already exists.
func (r *Repo) CreateBranch(name string) (string, error) {
	refName := plumbing.NewBranchReferenceName(name)
	if _, err := r.repo.Reference(refName, false); err == nil {
		return "", fmt.Errorf("branch %q already exists", name)
	}

	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to resolve HEAD: %w", err)
	}

	worktree, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("failed to resolve worktree: %w", err)
	}

	err = worktree.Checkout(&gogit.CheckoutOptions{
		Hash:   head.Hash(),
		Branch: refName,
		Create: true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to create branch %q: %w", name, err)
	}

	return name, nil
}

// git runs one git command in the repository directory and returns stdout.
func (r *Repo) git(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return "", fmt.Errorf("git %s: %s", args[0], detail)
	}

	return stdout.String(), nil
}

func splitLines(out string) []string {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
