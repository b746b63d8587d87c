package gitx

import (
	"fmt"
	"strings"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// FileStat records the line churn of one file within a commit.
type FileStat struct {
	// Insertions is the number of added lines
	Insertions int

	// Deletions is the number of removed lines
	Deletions int
}

// CommitRef is one commit with the metadata the report tools need.
type CommitRef struct {
	// Hash is the full commit hash
	Hash string

	// Author is the author's name
	Author string

	// When is the commit timestamp
	When time.Time

	// Message is the full commit message
	Message string

	// Files maps changed paths to their line stats
	Files map[string]FileStat

	// Insertions and Deletions are the commit totals
	Insertions int
	Deletions  int
}

// ShortHash returns the abbreviated commit hash for display.
func (c CommitRef) ShortHash() string {
	if len(c.Hash) < 7 {
		return c.Hash
	}
	return c.Hash[:7]
}

// Subject returns the first line of the commit message.
func (c CommitRef) Subject() string {
	subject, _, _ := strings.Cut(c.Message, "\n")
	return strings.TrimSpace(subject)
}

// ChangedPaths returns the changed file paths, capped at limit
// (0 = no cap).
func (c CommitRef) ChangedPaths(limit int) []string {
	paths := make([]string, 0, len(c.Files))
	for path := range c.Files {
		paths = append(paths, path)
	}
	if limit > 0 && len(paths) > limit {
		paths = paths[:limit]
	}
	return paths
}

// RecentCommits returns the last n commits on the given branch,
// newest first.
func (r *Repo) RecentCommits(branch string, n int) ([]CommitRef, error) {
	iter, err := r.logFrom(branch, nil, nil)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var commits []CommitRef
	err = iter.ForEach(func(c *object.Commit) error {
		if len(commits) >= n {
			return fmt.Errorf("done")
		}
		commits = append(commits, toCommitRef(c))
		return nil
	})
	if err != nil && !strings.Contains(err.Error(), "done") {
		return nil, fmt.Errorf("failed to walk commits: %w", err)
	}

	return commits, nil
}

// CommitHistory returns the commits on branch within [since, until],
// in walk order (newest first). Nil bounds are open.
func (r *Repo) CommitHistory(since, until *time.Time, branch string) ([]CommitRef, error) {
	iter, err := r.logFrom(branch, since, until)
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var commits []CommitRef
	err = iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, toCommitRef(c))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk commits: %w", err)
	}

	return commits, nil
}

func (r *Repo) logFrom(branch string, since, until *time.Time) (object.CommitIter, error) {
	if branch == "" {
		var err error
		branch, err = r.CurrentBranch()
		if err != nil {
			return nil, err
		}
	}

	ref, err := r.repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve branch %q: %w", branch, err)
	}

	return r.repo.Log(&gogit.LogOptions{
		From:  ref.Hash(),
		Since: since,
		Until: until,
	})
}

func toCommitRef(c *object.Commit) CommitRef {
	ref := CommitRef{
		Hash:    c.Hash.String(),
		Author:  c.Author.Name,
		When:    c.Author.When,
		Message: c.Message,
		Files:   make(map[string]FileStat),
	}

	// Stats walk the commit's tree diff; merge commits and root commits with
	// odd shapes simply yield no per-file data.
	stats, err := c.Stats()
	if err != nil {
		return ref
	}

	for _, stat := range stats {
		ref.Files[stat.Name] = FileStat{
			Insertions: stat.Addition,
			Deletions:  stat.Deletion,
		}
		ref.Insertions += stat.Addition
		ref.Deletions += stat.Deletion
	}

	return ref
}
