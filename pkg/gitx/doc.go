/*
Package gitx wraps the git operations the AI tools need as in-process calls.

Working-tree mutations (staging, committing, pushing) shell out to the git
binary so they behave exactly like the user's own git, including hooks and
config. Read paths that need structured data (commit history with per-file
stats, branch creation) use go-git.

The working tree is a single mutable shared resource: callers must keep
staging and committing serialized and outside any parallel sections.
*/
package gitx
