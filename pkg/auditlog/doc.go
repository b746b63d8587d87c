// Package auditlog records what the AI tools generated and when.
//
// Three records are kept:
//
//   - Prompt log files: every accepted commit message is written to a
//     timestamped text file under the audit directory, with a filename
//     derived from the user's message.
//   - Run store: a SQLite database of generation runs (tool, repo,
//     branch, model, output) for later inspection.
//   - Last-run file: a small YAML file tracking when a progress report
//     was last generated per repository and branch, so the next report
//     covers only new commits.
//
// All writes are best-effort from the caller's perspective; a failed
// audit write should never abort a commit.
package auditlog
