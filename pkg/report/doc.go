// Package report generates progress reports from git commit history.
//
// Commits in the reporting window are analyzed in parallel (each one
// classified by type, scope, and impact), grouped by type/scope, and
// then condensed into a short report by a final AI call. Every stage
// degrades gracefully: a commit that cannot be analyzed gets a fallback
// entry derived from its message, and if the final call fails the
// report is assembled directly from the grouped summaries.
package report
