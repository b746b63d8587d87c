// Package commitmsg generates structured commit messages from staged
// changes.
//
// A message has four sections: a title line, a Summary paragraph, a
// Details block derived from the structured diff, and a Files Changed
// list. Title and summary are generated concurrently; each has a
// deterministic fallback so message generation as a whole never fails.
// The interactive workflow around generation (staging, confirmation,
// commit, push, audit logging) lives in Workflow.
package commitmsg
