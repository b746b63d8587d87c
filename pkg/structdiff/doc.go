/*
Package structdiff turns a raw unified diff into a structured summary by
driving the AI gateway.

Small diffs go to the model in one call that requests a labeled text block
(FILE SUMMARY / OVERALL STATISTICS). Large diffs are split into per-file
fragments at "diff --git" boundaries and summarized in parallel by a
bounded worker pool, then merged. Model replies carry no structural
guarantee, so parsing is a tolerant line scanner: recognized field prefixes
fill the builder, everything else is skipped, and unparseable numbers
default to zero.

Every failure path degrades instead of propagating. A failed per-file call
yields a minimal FileChange; a failed whole-diff call yields a fallback
StructuredDiff built from the externally supplied file list. Build never
returns an error.
*/
package structdiff
