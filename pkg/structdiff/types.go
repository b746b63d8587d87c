package structdiff

// ChangeType classifies how a file changed within a diff.
type ChangeType string

const (
	ChangeAdd    ChangeType = "add"
	ChangeModify ChangeType = "modify"
	ChangeDelete ChangeType = "delete"
)

// NormalizeChangeType maps arbitrary model output onto a known change
// type. Anything unrecognized counts as a modification.
func NormalizeChangeType(s string) ChangeType {
	switch ChangeType(s) {
	case ChangeAdd, ChangeDelete:
		return ChangeType(s)
	default:
		return ChangeModify
	}
}

// FileChange is one modified, added, or deleted file within a diff.
// Counts default to 0 when the model output is unparseable; they are never
// negative except for an explicit leading minus in the reply.
type FileChange struct {
	// Name is the file path
	Name string

	// ChangeType is add, modify, or delete
	ChangeType ChangeType

	// Summary is a short description of the change
	Summary string

	// Additions and Deletions are line counts
	Additions int
	Deletions int

	// FunctionsModified lists changed function names in reply order
	FunctionsModified []string

	// KeyChanges lists the most important changes in reply order
	KeyChanges []string
}

// OverallStats aggregates a diff's changes.
type OverallStats struct {
	// TotalFiles is the file count. On the primary path it is whatever the
	// model reported (best effort); on fallback paths it equals len(Files).
	TotalFiles int

	// TotalAdditions and TotalDeletions are line totals
	TotalAdditions int
	TotalDeletions int

	// ChangeTypes counts files per change type
	ChangeTypes map[ChangeType]int
}

// StructuredDiff is the aggregate view of one diff's changes.
// Files preserves discovery order: boundary order in the original diff, or
// completion order on the parallel path. It is never re-sorted.
type StructuredDiff struct {
	Files        []FileChange
	OverallStats OverallStats

	// HighLevelSummary is only populated for large commits (more files than
	// the large-commit threshold) and only when the extra summary call
	// succeeds.
	HighLevelSummary string
}

func newOverallStats() OverallStats {
	return OverallStats{
		ChangeTypes: map[ChangeType]int{
			ChangeModify: 0,
			ChangeAdd:    0,
			ChangeDelete: 0,
		},
	}
}
