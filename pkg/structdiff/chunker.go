package structdiff

import (
	"fmt"
	"strings"
)

// DefaultChunkThreshold is the diff size in characters above which the
// chunked, parallel path is used.
const DefaultChunkThreshold = 10000

// FileDiff is one file's fragment of a unified diff, in boundary order.
type FileDiff struct {
	Name    string
	Content string
}

// NeedsChunking reports whether the diff is large enough to warrant
// per-file chunked processing.
func NeedsChunking(diffText string, threshold int) bool {
	if threshold <= 0 {
		threshold = DefaultChunkThreshold
	}
	return len(diffText) > threshold
}

// SplitByFile splits a unified diff into per-file fragments at
// "diff --git" boundaries. A fragment starts at its boundary line and
// accumulates everything up to the next boundary or end of input. A diff
// with no boundary markers yields nil; callers fall back to a degraded
// structure built from the external file list.
func SplitByFile(diffText string) []FileDiff {
	var fragments []FileDiff
	var current *FileDiff
	var content []string

	flush := func() {
		if current != nil && len(content) > 0 {
			current.Content = strings.Join(content, "\n")
			fragments = append(fragments, *current)
		}
		content = nil
	}

	for _, line := range strings.Split(diffText, "\n") {
		if strings.HasPrefix(line, "diff --git") {
			flush()

			name := ""
			if _, after, ok := strings.Cut(line, " b/"); ok {
				name = after
			}
			if name == "" {
				name = fmt.Sprintf("unknown_file_%d", len(fragments))
			}
			current = &FileDiff{Name: name}
		}

		if current != nil {
			content = append(content, line)
		}
	}
	flush()

	return fragments
}

// Batch groups fragments into at most batches roughly-equal groups with a
// minimum group size of 1, preserving order.
func Batch(files []FileDiff, batches int) [][]FileDiff {
	if len(files) == 0 {
		return nil
	}
	if batches < 1 {
		batches = 1
	}

	size := len(files) / batches
	if size < 1 {
		size = 1
	}

	var groups [][]FileDiff
	for start := 0; start < len(files); start += size {
		end := start + size
		if end > len(files) {
			end = len(files)
		}
		groups = append(groups, files[start:end])
	}
	return groups
}
