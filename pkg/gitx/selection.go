package gitx

import (
	"sort"
	"strconv"
	"strings"
)

// ParseFileSelection expands a user selection string like "1,3,5-7" into
// the corresponding entries of files (1-based indices). An empty selection
// selects every file. Unparseable parts and out-of-range indices are
// ignored rather than rejected.
func ParseFileSelection(selection string, files []string) []string {
	if strings.TrimSpace(selection) == "" {
		return files
	}

	selected := make(map[int]struct{})

	for _, part := range strings.Split(selection, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if start, end, ok := strings.Cut(part, "-"); ok {
			lo, err1 := strconv.Atoi(strings.TrimSpace(start))
			hi, err2 := strconv.Atoi(strings.TrimSpace(end))
			if err1 == nil && err2 == nil {
				if lo < 1 {
					lo = 1
				}
				if hi > len(files) {
					hi = len(files)
				}
				for i := lo; i <= hi; i++ {
					selected[i-1] = struct{}{}
				}
				continue
			}
		}

		if idx, err := strconv.Atoi(part); err == nil {
			if idx >= 1 && idx <= len(files) {
				selected[idx-1] = struct{}{}
			}
		}
	}

	indices := make([]int, 0, len(selected))
	for idx := range selected {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	result := make([]string, 0, len(indices))
	for _, idx := range indices {
		result = append(result, files[idx])
	}
	return result
}
