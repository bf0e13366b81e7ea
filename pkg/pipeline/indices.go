package pipeline

import (
	"strconv"
	"strings"
)

// ParseIndices reads a comma-separated list of numbers from free-form model output.
// Everything except digits, commas and spaces is dropped first, then each comma-separated
// part that is a single run of digits becomes one index. Duplicates and order are preserved,
// range is not checked.
func ParseIndices(s string) []int {
	var sb strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == ',' || r == ' ' {
			sb.WriteRune(r)
		}
	}

	res := []int{}
	for _, part := range strings.Split(sb.String(), ",") {
		part = strings.TrimSpace(part)
		if part == "" || strings.ContainsRune(part, ' ') {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			continue // overflow
		}
		res = append(res, n)
	}
	return res
}

// FilterIndices keeps 1-based indices within [1, size]
func FilterIndices(indices []int, size int) []int {
	res := make([]int, 0, len(indices))
	for _, idx := range indices {
		if idx >= 1 && idx <= size {
			res = append(res, idx)
		}
	}
	return res
}
