// Package mapx provides small generic map and slice helpers used across the
// import-fixing pipeline.
package mapx

import (
	"cmp"
	"slices"
)

// SortedKeys returns the keys of m in ascending order.
// Returns an empty slice for a nil or empty map.
func SortedKeys[K cmp.Ordered, V any](m map[K]V) []K {
	var keys []K
	for k := range m {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}

// Unique returns a new slice containing only the first occurrence of each
// element. Insertion order is preserved. Returns nil for a nil slice.
func Unique[T comparable](s []T) []T {
	if s == nil {
		return nil
	}

	seen := make(map[T]struct{}, len(s))
	result := make([]T, 0, len(s))

	for _, v := range s {
		if _, ok := seen[v]; ok {
			continue
		}

		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}
