// Package sample implements uniform random sampling without replacement.
// It takes an explicit rand source so callers can make draws reproducible.
package sample

import "math/rand"

// Draw returns a uniform random sample of up to n items, without
// replacement, preserving the order in which items were drawn. The input
// slice is not modified. If n >= len(items), a shuffled copy of all items
// is returned.
func Draw[T any](r *rand.Rand, items []T, n int) []T {
	if n <= 0 || len(items) == 0 {
		return []T{}
	}
	if n > len(items) {
		n = len(items)
	}

	// Partial Fisher-Yates: the first n positions of the working copy end
	// up holding the sample, each subset equally likely.
	working := make([]T, len(items))
	copy(working, items)
	for i := 0; i < n; i++ {
		j := i + r.Intn(len(working)-i)
		working[i], working[j] = working[j], working[i]
	}
	return working[:n]
}
