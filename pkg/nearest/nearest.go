// SPDX-License-Identifier: MPL-2.0

// Package nearest picks the candidate name closest to a preferred name by
// Levenshtein edit distance.
package nearest

import (
	"errors"
	"fmt"
)

// ErrNoCandidates is returned by Select when there is nothing to choose from.
var ErrNoCandidates = errors.New("no candidates")

// Distance returns the Levenshtein edit distance between a and b, counting
// insertions, deletions and substitutions of runes at unit cost.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	n, m := len(ra), len(rb)

	// d[i][j] is the distance between ra[:i] and rb[:j].
	d := make([][]int, n+1)
	for i := range d {
		d[i] = make([]int, m+1)
		d[i][0] = i
	}
	for j := 1; j <= m; j++ {
		d[0][j] = j
	}

	for i := 1; i <= n; i++ {
		for j := 1; j <= m; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			d[i][j] = min(
				d[i-1][j]+1,
				d[i][j-1]+1,
				d[i-1][j-1]+cost,
			)
		}
	}
	return d[n][m]
}

// Select returns the candidate with the smallest edit distance to preferred.
// Ties go to the earliest candidate in slice order.
func Select(preferred string, candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", fmt.Errorf("selecting nearest to %q: %w", preferred, ErrNoCandidates)
	}

	best, bestDistance := candidates[0], Distance(preferred, candidates[0])
	for _, c := range candidates[1:] {
		if bestDistance == 0 {
			break
		}
		if d := Distance(preferred, c); d < bestDistance {
			best, bestDistance = c, d
		}
	}
	return best, nil
}
