package match

import (
	"strings"
	"unicode"
)

// Distance returns the number of single-rune insertions, deletions or
// substitutions that turn a into b.
func Distance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	row := make([]int, len(ra)+1)
	for i := range row {
		row[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		diag := row[0]
		row[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			next := min(row[i]+1, row[i-1]+1, diag+cost)
			diag, row[i] = row[i], next
		}
	}

	return row[len(ra)]
}

// Similarity scores a and b in [0, 1], where 1 means equal after folding.
func Similarity(a, b string) float64 {
	fa, fb := fold(a), fold(b)

	n := max(len([]rune(fa)), len([]rune(fb)))
	if n == 0 {
		return 1
	}

	return 1 - float64(Distance(fa, fb))/float64(n)
}

// fold lowercases s and drops separators, so "Max_Width" and "maxWidth"
// compare equal.
func fold(s string) string {
	var sb strings.Builder

	for _, r := range s {
		if r == '_' || r == '-' || unicode.IsSpace(r) {
			continue
		}

		sb.WriteRune(unicode.ToLower(r))
	}

	return sb.String()
}
