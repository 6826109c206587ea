package match

import (
	"sort"
	"strings"
)

// MinScore is the similarity below which a candidate is not suggested.
const MinScore = 0.5

// Candidate is a known name and its similarity to the looked-up one.
type Candidate struct {
	Name  string
	Score float64
}

// Rank scores every candidate against name, best first. Ties keep
// alphabetical order so results are deterministic.
func Rank(name string, candidates []string) []Candidate {
	out := make([]Candidate, 0, len(candidates))

	for _, c := range candidates {
		if c == name {
			continue
		}

		out = append(out, Candidate{Name: c, Score: Similarity(name, c)})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}

		return out[i].Name < out[j].Name
	})

	return out
}

// Closest returns the best candidate when it scores at least MinScore and
// no other candidate scores the same.
func Closest(name string, candidates []string) (string, bool) {
	ranked := Rank(name, candidates)
	if len(ranked) == 0 || ranked[0].Score < MinScore {
		return "", false
	}

	if len(ranked) > 1 && ranked[1].Score == ranked[0].Score {
		return "", false
	}

	return ranked[0].Name, true
}

// Hint returns " (did you mean X?)" for the closest candidate, or "".
func Hint(name string, candidates []string) string {
	best, ok := Closest(name, candidates)
	if !ok {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(" (did you mean ")
	sb.WriteString(best)
	sb.WriteString("?)")

	return sb.String()
}
