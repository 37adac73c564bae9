package match

import (
	"fmt"
)

// Closest returns the candidate nearest to name, provided its edit distance
// is at most maxDist. Ties go to the earlier candidate.
func Closest(name string, candidates []string, maxDist int) (string, bool) {
	best := ""
	bestDist := maxDist + 1

	for _, c := range candidates {
		if d := Levenshtein(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}

	return best, bestDist <= maxDist
}

// ClosestIdent is like Closest but compares normalized identifiers, so
// "Embed", "EMBED" and "embed" are all distance zero from each other.
func ClosestIdent(name string, candidates []string, maxDist int) (string, bool) {
	norm := NormalizeIdent(name)
	best := ""
	bestDist := maxDist + 1

	for _, c := range candidates {
		if d := Levenshtein(norm, NormalizeIdent(c)); d < bestDist {
			best, bestDist = c, d
		}
	}

	return best, bestDist <= maxDist
}

// Suggestion formats a "did you mean" sentence, or returns "" when no
// candidate is close enough.
func Suggestion(name string, candidates []string, maxDist int) string {
	best, ok := Closest(name, candidates, maxDist)
	if !ok {
		return ""
	}

	return fmt.Sprintf("did you mean %q?", best)
}
