// Package match implements fuzzy token-overlap scoring between a query
// description and stored rule patterns. Exact lookups always run first;
// fuzzy matching is only consulted when no exact match exists.
package match

import "strings"

// Score thresholds for fuzzy matching.
const (
	// CandidateFloor is the minimum overlap for a rule to be considered at all.
	CandidateFloor = 0.4
	// AuthoritativeFloor is the minimum best-candidate overlap for a fuzzy
	// match to be returned as a classification. Lower scores are discarded,
	// not returned.
	AuthoritativeFloor = 0.6
)

// Overlap scores the token overlap between a query and a candidate pattern:
// the number of query tokens matching a candidate token (by partial
// substring containment in either direction) divided by the larger token
// count. Returns a value in [0, 1].
func Overlap(queryTokens, candidateTokens []string) float64 {
	if len(queryTokens) == 0 || len(candidateTokens) == 0 {
		return 0
	}

	matched := 0
	for _, q := range queryTokens {
		for _, c := range candidateTokens {
			if tokensOverlap(q, c) {
				matched++
				break
			}
		}
	}

	denom := len(queryTokens)
	if len(candidateTokens) > denom {
		denom = len(candidateTokens)
	}
	return float64(matched) / float64(denom)
}

func tokensOverlap(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}
