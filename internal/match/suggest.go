package match

import (
	"strings"
)

// MinSimilarity is the score below which Suggest reports no match.
const MinSimilarity = 0.6

// registryPrefixes are dropped before comparing names.
var registryPrefixes = []string{"gl_", "gl"}

// Normalize folds case, strips the registry prefix and removes separators.
func Normalize(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))

	for _, prefix := range registryPrefixes {
		if trimmed, ok := strings.CutPrefix(s, prefix); ok && trimmed != "" {
			s = trimmed
			break
		}
	}

	return strings.Map(func(r rune) rune {
		if r == '_' || r == '-' || r == ' ' {
			return -1
		}

		return r
	}, s)
}

// Suggest returns the candidate closest to name. It reports false when
// nothing reaches MinSimilarity. Ties keep the earlier candidate.
func Suggest(name string, candidates []string) (string, bool) {
	target := Normalize(name)

	var (
		best      string
		bestScore float64
	)

	for _, c := range candidates {
		score := Similarity(target, Normalize(c))
		if score > bestScore {
			best, bestScore = c, score
		}
	}

	if bestScore < MinSimilarity {
		return "", false
	}

	return best, true
}
