package formskema

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// SuggestKey returns the declared key closest to key by edit distance, if
// any is close enough to be a plausible typo.
func SuggestKey(s *Schema, key string) (string, bool) {
	best, bestDist := "", -1
	lk := strings.ToLower(key)
	for _, k := range s.keys {
		d := levenshtein.ComputeDistance(lk, strings.ToLower(k))
		if bestDist < 0 || d < bestDist {
			best, bestDist = k, d
		}
	}
	if bestDist < 0 || bestDist > maxSuggestDistance(key) {
		return "", false
	}
	return best, true
}

func maxSuggestDistance(key string) int {
	n := len([]rune(key))
	switch {
	case n <= 3:
		return 1
	case n <= 8:
		return 2
	}
	return 3
}
