// Package match reconciles free-text card names, such as AI-vision guesses or
// typed input, against the catalog using normalized Levenshtein similarity.
package match

import "strings"

const (
	// DefaultThreshold is the minimum similarity for typed input.
	DefaultThreshold = 0.6
	// VisionThreshold is the minimum similarity for AI-vision guesses, which
	// carry more noise than typed input.
	VisionThreshold = 0.7
)

// LevenshteinDistance returns the edit distance between a and b.
func LevenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	previous := make([]int, len(a)+1)
	current := make([]int, len(a)+1)
	for i := range previous {
		previous[i] = i
	}

	for j := 1; j <= len(b); j++ {
		current[0] = j
		for i := 1; i <= len(a); i++ {
			substitution := previous[i-1]
			if a[i-1] != b[j-1] {
				substitution++
			}
			current[i] = min(current[i-1]+1, previous[i]+1, substitution)
		}
		previous, current = current, previous
	}
	return previous[len(a)]
}

// Similarity returns 1 - distance/max(len(a), len(b)), comparing
// case-insensitively. Two empty strings are fully similar.
func Similarity(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)
	longest := max(len(a), len(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(LevenshteinDistance(a, b))/float64(longest)
}

// FindBestMatch returns the candidate most similar to query, provided the
// similarity meets the threshold. The same query and candidates always yield
// the same result.
func FindBestMatch(query string, candidates []string, threshold float64) (string, bool) {
	if query == "" || len(candidates) == 0 {
		return "", false
	}

	best := ""
	bestSimilarity := -1.0
	for _, candidate := range candidates {
		if similarity := Similarity(query, candidate); similarity > bestSimilarity {
			bestSimilarity = similarity
			best = candidate
		}
	}
	if bestSimilarity < threshold {
		return "", false
	}
	return best, true
}
