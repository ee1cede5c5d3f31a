package errors

import (
	"sort"
	"strings"
)

// maxSuggestions caps how many near-matches an unknown-metric error carries.
const maxSuggestions = 3

// editDistanceThreshold is the largest edit distance still considered a
// plausible typo of a known metric name.
const editDistanceThreshold = 2

// SuggestMetricNames returns up to three known metric names that are
// plausible intended spellings of the unknown name. A candidate matches
// when one name contains the other or when the edit distance between
// them is at most two. Matches are ranked by edit distance, then
// alphabetically.
func SuggestMetricNames(unknown string, known []string) []string {
	type candidate struct {
		name     string
		distance int
	}

	var candidates []candidate
	for _, name := range known {
		dist := levenshteinDistance(unknown, name)
		containment := strings.Contains(name, unknown) || strings.Contains(unknown, name)
		if containment || dist <= editDistanceThreshold {
			candidates = append(candidates, candidate{name: name, distance: dist})
		}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].distance != candidates[j].distance {
			return candidates[i].distance < candidates[j].distance
		}
		return candidates[i].name < candidates[j].name
	})

	if len(candidates) > maxSuggestions {
		candidates = candidates[:maxSuggestions]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.name
	}
	return out
}

// SuggestTagNames returns a short "valid tags" hint for invalid-tag errors.
func SuggestTagNames(valid []string) []string {
	if len(valid) == 0 {
		return nil
	}
	sorted := make([]string, len(valid))
	copy(sorted, valid)
	sort.Strings(sorted)
	if len(sorted) > maxSuggestions {
		sorted = sorted[:maxSuggestions]
	}
	return sorted
}

// levenshteinDistance computes the edit distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}
			matrix[i][j] = minOf(
				matrix[i-1][j]+1,      // Deletion
				matrix[i][j-1]+1,      // Insertion
				matrix[i-1][j-1]+cost, // Substitution
			)
		}
	}

	return matrix[len1][len2]
}

func minOf(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
