package similarity

import (
	"strings"
	"unicode"
)

// Score computes a normalized similarity percentage between two product
// names, in the range [0, 100]. Both inputs are normalized before
// comparison, so punctuation and letter case do not affect the result.
//
// Identical normalized strings score 100; if either side normalizes to
// the empty string the score is 0. Otherwise the score is derived from
// the Levenshtein distance between the normalized strings:
//
//	100 * (maxLen - distance) / maxLen
//
// The function is pure and deterministic.
func Score(a, b string) float64 {
	normA := Normalize(a)
	normB := Normalize(b)

	if normA == normB {
		return 100
	}
	if len(normA) == 0 || len(normB) == 0 {
		return 0
	}

	ra := []rune(normA)
	rb := []rune(normB)

	distance := levenshtein(ra, rb)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}

	return float64(maxLen-distance) / float64(maxLen) * 100
}

// Normalize prepares a string for matching:
//   - converts to lowercase
//   - strips everything except letters, digits and whitespace
//     (covers both Latin and Cyrillic product names)
//   - collapses runs of whitespace into single spaces
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// levenshtein returns the minimum number of single-rune insertions,
// deletions or substitutions required to transform a into b, using the
// classic dynamic-programming formulation.
func levenshtein(a, b []rune) int {
	matrix := make([][]int, len(b)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(a)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(a); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(b); i++ {
		for j := 1; j <= len(a); j++ {
			if b[i-1] == a[j-1] {
				matrix[i][j] = matrix[i-1][j-1]
				continue
			}
			matrix[i][j] = min(
				matrix[i-1][j-1]+1, // substitution
				matrix[i][j-1]+1,   // insertion
				matrix[i-1][j]+1,   // deletion
			)
		}
	}

	return matrix[len(b)][len(a)]
}
