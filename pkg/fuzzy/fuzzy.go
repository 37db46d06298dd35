package fuzzy

import (
	"strings"
	"unicode"
)

// LevenshteinDistance calculates the edit distance between two strings:
// the number of single-character insertions, deletions, or substitutions
// required to turn one into the other.
func LevenshteinDistance(s1, s2 string) int {
	s1 = Normalize(s1)
	s2 = Normalize(s2)

	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	d := make([][]int, m+1)
	for i := range d {
		d[i] = make([]int, n+1)
	}
	for i := 0; i <= m; i++ {
		d[i][0] = i
	}
	for j := 0; j <= n; j++ {
		d[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			d[i][j] = min3(
				d[i-1][j]+1,
				d[i][j-1]+1,
				d[i-1][j-1]+cost,
			)
		}
	}

	return d[m][n]
}

// Match checks whether query fuzzy-matches text within the given edit
// distance threshold. Substring containment always matches.
func Match(query, text string, threshold int) bool {
	query = Normalize(query)
	text = Normalize(text)

	if strings.Contains(text, query) {
		return true
	}

	for _, word := range strings.Fields(text) {
		if LevenshteinDistance(query, word) <= threshold {
			return true
		}
		if strings.HasPrefix(word, query) {
			return true
		}
	}

	return false
}

// ScoreOccurrence ranks how relevant a calendar occurrence is to a query.
// Title matches weigh heaviest, then project name, then description.
func ScoreOccurrence(query, title, projectName, description string) float64 {
	query = Normalize(query)
	score := 0.0

	titleNorm := Normalize(title)
	if strings.Contains(titleNorm, query) {
		score += 100.0
		if containsWord(titleNorm, query) {
			score += 50.0
		}
	} else {
		for _, word := range strings.Fields(titleNorm) {
			dist := LevenshteinDistance(query, word)
			if dist <= 2 {
				score += 50.0 - float64(dist)*15
			}
			if strings.HasPrefix(word, query) {
				score += 40.0
			}
		}
	}

	projectNorm := Normalize(projectName)
	if projectNorm != "" && strings.Contains(projectNorm, query) {
		score += 60.0
		if containsWord(projectNorm, query) {
			score += 20.0
		}
	}

	descNorm := Normalize(description)
	if len(descNorm) > 300 {
		descNorm = descNorm[:300]
	}
	if descNorm != "" && strings.Contains(descNorm, query) {
		score += 25.0
	}

	return score
}

// ThresholdFor returns a typo-tolerance threshold scaled to query length.
func ThresholdFor(query string) int {
	switch {
	case len(query) <= 3:
		return 1
	case len(query) >= 8:
		return 3
	default:
		return 2
	}
}

// Normalize lowercases and strips combining marks so accented input
// matches unaccented stored text.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	for _, r := range s {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func containsWord(text, word string) bool {
	for _, w := range strings.Fields(text) {
		if w == word {
			return true
		}
	}
	return false
}

func min3(a, b, c int) int {
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
