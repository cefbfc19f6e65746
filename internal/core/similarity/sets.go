package similarity

import (
	"math"
	"strings"
)

// jaccardSimilarity is |A ∩ B| / |A ∪ B| over the distinct runes of a and b.
func jaccardSimilarity(a, b string) float64 {
	setA := make(map[rune]struct{})
	for _, r := range a {
		setA[r] = struct{}{}
	}
	setB := make(map[rune]struct{})
	for _, r := range b {
		setB[r] = struct{}{}
	}

	if len(setA) == 0 && len(setB) == 0 {
		return 1.0
	}

	intersection := 0
	for r := range setA {
		if _, ok := setB[r]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

// cosineSimilarity treats each string as a bag of whitespace-delimited words.
func cosineSimilarity(a, b string) float64 {
	countsA := wordCounts(a)
	countsB := wordCounts(b)
	if len(countsA) == 0 || len(countsB) == 0 {
		return 0.0
	}

	var dot, normA, normB float64
	for w, ca := range countsA {
		normA += float64(ca * ca)
		if cb, ok := countsB[w]; ok {
			dot += float64(ca * cb)
		}
	}
	for _, cb := range countsB {
		normB += float64(cb * cb)
	}

	return math.Min(1.0, dot/math.Sqrt(normA*normB))
}

func wordCounts(s string) map[string]int {
	counts := make(map[string]int)
	for _, w := range strings.Fields(s) {
		counts[w]++
	}
	return counts
}
