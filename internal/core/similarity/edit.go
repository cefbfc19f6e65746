package similarity

import (
	"unicode/utf8"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
	"github.com/agnivade/levenshtein"
)

// levenshteinSimilarity is 1 - distance/max(len(a), len(b)), lengths in runes.
func levenshteinSimilarity(a, b string) float64 {
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}
	distance := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(distance)/float64(maxLen)
}

var (
	sorensenDice = &metrics.SorensenDice{CaseSensitive: true, NgramSize: 2}
	hamming      = &metrics.Hamming{CaseSensitive: true}
)

// sorensenDiceSimilarity compares the bigram multisets of a and b.
func sorensenDiceSimilarity(a, b string) float64 {
	return strutil.Similarity(a, b, sorensenDice)
}

// hammingSimilarity counts positional mismatches; the length difference
// counts as mismatches too.
func hammingSimilarity(a, b string) float64 {
	return strutil.Similarity(a, b, hamming)
}
