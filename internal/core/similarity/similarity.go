// Package similarity implements the string similarity algorithms used to
// compare field values. Every function is pure and returns a score in [0, 1].
package similarity

import (
	"fmt"
	"strings"
)

// Kind identifies a similarity algorithm.
type Kind int

const (
	Levenshtein Kind = iota
	JaroWinkler
	Jaccard
	Cosine
	Soundex
	Metaphone
	SorensenDice
	Hamming
)

var kindNames = map[Kind]string{
	Levenshtein:  "levenshtein",
	JaroWinkler:  "jaro_winkler",
	Jaccard:      "jaccard",
	Cosine:       "cosine",
	Soundex:      "soundex",
	Metaphone:    "metaphone",
	SorensenDice: "sorensen_dice",
	Hamming:      "hamming",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Kinds lists every supported algorithm kind.
func Kinds() []Kind {
	return []Kind{Levenshtein, JaroWinkler, Jaccard, Cosine, Soundex, Metaphone, SorensenDice, Hamming}
}

// ParseKind resolves a kind from its canonical name ("jaro_winkler").
// Hyphens and case are ignored.
func ParseKind(name string) (Kind, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_")
	for k, s := range kindNames {
		if s == n {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown similarity algorithm kind: %s", name)
}

// Similarity scores a against b with the algorithm of the given kind.
// Identical strings (including two empty ones) score 1; an empty string
// against a non-empty one scores 0.
func Similarity(kind Kind, a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	var score float64
	switch kind {
	case Levenshtein:
		score = levenshteinSimilarity(a, b)
	case JaroWinkler:
		score = jaroWinklerSimilarity(a, b)
	case Jaccard:
		score = jaccardSimilarity(a, b)
	case Cosine:
		score = cosineSimilarity(a, b)
	case Soundex:
		score = codeEquality(soundexCode(a), soundexCode(b))
	case Metaphone:
		score = codeEquality(metaphoneCode(a), metaphoneCode(b))
	case SorensenDice:
		score = sorensenDiceSimilarity(a, b)
	case Hamming:
		score = hammingSimilarity(a, b)
	default:
		return 0.0
	}
	return clamp(score)
}

// Algorithm is a registered similarity algorithm instance.
type Algorithm struct {
	Kind      Kind    `json:"kind"`
	Threshold float64 `json:"threshold"`
}

// New returns an algorithm of the given kind with its default threshold.
func New(kind Kind) Algorithm {
	return Algorithm{Kind: kind, Threshold: DefaultThreshold(kind)}
}

// Similarity scores a against b.
func (a Algorithm) Similarity(x, y string) float64 {
	return Similarity(a.Kind, x, y)
}

// Matches reports whether x and y reach the algorithm's own threshold.
func (a Algorithm) Matches(x, y string) bool {
	return a.Similarity(x, y) >= a.Threshold
}

// DefaultThreshold is the threshold a freshly created algorithm carries.
func DefaultThreshold(kind Kind) float64 {
	switch kind {
	case Levenshtein:
		return 0.8
	case JaroWinkler:
		return 0.85
	case Jaccard, Cosine, SorensenDice:
		return 0.7
	case Hamming:
		return 0.8
	default:
		// phonetic codes are binary
		return 1.0
	}
}

func codeEquality(a, b string) float64 {
	if a == "" || b == "" {
		return 0.0
	}
	if a == b {
		return 1.0
	}
	return 0.0
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
